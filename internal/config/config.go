// Package config loads the optional decaf.yaml compiler configuration:
// search-path roots, the runtime intrinsic name table, and the default
// output format, per SPEC_FULL.md's ambient-stack configuration section.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the compiler's tunable configuration. Every field has a
// sensible zero-value default, so a missing decaf.yaml is not an error.
type Config struct {
	// SearchPaths are directories searched for imported sources. Decaf has
	// no import statement yet (spec.md's Non-goals), so this is currently
	// unused by any pass; it is carried for forward compatibility the same
	// way the teacher's unit search paths were.
	SearchPaths []string `yaml:"searchPaths"`

	// OutputFormat names a default rendering, "text" or "json". It is carried
	// on the Engine's configuration, but no command reads it: `decafc build`
	// and `decafc check` take their format from the --format flag.
	OutputFormat string `yaml:"outputFormat"`

	// Intrinsics maps logical operation names to the runtime ABI names
	// spec.md §4.4.4 fixes (_Alloc, _ReadLine, ...). The lowerer does not
	// consult it; it always emits the fixed names.
	Intrinsics map[string]string `yaml:"intrinsics"`
}

// Default returns the configuration used when no decaf.yaml is present.
func Default() *Config {
	return &Config{
		OutputFormat: "text",
		Intrinsics: map[string]string{
			"alloc":        "_Alloc",
			"readLine":     "_ReadLine",
			"readInteger":  "_ReadInteger",
			"stringEqual":  "_StringEqual",
			"printInt":     "_PrintInt",
			"printString":  "_PrintString",
			"printBool":    "_PrintBool",
			"halt":         "_Halt",
		},
	}
}

// Load reads path, merging onto Default(); a missing file returns the
// default configuration rather than an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
