package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "decafc",
	Short: "Decaf compiler front end",
	Long: `decafc compiles Decaf, a small statically-typed object-oriented
teaching language, through symbol resolution, type checking, and
three-address-code lowering.

decafc does not execute Decaf programs and does not emit JVM class files;
it is a front end and an intermediate-code lowering pass, exposed here as
a set of inspection subcommands (lex, parse, check, build, repl).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("format", "text", `diagnostic output format: "text" or "json"`)
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// readInput resolves a subcommand's input source: an inline -e expression,
// a single file argument, or neither (an error — decafc has no stdin mode,
// unlike the teacher's commands, since every subcommand needs a filename
// for its diagnostics).
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], rerr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}
