package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/decaflang/decaf/internal/tac"
	"github.com/decaflang/decaf/pkg/decaf"
	"github.com/spf13/cobra"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Run the full pipeline and print (or save) the TAC listing",
	Long: `build runs the complete pipeline — lex, parse, resolve symbols,
type check, lower to three-address code — and prints the resulting TAC
listing. Any stage's diagnostics abort the pipeline at that stage.

Examples:
  decafc build script.decaf
  decafc build script.decaf -o script.tac`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "build inline source instead of reading from a file")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "write the TAC listing to this file instead of stdout")
}

func runBuild(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")

	engine := decaf.New()
	if verbose {
		fmt.Fprintf(os.Stderr, "compiling %s\n", filename)
	}

	result, err := engine.Compile(context.Background(), input, filename)
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		if derr := printDiagnostics(result.Errors, format); derr != nil {
			return derr
		}
		return fmt.Errorf("build failed with %d error(s)", len(result.Errors))
	}

	listing := tac.Print(result.TAC)
	if buildOutput == "" {
		fmt.Print(listing)
		return nil
	}
	if !strings.HasSuffix(buildOutput, ".tac") && verbose {
		fmt.Fprintf(os.Stderr, "warning: output file %s does not use the .tac extension\n", buildOutput)
	}
	return os.WriteFile(buildOutput, []byte(listing), 0o644)
}
