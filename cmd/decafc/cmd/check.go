package cmd

import (
	"fmt"

	"github.com/decaflang/decaf/internal/diag"
	"github.com/decaflang/decaf/internal/lexer"
	"github.com/decaflang/decaf/internal/parser"
	"github.com/decaflang/decaf/internal/semantic"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run symbol resolution and type checking, reporting diagnostics",
	Long: `check parses a Decaf program and runs the symbol builder and type
checker passes, printing every accumulated diagnostic.

Examples:
  decafc check script.decaf
  decafc check --format json script.decaf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "check inline source instead of reading from a file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	l := lexer.New(input, lexer.WithFileName(filename))
	p := parser.New(l)
	program := p.Parse()

	var errs []*diag.Error
	if len(p.Sink.Errors()) > 0 {
		errs = p.Sink.Errors()
	} else {
		ctx := semantic.NewContext()
		pm := semantic.NewPassManager(semantic.SymbolBuilder{}, semantic.TypeChecker{})
		if runErr := pm.RunAll(program, ctx); runErr != nil {
			return runErr
		}
		errs = ctx.Sink.Errors()
	}

	if err := printDiagnostics(errs, format); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("check failed with %d error(s)", len(errs))
	}
	fmt.Println("OK")
	return nil
}

func printDiagnostics(errs []*diag.Error, format string) error {
	if format == "json" {
		doc, err := diag.ToJSON(errs)
		if err != nil {
			return err
		}
		fmt.Println(doc)
		return nil
	}
	for _, e := range errs {
		fmt.Println(e.Error())
	}
	return nil
}
