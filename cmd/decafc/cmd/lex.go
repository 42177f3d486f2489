package cmd

import (
	"fmt"

	"github.com/decaflang/decaf/internal/lexer"
	"github.com/decaflang/decaf/internal/token"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	showPos    bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Decaf file or expression",
	Long: `Tokenize (lex) a Decaf program and print the resulting tokens.

Examples:
  decafc lex script.decaf
  decafc lex -e "class Main { void main() { print(1); } }"
  decafc lex --show-pos script.decaf
  decafc lex --only-errors script.decaf`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line,column)")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n---\n", len(input))
	}

	l := lexer.New(input, lexer.WithFileName(filename))

	tokenCount, errorCount := 0, 0
	for {
		tok := l.NextToken()
		isError := tok.Kind == token.ILLEGAL

		if !onlyErrors || isError || tok.Kind == token.EOF {
			if !onlyErrors || isError {
				printToken(tok)
			}
		}

		tokenCount++
		if isError {
			errorCount++
		}
		if tok.Kind == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Printf("---\nTotal tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	for _, e := range l.Errors() {
		fmt.Printf("*** Error at (%d,%d): %s\n", e.Pos.Line, e.Pos.Column, e.Message)
	}
	if len(l.Errors()) > 0 {
		return fmt.Errorf("found %d lexical error(s)", len(l.Errors()))
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if tok.Kind == token.EOF {
		out = "EOF"
	} else if tok.Literal == "" {
		out = tok.Kind.String()
	} else {
		out = fmt.Sprintf("%s %q", tok.Kind, tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
