package cmd

import (
	"fmt"
	"strings"

	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/lexer"
	"github.com/decaflang/decaf/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Decaf source and display the AST",
	Long: `Parse Decaf source code and print the Abstract Syntax Tree.

Examples:
  decafc parse script.decaf
  decafc parse -e "class Main { void main() {} }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input, lexer.WithFileName(filename))
	p := parser.New(l)
	program := p.Parse()

	if len(p.Sink.Errors()) > 0 {
		for _, e := range p.Sink.Errors() {
			fmt.Println(e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Sink.Errors()))
	}

	dumpProgram(program)
	return nil
}

func dumpProgram(program *ast.Program) {
	fmt.Printf("Program (%d classes)\n", len(program.Classes))
	for _, c := range program.Classes {
		dumpClass(c, 1)
	}
}

func dumpClass(c *ast.ClassDef, indent int) {
	pad := strings.Repeat("  ", indent)
	sealed := ""
	if c.Sealed {
		sealed = "sealed "
	}
	extends := ""
	if c.ParentName != "" {
		extends = " extends " + c.ParentName
	}
	fmt.Printf("%sClass %s%s%s\n", pad, sealed, c.Name, extends)
	for _, f := range c.Fields {
		switch m := f.(type) {
		case *ast.VarDef:
			fmt.Printf("%s  Field %s %s\n", pad, typeString(m.Type), m.Name)
		case *ast.MethodDef:
			static := ""
			if m.Static {
				static = "static "
			}
			var params []string
			for _, prm := range m.Params {
				params = append(params, typeString(prm.Type)+" "+prm.Name)
			}
			fmt.Printf("%s  Method %s%s %s(%s)\n", pad, static, typeString(m.RetT), m.Name, strings.Join(params, ", "))
			dumpBlock(m.Body, indent+2)
		}
	}
}

func typeString(t *ast.Type) string {
	if t == nil {
		return "?"
	}
	if t.IsArray {
		return typeString(t.Elem) + "[]"
	}
	return t.Name
}

func dumpBlock(b *ast.Block, indent int) {
	for _, s := range b.Stmts {
		dumpStmt(s, indent)
	}
}

func dumpStmt(s ast.Stmt, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		fmt.Printf("%sVarDecl %s %s\n", pad, typeString(n.Def.Type), n.Def.Name)
	case *ast.AssignStmt:
		fmt.Printf("%sAssign\n", pad)
	case *ast.CallStmt:
		fmt.Printf("%sCallStmt %s\n", pad, n.Call.Name)
	case *ast.IfStmt:
		fmt.Printf("%sIf\n", pad)
		dumpBlock(n.OnTrue, indent+1)
		if n.OnFalse != nil {
			fmt.Printf("%sElse\n", pad)
			dumpBlock(n.OnFalse, indent+1)
		}
	case *ast.WhileStmt:
		fmt.Printf("%sWhile\n", pad)
		dumpBlock(n.Body, indent+1)
	case *ast.ForStmt:
		fmt.Printf("%sFor\n", pad)
		dumpBlock(n.Body, indent+1)
	case *ast.ForeachStmt:
		fmt.Printf("%sForeach %s\n", pad, n.Def.Name)
		dumpBlock(n.Body, indent+1)
	case *ast.GuardedStmt:
		fmt.Printf("%sGuarded (%d arms)\n", pad, len(n.Arms))
	case *ast.BreakStmt:
		fmt.Printf("%sBreak\n", pad)
	case *ast.ReturnStmt:
		fmt.Printf("%sReturn\n", pad)
	case *ast.PrintStmt:
		fmt.Printf("%sPrint (%d args)\n", pad, len(n.Args))
	case *ast.SCopyStmt:
		fmt.Printf("%sSCopy %s\n", pad, n.DstName)
	case *ast.BlockStmt:
		fmt.Printf("%sBlock\n", pad)
		dumpBlock(n.Block, indent+1)
	default:
		fmt.Printf("%s%T\n", pad, s)
	}
}
