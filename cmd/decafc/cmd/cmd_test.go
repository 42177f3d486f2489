package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// runCLI executes rootCmd with args, capturing everything written to
// stdout. It resets the package-level flag vars the subcommands bind to,
// since cobra.Command.Flags() are shared across runs in-process.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldEval, oldShowPos, oldOnlyErrors, oldBuildOutput := evalExpr, showPos, onlyErrors, buildOutput
	t.Cleanup(func() {
		evalExpr, showPos, onlyErrors, buildOutput = oldEval, oldShowPos, oldOnlyErrors, oldBuildOutput
	})
	evalExpr, showPos, onlyErrors, buildOutput = "", false, false, ""
	rootCmd.PersistentFlags().Set("format", "text")
	rootCmd.PersistentFlags().Set("verbose", "false")

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func TestLexCommandTokenizesInlineSource(t *testing.T) {
	out, err := runCLI(t, "lex", "-e", "class Main { }")
	if err != nil {
		t.Fatalf("lex failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "class") {
		t.Errorf("expected a class-keyword token in output, got:\n%s", out)
	}
	if !strings.Contains(out, "EOF") {
		t.Errorf("expected an EOF token in output, got:\n%s", out)
	}
}

func TestLexCommandReportsIllegalChar(t *testing.T) {
	out, err := runCLI(t, "lex", "-e", "class Main { $ }")
	if err == nil {
		t.Fatalf("expected lex to fail on an illegal character, output:\n%s", out)
	}
	if !strings.Contains(out, "Error at") {
		t.Errorf("expected an error diagnostic in output, got:\n%s", out)
	}
}

func TestParseCommandDumpsProgram(t *testing.T) {
	out, err := runCLI(t, "parse", "-e", "class Main { static void main() { print(1); } }")
	if err != nil {
		t.Fatalf("parse failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Class Main") {
		t.Errorf("expected a class dump, got:\n%s", out)
	}
	if !strings.Contains(out, "Print (1 args)") {
		t.Errorf("expected a print-statement dump, got:\n%s", out)
	}
}

func TestParseCommandReportsSyntaxError(t *testing.T) {
	out, err := runCLI(t, "parse", "-e", "class Main { )( }")
	if err == nil {
		t.Fatalf("expected parse to fail on malformed input, output:\n%s", out)
	}
	if out == "" {
		t.Error("expected at least one diagnostic line")
	}
}

func TestCheckCommandReportsOK(t *testing.T) {
	out, err := runCLI(t, "check", "-e", "class Main { static void main() { } }")
	if err != nil {
		t.Fatalf("check failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "OK") {
		t.Errorf("expected OK, got:\n%s", out)
	}
}

func TestCheckCommandReportsSemanticError(t *testing.T) {
	out, err := runCLI(t, "check", "-e", "class Main { static void main() { print(undeclared); } }")
	if err == nil {
		t.Fatalf("expected check to fail, output:\n%s", out)
	}
	if !strings.Contains(out, "undeclared variable 'undeclared'") {
		t.Errorf("expected an undeclared-variable diagnostic, got:\n%s", out)
	}
}

func TestCheckCommandJSONFormat(t *testing.T) {
	out, err := runCLI(t, "check", "--format", "json", "-e", "class Main { static void main() { print(undeclared); } }")
	if err == nil {
		t.Fatalf("expected check to fail, output:\n%s", out)
	}
	if !strings.Contains(out, `"kind"`) && !strings.Contains(out, "UndeclaredVar") {
		t.Errorf("expected JSON-formatted diagnostics, got:\n%s", out)
	}
}

func TestBuildCommandPrintsTACListing(t *testing.T) {
	out, err := runCLI(t, "build", "-e", "class Main { static void main() { int x = 1 + 2; } }")
	if err != nil {
		t.Fatalf("build failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "; entry main") {
		t.Errorf("expected a TAC entry header, got:\n%s", out)
	}
	if !strings.Contains(out, "static method main") {
		t.Errorf("expected a method listing, got:\n%s", out)
	}
}

func TestBuildCommandWritesOutputFile(t *testing.T) {
	tempDir := t.TempDir()
	outPath := tempDir + "/out.tac"
	_, err := runCLI(t, "build", "-e", "class Main { static void main() { } }", "-o", outPath)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	data, rerr := os.ReadFile(outPath)
	if rerr != nil {
		t.Fatalf("expected output file to be written: %v", rerr)
	}
	if !strings.Contains(string(data), "; entry main") {
		t.Errorf("expected TAC listing in output file, got:\n%s", data)
	}
}

func TestBuildCommandFailsOnSemanticError(t *testing.T) {
	out, err := runCLI(t, "build", "-e", "class Main { static void main() { print(undeclared); } }")
	if err == nil {
		t.Fatalf("expected build to fail, output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "decafc version") {
		t.Errorf("expected version banner, got:\n%s", out)
	}
}

func TestReadInputRequiresSourceOrFile(t *testing.T) {
	_, _, err := readInput("", nil)
	if err == nil {
		t.Error("expected an error when neither -e nor a file argument is given")
	}
}

func TestReadInputPrefersEval(t *testing.T) {
	input, filename, err := readInput("class Main {}", []string{"ignored.decaf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input != "class Main {}" || filename != "<eval>" {
		t.Errorf("readInput = (%q, %q), want eval source and <eval>", input, filename)
	}
}

func TestReadInputMissingFile(t *testing.T) {
	_, _, err := readInput("", []string{"/no/such/file.decaf"})
	if err == nil {
		t.Error("expected an error for a missing file")
	}
}
