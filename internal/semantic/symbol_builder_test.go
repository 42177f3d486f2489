package semantic

import (
	"testing"

	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/lexer"
	"github.com/decaflang/decaf/internal/parser"
)

// buildSymbols parses src and runs only the symbol builder, returning the
// resulting program, context, and sink diagnostics.
func buildSymbols(t *testing.T, src string) (*ast.Program, *Context) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.Parse()
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Sink.Errors())
	}
	ctx := NewContext()
	if err := (SymbolBuilder{}).Run(prog, ctx); err != nil {
		t.Fatalf("SymbolBuilder.Run: %v", err)
	}
	return prog, ctx
}

func TestSymbolBuilderFindsMain(t *testing.T) {
	src := `class Main { static void main() { } }`
	prog, ctx := buildSymbols(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
	if prog.Main == nil || prog.Main.Name != "Main" {
		t.Fatalf("expected program.Main to be set to class Main, got %v", prog.Main)
	}
}

func TestSymbolBuilderNoMainClass(t *testing.T) {
	src := `class Foo { }`
	_, ctx := buildSymbols(t, src)
	errs := ctx.Sink.Errors()
	if len(errs) != 1 || errs[0].Kind != "NoMainClass" {
		t.Fatalf("errors = %v, want a single NoMainClass", errs)
	}
}

func TestSymbolBuilderMainWrongSignatureIsRejected(t *testing.T) {
	// main() must be static, void, and parameterless.
	src := `class Main { void main() { } }`
	_, ctx := buildSymbols(t, src)
	errs := ctx.Sink.Errors()
	if len(errs) != 1 || errs[0].Kind != "NoMainClass" {
		t.Fatalf("errors = %v, want a single NoMainClass (non-static main doesn't count)", errs)
	}
}

func TestSymbolBuilderConflictingClassNames(t *testing.T) {
	src := `class Foo { } class Foo { } class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	found := false
	for _, e := range ctx.Sink.Errors() {
		if e.Kind == "ConflictDeclaration" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a ConflictDeclaration error, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderNoSuchParent(t *testing.T) {
	src := `class Dog extends Ghost { } class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	found := false
	for _, e := range ctx.Sink.Errors() {
		if e.Kind == "NoSuchClass" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a NoSuchClass error, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderCyclicInheritance(t *testing.T) {
	src := `class A extends B { } class B extends A { } class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	found := false
	for _, e := range ctx.Sink.Errors() {
		if e.Kind == "CyclicInheritance" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a CyclicInheritance error, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderSealedInheritance(t *testing.T) {
	src := `sealed class Animal { } class Dog extends Animal { } class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	found := false
	for _, e := range ctx.Sink.Errors() {
		if e.Kind == "SealedInheritance" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a SealedInheritance error, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderOverrideVarRejected(t *testing.T) {
	src := `class Animal { int legs; }
	class Dog extends Animal { int legs; }
	class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	found := false
	for _, e := range ctx.Sink.Errors() {
		if e.Kind == "OverrideVar" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an OverrideVar error, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderCompatibleOverrideAllowed(t *testing.T) {
	src := `class Animal { void speak() { } }
	class Dog extends Animal { void speak() { } }
	class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("a compatible override should not produce errors, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderIncompatibleOverrideRejected(t *testing.T) {
	src := `class Animal { void speak(int x) { } }
	class Dog extends Animal { void speak() { } }
	class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	found := false
	for _, e := range ctx.Sink.Errors() {
		if e.Kind == "BadOverride" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a BadOverride error, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderVoidVarRejected(t *testing.T) {
	src := `class Foo { void x; } class Main { static void main() { } }`
	_, ctx := buildSymbols(t, src)
	found := false
	for _, e := range ctx.Sink.Errors() {
		if e.Kind == "VoidVar" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a VoidVar error, got %v", ctx.Sink.Errors())
	}
}

func TestSymbolBuilderSynthesizesThisParam(t *testing.T) {
	src := `class Foo { void m() { } } class Main { static void main() { } }`
	prog, ctx := buildSymbols(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
	var m *ast.MethodDef
	for _, f := range prog.Classes[0].Fields {
		if md, ok := f.(*ast.MethodDef); ok {
			m = md
		}
	}
	if m == nil || len(m.Params) != 1 || m.Params[0].Name != "this" {
		t.Fatalf("expected a synthesized 'this' parameter, got %+v", m)
	}
}
