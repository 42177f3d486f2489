package parser

import (
	"testing"

	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *Parser) {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.Parse()
	return prog, p
}

func TestParseEmptyClass(t *testing.T) {
	prog, p := parse(t, `class Foo { }`)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	if len(prog.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(prog.Classes))
	}
	if prog.Classes[0].Name != "Foo" {
		t.Errorf("class name = %q, want Foo", prog.Classes[0].Name)
	}
}

func TestParseSealedExtends(t *testing.T) {
	prog, p := parse(t, `sealed class Dog extends Animal { }`)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	c := prog.Classes[0]
	if !c.Sealed {
		t.Error("expected Sealed == true")
	}
	if c.ParentName != "Animal" {
		t.Errorf("ParentName = %q, want Animal", c.ParentName)
	}
}

func TestParseFieldsAndMethod(t *testing.T) {
	src := `class Foo {
		int x;
		bool flag;
		int add(int a, int b) { return a + b; }
	}`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	fields := prog.Classes[0].Fields
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}
	x, ok := fields[0].(*ast.VarDef)
	if !ok || x.Name != "x" || x.Type.Name != "int" {
		t.Errorf("field[0] = %+v", fields[0])
	}
	flag, ok := fields[1].(*ast.VarDef)
	if !ok || flag.Name != "flag" {
		t.Errorf("field[1] = %+v", fields[1])
	}
	m, ok := fields[2].(*ast.MethodDef)
	if !ok || m.Name != "add" || len(m.Params) != 2 {
		t.Fatalf("field[2] = %+v", fields[2])
	}
	if len(m.Body.Stmts) != 1 {
		t.Fatalf("method body has %d statements, want 1", len(m.Body.Stmts))
	}
}

func TestParseArrayType(t *testing.T) {
	src := `class Foo { int[] xs; }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	f := prog.Classes[0].Fields[0].(*ast.VarDef)
	if !f.Type.IsArray || f.Type.Elem.Name != "int" {
		t.Errorf("type = %+v", f.Type)
	}
}

func TestPrecedence(t *testing.T) {
	src := `class Foo { void m() { int x = 1 + 2 * 3; } }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	decl := body.Stmts[0].(*ast.VarDeclStmt)
	bin, ok := decl.Init.(*ast.Binary)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("top-level op = %+v, want BinAdd", decl.Init)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.BinMul {
		t.Fatalf("rhs op = %+v, want BinMul (* before + should bind tighter)", bin.Right)
	}
}

func TestClassicIfVsGuarded(t *testing.T) {
	src := `class Foo { void m() {
		if (true) { print("a"); }
		if { true :: { print("b"); } false :: { print("c"); } }
	} }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	if _, ok := body.Stmts[0].(*ast.IfStmt); !ok {
		t.Errorf("stmt[0] = %T, want *ast.IfStmt", body.Stmts[0])
	}
	guarded, ok := body.Stmts[1].(*ast.GuardedStmt)
	if !ok {
		t.Fatalf("stmt[1] = %T, want *ast.GuardedStmt", body.Stmts[1])
	}
	if len(guarded.Arms) != 2 {
		t.Errorf("got %d guarded arms, want 2", len(guarded.Arms))
	}
}

func TestTypeCastVsGrouping(t *testing.T) {
	src := `class Foo { void m() {
		int x = (1 + 2);
		Object y = (Object) x;
	} }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	xdecl := body.Stmts[0].(*ast.VarDeclStmt)
	if _, ok := xdecl.Init.(*ast.Binary); !ok {
		t.Errorf("grouped expr should parse to a plain Binary, got %T", xdecl.Init)
	}
	ydecl := body.Stmts[1].(*ast.VarDeclStmt)
	cast, ok := ydecl.Init.(*ast.TypeCast)
	if !ok || cast.ClassName != "Object" {
		t.Errorf("cast expr = %+v, want TypeCast to Object", ydecl.Init)
	}
}

func TestComprehension(t *testing.T) {
	src := `class Foo { void m() { int[] ys = [x * 2 for x in xs if x > 0]; } }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	decl := body.Stmts[0].(*ast.VarDeclStmt)
	comp, ok := decl.Init.(*ast.Comprehension)
	if !ok {
		t.Fatalf("init = %T, want *ast.Comprehension", decl.Init)
	}
	if comp.Binder != "x" {
		t.Errorf("Binder = %q, want x", comp.Binder)
	}
	if comp.Cond == nil {
		t.Error("expected a Cond to be parsed")
	}
}

func TestDefaultAndRange(t *testing.T) {
	src := `class Foo { void m() {
		int a = default[xs, 3, 0];
		int[] b = xs[1..5];
	} }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	if _, ok := body.Stmts[0].(*ast.VarDeclStmt).Init.(*ast.Default); !ok {
		t.Errorf("expected *ast.Default")
	}
	if _, ok := body.Stmts[1].(*ast.VarDeclStmt).Init.(*ast.Range); !ok {
		t.Errorf("expected *ast.Range")
	}
}

func TestForeachWithGuard(t *testing.T) {
	src := `class Foo { void m() {
		foreach (int x in xs while x > 0) { print(x); }
	} }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	fe, ok := body.Stmts[0].(*ast.ForeachStmt)
	if !ok {
		t.Fatalf("stmt[0] = %T, want *ast.ForeachStmt", body.Stmts[0])
	}
	if fe.Def.Name != "x" || fe.Cond == nil {
		t.Errorf("foreach = %+v", fe)
	}
}

func TestClassicForLoop(t *testing.T) {
	src := `class Foo { void m() {
		for (int i = 0; i < 10; i = i + 1) { print(i); }
	} }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	f, ok := body.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("stmt[0] = %T, want *ast.ForStmt", body.Stmts[0])
	}
	if _, ok := f.Init.(*ast.VarDeclStmt); !ok {
		t.Errorf("Init = %T, want *ast.VarDeclStmt", f.Init)
	}
	if _, ok := f.Step.(*ast.AssignStmt); !ok {
		t.Errorf("Step = %T, want *ast.AssignStmt", f.Step)
	}
}

func TestParseErrorRecoversAtNextClass(t *testing.T) {
	src := `class Bad { )(; } class Good { }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) == 0 {
		t.Fatal("expected at least one parse error from the malformed class body")
	}
	names := make([]string, len(prog.Classes))
	for i, c := range prog.Classes {
		names[i] = c.Name
	}
	found := false
	for _, n := range names {
		if n == "Good" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected parsing to recover and still see class Good, classes = %v", names)
	}
}

func TestNewClassAndNewArray(t *testing.T) {
	src := `class Foo { void m() {
		Foo f = new Foo();
		int[] xs = new int[5];
	} }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	if _, ok := body.Stmts[0].(*ast.VarDeclStmt).Init.(*ast.NewClass); !ok {
		t.Errorf("expected *ast.NewClass")
	}
	if _, ok := body.Stmts[1].(*ast.VarDeclStmt).Init.(*ast.NewArray); !ok {
		t.Errorf("expected *ast.NewArray")
	}
}

func TestScopyStatement(t *testing.T) {
	src := `class Foo { void m() { scopy dst = src; } }`
	prog, p := parse(t, src)
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Sink.Errors())
	}
	body := prog.Classes[0].Fields[0].(*ast.MethodDef).Body
	sc, ok := body.Stmts[0].(*ast.SCopyStmt)
	if !ok || sc.DstName != "dst" {
		t.Errorf("stmt[0] = %+v, want SCopyStmt{DstName: dst}", body.Stmts[0])
	}
}
