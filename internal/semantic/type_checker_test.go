package semantic

import (
	"testing"

	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/lexer"
	"github.com/decaflang/decaf/internal/parser"
)

// check parses src and runs the full symbol-builder + type-checker
// pipeline, failing the test on any unexpected Go error (not diagnostics).
func check(t *testing.T, src string) (*ast.Program, *Context) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.Parse()
	if len(p.Sink.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Sink.Errors())
	}
	ctx := NewContext()
	pm := NewPassManager(SymbolBuilder{}, TypeChecker{})
	if err := pm.RunAll(prog, ctx); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	return prog, ctx
}

func kinds(ctx *Context) []string {
	var out []string
	for _, e := range ctx.Sink.Errors() {
		out = append(out, e.Kind)
	}
	return out
}

func TestTypeCheckerValidProgram(t *testing.T) {
	src := `class Main {
		static void main() {
			int x = 1 + 2;
			print(x);
		}
	}`
	_, ctx := check(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
}

func TestTypeCheckerIncompatibleBinary(t *testing.T) {
	src := `class Main {
		static void main() {
			bool b = 1 + true;
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "IncompatibleBinary") {
		t.Errorf("expected IncompatibleBinary, got %v", kinds(ctx))
	}
}

func TestTypeCheckerUndeclaredVar(t *testing.T) {
	src := `class Main {
		static void main() {
			print(y);
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "UndeclaredVar") {
		t.Errorf("expected UndeclaredVar, got %v", kinds(ctx))
	}
}

func TestTypeCheckerBreakOutsideLoop(t *testing.T) {
	src := `class Main {
		static void main() {
			break;
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "BreakOutOfLoop") {
		t.Errorf("expected BreakOutOfLoop, got %v", kinds(ctx))
	}
}

func TestTypeCheckerBreakInsideLoopOk(t *testing.T) {
	src := `class Main {
		static void main() {
			while (true) { break; }
		}
	}`
	_, ctx := check(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
}

func TestTypeCheckerThisInStatic(t *testing.T) {
	src := `class Main {
		static void main() {
			Main m = this;
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "ThisInStatic") {
		t.Errorf("expected ThisInStatic, got %v", kinds(ctx))
	}
}

func TestTypeCheckerRefInStatic(t *testing.T) {
	src := `class Foo {
		int x;
		static void bad() { print(x); }
	}
	class Main { static void main() { } }`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "RefInStatic") {
		t.Errorf("expected RefInStatic, got %v", kinds(ctx))
	}
}

func TestTypeCheckerWrongArgc(t *testing.T) {
	src := `class Foo {
		void m(int x) { }
	}
	class Main {
		static void main() {
			Foo f = new Foo();
			f.m(1, 2);
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "WrongArgc") {
		t.Errorf("expected WrongArgc, got %v", kinds(ctx))
	}
}

func TestTypeCheckerWrongArgType(t *testing.T) {
	src := `class Foo {
		void m(int x) { }
	}
	class Main {
		static void main() {
			Foo f = new Foo();
			f.m(true);
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "WrongArgType") {
		t.Errorf("expected WrongArgType, got %v", kinds(ctx))
	}
}

func TestTypeCheckerArrayLength(t *testing.T) {
	src := `class Main {
		static void main() {
			int[] xs = new int[3];
			int n = xs.length();
		}
	}`
	_, ctx := check(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
}

func TestTypeCheckerArrayRepeatAndConcat(t *testing.T) {
	src := `class Main {
		static void main() {
			int[] a = 0 %% 3;
			int[] b = a ++ a;
		}
	}`
	_, ctx := check(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
}

func TestTypeCheckerConcatMismatch(t *testing.T) {
	src := `class Main {
		static void main() {
			int[] a = new int[1];
			bool[] b = new bool[1];
			int[] c = a ++ b;
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "ConcatMismatch") {
		t.Errorf("expected ConcatMismatch, got %v", kinds(ctx))
	}
}

func TestTypeCheckerComprehension(t *testing.T) {
	src := `class Main {
		static void main() {
			int[] xs = new int[3];
			int[] ys = [x * 2 for x in xs if x > 0];
		}
	}`
	_, ctx := check(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
}

func TestTypeCheckerDefaultMismatch(t *testing.T) {
	src := `class Main {
		static void main() {
			int[] xs = new int[3];
			bool b = default[xs, 0, true];
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "DefaultMismatch") {
		t.Errorf("expected DefaultMismatch, got %v", kinds(ctx))
	}
}

func TestTypeCheckerScopyMismatch(t *testing.T) {
	src := `class A { }
	class B { }
	class Main {
		static void main() {
			A a = new A();
			B b = new B();
			scopy a = b;
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "SCopyMismatch") {
		t.Errorf("expected SCopyMismatch, got %v", kinds(ctx))
	}
}

func TestTypeCheckerInstanceofAndCast(t *testing.T) {
	src := `class Animal { }
	class Dog extends Animal { }
	class Main {
		static void main() {
			Animal a = new Dog();
			if (a instanceof Dog) {
				Dog d = (Dog) a;
			}
		}
	}`
	_, ctx := check(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
}

func TestTypeCheckerBadLength(t *testing.T) {
	src := `class Main {
		static void main() {
			int n = 5;
			int m = n.length();
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "BadLength") {
		t.Errorf("expected BadLength, got %v", kinds(ctx))
	}
}

func TestTypeCheckerWrongReturnType(t *testing.T) {
	src := `class Foo {
		int m() { return true; }
	}
	class Main { static void main() { } }`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "WrongReturnType") {
		t.Errorf("expected WrongReturnType, got %v", kinds(ctx))
	}
}

func TestTypeCheckerVarInference(t *testing.T) {
	src := `class Main {
		static void main() {
			var x = 5;
			int y = x + 1;
		}
	}`
	_, ctx := check(t, src)
	if ctx.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Sink.Errors())
	}
}

func TestTypeCheckerAssignMismatch(t *testing.T) {
	src := `class Main {
		static void main() {
			int x = 1;
			x = true;
		}
	}`
	_, ctx := check(t, src)
	if !contains(kinds(ctx), "AssignMismatch") {
		t.Errorf("expected AssignMismatch, got %v", kinds(ctx))
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
