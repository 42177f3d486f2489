package semantic

import (
	"testing"

	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/token"
)

func TestScopeStackDeclareLookup(t *testing.T) {
	ss := NewScopeStack()
	v := &ast.VarDef{Name: "x"}
	ss.Declare(VarSymbol(v))

	sym, scope := ss.Lookup("x", false)
	if sym == nil || scope != ss.Global {
		t.Fatalf("Lookup(x, false) = %v, %v; want var in global scope", sym, scope)
	}
	if sym, _ := ss.Lookup("missing", false); sym != nil {
		t.Error("expected an undeclared name to not resolve")
	}
}

func TestScopeStackOpenCloseInheritance(t *testing.T) {
	ss := NewScopeStack()

	animal := &ast.ClassDef{Name: "Animal"}
	animal.Scope = NewClassScope(animal)
	speak := &ast.MethodDef{Name: "speak"}
	animal.Scope.Symbols["speak"] = MethodSymbol(speak)

	dog := &ast.ClassDef{Name: "Dog", ParentRef: animal}
	dog.Scope = NewClassScope(dog)
	bark := &ast.MethodDef{Name: "bark"}
	dog.Scope.Symbols["bark"] = MethodSymbol(bark)

	ss.Open(dog.Scope)

	if sym, _ := ss.Lookup("bark", true); sym == nil {
		t.Error("expected bark to resolve in the open Dog scope")
	}
	if sym, _ := ss.Lookup("speak", true); sym == nil {
		t.Error("expected speak to resolve via the inherited Animal scope")
	}

	ss.Close()

	if sym, _ := ss.Lookup("bark", true); sym != nil {
		t.Error("expected bark to be unresolvable after Close popped the whole chain")
	}
	if ss.Current() != ss.Global {
		t.Error("expected only the global scope to remain open after Close")
	}
}

func TestScopeStackLookupBefore(t *testing.T) {
	ss := NewScopeStack()
	b := &ast.Block{}
	local := NewLocalScope(b)
	ss.Open(local)

	early := &ast.VarDef{Name: "a", Pos: token.Position{Line: 1, Column: 1}}
	late := &ast.VarDef{Name: "b", Pos: token.Position{Line: 5, Column: 1}}
	ss.Declare(VarSymbol(early))
	ss.Declare(VarSymbol(late))

	useBeforeLate := token.Position{Line: 3, Column: 1}
	if sym, _ := ss.LookupBefore("a", useBeforeLate); sym == nil {
		t.Error("expected 'a' (declared before use) to resolve")
	}
	if sym, _ := ss.LookupBefore("b", useBeforeLate); sym != nil {
		t.Error("expected 'b' (declared after use) to be filtered out")
	}
}

func TestScopeStackLookupClass(t *testing.T) {
	ss := NewScopeStack()
	c := &ast.ClassDef{Name: "Foo"}
	ss.Declare(ClassSymbol(c))

	if sym := ss.LookupClass("Foo"); sym == nil {
		t.Error("expected Foo to resolve as a class symbol")
	}
	if sym := ss.LookupClass("Bar"); sym != nil {
		t.Error("expected Bar to be unresolved")
	}
}
