package semantic

import (
	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/sema"
)

// ResolveType implements spec.md §4.1's resolver: given a syntactic type
// carrying an identifier name, it looks the name up in the global scope and
// binds the class reference, reporting NoSuchClass on failure and
// VoidArrayElement when void appears under an array element.
func ResolveType(t *ast.Type, ctx *Context) sema.Type {
	if t.IsArray {
		elem := ResolveType(t.Elem, ctx)
		if elem.IsVoid() {
			ctx.Sink.Add(errVoidArrayElement(t.Pos))
			elem = sema.ErrorType
		}
		t.Sem = sema.Array(elem)
		return t.Sem
	}

	switch t.Name {
	case "var":
		t.Sem = sema.VarType
	case "int":
		t.Sem = sema.IntType
	case "bool":
		t.Sem = sema.BoolType
	case "string":
		t.Sem = sema.StrType
	case "void":
		t.Sem = sema.VoidType
	default:
		sym := ctx.Scopes.LookupClass(t.Name)
		if sym == nil {
			ctx.Sink.Add(errNoSuchClass(t.Pos, t.Name))
			t.Sem = sema.ErrorType
		} else {
			t.Sem = sema.Object(sym.Class)
		}
	}
	return t.Sem
}
