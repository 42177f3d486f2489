package semantic

import (
	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/diag"
)

// Context is the shared state threaded through every semantic pass: the
// scope stack, the diagnostic sink, and the transient per-visit state
// spec.md §9's design notes call for (loop-nesting counter, current
// method/class, and the id-used-for-ref flag). It is this repository's
// much smaller analogue of the teacher's PassContext, which carried ~25
// fields for DWScript features (records, interfaces, properties,
// exceptions, lambdas, ...) that have no Decaf equivalent.
type Context struct {
	Scopes *ScopeStack
	Sink   diag.Sink

	CurrentClass  *ast.ClassDef
	CurrentMethod *ast.MethodDef
	LoopDepth     int

	// IDUsedForRef is set by a parent Id/Call node immediately before
	// visiting its Owner expression, and cleared right after, per spec.md
	// §4.3.1/§9: a Class symbol resolves legally only when the identifier
	// is in this "reference position".
	IDUsedForRef bool
}

func NewContext() *Context {
	return &Context{Scopes: NewScopeStack()}
}
