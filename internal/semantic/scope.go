package semantic

import (
	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/token"
)

// Scope and Symbol are defined in package ast (see ast/scope.go's doc
// comment for why); these aliases let the rest of this package refer to
// them unqualified, matching the teacher's convention of keeping a pass's
// own file free of a second package-qualifier for its core data types.
type (
	ScopeKind  = ast.ScopeKind
	SymbolKind = ast.SymbolKind
	Symbol     = ast.Symbol
	Scope      = ast.Scope
)

const (
	ScopeGlobal    = ast.ScopeGlobal
	ScopeClass     = ast.ScopeClass
	ScopeParameter = ast.ScopeParameter
	ScopeLocal     = ast.ScopeLocal

	SymClass  = ast.SymClass
	SymMethod = ast.SymMethod
	SymVar    = ast.SymVar
)

var (
	NewClassScope     = ast.NewClassScope
	NewParameterScope = ast.NewParameterScope
	NewLocalScope     = ast.NewLocalScope

	ClassSymbol  = ast.NewClassSymbol
	MethodSymbol = ast.NewMethodSymbol
	VarSymbol    = ast.NewVarSymbol
)

// ScopeStack is the global scope plus the chain of currently open scopes,
// per spec.md §3. Opening a Class scope pushes its whole parent chain;
// closing one pops the entire inherited prefix in one step.
type ScopeStack struct {
	Global *Scope
	open   []*Scope
}

func NewScopeStack() *ScopeStack {
	g := ast.NewGlobalScope()
	return &ScopeStack{Global: g, open: []*Scope{g}}
}

// Open pushes scope onto the stack. If scope is a Class scope with a
// parent, the parent's scope (recursively, its own parent first) is pushed
// first so inherited members are visible while scope is open.
func (ss *ScopeStack) Open(scope *Scope) {
	if scope.Kind == ScopeClass && scope.Class.ParentRef != nil {
		ss.Open(scope.Class.ParentRef.Scope)
	}
	ss.open = append(ss.open, scope)
}

// Close pops the scope most recently opened with Open. If it was a Class
// scope, the whole inherited prefix that Open pushed is popped too, in a
// single step, leaving only the global scope.
func (ss *ScopeStack) Close() {
	top := ss.open[len(ss.open)-1]
	ss.open = ss.open[:len(ss.open)-1]
	if top.Kind == ScopeClass {
		ss.open = ss.open[:1]
	}
}

// Current returns the innermost open scope (always valid; global is the
// floor of the stack).
func (ss *ScopeStack) Current() *Scope {
	return ss.open[len(ss.open)-1]
}

// Declare adds sym to the current scope under its own name.
func (ss *ScopeStack) Declare(sym *Symbol) {
	ss.Current().Symbols[sym.Name()] = sym
}

// Lookup searches for name. If recursive, every currently open scope (and
// the global scope) is searched, innermost first; otherwise only the
// current scope is searched.
func (ss *ScopeStack) Lookup(name string, recursive bool) (*Symbol, *Scope) {
	if !recursive {
		if sym, ok := ss.Current().Symbols[name]; ok {
			return sym, ss.Current()
		}
		return nil, nil
	}
	for i := len(ss.open) - 1; i >= 0; i-- {
		if sym, ok := ss.open[i].Symbols[name]; ok {
			return sym, ss.open[i]
		}
	}
	return nil, nil
}

// LookupBefore is Lookup(name, true) filtered by spec.md §4.3.1's
// use-before-declaration rule: a symbol in a Local scope is skipped unless
// its declaration location is strictly before pos. Class and Parameter
// scope symbols are never filtered.
func (ss *ScopeStack) LookupBefore(name string, pos token.Position) (*Symbol, *Scope) {
	for i := len(ss.open) - 1; i >= 0; i-- {
		sc := ss.open[i]
		sym, ok := sc.Symbols[name]
		if !ok {
			continue
		}
		if sc.Kind == ScopeLocal && !before(sym.Pos(), pos) {
			continue
		}
		return sym, sc
	}
	return nil, nil
}

func before(a, b token.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// LookupClass looks up name as a Class symbol in the global scope only;
// classes are declared exclusively there.
func (ss *ScopeStack) LookupClass(name string) *Symbol {
	if sym, ok := ss.Global.Symbols[name]; ok && sym.IsClass() {
		return sym
	}
	return nil
}
