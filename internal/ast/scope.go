package ast

import "github.com/decaflang/decaf/internal/token"

// ScopeKind is the nesting class of a Scope, governing duplicate-
// declaration and visibility rules per spec.md §3/§4.2. Scope lives in
// this package, not semantic, because ClassDef/MethodDef/Block each embed
// a *Scope field directly: putting Scope in the pass-logic package would
// make ast import semantic for a field type while semantic already
// imports ast for the nodes a Scope anchors to.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeClass
	ScopeParameter
	ScopeLocal
)

// SymbolKind discriminates a Symbol's payload.
type SymbolKind int

const (
	SymClass SymbolKind = iota
	SymMethod
	SymVar
)

// Symbol is one declared name: a class, a method, or a variable. It
// carries an anchor to its defining AST node, from which location, name,
// type, and flags are read, per spec.md §3.
type Symbol struct {
	Kind   SymbolKind
	Class  *ClassDef
	Method *MethodDef
	Var    *VarDef
}

func NewClassSymbol(c *ClassDef) *Symbol   { return &Symbol{Kind: SymClass, Class: c} }
func NewMethodSymbol(m *MethodDef) *Symbol { return &Symbol{Kind: SymMethod, Method: m} }
func NewVarSymbol(v *VarDef) *Symbol       { return &Symbol{Kind: SymVar, Var: v} }

func (s *Symbol) IsClass() bool  { return s.Kind == SymClass }
func (s *Symbol) IsMethod() bool { return s.Kind == SymMethod }
func (s *Symbol) IsVar() bool    { return s.Kind == SymVar }

func (s *Symbol) Name() string {
	switch s.Kind {
	case SymClass:
		return s.Class.Name
	case SymMethod:
		return s.Method.Name
	default:
		return s.Var.Name
	}
}

func (s *Symbol) Pos() token.Position {
	switch s.Kind {
	case SymClass:
		return s.Class.Pos
	case SymMethod:
		return s.Method.Pos
	default:
		return s.Var.Pos
	}
}

// Scope is one lexical scope: a name→Symbol map plus the node that owns it.
// Scopes are owned by their anchoring AST node, so their lifetime equals
// that node's, per spec.md §3.
type Scope struct {
	Kind    ScopeKind
	Symbols map[string]*Symbol

	Class  *ClassDef  // set when Kind == ScopeClass
	Method *MethodDef // set when Kind == ScopeParameter
	Block  *Block     // set when Kind == ScopeLocal
}

func newScope(kind ScopeKind) *Scope {
	return &Scope{Kind: kind, Symbols: make(map[string]*Symbol)}
}

func NewGlobalScope() *Scope { return newScope(ScopeGlobal) }

func NewClassScope(c *ClassDef) *Scope {
	s := newScope(ScopeClass)
	s.Class = c
	return s
}

func NewParameterScope(m *MethodDef) *Scope {
	s := newScope(ScopeParameter)
	s.Method = m
	return s
}

func NewLocalScope(b *Block) *Scope {
	s := newScope(ScopeLocal)
	s.Block = b
	return s
}
