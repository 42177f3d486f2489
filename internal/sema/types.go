// Package sema implements Decaf's semantic type model: the tagged type
// values, assignability, equality, and classifiers spec.md §4.1 describes.
//
// This package is deliberately AST-agnostic: it never imports internal/ast.
// A class type carries a ClassRef interface instead of a concrete
// *ast.ClassDef pointer, which *ast.ClassDef satisfies. internal/ast imports
// this package for its nodes' sema.Type fields, so the dependency runs one
// way only — breaking what would otherwise be an import cycle between "a
// class field has a semantic type" and "a semantic type names a class".
package sema

// ClassRef is the minimal view of a class declaration the type system
// needs: its name, for diagnostics, and its parent, for the subclass walk
// assignability requires.
type ClassRef interface {
	ClassName() string
	ParentClass() ClassRef
}

// Basic enumerates Decaf's primitive basic types.
type Basic int

const (
	IntBasic Basic = iota
	BoolBasic
	StringBasic
	VoidBasic
)

func (b Basic) String() string {
	switch b {
	case IntBasic:
		return "int"
	case BoolBasic:
		return "bool"
	case StringBasic:
		return "string"
	case VoidBasic:
		return "void"
	default:
		return "?basic"
	}
}

// Kind discriminates the tag of a Type value.
type Kind int

const (
	KindError Kind = iota
	KindVar
	KindNull
	KindBasic
	KindClass  // the type of a class itself (static member access)
	KindObject // an instance type
	KindArray
	KindMethod
)

// Type is Decaf's semantic type: a tagged value matching spec.md §3's
// SemanticType taxonomy. Not every field is meaningful for every Kind; see
// the constructors below, which are the only supported way to build one.
type Type struct {
	Kind  Kind
	Basic Basic
	Class ClassRef // set for KindClass and KindObject
	Elem  *Type    // set for KindArray
}

var (
	ErrorType = Type{Kind: KindError}
	VarType   = Type{Kind: KindVar}
	NullType  = Type{Kind: KindNull}
	IntType   = Type{Kind: KindBasic, Basic: IntBasic}
	BoolType  = Type{Kind: KindBasic, Basic: BoolBasic}
	StrType   = Type{Kind: KindBasic, Basic: StringBasic}
	VoidType  = Type{Kind: KindBasic, Basic: VoidBasic}
	MethodType = Type{Kind: KindMethod}
)

// Object returns the instance type of class c.
func Object(c ClassRef) Type { return Type{Kind: KindObject, Class: c} }

// ClassType returns the "type of the class itself" value used for static
// member reference, distinct from the instance type per spec.md §3.
func ClassType(c ClassRef) Type { return Type{Kind: KindClass, Class: c} }

// Array returns the array-of-T type. Callers must not pass a void T; the
// type resolver (semantic.ResolveType) is responsible for rejecting that at the syntax
// boundary (VoidArrayElement).
func Array(elem Type) Type { return Type{Kind: KindArray, Elem: &elem} }

func (t Type) IsError() bool  { return t.Kind == KindError }
func (t Type) IsVoid() bool   { return t.Kind == KindBasic && t.Basic == VoidBasic }
func (t Type) IsObject() bool { return t.Kind == KindObject }
func (t Type) IsClass() bool  { return t.Kind == KindClass }
func (t Type) IsArray() bool  { return t.Kind == KindArray }
func (t Type) IsInt() bool    { return t.Kind == KindBasic && t.Basic == IntBasic }
func (t Type) IsBool() bool   { return t.Kind == KindBasic && t.Basic == BoolBasic }
func (t Type) IsString() bool { return t.Kind == KindBasic && t.Basic == StringBasic }

func (t Type) String() string {
	switch t.Kind {
	case KindError:
		return "<error>"
	case KindVar:
		return "var"
	case KindNull:
		return "null"
	case KindBasic:
		return t.Basic.String()
	case KindClass:
		return "class " + t.Class.ClassName()
	case KindObject:
		return t.Class.ClassName()
	case KindArray:
		return t.Elem.String() + "[]"
	case KindMethod:
		return "<method>"
	default:
		return "?type"
	}
}

// Equals compares two types for semantic equality, per spec.md §4.1
// ("ignoring Error/Null specials" is the caller's responsibility when that
// distinction matters; Equals itself is a plain structural comparison).
func Equals(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBasic:
		return a.Basic == b.Basic
	case KindObject, KindClass:
		return a.Class == b.Class
	case KindArray:
		return Equals(*a.Elem, *b.Elem)
	default:
		return true
	}
}

// isSubclass reports whether c is b or transitively extends b.
func isSubclass(c, b ClassRef) bool {
	for cur := c; cur != nil; cur = cur.ParentClass() {
		if cur == b {
			return true
		}
	}
	return false
}

// Assignable implements spec.md §4.1's T ≤ U relation: reflexive on
// equality; Null ≤ Object(_); Object(A) ≤ Object(B) iff A is B or
// transitively extends B; Array(T) ≤ Array(U) iff T = U (invariant);
// Error is bi-assignable to anything.
func Assignable(t, u Type) bool {
	if t.IsError() || u.IsError() {
		return true
	}
	if Equals(t, u) {
		return true
	}
	if t.Kind == KindNull && u.Kind == KindObject {
		return true
	}
	if t.Kind == KindObject && u.Kind == KindObject {
		return isSubclass(t.Class, u.Class)
	}
	return false
}
