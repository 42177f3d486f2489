// Package ast defines the Decaf abstract syntax tree.
//
// Nodes are plain structs linked by pointer (the arena is simply Go's heap;
// the garbage collector makes the raw back-pointers spec.md's design notes
// call for safe, unlike the pointer arena the reference implementation
// needed). Semantic passes mutate nodes in place to add the augmentation
// fields spec.md §3 names (Scope, ClassRef, Type, Reg, ...); parsing never
// populates them.
package ast

import (
	"github.com/decaflang/decaf/internal/sema"
	"github.com/decaflang/decaf/internal/token"
)

// Program is the root of a Decaf compilation unit.
type Program struct {
	Classes []*ClassDef

	// Main is set by the symbol builder to the class named Main, if any.
	Main *ClassDef

	// Source and FileName are used only by diagnostic formatting and the
	// AST/scope dumpers; no semantic pass reads them.
	Source   string
	FileName string

	Scope *Scope
}

// Type is a syntactic type as written by the programmer (e.g. "int",
// "Foo", "int[]"). Sem is filled in by the sema resolver.
type Type struct {
	Pos     token.Position
	Name    string // "" for array types
	IsArray bool
	Elem    *Type // non-nil when IsArray

	Sem sema.Type
}

// ClassDef is a class declaration.
type ClassDef struct {
	Pos        token.Position
	Name       string
	Sealed     bool
	ParentName string // "" when no extends clause

	Fields []Field

	// Augmentation fields, populated by the symbol builder, except that
	// FieldCount (-1 until then) and VTable are filled by the TAC layout stage.
	ParentRef *ClassDef
	Order     int // -1 = unvisited
	Checked   bool
	Scope     *Scope
	FieldCount int
	VTable    *VTable
}

// VTable is a class's virtual dispatch table, populated by the TAC layout
// stage: Slots[i] is the qualified method name bound to slot i, inherited
// from the parent and overwritten in place when a child overrides it.
type VTable struct {
	Slots []string
}

// Field is either a MethodDef or a VarDef at class scope.
type Field interface {
	fieldNode()
	Position() token.Position
}

// VarDef is a variable declaration: a class field, a parameter, a local, or
// a foreach binder, depending on where it appears.
type VarDef struct {
	Pos  token.Position
	Name string
	Type *Type

	// Augmentation fields.
	Scope       *Scope
	Reg         int // virtual register once lowered, -1 until then
	FieldOffset int // -1 if not a class field
}

func (v *VarDef) fieldNode()               {}
func (v *VarDef) Position() token.Position { return v.Pos }

// MethodDef is a method declaration.
type MethodDef struct {
	Pos    token.Position
	Name   string
	Static bool
	RetT   *Type
	Params []*VarDef
	Body   *Block

	// Augmentation fields.
	Scope        *Scope
	OwnerClass   *ClassDef
	VTableOffset int // -1 until laid out
}

func (m *MethodDef) fieldNode()               {}
func (m *MethodDef) Position() token.Position { return m.Pos }

// ClassName and ParentClass satisfy sema.ClassRef, letting a *ClassDef be
// used directly as the class reference carried by sema.Type values; sema
// never imports this package, so the two form no import cycle.
func (c *ClassDef) ClassName() string { return c.Name }

func (c *ClassDef) ParentClass() sema.ClassRef {
	if c.ParentRef == nil {
		return nil
	}
	return c.ParentRef
}

// Block is a brace-delimited statement list, and owns a Local scope.
type Block struct {
	Pos   token.Position
	Stmts []Stmt

	Scope      *Scope
	IsMethodBody bool
}
