package ast

import (
	"github.com/decaflang/decaf/internal/sema"
	"github.com/decaflang/decaf/internal/token"
)

// Expr is the closed sum type of Decaf expressions. Every concrete node
// embeds ExprBase, which the type checker and TAC lowering read and write.
type Expr interface {
	exprNode()
	Position() token.Position
	Base() *ExprBase
}

// ExprBase holds the fields every expression accumulates across passes:
// its resolved type (spec.md §3 "On Expr: type") and its virtual register
// once lowered.
type ExprBase struct {
	Pos  token.Position
	Type sema.Type
	Reg  int
}

func (e *ExprBase) Position() token.Position { return e.Pos }
func (e *ExprBase) Base() *ExprBase          { return e }

func newBase(pos token.Position) ExprBase {
	return ExprBase{Pos: pos, Type: sema.ErrorType, Reg: -1}
}

// IntLit is an integer literal.
type IntLit struct {
	ExprBase
	Value int32
}

func NewIntLit(pos token.Position, v int32) *IntLit { return &IntLit{ExprBase: newBase(pos), Value: v} }

// BoolLit is a boolean literal.
type BoolLit struct {
	ExprBase
	Value bool
}

func NewBoolLit(pos token.Position, v bool) *BoolLit { return &BoolLit{ExprBase: newBase(pos), Value: v} }

// StringLit is a string literal, already unescaped by the lexer.
type StringLit struct {
	ExprBase
	Value string
}

func NewStringLit(pos token.Position, v string) *StringLit {
	return &StringLit{ExprBase: newBase(pos), Value: v}
}

// NullLit is the null literal.
type NullLit struct{ ExprBase }

func NewNullLit(pos token.Position) *NullLit { return &NullLit{ExprBase: newBase(pos)} }

// ThisExpr is `this`.
type ThisExpr struct{ ExprBase }

func NewThisExpr(pos token.Position) *ThisExpr { return &ThisExpr{ExprBase: newBase(pos)} }

// Id is a bare or qualified identifier reference: `name` or `owner.name`.
type Id struct {
	ExprBase
	Owner Expr // nil for a bare identifier
	Name  string

	// Augmentation fields populated by the type checker.
	ForAssign  bool // set by a parent Assign before visiting this as its lvalue
	IsRefOwner bool // not set by any pass; the type checker tracks this in Context.IDUsedForRef
	Symbol     interface{}
}

func NewId(pos token.Position, owner Expr, name string) *Id {
	return &Id{ExprBase: newBase(pos), Owner: owner, Name: name}
}

// Indexed is `arr[idx]`.
type Indexed struct {
	ExprBase
	Array Expr
	Index Expr

	ForAssign bool
}

func NewIndexed(pos token.Position, arr, idx Expr) *Indexed {
	return &Indexed{ExprBase: newBase(pos), Array: arr, Index: idx}
}

// Call is `owner.name(args)` or `name(args)`.
type Call struct {
	ExprBase
	Owner Expr // nil when unqualified
	Name  string
	Args  []Expr

	// Augmentation fields.
	IsArrLen bool // true when this is Array.length
	Symbol   interface{}
}

func NewCall(pos token.Position, owner Expr, name string, args []Expr) *Call {
	return &Call{ExprBase: newBase(pos), Owner: owner, Name: name, Args: args}
}

// NewClass is `new ClassName()`.
type NewClass struct {
	ExprBase
	ClassName string
}

func NewNewClass(pos token.Position, name string) *NewClass {
	return &NewClass{ExprBase: newBase(pos), ClassName: name}
}

// NewArray is `new T[len]`.
type NewArray struct {
	ExprBase
	ElemType *Type
	Len      Expr
}

func NewNewArray(pos token.Position, elem *Type, length Expr) *NewArray {
	return &NewArray{ExprBase: newBase(pos), ElemType: elem, Len: length}
}

// TypeTest is `expr instanceof ClassName`.
type TypeTest struct {
	ExprBase
	Operand   Expr
	ClassName string
}

func NewTypeTest(pos token.Position, operand Expr, className string) *TypeTest {
	return &TypeTest{ExprBase: newBase(pos), Operand: operand, ClassName: className}
}

// TypeCast is `(ClassName) expr`.
type TypeCast struct {
	ExprBase
	Operand   Expr
	ClassName string
}

func NewTypeCast(pos token.Position, operand Expr, className string) *TypeCast {
	return &TypeCast{ExprBase: newBase(pos), Operand: operand, ClassName: className}
}

// UnaryOp enumerates Decaf's two unary operators.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

type Unary struct {
	ExprBase
	Op      UnaryOp
	Operand Expr
}

func NewUnary(pos token.Position, op UnaryOp, operand Expr) *Unary {
	return &Unary{ExprBase: newBase(pos), Op: op, Operand: operand}
}

// BinaryOp enumerates Decaf's binary operators, including the array-only
// repeat (%%) and concat (++) operators.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinLt
	BinLe
	BinGt
	BinGe
	BinEq
	BinNe
	BinAnd
	BinOr
	BinRepeat
	BinConcat
)

type Binary struct {
	ExprBase
	Op          BinaryOp
	Left, Right Expr
}

func NewBinary(pos token.Position, op BinaryOp, l, r Expr) *Binary {
	return &Binary{ExprBase: newBase(pos), Op: op, Left: l, Right: r}
}

// Default is `default[arr, idx, dft]`.
type Default struct {
	ExprBase
	Array   Expr
	Index   Expr
	Fallback Expr
}

func NewDefault(pos token.Position, arr, idx, dft Expr) *Default {
	return &Default{ExprBase: newBase(pos), Array: arr, Index: idx, Fallback: dft}
}

// Range is `a[lo..ub]`.
type Range struct {
	ExprBase
	Array  Expr
	Lo, Ub Expr
}

func NewRange(pos token.Position, arr, lo, ub Expr) *Range {
	return &Range{ExprBase: newBase(pos), Array: arr, Lo: lo, Ub: ub}
}

// Comprehension is `[expr for binder in array if cond]`; Cond may be nil.
type Comprehension struct {
	ExprBase
	Binder  string
	BinderT *Type
	Array   Expr
	Cond    Expr
	Body    Expr

	// BinderSymbol is the synthetic Var symbol the type checker declares
	// for Binder, so Cond/Body's Id references resolve to it and TAC
	// lowering can read its register back out directly.
	BinderSymbol interface{}
}

func NewComprehension(pos token.Position, binder string, arr, cond, body Expr) *Comprehension {
	return &Comprehension{ExprBase: newBase(pos), Binder: binder, Array: arr, Cond: cond, Body: body}
}

func (*IntLit) exprNode()        {}
func (*BoolLit) exprNode()       {}
func (*StringLit) exprNode()     {}
func (*NullLit) exprNode()       {}
func (*ThisExpr) exprNode()      {}
func (*Id) exprNode()            {}
func (*Indexed) exprNode()       {}
func (*Call) exprNode()          {}
func (*NewClass) exprNode()      {}
func (*NewArray) exprNode()      {}
func (*TypeTest) exprNode()      {}
func (*TypeCast) exprNode()      {}
func (*Unary) exprNode()         {}
func (*Binary) exprNode()        {}
func (*Default) exprNode()       {}
func (*Range) exprNode()         {}
func (*Comprehension) exprNode() {}
