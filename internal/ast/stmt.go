package ast

import "github.com/decaflang/decaf/internal/token"

// Stmt is the closed sum type of Decaf statements.
type Stmt interface {
	stmtNode()
	Position() token.Position
}

type stmtBase struct {
	Pos token.Position
}

func (s stmtBase) Position() token.Position { return s.Pos }

// Simple is a statement that may also appear as a for-loop init/step
// clause: a variable declaration, an assignment, or a call used as a
// statement.
type Simple interface {
	Stmt
	simpleNode()
}

type VarDeclStmt struct {
	stmtBase
	Def *VarDef
	// Init may be nil (default-initialized) or an initializer expression.
	Init Expr
}

func (*VarDeclStmt) stmtNode()   {}
func (*VarDeclStmt) simpleNode() {}

type AssignStmt struct {
	stmtBase
	Target Expr // Id or Indexed
	Value  Expr
}

func (*AssignStmt) stmtNode()   {}
func (*AssignStmt) simpleNode() {}

// CallStmt is a call expression used as a statement.
type CallStmt struct {
	stmtBase
	Call *Call
}

func (*CallStmt) stmtNode()   {}
func (*CallStmt) simpleNode() {}

type IfStmt struct {
	stmtBase
	Cond    Expr
	OnTrue  *Block
	OnFalse *Block // nil when there is no else
}

func (*IfStmt) stmtNode() {}

type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *Block
}

func (*WhileStmt) stmtNode() {}

// ForStmt wraps its own Local scope around both Init and Body, per spec.md
// §4.2 step 3's For/If distinction.
type ForStmt struct {
	stmtBase
	Init Simple // may be nil
	Cond Expr   // may be nil
	Step Simple // may be nil
	Body *Block
}

func (*ForStmt) stmtNode() {}

// ForeachStmt iterates Array binding Def inside Body's scope, with an
// optional `while` guard clause.
type ForeachStmt struct {
	stmtBase
	Def   *VarDef
	Array Expr
	Cond  Expr // optional while-clause, nil if absent
	Body  *Block
}

func (*ForeachStmt) stmtNode() {}

// GuardedArm is one `cond :: block` arm of a GuardedStmt.
type GuardedArm struct {
	Cond  Expr
	Block *Block
}

// GuardedStmt is Dijkstra-style: the first arm whose guard is true runs;
// if none is true, the statement is a no-op.
type GuardedStmt struct {
	stmtBase
	Arms []GuardedArm
}

func (*GuardedStmt) stmtNode() {}

type BreakStmt struct{ stmtBase }

func (*BreakStmt) stmtNode() {}

type ReturnStmt struct {
	stmtBase
	Value Expr // nil for a bare `return;`
}

func (*ReturnStmt) stmtNode() {}

type PrintStmt struct {
	stmtBase
	Args []Expr
}

func (*PrintStmt) stmtNode() {}

// SCopyStmt is `scopy dst = src`.
type SCopyStmt struct {
	stmtBase
	DstName string
	Src     Expr

	// DstSymbol is the resolved destination Var symbol (spec.md §3 "On
	// SCopy: resolved destination Var symbol").
	DstSymbol interface{}
}

func (*SCopyStmt) stmtNode() {}

type BlockStmt struct {
	stmtBase
	Block *Block
}

func (*BlockStmt) stmtNode() {}

func NewBlock(pos token.Position) *Block {
	return &Block{Pos: pos}
}

func (b *Block) Position() token.Position { return b.Pos }

func withPos(pos token.Position) stmtBase { return stmtBase{Pos: pos} }

func NewVarDeclStmt(pos token.Position, def *VarDef, init Expr) *VarDeclStmt {
	return &VarDeclStmt{stmtBase: withPos(pos), Def: def, Init: init}
}

func NewAssignStmt(pos token.Position, target, value Expr) *AssignStmt {
	return &AssignStmt{stmtBase: withPos(pos), Target: target, Value: value}
}

func NewCallStmt(pos token.Position, call *Call) *CallStmt {
	return &CallStmt{stmtBase: withPos(pos), Call: call}
}

func NewIfStmt(pos token.Position, cond Expr, onTrue, onFalse *Block) *IfStmt {
	return &IfStmt{stmtBase: withPos(pos), Cond: cond, OnTrue: onTrue, OnFalse: onFalse}
}

func NewWhileStmt(pos token.Position, cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{stmtBase: withPos(pos), Cond: cond, Body: body}
}

func NewForStmt(pos token.Position, init Simple, cond Expr, step Simple, body *Block) *ForStmt {
	return &ForStmt{stmtBase: withPos(pos), Init: init, Cond: cond, Step: step, Body: body}
}

func NewForeachStmt(pos token.Position, def *VarDef, arr, cond Expr, body *Block) *ForeachStmt {
	return &ForeachStmt{stmtBase: withPos(pos), Def: def, Array: arr, Cond: cond, Body: body}
}

func NewGuardedStmt(pos token.Position, arms []GuardedArm) *GuardedStmt {
	return &GuardedStmt{stmtBase: withPos(pos), Arms: arms}
}

func NewBreakStmt(pos token.Position) *BreakStmt { return &BreakStmt{stmtBase: withPos(pos)} }

func NewReturnStmt(pos token.Position, value Expr) *ReturnStmt {
	return &ReturnStmt{stmtBase: withPos(pos), Value: value}
}

func NewPrintStmt(pos token.Position, args []Expr) *PrintStmt {
	return &PrintStmt{stmtBase: withPos(pos), Args: args}
}

func NewSCopyStmt(pos token.Position, dstName string, src Expr) *SCopyStmt {
	return &SCopyStmt{stmtBase: withPos(pos), DstName: dstName, Src: src}
}

func NewBlockStmt(pos token.Position, block *Block) *BlockStmt {
	return &BlockStmt{stmtBase: withPos(pos), Block: block}
}
