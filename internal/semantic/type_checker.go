package semantic

import (
	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/sema"
)

// TypeChecker is the second pipeline stage, grounded on
// original_source/src/type_checker.rs: it resolves every identifier and
// call per spec.md §4.3.1/§4.3.2, assigns every Expr a sema.Type, and
// validates statement-level rules (control flow, print, return, scopy).
// It walks the same scopes the symbol builder built, reopening them by
// the Scope pointer each node already carries; the one scope it allocates
// itself is a comprehension's binder scope, which the symbol builder does
// not create.
type TypeChecker struct{}

func (TypeChecker) Name() string { return "type-checker" }

func (TypeChecker) Run(program *ast.Program, ctx *Context) error {
	for _, c := range program.Classes {
		classCheck(c, ctx)
	}
	return nil
}

func classCheck(c *ast.ClassDef, ctx *Context) {
	if c.Scope == nil {
		return
	}
	ctx.Scopes.Open(c.Scope)
	prevClass := ctx.CurrentClass
	ctx.CurrentClass = c
	for _, f := range c.Fields {
		if m, ok := f.(*ast.MethodDef); ok {
			methodCheck(m, ctx)
		}
	}
	ctx.CurrentClass = prevClass
	ctx.Scopes.Close()
}

func methodCheck(m *ast.MethodDef, ctx *Context) {
	ctx.Scopes.Open(m.Scope)
	prevMethod := ctx.CurrentMethod
	ctx.CurrentMethod = m
	blockCheck(m.Body, ctx)
	ctx.CurrentMethod = prevMethod
	ctx.Scopes.Close()
}

func blockCheck(b *ast.Block, ctx *Context) {
	ctx.Scopes.Open(b.Scope)
	for _, s := range b.Stmts {
		stmtCheck(s, ctx)
	}
	ctx.Scopes.Close()
}

func stmtCheck(s ast.Stmt, ctx *Context) {
	switch st := s.(type) {
	case *ast.VarDeclStmt:
		varDeclCheck(st, ctx)

	case *ast.AssignStmt:
		assignCheck(st, ctx)

	case *ast.CallStmt:
		callCheck(st.Call, ctx)

	case *ast.IfStmt:
		condCheck(st.Cond, ctx)
		blockCheck(st.OnTrue, ctx)
		if st.OnFalse != nil {
			blockCheck(st.OnFalse, ctx)
		}

	case *ast.WhileStmt:
		condCheck(st.Cond, ctx)
		ctx.LoopDepth++
		blockCheck(st.Body, ctx)
		ctx.LoopDepth--

	case *ast.ForStmt:
		ctx.Scopes.Open(st.Body.Scope)
		if st.Init != nil {
			stmtCheck(st.Init, ctx)
		}
		if st.Cond != nil {
			condCheck(st.Cond, ctx)
		}
		ctx.LoopDepth++
		for _, inner := range st.Body.Stmts {
			stmtCheck(inner, ctx)
		}
		ctx.LoopDepth--
		if st.Step != nil {
			stmtCheck(st.Step, ctx)
		}
		ctx.Scopes.Close()

	case *ast.ForeachStmt:
		foreachCheck(st, ctx)

	case *ast.GuardedStmt:
		for _, arm := range st.Arms {
			condCheck(arm.Cond, ctx)
			blockCheck(arm.Block, ctx)
		}

	case *ast.BreakStmt:
		if ctx.LoopDepth == 0 {
			ctx.Sink.Add(errBreakOutOfLoop(st.Pos))
		}

	case *ast.ReturnStmt:
		returnCheck(st, ctx)

	case *ast.PrintStmt:
		for i, a := range st.Args {
			t := exprCheck(a, ctx)
			if !t.IsInt() && !t.IsBool() && !t.IsString() && !t.IsError() {
				ctx.Sink.Add(errBadPrintArg(a.Position(), i+1, t.String()))
			}
		}

	case *ast.SCopyStmt:
		sCopyCheck(st, ctx)

	case *ast.BlockStmt:
		blockCheck(st.Block, ctx)
	}
}

func condCheck(cond ast.Expr, ctx *Context) {
	t := exprCheck(cond, ctx)
	if !t.IsBool() && !t.IsError() {
		ctx.Sink.Add(errTestNotBool(cond.Position()))
	}
}

func varDeclCheck(st *ast.VarDeclStmt, ctx *Context) {
	def := st.Def
	if def.Type.Sem.Kind == sema.KindVar {
		if st.Init == nil {
			def.Type.Sem = sema.ErrorType
			return
		}
		def.Type.Sem = exprCheck(st.Init, ctx)
		return
	}
	if st.Init != nil {
		t := exprCheck(st.Init, ctx)
		if !t.IsError() && !def.Type.Sem.IsError() && !sema.Assignable(t, def.Type.Sem) {
			ctx.Sink.Add(errAssignMismatch(st.Pos, t.String(), def.Type.Sem.String()))
		}
	}
}

func assignCheck(st *ast.AssignStmt, ctx *Context) {
	targetT := lvalueCheck(st.Target, ctx)
	valT := exprCheck(st.Value, ctx)

	if id, ok := st.Target.(*ast.Id); ok {
		if sym, ok2 := id.Symbol.(*Symbol); ok2 && sym.IsMethod() {
			ctx.Sink.Add(errNotLValue(st.Pos, "="))
			return
		}
	}
	if !targetT.IsError() && !valT.IsError() && !sema.Assignable(valT, targetT) {
		ctx.Sink.Add(errAssignMismatch(st.Pos, valT.String(), targetT.String()))
	}
}

// lvalueCheck marks the ForAssign flag spec.md §3 augments Id/Indexed with
// before visiting it as an ordinary expression.
func lvalueCheck(target ast.Expr, ctx *Context) sema.Type {
	switch t := target.(type) {
	case *ast.Id:
		t.ForAssign = true
	case *ast.Indexed:
		t.ForAssign = true
	}
	return exprCheck(target, ctx)
}

func foreachCheck(st *ast.ForeachStmt, ctx *Context) {
	ctx.Scopes.Open(st.Body.Scope)

	arrT := exprCheck(st.Array, ctx)
	if arrT.IsArray() {
		elem := *arrT.Elem
		if st.Def.Type.Sem.Kind == sema.KindVar {
			st.Def.Type.Sem = elem
		} else if !elem.IsError() && !st.Def.Type.Sem.IsError() && !sema.Assignable(elem, st.Def.Type.Sem) {
			ctx.Sink.Add(errForeachMismatch(st.Pos, elem.String(), st.Def.Type.Sem.String()))
		}
	} else if !arrT.IsError() {
		ctx.Sink.Add(errBadArrayOp(st.Array.Position()))
		st.Def.Type.Sem = sema.ErrorType
	}

	if st.Cond != nil {
		condCheck(st.Cond, ctx)
	}

	ctx.LoopDepth++
	for _, inner := range st.Body.Stmts {
		stmtCheck(inner, ctx)
	}
	ctx.LoopDepth--

	ctx.Scopes.Close()
}

func returnCheck(st *ast.ReturnStmt, ctx *Context) {
	t := sema.VoidType
	if st.Value != nil {
		t = exprCheck(st.Value, ctx)
	}
	expect := ctx.CurrentMethod.RetT.Sem
	if !t.IsError() && !expect.IsError() && !sema.Assignable(t, expect) {
		ctx.Sink.Add(errWrongReturnType(st.Pos, t.String(), expect.String()))
	}
}

func sCopyCheck(st *ast.SCopyStmt, ctx *Context) {
	sym, _ := ctx.Scopes.LookupBefore(st.DstName, st.Pos)
	var dstT = sema.ErrorType
	if sym == nil || !sym.IsVar() {
		ctx.Sink.Add(errUndeclaredVar(st.Pos, st.DstName))
	} else {
		dstT = sym.Var.Type.Sem
		st.DstSymbol = sym.Var
		if !dstT.IsObject() && !dstT.IsError() {
			ctx.Sink.Add(errSCopyNotClass(st.Pos, "1", dstT.String()))
		}
	}

	srcT := exprCheck(st.Src, ctx)
	if !srcT.IsObject() && !srcT.IsError() {
		ctx.Sink.Add(errSCopyNotClass(st.Pos, "2", srcT.String()))
	}

	if dstT.IsObject() && srcT.IsObject() && !sema.Assignable(srcT, dstT) {
		ctx.Sink.Add(errSCopyMismatch(st.Pos, dstT.String(), srcT.String()))
	}
}

// exprCheck dispatches on the concrete Expr type, stores the resolved type
// on the node, and returns it.
func exprCheck(e ast.Expr, ctx *Context) sema.Type {
	t := exprCheckKind(e, ctx)
	e.Base().Type = t
	return t
}

func exprCheckKind(e ast.Expr, ctx *Context) sema.Type {
	switch node := e.(type) {
	case *ast.IntLit:
		return sema.IntType
	case *ast.BoolLit:
		return sema.BoolType
	case *ast.StringLit:
		return sema.StrType
	case *ast.NullLit:
		return sema.NullType
	case *ast.ThisExpr:
		if ctx.CurrentMethod != nil && ctx.CurrentMethod.Static {
			ctx.Sink.Add(errThisInStatic(node.Pos))
			return sema.ErrorType
		}
		return sema.Object(ctx.CurrentClass)
	case *ast.Id:
		return idCheck(node, ctx)
	case *ast.Indexed:
		return indexedCheck(node, ctx)
	case *ast.Call:
		return callCheck(node, ctx)
	case *ast.NewClass:
		sym := ctx.Scopes.LookupClass(node.ClassName)
		if sym == nil {
			ctx.Sink.Add(errNoSuchClass(node.Pos, node.ClassName))
			return sema.ErrorType
		}
		return sema.Object(sym.Class)
	case *ast.NewArray:
		elem := ResolveType(node.ElemType, ctx)
		lenT := exprCheck(node.Len, ctx)
		if !lenT.IsInt() && !lenT.IsError() {
			ctx.Sink.Add(errBadNewArrayLen(node.Len.Position()))
		}
		return sema.Array(elem)
	case *ast.TypeTest:
		return typeTestCheck(node, ctx)
	case *ast.TypeCast:
		return typeCastCheck(node, ctx)
	case *ast.Unary:
		return unaryCheck(node, ctx)
	case *ast.Binary:
		return binaryCheck(node, ctx)
	case *ast.Default:
		return defaultCheck(node, ctx)
	case *ast.Range:
		return rangeCheck(node, ctx)
	case *ast.Comprehension:
		return comprehensionCheck(node, ctx)
	default:
		return sema.ErrorType
	}
}

func indexedCheck(node *ast.Indexed, ctx *Context) sema.Type {
	arrT := exprCheck(node.Array, ctx)
	idxT := exprCheck(node.Index, ctx)
	if !idxT.IsInt() && !idxT.IsError() {
		ctx.Sink.Add(errArrayIndexNotInt(node.Index.Position()))
	}
	if arrT.IsArray() {
		return *arrT.Elem
	}
	if !arrT.IsError() {
		ctx.Sink.Add(errNotArray(node.Array.Position()))
	}
	return sema.ErrorType
}

func typeTestCheck(node *ast.TypeTest, ctx *Context) sema.Type {
	opT := exprCheck(node.Operand, ctx)
	if !opT.IsObject() && !opT.IsError() {
		ctx.Sink.Add(errNotObject(node.Operand.Position(), opT.String()))
	}
	if ctx.Scopes.LookupClass(node.ClassName) == nil {
		ctx.Sink.Add(errNoSuchClass(node.Pos, node.ClassName))
	}
	return sema.BoolType
}

func typeCastCheck(node *ast.TypeCast, ctx *Context) sema.Type {
	opT := exprCheck(node.Operand, ctx)
	if !opT.IsObject() && !opT.IsError() {
		ctx.Sink.Add(errNotObject(node.Operand.Position(), opT.String()))
	}
	sym := ctx.Scopes.LookupClass(node.ClassName)
	if sym == nil {
		ctx.Sink.Add(errNoSuchClass(node.Pos, node.ClassName))
		return sema.ErrorType
	}
	return sema.Object(sym.Class)
}

func unaryCheck(node *ast.Unary, ctx *Context) sema.Type {
	t := exprCheck(node.Operand, ctx)
	switch node.Op {
	case ast.UnaryNeg:
		if !t.IsInt() {
			if !t.IsError() {
				ctx.Sink.Add(errIncompatibleUnary(node.Pos, "-", t.String()))
			}
			return sema.ErrorType
		}
		return sema.IntType
	case ast.UnaryNot:
		if !t.IsBool() {
			if !t.IsError() {
				ctx.Sink.Add(errIncompatibleUnary(node.Pos, "!", t.String()))
			}
			return sema.ErrorType
		}
		return sema.BoolType
	}
	return sema.ErrorType
}

func binOpName(op ast.BinaryOp) string {
	switch op {
	case ast.BinAdd:
		return "+"
	case ast.BinSub:
		return "-"
	case ast.BinMul:
		return "*"
	case ast.BinDiv:
		return "/"
	case ast.BinMod:
		return "%"
	case ast.BinLt:
		return "<"
	case ast.BinLe:
		return "<="
	case ast.BinGt:
		return ">"
	case ast.BinGe:
		return ">="
	case ast.BinEq:
		return "=="
	case ast.BinNe:
		return "!="
	case ast.BinAnd:
		return "&&"
	case ast.BinOr:
		return "||"
	case ast.BinRepeat:
		return "%%"
	case ast.BinConcat:
		return "++"
	default:
		return "?"
	}
}

func binaryCheck(node *ast.Binary, ctx *Context) sema.Type {
	lT := exprCheck(node.Left, ctx)
	rT := exprCheck(node.Right, ctx)

	switch node.Op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod:
		if !lT.IsInt() || !rT.IsInt() {
			if !lT.IsError() && !rT.IsError() {
				ctx.Sink.Add(errIncompatibleBinary(node.Pos, lT.String(), binOpName(node.Op), rT.String()))
			}
			return sema.ErrorType
		}
		return sema.IntType

	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		if !lT.IsInt() || !rT.IsInt() {
			if !lT.IsError() && !rT.IsError() {
				ctx.Sink.Add(errIncompatibleBinary(node.Pos, lT.String(), binOpName(node.Op), rT.String()))
			}
			return sema.ErrorType
		}
		return sema.BoolType

	case ast.BinEq, ast.BinNe:
		if !sema.Assignable(lT, rT) && !sema.Assignable(rT, lT) {
			ctx.Sink.Add(errIncompatibleBinary(node.Pos, lT.String(), binOpName(node.Op), rT.String()))
		}
		return sema.BoolType

	case ast.BinAnd, ast.BinOr:
		if !lT.IsBool() || !rT.IsBool() {
			if !lT.IsError() && !rT.IsError() {
				ctx.Sink.Add(errIncompatibleBinary(node.Pos, lT.String(), binOpName(node.Op), rT.String()))
			}
			return sema.ErrorType
		}
		return sema.BoolType

	case ast.BinRepeat:
		if !rT.IsInt() && !rT.IsError() {
			ctx.Sink.Add(errArrayRepeatNotInt(node.Right.Position()))
		}
		return sema.Array(lT)

	case ast.BinConcat:
		if !lT.IsArray() || !rT.IsArray() {
			if !lT.IsError() && !rT.IsError() {
				ctx.Sink.Add(errBadArrayOp(node.Pos))
			}
			return sema.ErrorType
		}
		if !sema.Equals(lT, rT) {
			ctx.Sink.Add(errConcatMismatch(node.Pos, lT.String(), rT.String()))
			return sema.ErrorType
		}
		return lT
	}
	return sema.ErrorType
}

func defaultCheck(node *ast.Default, ctx *Context) sema.Type {
	arrT := exprCheck(node.Array, ctx)
	idxT := exprCheck(node.Index, ctx)
	dftT := exprCheck(node.Fallback, ctx)

	if !idxT.IsInt() && !idxT.IsError() {
		ctx.Sink.Add(errArrayIndexNotInt(node.Index.Position()))
	}
	if !arrT.IsArray() {
		if !arrT.IsError() {
			ctx.Sink.Add(errBadArrayOp(node.Array.Position()))
		}
		return sema.ErrorType
	}
	elem := *arrT.Elem
	if !dftT.IsError() && !elem.IsError() && !sema.Assignable(dftT, elem) {
		ctx.Sink.Add(errDefaultMismatch(node.Pos, elem.String(), dftT.String()))
	}
	return elem
}

func rangeCheck(node *ast.Range, ctx *Context) sema.Type {
	arrT := exprCheck(node.Array, ctx)
	loT := exprCheck(node.Lo, ctx)
	ubT := exprCheck(node.Ub, ctx)

	if !loT.IsInt() && !loT.IsError() {
		ctx.Sink.Add(errArrayIndexNotInt(node.Lo.Position()))
	}
	if !ubT.IsInt() && !ubT.IsError() {
		ctx.Sink.Add(errArrayIndexNotInt(node.Ub.Position()))
	}
	if !arrT.IsArray() {
		if !arrT.IsError() {
			ctx.Sink.Add(errBadArrayOp(node.Array.Position()))
		}
		return sema.ErrorType
	}
	return arrT
}

// comprehensionCheck declares Binder as a synthetic Var symbol in its own
// Local scope (not anchored to any Block, since a comprehension has no
// statement-level declaration), so Cond/Body's references to it resolve
// exactly like any other identifier and TAC lowering can read its register
// straight off BinderSymbol.
func comprehensionCheck(node *ast.Comprehension, ctx *Context) sema.Type {
	arrT := exprCheck(node.Array, ctx)
	binderT := sema.ErrorType
	if arrT.IsArray() {
		binderT = *arrT.Elem
	} else if !arrT.IsError() {
		ctx.Sink.Add(errBadArrayOp(node.Array.Position()))
	}
	node.BinderT = &ast.Type{Pos: node.Pos, Sem: binderT}

	binderVar := &ast.VarDef{
		Pos:         node.Pos,
		Name:        node.Binder,
		Type:        node.BinderT,
		Reg:         -1,
		FieldOffset: -1,
	}
	compScope := &ast.Scope{Kind: ast.ScopeLocal, Symbols: map[string]*ast.Symbol{
		node.Binder: ast.NewVarSymbol(binderVar),
	}}
	binderVar.Scope = compScope
	node.BinderSymbol = compScope.Symbols[node.Binder]

	ctx.Scopes.Open(compScope)
	if node.Cond != nil {
		condCheck(node.Cond, ctx)
	}
	bodyT := exprCheck(node.Body, ctx)
	ctx.Scopes.Close()

	return sema.Array(bodyT)
}

// idCheck implements spec.md §4.3.1's identifier-resolution algorithm.
func idCheck(id *ast.Id, ctx *Context) sema.Type {
	if id.Owner != nil {
		return qualifiedIdCheck(id, ctx)
	}

	sym, _ := ctx.Scopes.LookupBefore(id.Name, id.Pos)
	if sym == nil {
		ctx.Sink.Add(errUndeclaredVar(id.Pos, id.Name))
		return sema.ErrorType
	}
	id.Symbol = sym

	switch sym.Kind {
	case SymClass:
		if !ctx.IDUsedForRef {
			ctx.Sink.Add(errUndeclaredVar(id.Pos, id.Name))
			return sema.ErrorType
		}
		return sema.ClassType(sym.Class)

	case SymMethod:
		return sema.MethodType

	case SymVar:
		v := sym.Var
		if v.Scope != nil && v.Scope.Kind == ScopeClass {
			if ctx.CurrentMethod != nil && ctx.CurrentMethod.Static {
				ctx.Sink.Add(errRefInStatic(id.Pos, id.Name, ctx.CurrentMethod.Name))
				return sema.ErrorType
			}
		}
		return v.Type.Sem
	}
	return sema.ErrorType
}

func qualifiedIdCheck(id *ast.Id, ctx *Context) sema.Type {
	prevRef := ctx.IDUsedForRef
	ctx.IDUsedForRef = true
	ownerT := exprCheck(id.Owner, ctx)
	ctx.IDUsedForRef = prevRef

	if ownerT.IsError() {
		return sema.ErrorType
	}
	if !ownerT.IsObject() {
		ctx.Sink.Add(errBadFieldAccess(id.Pos, id.Name, ownerT.String()))
		return sema.ErrorType
	}

	class, _ := ownerT.Class.(*ast.ClassDef)
	sym := lookupInherited(class, id.Name)
	if sym == nil {
		ctx.Sink.Add(errNoSuchField(id.Pos, id.Name, ownerT.String()))
		return sema.ErrorType
	}
	id.Symbol = sym

	switch {
	case sym.IsVar():
		if !classExtends(ctx.CurrentClass, class) {
			ctx.Sink.Add(errPrivateFieldAccess(id.Pos, id.Name, ownerT.String()))
		}
		return sym.Var.Type.Sem
	case sym.IsMethod():
		return sema.MethodType
	}
	return sema.ErrorType
}

// callCheck implements spec.md §4.3.2's call-resolution algorithm, owner
// type classification, the built-in Array.length form, implicit/explicit
// this, static dispatch, and argument arity/type checking.
func callCheck(call *ast.Call, ctx *Context) sema.Type {
	var ownerT sema.Type
	hasOwner := call.Owner != nil
	if hasOwner {
		prevRef := ctx.IDUsedForRef
		ctx.IDUsedForRef = true
		ownerT = exprCheck(call.Owner, ctx)
		ctx.IDUsedForRef = prevRef
	}

	if call.Name == "length" && hasOwner {
		if ownerT.IsArray() {
			if len(call.Args) != 0 {
				ctx.Sink.Add(errLengthWithArgument(call.Pos, len(call.Args)))
			}
			call.IsArrLen = true
			return sema.IntType
		}
		if !ownerT.IsError() && !ownerT.IsObject() {
			ctx.Sink.Add(errBadLength(call.Pos))
			return sema.ErrorType
		}
	}

	var methodClass *ast.ClassDef
	ownerIsClassType := false
	if hasOwner {
		if ownerT.IsError() {
			return sema.ErrorType
		}
		switch {
		case ownerT.IsObject():
			methodClass, _ = ownerT.Class.(*ast.ClassDef)
		case ownerT.IsClass():
			methodClass, _ = ownerT.Class.(*ast.ClassDef)
			ownerIsClassType = true
		default:
			ctx.Sink.Add(errBadFieldAccess(call.Pos, call.Name, ownerT.String()))
			return sema.ErrorType
		}
	} else {
		methodClass = ctx.CurrentClass
	}

	sym := lookupInherited(methodClass, call.Name)
	if sym == nil {
		if hasOwner {
			ctx.Sink.Add(errNoSuchField(call.Pos, call.Name, ownerT.String()))
		} else {
			ctx.Sink.Add(errUndeclaredVar(call.Pos, call.Name))
		}
		return sema.ErrorType
	}
	if !sym.IsMethod() {
		ctx.Sink.Add(errNotMethod(call.Pos, call.Name, methodClass.Name))
		return sema.ErrorType
	}
	m := sym.Method
	call.Symbol = sym

	if ownerIsClassType && !m.Static {
		ctx.Sink.Add(errBadFieldAccess(call.Pos, call.Name, ownerT.String()))
		return sema.ErrorType
	}
	if !hasOwner && !m.Static && ctx.CurrentMethod != nil && ctx.CurrentMethod.Static {
		ctx.Sink.Add(errRefInStatic(call.Pos, call.Name, ctx.CurrentMethod.Name))
		return sema.ErrorType
	}

	paramStart := 0
	if !m.Static {
		paramStart = 1 // skip the synthesized `this`
	}
	expected := m.Params[paramStart:]

	argTypes := make([]sema.Type, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = exprCheck(a, ctx)
	}

	if len(argTypes) != len(expected) {
		ctx.Sink.Add(errWrongArgc(call.Pos, call.Name, len(expected), len(argTypes)))
	} else {
		for i, p := range expected {
			if !argTypes[i].IsError() && !sema.Assignable(argTypes[i], p.Type.Sem) {
				ctx.Sink.Add(errWrongArgType(call.Args[i].Position(), i+1, argTypes[i].String(), p.Type.Sem.String()))
			}
		}
	}
	return m.RetT.Sem
}

// lookupInherited searches class, then its ancestors, for name.
func lookupInherited(class *ast.ClassDef, name string) *Symbol {
	for c := class; c != nil; c = c.ParentRef {
		if c.Scope == nil {
			continue
		}
		if sym, ok := c.Scope.Symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// classExtends reports whether c is target or transitively extends it; it
// gates private field access per spec.md §4.3.1.
func classExtends(c, target *ast.ClassDef) bool {
	for cur := c; cur != nil; cur = cur.ParentRef {
		if cur == target {
			return true
		}
	}
	return false
}
