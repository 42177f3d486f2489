package semantic

import (
	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/sema"
)

// SymbolBuilder is the first pipeline stage, grounded on
// original_source/src/symbol_builder.rs: it builds scopes, installs
// symbols, links parents, detects cyclic/sealed inheritance, checks
// override compatibility, and identifies the Main class, per spec.md §4.2.
type SymbolBuilder struct{}

func (SymbolBuilder) Name() string { return "symbol-builder" }

func (SymbolBuilder) Run(program *ast.Program, ctx *Context) error {
	program.Scope = ctx.Scopes.Global

	// Pass 1 — declare classes.
	for _, c := range program.Classes {
		c.Order = -1
		c.FieldCount = -1
		if earlier := ctx.Scopes.LookupClass(c.Name); earlier != nil {
			ctx.Sink.Add(errConflictDeclaration(c.Pos, earlier.Pos(), c.Name))
			continue
		}
		ctx.Scopes.Declare(ClassSymbol(c))
	}

	// Pass 2 — link parents, detect cycles and sealed violations.
	for _, c := range program.Classes {
		if c.ParentName == "" {
			continue
		}
		parentSym := ctx.Scopes.LookupClass(c.ParentName)
		if parentSym == nil {
			ctx.Sink.Add(errNoSuchClass(c.Pos, c.ParentName))
			continue
		}
		parent := parentSym.Class
		c.ParentRef = parent
		if calcOrder(c) <= calcOrder(parent) {
			ctx.Sink.Add(errCyclicInheritance(c.Pos))
			c.ParentRef = nil
		} else if parent.Sealed {
			ctx.Sink.Add(errSealedInheritance(c.Pos))
			c.ParentRef = nil
		}
	}

	for _, c := range program.Classes {
		c.Scope = NewClassScope(c)
	}

	for _, c := range program.Classes {
		classDef(c, ctx)
		if c.Name == "Main" {
			program.Main = c
		}
	}

	for _, c := range program.Classes {
		checkOverride(c, ctx)
	}

	if !checkMain(program.Main) {
		ctx.Sink.Add(errNoMainClass())
	}

	return nil
}

// calcOrder computes a class's inheritance depth via memoized recursion.
// order(nil) = -1; order(c) = order(parent(c)) + 1. A class whose Order is
// (re-)entered while still 0 indicates a cycle: the caller compares depths
// and rejects the edge.
func calcOrder(c *ast.ClassDef) int {
	if c == nil {
		return -1
	}
	if c.Order < 0 {
		c.Order = 0
		c.Order = calcOrder(c.ParentRef) + 1
	}
	return c.Order
}

func classDef(c *ast.ClassDef, ctx *Context) {
	ctx.Scopes.Open(c.Scope)
	prevClass := ctx.CurrentClass
	ctx.CurrentClass = c
	for _, f := range c.Fields {
		switch field := f.(type) {
		case *ast.MethodDef:
			methodDef(field, ctx)
		case *ast.VarDef:
			varDef(field, ctx)
		}
	}
	ctx.CurrentClass = prevClass
	ctx.Scopes.Close()
}

func methodDef(m *ast.MethodDef, ctx *Context) {
	ResolveType(m.RetT, ctx)

	if earlier, _ := ctx.Scopes.Lookup(m.Name, false); earlier != nil {
		ctx.Sink.Add(errConflictDeclaration(m.Pos, earlier.Pos(), m.Name))
	} else {
		ctx.Scopes.Declare(MethodSymbol(m))
	}

	if !m.Static {
		class := ctx.Scopes.Current().Class
		this := &ast.VarDef{
			Pos:         m.Pos,
			Name:        "this",
			Type:        &ast.Type{Pos: m.Pos, Name: class.Name},
			FieldOffset: -1,
			Reg:         -1,
		}
		this.Type.Sem = sema.Object(class)
		m.Params = append([]*ast.VarDef{this}, m.Params...)
	}

	m.OwnerClass = ctx.CurrentClass
	m.VTableOffset = -1
	m.Scope = NewParameterScope(m)
	ctx.Scopes.Open(m.Scope)
	for _, p := range m.Params {
		varDef(p, ctx)
	}
	m.Body.IsMethodBody = true
	block(m.Body, ctx)
	ctx.Scopes.Close()
}

func stmt(s ast.Stmt, ctx *Context) {
	switch st := s.(type) {
	case *ast.VarDeclStmt:
		varDef(st.Def, ctx)
	case *ast.IfStmt:
		block(st.OnTrue, ctx)
		if st.OnFalse != nil {
			block(st.OnFalse, ctx)
		}
	case *ast.WhileStmt:
		block(st.Body, ctx)
	case *ast.ForStmt:
		st.Body.Scope = NewLocalScope(st.Body)
		ctx.Scopes.Open(st.Body.Scope)
		if vd, ok := st.Init.(*ast.VarDeclStmt); ok {
			varDef(vd.Def, ctx)
		}
		for _, inner := range st.Body.Stmts {
			stmt(inner, ctx)
		}
		ctx.Scopes.Close()
	case *ast.ForeachStmt:
		st.Body.Scope = NewLocalScope(st.Body)
		ctx.Scopes.Open(st.Body.Scope)
		varDef(st.Def, ctx)
		for _, inner := range st.Body.Stmts {
			stmt(inner, ctx)
		}
		ctx.Scopes.Close()
	case *ast.GuardedStmt:
		for _, arm := range st.Arms {
			block(arm.Block, ctx)
		}
	case *ast.BlockStmt:
		block(st.Block, ctx)
	}
}

func varDef(v *ast.VarDef, ctx *Context) {
	ResolveType(v.Type, ctx)
	v.Reg = -1
	v.FieldOffset = -1
	if v.Type.Sem.IsVoid() {
		ctx.Sink.Add(errVoidVar(v.Pos, v.Name))
		return
	}
	if checkVarDeclaration(v.Name, v, ctx) {
		v.Scope = ctx.Scopes.Current()
		ctx.Scopes.Declare(VarSymbol(v))
	}
}

// checkVarDeclaration implements spec.md §4.2 step 4: a declaration
// conflicts with an existing symbol S iff S is in the current scope, or S
// is in the enclosing parameter scope and the current scope is the method
// body's immediate local scope.
func checkVarDeclaration(name string, v *ast.VarDef, ctx *Context) bool {
	sym, scope := ctx.Scopes.Lookup(name, true)
	if sym == nil {
		return true
	}
	cur := ctx.Scopes.Current()
	conflict := scope == cur ||
		(scope.Kind == ScopeParameter && cur.Kind == ScopeLocal && cur.Block.IsMethodBody)
	if conflict {
		ctx.Sink.Add(errConflictDeclaration(v.Pos, sym.Pos(), name))
		return false
	}
	return true
}

func block(b *ast.Block, ctx *Context) {
	b.Scope = NewLocalScope(b)
	ctx.Scopes.Open(b.Scope)
	for _, s := range b.Stmts {
		stmt(s, ctx)
	}
	ctx.Scopes.Close()
}

// checkOverride recursively validates c's class-scope entries against its
// parent's, removing any that conflict, per spec.md §4.2 step 6.
func checkOverride(c *ast.ClassDef, ctx *Context) {
	if c.Checked || c.ParentRef == nil {
		return
	}
	parent := c.ParentRef
	checkOverride(parent, ctx)

	ctx.Scopes.Open(parent.Scope)
	for name, sym := range c.Scope.Symbols {
		parentSym, _ := ctx.Scopes.Lookup(name, true)
		if parentSym == nil || parentSym.IsClass() {
			continue
		}
		switch {
		case (parentSym.IsVar() && sym.IsMethod()) || (parentSym.IsMethod() && sym.IsVar()):
			ctx.Sink.Add(errConflictDeclaration(sym.Pos(), parentSym.Pos(), name))
			delete(c.Scope.Symbols, name)
		case parentSym.IsMethod():
			pm, sm := parentSym.Method, sym.Method
			if pm.Static || sm.Static {
				ctx.Sink.Add(errConflictDeclaration(sym.Pos(), parentSym.Pos(), name))
				delete(c.Scope.Symbols, name)
				continue
			}
			if !compatibleOverride(pm, sm) {
				ctx.Sink.Add(errBadOverride(sym.Pos(), name, parent.Name))
				delete(c.Scope.Symbols, name)
			}
		case parentSym.IsVar():
			ctx.Sink.Add(errOverrideVar(sym.Pos(), name))
			delete(c.Scope.Symbols, name)
		}
	}
	ctx.Scopes.Close()
	c.Checked = true
}

// compatibleOverride requires identical parameter count, a covariant
// return type, and contravariant parameter types (skipping index 0, the
// synthesized `this`).
func compatibleOverride(parent, child *ast.MethodDef) bool {
	if !sema.Assignable(child.RetT.Sem, parent.RetT.Sem) {
		return false
	}
	if len(child.Params) != len(parent.Params) {
		return false
	}
	for i := 1; i < len(child.Params); i++ {
		if !sema.Assignable(parent.Params[i].Type.Sem, child.Params[i].Type.Sem) {
			return false
		}
	}
	return true
}

func checkMain(main *ast.ClassDef) bool {
	if main == nil {
		return false
	}
	sym, ok := main.Scope.Symbols["main"]
	if !ok || !sym.IsMethod() {
		return false
	}
	m := sym.Method
	return m.Static && m.RetT.Sem.IsVoid() && len(m.Params) == 0
}
