// Package parser turns a Decaf token stream into an *ast.Program.
//
// It is hand-written recursive descent with Pratt-style precedence climbing
// for binary operators, in the shape of the Monkey-language parser (the
// simplest precedence-climbing reference available) crossed with the
// teacher's buffered-lookahead cursor idiom (parser/cursor.go): rather than
// a single peek token this parser keeps every already-scanned token in a
// slice, so a production can look more than one token ahead before
// committing, without an immutable-cursor allocation per token.
package parser

import (
	"fmt"

	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/diag"
	"github.com/decaflang/decaf/internal/lexer"
	"github.com/decaflang/decaf/internal/sema"
	"github.com/decaflang/decaf/internal/token"
)

// Parser consumes a lexer's token stream and produces *ast.Program. Parse
// errors never panic; they accumulate in Sink and the parser resynchronizes
// at the next likely statement/class boundary, per spec.md §6's "the first
// failing stage short-circuits" (the caller decides whether to proceed past
// a non-empty Sink; the parser itself keeps going to report more than one
// error per run).
type Parser struct {
	lex  *lexer.Lexer
	buf  []token.Token
	pos  int
	Sink *diag.Sink
}

// New creates a Parser over lex. The parser does not read the lexer's own
// errors; a caller collects those from lex.Errors() itself, as
// pkg/decaf's Engine does.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex, Sink: &diag.Sink{}}
}

// Parse runs the grammar's program production.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.is(token.EOF) {
		if c := p.parseClassDef(); c != nil {
			prog.Classes = append(prog.Classes, c)
		} else {
			p.synchronize(token.CLASS)
		}
	}
	return prog
}

// --- token buffer -----------------------------------------------------

func (p *Parser) fill(n int) {
	for len(p.buf) <= p.pos+n {
		tok := p.lex.NextToken()
		p.buf = append(p.buf, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
}

func (p *Parser) cur() token.Token {
	p.fill(0)
	if p.pos < len(p.buf) {
		return p.buf[p.pos]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) peek(n int) token.Token {
	p.fill(n)
	idx := p.pos + n
	if idx < len(p.buf) {
		return p.buf[idx]
	}
	return p.buf[len(p.buf)-1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) is(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.is(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes k, recording a diagnostic and leaving the cursor in place
// if the current token doesn't match.
func (p *Parser) expect(k token.Kind) token.Token {
	if tok, ok := p.accept(k); ok {
		return tok
	}
	tok := p.cur()
	p.errorf(tok.Pos, "expected %s, found %s", k, tok.Kind)
	return tok
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.Sink.Add(diag.At(pos, "ParseError", fmt.Sprintf(format, args...)))
}

// synchronize discards tokens up to and including the next occurrence of
// stop, or EOF, so one malformed class/statement doesn't cascade into a
// wall of follow-on errors.
func (p *Parser) synchronize(stop token.Kind) {
	for !p.is(token.EOF) && !p.is(stop) {
		p.advance()
	}
}

func (p *Parser) synchronizeStmt() {
	for !p.is(token.EOF) && !p.is(token.SEMI) && !p.is(token.RBRACE) {
		p.advance()
	}
	p.accept(token.SEMI)
}

// --- class / member declarations --------------------------------------

func (p *Parser) parseClassDef() *ast.ClassDef {
	pos := p.cur().Pos
	sealed := false
	if _, ok := p.accept(token.SEALED); ok {
		sealed = true
	}
	if _, ok := p.accept(token.CLASS); !ok {
		p.errorf(p.cur().Pos, "expected class declaration, found %s", p.cur().Kind)
		return nil
	}
	name := p.expect(token.IDENT).Literal

	parent := ""
	if _, ok := p.accept(token.EXTENDS); ok {
		parent = p.expect(token.IDENT).Literal
	}

	c := &ast.ClassDef{Pos: pos, Name: name, Sealed: sealed, ParentName: parent, Order: -1, FieldCount: -1}

	p.expect(token.LBRACE)
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		field := p.parseField()
		if field == nil {
			p.synchronizeStmt()
			continue
		}
		c.Fields = append(c.Fields, field)
	}
	p.expect(token.RBRACE)
	return c
}

// parseField distinguishes a field from a method by looking past the
// declared type and name: a "(" starts a method's parameter list, anything
// else (namely ";") is a plain field.
func (p *Parser) parseField() ast.Field {
	pos := p.cur().Pos
	static := false
	if _, ok := p.accept(token.STATIC); ok {
		static = true
	}
	switch p.cur().Kind {
	case token.INT, token.BOOL, token.STRING, token.VOID, token.VAR, token.IDENT:
	default:
		// Neither a method nor a field can start here; returning nil (rather
		// than limping through parseType's own error path) lets the caller's
		// synchronizeStmt guarantee forward progress to the next ";" or "}".
		p.errorf(pos, "expected a field or method declaration, found %s", p.cur().Kind)
		return nil
	}
	typ := p.parseType()
	name := p.expect(token.IDENT).Literal

	if p.is(token.LPAREN) {
		return p.parseMethodTail(pos, static, typ, name)
	}
	if static {
		p.errorf(pos, "only methods may be declared static")
	}
	p.expect(token.SEMI)
	return &ast.VarDef{Pos: pos, Name: name, Type: typ, Reg: -1, FieldOffset: -1}
}

func (p *Parser) parseMethodTail(pos token.Position, static bool, retT *ast.Type, name string) *ast.MethodDef {
	p.expect(token.LPAREN)
	var params []*ast.VarDef
	if !p.is(token.RPAREN) {
		params = append(params, p.parseParam())
		for {
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
			params = append(params, p.parseParam())
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	body.IsMethodBody = true
	return &ast.MethodDef{Pos: pos, Name: name, Static: static, RetT: retT, Params: params, Body: body, VTableOffset: -1}
}

func (p *Parser) parseParam() *ast.VarDef {
	pos := p.cur().Pos
	typ := p.parseType()
	name := p.expect(token.IDENT).Literal
	return &ast.VarDef{Pos: pos, Name: name, Type: typ, Reg: -1, FieldOffset: -1}
}

// parseType parses a basic keyword type or a class-name identifier,
// followed by any number of "[]" array suffixes.
func (p *Parser) parseType() *ast.Type {
	pos := p.cur().Pos
	var base *ast.Type
	switch p.cur().Kind {
	case token.INT, token.BOOL, token.STRING, token.VOID, token.VAR:
		base = &ast.Type{Pos: pos, Name: p.advance().Literal}
	case token.IDENT:
		base = &ast.Type{Pos: pos, Name: p.advance().Literal}
	default:
		p.errorf(pos, "expected a type, found %s", p.cur().Kind)
		return &ast.Type{Pos: pos}
	}
	for p.is(token.LBRACKET) && p.peek(1).Kind == token.RBRACKET {
		p.advance()
		p.advance()
		base = &ast.Type{Pos: pos, IsArray: true, Elem: base}
	}
	return base
}

// --- statements ---------------------------------------------------------

func (p *Parser) parseBlock() *ast.Block {
	pos := p.expect(token.LBRACE).Pos
	b := ast.NewBlock(pos)
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		s := p.parseStmt()
		if s == nil {
			p.synchronizeStmt()
			continue
		}
		b.Stmts = append(b.Stmts, s)
	}
	p.expect(token.RBRACE)
	return b
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.LBRACE:
		return ast.NewBlockStmt(p.cur().Pos, p.parseBlock())
	case token.IF:
		return p.parseIfOrGuarded()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.FOREACH:
		return p.parseForeach()
	case token.BREAK:
		pos := p.advance().Pos
		p.expect(token.SEMI)
		return ast.NewBreakStmt(pos)
	case token.RETURN:
		pos := p.advance().Pos
		var v ast.Expr
		if !p.is(token.SEMI) {
			v = p.parseExpr()
		}
		p.expect(token.SEMI)
		return ast.NewReturnStmt(pos, v)
	case token.PRINT:
		pos := p.advance().Pos
		p.expect(token.LPAREN)
		var args []ast.Expr
		if !p.is(token.RPAREN) {
			args = append(args, p.parseExpr())
			for {
				if _, ok := p.accept(token.COMMA); !ok {
					break
				}
				args = append(args, p.parseExpr())
			}
		}
		p.expect(token.RPAREN)
		p.expect(token.SEMI)
		return ast.NewPrintStmt(pos, args)
	case token.SCOPY:
		pos := p.advance().Pos
		name := p.expect(token.IDENT).Literal
		p.expect(token.ASSIGN)
		src := p.parseExpr()
		p.expect(token.SEMI)
		return ast.NewSCopyStmt(pos, name, src)
	default:
		s := p.parseSimple()
		p.expect(token.SEMI)
		return s
	}
}

// parseSimple parses the shared init/step/statement production: a local
// variable declaration, an assignment, or a bare call.
func (p *Parser) parseSimple() ast.Simple {
	pos := p.cur().Pos
	if p.startsType() {
		return p.parseVarDeclStmt(pos)
	}
	e := p.parseExpr()
	if _, ok := p.accept(token.ASSIGN); ok {
		v := p.parseExpr()
		return ast.NewAssignStmt(pos, e, v)
	}
	if call, ok := e.(*ast.Call); ok {
		return ast.NewCallStmt(pos, call)
	}
	p.errorf(pos, "expected an assignment or call statement")
	return ast.NewCallStmt(pos, &ast.Call{})
}

// startsType reports whether the current token could begin a variable
// declaration's type, disambiguating `Foo x = ...;` (a decl) from
// `foo = ...;` or `foo();` (an assignment/call) by requiring a bare type
// keyword, or an identifier immediately followed by another identifier
// (the declared variable's name) or an array-bracket pair.
func (p *Parser) startsType() bool {
	switch p.cur().Kind {
	case token.INT, token.BOOL, token.STRING, token.VOID, token.VAR:
		return true
	case token.IDENT:
		n := p.peek(1)
		if n.Kind == token.IDENT {
			return true
		}
		return n.Kind == token.LBRACKET && p.peek(2).Kind == token.RBRACKET
	}
	return false
}

func (p *Parser) parseVarDeclStmt(pos token.Position) *ast.VarDeclStmt {
	typ := p.parseType()
	name := p.expect(token.IDENT).Literal
	def := &ast.VarDef{Pos: pos, Name: name, Type: typ, Reg: -1, FieldOffset: -1}
	var init ast.Expr
	if _, ok := p.accept(token.ASSIGN); ok {
		init = p.parseExpr()
	} else if typ.Name == "var" {
		p.errorf(pos, "a var declaration requires an initializer")
	}
	return ast.NewVarDeclStmt(pos, def, init)
}

// parseIfOrGuarded disambiguates the two surface forms sharing the "if"
// keyword: `if (cond) block (else block)?` and the guarded-command form
// `if { cond :: block ... }`.
func (p *Parser) parseIfOrGuarded() ast.Stmt {
	pos := p.advance().Pos // consume "if"
	if p.is(token.LBRACE) {
		return p.parseGuarded(pos)
	}
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	onTrue := p.parseBlock()
	var onFalse *ast.Block
	if _, ok := p.accept(token.ELSE); ok {
		onFalse = p.parseBlock()
	}
	return ast.NewIfStmt(pos, cond, onTrue, onFalse)
}

func (p *Parser) parseGuarded(pos token.Position) *ast.GuardedStmt {
	p.expect(token.LBRACE)
	var arms []ast.GuardedArm
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		cond := p.parseExpr()
		p.expect(token.DOUBLE_COLON)
		block := p.parseBlock()
		arms = append(arms, ast.GuardedArm{Cond: cond, Block: block})
	}
	p.expect(token.RBRACE)
	if len(arms) == 0 {
		p.errorf(pos, "a guarded statement needs at least one arm")
	}
	return ast.NewGuardedStmt(pos, arms)
}

func (p *Parser) parseWhile() *ast.WhileStmt {
	pos := p.advance().Pos
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return ast.NewWhileStmt(pos, cond, body)
}

func (p *Parser) parseFor() *ast.ForStmt {
	pos := p.advance().Pos
	p.expect(token.LPAREN)
	var init ast.Simple
	if !p.is(token.SEMI) {
		init = p.parseSimple()
	}
	p.expect(token.SEMI)
	var cond ast.Expr
	if !p.is(token.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI)
	var step ast.Simple
	if !p.is(token.RPAREN) {
		step = p.parseSimple()
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return ast.NewForStmt(pos, init, cond, step, body)
}

func (p *Parser) parseForeach() *ast.ForeachStmt {
	pos := p.advance().Pos
	p.expect(token.LPAREN)
	typ := p.parseType()
	name := p.expect(token.IDENT).Literal
	def := &ast.VarDef{Pos: pos, Name: name, Type: typ, Reg: -1, FieldOffset: -1}
	p.expect(token.IN)
	arr := p.parseExpr()
	var cond ast.Expr
	if _, ok := p.accept(token.WHILE); ok {
		cond = p.parseExpr()
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return ast.NewForeachStmt(pos, def, arr, cond, body)
}

// --- expressions ----------------------------------------------------------
//
// Precedence climbs, loosest to tightest:
//   || then && then instanceof then == != then < <= > >=
//   then ++ (concat) then + -   then %% (repeat) then * / %
//   then unary - !   then postfix [] . ()   then primary.

func (p *Parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.is(token.OR) {
		pos := p.advance().Pos
		right := p.parseAnd()
		left = ast.NewBinary(pos, ast.BinOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseInstanceof()
	for p.is(token.AND) {
		pos := p.advance().Pos
		right := p.parseInstanceof()
		left = ast.NewBinary(pos, ast.BinAnd, left, right)
	}
	return left
}

func (p *Parser) parseInstanceof() ast.Expr {
	left := p.parseEquality()
	for p.is(token.INSTANCEOF) {
		pos := p.advance().Pos
		name := p.expect(token.IDENT).Literal
		left = ast.NewTypeTest(pos, left, name)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.is(token.EQ) || p.is(token.NE) {
		op := ast.BinEq
		if p.cur().Kind == token.NE {
			op = ast.BinNe
		}
		pos := p.advance().Pos
		right := p.parseRelational()
		left = ast.NewBinary(pos, op, left, right)
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseConcat()
	for {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.LT:
			op = ast.BinLt
		case token.LE:
			op = ast.BinLe
		case token.GT:
			op = ast.BinGt
		case token.GE:
			op = ast.BinGe
		default:
			return left
		}
		pos := p.advance().Pos
		right := p.parseConcat()
		left = ast.NewBinary(pos, op, left, right)
	}
}

func (p *Parser) parseConcat() ast.Expr {
	left := p.parseAdd()
	for p.is(token.CONCAT) {
		pos := p.advance().Pos
		right := p.parseAdd()
		left = ast.NewBinary(pos, ast.BinConcat, left, right)
	}
	return left
}

func (p *Parser) parseAdd() ast.Expr {
	left := p.parseRepeat()
	for p.is(token.PLUS) || p.is(token.MINUS) {
		op := ast.BinAdd
		if p.cur().Kind == token.MINUS {
			op = ast.BinSub
		}
		pos := p.advance().Pos
		right := p.parseRepeat()
		left = ast.NewBinary(pos, op, left, right)
	}
	return left
}

func (p *Parser) parseRepeat() ast.Expr {
	left := p.parseMul()
	for p.is(token.REPEAT) {
		pos := p.advance().Pos
		right := p.parseMul()
		left = ast.NewBinary(pos, ast.BinRepeat, left, right)
	}
	return left
}

func (p *Parser) parseMul() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.STAR:
			op = ast.BinMul
		case token.SLASH:
			op = ast.BinDiv
		case token.PERCENT:
			op = ast.BinMod
		default:
			return left
		}
		pos := p.advance().Pos
		right := p.parseUnary()
		left = ast.NewBinary(pos, op, left, right)
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.MINUS:
		pos := p.advance().Pos
		return ast.NewUnary(pos, ast.UnaryNeg, p.parseUnary())
	case token.NOT:
		pos := p.advance().Pos
		return ast.NewUnary(pos, ast.UnaryNot, p.parseUnary())
	case token.LPAREN:
		if cast, ok := p.tryParseCast(); ok {
			return cast
		}
	}
	return p.parsePostfix()
}

// tryParseCast recognizes "(" IDENT ")" followed by an expression as a
// type cast, distinguishing it from a parenthesized grouping by requiring
// the parenthesized identifier to be capitalized, the surface convention
// spec.md's class names follow.
func (p *Parser) tryParseCast() (ast.Expr, bool) {
	if p.cur().Kind != token.LPAREN || p.peek(1).Kind != token.IDENT || p.peek(2).Kind != token.RPAREN {
		return nil, false
	}
	name := p.peek(1).Literal
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return nil, false
	}
	pos := p.advance().Pos // "("
	p.advance()            // IDENT
	p.advance()            // ")"
	operand := p.parseUnary()
	return ast.NewTypeCast(pos, operand, name), true
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.DOT:
			p.advance()
			pos := p.cur().Pos
			name := p.expect(token.IDENT).Literal
			if _, ok := p.accept(token.LPAREN); ok {
				args := p.parseArgList()
				p.expect(token.RPAREN)
				e = ast.NewCall(pos, e, name, args)
			} else {
				e = ast.NewId(pos, e, name)
			}
		case token.LBRACKET:
			e = p.parseIndexSuffix(e)
		default:
			return e
		}
	}
}

// parseIndexSuffix parses "[" idx "]" or "[" lo ".." ub "]" following a
// primary/postfix array expression.
func (p *Parser) parseIndexSuffix(arr ast.Expr) ast.Expr {
	pos := p.advance().Pos // "["
	first := p.parseExpr()
	if _, ok := p.accept(token.ELLIPSIS); ok {
		ub := p.parseExpr()
		p.expect(token.RBRACKET)
		return ast.NewRange(pos, arr, first, ub)
	}
	p.expect(token.RBRACKET)
	return ast.NewIndexed(pos, arr, first)
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	if p.is(token.RPAREN) {
		return args
	}
	args = append(args, p.parseExpr())
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		args = append(args, p.parseExpr())
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.INT_LIT:
		p.advance()
		return ast.NewIntLit(tok.Pos, parseInt32(tok.Literal))
	case token.STRING_LIT:
		p.advance()
		return ast.NewStringLit(tok.Pos, tok.Literal)
	case token.TRUE:
		p.advance()
		return ast.NewBoolLit(tok.Pos, true)
	case token.FALSE:
		p.advance()
		return ast.NewBoolLit(tok.Pos, false)
	case token.NULL:
		p.advance()
		return ast.NewNullLit(tok.Pos)
	case token.THIS:
		p.advance()
		return ast.NewThisExpr(tok.Pos)
	case token.IDENT:
		p.advance()
		if _, ok := p.accept(token.LPAREN); ok {
			args := p.parseArgList()
			p.expect(token.RPAREN)
			return ast.NewCall(tok.Pos, nil, tok.Literal, args)
		}
		return ast.NewId(tok.Pos, nil, tok.Literal)
	case token.NEW:
		return p.parseNew()
	case token.DEFAULT:
		return p.parseDefault()
	case token.LBRACKET:
		return p.parseComprehension()
	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	default:
		p.errorf(tok.Pos, "unexpected token %s in expression", tok.Kind)
		p.advance()
		return &ast.NullLit{ExprBase: ast.ExprBase{Pos: tok.Pos, Type: sema.ErrorType, Reg: -1}}
	}
}

func (p *Parser) parseNew() ast.Expr {
	pos := p.advance().Pos // "new"
	switch p.cur().Kind {
	case token.INT, token.BOOL, token.STRING:
		elem := p.parseType()
		p.expect(token.LBRACKET)
		length := p.parseExpr()
		p.expect(token.RBRACKET)
		return ast.NewNewArray(pos, elem, length)
	case token.IDENT:
		name := p.advance().Literal
		if p.is(token.LBRACKET) {
			p.advance()
			length := p.parseExpr()
			p.expect(token.RBRACKET)
			return ast.NewNewArray(pos, &ast.Type{Pos: pos, Name: name}, length)
		}
		p.expect(token.LPAREN)
		p.expect(token.RPAREN)
		return ast.NewNewClass(pos, name)
	default:
		p.errorf(pos, "expected a type after new, found %s", p.cur().Kind)
		return ast.NewNullLit(pos)
	}
}

// parseDefault parses `default[arr, idx, fallback]`.
func (p *Parser) parseDefault() ast.Expr {
	pos := p.advance().Pos // "default"
	p.expect(token.LBRACKET)
	arr := p.parseExpr()
	p.expect(token.COMMA)
	idx := p.parseExpr()
	p.expect(token.COMMA)
	dft := p.parseExpr()
	p.expect(token.RBRACKET)
	return ast.NewDefault(pos, arr, idx, dft)
}

// parseComprehension parses `[expr for binder in array (if cond)?]`. "for"
// is already the classic for-loop's reserved keyword (token.FOR), so the
// comprehension's separator is just that same token, not a contextual
// identifier.
func (p *Parser) parseComprehension() ast.Expr {
	pos := p.advance().Pos // "["
	body := p.parseExpr()
	p.expect(token.FOR)
	binder := p.expect(token.IDENT).Literal
	p.expect(token.IN)
	arr := p.parseExpr()
	var cond ast.Expr
	if _, ok := p.accept(token.IF); ok {
		cond = p.parseExpr()
	}
	p.expect(token.RBRACKET)
	return ast.NewComprehension(pos, binder, arr, cond, body)
}

func parseInt32(lit string) int32 {
	var v int64
	for _, c := range lit {
		v = v*10 + int64(c-'0')
	}
	return int32(v)
}
