// Package decaf is the public facade over the compiler's internal
// pipeline: lex, parse, resolve symbols, type check, lower to three-address
// code. It exists so a caller never has to import internal/* directly,
// mirroring the teacher's pkg/dwscript.Engine facade shape (constructor +
// functional options + a Compile call that returns a structured result
// instead of panicking).
package decaf

import (
	"context"

	"github.com/decaflang/decaf/internal/ast"
	"github.com/decaflang/decaf/internal/config"
	"github.com/decaflang/decaf/internal/diag"
	"github.com/decaflang/decaf/internal/lexer"
	"github.com/decaflang/decaf/internal/parser"
	"github.com/decaflang/decaf/internal/semantic"
	"github.com/decaflang/decaf/internal/tac"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithConfig attaches compiler configuration (runtime intrinsic names,
// output format) loaded ahead of time via internal/config.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// Engine compiles Decaf source. It carries no per-compile mutable state, so
// a single Engine can run Compile repeatedly and concurrently, unlike the
// per-pass semantic.Context it constructs fresh on every call.
type Engine struct {
	cfg *config.Config
}

// New builds an Engine, applying any options over the default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{cfg: config.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is everything one Compile call produces: the parsed AST (always
// present, even on failure, since later stages may still be able to
// format/dump it), the lowered TAC program (nil if any stage before
// lowering failed), and the diagnostics accumulated along the way.
type Result struct {
	Program *ast.Program
	TAC     *tac.Program
	Errors  []*diag.Error
}

// Compile runs the full pipeline: lex, parse, build symbols, type check,
// lower. Lexer errors (kind "LexError") join the parser's sink, and the
// semantic passes report into their own; the first stage to report any
// errors stops the pipeline there, per spec.md's "the first
// failing stage short-circuits" (spec.md §6). ctx is checked for
// cancellation once per stage boundary, never inside a pass's inner loop,
// since compilation itself is synchronous and CPU-bound.
func (e *Engine) Compile(ctx context.Context, source, fileName string) (*Result, error) {
	res := &Result{}

	lx := lexer.New(source, lexer.WithFileName(fileName))
	p := parser.New(lx)
	res.Program = p.Parse()
	res.Program.Source = source
	res.Program.FileName = fileName

	for _, lerr := range lx.Errors() {
		p.Sink.Addf(lerr.Pos, "LexError", "%s", lerr.Message)
	}
	res.Errors = p.Sink.Errors()
	if len(res.Errors) > 0 {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	pctx := semantic.NewContext()
	pm := semantic.NewPassManager(semantic.SymbolBuilder{}, semantic.TypeChecker{})
	if err := pm.RunAll(res.Program, pctx); err != nil {
		return res, err
	}
	res.Errors = pctx.Sink.Errors()
	if len(res.Errors) > 0 {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.TAC = tac.Lower(res.Program)
	return res, nil
}
