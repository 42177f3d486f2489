package semantic

import "github.com/decaflang/decaf/internal/ast"

// Pass is one stage of the semantic pipeline (spec.md §2's symbol builder
// and type checker). A pass reads and writes the shared Context, annotating
// the AST in place; it never returns a Go error for user-facing diagnostics
// — those go into Context's sink. A non-nil return is reserved for a
// violated compiler invariant (spec.md §7's "fatal internal inconsistency").
type Pass interface {
	Name() string
	Run(program *ast.Program, ctx *Context) error
}

// PassManager runs a fixed sequence of passes, stopping after the first one
// that records any errors, per spec.md §2's "Any stage that records errors
// aborts further semantic stages."
type PassManager struct {
	passes []Pass
}

func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

func (pm *PassManager) AddPass(p Pass) { pm.passes = append(pm.passes, p) }

func (pm *PassManager) Passes() []Pass { return pm.passes }

// RunAll executes every pass in order. Execution stops as soon as a pass
// returns a Go error (internal fault) or leaves the context holding any
// diagnostics.
func (pm *PassManager) RunAll(program *ast.Program, ctx *Context) error {
	for _, p := range pm.passes {
		if err := p.Run(program, ctx); err != nil {
			return err
		}
		if ctx.Sink.HasErrors() {
			break
		}
	}
	return nil
}
