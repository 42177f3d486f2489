// Package diag implements Decaf's structured compile-time diagnostics:
// accumulation, location-based sorting, and the spec-exact presentation
// format, grounded in original_source/src/errors.rs's message templates and
// in the teacher's CompilerError/accumulate-then-format style
// (internal/errors/errors.go) for the surrounding machinery.
package diag

import (
	"fmt"
	"sort"

	"github.com/decaflang/decaf/internal/token"
)

// Error is one compile-time diagnostic: an error kind, its rendered
// message, and an optional source location. A nil Loc renders without a
// location clause (e.g. NoMainClass, which has no anchoring node).
type Error struct {
	Loc     *token.Position
	Kind    string
	Message string
}

func At(pos token.Position, kind, message string) *Error {
	return &Error{Loc: &pos, Kind: kind, Message: message}
}

func NoLoc(kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Error satisfies the standard error interface with the exact external
// presentation spec.md §6 and original_source/src/errors.rs's Display impl
// specify.
func (e *Error) Error() string {
	if e.Loc == nil {
		return fmt.Sprintf("*** Error: %s", e.Message)
	}
	return fmt.Sprintf("*** Error at (%d,%d): %s", e.Loc.Line, e.Loc.Column, e.Message)
}

// Sink accumulates diagnostics across one pass. It is not safe for
// concurrent use; the compiler core is single-threaded per spec.md §5.
type Sink struct {
	errors []*Error
}

func (s *Sink) Add(e *Error) { s.errors = append(s.errors, e) }

func (s *Sink) Addf(pos token.Position, kind, format string, args ...interface{}) {
	s.Add(At(pos, kind, fmt.Sprintf(format, args...)))
}

func (s *Sink) AddNoLoc(kind, format string, args ...interface{}) {
	s.Add(NoLoc(kind, fmt.Sprintf(format, args...)))
}

func (s *Sink) HasErrors() bool { return len(s.errors) > 0 }

// Errors returns every accumulated diagnostic, sorted by (line, column) per
// spec.md §4.2/§8 invariant 7; location-less errors sort last, stable among
// themselves.
func (s *Sink) Errors() []*Error {
	out := make([]*Error, len(s.errors))
	copy(out, s.errors)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Loc == nil && b.Loc == nil {
			return false
		}
		if a.Loc == nil {
			return false
		}
		if b.Loc == nil {
			return true
		}
		if a.Loc.Line != b.Loc.Line {
			return a.Loc.Line < b.Loc.Line
		}
		return a.Loc.Column < b.Loc.Column
	})
	return out
}

// FormatAll renders every diagnostic on its own line, in sorted order.
func FormatAll(errs []*Error) string {
	var out string
	for _, e := range errs {
		out += e.Error() + "\n"
	}
	return out
}
