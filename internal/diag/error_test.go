package diag

import (
	"testing"

	"github.com/decaflang/decaf/internal/token"
)

func TestErrorString(t *testing.T) {
	withLoc := At(token.Position{Line: 3, Column: 5}, "NoSuchClass", "no such class Foo")
	if got, want := withLoc.Error(), "*** Error at (3,5): no such class Foo"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	noLoc := NoLoc("NoMainClass", "no class Main found")
	if got, want := noLoc.Error(), "*** Error: no class Main found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSinkSortsByPosition(t *testing.T) {
	var s Sink
	s.Addf(token.Position{Line: 5, Column: 1}, "A", "fifth")
	s.Addf(token.Position{Line: 1, Column: 3}, "B", "first-b")
	s.Addf(token.Position{Line: 1, Column: 1}, "C", "first-c")
	s.AddNoLoc("D", "no location")

	errs := s.Errors()
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4", len(errs))
	}
	if errs[0].Message != "first-c" || errs[1].Message != "first-b" || errs[2].Message != "fifth" {
		t.Errorf("unexpected sort order: %v, %v, %v", errs[0].Message, errs[1].Message, errs[2].Message)
	}
	if errs[3].Loc != nil {
		t.Errorf("expected the location-less error to sort last")
	}
}

func TestSinkHasErrors(t *testing.T) {
	var s Sink
	if s.HasErrors() {
		t.Error("empty sink should report HasErrors() == false")
	}
	s.AddNoLoc("X", "boom")
	if !s.HasErrors() {
		t.Error("non-empty sink should report HasErrors() == true")
	}
}

func TestFormatAll(t *testing.T) {
	errs := []*Error{
		NoLoc("A", "one"),
		NoLoc("B", "two"),
	}
	got := FormatAll(errs)
	want := "*** Error: one\n*** Error: two\n"
	if got != want {
		t.Errorf("FormatAll() = %q, want %q", got, want)
	}
}
