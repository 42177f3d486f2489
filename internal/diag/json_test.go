package diag

import (
	"testing"

	"github.com/decaflang/decaf/internal/token"
)

func TestToJSONRoundTrip(t *testing.T) {
	errs := []*Error{
		At(token.Position{Line: 2, Column: 4}, "NoSuchClass", "no such class Foo"),
		NoLoc("NoMainClass", "no class Main found"),
	}

	doc, err := ToJSON(errs)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got := FromJSON(doc)
	if len(got) != 2 {
		t.Fatalf("FromJSON returned %d entries, want 2", len(got))
	}

	if got[0]["kind"] != "NoSuchClass" || got[0]["message"] != "no such class Foo" {
		t.Errorf("entry 0 = %v", got[0])
	}
	if got[0]["line"] != int64(2) || got[0]["column"] != int64(4) {
		t.Errorf("entry 0 location = %v", got[0])
	}

	if got[1]["kind"] != "NoMainClass" || got[1]["message"] != "no class Main found" {
		t.Errorf("entry 1 = %v", got[1])
	}
	if _, ok := got[1]["line"]; ok {
		t.Errorf("entry 1 should have no line field, got %v", got[1])
	}
}

func TestToJSONEmpty(t *testing.T) {
	doc, err := ToJSON(nil)
	if err != nil {
		t.Fatalf("ToJSON(nil): %v", err)
	}
	if doc != "[]" {
		t.Errorf("ToJSON(nil) = %q, want []", doc)
	}
}

func TestItoa(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{42, "42"},
		{123, "123"},
	}
	for _, tt := range tests {
		if got := itoa(tt.in); got != tt.want {
			t.Errorf("itoa(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
