package jvmir

import (
	"testing"

	"github.com/decaflang/decaf/internal/tac"
)

func TestSummarize(t *testing.T) {
	p := &tac.Program{
		Classes: []*tac.ClassLayout{
			{ClassName: "Main", FieldCount: 0},
			{ClassName: "Animal", FieldCount: 1},
		},
		Methods: []*tac.Method{
			{QualifiedName: "Main.main", Static: true, NumParams: 0},
			{QualifiedName: "Animal.speak", Static: false, NumParams: 1},
		},
	}

	consts, methods := Summarize(p)

	if len(consts) != 2 {
		t.Fatalf("got %d constants, want 2", len(consts))
	}
	if consts[0].Kind != ConstClassRef || consts[0].Class != "Main" {
		t.Errorf("consts[0] = %+v", consts[0])
	}

	if len(methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(methods))
	}
	if methods[0].Descriptor != "()Ljava/lang/Object;" {
		t.Errorf("static no-arg descriptor = %q", methods[0].Descriptor)
	}
	if methods[1].Descriptor != "()Ljava/lang/Object;" {
		t.Errorf("instance method with implicit receiver descriptor = %q, want no explicit params", methods[1].Descriptor)
	}
}

func TestSummarizeDedupesClasses(t *testing.T) {
	p := &tac.Program{
		Classes: []*tac.ClassLayout{
			{ClassName: "Main"},
			{ClassName: "Main"},
		},
	}
	consts, _ := Summarize(p)
	if len(consts) != 1 {
		t.Errorf("got %d constants, want 1 (deduped)", len(consts))
	}
}

func TestDescriptorForWithParams(t *testing.T) {
	m := &tac.Method{Static: true, NumParams: 2}
	if got, want := descriptorFor(m), "(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;"; got != want {
		t.Errorf("descriptorFor() = %q, want %q", got, want)
	}
}
