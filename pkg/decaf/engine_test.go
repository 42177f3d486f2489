package decaf

import (
	"context"
	"testing"

	"github.com/decaflang/decaf/internal/config"
)

func TestEngineCompileSuccess(t *testing.T) {
	e := New()
	res, err := e.Compile(context.Background(), `class Main {
		static void main() {
			print("hello");
		}
	}`, "hello.decaf")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Errors)
	}
	if res.Program == nil {
		t.Fatal("expected a parsed Program")
	}
	if res.TAC == nil {
		t.Fatal("expected a lowered TAC program")
	}
	if res.TAC.Entry != "main" {
		t.Errorf("Entry = %q, want main", res.TAC.Entry)
	}
}

func TestEngineCompileParseErrorShortCircuits(t *testing.T) {
	e := New()
	res, err := e.Compile(context.Background(), `class Main { static void main() ) ( }`, "bad.decaf")
	if err != nil {
		t.Fatalf("Compile returned Go error: %v", err)
	}
	if len(res.Errors) == 0 {
		t.Fatal("expected parse diagnostics")
	}
	if res.TAC != nil {
		t.Error("expected no TAC program when parsing fails")
	}
}

func TestEngineCompileSemanticErrorShortCircuits(t *testing.T) {
	e := New()
	res, err := e.Compile(context.Background(), `class Main {
		static void main() {
			print(undeclared);
		}
	}`, "bad.decaf")
	if err != nil {
		t.Fatalf("Compile returned Go error: %v", err)
	}
	if len(res.Errors) == 0 {
		t.Fatal("expected semantic diagnostics")
	}
	found := false
	for _, e := range res.Errors {
		if e.Kind == "UndeclaredVar" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an UndeclaredVar diagnostic, got %v", res.Errors)
	}
	if res.TAC != nil {
		t.Error("expected no TAC program when type checking fails")
	}
}

func TestEngineCompileRespectsCancellation(t *testing.T) {
	e := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := e.Compile(ctx, `class Main { static void main() { } }`, "cancelled.decaf")
	if err == nil {
		t.Fatal("expected Compile to report the cancelled context")
	}
	if res.TAC != nil {
		t.Error("expected no TAC program once cancellation is observed")
	}
}

func TestEngineWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.OutputFormat = "json"
	e := New(WithConfig(cfg))
	if e.cfg.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q, want json", e.cfg.OutputFormat)
	}
}
