package engine_test

import (
	"strings"
	"testing"

	"github.com/solarbrowser/quanta-go/internal/value"
	"github.com/solarbrowser/quanta-go/pkg/engine"
	"github.com/solarbrowser/quanta-go/pkg/engine/minieval"
)

func newTestEngine() *engine.Engine {
	return engine.New(
		engine.WithParser(minieval.Parser{}),
		engine.WithInterpreter(minieval.Interpreter{}),
	)
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   value.Value
	}{
		{"addition", "1 + 2;", value.Number(3)},
		{"precedence", "2 + 3 * 4;", value.Number(14)},
		{"parens", "(2 + 3) * 4;", value.Number(20)},
		{"string concat", `"a" + "b";`, value.String("ab")},
		{"mixed concat", `"n=" + 1;`, value.String("n=1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			result := e.Evaluate(tt.source, "test.js")
			if !result.Success {
				t.Fatalf("Evaluate(%q) failed: %s", tt.source, result.ErrorMessage)
			}
			if !value.SameValue(result.Value, tt.want) {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.source, result.Value, tt.want)
			}
		})
	}
}

func TestEvaluateLetBinding(t *testing.T) {
	e := newTestEngine()
	result := e.Evaluate("let x = 10; x * 2;", "test.js")
	if !result.Success {
		t.Fatalf("Evaluate failed: %s", result.ErrorMessage)
	}
	if !value.SameValue(result.Value, value.Number(20)) {
		t.Errorf("got %v, want 20", result.Value)
	}
}

func TestEvaluateUndefinedReference(t *testing.T) {
	e := newTestEngine()
	result := e.Evaluate("doesNotExist;", "test.js")
	if result.Success {
		t.Fatalf("expected an uncaught ReferenceError, got success with %v", result.Value)
	}
}

func TestEvaluateConsoleLogCallable(t *testing.T) {
	e := newTestEngine()
	result := e.Evaluate(`console.log("hello");`, "test.js")
	if !result.Success {
		t.Fatalf("Evaluate failed: %s", result.ErrorMessage)
	}
}

func TestEvaluateMathMethod(t *testing.T) {
	e := newTestEngine()
	result := e.Evaluate("Math.max(1, 9, 3);", "test.js")
	if !result.Success {
		t.Fatalf("Evaluate failed: %s", result.ErrorMessage)
	}
	if !value.SameValue(result.Value, value.Number(9)) {
		t.Errorf("got %v, want 9", result.Value)
	}
}

func TestForceGCReturnsStats(t *testing.T) {
	e := newTestEngine()
	e.Evaluate("let x = 1;", "test.js")
	stats := e.ForceGC()
	_ = stats // just exercises the collector without depending on exact counts
}

func TestEvaluateWithoutCollaborators(t *testing.T) {
	e := engine.New()
	result := e.Evaluate("1 + 1;", "test.js")
	if result.Success {
		t.Fatal("expected failure with no Parser/Interpreter configured")
	}
}

func TestWithOutputWriterRedirectsConsole(t *testing.T) {
	var buf strings.Builder
	e := engine.New(
		engine.WithParser(minieval.Parser{}),
		engine.WithInterpreter(minieval.Interpreter{}),
		engine.WithOutputWriter(&buf),
	)
	result := e.Evaluate(`console.log("redirected");`, "test.js")
	if !result.Success {
		t.Fatalf("Evaluate failed: %s", result.ErrorMessage)
	}
	if !strings.Contains(buf.String(), "redirected") {
		t.Errorf("console.log did not write to the configured writer, got %q", buf.String())
	}
}

func TestWithStrictModeDefault(t *testing.T) {
	e := engine.New(
		engine.WithParser(minieval.Parser{}),
		engine.WithInterpreter(minieval.Interpreter{}),
		engine.WithStrictModeDefault(true),
	)
	result := e.Evaluate("1 + 1;", "test.js")
	if !result.Success {
		t.Fatalf("Evaluate failed: %s", result.ErrorMessage)
	}
}
