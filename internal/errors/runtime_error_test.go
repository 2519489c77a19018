package errors

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestRuntimeErrorFormat snapshots the caret-annotated diagnostic shape
// Format produces for an uncaught top-level error: message line, source
// context with caret, and call stack, newest frame first.
func TestRuntimeErrorFormat(t *testing.T) {
	stack := NewStackTrace()
	stack = append(stack,
		NewStackFrame("main", "app.js", Position{Line: 1, Column: 1}),
		NewStackFrame("doThing", "app.js", Position{Line: 4, Column: 10}),
	)

	cases := []struct {
		name string
		err  *RuntimeError
	}{
		{
			"with_position_and_stack",
			NewRuntimeError(KindTypeError, "x is not a function",
				&Position{Line: 2, Column: 3}, "function doThing() {\n  x();\n}\n", "app.js", stack),
		},
		{
			"no_position",
			NewRuntimeError(KindReferenceError, "y is not defined", nil, "", "", NewStackTrace()),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snaps.MatchSnapshot(t, tc.err.Format(false))
		})
	}
}
