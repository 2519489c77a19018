package errors

import (
	"fmt"
	"strings"
)

// Kind enumerates the built-in error taxonomy from spec §7.
type Kind string

const (
	KindError            Kind = "Error"
	KindTypeError        Kind = "TypeError"
	KindReferenceError   Kind = "ReferenceError"
	KindSyntaxError      Kind = "SyntaxError"
	KindRangeError       Kind = "RangeError"
	KindURIError         Kind = "URIError"
	KindEvalError        Kind = "EvalError"
	KindAggregateError   Kind = "AggregateError"
)

// RuntimeError is a diagnostic raised during evaluation: a kind, a message,
// the position it was raised at (if known), and the call stack captured at
// throw time (stack traces are captured at throw, not at catch, per §7).
type RuntimeError struct {
	Kind      Kind
	Message   string
	Pos       *Position
	Source    string
	File      string
	CallStack StackTrace
}

// NewRuntimeError creates a RuntimeError with a captured call stack.
func NewRuntimeError(kind Kind, message string, pos *Position, source, file string, stack StackTrace) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: message, Pos: pos, Source: source, File: file, CallStack: stack}
}

// Error implements the standard error interface.
func (e *RuntimeError) Error() string {
	return e.Format(false)
}

// Format renders "Kind: message" followed by a caret-annotated source
// line (if source/position are known) and the captured stack trace —
// exactly the shape §7 mandates for an uncaught top-level error.
func (e *RuntimeError) Format(color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Message))

	if e.Pos != nil {
		if line := e.sourceLine(e.Pos.Line); line != "" {
			sb.WriteString("\n")
			lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
		}
	}

	if len(e.CallStack) > 0 {
		sb.WriteString("\n")
		sb.WriteString(e.CallStack.String())
	}

	return sb.String()
}

func (e *RuntimeError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
