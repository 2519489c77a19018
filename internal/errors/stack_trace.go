package errors

import "strings"

// StackFrame is a single call-stack entry captured at throw time.
type StackFrame struct {
	FunctionName string
	FileName     string
	Position     Position
}

// NewStackFrame creates a StackFrame for the given function and position.
func NewStackFrame(functionName, fileName string, pos Position) StackFrame {
	return StackFrame{FunctionName: functionName, FileName: fileName, Position: pos}
}

// String renders a single frame as "at <function> (<file>:<line>:<col>)".
func (f StackFrame) String() string {
	name := f.FunctionName
	if name == "" {
		name = "<anonymous>"
	}
	file := f.FileName
	if file == "" {
		file = "<unknown>"
	}
	return "at " + name + " (" + file + ":" + f.Position.String() + ")"
}

// StackTrace is an ordered list of frames, oldest (outermost) first.
type StackTrace []StackFrame

// NewStackTrace creates an empty stack trace.
func NewStackTrace() StackTrace {
	return make(StackTrace, 0, 8)
}

// String renders the trace newest-frame-first, matching how engines print
// "at ..." lines under an error message.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	lines := make([]string, 0, len(st))
	for i := len(st) - 1; i >= 0; i-- {
		lines = append(lines, "  "+st[i].String())
	}
	return strings.Join(lines, "\n")
}
