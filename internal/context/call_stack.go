package context

import (
	"github.com/solarbrowser/quanta-go/internal/errors"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// Frame is one call-stack entry (spec §3/GLOSSARY): the callee Function,
// its captured arguments, a local-variable map (used by the GC root walk
// to find values the environment chain doesn't itself hold, e.g. values
// still live only on an evaluator's operand stack), and a source location.
type Frame struct {
	Callee    *object.Object
	This      value.Value
	Args      []value.Value
	Locals    []value.Value // operand-stack/temporaries roots for GC
	Name      string
	File      string
	Pos       errors.Position
	IsCtor    bool
}

// CallStack bounds recursion to a configurable ceiling and supplies stack
// traces for thrown errors, per spec §4.4's depth protocol.
//
// Grounded on internal/interp/runtime/callstack.go's CallStack
// (Push/Pop/Depth/WillOverflow/Frames/FormatError), generalized from a
// single-language function-name-only frame to one additionally carrying
// `this`/args/locals for GC root discovery.
type CallStack struct {
	frames   []*Frame
	maxDepth int
}

// DefaultMaxDepth mirrors the teacher's own default call-stack ceiling.
const DefaultMaxDepth = 1024

func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &CallStack{maxDepth: maxDepth}
}

// Push adds a frame. ok is false if this would exceed maxDepth; the
// caller (Context.Call) converts that into a catchable RangeError.
func (cs *CallStack) Push(f *Frame) (ok bool) {
	if len(cs.frames) >= cs.maxDepth {
		return false
	}
	cs.frames = append(cs.frames, f)
	return true
}

func (cs *CallStack) Pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

func (cs *CallStack) Current() *Frame {
	if len(cs.frames) == 0 {
		return nil
	}
	return cs.frames[len(cs.frames)-1]
}

func (cs *CallStack) Depth() int { return len(cs.frames) }

func (cs *CallStack) WillOverflow() bool { return len(cs.frames) >= cs.maxDepth }

// SetMaxDepth overrides the recursion ceiling after construction.
func (cs *CallStack) SetMaxDepth(n int) {
	if n > 0 {
		cs.maxDepth = n
	}
}

func (cs *CallStack) Clear() { cs.frames = nil }

// Frames returns a snapshot, oldest to newest.
func (cs *CallStack) Frames() []*Frame {
	out := make([]*Frame, len(cs.frames))
	copy(out, cs.frames)
	return out
}

// StackTrace converts the current frames (oldest first, per
// internal/errors.StackTrace's documented ordering) into a capturable
// trace for a thrown error.
func (cs *CallStack) StackTrace() errors.StackTrace {
	trace := make(errors.StackTrace, 0, len(cs.frames))
	for _, f := range cs.frames {
		trace = append(trace, errors.NewStackFrame(f.Name, f.File, f.Pos))
	}
	return trace
}
