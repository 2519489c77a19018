package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// fakeCaller is a minimal object.Caller for exercising builtins in
// isolation from internal/context: function calls run synchronously with
// "this" bound as given, and a thrown error is recorded rather than
// unwound through Go's call stack.
type fakeCaller struct {
	strict    bool
	exception value.Value
}

func (f *fakeCaller) CallFunction(fn *object.Object, this value.Value, args []value.Value) value.Value {
	return fn.Call(f, this, args)
}
func (f *fakeCaller) Strict() bool { return f.strict }
func (f *fakeCaller) ThrowTypeError(format string, args ...any) {
	f.exception = value.String("TypeError")
}
func (f *fakeCaller) ThrowRangeError(format string, args ...any) {
	f.exception = value.String("RangeError")
}
func (f *fakeCaller) ThrowSyntaxError(format string, args ...any) {
	f.exception = value.String("SyntaxError")
}
func (f *fakeCaller) ThrowURIError(format string, args ...any) {
	f.exception = value.String("URIError")
}
func (f *fakeCaller) ThrowError(format string, args ...any) {
	f.exception = value.String("Error")
}
func (f *fakeCaller) ThrowReferenceError(format string, args ...any) {
	f.exception = value.String("ReferenceError")
}
func (f *fakeCaller) HasException() bool         { return f.exception != nil }
func (f *fakeCaller) EnqueueMicrotask(fn func()) { fn() }
func (f *fakeCaller) ThrowValue(v value.Value)    { f.exception = v }
func (f *fakeCaller) Exception() value.Value     { return f.exception }
func (f *fakeCaller) ClearException()            { f.exception = nil }

var _ object.Caller = (*fakeCaller)(nil)
