package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// arg returns args[i], or undefined if the call was passed fewer arguments —
// every native method body reads arguments through this instead of
// indexing args directly, matching JavaScript's "missing argument is
// undefined" calling convention.
func arg(args []value.Value, i int) value.Value {
	if i < 0 || i >= len(args) {
		return value.Undefined
	}
	return args[i]
}

// asObject type-asserts v to an Object, reporting ok=false for a primitive.
func asObject(v value.Value) (*object.Object, bool) {
	o, ok := v.(*object.Object)
	return o, ok
}

// thisObject resolves `this` to an Object or throws TypeError naming which
// builtin required one — the standard guard at the top of a prototype
// method body that only makes sense on an object receiver.
func thisObject(this value.Value, c object.Caller, methodName string) (*object.Object, bool) {
	o, ok := this.(*object.Object)
	if !ok {
		c.ThrowTypeError("%s called on non-object", methodName)
		return nil, false
	}
	return o, true
}
