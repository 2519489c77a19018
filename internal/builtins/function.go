package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallFunction wires Function.prototype.call/apply/bind/toString and the
// Function constructor itself (spec §4.2's bind-distributivity testable
// property lives in object.Object.Bind; this file is just the surface).
func InstallFunction(r *Registry) {
	proto := r.FunctionProto

	r.Method(proto, "call", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		fn, ok := thisObject(this, c, "Function.prototype.call")
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("Function.prototype.call called on non-function")
			return value.Undefined
		}
		thisArg := arg(args, 0)
		var rest []value.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return c.CallFunction(fn, thisArg, rest)
	})

	r.Method(proto, "apply", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		fn, ok := thisObject(this, c, "Function.prototype.apply")
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("Function.prototype.apply called on non-function")
			return value.Undefined
		}
		thisArg := arg(args, 0)
		var spread []value.Value
		if argArr, ok := asObject(arg(args, 1)); ok {
			spread = arrayElems(c, argArr)
		}
		return c.CallFunction(fn, thisArg, spread)
	})

	r.Method(proto, "bind", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		fn, ok := thisObject(this, c, "Function.prototype.bind")
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("Function.prototype.bind called on non-function")
			return value.Undefined
		}
		thisArg := arg(args, 0)
		var rest []value.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return r.GC.Allocate(fn.Bind(r.FunctionProto, thisArg, rest))
	})

	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		fn, ok := thisObject(this, c, "Function.prototype.toString")
		if !ok {
			return value.Undefined
		}
		if fn.IsConstructor() {
			return value.String("function " + fn.FunctionName() + "() { [native code] }")
		}
		return value.String("function " + fn.FunctionName() + "() { [native code] }")
	})

	r.Accessor(proto, "name",
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			if fn, ok := asObject(this); ok {
				return value.String(fn.FunctionName())
			}
			return value.String("")
		}, nil)
	r.Accessor(proto, "length",
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			if fn, ok := asObject(this); ok {
				return value.Number(fn.FunctionLength())
			}
			return value.Number(0)
		}, nil)

	ctor := NewConstructor(r.FunctionProto, "Function", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Function constructor from source text is not supported by this host")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			c.ThrowTypeError("Function constructor from source text is not supported by this host")
			return value.Undefined
		},
	)
	r.DefineGlobal("Function", ctor)
}
