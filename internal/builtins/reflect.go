package builtins

import (
	"strconv"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallReflect wires the Reflect namespace object spec §4.4 lists
// alongside Proxy: the same trap-shaped operations (get/set/has/
// deleteProperty/ownKeys/...) as plain static functions rather than
// interceptable methods, built directly on *object.Object's own
// Get/Set/Has/Delete/GetOwnKeys/DefineProperty — the same primitives
// Object's static methods (internal/builtins/object.go) already use.
func InstallReflect(r *Registry) {
	reflect := r.GC.Allocate(object.New(r.ObjectProto))

	r.Method(reflect, "get", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.get called on non-object")
			return value.Undefined
		}
		receiver := value.Value(o)
		if len(args) > 2 {
			receiver = args[2]
		}
		return o.Get(toPropertyKey(arg(args, 1), c), receiver, c)
	})
	r.Method(reflect, "set", 3, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.set called on non-object")
			return value.Undefined
		}
		receiver := value.Value(o)
		if len(args) > 3 {
			receiver = args[3]
		}
		return value.Boolean(o.Set(toPropertyKey(arg(args, 1), c), arg(args, 2), receiver, c))
	})
	r.Method(reflect, "has", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.has called on non-object")
			return value.Undefined
		}
		return value.Boolean(o.Has(toPropertyKey(arg(args, 1), c)))
	})
	r.Method(reflect, "deleteProperty", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.deleteProperty called on non-object")
			return value.Undefined
		}
		return value.Boolean(o.Delete(toPropertyKey(arg(args, 1), c)))
	})
	r.Method(reflect, "ownKeys", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.ownKeys called on non-object")
			return value.Undefined
		}
		keys := o.GetOwnKeys()
		vals := make([]value.Value, len(keys))
		for i, k := range keys {
			vals[i] = k.ToValue()
		}
		return newArrayOf(r, c, vals)
	})
	r.Method(reflect, "getPrototypeOf", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.getPrototypeOf called on non-object")
			return value.Undefined
		}
		if p := o.Proto(); p != nil {
			return p
		}
		return value.Null
	})
	r.Method(reflect, "setPrototypeOf", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.setPrototypeOf called on non-object")
			return value.Undefined
		}
		if p, ok := asObject(arg(args, 1)); ok {
			return value.Boolean(o.SetPrototype(p))
		}
		return value.Boolean(o.SetPrototype(nil))
	})
	r.Method(reflect, "isExtensible", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.isExtensible called on non-object")
			return value.Undefined
		}
		return value.Boolean(o.ExtensibilityState() == object.Extensible)
	})
	r.Method(reflect, "preventExtensions", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Reflect.preventExtensions called on non-object")
			return value.Undefined
		}
		o.PreventExtensions()
		return value.Boolean(true)
	})
	r.Method(reflect, "apply", 3, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("Reflect.apply target must be callable")
			return value.Undefined
		}
		argList := valuesFromArrayLike(arg(args, 2), c)
		return c.CallFunction(fn, arg(args, 1), argList)
	})
	r.Method(reflect, "construct", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsConstructor() {
			c.ThrowTypeError("Reflect.construct target must be a constructor")
			return value.Undefined
		}
		argList := valuesFromArrayLike(arg(args, 1), c)
		return fn.Construct(c, fn, argList)
	})

	r.DefineGlobal("Reflect", reflect)
	r.ReflectObj = reflect
}

func toPropertyKey(v value.Value, c object.Caller) object.Key {
	if s, ok := v.(*value.Symbol); ok {
		return object.SymbolKey(s)
	}
	return object.StringKey(string(value.ToString(v, c)))
}

// valuesFromArrayLike reads an array-like's "length" and indexed properties
// into a Go slice, the same spreading Function.prototype.apply needs.
func valuesFromArrayLike(v value.Value, c object.Caller) []value.Value {
	o, ok := asObject(v)
	if !ok {
		return nil
	}
	n := int(value.ToInteger(o.Get(object.StringKey("length"), o, c), c))
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		out[i] = o.Get(object.StringKey(strconv.Itoa(i)), o, c)
	}
	return out
}
