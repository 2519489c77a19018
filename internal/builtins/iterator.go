package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallIteratorGlobal exposes the abstract Iterator constructor spec §4.4
// names, chained to the IteratorProto Bootstrap already allocates (every
// built-in iterator object — array/string/map/set iterators — chains to
// it, the same shared-abstract-prototype shape InstallTypedArrays uses for
// %TypedArray%.prototype). Iterator itself throws a TypeError both when
// called and when constructed.
func InstallIteratorGlobal(r *Registry) {
	proto := r.IteratorProto

	selfFn := object.NewFunction(r.FunctionProto, "[Symbol.iterator]", 0,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return this
		})
	proto.DefineProperty(object.SymbolKey(r.WellKnown.Iterator), object.BuiltinMethodProperty(value.Value(selfFn)))

	ctor := NewConstructor(r.FunctionProto, "Iterator", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Iterator requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			c.ThrowTypeError("Abstract class Iterator not directly constructable")
			return value.Undefined
		},
	)
	r.DefineGlobal("Iterator", ctor)
}
