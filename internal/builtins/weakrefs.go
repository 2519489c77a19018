package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/gc"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallWeakRefs wires WeakMap, WeakSet, WeakRef, and FinalizationRegistry
// onto internal/gc's ephemeron-correct weak-container machinery (spec
// §4.5: "Cycles through weak refs are reclaimable").
func InstallWeakRefs(r *Registry) {
	installWeakMap(r)
	installWeakSet(r)
	installWeakRef(r)
	installFinalizationRegistry(r)
}

func installWeakMap(r *Registry) {
	proto := r.WeakMapProto
	r.Method(proto, "get", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, key, ok := weakMapArgs(this, arg(args, 0), c)
		if !ok {
			return value.Undefined
		}
		v, found := gc.WeakMapGet(o, key)
		if !found {
			return value.Undefined
		}
		return v
	})
	r.Method(proto, "set", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, key, ok := weakMapArgs(this, arg(args, 0), c)
		if !ok {
			return value.Undefined
		}
		gc.WeakMapSet(o, key, arg(args, 1))
		return o
	})
	r.Method(proto, "has", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, key, ok := weakMapArgs(this, arg(args, 0), c)
		if !ok {
			return value.False
		}
		return value.Boolean(gc.WeakMapHas(o, key))
	})
	r.Method(proto, "delete", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, key, ok := weakMapArgs(this, arg(args, 0), c)
		if !ok {
			return value.False
		}
		return value.Boolean(gc.WeakMapDelete(o, key))
	})
	ctor := NewConstructor(r.FunctionProto, "WeakMap", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor WeakMap requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return gc.NewWeakMap(r.GC, proto)
		},
	)
	r.DefineGlobal("WeakMap", ctor)
}

func weakMapArgs(this, keyArg value.Value, c object.Caller) (*object.Object, *object.Object, bool) {
	o, ok := thisObject(this, c, "WeakMap method")
	if !ok || o.Tag() != object.TagWeakMap {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, nil, false
	}
	key, ok := asObject(keyArg)
	if !ok {
		c.ThrowTypeError("Invalid value used as weak map key")
		return nil, nil, false
	}
	return o, key, true
}

func installWeakSet(r *Registry) {
	proto := r.WeakSetProto
	r.Method(proto, "add", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, v, ok := weakSetArgs(this, arg(args, 0), c)
		if !ok {
			return value.Undefined
		}
		gc.WeakSetAdd(o, v)
		return o
	})
	r.Method(proto, "has", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, v, ok := weakSetArgs(this, arg(args, 0), c)
		if !ok {
			return value.False
		}
		return value.Boolean(gc.WeakSetHas(o, v))
	})
	r.Method(proto, "delete", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, v, ok := weakSetArgs(this, arg(args, 0), c)
		if !ok {
			return value.False
		}
		return value.Boolean(gc.WeakSetDelete(o, v))
	})
	ctor := NewConstructor(r.FunctionProto, "WeakSet", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor WeakSet requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return gc.NewWeakSet(r.GC, proto)
		},
	)
	r.DefineGlobal("WeakSet", ctor)
}

func weakSetArgs(this, vArg value.Value, c object.Caller) (*object.Object, *object.Object, bool) {
	o, ok := thisObject(this, c, "WeakSet method")
	if !ok || o.Tag() != object.TagWeakSet {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, nil, false
	}
	v, ok := asObject(vArg)
	if !ok {
		c.ThrowTypeError("Invalid value used in weak set")
		return nil, nil, false
	}
	return o, v, true
}

func installWeakRef(r *Registry) {
	proto := r.WeakRefProto
	r.Method(proto, "deref", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "WeakRef.prototype.deref")
		if !ok || o.Tag() != object.TagWeakRef {
			c.ThrowTypeError("method called on incompatible receiver")
			return value.Undefined
		}
		slots, _ := o.Slots().(*gc.WeakRefSlots)
		if slots == nil {
			return value.Undefined
		}
		return slots.Deref()
	})
	ctor := NewConstructor(r.FunctionProto, "WeakRef", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor WeakRef requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			target, ok := asObject(arg(args, 0))
			if !ok {
				c.ThrowTypeError("WeakRef target must be an object")
				return value.Undefined
			}
			return gc.NewWeakRef(r.GC, proto, target)
		},
	)
	r.DefineGlobal("WeakRef", ctor)
}

func installFinalizationRegistry(r *Registry) {
	proto := r.FinRegProto
	r.Method(proto, "register", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "FinalizationRegistry.prototype.register")
		if !ok || o.Tag() != object.TagFinalizationRegistry {
			c.ThrowTypeError("method called on incompatible receiver")
			return value.Undefined
		}
		target, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("target must be an object")
			return value.Undefined
		}
		var token *object.Object
		if len(args) > 2 {
			token, _ = asObject(args[2])
		}
		gc.FinalizationRegistryRegister(o, target, arg(args, 1), token)
		return value.Undefined
	})
	r.Method(proto, "unregister", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "FinalizationRegistry.prototype.unregister")
		if !ok || o.Tag() != object.TagFinalizationRegistry {
			c.ThrowTypeError("method called on incompatible receiver")
			return value.Undefined
		}
		token, ok := asObject(arg(args, 0))
		if !ok {
			return value.False
		}
		return value.Boolean(gc.FinalizationRegistryUnregister(o, token))
	})
	ctor := NewConstructor(r.FunctionProto, "FinalizationRegistry", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor FinalizationRegistry requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			callback, ok := asObject(arg(args, 0))
			if !ok || !callback.IsCallable() {
				c.ThrowTypeError("callback must be a function")
				return value.Undefined
			}
			return gc.NewFinalizationRegistry(r.GC, proto, callback)
		},
	)
	r.DefineGlobal("FinalizationRegistry", ctor)
}
