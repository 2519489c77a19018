package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallMapSet wires Map and Set, keyed by SameValueZero identity per
// spec §8's testable Map property, iterating in insertion order.
func InstallMapSet(r *Registry) {
	installMap(r)
	installSet(r)
}

func installMap(r *Registry) {
	proto := r.MapProto

	r.Method(proto, "get", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		v, _ := object.MapSlotsOf(o).Get(arg(args, 0))
		return v
	})
	r.Method(proto, "set", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		object.MapSlotsOf(o).Set(arg(args, 0), arg(args, 1))
		return o
	})
	r.Method(proto, "has", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Boolean(object.MapSlotsOf(o).Has(arg(args, 0)))
	})
	r.Method(proto, "delete", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Boolean(object.MapSlotsOf(o).Delete(arg(args, 0)))
	})
	r.Method(proto, "clear", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		object.MapSlotsOf(o).Clear()
		return value.Undefined
	})
	r.Method(proto, "forEach", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("callback is not a function")
			return value.Undefined
		}
		thisArg := arg(args, 1)
		for _, kv := range object.MapSlotsOf(o).Entries() {
			fn.Call(c, thisArg, []value.Value{kv[1], kv[0], o})
			if c.HasException() {
				return value.Undefined
			}
		}
		return value.Undefined
	})
	r.Method(proto, "keys", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		var keys []value.Value
		for _, kv := range object.MapSlotsOf(o).Entries() {
			keys = append(keys, kv[0])
		}
		return newArrayOf(r, c, keys)
	})
	r.Method(proto, "values", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		var vals []value.Value
		for _, kv := range object.MapSlotsOf(o).Entries() {
			vals = append(vals, kv[1])
		}
		return newArrayOf(r, c, vals)
	})
	r.Method(proto, "entries", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		var pairs []value.Value
		for _, kv := range object.MapSlotsOf(o).Entries() {
			pairs = append(pairs, newArrayOf(r, c, []value.Value{kv[0], kv[1]}))
		}
		return newArrayOf(r, c, pairs)
	})
	r.Accessor(proto, "size", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisMap(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(object.MapSlotsOf(o).Size())
	}, nil)

	ctor := NewConstructor(r.FunctionProto, "Map", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Map requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			p := proto
			if newTarget != nil {
				if np, ok := asObject(newTarget.Get(object.StringKey("prototype"), newTarget, c)); ok {
					p = np
				}
			}
			m := r.GC.Allocate(object.NewWithTag(p, object.TagMap))
			m.SetSlots(object.NewMapSlots())
			if iter := arg(args, 0); !value.IsNullOrUndefined(iter) {
				if src, ok := asObject(iter); ok {
					for _, entry := range arrayElems(c, src) {
						if pair, ok := asObject(entry); ok {
							object.MapSlotsOf(m).Set(pair.Get(object.StringKey("0"), pair, c), pair.Get(object.StringKey("1"), pair, c))
						}
					}
				}
			}
			return m
		},
	)
	r.DefineGlobal("Map", ctor)
}

func installSet(r *Registry) {
	proto := r.SetProto

	r.Method(proto, "add", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisSet(this, c)
		if !ok {
			return value.Undefined
		}
		object.SetSlotsOf(o).Add(arg(args, 0))
		return o
	})
	r.Method(proto, "has", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisSet(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Boolean(object.SetSlotsOf(o).Has(arg(args, 0)))
	})
	r.Method(proto, "delete", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisSet(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Boolean(object.SetSlotsOf(o).Delete(arg(args, 0)))
	})
	r.Method(proto, "clear", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisSet(this, c)
		if !ok {
			return value.Undefined
		}
		object.SetSlotsOf(o).Clear()
		return value.Undefined
	})
	r.Method(proto, "forEach", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisSet(this, c)
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("callback is not a function")
			return value.Undefined
		}
		thisArg := arg(args, 1)
		for _, v := range object.SetSlotsOf(o).Values() {
			fn.Call(c, thisArg, []value.Value{v, v, o})
			if c.HasException() {
				return value.Undefined
			}
		}
		return value.Undefined
	})
	r.Method(proto, "values", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisSet(this, c)
		if !ok {
			return value.Undefined
		}
		return newArrayOf(r, c, object.SetSlotsOf(o).Values())
	})
	r.Accessor(proto, "size", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisSet(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(object.SetSlotsOf(o).Size())
	}, nil)

	ctor := NewConstructor(r.FunctionProto, "Set", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Set requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			p := proto
			if newTarget != nil {
				if np, ok := asObject(newTarget.Get(object.StringKey("prototype"), newTarget, c)); ok {
					p = np
				}
			}
			s := r.GC.Allocate(object.NewWithTag(p, object.TagSet))
			s.SetSlots(object.NewSetSlots())
			if iter := arg(args, 0); !value.IsNullOrUndefined(iter) {
				if src, ok := asObject(iter); ok {
					for _, v := range arrayElems(c, src) {
						object.SetSlotsOf(s).Add(v)
					}
				}
			}
			return s
		},
	)
	r.DefineGlobal("Set", ctor)
}

func thisMap(this value.Value, c object.Caller) (*object.Object, bool) {
	o, ok := thisObject(this, c, "Map method")
	if !ok {
		return nil, false
	}
	if o.Tag() != object.TagMap || object.MapSlotsOf(o) == nil {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return o, true
}

func thisSet(this value.Value, c object.Caller) (*object.Object, bool) {
	o, ok := thisObject(this, c, "Set method")
	if !ok {
		return nil, false
	}
	if o.Tag() != object.TagSet || object.SetSlotsOf(o) == nil {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return o, true
}
