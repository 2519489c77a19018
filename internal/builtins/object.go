package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallObject wires the Object constructor and Object.prototype/static
// methods from spec §3/§4.2's property-descriptor protocol.
//
// Grounded on internal/interp/builtins_object.go's RegisterObjectBuiltins
// method-table pattern (name -> NativeFunc map installed via DefineProperty),
// generalized from DWScript's field/method introspection to the full
// descriptor-level Object.defineProperty/getOwnPropertyDescriptor/
// keys/values/entries/assign/freeze/seal surface.
func InstallObject(r *Registry) {
	proto := r.ObjectProto

	r.Method(proto, "hasOwnProperty", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Object.prototype.hasOwnProperty")
		if !ok {
			return value.Undefined
		}
		key := object.KeyFromValue(value.ToPropertyKey(arg(args, 0), c))
		return value.Boolean(o.GetOwn(key) != nil)
	})

	r.Method(proto, "isPrototypeOf", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Object.prototype.isPrototypeOf")
		if !ok {
			return value.Undefined
		}
		target, ok := asObject(arg(args, 0))
		if !ok {
			return value.False
		}
		for cur := target.Proto(); cur != nil; cur = cur.Proto() {
			if cur == o {
				return value.True
			}
		}
		return value.False
	})

	r.Method(proto, "propertyIsEnumerable", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Object.prototype.propertyIsEnumerable")
		if !ok {
			return value.Undefined
		}
		key := object.KeyFromValue(value.ToPropertyKey(arg(args, 0), c))
		d := o.GetOwn(key)
		return value.Boolean(d != nil && d.Enumerable)
	})

	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		if o, ok := asObject(this); ok {
			return value.String("[object " + o.Tag().String() + "]")
		}
		return value.String("[object Undefined]")
	})

	r.Method(proto, "toLocaleString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		if o, ok := asObject(this); ok {
			if fn, ok := o.Get(object.StringKey("toString"), o, c).(*object.Object); ok && fn.IsCallable() {
				return fn.Call(c, o, nil)
			}
		}
		return value.String("[object Object]")
	})

	r.Method(proto, "valueOf", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return this
	})

	ctor := NewConstructor(r.FunctionProto, "Object", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return objectConstruct(r, c, arg(args, 0))
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return objectConstruct(r, c, arg(args, 0))
		},
	)

	r.Method(ctor, "keys", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return stringKeyArray(r, c, arg(args, 0), func(o *object.Object) []string {
			return enumerableStringKeys(o)
		})
	})
	r.Method(ctor, "values", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Object.values called on non-object")
			return value.Undefined
		}
		var vals []value.Value
		for _, k := range enumerableStringKeys(o) {
			vals = append(vals, o.Get(object.StringKey(k), o, c))
		}
		return newArrayOf(r, c, vals)
	})
	r.Method(ctor, "entries", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Object.entries called on non-object")
			return value.Undefined
		}
		var pairs []value.Value
		for _, k := range enumerableStringKeys(o) {
			entry := newArrayOf(r, c, []value.Value{value.String(k), o.Get(object.StringKey(k), o, c)})
			pairs = append(pairs, entry)
		}
		return newArrayOf(r, c, pairs)
	})
	r.Method(ctor, "assign", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		target, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Object.assign target must be an object")
			return value.Undefined
		}
		for _, src := range args[min(1, len(args)):] {
			so, ok := asObject(src)
			if !ok {
				continue
			}
			for _, k := range enumerableStringKeys(so) {
				target.Set(object.StringKey(k), so.Get(object.StringKey(k), so, c), target, c)
			}
		}
		return target
	})
	r.Method(ctor, "freeze", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		if o, ok := asObject(arg(args, 0)); ok {
			o.Freeze()
		}
		return arg(args, 0)
	})
	r.Method(ctor, "isFrozen", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		return value.Boolean(!ok || o.IsFrozen())
	})
	r.Method(ctor, "seal", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		if o, ok := asObject(arg(args, 0)); ok {
			o.Seal()
		}
		return arg(args, 0)
	})
	r.Method(ctor, "isSealed", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		return value.Boolean(!ok || o.IsSealed())
	})
	r.Method(ctor, "preventExtensions", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		if o, ok := asObject(arg(args, 0)); ok {
			o.PreventExtensions()
		}
		return arg(args, 0)
	})
	r.Method(ctor, "isExtensible", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		return value.Boolean(ok && o.IsExtensible())
	})
	r.Method(ctor, "getPrototypeOf", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok || o.Proto() == nil {
			return value.Null
		}
		return o.Proto()
	})
	r.Method(ctor, "setPrototypeOf", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Object.setPrototypeOf called on non-object")
			return arg(args, 0)
		}
		var proto *object.Object
		if p, ok := asObject(arg(args, 1)); ok {
			proto = p
		}
		if !o.SetPrototype(proto) {
			c.ThrowTypeError("Cyclic __proto__ value")
		}
		return o
	})
	r.Method(ctor, "create", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		var proto *object.Object
		if p, ok := asObject(arg(args, 0)); ok {
			proto = p
		} else if !value.IsNull(arg(args, 0)) {
			c.ThrowTypeError("Object prototype may only be an Object or null")
			return value.Undefined
		}
		o := r.GC.Allocate(object.New(proto))
		if props, ok := asObject(arg(args, 1)); ok {
			definePropertiesFrom(r, c, o, props)
		}
		return o
	})
	r.Method(ctor, "defineProperty", 3, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Object.defineProperty called on non-object")
			return value.Undefined
		}
		desc, ok := asObject(arg(args, 2))
		if !ok {
			c.ThrowTypeError("Property description must be an object")
			return value.Undefined
		}
		key := object.KeyFromValue(value.ToPropertyKey(arg(args, 1), c))
		if !o.DefineProperty(key, descriptorFromObject(c, o.GetOwn(key), desc)) {
			c.ThrowTypeError("Cannot redefine property")
		}
		return o
	})
	r.Method(ctor, "defineProperties", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Object.defineProperties called on non-object")
			return value.Undefined
		}
		if props, ok := asObject(arg(args, 1)); ok {
			definePropertiesFrom(r, c, o, props)
		}
		return o
	})
	r.Method(ctor, "getOwnPropertyNames", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return stringKeyArray(r, c, arg(args, 0), func(o *object.Object) []string {
			var out []string
			for _, k := range o.GetOwnKeys() {
				if !k.IsSymbol() {
					out = append(out, k.String())
				}
			}
			return out
		})
	})
	r.Method(ctor, "getOwnPropertyDescriptor", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		if !ok {
			return value.Undefined
		}
		key := object.KeyFromValue(value.ToPropertyKey(arg(args, 1), c))
		d := o.GetOwn(key)
		if d == nil {
			return value.Undefined
		}
		return descriptorToObject(r, c, d)
	})
	r.Method(ctor, "is", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Boolean(value.SameValue(arg(args, 0), arg(args, 1)))
	})
	r.Method(ctor, "fromEntries", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		src, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Object.fromEntries requires an iterable")
			return value.Undefined
		}
		out := r.GC.Allocate(object.New(r.ObjectProto))
		n := src.Length()
		for i := uint32(0); i < n; i++ {
			entryVal := src.Get(object.StringKey(uint32KeyString(i)), src, c)
			entry, ok := asObject(entryVal)
			if !ok {
				continue
			}
			k := entry.Get(object.StringKey("0"), entry, c)
			v := entry.Get(object.StringKey("1"), entry, c)
			out.DefineProperty(object.KeyFromValue(value.ToPropertyKey(k, c)), object.DefaultDataProperty(v))
		}
		return out
	})

	r.DefineGlobal("Object", ctor)
}

func objectConstruct(r *Registry, c object.Caller, v value.Value) value.Value {
	if value.IsNullOrUndefined(v) {
		return r.GC.Allocate(object.New(r.ObjectProto))
	}
	if o, ok := asObject(v); ok {
		return o
	}
	return boxPrimitive(r, c, v)
}

// boxPrimitive implements ToObject for the primitive wrapper types (spec
// §4.1: String/Number/Boolean/Symbol/BigInt primitives boxed on demand).
func boxPrimitive(r *Registry, c object.Caller, v value.Value) value.Value {
	switch t := v.(type) {
	case value.String:
		return r.GC.Allocate(object.NewStringObject(r.StringProto, string(t)))
	case value.Number:
		return r.GC.Allocate(object.NewNumberObject(r.NumberProto, float64(t)))
	case value.Boolean:
		return r.GC.Allocate(object.NewBooleanObject(r.BooleanProto, bool(t)))
	case value.BigInt:
		return r.GC.Allocate(object.NewBigIntObject(r.BigIntProto, t))
	case *value.Symbol:
		return r.GC.Allocate(object.NewSymbolObject(r.SymbolProto, t))
	default:
		if c != nil {
			c.ThrowTypeError("Cannot convert undefined or null to object")
		}
		return value.Undefined
	}
}

func enumerableStringKeys(o *object.Object) []string {
	var out []string
	for _, k := range o.GetEnumerableKeys() {
		if !k.IsSymbol() {
			out = append(out, k.String())
		}
	}
	return out
}

func stringKeyArray(r *Registry, c object.Caller, v value.Value, keysOf func(*object.Object) []string) value.Value {
	o, ok := asObject(v)
	if !ok {
		c.ThrowTypeError("called on non-object")
		return value.Undefined
	}
	var vals []value.Value
	for _, k := range keysOf(o) {
		vals = append(vals, value.String(k))
	}
	return newArrayOf(r, c, vals)
}

func definePropertiesFrom(r *Registry, c object.Caller, o *object.Object, props *object.Object) {
	for _, k := range enumerableStringKeys(props) {
		descVal := props.Get(object.StringKey(k), props, c)
		descObj, ok := asObject(descVal)
		if !ok {
			continue
		}
		key := object.StringKey(k)
		o.DefineProperty(key, descriptorFromObject(c, o.GetOwn(key), descObj))
	}
}

// descriptorFromObject resolves a partial JS descriptor literal against the
// CURRENT descriptor (nil meaning "no current descriptor, default to all
// attributes false"), per spec §4.2's ToPropertyDescriptor algorithm.
func descriptorFromObject(c object.Caller, current *object.PropertyDescriptor, desc *object.Object) *object.PropertyDescriptor {
	result := &object.PropertyDescriptor{}
	if current != nil {
		result = current.Clone()
	}
	if desc.Has(object.StringKey("value")) {
		result.Value = desc.Get(object.StringKey("value"), desc, c)
		result.IsAccessor = false
		result.Get, result.Set = nil, nil
	}
	if desc.Has(object.StringKey("writable")) {
		result.Writable = bool(value.ToBoolean(desc.Get(object.StringKey("writable"), desc, c)))
	}
	if desc.Has(object.StringKey("enumerable")) {
		result.Enumerable = bool(value.ToBoolean(desc.Get(object.StringKey("enumerable"), desc, c)))
	}
	if desc.Has(object.StringKey("configurable")) {
		result.Configurable = bool(value.ToBoolean(desc.Get(object.StringKey("configurable"), desc, c)))
	}
	if desc.Has(object.StringKey("get")) {
		if fn, ok := asObject(desc.Get(object.StringKey("get"), desc, c)); ok {
			result.Get = fn
			result.IsAccessor = true
			result.Value = nil
		}
	}
	if desc.Has(object.StringKey("set")) {
		if fn, ok := asObject(desc.Get(object.StringKey("set"), desc, c)); ok {
			result.Set = fn
			result.IsAccessor = true
			result.Value = nil
		}
	}
	return result
}

func descriptorToObject(r *Registry, c object.Caller, d *object.PropertyDescriptor) value.Value {
	out := r.GC.Allocate(object.New(r.ObjectProto))
	if d.IsAccessor {
		var get, set value.Value = value.Undefined, value.Undefined
		if d.Get != nil {
			get = d.Get
		}
		if d.Set != nil {
			set = d.Set
		}
		out.DefineProperty(object.StringKey("get"), object.DefaultDataProperty(get))
		out.DefineProperty(object.StringKey("set"), object.DefaultDataProperty(set))
	} else {
		v := d.Value
		if v == nil {
			v = value.Undefined
		}
		out.DefineProperty(object.StringKey("value"), object.DefaultDataProperty(v))
		out.DefineProperty(object.StringKey("writable"), object.DefaultDataProperty(value.Boolean(d.Writable)))
	}
	out.DefineProperty(object.StringKey("enumerable"), object.DefaultDataProperty(value.Boolean(d.Enumerable)))
	out.DefineProperty(object.StringKey("configurable"), object.DefaultDataProperty(value.Boolean(d.Configurable)))
	return out
}
