package builtins

import (
	"strconv"
	"strings"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// uint32KeyString renders a canonical array-index property key.
func uint32KeyString(i uint32) string { return strconv.FormatUint(uint64(i), 10) }

// newArrayOf allocates a fresh Array populated with vals, set via ordinary
// indexed-property definition so ArraySlots.Length tracks correctly.
func newArrayOf(r *Registry, c object.Caller, vals []value.Value) *object.Object {
	arr := r.GC.Allocate(object.NewArray(r.ArrayProto, 0))
	for i, v := range vals {
		arr.DefineProperty(object.StringKey(uint32KeyString(uint32(i))), object.DefaultDataProperty(v))
	}
	return arr
}

func arrayElems(c object.Caller, o *object.Object) []value.Value {
	n := o.Length()
	out := make([]value.Value, n)
	for i := uint32(0); i < n; i++ {
		out[i] = o.Get(object.StringKey(uint32KeyString(i)), o, c)
	}
	return out
}

// InstallArray wires the Array constructor, Array.isArray/of/from, and the
// Array.prototype iteration/mutation surface from spec §3's length
// invariant and §8's testable-properties list.
//
// Grounded on internal/interp/builtins_array.go's per-method NativeFunc
// table, generalized from DWScript's fixed-size array type to the
// resizable, length-tracking Array object described in spec §3/§4.2.
func InstallArray(r *Registry) {
	proto := r.ArrayProto

	r.Method(proto, "push", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.push")
		if !ok {
			return value.Undefined
		}
		n := o.Length()
		for _, v := range args {
			o.Set(object.StringKey(uint32KeyString(n)), v, o, c)
			n++
		}
		return value.Number(o.Length())
	})

	r.Method(proto, "pop", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.pop")
		if !ok || o.Length() == 0 {
			return value.Undefined
		}
		last := o.Length() - 1
		key := object.StringKey(uint32KeyString(last))
		v := o.Get(key, o, c)
		o.Delete(key)
		o.Set(object.StringKey("length"), value.Number(last), o, c)
		return v
	})

	r.Method(proto, "shift", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.shift")
		if !ok || o.Length() == 0 {
			return value.Undefined
		}
		elems := arrayElems(c, o)
		first := elems[0]
		for i := 1; i < len(elems); i++ {
			o.Set(object.StringKey(uint32KeyString(uint32(i-1))), elems[i], o, c)
		}
		o.Delete(object.StringKey(uint32KeyString(uint32(len(elems) - 1))))
		o.Set(object.StringKey("length"), value.Number(len(elems)-1), o, c)
		return first
	})

	r.Method(proto, "unshift", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.unshift")
		if !ok {
			return value.Undefined
		}
		elems := arrayElems(c, o)
		merged := append(append([]value.Value{}, args...), elems...)
		for i, v := range merged {
			o.Set(object.StringKey(uint32KeyString(uint32(i))), v, o, c)
		}
		o.Set(object.StringKey("length"), value.Number(len(merged)), o, c)
		return value.Number(len(merged))
	})

	r.Method(proto, "slice", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.slice")
		if !ok {
			return value.Undefined
		}
		elems := arrayElems(c, o)
		start, end := sliceRange(len(elems), args, c)
		return newArrayOf(r, c, append([]value.Value{}, elems[start:end]...))
	})

	r.Method(proto, "splice", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.splice")
		if !ok {
			return value.Undefined
		}
		elems := arrayElems(c, o)
		n := len(elems)
		start := clampIndex(int(value.ToInteger(arg(args, 0), c)), n)
		deleteCount := n - start
		if len(args) >= 2 {
			dc := int(value.ToInteger(args[1], c))
			if dc < 0 {
				dc = 0
			}
			if dc > n-start {
				dc = n - start
			}
			deleteCount = dc
		}
		removed := append([]value.Value{}, elems[start:start+deleteCount]...)
		var inserted []value.Value
		if len(args) > 2 {
			inserted = args[2:]
		}
		result := append([]value.Value{}, elems[:start]...)
		result = append(result, inserted...)
		result = append(result, elems[start+deleteCount:]...)
		for i := len(result); i < n; i++ {
			o.Delete(object.StringKey(uint32KeyString(uint32(i))))
		}
		for i, v := range result {
			o.Set(object.StringKey(uint32KeyString(uint32(i))), v, o, c)
		}
		o.Set(object.StringKey("length"), value.Number(len(result)), o, c)
		return newArrayOf(r, c, removed)
	})

	r.Method(proto, "concat", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.concat")
		if !ok {
			return value.Undefined
		}
		out := append([]value.Value{}, arrayElems(c, o)...)
		for _, a := range args {
			if ao, ok := asObject(a); ok && ao.Tag() == object.TagArray {
				out = append(out, arrayElems(c, ao)...)
			} else {
				out = append(out, a)
			}
		}
		return newArrayOf(r, c, out)
	})

	r.Method(proto, "join", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.join")
		if !ok {
			return value.Undefined
		}
		sep := ","
		if len(args) > 0 && !value.IsUndefined(args[0]) {
			sep = string(value.ToString(args[0], c))
		}
		parts := make([]string, 0, o.Length())
		for _, v := range arrayElems(c, o) {
			if value.IsNullOrUndefined(v) {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, string(value.ToString(v, c)))
		}
		return value.String(strings.Join(parts, sep))
	})

	r.Method(proto, "reverse", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.reverse")
		if !ok {
			return value.Undefined
		}
		elems := arrayElems(c, o)
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
		for i, v := range elems {
			o.Set(object.StringKey(uint32KeyString(uint32(i))), v, o, c)
		}
		return o
	})

	r.Method(proto, "indexOf", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.indexOf")
		if !ok {
			return value.Undefined
		}
		target := arg(args, 0)
		for i, v := range arrayElems(c, o) {
			if value.StrictEquals(v, target) {
				return value.Number(i)
			}
		}
		return value.Number(-1)
	})

	r.Method(proto, "includes", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.includes")
		if !ok {
			return value.Undefined
		}
		target := arg(args, 0)
		for _, v := range arrayElems(c, o) {
			if value.SameValueZero(v, target) {
				return value.True
			}
		}
		return value.False
	})

	r.Method(proto, "forEach", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.forEach")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		thisArg := arg(args, 1)
		for i, v := range arrayElems(c, o) {
			fn.Call(c, thisArg, []value.Value{v, value.Number(i), o})
			if c.HasException() {
				return value.Undefined
			}
		}
		return value.Undefined
	})

	r.Method(proto, "map", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.map")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		thisArg := arg(args, 1)
		var out []value.Value
		for i, v := range arrayElems(c, o) {
			out = append(out, fn.Call(c, thisArg, []value.Value{v, value.Number(i), o}))
			if c.HasException() {
				return value.Undefined
			}
		}
		return newArrayOf(r, c, out)
	})

	r.Method(proto, "filter", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.filter")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		thisArg := arg(args, 1)
		var out []value.Value
		for i, v := range arrayElems(c, o) {
			if bool(value.ToBoolean(fn.Call(c, thisArg, []value.Value{v, value.Number(i), o}))) {
				out = append(out, v)
			}
			if c.HasException() {
				return value.Undefined
			}
		}
		return newArrayOf(r, c, out)
	})

	r.Method(proto, "reduce", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.reduce")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		elems := arrayElems(c, o)
		i := 0
		var acc value.Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(elems) == 0 {
				c.ThrowTypeError("Reduce of empty array with no initial value")
				return value.Undefined
			}
			acc = elems[0]
			i = 1
		}
		for ; i < len(elems); i++ {
			acc = fn.Call(c, value.Undefined, []value.Value{acc, elems[i], value.Number(i), o})
			if c.HasException() {
				return value.Undefined
			}
		}
		return acc
	})

	r.Method(proto, "find", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.find")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		for i, v := range arrayElems(c, o) {
			if bool(value.ToBoolean(fn.Call(c, value.Undefined, []value.Value{v, value.Number(i), o}))) {
				return v
			}
		}
		return value.Undefined
	})

	r.Method(proto, "findIndex", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.findIndex")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		for i, v := range arrayElems(c, o) {
			if bool(value.ToBoolean(fn.Call(c, value.Undefined, []value.Value{v, value.Number(i), o}))) {
				return value.Number(i)
			}
		}
		return value.Number(-1)
	})

	r.Method(proto, "some", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.some")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		for i, v := range arrayElems(c, o) {
			if bool(value.ToBoolean(fn.Call(c, value.Undefined, []value.Value{v, value.Number(i), o}))) {
				return value.True
			}
		}
		return value.False
	})

	r.Method(proto, "every", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.every")
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("%s is not a function", "callback")
			return value.Undefined
		}
		for i, v := range arrayElems(c, o) {
			if !bool(value.ToBoolean(fn.Call(c, value.Undefined, []value.Value{v, value.Number(i), o}))) {
				return value.False
			}
		}
		return value.True
	})

	// sort is a stable insertion sort: array sizes in practice are small and
	// this sidesteps having to adapt Go's non-stable sort.Slice to a
	// comparator that can itself throw mid-comparison.
	r.Method(proto, "sort", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.sort")
		if !ok {
			return value.Undefined
		}
		cmp, _ := asObject(arg(args, 0))
		elems := arrayElems(c, o)
		less := func(a, b value.Value) bool {
			if value.IsUndefined(a) {
				return false
			}
			if value.IsUndefined(b) {
				return true
			}
			if cmp != nil && cmp.IsCallable() {
				return float64(value.ToNumber(cmp.Call(c, value.Undefined, []value.Value{a, b}), c)) < 0
			}
			return string(value.ToString(a, c)) < string(value.ToString(b, c))
		}
		for i := 1; i < len(elems); i++ {
			for j := i; j > 0 && less(elems[j], elems[j-1]); j-- {
				elems[j], elems[j-1] = elems[j-1], elems[j]
			}
		}
		for i, v := range elems {
			o.Set(object.StringKey(uint32KeyString(uint32(i))), v, o, c)
		}
		return o
	})

	r.Method(proto, "flat", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.flat")
		if !ok {
			return value.Undefined
		}
		depth := 1
		if len(args) > 0 {
			depth = int(value.ToInteger(args[0], c))
		}
		return newArrayOf(r, c, flattenArray(c, arrayElems(c, o), depth))
	})

	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Array.prototype.toString")
		if !ok {
			return value.Undefined
		}
		if join, ok := o.Get(object.StringKey("join"), o, c).(*object.Object); ok && join.IsCallable() {
			return join.Call(c, o, nil)
		}
		return value.String("")
	})

	ctor := NewConstructor(r.FunctionProto, "Array", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value { return arrayConstruct(r, c, args) },
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value { return arrayConstruct(r, c, args) },
	)
	r.Method(ctor, "isArray", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		return value.Boolean(ok && o.Tag() == object.TagArray)
	})
	r.Method(ctor, "of", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return newArrayOf(r, c, args)
	})
	r.Method(ctor, "from", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		src, ok := asObject(arg(args, 0))
		if !ok {
			return newArrayOf(r, c, nil)
		}
		mapFn, _ := asObject(arg(args, 1))
		elems := arrayElems(c, src)
		if mapFn != nil && mapFn.IsCallable() {
			for i, v := range elems {
				elems[i] = mapFn.Call(c, value.Undefined, []value.Value{v, value.Number(i)})
			}
		}
		return newArrayOf(r, c, elems)
	})

	r.DefineGlobal("Array", ctor)
}

func arrayConstruct(r *Registry, c object.Caller, args []value.Value) value.Value {
	if len(args) == 1 {
		if n, ok := args[0].(value.Number); ok {
			u := value.ToUint32(n, c)
			if float64(u) != float64(n) {
				c.ThrowRangeError("Invalid array length")
				return value.Undefined
			}
			return r.GC.Allocate(object.NewArray(r.ArrayProto, u))
		}
	}
	return newArrayOf(r, c, args)
}

func sliceRange(n int, args []value.Value, c object.Caller) (int, int) {
	start := 0
	end := n
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		start = clampIndex(int(value.ToInteger(args[0], c)), n)
	}
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		end = clampIndex(int(value.ToInteger(args[1], c)), n)
	}
	if end < start {
		end = start
	}
	return start, end
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func flattenArray(c object.Caller, elems []value.Value, depth int) []value.Value {
	var out []value.Value
	for _, v := range elems {
		if ao, ok := asObject(v); ok && ao.Tag() == object.TagArray && depth > 0 {
			out = append(out, flattenArray(c, arrayElems(c, ao), depth-1)...)
			continue
		}
		out = append(out, v)
	}
	return out
}
