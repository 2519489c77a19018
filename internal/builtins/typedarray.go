package builtins

import (
	"strconv"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallTypedArrays wires the nine TypedArray constructors spec §4.4 names
// (Int8Array through Float64Array), each using a single shared
// %TypedArray%.prototype as its prototype object — the shared methods
// (indexOf/fill/map/...) live there. There is no abstract %TypedArray%
// constructor: each of the nine constructors inherits directly from
// Function.prototype. This mirrors the teacher's own single-prototype-many-constructors
// pattern for its error hierarchy (internal/interp's RuntimeError kinds).
func InstallTypedArrays(r *Registry) {
	proto := r.TypedArrayProto

	r.Accessor(proto, "length", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(ts.Length)
	}, nil)
	r.Accessor(proto, "byteLength", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(ts.Length * ts.Kind.ElementSize())
	}, nil)
	r.Accessor(proto, "byteOffset", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(ts.ByteOffset)
	}, nil)
	r.Accessor(proto, "buffer", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		return ts.Buffer
	}, nil)

	r.Method(proto, "fill", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		v := float64(value.ToNumber(arg(args, 0), c))
		start := relativeIndex(args, 1, c, ts.Length, 0)
		end := relativeIndex(args, 2, c, ts.Length, ts.Length)
		for i := start; i < end; i++ {
			ts.WriteElement(i, v)
		}
		return this
	})
	r.Method(proto, "set", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		offset := 0
		if !value.IsUndefined(arg(args, 1)) {
			offset = int(value.ToInteger(args[1], c))
		}
		src, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("source must be an array-like object")
			return value.Undefined
		}
		srcTS := src.TypedArraySlots()
		n := 0
		if srcTS != nil {
			n = srcTS.Length
		} else if lv := src.Get(object.StringKey("length"), src, c); !value.IsUndefined(lv) {
			n = int(value.ToInteger(lv, c))
		}
		for i := 0; i < n; i++ {
			var v float64
			if srcTS != nil {
				v = srcTS.ReadElement(i)
			} else {
				v = float64(value.ToNumber(src.Get(object.StringKey(strconv.Itoa(i)), src, c), c))
			}
			if offset+i < ts.Length {
				ts.WriteElement(offset+i, v)
			}
		}
		return value.Undefined
	})
	r.Method(proto, "subarray", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		start := relativeIndex(args, 0, c, ts.Length, 0)
		end := relativeIndex(args, 1, c, ts.Length, ts.Length)
		if end < start {
			end = start
		}
		size := ts.Kind.ElementSize()
		sub := object.NewTypedArray(proto, ts.Buffer, ts.ByteOffset+start*size, end-start, ts.Kind)
		return r.GC.Allocate(sub)
	})
	r.Method(proto, "slice", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		start := relativeIndex(args, 0, c, ts.Length, 0)
		end := relativeIndex(args, 1, c, ts.Length, ts.Length)
		if end < start {
			end = start
		}
		size := ts.Kind.ElementSize()
		out := r.GC.Allocate(object.NewArrayBuffer(r.ArrayBufferProto, (end-start)*size))
		outTS := object.NewTypedArray(proto, out, 0, end-start, ts.Kind)
		dst := r.GC.Allocate(outTS)
		for i := start; i < end; i++ {
			outTS.WriteElement(i-start, ts.ReadElement(i))
		}
		return dst
	})
	r.Method(proto, "indexOf", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		target := float64(value.ToNumber(arg(args, 0), c))
		for i := 0; i < ts.Length; i++ {
			if ts.ReadElement(i) == target {
				return value.Number(i)
			}
		}
		return value.Number(-1)
	})
	r.Method(proto, "join", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		sep := ","
		if !value.IsUndefined(arg(args, 0)) {
			sep = string(value.ToString(args[0], c))
		}
		s := ""
		for i := 0; i < ts.Length; i++ {
			if i > 0 {
				s += sep
			}
			s += string(value.ToString(value.Number(ts.ReadElement(i)), c))
		}
		return value.String(s)
	})
	r.Method(proto, "forEach", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("callback is not a function")
			return value.Undefined
		}
		for i := 0; i < ts.Length; i++ {
			c.CallFunction(fn, arg(args, 1), []value.Value{value.Number(ts.ReadElement(i)), value.Number(i), this})
		}
		return value.Undefined
	})
	r.Method(proto, "map", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		ts, ok := thisTypedArray(this, c)
		if !ok {
			return value.Undefined
		}
		fn, ok := asObject(arg(args, 0))
		if !ok || !fn.IsCallable() {
			c.ThrowTypeError("callback is not a function")
			return value.Undefined
		}
		out := r.GC.Allocate(object.NewArrayBuffer(r.ArrayBufferProto, ts.Length*ts.Kind.ElementSize()))
		outTS := object.NewTypedArray(proto, out, 0, ts.Length, ts.Kind)
		dst := r.GC.Allocate(outTS)
		for i := 0; i < ts.Length; i++ {
			res := c.CallFunction(fn, arg(args, 1), []value.Value{value.Number(ts.ReadElement(i)), value.Number(i), this})
			outTS.WriteElement(i, float64(value.ToNumber(res, c)))
		}
		return dst
	})

	for _, e := range []struct {
		name string
		kind object.TypedArrayKind
	}{
		{"Int8Array", object.KindInt8}, {"Uint8Array", object.KindUint8},
		{"Uint8ClampedArray", object.KindUint8Clamped},
		{"Int16Array", object.KindInt16}, {"Uint16Array", object.KindUint16},
		{"Int32Array", object.KindInt32}, {"Uint32Array", object.KindUint32},
		{"Float32Array", object.KindFloat32}, {"Float64Array", object.KindFloat64},
	} {
		name, kind := e.name, e.kind
		ctor := NewConstructor(r.FunctionProto, name, 1, proto,
			func(c object.Caller, this value.Value, args []value.Value) value.Value {
				c.ThrowTypeError("Constructor %s requires 'new'", name)
				return value.Undefined
			},
			func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
				return newTypedArrayInstance(r, proto, kind, args, c)
			},
		)
		r.DefineGlobal(name, ctor)
	}
}

func newTypedArrayInstance(r *Registry, proto *object.Object, kind object.TypedArrayKind, args []value.Value, c object.Caller) value.Value {
	size := kind.ElementSize()
	first := arg(args, 0)
	if buf, ok := asObject(first); ok && buf.Tag() == object.TagArrayBuffer {
		total := len(buf.ArrayBufferSlots().Bytes)
		offset := 0
		if !value.IsUndefined(arg(args, 1)) {
			offset = int(value.ToInteger(args[1], c))
		}
		length := (total - offset) / size
		if len(args) > 2 && !value.IsUndefined(args[2]) {
			length = int(value.ToInteger(args[2], c))
		}
		if offset < 0 || length < 0 || offset+length*size > total {
			c.ThrowRangeError("invalid typed array length")
			return value.Undefined
		}
		return r.GC.Allocate(object.NewTypedArray(proto, buf, offset, length, kind))
	}
	n := 0
	if !value.IsUndefined(first) {
		n = int(value.ToInteger(first, c))
	}
	if n < 0 {
		c.ThrowRangeError("Invalid typed array length")
		return value.Undefined
	}
	buf := r.GC.Allocate(object.NewArrayBuffer(r.ArrayBufferProto, n*size))
	return r.GC.Allocate(object.NewTypedArray(proto, buf, 0, n, kind))
}

func thisTypedArray(this value.Value, c object.Caller) (*object.TypedArraySlots, bool) {
	o, ok := thisObject(this, c, "TypedArray method")
	if !ok {
		return nil, false
	}
	ts := o.TypedArraySlots()
	if ts == nil {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return ts, true
}
