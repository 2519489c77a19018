package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallArrayBuffer wires ArrayBuffer and DataView, the two binary-data
// constructors spec §4.4 names alongside the TypedArray family: a raw byte
// store with a detached flag (object.ArrayBufferSlots), and a view over it
// that reads/writes individual element types at an arbitrary byte offset,
// per §3's internal-slot layout. DataView access is always little-endian;
// a littleEndian argument is not read.
func InstallArrayBuffer(r *Registry) {
	proto := r.ArrayBufferProto

	r.Accessor(proto, "byteLength", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisArrayBuffer(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(len(o.ArrayBufferSlots().Bytes))
	}, nil)
	r.Method(proto, "slice", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisArrayBuffer(this, c)
		if !ok {
			return value.Undefined
		}
		bs := o.ArrayBufferSlots()
		n := len(bs.Bytes)
		start := relativeIndex(args, 0, c, n, 0)
		end := relativeIndex(args, 1, c, n, n)
		if end < start {
			end = start
		}
		out := r.GC.Allocate(object.NewArrayBuffer(proto, end-start))
		copy(out.ArrayBufferSlots().Bytes, bs.Bytes[start:end])
		return out
	})

	ctor := NewConstructor(r.FunctionProto, "ArrayBuffer", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor ArrayBuffer requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			n := int(value.ToInteger(arg(args, 0), c))
			if n < 0 {
				c.ThrowRangeError("Invalid array buffer length")
				return value.Undefined
			}
			return r.GC.Allocate(object.NewArrayBuffer(proto, n))
		},
	)
	r.Method(ctor, "isView", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(arg(args, 0))
		return value.Boolean(ok && (o.Tag() == object.TagTypedArray || o.Tag() == object.TagDataView))
	})
	r.DefineGlobal("ArrayBuffer", ctor)

	installDataView(r)
}

func thisArrayBuffer(this value.Value, c object.Caller) (*object.Object, bool) {
	o, ok := thisObject(this, c, "ArrayBuffer method")
	if !ok || o.Tag() != object.TagArrayBuffer || o.ArrayBufferSlots() == nil {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return o, true
}

// relativeIndex resolves a (possibly negative, possibly omitted) slice-style
// argument against length n, clamping into [0, n].
func relativeIndex(args []value.Value, i int, c object.Caller, n, def int) int {
	v := arg(args, i)
	if value.IsUndefined(v) {
		return def
	}
	idx := int(value.ToInteger(v, c))
	if idx < 0 {
		idx += n
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}

func installDataView(r *Registry) {
	proto := r.DataViewProto

	r.Accessor(proto, "buffer", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisDataView(this, c)
		if !ok {
			return value.Undefined
		}
		return o.DataViewSlots().Buffer
	}, nil)
	r.Accessor(proto, "byteLength", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisDataView(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(o.DataViewSlots().ByteLength)
	}, nil)
	r.Accessor(proto, "byteOffset", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisDataView(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(o.DataViewSlots().ByteOffset)
	}, nil)

	for _, e := range []struct {
		name string
		kind object.TypedArrayKind
	}{
		{"Int8", object.KindInt8}, {"Uint8", object.KindUint8},
		{"Int16", object.KindInt16}, {"Uint16", object.KindUint16},
		{"Int32", object.KindInt32}, {"Uint32", object.KindUint32},
		{"Float32", object.KindFloat32}, {"Float64", object.KindFloat64},
	} {
		kind := e.kind
		r.Method(proto, "get"+e.name, 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			o, ok := thisDataView(this, c)
			if !ok {
				return value.Undefined
			}
			return value.Number(object.DataViewRead(o.DataViewSlots(), int(value.ToInteger(arg(args, 0), c)), kind))
		})
		r.Method(proto, "set"+e.name, 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			o, ok := thisDataView(this, c)
			if !ok {
				return value.Undefined
			}
			object.DataViewWrite(o.DataViewSlots(), int(value.ToInteger(arg(args, 0), c)), kind, float64(value.ToNumber(arg(args, 1), c)))
			return value.Undefined
		})
	}

	ctor := NewConstructor(r.FunctionProto, "DataView", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor DataView requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			buf, ok := asObject(arg(args, 0))
			if !ok || buf.Tag() != object.TagArrayBuffer {
				c.ThrowTypeError("First argument to DataView constructor must be an ArrayBuffer")
				return value.Undefined
			}
			total := len(buf.ArrayBufferSlots().Bytes)
			offset := 0
			if !value.IsUndefined(arg(args, 1)) {
				offset = int(value.ToInteger(args[1], c))
			}
			length := total - offset
			if len(args) > 2 && !value.IsUndefined(args[2]) {
				length = int(value.ToInteger(args[2], c))
			}
			if offset < 0 || length < 0 || offset+length > total {
				c.ThrowRangeError("Invalid DataView length")
				return value.Undefined
			}
			return r.GC.Allocate(object.NewDataView(proto, buf, offset, length))
		},
	)
	r.DefineGlobal("DataView", ctor)
}

func thisDataView(this value.Value, c object.Caller) (*object.Object, bool) {
	o, ok := thisObject(this, c, "DataView method")
	if !ok || o.Tag() != object.TagDataView || o.DataViewSlots() == nil {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return o, true
}
