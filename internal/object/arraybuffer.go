package object

import "github.com/solarbrowser/quanta-go/internal/value"

// ArrayBufferSlots is the internal-slot payload for ArrayBuffer-tagged
// objects: a raw byte store plus the detached flag, per spec §3's "an
// ArrayBuffer has a byte store and a detached flag".
type ArrayBufferSlots struct {
	Bytes    []byte
	Detached bool
}

// NewArrayBuffer allocates a zero-filled byte store of the given length.
func NewArrayBuffer(proto *Object, length int) *Object {
	o := NewWithTag(proto, TagArrayBuffer)
	o.slots = &ArrayBufferSlots{Bytes: make([]byte, length)}
	return o
}

func (o *Object) ArrayBufferSlots() *ArrayBufferSlots {
	s, _ := o.slots.(*ArrayBufferSlots)
	return s
}

// TypedArrayKind identifies one of the nine element types spec §3/§4.4
// names (TypedArray constructors: Int8Array ... Float64Array), each
// chained to the abstract %TypedArray%.prototype.
type TypedArrayKind int

const (
	KindInt8 TypedArrayKind = iota
	KindUint8
	KindUint8Clamped
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat32
	KindFloat64
)

// ElementSize returns the per-element byte width for k.
func (k TypedArrayKind) ElementSize() int {
	switch k {
	case KindInt8, KindUint8, KindUint8Clamped:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindFloat64:
		return 8
	default:
		return 1
	}
}

func (k TypedArrayKind) String() string {
	switch k {
	case KindInt8:
		return "Int8Array"
	case KindUint8:
		return "Uint8Array"
	case KindUint8Clamped:
		return "Uint8ClampedArray"
	case KindInt16:
		return "Int16Array"
	case KindUint16:
		return "Uint16Array"
	case KindInt32:
		return "Int32Array"
	case KindUint32:
		return "Uint32Array"
	case KindFloat32:
		return "Float32Array"
	case KindFloat64:
		return "Float64Array"
	default:
		return "TypedArray"
	}
}

// TypedArraySlots is the internal-slot payload for TypedArray-tagged
// objects: a buffer reference plus byte offset/length/element type, per
// spec §3's "TypedArray has a buffer reference + byte offset + length +
// element type".
type TypedArraySlots struct {
	Buffer     *Object
	ByteOffset int
	Length     int // element count, not byte count
	Kind       TypedArrayKind
}

// NewTypedArray creates a TypedArray view over buffer starting at
// byteOffset, covering length elements of kind.
func NewTypedArray(proto, buffer *Object, byteOffset, length int, kind TypedArrayKind) *Object {
	o := NewWithTag(proto, TagTypedArray)
	o.slots = &TypedArraySlots{Buffer: buffer, ByteOffset: byteOffset, Length: length, Kind: kind}
	return o
}

func (o *Object) TypedArraySlots() *TypedArraySlots {
	s, _ := o.slots.(*TypedArraySlots)
	return s
}

// MarkSlots keeps the backing buffer alive for as long as a view over it
// is reachable, even if nothing else references the buffer directly.
func (ts *TypedArraySlots) MarkSlots(mark func(value.Value)) {
	if ts.Buffer != nil {
		mark(ts.Buffer)
	}
}

// typedArrayGet intercepts reads of "length" and of every numeric index
// (an out-of-range index reads as undefined without consulting the
// prototype chain); everything else falls through to ordinary property
// lookup.
func (o *Object) typedArrayGet(key Key) (value.Value, bool) {
	ts := o.TypedArraySlots()
	if ts == nil {
		return nil, false
	}
	if !key.IsSymbol() && key.String() == "length" {
		return value.Number(ts.Length), true
	}
	if idx, ok := key.arrayIndex(); ok {
		if int(idx) >= ts.Length {
			return value.Undefined, true
		}
		return value.Number(ts.readElement(int(idx))), true
	}
	return nil, false
}

// typedArraySet writes an in-range numeric index; out-of-range index
// writes are silently dropped per ECMA-262's IntegerIndexedElementSet (no
// exception, no property created). Returns false (not handled) for any
// other key so ordinary property semantics still apply.
func (o *Object) typedArraySet(key Key, v value.Value, c Caller) (bool, bool) {
	ts := o.TypedArraySlots()
	if ts == nil {
		return false, false
	}
	idx, ok := key.arrayIndex()
	if !ok {
		return false, false
	}
	n := float64(value.ToNumber(v, c))
	if int(idx) < ts.Length {
		ts.writeElement(int(idx), n)
	}
	return true, true
}

func (ts *TypedArraySlots) bytes() []byte {
	bs := ts.Buffer.ArrayBufferSlots()
	if bs == nil {
		return nil
	}
	return bs.Bytes
}

func (ts *TypedArraySlots) readElement(idx int) float64 {
	return readTypedElement(ts.bytes(), ts.ByteOffset+idx*ts.Kind.ElementSize(), ts.Kind)
}

func (ts *TypedArraySlots) writeElement(idx int, v float64) {
	writeTypedElement(ts.bytes(), ts.ByteOffset+idx*ts.Kind.ElementSize(), ts.Kind, v)
}

// ReadElement/WriteElement are the exported form of readElement/writeElement,
// for internal/builtins' TypedArray prototype methods (fill, set, map, ...)
// to use directly.
func (ts *TypedArraySlots) ReadElement(idx int) float64 { return ts.readElement(idx) }

func (ts *TypedArraySlots) WriteElement(idx int, v float64) { ts.writeElement(idx, v) }

// ProxySlots is the internal-slot payload for Proxy-tagged objects: the
// target object the proxy wraps and the handler object whose trap methods
// intercept [[Get]]/[[Set]]/[[Has]]/[[Delete]]/[[OwnPropertyKeys]].
type ProxySlots struct {
	Target  *Object
	Handler *Object
}

func NewProxy(target, handler *Object) *Object {
	o := NewWithTag(nil, TagProxy)
	o.slots = &ProxySlots{Target: target, Handler: handler}
	return o
}

func (o *Object) ProxySlots() *ProxySlots {
	s, _ := o.slots.(*ProxySlots)
	return s
}

// MarkSlots keeps both the target and the handler alive for as long as the
// proxy wrapping them is reachable.
func (ps *ProxySlots) MarkSlots(mark func(value.Value)) {
	if ps.Target != nil {
		mark(ps.Target)
	}
	if ps.Handler != nil {
		mark(ps.Handler)
	}
}

// DataViewSlots is the internal-slot payload for DataView-tagged objects: a
// buffer reference plus byte offset/length, read and written element-by-
// element at an explicit byte offset rather than through indexed access.
type DataViewSlots struct {
	Buffer     *Object
	ByteOffset int
	ByteLength int
}

func NewDataView(proto, buffer *Object, byteOffset, byteLength int) *Object {
	o := NewWithTag(proto, TagDataView)
	o.slots = &DataViewSlots{Buffer: buffer, ByteOffset: byteOffset, ByteLength: byteLength}
	return o
}

func (o *Object) DataViewSlots() *DataViewSlots {
	s, _ := o.slots.(*DataViewSlots)
	return s
}

// MarkSlots keeps the backing buffer alive for as long as this view over
// it is reachable.
func (dv *DataViewSlots) MarkSlots(mark func(value.Value)) {
	if dv.Buffer != nil {
		mark(dv.Buffer)
	}
}

// DataViewRead/DataViewWrite read or write a single element of kind at
// byteOffset within the view, exported for internal/builtins' getInt8-style
// methods to use directly rather than reaching into the byte store.
func DataViewRead(dv *DataViewSlots, byteOffset int, kind TypedArrayKind) float64 {
	if dv == nil {
		return 0
	}
	bs := dv.Buffer.ArrayBufferSlots()
	if bs == nil {
		return 0
	}
	return readTypedElement(bs.Bytes, dv.ByteOffset+byteOffset, kind)
}

func DataViewWrite(dv *DataViewSlots, byteOffset int, kind TypedArrayKind, v float64) {
	if dv == nil {
		return
	}
	bs := dv.Buffer.ArrayBufferSlots()
	if bs == nil {
		return
	}
	writeTypedElement(bs.Bytes, dv.ByteOffset+byteOffset, kind, v)
}
