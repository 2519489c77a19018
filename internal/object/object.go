// Package object implements the heap-node Object representation from spec
// §3/§4.2: a property table honoring insertion/index ordering, a
// prototype-chain link, monotone extensibility state, a type tag used for
// fast dispatch, and per-tag internal slots.
//
// Grounded on internal/interp/runtime/object.go (ObjectInstance) and
// internal/interp/class.go, generalized from DWScript's class-hierarchy
// field/method lookup to ECMA-262 prototype-chain property resolution with
// full attribute-bit semantics.
package object

import "github.com/solarbrowser/quanta-go/internal/value"

// TypeTag dispatches on the Object subtype per spec §3/§9 ("tagged variant
// in the Object header").
type TypeTag int

const (
	TagOrdinary TypeTag = iota
	TagArray
	TagFunction
	TagString
	TagNumber
	TagBoolean
	TagArguments
	TagArrayBuffer
	TagTypedArray
	TagDataView
	TagError
	TagPromise
	TagMap
	TagSet
	TagWeakMap
	TagWeakSet
	TagWeakRef
	TagFinalizationRegistry
	TagDate
	TagRegExp
	TagProxy
	TagSymbolObject
	TagBigIntObject
)

func (t TypeTag) String() string {
	switch t {
	case TagOrdinary:
		return "Object"
	case TagArray:
		return "Array"
	case TagFunction:
		return "Function"
	case TagString:
		return "String"
	case TagNumber:
		return "Number"
	case TagBoolean:
		return "Boolean"
	case TagArguments:
		return "Arguments"
	case TagArrayBuffer:
		return "ArrayBuffer"
	case TagTypedArray:
		return "TypedArray"
	case TagDataView:
		return "DataView"
	case TagError:
		return "Error"
	case TagPromise:
		return "Promise"
	case TagMap:
		return "Map"
	case TagSet:
		return "Set"
	case TagWeakMap:
		return "WeakMap"
	case TagWeakSet:
		return "WeakSet"
	case TagWeakRef:
		return "WeakRef"
	case TagFinalizationRegistry:
		return "FinalizationRegistry"
	case TagDate:
		return "Date"
	case TagRegExp:
		return "RegExp"
	case TagProxy:
		return "Proxy"
	case TagSymbolObject:
		return "Symbol"
	case TagBigIntObject:
		return "BigInt"
	default:
		return "Object"
	}
}

// Extensibility is the monotone lattice Extensible -> NonExtensible ->
// Sealed -> Frozen from spec §3.
type Extensibility int

const (
	Extensible Extensibility = iota
	NonExtensible
	Sealed
	Frozen
)

// Object is the heap entity described by spec §3/§4.2.
type Object struct {
	proto     *Object
	ext       Extensibility
	tag       TypeTag
	keyOrder  []Key
	props     map[Key]*PropertyDescriptor
	slots     any // per-tag internal slots (ArraySlots, FunctionSlots, ...)

	// gcMarked is used only by internal/gc during a collection cycle; it
	// lives on the object itself (rather than a side table) because that
	// is how the teacher's RefCount field lives directly on ObjectInstance.
	gcMarked bool
	gcID     uint64
}

// New creates a plain Ordinary object with the given prototype (nil for
// no prototype) and extensible state.
func New(proto *Object) *Object {
	return &Object{
		proto: proto,
		ext:   Extensible,
		tag:   TagOrdinary,
		props: make(map[Key]*PropertyDescriptor),
	}
}

// NewWithTag creates an object of a specific type tag (Array, Function, ...).
func NewWithTag(proto *Object, tag TypeTag) *Object {
	o := New(proto)
	o.tag = tag
	return o
}

// Type implements value.Value for the tagged-union layer (typeof):
// "function" for TagFunction objects, "object" for every other TypeTag.
func (o *Object) Type() string {
	if o.tag == TagFunction {
		return "function"
	}
	return "object"
}

// String implements value.Value's default Stringer. Built-ins override
// this behaviourally via toString/valueOf lookup at the interpreter level;
// this is only the fallback used when no such protocol applies.
func (o *Object) String() string {
	return "[object " + o.tag.String() + "]"
}

// IsCallable reports whether this object has a [[Call]] slot (part of
// value.ObjectLike).
func (o *Object) IsCallable() bool {
	fs, ok := o.slots.(*FunctionSlots)
	return ok && fs != nil && (fs.Call != nil || fs.BoundTarget != nil)
}

// IsExtensible reports the current extensibility (part of value.ObjectLike).
func (o *Object) IsExtensible() bool {
	return o.ext == Extensible
}

// Tag returns the internal type tag.
func (o *Object) Tag() TypeTag { return o.tag }

// Proto returns the prototype link (nil at the end of the chain).
func (o *Object) Proto() *Object { return o.proto }

// Slots returns the per-tag internal slot payload (nil if none set).
func (o *Object) Slots() any { return o.slots }

// SetSlots installs the per-tag internal slot payload.
func (o *Object) SetSlots(s any) { o.slots = s }

// GCMarked/SetGCMarked/GCID are used exclusively by internal/gc.
func (o *Object) GCMarked() bool       { return o.gcMarked }
func (o *Object) SetGCMarked(m bool)   { o.gcMarked = m }
func (o *Object) GCID() uint64         { return o.gcID }
func (o *Object) SetGCID(id uint64)    { o.gcID = id }

var _ value.ObjectLike = (*Object)(nil)
