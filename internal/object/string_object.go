package object

import (
	"strconv"
	"unicode/utf16"

	"github.com/solarbrowser/quanta-go/internal/value"
)

// StringSlots is the internal-slot payload for String-tagged wrapper
// objects (`new String("x")`): the [[PrimitiveValue]], stored pre-split
// into UTF-16 code units so indexed character access and .length match
// JavaScript's UTF-16 string model rather than Go's UTF-8 byte/rune model.
type StringSlots struct {
	Value string
	Units []uint16
}

// NewStringObject wraps a primitive string in a String-tagged object.
func NewStringObject(proto *Object, s string) *Object {
	o := NewWithTag(proto, TagString)
	o.slots = &StringSlots{Value: s, Units: utf16.Encode([]rune(s))}
	o.markStringIndices()
	return o
}

// markStringIndices defines every character index as a non-writable,
// non-configurable, enumerable own data property, per §4.2's "String
// wrapper objects expose indexed character properties" note.
func (o *Object) markStringIndices() {
	ss := o.stringSlots()
	if ss == nil {
		return
	}
	for i, u := range ss.Units {
		ch := string(utf16.Decode([]uint16{u}))
		o.defineOwn(StringKey(strconv.Itoa(i)), DataDescriptor(value.String(ch), false, true, false))
	}
}

func (o *Object) stringSlots() *StringSlots {
	s, _ := o.slots.(*StringSlots)
	return s
}

// stringIndexGet intercepts reads of "length" on a String wrapper object;
// numeric indices are not handled here, since the non-configurable own
// indexed properties from markStringIndices already serve them.
func (o *Object) stringIndexGet(key Key) (value.Value, bool) {
	ss := o.stringSlots()
	if ss == nil {
		return nil, false
	}
	if !key.IsSymbol() && key.String() == "length" {
		return value.Number(len(ss.Units)), true
	}
	return nil, false
}

// PrimitiveString returns the wrapped primitive value (only meaningful when
// Tag() == TagString).
func (o *Object) PrimitiveString() string {
	if ss := o.stringSlots(); ss != nil {
		return ss.Value
	}
	return ""
}

// NumberSlots/BooleanSlots/BigIntSlots/SymbolSlots are the analogous
// [[PrimitiveValue]] wrappers for `new Number(...)`, `new Boolean(...)`,
// and the rarely-constructed Symbol/BigInt object forms.
type NumberSlots struct{ Value float64 }
type BooleanSlots struct{ Value bool }
type BigIntSlots struct{ Value value.BigInt }
type SymbolSlots struct{ Value *value.Symbol }

func NewNumberObject(proto *Object, n float64) *Object {
	o := NewWithTag(proto, TagNumber)
	o.slots = &NumberSlots{Value: n}
	return o
}

func NewBooleanObject(proto *Object, b bool) *Object {
	o := NewWithTag(proto, TagBoolean)
	o.slots = &BooleanSlots{Value: b}
	return o
}

func NewBigIntObject(proto *Object, b value.BigInt) *Object {
	o := NewWithTag(proto, TagBigIntObject)
	o.slots = &BigIntSlots{Value: b}
	return o
}

func NewSymbolObject(proto *Object, s *value.Symbol) *Object {
	o := NewWithTag(proto, TagSymbolObject)
	o.slots = &SymbolSlots{Value: s}
	return o
}

// PrimitiveNumber/PrimitiveBoolean/PrimitiveBigInt/PrimitiveSymbol read back
// the wrapped value (zero value if o is not the matching tag).
func (o *Object) PrimitiveNumber() float64 {
	if s, ok := o.slots.(*NumberSlots); ok {
		return s.Value
	}
	return 0
}

func (o *Object) PrimitiveBoolean() bool {
	if s, ok := o.slots.(*BooleanSlots); ok {
		return s.Value
	}
	return false
}

func (o *Object) PrimitiveBigInt() value.BigInt {
	if s, ok := o.slots.(*BigIntSlots); ok {
		return s.Value
	}
	return value.BigInt{}
}

func (o *Object) PrimitiveSymbol() *value.Symbol {
	if s, ok := o.slots.(*SymbolSlots); ok {
		return s.Value
	}
	return nil
}
