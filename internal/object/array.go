package object

import "github.com/solarbrowser/quanta-go/internal/value"

// ArraySlots is the internal-slot payload for Array-tagged objects: just
// the length, kept in sync with numeric property keys per spec §3/§4.2.
type ArraySlots struct {
	Length uint32
}

// NewArray creates an Array object with the given prototype and initial
// length (elements are added afterward via DefineProperty/Set).
func NewArray(proto *Object, length uint32) *Object {
	o := NewWithTag(proto, TagArray)
	o.slots = &ArraySlots{Length: length}
	return o
}

func (o *Object) arraySlots() *ArraySlots {
	s, _ := o.slots.(*ArraySlots)
	return s
}

// arrayGet intercepts reads of the virtual "length" property; every other
// key (including numeric indices) falls through to ordinary property
// lookup since indices are stored as regular own properties.
func (o *Object) arrayGet(key Key) (value.Value, bool) {
	if !key.IsSymbol() && key.String() == "length" {
		if s := o.arraySlots(); s != nil {
			return value.Number(s.Length), true
		}
	}
	return nil, false
}

// setArrayLength implements the Array length-setter invariant from spec
// §3/§8: writing a smaller length deletes every configurable index >= the
// new length (descending order), stopping at the first non-configurable
// index and leaving length one past it. A non-integer length throws
// RangeError.
func (o *Object) setArrayLength(v value.Value, c Caller) bool {
	s := o.arraySlots()
	if s == nil {
		s = &ArraySlots{}
		o.slots = s
	}

	n := float64(value.ToNumber(v, c))
	u32 := value.ToUint32(v, c)
	if n != float64(u32) {
		c.ThrowRangeError("Invalid array length")
		return false
	}

	newLen := u32
	if newLen >= s.Length {
		s.Length = newLen
		return true
	}

	// Shrinking: delete indices in [newLen, oldLen) descending, stop at
	// the first non-configurable, and leave length one past it.
	oldLen := s.Length
	finalLen := newLen
	for i := oldLen; i > newLen; i-- {
		idx := i - 1
		k := StringKey(uint32ToString(idx))
		desc := o.GetOwn(k)
		if desc == nil {
			continue
		}
		if !desc.Configurable {
			finalLen = idx + 1
			break
		}
		o.Delete(k)
	}
	s.Length = finalLen
	return finalLen == newLen
}

// growArrayLength updates length = idx+1 when an index write addresses a
// slot at or beyond the current length.
func (o *Object) growArrayLength(idx uint32) {
	s := o.arraySlots()
	if s == nil {
		s = &ArraySlots{}
		o.slots = s
	}
	if idx >= s.Length {
		s.Length = idx + 1
	}
}

// arrayDefineSideEffect is DefineProperty's counterpart to growArrayLength,
// invoked after an index key is successfully defined directly (bypassing
// Set), e.g. from Object.defineProperty or array-literal construction.
func (o *Object) arrayDefineSideEffect(key Key) {
	if idx, ok := key.arrayIndex(); ok {
		o.growArrayLength(idx)
	}
}

func uint32ToString(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Length returns the array's current length (0 for non-Array objects).
func (o *Object) Length() uint32 {
	if s := o.arraySlots(); s != nil {
		return s.Length
	}
	return 0
}
