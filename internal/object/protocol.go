package object

import (
	"github.com/solarbrowser/quanta-go/internal/value"
)

// Caller is implemented by internal/context.Context to invoke accessor
// getters/setters and native functions without this package importing
// internal/context (which itself imports internal/object).
type Caller interface {
	value.Thrower
	CallFunction(fn *Object, this value.Value, args []value.Value) value.Value
	Strict() bool
	ThrowRangeError(format string, args ...any)
	ThrowSyntaxError(format string, args ...any)
	ThrowURIError(format string, args ...any)
	ThrowError(format string, args ...any)
	ThrowReferenceError(format string, args ...any)
	// HasException lets a builtin loop (forEach/map/reduce/...) stop calling
	// further callback iterations once one of them has thrown, instead of
	// running every remaining element against an already-failed call.
	HasException() bool
	// EnqueueMicrotask schedules fn to run on the microtask queue, letting
	// Promise reactions (installed from internal/builtins, which never
	// imports internal/context) schedule without a direct dependency on the
	// queue's owner.
	EnqueueMicrotask(fn func())
	// ThrowValue raises an already-constructed Value as the pending
	// exception, used by Promise.prototype.finally's rejection wrapper to
	// re-propagate a rejection reason past a handler that didn't itself
	// throw.
	ThrowValue(v value.Value)
	// Exception and ClearException let a Promise reaction catch a handler's
	// thrown value and turn it into a rejection instead of letting it
	// propagate past the reaction boundary.
	Exception() value.Value
	ClearException()
}

// GetOwn looks up a property descriptor defined directly on o (no
// prototype walk). Returns nil if absent.
func (o *Object) GetOwn(key Key) *PropertyDescriptor {
	if o.props == nil {
		return nil
	}
	return o.props[key]
}

// Get implements the [[Get]] protocol from spec §4.2: walks the prototype
// chain, returning a data property's value, invoking an accessor's getter
// with `this` bound to the original receiver, or undefined if nothing is
// found. Never raises on its own; a getter invoked through c may throw.
func (o *Object) Get(key Key, receiver value.Value, c Caller) value.Value {
	if o.tag == TagProxy {
		return o.proxyGet(key, receiver, c)
	}
	if o.tag == TagArray {
		if v, ok := o.arrayGet(key); ok {
			return v
		}
	}
	if o.tag == TagString {
		if v, ok := o.stringIndexGet(key); ok {
			return v
		}
	}
	if o.tag == TagTypedArray {
		if v, ok := o.typedArrayGet(key); ok {
			return v
		}
	}
	current := o
	for current != nil {
		if desc := current.GetOwn(key); desc != nil {
			if desc.IsAccessor {
				if desc.Get == nil {
					return value.Undefined
				}
				return c.CallFunction(desc.Get, receiver, nil)
			}
			return desc.Value
		}
		current = current.proto
	}
	return value.Undefined
}

// Has implements [[HasProperty]]: walks the chain via GetOwn.
func (o *Object) Has(key Key) bool {
	if o.tag == TagProxy {
		return o.proxyHas(key)
	}
	if o.tag == TagArray {
		if _, ok := o.arrayGet(key); ok {
			return true
		}
	}
	if o.tag == TagTypedArray {
		if _, ok := o.typedArrayGet(key); ok {
			return true
		}
	}
	for current := o; current != nil; current = current.proto {
		if current.GetOwn(key) != nil {
			return true
		}
	}
	return false
}

// Set implements the [[Set]] protocol from spec §4.2.
func (o *Object) Set(key Key, v value.Value, receiver value.Value, c Caller) bool {
	if o.tag == TagProxy {
		return o.proxySet(key, v, c)
	}
	if o.tag == TagArray && !key.IsSymbol() && key.String() == "length" {
		return o.setArrayLength(v, c)
	}
	if o.tag == TagTypedArray {
		if handled, ok := o.typedArraySet(key, v, c); handled {
			return ok
		}
	}

	ok := o.setOrdinary(key, v, receiver, c)
	if ok && o.tag == TagArray && receiver == value.Value(o) {
		if idx, isIdx := key.arrayIndex(); isIdx {
			o.growArrayLength(idx)
		}
	}
	return ok
}

func (o *Object) setOrdinary(key Key, v value.Value, receiver value.Value, c Caller) bool {
	// Find the first descriptor on the chain (own or inherited).
	var holder *Object
	var desc *PropertyDescriptor
	for current := o; current != nil; current = current.proto {
		if d := current.GetOwn(key); d != nil {
			holder, desc = current, d
			break
		}
	}

	if desc == nil {
		// Nothing found: create an own data property on receiver if
		// extensible.
		recvObj, ok := receiver.(*Object)
		if !ok {
			recvObj = o
		}
		if !recvObj.IsExtensible() {
			return o.failWrite(c)
		}
		recvObj.defineOwn(key, DefaultDataProperty(v))
		return true
	}

	if desc.IsAccessor {
		if desc.Set == nil {
			return o.failWrite(c)
		}
		c.CallFunction(desc.Set, receiver, []value.Value{v})
		return true
	}

	if !desc.Writable {
		return o.failWrite(c)
	}

	if holder == o {
		desc.Value = v
		return true
	}

	// Inherited data property: create/overwrite an own property on the
	// receiver (CreateDataProperty, not mutate the holder).
	recvObj, ok := receiver.(*Object)
	if !ok {
		recvObj = o
	}
	if existing := recvObj.GetOwn(key); existing != nil {
		if !existing.Writable {
			return o.failWrite(c)
		}
		existing.Value = v
		return true
	}
	if !recvObj.IsExtensible() {
		return o.failWrite(c)
	}
	recvObj.defineOwn(key, DefaultDataProperty(v))
	return true
}

func (o *Object) failWrite(c Caller) bool {
	if c != nil && c.Strict() {
		c.ThrowTypeError("Cannot assign to read-only property")
	}
	return false
}

// defineOwn inserts/overwrites an own property, maintaining key insertion
// order (string keys in insertion order, then symbol keys in insertion
// order, per spec §3's enumeration-order invariant).
func (o *Object) defineOwn(key Key, desc *PropertyDescriptor) {
	if o.props == nil {
		o.props = make(map[Key]*PropertyDescriptor)
	}
	if _, exists := o.props[key]; !exists {
		o.keyOrder = append(o.keyOrder, key)
	}
	o.props[key] = desc
}

// DefineProperty implements [[DefineOwnProperty]]: merges the given
// descriptor into any existing one, honoring the non-configurable
// invariants from spec §3. Returns success/failure.
func (o *Object) DefineProperty(key Key, desc *PropertyDescriptor) bool {
	existing := o.GetOwn(key)

	if existing == nil {
		if !o.IsExtensible() {
			return false
		}
		merged := desc.Clone()
		fillDescriptorDefaults(merged)
		o.defineOwn(key, merged)
		if o.tag == TagArray {
			o.arrayDefineSideEffect(key)
		}
		return true
	}

	if !existing.Configurable {
		// A non-configurable data property may only toggle
		// writable:true->false, or change value while still writable.
		if desc.Configurable {
			return false
		}
		if existing.IsDataDescriptor() != desc.IsDataDescriptor() && (desc.IsAccessor || desc.Value != nil) {
			return false
		}
		if existing.IsAccessor {
			// A non-configurable accessor's get/set may not change.
			if desc.Get != existing.Get || desc.Set != existing.Set {
				if desc.Get != nil || desc.Set != nil {
					return false
				}
			}
		} else {
			if !existing.Writable {
				if desc.Writable {
					return false
				}
				if desc.Value != nil && !value.SameValue(desc.Value, existing.Value) {
					return false
				}
			}
		}
	}

	mergeInto(existing, desc)
	if o.tag == TagArray {
		o.arrayDefineSideEffect(key)
	}
	return true
}

func fillDescriptorDefaults(d *PropertyDescriptor) {
	// Defaults are false for any attribute bit the caller didn't opt into;
	// Clone() already copied whatever the caller set, so this is a no-op
	// placeholder documenting the rule (Go's zero value is already false).
}

// mergeInto replaces existing's contents with patch's. DefineProperty's
// caller (normally the Object.defineProperty builtin) is responsible for
// resolving a partial JS descriptor object against the CURRENT descriptor
// before calling DefineProperty, so by the time a patch reaches here it is
// always a complete descriptor — merge therefore means "validate the
// invariants, then replace", not a field-by-field union.
func mergeInto(existing, patch *PropertyDescriptor) {
	*existing = *patch
}

// Delete implements [[Delete]]: removes an own property if configurable.
func (o *Object) Delete(key Key) bool {
	if o.tag == TagProxy {
		return o.proxyDelete(key)
	}
	desc := o.GetOwn(key)
	if desc == nil {
		return true
	}
	if !desc.Configurable {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keyOrder {
		if k == key {
			o.keyOrder = append(o.keyOrder[:i], o.keyOrder[i+1:]...)
			break
		}
	}
	return true
}

// GetOwnKeys returns every own property key, integer-index keys first by
// ascending numeric index, then remaining string keys in insertion order,
// then symbol keys in insertion order — spec §3's enumeration-order rule.
// TypedArray elements are read through typedArrayGet and are not stored
// properties, so their indices are not included.
func (o *Object) GetOwnKeys() []Key {
	if o.tag == TagProxy {
		return o.proxyOwnKeys()
	}
	var indexed []Key
	var strs []Key
	var syms []Key
	for _, k := range o.keyOrder {
		if k.IsSymbol() {
			syms = append(syms, k)
			continue
		}
		if _, ok := k.arrayIndex(); ok {
			indexed = append(indexed, k)
			continue
		}
		strs = append(strs, k)
	}
	sortByIndex(indexed)
	out := make([]Key, 0, len(indexed)+len(strs)+len(syms))
	out = append(out, indexed...)
	out = append(out, strs...)
	out = append(out, syms...)
	return out
}

func sortByIndex(keys []Key) {
	// Insertion sort: small N in practice (array property counts), and
	// keeps this dependency-free.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			a, _ := keys[j-1].arrayIndex()
			b, _ := keys[j].arrayIndex()
			if a <= b {
				break
			}
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

// GetEnumerableKeys returns GetOwnKeys() filtered to Enumerable properties.
func (o *Object) GetEnumerableKeys() []Key {
	all := o.GetOwnKeys()
	out := make([]Key, 0, len(all))
	for _, k := range all {
		if d := o.GetOwn(k); d != nil && d.Enumerable {
			out = append(out, k)
		}
	}
	return out
}

// SetPrototype implements [[SetPrototypeOf]]: rejects a cycle and rejects
// any change once non-extensible.
func (o *Object) SetPrototype(p *Object) bool {
	if p == o.proto {
		return true
	}
	if !o.IsExtensible() {
		return false
	}
	for cur := p; cur != nil; cur = cur.proto {
		if cur == o {
			return false // would create a cycle
		}
	}
	o.proto = p
	return true
}

// PreventExtensions moves Extensible -> NonExtensible. No-op (and still
// success) if already less-than-Extensible.
func (o *Object) PreventExtensions() {
	if o.ext == Extensible {
		o.ext = NonExtensible
	}
}

// Seal makes every own property non-configurable and moves to Sealed (or
// Frozen, if already frozen — sealing a frozen object is idempotent at
// Frozen, matching seal(seal(o)) = seal(o)).
func (o *Object) Seal() {
	for _, k := range o.keyOrder {
		if d := o.props[k]; d != nil {
			d.Configurable = false
		}
	}
	if o.ext < Sealed {
		o.ext = Sealed
	}
}

// Freeze seals and additionally makes every data property non-writable,
// moving to Frozen.
func (o *Object) Freeze() {
	for _, k := range o.keyOrder {
		if d := o.props[k]; d != nil {
			d.Configurable = false
			if !d.IsAccessor {
				d.Writable = false
			}
		}
	}
	o.ext = Frozen
}

// IsSealed and IsFrozen are the derived predicates from §4.2.
func (o *Object) IsSealed() bool {
	if o.ext < Sealed {
		return false
	}
	for _, k := range o.keyOrder {
		if d := o.props[k]; d != nil && d.Configurable {
			return false
		}
	}
	return true
}

func (o *Object) IsFrozen() bool {
	if o.ext != Frozen {
		return false
	}
	for _, k := range o.keyOrder {
		d := o.props[k]
		if d == nil {
			continue
		}
		if d.Configurable {
			return false
		}
		if !d.IsAccessor && d.Writable {
			return false
		}
	}
	return true
}

// ExtensibilityState exposes the raw lattice value for diagnostics/tests.
func (o *Object) ExtensibilityState() Extensibility { return o.ext }
