package gc

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// WeakRefSlots backs a WeakRef object: Target is cleared to nil by Collect
// once unreachable (spec §4.5). It intentionally has no MarkSlots method —
// the collector must never treat this edge as strong.
type WeakRefSlots struct {
	Target *object.Object
}

// NewWeakRef allocates a WeakRef wrapping target and registers it with c
// for clearing on collection.
func NewWeakRef(c *Collector, proto *object.Object, target *object.Object) *object.Object {
	o := object.NewWithTag(proto, object.TagWeakRef)
	slots := &WeakRefSlots{Target: target}
	o.SetSlots(slots)
	c.RegisterWeakRef(slots)
	return c.Allocate(o)
}

// Deref reads the current target (undefined if cleared).
func (s *WeakRefSlots) Deref() value.Value {
	if s.Target == nil {
		return value.Undefined
	}
	return s.Target
}

// WeakMapSlots backs a WeakMap: entries keyed by object identity, values
// kept alive only while their key is reachable (ephemeron semantics,
// resolved by Collector.Collect's fixpoint pass).
type WeakMapSlots struct {
	entries map[*object.Object]value.Value
}

func NewWeakMap(c *Collector, proto *object.Object) *object.Object {
	o := object.NewWithTag(proto, object.TagWeakMap)
	slots := &WeakMapSlots{entries: make(map[*object.Object]value.Value)}
	o.SetSlots(slots)
	c.RegisterWeakMap(slots)
	return c.Allocate(o)
}

func weakMapSlotsOf(o *object.Object) *WeakMapSlots {
	s, _ := o.Slots().(*WeakMapSlots)
	return s
}

// Get/Set/Delete/Has implement WeakMap.prototype's operations.
func WeakMapGet(o *object.Object, key *object.Object) (value.Value, bool) {
	s := weakMapSlotsOf(o)
	if s == nil {
		return value.Undefined, false
	}
	v, ok := s.entries[key]
	return v, ok
}

func WeakMapSet(o *object.Object, key *object.Object, v value.Value) {
	s := weakMapSlotsOf(o)
	if s != nil {
		s.entries[key] = v
	}
}

func WeakMapDelete(o *object.Object, key *object.Object) bool {
	s := weakMapSlotsOf(o)
	if s == nil {
		return false
	}
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

func WeakMapHas(o *object.Object, key *object.Object) bool {
	s := weakMapSlotsOf(o)
	if s == nil {
		return false
	}
	_, ok := s.entries[key]
	return ok
}

// WeakSetSlots backs a WeakSet: membership only, by object identity.
type WeakSetSlots struct {
	members map[*object.Object]struct{}
}

func NewWeakSet(c *Collector, proto *object.Object) *object.Object {
	o := object.NewWithTag(proto, object.TagWeakSet)
	slots := &WeakSetSlots{members: make(map[*object.Object]struct{})}
	o.SetSlots(slots)
	c.RegisterWeakSet(slots)
	return c.Allocate(o)
}

func weakSetSlotsOf(o *object.Object) *WeakSetSlots {
	s, _ := o.Slots().(*WeakSetSlots)
	return s
}

func WeakSetAdd(o *object.Object, v *object.Object) {
	if s := weakSetSlotsOf(o); s != nil {
		s.members[v] = struct{}{}
	}
}

func WeakSetDelete(o *object.Object, v *object.Object) bool {
	s := weakSetSlotsOf(o)
	if s == nil {
		return false
	}
	if _, ok := s.members[v]; !ok {
		return false
	}
	delete(s.members, v)
	return true
}

func WeakSetHas(o *object.Object, v *object.Object) bool {
	s := weakSetSlotsOf(o)
	if s == nil {
		return false
	}
	_, ok := s.members[v]
	return ok
}

// FinalizationEntry is one registered (target, heldValue, token) triple.
type FinalizationEntry struct {
	Target    *object.Object
	HeldValue value.Value
	Token     *object.Object // unregister token, nil if none supplied
}

// FinalizationRegistrySlots backs a FinalizationRegistry: a callback plus
// the live registrations. Entries are strong on HeldValue/Token (kept by
// MarkSlots below) but weak on Target (not marked), matching spec §4.5.
type FinalizationRegistrySlots struct {
	Callback *object.Object
	Entries  []*FinalizationEntry
}

func NewFinalizationRegistry(c *Collector, proto *object.Object, callback *object.Object) *object.Object {
	o := object.NewWithTag(proto, object.TagFinalizationRegistry)
	slots := &FinalizationRegistrySlots{Callback: callback}
	o.SetSlots(slots)
	c.RegisterFinalizationRegistry(slots)
	return c.Allocate(o)
}

// MarkSlots keeps the callback, held values, and unregister tokens alive
// (these are ordinary strong references); only Target is weak.
func (s *FinalizationRegistrySlots) MarkSlots(mark func(value.Value)) {
	if s.Callback != nil {
		mark(s.Callback)
	}
	for _, e := range s.Entries {
		mark(e.HeldValue)
		if e.Token != nil {
			mark(e.Token)
		}
	}
}

func FinalizationRegistryRegister(o *object.Object, target *object.Object, heldValue value.Value, token *object.Object) {
	s, ok := o.Slots().(*FinalizationRegistrySlots)
	if !ok {
		return
	}
	s.Entries = append(s.Entries, &FinalizationEntry{Target: target, HeldValue: heldValue, Token: token})
}

func FinalizationRegistryUnregister(o *object.Object, token *object.Object) bool {
	s, ok := o.Slots().(*FinalizationRegistrySlots)
	if !ok || token == nil {
		return false
	}
	removed := false
	remaining := s.Entries[:0]
	for _, e := range s.Entries {
		if e.Token == token {
			removed = true
			continue
		}
		remaining = append(remaining, e)
	}
	s.Entries = remaining
	return removed
}
