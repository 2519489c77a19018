package object

import "github.com/solarbrowser/quanta-go/internal/value"

// mapEntry is one Map slot: a key/value pair kept in insertion order.
// alive is false once deleted, so iteration can skip a hole without
// reslicing mid-callback (Map.prototype.forEach may delete while iterating).
type mapEntry struct {
	key   value.Value
	val   value.Value
	alive bool
}

// MapSlots is the internal-slot payload for Map-tagged objects: SameValueZero
// key comparison (spec §8's testable Map property), insertion order
// preserved for iteration, arbitrary Values (including objects) as keys —
// unlike WeakMapSlots, entries here are ordinary strong references, so they
// keep their keys alive regardless of reachability elsewhere.
type MapSlots struct {
	entries []*mapEntry
	index   map[value.Value]int // fast path by Go equality (objects by pointer); keys it misses, such as NaN and BigInt, fall back to a SameValueZero scan
}

func NewMapSlots() *MapSlots {
	return &MapSlots{index: make(map[value.Value]int)}
}

func (s *MapSlots) find(key value.Value) *mapEntry {
	if e, ok := s.index[normalizeMapKey(key)]; ok {
		if s.entries[e].alive {
			return s.entries[e]
		}
	}
	for _, e := range s.entries {
		if e.alive && value.SameValueZero(e.key, key) {
			return e
		}
	}
	return nil
}

// normalizeMapKey canonicalizes +0/-0 to the same map key per SameValueZero.
func normalizeMapKey(key value.Value) value.Value {
	if n, ok := key.(value.Number); ok && float64(n) == 0 {
		return value.Number(0)
	}
	return key
}

func (s *MapSlots) Get(key value.Value) (value.Value, bool) {
	if e := s.find(key); e != nil {
		return e.val, true
	}
	return value.Undefined, false
}

func (s *MapSlots) Set(key, val value.Value) {
	if e := s.find(key); e != nil {
		e.val = val
		return
	}
	s.entries = append(s.entries, &mapEntry{key: key, val: val, alive: true})
	s.index[normalizeMapKey(key)] = len(s.entries) - 1
}

func (s *MapSlots) Delete(key value.Value) bool {
	e := s.find(key)
	if e == nil {
		return false
	}
	e.alive = false
	return true
}

func (s *MapSlots) Has(key value.Value) bool { return s.find(key) != nil }

func (s *MapSlots) Clear() { s.entries = nil; s.index = make(map[value.Value]int) }

func (s *MapSlots) Size() int {
	n := 0
	for _, e := range s.entries {
		if e.alive {
			n++
		}
	}
	return n
}

// Entries returns the live entries in insertion order.
func (s *MapSlots) Entries() [][2]value.Value {
	out := make([][2]value.Value, 0, len(s.entries))
	for _, e := range s.entries {
		if e.alive {
			out = append(out, [2]value.Value{e.key, e.val})
		}
	}
	return out
}

// MarkSlots keeps every live key/value strongly reachable.
func (s *MapSlots) MarkSlots(mark func(value.Value)) {
	for _, e := range s.entries {
		if e.alive {
			mark(e.key)
			mark(e.val)
		}
	}
}

// SetSlots is the internal-slot payload for Set-tagged objects: the same
// insertion-ordered, SameValueZero-compared membership model as MapSlots,
// minus the associated value.
type SetSlots struct {
	entries []*mapEntry
	index   map[value.Value]int
}

func NewSetSlots() *SetSlots {
	return &SetSlots{index: make(map[value.Value]int)}
}

func (s *SetSlots) find(v value.Value) *mapEntry {
	if e, ok := s.index[normalizeMapKey(v)]; ok {
		if s.entries[e].alive {
			return s.entries[e]
		}
	}
	for _, e := range s.entries {
		if e.alive && value.SameValueZero(e.key, v) {
			return e
		}
	}
	return nil
}

func (s *SetSlots) Add(v value.Value) {
	if s.find(v) != nil {
		return
	}
	s.entries = append(s.entries, &mapEntry{key: v, alive: true})
	s.index[normalizeMapKey(v)] = len(s.entries) - 1
}

func (s *SetSlots) Delete(v value.Value) bool {
	e := s.find(v)
	if e == nil {
		return false
	}
	e.alive = false
	return true
}

func (s *SetSlots) Has(v value.Value) bool { return s.find(v) != nil }

func (s *SetSlots) Clear() { s.entries = nil; s.index = make(map[value.Value]int) }

func (s *SetSlots) Size() int {
	n := 0
	for _, e := range s.entries {
		if e.alive {
			n++
		}
	}
	return n
}

func (s *SetSlots) Values() []value.Value {
	out := make([]value.Value, 0, len(s.entries))
	for _, e := range s.entries {
		if e.alive {
			out = append(out, e.key)
		}
	}
	return out
}

func (s *SetSlots) MarkSlots(mark func(value.Value)) {
	for _, e := range s.entries {
		if e.alive {
			mark(e.key)
		}
	}
}

func (o *Object) mapSlots() *MapSlots {
	s, _ := o.slots.(*MapSlots)
	return s
}

func (o *Object) setSlotsPayload() *SetSlots {
	s, _ := o.slots.(*SetSlots)
	return s
}

// MapSlotsOf/SetSlotsOf expose the typed slot payload to internal/builtins
// (which installs Map/Set's prototype methods) without a package-private
// accessor per method.
func MapSlotsOf(o *Object) *MapSlots { return o.mapSlots() }
func SetSlotsOf(o *Object) *SetSlots { return o.setSlotsPayload() }
