// Package gc implements the embedded mark-and-sweep garbage collector from
// spec §4.5: stop-the-world, triggered by an allocation/byte threshold or an
// explicit request, tracing from Context-supplied roots across the prototype
// chain, property values (including accessor get/set), and per-tag internal
// slots, with ephemeron-correct handling of WeakMap/WeakSet/WeakRef and
// FinalizationRegistry cleanup-callback enqueueing.
//
// The reference engine's actual memory-management idiom is reference
// counting (internal/interp/runtime/refcount.go's RefCountManager,
// IncrementRef/DecrementRef, a DestructorCallback invoked at zero). That
// algorithm cannot reclaim cycles, which this spec requires ("Cycles
// through weak refs are reclaimable"), so the algorithm here is mark-and-
// sweep; the *shape* is kept from the reference — a manager type objects
// register with, a callback invoked at reclaim time for finalization, and
// atomic counters in the style of internal/interp/runtime/pool.go's
// PoolStats applied to collection events instead of pool hits.
package gc

import (
	"sync/atomic"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// RootProvider is implemented by internal/context.Context: it contributes
// every GC root it currently holds (global object, this-bindings, every
// Environment's bindings along both the lexical and variable chains, every
// Frame's locals/arguments, the pending exception, and any pending return
// value), per spec §4.5 step 1.
type RootProvider interface {
	GCRoots() []value.Value
}

// slotMarker is implemented by a per-tag internal-slot payload that holds
// outgoing strong references the collector would not otherwise discover
// (e.g. FunctionSlots' HomeObject/BoundTarget/BoundArgs). Weak containers
// (WeakMapSlots, WeakSetSlots, WeakRefSlots) deliberately do NOT implement
// this — their edges are conditional and handled by the ephemeron pass.
type slotMarker interface {
	MarkSlots(mark func(value.Value))
}

// Collector owns every live *object.Object allocated through it and runs
// mark-and-sweep collection on demand.
type Collector struct {
	objects map[*object.Object]struct{}
	roots   []RootProvider

	weakRefs     []*WeakRefSlots
	weakMaps     []*WeakMapSlots
	weakSets     []*WeakSetSlots
	finalizers   []*FinalizationRegistrySlots
	pendingCalls []pendingFinalizer

	nextGCID uint64

	allocBytesSinceGC uint64
	gcByteThreshold   uint64

	stats atomicStats
}

type pendingFinalizer struct {
	callback  *object.Object
	heldValue value.Value
}

// New creates a Collector. gcByteThreshold of 0 disables the automatic
// allocation-triggered collection (Collect() can still be called
// explicitly, e.g. from Engine.ForceGC).
func New(gcByteThreshold uint64) *Collector {
	return &Collector{
		objects:         make(map[*object.Object]struct{}),
		gcByteThreshold: gcByteThreshold,
	}
}

// AddRoot registers a root provider (normally a *context.Context) whose
// GCRoots are consulted on every collection.
func (c *Collector) AddRoot(rp RootProvider) {
	c.roots = append(c.roots, rp)
}

// approxObjectSize is a rough per-object byte estimate used only to decide
// when an allocation-triggered collection is worthwhile; it is not exposed
// as an exact accounting figure.
const approxObjectSize = 64

// Allocate registers a freshly constructed object with the collector,
// assigns it a GC id, and may trigger a collection if the byte threshold
// configured in New has been exceeded since the last one.
func (c *Collector) Allocate(o *object.Object) *object.Object {
	c.nextGCID++
	o.SetGCID(c.nextGCID)
	c.objects[o] = struct{}{}

	c.stats.allocations.Add(1)
	c.stats.bytesAllocated.Add(approxObjectSize)
	c.allocBytesSinceGC += approxObjectSize
	if peak := c.stats.bytesAllocated.Load() - c.stats.bytesFreed.Load(); peak > c.stats.peakMemory.Load() {
		c.stats.peakMemory.Store(peak)
	}

	if c.gcByteThreshold > 0 && c.allocBytesSinceGC >= c.gcByteThreshold {
		c.Collect()
	}
	return o
}

// RegisterWeakRef/RegisterWeakMap/RegisterWeakSet/RegisterFinalizationRegistry
// track a weak container so Collect's ephemeron/clearing pass can visit it.
func (c *Collector) RegisterWeakRef(s *WeakRefSlots)                         { c.weakRefs = append(c.weakRefs, s) }
func (c *Collector) RegisterWeakMap(s *WeakMapSlots)                         { c.weakMaps = append(c.weakMaps, s) }
func (c *Collector) RegisterWeakSet(s *WeakSetSlots)                         { c.weakSets = append(c.weakSets, s) }
func (c *Collector) RegisterFinalizationRegistry(s *FinalizationRegistrySlots) {
	c.finalizers = append(c.finalizers, s)
}

// Collect runs one full mark-and-sweep cycle per spec §4.5.
func (c *Collector) Collect() Stats {
	marked := make(map[*object.Object]bool, len(c.objects))

	var mark func(v value.Value)
	var markObj func(o *object.Object)
	markObj = func(o *object.Object) {
		if o == nil || marked[o] {
			return
		}
		marked[o] = true
		o.SetGCMarked(true)
		if p := o.Proto(); p != nil {
			markObj(p)
		}
		for _, k := range o.GetOwnKeys() {
			d := o.GetOwn(k)
			if d == nil {
				continue
			}
			if d.IsAccessor {
				if d.Get != nil {
					markObj(d.Get)
				}
				if d.Set != nil {
					markObj(d.Set)
				}
				continue
			}
			if d.Value != nil {
				mark(d.Value)
			}
		}
		if sm, ok := o.Slots().(slotMarker); ok {
			sm.MarkSlots(mark)
		}
	}
	mark = func(v value.Value) {
		if v == nil {
			return
		}
		if o, ok := v.(*object.Object); ok {
			markObj(o)
		}
	}

	// Step 1/2: mark from every root.
	for _, rp := range c.roots {
		for _, v := range rp.GCRoots() {
			mark(v)
		}
	}

	// Ephemeron fixpoint: a WeakMap/WeakSet/WeakRef value is only kept
	// alive by virtue of its key/target already being reachable by strong
	// references; marking one may, in turn, make another weak container's
	// key reachable, so iterate until no new marks occur. This is what
	// makes "cycles through weak refs" reclaimable while still keeping
	// alive what the live graph actually reaches.
	for {
		changed := false
		for _, wm := range c.weakMaps {
			for k, v := range wm.entries {
				if marked[k] {
					if o, ok := v.(*object.Object); ok && !marked[o] {
						markObj(o)
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	// Step: clear weak slots whose target/keys are unreachable, and enqueue
	// FinalizationRegistry callbacks for newly-dead registered targets.
	for _, wr := range c.weakRefs {
		if wr.Target != nil && !marked[wr.Target] {
			wr.Target = nil
		}
	}
	for _, wm := range c.weakMaps {
		for k := range wm.entries {
			if !marked[k] {
				delete(wm.entries, k)
			}
		}
	}
	for _, ws := range c.weakSets {
		for k := range ws.members {
			if !marked[k] {
				delete(ws.members, k)
			}
		}
	}
	for _, fr := range c.finalizers {
		remaining := fr.Entries[:0]
		for _, e := range fr.Entries {
			if e.Target != nil && !marked[e.Target] {
				c.pendingCalls = append(c.pendingCalls, pendingFinalizer{callback: fr.Callback, heldValue: e.HeldValue})
				continue
			}
			remaining = append(remaining, e)
		}
		fr.Entries = remaining
	}

	// Step 3/4: sweep every registered object not marked, then reset bits.
	var freed uint64
	for o := range c.objects {
		if !marked[o] {
			delete(c.objects, o)
			freed++
			continue
		}
		o.SetGCMarked(false)
	}

	c.stats.deallocations.Add(freed)
	c.stats.bytesFreed.Add(freed * approxObjectSize)
	c.stats.collections.Add(1)
	c.allocBytesSinceGC = 0

	return c.Stats()
}

// DrainFinalizers invokes every queued FinalizationRegistry callback
// (cleared by a prior Collect) with its held value, per spec §4.5's
// requirement that they run "before the next user-code resumption". The
// caller (internal/context, between turns) supplies the invocation seam.
func (c *Collector) DrainFinalizers(call func(callback *object.Object, heldValue value.Value)) {
	pending := c.pendingCalls
	c.pendingCalls = nil
	for _, p := range pending {
		call(p.callback, p.heldValue)
	}
}

// ObjectCount returns the number of objects currently registered (live,
// as of the last Collect/Allocate).
func (c *Collector) ObjectCount() int { return len(c.objects) }

type atomicStats struct {
	allocations    atomic.Uint64
	deallocations  atomic.Uint64
	collections    atomic.Uint64
	bytesAllocated atomic.Uint64
	bytesFreed     atomic.Uint64
	peakMemory     atomic.Uint64
}

// Stats is the snapshot returned by gcStats() per spec §3/§4.5.
type Stats struct {
	Allocations    uint64
	Deallocations  uint64
	Collections    uint64
	BytesAllocated uint64
	BytesFreed     uint64
	PeakMemory     uint64
}

// Stats returns a point-in-time snapshot of collector counters.
func (c *Collector) Stats() Stats {
	return Stats{
		Allocations:    c.stats.allocations.Load(),
		Deallocations:  c.stats.deallocations.Load(),
		Collections:    c.stats.collections.Load(),
		BytesAllocated: c.stats.bytesAllocated.Load(),
		BytesFreed:     c.stats.bytesFreed.Load(),
		PeakMemory:     c.stats.peakMemory.Load(),
	}
}
