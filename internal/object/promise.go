package object

import "github.com/solarbrowser/quanta-go/internal/value"

// PromiseState is the three-state lifecycle from spec §5: a Promise starts
// Pending and moves exactly once to Fulfilled or Rejected.
type PromiseState int

const (
	PromisePending PromiseState = iota
	PromiseFulfilled
	PromiseRejected
)

// PromiseReaction is one registered then()/catch() handler pair, deferred
// until the promise settles (or run immediately, via the owning realm's
// microtask queue, if it already has).
type PromiseReaction struct {
	OnFulfilled *Object // nil if this reaction only handles rejection
	OnRejected  *Object
	ResultCap   *Object // the derived promise returned by then()
}

// PromiseSlots is the internal-slot payload for Promise-tagged objects.
type PromiseSlots struct {
	State     PromiseState
	Result    value.Value
	Reactions []*PromiseReaction

	// Handled marks whether a rejection has had a rejection handler
	// attached — tracked for completeness though this host has no
	// unhandledrejection reporting surface to feed it into.
	Handled bool
}

func NewPromise(proto *Object) *Object {
	o := NewWithTag(proto, TagPromise)
	o.slots = &PromiseSlots{State: PromisePending}
	return o
}

func (o *Object) PromiseSlots() *PromiseSlots {
	s, _ := o.slots.(*PromiseSlots)
	return s
}

// MarkSlots keeps the settled result and every pending reaction's
// handlers/result-capability promise alive.
func (s *PromiseSlots) MarkSlots(mark func(value.Value)) {
	if s.Result != nil {
		mark(s.Result)
	}
	for _, r := range s.Reactions {
		if r.OnFulfilled != nil {
			mark(r.OnFulfilled)
		}
		if r.OnRejected != nil {
			mark(r.OnRejected)
		}
		if r.ResultCap != nil {
			mark(r.ResultCap)
		}
	}
}
