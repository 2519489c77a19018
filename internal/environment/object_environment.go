package environment

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// ObjectEnvironment wraps a specific Object (the global object, or a
// `with` statement's target) per spec §4.3: lookups and writes go through
// the object's property protocol, and `deletable` follows property
// configurability rather than a locally tracked flag. Object environments
// have no TDZ — every binding they expose is immediately readable.
type ObjectEnvironment struct {
	target       *object.Object
	outer        Environment
	withTarget   bool // true for a `with` statement's environment record
}

// NewObjectEnvironment wraps target (typically the global object).
func NewObjectEnvironment(target *object.Object, outer Environment, isWith bool) *ObjectEnvironment {
	return &ObjectEnvironment{target: target, outer: outer, withTarget: isWith}
}

// Target returns the wrapped object.
func (e *ObjectEnvironment) Target() *object.Object { return e.target }

func (e *ObjectEnvironment) HasBinding(name string) bool {
	return e.target.Has(object.StringKey(name))
}

func (e *ObjectEnvironment) GetBinding(name string, c Caller) (value.Value, bool) {
	key := object.StringKey(name)
	if !e.target.Has(key) {
		return value.Undefined, false
	}
	return e.target.Get(key, e.target, c), true
}

func (e *ObjectEnvironment) SetBinding(name string, v value.Value, strict bool, c Caller) bool {
	key := object.StringKey(name)
	if !e.target.Has(key) {
		return false
	}
	ok := e.target.Set(key, v, e.target, c)
	if !ok && strict && c != nil {
		c.ThrowTypeError("Cannot assign to read-only property '%s'", name)
	}
	return ok
}

func (e *ObjectEnvironment) CreateBinding(name string, v value.Value, mutable, deletable bool) bool {
	key := object.StringKey(name)
	if e.target.GetOwn(key) != nil {
		return false
	}
	return e.target.DefineProperty(key, object.DataDescriptor(v, mutable, true, deletable))
}

// CreateUninitializedBinding is not meaningful for object environments
// (spec §4.3: TDZ is a declarative-environment concept only); always fails.
func (e *ObjectEnvironment) CreateUninitializedBinding(name string, mutable bool) bool {
	return false
}

func (e *ObjectEnvironment) InitializeBinding(name string, v value.Value) bool {
	key := object.StringKey(name)
	if e.target.GetOwn(key) != nil {
		return e.target.DefineProperty(key, object.DataDescriptor(v, true, true, true))
	}
	return e.target.DefineProperty(key, object.DataDescriptor(v, true, true, true))
}

func (e *ObjectEnvironment) DeleteBinding(name string) bool {
	return e.target.Delete(object.StringKey(name))
}

func (e *ObjectEnvironment) Outer() Environment { return e.outer }

// EnumerateBindingValues returns the wrapped object itself — the GC root
// walk only needs to reach it once, then the ordinary object-graph mark
// in internal/gc covers every property it exposes.
func (e *ObjectEnvironment) EnumerateBindingValues() []value.Value {
	return []value.Value{e.target}
}

var _ Environment = (*ObjectEnvironment)(nil)
