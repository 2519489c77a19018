// Package environment implements the scope-chain machinery from spec
// §4.3: declarative and object-backed binding records, chained through an
// outer pointer, with temporal-dead-zone tracking for lexical bindings.
//
// Grounded on internal/interp/runtime/environment.go's Environment
// (Get/Set/Define/Has/GetLocal, outer-chain walk), generalized from a
// single case-insensitive map-backed scope to the spec's declarative vs.
// object-backed split plus TDZ sentinel handling (DWScript has neither a
// `with` statement nor TDZ bindings).
package environment

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// Caller is the capability an Environment needs from its owning Context:
// raising a ReferenceError for TDZ/immutable-binding access, and the full
// object.Caller protocol for delegating to an object-backed environment's
// underlying object (whose properties may be accessors).
type Caller interface {
	object.Caller
	ThrowReferenceError(format string, args ...any)
}

// Binding is a single declarative-environment slot from spec §4.3/
// GLOSSARY: a named slot that is mutable-or-not, deletable-or-not, and
// possibly still uninitialised (TDZ).
type Binding struct {
	Value       value.Value
	Mutable     bool
	Deletable   bool
	Initialized bool
}

// Environment is a node in the scope chain (spec §4/§4.3).
type Environment interface {
	// HasBinding reports whether name is bound in this environment
	// specifically (not the outer chain).
	HasBinding(name string) bool

	// GetBinding resolves name in THIS environment only (no outward walk —
	// callers use Resolve for the full chain). found is false if the name
	// is unbound here. A TDZ access raises a ReferenceError through c and
	// returns (Undefined, true).
	GetBinding(name string, c Caller) (v value.Value, found bool)

	// SetBinding assigns to an existing binding in THIS environment only.
	// Returns false if the name is unbound here or the binding is
	// immutable (raising in strict mode through c).
	SetBinding(name string, v value.Value, strict bool, c Caller) bool

	// CreateBinding declares a new initialized binding in this environment.
	// Returns false if the name already exists.
	CreateBinding(name string, v value.Value, mutable, deletable bool) bool

	// CreateUninitializedBinding declares a `let`/`const` binding in the
	// TDZ, to be lifted by InitializeBinding once its declaration executes.
	CreateUninitializedBinding(name string, mutable bool) bool

	// InitializeBinding lifts a TDZ binding out of the dead zone.
	InitializeBinding(name string, v value.Value) bool

	// DeleteBinding removes a binding from this environment if it was
	// created deletable.
	DeleteBinding(name string) bool

	// Outer returns the enclosing environment, or nil at the top.
	Outer() Environment
}

// Resolve walks env and its outer chain, returning the first environment
// that binds name along with the (possibly TDZ-erroring) value. found is
// false only if name is unbound in the entire chain.
func Resolve(env Environment, name string, c Caller) (v value.Value, found bool) {
	for cur := env; cur != nil; cur = cur.Outer() {
		if cur.HasBinding(name) {
			return cur.GetBinding(name, c)
		}
	}
	return value.Undefined, false
}

// ResolveSet walks env and its outer chain and assigns the first bound
// occurrence of name. Returns false if name is unbound anywhere in the
// chain (the caller then decides sloppy-mode implicit-global-create vs.
// strict-mode ReferenceError).
func ResolveSet(env Environment, name string, v value.Value, strict bool, c Caller) bool {
	for cur := env; cur != nil; cur = cur.Outer() {
		if cur.HasBinding(name) {
			cur.SetBinding(name, v, strict, c)
			return true
		}
	}
	return false
}

// HasBindingInChain reports whether name is bound anywhere in env's scope
// chain.
func HasBindingInChain(env Environment, name string) bool {
	for cur := env; cur != nil; cur = cur.Outer() {
		if cur.HasBinding(name) {
			return true
		}
	}
	return false
}
