package context

import (
	"github.com/solarbrowser/quanta-go/internal/builtins"
	"github.com/solarbrowser/quanta-go/internal/errors"
	"github.com/solarbrowser/quanta-go/internal/gc"
	"github.com/solarbrowser/quanta-go/internal/object"
)

// Realm is the shared intrinsics set every Context an Engine creates reads
// from (spec §4.4: "Contexts share one realm: one global object, one set
// of intrinsic prototypes, one GC"). The prototype/global-object graph
// itself is built by internal/builtins, which only needs to see
// object/value/gc; Realm adds the one piece that package can't own without
// creating an import cycle back into internal/context: resolving an
// errors.Kind to the matching Error-family prototype for throwKind.
type Realm struct {
	*builtins.Registry
}

// NewRealm builds a fresh realm: global object, every intrinsic prototype,
// and every built-in installed onto them. gcc may be nil (a zero-threshold
// collector is created), matching NewGlobalContext's convenience default.
func NewRealm(gcc *gc.Collector) *Realm {
	if gcc == nil {
		gcc = gc.New(0)
	}
	return &Realm{Registry: builtins.Bootstrap(gcc)}
}

// ErrorPrototype resolves kind to its Error-family prototype (TypeError,
// RangeError, ...), falling back to the base Error.prototype for an
// unrecognized kind.
func (r *Realm) ErrorPrototype(kind errors.Kind) *object.Object {
	if p, ok := r.ErrorProtos[kind]; ok {
		return p
	}
	return r.ErrorProto
}
