package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallProxy wires the Proxy constructor onto object.NewProxy/the
// get/set trap dispatch in internal/object/proxy.go. Proxy has no
// prototype object of its own — spec §3's exotic-object model says a
// Proxy transparently forwards to its target rather than carrying
// properties on a shared prototype, so unlike every other constructor in
// this package NewConstructor is not used here.
//
// has/deleteProperty/ownKeys traps are not dispatched (see
// internal/object/proxy.go's proxyHas/proxyDelete/proxyOwnKeys doc
// comment): Object.Has/Delete/GetOwnKeys carry no Caller to propagate a
// trap's thrown exception through, so those three always forward straight
// to the target, same as an untrapped Proxy would.
func InstallProxy(r *Registry) {
	ctor := object.NewConstructor(r.FunctionProto, "Proxy", 2,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Proxy requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			target, ok := asObject(arg(args, 0))
			if !ok {
				c.ThrowTypeError("Cannot create proxy with a non-object as target")
				return value.Undefined
			}
			handler, ok := asObject(arg(args, 1))
			if !ok {
				c.ThrowTypeError("Cannot create proxy with a non-object as handler")
				return value.Undefined
			}
			return r.GC.Allocate(object.NewProxy(target, handler))
		},
	)
	r.DefineGlobal("Proxy", ctor)
}
