package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// disposableSlots tracks the stack of registered disposal callbacks, LIFO
// per spec §4.4's DisposableStack/AsyncDisposableStack.
type disposableSlots struct {
	callbacks []*object.Object
	disposed  bool
}

// MarkSlots keeps registered callbacks alive across a collection even
// though nothing else on the heap points at them once use()/defer()
// returns (internal/gc's Collector type-asserts for this structurally).
func (ds *disposableSlots) MarkSlots(mark func(value.Value)) {
	for _, cb := range ds.callbacks {
		mark(cb)
	}
}

// InstallDisposableStack wires DisposableStack and AsyncDisposableStack:
// a resource-cleanup stack that runs its registered callbacks in reverse
// registration order on dispose(), the explicit-resource-management
// pattern spec §4.4 lists alongside Proxy/Reflect/Iterator. Async and sync
// share the same Go-side slots and method bodies; the async variant's
// dispose just runs its callbacks synchronously too, since there is no
// event loop behind this host to await against (same stubbing rationale
// InstallGlobals gives setTimeout).
func InstallDisposableStack(r *Registry) {
	installStack(r, r.DisposableStackProto, "DisposableStack")
	installStack(r, r.AsyncDisposableStackProto, "AsyncDisposableStack")
}

func installStack(r *Registry, proto *object.Object, name string) {
	r.Method(proto, "use", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		_, ds, ok := thisDisposable(this, c)
		if !ok {
			return value.Undefined
		}
		if res, ok := asObject(arg(args, 0)); ok {
			if disposeFn, ok := res.Get(object.StringKey("dispose"), res, c).(*object.Object); ok && disposeFn.IsCallable() {
				ds.callbacks = append(ds.callbacks, disposeFn)
			}
		}
		return arg(args, 0)
	})
	r.Method(proto, "adopt", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		_, ds, ok := thisDisposable(this, c)
		if !ok {
			return value.Undefined
		}
		resource, onDispose := arg(args, 0), arg(args, 1)
		if fn, ok := onDispose.(*object.Object); ok && fn.IsCallable() {
			wrapped := object.NewFunction(r.FunctionProto, "", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
				return c.CallFunction(fn, value.Undefined, []value.Value{resource})
			})
			ds.callbacks = append(ds.callbacks, wrapped)
		}
		return resource
	})
	r.Method(proto, "defer", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		_, ds, ok := thisDisposable(this, c)
		if !ok {
			return value.Undefined
		}
		if fn, ok := asObject(arg(args, 0)); ok && fn.IsCallable() {
			ds.callbacks = append(ds.callbacks, fn)
		}
		return value.Undefined
	})
	r.Method(proto, "move", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ds, ok := thisDisposable(this, c)
		if !ok {
			return value.Undefined
		}
		moved := r.GC.Allocate(object.NewWithTag(o.Proto(), object.TagOrdinary))
		moved.SetSlots(&disposableSlots{callbacks: ds.callbacks})
		ds.callbacks = nil
		ds.disposed = true
		return moved
	})
	r.Method(proto, "dispose", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		disposeStack(this, c)
		return value.Undefined
	})
	r.Method(proto, "disposeAsync", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		disposeStack(this, c)
		return value.Undefined
	})
	r.Accessor(proto, "disposed", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		_, ds, ok := thisDisposable(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Boolean(ds.disposed)
	}, nil)

	ctor := NewConstructor(r.FunctionProto, name, 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor %s requires 'new'", name)
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			o := object.NewWithTag(proto, object.TagOrdinary)
			o.SetSlots(&disposableSlots{})
			return r.GC.Allocate(o)
		},
	)
	r.DefineGlobal(name, ctor)
}

func thisDisposable(this value.Value, c object.Caller) (*object.Object, *disposableSlots, bool) {
	o, ok := thisObject(this, c, "DisposableStack method")
	if !ok {
		return nil, nil, false
	}
	ds, ok := o.Slots().(*disposableSlots)
	if !ok {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, nil, false
	}
	return o, ds, true
}

func disposeStack(this value.Value, c object.Caller) {
	o, ds, ok := thisDisposable(this, c)
	if !ok || ds.disposed {
		return
	}
	for i := len(ds.callbacks) - 1; i >= 0; i-- {
		c.CallFunction(ds.callbacks[i], o, nil)
	}
	ds.disposed = true
	ds.callbacks = nil
}
