package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/errors"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallPromise wires the Promise constructor and prototype (then/catch/
// finally) plus the static resolve/reject/all/allSettled/race/any helpers,
// scheduling every reaction through object.Caller's EnqueueMicrotask so
// settlement always happens after the current turn per spec §5.
func InstallPromise(r *Registry) {
	proto := r.PromiseProto

	r.Method(proto, "then", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		p, ok := thisPromise(this, c)
		if !ok {
			return value.Undefined
		}
		onFulfilled, _ := asObject(arg(args, 0))
		onRejected, _ := asObject(arg(args, 1))
		return promiseThen(r, c, p, onFulfilled, onRejected)
	})
	r.Method(proto, "catch", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		p, ok := thisPromise(this, c)
		if !ok {
			return value.Undefined
		}
		onRejected, _ := asObject(arg(args, 0))
		return promiseThen(r, c, p, nil, onRejected)
	})
	r.Method(proto, "finally", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		p, ok := thisPromise(this, c)
		if !ok {
			return value.Undefined
		}
		onFinally, _ := asObject(arg(args, 0))
		if onFinally == nil || !onFinally.IsCallable() {
			return promiseThen(r, c, p, nil, nil)
		}
		wrapFulfill := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			onFinally.Call(c, value.Undefined, nil)
			return arg(args, 0)
		})
		wrapReject := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			onFinally.Call(c, value.Undefined, nil)
			c.ThrowValue(arg(args, 0))
			return value.Undefined
		})
		return promiseThen(r, c, p, wrapFulfill, wrapReject)
	})

	ctor := NewConstructor(r.FunctionProto, "Promise", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Promise requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			p := r.GC.Allocate(object.NewPromise(proto))
			executor, ok := asObject(arg(args, 0))
			if !ok || !executor.IsCallable() {
				c.ThrowTypeError("Promise resolver is not a function")
				return value.Undefined
			}
			resolveFn := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
				resolvePromise(r, c, p, arg(args, 0))
				return value.Undefined
			})
			rejectFn := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
				rejectPromise(r, c, p, arg(args, 0))
				return value.Undefined
			})
			executor.Call(c, value.Undefined, []value.Value{resolveFn, rejectFn})
			if c.HasException() {
				reason := c.Exception()
				c.ClearException()
				rejectPromise(r, c, p, reason)
			}
			return p
		},
	)

	r.Method(ctor, "resolve", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		v := arg(args, 0)
		if p, ok := asObject(v); ok && p.Tag() == object.TagPromise {
			return p
		}
		p := r.GC.Allocate(object.NewPromise(proto))
		resolvePromise(r, c, p, v)
		return p
	})
	r.Method(ctor, "reject", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		p := r.GC.Allocate(object.NewPromise(proto))
		rejectPromise(r, c, p, arg(args, 0))
		return p
	})
	r.Method(ctor, "all", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return promiseCombinator(r, c, proto, arg(args, 0), combinatorAll)
	})
	r.Method(ctor, "allSettled", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return promiseCombinator(r, c, proto, arg(args, 0), combinatorAllSettled)
	})
	r.Method(ctor, "race", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return promiseCombinator(r, c, proto, arg(args, 0), combinatorRace)
	})
	r.Method(ctor, "any", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return promiseCombinator(r, c, proto, arg(args, 0), combinatorAny)
	})

	r.DefineGlobal("Promise", ctor)
}

func thisPromise(this value.Value, c object.Caller) (*object.Object, bool) {
	o, ok := thisObject(this, c, "Promise method")
	if !ok || o.Tag() != object.TagPromise {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return o, true
}

// resolvePromise implements [[Resolve]]: a thenable argument (including
// one of our own Promise objects, whose prototype carries a callable
// "then") is chained by invoking its then method with native resolve/
// reject callbacks on a microtask; anything else fulfills p directly.
func resolvePromise(r *Registry, c object.Caller, p *object.Object, v value.Value) {
	slots := p.PromiseSlots()
	if slots.State != object.PromisePending {
		return
	}
	if v == value.Value(p) {
		rejectPromise(r, c, p, newTypeErrorValue(r, c, "Chaining cycle detected for promise"))
		return
	}
	if thenable, ok := asObject(v); ok {
		then, _ := thenable.Get(object.StringKey("then"), thenable, c).(*object.Object)
		if then != nil && then.IsCallable() {
			c.EnqueueMicrotask(func() {
				resolveFn := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
					resolvePromise(r, c, p, arg(args, 0))
					return value.Undefined
				})
				rejectFn := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
					rejectPromise(r, c, p, arg(args, 0))
					return value.Undefined
				})
				then.Call(c, thenable, []value.Value{resolveFn, rejectFn})
			})
			return
		}
	}
	fulfillPromise(r, c, p, v)
}

func fulfillPromise(r *Registry, c object.Caller, p *object.Object, v value.Value) {
	slots := p.PromiseSlots()
	if slots.State != object.PromisePending {
		return
	}
	slots.State = object.PromiseFulfilled
	slots.Result = v
	triggerReactions(r, c, p)
}

func rejectPromise(r *Registry, c object.Caller, p *object.Object, reason value.Value) {
	slots := p.PromiseSlots()
	if slots.State != object.PromisePending {
		return
	}
	slots.State = object.PromiseRejected
	slots.Result = reason
	triggerReactions(r, c, p)
}

func triggerReactions(r *Registry, c object.Caller, p *object.Object) {
	slots := p.PromiseSlots()
	reactions := slots.Reactions
	slots.Reactions = nil
	for _, reaction := range reactions {
		reaction := reaction
		c.EnqueueMicrotask(func() { runReaction(r, c, p, reaction) })
	}
}

func runReaction(r *Registry, c object.Caller, p *object.Object, reaction *object.PromiseReaction) {
	slots := p.PromiseSlots()
	handler := reaction.OnFulfilled
	if slots.State == object.PromiseRejected {
		handler = reaction.OnRejected
	}
	result := slots.Result
	if handler == nil || !handler.IsCallable() {
		if slots.State == object.PromiseRejected {
			rejectPromise(r, c, reaction.ResultCap, result)
		} else {
			fulfillPromise(r, c, reaction.ResultCap, result)
		}
		return
	}
	out := handler.Call(c, value.Undefined, []value.Value{result})
	if c.HasException() {
		reason := c.Exception()
		c.ClearException()
		rejectPromise(r, c, reaction.ResultCap, reason)
		return
	}
	resolvePromise(r, c, reaction.ResultCap, out)
}

// promiseThen implements Promise.prototype.then's reaction-registration
// half: queue the reaction if p is still pending, or schedule it to run on
// the microtask queue immediately if p has already settled.
func promiseThen(r *Registry, c object.Caller, p *object.Object, onFulfilled, onRejected *object.Object) *object.Object {
	derived := r.GC.Allocate(object.NewPromise(r.PromiseProto))
	reaction := &object.PromiseReaction{OnFulfilled: onFulfilled, OnRejected: onRejected, ResultCap: derived}
	slots := p.PromiseSlots()
	if slots.State == object.PromisePending {
		slots.Reactions = append(slots.Reactions, reaction)
	} else {
		c.EnqueueMicrotask(func() { runReaction(r, c, p, reaction) })
	}
	return derived
}

func newTypeErrorValue(r *Registry, c object.Caller, msg string) value.Value {
	return newErrorInstance(r, c, r.ErrorProtos[errors.KindTypeError], []value.Value{value.String(msg)})
}

type combinatorKind int

const (
	combinatorAll combinatorKind = iota
	combinatorAllSettled
	combinatorRace
	combinatorAny
)

// promiseCombinator implements Promise.all/allSettled/race/any over a
// plain-array iterable (this host has no Symbol.iterator-driven generic
// iteration protocol for arbitrary iterables, so the input is read as an
// array-like via arrayElems).
func promiseCombinator(r *Registry, c object.Caller, proto *object.Object, iterable value.Value, kind combinatorKind) value.Value {
	result := r.GC.Allocate(object.NewPromise(proto))
	src, ok := asObject(iterable)
	if !ok {
		rejectPromise(r, c, result, newTypeErrorValue(r, c, "argument is not iterable"))
		return result
	}
	items := arrayElems(c, src)
	n := len(items)
	if n == 0 {
		switch kind {
		case combinatorAll, combinatorAllSettled:
			fulfillPromise(r, c, result, newArrayOf(r, c, nil))
		case combinatorAny:
			rejectPromise(r, c, result, newAggregateErrorValue(r, c, nil, "All promises were rejected"))
		default:
			// race with no inputs never settles; nothing to do.
		}
		return result
	}

	results := make([]value.Value, n)
	remaining := n
	settled := false

	for i, item := range items {
		index := i
		asPromise := func(v value.Value) *object.Object {
			if po, ok := asObject(v); ok && po.Tag() == object.TagPromise {
				return po
			}
			p := r.GC.Allocate(object.NewPromise(proto))
			resolvePromise(r, c, p, v)
			return p
		}(item)

		onFulfilled := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			v := arg(args, 0)
			switch kind {
			case combinatorRace, combinatorAny:
				if !settled {
					settled = true
					fulfillPromise(r, c, result, v)
				}
			case combinatorAllSettled:
				entry := r.GC.Allocate(object.New(r.ObjectProto))
				entry.DefineProperty(object.StringKey("status"), object.DefaultDataProperty(value.String("fulfilled")))
				entry.DefineProperty(object.StringKey("value"), object.DefaultDataProperty(v))
				results[index] = entry
				remaining--
				if remaining == 0 {
					fulfillPromise(r, c, result, newArrayOf(r, c, results))
				}
			default: // combinatorAll
				results[index] = v
				remaining--
				if remaining == 0 {
					fulfillPromise(r, c, result, newArrayOf(r, c, results))
				}
			}
			return value.Undefined
		})
		onRejected := object.NewFunction(r.FunctionProto, "", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			v := arg(args, 0)
			switch kind {
			case combinatorRace:
				if !settled {
					settled = true
					rejectPromise(r, c, result, v)
				}
			case combinatorAll:
				if !settled {
					settled = true
					rejectPromise(r, c, result, v)
				}
			case combinatorAllSettled:
				entry := r.GC.Allocate(object.New(r.ObjectProto))
				entry.DefineProperty(object.StringKey("status"), object.DefaultDataProperty(value.String("rejected")))
				entry.DefineProperty(object.StringKey("reason"), object.DefaultDataProperty(v))
				results[index] = entry
				remaining--
				if remaining == 0 {
					fulfillPromise(r, c, result, newArrayOf(r, c, results))
				}
			case combinatorAny:
				results[index] = v
				remaining--
				if remaining == 0 {
					rejectPromise(r, c, result, newAggregateErrorValue(r, c, results, "All promises were rejected"))
				}
			}
			return value.Undefined
		})
		promiseThen(r, c, asPromise, onFulfilled, onRejected)
	}
	return result
}

func newAggregateErrorValue(r *Registry, c object.Caller, errVals []value.Value, msg string) value.Value {
	errObj := newErrorInstance(r, c, r.ErrorProtos[errors.KindAggregateError], []value.Value{value.String(msg)})
	if o, ok := errObj.(*object.Object); ok {
		o.DefineProperty(object.StringKey("errors"), object.BuiltinMethodProperty(newArrayOf(r, c, errVals)))
	}
	return errObj
}
