package object

import "github.com/solarbrowser/quanta-go/internal/value"

// proxyGet/proxySet dispatch to the handler's "get"/"set" trap (spec §3's
// Proxy exotic-object behaviour) when present, falling back to forwarding
// straight to the target otherwise.
func (o *Object) proxyGet(key Key, receiver value.Value, c Caller) value.Value {
	ps := o.ProxySlots()
	if ps == nil {
		return value.Undefined
	}
	if trap := ps.trap("get"); trap != nil {
		return c.CallFunction(trap, ps.Handler, []value.Value{ps.Target, key.ToValue(), receiver})
	}
	return ps.Target.Get(key, receiver, c)
}

func (o *Object) proxySet(key Key, v value.Value, c Caller) bool {
	ps := o.ProxySlots()
	if ps == nil {
		return false
	}
	if trap := ps.trap("set"); trap != nil {
		return bool(value.ToBoolean(c.CallFunction(trap, ps.Handler, []value.Value{ps.Target, key.ToValue(), v, o})))
	}
	return ps.Target.Set(key, v, o, c)
}

// proxyHas/proxyDelete/proxyOwnKeys cannot invoke a "has"/"deleteProperty"/
// "ownKeys" trap themselves: Has/Delete/GetOwnKeys have no Caller parameter
// to propagate a trap's thrown exception through, unlike Get/Set. They
// forward straight to the target, same as an untrapped Proxy would.
func (o *Object) proxyHas(key Key) bool {
	ps := o.ProxySlots()
	if ps == nil {
		return false
	}
	return ps.Target.Has(key)
}

func (o *Object) proxyDelete(key Key) bool {
	ps := o.ProxySlots()
	if ps == nil {
		return false
	}
	return ps.Target.Delete(key)
}

func (o *Object) proxyOwnKeys() []Key {
	ps := o.ProxySlots()
	if ps == nil {
		return nil
	}
	return ps.Target.GetOwnKeys()
}

func (ps *ProxySlots) trap(name string) *Object {
	if ps.Handler == nil {
		return nil
	}
	v := ps.Handler.Get(StringKey(name), ps.Handler, nil)
	fn, ok := v.(*Object)
	if !ok || !fn.IsCallable() {
		return nil
	}
	return fn
}
