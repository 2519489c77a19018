package object

import "github.com/solarbrowser/quanta-go/internal/value"

// ToPrimitive implements value.Primitivizable so generic value.ToNumber/
// value.ToString calls coerce objects through valueOf/toString automatically
// whenever th also happens to satisfy Caller (true for every real caller in
// this module: internal/context.Context implements both). Without a Caller
// th (a bare Thrower), there is no way to invoke a method body, so this
// degrades to returning o unconverted — ToNumber/ToString then fall through
// to their own NaN/"" default case.
//
// This does not apply the Symbol.toPrimitive override, since a Caller alone
// doesn't carry the realm's well-known-symbol table; it calls
// ToPrimitiveWithSymbol with a nil symbol.
func (o *Object) ToPrimitive(hint value.Hint, th value.Thrower) value.Value {
	c, ok := th.(Caller)
	if !ok {
		return o
	}
	return o.ToPrimitiveWithSymbol(hint, nil, c)
}

var _ value.Primitivizable = (*Object)(nil)

// ToPrimitiveWithSymbol implements OrdinaryToPrimitive plus the
// Symbol.toPrimitive override from spec §4.1: if toPrimitiveSym is non-nil
// and o has a callable @@toPrimitive, it wins outright; otherwise
// valueOf/toString (or toString/valueOf, under HintString) are tried in
// order, and the first one returning a non-object wins. Within this module
// its only caller is ToPrimitive above, which passes a nil toPrimitiveSym,
// so the @@toPrimitive branch runs only for a caller that supplies one.
func (o *Object) ToPrimitiveWithSymbol(hint value.Hint, toPrimitiveSym *value.Symbol, c Caller) value.Value {
	if toPrimitiveSym != nil {
		if fn, ok := o.Get(SymbolKey(toPrimitiveSym), o, c).(*Object); ok && fn.IsCallable() {
			h := string(hint)
			if h == "" {
				h = string(value.HintDefault)
			}
			return fn.Call(c, o, []value.Value{value.String(h)})
		}
	}

	order := []string{"valueOf", "toString"}
	if hint == value.HintString {
		order = []string{"toString", "valueOf"}
	}
	for _, name := range order {
		if fn, ok := o.Get(StringKey(name), o, c).(*Object); ok && fn.IsCallable() {
			result := fn.Call(c, o, nil)
			if _, isObj := result.(*Object); !isObj {
				return result
			}
		}
	}
	if c != nil {
		c.ThrowTypeError("Cannot convert object to primitive value")
	}
	return value.Undefined
}
