package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallSymbolBigInt wires the Symbol and BigInt constructors/prototypes,
// including the well-known-symbol properties on the Symbol constructor
// itself (spec §4.4: "one realm-wide allocation of each protocol symbol").
func InstallSymbolBigInt(r *Registry) {
	symProto := r.SymbolProto
	r.Method(symProto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		switch t := this.(type) {
		case *value.Symbol:
			return value.String(t.String())
		case *object.Object:
			if t.Tag() == object.TagSymbolObject {
				if s := t.PrimitiveSymbol(); s != nil {
					return value.String(s.String())
				}
			}
		}
		c.ThrowTypeError("Symbol.prototype.toString called on non-symbol")
		return value.Undefined
	})
	r.Method(symProto, "valueOf", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		switch t := this.(type) {
		case *value.Symbol:
			return t
		case *object.Object:
			if t.Tag() == object.TagSymbolObject {
				if s := t.PrimitiveSymbol(); s != nil {
					return s
				}
			}
		}
		c.ThrowTypeError("Symbol.prototype.valueOf called on non-symbol")
		return value.Undefined
	})
	r.Accessor(symProto, "description", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		if s, ok := this.(*value.Symbol); ok {
			return value.String(s.Description)
		}
		return value.Undefined
	}, nil)

	registeredSymbols := make(map[string]*value.Symbol)
	symCtor := NewConstructor(r.FunctionProto, "Symbol", 0, symProto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			desc := ""
			if len(args) > 0 && !value.IsUndefined(args[0]) {
				desc = string(value.ToString(args[0], c))
			}
			return value.NewSymbol(desc)
		},
		nil, // Symbol is not constructible with `new`
	)
	r.Method(symCtor, "for", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		key := string(value.ToString(arg(args, 0), c))
		if s, ok := registeredSymbols[key]; ok {
			return s
		}
		s := value.NewSymbol(key)
		registeredSymbols[key] = s
		return s
	})
	wk := r.WellKnown
	for name, sym := range map[string]*value.Symbol{
		"iterator": wk.Iterator, "asyncIterator": wk.AsyncIterator,
		"match": wk.Match, "replace": wk.Replace, "search": wk.Search, "split": wk.Split,
		"hasInstance": wk.HasInstance, "isConcatSpreadable": wk.IsConcatSpreadable,
		"species": wk.Species, "toPrimitive": wk.ToPrimitive,
		"toStringTag": wk.ToStringTag, "unscopables": wk.Unscopables,
	} {
		symCtor.DefineProperty(object.StringKey(name), object.DataDescriptor(sym, false, false, false))
	}
	r.DefineGlobal("Symbol", symCtor)

	bigIntProto := r.BigIntProto
	r.Method(bigIntProto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		switch t := this.(type) {
		case value.BigInt:
			return value.String(t.String())
		case *object.Object:
			if t.Tag() == object.TagBigIntObject {
				return value.String(t.PrimitiveBigInt().String())
			}
		}
		c.ThrowTypeError("BigInt.prototype.toString called on non-bigint")
		return value.Undefined
	})
	r.Method(bigIntProto, "valueOf", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		switch t := this.(type) {
		case value.BigInt:
			return t
		case *object.Object:
			if t.Tag() == object.TagBigIntObject {
				return t.PrimitiveBigInt()
			}
		}
		c.ThrowTypeError("BigInt.prototype.valueOf called on non-bigint")
		return value.Undefined
	})
	bigIntCtor := NewConstructor(r.FunctionProto, "BigInt", 1, bigIntProto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return bigIntFromValue(c, arg(args, 0))
		},
		nil, // BigInt is not constructible with `new`
	)
	r.DefineGlobal("BigInt", bigIntCtor)
}

func bigIntFromValue(c object.Caller, v value.Value) value.Value {
	switch t := v.(type) {
	case value.BigInt:
		return t
	case value.Number:
		if float64(t) != float64(int64(t)) {
			c.ThrowRangeError("The number %v cannot be converted to a BigInt because it is not an integer", float64(t))
			return value.Undefined
		}
		return value.BigIntFromInt64(int64(t))
	case value.String:
		b, ok := value.ParseBigIntString(string(t))
		if !ok {
			c.ThrowError("Cannot convert %s to a BigInt", string(t))
			return value.Undefined
		}
		return b
	case value.Boolean:
		if t {
			return value.BigIntFromInt64(1)
		}
		return value.BigIntFromInt64(0)
	default:
		c.ThrowTypeError("Cannot convert value to a BigInt")
		return value.Undefined
	}
}
