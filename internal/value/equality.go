package value

import "math"

// StrictEquals implements the `===` operator: no coercion, type mismatch is
// always false, NaN !== NaN, +0 === -0.
func StrictEquals(a, b Value) bool {
	switch x := a.(type) {
	case undefinedValue:
		return IsUndefined(b)
	case nullValue:
		return IsNull(b)
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false
		}
		return float64(x) == float64(y) // NaN != NaN falls out of IEEE-754 ==
	case String:
		y, ok := b.(String)
		return ok && x == y
	case BigInt:
		y, ok := b.(BigInt)
		return ok && x.Cmp(y) == 0
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x == y
	default:
		// Object/function references: identity (pointer) equality.
		return a == b
	}
}

// SameValue implements Object.is semantics: NaN equals NaN, +0 does not
// equal -0.
func SameValue(a, b Value) bool {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if aok && bok {
		af, bf := float64(an), float64(bn)
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		if af == 0 && bf == 0 {
			return math.Signbit(af) == math.Signbit(bf)
		}
		return af == bf
	}
	return StrictEquals(a, b)
}

// SameValueZero is like SameValue but treats +0 and -0 as equal (used by
// Array.prototype.includes, Map/Set key comparison).
func SameValueZero(a, b Value) bool {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if aok && bok {
		af, bf := float64(an), float64(bn)
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	return StrictEquals(a, b)
}

// AbstractEquals implements the `==` operator's coercion ladder.
func AbstractEquals(a, b Value, th Thrower) bool {
	if sameType(a, b) {
		return StrictEquals(a, b)
	}

	switch {
	case IsNullOrUndefined(a) && IsNullOrUndefined(b):
		return true
	case IsNullOrUndefined(a) || IsNullOrUndefined(b):
		return false
	case IsNumber(a) && IsString(b):
		return AbstractEquals(a, ToNumber(b, th), th)
	case IsString(a) && IsNumber(b):
		return AbstractEquals(ToNumber(a, th), b, th)
	case IsBigInt(a) && IsString(b):
		return bigIntEqualsString(a.(BigInt), string(b.(String)))
	case IsString(a) && IsBigInt(b):
		return bigIntEqualsString(b.(BigInt), string(a.(String)))
	case IsBoolean(a):
		return AbstractEquals(ToNumber(a, th), b, th)
	case IsBoolean(b):
		return AbstractEquals(a, ToNumber(b, th), th)
	case (IsNumber(a) || IsString(a) || IsBigInt(a) || IsSymbol(a)) && isObjectRef(b):
		return AbstractEquals(a, ToPrimitive(b, HintDefault, th), th)
	case isObjectRef(a) && (IsNumber(b) || IsString(b) || IsBigInt(b) || IsSymbol(b)):
		return AbstractEquals(ToPrimitive(a, HintDefault, th), b, th)
	case IsBigInt(a) && IsNumber(b):
		return bigIntEqualsNumber(a.(BigInt), float64(b.(Number)))
	case IsNumber(a) && IsBigInt(b):
		return bigIntEqualsNumber(b.(BigInt), float64(a.(Number)))
	default:
		return false
	}
}

func bigIntEqualsString(b BigInt, s string) bool {
	other, ok := ParseBigIntString(s)
	return ok && b.Cmp(other) == 0
}

func bigIntEqualsNumber(b BigInt, f float64) bool {
	if math.IsNaN(f) || math.Trunc(f) != f {
		return false
	}
	bf, _ := new(bigFloatAdapter).fromBigInt(b).Float64()
	return bf == f
}

func sameType(a, b Value) bool {
	switch a.(type) {
	case undefinedValue:
		return IsUndefined(b)
	case nullValue:
		return IsNull(b)
	case Boolean:
		return IsBoolean(b)
	case Number:
		return IsNumber(b)
	case String:
		return IsString(b)
	case BigInt:
		return IsBigInt(b)
	case *Symbol:
		return IsSymbol(b)
	default:
		return isObjectRef(a) && isObjectRef(b)
	}
}

func isObjectRef(v Value) bool {
	switch v.(type) {
	case undefinedValue, nullValue, Boolean, Number, String, BigInt, *Symbol:
		return false
	default:
		return true
	}
}
