package value

import (
	"math"
	"strconv"
	"strings"
)

// Hint selects which conversion ToPrimitive should prefer.
type Hint string

const (
	HintDefault Hint = "default"
	HintString  Hint = "string"
	HintNumber  Hint = "number"
)

// Thrower is implemented by a caller (normally internal/context.Context)
// that can raise a catchable TypeError. Conversions that must throw per
// §4.1 (Symbol -> Number/String) take one so this package never needs to
// know about the exception-signal protocol in internal/context.
type Thrower interface {
	ThrowTypeError(format string, args ...any)
}

// Primitivizable is implemented by object references (internal/object.Object)
// so ToPrimitive can invoke [Symbol.toPrimitive]/valueOf/toString without
// this package importing internal/object.
type Primitivizable interface {
	Value
	ToPrimitive(hint Hint, th Thrower) Value
}

// ToPrimitive converts v to a primitive using hint by delegating to the
// value's own ToPrimitive (for objects: valueOf/toString in hint order;
// Symbol.toPrimitive is not consulted on this path), per §3/§4.1.
func ToPrimitive(v Value, hint Hint, th Thrower) Value {
	if p, ok := v.(Primitivizable); ok {
		return p.ToPrimitive(hint, th)
	}
	return v
}

// ToNumber implements the Number conversion, including the documented
// boundary cases: "" -> 0, "  42  " -> 42 (whitespace trimmed), "0x10" ->
// 16, undefined -> NaN, null -> 0, true -> 1, false -> 0.
func ToNumber(v Value, th Thrower) Number {
	switch t := v.(type) {
	case undefinedValue:
		return Number(math.NaN())
	case nullValue:
		return 0
	case Boolean:
		if t {
			return 1
		}
		return 0
	case Number:
		return t
	case String:
		return stringToNumber(string(t))
	case *Symbol:
		if th != nil {
			th.ThrowTypeError("Cannot convert a Symbol value to a number")
		}
		return Number(math.NaN())
	case BigInt:
		if th != nil {
			th.ThrowTypeError("Cannot convert a BigInt value to a number implicitly")
		}
		return Number(math.NaN())
	case Primitivizable:
		if p := ToPrimitive(t, HintNumber, th); p != Value(t) {
			return ToNumber(p, th)
		}
		return Number(math.NaN())
	default:
		return Number(math.NaN())
	}
}

func stringToNumber(s string) Number {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "-0x") || strings.HasPrefix(lower, "+0x") {
		neg := false
		body := lower
		switch {
		case strings.HasPrefix(body, "-0x"):
			neg, body = true, body[3:]
		case strings.HasPrefix(body, "+0x"):
			body = body[3:]
		default:
			body = body[2:]
		}
		n, err := strconv.ParseUint(body, 16, 64)
		if err != nil {
			return Number(math.NaN())
		}
		if neg {
			return Number(-float64(n))
		}
		return Number(float64(n))
	}
	switch lower {
	case "infinity", "+infinity":
		return Number(math.Inf(1))
	case "-infinity":
		return Number(math.Inf(-1))
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Number(math.NaN())
	}
	return Number(f)
}

// NumberToString implements ToString(number): "NaN", "0" for both +0/-0,
// and exponential notation once the magnitude reaches 1e21, matching the
// documented boundary behaviour.
func NumberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0" // covers both +0 and -0
	}
	abs := math.Abs(f)
	if abs >= 1e21 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToString implements the String conversion for every variant.
func ToString(v Value, th Thrower) String {
	switch t := v.(type) {
	case undefinedValue:
		return "undefined"
	case nullValue:
		return "null"
	case Boolean:
		return String(t.String())
	case Number:
		return String(NumberToString(float64(t)))
	case String:
		return t
	case *Symbol:
		if th != nil {
			th.ThrowTypeError("Cannot convert a Symbol value to a string")
		}
		return ""
	case BigInt:
		return String(t.String())
	case Primitivizable:
		if p := ToPrimitive(t, HintString, th); p != Value(t) {
			return ToString(p, th)
		}
		return ""
	default:
		return ""
	}
}

// ToBoolean implements the Boolean conversion (falsy set: undefined, null,
// false, +0, -0, NaN, "").
func ToBoolean(v Value) Boolean {
	switch t := v.(type) {
	case undefinedValue:
		return false
	case nullValue:
		return false
	case Boolean:
		return t
	case Number:
		f := float64(t)
		return Boolean(f != 0 && !math.IsNaN(f))
	case String:
		return t != ""
	case BigInt:
		return t.Big().Sign() != 0
	default:
		return true // objects, symbols, functions are always truthy
	}
}

// ToInteger truncates toward zero, mapping NaN to 0.
func ToInteger(v Value, th Thrower) float64 {
	n := float64(ToNumber(v, th))
	if math.IsNaN(n) {
		return 0
	}
	if math.IsInf(n, 0) {
		return n
	}
	return math.Trunc(n)
}

// ToInt32 implements the 32-bit signed wraparound conversion.
func ToInt32(v Value, th Thrower) int32 {
	n := float64(ToNumber(v, th))
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	n = math.Trunc(n)
	m := math.Mod(n, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	if m >= 2147483648 {
		m -= 4294967296
	}
	return int32(m)
}

// ToUint32 implements the 32-bit unsigned wraparound conversion.
func ToUint32(v Value, th Thrower) uint32 {
	n := float64(ToNumber(v, th))
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	n = math.Trunc(n)
	m := math.Mod(n, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

// ToPropertyKey converts v to a property key: either a String or a
// *Symbol pass-through (Symbols are never stringified as keys).
func ToPropertyKey(v Value, th Thrower) Value {
	if IsSymbol(v) {
		return v
	}
	return ToString(v, th)
}
