package object

import (
	"strconv"

	"github.com/solarbrowser/quanta-go/internal/value"
)

// Key is a property key: either a string or a symbol, normalized into a
// comparable struct so it can be a Go map key (value.Value itself may hold
// *Symbol, which is comparable, but we want one canonical key type for the
// property table and the ordered-keys slice).
type Key struct {
	str string
	sym *value.Symbol
}

// StringKey builds a string-valued property key.
func StringKey(s string) Key { return Key{str: s} }

// SymbolKey builds a symbol-valued property key.
func SymbolKey(s *value.Symbol) Key { return Key{sym: s} }

// KeyFromValue converts a ToPropertyKey result (String or *Symbol) into a Key.
func KeyFromValue(v value.Value) Key {
	if sym, ok := v.(*value.Symbol); ok {
		return Key{sym: sym}
	}
	return Key{str: string(v.(value.String))}
}

// IsSymbol reports whether this key is a Symbol key.
func (k Key) IsSymbol() bool { return k.sym != nil }

// String returns the string form (only meaningful when !IsSymbol()).
func (k Key) String() string { return k.str }

// Symbol returns the symbol form (only meaningful when IsSymbol()).
func (k Key) Symbol() *value.Symbol { return k.sym }

// ToValue converts the key back into a Value (String or *Symbol).
func (k Key) ToValue() value.Value {
	if k.sym != nil {
		return k.sym
	}
	return value.String(k.str)
}

// arrayIndex reports whether the key is a canonical array index
// ("0".."4294967294") and its numeric value, per spec §3's ordering rule:
// integer-indexed keys enumerate first, in ascending numeric order, on
// Array/TypedArray objects.
func (k Key) arrayIndex() (uint32, bool) {
	if k.sym != nil || k.str == "" {
		return 0, false
	}
	if k.str == "0" {
		return 0, true
	}
	if k.str[0] < '1' || k.str[0] > '9' {
		return 0, false
	}
	n, err := strconv.ParseUint(k.str, 10, 32)
	if err != nil {
		return 0, false
	}
	if n == 4294967295 { // 2^32-1 is excluded from the canonical index range
		return 0, false
	}
	if strconv.FormatUint(n, 10) != k.str {
		return 0, false // rejects leading zeros, "+1", etc.
	}
	return uint32(n), true
}
