// Package value implements the tagged-union Value representation described
// in spec §3-4.1: the primitive and reference variants every other package
// in this module operates on.
package value

import "fmt"

// Value is the interface every runtime value variant implements: the
// primitives (Undefined, Null, Boolean, Number, String, BigInt, Symbol) and
// object references. Object/Function references are represented by
// anything satisfying ObjectLike, so that this package has no import-cycle
// dependency on internal/object.
type Value interface {
	// Type reports the tagged-union variant name, used by typeof-style
	// dispatch and Object.prototype.toString.
	Type() string
	// String renders a display form; for objects this is overridden by
	// their own String()/toString() protocol, not this default.
	String() string
}

// ObjectLike is implemented by internal/object.Object. Kept as an
// interface here (instead of importing internal/object directly) so
// internal/value has no dependency on the heap/property-table machinery —
// only internal/object depends on internal/value, never the reverse.
type ObjectLike interface {
	Value
	IsCallable() bool
	IsExtensible() bool
}

// ============================================================================
// Undefined
// ============================================================================

type undefinedValue struct{}

// Undefined is the unique `undefined` value.
var Undefined Value = undefinedValue{}

func (undefinedValue) Type() string   { return "undefined" }
func (undefinedValue) String() string { return "undefined" }

// IsUndefined reports whether v is the Undefined value.
func IsUndefined(v Value) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// ============================================================================
// Null
// ============================================================================

type nullValue struct{}

// Null is the unique `null` value.
var Null Value = nullValue{}

func (nullValue) Type() string   { return "object" } // typeof null === "object", a documented wart
func (nullValue) String() string { return "null" }

// IsNull reports whether v is the Null value.
func IsNull(v Value) bool {
	_, ok := v.(nullValue)
	return ok
}

// IsNullOrUndefined reports whether v is Null or Undefined.
func IsNullOrUndefined(v Value) bool {
	return IsNull(v) || IsUndefined(v)
}

// ============================================================================
// Boolean
// ============================================================================

// Boolean is a JavaScript boolean primitive.
type Boolean bool

// True and False are the canonical Boolean values.
const (
	True  Boolean = true
	False Boolean = false
)

func (b Boolean) Type() string { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// IsBoolean reports whether v is a Boolean.
func IsBoolean(v Value) bool {
	_, ok := v.(Boolean)
	return ok
}

// ============================================================================
// Number
// ============================================================================

// Number is a JavaScript number primitive: an IEEE-754 double.
type Number float64

func (n Number) Type() string { return "number" }

// String formats per ToString(number) rules (see convert.go for the exact
// algorithm; the Stringer here just calls it).
func (n Number) String() string {
	return NumberToString(float64(n))
}

// IsNumber reports whether v is a Number.
func IsNumber(v Value) bool {
	_, ok := v.(Number)
	return ok
}

// ============================================================================
// String
// ============================================================================

// String is a JavaScript string primitive: an immutable UTF-8 byte
// sequence. Indexing operations that need UTF-16 code-unit semantics
// convert on demand at their call sites (internal/builtins and
// internal/object's String wrapper); the stored representation stays
// UTF-8 so Go string operations work directly on it.
type String string

func (s String) Type() string   { return "string" }
func (s String) String() string { return string(s) }

// IsString reports whether v is a String.
func IsString(v Value) bool {
	_, ok := v.(String)
	return ok
}

// ============================================================================
// Symbol
// ============================================================================

// Symbol is a unique, identity-compared value with an optional description.
// Equality for Symbol is pointer identity on the *Symbol value, never
// structural — two symbols with the same description are distinct.
type Symbol struct {
	Description string
	// id makes zero-value *Symbol comparisons meaningless on purpose;
	// callers must go through NewSymbol.
	id uint64
}

var symbolCounter uint64

// NewSymbol allocates a fresh, globally unique Symbol.
func NewSymbol(description string) *Symbol {
	symbolCounter++
	return &Symbol{Description: description, id: symbolCounter}
}

func (s *Symbol) Type() string { return "symbol" }
func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.Description)
}

// IsSymbol reports whether v is a *Symbol.
func IsSymbol(v Value) bool {
	_, ok := v.(*Symbol)
	return ok
}

// WellKnownSymbols holds the realm's single allocation of each protocol
// symbol (iterator, asyncIterator, match, replace, search, split,
// hasInstance, isConcatSpreadable, species, toPrimitive, toStringTag,
// unscopables), per spec §4.4.
type WellKnownSymbols struct {
	Iterator            *Symbol
	AsyncIterator       *Symbol
	Match               *Symbol
	Replace             *Symbol
	Search              *Symbol
	Split               *Symbol
	HasInstance         *Symbol
	IsConcatSpreadable  *Symbol
	Species             *Symbol
	ToPrimitive         *Symbol
	ToStringTag         *Symbol
	Unscopables         *Symbol
}

// NewWellKnownSymbols allocates one fresh set of well-known symbols. Called
// exactly once per Engine/realm initialization.
func NewWellKnownSymbols() *WellKnownSymbols {
	return &WellKnownSymbols{
		Iterator:           NewSymbol("Symbol.iterator"),
		AsyncIterator:      NewSymbol("Symbol.asyncIterator"),
		Match:              NewSymbol("Symbol.match"),
		Replace:            NewSymbol("Symbol.replace"),
		Search:             NewSymbol("Symbol.search"),
		Split:              NewSymbol("Symbol.split"),
		HasInstance:        NewSymbol("Symbol.hasInstance"),
		IsConcatSpreadable: NewSymbol("Symbol.isConcatSpreadable"),
		Species:            NewSymbol("Symbol.species"),
		ToPrimitive:        NewSymbol("Symbol.toPrimitive"),
		ToStringTag:        NewSymbol("Symbol.toStringTag"),
		Unscopables:        NewSymbol("Symbol.unscopables"),
	}
}

// ============================================================================
// BigInt
// ============================================================================

// BigInt is an arbitrary-precision integer. Backed by math/big.Int through
// an opaque alias so callers of this package don't need to import math/big
// to hold a Value.
type BigInt struct {
	bits bigIntBits
}

func (b BigInt) Type() string   { return "bigint" }
func (b BigInt) String() string { return b.bits.String() }

// IsBigInt reports whether v is a BigInt.
func IsBigInt(v Value) bool {
	_, ok := v.(BigInt)
	return ok
}
