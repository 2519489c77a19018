package value

import (
	"math/big"
	"strings"
)

// bigIntBits wraps *big.Int so BigInt's zero value ("no digits allocated
// yet") still behaves sanely when Stringified.
type bigIntBits struct {
	v *big.Int
}

func (b bigIntBits) String() string {
	if b.v == nil {
		return "0"
	}
	return b.v.String()
}

// NewBigInt wraps a *big.Int as a BigInt value. The big.Int is not copied;
// callers must not mutate it afterward (BigInt values are immutable).
func NewBigInt(v *big.Int) BigInt {
	if v == nil {
		v = big.NewInt(0)
	}
	return BigInt{bits: bigIntBits{v: v}}
}

// BigIntFromInt64 builds a BigInt from a machine integer.
func BigIntFromInt64(n int64) BigInt {
	return NewBigInt(big.NewInt(n))
}

// Big returns the underlying *big.Int. The caller must treat it as
// read-only: BigInt values are immutable per spec §3.
func (b BigInt) Big() *big.Int {
	if b.bits.v == nil {
		return big.NewInt(0)
	}
	return b.bits.v
}

// Add, Sub, Mul implement the arithmetic operators for BigInt <> BigInt.
// Mixing BigInt with Number in arithmetic is a TypeError per §4.1 — that
// check belongs to the interpreter's binary-operator dispatch, not here.
func (b BigInt) Add(other BigInt) BigInt {
	return NewBigInt(new(big.Int).Add(b.Big(), other.Big()))
}

func (b BigInt) Sub(other BigInt) BigInt {
	return NewBigInt(new(big.Int).Sub(b.Big(), other.Big()))
}

func (b BigInt) Mul(other BigInt) BigInt {
	return NewBigInt(new(big.Int).Mul(b.Big(), other.Big()))
}

// Cmp returns -1, 0, or 1 comparing b to other.
func (b BigInt) Cmp(other BigInt) int {
	return b.Big().Cmp(other.Big())
}

// ParseBigIntString parses a decimal integer string into a BigInt, used by
// the `==` coercion ladder (BigInt compared against a String).
func ParseBigIntString(s string) (BigInt, bool) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return BigInt{}, false
	}
	return NewBigInt(n), true
}

type bigFloatAdapter struct {
	f *big.Float
}

func (a *bigFloatAdapter) fromBigInt(b BigInt) *big.Float {
	a.f = new(big.Float).SetInt(b.Big())
	return a.f
}

func (a *bigFloatAdapter) Float64() (float64, big.Accuracy) {
	return a.f.Float64()
}
