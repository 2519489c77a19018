package value

import (
	"math"
	"testing"
)

func TestToNumberBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want float64
	}{
		{"empty string", String(""), 0},
		{"padded integer", String("  42  "), 42},
		{"hex literal", String("0x10"), 16},
		{"undefined", Undefined, math.NaN()},
		{"null", Null, 0},
		{"true", Boolean(true), 1},
		{"false", Boolean(false), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(ToNumber(tt.in, nil))
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Fatalf("ToNumber(%v) = %v, want NaN", tt.in, got)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("ToNumber(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNumberToStringBoundaries(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "NaN"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		got := NumberToString(tt.in)
		if got != tt.want {
			t.Fatalf("NumberToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameValueVsSameValueZero(t *testing.T) {
	nan := Number(math.NaN())
	if !SameValue(nan, nan) {
		t.Fatal("SameValue(NaN, NaN) must be true")
	}
	posZero := Number(0)
	negZero := Number(math.Copysign(0, -1))
	if SameValue(posZero, negZero) {
		t.Fatal("SameValue(+0, -0) must be false")
	}
	if !SameValueZero(posZero, negZero) {
		t.Fatal("SameValueZero(+0, -0) must be true")
	}
}

func TestStrictEqualsNaN(t *testing.T) {
	nan := Number(math.NaN())
	if StrictEquals(nan, nan) {
		t.Fatal("NaN === NaN must be false")
	}
}

func TestToInt32Wraparound(t *testing.T) {
	got := ToInt32(Number(4294967296+5), nil)
	if got != 5 {
		t.Fatalf("ToInt32 wraparound = %d, want 5", got)
	}
}
