package builtins

import (
	"math"
	"math/rand"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallMath wires the Math namespace object (spec's ambient numeric
// toolbox, present on every global object regardless of the Non-goals
// excluding a full numeric-library port).
func InstallMath(r *Registry) {
	m := r.GC.Allocate(object.New(r.ObjectProto))

	unary := map[string]func(float64) float64{
		"abs": math.Abs, "floor": math.Floor, "ceil": math.Ceil,
		"round": func(f float64) float64 { return math.Floor(f + 0.5) },
		"trunc": math.Trunc, "sqrt": math.Sqrt, "cbrt": math.Cbrt,
		"sign": func(f float64) float64 {
			switch {
			case f > 0:
				return 1
			case f < 0:
				return -1
			default:
				return f
			}
		},
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
		"log": math.Log, "log2": math.Log2, "log10": math.Log10, "log1p": math.Log1p,
		"exp": math.Exp, "expm1": math.Expm1,
	}
	for name, fn := range unary {
		fn := fn
		r.Method(m, name, 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return value.Number(fn(float64(value.ToNumber(arg(args, 0), c))))
		})
	}

	r.Method(m, "pow", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Number(math.Pow(float64(value.ToNumber(arg(args, 0), c)), float64(value.ToNumber(arg(args, 1), c))))
	})
	r.Method(m, "atan2", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Number(math.Atan2(float64(value.ToNumber(arg(args, 0), c)), float64(value.ToNumber(arg(args, 1), c))))
	})
	r.Method(m, "hypot", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		sum := 0.0
		for _, a := range args {
			n := float64(value.ToNumber(a, c))
			sum += n * n
		}
		return value.Number(math.Sqrt(sum))
	})
	r.Method(m, "max", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		best := math.Inf(-1)
		for _, a := range args {
			n := float64(value.ToNumber(a, c))
			if math.IsNaN(n) {
				return value.Number(math.NaN())
			}
			if n > best {
				best = n
			}
		}
		return value.Number(best)
	})
	r.Method(m, "min", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		best := math.Inf(1)
		for _, a := range args {
			n := float64(value.ToNumber(a, c))
			if math.IsNaN(n) {
				return value.Number(math.NaN())
			}
			if n < best {
				best = n
			}
		}
		return value.Number(best)
	})
	r.Method(m, "random", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Number(rand.Float64())
	})

	m.DefineProperty(object.StringKey("PI"), object.DataDescriptor(value.Number(math.Pi), false, false, false))
	m.DefineProperty(object.StringKey("E"), object.DataDescriptor(value.Number(math.E), false, false, false))
	m.DefineProperty(object.StringKey("LN2"), object.DataDescriptor(value.Number(math.Ln2), false, false, false))
	m.DefineProperty(object.StringKey("LN10"), object.DataDescriptor(value.Number(math.Log(10)), false, false, false))
	m.DefineProperty(object.StringKey("SQRT2"), object.DataDescriptor(value.Number(math.Sqrt2), false, false, false))

	r.DefineGlobal("Math", m)
}
