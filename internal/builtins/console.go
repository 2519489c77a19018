package builtins

import (
	"fmt"
	"strings"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallConsole wires a minimal console object (log/error/warn/info/debug/trace)
// writing to r.Output (os.Stdout unless a host redirected it via pkg/engine's
// WithOutputWriter option) — the ambient diagnostic surface every hosted
// script expects, independent of what an embedder's own logging stack does
// with internal/context's errors.
func InstallConsole(r *Registry) {
	console := r.GC.Allocate(object.New(r.ObjectProto))
	for _, name := range []string{"log", "info", "debug", "warn", "error", "trace"} {
		r.Method(console, name, 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = displayString(r, c, a)
			}
			fmt.Fprintln(r.Output, strings.Join(parts, " "))
			return value.Undefined
		})
	}
	r.DefineGlobal("console", console)
}

// displayString renders a Value the way console.log does: primitives via
// their usual ToString, objects via a shallow JSON-ish dump rather than the
// bare "[object Object]" — so logged structures are actually legible.
func displayString(r *Registry, c object.Caller, v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return string(t)
	case *object.Object:
		if t.Tag() == object.TagArray {
			parts := make([]string, 0, t.Length())
			for _, e := range arrayElems(c, t) {
				parts = append(parts, displayString(r, c, e))
			}
			return "[ " + strings.Join(parts, ", ") + " ]"
		}
		if t.IsCallable() {
			return "[Function: " + t.FunctionName() + "]"
		}
		if t.Tag() == object.TagError {
			if fn, ok := t.Get(object.StringKey("toString"), t, c).(*object.Object); ok && fn.IsCallable() {
				return string(value.ToString(fn.Call(c, t, nil), c))
			}
		}
		var parts []string
		for _, k := range t.GetEnumerableKeys() {
			if k.IsSymbol() {
				continue
			}
			parts = append(parts, k.String()+": "+displayString(r, c, t.Get(k, t, c)))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return v.String()
	}
}
