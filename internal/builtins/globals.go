package builtins

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// escapeUnreserved is the legacy escape()/unescape() unreserved set, distinct
// from encodeURI's — spec §6 carries both global families forward.
const escapeUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@*_+-./"

// InstallGlobals wires the free-standing global functions spec §6 lists
// alongside the namespace objects (parseInt/parseFloat/isNaN/isFinite,
// the URI encode/decode family plus the legacy escape/unescape pair, the
// setTimeout/clearTimeout/setInterval/clearInterval stub timers, and the
// globalThis self-reference). eval and a source-backed Function
// constructor are deliberately absent: there is no lexer/parser/compiler
// behind this host to run them against.
func InstallGlobals(r *Registry) {
	r.DefineGlobal("parseInt", object.NewFunction(r.FunctionProto, "parseInt", 2,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			s := strings.TrimSpace(string(value.ToString(arg(args, 0), c)))
			radix := 0
			if len(args) > 1 && !value.IsUndefined(args[1]) {
				radix = int(value.ToInteger(args[1], c))
			}
			return value.Number(parseIntRadix(s, radix))
		}))
	r.DefineGlobal("parseFloat", object.NewFunction(r.FunctionProto, "parseFloat", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			s := strings.TrimSpace(string(value.ToString(arg(args, 0), c)))
			return value.Number(parseFloatLeading(s))
		}))
	r.DefineGlobal("isNaN", object.NewFunction(r.FunctionProto, "isNaN", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return value.Boolean(isNaN(float64(value.ToNumber(arg(args, 0), c))))
		}))
	r.DefineGlobal("isFinite", object.NewFunction(r.FunctionProto, "isFinite", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			n := float64(value.ToNumber(arg(args, 0), c))
			return value.Boolean(!isNaN(n) && !isInf(n))
		}))

	r.DefineGlobal("encodeURIComponent", object.NewFunction(r.FunctionProto, "encodeURIComponent", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return value.String(url.QueryEscape(string(value.ToString(arg(args, 0), c))))
		}))
	r.DefineGlobal("decodeURIComponent", object.NewFunction(r.FunctionProto, "decodeURIComponent", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			s, err := url.QueryUnescape(string(value.ToString(arg(args, 0), c)))
			if err != nil {
				c.ThrowURIError("URI malformed")
				return value.Undefined
			}
			return value.String(s)
		}))
	r.DefineGlobal("encodeURI", object.NewFunction(r.FunctionProto, "encodeURI", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			u := &url.URL{Path: string(value.ToString(arg(args, 0), c))}
			return value.String(u.EscapedPath())
		}))
	r.DefineGlobal("decodeURI", object.NewFunction(r.FunctionProto, "decodeURI", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			s, err := url.PathUnescape(string(value.ToString(arg(args, 0), c)))
			if err != nil {
				c.ThrowURIError("URI malformed")
				return value.Undefined
			}
			return value.String(s)
		}))

	r.DefineGlobal("escape", object.NewFunction(r.FunctionProto, "escape", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			s := []rune(string(value.ToString(arg(args, 0), c)))
			var b strings.Builder
			for _, r := range s {
				if r < 0x100 && strings.ContainsRune(escapeUnreserved, r) {
					b.WriteRune(r)
				} else if r < 0x100 {
					fmt.Fprintf(&b, "%%%02X", r)
				} else {
					fmt.Fprintf(&b, "%%u%04X", r)
				}
			}
			return value.String(b.String())
		}))
	r.DefineGlobal("unescape", object.NewFunction(r.FunctionProto, "unescape", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			s := string(value.ToString(arg(args, 0), c))
			var b strings.Builder
			for i := 0; i < len(s); {
				if s[i] == '%' && i+5 < len(s) && s[i+1] == 'u' {
					var code int
					if _, err := fmt.Sscanf(s[i+2:i+6], "%04X", &code); err == nil {
						b.WriteRune(rune(code))
						i += 6
						continue
					}
				}
				if s[i] == '%' && i+2 < len(s) {
					var code int
					if _, err := fmt.Sscanf(s[i+1:i+3], "%02X", &code); err == nil {
						b.WriteRune(rune(code))
						i += 3
						continue
					}
				}
				b.WriteByte(s[i])
				i++
			}
			return value.String(b.String())
		}))

	// setTimeout/clearTimeout are stubbed per spec §6's explicit allowance:
	// there is no event loop behind this host to schedule a callback onto,
	// so setTimeout invokes its callback synchronously as a microtask and
	// returns an opaque non-zero handle; clearTimeout is a no-op.
	var timerHandle float64
	r.DefineGlobal("setTimeout", object.NewFunction(r.FunctionProto, "setTimeout", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			if fn, ok := asObject(arg(args, 0)); ok && fn.IsCallable() {
				extra := append([]value.Value(nil), args[min(len(args), 2):]...)
				c.EnqueueMicrotask(func() { c.CallFunction(fn, value.Undefined, extra) })
			}
			timerHandle++
			return value.Number(timerHandle)
		}))
	r.DefineGlobal("clearTimeout", object.NewFunction(r.FunctionProto, "clearTimeout", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return value.Undefined
		}))
	r.DefineGlobal("setInterval", object.NewFunction(r.FunctionProto, "setInterval", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			timerHandle++
			return value.Number(timerHandle)
		}))
	r.DefineGlobal("clearInterval", object.NewFunction(r.FunctionProto, "clearInterval", 1,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return value.Undefined
		}))

	r.DefineNonConfigurableGlobal("globalThis", r.Global)
	r.DefineNonConfigurableGlobal("undefined", value.Undefined)
}
