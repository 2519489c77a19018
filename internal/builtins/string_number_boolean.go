package builtins

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// localeCaser resolves a BCP-47 locale tag argument (falling back to
// und, text/cases' locale-agnostic default, when absent or unparsable)
// into the Upper or Lower caser for toLocaleUpperCase/toLocaleLowerCase —
// the one pair of String methods ECMA-262 defines as locale-sensitive,
// unlike plain toUpperCase/toLowerCase's locale-agnostic Unicode mapping.
func localeCaser(tagArg value.Value, c object.Caller, upper bool) cases.Caser {
	tag := language.Und
	if !value.IsUndefined(tagArg) {
		if parsed, err := language.Parse(string(value.ToString(tagArg, c))); err == nil {
			tag = parsed
		}
	}
	if upper {
		return cases.Upper(tag)
	}
	return cases.Lower(tag)
}

// thisStringValue implements String.prototype's receiver coercion: a
// String primitive, a String-tagged wrapper object's [[PrimitiveValue]], or
// a TypeError for anything else.
func thisStringValue(this value.Value, c object.Caller, methodName string) (string, bool) {
	switch t := this.(type) {
	case value.String:
		return string(t), true
	case *object.Object:
		if t.Tag() == object.TagString {
			return t.PrimitiveString(), true
		}
	}
	c.ThrowTypeError("%s called on non-string", methodName)
	return "", false
}

// InstallStringNumberBoolean wires String/Number/Boolean constructors and
// prototypes — the three primitive-wrapper families spec §4.1 boxes via
// ToObject.
//
// Grounded on internal/interp/builtins_string.go's per-method table,
// generalized from DWScript's 1-based Pascal string indexing to
// UTF-16-code-unit indexing (internal/object/string_object.go already
// stores the UTF-16 split; these methods operate on the UTF-8 Go string for
// anything that doesn't need code-unit-exact slicing, matching how the
// teacher's own string builtins stay in the host language's native string
// type wherever the semantics allow it).
func InstallStringNumberBoolean(r *Registry) {
	installStringProto(r)
	installNumberProto(r)
	installBooleanProto(r)
}

func installStringProto(r *Registry) {
	proto := r.StringProto

	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.toString")
		if !ok {
			return value.Undefined
		}
		return value.String(s)
	})
	r.Method(proto, "valueOf", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.valueOf")
		if !ok {
			return value.Undefined
		}
		return value.String(s)
	})
	r.Method(proto, "charAt", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.charAt")
		if !ok {
			return value.Undefined
		}
		units := utf16.Encode([]rune(s))
		i := int(value.ToInteger(arg(args, 0), c))
		if i < 0 || i >= len(units) {
			return value.String("")
		}
		return value.String(string(utf16.Decode(units[i : i+1])))
	})
	r.Method(proto, "charCodeAt", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.charCodeAt")
		if !ok {
			return value.Undefined
		}
		units := utf16.Encode([]rune(s))
		i := int(value.ToInteger(arg(args, 0), c))
		if i < 0 || i >= len(units) {
			return value.Number(nan())
		}
		return value.Number(units[i])
	})
	r.Method(proto, "codePointAt", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.codePointAt")
		if !ok {
			return value.Undefined
		}
		runes := []rune(s)
		i := int(value.ToInteger(arg(args, 0), c))
		if i < 0 || i >= len(runes) {
			return value.Undefined
		}
		return value.Number(runes[i])
	})
	r.Method(proto, "indexOf", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.indexOf")
		if !ok {
			return value.Undefined
		}
		needle := string(value.ToString(arg(args, 0), c))
		return value.Number(utf16Index(s, needle, strings.Index))
	})
	r.Method(proto, "lastIndexOf", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.lastIndexOf")
		if !ok {
			return value.Undefined
		}
		needle := string(value.ToString(arg(args, 0), c))
		return value.Number(utf16Index(s, needle, strings.LastIndex))
	})
	r.Method(proto, "includes", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.includes")
		if !ok {
			return value.Undefined
		}
		return value.Boolean(strings.Contains(s, string(value.ToString(arg(args, 0), c))))
	})
	r.Method(proto, "startsWith", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.startsWith")
		if !ok {
			return value.Undefined
		}
		return value.Boolean(strings.HasPrefix(s, string(value.ToString(arg(args, 0), c))))
	})
	r.Method(proto, "endsWith", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.endsWith")
		if !ok {
			return value.Undefined
		}
		return value.Boolean(strings.HasSuffix(s, string(value.ToString(arg(args, 0), c))))
	})
	r.Method(proto, "slice", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.slice")
		if !ok {
			return value.Undefined
		}
		units := utf16.Encode([]rune(s))
		start, end := sliceRange(len(units), args, c)
		return value.String(string(utf16.Decode(units[start:end])))
	})
	r.Method(proto, "substring", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.substring")
		if !ok {
			return value.Undefined
		}
		units := utf16.Encode([]rune(s))
		n := len(units)
		a := clampNonNeg(int(value.ToInteger(arg(args, 0), c)), n)
		b := n
		if len(args) > 1 && !value.IsUndefined(args[1]) {
			b = clampNonNeg(int(value.ToInteger(args[1], c)), n)
		}
		if a > b {
			a, b = b, a
		}
		return value.String(string(utf16.Decode(units[a:b])))
	})
	r.Method(proto, "toUpperCase", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.toUpperCase")
		if !ok {
			return value.Undefined
		}
		return value.String(strings.ToUpper(s))
	})
	r.Method(proto, "toLowerCase", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.toLowerCase")
		if !ok {
			return value.Undefined
		}
		return value.String(strings.ToLower(s))
	})
	r.Method(proto, "toLocaleUpperCase", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.toLocaleUpperCase")
		if !ok {
			return value.Undefined
		}
		return value.String(localeCaser(arg(args, 0), c, true).String(s))
	})
	r.Method(proto, "toLocaleLowerCase", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.toLocaleLowerCase")
		if !ok {
			return value.Undefined
		}
		return value.String(localeCaser(arg(args, 0), c, false).String(s))
	})
	r.Method(proto, "trim", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.trim")
		if !ok {
			return value.Undefined
		}
		return value.String(strings.TrimSpace(s))
	})
	r.Method(proto, "trimStart", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.trimStart")
		if !ok {
			return value.Undefined
		}
		return value.String(strings.TrimLeft(s, " \t\n\r\f\v"))
	})
	r.Method(proto, "trimEnd", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.trimEnd")
		if !ok {
			return value.Undefined
		}
		return value.String(strings.TrimRight(s, " \t\n\r\f\v"))
	})
	r.Method(proto, "split", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.split")
		if !ok {
			return value.Undefined
		}
		if value.IsUndefined(arg(args, 0)) {
			return newArrayOf(r, c, []value.Value{value.String(s)})
		}
		pattern := args[0]
		if o, isRegExp := asObject(pattern); isRegExp && o.Tag() == object.TagRegExp {
			return newArrayOf(r, c, splitByPattern(r, c, s, pattern))
		}
		sep := string(value.ToString(pattern, c))
		var parts []string
		if sep == "" {
			for _, ch := range s {
				parts = append(parts, string(ch))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		vals := make([]value.Value, len(parts))
		for i, p := range parts {
			vals[i] = value.String(p)
		}
		return newArrayOf(r, c, vals)
	})
	r.Method(proto, "replace", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.replace")
		if !ok {
			return value.Undefined
		}
		return value.String(replaceOne(r, c, s, arg(args, 0), arg(args, 1)))
	})
	r.Method(proto, "replaceAll", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.replaceAll")
		if !ok {
			return value.Undefined
		}
		return value.String(replaceAllOccurrences(r, c, s, arg(args, 0), arg(args, 1)))
	})
	r.Method(proto, "match", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.match")
		if !ok {
			return value.Undefined
		}
		return stringMatch(r, c, s, arg(args, 0))
	})
	r.Method(proto, "matchAll", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.matchAll")
		if !ok {
			return value.Undefined
		}
		return newArrayOf(r, c, stringMatchAll(r, c, s, arg(args, 0)))
	})
	r.Method(proto, "search", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.search")
		if !ok {
			return value.Undefined
		}
		_, index, _, found, _ := matchAgainstPattern(r, c, s, arg(args, 0), 0)
		if !found {
			return value.Number(-1)
		}
		return value.Number(index)
	})
	r.Method(proto, "repeat", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.repeat")
		if !ok {
			return value.Undefined
		}
		n := int(value.ToInteger(arg(args, 0), c))
		if n < 0 {
			c.ThrowRangeError("Invalid count value")
			return value.Undefined
		}
		return value.String(strings.Repeat(s, n))
	})
	r.Method(proto, "padStart", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.padStart")
		if !ok {
			return value.Undefined
		}
		return value.String(pad(s, args, c, true))
	})
	r.Method(proto, "padEnd", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.padEnd")
		if !ok {
			return value.Undefined
		}
		return value.String(pad(s, args, c, false))
	})
	r.Method(proto, "concat", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.concat")
		if !ok {
			return value.Undefined
		}
		var b strings.Builder
		b.WriteString(s)
		for _, a := range args {
			b.WriteString(string(value.ToString(a, c)))
		}
		return value.String(b.String())
	})
	r.Method(proto, "at", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, ok := thisStringValue(this, c, "String.prototype.at")
		if !ok {
			return value.Undefined
		}
		units := utf16.Encode([]rune(s))
		i := int(value.ToInteger(arg(args, 0), c))
		if i < 0 {
			i += len(units)
		}
		if i < 0 || i >= len(units) {
			return value.Undefined
		}
		return value.String(string(utf16.Decode(units[i : i+1])))
	})

	r.Accessor(proto, "length", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s, _ := thisStringValue(this, c, "String.prototype.length")
		return value.Number(len(utf16.Encode([]rune(s))))
	}, nil)

	ctor := NewConstructor(r.FunctionProto, "String", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			if len(args) == 0 {
				return value.String("")
			}
			return value.ToString(args[0], c)
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			s := ""
			if len(args) > 0 {
				s = string(value.ToString(args[0], c))
			}
			return r.GC.Allocate(object.NewStringObject(r.StringProto, s))
		},
	)
	r.Method(ctor, "fromCharCode", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		units := make([]uint16, len(args))
		for i, a := range args {
			units[i] = uint16(value.ToUint32(a, c))
		}
		return value.String(string(utf16.Decode(units)))
	})
	r.DefineGlobal("String", ctor)
}

func installNumberProto(r *Registry) {
	proto := r.NumberProto

	thisNumber := func(this value.Value, c object.Caller, methodName string) (float64, bool) {
		switch t := this.(type) {
		case value.Number:
			return float64(t), true
		case *object.Object:
			if t.Tag() == object.TagNumber {
				return t.PrimitiveNumber(), true
			}
		}
		c.ThrowTypeError("%s called on non-number", methodName)
		return 0, false
	}

	r.Method(proto, "toString", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		n, ok := thisNumber(this, c, "Number.prototype.toString")
		if !ok {
			return value.Undefined
		}
		return value.String(value.NumberToString(n))
	})
	r.Method(proto, "valueOf", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		n, ok := thisNumber(this, c, "Number.prototype.valueOf")
		if !ok {
			return value.Undefined
		}
		return value.Number(n)
	})
	r.Method(proto, "toFixed", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		n, ok := thisNumber(this, c, "Number.prototype.toFixed")
		if !ok {
			return value.Undefined
		}
		digits := int(value.ToInteger(arg(args, 0), c))
		return value.String(formatFixed(n, digits))
	})

	ctor := NewConstructor(r.FunctionProto, "Number", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			if len(args) == 0 {
				return value.Number(0)
			}
			return value.ToNumber(args[0], c)
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			n := 0.0
			if len(args) > 0 {
				n = float64(value.ToNumber(args[0], c))
			}
			return r.GC.Allocate(object.NewNumberObject(r.NumberProto, n))
		},
	)
	r.DefineNonConfigurableGlobal("NaN", value.Number(nan()))
	r.DefineNonConfigurableGlobal("Infinity", value.Number(inf(1)))
	ctor.DefineProperty(object.StringKey("MAX_SAFE_INTEGER"), object.DataDescriptor(value.Number(9007199254740991), false, false, false))
	ctor.DefineProperty(object.StringKey("MIN_SAFE_INTEGER"), object.DataDescriptor(value.Number(-9007199254740991), false, false, false))
	ctor.DefineProperty(object.StringKey("EPSILON"), object.DataDescriptor(value.Number(2.220446049250313e-16), false, false, false))
	ctor.DefineProperty(object.StringKey("POSITIVE_INFINITY"), object.DataDescriptor(value.Number(inf(1)), false, false, false))
	ctor.DefineProperty(object.StringKey("NEGATIVE_INFINITY"), object.DataDescriptor(value.Number(inf(-1)), false, false, false))
	ctor.DefineProperty(object.StringKey("NaN"), object.DataDescriptor(value.Number(nan()), false, false, false))
	r.Method(ctor, "isInteger", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		n, ok := arg(args, 0).(value.Number)
		return value.Boolean(ok && float64(n) == float64(int64(n)))
	})
	r.Method(ctor, "isFinite", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		n, ok := arg(args, 0).(value.Number)
		return value.Boolean(ok && !isNaN(float64(n)) && !isInf(float64(n)))
	})
	r.Method(ctor, "isNaN", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		n, ok := arg(args, 0).(value.Number)
		return value.Boolean(ok && isNaN(float64(n)))
	})
	r.Method(ctor, "parseFloat", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Number(parseFloatLeading(string(value.ToString(arg(args, 0), c))))
	})
	r.Method(ctor, "parseInt", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		radix := 0
		if len(args) > 1 {
			radix = int(value.ToInteger(args[1], c))
		}
		return value.Number(parseIntRadix(string(value.ToString(arg(args, 0), c)), radix))
	})
	r.DefineGlobal("Number", ctor)
}

func installBooleanProto(r *Registry) {
	proto := r.BooleanProto

	thisBool := func(this value.Value, c object.Caller, methodName string) (bool, bool) {
		switch t := this.(type) {
		case value.Boolean:
			return bool(t), true
		case *object.Object:
			if t.Tag() == object.TagBoolean {
				return t.PrimitiveBoolean(), true
			}
		}
		c.ThrowTypeError("%s called on non-boolean", methodName)
		return false, false
	}

	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		b, ok := thisBool(this, c, "Boolean.prototype.toString")
		if !ok {
			return value.Undefined
		}
		return value.Boolean(b).String()
	})
	r.Method(proto, "valueOf", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		b, ok := thisBool(this, c, "Boolean.prototype.valueOf")
		if !ok {
			return value.Undefined
		}
		return value.Boolean(b)
	})

	ctor := NewConstructor(r.FunctionProto, "Boolean", 1, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return value.ToBoolean(arg(args, 0))
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return r.GC.Allocate(object.NewBooleanObject(r.BooleanProto, bool(value.ToBoolean(arg(args, 0)))))
		},
	)
	r.DefineGlobal("Boolean", ctor)
}

// utf16Index finds needle in s using strFn, returning the needle's UTF-16
// code-unit offset (not its Go byte offset) so indexOf/lastIndexOf match
// JavaScript's index space.
func utf16Index(s, needle string, strFn func(string, string) int) float64 {
	byteIdx := strFn(s, needle)
	if byteIdx < 0 {
		return -1
	}
	return float64(len(utf16.Encode([]rune(s[:byteIdx]))))
}

func clampNonNeg(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func pad(s string, args []value.Value, c object.Caller, start bool) string {
	targetLen := int(value.ToInteger(arg(args, 0), c))
	units := utf16.Encode([]rune(s))
	if targetLen <= len(units) {
		return s
	}
	filler := " "
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		filler = string(value.ToString(args[1], c))
	}
	if filler == "" {
		return s
	}
	need := targetLen - len(units)
	var b strings.Builder
	for b.Len() < need {
		b.WriteString(filler)
	}
	padding := string([]rune(b.String())[:need])
	if start {
		return padding + s
	}
	return s + padding
}

// replaceOne implements String.prototype.replace: a single substitution
// at the first match, whether the pattern is a literal or (via
// matchAgainstPattern) a wired RegExp.
func replaceOne(r *Registry, c object.Caller, s string, pattern, repl value.Value) string {
	match, idx, groups, found, _ := matchAgainstPattern(r, c, s, pattern, 0)
	if !found {
		return s
	}
	return s[:idx] + substitution(c, s, match, idx, groups, repl) + s[idx+len(match):]
}

// replaceAllOccurrences implements String.prototype.replaceAll: every
// match for a literal pattern, or every match of a `g`-flagged RegExp
// (a non-global RegExp pattern is a TypeError per spec, mirrored here).
func replaceAllOccurrences(r *Registry, c object.Caller, s string, pattern, repl value.Value) string {
	if o, ok := asObject(pattern); ok && o.Tag() == object.TagRegExp {
		if !strings.Contains(o.RegExpSlots().Flags, "g") {
			c.ThrowTypeError("String.prototype.replaceAll must be called with a global RegExp")
			return s
		}
	}
	var b strings.Builder
	pos := 0
	for {
		match, idx, groups, found, _ := matchAgainstPattern(r, c, s, pattern, pos)
		if !found {
			b.WriteString(s[pos:])
			break
		}
		b.WriteString(s[pos:idx])
		b.WriteString(substitution(c, s, match, idx, groups, repl))
		pos = idx + len(match)
		if len(match) == 0 {
			if pos < len(s) {
				b.WriteByte(s[pos])
			}
			pos++
			if pos > len(s) {
				break
			}
		}
	}
	return b.String()
}

// substitution resolves one match's replacement text: either the call
// result of a replacer function, or a literal string with "$&"/"$1".."$9"
// expanded against match/groups.
func substitution(c object.Caller, s, match string, index int, groups []string, repl value.Value) string {
	if repFn, ok := asObject(repl); ok && repFn.IsCallable() {
		args := []value.Value{value.String(match)}
		for _, g := range groups {
			args = append(args, value.String(g))
		}
		args = append(args, value.Number(index), value.String(s))
		result := repFn.Call(c, value.Undefined, args)
		return string(value.ToString(result, c))
	}
	return expandReplacement(string(value.ToString(repl, c)), match, groups)
}

func expandReplacement(tmpl, match string, groups []string) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i == len(tmpl)-1 {
			b.WriteByte(tmpl[i])
			continue
		}
		switch next := tmpl[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(match)
			i++
		case next >= '1' && next <= '9':
			n := int(next - '0')
			if n <= len(groups) {
				b.WriteString(groups[n-1])
			}
			i++
		default:
			b.WriteByte('$')
		}
	}
	return b.String()
}

// splitByPattern implements String.prototype.split against a RegExp
// pattern: repeatedly locates the next match and cuts the string there.
func splitByPattern(r *Registry, c object.Caller, s string, pattern value.Value) []value.Value {
	var out []value.Value
	pos, last := 0, 0
	for pos <= len(s) {
		match, idx, _, found, _ := matchAgainstPattern(r, c, s, pattern, pos)
		if !found || idx >= len(s) {
			break
		}
		if len(match) == 0 {
			pos = idx + 1
			continue
		}
		out = append(out, value.String(s[last:idx]))
		last = idx + len(match)
		pos = last
	}
	out = append(out, value.String(s[last:]))
	return out
}

// stringMatch implements String.prototype.match: a single RegExp.exec-like
// result for a non-global pattern, or every matched substring (no capture
// groups, per spec) for a global one.
func stringMatch(r *Registry, c object.Caller, s string, pattern value.Value) value.Value {
	o, isRegExp := asObject(pattern)
	global := isRegExp && o.Tag() == object.TagRegExp && strings.Contains(o.RegExpSlots().Flags, "g")
	if !global {
		match, idx, groups, found, _ := matchAgainstPattern(r, c, s, pattern, 0)
		if !found {
			return value.Null
		}
		vals := []value.Value{value.String(match)}
		for _, g := range groups {
			vals = append(vals, value.String(g))
		}
		result := newArrayOf(r, c, vals)
		result.DefineProperty(object.StringKey("index"), object.DefaultDataProperty(value.Number(idx)))
		result.DefineProperty(object.StringKey("input"), object.DefaultDataProperty(value.String(s)))
		return result
	}
	var vals []value.Value
	pos := 0
	for {
		match, idx, _, found, _ := matchAgainstPattern(r, c, s, pattern, pos)
		if !found {
			break
		}
		vals = append(vals, value.String(match))
		pos = idx + len(match)
		if len(match) == 0 {
			pos++
		}
	}
	if len(vals) == 0 {
		return value.Null
	}
	return newArrayOf(r, c, vals)
}

// stringMatchAll implements String.prototype.matchAll's result set (an
// array here rather than a lazy iterator, since this module has no
// generic iterator-protocol builtin to back one with).
func stringMatchAll(r *Registry, c object.Caller, s string, pattern value.Value) []value.Value {
	var out []value.Value
	pos := 0
	for {
		match, idx, groups, found, _ := matchAgainstPattern(r, c, s, pattern, pos)
		if !found {
			break
		}
		vals := []value.Value{value.String(match)}
		for _, g := range groups {
			vals = append(vals, value.String(g))
		}
		result := newArrayOf(r, c, vals)
		result.DefineProperty(object.StringKey("index"), object.DefaultDataProperty(value.Number(idx)))
		result.DefineProperty(object.StringKey("input"), object.DefaultDataProperty(value.String(s)))
		out = append(out, result)
		pos = idx + len(match)
		if len(match) == 0 {
			pos++
		}
	}
	return out
}
