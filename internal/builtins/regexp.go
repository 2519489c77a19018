package builtins

import (
	"strings"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallRegExp wires the RegExp constructor and prototype around the
// Matcher collaborator seam (registry.go's StringMatcher): with a real
// engine wired into r.Matcher, exec/test delegate to it; absent one, the
// pattern is treated as a literal substring, same degraded behavior
// String.prototype.match/replace/split fall back to.
func InstallRegExp(r *Registry) {
	proto := r.RegExpProto

	r.Method(proto, "test", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		result := execRegExp(r, c, this, string(value.ToString(arg(args, 0), c)))
		return value.Boolean(result != nil)
	})
	r.Method(proto, "exec", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		result := execRegExp(r, c, this, string(value.ToString(arg(args, 0), c)))
		if result == nil {
			return value.Null
		}
		return result
	})
	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisRegExp(this, c)
		if !ok {
			return value.Undefined
		}
		slots := o.RegExpSlots()
		return value.String("/" + slots.Source + "/" + slots.Flags)
	})

	r.Accessor(proto, "source", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisRegExp(this, c)
		if !ok {
			return value.Undefined
		}
		return value.String(o.RegExpSlots().Source)
	}, nil)
	r.Accessor(proto, "flags", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisRegExp(this, c)
		if !ok {
			return value.Undefined
		}
		return value.String(o.RegExpSlots().Flags)
	}, nil)
	r.Accessor(proto, "global", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisRegExp(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Boolean(strings.Contains(o.RegExpSlots().Flags, "g"))
	}, nil)
	r.Accessor(proto, "ignoreCase", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisRegExp(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Boolean(strings.Contains(o.RegExpSlots().Flags, "i"))
	}, nil)
	r.Accessor(proto, "lastIndex", func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisRegExp(this, c)
		if !ok {
			return value.Undefined
		}
		return value.Number(o.RegExpSlots().LastIndex)
	}, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisRegExp(this, c)
		if !ok {
			return value.Undefined
		}
		o.RegExpSlots().LastIndex = int(value.ToInteger(arg(args, 0), c))
		return value.Undefined
	})

	ctor := NewConstructor(r.FunctionProto, "RegExp", 2, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return newRegExpValue(r, c, args)
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return newRegExpValue(r, c, args)
		},
	)
	r.DefineGlobal("RegExp", ctor)
}

func newRegExpValue(r *Registry, c object.Caller, args []value.Value) *object.Object {
	source := ""
	flags := ""
	if len(args) > 0 {
		if existing, ok := asObject(args[0]); ok && existing.Tag() == object.TagRegExp {
			source = existing.RegExpSlots().Source
			flags = existing.RegExpSlots().Flags
		} else if !value.IsUndefined(args[0]) {
			source = string(value.ToString(args[0], c))
		}
	}
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		flags = string(value.ToString(args[1], c))
	}
	return r.GC.Allocate(object.NewRegExp(r.RegExpProto, source, flags))
}

// matchAgainstPattern is the shared seam String.prototype.match/matchAll/
// replace/replaceAll/split/search all go through: if pattern is a RegExp
// object, it delegates to r.Matcher (or falls back to treating the
// RegExp's source as a literal substring when no engine is wired); any
// other pattern value is coerced to a string and matched literally, per
// the spec's "RegExp is an external collaborator" boundary.
func matchAgainstPattern(r *Registry, c object.Caller, s string, pattern value.Value, start int) (match string, index int, groups []string, found, isGlobalRegExp bool) {
	if start > len(s) {
		return "", 0, nil, false, false
	}
	if o, ok := asObject(pattern); ok && o.Tag() == object.TagRegExp {
		slots := o.RegExpSlots()
		isGlobalRegExp = strings.Contains(slots.Flags, "g")
		if r.Matcher != nil {
			match, index, groups, found = r.Matcher.Exec(o, s, start)
			return
		}
		if idx := strings.Index(s[start:], slots.Source); idx >= 0 {
			match, index, found = slots.Source, start+idx, true
		}
		return
	}
	p := string(value.ToString(pattern, c))
	if idx := strings.Index(s[start:], p); idx >= 0 {
		match, index, found = p, start+idx, true
	}
	return
}

func thisRegExp(this value.Value, c object.Caller) (*object.Object, bool) {
	o, ok := thisObject(this, c, "RegExp method")
	if !ok || o.Tag() != object.TagRegExp {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return o, true
}

// execRegExp runs pattern against s, returning nil on no match. With
// r.Matcher wired, it delegates to the injected engine; otherwise the
// regex source is matched as a literal substring (spec's Non-goal: RegExp
// itself is an external collaborator).
func execRegExp(r *Registry, c object.Caller, this value.Value, s string) *object.Object {
	o, ok := thisRegExp(this, c)
	if !ok {
		return nil
	}
	slots := o.RegExpSlots()
	start := 0
	if strings.Contains(slots.Flags, "g") {
		start = slots.LastIndex
	}
	if start > len(s) {
		slots.LastIndex = 0
		return nil
	}

	var match string
	var index int
	var groups []string
	found := false

	if r.Matcher != nil {
		match, index, groups, found = r.Matcher.Exec(o, s, start)
	} else {
		rest := s[start:]
		idx := strings.Index(rest, slots.Source)
		if idx >= 0 {
			match = slots.Source
			index = start + idx
			found = true
		}
	}
	if !found {
		slots.LastIndex = 0
		return nil
	}
	if strings.Contains(slots.Flags, "g") {
		slots.LastIndex = index + len(match)
	}

	vals := []value.Value{value.String(match)}
	for _, g := range groups {
		vals = append(vals, value.String(g))
	}
	result := newArrayOf(r, c, vals)
	result.DefineProperty(object.StringKey("index"), object.DefaultDataProperty(value.Number(index)))
	result.DefineProperty(object.StringKey("input"), object.DefaultDataProperty(value.String(s)))
	return result
}
