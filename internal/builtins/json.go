package builtins

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallJSON wires the JSON namespace (spec's ambient data-interchange
// surface). JSON.stringify builds a JSON text node-by-node walking the live
// object graph (replacer/indent handling is ours to do; tidwall/pretty then
// reformats the compact result with the requested indent, the same
// compose-a-formatter role it plays in the corpus for re-indenting
// generated JSON). JSON.parse hands the source text to tidwall/gjson and
// walks its parsed gjson.Result tree into live Values, rather than
// hand-rolling a JSON tokenizer.
func InstallJSON(r *Registry) {
	j := r.GC.Allocate(object.New(r.ObjectProto))

	r.Method(j, "stringify", 3, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		var b strings.Builder
		ok := stringifyValue(r, c, &b, arg(args, 0), make(map[*object.Object]bool))
		if !ok {
			return value.Undefined
		}
		out := []byte(b.String())
		if allow, ok := replacerAllowList(r, c, arg(args, 1)); ok {
			out = pruneToAllowList(out, allow)
		}
		if indentArg := arg(args, 2); !value.IsUndefined(indentArg) {
			indent := indentString(indentArg, c)
			if indent != "" {
				out = pretty.PrettyOptions(out, &pretty.Options{Indent: indent, SortKeys: false})
				out = []byte(strings.TrimRight(string(out), "\n"))
			}
		}
		return value.String(string(out))
	})

	r.Method(j, "parse", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		text := string(value.ToString(arg(args, 0), c))
		if !gjson.Valid(text) {
			c.ThrowSyntaxError("Unexpected token in JSON")
			return value.Undefined
		}
		return gjsonToValue(r, c, gjson.Parse(text))
	})

	r.DefineGlobal("JSON", j)
}

// replacerAllowList reads JSON.stringify's second argument when it is an
// array of property-name strings (the "allow-list" replacer form; a
// function replacer is not supported here), returning the set of keys to
// keep. pruneToAllowList applies it to the top-level object only; nested
// objects keep all their keys.
func replacerAllowList(r *Registry, c object.Caller, v value.Value) (map[string]bool, bool) {
	o, ok := asObject(v)
	if !ok || o.Tag() != object.TagArray {
		return nil, false
	}
	allow := make(map[string]bool)
	n := o.Length()
	for i := uint32(0); i < n; i++ {
		elem := o.Get(object.StringKey(uint32KeyString(i)), o, c)
		if s, ok := elem.(value.String); ok {
			allow[string(s)] = true
		}
	}
	return allow, true
}

// pruneToAllowList removes every top-level object key not in allow,
// editing the already-serialized JSON text in place via sjson.Delete
// rather than re-walking the live object graph a second time.
func pruneToAllowList(jsonText []byte, allow map[string]bool) []byte {
	if !gjson.ValidBytes(jsonText) {
		return jsonText
	}
	root := gjson.ParseBytes(jsonText)
	if !root.IsObject() {
		return jsonText
	}
	out := string(jsonText)
	root.ForEach(func(k, _ gjson.Result) bool {
		if !allow[k.Str] {
			if deleted, err := sjson.Delete(out, gjsonPathEscape(k.Str)); err == nil {
				out = deleted
			}
		}
		return true
	})
	return []byte(out)
}

// gjsonPathEscape escapes a top-level key for use as an sjson/gjson path
// segment (sjson paths use '.' and '*'/'?' as structural characters).
func gjsonPathEscape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func indentString(v value.Value, c object.Caller) string {
	if n, ok := v.(value.Number); ok {
		count := int(n)
		if count > 10 {
			count = 10
		}
		if count <= 0 {
			return ""
		}
		return strings.Repeat(" ", count)
	}
	return string(value.ToString(v, c))
}

func stringifyValue(r *Registry, c object.Caller, b *strings.Builder, v value.Value, seen map[*object.Object]bool) bool {
	if o, ok := asObject(v); ok {
		if toJSON, ok := o.Get(object.StringKey("toJSON"), o, c).(*object.Object); ok && toJSON.IsCallable() {
			v = toJSON.Call(c, o, nil)
		}
	}
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
		return true
	case value.Boolean:
		b.WriteString(t.String())
		return true
	case value.Number:
		if isNaN(float64(t)) || isInf(float64(t)) {
			b.WriteString("null")
			return true
		}
		b.WriteString(value.NumberToString(float64(t)))
		return true
	case value.String:
		writeJSONString(b, string(t))
		return true
	case *object.Object:
		return stringifyObject(r, c, b, t, seen)
	default:
		if value.IsUndefined(v) {
			return false
		}
		b.WriteString("null")
		return true
	}
}

func stringifyObject(r *Registry, c object.Caller, b *strings.Builder, o *object.Object, seen map[*object.Object]bool) bool {
	if o.IsCallable() {
		return false
	}
	if seen[o] {
		c.ThrowTypeError("Converting circular structure to JSON")
		return false
	}
	seen[o] = true
	defer delete(seen, o)

	switch o.Tag() {
	case object.TagArray:
		b.WriteByte('[')
		n := o.Length()
		for i := uint32(0); i < n; i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			elem := o.Get(object.StringKey(uint32KeyString(i)), o, c)
			if elem == nil || value.IsUndefined(elem) {
				b.WriteString("null")
				continue
			}
			if !stringifyValue(r, c, b, elem, seen) {
				b.WriteString("null")
			}
		}
		b.WriteByte(']')
		return true
	case object.TagString:
		writeJSONString(b, o.PrimitiveString())
		return true
	case object.TagNumber:
		b.WriteString(value.NumberToString(o.PrimitiveNumber()))
		return true
	case object.TagBoolean:
		b.WriteString(value.Boolean(o.PrimitiveBoolean()).String())
		return true
	default:
		b.WriteByte('{')
		first := true
		for _, k := range o.GetEnumerableKeys() {
			if k.IsSymbol() {
				continue
			}
			fieldVal := o.Get(k, o, c)
			var fieldBuf strings.Builder
			if !stringifyValue(r, c, &fieldBuf, fieldVal, seen) {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			writeJSONString(b, k.String())
			b.WriteByte(':')
			b.WriteString(fieldBuf.String())
		}
		b.WriteByte('}')
		return true
	}
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				b.WriteString(strconv.FormatInt(int64(r), 16))
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func gjsonToValue(r *Registry, c object.Caller, res gjson.Result) value.Value {
	switch res.Type {
	case gjson.Null:
		return value.Null
	case gjson.False:
		return value.False
	case gjson.True:
		return value.True
	case gjson.Number:
		return value.Number(res.Num)
	case gjson.String:
		return value.String(res.Str)
	case gjson.JSON:
		if res.IsArray() {
			var vals []value.Value
			res.ForEach(func(_, v gjson.Result) bool {
				vals = append(vals, gjsonToValue(r, c, v))
				return true
			})
			return newArrayOf(r, c, vals)
		}
		out := r.GC.Allocate(object.New(r.ObjectProto))
		res.ForEach(func(k, v gjson.Result) bool {
			out.DefineProperty(object.StringKey(k.Str), object.DefaultDataProperty(gjsonToValue(r, c, v)))
			return true
		})
		return out
	default:
		return value.Undefined
	}
}
