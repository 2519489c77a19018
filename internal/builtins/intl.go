package builtins

import (
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallIntl wires a reduced Intl namespace: Collator, NumberFormat, and
// DateTimeFormat constructors, each a thin wrapper over golang.org/x/text
// (the teacher uses collate/language for CompareLocaleStr in
// internal/interp/builtins_strings_compare.go; message.Printer covers
// NumberFormat's grouping). Full locale data tables, calendar systems
// beyond Gregorian, and the rest of the Intl.* family (PluralRules,
// RelativeTimeFormat, ListFormat, Segmenter) are out of scope per spec's
// Non-goal excluding "full internationalisation tables" — x/text itself
// only ships CLDR's root collation and a handful of message plurals, not
// the complete set a real Intl implementation carries.
func InstallIntl(r *Registry) {
	intl := r.GC.Allocate(object.New(r.ObjectProto))

	installCollator(r, intl)
	installNumberFormat(r, intl)
	installDateTimeFormat(r, intl)

	r.DefineGlobal("Intl", intl)
	r.IntlObj = intl
}

type collatorSlots struct {
	col *collate.Collator
}

func installCollator(r *Registry, intl *object.Object) {
	proto := r.GC.Allocate(object.New(r.ObjectProto))
	r.Method(proto, "compare", 2, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Intl.Collator.prototype.compare")
		if !ok {
			return value.Undefined
		}
		cs, ok := o.Slots().(*collatorSlots)
		if !ok {
			c.ThrowTypeError("method called on incompatible receiver")
			return value.Undefined
		}
		a := string(value.ToString(arg(args, 0), c))
		b := string(value.ToString(arg(args, 1), c))
		return value.Number(cs.col.CompareString(a, b))
	})

	ctor := NewConstructor(r.FunctionProto, "Collator", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return newCollator(r, proto, args, c)
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return newCollator(r, proto, args, c)
		},
	)
	intl.DefineProperty(object.StringKey("Collator"), object.BuiltinMethodProperty(value.Value(ctor)))
}

func newCollator(r *Registry, proto *object.Object, args []value.Value, c object.Caller) value.Value {
	tag := parseLocaleArg(arg(args, 0), c)
	opts := []collate.Option{}
	if o, ok := asObject(arg(args, 1)); ok {
		sens := o.Get(object.StringKey("sensitivity"), o, c)
		if s, ok := sens.(value.String); ok && (s == "base" || s == "accent") {
			opts = append(opts, collate.IgnoreCase)
		}
	}
	o := object.New(proto)
	o.SetSlots(&collatorSlots{col: collate.New(tag, opts...)})
	return r.GC.Allocate(o)
}

func installNumberFormat(r *Registry, intl *object.Object) {
	proto := r.GC.Allocate(object.New(r.ObjectProto))
	r.Method(proto, "format", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Intl.NumberFormat.prototype.format")
		if !ok {
			return value.Undefined
		}
		tag, ok := o.Slots().(language.Tag)
		if !ok {
			c.ThrowTypeError("method called on incompatible receiver")
			return value.Undefined
		}
		n := float64(value.ToNumber(arg(args, 0), c))
		p := message.NewPrinter(tag)
		return value.String(p.Sprintf("%v", numberArg(n)))
	})

	ctor := NewConstructor(r.FunctionProto, "NumberFormat", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return newNumberFormat(r, proto, args, c)
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return newNumberFormat(r, proto, args, c)
		},
	)
	intl.DefineProperty(object.StringKey("NumberFormat"), object.BuiltinMethodProperty(value.Value(ctor)))
}

// numberArg renders n as an int when it has no fractional part, so
// message.Printer's %v applies thousands grouping to "1234" the way
// Intl.NumberFormat does, rather than printing float noise.
func numberArg(n float64) any {
	if n == float64(int64(n)) {
		return int64(n)
	}
	return n
}

func newNumberFormat(r *Registry, proto *object.Object, args []value.Value, c object.Caller) value.Value {
	tag := parseLocaleArg(arg(args, 0), c)
	o := object.New(proto)
	o.SetSlots(tag)
	return r.GC.Allocate(o)
}

func installDateTimeFormat(r *Registry, intl *object.Object) {
	proto := r.GC.Allocate(object.New(r.ObjectProto))
	r.Method(proto, "format", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		_, ok := thisObject(this, c, "Intl.DateTimeFormat.prototype.format")
		if !ok {
			return value.Undefined
		}
		ms := float64(value.ToNumber(arg(args, 0), c))
		t := time.UnixMilli(int64(ms)).UTC()
		return value.String(t.Format("1/2/2006"))
	})

	ctor := NewConstructor(r.FunctionProto, "DateTimeFormat", 0, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return r.GC.Allocate(object.New(proto))
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			return r.GC.Allocate(object.New(proto))
		},
	)
	intl.DefineProperty(object.StringKey("DateTimeFormat"), object.BuiltinMethodProperty(value.Value(ctor)))
}

func parseLocaleArg(v value.Value, c object.Caller) language.Tag {
	if value.IsUndefined(v) {
		return language.English
	}
	tag, err := language.Parse(string(value.ToString(v, c)))
	if err != nil {
		return language.English
	}
	return tag
}
