package builtins

import (
	"fmt"
	"time"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallTemporal wires Temporal.PlainDate, Temporal.PlainTime,
// Temporal.Duration, and Temporal.Now — calendrical arithmetic distinct
// from legacy Date, proportional to the original engine's Temporal.cpp
// scope (ISO-8601 string parsing/formatting only, no IANA time-zone
// database; full internationalisation tables remain a Non-goal).
func InstallTemporal(r *Registry) {
	ns := r.GC.Allocate(object.New(r.ObjectProto))

	plainDateProto := r.GC.Allocate(object.New(r.ObjectProto))
	plainTimeProto := r.GC.Allocate(object.New(r.ObjectProto))
	durationProto := r.GC.Allocate(object.New(r.ObjectProto))

	installPlainDate(r, ns, plainDateProto)
	installPlainTime(r, ns, plainTimeProto)
	installDuration(r, ns, durationProto)

	now := r.GC.Allocate(object.New(r.ObjectProto))
	r.Method(now, "plainDateISO", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		t := time.Now()
		return newPlainDate(r, plainDateProto, t.Year(), int(t.Month()), t.Day())
	})
	r.Method(now, "plainTimeISO", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		t := time.Now()
		return newPlainTime(r, plainTimeProto, t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6)
	})
	r.Method(now, "instant", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Number(float64(time.Now().UnixMilli()))
	})
	ns.DefineProperty(object.StringKey("Now"), object.BuiltinMethodProperty(value.Value(now)))

	r.DefineGlobal("Temporal", ns)
}

func temporalField(o *object.Object, key string) int {
	if v, ok := o.Get(object.StringKey(key), o, nil).(value.Number); ok {
		return int(v)
	}
	return 0
}

func newPlainDate(r *Registry, proto *object.Object, year, month, day int) *object.Object {
	o := r.GC.Allocate(object.New(proto))
	o.DefineProperty(object.StringKey("year"), object.DefaultDataProperty(value.Number(year)))
	o.DefineProperty(object.StringKey("month"), object.DefaultDataProperty(value.Number(month)))
	o.DefineProperty(object.StringKey("day"), object.DefaultDataProperty(value.Number(day)))
	return o
}

func installPlainDate(r *Registry, ns, proto *object.Object) {
	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(this)
		if !ok {
			return value.Undefined
		}
		return value.String(fmt.Sprintf("%04d-%02d-%02d",
			int(value.ToInteger(o.Get(object.StringKey("year"), o, c), c)),
			int(value.ToInteger(o.Get(object.StringKey("month"), o, c), c)),
			int(value.ToInteger(o.Get(object.StringKey("day"), o, c), c))))
	})
	r.Method(proto, "add", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(this)
		if !ok {
			return value.Undefined
		}
		dur, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Duration-like object expected")
			return value.Undefined
		}
		base := dateOf(o, c)
		base = base.AddDate(temporalField(dur, "years"), temporalField(dur, "months"), temporalField(dur, "days"))
		return newPlainDate(r, proto, base.Year(), int(base.Month()), base.Day())
	})
	r.Method(proto, "subtract", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(this)
		if !ok {
			return value.Undefined
		}
		dur, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("Duration-like object expected")
			return value.Undefined
		}
		base := dateOf(o, c)
		base = base.AddDate(-temporalField(dur, "years"), -temporalField(dur, "months"), -temporalField(dur, "days"))
		return newPlainDate(r, proto, base.Year(), int(base.Month()), base.Day())
	})
	r.Method(proto, "until", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(this)
		if !ok {
			return value.Undefined
		}
		other, ok := asObject(arg(args, 0))
		if !ok {
			c.ThrowTypeError("PlainDate expected")
			return value.Undefined
		}
		days := int(dateOf(other, c).Sub(dateOf(o, c)).Hours() / 24)
		return newDuration(r, r.durationProtoOrNil(), 0, 0, days)
	})

	ctor := NewConstructor(r.FunctionProto, "PlainDate", 3, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Temporal.PlainDate requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			year := int(value.ToInteger(arg(args, 0), c))
			month := int(value.ToInteger(arg(args, 1), c))
			day := int(value.ToInteger(arg(args, 2), c))
			return newPlainDate(r, proto, year, month, day)
		},
	)
	r.Method(ctor, "from", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		s := string(value.ToString(arg(args, 0), c))
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.ThrowRangeError("invalid ISO date string")
			return value.Undefined
		}
		return newPlainDate(r, proto, t.Year(), int(t.Month()), t.Day())
	})
	ns.DefineProperty(object.StringKey("PlainDate"), object.BuiltinMethodProperty(value.Value(ctor)))
}

func dateOf(o *object.Object, c object.Caller) time.Time {
	year := int(value.ToInteger(o.Get(object.StringKey("year"), o, c), c))
	month := int(value.ToInteger(o.Get(object.StringKey("month"), o, c), c))
	day := int(value.ToInteger(o.Get(object.StringKey("day"), o, c), c))
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func newPlainTime(r *Registry, proto *object.Object, hour, minute, second, ms int) *object.Object {
	o := r.GC.Allocate(object.New(proto))
	o.DefineProperty(object.StringKey("hour"), object.DefaultDataProperty(value.Number(hour)))
	o.DefineProperty(object.StringKey("minute"), object.DefaultDataProperty(value.Number(minute)))
	o.DefineProperty(object.StringKey("second"), object.DefaultDataProperty(value.Number(second)))
	o.DefineProperty(object.StringKey("millisecond"), object.DefaultDataProperty(value.Number(ms)))
	return o
}

func installPlainTime(r *Registry, ns, proto *object.Object) {
	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(this)
		if !ok {
			return value.Undefined
		}
		return value.String(fmt.Sprintf("%02d:%02d:%02d.%03d",
			temporalField(o, "hour"), temporalField(o, "minute"), temporalField(o, "second"), temporalField(o, "millisecond")))
	})

	ctor := NewConstructor(r.FunctionProto, "PlainTime", 4, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Temporal.PlainTime requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			hour := int(value.ToInteger(arg(args, 0), c))
			minute := int(value.ToInteger(arg(args, 1), c))
			second := int(value.ToInteger(arg(args, 2), c))
			ms := int(value.ToInteger(arg(args, 3), c))
			return newPlainTime(r, proto, hour, minute, second, ms)
		},
	)
	ns.DefineProperty(object.StringKey("PlainTime"), object.BuiltinMethodProperty(value.Value(ctor)))
}

func newDuration(r *Registry, proto *object.Object, years, months, days int) *object.Object {
	o := r.GC.Allocate(object.New(proto))
	o.DefineProperty(object.StringKey("years"), object.DefaultDataProperty(value.Number(years)))
	o.DefineProperty(object.StringKey("months"), object.DefaultDataProperty(value.Number(months)))
	o.DefineProperty(object.StringKey("days"), object.DefaultDataProperty(value.Number(days)))
	return o
}

func installDuration(r *Registry, ns, proto *object.Object) {
	r.durationProto = proto
	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := asObject(this)
		if !ok {
			return value.Undefined
		}
		return value.String(fmt.Sprintf("P%dY%dM%dD", temporalField(o, "years"), temporalField(o, "months"), temporalField(o, "days")))
	})

	ctor := NewConstructor(r.FunctionProto, "Duration", 3, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			c.ThrowTypeError("Constructor Temporal.Duration requires 'new'")
			return value.Undefined
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			years := int(value.ToInteger(arg(args, 0), c))
			months := int(value.ToInteger(arg(args, 1), c))
			days := int(value.ToInteger(arg(args, 2), c))
			return newDuration(r, proto, years, months, days)
		},
	)
	ns.DefineProperty(object.StringKey("Duration"), object.BuiltinMethodProperty(value.Value(ctor)))
}

func (r *Registry) durationProtoOrNil() *object.Object { return r.durationProto }
