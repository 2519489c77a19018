package builtins

import (
	"math"
	"time"

	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallDate wires the Date constructor and prototype. Every instance
// holds a single epoch-millisecond internal slot (object.DateSlots),
// mirroring the original engine's time_point_ plus its is_invalid_ flag
// for an unparseable/out-of-range value. Unlike the original, setters
// mutate only the addressed component and recompute the timestamp from
// the full set of fields (spec §9's resolved Open Question), rather than
// resetting to the current time.
func InstallDate(r *Registry) {
	proto := r.DateProto

	r.Method(proto, "getTime", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return dateValueOf(this, c)
	})
	r.Method(proto, "valueOf", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return dateValueOf(this, c)
	})
	r.Method(proto, "setTime", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisDate(this, c)
		if !ok {
			return value.Undefined
		}
		ms := float64(value.ToNumber(arg(args, 0), c))
		setDateSlots(o, ms)
		return value.Number(ms)
	})
	r.Method(proto, "toISOString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		t, ok := dateTime(this, c)
		if !ok {
			c.ThrowRangeError("Invalid time value")
			return value.Undefined
		}
		return value.String(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	})
	r.Method(proto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		t, ok := dateTime(this, c)
		if !ok {
			return value.String("Invalid Date")
		}
		return value.String(t.Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"))
	})
	r.Method(proto, "toDateString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		t, ok := dateTime(this, c)
		if !ok {
			return value.String("Invalid Date")
		}
		return value.String(t.Format("Mon Jan 02 2006"))
	})
	r.Method(proto, "toJSON", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		t, ok := dateTime(this, c)
		if !ok {
			return value.Null
		}
		return value.String(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	})

	for _, g := range []struct {
		name string
		get  func(time.Time) float64
	}{
		{"getFullYear", func(t time.Time) float64 { return float64(t.Year()) }},
		{"getUTCFullYear", func(t time.Time) float64 { return float64(t.UTC().Year()) }},
		{"getMonth", func(t time.Time) float64 { return float64(t.Month() - 1) }},
		{"getUTCMonth", func(t time.Time) float64 { return float64(t.UTC().Month() - 1) }},
		{"getDate", func(t time.Time) float64 { return float64(t.Day()) }},
		{"getUTCDate", func(t time.Time) float64 { return float64(t.UTC().Day()) }},
		{"getDay", func(t time.Time) float64 { return float64(t.Weekday()) }},
		{"getUTCDay", func(t time.Time) float64 { return float64(t.UTC().Weekday()) }},
		{"getHours", func(t time.Time) float64 { return float64(t.Hour()) }},
		{"getUTCHours", func(t time.Time) float64 { return float64(t.UTC().Hour()) }},
		{"getMinutes", func(t time.Time) float64 { return float64(t.Minute()) }},
		{"getUTCMinutes", func(t time.Time) float64 { return float64(t.UTC().Minute()) }},
		{"getSeconds", func(t time.Time) float64 { return float64(t.Second()) }},
		{"getUTCSeconds", func(t time.Time) float64 { return float64(t.UTC().Second()) }},
		{"getMilliseconds", func(t time.Time) float64 { return float64(t.Nanosecond() / 1e6) }},
		{"getUTCMilliseconds", func(t time.Time) float64 { return float64(t.UTC().Nanosecond() / 1e6) }},
		{"getTimezoneOffset", func(t time.Time) float64 { _, off := t.Zone(); return float64(-off / 60) }},
	} {
		get := g.get
		r.Method(proto, g.name, 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			t, ok := dateTime(this, c)
			if !ok {
				return value.Number(math.NaN())
			}
			return value.Number(get(t))
		})
	}

	for _, s := range []struct {
		name  string
		nargs int
		set   func(t time.Time, vals []float64) time.Time
	}{
		{"setFullYear", 3, func(t time.Time, v []float64) time.Time {
			return replaceDate(t, intOr(v, 0, float64(t.Year())), intOr(v, 1, float64(t.Month()-1)), intOr(v, 2, float64(t.Day())))
		}},
		{"setMonth", 2, func(t time.Time, v []float64) time.Time {
			return replaceDate(t, float64(t.Year()), intOr(v, 0, float64(t.Month()-1)), intOr(v, 1, float64(t.Day())))
		}},
		{"setDate", 1, func(t time.Time, v []float64) time.Time {
			return replaceDate(t, float64(t.Year()), float64(t.Month()-1), intOr(v, 0, float64(t.Day())))
		}},
		{"setHours", 4, func(t time.Time, v []float64) time.Time {
			return replaceClock(t, intOr(v, 0, float64(t.Hour())), intOr(v, 1, float64(t.Minute())), intOr(v, 2, float64(t.Second())), intOr(v, 3, float64(t.Nanosecond()/1e6)))
		}},
		{"setMinutes", 3, func(t time.Time, v []float64) time.Time {
			return replaceClock(t, float64(t.Hour()), intOr(v, 0, float64(t.Minute())), intOr(v, 1, float64(t.Second())), intOr(v, 2, float64(t.Nanosecond()/1e6)))
		}},
		{"setSeconds", 2, func(t time.Time, v []float64) time.Time {
			return replaceClock(t, float64(t.Hour()), float64(t.Minute()), intOr(v, 0, float64(t.Second())), intOr(v, 1, float64(t.Nanosecond()/1e6)))
		}},
		{"setMilliseconds", 1, func(t time.Time, v []float64) time.Time {
			return replaceClock(t, float64(t.Hour()), float64(t.Minute()), float64(t.Second()), intOr(v, 0, float64(t.Nanosecond()/1e6)))
		}},
	} {
		set := s.set
		r.Method(proto, s.name, s.nargs, func(c object.Caller, this value.Value, args []value.Value) value.Value {
			o, ok := thisDate(this, c)
			if !ok {
				return value.Number(math.NaN())
			}
			t, valid := dateTime(this, c)
			if !valid {
				t = time.Unix(0, 0).UTC()
			}
			vals := make([]float64, len(args))
			for i, a := range args {
				vals[i] = float64(value.ToNumber(a, c))
			}
			next := set(t, vals)
			ms := float64(next.UnixMilli())
			setDateSlots(o, ms)
			return value.Number(ms)
		})
	}

	ctor := NewConstructor(r.FunctionProto, "Date", 7, proto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return value.String(time.Now().Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"))
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			var ms float64
			switch len(args) {
			case 0:
				ms = float64(time.Now().UnixMilli())
			case 1:
				if s, ok := args[0].(value.String); ok {
					ms = parseDateString(string(s))
				} else if d, ok := asObject(args[0]); ok && d.Tag() == object.TagDate {
					ms = d.DateSlots().EpochMillis
				} else {
					ms = float64(value.ToNumber(args[0], c))
				}
			default:
				vals := make([]float64, len(args))
				for i, a := range args {
					vals[i] = float64(value.ToNumber(a, c))
				}
				year := vals[0]
				if year >= 0 && year <= 99 {
					year += 1900
				}
				t := replaceDate(time.Date(int(year), 1, 1, 0, 0, 0, 0, time.Local), year, intOr(vals, 1, 0), intOr(vals, 2, 1))
				t = replaceClock(t, intOr(vals, 3, 0), intOr(vals, 4, 0), intOr(vals, 5, 0), intOr(vals, 6, 0))
				ms = float64(t.UnixMilli())
			}
			return r.GC.Allocate(object.NewDate(proto, ms))
		},
	)
	r.Method(ctor, "now", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Number(float64(time.Now().UnixMilli()))
	})
	r.Method(ctor, "parse", 1, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		return value.Number(parseDateString(string(value.ToString(arg(args, 0), c))))
	})
	r.Method(ctor, "UTC", 7, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		vals := make([]float64, len(args))
		for i, a := range args {
			vals[i] = float64(value.ToNumber(a, c))
		}
		year := intOr(vals, 0, 1970)
		if year >= 0 && year <= 99 {
			year += 1900
		}
		t := time.Date(int(year), 1, 1, 0, 0, 0, 0, time.UTC)
		t = replaceDate(t, year, intOr(vals, 1, 0), intOr(vals, 2, 1))
		t = replaceClock(t, intOr(vals, 3, 0), intOr(vals, 4, 0), intOr(vals, 5, 0), intOr(vals, 6, 0))
		return value.Number(float64(t.UnixMilli()))
	})

	r.DefineGlobal("Date", ctor)
}

func thisDate(this value.Value, c object.Caller) (*object.Object, bool) {
	o, ok := thisObject(this, c, "Date method")
	if !ok || o.Tag() != object.TagDate {
		c.ThrowTypeError("method called on incompatible receiver")
		return nil, false
	}
	return o, true
}

func dateValueOf(this value.Value, c object.Caller) value.Value {
	o, ok := thisDate(this, c)
	if !ok {
		return value.Undefined
	}
	slots := o.DateSlots()
	if slots.Invalid {
		return value.Number(math.NaN())
	}
	return value.Number(slots.EpochMillis)
}

func dateTime(this value.Value, c object.Caller) (time.Time, bool) {
	o, ok := thisDate(this, c)
	if !ok {
		return time.Time{}, false
	}
	slots := o.DateSlots()
	if slots.Invalid || math.IsNaN(slots.EpochMillis) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(slots.EpochMillis)).Local(), true
}

func setDateSlots(o *object.Object, ms float64) {
	slots := o.DateSlots()
	slots.EpochMillis = ms
	slots.Invalid = math.IsNaN(ms)
}

func intOr(vals []float64, i int, def float64) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return def
}

func replaceDate(t time.Time, year, month, day float64) time.Time {
	return time.Date(int(year), time.Month(int(month))+1, int(day), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func replaceClock(t time.Time, hour, minute, sec, ms float64) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), int(hour), int(minute), int(sec), int(ms)*1e6, t.Location())
}

func parseDateString(s string) float64 {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02",
		time.RFC1123,
		"Mon Jan 02 2006 15:04:05 GMT-0700 (MST)",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixMilli())
		}
	}
	return math.NaN()
}
