package builtins

import (
	"github.com/solarbrowser/quanta-go/internal/errors"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// InstallError wires the Error constructor family (Error, TypeError,
// RangeError, ReferenceError, SyntaxError, URIError, EvalError,
// AggregateError) from spec §7's error taxonomy, each chaining to
// Error.prototype per the standard prototype layout.
func InstallError(r *Registry) {
	r.Method(r.ErrorProto, "toString", 0, func(c object.Caller, this value.Value, args []value.Value) value.Value {
		o, ok := thisObject(this, c, "Error.prototype.toString")
		if !ok {
			return value.Undefined
		}
		name := "Error"
		if nv := o.Get(object.StringKey("name"), o, c); !value.IsUndefined(nv) {
			name = string(value.ToString(nv, c))
		}
		msg := ""
		if mv := o.Get(object.StringKey("message"), o, c); !value.IsUndefined(mv) {
			msg = string(value.ToString(mv, c))
		}
		if msg == "" {
			return value.String(name)
		}
		return value.String(name + ": " + msg)
	})
	r.ErrorProto.DefineProperty(object.StringKey("name"), object.BuiltinMethodProperty(value.String(string(errors.KindError))))
	r.ErrorProto.DefineProperty(object.StringKey("message"), object.BuiltinMethodProperty(value.String("")))

	errCtor := NewConstructor(r.FunctionProto, "Error", 1, r.ErrorProto,
		func(c object.Caller, this value.Value, args []value.Value) value.Value {
			return newErrorInstance(r, c, r.ErrorProto, args)
		},
		func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
			proto := r.ErrorProto
			if newTarget != nil {
				if p, ok := asObject(newTarget.Get(object.StringKey("prototype"), newTarget, c)); ok {
					proto = p
				}
			}
			return newErrorInstance(r, c, proto, args)
		},
	)
	r.DefineGlobal("Error", errCtor)

	derived := []struct {
		name string
		kind errors.Kind
	}{
		{"TypeError", errors.KindTypeError},
		{"RangeError", errors.KindRangeError},
		{"ReferenceError", errors.KindReferenceError},
		{"SyntaxError", errors.KindSyntaxError},
		{"URIError", errors.KindURIError},
		{"EvalError", errors.KindEvalError},
		{"AggregateError", errors.KindAggregateError},
	}
	for _, d := range derived {
		proto := r.ErrorProtos[d.kind]
		kind := d.kind
		ctor := NewConstructor(r.FunctionProto, d.name, 1, proto,
			func(c object.Caller, this value.Value, args []value.Value) value.Value {
				return newErrorInstance(r, c, r.ErrorProtos[kind], args)
			},
			func(c object.Caller, newTarget *object.Object, args []value.Value) value.Value {
				p := r.ErrorProtos[kind]
				if newTarget != nil {
					if np, ok := asObject(newTarget.Get(object.StringKey("prototype"), newTarget, c)); ok {
						p = np
					}
				}
				return newErrorInstance(r, c, p, args)
			},
		)
		ctor.DefineProperty(object.StringKey("prototype"), object.DataDescriptor(value.Value(proto), false, false, false))
		proto.DefineProperty(object.StringKey("constructor"), object.BuiltinMethodProperty(value.Value(ctor)))
		r.DefineGlobal(d.name, ctor)
	}
}

func newErrorInstance(r *Registry, c object.Caller, proto *object.Object, args []value.Value) value.Value {
	errObj := r.GC.Allocate(object.NewWithTag(proto, object.TagError))
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		errObj.DefineProperty(object.StringKey("message"), object.BuiltinMethodProperty(value.String(value.ToString(args[0], c))))
	}
	if len(args) > 1 {
		if opts, ok := asObject(args[1]); ok && opts.Has(object.StringKey("cause")) {
			errObj.DefineProperty(object.StringKey("cause"), object.BuiltinMethodProperty(opts.Get(object.StringKey("cause"), opts, c)))
		}
	}
	return errObj
}
