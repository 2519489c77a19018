// Package builtins installs the global-object surface named in spec
// §4.4: one file per constructor family, each wiring a handful of
// third-party libraries the teacher's own internal/interp/builtins_*.go
// split mirrors (one file per builtin family: math/strings/datetime/
// json/encoding/conversion).
//
// Every native method here has the signature (object.Caller, this,
// args) -> value.Value, so this package only needs internal/object,
// internal/value, internal/gc, and internal/errors — never
// internal/context — keeping the
// dependency arrow pointing one way (internal/context imports
// internal/builtins, not the reverse).
package builtins

import (
	"io"
	"os"

	"github.com/solarbrowser/quanta-go/internal/errors"
	"github.com/solarbrowser/quanta-go/internal/gc"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// Registry holds every intrinsic prototype and the global object, built
// once per realm by Bootstrap, then handed to each Install* function.
type Registry struct {
	GC     *gc.Collector
	Global *object.Object

	ObjectProto     *object.Object
	FunctionProto   *object.Object
	ArrayProto      *object.Object
	StringProto     *object.Object
	NumberProto     *object.Object
	BooleanProto    *object.Object
	SymbolProto     *object.Object
	BigIntProto     *object.Object
	ErrorProto      *object.Object
	ErrorProtos     map[errors.Kind]*object.Object
	MapProto        *object.Object
	SetProto        *object.Object
	WeakMapProto    *object.Object
	WeakSetProto    *object.Object
	WeakRefProto    *object.Object
	FinRegProto     *object.Object
	PromiseProto    *object.Object
	DateProto       *object.Object
	RegExpProto     *object.Object
	IteratorProto   *object.Object
	durationProto   *object.Object

	ArrayBufferProto          *object.Object
	DataViewProto             *object.Object
	TypedArrayProto           *object.Object // %TypedArray%.prototype, used directly as the prototype of all nine TypedArray constructors
	DisposableStackProto      *object.Object
	AsyncDisposableStackProto *object.Object
	ReflectObj                *object.Object
	IntlObj                   *object.Object

	WellKnown *value.WellKnownSymbols

	// Matcher is the injected RegExp collaborator seam (spec Non-goal:
	// the regexp engine itself is external). nil until a host wires one
	// in; String.prototype.match/replace/split fall back to plain-string
	// semantics when it is absent.
	Matcher StringMatcher

	// Output is where console.* writes. Defaults to os.Stdout; a host
	// embedding the engine can redirect it via pkg/engine's
	// WithOutputWriter option.
	Output io.Writer
}

// SetOutput redirects console.* output. Passing nil restores os.Stdout.
func (r *Registry) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	r.Output = w
}

// Bootstrap constructs the bare prototype-chain skeleton and the global
// object, then runs every Install* function to populate it. This is the
// realm-construction half of spec §4.4's "initialize_global_context".
func Bootstrap(gcc *gc.Collector) *Registry {
	r := &Registry{GC: gcc, WellKnown: value.NewWellKnownSymbols(), Output: os.Stdout}

	r.ObjectProto = gcc.Allocate(object.New(nil))
	r.FunctionProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagFunction))
	r.FunctionProto.SetSlots(&object.FunctionSlots{
		Name: "", Length: 0,
		Call: func(c object.Caller, this value.Value, args []value.Value) value.Value { return value.Undefined },
	})
	r.ArrayProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagArray))
	r.ArrayProto.SetSlots(&object.ArraySlots{})
	r.StringProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagString))
	r.NumberProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagNumber))
	r.BooleanProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagBoolean))
	r.SymbolProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagSymbolObject))
	r.BigIntProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagBigIntObject))
	r.ErrorProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagError))
	r.MapProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagMap))
	r.SetProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagSet))
	r.WeakMapProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagWeakMap))
	r.WeakSetProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagWeakSet))
	r.WeakRefProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagWeakRef))
	r.FinRegProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagFinalizationRegistry))
	r.PromiseProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagPromise))
	r.DateProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagDate))
	r.RegExpProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagRegExp))
	r.IteratorProto = gcc.Allocate(object.New(r.ObjectProto))
	r.ArrayBufferProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagArrayBuffer))
	r.DataViewProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagDataView))
	r.TypedArrayProto = gcc.Allocate(object.NewWithTag(r.ObjectProto, object.TagTypedArray))
	r.DisposableStackProto = gcc.Allocate(object.New(r.ObjectProto))
	r.AsyncDisposableStackProto = gcc.Allocate(object.New(r.ObjectProto))

	r.ErrorProtos = map[errors.Kind]*object.Object{errors.KindError: r.ErrorProto}
	for _, k := range []errors.Kind{
		errors.KindTypeError, errors.KindReferenceError, errors.KindSyntaxError,
		errors.KindRangeError, errors.KindURIError, errors.KindEvalError, errors.KindAggregateError,
	} {
		proto := gcc.Allocate(object.NewWithTag(r.ErrorProto, object.TagError))
		proto.DefineProperty(object.StringKey("name"), object.BuiltinMethodProperty(value.String(string(k))))
		r.ErrorProtos[k] = proto
	}

	r.Global = gcc.Allocate(object.New(r.ObjectProto))

	InstallObject(r)
	InstallFunction(r)
	InstallArray(r)
	InstallStringNumberBoolean(r)
	InstallSymbolBigInt(r)
	InstallError(r)
	InstallMath(r)
	InstallJSON(r)
	InstallConsole(r)
	InstallGlobals(r)
	InstallMapSet(r)
	InstallWeakRefs(r)
	InstallPromise(r)
	InstallDate(r)
	InstallRegExp(r)
	InstallTemporal(r)
	InstallArrayBuffer(r)
	InstallTypedArrays(r)
	InstallProxy(r)
	InstallReflect(r)
	InstallIteratorGlobal(r)
	InstallDisposableStack(r)
	InstallIntl(r)

	return r
}

// DefineGlobal installs a non-enumerable, writable, configurable binding
// on the global object — the attribute set spec §6 gives ordinary globals
// ("these names occupy configurable slots").
func (r *Registry) DefineGlobal(name string, v value.Value) {
	r.Global.DefineProperty(object.StringKey(name), object.BuiltinMethodProperty(v))
}

// DefineNonConfigurableGlobal is used for undefined/NaN/Infinity/
// globalThis, which spec §6 calls out as the small non-configurable set.
func (r *Registry) DefineNonConfigurableGlobal(name string, v value.Value) {
	r.Global.DefineProperty(object.StringKey(name), object.DataDescriptor(v, false, false, false))
}

// Method installs a built-in method with the standard {writable,
// ¬enumerable, configurable} attributes from spec §4.2's defaults table.
func (r *Registry) Method(o *object.Object, name string, length int, fn object.NativeFunc) {
	f := object.NewFunction(r.FunctionProto, name, length, fn)
	o.DefineProperty(object.StringKey(name), object.BuiltinMethodProperty(value.Value(f)))
}

// Accessor installs a getter (and optional setter) pair as an accessor
// property with the built-in attribute set {¬enumerable, configurable}.
func (r *Registry) Accessor(o *object.Object, name string, get, set object.NativeFunc) {
	getFn := object.NewFunction(r.FunctionProto, "get "+name, 0, get)
	var setObj *object.Object
	if set != nil {
		setObj = object.NewFunction(r.FunctionProto, "set "+name, 1, set)
	}
	o.DefineProperty(object.StringKey(name), object.AccessorDescriptor(getFn, setObj, false, true))
}

// NewConstructor builds a constructor Function whose prototype property is
// {¬writable, ¬enumerable, ¬configurable} (built-in constructor, per the
// defaults table) and whose prototype's `constructor` back-link is
// {writable, ¬enumerable, configurable}.
func NewConstructor(funcProto *object.Object, name string, length int, proto *object.Object, call object.NativeFunc, construct object.ConstructFunc) *object.Object {
	ctor := object.NewConstructor(funcProto, name, length, call, construct)
	ctor.DefineProperty(object.StringKey("prototype"), object.DataDescriptor(value.Value(proto), false, false, false))
	if proto != nil {
		proto.DefineProperty(object.StringKey("constructor"), object.BuiltinMethodProperty(value.Value(ctor)))
	}
	return ctor
}

// StringMatcher is the seam a real RegExp engine plugs into (spec's
// explicit external-collaborator boundary for regular expressions).
// String.prototype.match/replace/split/matchAll consult it when given a
// RegExp-tagged object; absent one, they treat the pattern argument as a
// literal substring.
type StringMatcher interface {
	Exec(pattern *object.Object, s string, lastIndex int) (match string, index int, groups []string, ok bool)
	Flags(pattern *object.Object) string
}
