package object

import "github.com/solarbrowser/quanta-go/internal/value"

// NativeFunc is a Go-implemented function body: a built-in method, a bound
// wrapper, or a collaborator-supplied closure compiled from source. this is
// already coerced per the function's strict/non-strict call convention by
// the caller (internal/context).
type NativeFunc func(c Caller, this value.Value, args []value.Value) value.Value

// ConstructFunc is a Go-implemented [[Construct]] body; newTarget is the
// constructor originally invoked via `new` (may differ from fn under a
// subclass/Reflect.construct chain).
type ConstructFunc func(c Caller, newTarget *Object, args []value.Value) value.Value

// FunctionSlots is the internal-slot payload for Function-tagged objects,
// covering ordinary functions, bound functions, and native built-ins per
// spec §4.2's Function subtype.
type FunctionSlots struct {
	Call      NativeFunc
	Construct ConstructFunc // nil if not constructible (arrows, most built-ins)

	Name   string
	Length int

	HomeObject *Object // [[HomeObject]], for super property lookups

	// Bound-function fields ([[BoundTargetFunction]] et al.); BoundTarget
	// is nil for an ordinary/native function.
	BoundTarget *Object
	BoundThis   value.Value
	BoundArgs   []value.Value

	Strict bool
}

// MarkSlots reports FunctionSlots' outgoing strong references to
// internal/gc's collector (HomeObject, a bound function's target/this/args)
// without internal/object needing to import internal/gc — gc type-asserts
// for this method structurally.
func (fs *FunctionSlots) MarkSlots(mark func(value.Value)) {
	if fs.HomeObject != nil {
		mark(fs.HomeObject)
	}
	if fs.BoundTarget != nil {
		mark(fs.BoundTarget)
	}
	if fs.BoundThis != nil {
		mark(fs.BoundThis)
	}
	for _, a := range fs.BoundArgs {
		mark(a)
	}
}

// NewFunction creates a Function object wrapping a native call body.
func NewFunction(proto *Object, name string, length int, call NativeFunc) *Object {
	o := NewWithTag(proto, TagFunction)
	o.slots = &FunctionSlots{Call: call, Name: name, Length: length}
	return o
}

// NewConstructor creates a Function object with both a call and construct body.
func NewConstructor(proto *Object, name string, length int, call NativeFunc, construct ConstructFunc) *Object {
	o := NewWithTag(proto, TagFunction)
	o.slots = &FunctionSlots{Call: call, Construct: construct, Name: name, Length: length}
	return o
}

func (o *Object) functionSlots() *FunctionSlots {
	fs, _ := o.slots.(*FunctionSlots)
	return fs
}

// IsConstructor reports whether this function has a [[Construct]] slot.
func (o *Object) IsConstructor() bool {
	fs := o.functionSlots()
	return fs != nil && fs.Construct != nil
}

// Call invokes [[Call]] with the given receiver and arguments. Panics if
// this object is not callable; guard with IsCallable first.
func (o *Object) Call(c Caller, this value.Value, args []value.Value) value.Value {
	fs := o.functionSlots()
	if fs.BoundTarget != nil {
		merged := make([]value.Value, 0, len(fs.BoundArgs)+len(args))
		merged = append(merged, fs.BoundArgs...)
		merged = append(merged, args...)
		return fs.BoundTarget.Call(c, fs.BoundThis, merged)
	}
	return fs.Call(c, this, args)
}

// Construct invokes [[Construct]] with newTarget defaulting to this function.
func (o *Object) Construct(c Caller, newTarget *Object, args []value.Value) value.Value {
	fs := o.functionSlots()
	if fs.BoundTarget != nil {
		merged := make([]value.Value, 0, len(fs.BoundArgs)+len(args))
		merged = append(merged, fs.BoundArgs...)
		merged = append(merged, args...)
		nt := newTarget
		if nt == o {
			nt = fs.BoundTarget
		}
		return fs.BoundTarget.Construct(c, nt, merged)
	}
	if fs.Construct == nil {
		c.ThrowTypeError("%s is not a constructor", fs.Name)
		return value.Undefined
	}
	if newTarget == nil {
		newTarget = o
	}
	return fs.Construct(c, newTarget, args)
}

// FunctionName returns the function's [[Name]] internal slot.
func (o *Object) FunctionName() string {
	if fs := o.functionSlots(); fs != nil {
		return fs.Name
	}
	return ""
}

// FunctionLength returns the function's [[Length]] internal slot: the
// arity, or for a bound function max(0, target.length - len(boundArgs)).
func (o *Object) FunctionLength() int {
	fs := o.functionSlots()
	if fs == nil {
		return 0
	}
	if fs.BoundTarget != nil {
		n := fs.BoundTarget.FunctionLength() - len(fs.BoundArgs)
		if n < 0 {
			n = 0
		}
		return n
	}
	return fs.Length
}

// Bind implements Function.prototype.bind's [[Call]]/[[Construct]] creation
// per §4.2: a new Function object distributing BoundThis/BoundArgs over
// repeated bind calls by always forwarding to the ORIGINAL target (not the
// intermediate bound wrapper), so bind distributivity holds transitively.
func (o *Object) Bind(proto *Object, boundThis value.Value, boundArgs []value.Value) *Object {
	target := o
	allArgs := boundArgs
	if fs := o.functionSlots(); fs != nil && fs.BoundTarget != nil {
		target = fs.BoundTarget
		combined := make([]value.Value, 0, len(fs.BoundArgs)+len(boundArgs))
		combined = append(combined, fs.BoundArgs...)
		combined = append(combined, boundArgs...)
		allArgs = combined
		boundThis = fs.BoundThis
	}

	bound := NewWithTag(proto, TagFunction)
	name := "bound " + target.FunctionName()
	bs := &FunctionSlots{
		Name:        name,
		BoundTarget: target,
		BoundThis:   boundThis,
		BoundArgs:   allArgs,
		Strict:      true,
	}
	bound.slots = bs
	if target.IsConstructor() {
		bs.Construct = func(c Caller, newTarget *Object, args []value.Value) value.Value {
			merged := make([]value.Value, 0, len(allArgs)+len(args))
			merged = append(merged, allArgs...)
			merged = append(merged, args...)
			nt := newTarget
			if nt == bound {
				nt = target
			}
			return target.Construct(c, nt, merged)
		}
	}
	return bound
}
