package object

import "github.com/solarbrowser/quanta-go/internal/value"

// PropertyDescriptor is the quadruple from spec §3/GLOSSARY: either a data
// descriptor (Value/Writable) or an accessor descriptor (Get/Set), plus the
// Enumerable/Configurable attribute bits shared by both forms.
//
// Grounded on internal/interp/runtime/property.go's PropertyDescriptor,
// generalized from DWScript's name/indexed/default-property shape to the
// full ECMA-262 data-vs-accessor descriptor with attribute bits.
type PropertyDescriptor struct {
	Value value.Value // data descriptor payload; nil for accessor descriptors
	Get   *Object     // accessor getter (nil if absent)
	Set   *Object     // accessor setter (nil if absent)

	IsAccessor   bool
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// DataDescriptor builds a data property descriptor with explicit attributes.
func DataDescriptor(v value.Value, writable, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{Value: v, Writable: writable, Enumerable: enumerable, Configurable: configurable}
}

// AccessorDescriptor builds an accessor property descriptor.
func AccessorDescriptor(get, set *Object, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{IsAccessor: true, Get: get, Set: set, Enumerable: enumerable, Configurable: configurable}
}

// DefaultDataProperty returns the descriptor for an ordinary
// assignment-created data property: {writable, enumerable, configurable} all true, per §4.2's
// "Property-attribute defaults" table.
func DefaultDataProperty(v value.Value) *PropertyDescriptor {
	return DataDescriptor(v, true, true, true)
}

// BuiltinMethodProperty is the attribute set for a built-in method:
// {writable, ¬enumerable, configurable}.
func BuiltinMethodProperty(v value.Value) *PropertyDescriptor {
	return DataDescriptor(v, true, false, true)
}

// NonConfigurableDataProperty is {¬writable, ¬enumerable, configurable},
// used for function .length/.name.
func NonConfigurableDataProperty(v value.Value) *PropertyDescriptor {
	return DataDescriptor(v, false, false, true)
}

// Clone returns a shallow copy of the descriptor.
func (d *PropertyDescriptor) Clone() *PropertyDescriptor {
	cp := *d
	return &cp
}

// IsDataDescriptor reports whether d describes a data property.
func (d *PropertyDescriptor) IsDataDescriptor() bool { return !d.IsAccessor }
