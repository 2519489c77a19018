package environment

import "github.com/solarbrowser/quanta-go/internal/value"

// Declarative is a map-backed environment record holding `let`/`const`/
// `var`/function-parameter/catch-clause bindings directly, per spec §4.3.
// Unlike the teacher's Environment (case-insensitive via ident.Map, since
// DWScript is case-insensitive), JavaScript identifiers are case-sensitive,
// so a plain Go map suffices.
type Declarative struct {
	bindings map[string]*Binding
	outer    Environment
}

// NewDeclarative creates a new declarative environment enclosed by outer
// (nil for the outermost/global lexical environment).
func NewDeclarative(outer Environment) *Declarative {
	return &Declarative{bindings: make(map[string]*Binding), outer: outer}
}

func (e *Declarative) HasBinding(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

func (e *Declarative) GetBinding(name string, c Caller) (value.Value, bool) {
	b, ok := e.bindings[name]
	if !ok {
		return value.Undefined, false
	}
	if !b.Initialized {
		if c != nil {
			c.ThrowReferenceError("Cannot access '%s' before initialization", name)
		}
		return value.Undefined, true
	}
	return b.Value, true
}

func (e *Declarative) SetBinding(name string, v value.Value, strict bool, c Caller) bool {
	b, ok := e.bindings[name]
	if !ok {
		return false
	}
	if !b.Initialized {
		if c != nil {
			c.ThrowReferenceError("Cannot access '%s' before initialization", name)
		}
		return false
	}
	if !b.Mutable {
		if strict && c != nil {
			c.ThrowTypeError("Assignment to constant variable.")
		}
		return false
	}
	b.Value = v
	return true
}

func (e *Declarative) CreateBinding(name string, v value.Value, mutable, deletable bool) bool {
	if _, ok := e.bindings[name]; ok {
		return false
	}
	e.bindings[name] = &Binding{Value: v, Mutable: mutable, Deletable: deletable, Initialized: true}
	return true
}

func (e *Declarative) CreateUninitializedBinding(name string, mutable bool) bool {
	if _, ok := e.bindings[name]; ok {
		return false
	}
	e.bindings[name] = &Binding{Mutable: mutable, Initialized: false}
	return true
}

func (e *Declarative) InitializeBinding(name string, v value.Value) bool {
	b, ok := e.bindings[name]
	if !ok {
		return false
	}
	b.Value = v
	b.Initialized = true
	return true
}

func (e *Declarative) DeleteBinding(name string) bool {
	b, ok := e.bindings[name]
	if !ok {
		return true
	}
	if !b.Deletable {
		return false
	}
	delete(e.bindings, name)
	return true
}

func (e *Declarative) Outer() Environment { return e.outer }

// EnumerateBindingValues returns every initialized binding's value, for
// internal/context's GC root walk (spec §4.5 step 1: "every Environment
// along both lexical_environment and variable_environment chains").
func (e *Declarative) EnumerateBindingValues() []value.Value {
	vals := make([]value.Value, 0, len(e.bindings))
	for _, b := range e.bindings {
		if b.Initialized && b.Value != nil {
			vals = append(vals, b.Value)
		}
	}
	return vals
}

var _ Environment = (*Declarative)(nil)
