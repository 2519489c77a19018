// Package context implements the per-activation Context from spec §3/§4.4:
// lexical and variable environments, a bounded call stack, control-flow
// signals, the exception protocol, and the realm bootstrap that installs
// every built-in named in §4.4 onto a fresh global object.
//
// Grounded on internal/interp/runtime/execution_context.go's
// ExecutionContext (env push/pop stack, ControlFlow, exception slot,
// PropContext) and internal/interp/runtime/callstack.go's CallStack,
// generalized from DWScript's single exception slot + four-state control
// flow to the spec's explicit exception/return/break/continue signal set,
// and from a single global environment to a realm object shared across
// every Context an Engine creates.
package context

import (
	"fmt"
	"strings"

	"github.com/solarbrowser/quanta-go/internal/environment"
	"github.com/solarbrowser/quanta-go/internal/errors"
	"github.com/solarbrowser/quanta-go/internal/gc"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// Kind distinguishes the four activation kinds spec §2 item 5 lists
// ("one per Global/Function/Eval/Module activation").
type Kind int

const (
	KindGlobal Kind = iota
	KindFunction
	KindEval
	KindModule
)

// Context is one activation record (spec §3's "Context" entity).
type Context struct {
	realm *Realm

	lexicalEnv  environment.Environment
	variableEnv environment.Environment

	thisBinding value.Value
	strict      bool
	file        string
	kind        Kind

	callStack   *CallStack
	controlFlow *ControlFlow

	depth    int
	maxDepth int

	inConstructorCall bool

	microtasks []func()
}

// NewGlobalContext builds the Global activation: allocates the global
// object and realm intrinsics (if realm is nil, a fresh one is built via
// NewRealm) and wraps it in an object environment that is both the
// lexical and variable environment, per spec §4.4.
func NewGlobalContext(realm *Realm) *Context {
	if realm == nil {
		realm = NewRealm(gc.New(0))
	}
	globalEnv := environment.NewObjectEnvironment(realm.Global, nil, false)
	return &Context{
		realm:       realm,
		lexicalEnv:  globalEnv,
		variableEnv: globalEnv,
		thisBinding: realm.Global,
		strict:      false,
		kind:        KindGlobal,
		callStack:   NewCallStack(DefaultMaxDepth),
		controlFlow: NewControlFlow(),
		maxDepth:    DefaultMaxDepth,
	}
}

// NewFunctionContext builds a Function/Eval activation enclosed by outer's
// environments, per spec's "a chain of binding records" model: a fresh
// declarative environment (the function's own var/let/const bindings) is
// pushed in front of the defining scope's lexical environment.
func NewFunctionContext(outer *Context, lexicalParent environment.Environment, this value.Value, strict bool) *Context {
	env := environment.NewDeclarative(lexicalParent)
	return &Context{
		realm:       outer.realm,
		lexicalEnv:  env,
		variableEnv: env,
		thisBinding: this,
		strict:      strict,
		kind:        KindFunction,
		callStack:   outer.callStack,
		controlFlow: NewControlFlow(),
		maxDepth:    outer.maxDepth,
		depth:       outer.depth,
	}
}

// Realm returns the shared realm (global object + intrinsics).
func (c *Context) Realm() *Realm { return c.realm }

// GC returns the shared collector.
func (c *Context) GC() *gc.Collector { return c.realm.GC }

func (c *Context) LexicalEnv() environment.Environment  { return c.lexicalEnv }
func (c *Context) VariableEnv() environment.Environment { return c.variableEnv }
func (c *Context) SetLexicalEnv(e environment.Environment)  { c.lexicalEnv = e }
func (c *Context) SetVariableEnv(e environment.Environment) { c.variableEnv = e }

func (c *Context) ThisBinding() value.Value        { return c.thisBinding }
func (c *Context) SetThisBinding(v value.Value)    { c.thisBinding = v }
func (c *Context) Strict() bool                    { return c.strict }
func (c *Context) SetStrict(s bool)                { c.strict = s }
func (c *Context) File() string                    { return c.file }
func (c *Context) SetFile(f string)                { c.file = f }
func (c *Context) Kind() Kind                       { return c.kind }
func (c *Context) IsInConstructorCall() bool        { return c.inConstructorCall }
func (c *Context) ControlFlow() *ControlFlow        { return c.controlFlow }
func (c *Context) CallStackDepth() int              { return c.callStack.Depth() }

// SetMaxDepth overrides the call-stack ceiling (DefaultMaxDepth otherwise),
// for a host that wants a tighter or looser recursion bound than the
// teacher's own default.
func (c *Context) SetMaxDepth(n int) {
	if n <= 0 {
		return
	}
	c.maxDepth = n
	c.callStack.SetMaxDepth(n)
}

// PushLexicalScope enters a new declarative block scope (e.g. a `{}`
// block, a `for` loop head, a `catch` clause).
func (c *Context) PushLexicalScope() environment.Environment {
	c.lexicalEnv = environment.NewDeclarative(c.lexicalEnv)
	return c.lexicalEnv
}

// PopLexicalScope restores the enclosing lexical environment.
func (c *Context) PopLexicalScope() {
	if outer := c.lexicalEnv.Outer(); outer != nil {
		c.lexicalEnv = outer
	}
}

// --- Binding resolution (spec §4.3/§6 "get_binding/set_binding/...") ---

func (c *Context) HasBinding(name string) bool {
	return environment.HasBindingInChain(c.lexicalEnv, name)
}

// GetBinding resolves name through the lexical chain. found is false for
// an unresolved name; the caller surfaces that as a ReferenceError (spec
// §4.3 distinguishes "not found" from "found and undefined").
func (c *Context) GetBinding(name string) (value.Value, bool) {
	return environment.Resolve(c.lexicalEnv, name, c)
}

// SetBinding assigns through the lexical chain. If unresolved and c is not
// strict, it creates an implicit global (sloppy-mode assignment, spec
// §4.3's "binding created by implicit global assignment ... is
// [deletable]"); in strict mode it raises ReferenceError.
func (c *Context) SetBinding(name string, v value.Value) {
	if environment.ResolveSet(c.lexicalEnv, name, v, c.strict, c) {
		return
	}
	if c.strict {
		c.ThrowReferenceError("%s is not defined", name)
		return
	}
	c.realm.Global.DefineProperty(object.StringKey(name), object.DataDescriptor(v, true, true, true))
}

// CreateBinding declares a new `var`/function-parameter binding in the
// current variable environment.
func (c *Context) CreateBinding(name string, v value.Value, mutable, deletable bool) bool {
	return c.variableEnv.CreateBinding(name, v, mutable, deletable)
}

// CreateLexicalBinding declares a `let`/`const` binding (TDZ until
// InitializeBinding lifts it) in the current lexical environment.
func (c *Context) CreateLexicalBinding(name string, mutable bool) bool {
	return c.lexicalEnv.CreateUninitializedBinding(name, mutable)
}

func (c *Context) InitializeBinding(name string, v value.Value) bool {
	return c.lexicalEnv.InitializeBinding(name, v)
}

func (c *Context) DeleteBinding(name string) bool {
	return c.lexicalEnv.DeleteBinding(name)
}

// --- object.Caller / environment.Caller implementation ---

// CallFunction invokes fn with the given this/args, pushing a call-stack
// frame and enforcing the execution-depth ceiling (spec §4.4's depth
// protocol). Satisfies object.Caller and environment.Caller.
func (c *Context) CallFunction(fn *object.Object, this value.Value, args []value.Value) value.Value {
	if fn == nil || !fn.IsCallable() {
		c.ThrowTypeError("value is not a function")
		return value.Undefined
	}
	if c.depth >= c.maxDepth || c.callStack.WillOverflow() {
		c.ThrowRangeError("call stack size exceeded")
		return value.Undefined
	}
	c.depth++
	ok := c.callStack.Push(&Frame{Callee: fn, This: this, Args: args, Name: fn.FunctionName(), File: c.file})
	if !ok {
		c.depth--
		c.ThrowRangeError("call stack size exceeded")
		return value.Undefined
	}
	result := fn.Call(c, this, args)
	c.callStack.Pop()
	c.depth--
	if c.controlFlow.IsReturn() {
		if rv, ok := c.controlFlow.Value().(value.Value); ok {
			result = rv
		}
		c.controlFlow.Clear()
	}
	return result
}

// New implements the `new fn(...args)` construction protocol (spec
// §4.2's Function subtype Construct description): newTarget defaults to
// fn itself.
func (c *Context) New(fn *object.Object, args []value.Value) value.Value {
	if fn == nil || !fn.IsConstructor() {
		c.ThrowTypeError("value is not a constructor")
		return value.Undefined
	}
	prevCtor := c.inConstructorCall
	c.inConstructorCall = true
	result := fn.Construct(c, fn, args)
	c.inConstructorCall = prevCtor
	return result
}

var _ object.Caller = (*Context)(nil)
var _ environment.Caller = (*Context)(nil)
var _ gc.RootProvider = (*Context)(nil)

// --- GC root discovery (spec §4.5 step 1) ---

type bindingEnumerator interface {
	EnumerateBindingValues() []value.Value
}

// GCRoots implements gc.RootProvider: the global object, this_binding,
// every environment along both chains, and every call-stack frame's
// callee/this/args/locals.
func (c *Context) GCRoots() []value.Value {
	var roots []value.Value
	roots = append(roots, c.realm.Global)
	if c.thisBinding != nil {
		roots = append(roots, c.thisBinding)
	}

	seen := make(map[environment.Environment]bool)
	walk := func(env environment.Environment) {
		for e := env; e != nil && !seen[e]; e = e.Outer() {
			seen[e] = true
			if be, ok := e.(bindingEnumerator); ok {
				roots = append(roots, be.EnumerateBindingValues()...)
			}
		}
	}
	walk(c.lexicalEnv)
	walk(c.variableEnv)

	for _, f := range c.callStack.Frames() {
		if f.Callee != nil {
			roots = append(roots, f.Callee)
		}
		if f.This != nil {
			roots = append(roots, f.This)
		}
		roots = append(roots, f.Args...)
		roots = append(roots, f.Locals...)
	}

	if c.controlFlow.IsException() {
		if v, ok := c.controlFlow.Value().(value.Value); ok {
			roots = append(roots, v)
		}
	}
	if c.controlFlow.IsReturn() {
		if v, ok := c.controlFlow.Value().(value.Value); ok {
			roots = append(roots, v)
		}
	}

	return roots
}

// --- Microtasks (spec §5: "Promises are ... a microtask queue (FIFO)
// drained between turns") ---

// EnqueueMicrotask schedules fn to run during the next DrainMicrotasks.
func (c *Context) EnqueueMicrotask(fn func()) {
	c.microtasks = append(c.microtasks, fn)
}

// DrainMicrotasks runs every queued microtask to completion, including any
// microtasks a running one enqueues, then drains any FinalizationRegistry
// callbacks a prior GC cycle queued (spec §4.5: "enqueued to run before
// the next user-code resumption").
func (c *Context) DrainMicrotasks() {
	for len(c.microtasks) > 0 {
		task := c.microtasks[0]
		c.microtasks = c.microtasks[1:]
		task()
	}
	c.realm.GC.DrainFinalizers(func(callback *object.Object, heldValue value.Value) {
		if callback != nil && callback.IsCallable() {
			c.CallFunction(callback, value.Undefined, []value.Value{heldValue})
		}
	})
}

// --- Exception protocol (spec §4.4, §7) ---

// ThrowValue sets the exception signal directly with an already-built
// Value (used when throwing a user-constructed Error instance).
func (c *Context) ThrowValue(v value.Value) {
	c.controlFlow.SetException(v)
}

// HasException reports whether an exception is currently pending.
func (c *Context) HasException() bool { return c.controlFlow.IsException() }

// Exception returns the pending exception value, or nil if none.
func (c *Context) Exception() value.Value {
	if v, ok := c.controlFlow.Value().(value.Value); ok {
		return v
	}
	return nil
}

// ClearException restores normal execution (spec's `clear_exception`).
func (c *Context) ClearException() {
	if c.controlFlow.IsException() {
		c.controlFlow.Clear()
	}
}

func (c *Context) throwKind(kind errors.Kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	proto := c.realm.ErrorPrototype(kind)
	errObj := object.NewWithTag(proto, object.TagError)
	errObj.DefineProperty(object.StringKey("message"), object.BuiltinMethodProperty(value.String(msg)))
	errObj.DefineProperty(object.StringKey("name"), object.BuiltinMethodProperty(value.String(string(kind))))
	stack := c.callStack.StackTrace()
	errObj.DefineProperty(object.StringKey("stack"), object.BuiltinMethodProperty(
		value.String(string(kind)+": "+msg+"\n"+stack.String())))
	c.realm.GC.Allocate(errObj)
	c.controlFlow.SetException(value.Value(errObj))
}

func (c *Context) ThrowTypeError(format string, args ...any)      { c.throwKind(errors.KindTypeError, format, args...) }
func (c *Context) ThrowRangeError(format string, args ...any)     { c.throwKind(errors.KindRangeError, format, args...) }
func (c *Context) ThrowReferenceError(format string, args ...any) { c.throwKind(errors.KindReferenceError, format, args...) }
func (c *Context) ThrowSyntaxError(format string, args ...any)    { c.throwKind(errors.KindSyntaxError, format, args...) }
func (c *Context) ThrowURIError(format string, args ...any)       { c.throwKind(errors.KindURIError, format, args...) }
func (c *Context) ThrowEvalError(format string, args ...any)      { c.throwKind(errors.KindEvalError, format, args...) }
func (c *Context) ThrowError(format string, args ...any)          { c.throwKind(errors.KindError, format, args...) }

// ThrowFromString implements `throw_exception(v)`'s string-promotion rule
// (spec §4.4): a bare string matching "<Kind>: <msg>" is promoted to the
// matching Error kind; anything else becomes a plain Error whose message
// is the string itself.
func (c *Context) ThrowFromString(s string) {
	kinds := []errors.Kind{
		errors.KindTypeError, errors.KindReferenceError, errors.KindSyntaxError,
		errors.KindRangeError, errors.KindURIError, errors.KindEvalError,
		errors.KindAggregateError, errors.KindError,
	}
	for _, k := range kinds {
		prefix := string(k) + ": "
		if strings.HasPrefix(s, prefix) {
			c.throwKind(k, "%s", strings.TrimPrefix(s, prefix))
			return
		}
	}
	c.throwKind(errors.KindError, "%s", s)
}
