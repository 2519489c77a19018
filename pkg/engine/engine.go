// Package engine is the host-embedding facade (spec §1's own boundary: a
// complete engine minus lexer/parser/bytecode-compiler/interpreter). It
// wires a Realm and a GC collector together and hands off actual program
// execution to two injected collaborators, so this repo's core (Value,
// Object, Environment, Context, GC) can be exercised end-to-end without
// this package ever depending on a concrete parser implementation.
//
// Grounded on cmd/dwscript/cmd/run.go's lex -> parse -> (semantic) -> eval
// pipeline shape, collapsed to the two seams this spec leaves external.
package engine

import (
	"fmt"
	"io"

	"github.com/solarbrowser/quanta-go/internal/context"
	"github.com/solarbrowser/quanta-go/internal/gc"
	"github.com/solarbrowser/quanta-go/internal/value"
)

// Program is whatever a Parser implementation produces and the matching
// Interpreter implementation consumes; this package never inspects it.
type Program any

// Parser turns source text into a Program. The real lexer/parser are
// explicitly out of scope for this repo (spec §1's Non-goals); a host
// embeds this engine by supplying its own.
type Parser interface {
	Parse(source, filename string) (Program, error)
}

// Interpreter runs a Program against a fresh Context, returning the
// completion value. Also explicitly out of scope for this repo's core.
type Interpreter interface {
	Eval(ctx *context.Context, program Program) (value.Value, error)
}

// Result is the outcome of one Evaluate call.
type Result struct {
	Success      bool
	Value        value.Value
	ErrorMessage string
}

// Engine owns one Realm (global object + intrinsics) and its GC collector,
// shared across every Evaluate call the way spec §4.4 describes Contexts
// sharing a single realm.
type Engine struct {
	realm       *context.Realm
	gcc         *gc.Collector
	parser      Parser
	interpreter Interpreter

	maxDepth      int
	strictDefault bool
	output        io.Writer
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithParser installs the Parser collaborator. Required before Evaluate
// will do anything but report an error.
func WithParser(p Parser) EngineOption { return func(e *Engine) { e.parser = p } }

// WithInterpreter installs the Interpreter collaborator.
func WithInterpreter(i Interpreter) EngineOption { return func(e *Engine) { e.interpreter = i } }

// WithGCThreshold sets the approximate byte threshold (each allocated
// object counts as 64 bytes) that triggers an automatic collection
// (spec §4.5); 0 disables automatic collection, leaving only ForceGC.
func WithGCThreshold(n uint64) EngineOption {
	return func(e *Engine) {
		e.gcc = gc.New(n)
		e.realm = context.NewRealm(e.gcc)
		if e.output != nil {
			e.realm.SetOutput(e.output)
		}
	}
}

// WithMaxCallStackDepth overrides the recursion ceiling (spec §4.4's call
// stack) every Context this Engine creates enforces; DefaultMaxDepth
// otherwise.
func WithMaxCallStackDepth(n int) EngineOption {
	return func(e *Engine) { e.maxDepth = n }
}

// WithStrictModeDefault sets whether a fresh Global activation starts in
// strict mode absent a "use strict" directive from the (out-of-scope)
// parser front-end.
func WithStrictModeDefault(strict bool) EngineOption {
	return func(e *Engine) { e.strictDefault = strict }
}

// WithOutputWriter redirects console.* output (os.Stdout otherwise).
func WithOutputWriter(w io.Writer) EngineOption {
	return func(e *Engine) {
		e.output = w
		if e.realm != nil {
			e.realm.SetOutput(w)
		}
	}
}

// New builds an Engine with a fresh Realm and GC collector (threshold 0:
// automatic collection disabled until WithGCThreshold opts in).
func New(opts ...EngineOption) *Engine {
	gcc := gc.New(0)
	e := &Engine{gcc: gcc, realm: context.NewRealm(gcc)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate parses and runs source as a fresh Global activation sharing
// this Engine's realm, per spec §4.4 ("Contexts share one realm").
func (e *Engine) Evaluate(source, filename string) Result {
	if e.parser == nil || e.interpreter == nil {
		return Result{ErrorMessage: "engine: no Parser/Interpreter collaborator configured"}
	}
	program, err := e.parser.Parse(source, filename)
	if err != nil {
		return Result{ErrorMessage: fmt.Sprintf("parse error: %v", err)}
	}
	ctx := context.NewGlobalContext(e.realm)
	ctx.SetFile(filename)
	if e.maxDepth > 0 {
		ctx.SetMaxDepth(e.maxDepth)
	}
	if e.strictDefault {
		ctx.SetStrict(true)
	}
	v, err := e.interpreter.Eval(ctx, program)
	if err != nil {
		return Result{ErrorMessage: err.Error()}
	}
	if ctx.HasException() {
		reason := ctx.Exception()
		ctx.ClearException()
		return Result{Value: reason, ErrorMessage: "uncaught exception: " + value.ToString(reason, ctx).String()}
	}
	return Result{Success: true, Value: v}
}

// ForceGC runs a collection cycle immediately, per spec §4.5's explicit
// gc() builtin equivalent at the host level.
func (e *Engine) ForceGC() gc.Stats { return e.gcc.Collect() }

// GCStats returns the current collector counters without collecting.
func (e *Engine) GCStats() gc.Stats { return e.gcc.Stats() }

// Global exposes the shared realm (its Global field is the global object),
// for a host that wants to poke bindings in before/after Evaluate calls.
func (e *Engine) Global() *context.Realm { return e.realm }
