// Package minieval is a small reference Parser+Interpreter pair used only
// by this repo's own tests, to exercise pkg/engine and the core runtime
// (Value/Object/Environment/Context/GC) end-to-end without depending on a
// real lexer/parser/bytecode-compiler — all of which spec §1 places out of
// scope for this repo. It understands a tiny expression-statement language:
// number/string literals, +/-/*/ arithmetic (numeric or string-concat for
// "+"), identifiers, "let name = expr;" bindings, "." property access, and
// "(args)" calls — just enough surface to reach into the global object's
// builtins (e.g. "console.log(1 + 2);").
package minieval

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/solarbrowser/quanta-go/internal/context"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
	"github.com/solarbrowser/quanta-go/pkg/engine"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokPunct
)

type token struct {
	kind tokenKind
	text string
}

func lex(src string) []token {
	var toks []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j
		case r == '"' || r == '\'':
			quote := r
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				j++
			}
			toks = append(toks, token{tokString, string(runes[i+1 : j])})
			i = j + 1
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j
		default:
			toks = append(toks, token{tokPunct, string(r)})
			i++
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks
}

// Program is the parsed statement list minieval.Interpreter runs.
type Program struct {
	statements []stmt
}

type stmt struct {
	isLet bool
	name  string
	expr  expr
}

type expr interface{}

type numberLit float64
type stringLit string
type identExpr string
type binaryExpr struct {
	op          byte
	left, right expr
}
type callExpr struct {
	callee expr
	args   []expr
}
type memberExpr struct {
	object   expr
	property string
}

// Parser implements engine.Parser.
type Parser struct{}

func (Parser) Parse(source, filename string) (engine.Program, error) {
	p := &parser{toks: lex(source)}
	var statements []stmt
	for p.peek().kind != tokEOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		statements = append(statements, s)
	}
	return Program{statements: statements}, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expectPunct(s string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != s {
		return fmt.Errorf("expected %q, got %q", s, t.text)
	}
	return nil
}

func (p *parser) parseStatement() (stmt, error) {
	if p.peek().kind == tokIdent && p.peek().text == "let" {
		p.next()
		name := p.next()
		if name.kind != tokIdent {
			return stmt{}, fmt.Errorf("expected identifier after let")
		}
		if err := p.expectPunct("="); err != nil {
			return stmt{}, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return stmt{}, err
		}
		if p.peek().kind == tokPunct && p.peek().text == ";" {
			p.next()
		}
		return stmt{isLet: true, name: name.text, expr: e}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return stmt{}, err
	}
	if p.peek().kind == tokPunct && p.peek().text == ";" {
		p.next()
	}
	return stmt{expr: e}, nil
}

func (p *parser) parseExpr() (expr, error) { return p.parseAdditive() }

func (p *parser) parseAdditive() (expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPunct && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text[0]
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (expr, error) {
	left, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPunct && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.next().text[0]
		right, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseCall() (expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.peek().kind == tokPunct && p.peek().text == "(":
			p.next()
			var args []expr
			for !(p.peek().kind == tokPunct && p.peek().text == ")") {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.peek().kind == tokPunct && p.peek().text == "," {
					p.next()
				}
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			e = callExpr{callee: e, args: args}
		case p.peek().kind == tokPunct && p.peek().text == ".":
			p.next()
			prop := p.next()
			e = memberExpr{object: e, property: prop.text}
		default:
			return e, nil
		}
	}
}

func (p *parser) parsePrimary() (expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, err
		}
		return numberLit(f), nil
	case tokString:
		return stringLit(t.text), nil
	case tokIdent:
		return identExpr(t.text), nil
	case tokPunct:
		if t.text == "(" {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %q", t.text)
}

// Interpreter implements engine.Interpreter.
type Interpreter struct{}

func (Interpreter) Eval(ctx *context.Context, program engine.Program) (value.Value, error) {
	prog, ok := program.(Program)
	if !ok {
		return nil, fmt.Errorf("minieval: not a Program")
	}
	var last value.Value = value.Undefined
	for _, s := range prog.statements {
		v, err := evalExpr(ctx, s.expr)
		if err != nil {
			return nil, err
		}
		if s.isLet {
			ctx.CreateBinding(s.name, v, true, false)
		} else {
			last = v
		}
		if ctx.HasException() {
			return last, nil
		}
	}
	return last, nil
}

func evalExpr(ctx *context.Context, e expr) (value.Value, error) {
	switch t := e.(type) {
	case numberLit:
		return value.Number(t), nil
	case stringLit:
		return value.String(t), nil
	case identExpr:
		if v, ok := ctx.GetBinding(string(t)); ok {
			return v, nil
		}
		ctx.ThrowReferenceError("%s is not defined", string(t))
		return value.Undefined, nil
	case binaryExpr:
		left, err := evalExpr(ctx, t.left)
		if err != nil {
			return nil, err
		}
		right, err := evalExpr(ctx, t.right)
		if err != nil {
			return nil, err
		}
		return evalBinary(ctx, t.op, left, right), nil
	case memberExpr:
		base, err := evalExpr(ctx, t.object)
		if err != nil {
			return nil, err
		}
		o, ok := base.(*object.Object)
		if !ok {
			ctx.ThrowTypeError("Cannot read properties of non-object")
			return value.Undefined, nil
		}
		return o.Get(object.StringKey(t.property), o, ctx), nil
	case callExpr:
		calleeVal, thisVal, err := evalCallee(ctx, t.callee)
		if err != nil {
			return nil, err
		}
		fn, ok := calleeVal.(*object.Object)
		if !ok || !fn.IsCallable() {
			ctx.ThrowTypeError("value is not a function")
			return value.Undefined, nil
		}
		args := make([]value.Value, len(t.args))
		for i, a := range t.args {
			v, err := evalExpr(ctx, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return ctx.CallFunction(fn, thisVal, args), nil
	default:
		return nil, fmt.Errorf("minieval: unhandled expression %T", e)
	}
}

// evalCallee resolves a call's function value and its `this` binding
// (the object a MemberExpr was read off of, per ordinary method-call
// semantics; undefined otherwise).
func evalCallee(ctx *context.Context, e expr) (value.Value, value.Value, error) {
	if m, ok := e.(memberExpr); ok {
		base, err := evalExpr(ctx, m.object)
		if err != nil {
			return nil, nil, err
		}
		o, ok := base.(*object.Object)
		if !ok {
			ctx.ThrowTypeError("Cannot read properties of non-object")
			return value.Undefined, value.Undefined, nil
		}
		return o.Get(object.StringKey(m.property), o, ctx), o, nil
	}
	v, err := evalExpr(ctx, e)
	return v, value.Undefined, err
}

func evalBinary(ctx *context.Context, op byte, left, right value.Value) value.Value {
	_, leftStr := left.(value.String)
	_, rightStr := right.(value.String)
	if op == '+' && (leftStr || rightStr) {
		return value.String(value.ToString(left, ctx).String() + value.ToString(right, ctx).String())
	}
	l := float64(value.ToNumber(left, ctx))
	r := float64(value.ToNumber(right, ctx))
	switch op {
	case '+':
		return value.Number(l + r)
	case '-':
		return value.Number(l - r)
	case '*':
		return value.Number(l * r)
	case '/':
		return value.Number(l / r)
	default:
		return value.Undefined
	}
}
