// Package errors provides diagnostic formatting for the quanta-go runtime:
// source positions, call-stack frames, and caret-style error rendering for
// uncaught exceptions.
package errors

import "fmt"

// Position identifies a location in source text. It is the runtime's own
// lightweight stand-in for whatever position type a real lexer/parser
// (an external collaborator per the core's scope) would supply.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
