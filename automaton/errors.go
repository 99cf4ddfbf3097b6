package automaton

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOperand       = errors.New("invalid operand")
	ErrDeterminismViolation = errors.New("duplicate transition")
	ErrNoViableToken        = errors.New("no viable token")
	ErrStateLimitExceeded   = errors.New("DFA state limit exceeded during construction")
)

func operandError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperand, fmt.Sprintf(format, args...))
}

// DeterminismError reports an attempt to give a DFA state a second target for
// one symbol. It always indicates a construction bug, never bad input.
type DeterminismError struct {
	State    StateID
	Symbol   byte
	Existing StateID
	Target   StateID
}

func (e *DeterminismError) Error() string {
	return fmt.Sprintf("duplicate transition from state %d on %q: have %d, want %d",
		e.State, e.Symbol, e.Existing, e.Target)
}

func (e *DeterminismError) Unwrap() error { return ErrDeterminismViolation }

// NoViableTokenError is returned by a Tokenizer when no accepting state is
// reachable from the current scan position.
type NoViableTokenError struct {
	Offset int // byte offset of the failed attempt
	Line   int // 1-based
	Column int // 1-based, in bytes
	Char   byte
}

func (e *NoViableTokenError) Error() string {
	return fmt.Sprintf("%d:%d: no viable token at offset %d (unexpected %q)",
		e.Line, e.Column, e.Offset, e.Char)
}

func (e *NoViableTokenError) Unwrap() error { return ErrNoViableToken }

func noViableToken(input string, offset int) *NoViableTokenError {
	line, col := 1, 1
	for i := 0; i < offset && i < len(input); i++ {
		if input[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	var c byte
	if offset < len(input) {
		c = input[offset]
	}
	return &NoViableTokenError{Offset: offset, Line: line, Column: col, Char: c}
}
