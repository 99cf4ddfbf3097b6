package regex

import (
	"fmt"

	"lexdfa/automaton"
)

// Compile builds a fresh NFA for e. Sub-expressions may be shared inside e;
// each occurrence gets its own states.
func Compile(e Expr) (*automaton.NFA, error) {
	switch e := e.(type) {
	case Empty:
		return automaton.Empty(), nil
	case Atom:
		return automaton.Atom(e.Char), nil
	case Concat:
		ops, err := compileAll(e.Exprs)
		if err != nil {
			return nil, err
		}
		return automaton.Concat(ops...)
	case Union:
		ops, err := compileAll(e.Exprs)
		if err != nil {
			return nil, err
		}
		return automaton.Union(ops...)
	case Star:
		op, err := Compile(e.Expr)
		if err != nil {
			return nil, err
		}
		return automaton.KleeneStar(op)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownExpr, e)
	}
}

func compileAll(exprs []Expr) ([]*automaton.NFA, error) {
	ops := make([]*automaton.NFA, 0, len(exprs))
	for _, sub := range exprs {
		op, err := Compile(sub)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(e Expr) *automaton.NFA {
	n, err := Compile(e)
	if err != nil {
		panic(err)
	}
	return n
}
