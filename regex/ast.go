// Package regex describes patterns as expression trees and compiles them to
// Thompson NFAs. Patterns are built in Go, there is no textual syntax to parse.
package regex

import "errors"

var ErrUnknownExpr = errors.New("unknown expression")

// Expr is one of Empty, Atom, Concat, Union or Star.
type Expr interface {
	isExpr()
}

// Empty matches the empty string.
type Empty struct{}

// Atom matches a single character.
type Atom struct {
	Char byte
}

// Concat matches its operands in sequence.
type Concat struct {
	Exprs []Expr
}

// Union matches any one of its operands.
type Union struct {
	Exprs []Expr
}

// Star matches zero or more repetitions of its operand.
type Star struct {
	Expr Expr
}

func (Empty) isExpr()  {}
func (Atom) isExpr()   {}
func (Concat) isExpr() {}
func (Union) isExpr()  {}
func (Star) isExpr()   {}

// Seq is shorthand for a Concat of exprs.
func Seq(exprs ...Expr) Concat { return Concat{Exprs: exprs} }

// Alt is shorthand for a Union of exprs.
func Alt(exprs ...Expr) Union { return Union{Exprs: exprs} }

// Literal matches s exactly. The empty literal is Empty.
func Literal(s string) Expr {
	switch len(s) {
	case 0:
		return Empty{}
	case 1:
		return Atom{Char: s[0]}
	}
	exprs := make([]Expr, len(s))
	for i := 0; i < len(s); i++ {
		exprs[i] = Atom{Char: s[i]}
	}
	return Concat{Exprs: exprs}
}

// AnyOf matches any single character of chars.
func AnyOf(chars string) Expr {
	if len(chars) == 1 {
		return Atom{Char: chars[0]}
	}
	exprs := make([]Expr, len(chars))
	for i := 0; i < len(chars); i++ {
		exprs[i] = Atom{Char: chars[i]}
	}
	return Union{Exprs: exprs}
}

// NoneOf matches any single character not in chars.
func NoneOf(chars string) Expr {
	var exclude [256]bool
	for i := 0; i < len(chars); i++ {
		exclude[chars[i]] = true
	}
	var keep []byte
	for c := 0; c < 256; c++ {
		if !exclude[c] {
			keep = append(keep, byte(c))
		}
	}
	return AnyOf(string(keep))
}

// Range matches any character from lo to hi inclusive.
func Range(lo, hi byte) Expr {
	if lo > hi {
		return Union{}
	}
	var chars []byte
	for c := int(lo); c <= int(hi); c++ {
		chars = append(chars, byte(c))
	}
	return AnyOf(string(chars))
}

// Plus matches one or more repetitions of e.
func Plus(e Expr) Expr { return Concat{Exprs: []Expr{e, Star{Expr: e}}} }

// Optional matches e or nothing.
func Optional(e Expr) Expr { return Union{Exprs: []Expr{e, Empty{}}} }
