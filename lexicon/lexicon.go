// Package lexicon turns a list of named token rules into a single tokenizing
// DFA.
package lexicon

import (
	"errors"
	"fmt"
	"slices"

	"lexdfa/automaton"
	"lexdfa/regex"
)

var (
	ErrDuplicateRule  = errors.New("duplicate rule")
	ErrEmptyLexicon   = errors.New("lexicon has no rules")
	ErrUnknownLexicon = errors.New("unknown lexicon")
)

// Rule names one token kind. Elided rules are matched but never emitted.
type Rule struct {
	Name  string
	Expr  regex.Expr
	Elide bool
}

// Lexicon is an ordered list of rules. When two rules match the same longest
// lexeme, the one declared first wins.
type Lexicon struct {
	name  string
	rules []Rule
}

func New(name string, rules ...Rule) (*Lexicon, error) {
	l := &Lexicon{name: name}
	for _, r := range rules {
		if err := l.Add(r); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func MustNew(name string, rules ...Rule) *Lexicon {
	l, err := New(name, rules...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Lexicon) Name() string { return l.name }

func (l *Lexicon) Add(r Rule) error {
	if r.Name == "" {
		return fmt.Errorf("lexicon %s: rule %d has no name", l.name, len(l.rules))
	}
	if slices.ContainsFunc(l.rules, func(o Rule) bool { return o.Name == r.Name }) {
		return fmt.Errorf("lexicon %s: %w: %s", l.name, ErrDuplicateRule, r.Name)
	}
	l.rules = append(l.rules, r)
	return nil
}

// Names returns the rule names in declaration order.
func (l *Lexicon) Names() []string {
	names := make([]string, len(l.rules))
	for i, r := range l.rules {
		names[i] = r.Name
	}
	return names
}

// NFA builds the union of every rule as one Thompson NFA. Each rule's tag
// has its declaration index as priority.
func (l *Lexicon) NFA() (*automaton.NFA, error) {
	if len(l.rules) == 0 {
		return nil, fmt.Errorf("lexicon %s: %w", l.name, ErrEmptyLexicon)
	}
	ops := make([]*automaton.NFA, 0, len(l.rules))
	for i, r := range l.rules {
		n, err := regex.Compile(r.Expr)
		if err != nil {
			return nil, fmt.Errorf("lexicon %s: rule %s: %w", l.name, r.Name, err)
		}
		ops = append(ops, n.Tag(automaton.Tag{Name: r.Name, Priority: i}))
	}
	nfa, err := automaton.Union(ops...)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", l.name, err)
	}
	return nfa, nil
}

// Compile builds the tokenizing DFA.
func (l *Lexicon) Compile(opts ...automaton.BuildOption) (*Lexer, error) {
	nfa, err := l.NFA()
	if err != nil {
		return nil, err
	}
	dfa, err := automaton.BuildDFA(nfa, opts...)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", l.name, err)
	}
	var elided []string
	for _, r := range l.rules {
		if r.Elide {
			elided = append(elided, r.Name)
		}
	}
	return &Lexer{name: l.name, dfa: dfa, names: l.Names(), elided: elided}, nil
}

// MustCompile is like Compile but panics on error.
func (l *Lexicon) MustCompile(opts ...automaton.BuildOption) *Lexer {
	lx, err := l.Compile(opts...)
	if err != nil {
		panic(err)
	}
	return lx
}

// Lexer is a compiled Lexicon. It is immutable and safe for concurrent use.
type Lexer struct {
	name   string
	dfa    *automaton.DFA
	names  []string
	elided []string
}

func (lx *Lexer) Name() string           { return lx.name }
func (lx *Lexer) DFA() *automaton.DFA    { return lx.dfa }
func (lx *Lexer) Names() []string        { return slices.Clone(lx.names) }
func (lx *Lexer) Elided() []string       { return slices.Clone(lx.elided) }
func (lx *Lexer) Match(input string) bool { return lx.dfa.Match(input) }

func (lx *Lexer) Tokenize(input string) *automaton.Tokenizer {
	return lx.dfa.Tokenize(input, automaton.Elide(lx.elided...))
}

func (lx *Lexer) TokenizeAll(input string) ([]automaton.Token, error) {
	return lx.dfa.TokenizeAll(input, automaton.Elide(lx.elided...))
}
