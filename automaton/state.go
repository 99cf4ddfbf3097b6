package automaton

import (
	"cmp"
	"fmt"
	"slices"
)

// Symbol is a single input character. Epsilon marks a non-consuming NFA edge
// and is never part of an alphabet.
type Symbol int16

const Epsilon Symbol = -1

func (s Symbol) String() string {
	if s == Epsilon {
		return "ε"
	}
	return fmt.Sprintf("%q", byte(s))
}

// StateID is the index of a state in the arena of the automaton owning it.
type StateID int

// DeadState is returned by Step when a state has no transition on a symbol.
const DeadState StateID = -1

// Tag names the pattern a state terminates. Lower Priority wins when a DFA
// state carries several tags; equal priorities fall back to the smaller Name.
type Tag struct {
	Name     string
	Priority int
}

func (t Tag) IsZero() bool { return t == Tag{} }

func (t Tag) String() string {
	if t.Name == "" {
		return "<anonymous>"
	}
	return t.Name
}

func compareTags(a, b Tag) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// tagSet is kept sorted by priority so resolve is just the head.
type tagSet []Tag

func (s tagSet) add(t Tag) tagSet {
	i, found := slices.BinarySearchFunc(s, t, compareTags)
	if found {
		return s
	}
	return slices.Insert(s, i, t)
}

func (s tagSet) union(o tagSet) tagSet {
	for _, t := range o {
		s = s.add(t)
	}
	return s
}

func (s tagSet) resolve() (Tag, bool) {
	if len(s) == 0 {
		return Tag{}, false
	}
	return s[0], true
}

type nfaState struct {
	accepting bool
	tags      tagSet
	// target lists are sorted and free of duplicates
	trans map[Symbol][]StateID
}

func (s *nfaState) addTransition(sym Symbol, to StateID) {
	if s.trans == nil {
		s.trans = make(map[Symbol][]StateID)
	}
	targets := s.trans[sym]
	i, found := slices.BinarySearch(targets, to)
	if found {
		return
	}
	s.trans[sym] = slices.Insert(targets, i, to)
}

func (s *nfaState) isAccepting() bool { return s.accepting }

type dfaState struct {
	accepting bool
	tags      tagSet
	trans     map[byte]StateID
}

func (s *dfaState) addTransition(from StateID, c byte, to StateID) error {
	if s.trans == nil {
		s.trans = make(map[byte]StateID)
	}
	if have, ok := s.trans[c]; ok {
		if have == to {
			return nil
		}
		return &DeterminismError{State: from, Symbol: c, Existing: have, Target: to}
	}
	s.trans[c] = to
	return nil
}

func (s *dfaState) isAccepting() bool { return s.accepting }

func sortedSymbols[V any](m map[byte]V) []byte {
	out := make([]byte, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
