package automaton

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/emirpasic/gods/v2/queues/linkedlistqueue"

	"lexdfa/internal/logutil"
)

// DFA is a deterministic automaton built from an NFA by subset construction.
// It is never modified after BuildDFA returns, so one DFA may be matched and
// tokenized against from many goroutines at once.
type DFA struct {
	states   []dfaState
	start    StateID
	alphabet []byte
}

type buildOptions struct {
	maxStates int
}

// A BuildOption configures BuildDFA.
type BuildOption func(*buildOptions)

// WithMaxStates aborts construction with ErrStateLimitExceeded once more than
// n DFA states would be needed. Zero or less means no limit.
func WithMaxStates(n int) BuildOption {
	return func(o *buildOptions) {
		o.maxStates = n
	}
}

// subsetBuilder holds the NFA-set to DFA-state mapping, which only lives for
// the duration of one construction.
type subsetBuilder struct {
	nfa     *NFA
	dfa     *DFA
	index   map[string]StateID
	subsets []stateSet
	limit   int
}

// intern returns the DFA state for set, allocating it when the set is new.
func (b *subsetBuilder) intern(set stateSet) (id StateID, fresh bool, err error) {
	k := set.key()
	if id, ok := b.index[k]; ok {
		return id, false, nil
	}
	if b.limit > 0 && len(b.dfa.states) >= b.limit {
		return DeadState, false, fmt.Errorf("%w: limit is %d", ErrStateLimitExceeded, b.limit)
	}
	var st dfaState
	for _, s := range set {
		ns := &b.nfa.states[s]
		st.accepting = st.accepting || ns.isAccepting()
		st.tags = st.tags.union(ns.tags)
	}
	b.dfa.states = append(b.dfa.states, st)
	id = StateID(len(b.dfa.states) - 1)
	b.index[k] = id
	b.subsets = append(b.subsets, set)
	logutil.Trace("new dfa state", "id", id, "nfa_states", len(set), "accepting", st.accepting)
	return id, true, nil
}

// BuildDFA converts n into an equivalent DFA containing only reachable
// states. n is left untouched.
func BuildDFA(n *NFA, opts ...BuildOption) (*DFA, error) {
	if n.consumed() {
		return nil, operandError("cannot build a DFA from a nil or consumed NFA")
	}
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	d := &DFA{alphabet: n.Alphabet()}
	b := &subsetBuilder{nfa: n, dfa: d, index: make(map[string]StateID), limit: o.maxStates}

	start, _, err := b.intern(n.epsilonClosure([]StateID{n.start}))
	if err != nil {
		return nil, err
	}
	d.start = start

	work := linkedlistqueue.New[StateID]()
	work.Enqueue(start)
	for !work.Empty() {
		cur, _ := work.Dequeue()
		for _, c := range d.alphabet {
			moved := n.move(b.subsets[cur], c)
			if len(moved) == 0 {
				continue
			}
			to, fresh, err := b.intern(n.epsilonClosure(moved))
			if err != nil {
				return nil, err
			}
			if fresh {
				work.Enqueue(to)
			}
			if err := d.states[cur].addTransition(cur, c, to); err != nil {
				return nil, err
			}
		}
	}

	slog.Debug("built dfa", "nfa_states", len(n.states), "dfa_states", len(d.states), "alphabet", len(d.alphabet))
	return d, nil
}

// MustBuildDFA is like BuildDFA but panics on error.
func MustBuildDFA(n *NFA, opts ...BuildOption) *DFA {
	d, err := BuildDFA(n, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *DFA) Start() StateID { return d.start }
func (d *DFA) NumStates() int { return len(d.states) }

func (d *DFA) Alphabet() []byte { return slices.Clone(d.alphabet) }

// Step returns the successor of s on c, or DeadState.
func (d *DFA) Step(s StateID, c byte) StateID {
	if int(s) < 0 || int(s) >= len(d.states) {
		return DeadState
	}
	to, ok := d.states[s].trans[c]
	if !ok {
		return DeadState
	}
	return to
}

func (d *DFA) IsAccept(s StateID) bool {
	if int(s) < 0 || int(s) >= len(d.states) {
		return false
	}
	return d.states[s].isAccepting()
}

// Tags returns the tags of s ordered from highest to lowest precedence.
func (d *DFA) Tags(s StateID) []Tag {
	if int(s) < 0 || int(s) >= len(d.states) {
		return nil
	}
	return slices.Clone(d.states[s].tags)
}

// Resolve returns the winning tag of s, if it has any.
func (d *DFA) Resolve(s StateID) (Tag, bool) {
	if int(s) < 0 || int(s) >= len(d.states) {
		return Tag{}, false
	}
	return d.states[s].tags.resolve()
}

// Match reports whether the whole input is in the language of d.
func (d *DFA) Match(input string) bool {
	s := d.start
	for i := 0; i < len(input); i++ {
		if s = d.Step(s, input[i]); s == DeadState {
			return false
		}
	}
	return d.IsAccept(s)
}

// Copy returns a deep clone of d. It panics if the clone would need two
// transitions on one symbol from one state, which can only mean d itself was
// built incorrectly.
func (d *DFA) Copy() *DFA {
	c := &DFA{
		states:   make([]dfaState, len(d.states)),
		start:    d.start,
		alphabet: slices.Clone(d.alphabet),
	}
	for i, s := range d.states {
		c.states[i] = dfaState{accepting: s.accepting, tags: slices.Clone(s.tags)}
	}
	for i, s := range d.states {
		for _, sym := range sortedSymbols(s.trans) {
			c.mustAddTransition(StateID(i), sym, s.trans[sym])
		}
	}
	return c
}

func (d *DFA) mustAddTransition(from StateID, c byte, to StateID) {
	if err := d.states[from].addTransition(from, c, to); err != nil {
		panic(fmt.Errorf("copy dfa: %w", err))
	}
}
