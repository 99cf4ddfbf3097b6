package automaton

import (
	"github.com/emirpasic/gods/v2/sets/treeset"
)

// NFA is a Thompson fragment: one start state and one final state, owning
// every state reachable from start. States live in an arena and refer to each
// other by StateID, so the back edges of a Kleene star need no pointers.
//
// The composition functions consume their operands: on success an operand is
// reset to the zero NFA and passing it again is rejected with
// ErrInvalidOperand.
type NFA struct {
	states   []nfaState
	start    StateID
	final    StateID
	alphabet *treeset.Set[byte]
}

func newNFA() *NFA {
	return &NFA{alphabet: treeset.New[byte]()}
}

func (n *NFA) newState(accepting bool) StateID {
	n.states = append(n.states, nfaState{accepting: accepting})
	return StateID(len(n.states) - 1)
}

func (n *NFA) consumed() bool { return n == nil || len(n.states) == 0 }

// absorb moves op's states into n's arena and empties op. It returns where
// op's start and final states ended up. Unless keepTags is set the moved
// states lose their tags: a tagged state must reach the fragment's final state
// on epsilon edges alone, and that no longer holds once more input is
// required after op.
func (n *NFA) absorb(op *NFA, keepTags bool) (start, final StateID) {
	offset := StateID(len(n.states))
	for _, s := range op.states {
		moved := nfaState{accepting: s.accepting}
		if keepTags {
			moved.tags = s.tags
		}
		for sym, targets := range s.trans {
			for _, to := range targets {
				moved.addTransition(sym, to+offset)
			}
		}
		n.states = append(n.states, moved)
	}
	n.alphabet.Add(op.alphabet.Values()...)
	start, final = op.start+offset, op.final+offset
	*op = NFA{}
	return start, final
}

func checkOperands(kind string, ops []*NFA) error {
	if len(ops) == 0 {
		return operandError("%s needs at least one operand", kind)
	}
	seen := make(map[*NFA]struct{}, len(ops))
	for i, op := range ops {
		if op.consumed() {
			return operandError("%s operand %d is nil or already consumed", kind, i)
		}
		if _, dup := seen[op]; dup {
			return operandError("%s operand %d appears more than once", kind, i)
		}
		seen[op] = struct{}{}
	}
	return nil
}

// Atom recognises exactly the one-character string c.
func Atom(c byte) *NFA {
	n := newNFA()
	n.start = n.newState(false)
	n.final = n.newState(true)
	n.states[n.start].addTransition(Symbol(c), n.final)
	n.alphabet.Add(c)
	return n
}

// Empty recognises only the empty string.
func Empty() *NFA {
	n := newNFA()
	n.start = n.newState(true)
	n.final = n.start
	return n
}

// Concat chains ops in order. Tags inside every operand but the last are
// dropped, since those states no longer end a pattern.
func Concat(ops ...*NFA) (*NFA, error) {
	if err := checkOperands("concat", ops); err != nil {
		return nil, err
	}
	n := newNFA()
	n.start = n.newState(false)
	prev := n.start
	for i, op := range ops {
		s, f := n.absorb(op, i == len(ops)-1)
		n.states[prev].addTransition(Epsilon, s)
		n.states[f].accepting = false
		prev = f
	}
	n.final = n.newState(true)
	n.states[prev].addTransition(Epsilon, n.final)
	return n, nil
}

// Union accepts whatever any of ops accepts.
func Union(ops ...*NFA) (*NFA, error) {
	if err := checkOperands("union", ops); err != nil {
		return nil, err
	}
	n := newNFA()
	n.start = n.newState(false)
	n.final = n.newState(true)
	for _, op := range ops {
		s, f := n.absorb(op, true)
		n.states[n.start].addTransition(Epsilon, s)
		n.states[f].accepting = false
		n.states[f].addTransition(Epsilon, n.final)
	}
	return n, nil
}

// KleeneStar accepts zero or more repetitions of op.
func KleeneStar(op *NFA) (*NFA, error) {
	if err := checkOperands("kleene star", []*NFA{op}); err != nil {
		return nil, err
	}
	n := newNFA()
	n.start = n.newState(true)
	n.final = n.start
	s, f := n.absorb(op, true)
	n.states[f].accepting = false
	n.states[f].addTransition(Epsilon, n.start)
	n.states[n.start].addTransition(Epsilon, s)
	return n, nil
}

// Tag marks the final state as terminating the pattern named by tag.
func (n *NFA) Tag(tag Tag) *NFA {
	if n.consumed() {
		return n
	}
	n.states[n.final].tags = n.states[n.final].tags.add(tag)
	return n
}

func (n *NFA) Start() StateID { return n.start }
func (n *NFA) Final() StateID { return n.final }
func (n *NFA) NumStates() int { return len(n.states) }

// Alphabet returns the symbols used by the automaton in ascending order.
func (n *NFA) Alphabet() []byte {
	if n.consumed() {
		return nil
	}
	return n.alphabet.Values()
}

func (n *NFA) IsAccept(s StateID) bool {
	if int(s) < 0 || int(s) >= len(n.states) {
		return false
	}
	return n.states[s].isAccepting()
}

func (n *NFA) Tags(s StateID) []Tag {
	if int(s) < 0 || int(s) >= len(n.states) {
		return nil
	}
	return append([]Tag(nil), n.states[s].tags...)
}

// Targets returns the states reachable from s on sym, Epsilon included.
func (n *NFA) Targets(s StateID, sym Symbol) []StateID {
	if int(s) < 0 || int(s) >= len(n.states) {
		return nil
	}
	return append([]StateID(nil), n.states[s].trans[sym]...)
}

// Copy returns a deep copy sharing no state with n.
func (n *NFA) Copy() *NFA {
	if n.consumed() {
		return &NFA{}
	}
	c := &NFA{
		states:   make([]nfaState, len(n.states)),
		start:    n.start,
		final:    n.final,
		alphabet: treeset.New(n.alphabet.Values()...),
	}
	for i, s := range n.states {
		cs := nfaState{accepting: s.accepting, tags: append(tagSet(nil), s.tags...)}
		for sym, targets := range s.trans {
			for _, to := range targets {
				cs.addTransition(sym, to)
			}
		}
		c.states[i] = cs
	}
	return c
}

// epsilonClosure returns every state reachable from seed through epsilon
// edges alone, seed included.
func (n *NFA) epsilonClosure(seed []StateID) stateSet {
	marked := make([]bool, len(n.states))
	stack := make([]StateID, 0, len(seed))
	for _, s := range seed {
		if !marked[s] {
			marked[s] = true
			stack = append(stack, s)
		}
	}
	closure := append([]StateID(nil), stack...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range n.states[s].trans[Epsilon] {
			if !marked[to] {
				marked[to] = true
				stack = append(stack, to)
				closure = append(closure, to)
			}
		}
	}
	return newStateSet(closure...)
}

func (n *NFA) move(set stateSet, c byte) []StateID {
	var out []StateID
	for _, s := range set {
		out = append(out, n.states[s].trans[Symbol(c)]...)
	}
	return out
}

// Match simulates the NFA directly, tracking the whole set of live states.
// It is slower than a DFA but needs no construction.
func (n *NFA) Match(input string) bool {
	if n.consumed() {
		return false
	}
	cur := n.epsilonClosure([]StateID{n.start})
	for i := 0; i < len(input); i++ {
		next := n.move(cur, input[i])
		if len(next) == 0 {
			return false
		}
		cur = n.epsilonClosure(next)
	}
	for _, s := range cur {
		if n.states[s].isAccepting() {
			return true
		}
	}
	return false
}
