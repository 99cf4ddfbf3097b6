package automaton

import (
	"encoding/binary"
	"slices"
)

// stateSet is a canonical set of NFA states: sorted ascending, no duplicates.
// Two sets holding the same states always have the same key, whatever order
// the states were discovered in.
type stateSet []StateID

func newStateSet(ids ...StateID) stateSet {
	s := slices.Clone(ids)
	slices.Sort(s)
	return stateSet(slices.Compact(s))
}

// key encodes the set as a sequence of uvarints. The encoding is prefix-free
// per element, so distinct sets never share a key.
func (s stateSet) key() string {
	buf := make([]byte, 0, len(s)*2)
	for _, id := range s {
		buf = binary.AppendUvarint(buf, uint64(id))
	}
	return string(buf)
}
