package automaton

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDOTDFA(t *testing.T) {
	d := MustBuildDFA(Atom('a').Tag(Tag{Name: "A"}))
	var sb strings.Builder
	require.NoError(t, WriteDOT(&sb, d))

	want := `digraph G {
    rankdir=LR;
    q0 [shape=circle, label="q0"];
    q0 -> q1 [label="a"];
    q1 [shape=doublecircle, label="q1\nA"];
    _start [shape=point]; _start -> q0;
}
`
	assert.Equal(t, want, sb.String())
}

func TestWriteDOTNFA(t *testing.T) {
	n := star(t, Atom('a'))
	var sb strings.Builder
	require.NoError(t, WriteDOT(&sb, n))
	out := sb.String()

	assert.Contains(t, out, `[label="ε"]`)
	assert.Contains(t, out, `[label="a"]`)
	assert.Contains(t, out, "_start -> n0;")
	assert.Equal(t, 1, strings.Count(out, "doublecircle"))
}

func TestWriteDOTStable(t *testing.T) {
	build := func() *DFA {
		return MustBuildDFA(cat(t, star(t, alt(t, Atom('x'), Atom('y'), Atom('z'))), lit(t, "xyz")))
	}
	var a, b strings.Builder
	require.NoError(t, WriteDOT(&a, build()))
	require.NoError(t, WriteDOT(&b, build()))
	assert.Equal(t, a.String(), b.String())
}

func TestWriteDOTUnsupported(t *testing.T) {
	var sb strings.Builder
	err := WriteDOT(&sb, 42)
	assert.EqualError(t, err, "dot: unsupported graph type int")
}
