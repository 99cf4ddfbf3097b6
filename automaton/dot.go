package automaton

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// WriteDOT prints a Graphviz rendering of an *NFA or *DFA to w. States and
// edges are emitted in ascending order so the output is stable.
func WriteDOT(w io.Writer, g any) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "    rankdir=LR;")

	switch t := g.(type) {
	// ------------------------------------------------------------------ DFA
	case *DFA:
		for i, s := range t.states {
			writeNode(bw, "q", i, s.accepting, s.tags)
			for _, c := range sortedSymbols(s.trans) {
				fmt.Fprintf(bw, "    q%d -> q%d [label=%s];\n", i, s.trans[c], dotLabel(Symbol(c)))
			}
		}
		fmt.Fprintf(bw, "    _start [shape=point]; _start -> q%d;\n", t.start)

	// ------------------------------------------------------------------ NFA
	case *NFA:
		for i, s := range t.states {
			writeNode(bw, "n", i, s.accepting, s.tags)
			syms := make([]Symbol, 0, len(s.trans))
			for sym := range s.trans {
				syms = append(syms, sym)
			}
			slices.Sort(syms)
			for _, sym := range syms {
				for _, to := range s.trans[sym] {
					fmt.Fprintf(bw, "    n%d -> n%d [label=%s];\n", i, to, dotLabel(sym))
				}
			}
		}
		if !t.consumed() {
			fmt.Fprintf(bw, "    _start [shape=point]; _start -> n%d;\n", t.start)
		}

	default:
		return fmt.Errorf("dot: unsupported graph type %T", g)
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func writeNode(w io.Writer, prefix string, id int, accepting bool, tags tagSet) {
	shape := "circle"
	if accepting {
		shape = "doublecircle"
	}
	label := prefix + strconv.Itoa(id)
	if len(tags) > 0 {
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.String()
		}
		label += `\n` + strings.Join(names, ",")
	}
	fmt.Fprintf(w, "    %s%d [shape=%s, label=\"%s\"];\n", prefix, id, shape, label)
}

func dotLabel(sym Symbol) string {
	if sym == Epsilon {
		return `"ε"`
	}
	return strconv.Quote(string(rune(sym)))
}
