package lexicon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// newJSONOracle builds an independent JSON lexer with lexmachine. Its rules
// mirror JSON() closely enough for inputs without \u escapes or control
// characters.
func newJSONOracle(t *testing.T) *lexmachine.Lexer {
	t.Helper()
	lm := lexmachine.NewLexer()
	lm.Add([]byte(`,`), tokAction("COMMA"))
	lm.Add([]byte(`:`), tokAction("COLON"))
	lm.Add([]byte(`[{]`), tokAction("LEFT_CURLY"))
	lm.Add([]byte(`[}]`), tokAction("RIGHT_CURLY"))
	lm.Add([]byte(`[\[]`), tokAction("LEFT_SQUARE"))
	lm.Add([]byte(`[]]`), tokAction("RIGHT_SQUARE"))
	lm.Add([]byte(`-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE](\+|-)?[0-9]+)?`), tokAction("NUMBER"))
	lm.Add([]byte(`"([^"\\]|\\["\\/bfnrt])*"`), tokAction("STRING"))
	lm.Add([]byte(`true`), tokAction("TRUE"))
	lm.Add([]byte(`false`), tokAction("FALSE"))
	lm.Add([]byte(`null`), tokAction("NULL"))
	lm.Add([]byte(`( |\t|\n|\r)+`), skip)
	require.NoError(t, lm.Compile())
	return lm
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(name string) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return lexeme{Name: name, Value: string(m.Bytes)}, nil
	}
}

func oracleLexemes(t *testing.T, lm *lexmachine.Lexer, input string) ([]lexeme, bool) {
	t.Helper()
	scanner, err := lm.Scanner([]byte(input))
	require.NoError(t, err)
	var out []lexeme
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			return out, false
		}
		out = append(out, tok.(lexeme))
	}
	return out, true
}

func TestJSONAgreesWithLexmachine(t *testing.T) {
	oracle := newJSONOracle(t)
	lx := JSON().MustCompile()

	inputs := []string{
		`{}`,
		`[]`,
		`{"a":1}`,
		`[true,false,null]`,
		` { "key" : [ 1 , -2 , 3.5 , 4e10 , -0.0E-1 ] } `,
		"{\n\t\"nested\": {\"deep\": [[[\"x\"]]]}\r\n}",
		`"esc\"aped\\ \/ \b\f\n\r\t"`,
		`0123`,
		`truefalse`,
	}
	for _, in := range inputs {
		want, ok := oracleLexemes(t, oracle, in)
		require.True(t, ok, "oracle rejected %q", in)

		toks, err := lx.TokenizeAll(in)
		require.NoError(t, err, "tokenize %q", in)
		got := make([]lexeme, len(toks))
		for i, tok := range toks {
			got[i] = lexeme{tok.Tag.Name, tok.Lexeme}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q: tokens differ from lexmachine (-lexmachine +lexdfa):\n%s", in, diff)
		}
	}
}

func TestJSONRejectsLikeLexmachine(t *testing.T) {
	oracle := newJSONOracle(t)
	lx := JSON().MustCompile()

	for _, in := range []string{`@`, `[1, ~]`, `"unterminated`, `-`} {
		_, ok := oracleLexemes(t, oracle, in)
		require.False(t, ok, "oracle accepted %q", in)

		_, err := lx.TokenizeAll(in)
		require.Error(t, err, "lexdfa accepted %q", in)
	}
}
