package lexicon

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdfa/automaton"
	"lexdfa/regex"
)

type lexeme struct {
	Name  string
	Value string
}

func lexemes(t *testing.T, lx *Lexer, input string) []lexeme {
	t.Helper()
	toks, err := lx.TokenizeAll(input)
	require.NoError(t, err, "tokenize %q", input)
	out := make([]lexeme, len(toks))
	for i, tok := range toks {
		out[i] = lexeme{tok.Tag.Name, tok.Lexeme}
	}
	return out
}

func TestJSONTokens(t *testing.T) {
	lx := JSON().MustCompile()

	input := `{"name": "lexdfa", "tags": ["a\"b", "é"],
  "n": -12.5e+3, "zero": 0, "ok": true, "no": false, "nil": null}`

	want := []lexeme{
		{"LEFT_CURLY", "{"},
		{"STRING", `"name"`}, {"COLON", ":"}, {"STRING", `"lexdfa"`}, {"COMMA", ","},
		{"STRING", `"tags"`}, {"COLON", ":"},
		{"LEFT_SQUARE", "["}, {"STRING", `"a\"b"`}, {"COMMA", ","}, {"STRING", `"é"`}, {"RIGHT_SQUARE", "]"},
		{"COMMA", ","},
		{"STRING", `"n"`}, {"COLON", ":"}, {"NUMBER", "-12.5e+3"}, {"COMMA", ","},
		{"STRING", `"zero"`}, {"COLON", ":"}, {"NUMBER", "0"}, {"COMMA", ","},
		{"STRING", `"ok"`}, {"COLON", ":"}, {"TRUE", "true"}, {"COMMA", ","},
		{"STRING", `"no"`}, {"COLON", ":"}, {"FALSE", "false"}, {"COMMA", ","},
		{"STRING", `"nil"`}, {"COLON", ":"}, {"NULL", "null"},
		{"RIGHT_CURLY", "}"},
	}
	if diff := cmp.Diff(want, lexemes(t, lx, input)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONNumbers(t *testing.T) {
	lx := JSON().MustCompile()
	for _, s := range []string{"0", "-0", "7", "10", "3.14", "1e9", "1E-9", "-2.5E+10"} {
		assert.True(t, lx.Match(s), "should match %q", s)
	}
	for _, s := range []string{"", "-", "1.", ".5", "1e", "+1"} {
		assert.False(t, lx.Match(s), "should reject %q", s)
	}
}

func TestJSONLeadingZeroSplits(t *testing.T) {
	// "01" is not a number; maximal munch stops after "0".
	lx := JSON().MustCompile()
	want := []lexeme{{"NUMBER", "0"}, {"NUMBER", "1"}}
	assert.Equal(t, want, lexemes(t, lx, "01"))
}

func TestJSONLexicalError(t *testing.T) {
	lx := JSON().MustCompile()
	toks, err := lx.TokenizeAll("[1,\n  @]")
	require.Error(t, err)

	var nv *automaton.NoViableTokenError
	require.True(t, errors.As(err, &nv))
	assert.Equal(t, 6, nv.Offset)
	assert.Equal(t, 2, nv.Line)
	assert.Equal(t, 3, nv.Column)
	assert.Equal(t, byte('@'), nv.Char)
	assert.Len(t, toks, 3)
}

func TestFirstDeclaredRuleWins(t *testing.T) {
	kw := MustNew("kw",
		Rule{Name: "IF", Expr: regex.Literal("if")},
		Rule{Name: "IDENT", Expr: regex.Plus(regex.Range('a', 'z'))},
		Rule{Name: "SPACE", Expr: regex.Literal(" "), Elide: true},
	).MustCompile()
	assert.Equal(t, []lexeme{{"IF", "if"}, {"IDENT", "iffy"}, {"IDENT", "x"}}, lexemes(t, kw, "if iffy x"))

	// Declaring the identifier rule first shadows the keyword.
	ident := MustNew("ident",
		Rule{Name: "IDENT", Expr: regex.Plus(regex.Range('a', 'z'))},
		Rule{Name: "IF", Expr: regex.Literal("if")},
	).MustCompile()
	assert.Equal(t, []lexeme{{"IDENT", "if"}}, lexemes(t, ident, "if"))
}

func TestDuplicateRule(t *testing.T) {
	_, err := New("dup",
		Rule{Name: "A", Expr: regex.Literal("a")},
		Rule{Name: "A", Expr: regex.Literal("b")},
	)
	assert.ErrorIs(t, err, ErrDuplicateRule)

	_, err = New("anon", Rule{Expr: regex.Literal("a")})
	assert.Error(t, err)
}

func TestEmptyLexicon(t *testing.T) {
	l, err := New("empty")
	require.NoError(t, err)
	_, err = l.Compile()
	assert.ErrorIs(t, err, ErrEmptyLexicon)
}

func TestInvalidRuleExpr(t *testing.T) {
	l := MustNew("bad", Rule{Name: "NOTHING", Expr: regex.Union{}})
	_, err := l.Compile()
	assert.ErrorIs(t, err, automaton.ErrInvalidOperand)
}

func TestCompileStateLimit(t *testing.T) {
	_, err := JSON().Compile(automaton.WithMaxStates(3))
	assert.ErrorIs(t, err, automaton.ErrStateLimitExceeded)
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, []string{"calc", "json"}, BuiltinNames())

	l, err := Builtin("calc")
	require.NoError(t, err)
	assert.Equal(t, "calc", l.Name())
	assert.Equal(t, []string{"Comment", "Ident", "Int", "Punct", "Whitespace"}, l.Names())

	_, err = Builtin("cobol")
	assert.ErrorIs(t, err, ErrUnknownLexicon)
}

func TestCalcElidesCommentsAndSpace(t *testing.T) {
	lx := Calc().MustCompile()
	assert.Equal(t, []string{"Comment", "Whitespace"}, lx.Elided())
	want := []lexeme{{"Ident", "x"}, {"Punct", "="}, {"Int", "42"}, {"Punct", ";"}}
	assert.Equal(t, want, lexemes(t, lx, "x = 42; // the answer\n"))
}

func TestLexiconNFA(t *testing.T) {
	n, err := Calc().NFA()
	require.NoError(t, err)
	assert.True(t, n.Match("// note"))
	assert.True(t, n.Match("abc1"))
	assert.False(t, n.Match("1abc"))

	lx := Calc().MustCompile()
	for _, in := range []string{"", "x", "42", "=", "  ", "// x", "x1y", "+-"} {
		assert.Equal(t, n.Match(in), lx.Match(in), in)
	}
}
