package lexicon

import (
	"fmt"
	"maps"
	"slices"

	"lexdfa/regex"
)

var builtins = map[string]func() *Lexicon{
	"json": JSON,
	"calc": Calc,
}

// Builtin returns a fresh copy of the named built-in lexicon.
func Builtin(name string) (*Lexicon, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownLexicon, name, BuiltinNames())
	}
	return f(), nil
}

func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}

var (
	digit        = regex.Range('0', '9')
	nonZeroDigit = regex.Range('1', '9')
	letter       = regex.Alt(regex.Range('a', 'z'), regex.Range('A', 'Z'))
	hexDigit     = regex.Alt(digit, regex.Range('a', 'f'), regex.Range('A', 'F'))
	whitespace   = regex.Plus(regex.AnyOf(" \t\r\n"))
)

// JSON tokenizes RFC 8259 text. Strings accept any byte except control
// characters, the quote and the backslash, plus the standard escapes.
func JSON() *Lexicon {
	digits := regex.Plus(digit)
	integer := regex.Seq(
		regex.Optional(regex.Atom{Char: '-'}),
		regex.Alt(regex.Atom{Char: '0'}, regex.Seq(nonZeroDigit, regex.Star{Expr: digit})),
	)
	fraction := regex.Optional(regex.Seq(regex.Atom{Char: '.'}, digits))
	exponent := regex.Optional(regex.Seq(regex.AnyOf("eE"), regex.Optional(regex.AnyOf("+-")), digits))

	var plain []byte
	for c := 0x20; c < 0x100; c++ {
		if c != '"' && c != '\\' {
			plain = append(plain, byte(c))
		}
	}
	escape := regex.Seq(regex.Atom{Char: '\\'}, regex.Alt(
		regex.AnyOf(`"\/bfnrt`),
		regex.Seq(regex.Atom{Char: 'u'}, hexDigit, hexDigit, hexDigit, hexDigit),
	))
	str := regex.Seq(
		regex.Atom{Char: '"'},
		regex.Star{Expr: regex.Alt(regex.AnyOf(string(plain)), escape)},
		regex.Atom{Char: '"'},
	)

	return MustNew("json",
		Rule{Name: "COMMA", Expr: regex.Literal(",")},
		Rule{Name: "COLON", Expr: regex.Literal(":")},
		Rule{Name: "LEFT_CURLY", Expr: regex.Literal("{")},
		Rule{Name: "RIGHT_CURLY", Expr: regex.Literal("}")},
		Rule{Name: "LEFT_SQUARE", Expr: regex.Literal("[")},
		Rule{Name: "RIGHT_SQUARE", Expr: regex.Literal("]")},
		Rule{Name: "NUMBER", Expr: regex.Seq(integer, fraction, exponent)},
		Rule{Name: "STRING", Expr: str},
		Rule{Name: "TRUE", Expr: regex.Literal("true")},
		Rule{Name: "FALSE", Expr: regex.Literal("false")},
		Rule{Name: "NULL", Expr: regex.Literal("null")},
		Rule{Name: "WHITESPACE", Expr: whitespace, Elide: true},
	)
}

// Calc tokenizes the assignment language of the calc interpreter.
func Calc() *Lexicon {
	identStart := regex.Alt(letter, regex.Atom{Char: '_'})
	return MustNew("calc",
		Rule{Name: "Comment", Expr: regex.Seq(regex.Literal("//"), regex.Star{Expr: regex.NoneOf("\n")}), Elide: true},
		Rule{Name: "Ident", Expr: regex.Seq(identStart, regex.Star{Expr: regex.Alt(identStart, digit)})},
		Rule{Name: "Int", Expr: regex.Plus(digit)},
		Rule{Name: "Punct", Expr: regex.AnyOf("=+-;()")},
		Rule{Name: "Whitespace", Expr: whitespace, Elide: true},
	)
}
