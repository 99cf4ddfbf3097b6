package regex

import (
	"fmt"
	"strings"
)

// Format renders e in conventional regex notation: '|' for union, '*' for
// star and "#" for the empty string. Metacharacters are escaped.
func Format(e Expr) string {
	var b strings.Builder
	format(&b, e, precUnion)
	return b.String()
}

const (
	precUnion = iota
	precConcat
	precStar
)

func format(b *strings.Builder, e Expr, ctx int) {
	switch e := e.(type) {
	case Empty:
		b.WriteByte('#')
	case Atom:
		b.WriteString(escapeChar(e.Char))
	case Concat:
		if len(e.Exprs) == 1 {
			format(b, e.Exprs[0], ctx)
			return
		}
		group(b, ctx > precConcat, func() {
			for _, sub := range e.Exprs {
				format(b, sub, precConcat)
			}
		})
	case Union:
		if len(e.Exprs) == 0 {
			b.WriteString("∅")
			return
		}
		if len(e.Exprs) == 1 {
			format(b, e.Exprs[0], ctx)
			return
		}
		group(b, ctx > precUnion, func() {
			for i, sub := range e.Exprs {
				if i > 0 {
					b.WriteByte('|')
				}
				format(b, sub, precUnion)
			}
		})
	case Star:
		format(b, e.Expr, precStar)
		b.WriteByte('*')
	default:
		b.WriteString("?")
	}
}

func group(b *strings.Builder, paren bool, body func()) {
	if paren {
		b.WriteByte('(')
	}
	body()
	if paren {
		b.WriteByte(')')
	}
}

func escapeChar(c byte) string {
	switch c {
	case '*', '+', '?', '|', '(', ')', '[', ']', '{', '}', '.', '#', '\\':
		return "\\" + string(c)
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if c < 0x20 || c >= 0x7f {
		return fmt.Sprintf(`\x%02x`, c)
	}
	return string(c)
}
