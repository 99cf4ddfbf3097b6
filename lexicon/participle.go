package lexicon

import (
	"fmt"
	"io"
	"sort"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"lexdfa/automaton"
)

var _ plexer.Definition = (*Lexer)(nil)

// Symbols implements participle's lexer.Definition. Rule i has token type
// i+1.
func (lx *Lexer) Symbols() map[string]plexer.TokenType {
	syms := map[string]plexer.TokenType{"EOF": plexer.EOF}
	for i, name := range lx.names {
		syms[name] = plexer.TokenType(i + 1)
	}
	return syms
}

// Lex implements participle's lexer.Definition.
func (lx *Lexer) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return lx.LexString(filename, string(data))
}

func (lx *Lexer) LexString(filename string, input string) (plexer.Lexer, error) {
	return &participleLexer{
		filename: filename,
		lines:    newLineIndex(input),
		size:     len(input),
		tok:      lx.Tokenize(input),
	}, nil
}

type participleLexer struct {
	filename string
	lines    lineIndex
	size     int
	tok      *automaton.Tokenizer
}

func (p *participleLexer) Next() (plexer.Token, error) {
	tok, err := p.tok.Next()
	switch {
	case err == io.EOF:
		return plexer.Token{Type: plexer.EOF, Pos: p.position(p.size)}, nil
	case err != nil:
		return plexer.Token{}, fmt.Errorf("%s: %w", p.filename, err)
	}
	return plexer.Token{
		Type:  plexer.TokenType(tok.Tag.Priority + 1),
		Value: tok.Lexeme,
		Pos:   p.position(tok.Offset),
	}, nil
}

func (p *participleLexer) position(offset int) plexer.Position {
	line, col := p.lines.position(offset)
	return plexer.Position{Filename: p.filename, Offset: offset, Line: line, Column: col}
}

// lineIndex holds the offset at which every line starts.
type lineIndex []int

func newLineIndex(input string) lineIndex {
	lines := lineIndex{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// position returns the 1-based line and byte column of offset.
func (l lineIndex) position(offset int) (line, col int) {
	i := sort.Search(len(l), func(i int) bool { return l[i] > offset })
	return i, offset - l[i-1] + 1
}
