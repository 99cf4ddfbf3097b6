package automaton

import (
	"errors"
	"io"
	"iter"
)

// Token is one lexeme recognised by a Tokenizer.
type Token struct {
	Tag    Tag
	Lexeme string
	Offset int
}

type tokenizeOptions struct {
	elide map[string]struct{}
}

// A TokenizeOption configures a Tokenizer.
type TokenizeOption func(*tokenizeOptions)

// Elide drops tokens whose resolved tag has one of the given names. They are
// still matched, so they still separate other tokens.
func Elide(names ...string) TokenizeOption {
	return func(o *tokenizeOptions) {
		if o.elide == nil {
			o.elide = make(map[string]struct{}, len(names))
		}
		for _, name := range names {
			o.elide[name] = struct{}{}
		}
	}
}

// Tokenizer splits input into tokens by maximal munch: from the current
// position it follows the DFA as far as it can, then backs up to the last
// accepting position it passed. It never skips input on its own.
//
// A Tokenizer is not safe for concurrent use, but any number of them may
// share one DFA.
type Tokenizer struct {
	dfa   *DFA
	input string
	pos   int
	err   error
	opts  tokenizeOptions
}

// Tokenize returns a Tokenizer over input. Nothing is scanned until Next.
func (d *DFA) Tokenize(input string, opts ...TokenizeOption) *Tokenizer {
	t := &Tokenizer{dfa: d, input: input}
	for _, opt := range opts {
		opt(&t.opts)
	}
	return t
}

// Next returns the next token. At the end of input it returns io.EOF. When
// no token can start at the current position it returns a
// *NoViableTokenError, and keeps returning it until Skip or Reset is called.
func (t *Tokenizer) Next() (Token, error) {
	for {
		if t.err != nil {
			return Token{}, t.err
		}
		if t.pos >= len(t.input) {
			return Token{}, io.EOF
		}
		tok, err := t.munch()
		if err != nil {
			t.err = err
			return Token{}, err
		}
		if _, ok := t.opts.elide[tok.Tag.Name]; ok && tok.Tag.Name != "" {
			continue
		}
		return tok, nil
	}
}

func (t *Tokenizer) munch() (Token, error) {
	d := t.dfa
	s := d.start
	end, last := -1, DeadState
	// Zero-length matches are never tokens; an accepting start state alone
	// does not count.
	for i := t.pos; i < len(t.input); i++ {
		if s = d.Step(s, t.input[i]); s == DeadState {
			break
		}
		if d.IsAccept(s) {
			end, last = i+1, s
		}
	}
	if end < 0 {
		return Token{}, noViableToken(t.input, t.pos)
	}
	tag, _ := d.Resolve(last)
	tok := Token{Tag: tag, Lexeme: t.input[t.pos:end], Offset: t.pos}
	t.pos = end
	return tok, nil
}

// Skip discards the byte that caused the last NoViableToken error and lets
// scanning resume after it. It does nothing when there is no pending error.
func (t *Tokenizer) Skip() {
	var nv *NoViableTokenError
	if !errors.As(t.err, &nv) {
		return
	}
	t.pos = nv.Offset + 1
	t.err = nil
}

// Reset rewinds the tokenizer to the start of its input.
func (t *Tokenizer) Reset() {
	t.pos = 0
	t.err = nil
}

// Pos returns the byte offset of the next scan.
func (t *Tokenizer) Pos() int { return t.pos }

// Tokens returns a lazy sequence of the tokens in input. Every range over the
// sequence scans from the start. A failure is yielded once, as the last pair.
func (d *DFA) Tokens(input string, opts ...TokenizeOption) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		t := d.Tokenize(input, opts...)
		for {
			tok, err := t.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// TokenizeAll collects every token of input. On failure it returns the tokens
// emitted before the error along with it.
func (d *DFA) TokenizeAll(input string, opts ...TokenizeOption) ([]Token, error) {
	var out []Token
	for tok, err := range d.Tokens(input, opts...) {
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}
