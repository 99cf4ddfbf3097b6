package calc

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"

	"lexdfa/lexicon"
)

type Program struct {
	Statements []*Statement `parser:"@@*"`
}

type Statement struct {
	Print  *Print  `parser:"@@ ';'"`
	Assign *Assign `parser:"| @@ ';'"`
}

type Print struct {
	Expr *Expr `parser:"'print' @@"`
}

type Assign struct {
	Name string `parser:"@Ident"`
	Expr *Expr  `parser:"'=' @@"`
}

type Expr struct {
	Left *Term     `parser:"@@"`
	Rest []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Op    string `parser:"@('+'|'-')"`
	Right *Term  `parser:"@@"`
}

type Term struct {
	Number *int    `parser:"@Int"`
	Ident  *string `parser:"| @Ident"`
	Group  *Expr   `parser:"| '(' @@ ')'"`
}

var parser = participle.MustBuild[Program](
	participle.Lexer(lexicon.Calc().MustCompile()),
)

func Parse(data string) (*Program, error) {
	return parser.ParseString("input", data)
}

func (p *Program) Exec(ctx *Context) error {
	for _, stmt := range p.Statements {
		if err := stmt.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Statement) Exec(ctx *Context) error {
	switch {
	case s.Assign != nil:
		val, err := s.Assign.Expr.Eval(ctx)
		if err != nil {
			return err
		}
		ctx.Env.Assign(s.Assign.Name, val)
	case s.Print != nil:
		val, err := s.Print.Expr.Eval(ctx)
		if err != nil {
			return err
		}
		if ctx.Out != nil {
			fmt.Fprintln(ctx.Out, val)
		}
	}
	return nil
}

func (e *Expr) Eval(ctx *Context) (int, error) {
	val, err := e.Left.Eval(ctx)
	if err != nil {
		return 0, err
	}
	for _, rt := range e.Rest {
		v, err := rt.Right.Eval(ctx)
		if err != nil {
			return 0, err
		}
		switch rt.Op {
		case "+":
			val += v
		case "-":
			val -= v
		}
	}
	return val, nil
}

func (t *Term) Eval(ctx *Context) (int, error) {
	switch {
	case t.Number != nil:
		return *t.Number, nil
	case t.Ident != nil:
		return ctx.Env.Lookup(*t.Ident)
	case t.Group != nil:
		return t.Group.Eval(ctx)
	}
	return 0, fmt.Errorf("invalid term")
}

// Run parses and executes src, printing to out.
func Run(src string, out io.Writer) (*Environment, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx := &Context{Env: NewEnvironment(), Out: out}
	if err := prog.Exec(ctx); err != nil {
		return ctx.Env, err
	}
	return ctx.Env, nil
}
