package calc

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

var ErrUndefined = errors.New("undefined variable")

// Context is what statements execute against: the variable bindings and the
// writer that print statements go to. A nil Out discards output.
type Context struct {
	Env *Environment
	Out io.Writer
}

// Environment binds calc variables to integer values. An assignment creates
// or replaces a binding; there is no declaration and no scoping.
type Environment struct {
	vars map[string]int
}

func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]int)}
}

// Lookup returns the value bound to name, or an error wrapping ErrUndefined.
func (e *Environment) Lookup(name string) (int, error) {
	v, ok := e.vars[name]
	if !ok {
		return 0, fmt.Errorf("%w %s", ErrUndefined, name)
	}
	return v, nil
}

func (e *Environment) Assign(name string, val int) {
	e.vars[name] = val
}

// Names returns the bound variables in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// String renders the bindings as "a=1 b=2", sorted by name.
func (e *Environment) String() string {
	var b strings.Builder
	for i, name := range e.Names() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", name, e.vars[name])
	}
	return b.String()
}
