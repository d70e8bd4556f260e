// Package env implements the language's lexical environment chain: an
// ordered map from name to value plus an optional parent, used by both
// the tree interpreter and the expression VM.
package env

import (
	"fmt"

	"github.com/nyxlang/nyx/values"
)

// Environment is a single scope frame. Unlike the teacher's scope.Scope,
// it tracks no const/let-type metadata — the language has exactly one
// mutable binding form (`let`), so Consts/LetVars/LetTypes have no
// counterpart here.
type Environment struct {
	vars   map[string]values.Value
	order  []string
	parent *Environment
}

// New creates an environment with the given parent (nil for the global
// environment).
func New(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]values.Value), parent: parent}
}

// Define binds name in this environment, appending it to the
// enumeration order the first time or overwriting in place thereafter.
func (e *Environment) Define(name string, v values.Value) {
	if _, ok := e.vars[name]; !ok {
		e.order = append(e.order, name)
	}
	e.vars[name] = v
}

// Assign walks the parent chain to find an existing binding for name
// and mutates it there; it never creates a new binding.
func (e *Environment) Assign(name string, v values.Value) error {
	for frame := e; frame != nil; frame = frame.parent {
		if _, ok := frame.vars[name]; ok {
			frame.vars[name] = v
			return nil
		}
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Lookup walks the parent chain looking for name.
func (e *Environment) Lookup(name string) (values.Value, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns the names defined directly in this frame, in
// declaration order. Used by the debugger's print-variable operation
// when it needs to list what's in scope.
func (e *Environment) Names() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
