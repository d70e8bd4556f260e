// Package builtins implements the host-provided callables pre-bound in
// the global environment, per spec.md §4.G: I/O, collections,
// introspection, class-construction helpers, and version identification.
// Each file groups one concern's entries, mirroring the teacher's own
// std package split (std/math.go, std/io.go, std/collections-style
// files) — one []entry table per file, appended to a shared list that a
// single Register function binds, rather than the teacher's per-package init()-side-effect
// registration, since this language has no import-time package
// registry distinct from the resolver's own built-in-module mechanism.
package builtins

import "github.com/nyxlang/nyx/values"

// entry pairs a builtin's name with its implementation, matching the
// teacher's {Name, Callback} shape one-for-one.
type entry struct {
	name string
	fn   values.BuiltinFunc
}

// all is assembled by the per-concern files' init() calls appending to
// it; Register binds every entry into env as a *values.Builtin.
var all []entry

func add(name string, fn values.BuiltinFunc) {
	all = append(all, entry{name: name, fn: fn})
}

// Register defines every built-in into e, matching §4.G's "pre-bound in
// the global environment" contract. Called once, on the interpreter's
// global environment, before a program runs.
func Register(e values.Environment) {
	for _, ent := range all {
		e.Define(ent.name, &values.Builtin{Name: ent.name, Fn: ent.fn})
	}
}
