// Package values defines the tagged value union shared by the tree
// interpreter, the expression VM, and the built-ins: null, int, bool,
// string, array, object (with a kind tag), function, builtin, and
// bound-method.
package values

import (
	"fmt"
	"strings"

	"github.com/nyxlang/nyx/ast"
)

// Value is the common interface implemented by every runtime value.
// Scalars and strings are plain Go values (copied by value); arrays and
// objects are pointers so that assignment shares the same underlying
// container, matching the language's reference semantics for compound
// types.
type Value interface {
	Type() string
}

// Environment is the subset of env.Environment that a Function needs to
// capture its defining scope. It lives here, not in env, so that this
// package never has to import env — env imports values instead, and the
// concrete *env.Environment satisfies this interface. This mirrors the
// teacher's own split of objects.FunctionInterface from the function
// package to avoid the same cycle.
type Environment interface {
	Define(name string, v Value)
	Assign(name string, v Value) error
	Lookup(name string) (Value, bool)
}

// Null is the language's singleton null value.
type Null struct{}

func (Null) Type() string { return "null" }

// Int is a 64-bit signed integer.
type Int struct{ Value int64 }

func (Int) Type() string { return "int" }

// Bool is a boolean.
type Bool struct{ Value bool }

func (Bool) Type() string { return "bool" }

// String is an owned byte sequence, treated as ASCII text.
type String struct{ Value string }

func (String) Type() string { return "string" }

// Array is an ordered, mutable, reference-identity sequence of values.
type Array struct {
	Elements []Value
}

func NewArray(elems []Value) *Array { return &Array{Elements: elems} }
func (*Array) Type() string         { return "array" }

// Kind tags what role an Object plays, which controls member-access and
// bound-method semantics (see Object.Get).
type Kind int

const (
	KindPlain Kind = iota
	KindModule
	KindClass
	KindInstance
)

// Object is an ordered map from string key to value, with a kind tag.
// Keys preserve insertion order; setting an existing key overwrites its
// value in place without moving it, matching the object-literal
// last-writer-wins invariant.
type Object struct {
	Kind  Kind
	Keys  []string
	slots map[string]Value
}

func NewObject(kind Kind) *Object {
	return &Object{Kind: kind, slots: make(map[string]Value)}
}

func (*Object) Type() string { return "object" }

// GetOwn looks up key only on this object, ignoring __class__ fallback.
func (o *Object) GetOwn(key string) (Value, bool) {
	v, ok := o.slots[key]
	return v, ok
}

// Set defines or overwrites key, appending it to Keys the first time.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.slots[key]; !ok {
		o.Keys = append(o.Keys, key)
	}
	o.slots[key] = v
}

// Get resolves a member access against the object's kind rules: plain
// and instance objects wrap a callable member in a bound method
// (prepending the receiver on call); module and class objects return
// the callable unbound. Instance lookup falls through to the object's
// __class__ member if the key is not found locally.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.GetOwn(key)
	if !ok && o.Kind == KindInstance {
		if classVal, ok2 := o.GetOwn("__class__"); ok2 {
			if class, ok3 := classVal.(*Object); ok3 {
				v, ok = class.GetOwn(key)
			}
		}
	}
	if !ok {
		return nil, false
	}
	if isCallable(v) && (o.Kind == KindPlain || o.Kind == KindInstance) {
		return &BoundMethod{Receiver: o, Callable: v}, true
	}
	return v, true
}

func isCallable(v Value) bool {
	switch v.(type) {
	case *Function, *Builtin:
		return true
	default:
		return false
	}
}

// Function is a user-defined callable: its parameter names, body, the
// environment captured at definition time (for closures), and the path
// of the file it was defined in (used to resolve relative read/write
// paths).
type Function struct {
	Name       string
	Params     []string
	Body       *ast.Block
	Env        Environment
	SourceFile string
}

func (*Function) Type() string { return "function" }

// Caller lets a builtin invoke another callable value (a function,
// builtin, or bound method) back through the interpreter — needed for
// the constructor protocol (`new`) and the class_call0..2 /
// class_instantiate0..2 dispatch helpers. Mirrors the teacher's
// std.Runtime.CallFunction callback interface.
type Caller interface {
	Call(callee Value, args []Value) (Value, error)
}

// CallContext carries everything a builtin needs beyond its arguments:
// a Caller to invoke other values, the source-file path of whichever
// script is currently executing (read/write resolve paths relative to
// it), and the program's own argv.
type CallContext struct {
	Caller     Caller
	SourceFile string
	Argv       []string
}

// BuiltinFunc is the Go implementation behind a Builtin value.
type BuiltinFunc func(ctx *CallContext, args []Value) (Value, error)

// Builtin is a host-provided callable identified by name; equality
// between two builtins is by name.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (*Builtin) Type() string { return "builtin" }

// BoundMethod pairs a receiver object with the callable (Function or
// Builtin) looked up on it; calling it prepends Receiver to the
// argument list.
type BoundMethod struct {
	Receiver *Object
	Callable Value
}

func (*BoundMethod) Type() string { return "bound-method" }

// Truthy implements the language's truthiness rule: null and false are
// falsy, integer 0 is falsy, empty string/array are falsy; everything
// else (including every object, function, and bound method) is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Null:
		return false
	case Bool:
		return x.Value
	case Int:
		return x.Value != 0
	case String:
		return x.Value != ""
	case *Array:
		return len(x.Elements) != 0
	default:
		return true
	}
}

// Equal implements the language's `==`: structural for scalars and
// strings, identity for arrays and objects, by-name for builtins, and
// by-pair (same receiver identity, same underlying callable) for bound
// methods. Comparing values of different kinds is always false.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x.Value == y.Value
	case Int:
		y, ok := b.(Int)
		return ok && x.Value == y.Value
	case String:
		y, ok := b.(String)
		return ok && x.Value == y.Value
	case *Array:
		y, ok := b.(*Array)
		return ok && x == y
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	case *Function:
		y, ok := b.(*Function)
		return ok && x == y
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x.Name == y.Name
	case *BoundMethod:
		y, ok := b.(*BoundMethod)
		return ok && x.Receiver == y.Receiver && Equal(x.Callable, y.Callable)
	default:
		return false
	}
}

// Thrown is the error-channel carrier for a language-level `throw` that
// needs to cross a function-call boundary. evalExpr/evalCall only
// return (value, error) — there is no way to carry an interpreter
// Control tag across an expression boundary — so callFunction returns a
// *Thrown instead of a fatal error when a called function's body ends
// in a throw control result. Because Thrown is an ordinary error, it
// propagates unchanged through every intervening call frame exactly
// like the reference implementation's setjmp/longjmp unwind (cy.c's
// call_function pushes no exception frame of its own); execTry is the
// one place that type-asserts for it and turns it back into a catch,
// regardless of how many function calls separated the throw from its
// try.
type Thrown struct {
	Value Value
}

func (t *Thrown) Error() string {
	return fmt.Sprintf("Runtime error: uncaught exception: %s", describeThrown(t.Value))
}

func describeThrown(v Value) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(String); ok {
		return s.Value
	}
	return v.Type()
}

// TypeName returns the language-level type name used by `type`/
// `type_of`, matching §4.G's enumerated set exactly.
func TypeName(v Value) string { return v.Type() }

// PrintRepr is the recursive rendering `print` (and the top-level
// auto-print feature) uses: unlike Stringify/str(), which renders every
// container as its bracketed type tag, PrintRepr walks arrays and
// objects and renders their elements, matching the reference
// implementation's value_print_inline (distinct from its
// value_to_string, which backs str()).
func PrintRepr(v Value) string {
	switch x := v.(type) {
	case *Array:
		parts := make([]string, len(x.Elements))
		for i, el := range x.Elements {
			parts[i] = PrintRepr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Object:
		parts := make([]string, len(x.Keys))
		for i, k := range x.Keys {
			v, _ := x.GetOwn(k)
			parts[i] = fmt.Sprintf("%s: %s", k, PrintRepr(v))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case String:
		return x.Value
	default:
		return Stringify(v)
	}
}

// Stringify is the canonical value-to-string conversion used by `str`
// (and by PrintRepr, which `print` and the top-level auto-print use, for
// every non-container value): numbers and booleans render plainly, null
// renders as "null", and containers render as their bracketed type tag
// rather than their contents.
func Stringify(v Value) string {
	switch x := v.(type) {
	case Null:
		return "null"
	case Bool:
		if x.Value {
			return "true"
		}
		return "false"
	case Int:
		return fmt.Sprintf("%d", x.Value)
	case String:
		return x.Value
	case *Array:
		return "[array]"
	case *Object:
		return "[object]"
	case *Function:
		return fmt.Sprintf("<function %s>", x.Name)
	case *Builtin:
		return fmt.Sprintf("<builtin %s>", x.Name)
	case *BoundMethod:
		return fmt.Sprintf("<bound-method %s>", Stringify(x.Callable))
	default:
		return "?"
	}
}
