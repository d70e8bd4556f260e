package builtins

import "fmt"

// argErrorf and typeErrorf produce the "contextual message" §4.G
// requires when a built-in's arity or argument-kind constraint is
// violated. Builtins are fatal on misuse (not catchable `throw`s), so
// these are plain errors surfaced the same way interp.RuntimeError is.
func argErrorf(name string, format string, args ...interface{}) error {
	return fmt.Errorf("Runtime error: %s: %s", name, fmt.Sprintf(format, args...))
}

func wantArgs(name string, want int, got int) error {
	return argErrorf(name, "expected %d argument(s), got %d", want, got)
}

func wantArgsRange(name string, min, max, got int) error {
	return argErrorf(name, "expected %d to %d arguments, got %d", min, max, got)
}
