// Package interp is the tree-walking evaluator: it executes an AST
// against a lexical environment chain, threading control-flow results
// (return/break/continue/throw) and enforcing the runtime's allocation,
// step, and call-depth quotas.
package interp

import (
	"fmt"
	"io"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/values"
	"github.com/nyxlang/nyx/vm"
)

// Control identifies how a statement or block finished: normal fallthrough
// or one of the four propagating signals. It replaces the reference C
// implementation's setjmp/longjmp exception mechanism with an explicit
// result tag — Throw is the one addition beyond the original's
// CTRL_NONE/RETURN/BREAK/CONTINUE set.
type Control int

const (
	CtrlNone Control = iota
	CtrlReturn
	CtrlBreak
	CtrlContinue
	CtrlThrow
)

// EvalResult is what every statement (and block) evaluates to: a value
// plus the control signal governing how it propagates.
type EvalResult struct {
	Value   values.Value
	Control Control
}

func none(v values.Value) EvalResult { return EvalResult{Value: v, Control: CtrlNone} }

// RuntimeError is a fatal error during evaluation, carrying the source
// position it occurred at.
type RuntimeError struct {
	Pos ast.Pos
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime error at %d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

func rerr(pos ast.Pos, format string, args ...interface{}) error {
	return &RuntimeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Quota bounds one of the runtime guards. A non-positive Limit disables
// the guard entirely, matching the reference implementation's
// g_max_* <= 0 convention.
type Quota struct {
	Limit int64
	count int64
}

func (q *Quota) tick(pos ast.Pos, what string) error {
	if q.Limit <= 0 {
		return nil
	}
	q.count++
	if q.count > q.Limit {
		return rerr(pos, "%s exceeded", what)
	}
	return nil
}

// DebugHook is invoked before every statement when debugging is enabled.
// It returns an error only to abort execution (e.g. on "quit").
type DebugHook interface {
	BeforeStatement(stmt ast.Stmt, e *env.Environment, sourceFile string) error
}

// Interpreter holds the quotas, optional debugger hook, builtin
// registry, and I/O streams shared across an entire run (including
// nested function calls).
type Interpreter struct {
	Global     *env.Environment
	AllocQuota Quota
	StepQuota  Quota
	CallQuota  Quota
	callDepth  int64
	Debug      DebugHook
	Stdout     io.Writer
	Argv       []string

	// VM, when non-nil, routes expression evaluation through the
	// bytecode engine first; expression forms outside its supported
	// subset still run through the tree-walking evalExpr path (or, in
	// VM.Strict mode, are a fatal error). Left nil, the interpreter
	// never touches the VM package at all.
	VM *vm.Engine
}

// New creates an Interpreter with a fresh global environment. Quotas
// default to disabled (0); callers set AllocQuota.Limit etc. before
// running to enable them. Built-ins are not pre-registered here — the
// builtins package binds them into Global, matching §4.G's "pre-bound
// in the global environment" contract.
func New(stdout io.Writer) *Interpreter {
	return &Interpreter{
		Global: env.New(nil),
		Stdout: stdout,
	}
}

// Call implements values.Caller, letting builtins (new, class_call0..2,
// ...) invoke functions, builtins, and bound methods uniformly.
func (it *Interpreter) Call(callee values.Value, args []values.Value) (values.Value, error) {
	return it.callValue(ast.Pos{}, callee, args)
}

// RunProgram executes a fully resolved (imports inlined) top-level
// block in the interpreter's global environment.
func (it *Interpreter) RunProgram(block *ast.Block, sourceFile string) (values.Value, error) {
	return it.run(block, sourceFile, false)
}

// RunTopLevel is RunProgram with the top-level expression auto-print
// feature enabled (SPEC_FULL.md §4's extension of the code generator's
// "top-level expression statements whose value is non-null are
// printed" behavior to the tree interpreter). cmd/nyx uses this;
// RunProgram (no auto-print) stays the entry point embedding tools and
// tests use to run a block as a pure value-producing computation.
func (it *Interpreter) RunTopLevel(block *ast.Block, sourceFile string) (values.Value, error) {
	return it.run(block, sourceFile, true)
}

func (it *Interpreter) run(block *ast.Block, sourceFile string, topLevel bool) (values.Value, error) {
	result, err := it.execBlockOpt(block, it.Global, sourceFile, topLevel)
	if err != nil {
		return nil, err
	}
	switch result.Control {
	case CtrlReturn:
		return nil, fmt.Errorf("Runtime error: return outside function")
	case CtrlBreak, CtrlContinue:
		return nil, fmt.Errorf("Runtime error: break/continue outside loop")
	case CtrlThrow:
		return nil, fmt.Errorf("Runtime error: uncaught exception: %s", describeValue(result.Value))
	default:
		return result.Value, nil
	}
}

func describeValue(v values.Value) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(values.String); ok {
		return s.Value
	}
	return v.Type()
}
