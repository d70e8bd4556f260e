package interp

import (
	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/values"
)

func (it *Interpreter) evalCall(n *ast.CallExpr, e *env.Environment, sourceFile string) (values.Value, error) {
	callee, err := it.evalExpr(n.Callee, e, sourceFile)
	if err != nil {
		return nil, err
	}
	args := make([]values.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := it.evalExpr(a, e, sourceFile)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return it.callValueCtx(n.Pos(), callee, args, sourceFile)
}

// callValue is the values.Caller entry point used by builtins; it has
// no source-file context of its own, so read/write-style builtins that
// need one must capture it at registration time instead.
func (it *Interpreter) callValue(pos ast.Pos, callee values.Value, args []values.Value) (values.Value, error) {
	return it.callValueCtx(pos, callee, args, "")
}

func (it *Interpreter) callValueCtx(pos ast.Pos, callee values.Value, args []values.Value, sourceFile string) (values.Value, error) {
	switch fn := callee.(type) {
	case *values.Function:
		return it.callFunction(pos, fn, args)
	case *values.Builtin:
		ctx := &values.CallContext{Caller: it, SourceFile: sourceFile, Argv: it.Argv}
		return fn.Fn(ctx, args)
	case *values.BoundMethod:
		full := append([]values.Value{fn.Receiver}, args...)
		return it.callValueCtx(pos, fn.Callable, full, sourceFile)
	default:
		return nil, rerr(pos, "attempted to call a non-callable value of type %s", callee.Type())
	}
}

// callFunction implements the function-call protocol from §4.E: arity
// check, a fresh environment parented on the closure, parameter
// binding, body evaluation, and return-value unwrapping. Call depth is
// tracked for the whole call, not just the body, so that deep native
// recursion through builtins back into user code is still bounded.
func (it *Interpreter) callFunction(pos ast.Pos, fn *values.Function, args []values.Value) (values.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, rerr(pos, "wrong number of arguments: expected %d, got %d", len(fn.Params), len(args))
	}
	it.callDepth++
	defer func() { it.callDepth-- }()
	if it.CallQuota.Limit > 0 && it.callDepth > it.CallQuota.Limit {
		return nil, rerr(pos, "max call depth exceeded")
	}

	parent, _ := fn.Env.(*env.Environment)
	callEnv := env.New(parent)
	for i, p := range fn.Params {
		callEnv.Define(p, args[i])
	}

	result, err := it.execBlock(fn.Body, callEnv, fn.SourceFile)
	if err != nil {
		return nil, err
	}
	switch result.Control {
	case CtrlReturn:
		return result.Value, nil
	case CtrlBreak, CtrlContinue:
		return nil, rerr(pos, "break/continue not allowed outside loops")
	case CtrlThrow:
		// Crosses the call boundary as an error so a try/catch in the
		// caller (at any depth) can still catch it — see values.Thrown.
		return nil, &values.Thrown{Value: result.Value}
	default:
		return values.Null{}, nil
	}
}
