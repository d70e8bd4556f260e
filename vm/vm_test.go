package vm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyx/ast"
	"github.com/nyxlang/nyx/env"
	"github.com/nyxlang/nyx/parser"
	"github.com/nyxlang/nyx/values"
)

func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	block, err := parser.ParseProgram(src)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)
	stmt, ok := block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	return stmt.X
}

type noopComp struct{}

func (noopComp) EvalArrayComp(*ast.ArrayComp, values.Environment) (values.Value, error) {
	return values.NewArray(nil), nil
}

func failFallback(expr ast.Expr, e values.Environment) (values.Value, error) {
	return nil, fmt.Errorf("fallback should not run for this expression")
}

type fakeCaller struct{}

func (fakeCaller) Call(callee values.Value, args []values.Value) (values.Value, error) {
	b, ok := callee.(*values.Builtin)
	if !ok {
		return nil, fmt.Errorf("not callable")
	}
	return b.Fn(&values.CallContext{Caller: fakeCaller{}}, args)
}

func TestArithmeticPrecedenceViaVM(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	v, err := eng.Eval(exprOf(t, "1 + 2 * 3;"), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.Int{Value: 7}, v)
}

func TestStringConcatViaVM(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	v, err := eng.Eval(exprOf(t, `"a" + "b";`), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.String{Value: "ab"}, v)
}

func TestAndOrAreNotShortCircuitingInVM(t *testing.T) {
	// Unlike the tree interpreter, the VM's AND/OR compile both operands
	// before combining them -- both sides of the expression below get
	// evaluated regardless of the left operand's truthiness.
	eng := NewEngine(false)
	e := env.New(nil)
	e.Define("x", values.Int{Value: 0})
	called := false
	e.Define("mark", &values.Builtin{Name: "mark", Fn: func(ctx *values.CallContext, args []values.Value) (values.Value, error) {
		called = true
		return values.Bool{Value: true}, nil
	}})
	v, err := eng.Eval(exprOf(t, "x && mark();"), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.Bool{Value: false}, v)
	assert.True(t, called, "right operand is evaluated even though x is falsy")
}

func TestArrayAndIndexViaVM(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	v, err := eng.Eval(exprOf(t, "[10, 20, 30][1];"), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.Int{Value: 20}, v)
}

func TestObjectLiteralAndMemberViaVM(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	v, err := eng.Eval(exprOf(t, `{a: 1, b: 2}.b;`), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.Int{Value: 2}, v)
}

func TestCoalesceViaVM(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	e.Define("x", values.Null{})
	v, err := eng.Eval(exprOf(t, "x ?? 5;"), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.Int{Value: 5}, v)
}

func TestCallViaVM(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	e.Define("double", &values.Builtin{Name: "double", Fn: func(ctx *values.CallContext, args []values.Value) (values.Value, error) {
		return values.Int{Value: args[0].(values.Int).Value * 2}, nil
	}})
	v, err := eng.Eval(exprOf(t, "double(21);"), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.Int{Value: 42}, v)
}

func TestArrayCompDelegatesToEvaluator(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	v, err := eng.Eval(exprOf(t, "[x for x in [1, 2, 3]];"), e, fakeCaller{}, noopComp{}, failFallback)
	require.NoError(t, err)
	assert.Equal(t, values.NewArray(nil), v)
}

func TestBytecodeIsCachedByNodeIdentity(t *testing.T) {
	eng := NewEngine(false)
	expr := exprOf(t, "1 + 2;")
	first := eng.bytecodeFor(expr)
	second := eng.bytecodeFor(expr)
	assert.Same(t, first, second)
}

func TestUnsupportedExpressionFallsBackInLenientMode(t *testing.T) {
	eng := NewEngine(false)
	e := env.New(nil)
	called := false
	fallback := func(expr ast.Expr, e values.Environment) (values.Value, error) {
		called = true
		return values.Int{Value: 99}, nil
	}
	// A call whose argument is itself unsupported (object literal keyed by
	// a nested call using an unsupported operator) would be contrived; use
	// a directly-unsupported node instead: a raw ArrayComp in strict mode
	// is supported, so to exercise the fallback path we feed an expression
	// kind not in the VM's switch via a bare Ident standing in for an
	// unreachable AST node is awkward -- assert via a class/instance
	// member chain is always supported too. Instead, assert the trivial
	// unsupported case: Supported() false forces fallback.
	fakeUnsupported := &unsupportedExpr{ast.NewIdent(ast.Pos{Line: 1, Col: 1}, "x")}
	v, err := eng.Eval(fakeUnsupported, e, fakeCaller{}, noopComp{}, fallback)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, values.Int{Value: 99}, v)
}

// unsupportedExpr wraps a real Expr but is a distinct type, so
// Supported's type switch never matches it -- used only to exercise the
// VM's lenient-mode fallback path in isolation.
type unsupportedExpr struct{ ast.Expr }

func TestUnsupportedExpressionIsFatalInStrictMode(t *testing.T) {
	eng := NewEngine(true)
	e := env.New(nil)
	fakeUnsupported := &unsupportedExpr{ast.NewIdent(ast.Pos{Line: 1, Col: 1}, "x")}
	_, err := eng.Eval(fakeUnsupported, e, fakeCaller{}, noopComp{}, failFallback)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict VM mode")
}
