package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyx/builtins"
	"github.com/nyxlang/nyx/parser"
	"github.com/nyxlang/nyx/values"
	"github.com/nyxlang/nyx/vm"
)

func run(t *testing.T, src string) (string, values.Value) {
	t.Helper()
	block, err := parser.ParseProgram(src)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	builtins.Stdout = &buf
	builtins.Register(it.Global)
	v, err := it.RunProgram(block, "<test>")
	require.NoError(t, err)
	return buf.String(), v
}

func TestClosureExampleValue(t *testing.T) {
	out, _ := run(t, `fn mk(n) { fn inc() { return n; } return inc; } let f = mk(7); print(f());`)
	assert.Equal(t, "7\n", out)
}

func TestClassAndInstanceExample(t *testing.T) {
	out, _ := run(t, `class C { fn init(self, x) { self.x = x; } fn get(self) { return self.x; } } let c = new(C, 10); print(c.get());`)
	assert.Equal(t, "10\n", out)
}

func TestWhileLoopBreakContinue(t *testing.T) {
	out, _ := run(t, `
let i = 0;
let sum = 0;
while (i < 10) {
	i = i + 1;
	if (i == 5) { continue; }
	if (i > 8) { break; }
	sum = sum + i;
}
print(sum);
`)
	assert.Equal(t, "31\n", out)
}

func TestForInArrayTwoVariable(t *testing.T) {
	out, _ := run(t, `for (i, v in [10, 20, 30]) { print(i, v); }`)
	assert.Equal(t, "0 10\n1 20\n2 30\n", out)
}

func TestForInObjectSingleVariable(t *testing.T) {
	out, _ := run(t, `let o = { b: 2, a: 1 }; for (k in o) { print(k); }`)
	assert.Equal(t, "b\na\n", out)
}

func TestArrayComprehensionResultViaPrint(t *testing.T) {
	out, _ := run(t, `let r = [x * 2 for x in [1, 2, 3, 4] if x > 2]; print(r[0], r[1]);`)
	assert.Equal(t, "6 8\n", out)
}

func TestTryCatchUnwindsToHandler(t *testing.T) {
	out, _ := run(t, `
try {
	throw "boom";
	print("unreached");
} catch (e) {
	print(e);
}
`)
	assert.Equal(t, "boom\n", out)
}

func TestTryCatchCatchesThrowAcrossCallBoundary(t *testing.T) {
	out, _ := run(t, `
fn f() { throw "boom"; }
try {
	f();
	print("unreached");
} catch (e) {
	print(e);
}
`)
	assert.Equal(t, "boom\n", out)
}

func TestTryCatchCatchesThrowAcrossNestedCallBoundary(t *testing.T) {
	out, _ := run(t, `
fn inner() { throw "deep"; }
fn outer() { return inner(); }
try {
	outer();
} catch (e) {
	print(e);
}
`)
	assert.Equal(t, "deep\n", out)
}

func TestArrayIndexReadOutOfRangeYieldsNull(t *testing.T) {
	out, _ := run(t, `let a = [1, 2, 3]; print(a[999]);`)
	assert.Equal(t, "null\n", out)
}

func TestUncaughtThrowIsFatal(t *testing.T) {
	block, err := parser.ParseProgram(`throw 1;`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	_, err = it.RunProgram(block, "<test>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uncaught exception")
}

func TestUncaughtThrowAcrossCallBoundaryIsFatal(t *testing.T) {
	block, err := parser.ParseProgram(`fn f() { throw "boom"; } f();`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	_, err = it.RunProgram(block, "<test>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uncaught exception")
}

func TestBreakOutsideLoopIsFatal(t *testing.T) {
	block, err := parser.ParseProgram(`break;`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	_, err = it.RunProgram(block, "<test>")
	require.Error(t, err)
}

func TestSwitchDefaultFallback(t *testing.T) {
	out, _ := run(t, `switch (3) { case 1: { print("one"); } default: { print("other"); } }`)
	assert.Equal(t, "other\n", out)
}

func TestTopLevelExpressionAutoPrint(t *testing.T) {
	block, err := parser.ParseProgram(`1 + 2;`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	result, err := it.execBlockOpt(block, it.Global, "<test>", true)
	require.NoError(t, err)
	assert.Equal(t, "3\n", buf.String())
	assert.Equal(t, values.Int{Value: 3}, result.Value)
}

func TestStepQuotaExceeded(t *testing.T) {
	block, err := parser.ParseProgram(`let a = 1; let b = 2; let c = 3;`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	it.StepQuota.Limit = 2
	_, err = it.RunProgram(block, "<test>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max step count")
}

func TestCallDepthQuotaExceeded(t *testing.T) {
	block, err := parser.ParseProgram(`fn f(n) { return f(n + 1); } let x = f(0);`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	it.CallQuota.Limit = 5
	_, err = it.RunProgram(block, "<test>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call depth")
}

func TestCoalesceOperator(t *testing.T) {
	out, _ := run(t, `let x = null; print(x ?? 5); let y = 0; print(y ?? 5);`)
	assert.Equal(t, "5\n0\n", out)
}

func TestEqualityIdentityForArrays(t *testing.T) {
	out, _ := run(t, `let a = [1]; let b = [1]; print(a == b); print(a == a);`)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestExpressionVMProducesSameResultAsTreeWalker(t *testing.T) {
	block, err := parser.ParseProgram(`let x = 3; print(x * (2 + 5));`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	builtins.Stdout = &buf
	builtins.Register(it.Global)
	it.VM = vm.NewEngine(false)
	_, err = it.RunProgram(block, "<test>")
	require.NoError(t, err)
	assert.Equal(t, "21\n", buf.String())
}

func TestExpressionVMHandlesClassInstanceCallChain(t *testing.T) {
	// Member access, bound-method wrapping, and calls all go through
	// the VM's DOT_GET/CALL opcodes here; since both paths share the
	// same values.Object.Get, the VM must produce the identical result
	// as the tree walker for a class/instance program.
	block, err := parser.ParseProgram(`class C { fn init(self, x) { self.x = x; } fn get(self) { return self.x; } } let c = new(C, 4); print(c.get());`)
	require.NoError(t, err)
	var buf bytes.Buffer
	it := New(&buf)
	builtins.Stdout = &buf
	builtins.Register(it.Global)
	it.VM = vm.NewEngine(false)
	_, err = it.RunProgram(block, "<test>")
	require.NoError(t, err)
	assert.Equal(t, "4\n", buf.String())
}
