package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyx/parser"
)

func generateSrc(t *testing.T, src string) string {
	t.Helper()
	block, err := parser.ParseProgram(src)
	require.NoError(t, err)
	out, err := Generate(block)
	require.NoError(t, err)
	return out
}

func TestGenerateEmitsRuntimeAndEntryPoint(t *testing.T) {
	out := generateSrc(t, `let x = 1 + 2; print(x);`)
	assert.Contains(t, out, "nyx_add(")
	assert.Contains(t, out, "int main(int argc, char **argv)")
	assert.Contains(t, out, "nyx_call_builtin(\"print\"")
	assert.Contains(t, out, "nyx_auto_print(")
}

func TestGenerateFunctionGetsForwardPrototypeAndDispatchCase(t *testing.T) {
	out := generateSrc(t, `
fn add(a, b) {
    return a + b;
}
print(add(1, 2));
`)
	assert.Contains(t, out, "static NyxValue fn_add(NyxValue *args, int argc);")
	assert.Contains(t, out, `strcmp(name, "add") == 0`)
	assert.Contains(t, out, "nyx_dispatch_user(\"add\", (NyxValue[]){nyx_int(1LL), nyx_int(2LL)}, 2)")
	assert.Contains(t, out, "g_call_depth++")
}

func TestGenerateNestedFunctionIsHoistedGlobally(t *testing.T) {
	out := generateSrc(t, `
fn outer(n) {
    fn inner(m) {
        return m;
    }
    return inner(n);
}
`)
	assert.Contains(t, out, "static NyxValue fn_inner(NyxValue *args, int argc)")
	assert.Contains(t, out, "static NyxValue fn_outer(NyxValue *args, int argc)")
}

func TestGenerateDuplicateFunctionNameIsFatal(t *testing.T) {
	block, err := parser.ParseProgram(`
fn f() { return 1; }
fn f() { return 2; }
`)
	require.NoError(t, err)
	_, err = Generate(block)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate function name")
}

func TestGenerateClassBuildsObjectAndMethodTable(t *testing.T) {
	out := generateSrc(t, `
class Counter {
    fn init(self, start) {
        self.n = start;
    }
    fn bump(self) {
        self.n = self.n + 1;
        return self.n;
    }
}
let c = new(Counter, 0);
print(c.bump());
`)
	assert.Contains(t, out, "nyx_object_new_kind(OBJ_CLASS)")
	assert.Contains(t, out, `nyx_object_set(`)
	assert.Contains(t, out, "nyx_construct(")
	assert.Contains(t, out, "nyx_member_get(")
}

func TestGenerateForInOverArrayBindsSingleAndTwoVariableForms(t *testing.T) {
	out := generateSrc(t, `
let total = 0;
for (v in [1, 2, 3]) {
    total = total + v;
}
for (i, v in [1, 2, 3]) {
    total = total + i;
}
`)
	assert.Contains(t, out, "VAL_ARRAY")
	assert.Contains(t, out, "array_val->items[")
	assert.Contains(t, out, "nyx_int(")
}

func TestGenerateForInOverObjectUsesObjectEntries(t *testing.T) {
	out := generateSrc(t, `
for (k, v in {a: 1, b: 2}) {
    print(k);
    print(v);
}
`)
	assert.Contains(t, out, "VAL_OBJECT")
	assert.Contains(t, out, "object_val->items[")
}

func TestGenerateSwitchLowersToIfElseChain(t *testing.T) {
	out := generateSrc(t, `
let x = 2;
switch (x) {
    case 1: {
        print("one");
    }
    case 2: {
        print("two");
    }
    default: {
        print("other");
    }
}
`)
	assert.Contains(t, out, "nyx_equal(")
	assert.Contains(t, out, "else {")
}

func TestGenerateTryCatchUsesSetjmp(t *testing.T) {
	out := generateSrc(t, `
try {
    throw "boom";
} catch (e) {
    print(e);
}
`)
	assert.Contains(t, out, "setjmp(")
	assert.Contains(t, out, "nyx_throw(")
	assert.Contains(t, out, "g_exc_top")
}

func TestGenerateArrayComprehensionCapturesFreeVariables(t *testing.T) {
	out := generateSrc(t, `
let factor = 10;
let xs = [n * factor for n in [1, 2, 3] if n > 1];
print(xs);
`)
	assert.Contains(t, out, "nyx_eval_comp(")
	assert.Contains(t, out, "nyx_object_literal(1, (const char*[]){\"factor\"}")
	assert.Contains(t, out, "static NyxValue nyx_eval_comp(int comp_id, NyxValue __cy_env)")
	assert.Contains(t, out, "nyx_bi_push(")
}

func TestGenerateEagerAndOrUsesBitwiseCombination(t *testing.T) {
	out := generateSrc(t, `let ok = true && false;`)
	assert.Contains(t, out, "nyx_bool(nyx_truthy(")
	assert.True(t, strings.Contains(out, ") & nyx_truthy("))
}

func TestGenerateUndefinedIdentifierIsFatal(t *testing.T) {
	block, err := parser.ParseProgram(`print(doesNotExist);`)
	require.NoError(t, err)
	_, err = Generate(block)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined identifier")
}
