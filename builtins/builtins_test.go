package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyx/values"
)

type fakeEnv struct{ vars map[string]values.Value }

func newFakeEnv() *fakeEnv { return &fakeEnv{vars: map[string]values.Value{}} }
func (f *fakeEnv) Define(name string, v values.Value)    { f.vars[name] = v }
func (f *fakeEnv) Assign(name string, v values.Value) error {
	f.vars[name] = v
	return nil
}
func (f *fakeEnv) Lookup(name string) (values.Value, bool) { v, ok := f.vars[name]; return v, ok }

func call(t *testing.T, name string, args ...values.Value) values.Value {
	t.Helper()
	e := newFakeEnv()
	Register(e)
	fn, ok := e.vars[name].(*values.Builtin)
	require.True(t, ok, "no such builtin: %s", name)
	v, err := fn.Fn(&values.CallContext{}, args)
	require.NoError(t, err)
	return v
}

func TestLenAcrossKinds(t *testing.T) {
	assert.Equal(t, values.Int{Value: 3}, call(t, "len", values.String{Value: "abc"}))
	assert.Equal(t, values.Int{Value: 2}, call(t, "len", values.NewArray([]values.Value{values.Int{Value: 1}, values.Int{Value: 2}})))
}

func TestRangeLengthAndSum(t *testing.T) {
	for _, n := range []int64{0, 1, 5, 10} {
		arr := call(t, "range", values.Int{Value: n}).(*values.Array)
		assert.Equal(t, int(n), len(arr.Elements))
		sum := call(t, "sum", arr).(values.Int).Value
		assert.Equal(t, n*(n-1)/2, sum)
	}
}

func TestRangeNegativeStep(t *testing.T) {
	arr := call(t, "range", values.Int{Value: 5}, values.Int{Value: 0}, values.Int{Value: -1}).(*values.Array)
	got := make([]int64, len(arr.Elements))
	for i, v := range arr.Elements {
		got[i] = v.(values.Int).Value
	}
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, got)
}

func TestIntStrRoundTrip(t *testing.T) {
	n := values.Int{Value: 42}
	s := call(t, "str", n)
	back := call(t, "int", s)
	assert.Equal(t, n, back)
}

func TestStrScalars(t *testing.T) {
	assert.Equal(t, values.String{Value: "true"}, call(t, "str", values.Bool{Value: true}))
	assert.Equal(t, values.String{Value: "false"}, call(t, "str", values.Bool{Value: false}))
	assert.Equal(t, values.String{Value: "null"}, call(t, "str", values.Null{}))
}

func TestTypePredicatesAgreePairwise(t *testing.T) {
	scalars := []values.Value{values.Int{Value: 1}, values.Bool{Value: true}, values.String{Value: "s"}, values.Null{}}
	predicates := []string{"is_int", "is_bool", "is_string", "is_null"}
	for _, v := range scalars {
		trueCount := 0
		for _, p := range predicates {
			if call(t, p, v).(values.Bool).Value {
				trueCount++
			}
		}
		assert.Equal(t, 1, trueCount, "exactly one predicate true for %v", v)
	}
}

func TestIsFunctionCoversAllCallableKinds(t *testing.T) {
	fn := &values.Function{Name: "f"}
	builtin := &values.Builtin{Name: "b"}
	bound := &values.BoundMethod{Receiver: values.NewObject(values.KindPlain), Callable: builtin}
	for _, v := range []values.Value{fn, builtin, bound} {
		assert.True(t, call(t, "is_function", v).(values.Bool).Value)
	}
	assert.False(t, call(t, "is_function", values.Int{Value: 1}).(values.Bool).Value)
}

func TestObjectReflection(t *testing.T) {
	obj := call(t, "object_new").(*values.Object)
	call(t, "object_set", obj, values.String{Value: "a"}, values.Int{Value: 1})
	call(t, "object_set", obj, values.String{Value: "b"}, values.Int{Value: 2})
	assert.True(t, call(t, "has", obj, values.String{Value: "a"}).(values.Bool).Value)
	assert.False(t, call(t, "has", obj, values.String{Value: "z"}).(values.Bool).Value)
	keys := call(t, "keys", obj).(*values.Array)
	assert.Equal(t, []values.Value{values.String{Value: "a"}, values.String{Value: "b"}}, keys.Elements)
}

func TestClampMinMaxAbs(t *testing.T) {
	assert.Equal(t, values.Int{Value: 5}, call(t, "abs", values.Int{Value: -5}))
	assert.Equal(t, values.Int{Value: 2}, call(t, "min", values.Int{Value: 2}, values.Int{Value: 7}))
	assert.Equal(t, values.Int{Value: 7}, call(t, "max", values.Int{Value: 2}, values.Int{Value: 7}))
	assert.Equal(t, values.Int{Value: 3}, call(t, "clamp", values.Int{Value: 1}, values.Int{Value: 3}, values.Int{Value: 9}))
	assert.Equal(t, values.Int{Value: 9}, call(t, "clamp", values.Int{Value: 20}, values.Int{Value: 3}, values.Int{Value: 9}))
}

func TestArrayIdentityEquality(t *testing.T) {
	a := values.NewArray(nil)
	b := values.NewArray(nil)
	assert.False(t, values.Equal(a, b))
	assert.True(t, values.Equal(a, a))
}
