package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthiness(t *testing.T) {
	assert.False(t, Truthy(Null{}))
	assert.False(t, Truthy(Bool{Value: false}))
	assert.True(t, Truthy(Bool{Value: true}))
	assert.False(t, Truthy(Int{Value: 0}))
	assert.True(t, Truthy(Int{Value: -1}))
	assert.False(t, Truthy(String{Value: ""}))
	assert.True(t, Truthy(String{Value: "a"}))
	assert.False(t, Truthy(NewArray(nil)))
	assert.True(t, Truthy(NewArray([]Value{Int{Value: 0}})))
	assert.True(t, Truthy(NewObject(KindPlain)))
}

func TestScalarEqualityIsStructural(t *testing.T) {
	assert.True(t, Equal(Int{Value: 1}, Int{Value: 1}))
	assert.False(t, Equal(Int{Value: 1}, Int{Value: 2}))
	assert.True(t, Equal(String{Value: "a"}, String{Value: "a"}))
	assert.True(t, Equal(Null{}, Null{}))
}

func TestArrayAndObjectEqualityIsIdentity(t *testing.T) {
	a := NewArray([]Value{Int{Value: 1}})
	b := NewArray([]Value{Int{Value: 1}})
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, a))

	o1 := NewObject(KindPlain)
	o2 := NewObject(KindPlain)
	assert.False(t, Equal(o1, o2))
	assert.True(t, Equal(o1, o1))
}

func TestBuiltinEqualityIsByName(t *testing.T) {
	a := &Builtin{Name: "len"}
	b := &Builtin{Name: "len"}
	assert.True(t, Equal(a, b))
	c := &Builtin{Name: "abs"}
	assert.False(t, Equal(a, c))
}

func TestObjectSetPreservesOrderAndOverwritesInPlace(t *testing.T) {
	o := NewObject(KindPlain)
	o.Set("a", Int{Value: 1})
	o.Set("b", Int{Value: 2})
	o.Set("a", Int{Value: 3})
	assert.Equal(t, []string{"a", "b"}, o.Keys)
	v, _ := o.GetOwn("a")
	assert.Equal(t, Int{Value: 3}, v)
}

func TestInstanceMemberFallsThroughToClass(t *testing.T) {
	class := NewObject(KindClass)
	class.Set("get", &Builtin{Name: "stub"})
	instance := NewObject(KindInstance)
	instance.Set("__class__", class)

	v, ok := instance.Get("get")
	require := assert.New(t)
	require.True(ok)
	bound, ok := v.(*BoundMethod)
	require.True(ok)
	require.Equal(instance, bound.Receiver)
}

func TestModuleMemberIsUnbound(t *testing.T) {
	mod := NewObject(KindModule)
	fn := &Builtin{Name: "f"}
	mod.Set("f", fn)
	v, ok := mod.Get("f")
	assert.True(t, ok)
	assert.Same(t, fn, v)
}
