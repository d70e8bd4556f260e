package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyx/values"
)

func TestDefineAndLookup(t *testing.T) {
	e := New(nil)
	e.Define("x", values.Int{Value: 1})
	v, ok := e.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, values.Int{Value: 1}, v)
}

func TestLookupWalksParentChain(t *testing.T) {
	parent := New(nil)
	parent.Define("x", values.Int{Value: 1})
	child := New(parent)
	v, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, values.Int{Value: 1}, v)
}

func TestAssignMutatesOwningFrame(t *testing.T) {
	parent := New(nil)
	parent.Define("x", values.Int{Value: 1})
	child := New(parent)
	require.NoError(t, child.Assign("x", values.Int{Value: 2}))
	v, _ := parent.Lookup("x")
	assert.Equal(t, values.Int{Value: 2}, v)
	_, ok := child.vars["x"]
	assert.False(t, ok)
}

func TestAssignUndefinedIsError(t *testing.T) {
	e := New(nil)
	err := e.Assign("missing", values.Null{})
	assert.Error(t, err)
}

func TestShadowingDefinesLocally(t *testing.T) {
	parent := New(nil)
	parent.Define("x", values.Int{Value: 1})
	child := New(parent)
	child.Define("x", values.Int{Value: 2})
	v, _ := child.Lookup("x")
	assert.Equal(t, values.Int{Value: 2}, v)
	parentV, _ := parent.Lookup("x")
	assert.Equal(t, values.Int{Value: 1}, parentV)
}
