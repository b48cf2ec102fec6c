package environment

import (
	"testing"

	"github.com/govox-lang/govox/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineAndGet(t *testing.T) {
	env := New(nil)
	env.Define("x", value.Number(1))
	v, err := env.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func TestGetUndefined(t *testing.T) {
	env := New(nil)
	_, err := env.Get("missing")
	assert.Error(t, err)
}

func TestDefineShadowsOuterWithoutMutatingIt(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.Number(1))
	inner := New(outer)
	inner.Define("x", value.Number(99))

	innerVal, _ := inner.Get("x")
	outerVal, _ := outer.Get("x")
	assert.Equal(t, value.Number(99), innerVal)
	assert.Equal(t, value.Number(1), outerVal)
}

func TestAssignUpdatesNearestEnclosingDefinition(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.Number(1))
	inner := New(outer)

	err := inner.Assign("x", value.Number(2))
	require.NoError(t, err)

	innerVal, _ := inner.Get("x")
	outerVal, _ := outer.Get("x")
	assert.Equal(t, value.Number(2), innerVal)
	assert.Equal(t, value.Number(2), outerVal)
}

func TestAssignUndefinedFails(t *testing.T) {
	env := New(nil)
	err := env.Assign("nope", value.Number(1))
	assert.Error(t, err)
}

func TestClosureSharesLiveFrame(t *testing.T) {
	outer := New(nil)
	outer.Define("i", value.Number(0))

	// Simulate a closure retaining a pointer to outer.
	closure := outer
	closure.Assign("i", value.Number(1))

	v, _ := outer.Get("i")
	assert.Equal(t, value.Number(1), v)
}
