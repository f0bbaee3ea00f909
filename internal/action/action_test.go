package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/rtenv"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

func TestLookupPrefersScopeOverRuntime(t *testing.T) {
	bound := action.New(action.Scope{}, func(self *action.Action) (value.Value, error) {
		return "from scope", nil
	})
	scope := action.Scope{"x": bound}
	act := action.New(scope, func(self *action.Action) (value.Value, error) {
		return self.Lookup("x")
	})

	got, err := act.Eval(rtenv.New())
	require.NoError(t, err)
	assert.Equal(t, "from scope", got)
}

func TestLookupFallsBackToRuntime(t *testing.T) {
	act := action.New(action.Scope{}, func(self *action.Action) (value.Value, error) {
		return self.Lookup("len")
	})
	got, err := act.Eval(rtenv.New())
	require.NoError(t, err)
	_, ok := got.(value.Callable)
	assert.True(t, ok)
}

func TestUnitEvaluatesToNil(t *testing.T) {
	u := action.Unit(action.Scope{})
	got, err := u.Eval(rtenv.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBindExtendsRuntimeForContinuation(t *testing.T) {
	act := action.New(action.Scope{}, func(self *action.Action) (value.Value, error) {
		return self.Bind("greeting", "hi", func() (value.Value, error) {
			return self.Lookup("greeting")
		})
	})
	got, err := act.Eval(rtenv.New())
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestCallNotCallable(t *testing.T) {
	act := action.New(action.Scope{}, func(self *action.Action) (value.Value, error) {
		return self.Call("indentprefix", nil)
	})
	_, err := act.Eval(rtenv.New())
	assert.Error(t, err)
}

func TestCallInvokesBuiltin(t *testing.T) {
	act := action.New(action.Scope{}, func(self *action.Action) (value.Value, error) {
		return self.Call("len", []value.Value{value.List{1, 2}})
	})
	got, err := act.Eval(rtenv.New())
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}
