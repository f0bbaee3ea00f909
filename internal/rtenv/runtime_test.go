package rtenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardlindberg/rlmeta/internal/rtenv"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

func TestBindIsFunctional(t *testing.T) {
	base := rtenv.New()
	extended := base.Bind("x", "1")

	_, err := base.Lookup("x")
	assert.Error(t, err, "base Runtime must not observe a later Bind")

	got, err := extended.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestBuiltins(t *testing.T) {
	rt := rtenv.New()

	cases := []struct {
		name string
		args []value.Value
		want value.Value
	}{
		{"len", []value.Value{value.List{1, 2, 3}}, 3},
		{"repr", []value.Value{"a"}, `"a"`},
		{"join", []value.Value{value.List{"a", "b"}}, "ab"},
		{"indent", []value.Value{"x\ny\n", "- "}, "- x\n- y\n"},
		{"concat", []value.Value{value.List{value.List{1}, value.List{2}}}, value.List{1, 2}},
		{"splice", []value.Value{0, "a"}, value.List{"a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn, err := rt.Lookup(tc.name)
			require.NoError(t, err)
			callable, ok := fn.(value.Callable)
			require.True(t, ok)
			got, err := callable(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLabelCounterIncrements(t *testing.T) {
	counter := rtenv.NewCounter()
	first, err := counter(nil)
	require.NoError(t, err)
	second, err := counter(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestMustPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		rtenv.Must(nil, assert.AnError)
	})
	assert.NotPanics(t, func() {
		got := rtenv.Must("ok", nil)
		assert.Equal(t, "ok", got)
	})
}
