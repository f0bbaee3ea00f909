package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/match"
	"github.com/rickardlindberg/rlmeta/internal/rtenv"
	"github.com/rickardlindberg/rlmeta/internal/stream"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

type emptyTable struct{}

func (emptyTable) Lookup(string) (stream.Runner, bool) { return nil, false }

func items(s string) value.List {
	out := make(value.List, 0, len(s))
	for _, ch := range s {
		out = append(out, ch)
	}
	return out
}

func run(t *testing.T, m match.Matcher, input string) (value.Value, error) {
	t.Helper()
	s := stream.New(items(input), emptyTable{})
	act, err := match.ScopeOf(m).Run(s)
	if err != nil {
		return nil, err
	}
	return act.Eval(rtenv.New())
}

func TestOrTriesAlternativesInOrder(t *testing.T) {
	m := match.OrOf(match.Eq('a'), match.Eq('b'))

	got, err := run(t, m, "b")
	require.NoError(t, err)
	assert.Equal(t, 'b', got)

	_, err = run(t, m, "c")
	assert.Error(t, err)
}

func TestOrStopsAtFirstMatch(t *testing.T) {
	// On "<=" both alternatives match; the first one listed wins, so only
	// '<' is consumed and returned. Tried the other way round, '=' would be.
	m := match.OrOf(
		match.AndOf(match.Eq('<')),
		match.AndOf(match.Eq('<'), match.Eq('=')),
	)
	got, err := run(t, m, "<=")
	require.NoError(t, err)
	assert.Equal(t, '<', got)
}

func TestAndRequiresFullSequence(t *testing.T) {
	m := match.AndOf(match.Eq('a'), match.Eq('b'))
	_, err := run(t, m, "ac")
	assert.Error(t, err)

	got, err := run(t, m, "ab")
	require.NoError(t, err)
	assert.Equal(t, 'b', got)
}

func TestStarIsGreedyAndCollectsAll(t *testing.T) {
	m := match.BindOf("xs", match.StarOf(match.Eq('a')))
	s := stream.New(items("aaab"), emptyTable{})
	s.PushScope()
	act, err := match.ScopeOf(m).Run(s)
	require.NoError(t, err)
	got, err := act.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, value.List{'a', 'a', 'a'}, got)
}

func TestStarAcceptsZeroMatches(t *testing.T) {
	got, err := run(t, match.StarOf(match.Eq('z')), "abc")
	require.NoError(t, err)
	list, ok := value.IsList(got)
	require.True(t, ok)
	assert.Len(t, list, 0)
}

func TestNotIsZeroWidthAndNeutral(t *testing.T) {
	m := match.AndOf(match.NotOf(match.Eq('b')), match.Eq('a'))
	got, err := run(t, m, "a")
	require.NoError(t, err)
	assert.Equal(t, 'a', got)
}

func TestNotFailsWhenInnerMatches(t *testing.T) {
	_, err := run(t, match.NotOf(match.Eq('a')), "a")
	assert.Error(t, err)
}

func TestNotSuppressesFurthestError(t *testing.T) {
	s := stream.New(items("ab"), emptyTable{})
	s.PushScope()
	// The lookahead body consumes 'a' and then fails at index 1; that
	// failure happens under suppression and must not be recorded.
	_, err := match.NotOf(match.AndOf(match.Eq('a'), match.Eq('x'))).Run(s)
	assert.NoError(t, err)
	assert.Nil(t, s.FurthestError())
}

func TestBindMakesResultVisibleByName(t *testing.T) {
	m := match.ScopeOf(match.AndOf(
		match.BindOf("x", match.Eq('a')),
		match.ActOf(func(self *action.Action) (value.Value, error) {
			return self.Lookup("x")
		}),
	))
	got, err := run(t, m, "a")
	require.NoError(t, err)
	assert.Equal(t, 'a', got)
}

func TestScopeIsolatesBindings(t *testing.T) {
	inner := match.ScopeOf(match.BindOf("x", match.Eq('a')))
	outer := match.AndOf(inner, match.ActOf(func(self *action.Action) (value.Value, error) {
		_, err := self.Lookup("x")
		return nil, err
	}))
	_, err := run(t, outer, "a")
	assert.Error(t, err, "x was bound inside a nested Scope and should not leak out")
}

func TestCharRangeBounds(t *testing.T) {
	m := match.CharRange('a', 'c')
	_, err := run(t, m, "b")
	assert.NoError(t, err)
	_, err = run(t, m, "d")
	assert.Error(t, err)
}

func TestAnyMatchesEveryItem(t *testing.T) {
	_, err := run(t, match.Any(), "x")
	assert.NoError(t, err)
}

func TestMatchListRecurses(t *testing.T) {
	s := stream.New(value.List{value.List{'a'}}, emptyTable{})
	s.PushScope()
	act, err := match.ListOf(match.Eq('a')).Run(s)
	require.NoError(t, err)
	got, err := act.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, 'a', got)
}
