package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/stream"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

type fakeRule struct {
	run func(s *stream.Stream) (*action.Action, error)
}

func (f fakeRule) Run(s *stream.Stream) (*action.Action, error) { return f.run(s) }

type fakeTable map[string]stream.Runner

func (t fakeTable) Lookup(name string) (stream.Runner, bool) {
	r, ok := t[name]
	return r, ok
}

func isRune(r rune) func(value.Value) bool {
	return func(v value.Value) bool {
		got, ok := v.(rune)
		return ok && got == r
	}
}

func items(s string) value.List {
	out := make(value.List, 0, len(s))
	for _, ch := range s {
		out = append(out, ch)
	}
	return out
}

func TestMatchAdvancesOnSuccess(t *testing.T) {
	s := stream.New(items("ab"), fakeTable{})
	s.PushScope()
	act, err := s.Match(isRune('a'), "'a'")
	require.NoError(t, err)
	got, err := act.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, 'a', got)
}

func TestMatchFailsWithoutAdvancing(t *testing.T) {
	s := stream.New(items("ab"), fakeTable{})
	s.PushScope()
	state := s.Save()
	_, err := s.Match(isRune('z'), "'z'")
	assert.Error(t, err)
	s.Restore(state)
	_, err = s.Match(isRune('a'), "'a'")
	assert.NoError(t, err)
}

func TestSaveRestoreRoundTripsScopes(t *testing.T) {
	s := stream.New(items("a"), fakeTable{})
	s.PushScope()
	act, err := s.Match(isRune('a'), "'a'")
	require.NoError(t, err)
	s.Bind("x", act)
	state := s.Save()

	s.PopScope()
	s.PushScope()
	s.Bind("x", s.Action(func(self *action.Action) (value.Value, error) { return "different", nil }))

	s.Restore(state)
	bound := s.PopScope()
	got, err := bound["x"].Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, 'a', got)
}

func TestMatchListDescendsAndRestores(t *testing.T) {
	outer := value.List{value.List{'a', 'b'}, 'c'}
	s := stream.New(outer, fakeTable{})
	s.PushScope()

	act, err := s.MatchList(func(sub *stream.Stream) (*action.Action, error) {
		return sub.Match(isRune('a'), "'a'")
	})
	require.NoError(t, err)
	got, err := act.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, 'a', got)

	// cursor should have advanced past the sub-list, not into it
	_, err = s.Match(isRune('c'), "'c'")
	assert.NoError(t, err)
}

func TestMatchListFailsOnNonList(t *testing.T) {
	s := stream.New(items("a"), fakeTable{})
	s.PushScope()
	_, err := s.MatchList(func(sub *stream.Stream) (*action.Action, error) {
		return sub.Match(isRune('a'), "'a'")
	})
	assert.Error(t, err)
}

func TestMatchRuleDispatchesByName(t *testing.T) {
	table := fakeTable{
		"Ns.a": fakeRule{run: func(s *stream.Stream) (*action.Action, error) {
			return s.Match(isRune('a'), "'a'")
		}},
	}
	s := stream.New(items("a"), table)
	s.PushScope()
	act, err := s.MatchRule("Ns.a")
	require.NoError(t, err)
	got, err := act.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, 'a', got)
}

func TestMatchCallRuleDispatchesOnTagValue(t *testing.T) {
	table := fakeTable{
		"Ns.Foo": fakeRule{run: func(s *stream.Stream) (*action.Action, error) {
			return s.Action(func(self *action.Action) (value.Value, error) { return "handled", nil }), nil
		}},
	}
	s := stream.New(value.List{"Foo", 1, 2}, table)
	s.PushScope()
	act, err := s.MatchCallRule("Ns")
	require.NoError(t, err)
	got, err := act.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, "handled", got)
}

func TestErrorTracksFurthestIndex(t *testing.T) {
	s := stream.New(items("abc"), fakeTable{})
	s.PushScope()

	_, _ = s.Match(isRune('a'), "'a'")
	_, _ = s.Match(isRune('x'), "'x'") // fails at index 1, records furthest

	state := s.Save()
	_, _ = s.Match(isRune('b'), "'b'") // succeeds, advances to index 2
	_, _ = s.Match(isRune('x'), "'x'") // fails at index 2, now the furthest
	s.Restore(state)

	assert.Equal(t, 2, s.FurthestError().Index)
}

func TestErrorTiesFavorEarlierError(t *testing.T) {
	s := stream.New(items("ab"), fakeTable{})
	s.PushScope()

	_ = s.Error("first")
	_ = s.Error("second")

	assert.Equal(t, "first", s.FurthestError().Message)
}

func TestSuppressErrorsHidesFailuresFromFurthest(t *testing.T) {
	s := stream.New(items("ab"), fakeTable{})
	s.PushScope()

	_, _ = s.Match(isRune('a'), "'a'")
	err := s.SuppressErrors(func() error {
		_, err := s.Match(isRune('z'), "'z'")
		return err
	})
	assert.Error(t, err)
	assert.Nil(t, s.FurthestError())
}
