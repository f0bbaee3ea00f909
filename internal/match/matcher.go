// Package match implements the PEG matcher combinators: Or, And, Star,
// Not, Bind, Scope, MatchObject, MatchList, MatchRule, MatchCallRule, and
// Action. Each is a tagged variant exposing a single Run(*stream.Stream)
// operation; failures propagate as the stream's MatchError and are caught
// only by Or, Star, and Not, per spec §4.2.
package match

import (
	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/stream"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// Matcher is the contract every combinator in this package implements; it
// is the same shape as stream.Runner, named locally so combinator
// constructors can accept and return plain Matcher values.
type Matcher interface {
	Run(s *stream.Stream) (*action.Action, error)
}

// Or tries each matcher in order, restoring to the saved state and trying
// the next on failure. The first success wins: PEG ordered choice, no
// ambiguity.
type Or struct {
	Matchers []Matcher
}

func (m Or) Run(s *stream.Stream) (*action.Action, error) {
	for _, matcher := range m.Matchers {
		state := s.Save()
		result, err := matcher.Run(s)
		if err == nil {
			return result, nil
		}
		if !isMatchError(err) {
			return nil, err
		}
		s.Restore(state)
	}
	return nil, s.Error("no or match")
}

// And evaluates each matcher left to right, returning the last Action (or
// a unit Action if empty). There is no backtracking within And; partial
// progress remains visible to an enclosing Or through its own snapshot.
type And struct {
	Matchers []Matcher
}

func (m And) Run(s *stream.Stream) (*action.Action, error) {
	result := s.Action(func(self *action.Action) (value.Value, error) { return nil, nil })
	for _, matcher := range m.Matchers {
		next, err := matcher.Run(s)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}

// Star matches m greedily and without bound, collecting Actions until m
// fails. It returns an Action that, when evaluated, evaluates each
// collected sub-Action in order against the current Runtime and yields
// their results as a value.List — evaluated lazily at Star-consumption
// time, not at match time, so bindings made by preceding actions are in
// scope.
type Star struct {
	Matcher Matcher
}

func (m Star) Run(s *stream.Stream) (*action.Action, error) {
	var results []*action.Action
	for {
		state := s.Save()
		result, err := m.Matcher.Run(s)
		if err != nil {
			if !isMatchError(err) {
				return nil, err
			}
			s.Restore(state)
			break
		}
		results = append(results, result)
	}
	return s.Action(func(self *action.Action) (value.Value, error) {
		out := make(value.List, len(results))
		for i, r := range results {
			v, err := r.Eval(self.Runtime())
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}), nil
}

// Not is a zero-width negative lookahead: it succeeds (without consuming
// input) iff m fails, and fails iff m succeeds. Error-record updates are
// suppressed for the whole speculative run of m, so a failed lookahead
// never dominates the furthest-error diagnostic.
type Not struct {
	Matcher Matcher
}

func (m Not) Run(s *stream.Stream) (*action.Action, error) {
	state := s.Save()
	var matched bool
	err := s.SuppressErrors(func() error {
		_, runErr := m.Matcher.Run(s)
		if runErr == nil {
			matched = true
			return nil
		}
		if !isMatchError(runErr) {
			return runErr
		}
		return nil
	})
	s.Restore(state)
	if err != nil {
		return nil, err
	}
	if matched {
		return nil, s.Error("not matched")
	}
	return s.Action(func(self *action.Action) (value.Value, error) { return nil, nil }), nil
}

// Bind runs m, stores its result under name in the top scope, and returns
// it unchanged.
type Bind struct {
	Name    string
	Matcher Matcher
}

func (m Bind) Run(s *stream.Stream) (*action.Action, error) {
	result, err := m.Matcher.Run(s)
	if err != nil {
		return nil, err
	}
	return s.Bind(m.Name, result), nil
}

// Scope pushes a fresh empty top scope, runs m, and pops the scope on
// every exit path (success or failure), returning m's result.
type Scope struct {
	Matcher Matcher
}

func (m Scope) Run(s *stream.Stream) (*action.Action, error) {
	s.PushScope()
	defer s.PopScope()
	return m.Matcher.Run(s)
}

// MatchObject delegates to Stream.Match: it succeeds if Pred holds for
// the item at the cursor.
type MatchObject struct {
	Pred        func(value.Value) bool
	Description string
}

func (m MatchObject) Run(s *stream.Stream) (*action.Action, error) {
	return s.Match(m.Pred, m.Description)
}

// MatchList delegates to Stream.MatchList: it descends into the
// sub-sequence at the cursor and runs Matcher against it.
type MatchList struct {
	Matcher Matcher
}

func (m MatchList) Run(s *stream.Stream) (*action.Action, error) {
	return s.MatchList(func(sub *stream.Stream) (*action.Action, error) {
		return m.Matcher.Run(sub)
	})
}

// MatchRule looks up a fully-qualified "Namespace.rule" name known at
// generation time and runs it.
type MatchRule struct {
	Name string
}

func (m MatchRule) Run(s *stream.Stream) (*action.Action, error) {
	return s.MatchRule(m.Name)
}

// MatchCallRule dispatches dynamically: it reads a name from the current
// stream position and runs "<Namespace>.<name>".
type MatchCallRule struct {
	Namespace string
}

func (m MatchCallRule) Run(s *stream.Stream) (*action.Action, error) {
	return s.MatchCallRule(m.Namespace)
}

// Action wraps a user function as an Action tied to the current top
// scope; it never itself advances the stream.
type Action struct {
	Fn action.Fn
}

func (m Action) Run(s *stream.Stream) (*action.Action, error) {
	return s.Action(m.Fn), nil
}

func isMatchError(err error) bool {
	_, ok := err.(*stream.MatchError)
	return ok
}
