// Package stream implements the cursor over an input sequence that the
// matcher combinators backtrack over: a position plus a stack of lexical
// scopes, and a record of the furthest match failure seen across every
// backtracked attempt. The input sequence is initially the characters of
// a grammar source file; once a MatchList descends into a nested
// sub-sequence, it becomes that sub-sequence instead — the same Stream
// type serves both the Parser pass (over characters) and the
// CodeGenerator pass (over AST lists), per spec §2.
package stream

import (
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// Runner is the contract every matcher combinator node implements: try to
// match starting at the Stream's current position, returning a deferred
// Action on success.
type Runner interface {
	Run(s *Stream) (*action.Action, error)
}

// RuleTable resolves a fully-qualified "Namespace.rule" name to its root
// matcher. internal/registry implements this; Stream depends only on the
// interface so the two packages don't import each other.
type RuleTable interface {
	Lookup(name string) (Runner, bool)
}

// Stream is a cursor over items, with a scope stack for Bind/Scope and a
// furthest-error record for diagnostics.
type Stream struct {
	items  value.List
	index  int
	scopes []action.Scope
	rules  RuleTable

	furthest         *MatchError
	suppressFurthest bool
}

// New creates a Stream over items, ready to run a root rule looked up
// through rules. The scope stack starts empty: every rule body compiles
// to a Scope(And(...)) (see internal/grammar), so a scope is always
// pushed before the first Action is constructed, keeping the invariant in
// spec §3 ("the scope stack is non-empty whenever an Action is produced")
// without needing a synthetic base scope here.
func New(items value.List, rules RuleTable) *Stream {
	return &Stream{items: items, rules: rules}
}

// State is an opaque snapshot produced by Save and consumed by Restore.
type State struct {
	items  value.List
	scopes []action.Scope
	index  int
}

// Save snapshots the current items, index, and a deep copy of the scope
// stack. Every backtracking combinator (Or, Star, Not) brackets its
// attempt with Save/Restore.
func (s *Stream) Save() State {
	scopes := make([]action.Scope, len(s.scopes))
	for i, sc := range s.scopes {
		scopes[i] = maps.Clone(sc)
	}
	return State{items: s.items, scopes: scopes, index: s.index}
}

// Restore resets the Stream to a previously captured State.
func (s *Stream) Restore(st State) {
	s.items = st.items
	s.scopes = st.scopes
	s.index = st.index
}

// PushScope pushes a fresh, empty top scope.
func (s *Stream) PushScope() {
	s.scopes = append(s.scopes, action.Scope{})
}

// PopScope pops and returns the top scope. Callers (Scope's matcher) must
// call this on every exit path, including failure.
func (s *Stream) PopScope() action.Scope {
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return top
}

// Bind stores act under name in the top scope and returns it unchanged.
func (s *Stream) Bind(name string, act *action.Action) *action.Action {
	s.scopes[len(s.scopes)-1][name] = act
	return act
}

// Action wraps fn as an Action tied to the current top scope.
func (s *Stream) Action(fn action.Fn) *action.Action {
	return action.New(s.scopes[len(s.scopes)-1], fn)
}

// Match succeeds if the item at the cursor satisfies pred; on success it
// advances the cursor and returns an Action that evaluates to the matched
// item. On failure it raises the furthest MatchError via Error.
func (s *Stream) Match(pred func(value.Value) bool, description string) (*action.Action, error) {
	if s.index < len(s.items) {
		item := s.items[s.index]
		if pred(item) {
			s.index++
			return s.Action(func(self *action.Action) (value.Value, error) {
				return item, nil
			}), nil
		}
	}
	return nil, s.Error(fmt.Sprintf("expected %s", description))
}

// MatchList descends into the sequence at the cursor: if the item there
// is itself a List, the outer (items, index) is saved, the Stream is
// reset to the sub-sequence, inner runs, and on every exit path (success,
// failure, or panic) the outer stream is restored with its index advanced
// by one. Fails if the cursor is not currently on a List.
func (s *Stream) MatchList(inner func(*Stream) (*action.Action, error)) (*action.Action, error) {
	if s.index >= len(s.items) {
		return nil, s.Error("no list found")
	}
	sub, ok := value.IsList(s.items[s.index])
	if !ok {
		return nil, s.Error("no list found")
	}

	outerItems, outerIndex := s.items, s.index
	s.items = sub
	s.index = 0
	defer func() {
		s.items = outerItems
		s.index = outerIndex + 1
	}()
	return inner(s)
}

// MatchRule looks up the fully-qualified name in the rule table and runs
// it. Used by MatchRule matcher nodes, whose target is known at
// generation time.
func (s *Stream) MatchRule(name string) (*action.Action, error) {
	rule, ok := s.rules.Lookup(name)
	if !ok {
		return nil, s.Error(fmt.Sprintf("unknown rule %q", name))
	}
	return rule.Run(s)
}

// MatchCallRule reads a string at the cursor, advances past it, and
// dispatches to "<namespace>.<that string>" in the rule table. Used by
// the CodeGenerator pass to dispatch on an AST node's constructor tag.
func (s *Stream) MatchCallRule(namespace string) (*action.Action, error) {
	if s.index >= len(s.items) {
		return nil, s.Error("expected rule name")
	}
	tag, ok := s.items[s.index].(string)
	if !ok {
		return nil, s.Error("expected rule name")
	}
	name := namespace + "." + tag
	rule, ok := s.rules.Lookup(name)
	if !ok {
		return nil, s.Error(fmt.Sprintf("unknown rule %q", name))
	}
	s.index++
	return rule.Run(s)
}

// Error updates the furthest-error record iff the current index is
// strictly greater than the furthest index seen so far (ties favor the
// earlier error), unless error recording is currently suppressed by a Not
// in progress, then returns the furthest error as a Go error. The
// returned error is always the furthest one on record, not necessarily
// the one just reported — this is what makes property 6 (furthest-error
// reporting) hold even when a later, shallower alternative is the one
// that ultimately fails the whole match.
func (s *Stream) Error(msg string) error {
	if !s.suppressFurthest {
		if s.furthest == nil || s.index > s.furthest.Index {
			s.furthest = &MatchError{Message: msg, Items: s.items, Index: s.index}
		}
	}
	if s.furthest != nil {
		return s.furthest
	}
	return &MatchError{Message: msg, Items: s.items, Index: s.index}
}

// SuppressErrors runs fn with furthest-error recording turned off,
// restoring the previous suppression state afterwards (so nested Not
// expressions compose correctly).
func (s *Stream) SuppressErrors(fn func() error) error {
	prev := s.suppressFurthest
	s.suppressFurthest = true
	defer func() { s.suppressFurthest = prev }()
	return fn()
}

// FurthestError returns the deepest failure observed so far, or nil if
// none has been recorded.
func (s *Stream) FurthestError() *MatchError {
	return s.furthest
}
