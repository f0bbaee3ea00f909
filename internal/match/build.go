package match

import (
	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// The constructors below exist to keep internal/grammar's rule
// definitions close to the shape of rlmeta's own generated code
// (rules['Parser.x'] = Or([Scope(And([...]))])) without the verbosity of
// spelling out a []Matcher field literal at every node.

// OrOf builds an Or combinator from its alternatives.
func OrOf(ms ...Matcher) Matcher { return Or{Matchers: ms} }

// AndOf builds an And combinator from its sequence of matchers.
func AndOf(ms ...Matcher) Matcher { return And{Matchers: ms} }

// StarOf builds a Star combinator.
func StarOf(m Matcher) Matcher { return Star{Matcher: m} }

// NotOf builds a Not combinator.
func NotOf(m Matcher) Matcher { return Not{Matcher: m} }

// ScopeOf builds a Scope combinator.
func ScopeOf(m Matcher) Matcher { return Scope{Matcher: m} }

// BindOf builds a Bind combinator.
func BindOf(name string, m Matcher) Matcher { return Bind{Name: name, Matcher: m} }

// RuleOf builds a MatchRule node for a statically-known qualified name.
func RuleOf(name string) Matcher { return MatchRule{Name: name} }

// CallRuleOf builds a MatchCallRule node that dispatches dynamically
// within namespace.
func CallRuleOf(namespace string) Matcher { return MatchCallRule{Namespace: namespace} }

// ListOf builds a MatchList node.
func ListOf(m Matcher) Matcher { return MatchList{Matcher: m} }

// ActOf builds an Action node.
func ActOf(fn action.Fn) Matcher { return Action{Fn: fn} }

// Eq builds a MatchObject matcher that succeeds for an item exactly equal
// to want, describing itself the way the original grammar's generated
// `x == <repr>` predicates do.
func Eq(want value.Value) Matcher {
	return MatchObject{
		Pred:        func(v value.Value) bool { return v == want },
		Description: value.Repr(want),
	}
}

// CharRange builds a MatchObject matcher that succeeds for a rune r with
// lo <= r <= hi.
func CharRange(lo, hi rune) Matcher {
	return MatchObject{
		Pred: func(v value.Value) bool {
			r, ok := v.(rune)
			return ok && lo <= r && r <= hi
		},
		Description: value.Repr(lo) + " <= x <= " + value.Repr(hi),
	}
}

// Any builds a MatchObject matcher that succeeds for any item at all,
// backing both the `.` grammar construct and the "read one untagged
// item" idiom used throughout the CodeGenerator rules.
func Any() Matcher {
	return MatchObject{
		Pred:        func(value.Value) bool { return true },
		Description: "any item",
	}
}
