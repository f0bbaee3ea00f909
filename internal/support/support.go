// Package support embeds a small standalone runtime (package
// rlmetasupport) using the same technique 32bitkid-pigeon's
// vm/static_code.go uses to ship its parser runtime as a single string
// constant with `//+pigeon: file.go`-style section markers. Here the
// markers are `//+rlmeta: file.go`, one per section: value.go, runtime.go,
// action.go and stream.go, mirroring internal/value, internal/rtenv,
// internal/action and internal/stream. Source has no section for
// internal/match or internal/registry, and code emitted by the
// CodeGenerator refers to this module's internal packages rather than to
// rlmetasupport. The markers are a grouping aid for readers of Source;
// --support writes the whole constant verbatim.
package support

import (
	"strings"
)

// Source is the full embedded runtime, grouped into sections the same way
// vm/static_code.go groups its staticCode constant.
const Source = `
//+rlmeta: value.go

package rlmetasupport

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is anything that can flow through a Stream, an Action, or a
// Runtime: a single character, a string, a List, or a Callable builtin.
type Value any

// List is an ordered, tagged-or-untagged sequence of values.
type List []Value

// Callable is a builtin or user-constructed function reachable through
// Runtime.Lookup.
type Callable func(args []Value) (Value, error)

func isList(v Value) (List, bool) {
	l, ok := v.(List)
	return l, ok
}

func concat(lists []Value) List {
	var out List
	for _, l := range lists {
		inner, _ := isList(l)
		out = append(out, inner...)
	}
	return out
}

func splice(depth int, item Value) List {
	if depth == 0 {
		return List{item}
	}
	l, _ := isList(item)
	parts := make([]Value, len(l))
	for i, sub := range l {
		parts[i] = splice(depth-1, sub)
	}
	return concat(parts)
}

func join(items Value, delimiter string) string {
	l, ok := isList(items)
	if !ok {
		return fmt.Sprint(items)
	}
	parts := make([]string, len(l))
	for i, item := range l {
		if _, ok := isList(item); ok {
			parts[i] = join(item, delimiter)
		} else {
			parts[i] = fmt.Sprint(item)
		}
	}
	return strings.Join(parts, delimiter)
}

func repr(v Value) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case rune:
		return strconv.QuoteRune(x)
	case List:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = repr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return strconv.Quote(fmt.Sprint(x))
	}
}

//+rlmeta: runtime.go

type runtime struct {
	vars map[string]Value
}

func newRuntime() *runtime {
	rt := &runtime{vars: map[string]Value{}}
	rt.vars["indentprefix"] = "    "
	return rt
}

func (rt *runtime) bind(name string, val Value) *runtime {
	next := make(map[string]Value, len(rt.vars)+1)
	for k, v := range rt.vars {
		next[k] = v
	}
	next[name] = val
	return &runtime{vars: next}
}

func (rt *runtime) lookup(name string) (Value, error) {
	v, ok := rt.vars[name]
	if !ok {
		return nil, fmt.Errorf("rlmetasupport: undefined name %q", name)
	}
	return v, nil
}

//+rlmeta: action.go

type scope map[string]*action

type actionFn func(self *action) (Value, error)

type action struct {
	scope   scope
	fn      actionFn
	runtime *runtime
}

func newAction(sc scope, fn actionFn) *action {
	return &action{scope: sc, fn: fn}
}

func (a *action) eval(rt *runtime) (Value, error) {
	a.runtime = rt
	return a.fn(a)
}

func (a *action) lookup(name string) (Value, error) {
	if bound, ok := a.scope[name]; ok {
		return bound.eval(a.runtime)
	}
	return a.runtime.lookup(name)
}

//+rlmeta: stream.go

type matchError struct {
	message string
	items   List
	index   int
}

func (e *matchError) Error() string { return e.message }

type stream struct {
	items            List
	index            int
	scopes           []scope
	furthest         *matchError
	suppressFurthest bool
}

func newStream(items List) *stream {
	return &stream{items: items}
}

func (s *stream) pushScope() { s.scopes = append(s.scopes, scope{}) }

func (s *stream) popScope() scope {
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return top
}

func (s *stream) action(fn actionFn) *action {
	return newAction(s.scopes[len(s.scopes)-1], fn)
}

func (s *stream) match(pred func(Value) bool, description string) (*action, error) {
	if s.index < len(s.items) {
		item := s.items[s.index]
		if pred(item) {
			s.index++
			return s.action(func(self *action) (Value, error) { return item, nil }), nil
		}
	}
	return nil, s.fail(fmt.Sprintf("expected %s", description))
}

func (s *stream) fail(msg string) error {
	if !s.suppressFurthest {
		if s.furthest == nil || s.index > s.furthest.index {
			s.furthest = &matchError{message: msg, items: s.items, index: s.index}
		}
	}
	if s.furthest != nil {
		return s.furthest
	}
	return &matchError{message: msg, items: s.items, index: s.index}
}
`

// Names returns every section name present in Source, in declaration order.
// It exists mainly so tests and documentation can enumerate the sections
// without hand-copying the marker list.
func Names() []string {
	var names []string
	for _, line := range strings.Split(Source, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "//+rlmeta: ") {
			names = append(names, strings.TrimPrefix(line, "//+rlmeta: "))
		}
	}
	return names
}
