// Package rtenv implements the dynamic Runtime environment against which
// semantic Actions are evaluated: a name -> Value mapping pre-seeded with
// the builtins every grammar's action code can call (len, repr, join,
// indent, append, concat, splice, label), plus whatever a grammar's own
// Set expressions bind along the way.
package rtenv

import (
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/rickardlindberg/rlmeta/internal/value"
)

// Runtime is an immutable-on-write name -> Value environment. Bind never
// mutates the receiver; it returns a new Runtime that shadows the given
// name, so that an Action which has already captured a Runtime pointer
// never observes a later Bind performed by a sibling Action. This matches
// the functional-update Runtime described for the pipeline stages; it is
// distinct from (and simpler than) rlmeta's own bootstrap Runtime, which
// mutates its vars map in place because nothing in that particular
// grammar depends on Runtime immutability.
type Runtime struct {
	vars map[string]value.Value
}

// DefaultIndentPrefix is the "indentprefix" runtime variable's value when
// nothing overrides it, matching the original Python's hardcoded four
// spaces.
const DefaultIndentPrefix = "    "

// New returns a Runtime pre-seeded with the builtins described in spec
// §3/§9: len, repr, join, indent, append, and the label (Counter)
// extension documented in SPEC_FULL.md. indentprefix defaults to
// DefaultIndentPrefix; use NewWithIndentPrefix to override it (e.g. from
// RLMETA_INDENT_PREFIX).
func New() *Runtime {
	rt := &Runtime{vars: map[string]value.Value{}}
	rt.vars["len"] = value.Callable(builtinLen)
	rt.vars["repr"] = value.Callable(builtinRepr)
	rt.vars["join"] = value.Callable(builtinJoin)
	rt.vars["indent"] = value.Callable(builtinIndent)
	rt.vars["append"] = value.Callable(builtinAppend)
	rt.vars["concat"] = value.Callable(builtinConcat)
	rt.vars["splice"] = value.Callable(builtinSplice)
	rt.vars["label"] = value.Callable(NewCounter())
	rt.vars["indentprefix"] = DefaultIndentPrefix
	return rt
}

// NewWithIndentPrefix is New, but with "indentprefix" seeded to prefix
// instead of DefaultIndentPrefix. An empty prefix leaves the default in
// place, so an unconfigured RLMETA_INDENT_PREFIX never changes behavior.
func NewWithIndentPrefix(prefix string) *Runtime {
	rt := New()
	if prefix == "" {
		return rt
	}
	return rt.Bind("indentprefix", prefix)
}

// Must panics if err is non-nil, otherwise returns v. Generated action code
// (internal/grammar's CodeGenerator output) uses it to keep a host
// expression tree that is a chain of Lookup/Call evaluations as a single Go
// expression instead of threading an error return through every sub-term;
// a panic here indicates a malformed grammar (an unbound name, a call to a
// non-callable), not a normal runtime condition, and is recovered by the
// pipeline driver the same way a Go test recovers a failed assertion.
func Must(v value.Value, err error) value.Value {
	if err != nil {
		panic(err)
	}
	return v
}

// Bind returns a new Runtime in which name is bound to val, leaving the
// receiver (and anything that has already captured it) untouched.
func (rt *Runtime) Bind(name string, val value.Value) *Runtime {
	next := maps.Clone(rt.vars)
	next[name] = val
	return &Runtime{vars: next}
}

// Lookup returns the value bound to name, or an error if it is undefined.
func (rt *Runtime) Lookup(name string) (value.Value, error) {
	v, ok := rt.vars[name]
	if !ok {
		return nil, fmt.Errorf("rtenv: undefined name %q", name)
	}
	return v, nil
}

// NewCounter returns a fresh label-generator Callable: each call returns
// the next integer starting at 0, the way rlmeta.py's Counter class backs
// the `label` builtin for grammars that need fresh names during code
// generation. See SPEC_FULL.md's Counter/label note.
func NewCounter() value.Callable {
	n := 0
	return func(args []value.Value) (value.Value, error) {
		result := n
		n++
		return result, nil
	}
}

func builtinLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("rtenv: len() takes exactly one argument, got %d", len(args))
	}
	return value.Len(args[0]), nil
}

func builtinRepr(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("rtenv: repr() takes exactly one argument, got %d", len(args))
	}
	return value.Repr(args[0]), nil
}

func builtinJoin(args []value.Value) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("rtenv: join() takes one or two arguments, got %d", len(args))
	}
	delim := ""
	if len(args) == 2 {
		d, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("rtenv: join() delimiter must be a string")
		}
		delim = d
	}
	return value.Join(args[0], delim), nil
}

func builtinIndent(args []value.Value) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("rtenv: indent() takes one or two arguments, got %d", len(args))
	}
	text, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("rtenv: indent() text must be a string")
	}
	prefix := "    "
	if len(args) == 2 {
		p, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("rtenv: indent() prefix must be a string")
		}
		prefix = p
	}
	return value.Indent(text, prefix), nil
}

func builtinAppend(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("rtenv: append() takes exactly two arguments, got %d", len(args))
	}
	list, ok := value.IsList(args[0])
	if !ok {
		return nil, fmt.Errorf("rtenv: append() first argument must be a list")
	}
	value.Append(&list, args[1])
	return list, nil
}

func builtinConcat(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("rtenv: concat() takes exactly one argument, got %d", len(args))
	}
	lists, ok := value.IsList(args[0])
	if !ok {
		return nil, fmt.Errorf("rtenv: concat() argument must be a list of lists")
	}
	return value.Concat(lists), nil
}

func builtinSplice(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("rtenv: splice() takes exactly two arguments, got %d", len(args))
	}
	depth, ok := args[0].(int)
	if !ok {
		return nil, fmt.Errorf("rtenv: splice() depth must be an int")
	}
	return value.Splice(depth, args[1]), nil
}
