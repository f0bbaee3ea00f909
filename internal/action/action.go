// Package action implements the deferred semantic-action evaluator: a
// suspended computation carrying a snapshot of the lexical scope present
// at match time, evaluated lazily against a Runtime once matching has
// finished. This is the piece that decouples *matching* (Stream, the
// match package) from *value construction*.
package action

import (
	"github.com/rickardlindberg/rlmeta/internal/rtenv"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// Scope is a lexical scope: a mapping from bound names to the Action
// matched under them. Scopes are captured by reference at Action
// construction time; Stream.Save deep-copies the scope stack so that a
// captured Scope is never later mutated out from under an already-built
// Action.
type Scope map[string]*Action

// Fn is the user computation an Action defers. It receives the Action
// itself, so it can call Lookup/Bind against the scope and Runtime that
// are live at evaluation time.
type Fn func(self *Action) (value.Value, error)

// Action is a closure over a scope snapshot, evaluated only once matching
// is complete. It never observes or mutates the Stream; it sees only its
// captured Scope and the Runtime passed to Eval.
type Action struct {
	scope   Scope
	fn      Fn
	runtime *rtenv.Runtime
}

// New wraps fn as an Action tied to scope. Matcher combinators, including
// Star's list-of-results Action and And's unit Action, call this
// indirectly through Stream.Action/Stream.Match.
func New(scope Scope, fn Fn) *Action {
	return &Action{scope: scope, fn: fn}
}

// Unit returns an Action that evaluates to nil: the same value as the
// unit Actions that And (when empty) and Not build through Stream.Action.
func Unit(scope Scope) *Action {
	return New(scope, func(self *Action) (value.Value, error) { return nil, nil })
}

// Runtime returns the Runtime this Action was most recently evaluated
// against. It exists so that composite Actions (Star's list-of-results
// Action, in particular) can evaluate their own deferred sub-Actions
// against the same Runtime they themselves were just given.
func (a *Action) Runtime() *rtenv.Runtime {
	return a.runtime
}

// Eval evaluates the Action against rt, invoking fn with the Action's
// Runtime set to rt. Evaluation order is never guaranteed across two
// distinct Actions beyond what the caller imposes by calling Eval in a
// particular sequence.
func (a *Action) Eval(rt *rtenv.Runtime) (value.Value, error) {
	a.runtime = rt
	return a.fn(a)
}

// Lookup resolves name: if it was bound in the Action's captured scope,
// the corresponding Action is recursively evaluated against the current
// Runtime and its value returned (this is how matched substructures
// become visible under their binding names); otherwise the name is
// delegated to the Runtime (builtins and Set-bound names).
func (a *Action) Lookup(name string) (value.Value, error) {
	if bound, ok := a.scope[name]; ok {
		return bound.Eval(a.runtime)
	}
	return a.runtime.Lookup(name)
}

// Bind extends the current Runtime with name -> val, then evaluates
// continuation under that extended Runtime. It backs the Set AST node:
// "bind name to value in the runtime, then evaluate body".
func (a *Action) Bind(name string, val value.Value, continuation func() (value.Value, error)) (value.Value, error) {
	a.runtime = a.runtime.Bind(name, val)
	return continuation()
}

// Call invokes a Runtime-bound name as a function, resolving it the same
// way Lookup does. It backs the Call host expression (`f(a1, ...)`).
func (a *Action) Call(name string, args []value.Value) (value.Value, error) {
	fn, err := a.Lookup(name)
	if err != nil {
		return nil, err
	}
	callable, ok := fn.(value.Callable)
	if !ok {
		return nil, notCallableError(name)
	}
	return callable(args)
}
