// Package registry implements the process-wide rule table: a mapping from
// "<Namespace>.<rule>" to its root matcher. It is populated once, when a
// generated program's rules are registered (the CodeGenerator pass emits
// one registration statement per Rule AST node), and is read-only
// thereafter — MatchRule and MatchCallRule only ever read it.
package registry

import (
	"sync"

	"github.com/rickardlindberg/rlmeta/internal/stream"
)

// Registry is a process-wide, concurrency-safe "Namespace.rule" -> Runner
// table. The matching engine itself is single-threaded (spec §5), but the
// registry is shared process-wide state populated at program load, so
// Register/Lookup are still guarded: nothing prevents two independently
// loaded generated programs (e.g. two pipeline stages, or a test and the
// program under test) from registering into the same process.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]stream.Runner
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{rules: map[string]stream.Runner{}}
}

// Register installs matcher under name, overwriting any previous
// registration. Re-registering the same name is expected across repeated
// pipeline runs against the same Registry (e.g. re-running the bootstrap
// chain in a loop to find the self-hosting fixed point).
func (r *Registry) Register(name string, matcher stream.Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[name] = matcher
}

// Lookup resolves name to its registered Runner.
func (r *Registry) Lookup(name string) (stream.Runner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rules[name]
	return m, ok
}

// Names returns every currently-registered rule name, primarily for
// diagnostics and tests.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	return names
}
