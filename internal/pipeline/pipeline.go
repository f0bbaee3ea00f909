// Package pipeline drives the two-pass compile chain described in spec
// §4.7: source characters through Parser.file produce an AST, which is fed
// through CodeGenerator.asts to produce target Go source. It is the thing
// internal/cli calls for --compile.
package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"

	"github.com/rickardlindberg/rlmeta/internal/grammar"
	"github.com/rickardlindberg/rlmeta/internal/registry"
	"github.com/rickardlindberg/rlmeta/internal/rtenv"
	"github.com/rickardlindberg/rlmeta/internal/stream"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// defaultRuntime returns a fresh builtins-only Runtime for evaluating one
// compile stage's Action tree. Each stage gets its own Runtime: nothing a
// Parser-stage Set expression binds should leak into the CodeGenerator
// stage that consumes its output. indentprefix is seeded from the
// Pipeline's configured prefix (RLMETA_INDENT_PREFIX, via WithIndentPrefix),
// falling back to rtenv.DefaultIndentPrefix when unset.
func (p *Pipeline) defaultRuntime() *rtenv.Runtime {
	return rtenv.NewWithIndentPrefix(p.indentPrefix)
}

// Option sets an option on a Pipeline and returns the previous setting as
// an Option, the same reversible shape as the teacher's vm.Debug/vm.Recover
// (vm/static_code.go's pub.go section).
type Option func(*Pipeline) Option

// Pipeline holds the shared rule registry and the knobs that govern a
// compile run.
type Pipeline struct {
	registry     *registry.Registry
	logger       hclog.Logger
	debug        bool
	recover      bool
	indentPrefix string
}

// New returns a Pipeline with the bootstrapped Parser and CodeGenerator
// grammars registered, and hclog.L() as its default logger.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry.New(),
		logger:   hclog.L(),
		recover:  true,
	}
	grammar.Register(p.registry)
	p.setOptions(opts)
	return p
}

// WithDebug sets whether stage transitions are logged at Debug level
// instead of Trace.
func WithDebug(b bool) Option {
	return func(p *Pipeline) Option {
		old := p.debug
		p.debug = b
		return WithDebug(old)
	}
}

// WithRecover sets whether a panicking semantic action (see
// rtenv.Must) is recovered into a plain error instead of crashing the
// process. Defaults to true; disable while debugging a grammar to get a
// full stack trace.
func WithRecover(b bool) Option {
	return func(p *Pipeline) Option {
		old := p.recover
		p.recover = b
		return WithRecover(old)
	}
}

// WithLogger overrides the pipeline's hclog.Logger.
func WithLogger(l hclog.Logger) Option {
	return func(p *Pipeline) Option {
		old := p.logger
		p.logger = l
		return WithLogger(old)
	}
}

// WithIndentPrefix overrides the "indentprefix" runtime variable every
// compile stage's Runtime is seeded with (spec §9's Indent/Format
// extension point). An empty string restores rtenv.DefaultIndentPrefix.
func WithIndentPrefix(prefix string) Option {
	return func(p *Pipeline) Option {
		old := p.indentPrefix
		p.indentPrefix = prefix
		return WithIndentPrefix(old)
	}
}

func (p *Pipeline) setOptions(opts []Option) *Pipeline {
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry exposes the pipeline's rule table, so that a caller can register
// further rules for later CompileChain runs. internal/cli does not use it.
func (p *Pipeline) Registry() *registry.Registry {
	return p.registry
}

// CompileChain runs source through the named chain of rules, feeding each
// stage's result (an AST) as the next stage's input, and returns the final
// stage's value. chain is normally []string{"Parser.file",
// "CodeGenerator.asts"} (spec §4.7's grammar-source-to-Go-source chain),
// but a single-element chain (just "Parser.file") is valid too, e.g. to
// inspect the AST without generating code.
func (p *Pipeline) CompileChain(source string, chain []string) (result value.Value, err error) {
	if p.recover {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("pipeline: action panicked: %v", r)
			}
		}()
	}

	items := make(value.List, 0, len(source))
	for _, ch := range source {
		items = append(items, ch)
	}

	var current value.Value = items
	for _, ruleName := range chain {
		p.logger.Trace("compiling stage", "rule", ruleName)

		var itemList value.List
		switch v := current.(type) {
		case value.List:
			itemList = v
		default:
			itemList = value.List{v}
		}

		s := stream.New(itemList, p.registry)
		act, runErr := s.MatchRule(ruleName)
		if runErr != nil {
			if me, ok := runErr.(*stream.MatchError); ok {
				return nil, me
			}
			return nil, runErr
		}

		rt := p.defaultRuntime()
		result, err = act.Eval(rt)
		if err != nil {
			return nil, err
		}
		current = result

		if p.debug {
			p.logger.Debug("stage complete", "rule", ruleName)
		} else {
			p.logger.Trace("stage complete", "rule", ruleName)
		}
	}
	return current, nil
}

// FormatError renders a *stream.MatchError the way spec §6 describes: an
// ERROR/POSITION/STREAM block, with just the "<ERROR POSITION>" marker
// inside the stream excerpt highlighted in red when writing to a terminal.
// NO_COLOR and RLMETA_NO_COLOR both force plain output, matching
// internal/config's knobs.
func FormatError(w *os.File, me *stream.MatchError, noColor bool) string {
	text := me.Error()
	if noColor || !term.IsTerminal(int(w.Fd())) {
		return text
	}
	marker := "<ERROR POSITION>"
	return strings.Replace(text, marker, color.New(color.FgRed).Sprint(marker), 1)
}
