// Package config loads the handful of environment-overridable defaults
// described in SPEC_FULL.md's AMBIENT STACK section, using
// github.com/kelseyhightower/envconfig the way it appears in the pack's
// comalice-maelstrom go.mod: a struct of `envconfig` tags processed once at
// startup, with defaults that reproduce the original Python tool's
// unconfigured behavior exactly.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime knobs an operator can override without a CLI
// flag. None of these affect grammar semantics, only presentation and
// logging.
type Config struct {
	// IndentPrefix seeds the "indentprefix" runtime variable (spec §9's
	// Indent/Format extension point) that grammars read via the `indent`
	// builtin or the `>...<` Indent host expression.
	IndentPrefix string `envconfig:"INDENT_PREFIX" default:"    "`

	// NoColor force-disables ANSI highlighting of the <ERROR POSITION>
	// marker even when stderr is a terminal, in addition to the ambient
	// NO_COLOR convention that internal/cli checks unconditionally.
	NoColor bool `envconfig:"NO_COLOR" default:"false"`

	// LogLevel names the hclog level the pipeline logger is created at
	// ("trace", "debug", "info", ...). Defaults to "info", under which
	// the pipeline's own Trace/Debug stage-transition logs are silent.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads Config from the environment, using the RLMETA_ prefix (e.g.
// RLMETA_INDENT_PREFIX, RLMETA_NO_COLOR, RLMETA_LOG_LEVEL).
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("rlmeta", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
