package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardlindberg/rlmeta/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "    ", cfg.IndentPrefix)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("RLMETA_INDENT_PREFIX", "\t")
	t.Setenv("RLMETA_NO_COLOR", "true")
	t.Setenv("RLMETA_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "\t", cfg.IndentPrefix)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "debug", cfg.LogLevel)
}
