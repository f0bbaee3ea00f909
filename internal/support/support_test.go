package support_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickardlindberg/rlmeta/internal/support"
)

func TestNamesListsEverySection(t *testing.T) {
	names := support.Names()
	assert.Contains(t, names, "value.go")
	assert.Contains(t, names, "runtime.go")
	assert.Contains(t, names, "action.go")
	assert.Contains(t, names, "stream.go")
}

func TestSourceIsByteIdenticalAcrossCalls(t *testing.T) {
	assert.Equal(t, support.Source, support.Source)
	assert.Contains(t, support.Source, "package rlmetasupport")
}
