package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSupportWritesEmbeddedSource(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--support"}, &stdout, &stderr)
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout.String(), "package rlmetasupport")
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--bogus"}, &stdout, &stderr)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr.String(), "ERROR: Unknown command '--bogus'")
}

func TestRunNoArgsDefaultsToCompileStdin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.rlmeta")
	require.NoError(t, os.WriteFile(path, []byte("Greeting {\n  hi = 'h'\n}"), 0o644))

	oldStdin := os.Stdin
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	os.Stdin = f
	defer func() { os.Stdin = oldStdin }()

	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	require.Equal(t, ExitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "func RegisterGreeting")
}

func TestRunCopyWritesVerbatimContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello there\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--copy", path}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "hello there\n", stdout.String())
}

func TestRunEmbedWritesReprAssignment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--embed", "Greeting", path}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "Greeting = \"hi\"\n", stdout.String())
}

func TestRunEmbedAddsIdentifierCommentForNonIdentifierName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--embed", "weird name!", path}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "weird name! = \"hi\"\n", stdout.String())
	assert.Contains(t, stderr.String(), "isn't a valid Go identifier")
}

func TestRunCompileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.rlmeta")
	require.NoError(t, os.WriteFile(path, []byte("Greeting {\n  hi = 'h'\n}"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--compile", path}, &stdout, &stderr)
	require.Equal(t, ExitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "func RegisterGreeting")
}

func TestIdentifierCommentFallsBackToCamelCase(t *testing.T) {
	assert.False(t, identLike.MatchString("value.go"))
	assert.NotEqual(t, "weird name!", identifierComment("weird name!"))
	assert.Equal(t, "hello", identifierComment("hello"))
}
