package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardlindberg/rlmeta/internal/grammar"
	"github.com/rickardlindberg/rlmeta/internal/pipeline"
	"github.com/rickardlindberg/rlmeta/internal/stream"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

func TestCompileChainSingleStageProducesAST(t *testing.T) {
	p := pipeline.New()
	result, err := p.CompileChain("Greeting {\n  hi = 'h' -> \"hi\"\n}", []string{grammar.RuleParserFile})
	require.NoError(t, err)

	file, ok := value.IsList(result)
	require.True(t, ok)
	require.Len(t, file, 1)
}

func TestCompileChainFullChainProducesGoSource(t *testing.T) {
	p := pipeline.New()
	result, err := p.CompileChain(
		"Greeting {\n  hi = 'h'\n}",
		[]string{grammar.RuleParserFile, grammar.RuleCodeGeneratorAsts},
	)
	require.NoError(t, err)

	code, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, code, "func RegisterGreeting")
}

func TestCompileChainReturnsMatchErrorOnFailure(t *testing.T) {
	p := pipeline.New()
	_, err := p.CompileChain("not a valid grammar {{{", []string{grammar.RuleParserFile})
	require.Error(t, err)
	_, ok := err.(*stream.MatchError)
	assert.True(t, ok)
}

func TestFormatErrorIncludesErrorPositionStream(t *testing.T) {
	p := pipeline.New()
	_, err := p.CompileChain("not a valid grammar {{{", []string{grammar.RuleParserFile})
	require.Error(t, err)
	me := err.(*stream.MatchError)

	text := pipeline.FormatError(nil, me, true)
	assert.Contains(t, text, "ERROR: ")
	assert.Contains(t, text, "POSITION: ")
	assert.Contains(t, text, "STREAM:\n")
}

func TestOptionsAreReversible(t *testing.T) {
	p := pipeline.New(pipeline.WithDebug(true))
	undo := pipeline.WithDebug(false)
	restore := undo(p)
	// restore is the Option that would put debug back to true.
	assert.NotNil(t, restore)
}
