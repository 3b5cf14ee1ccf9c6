package chunker

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

func TestNew(t *testing.T) {
	c := New()
	require.NotNil(t, c)

	assert.Equal(t, types.DefaultChunkOptions(), c.Options())
	assert.Equal(t, types.StrategySentence, c.Strategy())
	assert.IsType(t, HeuristicCounter{}, c.Counter())
}

func TestNew_Options(t *testing.T) {
	c := New(
		WithMaxChunkSize(500),
		WithMinChunkSize(20),
		WithStrategy(types.StrategyParagraph),
		WithTokenCounter(WordCounter{}),
	)

	assert.Equal(t, types.ChunkOptions{MaxChunkSize: 500, MinChunkSize: 20}, c.Options())
	assert.Equal(t, types.StrategyParagraph, c.Strategy())
	assert.IsType(t, WordCounter{}, c.Counter())
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	c := New(
		WithOptions(types.ChunkOptions{MaxChunkSize: -1}),
		WithStrategy("semantic"),
		WithTokenCounter(nil),
	)

	assert.Equal(t, types.DefaultChunkOptions(), c.Options())
	assert.Equal(t, types.StrategySentence, c.Strategy())
	assert.NotNil(t, c.Counter())
}

func TestChunker_SplitStrategies(t *testing.T) {
	text := "First paragraph content here.\n\nSecond paragraph content here."

	sentence := New(WithMaxChunkSize(50), WithMinChunkSize(10))
	paragraph := New(WithMaxChunkSize(50), WithMinChunkSize(10), WithStrategy(types.StrategyParagraph))

	assert.Equal(t, ChunkText(text, sentence.Options()), sentence.Split(text))
	assert.Equal(t, ChunkByParagraphs(text, paragraph.Options()), paragraph.Split(text))
}

func TestChunkDocument_Spans(t *testing.T) {
	text := "This is the first sentence. This is the second sentence. This is the third sentence."
	runes := []rune(text)

	c := New(WithMaxChunkSize(60), WithMinChunkSize(10))
	chunks := c.ChunkDocument(text)
	require.Len(t, chunks, 2)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
		assert.False(t, chunk.Merged)
		assert.Equal(t, chunk.Content, string(runes[chunk.Start:chunk.End]))
		assert.Equal(t, EstimateTokenCount(chunk.Content), chunk.TokenCount)
		assert.Equal(t, sha256.Sum256([]byte(chunk.Content)), chunk.ContentHash)
		assert.NoError(t, chunk.Validate())
	}
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 56, chunks[0].End)
	assert.Equal(t, 57, chunks[1].Start)
	assert.Equal(t, len(runes), chunks[1].End)
}

func TestChunkDocument_MergedSpan(t *testing.T) {
	first := strings.Repeat("abcde ", 12) + "final."
	text := first + " Ok. " + strings.Repeat("tail ", 11) + "end"

	c := New(WithMaxChunkSize(30), WithMinChunkSize(10))
	chunks := c.ChunkDocument(text)
	require.NotEmpty(t, chunks)

	assert.True(t, chunks[0].Merged)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 82, chunks[0].End)
	assert.Equal(t, first+" Ok.", chunks[0].Content)
}

func TestChunkDocument_ParagraphSpans(t *testing.T) {
	text := "  First.\n\nSecond.  "
	runes := []rune(text)

	c := New(WithStrategy(types.StrategyParagraph))
	chunks := c.ChunkDocument(text)
	require.Len(t, chunks, 1)

	assert.Equal(t, 2, chunks[0].Start)
	assert.Equal(t, 17, chunks[0].End)
	assert.Equal(t, chunks[0].Content, string(runes[chunks[0].Start:chunks[0].End]))
}

func TestChunkDocument_OversizedParagraphSpans(t *testing.T) {
	long := "Alpha beta gamma delta. Epsilon zeta eta theta. Iota kappa lambda mu. Nu xi omicron pi rho."
	text := "Intro.\n\n" + long + "\n\nOutro."
	runes := []rune(text)

	c := New(WithMaxChunkSize(50), WithMinChunkSize(10), WithStrategy(types.StrategyParagraph))
	chunks := c.ChunkDocument(text)
	require.Len(t, chunks, 4)

	for _, chunk := range chunks {
		assert.Equal(t, chunk.Content, string(runes[chunk.Start:chunk.End]))
	}
}

func TestChunkDocument_Empty(t *testing.T) {
	assert.Empty(t, New().ChunkDocument(""))
}

func TestChunker_With(t *testing.T) {
	base := New(WithMaxChunkSize(500), WithStrategy(types.StrategyParagraph), WithTokenCounter(WordCounter{}))
	derived := base.With(WithMinChunkSize(25))

	assert.Equal(t, types.ChunkOptions{MaxChunkSize: 500, MinChunkSize: 25}, derived.Options())
	assert.Equal(t, types.StrategyParagraph, derived.Strategy())
	assert.IsType(t, WordCounter{}, derived.Counter())

	// The original is unchanged
	assert.Equal(t, types.DefaultMinChunkSize, base.Options().MinChunkSize)
}
