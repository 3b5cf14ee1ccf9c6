package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTokenCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", " \t\n ", 0},
		{"one word", "hello", 2},
		{"six words", "This is a five word sentence", 8},
		{"ten words", "one two three four five six seven eight nine ten", 13},
		{"irregular spacing", "  one\ttwo\n\nthree  ", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTokenCount(tt.text))
		})
	}
}

func TestEstimateTokenCount_Range(t *testing.T) {
	estimate := EstimateTokenCount("This is a five word sentence")
	assert.GreaterOrEqual(t, estimate, 6)
	assert.LessOrEqual(t, estimate, 8)
}

func TestWordCounter(t *testing.T) {
	var c WordCounter

	assert.Equal(t, 0, c.Count(""))
	assert.Equal(t, 0, c.Count(" ... !"))
	assert.Equal(t, 4, c.Count("Hello, world! It's 42."))
}

func TestNewTokenCounter(t *testing.T) {
	tests := []struct {
		name string
		want TokenCounter
	}{
		{"", HeuristicCounter{}},
		{"heuristic", HeuristicCounter{}},
		{" Heuristic ", HeuristicCounter{}},
		{"words", WordCounter{}},
		{"WORDS", WordCounter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewTokenCounter(tt.name)
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}
}

func TestNewTokenCounter_UnknownEncoding(t *testing.T) {
	_, err := NewTokenCounter("no_such_encoding")
	assert.Error(t, err)
}

func TestTikTokenCounter(t *testing.T) {
	c, err := NewTikTokenCounter("cl100k_base")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	assert.Equal(t, "cl100k_base", c.Encoding())
	assert.Equal(t, 0, c.Count(""))
	assert.Greater(t, c.Count("Hello world, this is a test."), 0)
}
