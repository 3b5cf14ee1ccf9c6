package chunker

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"
	"github.com/pkoukk/tiktoken-go"
)

const (
	// CounterHeuristic names the word-count based estimator
	CounterHeuristic = "heuristic"
	// CounterWords names the Unicode word segmentation counter
	CounterWords = "words"
)

// TokenCounter defines the interface for counting tokens in a string.
// This abstraction allows for different tokenization strategies (e.g., words, subwords).
type TokenCounter interface {
	// Count returns the number of tokens in the given text according to the
	// implementation's tokenization strategy.
	Count(text string) int
}

// EstimateTokenCount approximates LLM token usage as 1.3 tokens per
// whitespace-separated word, rounded up. It performs no real tokenization.
func EstimateTokenCount(text string) int {
	n := len(strings.Fields(text))
	// ceil(n * 1.3) in integer arithmetic
	return (n*13 + 9) / 10
}

// HeuristicCounter counts tokens with EstimateTokenCount
type HeuristicCounter struct{}

// Count returns the heuristic token estimate
func (HeuristicCounter) Count(text string) int {
	return EstimateTokenCount(text)
}

// WordCounter counts Unicode words (UAX #29), ignoring whitespace and punctuation segments
type WordCounter struct{}

// Count returns the number of word-like segments
func (WordCounter) Count(text string) int {
	count := 0
	for _, seg := range words.SegmentAll([]byte(text)) {
		if isWordLike(seg) {
			count++
		}
	}
	return count
}

func isWordLike(seg []byte) bool {
	for len(seg) > 0 {
		r, size := utf8.DecodeRune(seg)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
		seg = seg[size:]
	}
	return false
}

// TikTokenCounter provides accurate token counting using the tiktoken library,
// which implements the tokenization schemes used by OpenAI models.
type TikTokenCounter struct {
	encoding string
	tke      *tiktoken.Tiktoken
}

// NewTikTokenCounter creates a new TikTokenCounter using the specified encoding.
// Common encodings include:
// - "cl100k_base" (GPT-4, ChatGPT)
// - "p50k_base" (GPT-3)
// - "r50k_base" (Codex)
func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encoding, err)
	}
	return &TikTokenCounter{encoding: encoding, tke: tke}, nil
}

// Count returns the exact number of tokens in the text according to the
// specified tiktoken encoding.
func (ttc *TikTokenCounter) Count(text string) int {
	return len(ttc.tke.Encode(text, nil, nil))
}

// Encoding returns the tiktoken encoding name
func (ttc *TikTokenCounter) Encoding() string {
	return ttc.encoding
}

// NewTokenCounter resolves a counter by name: "heuristic" (or empty),
// "words", or any tiktoken encoding name.
func NewTokenCounter(name string) (TokenCounter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CounterHeuristic:
		return HeuristicCounter{}, nil
	case CounterWords:
		return WordCounter{}, nil
	default:
		return NewTikTokenCounter(name)
	}
}
