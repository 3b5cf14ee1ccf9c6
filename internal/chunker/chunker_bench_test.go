package chunker

import (
	"strings"
	"testing"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

var benchText = strings.Repeat("The quick brown fox jumps over the lazy dog, again and again; it never tires. ", 1300)

func BenchmarkChunkText_Default(b *testing.B) {
	o := types.ChunkOptions{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chunks := ChunkText(benchText, o)
		if len(chunks) == 0 {
			b.Fatal("no chunks")
		}
	}
}

func BenchmarkChunkText_Small(b *testing.B) {
	o := types.ChunkOptions{MaxChunkSize: 120, MinChunkSize: 20}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chunks := ChunkText(benchText, o)
		if len(chunks) == 0 {
			b.Fatal("no chunks")
		}
	}
}

func BenchmarkChunkByParagraphs(b *testing.B) {
	text := strings.Repeat("A short paragraph of text.\n\n", 4000)
	o := types.ChunkOptions{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chunks := ChunkByParagraphs(text, o)
		if len(chunks) == 0 {
			b.Fatal("no chunks")
		}
	}
}

func BenchmarkEstimateTokenCount(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = EstimateTokenCount(benchText)
	}
}
