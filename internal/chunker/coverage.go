package chunker

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// VerifyCoverage checks that joining chunks with single spaces reproduces the
// original text up to whitespace: every non-space character appears exactly
// once and in order. It returns an error wrapping types.ErrContentLost with
// the character offset of the first divergence.
func VerifyCoverage(original string, chunks []string) error {
	want := []rune(original)
	got := []rune(strings.Join(chunks, " "))

	i, j := 0, 0
	for {
		for i < len(want) && unicode.IsSpace(want[i]) {
			i++
		}
		for j < len(got) && unicode.IsSpace(got[j]) {
			j++
		}
		switch {
		case i == len(want) && j == len(got):
			return nil
		case i == len(want):
			return fmt.Errorf("%w: unexpected %q after end of original", types.ErrContentLost, got[j])
		case j == len(got):
			return fmt.Errorf("%w: missing content at offset %d", types.ErrContentLost, i)
		case want[i] != got[j]:
			return fmt.Errorf("%w: mismatch at offset %d: want %q, got %q", types.ErrContentLost, i, want[i], got[j])
		}
		i++
		j++
	}
}
