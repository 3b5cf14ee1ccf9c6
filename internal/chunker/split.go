package chunker

import "unicode"

const (
	// DefaultLookback is how far before the target the locator searches for a boundary
	DefaultLookback = 200

	// Tolerances past the target for each boundary tier
	sentenceTolerance = 50
	clauseTolerance   = 30
	wordTolerance     = 10
)

// boundaryTier is one pass of the split-point cascade.
// A match is a mark rune followed by a whitespace run, or a bare whitespace
// run when mark is nil. The candidate offset is the end of the whitespace run.
type boundaryTier struct {
	name         string
	mark         func(r rune) bool
	tolerance    int
	boundedBelow bool // candidate must not precede target-lookback
}

var cascade = []boundaryTier{
	{name: "sentence", mark: isSentenceMark, tolerance: sentenceTolerance, boundedBelow: true},
	{name: "clause", mark: isClauseMark, tolerance: clauseTolerance, boundedBelow: true},
	{name: "word", tolerance: wordTolerance},
}

func isSentenceMark(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClauseMark(r rune) bool {
	return r == ';' || r == ':' || r == ',' || r == '-'
}

// FindBestSplitPoint returns the character offset near targetPosition where a
// chunk boundary should be placed. Sentence boundaries win over clause
// boundaries, which win over word boundaries; when the window holds none of
// them the target itself is returned. A target at or past the end of the text
// returns the text length. A lookback <= 0 selects DefaultLookback.
func FindBestSplitPoint(text string, targetPosition, lookback int) int {
	return findSplit([]rune(text), targetPosition, lookback)
}

// findSplit is FindBestSplitPoint over pre-decoded runes
func findSplit(text []rune, target, lookback int) int {
	n := len(text)
	if target >= n {
		return n
	}
	if target < 0 {
		target = 0
	}
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	start := max(0, target-lookback)
	end := min(n, target+sentenceTolerance)
	window := text[start:end]

	for _, tier := range cascade {
		best := tier.scan(window, start, target+tier.tolerance)
		if best <= 0 {
			continue
		}
		if tier.boundedBelow && best < target-lookback {
			continue
		}
		return best
	}

	return target
}

// scan walks the window left to right over non-overlapping matches and
// returns the absolute end offset of the last match not past limit, or -1.
func (t boundaryTier) scan(window []rune, base, limit int) int {
	best := -1
	i := 0
	for i < len(window) {
		j := i
		if t.mark != nil {
			if !t.mark(window[i]) || i+1 >= len(window) || !unicode.IsSpace(window[i+1]) {
				i++
				continue
			}
			j = i + 1
		} else if !unicode.IsSpace(window[i]) {
			i++
			continue
		}

		for j < len(window) && unicode.IsSpace(window[j]) {
			j++
		}

		if base+j > limit {
			// Match ends only grow from here
			break
		}
		best = base + j
		i = j
	}
	return best
}
