package chunker

import (
	"unicode"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// piece is a chunk under construction with its rune span in the source text
type piece struct {
	text   string
	start  int
	end    int
	length int // in runes
	merged bool
}

// absorb appends an undersized fragment to the piece with a single space
func (p *piece) absorb(frag piece) {
	p.text += " " + frag.text
	p.length += 1 + frag.length
	p.end = frag.end
	p.merged = true
}

// ChunkText splits text into chunks of at most opts.MaxChunkSize characters,
// preferring sentence, then clause, then word boundaries. Text that already
// fits is returned unchanged as the only chunk; otherwise every chunk is
// trimmed and fragments shorter than opts.MinChunkSize are appended to the
// preceding chunk. Empty text yields no chunks.
func ChunkText(text string, opts types.ChunkOptions) []string {
	return texts(chunkRunes([]rune(text), 0, opts.WithDefaults()))
}

// ChunkByParagraphs groups blank-line separated paragraphs into chunks of at
// most opts.MaxChunkSize characters, joined by a blank line. A paragraph that
// is too large on its own is split with ChunkText.
func ChunkByParagraphs(text string, opts types.ChunkOptions) []string {
	return texts(chunkParagraphs([]rune(text), opts.WithDefaults()))
}

// chunkRunes is the assembler loop. base shifts spans for sub-ranges.
func chunkRunes(text []rune, base int, opts types.ChunkOptions) []piece {
	n := len(text)
	if n == 0 {
		return nil
	}
	if n <= opts.MaxChunkSize {
		return []piece{{text: string(text), start: base, end: base + n, length: n}}
	}

	// Keep the search window ahead of the cursor so every split makes progress
	lookback := min(DefaultLookback, opts.MaxChunkSize)

	var out []piece
	cursor := 0
	for cursor < n {
		if n-cursor <= opts.MaxChunkSize {
			if p, ok := trimmed(text, cursor, n, base); ok {
				out = append(out, p)
			}
			break
		}

		split := findSplit(text, cursor+opts.MaxChunkSize, lookback)
		if split <= cursor {
			split = cursor + 1
		}

		if p, ok := trimmed(text, cursor, split, base); ok {
			if len(out) > 0 && p.length < opts.MinChunkSize {
				out[len(out)-1].absorb(p)
			} else {
				out = append(out, p)
			}
		}

		cursor = split
	}

	return out
}

// chunkParagraphs implements the paragraph-first strategy
func chunkParagraphs(text []rune, opts types.ChunkOptions) []piece {
	var out []piece
	var acc *piece

	flush := func() {
		if acc == nil {
			return
		}
		if p, ok := trimmedPiece(*acc); ok {
			out = append(out, p)
		}
		acc = nil
	}

	for _, span := range paragraphSpans(text) {
		para := text[span[0]:span[1]]
		if isBlank(para) {
			continue
		}

		if len(para) > opts.MaxChunkSize {
			flush()
			out = append(out, chunkRunes(para, span[0], opts)...)
			continue
		}

		if acc == nil {
			acc = &piece{text: string(para), start: span[0], end: span[1], length: len(para)}
			continue
		}

		if acc.length+2+len(para) > opts.MaxChunkSize {
			flush()
			acc = &piece{text: string(para), start: span[0], end: span[1], length: len(para)}
			continue
		}

		acc.text += "\n\n" + string(para)
		acc.length += 2 + len(para)
		acc.end = span[1]
	}
	flush()

	return out
}

// paragraphSpans splits text on runs of two or more newlines
func paragraphSpans(text []rune) [][2]int {
	var spans [][2]int
	start := 0
	for i := 0; i < len(text); {
		if text[i] != '\n' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == '\n' {
			j++
		}
		if j-i >= 2 {
			spans = append(spans, [2]int{start, i})
			start = j
		}
		i = j
	}
	return append(spans, [2]int{start, len(text)})
}

// trimmed returns text[from:to] without surrounding whitespace
func trimmed(text []rune, from, to, base int) (piece, bool) {
	for from < to && unicode.IsSpace(text[from]) {
		from++
	}
	for to > from && unicode.IsSpace(text[to-1]) {
		to--
	}
	if from == to {
		return piece{}, false
	}
	return piece{
		text:   string(text[from:to]),
		start:  base + from,
		end:    base + to,
		length: to - from,
	}, true
}

// trimmedPiece trims an accumulated piece and shrinks its span to match
func trimmedPiece(p piece) (piece, bool) {
	r := []rune(p.text)
	out, ok := trimmed(r, 0, len(r), 0)
	if !ok {
		return piece{}, false
	}
	out.start += p.start
	out.end = p.end - (len(r) - out.end)
	out.merged = p.merged
	return out, true
}

func isBlank(text []rune) bool {
	for _, r := range text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func texts(pieces []piece) []string {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.text
	}
	return out
}
