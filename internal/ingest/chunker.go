package ingest

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the default span size in runes.
	DefaultChunkSize = 512
	// DefaultChunkOverlap is the default overlap between consecutive spans in runes.
	DefaultChunkOverlap = 50
)

// Chunker splits raw document text into overlapping fixed-size spans and
// assigns chapter labels to each span. A span that structurally belongs to N
// chapters is materialized as N distinct spans, never as one span with N
// labels.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker with the given span size and overlap (both in
// runes). Non-positive size or out-of-range overlap fall back to the defaults.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}
	return &Chunker{size: size, overlap: overlap}
}

// Chunk splits text into labeled spans.
//
// The walk keeps a current-chapter label, initially unset. A span with no
// headings inherits the current chapter. When a span introduces headings:
// the overlap region of the previous span is duplicated under the outgoing
// chapter, the first heading becomes current, and each additional heading
// duplicates the span under the label it is displacing before taking over.
// A span containing headings [A, B, C] therefore ends labeled C, with
// duplicates labeled A and B appended to the output.
func (c *Chunker) Chunk(text string) ChunkSet {
	base := c.split(text)

	var duplicates []Span
	var titles []string
	seen := make(map[string]struct{})
	record := func(title string) {
		if _, ok := seen[title]; ok {
			return
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}

	current := ""
	for i := range base {
		headings := ExtractChapters(base[i].Text)
		if len(headings) > 0 {
			// Materialize the previous span's trailing content under the
			// chapter that is about to be replaced.
			if current != "" && i > 0 {
				duplicates = append(duplicates, Span{Text: base[i-1].Text, Chapter: current})
			}

			current = headings[0]
			record(current)

			for _, heading := range headings[1:] {
				duplicates = append(duplicates, Span{Text: base[i].Text, Chapter: current})
				current = heading
				record(current)
			}
		}
		base[i].Chapter = current
	}

	return ChunkSet{
		Spans:     append(base, duplicates...),
		BaseCount: len(base),
		Titles:    titles,
	}
}

// split cuts text into overlapping spans of up to size runes, preferring to
// cut at a line or sentence boundary. Each span after the first starts
// overlap runes before the previous span's end.
func (c *Chunker) split(text string) []Span {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	var spans []Span
	start := 0

	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			spans = append(spans, Span{Text: string(runes[start:])})
			break
		}

		window := string(runes[start:end])
		cut := end
		for _, boundary := range []string{"\n", "。", ". "} {
			if p := strings.LastIndex(window, boundary); p != -1 {
				r := utf8.RuneCountInString(window[:p]) + utf8.RuneCountInString(boundary)
				// The cut must clear the overlap so the next span advances.
				if r > c.overlap {
					cut = start + r
					break
				}
			}
		}

		spans = append(spans, Span{Text: string(runes[start:cut])})
		start = cut - c.overlap
	}

	return spans
}
