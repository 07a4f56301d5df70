package ingest

// Span is one retrievable unit of document text with its assigned chapter label.
type Span struct {
	Text    string
	Chapter string // empty when the span precedes the first detected heading
}

// ChunkSet is the output of chunking one document.
type ChunkSet struct {
	// Spans holds the base spans in document order, with duplicated spans
	// appended after the base sequence. Order among duplicates is not
	// guaranteed to match document order.
	Spans []Span
	// BaseCount is the number of base spans; Spans[BaseCount:] are duplicates.
	BaseCount int
	// Titles holds every distinct chapter title observed, in first-seen order.
	Titles []string
}
