package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var (
	// ErrUnsupportedFormat is returned for file extensions the system does not recognize.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrFormatNotImplemented is returned for recognized extensions whose
	// reader has not been built yet. Surfaced explicitly instead of silently
	// producing zero chunks.
	ErrFormatNotImplemented = errors.New("file format not yet supported")
)

// notImplementedExts are recognized document formats without a reader yet.
var notImplementedExts = map[string]struct{}{
	".pdf":  {},
	".pptx": {},
	".epub": {},
	".json": {},
	".html": {},
	".xlsx": {},
}

// ReadDocument reads a document file and returns its text content, dispatched
// by file extension. Markdown is normalized through goldmark so inline markup
// does not leak into chunks while heading lines survive for chapter
// detection.
func ReadDocument(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	case ".md", ".markdown":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return normalizeMarkdown(content), nil
	case ".csv":
		return readCSV(path)
	case ".docx":
		return readDocx(path)
	default:
		if _, ok := notImplementedExts[ext]; ok {
			return "", fmt.Errorf("%w: %s", ErrFormatNotImplemented, ext)
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// normalizeMarkdown flattens markdown to plain text, one block per line.
// Headings are re-emitted as ATX lines ("## Title") so the chapter extractor
// sees them; inline formatting, links and fences are stripped.
func normalizeMarkdown(content []byte) string {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(content))

	var b strings.Builder

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			b.WriteString(strings.Repeat("#", node.Level))
			b.WriteString(" ")
			b.WriteString(extractText(node, content))
			b.WriteString("\n")
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			b.WriteString(extractText(node, content))
			b.WriteString("\n")
			return ast.WalkSkipChildren, nil

		case *ast.TextBlock:
			// Tight list items hold their text in a TextBlock instead of a Paragraph.
			b.WriteString(extractText(node, content))
			b.WriteString("\n")
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			writeCodeLines(&b, node.Lines(), content)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			writeCodeLines(&b, node.Lines(), content)
			return ast.WalkSkipChildren, nil

		default:
			// Table rows come from the goldmark table extension; match by
			// kind name the way the AST exposes them.
			kindName := n.Kind().String()
			if strings.Contains(kindName, "TableRow") || strings.Contains(kindName, "TableHeader") {
				b.WriteString(extractText(n, content))
				b.WriteString("\n")
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		}
	})

	return b.String()
}

// writeCodeLines copies code block lines verbatim.
func writeCodeLines(b *strings.Builder, lines *text.Segments, content []byte) {
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(content))
	}
}

// extractText collects the text content of a node and its children.
func extractText(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			textBuilder.Write(v.Segment.Value(content))
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// readCSV flattens a CSV file into plain text, one record per line with
// comma-separated fields.
func readCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse csv: %w", err)
	}

	var b strings.Builder
	for _, record := range records {
		b.WriteString(strings.Join(record, ", "))
		b.WriteString("\n")
	}
	return b.String(), nil
}
