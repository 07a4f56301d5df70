package ingest

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// A docx file is an OOXML zip archive; the body text lives in
// word/document.xml as paragraphs of runs.
type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

// readDocx extracts plain text from a docx archive, one paragraph per line,
// so heading-like paragraphs stay visible to the chapter extractor.
func readDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer func() {
		_ = archive.Close()
	}()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to read docx body: %w", err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read docx body: %w", err)
		}

		return parseDocxBody(content)
	}

	return "", fmt.Errorf("invalid docx archive: missing word/document.xml")
}

// parseDocxBody flattens the document XML to text. Runs within a paragraph
// concatenate without separators; paragraphs become lines.
func parseDocxBody(content []byte) (string, error) {
	var doc docxDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("failed to parse docx body: %w", err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paragraphs {
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
