package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestReadDocument_Text(t *testing.T) {
	path := writeTestFile(t, "doc.txt", "hello\nworld\n")

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if got != "hello\nworld\n" {
		t.Errorf("ReadDocument() = %q, want raw content", got)
	}
}

func TestReadDocument_Markdown(t *testing.T) {
	content := "# Title\n\nSome *emphasized* text with a [link](https://example.com).\n\n## Section\n\n- item one\n- item two\n"
	path := writeTestFile(t, "doc.md", content)

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}

	// Heading lines survive for chapter detection.
	if !strings.Contains(got, "# Title\n") {
		t.Errorf("ReadDocument() dropped heading line:\n%s", got)
	}
	if !strings.Contains(got, "## Section\n") {
		t.Errorf("ReadDocument() dropped subheading line:\n%s", got)
	}
	// Inline markup is stripped.
	if strings.Contains(got, "*") || strings.Contains(got, "](") {
		t.Errorf("ReadDocument() leaked inline markup:\n%s", got)
	}
	if !strings.Contains(got, "Some emphasized text with a link.") {
		t.Errorf("ReadDocument() mangled paragraph text:\n%s", got)
	}
	if !strings.Contains(got, "item one") || !strings.Contains(got, "item two") {
		t.Errorf("ReadDocument() dropped list items:\n%s", got)
	}
}

func TestReadDocument_CSV(t *testing.T) {
	path := writeTestFile(t, "doc.csv", "name,age\nalice,30\nbob,25\n")

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	want := "name, age\nalice, 30\nbob, 25\n"
	if got != want {
		t.Errorf("ReadDocument() = %q, want %q", got, want)
	}
}

func TestReadDocument_FormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{name: "unknown extension", file: "doc.xyz", wantErr: ErrUnsupportedFormat},
		{name: "no extension", file: "doc", wantErr: ErrUnsupportedFormat},
		{name: "pdf recognized but unsupported", file: "doc.pdf", wantErr: ErrFormatNotImplemented},
		{name: "pptx recognized but unsupported", file: "doc.pptx", wantErr: ErrFormatNotImplemented},
		{name: "json recognized but unsupported", file: "doc.json", wantErr: ErrFormatNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, tt.file, "content")
			_, err := ReadDocument(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadDocument_MissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("ReadDocument() expected error for missing file")
	}
}
