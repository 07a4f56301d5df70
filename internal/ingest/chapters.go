package ingest

import (
	"regexp"
	"strings"
)

// chapterPatterns are the heading matchers applied to every line. The scan is
// priority-independent: all patterns are tested against each line and every
// match is recorded, so a line matching two patterns yields two entries.
var chapterPatterns = []*regexp.Regexp{
	// Markdown ATX headings: "# Title", "## Title", ...
	regexp.MustCompile(`^#+\s+.+$`),
	// Numeric hierarchical headings: "1 Title", "1.2 Title", "1.2.3 Title"
	regexp.MustCompile(`^\d+(?:\.\d+)*\s+.+$`),
	// All-uppercase single-line headings, leading numerals allowed
	regexp.MustCompile(`^[A-Z0-9][A-Z0-9 ]*[A-Z][A-Z0-9 ]*$|^[A-Z]$`),
	// Chinese chapter numerals: "第一章 标题"
	regexp.MustCompile(`^第[一二三四五六七八九十]+章\s+.+$`),
}

// ExtractChapters detects structural headings in raw text and returns the
// matched lines in first-to-last document order. Matches are not
// deduplicated. Returns nil if no line matches any pattern.
func ExtractChapters(text string) []string {
	var chapters []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		for _, pattern := range chapterPatterns {
			if pattern.MatchString(line) {
				chapters = append(chapters, line)
			}
		}
	}
	return chapters
}
