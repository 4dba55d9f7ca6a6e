package lawtext

import (
	"regexp"
	"strings"
)

const (
	frontmatterDelimiter = "---"

	// StatusAbandoned marks a repealed regulation.
	StatusAbandoned = "abandoned"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Document is a regulation split into front matter and content lines.
type Document struct {
	Meta           Metadata
	Content        []string
	HasFrontmatter bool
	// ContentStart is the 0-based index of the first content line in the
	// source text.
	ContentStart int
}

// SplitLines splits text on LF or CRLF line endings.
func SplitLines(text string) []string {
	return lineBreak.Split(text, -1)
}

// Parse separates the optional front-matter block from the content.
//
// The block must open on the first non-blank line and be closed by a second
// `---` line. Without both delimiters the whole text is content.
func Parse(text string) Document {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := SplitLines(text)

	open := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == frontmatterDelimiter {
			open = i
		}
		break
	}
	if open < 0 {
		return Document{Meta: Metadata{}, Content: lines}
	}

	for j := open + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != frontmatterDelimiter {
			continue
		}
		return Document{
			Meta:           ParseFrontmatter(lines[open+1 : j]),
			Content:        lines[j+1:],
			HasFrontmatter: true,
			ContentStart:   j + 1,
		}
	}

	// Unclosed block: nothing is metadata.
	return Document{Meta: Metadata{}, Content: lines}
}
