package extract

import "strings"

// Document is one quote's recovered text: the raw blob plus its non-blank
// lines in original order. Immutable once built; every extractor reads from
// it and nothing else.
type Document struct {
	Raw   string
	Lines []string
}

// NewDocument splits the raw blob into trimmed non-blank lines. An empty or
// unreadable source yields a Document with no lines; extractors then all
// resolve to "".
func NewDocument(raw string) *Document {
	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return &Document{Raw: raw, Lines: lines}
}
