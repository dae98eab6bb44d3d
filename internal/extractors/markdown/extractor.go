// Package markdown extracts header-delimited sections from Markdown
// documents.
package markdown

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// headerPattern matches ATX headers: 1-6 # characters followed by
// whitespace and the heading text.
var headerPattern = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// Extractor handles Markdown documents. Headers delimit sections: each
// section spans from its header line (inclusive) to the next header, and
// carries the header text as its title. Content before the first header
// gets the sentinel "Document Start" title; a document with no headers
// becomes a single untitled section.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Extract splits the document by headers into sections.
func (e *Extractor) Extract(_ context.Context, content []byte, filename string) ([]domain.Section, error) {
	text := decode(content)

	matches := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		whole := strings.TrimSpace(text)
		if whole == "" {
			return nil, nil
		}
		return []domain.Section{{
			Text:       whole,
			Provenance: provenance(filename, 1, ""),
		}}, nil
	}

	var sections []domain.Section
	title := domain.SectionTitleStart
	ordinal := 1
	lastStart := 0

	emit := func(raw string) {
		text := strings.TrimSpace(raw)
		if text == "" {
			return
		}
		sections = append(sections, domain.Section{
			Text:       text,
			Provenance: provenance(filename, ordinal, title),
		})
		ordinal++
	}

	for _, m := range matches {
		// Everything since the previous header belongs to the previous
		// section, so each emitted section starts with its heading line.
		emit(text[lastStart:m[0]])
		title = text[m[4]:m[5]]
		lastStart = m[0]
	}
	emit(text[lastStart:])

	return sections, nil
}

func provenance(filename string, ordinal int, title string) domain.Provenance {
	return domain.Provenance{
		DocumentName: filename,
		SourceType:   "markdown",
		Kind:         domain.ProvenanceSectioned,
		Section:      ordinal,
		SectionTitle: title,
	}
}

// decode interprets the bytes as UTF-8, falling back to Latin-1 when the
// bytes are not valid UTF-8. Decoding never fails.
func decode(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return string(runes)
}
