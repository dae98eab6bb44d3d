// Package plaintext extracts plain text documents as a single section.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. The whole file becomes one
// section with ordinal 1 and no title.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract decodes the bytes and emits the whole text as a single section.
// Files that are empty after whitespace stripping produce no sections.
func (e *Extractor) Extract(_ context.Context, content []byte, filename string) ([]domain.Section, error) {
	text := strings.TrimSpace(decode(content))
	if text == "" {
		return nil, nil
	}

	return []domain.Section{{
		Text: text,
		Provenance: domain.Provenance{
			DocumentName: filename,
			SourceType:   "text",
			Kind:         domain.ProvenanceSectioned,
			Section:      1,
		},
	}}, nil
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
