// Package pdf extracts page-wise text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents. It emits one section per page that
// contains extractable text; pages with no text are skipped rather than
// emitted empty.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract reads the PDF and produces one section per non-blank page with
// 1-based page numbers and the total page count.
func (e *Extractor) Extract(_ context.Context, content []byte, filename string) ([]domain.Section, error) {
	reader, err := lpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, &domain.ExtractionError{Filename: filename, Err: err}
	}

	total := reader.NumPage()
	pages := make([]pageText, 0, total)
	for num := 1; num <= total; num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &domain.ExtractionError{Filename: filename, Err: err}
		}
		pages = append(pages, pageText{Number: num, Text: text})
	}

	return assemble(pages, total, filename), nil
}

// pageText is the raw text of one page before blank filtering.
type pageText struct {
	Number int
	Text   string
}

// assemble turns extracted page texts into sections, skipping pages whose
// text is empty after whitespace stripping. Page numbers keep their
// original 1-based values even when earlier pages are skipped.
func assemble(pages []pageText, totalPages int, filename string) []domain.Section {
	var sections []domain.Section
	for _, page := range pages {
		text := strings.TrimSpace(page.Text)
		if text == "" {
			continue
		}
		sections = append(sections, domain.Section{
			Text: text,
			Provenance: domain.Provenance{
				DocumentName: filename,
				SourceType:   "pdf",
				Kind:         domain.ProvenancePaginated,
				Page:         page.Number,
				TotalPages:   totalPages,
			},
		})
	}
	return sections
}
