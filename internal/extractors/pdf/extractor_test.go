package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func TestExtractor_Extensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().Extensions())
}

func TestExtractor_Extract_InvalidPDF(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("not a pdf"), "broken.pdf")

	var extractionErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "broken.pdf", extractionErr.Filename)
}

func TestAssemble(t *testing.T) {
	pages := []pageText{
		{Number: 1, Text: "First page text."},
		{Number: 2, Text: "   \n  "},
		{Number: 3, Text: "Third page text.\n"},
	}

	sections := assemble(pages, 3, "report.pdf")
	require.Len(t, sections, 2)

	assert.Equal(t, "First page text.", sections[0].Text)
	assert.Equal(t, domain.Provenance{
		DocumentName: "report.pdf",
		SourceType:   "pdf",
		Kind:         domain.ProvenancePaginated,
		Page:         1,
		TotalPages:   3,
	}, sections[0].Provenance)

	// The blank page is skipped but page numbering is preserved.
	assert.Equal(t, "Third page text.", sections[1].Text)
	assert.Equal(t, 3, sections[1].Provenance.Page)
	assert.Equal(t, 3, sections[1].Provenance.TotalPages)
}

func TestAssemble_AllBlank(t *testing.T) {
	pages := []pageText{
		{Number: 1, Text: ""},
		{Number: 2, Text: "  "},
	}

	sections := assemble(pages, 2, "scan.pdf")
	assert.Empty(t, sections)
}

func TestAssemble_LocationString(t *testing.T) {
	sections := assemble([]pageText{{Number: 4, Text: "text"}}, 9, "doc.pdf")
	require.Len(t, sections, 1)
	assert.Equal(t, "Page 4 of 9", sections[0].Provenance.Location())
}
