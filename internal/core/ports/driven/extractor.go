package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// Extractor converts raw file bytes of one known format into an ordered
// sequence of sections. Each extractor handles specific file extensions.
type Extractor interface {
	// Extensions returns the lowercased file extensions this extractor
	// handles, including the leading dot (e.g. ".pdf").
	Extensions() []string

	// Extract produces the document's sections in source order. Sections
	// are whitespace-stripped and never empty. Library failures are
	// returned as *domain.ExtractionError; there is no partial result.
	Extract(ctx context.Context, content []byte, filename string) ([]domain.Section, error)
}

// ExtractorRegistry dispatches extraction by file extension.
type ExtractorRegistry interface {
	// Extract selects the extractor for filename's extension and runs it.
	// Unknown extensions fail with domain.ErrUnsupportedFormat.
	Extract(ctx context.Context, content []byte, filename string) ([]domain.Section, error)

	// Supported returns the sorted list of supported extensions.
	Supported() []string
}
