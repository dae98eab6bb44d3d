package driving

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// IngestService turns uploaded documents into stored, embedded chunks.
type IngestService interface {
	// Process extracts and chunks a document. It fails with
	// domain.ErrUnsupportedFormat for unknown extensions and
	// *domain.ExtractionError for unreadable bytes.
	Process(ctx context.Context, content []byte, filename string) ([]domain.Chunk, error)

	// Index embeds and persists processed chunks, returning the number of
	// records written. Partial writes remain on failure.
	Index(ctx context.Context, chunks []domain.Chunk) (int, error)
}
