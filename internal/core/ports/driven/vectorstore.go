package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// VectorStore persists embedded chunks and answers top-K nearest-neighbour
// queries. Stored records are exclusively owned by the store; no external
// aliasing.
//
// Implementations must be safe for concurrent Add/Search/Delete from
// multiple callers. No client-side locking is assumed; correctness relies
// on the backing store's own concurrency control.
type VectorStore interface {
	// Add embeds each chunk's content and stores one record per chunk.
	// It returns the number of records written. There is no transactional
	// rollback: on partial failure, already-written records remain, so
	// callers must treat the operation as at-least-partial.
	Add(ctx context.Context, chunks []domain.Chunk) (int, error)

	// Search embeds the query text and returns at most k results sorted by
	// descending score. Callers must not depend on which search strategy
	// produced the results.
	Search(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error)

	// Delete removes all records whose document name matches exactly,
	// returning the number removed.
	Delete(ctx context.Context, documentName string) (int, error)

	// Clear removes all records, returning the number removed.
	Clear(ctx context.Context) (int, error)

	// ListDocuments returns the distinct document names in the store.
	ListDocuments(ctx context.Context) ([]string, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// Close releases the store's resources.
	Close(ctx context.Context) error
}
