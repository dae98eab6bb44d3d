package driving

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// QueryService answers questions grounded in the indexed documents.
type QueryService interface {
	// Ask retrieves relevant chunks for the question and produces a grounded
	// answer with citations. When the index is empty or retrieval finds
	// nothing, it short-circuits with a sentinel answer instead of calling
	// the generator.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
