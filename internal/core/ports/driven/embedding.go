package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Stored records and query-time vectors must come from the same model and
// dimension or similarity comparisons are meaningless. This is a
// configuration contract, not validated at runtime.
//
// Implementations may include:
//   - Google Gemini (text-embedding-004)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Deterministic for identical text under a fixed model version.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
