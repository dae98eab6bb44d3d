package driven

import "github.com/custodia-labs/askdoc-cli/internal/core/domain"

// Chunker splits sections into token-bounded chunks with overlap carried
// between consecutive chunks of the same section.
//
// Chunk IDs are scoped to a single call: they start at zero and increase
// strictly across all sections passed in. Identical sections and identical
// configuration produce identical chunk boundaries and IDs.
type Chunker interface {
	// Chunk converts the sections into chunks, preserving source order.
	Chunk(sections []domain.Section) []domain.Chunk
}
