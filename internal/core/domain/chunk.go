package domain

// Chunk is a token-bounded slice of a section's text, the unit stored in and
// retrieved from the similarity index.
//
// Chunk IDs start at zero and increase strictly, with no gaps, across all
// sections of one ingestion run. They are scoped to that run: concurrent
// ingestions may assign overlapping IDs to different batches, so audit
// tooling must key on (document name, chunk ID), never chunk ID alone.
type Chunk struct {
	// ID is the chunk's ordinal within its ingestion run.
	ID int

	// Content is the chunk text.
	Content string

	// Provenance is copied from the originating section. Chunks from the
	// same section differ only in ID, Content and TokenCount.
	Provenance Provenance

	// TokenCount is the token count of Content under the fixed encoding.
	// It stays within the configured chunk size except when a single word
	// alone exceeds the budget.
	TokenCount int
}
