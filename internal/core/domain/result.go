package domain

// RetrievalResult is a single similarity-search hit. Score direction is
// consistent across search strategies: higher means more similar.
type RetrievalResult struct {
	// Content is the stored chunk text.
	Content string

	// Provenance locates the chunk within its source document.
	Provenance Provenance

	// ChunkID is the chunk's ordinal within its ingestion run.
	ChunkID int

	// Score is the similarity measure that ranked this result.
	Score float64
}

// Source is a citation entry attached to an answer.
type Source struct {
	// Document is the source document name.
	Document string

	// Location is the human-readable position within the document.
	Location string

	// Content is the full retrieved chunk text.
	Content string

	// Score is the retrieval similarity score.
	Score float64
}

// Snippet returns the source content truncated to at most max runes for
// display. Content shorter than max is returned unchanged.
func (s Source) Snippet(max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s.Content)
	if len(runes) <= max {
		return s.Content
	}
	return string(runes[:max]) + "..."
}

// Answer is the result of a grounded question-answering run.
type Answer struct {
	// Answer is the generated text, or a sentinel message when no grounding
	// was found.
	Answer string

	// Sources lists one entry per retrieved chunk, in rank order.
	Sources []Source

	// HasSources reports whether the answer is backed by retrieved content.
	HasSources bool
}
