package driven

// TokenCounter counts tokens in a text unit under one fixed, versioned
// encoding. All chunk-budget decisions depend on it, so implementations must
// be deterministic: identical text always yields an identical count. Mixing
// encodings across runs invalidates token-budget comparisons and is not
// guarded against.
type TokenCounter interface {
	// Count returns the number of tokens in text. Never negative.
	Count(text string) int
}
