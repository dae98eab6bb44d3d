// Package tokenizer provides token counting over the cl100k_base encoding.
// Every chunk-budget decision in the pipeline goes through this adapter, so
// the encoding is fixed for the lifetime of a deployment: counting with one
// encoding and comparing against budgets computed with another produces
// meaningless results.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.TokenCounter = (*Tokenizer)(nil)

// Encoding is the fixed tokenization scheme.
const Encoding = "cl100k_base"

// Tokenizer counts tokens using the tiktoken cl100k_base encoding.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New creates a tokenizer. It fails if the encoding cannot be loaded.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", Encoding, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// Count returns the number of cl100k_base tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
