// Package chunker converts extracted sections into token-bounded chunks
// with sentence-aware boundaries and trailing-context overlap.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default token budget per chunk.
const DefaultChunkSize = 750

// DefaultChunkOverlap is the default token budget for trailing context
// carried from one chunk into the next.
const DefaultChunkOverlap = 100

// sentenceBoundary is a heuristic, not grammatical sentence detection:
// a break point exists at whitespace following `.`, `!` or `?` when the
// next character is an uppercase letter. It may over- or under-split on
// abbreviations, decimals, or non-Latin scripts.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+[A-Z]`)

// Chunker splits sections into chunks of at most chunkSize tokens, carrying
// up to overlap tokens of whole-sentence trailing context between
// consecutive chunks of the same section. Overlap never crosses section
// boundaries.
type Chunker struct {
	counter   driven.TokenCounter
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the token budget per chunk.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap token budget.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker. An overlap at or above the chunk size would make
// every flush re-seed a full buffer, so it is rejected rather than clamped.
func New(counter driven.TokenCounter, opts ...Option) (*Chunker, error) {
	c := &Chunker{
		counter:   counter,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.counter == nil {
		return nil, fmt.Errorf("chunker: token counter is required")
	}
	if c.chunkSize <= 0 {
		return nil, fmt.Errorf("chunker: chunk size must be positive, got %d: %w",
			c.chunkSize, domain.ErrInvalidConfig)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("chunker: overlap must not be negative, got %d: %w",
			c.overlap, domain.ErrInvalidConfig)
	}
	if c.overlap >= c.chunkSize {
		return nil, fmt.Errorf("chunker: overlap %d must be smaller than chunk size %d: %w",
			c.overlap, c.chunkSize, domain.ErrInvalidConfig)
	}

	return c, nil
}

// Chunk converts sections into chunks. IDs start at zero and increase
// strictly across all sections of the call; the counter is local to the
// call, so concurrent runs never coordinate (and may legitimately assign
// overlapping IDs to different batches).
func (c *Chunker) Chunk(sections []domain.Section) []domain.Chunk {
	var chunks []domain.Chunk
	nextID := 0

	for _, section := range sections {
		sentences := splitSentences(section.Text)

		emit := func(content string) {
			chunks = append(chunks, domain.Chunk{
				ID:         nextID,
				Content:    content,
				Provenance: section.Provenance,
				TokenCount: c.counter.Count(content),
			})
			nextID++
		}

		var buf []string
		bufTokens := 0

		for _, sentence := range sentences {
			tokens := c.counter.Count(sentence)

			switch {
			case tokens > c.chunkSize:
				// A single sentence over budget: flush the pending buffer
				// without overlap seeding, then split at word boundaries.
				// The last partial word group becomes the new buffer.
				if len(buf) > 0 {
					emit(strings.Join(buf, " "))
				}
				buf, bufTokens = c.splitWords(sentence, emit)

			case bufTokens+tokens <= c.chunkSize:
				buf = append(buf, sentence)
				bufTokens += tokens

			default:
				emit(strings.Join(buf, " "))
				if overlap := c.overlapSuffix(buf); overlap != "" {
					buf = []string{overlap, sentence}
				} else {
					buf = []string{sentence}
				}
				bufTokens = c.counter.Count(strings.Join(buf, " "))
			}
		}

		// Flush whatever remains for this section; overlap never carries
		// into the next section.
		if len(buf) > 0 {
			emit(strings.Join(buf, " "))
		}
	}

	return chunks
}

// splitWords splits an oversized sentence at word boundaries, emitting each
// full word group as its own chunk and returning the final partial group as
// the new pending buffer. A single word is never split further, so a group
// holding one oversized word may exceed the budget by that word's cost.
func (c *Chunker) splitWords(sentence string, emit func(string)) ([]string, int) {
	var group []string
	groupTokens := 0

	for _, word := range strings.Fields(sentence) {
		wordTokens := c.counter.Count(word + " ")
		if groupTokens+wordTokens > c.chunkSize {
			if len(group) > 0 {
				emit(strings.Join(group, " "))
			}
			group = []string{word}
			groupTokens = wordTokens
		} else {
			group = append(group, word)
			groupTokens += wordTokens
		}
	}

	return group, groupTokens
}

// overlapSuffix walks the flushed sentences backward, keeping whole
// sentences while their cumulative token count stays within the overlap
// budget. The result is a suffix of the flushed chunk's content.
func (c *Chunker) overlapSuffix(sentences []string) string {
	var kept []string
	total := 0

	for i := len(sentences) - 1; i >= 0; i-- {
		tokens := c.counter.Count(sentences[i])
		if total+tokens > c.overlap {
			break
		}
		kept = append([]string{sentences[i]}, kept...)
		total += tokens
	}

	return strings.Join(kept, " ")
}

// splitSentences splits text at heuristic sentence boundaries. The
// terminating punctuation stays with the left sentence; the uppercase
// letter that triggered the break starts the next one.
func splitSentences(text string) []string {
	locs := sentenceBoundary.FindAllStringIndex(text, -1)

	var sentences []string
	start := 0
	for _, loc := range locs {
		// loc[0] is the punctuation mark, loc[1]-1 the uppercase letter.
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1] - 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
