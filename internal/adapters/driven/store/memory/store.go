// Package memory provides an in-memory vector store. It is used for
// tests and for trying the pipeline without a MongoDB deployment;
// nothing survives process exit.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// record is a stored embedded chunk. batchID groups all chunks written
// by one Add call.
type record struct {
	chunkID    int
	batchID    string
	content    string
	embedding  []float32
	provenance domain.Provenance
}

// Store holds embedded chunks in memory.
type Store struct {
	mu       sync.RWMutex
	records  []record
	embedder driven.EmbeddingService
}

// NewStore creates an empty in-memory store.
func NewStore(embedder driven.EmbeddingService) *Store {
	return &Store{embedder: embedder}
}

// Add embeds each chunk and stores it. Returns the number of chunks
// stored; on error the count covers chunks stored before the failure.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	batchID := uuid.New().String()
	written := 0

	for _, chunk := range chunks {
		embedding, err := s.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			return written, fmt.Errorf("memory: embed chunk %d: %w", chunk.ID, err)
		}

		s.mu.Lock()
		s.records = append(s.records, record{
			chunkID:    chunk.ID,
			batchID:    batchID,
			content:    chunk.Content,
			embedding:  embedding,
			provenance: chunk.Provenance,
		})
		s.mu.Unlock()
		written++
	}

	return written, nil
}

// Search ranks stored chunks by cosine similarity to the query and
// returns the top k. Ties keep insertion order.
func (s *Store) Search(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("memory: %w: k must be at least 1, got %d", domain.ErrInvalidInput, k)
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("memory: embed query: %w", err)
	}

	s.mu.RLock()
	results := make([]domain.RetrievalResult, 0, len(s.records))
	for _, rec := range s.records {
		results = append(results, domain.RetrievalResult{
			Content:    rec.content,
			Provenance: rec.provenance,
			ChunkID:    rec.chunkID,
			Score:      cosineSimilarity(embedding, rec.embedding),
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// Delete removes all chunks belonging to the named document and returns
// how many were removed.
func (s *Store) Delete(_ context.Context, documentName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	removed := 0
	for _, rec := range s.records {
		if rec.provenance.DocumentName == documentName {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept

	return removed, nil
}

// Clear removes every stored chunk and returns how many were removed.
func (s *Store) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.records)
	s.records = nil

	return removed, nil
}

// ListDocuments returns the distinct document names present in the
// store, sorted alphabetically.
func (s *Store) ListDocuments(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, rec := range s.records {
		if !seen[rec.provenance.DocumentName] {
			seen[rec.provenance.DocumentName] = true
			names = append(names, rec.provenance.DocumentName)
		}
	}
	sort.Strings(names)

	return names, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.records)), nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close(_ context.Context) error {
	return nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths and zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
