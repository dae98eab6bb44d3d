package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns raw document bytes into embedded, stored chunks.
type IngestService struct {
	registry driven.ExtractorRegistry
	chunker  driven.Chunker
	store    driven.VectorStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	registry driven.ExtractorRegistry,
	chunker driven.Chunker,
	store driven.VectorStore,
) *IngestService {
	return &IngestService{
		registry: registry,
		chunker:  chunker,
		store:    store,
	}
}

// Process extracts and chunks a document without storing anything. It
// is the dry-run half of ingestion and is also used by Index.
func (s *IngestService) Process(ctx context.Context, content []byte, filename string) ([]domain.Chunk, error) {
	logger.Section("Document Processing")
	logger.Debug("File: %s (%d bytes)", filename, len(content))

	if len(content) == 0 {
		return nil, fmt.Errorf("process %s: %w: empty file", filename, domain.ErrInvalidInput)
	}

	sections, err := s.registry.Extract(ctx, content, filename)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", filename, err)
	}
	logger.Debug("Extracted %d sections", len(sections))

	chunks := s.chunker.Chunk(sections)
	logger.Info("Produced %d chunks from %s", len(chunks), filename)

	return chunks, nil
}

// Index embeds and stores previously processed chunks. Returns the
// number of chunks stored.
func (s *IngestService) Index(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if len(chunks) == 0 {
		logger.Warn("No chunks to store")
		return 0, nil
	}

	stored, err := s.store.Add(ctx, chunks)
	if err != nil {
		return stored, fmt.Errorf("index: %w", err)
	}
	logger.Info("Stored %d chunks", stored)

	return stored, nil
}
