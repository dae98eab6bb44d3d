package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// mockRegistry returns canned sections for any file.
type mockRegistry struct {
	sections []domain.Section
	err      error
	filename string
}

func (m *mockRegistry) Extract(_ context.Context, _ []byte, filename string) ([]domain.Section, error) {
	m.filename = filename
	return m.sections, m.err
}

func (m *mockRegistry) Supported() []string { return []string{".txt"} }

// mockChunker returns canned chunks.
type mockChunker struct {
	chunks   []domain.Chunk
	sections []domain.Section
}

func (m *mockChunker) Chunk(sections []domain.Section) []domain.Chunk {
	m.sections = sections
	return m.chunks
}

// mockAddStore overrides Add on top of the query test store.
type mockAddStore struct {
	mockVectorStore
	added  []domain.Chunk
	addN   int
	addErr error
}

func (m *mockAddStore) Add(_ context.Context, chunks []domain.Chunk) (int, error) {
	m.added = chunks
	if m.addErr != nil {
		return m.addN, m.addErr
	}
	return len(chunks), nil
}

func testSections() []domain.Section {
	return []domain.Section{
		{
			Text: "Some text.",
			Provenance: domain.Provenance{
				DocumentName: "a.txt",
				SourceType:   "text",
				Kind:         domain.ProvenanceSectioned,
				Section:      1,
			},
		},
	}
}

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: 0, Content: "Some text.", TokenCount: 2},
	}
}

func TestIngestService_Process(t *testing.T) {
	registry := &mockRegistry{sections: testSections()}
	chunkerMock := &mockChunker{chunks: testChunks()}
	svc := NewIngestService(registry, chunkerMock, &mockAddStore{})

	chunks, err := svc.Process(context.Background(), []byte("Some text."), "a.txt")
	require.NoError(t, err)

	assert.Equal(t, testChunks(), chunks)
	assert.Equal(t, "a.txt", registry.filename)
	assert.Equal(t, testSections(), chunkerMock.sections)
}

func TestIngestService_Process_EmptyContent(t *testing.T) {
	svc := NewIngestService(&mockRegistry{}, &mockChunker{}, &mockAddStore{})

	_, err := svc.Process(context.Background(), nil, "a.txt")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestService_Process_ExtractionError(t *testing.T) {
	registry := &mockRegistry{err: domain.ErrUnsupportedFormat}
	svc := NewIngestService(registry, &mockChunker{}, &mockAddStore{})

	_, err := svc.Process(context.Background(), []byte("data"), "a.xyz")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngestService_Index(t *testing.T) {
	store := &mockAddStore{}
	svc := NewIngestService(&mockRegistry{}, &mockChunker{}, store)

	stored, err := svc.Index(context.Background(), testChunks())
	require.NoError(t, err)

	assert.Equal(t, 1, stored)
	assert.Equal(t, testChunks(), store.added)
}

func TestIngestService_Index_NoChunks(t *testing.T) {
	store := &mockAddStore{}
	svc := NewIngestService(&mockRegistry{}, &mockChunker{}, store)

	stored, err := svc.Index(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, stored)
	assert.Nil(t, store.added, "store should not be touched without chunks")
}

func TestIngestService_Index_StoreError(t *testing.T) {
	store := &mockAddStore{addErr: errors.New("write failed"), addN: 0}
	svc := NewIngestService(&mockRegistry{}, &mockChunker{}, store)

	stored, err := svc.Index(context.Background(), testChunks())
	assert.Error(t, err)
	assert.Equal(t, 0, stored)
}
