// Package mongo provides a vector store adapter backed by MongoDB.
//
// Search uses the Atlas $vectorSearch aggregation stage when available
// and falls back to a client-side cosine similarity scan against a
// standard MongoDB deployment when the stage is not supported.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

const (
	// DefaultDatabase is the default database name.
	DefaultDatabase = "askdoc"

	// DefaultCollection is the default collection name.
	DefaultCollection = "document_chunks"

	// VectorIndexName is the Atlas search index the $vectorSearch stage
	// queries against.
	VectorIndexName = "vector_index"
)

// Config holds connection settings for the store.
type Config struct {
	// URI is the MongoDB connection string (required).
	URI string

	// Database is the database name (default: askdoc).
	Database string

	// Collection is the collection name (default: document_chunks).
	Collection string
}

// Store persists embedded chunks in a MongoDB collection.
type Store struct {
	client   *mongo.Client
	coll     *mongo.Collection
	embedder driven.EmbeddingService
}

// record is the stored form of an embedded chunk. BatchID groups all
// chunks written by one Add call.
type record struct {
	ChunkID   int            `bson:"chunk_id"`
	BatchID   string         `bson:"batch_id"`
	Content   string         `bson:"content"`
	Embedding []float32      `bson:"embedding"`
	Metadata  recordMetadata `bson:"metadata"`
}

// recordMetadata carries chunk provenance. Optional fields are omitted
// so a document's stored shape matches its provenance kind.
type recordMetadata struct {
	DocumentName string `bson:"document_name"`
	SourceType   string `bson:"source_type,omitempty"`
	Page         int    `bson:"page,omitempty"`
	TotalPages   int    `bson:"total_pages,omitempty"`
	Section      int    `bson:"section,omitempty"`
	SectionTitle string `bson:"section_title,omitempty"`
}

// NewStore connects to MongoDB and prepares the chunk collection.
func NewStore(ctx context.Context, cfg Config, embedder driven.EmbeddingService) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: connection URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w: %v", domain.ErrConnectionFailed, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w: %v", domain.ErrConnectionFailed, err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)

	// Speeds up per-document deletion and listing. Index creation is
	// idempotent so reconnecting is safe.
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "metadata.document_name", Value: 1}},
	})
	if err != nil {
		logger.Warn("mongo: create index: %v", err)
	}

	logger.Debug("mongo: connected to %s.%s", cfg.Database, cfg.Collection)

	return &Store{client: client, coll: coll, embedder: embedder}, nil
}

// Add embeds each chunk and inserts it into the collection. All chunks
// from one call share a batch identifier. Returns the number of chunks
// written; on error the count covers chunks written before the failure.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	batchID := uuid.New().String()
	written := 0

	for _, chunk := range chunks {
		embedding, err := s.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			return written, fmt.Errorf("mongo: embed chunk %d: %w", chunk.ID, err)
		}

		rec := record{
			ChunkID:   chunk.ID,
			BatchID:   batchID,
			Content:   chunk.Content,
			Embedding: embedding,
			Metadata:  toMetadata(chunk.Provenance),
		}
		if _, err := s.coll.InsertOne(ctx, rec); err != nil {
			return written, fmt.Errorf("mongo: insert chunk %d: %w", chunk.ID, err)
		}
		written++
	}

	logger.Debug("mongo: stored %d chunks (batch %s)", written, batchID)

	return written, nil
}

// Search returns the k most similar chunks to the query. It first tries
// the $vectorSearch aggregation stage and falls back to a client-side
// scan only when the server reports the stage as unsupported.
func (s *Store) Search(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("mongo: %w: k must be at least 1, got %d", domain.ErrInvalidInput, k)
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mongo: embed query: %w", err)
	}

	results, err := s.vectorSearch(ctx, embedding, k)
	if err != nil {
		if !isUnsupportedVectorSearch(err) {
			return nil, err
		}
		logger.Debug("mongo: $vectorSearch unavailable, scanning collection")
		return s.scanSearch(ctx, embedding, k)
	}

	return results, nil
}

// vectorSearch runs the Atlas $vectorSearch aggregation pipeline.
func (s *Store) vectorSearch(ctx context.Context, embedding []float32, k int) ([]domain.RetrievalResult, error) {
	numCandidates := k * 10
	if numCandidates < k {
		numCandidates = k
	}

	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: VectorIndexName},
			{Key: "path", Value: "embedding"},
			{Key: "queryVector", Value: embedding},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: k},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "chunk_id", Value: 1},
			{Key: "content", Value: 1},
			{Key: "metadata", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo: vector search: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ChunkID  int            `bson:"chunk_id"`
		Content  string         `bson:"content"`
		Metadata recordMetadata `bson:"metadata"`
		Score    float64        `bson:"score"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: vector search decode: %w", err)
	}

	results := make([]domain.RetrievalResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, domain.RetrievalResult{
			Content:    doc.Content,
			Provenance: fromMetadata(doc.Metadata),
			ChunkID:    doc.ChunkID,
			Score:      doc.Score,
		})
	}

	return results, nil
}

// scanSearch loads every stored embedding and ranks chunks by cosine
// similarity client-side. Correct on any MongoDB deployment but scales
// linearly with collection size.
func (s *Store) scanSearch(ctx context.Context, embedding []float32, k int) ([]domain.RetrievalResult, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo: scan search: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.RetrievalResult
	for cursor.Next(ctx) {
		var rec record
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("mongo: scan search decode: %w", err)
		}
		results = append(results, domain.RetrievalResult{
			Content:    rec.Content,
			Provenance: fromMetadata(rec.Metadata),
			ChunkID:    rec.ChunkID,
			Score:      cosineSimilarity(embedding, rec.Embedding),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo: scan search cursor: %w", err)
	}

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
func (s *Store) Delete(ctx context.Context, documentName string) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "metadata.document_name", Value: documentName}})
	if err != nil {
		return 0, fmt.Errorf("mongo: delete document %q: %w", documentName, err)
	}

	return int(res.DeletedCount), nil
}

// Clear removes every stored chunk and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongo: clear: %w", err)
	}

	return int(res.DeletedCount), nil
}

// ListDocuments returns the distinct document names present in the
// store, sorted alphabetically.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$metadata.document_name"}}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo: list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Name string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list documents decode: %w", err)
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}
	sort.Strings(names)

	return names, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongo: count: %w", err)
	}

	return count, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo: disconnect: %w", err)
	}

	return nil
}

// toMetadata converts chunk provenance into its stored form.
func toMetadata(p domain.Provenance) recordMetadata {
	meta := recordMetadata{
		DocumentName: p.DocumentName,
		SourceType:   p.SourceType,
	}
	switch p.Kind {
	case domain.ProvenancePaginated:
		meta.Page = p.Page
		meta.TotalPages = p.TotalPages
	case domain.ProvenanceSectioned:
		meta.Section = p.Section
		meta.SectionTitle = p.SectionTitle
	}

	return meta
}

// fromMetadata reconstructs provenance from its stored form. The kind
// is inferred from which optional fields are present.
func fromMetadata(meta recordMetadata) domain.Provenance {
	p := domain.Provenance{
		DocumentName: meta.DocumentName,
		SourceType:   meta.SourceType,
		Kind:         domain.ProvenanceWhole,
	}
	switch {
	case meta.Page > 0:
		p.Kind = domain.ProvenancePaginated
		p.Page = meta.Page
		p.TotalPages = meta.TotalPages
	case meta.Section > 0:
		p.Kind = domain.ProvenanceSectioned
		p.Section = meta.Section
		p.SectionTitle = meta.SectionTitle
	}

	return p
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

// isUnsupportedVectorSearch reports whether the error indicates the
// server does not support the $vectorSearch stage, which happens on
// standard (non-Atlas) MongoDB deployments.
func isUnsupportedVectorSearch(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 40324: unrecognized pipeline stage. 31082: search not enabled.
		if cmdErr.Code == 40324 || cmdErr.Code == 31082 {
			return true
		}
		return strings.Contains(cmdErr.Message, "$vectorSearch")
	}

	return false
}
