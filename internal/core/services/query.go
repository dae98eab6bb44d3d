package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

const (
	// NotFoundResponse is returned when the retrieved context does not
	// answer the question.
	NotFoundResponse = "I couldn't find this information in the uploaded document."

	// noDocumentsResponse is returned when the store holds no chunks.
	noDocumentsResponse = "No documents have been uploaded yet. Please upload a document first."

	// DefaultTopK is the default number of chunks retrieved per question.
	DefaultTopK = 5

	// answerTemperature keeps generation close to the provided context.
	answerTemperature = 0.1
)

// systemPrompt instructs the model to answer only from retrieved
// context and to cite its sources.
const systemPrompt = `You are a helpful document assistant. Your task is to answer questions based ONLY on the provided context from uploaded documents.

IMPORTANT RULES:
1. ONLY use information from the provided context to answer questions
2. If the answer is not found in the context, respond with: "I couldn't find this information in the uploaded document."
3. Always cite your sources by referencing the document name and section/page
4. Be concise but thorough in your answers
5. If the context contains partial information, acknowledge what you found and what's missing

Format your response as:
- Answer the question directly
- Include citations in [Document: X, Page/Section: Y] format`

// noInfoPhrases mark answers where the model admitted the context did
// not contain the information. Matching is case-insensitive.
var noInfoPhrases = []string{
	"not found in",
	"no information",
	"cannot find",
	"don't have information",
	"not mentioned",
	"not available in",
	"context does not contain",
	"context doesn't contain",
}

// QueryService answers questions against the stored document chunks.
type QueryService struct {
	store     driven.VectorStore
	generator driven.GeneratorService
	topK      int
}

// NewQueryService creates a new query service. topK values below 1 fall
// back to the default.
func NewQueryService(store driven.VectorStore, generator driven.GeneratorService, topK int) *QueryService {
	if topK < 1 {
		topK = DefaultTopK
	}

	return &QueryService{
		store:     store,
		generator: generator,
		topK:      topK,
	}
}

// Ask runs the full retrieval and generation pipeline for a question.
func (s *QueryService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	logger.Section("Query Execution")
	logger.Debug("Question: %q", question)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("ask: %w: empty question", domain.ErrInvalidInput)
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("ask: count chunks: %w", err)
	}
	if count == 0 {
		logger.Debug("Store is empty, skipping retrieval")
		return &domain.Answer{Answer: noDocumentsResponse}, nil
	}

	results, err := s.store.Search(ctx, question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("ask: search: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(results))

	if len(results) == 0 {
		return &domain.Answer{Answer: NotFoundResponse}, nil
	}

	answer := s.generateAnswer(ctx, question, results)
	sources := buildSources(results)

	return &domain.Answer{
		Answer:     answer,
		Sources:    sources,
		HasSources: len(sources) > 0 && answer != NotFoundResponse,
	}, nil
}

// generateAnswer prompts the model with the retrieved context. Model
// failures are reported inline so the caller still gets the sources.
func (s *QueryService) generateAnswer(ctx context.Context, question string, results []domain.RetrievalResult) string {
	prompt := fmt.Sprintf(`%s

CONTEXT FROM DOCUMENTS:
%s

USER QUESTION: %s

Please provide a comprehensive answer based on the context above, with proper citations.`,
		systemPrompt, formatContext(results), question)

	answer, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		return fmt.Sprintf("Error generating answer: %v", err)
	}

	if isNoInfoResponse(answer) {
		logger.Debug("Model reported no relevant information")
		return NotFoundResponse
	}

	return answer
}

// formatContext renders retrieved chunks as numbered context blocks for
// the prompt.
func formatContext(results []domain.RetrievalResult) string {
	parts := make([]string, 0, len(results))
	for i, res := range results {
		parts = append(parts, fmt.Sprintf("[Source %d: %s - %s]\n%s\n",
			i+1, res.Provenance.DocumentName, res.Provenance.Location(), res.Content))
	}

	return strings.Join(parts, "\n---\n")
}

// buildSources converts retrieval results into display sources.
func buildSources(results []domain.RetrievalResult) []domain.Source {
	sources := make([]domain.Source, 0, len(results))
	for _, res := range results {
		sources = append(sources, domain.Source{
			Document: res.Provenance.DocumentName,
			Location: res.Provenance.Location(),
			Content:  res.Content,
			Score:    res.Score,
		})
	}

	return sources
}

// isNoInfoResponse reports whether the answer admits the context lacked
// the information.
func isNoInfoResponse(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range noInfoPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	return false
}
