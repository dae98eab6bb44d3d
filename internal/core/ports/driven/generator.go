package driven

import "context"

// GeneratorService produces answer text from a composed prompt.
//
// Generation failures are non-fatal for a query: the orchestrator surfaces
// them inline as the answer text rather than aborting, so a failed
// generation never corrupts already-ingested state.
//
// Implementations may include:
//   - Google Gemini (gemini-2.0-flash-lite)
//   - OpenAI (gpt-4o-mini)
type GeneratorService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
