// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - TokenCounter: Deterministic token counting for chunk budgets
//   - Extractor: Converts raw file bytes of one format into sections
//   - ExtractorRegistry: Selects the extractor for a filename
//   - Chunker: Splits sections into token-bounded chunks
//   - EmbeddingService: Generates vector embeddings
//   - GeneratorService: Produces grounded answer text from a prompt
//   - VectorStore: Persists embedded chunks and answers top-K queries
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
