// Package domain defines the core business entities for askdoc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Section: A structurally coherent unit of extracted text
//   - Provenance: Where a section came from within its source document
//   - Chunk: A token-bounded slice of a section, the unit of retrieval
//   - RetrievalResult: A ranked similarity-search hit
//   - Answer: A grounded answer with its cited sources
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
