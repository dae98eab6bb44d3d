package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates an internally inconsistent configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat indicates a file extension with no registered
	// extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrConnectionFailed indicates the vector store backend could not be
	// reached.
	ErrConnectionFailed = errors.New("connection failed")
)

// ExtractionError reports a failure while extracting text from a
// document, keeping the filename for diagnostics.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
