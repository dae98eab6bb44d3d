package domain

import "fmt"

// SectionTitleStart is the sentinel title for content that precedes the first
// heading of a structured document.
const SectionTitleStart = "Document Start"

// ProvenanceKind discriminates how a section was carved out of its source.
type ProvenanceKind string

const (
	// ProvenanceWhole marks content with no finer-grained location.
	ProvenanceWhole ProvenanceKind = "whole"

	// ProvenancePaginated marks content extracted from a single page.
	ProvenancePaginated ProvenanceKind = "paginated"

	// ProvenanceSectioned marks content from a heading-delimited block.
	ProvenanceSectioned ProvenanceKind = "sectioned"
)

// Provenance records where a piece of text came from.
// The Kind field selects which location fields are meaningful:
// Page/TotalPages for paginated sources, Section/SectionTitle for
// heading-delimited sources, neither for whole-document content.
type Provenance struct {
	// DocumentName is the original filename of the source document.
	DocumentName string

	// SourceType is the source format ("pdf", "docx", "markdown", "text").
	SourceType string

	// Kind selects the location fields below.
	Kind ProvenanceKind

	// Page is the 1-based page number (ProvenancePaginated only).
	Page int

	// TotalPages is the page count of the source (ProvenancePaginated only).
	TotalPages int

	// Section is the 1-based section ordinal (ProvenanceSectioned only).
	Section int

	// SectionTitle is the heading text, empty when the section has no heading
	// (ProvenanceSectioned only).
	SectionTitle string
}

// Location builds a human-readable location string for citations.
// The sentinel "Document Start" title is not repeated in locations.
func (p Provenance) Location() string {
	switch p.Kind {
	case ProvenancePaginated:
		if p.TotalPages > 0 {
			return fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages)
		}
		return fmt.Sprintf("Page %d", p.Page)
	case ProvenanceSectioned:
		loc := fmt.Sprintf("Section %d", p.Section)
		if p.SectionTitle != "" && p.SectionTitle != SectionTitleStart {
			loc += fmt.Sprintf(", '%s'", p.SectionTitle)
		}
		return loc
	default:
		return "Full Document"
	}
}

// Section is a structurally coherent unit of extracted text: a page, a
// heading-delimited block, or a whole file. Sections are produced by format
// extractors and consumed entirely by the chunker.
type Section struct {
	// Text is the extracted text with surrounding whitespace stripped.
	Text string

	// Provenance locates the section within its source document.
	Provenance Provenance
}
