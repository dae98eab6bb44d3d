// Package docx extracts heading-delimited sections from DOCX documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents. Paragraphs styled as headings delimit
// sections: a new section begins at each heading and accumulates all
// following non-heading paragraphs, with the heading text as its first
// line. Documents without headings become a single untitled section.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// Extract parses the DOCX archive and produces heading-delimited sections.
func (e *Extractor) Extract(_ context.Context, content []byte, filename string) ([]domain.Section, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, &domain.ExtractionError{Filename: filename, Err: err}
	}

	paragraphs, err := readParagraphs(reader)
	if err != nil {
		return nil, &domain.ExtractionError{Filename: filename, Err: err}
	}

	return buildSections(paragraphs, filename), nil
}

// para is one non-empty paragraph with its heading flag.
type para struct {
	Text    string
	Heading bool
}

// documentXML mirrors the relevant structure of word/document.xml.
// encoding/xml matches elements by local name, so the w: namespace
// prefixes need no special handling.
type documentXML struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
	} `xml:"body"`
}

type paragraphXML struct {
	Props struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text []textXML `xml:"t"`
}

type textXML struct {
	Content string `xml:",chardata"`
}

// readParagraphs extracts the non-empty paragraphs of word/document.xml in
// document order.
func readParagraphs(reader *zip.Reader) ([]para, error) {
	var raw []byte
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		raw, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		break
	}
	if raw == nil {
		return nil, errors.New("word/document.xml not found")
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	var paragraphs []para
	for _, p := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, run := range p.Runs {
			for _, t := range run.Text {
				sb.WriteString(t.Content)
			}
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		paragraphs = append(paragraphs, para{
			Text:    text,
			Heading: strings.HasPrefix(p.Props.Style.Val, "Heading"),
		})
	}

	return paragraphs, nil
}

// buildSections groups paragraphs into heading-delimited sections.
// Content preceding the first heading gets the sentinel "Document Start"
// title; a document with no headings at all collapses to one untitled
// section.
func buildSections(paragraphs []para, filename string) []domain.Section {
	hasHeading := false
	for _, p := range paragraphs {
		if p.Heading {
			hasHeading = true
			break
		}
	}

	if !hasHeading {
		lines := make([]string, 0, len(paragraphs))
		for _, p := range paragraphs {
			lines = append(lines, p.Text)
		}
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text == "" {
			return nil
		}
		return []domain.Section{{
			Text:       text,
			Provenance: provenance(filename, 1, ""),
		}}
	}

	var sections []domain.Section
	var current []string
	title := domain.SectionTitleStart
	ordinal := 1

	flush := func() {
		text := strings.TrimSpace(strings.Join(current, "\n"))
		current = nil
		if text == "" {
			return
		}
		sections = append(sections, domain.Section{
			Text:       text,
			Provenance: provenance(filename, ordinal, title),
		})
		ordinal++
	}

	for _, p := range paragraphs {
		if p.Heading {
			flush()
			title = p.Text
			current = []string{p.Text}
			continue
		}
		current = append(current, p.Text)
	}
	flush()

	return sections
}

func provenance(filename string, ordinal int, title string) domain.Provenance {
	return domain.Provenance{
		DocumentName: filename,
		SourceType:   "docx",
		Kind:         domain.ProvenanceSectioned,
		Section:      ordinal,
		SectionTitle: title,
	}
}
