package extractors

import (
	"github.com/custodia-labs/askdoc-cli/internal/extractors/docx"
	"github.com/custodia-labs/askdoc-cli/internal/extractors/markdown"
	"github.com/custodia-labs/askdoc-cli/internal/extractors/pdf"
	"github.com/custodia-labs/askdoc-cli/internal/extractors/plaintext"
)

// DefaultRegistry creates a registry with all built-in extractors:
// PDF, DOCX, Markdown and plain text.
func DefaultRegistry() *Registry {
	return NewRegistry(
		pdf.New(),
		docx.New(),
		markdown.New(),
		plaintext.New(),
	)
}
