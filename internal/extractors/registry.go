// Package extractors selects and runs per-format text extractors.
// Each extractor converts raw file bytes of one format into an ordered
// sequence of sections with provenance metadata; the registry dispatches
// by file extension.
package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry routes extraction to the extractor registered for a file's
// extension. Extensions are matched case-insensitively.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors. A later
// extractor claiming an already-registered extension wins.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	byExt := make(map[string]driven.Extractor)
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			byExt[strings.ToLower(ext)] = e
		}
	}
	return &Registry{byExt: byExt}
}

// Extract runs the extractor registered for filename's extension.
// Unknown extensions fail with domain.ErrUnsupportedFormat.
func (r *Registry) Extract(ctx context.Context, content []byte, filename string) ([]domain.Section, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	extractor, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%q: %w", ext, domain.ErrUnsupportedFormat)
	}

	logger.Debug("Extracting %s via %s extractor", filename, ext)
	sections, err := extractor.Extract(ctx, content, filename)
	if err != nil {
		return nil, err
	}
	logger.Debug("Extracted %d sections from %s", len(sections), filename)

	return sections, nil
}

// Supported returns the sorted list of registered extensions.
func (r *Registry) Supported() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
