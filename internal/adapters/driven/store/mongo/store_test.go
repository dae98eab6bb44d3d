package mongo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func TestMetadataRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		prov domain.Provenance
	}{
		{
			name: "paginated",
			prov: domain.Provenance{
				DocumentName: "report.pdf",
				SourceType:   "pdf",
				Kind:         domain.ProvenancePaginated,
				Page:         4,
				TotalPages:   9,
			},
		},
		{
			name: "sectioned",
			prov: domain.Provenance{
				DocumentName: "notes.md",
				SourceType:   "markdown",
				Kind:         domain.ProvenanceSectioned,
				Section:      2,
				SectionTitle: "Usage",
			},
		},
		{
			name: "sectioned without title",
			prov: domain.Provenance{
				DocumentName: "plain.txt",
				SourceType:   "text",
				Kind:         domain.ProvenanceSectioned,
				Section:      1,
			},
		},
		{
			name: "whole",
			prov: domain.Provenance{
				DocumentName: "blob.txt",
				SourceType:   "text",
				Kind:         domain.ProvenanceWhole,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromMetadata(toMetadata(tt.prov))
			assert.Equal(t, tt.prov, got)
		})
	}
}

func TestToMetadata_DropsIrrelevantFields(t *testing.T) {
	// A sectioned provenance must not leak page fields into storage even
	// if they are populated.
	prov := domain.Provenance{
		DocumentName: "notes.md",
		Kind:         domain.ProvenanceSectioned,
		Section:      3,
		Page:         7,
		TotalPages:   10,
	}

	meta := toMetadata(prov)
	assert.Zero(t, meta.Page)
	assert.Zero(t, meta.TotalPages)
	assert.Equal(t, 3, meta.Section)
}

func TestIsUnsupportedVectorSearch(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unrecognized stage code",
			err:  mongo.CommandError{Code: 40324, Message: "Unrecognized pipeline stage name: '$vectorSearch'"},
			want: true,
		},
		{
			name: "search not enabled code",
			err:  mongo.CommandError{Code: 31082, Message: "search not enabled"},
			want: true,
		},
		{
			name: "vector search mentioned",
			err:  mongo.CommandError{Code: 8, Message: "$vectorSearch is not allowed"},
			want: true,
		},
		{
			name: "unrelated command error",
			err:  mongo.CommandError{Code: 13, Message: "unauthorized"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
		{
			name: "wrapped command error",
			err:  wrapErr(mongo.CommandError{Code: 40324, Message: "Unrecognized pipeline stage"}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnsupportedVectorSearch(tt.err))
		})
	}
}

func wrapErr(err error) error {
	return errors.Join(errors.New("aggregate failed"), err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{2, 0}, []float32{4, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity(nil, nil), 1e-9)
}
