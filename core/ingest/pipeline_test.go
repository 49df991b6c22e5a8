package ingest

import (
	"errors"
	"testing"

	"github.com/siherrmann/loregraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineProcess(t *testing.T) {
	failing := errors.New("model unavailable")
	p := NewPipeline(
		func(doc *model.Document) (*ExtractionResult, error) {
			return &ExtractionResult{Entities: []ExtractedEntity{{Name: "Nef", Type: model.EntityDeity}}}, nil
		},
		func(doc *model.Document) (*ExtractionResult, error) {
			return nil, failing
		},
	)
	p.AddExtractor(func(doc *model.Document) (*ExtractionResult, error) {
		return &ExtractionResult{Relationships: []ExtractedRelationship{{Type: model.RelCreated, Source: "Nef", Target: "Alfir"}}}, nil
	})

	result, err := p.Process(&model.Document{Title: "notes"})
	assert.ErrorIs(t, err, failing)
	assert.Contains(t, err.Error(), "notes")
	require.Len(t, result.Entities, 1)
	require.Len(t, result.Relationships, 1)
	assert.False(t, result.Empty())

	t.Run("Nil document yields an empty result", func(t *testing.T) {
		result, err := p.Process(nil)
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})
}

func TestEntityTypeForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  model.EntityType
	}{
		{"B-PER", model.EntityNPC},
		{"I-PER", model.EntityNPC},
		{"LOC", model.EntityLocation},
		{"B-ORG", model.EntityFaction},
		{"B-MISC", model.EntityConcept},
		{"", model.EntityConcept},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, entityTypeForLabel(tt.label))
		})
	}
}
