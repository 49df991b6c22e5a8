package ingest

import (
	"errors"
	"testing"

	"github.com/siherrmann/loregraph/core/enforced"
	"github.com/siherrmann/loregraph/core/graph"
	"github.com/siherrmann/loregraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnforced() *enforced.Store {
	return enforced.NewStore(graph.NewStore(nil), nil)
}

func TestIngestorApply(t *testing.T) {
	t.Run("Entities are created once and reused afterwards", func(t *testing.T) {
		store := newEnforced()
		ingestor := NewIngestor(store, "", nil)
		result := &ExtractionResult{Entities: []ExtractedEntity{
			{Name: "Archos", Type: model.EntityDeity},
			{Name: " Nef ", Type: model.EntityDeity},
		}}

		report := ingestor.Apply(result)
		assert.Equal(t, 2, report.EntitiesCreated)
		assert.Empty(t, report.Failures)
		assert.NoError(t, report.Err())

		report = ingestor.Apply(result)
		assert.Equal(t, 0, report.EntitiesCreated)
		assert.Equal(t, 2, report.EntitiesReused)
		assert.Equal(t, 2, store.Graph().NodeCount())

		_, ok := store.GetNodeByName("Nef")
		assert.True(t, ok, "Expected names to be trimmed")
	})

	t.Run("Relationships create missing endpoints with the default type", func(t *testing.T) {
		store := newEnforced()
		ingestor := NewIngestor(store, model.EntityConcept, nil)

		report := ingestor.Apply(&ExtractionResult{
			Entities: []ExtractedEntity{{Name: "The Starcrash", Type: model.EntityEvent}},
			Relationships: []ExtractedRelationship{
				{Type: model.RelCaused, Source: "The Starcrash", Target: "Sundering"},
			},
		})
		require.NoError(t, report.Err())
		assert.Equal(t, 2, report.EntitiesCreated)
		assert.Equal(t, 1, report.RelationshipsCreated)

		sundering, ok := store.GetNodeByName("Sundering")
		require.True(t, ok)
		assert.Equal(t, model.EntityConcept, sundering.Type)
		assert.True(t, sundering.Properties["auto_created"].Equal(model.Bool(true)))

		related := store.GetRelatedNodes(sundering.ID, model.RelCaused, model.DirectionIncoming)
		require.Len(t, related, 1)
		assert.Equal(t, "The Starcrash caused Sundering", related[0].Edge.Name)
	})

	t.Run("Existing store entities are resolved by name", func(t *testing.T) {
		store := newEnforced()
		archos, err := store.AddEntity("Archos", model.EntityDeity, nil)
		require.NoError(t, err)
		orb, err := store.AddEntity("Orb of Archos", model.EntityArtifact, nil)
		require.NoError(t, err)

		ingestor := NewIngestor(store, "", nil)
		report := ingestor.Apply(&ExtractionResult{Relationships: []ExtractedRelationship{
			{Name: "Archos forged the Orb", Type: model.RelCreated, Source: "Archos", Target: "Orb of Archos"},
		}})
		require.NoError(t, report.Err())
		assert.Equal(t, 0, report.EntitiesCreated)
		assert.Equal(t, 1, report.RelationshipsCreated)

		related := store.GetRelatedNodes(archos, model.RelCreated, model.DirectionOutgoing)
		require.Len(t, related, 1)
		assert.Equal(t, orb, related[0].Node.ID)
		assert.Equal(t, "Archos forged the Orb", related[0].Edge.Name)
	})

	t.Run("Failures are reported and do not stop the run", func(t *testing.T) {
		store := newEnforced()
		ingestor := NewIngestor(store, "", nil)

		report := ingestor.Apply(&ExtractionResult{
			Entities: []ExtractedEntity{
				{Name: "Starship", Type: "SPACESHIP"},
				{Name: "Thalindra", Type: model.EntityNPC, Properties: model.MustProperties(map[string]any{"level": "twenty"})},
				{Name: "", Type: model.EntityNPC},
				{Name: "Alfir", Type: model.EntityDeity},
			},
			Relationships: []ExtractedRelationship{
				{Type: model.RelAllyOf, Source: "Alfir", Target: "Alfir"},
				{Type: model.RelCreated, Source: "Idea", Target: "Alfir"},
			},
		})

		assert.Equal(t, 2, report.EntitiesCreated, "Expected Alfir and the implicit Idea")
		assert.Equal(t, 0, report.RelationshipsCreated)
		require.Len(t, report.Failures, 5)
		assert.ErrorIs(t, report.Failures[0].Err, model.ErrUnknownType)
		assert.ErrorIs(t, report.Failures[1].Err, model.ErrSchemaViolation)
		assert.Equal(t, "Thalindra", report.Failures[1].Name)
		assert.ErrorIs(t, report.Failures[2].Err, model.ErrSchemaViolation)
		assert.ErrorIs(t, report.Failures[3].Err, ErrSelfRelation)
		assert.ErrorIs(t, report.Failures[4].Err, model.ErrSchemaViolation, "Expected CONCEPT to be rejected as creator")

		err := report.Err()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSelfRelation))
		assert.Contains(t, err.Error(), "Thalindra")
	})

	t.Run("Nil result", func(t *testing.T) {
		report := NewIngestor(newEnforced(), "", nil).Apply(nil)
		assert.NoError(t, report.Err())
		assert.Equal(t, 0, report.EntitiesCreated)
	})
}

func TestIngestorResolveAndReset(t *testing.T) {
	store := newEnforced()
	ingestor := NewIngestor(store, "", nil)

	_, ok := ingestor.Resolve("Nef")
	assert.False(t, ok)

	report := ingestor.Apply(&ExtractionResult{Entities: []ExtractedEntity{{Name: "Nef", Type: model.EntityDeity}}})
	require.NoError(t, report.Err())

	id, ok := ingestor.Resolve("Nef")
	require.True(t, ok)

	ingestor.Reset()
	again, ok := ingestor.Resolve("Nef")
	require.True(t, ok, "Expected the store's name index to resolve after a reset")
	assert.Equal(t, id, again)

	require.True(t, store.DeleteNode(id))
	ingestor.Reset()
	_, ok = ingestor.Resolve("Nef")
	assert.False(t, ok)
}

func TestReportAdd(t *testing.T) {
	total := &Report{}
	total.Add(&Report{EntitiesCreated: 2, RelationshipsCreated: 1})
	total.Add(&Report{EntitiesReused: 3, Failures: []Failure{{Name: "x", Err: model.ErrConflict}}})
	total.Add(nil)

	assert.Equal(t, 2, total.EntitiesCreated)
	assert.Equal(t, 3, total.EntitiesReused)
	assert.Equal(t, 1, total.RelationshipsCreated)
	assert.ErrorIs(t, total.Err(), model.ErrConflict)
}
