package enforced

import (
	"testing"

	"github.com/siherrmann/loregraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedStarcrash(t *testing.T) {
	s := newStore()
	require.NoError(t, SeedStarcrash(s))

	assert.Equal(t, 7, s.Graph().NodeCount())
	assert.Equal(t, 5, s.Graph().EdgeCount())
	assert.NoError(t, s.Graph().CheckIndexes())

	thalindra, ok := s.GetNodeByName("Thalindra the Archmage")
	require.True(t, ok)
	assert.True(t, thalindra.Properties["level"].Equal(model.Int(20)))

	orb, ok := s.GetNodeByName("Orb of Astral Resonance")
	require.True(t, ok)
	path, ok := s.FindPath(orb.ID, thalindra.ID, 3)
	require.True(t, ok)
	require.Len(t, path, 2)
	assert.Equal(t, model.RelCreated, path[0].Edge.Type)
	assert.Equal(t, model.DirectionIncoming, path[0].Direction)

	nef, ok := s.GetNodeByName("Nef")
	require.True(t, ok)
	_, ok = s.FindPath(nef.ID, thalindra.ID, 5)
	assert.False(t, ok, "Expected the twin gods to be disconnected from Caierah")

	t.Run("Seeding twice duplicates every entity", func(t *testing.T) {
		require.NoError(t, SeedStarcrash(s))
		assert.Equal(t, 14, s.Graph().NodeCount())
		assert.Len(t, s.GetNodesByType(model.EntityDeity), 4)
	})
}
