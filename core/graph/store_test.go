package graph

import (
	"errors"
	"sync"
	"testing"

	"github.com/siherrmann/loregraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addNode(t *testing.T, s *Store, name string, typ model.EntityType) string {
	t.Helper()
	id, err := s.AddNode(&model.Node{Name: name, Type: typ, Properties: model.Properties{}})
	require.NoError(t, err)
	return id
}

func addEdge(t *testing.T, s *Store, name string, typ model.RelationshipType, source, target string) string {
	t.Helper()
	id, err := s.AddEdge(&model.Edge{Name: name, Type: typ, SourceID: source, TargetID: target})
	require.NoError(t, err)
	return id
}

// anuUruk builds the two node graph Anu -RULES-> Uruk.
func anuUruk(t *testing.T) (*Store, string, string, string) {
	t.Helper()
	s := NewStore(nil)
	anu := addNode(t, s, "Anu", model.EntityDeity)
	uruk := addNode(t, s, "Uruk", model.EntityLocation)
	rules := addEdge(t, s, "Anu rules Uruk", model.RelRules, anu, uruk)
	return s, anu, uruk, rules
}

func TestAddNode(t *testing.T) {
	s := NewStore(nil)

	t.Run("Generates an id and timestamps", func(t *testing.T) {
		id, err := s.AddNode(&model.Node{Name: "Archos", Type: model.EntityDeity})
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		n, ok := s.GetNode(id)
		require.True(t, ok)
		assert.Equal(t, "Archos", n.Name)
		assert.False(t, n.CreatedAt.IsZero(), "Expected CreatedAt to be set")
		assert.Equal(t, n.CreatedAt, n.UpdatedAt)
		assert.NotNil(t, n.Properties)
	})

	t.Run("Input node is not retained", func(t *testing.T) {
		input := &model.Node{ID: "nef", Name: "Nef", Type: model.EntityDeity, Properties: model.MustProperties(map[string]any{"pantheon": "Nef Pantheon"})}
		_, err := s.AddNode(input)
		require.NoError(t, err)

		input.Properties["pantheon"] = model.String("changed")
		n, _ := s.GetNode("nef")
		assert.True(t, n.Properties["pantheon"].Equal(model.String("Nef Pantheon")))

		n.Properties["pantheon"] = model.String("changed again")
		again, _ := s.GetNode("nef")
		assert.True(t, again.Properties["pantheon"].Equal(model.String("Nef Pantheon")), "Expected returned copies to be independent")
	})

	t.Run("Identical re-add is a no-op", func(t *testing.T) {
		before := s.NodeCount()
		id, err := s.AddNode(&model.Node{ID: "nef", Name: "Nef", Type: model.EntityDeity, Properties: model.MustProperties(map[string]any{"pantheon": "Nef Pantheon"})})
		require.NoError(t, err)
		assert.Equal(t, "nef", id)
		assert.Equal(t, before, s.NodeCount())
	})

	t.Run("Different content under the same id conflicts", func(t *testing.T) {
		_, err := s.AddNode(&model.Node{ID: "nef", Name: "Not Nef", Type: model.EntityDeity})
		assert.ErrorIs(t, err, model.ErrConflict)
		n, _ := s.GetNode("nef")
		assert.Equal(t, "Nef", n.Name, "Expected original node to survive")
	})

	t.Run("Nil node is rejected", func(t *testing.T) {
		_, err := s.AddNode(nil)
		assert.Error(t, err)
	})
}

func TestAddEdge(t *testing.T) {
	s := NewStore(nil)
	a := addNode(t, s, "Archos", model.EntityDeity)
	b := addNode(t, s, "Nef", model.EntityDeity)

	t.Run("Missing endpoint is not found", func(t *testing.T) {
		_, err := s.AddEdge(&model.Edge{Type: model.RelParentOf, SourceID: a, TargetID: "nobody"})
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = s.AddEdge(&model.Edge{Type: model.RelParentOf, SourceID: "nobody", TargetID: b})
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Equal(t, 0, s.EdgeCount())
	})

	t.Run("Edge id collision conflicts", func(t *testing.T) {
		_, err := s.AddEdge(&model.Edge{ID: "twins", Type: model.RelParentOf, SourceID: a, TargetID: b})
		require.NoError(t, err)
		_, err = s.AddEdge(&model.Edge{ID: "twins", Type: model.RelAllyOf, SourceID: a, TargetID: b})
		assert.ErrorIs(t, err, model.ErrConflict)
		assert.Equal(t, 1, s.EdgeCount())
	})
}

func TestNameIndex(t *testing.T) {
	s := NewStore(nil)
	first := addNode(t, s, "Uruk", model.EntityLocation)
	second := addNode(t, s, "Uruk", model.EntityFaction)

	t.Run("Last write wins", func(t *testing.T) {
		n, ok := s.GetNodeByName("Uruk")
		require.True(t, ok)
		assert.Equal(t, second, n.ID)
	})

	t.Run("Deleting the indexed node falls back to the older one", func(t *testing.T) {
		require.True(t, s.DeleteNode(second))
		n, ok := s.GetNodeByName("Uruk")
		require.True(t, ok)
		assert.Equal(t, first, n.ID)
		assert.NoError(t, s.CheckIndexes())
	})

	t.Run("Deleting the last holder removes the name", func(t *testing.T) {
		require.True(t, s.DeleteNode(first))
		_, ok := s.GetNodeByName("Uruk")
		assert.False(t, ok)
		assert.Empty(t, s.NodeNames())
	})
}

func TestGetNodesByType(t *testing.T) {
	s := NewStore(nil)
	archos := addNode(t, s, "Archos", model.EntityDeity)
	addNode(t, s, "Caierah", model.EntityLocation)
	nef := addNode(t, s, "Nef", model.EntityDeity)

	deities := s.GetNodesByType(model.EntityDeity)
	require.Len(t, deities, 2)
	assert.Equal(t, archos, deities[0].ID, "Expected insertion order")
	assert.Equal(t, nef, deities[1].ID)
	assert.Empty(t, s.GetNodesByType(model.EntityShop))
}

func TestGetEdgesByType(t *testing.T) {
	s := NewStore(nil)
	anu := addNode(t, s, "Anu", model.EntityDeity)
	uruk := addNode(t, s, "Uruk", model.EntityLocation)
	enlil := addNode(t, s, "Enlil", model.EntityDeity)
	first := addEdge(t, s, "Anu rules Uruk", model.RelRules, anu, uruk)
	addEdge(t, s, "Enlil serves Anu", model.RelServes, enlil, anu)
	second := addEdge(t, s, "Enlil rules Uruk", model.RelRules, enlil, uruk)

	rules := s.GetEdgesByType(model.RelRules)
	require.Len(t, rules, 2)
	assert.Equal(t, first, rules[0].ID, "Expected insertion order")
	assert.Equal(t, second, rules[1].ID)
	assert.Empty(t, s.GetEdgesByType(model.RelDestroyed))

	require.True(t, s.DeleteNode(enlil))
	rules = s.GetEdgesByType(model.RelRules)
	require.Len(t, rules, 1)
	assert.Equal(t, first, rules[0].ID)
}

func TestAddEdgeChecked(t *testing.T) {
	s := NewStore(nil)
	anu := addNode(t, s, "Anu", model.EntityDeity)
	uruk := addNode(t, s, "Uruk", model.EntityLocation)

	t.Run("Check sees the endpoint types", func(t *testing.T) {
		var gotSource, gotTarget model.EntityType
		id, err := s.AddEdgeChecked(&model.Edge{Type: model.RelRules, SourceID: anu, TargetID: uruk}, func(source, target model.EntityType) error {
			gotSource, gotTarget = source, target
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, model.EntityDeity, gotSource)
		assert.Equal(t, model.EntityLocation, gotTarget)
		_, ok := s.GetEdge(id)
		assert.True(t, ok)
	})

	t.Run("Failed check writes nothing", func(t *testing.T) {
		rejected := errors.New("locations cannot rule")
		before := s.EdgeCount()
		_, err := s.AddEdgeChecked(&model.Edge{Type: model.RelRules, SourceID: uruk, TargetID: anu}, func(source, target model.EntityType) error {
			return rejected
		})
		assert.ErrorIs(t, err, rejected)
		assert.Equal(t, before, s.EdgeCount())
		assert.NoError(t, s.CheckIndexes())
	})

	t.Run("Missing endpoint fails before the check", func(t *testing.T) {
		called := false
		_, err := s.AddEdgeChecked(&model.Edge{Type: model.RelRules, SourceID: anu, TargetID: "nobody"}, func(source, target model.EntityType) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.False(t, called)
	})

	t.Run("Replaced endpoint is checked with its current type", func(t *testing.T) {
		require.True(t, s.DeleteNode(uruk))
		_, err := s.AddNode(&model.Node{ID: uruk, Name: "Uruk", Type: model.EntityArtifact})
		require.NoError(t, err)

		var gotTarget model.EntityType
		_, err = s.AddEdgeChecked(&model.Edge{Type: model.RelRules, SourceID: anu, TargetID: uruk}, func(source, target model.EntityType) error {
			gotTarget = target
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, model.EntityArtifact, gotTarget)
	})
}

func TestFindNodesByProperty(t *testing.T) {
	s := NewStore(nil)
	_, err := s.AddNode(&model.Node{Name: "Archos", Type: model.EntityDeity, Properties: model.MustProperties(map[string]any{"pantheon": "Archosian", "domain": []string{"Order"}})})
	require.NoError(t, err)
	_, err = s.AddNode(&model.Node{Name: "Nef", Type: model.EntityDeity, Properties: model.MustProperties(map[string]any{"pantheon": "Nef Pantheon"})})
	require.NoError(t, err)

	found := s.FindNodesByProperty("pantheon", model.String("Archosian"))
	require.Len(t, found, 1)
	assert.Equal(t, "Archos", found[0].Name)

	found = s.FindNodesByProperty("domain", model.StringList("Order"))
	assert.Len(t, found, 1, "Expected structural equality on lists")

	assert.Empty(t, s.FindNodesByProperty("pantheon", model.String("nobody")))
	assert.Empty(t, s.FindNodesByProperty("missing", model.String("Archosian")))
}

func TestDeleteCascade(t *testing.T) {
	s := NewStore(nil)
	a := addNode(t, s, "Archos", model.EntityDeity)
	b := addNode(t, s, "Nef", model.EntityDeity)
	c := addNode(t, s, "Caierah", model.EntityLocation)
	ab := addEdge(t, s, "twins", model.RelParentOf, a, b)
	ca := addEdge(t, s, "worship", model.RelConnectedTo, c, a)
	bc := addEdge(t, s, "watch", model.RelProtects, b, c)
	self := addEdge(t, s, "reflection", model.RelConnectedTo, a, a)

	require.True(t, s.DeleteNode(a))

	for _, id := range []string{ab, ca, self} {
		_, ok := s.GetEdge(id)
		assert.False(t, ok, "Expected incident edge %s to be removed", id)
	}
	_, ok := s.GetEdge(bc)
	assert.True(t, ok, "Expected unrelated edge to survive")
	assert.Equal(t, 1, s.EdgeCount())
	assert.NoError(t, s.CheckIndexes())

	assert.False(t, s.DeleteNode(a), "Expected second delete to report absence")
	assert.False(t, s.DeleteEdge(ab))
}

func TestDeleteEdge(t *testing.T) {
	s, anu, uruk, rules := anuUruk(t)

	require.True(t, s.DeleteEdge(rules))
	assert.Empty(t, s.GetRelatedNodes(anu, "", model.DirectionBoth))
	assert.Empty(t, s.GetRelatedNodes(uruk, "", model.DirectionBoth))
	assert.Equal(t, 2, s.NodeCount())
	assert.NoError(t, s.CheckIndexes())
}

func TestClear(t *testing.T) {
	s, _, _, _ := anuUruk(t)
	s.Clear()

	assert.Equal(t, 0, s.NodeCount())
	assert.Equal(t, 0, s.EdgeCount())
	_, ok := s.GetNodeByName("Anu")
	assert.False(t, ok)
	assert.NoError(t, s.CheckIndexes())
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore(nil)
	hub := addNode(t, s, "Caierah", model.EntityLocation)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id, err := s.AddNode(&model.Node{Name: "Traveller", Type: model.EntityNPC})
				if err != nil {
					t.Error(err)
					return
				}
				if _, err := s.AddEdge(&model.Edge{Type: model.RelLocatedIn, SourceID: id, TargetID: hub}); err != nil {
					t.Error(err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.GetRelatedNodes(hub, model.RelLocatedIn, model.DirectionIncoming)
				s.FindPath(hub, hub, 2)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 401, s.NodeCount())
	assert.Len(t, s.GetRelatedNodes(hub, model.RelLocatedIn, model.DirectionIncoming), 400)
	assert.NoError(t, s.CheckIndexes())
}
