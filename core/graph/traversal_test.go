package graph

import (
	"testing"

	"github.com/siherrmann/loregraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRelatedNodes(t *testing.T) {
	s, anu, uruk, rules := anuUruk(t)

	t.Run("Outgoing RULES from Anu returns exactly Uruk", func(t *testing.T) {
		related := s.GetRelatedNodes(anu, model.RelRules, model.DirectionOutgoing)
		require.Len(t, related, 1)
		assert.Equal(t, uruk, related[0].Node.ID)
		assert.Equal(t, rules, related[0].Edge.ID)
		assert.Equal(t, model.DirectionOutgoing, related[0].Direction)
	})

	t.Run("Incoming from Uruk returns Anu", func(t *testing.T) {
		related := s.GetRelatedNodes(uruk, "", model.DirectionIncoming)
		require.Len(t, related, 1)
		assert.Equal(t, anu, related[0].Node.ID)
		assert.Equal(t, model.DirectionIncoming, related[0].Direction)
	})

	t.Run("Type filter excludes other relationships", func(t *testing.T) {
		assert.Empty(t, s.GetRelatedNodes(anu, model.RelCreated, model.DirectionBoth))
	})

	t.Run("Both lists outgoing before incoming", func(t *testing.T) {
		enlil := addNode(t, s, "Enlil", model.EntityDeity)
		addEdge(t, s, "Enlil serves Anu", model.RelServes, enlil, anu)

		related := s.GetRelatedNodes(anu, "", model.DirectionBoth)
		require.Len(t, related, 2)
		assert.Equal(t, uruk, related[0].Node.ID)
		assert.Equal(t, enlil, related[1].Node.ID)

		assert.Len(t, s.GetRelatedNodes(anu, "", ""), 2, "Expected empty direction to mean both")
	})

	t.Run("Unknown node yields nothing", func(t *testing.T) {
		assert.Empty(t, s.GetRelatedNodes("nobody", "", model.DirectionBoth))
	})

	t.Run("After deleting Uruk nothing is related to Anu over RULES", func(t *testing.T) {
		require.True(t, s.DeleteNode(uruk))
		_, ok := s.GetEdge(rules)
		assert.False(t, ok)
		assert.Empty(t, s.GetRelatedNodes(anu, model.RelRules, model.DirectionOutgoing))
	})
}

func TestFindPath(t *testing.T) {
	t.Run("Anu to Uruk has depth one", func(t *testing.T) {
		s, anu, uruk, rules := anuUruk(t)

		path, ok := s.FindPath(anu, uruk, 3)
		require.True(t, ok)
		require.Len(t, path, 2)
		assert.Equal(t, anu, path[0].Node.ID)
		assert.Equal(t, rules, path[0].Edge.ID)
		assert.Equal(t, model.DirectionOutgoing, path[0].Direction)
		assert.Equal(t, uruk, path[1].Node.ID)
		assert.Nil(t, path[1].Edge)
	})

	t.Run("Uruk to Anu follows the edge backwards", func(t *testing.T) {
		s, anu, uruk, rules := anuUruk(t)

		path, ok := s.FindPath(uruk, anu, 3)
		require.True(t, ok)
		require.Len(t, path, 2)
		assert.Equal(t, uruk, path[0].Node.ID)
		assert.Equal(t, rules, path[0].Edge.ID)
		assert.Equal(t, model.DirectionIncoming, path[0].Direction)
		assert.Equal(t, anu, path[1].Node.ID)
	})

	t.Run("Self path is the node alone", func(t *testing.T) {
		s, anu, _, _ := anuUruk(t)

		path, ok := s.FindPath(anu, anu, 0)
		require.True(t, ok)
		require.Len(t, path, 1)
		assert.Equal(t, anu, path[0].Node.ID)
		assert.Nil(t, path[0].Edge)
	})

	t.Run("Missing endpoints have no path", func(t *testing.T) {
		s, anu, _, _ := anuUruk(t)

		_, ok := s.FindPath(anu, "nobody", 3)
		assert.False(t, ok)
		_, ok = s.FindPath("nobody", anu, 3)
		assert.False(t, ok)
		_, ok = s.FindPath("nobody", "nobody", 3)
		assert.False(t, ok)
	})

	t.Run("Disconnected nodes have no path", func(t *testing.T) {
		s, anu, _, _ := anuUruk(t)
		loner := addNode(t, s, "Loner", model.EntityNPC)

		_, ok := s.FindPath(anu, loner, 10)
		assert.False(t, ok)
	})

	t.Run("Paths longer than max depth are not found", func(t *testing.T) {
		s := NewStore(nil)
		chain := make([]string, 5)
		for i := range chain {
			chain[i] = addNode(t, s, string(rune('A'+i)), model.EntityLocation)
		}
		for i := 0; i < len(chain)-1; i++ {
			addEdge(t, s, "road", model.RelConnectedTo, chain[i], chain[i+1])
		}

		for depth := 0; depth < 4; depth++ {
			_, ok := s.FindPath(chain[0], chain[4], depth)
			assert.False(t, ok, "Expected no path of 4 edges within depth %d", depth)
		}
		path, ok := s.FindPath(chain[0], chain[4], 4)
		require.True(t, ok)
		assert.Len(t, path, 5)

		_, ok = s.FindPath(chain[0], chain[1], -1)
		assert.False(t, ok, "Expected negative depth to find nothing")
	})

	t.Run("Shortest path wins over a longer one", func(t *testing.T) {
		s := NewStore(nil)
		a := addNode(t, s, "A", model.EntityLocation)
		b := addNode(t, s, "B", model.EntityLocation)
		c := addNode(t, s, "C", model.EntityLocation)
		addEdge(t, s, "long", model.RelConnectedTo, a, b)
		addEdge(t, s, "long", model.RelConnectedTo, b, c)
		direct := addEdge(t, s, "short", model.RelConnectedTo, c, a)

		path, ok := s.FindPath(a, c, 5)
		require.True(t, ok)
		require.Len(t, path, 2)
		assert.Equal(t, direct, path[0].Edge.ID)
		assert.Equal(t, model.DirectionIncoming, path[0].Direction)
	})

	t.Run("Ties break by edge insertion order", func(t *testing.T) {
		s := NewStore(nil)
		a := addNode(t, s, "A", model.EntityLocation)
		viaIn := addNode(t, s, "ViaIn", model.EntityLocation)
		viaOut := addNode(t, s, "ViaOut", model.EntityLocation)
		z := addNode(t, s, "Z", model.EntityLocation)
		addEdge(t, s, "first", model.RelConnectedTo, viaIn, a)
		addEdge(t, s, "second", model.RelConnectedTo, a, viaOut)
		addEdge(t, s, "in-z", model.RelConnectedTo, viaIn, z)
		addEdge(t, s, "out-z", model.RelConnectedTo, viaOut, z)

		path, ok := s.FindPath(a, z, 2)
		require.True(t, ok)
		require.Len(t, path, 3)
		assert.Equal(t, viaIn, path[1].Node.ID, "Expected the earlier edge to be explored first")
	})
}

func TestTraverse(t *testing.T) {
	s := NewStore(nil)
	anu := addNode(t, s, "Anu", model.EntityDeity)
	uruk := addNode(t, s, "Uruk", model.EntityLocation)
	eanna := addNode(t, s, "Eanna", model.EntityLocation)
	enlil := addNode(t, s, "Enlil", model.EntityDeity)
	addEdge(t, s, "rules", model.RelRules, anu, uruk)
	addEdge(t, s, "temple", model.RelLocatedIn, eanna, uruk)
	addEdge(t, s, "serves", model.RelServes, enlil, anu)

	t.Run("Distances and paths from the start", func(t *testing.T) {
		results := s.Traverse(anu, 2, "", model.DirectionBoth)
		require.Len(t, results, 4)
		assert.Equal(t, anu, results[0].Node.ID)
		assert.Equal(t, 0, results[0].Distance)

		byID := map[string]*TraversalResult{}
		for _, r := range results {
			byID[r.Node.ID] = r
		}
		assert.Equal(t, 1, byID[uruk].Distance)
		assert.Equal(t, 1, byID[enlil].Distance)
		assert.Equal(t, 2, byID[eanna].Distance)
		assert.Equal(t, []string{anu, uruk, eanna}, byID[eanna].Path)
	})

	t.Run("Hop limit and direction restrict the walk", func(t *testing.T) {
		assert.Len(t, s.Traverse(anu, 1, "", model.DirectionBoth), 3)

		results := s.Traverse(anu, 3, "", model.DirectionOutgoing)
		require.Len(t, results, 2)
		assert.Equal(t, uruk, results[1].Node.ID)
	})

	t.Run("Type filter restricts the walk", func(t *testing.T) {
		results := s.Traverse(anu, 3, model.RelServes, model.DirectionBoth)
		require.Len(t, results, 2)
		assert.Equal(t, enlil, results[1].Node.ID)
	})

	t.Run("Unknown start yields nothing", func(t *testing.T) {
		assert.Nil(t, s.Traverse("nobody", 2, "", model.DirectionBoth))
	})
}
