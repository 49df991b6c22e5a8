package graph

import (
	"github.com/siherrmann/loregraph/model"
)

// TraversalResult contains a node and its distance from the start
type TraversalResult struct {
	Node     *model.Node
	Distance int
	Path     []string // node ids from the start to this node
}

// GetRelatedNodes returns the neighbours of a node. An empty edgeType matches
// every type. With DirectionBoth outgoing neighbours come first, then
// incoming ones, each in edge insertion order. An empty direction means
// both. Unknown ids yield nothing.
func (s *Store) GetRelatedNodes(id string, edgeType model.RelationshipType, direction model.Direction) []model.Related {
	if direction == "" {
		direction = model.DirectionBoth
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[id]; !ok {
		return nil
	}

	var out []model.Related
	if direction == model.DirectionOutgoing || direction == model.DirectionBoth {
		for _, edgeID := range s.idx.outgoing[id] {
			e := s.edges[edgeID].edge
			if edgeType != "" && e.Type != edgeType {
				continue
			}
			out = append(out, model.Related{
				Node:      s.nodes[e.TargetID].node.Clone(),
				Edge:      e.Clone(),
				Direction: model.DirectionOutgoing,
			})
		}
	}
	if direction == model.DirectionIncoming || direction == model.DirectionBoth {
		for _, edgeID := range s.idx.incoming[id] {
			e := s.edges[edgeID].edge
			if edgeType != "" && e.Type != edgeType {
				continue
			}
			out = append(out, model.Related{
				Node:      s.nodes[e.SourceID].node.Clone(),
				Edge:      e.Clone(),
				Direction: model.DirectionIncoming,
			})
		}
	}
	return out
}

// hop remembers how a node was first reached during a search.
type hop struct {
	from      string
	edge      *model.Edge
	direction model.Direction
}

// other returns the endpoint of e opposite to id and the direction in which
// e is traversed when leaving id.
func other(e *model.Edge, id string) (string, model.Direction) {
	if e.SourceID == id {
		return e.TargetID, model.DirectionOutgoing
	}
	return e.SourceID, model.DirectionIncoming
}

// FindPath searches a shortest path between two nodes, following edges in
// both directions. Only paths of at most maxDepth edges are found. When
// several shortest paths exist, the one reached first while visiting edges
// in insertion order wins. A node is a path of length zero to itself.
func (s *Store) FindPath(startID, endID string, maxDepth int) ([]model.PathStep, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, ok := s.nodes[startID]
	if !ok {
		return nil, false
	}
	if _, ok := s.nodes[endID]; !ok {
		return nil, false
	}
	if maxDepth < 0 {
		return nil, false
	}
	if startID == endID {
		return []model.PathStep{{Node: start.node.Clone()}}, true
	}

	visited := map[string]hop{startID: {}}
	frontier := []string{startID}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, current := range frontier {
			for _, rec := range s.mergeIncident(current) {
				neighbour, direction := other(rec.edge, current)
				if _, seen := visited[neighbour]; seen {
					continue
				}
				visited[neighbour] = hop{from: current, edge: rec.edge, direction: direction}
				if neighbour == endID {
					return s.buildPath(visited, startID, endID), true
				}
				next = append(next, neighbour)
			}
		}
		frontier = next
	}

	return nil, false
}

func (s *Store) buildPath(visited map[string]hop, startID, endID string) []model.PathStep {
	path := []model.PathStep{{Node: s.nodes[endID].node.Clone()}}
	for id := endID; id != startID; {
		h := visited[id]
		path = append(path, model.PathStep{
			Node:      s.nodes[h.from].node.Clone(),
			Edge:      h.edge.Clone(),
			Direction: h.direction,
		})
		id = h.from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Traverse performs a breadth-first walk from a node up to maxHops edges
// away. An empty edgeType follows every type. The start node is the first
// result with distance 0.
func (s *Store) Traverse(startID string, maxHops int, edgeType model.RelationshipType, direction model.Direction) []*TraversalResult {
	if direction == "" {
		direction = model.DirectionBoth
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start, ok := s.nodes[startID]
	if !ok {
		return nil
	}

	visited := map[string]bool{startID: true}
	queue := []*TraversalResult{{
		Node:     start.node.Clone(),
		Distance: 0,
		Path:     []string{startID},
	}}

	var results []*TraversalResult
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		results = append(results, current)

		// Stop if we've reached max hops
		if current.Distance >= maxHops {
			continue
		}

		for _, rec := range s.mergeIncident(current.Node.ID) {
			if edgeType != "" && rec.edge.Type != edgeType {
				continue
			}
			neighbour, dir := other(rec.edge, current.Node.ID)
			if direction != model.DirectionBoth && dir != direction {
				continue
			}
			if visited[neighbour] {
				continue
			}
			visited[neighbour] = true

			newPath := make([]string, len(current.Path), len(current.Path)+1)
			copy(newPath, current.Path)
			newPath = append(newPath, neighbour)

			queue = append(queue, &TraversalResult{
				Node:     s.nodes[neighbour].node.Clone(),
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results
}
