package graph

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

type nodeRecord struct {
	node *model.Node
	seq  uint64
}

type edgeRecord struct {
	edge *model.Edge
	seq  uint64
}

// Store is the in-memory knowledge graph. All methods are safe for
// concurrent use: writes are serialized and see no concurrent readers,
// reads run in parallel. Returned nodes and edges are copies.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]*nodeRecord
	edges map[string]*edgeRecord
	idx   *indexes
	seq   uint64
	log   *slog.Logger
}

// NewStore creates an empty store. A nil logger discards all output.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		nodes: map[string]*nodeRecord{},
		edges: map[string]*edgeRecord{},
		idx:   newIndexes(),
		log:   logger,
	}
}

// AddNode inserts a node and returns its id. A missing id is generated.
// Re-adding a node with the same id and content is a no-op; the same id with
// different content fails with model.ErrConflict.
func (s *Store) AddNode(n *model.Node) (string, error) {
	if n == nil {
		return "", helper.NewError("add node", fmt.Errorf("node is nil"))
	}

	node := n.Clone()
	if node.ID == "" {
		node.ID = uuid.NewString()
	}
	stampTimes(&node.CreatedAt, &node.UpdatedAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.nodes[node.ID]; ok {
		if existing.node.SameContent(node) {
			return node.ID, nil
		}
		return "", helper.NewError("add node", fmt.Errorf("%w: node %s already exists", model.ErrConflict, node.ID))
	}

	s.seq++
	rec := &nodeRecord{node: node, seq: s.seq}
	s.nodes[node.ID] = rec
	s.idx.addNode(rec)

	return node.ID, nil
}

// AddEdge inserts an edge between two existing nodes and returns its id.
// Missing endpoints fail with model.ErrNotFound.
func (s *Store) AddEdge(e *model.Edge) (string, error) {
	return s.AddEdgeChecked(e, nil)
}

// EndpointCheck vets the types of an edge's endpoints before insertion.
type EndpointCheck func(source, target model.EntityType) error

// AddEdgeChecked is AddEdge with check run against the endpoint types
// under the same write lock as the insert. Nothing is written when check
// fails.
func (s *Store) AddEdgeChecked(e *model.Edge, check EndpointCheck) (string, error) {
	if e == nil {
		return "", helper.NewError("add edge", fmt.Errorf("edge is nil"))
	}

	edge := e.Clone()
	if edge.ID == "" {
		edge.ID = uuid.NewString()
	}
	stampTimes(&edge.CreatedAt, &edge.UpdatedAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.nodes[edge.SourceID]
	if !ok {
		return "", helper.NewError("add edge", fmt.Errorf("%w: source node %s", model.ErrNotFound, edge.SourceID))
	}
	target, ok := s.nodes[edge.TargetID]
	if !ok {
		return "", helper.NewError("add edge", fmt.Errorf("%w: target node %s", model.ErrNotFound, edge.TargetID))
	}
	if check != nil {
		if err := check(source.node.Type, target.node.Type); err != nil {
			return "", err
		}
	}
	if existing, ok := s.edges[edge.ID]; ok {
		if existing.edge.SameContent(edge) {
			return edge.ID, nil
		}
		return "", helper.NewError("add edge", fmt.Errorf("%w: edge %s already exists", model.ErrConflict, edge.ID))
	}

	s.seq++
	rec := &edgeRecord{edge: edge, seq: s.seq}
	s.edges[edge.ID] = rec
	s.idx.addEdge(rec)

	return edge.ID, nil
}

func stampTimes(created, updated *time.Time) {
	if created.IsZero() {
		*created = time.Now().UTC()
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func (s *Store) GetNode(id string) (*model.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.nodes[id]
	if !ok {
		return nil, false
	}
	return rec.node.Clone(), true
}

func (s *Store) GetEdge(id string) (*model.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.edges[id]
	if !ok {
		return nil, false
	}
	return rec.edge.Clone(), true
}

// GetNodeByName returns the most recently inserted node with that name.
func (s *Store) GetNodeByName(name string) (*model.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.idx.nodeByName[name]
	if !ok {
		return nil, false
	}
	return s.nodes[id].node.Clone(), true
}

// GetNodesByType returns all nodes of a type in insertion order.
func (s *Store) GetNodesByType(t model.EntityType) []*model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*nodeRecord, 0, len(s.idx.nodesByType[t]))
	for id := range s.idx.nodesByType[t] {
		recs = append(recs, s.nodes[id])
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	out := make([]*model.Node, len(recs))
	for i, rec := range recs {
		out[i] = rec.node.Clone()
	}
	return out
}

// GetEdgesByType returns all edges of a type in insertion order.
func (s *Store) GetEdgesByType(t model.RelationshipType) []*model.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*edgeRecord, 0, len(s.idx.edgesByType[t]))
	for id := range s.idx.edgesByType[t] {
		recs = append(recs, s.edges[id])
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	out := make([]*model.Edge, len(recs))
	for i, rec := range recs {
		out[i] = rec.edge.Clone()
	}
	return out
}

// FindNodesByProperty scans all nodes for a property equal to value.
func (s *Store) FindNodesByProperty(name string, value model.Value) []*model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Node
	for _, rec := range s.sortedNodes() {
		if v, ok := rec.node.Properties[name]; ok && v.Equal(value) {
			out = append(out, rec.node.Clone())
		}
	}
	return out
}

// DeleteNode removes a node and every edge touching it. It reports whether
// the node existed.
func (s *Store) DeleteNode(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.nodes[id]
	if !ok {
		return false
	}

	// collect first, the adjacency lists shrink while edges are removed
	incident := make([]string, 0, len(s.idx.outgoing[id])+len(s.idx.incoming[id]))
	seen := map[string]bool{}
	for _, list := range [][]string{s.idx.outgoing[id], s.idx.incoming[id]} {
		for _, edgeID := range list {
			if !seen[edgeID] {
				seen[edgeID] = true
				incident = append(incident, edgeID)
			}
		}
	}
	for _, edgeID := range incident {
		s.deleteEdgeLocked(edgeID)
	}

	delete(s.nodes, id)
	s.idx.removeNode(rec, s.nameFallback(rec.node.Name))

	s.log.Debug("Deleted node", slog.String("id", id), slog.String("name", rec.node.Name), slog.Int("cascaded_edges", len(incident)))
	return true
}

// nameFallback finds the most recently inserted node still carrying name.
// It must be called after the deleted node left s.nodes.
func (s *Store) nameFallback(name string) string {
	var best *nodeRecord
	for _, rec := range s.nodes {
		if rec.node.Name == name && (best == nil || rec.seq > best.seq) {
			best = rec
		}
	}
	if best == nil {
		return ""
	}
	return best.node.ID
}

// DeleteEdge removes an edge and reports whether it existed.
func (s *Store) DeleteEdge(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteEdgeLocked(id)
}

func (s *Store) deleteEdgeLocked(id string) bool {
	rec, ok := s.edges[id]
	if !ok {
		return false
	}
	delete(s.edges, id)
	s.idx.removeEdge(rec)
	return true
}

// Clear removes everything.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = map[string]*nodeRecord{}
	s.edges = map[string]*edgeRecord{}
	s.idx = newIndexes()
	s.seq = 0
}

func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// Nodes returns every node in insertion order.
func (s *Store) Nodes() []*model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.sortedNodes()
	out := make([]*model.Node, len(recs))
	for i, rec := range recs {
		out[i] = rec.node.Clone()
	}
	return out
}

// Edges returns every edge in insertion order.
func (s *Store) Edges() []*model.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.sortedEdges()
	out := make([]*model.Edge, len(recs))
	for i, rec := range recs {
		out[i] = rec.edge.Clone()
	}
	return out
}

// NodeNames returns the indexed names in sorted order.
func (s *Store) NodeNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.idx.nodeByName))
	for name := range s.idx.nodeByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) sortedNodes() []*nodeRecord {
	recs := make([]*nodeRecord, 0, len(s.nodes))
	for _, rec := range s.nodes {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	return recs
}

func (s *Store) sortedEdges() []*edgeRecord {
	recs := make([]*edgeRecord, 0, len(s.edges))
	for _, rec := range s.edges {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	return recs
}
