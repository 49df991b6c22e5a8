package enforced

import (
	"github.com/siherrmann/loregraph/core/graph"
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
	"github.com/siherrmann/loregraph/schema"
)

// Store validates every write against a schema registry before handing it
// to the underlying graph store. Reads pass straight through.
type Store struct {
	graph    *graph.Store
	registry *schema.Registry
}

// NewStore wraps g. A nil registry uses schema.Default().
func NewStore(g *graph.Store, registry *schema.Registry) *Store {
	if registry == nil {
		registry = schema.Default()
	}
	return &Store{graph: g, registry: registry}
}

// Graph exposes the unchecked store, e.g. for snapshot loads.
func (s *Store) Graph() *graph.Store {
	return s.graph
}

func (s *Store) Registry() *schema.Registry {
	return s.registry
}

// AddEntity validates and inserts a node. Nothing is written on error.
func (s *Store) AddEntity(name string, entityType model.EntityType, properties model.Properties) (string, error) {
	if err := s.registry.ValidateEntity(entityType, properties); err != nil {
		return "", helper.NewError("add entity", err)
	}

	id, err := s.graph.AddNode(&model.Node{
		Name:       name,
		Type:       entityType,
		Properties: properties,
	})
	if err != nil {
		return "", helper.NewError("add entity", err)
	}
	return id, nil
}

// AddRelationship validates and inserts an edge. When both endpoints exist
// their types must be registered and allowed by the connection rules; a
// missing endpoint surfaces as the store's model.ErrNotFound.
func (s *Store) AddRelationship(name string, relationshipType model.RelationshipType, sourceID, targetID string, properties model.Properties) (string, error) {
	if err := s.registry.ValidateRelationship(relationshipType, properties); err != nil {
		return "", helper.NewError("add relationship", err)
	}

	id, err := s.graph.AddEdgeChecked(&model.Edge{
		Name:       name,
		Type:       relationshipType,
		SourceID:   sourceID,
		TargetID:   targetID,
		Properties: properties,
	}, func(source, target model.EntityType) error {
		return s.registry.ValidateConnection(relationshipType, source, target)
	})
	if err != nil {
		return "", helper.NewError("add relationship", err)
	}
	return id, nil
}

func (s *Store) GetNode(id string) (*model.Node, bool) {
	return s.graph.GetNode(id)
}

func (s *Store) GetEdge(id string) (*model.Edge, bool) {
	return s.graph.GetEdge(id)
}

func (s *Store) GetNodeByName(name string) (*model.Node, bool) {
	return s.graph.GetNodeByName(name)
}

func (s *Store) GetNodesByType(t model.EntityType) []*model.Node {
	return s.graph.GetNodesByType(t)
}

func (s *Store) GetEdgesByType(t model.RelationshipType) []*model.Edge {
	return s.graph.GetEdgesByType(t)
}

func (s *Store) GetRelatedNodes(id string, edgeType model.RelationshipType, direction model.Direction) []model.Related {
	return s.graph.GetRelatedNodes(id, edgeType, direction)
}

func (s *Store) FindNodesByProperty(name string, value model.Value) []*model.Node {
	return s.graph.FindNodesByProperty(name, value)
}

func (s *Store) FindPath(startID, endID string, maxDepth int) ([]model.PathStep, bool) {
	return s.graph.FindPath(startID, endID, maxDepth)
}

func (s *Store) Traverse(startID string, maxHops int, edgeType model.RelationshipType, direction model.Direction) []*graph.TraversalResult {
	return s.graph.Traverse(startID, maxHops, edgeType, direction)
}

func (s *Store) NodeNames() []string {
	return s.graph.NodeNames()
}

func (s *Store) DeleteNode(id string) bool {
	return s.graph.DeleteNode(id)
}

func (s *Store) DeleteEdge(id string) bool {
	return s.graph.DeleteEdge(id)
}

func (s *Store) SaveToFile(path string) error {
	return s.graph.SaveToFile(path)
}

func (s *Store) LoadFromFile(path string) error {
	return s.graph.LoadFromFile(path)
}

func (s *Store) Clear() {
	s.graph.Clear()
}
