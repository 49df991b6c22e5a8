package query

import (
	"github.com/siherrmann/loregraph/core/graph"
	"github.com/siherrmann/loregraph/model"
)

// Reader is the read side of the graph, satisfied by graph.Store and
// enforced.Store.
type Reader interface {
	GetNode(id string) (*model.Node, bool)
	GetNodeByName(name string) (*model.Node, bool)
	GetRelatedNodes(id string, edgeType model.RelationshipType, direction model.Direction) []model.Related
	FindNodesByProperty(name string, value model.Value) []*model.Node
	FindPath(startID, endID string, maxDepth int) ([]model.PathStep, bool)
	Traverse(startID string, maxHops int, edgeType model.RelationshipType, direction model.Direction) []*graph.TraversalResult
	NodeNames() []string
}

// Tool answers graph questions for the agent layer. It never writes.
type Tool struct {
	reader Reader
	config model.QueryConfig
}

// NewTool creates a tool over r. A nil config uses model.DefaultQueryConfig().
func NewTool(r Reader, config *model.QueryConfig) *Tool {
	c := model.DefaultQueryConfig()
	if config != nil {
		c = *config
	}
	if c.Direction == "" {
		c.Direction = model.DirectionBoth
	}
	return &Tool{reader: r, config: c}
}

func (t *Tool) Config() model.QueryConfig {
	return t.config
}

// resolve looks an identifier up as an id first, then as a name.
func (t *Tool) resolve(identifier string) (*model.Node, bool) {
	if n, ok := t.reader.GetNode(identifier); ok {
		return n, true
	}
	return t.reader.GetNodeByName(identifier)
}

// GetEntity returns the entity with that id or name.
func (t *Tool) GetEntity(identifier string) (*model.EntityView, bool) {
	n, ok := t.resolve(identifier)
	if !ok {
		return nil, false
	}
	view := model.NewEntityView(n)
	return &view, true
}

// GetRelatedEntities lists the relationships of an entity. An empty
// relationType matches every type. Unresolved identifiers yield nothing.
func (t *Tool) GetRelatedEntities(identifier string, relationType model.RelationshipType, direction model.Direction) []model.RelatedEntity {
	n, ok := t.resolve(identifier)
	if !ok {
		return nil
	}

	related := t.reader.GetRelatedNodes(n.ID, relationType, direction)
	out := make([]model.RelatedEntity, 0, len(related))
	for _, r := range related {
		out = append(out, model.RelatedEntity{
			Entity:       model.NewEntityView(r.Node),
			Relationship: model.NewRelationshipView(r.Edge, r.Direction),
		})
	}
	return out
}

// FindPathBetween renders the shortest path between two entities. A
// negative maxDepth uses the configured default.
func (t *Tool) FindPathBetween(start, end string, maxDepth int) ([]model.PathStepView, bool) {
	from, ok := t.resolve(start)
	if !ok {
		return nil, false
	}
	to, ok := t.resolve(end)
	if !ok {
		return nil, false
	}
	if maxDepth < 0 {
		maxDepth = t.config.MaxDepth
	}

	path, ok := t.reader.FindPath(from.ID, to.ID, maxDepth)
	if !ok {
		return nil, false
	}

	out := make([]model.PathStepView, len(path))
	for i, step := range path {
		out[i].Entity = model.NewEntityView(step.Node)
		if step.Edge != nil {
			rel := model.NewRelationshipView(step.Edge, step.Direction)
			out[i].Relationship = &rel
		}
	}
	return out, true
}

// SearchEntities finds entities whose property equals value, optionally
// restricted to one type.
func (t *Tool) SearchEntities(property string, value model.Value, entityType model.EntityType) []model.EntityView {
	var out []model.EntityView
	for _, n := range t.reader.FindNodesByProperty(property, value) {
		if entityType != "" && n.Type != entityType {
			continue
		}
		out = append(out, model.NewEntityView(n))
	}
	return out
}

// Neighborhood lists the entities within maxHops of an entity with their
// distance. The entity itself comes first at distance 0.
func (t *Tool) Neighborhood(identifier string, maxHops int) []model.NeighborView {
	n, ok := t.resolve(identifier)
	if !ok {
		return nil
	}

	results := t.reader.Traverse(n.ID, maxHops, t.config.RelationshipType, t.config.Direction)
	out := make([]model.NeighborView, len(results))
	for i, r := range results {
		out[i] = model.NeighborView{Entity: model.NewEntityView(r.Node), Distance: r.Distance}
	}
	return out
}
