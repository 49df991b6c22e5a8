package model

// EntityView is the flattened, agent-facing form of a node.
type EntityView struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
}

// RelationshipView is the flattened form of an edge as seen from one of
// its endpoints.
type RelationshipView struct {
	ID         string           `json:"id"`
	Type       RelationshipType `json:"type"`
	Name       string           `json:"name"`
	Direction  Direction        `json:"direction"`
	Properties map[string]any   `json:"properties"`
}

type RelatedEntity struct {
	Entity       EntityView       `json:"entity"`
	Relationship RelationshipView `json:"relationship"`
}

// PathStepView is one rendered step of a path. Relationship leads to the
// next step and is nil on the last one.
type PathStepView struct {
	Entity       EntityView        `json:"entity"`
	Relationship *RelationshipView `json:"relationship,omitempty"`
}

func NewEntityView(n *Node) EntityView {
	return EntityView{
		ID:         n.ID,
		Type:       n.Type,
		Name:       n.Name,
		Properties: n.Properties.Native(),
	}
}

func NewRelationshipView(e *Edge, direction Direction) RelationshipView {
	return RelationshipView{
		ID:         e.ID,
		Type:       e.Type,
		Name:       e.Name,
		Direction:  direction,
		Properties: e.Properties.Native(),
	}
}

// NeighborView is an entity reached during a traversal.
type NeighborView struct {
	Entity   EntityView `json:"entity"`
	Distance int        `json:"distance"`
}
