package model

import "time"

// Edge is a directed, typed relationship between two nodes.
type Edge struct {
	ID         string           `json:"id"`
	Type       RelationshipType `json:"type"`
	Name       string           `json:"name"`
	SourceID   string           `json:"source_id"`
	TargetID   string           `json:"target_id"`
	Properties Properties       `json:"properties"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Clone returns a deep copy of the edge.
func (e *Edge) Clone() *Edge {
	if e == nil {
		return nil
	}
	c := *e
	c.Properties = e.Properties.Clone()
	return &c
}

func (e *Edge) SameContent(o *Edge) bool {
	return e.Type == o.Type && e.Name == o.Name &&
		e.SourceID == o.SourceID && e.TargetID == o.TargetID &&
		e.Properties.Equal(o.Properties)
}

// Related is a neighbour reached over Edge. Direction is outgoing when the
// starting node is the edge source.
type Related struct {
	Node      *Node
	Edge      *Edge
	Direction Direction
}

// PathStep is one node of a path. Edge leads from Node to the next step and
// is nil on the last step.
type PathStep struct {
	Node      *Node
	Edge      *Edge
	Direction Direction
}
