package model

import "time"

// Node is an entity of the knowledge graph.
type Node struct {
	ID         string     `json:"id"`
	Type       EntityType `json:"type"`
	Name       string     `json:"name"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Properties = n.Properties.Clone()
	return &c
}

// SameContent reports whether both nodes carry the same type, name and
// properties. Ids and timestamps are ignored.
func (n *Node) SameContent(o *Node) bool {
	return n.Type == o.Type && n.Name == o.Name && n.Properties.Equal(o.Properties)
}
