package model

// QueryConfig tunes the query tool.
type QueryConfig struct {
	// MaxDepth bounds path searches that don't pass their own limit.
	MaxDepth int `json:"max_depth"`
	// Direction of relationships attached to enriched facts and descriptions.
	Direction Direction `json:"direction"`
	// RelationshipType restricts attached relationships, empty means any.
	RelationshipType RelationshipType `json:"relationship_type,omitempty"`
	// MaxFacts caps the entity facts attached per retrieval result, 0 means no cap.
	MaxFacts int `json:"max_facts,omitempty"`
	// MaxRelated caps relationships listed per entity, 0 means no cap.
	MaxRelated int `json:"max_related,omitempty"`
}

// DefaultQueryConfig returns a sensible default configuration
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		MaxDepth:  3,
		Direction: DirectionBoth,
		MaxFacts:  5,
	}
}
