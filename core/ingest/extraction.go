package ingest

import (
	"fmt"
	"strings"

	"github.com/siherrmann/loregraph/model"
)

// ExtractedEntity is an entity found in a document, keyed by its
// provisional name until the ingestor resolves it to a node id.
type ExtractedEntity struct {
	Name       string           `json:"name"`
	Type       model.EntityType `json:"type"`
	Properties model.Properties `json:"properties,omitempty"`
}

// ExtractedRelationship references its endpoints by provisional name.
type ExtractedRelationship struct {
	Name       string                 `json:"name,omitempty"`
	Type       model.RelationshipType `json:"type"`
	Source     string                 `json:"source"`
	Target     string                 `json:"target"`
	Properties model.Properties       `json:"properties,omitempty"`
}

// DisplayName returns the relationship name, defaulting to
// "<source> <type> <target>", e.g. "Nef created Alfir".
func (r ExtractedRelationship) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	verb := strings.ToLower(strings.ReplaceAll(string(r.Type), "_", " "))
	return fmt.Sprintf("%s %s %s", r.Source, verb, r.Target)
}

// ExtractionResult is everything one or more extractors found.
type ExtractionResult struct {
	Entities      []ExtractedEntity       `json:"entities"`
	Relationships []ExtractedRelationship `json:"relationships"`
}

// Merge appends the findings of other. A nil other is ignored.
func (r *ExtractionResult) Merge(other *ExtractionResult) {
	if other == nil {
		return
	}
	r.Entities = append(r.Entities, other.Entities...)
	r.Relationships = append(r.Relationships, other.Relationships...)
}

func (r *ExtractionResult) Empty() bool {
	return r == nil || (len(r.Entities) == 0 && len(r.Relationships) == 0)
}
