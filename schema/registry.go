package schema

import (
	"sort"

	"github.com/siherrmann/loregraph/model"
)

// PropertyDef declares one property of an entity or relationship type.
type PropertyDef struct {
	Shape       Shape
	Required    bool
	Description string
}

// TypeDef is the property schema of one type tag.
type TypeDef struct {
	Description string
	Properties  map[string]PropertyDef
}

// ConnectionRule restricts the endpoint types of a relationship type.
// An empty list allows any registered type on that side.
type ConnectionRule struct {
	Sources []model.EntityType
	Targets []model.EntityType
}

// Registry maps type tags to their schemas. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	entities      map[model.EntityType]TypeDef
	relationships map[model.RelationshipType]TypeDef
	connections   map[model.RelationshipType]ConnectionRule
}

// NewRegistry copies the given tables into a new Registry.
func NewRegistry(
	entities map[model.EntityType]TypeDef,
	relationships map[model.RelationshipType]TypeDef,
	connections map[model.RelationshipType]ConnectionRule,
) *Registry {
	r := &Registry{
		entities:      make(map[model.EntityType]TypeDef, len(entities)),
		relationships: make(map[model.RelationshipType]TypeDef, len(relationships)),
		connections:   make(map[model.RelationshipType]ConnectionRule, len(connections)),
	}
	for t, def := range entities {
		r.entities[t] = copyTypeDef(def)
	}
	for t, def := range relationships {
		r.relationships[t] = copyTypeDef(def)
	}
	for t, rule := range connections {
		r.connections[t] = ConnectionRule{
			Sources: append([]model.EntityType(nil), rule.Sources...),
			Targets: append([]model.EntityType(nil), rule.Targets...),
		}
	}
	return r
}

func copyTypeDef(def TypeDef) TypeDef {
	props := make(map[string]PropertyDef, len(def.Properties))
	for name, p := range def.Properties {
		props[name] = p
	}
	return TypeDef{Description: def.Description, Properties: props}
}

func (r *Registry) Entity(t model.EntityType) (TypeDef, bool) {
	def, ok := r.entities[t]
	return def, ok
}

func (r *Registry) Relationship(t model.RelationshipType) (TypeDef, bool) {
	def, ok := r.relationships[t]
	return def, ok
}

func (r *Registry) Connection(t model.RelationshipType) (ConnectionRule, bool) {
	rule, ok := r.connections[t]
	return rule, ok
}

// EntityTypes returns the registered entity types sorted by tag.
func (r *Registry) EntityTypes() []model.EntityType {
	out := make([]model.EntityType, 0, len(r.entities))
	for t := range r.entities {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RelationshipTypes returns the registered relationship types sorted by tag.
func (r *Registry) RelationshipTypes() []model.RelationshipType {
	out := make([]model.RelationshipType, 0, len(r.relationships))
	for t := range r.relationships {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
