package schema

import (
	"fmt"
	"slices"

	"github.com/siherrmann/loregraph/model"
)

// ViolationError describes the first property or endpoint that does not
// conform to a type's schema. It matches model.ErrSchemaViolation.
type ViolationError struct {
	Type   string
	Field  string
	Reason string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s", model.ErrSchemaViolation, e.Type, e.Field, e.Reason)
}

func (e *ViolationError) Unwrap() error {
	return model.ErrSchemaViolation
}

// ValidateEntity checks properties against the schema of entity type t.
func (r *Registry) ValidateEntity(t model.EntityType, props model.Properties) error {
	def, ok := r.entities[t]
	if !ok {
		return fmt.Errorf("%w: entity type %q", model.ErrUnknownType, t)
	}
	return validateProperties(string(t), def, props)
}

// ValidateRelationship checks properties against the schema of relationship type t.
func (r *Registry) ValidateRelationship(t model.RelationshipType, props model.Properties) error {
	def, ok := r.relationships[t]
	if !ok {
		return fmt.Errorf("%w: relationship type %q", model.ErrUnknownType, t)
	}
	return validateProperties(string(t), def, props)
}

// ValidateConnection checks that a relationship of type t may connect a
// source of type source to a target of type target.
func (r *Registry) ValidateConnection(t model.RelationshipType, source, target model.EntityType) error {
	if _, ok := r.relationships[t]; !ok {
		return fmt.Errorf("%w: relationship type %q", model.ErrUnknownType, t)
	}
	if _, ok := r.entities[source]; !ok {
		return fmt.Errorf("%w: source entity type %q", model.ErrUnknownType, source)
	}
	if _, ok := r.entities[target]; !ok {
		return fmt.Errorf("%w: target entity type %q", model.ErrUnknownType, target)
	}

	rule, ok := r.connections[t]
	if !ok {
		return nil
	}
	if len(rule.Sources) > 0 && !slices.Contains(rule.Sources, source) {
		return &ViolationError{Type: string(t), Field: "source", Reason: fmt.Sprintf("%s cannot be the source", source)}
	}
	if len(rule.Targets) > 0 && !slices.Contains(rule.Targets, target) {
		return &ViolationError{Type: string(t), Field: "target", Reason: fmt.Sprintf("%s cannot be the target", target)}
	}
	return nil
}

// validateProperties reports the first offending field in name order.
func validateProperties(typeName string, def TypeDef, props model.Properties) error {
	for _, name := range props.Keys() {
		p, ok := def.Properties[name]
		if !ok {
			return &ViolationError{Type: typeName, Field: name, Reason: "undeclared property"}
		}
		v := props[name]
		if !v.Finite() {
			return &ViolationError{Type: typeName, Field: name, Reason: "number is NaN or infinite"}
		}
		if !p.Shape.Accepts(v) {
			return &ViolationError{Type: typeName, Field: name, Reason: fmt.Sprintf("expected %s, got %s", p.Shape, v.Kind())}
		}
	}

	required := make([]string, 0)
	for name, p := range def.Properties {
		if p.Required {
			required = append(required, name)
		}
	}
	slices.Sort(required)
	for _, name := range required {
		if _, ok := props[name]; !ok {
			return &ViolationError{Type: typeName, Field: name, Reason: "required property missing"}
		}
	}
	return nil
}
