package schema

import "github.com/siherrmann/loregraph/model"

// Shape is the declared form of a property value.
type Shape uint8

const (
	ShapeString Shape = iota + 1
	ShapeInteger
	ShapeNumber
	ShapeBool
	ShapeStringList
	ShapeStringMap
	ShapeNumberMap
	// ShapeAnyMap is a map with values of any kind.
	ShapeAnyMap
	// ShapeMapList is a list of maps with values of any kind.
	ShapeMapList
	// ShapeStringMapList is a list of maps of strings.
	ShapeStringMapList
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeInteger:
		return "integer"
	case ShapeNumber:
		return "number"
	case ShapeBool:
		return "bool"
	case ShapeStringList:
		return "list of strings"
	case ShapeStringMap:
		return "map of strings"
	case ShapeNumberMap:
		return "map of numbers"
	case ShapeAnyMap:
		return "map"
	case ShapeMapList:
		return "list of maps"
	case ShapeStringMapList:
		return "list of string maps"
	}
	return "unknown shape"
}

// Accepts reports whether v has this shape. Null and non-finite numbers
// never match.
func (s Shape) Accepts(v model.Value) bool {
	switch s {
	case ShapeString:
		return v.Kind() == model.KindString
	case ShapeInteger:
		return v.IsInteger()
	case ShapeNumber:
		return v.Kind() == model.KindNumber && v.Finite()
	case ShapeBool:
		return v.Kind() == model.KindBool
	case ShapeStringList:
		return listOf(v, model.KindString)
	case ShapeStringMap:
		return mapOf(v, model.KindString)
	case ShapeNumberMap:
		return mapOf(v, model.KindNumber)
	case ShapeAnyMap:
		return v.Kind() == model.KindMap
	case ShapeMapList:
		return listOf(v, model.KindMap)
	case ShapeStringMapList:
		items, ok := v.AsList()
		if !ok {
			return false
		}
		for _, item := range items {
			if !mapOf(item, model.KindString) {
				return false
			}
		}
		return true
	}
	return false
}

func listOf(v model.Value, kind model.Kind) bool {
	items, ok := v.AsList()
	if !ok {
		return false
	}
	for _, item := range items {
		if item.Kind() != kind {
			return false
		}
	}
	return true
}

func mapOf(v model.Value, kind model.Kind) bool {
	fields, ok := v.AsMap()
	if !ok {
		return false
	}
	for _, item := range fields {
		if item.Kind() != kind || !item.Finite() {
			return false
		}
	}
	return true
}
