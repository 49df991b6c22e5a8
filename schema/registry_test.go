package schema

import (
	"math"
	"testing"

	"github.com/siherrmann/loregraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	t.Run("Every entity type is registered", func(t *testing.T) {
		for _, et := range model.EntityTypes() {
			def, ok := reg.Entity(et)
			require.True(t, ok, "Expected %s to be registered", et)
			assert.NotEmpty(t, def.Description)
			assert.Contains(t, def.Properties, "description", "Expected base properties on %s", et)
		}
		assert.Len(t, reg.EntityTypes(), len(model.EntityTypes()))
	})

	t.Run("Every relationship type is registered", func(t *testing.T) {
		for _, rt := range model.RelationshipTypes() {
			def, ok := reg.Relationship(rt)
			require.True(t, ok, "Expected %s to be registered", rt)
			assert.Contains(t, def.Properties, "strength", "Expected base properties on %s", rt)
		}
		assert.Len(t, reg.RelationshipTypes(), len(model.RelationshipTypes()))
	})

	t.Run("Specific fields override base fields", func(t *testing.T) {
		def, ok := reg.Entity(model.EntityArtifact)
		require.True(t, ok)
		assert.Equal(t, ShapeStringMap, def.Properties["creation_date"].Shape)

		def, ok = reg.Entity(model.EntityNPC)
		require.True(t, ok)
		assert.Equal(t, ShapeString, def.Properties["creation_date"].Shape)
	})

	t.Run("Social relationships carry only base fields", func(t *testing.T) {
		def, ok := reg.Relationship(model.RelTeaches)
		require.True(t, ok)
		assert.Len(t, def.Properties, 6)
	})

	t.Run("Default is shared", func(t *testing.T) {
		assert.Same(t, reg, Default())
	})
}

func TestNewRegistryCopiesTables(t *testing.T) {
	entities := map[model.EntityType]TypeDef{
		"CITY": {Properties: map[string]PropertyDef{"name": {Shape: ShapeString}}},
	}
	reg := NewRegistry(entities, nil, nil)

	entities["CITY"].Properties["mayor"] = PropertyDef{Shape: ShapeString}
	delete(entities, "CITY")

	def, ok := reg.Entity("CITY")
	require.True(t, ok)
	assert.NotContains(t, def.Properties, "mayor")
}

func TestShapeAccepts(t *testing.T) {
	cases := []struct {
		shape Shape
		value model.Value
		want  bool
	}{
		{ShapeString, model.String("x"), true},
		{ShapeString, model.Int(1), false},
		{ShapeInteger, model.Int(20), true},
		{ShapeInteger, model.Number(20.5), false},
		{ShapeNumber, model.Number(0.25), true},
		{ShapeBool, model.Bool(true), true},
		{ShapeStringList, model.StringList("a", "b"), true},
		{ShapeStringList, model.List(model.String("a"), model.Int(1)), false},
		{ShapeStringList, model.List(), true},
		{ShapeStringMap, model.Map(map[string]model.Value{"YA": model.String("1 million")}), true},
		{ShapeStringMap, model.Map(map[string]model.Value{"YA": model.Int(1)}), false},
		{ShapeNumberMap, model.Map(map[string]model.Value{"x": model.Number(1.5), "y": model.Int(2)}), true},
		{ShapeAnyMap, model.Map(map[string]model.Value{"ac": model.Int(15), "notes": model.String("x")}), true},
		{ShapeMapList, model.List(model.Map(map[string]model.Value{"item": model.String("rope"), "price": model.Int(1)})), true},
		{ShapeMapList, model.StringList("rope"), false},
		{ShapeStringMapList, model.List(model.Map(map[string]model.Value{"name": model.String("Kara")})), true},
		{ShapeStringMapList, model.List(model.Map(map[string]model.Value{"level": model.Int(3)})), false},
		{ShapeString, model.Value{}, false},
		{ShapeNumber, model.Number(math.NaN()), false},
		{ShapeNumber, model.Number(math.Inf(1)), false},
		{ShapeNumberMap, model.Map(map[string]model.Value{"x": model.Number(math.Inf(-1))}), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.shape.Accepts(c.value), "%s accepting %v", c.shape, c.value.Native())
	}
}
