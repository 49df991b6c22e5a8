package enforced

import (
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

type seedEntity struct {
	name       string
	entityType model.EntityType
	properties map[string]any
}

type seedRelationship struct {
	name             string
	relationshipType model.RelationshipType
	source, target   string
	properties       map[string]any
}

var starcrashEntities = []seedEntity{
	{"Archos", model.EntityDeity, map[string]any{
		"description": "God of Order, Logic, and Law",
		"domain":      []string{"Order", "Logic", "Law"},
		"pantheon":    "Archosian Pantheon",
	}},
	{"Nef", model.EntityDeity, map[string]any{
		"description": "Goddess of Freedom, Creativity, and Chaos",
		"domain":      []string{"Freedom", "Creativity", "Chaos"},
		"pantheon":    "Nef Pantheon",
	}},
	{"Alfir", model.EntityRace, map[string]any{
		"description": "The original elven race created by the Uthra",
		"origin":      "Created by the Uthra using material components of Caierah",
		"traits":      []string{"Balanced magic", "Connection to nature"},
		"subraces":    []string{"Elves", "Drow"},
	}},
	{"The Starcrash", model.EntityEvent, map[string]any{
		"description":  "Meteoric impact of pure astrum that created magic",
		"date":         map[string]any{"YA": "1 million years ago"},
		"significance": "Introduced magic to the material universe",
	}},
	{"Caierah", model.EntityLocation, map[string]any{
		"description":        "The moon where the main campaign takes place",
		"location_type":      "Moon",
		"population":         "Varied civilizations",
		"points_of_interest": []string{"Thraxus", "Meridia", "Thuskara", "Osoth", "Iberon"},
	}},
	{"Thalindra the Archmage", model.EntityNPC, map[string]any{
		"description": "An ancient elf who has studied the Starcrash for centuries",
		"race":        "Alfir",
		"class_type":  "Wizard",
		"level":       20,
		"motivation":  "To understand the true nature of astrum magic",
		"personality": "Curious, methodical, somewhat detached from daily concerns",
	}},
	{"Orb of Astral Resonance", model.EntityArtifact, map[string]any{
		"description": "A crystalline sphere that thrums with magical power",
		"powers":      []string{"Detect magic", "Enhance spellcasting", "Store spells"},
		"materials":   []string{"Astrum crystal", "Celestial silver"},
		"sentience":   false,
	}},
}

var starcrashRelationships = []seedRelationship{
	{"Twin Gods Creation", model.RelParentOf, "Archos", "Nef", map[string]any{
		"description":       "The cosmic relationship between the twin gods",
		"relationship_type": "Divine twins",
	}},
	{"Magic Origin", model.RelCreated, "The Starcrash", "Caierah", map[string]any{
		"description": "The Starcrash created magic on Caierah",
		"method":      "Meteoric impact of pure astrum",
	}},
	{"Residence of Thalindra", model.RelLocatedIn, "Thalindra the Archmage", "Caierah", map[string]any{
		"description": "Thalindra lives in a tower on the eastern coast of Caierah",
		"position":    "Eastern Coast",
		"permanence":  "Centuries",
	}},
	{"Racial Heritage", model.RelMemberOf, "Thalindra the Archmage", "Alfir", map[string]any{
		"description": "Thalindra is one of the eldest living Alfir",
		"role":        "Elder Sage",
		"standing":    "Highly respected",
	}},
	{"Creator of the Orb", model.RelCreated, "Thalindra the Archmage", "Orb of Astral Resonance", map[string]any{
		"description": "Thalindra created the Orb after decades of research",
		"method":      "Complex ritual during astral conjunction",
		"purpose":     "To study the nature of astrum magic",
	}},
}

// SeedStarcrash adds the Starcrash sample setting: two deities, the Alfir,
// the Starcrash event, the moon Caierah, an archmage and her orb.
func SeedStarcrash(s *Store) error {
	ids := map[string]string{}
	for _, e := range starcrashEntities {
		props, err := model.PropertiesOf(e.properties)
		if err != nil {
			return helper.NewError("seed "+e.name, err)
		}
		id, err := s.AddEntity(e.name, e.entityType, props)
		if err != nil {
			return helper.NewError("seed "+e.name, err)
		}
		ids[e.name] = id
	}

	for _, r := range starcrashRelationships {
		props, err := model.PropertiesOf(r.properties)
		if err != nil {
			return helper.NewError("seed "+r.name, err)
		}
		if _, err := s.AddRelationship(r.name, r.relationshipType, ids[r.source], ids[r.target], props); err != nil {
			return helper.NewError("seed "+r.name, err)
		}
	}
	return nil
}
