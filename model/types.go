package model

import (
	"fmt"
	"strings"
)

// EntityType tags a node.
type EntityType string

const (
	EntityDeity       EntityType = "DEITY"
	EntityRace        EntityType = "RACE"
	EntityLocation    EntityType = "LOCATION"
	EntityEvent       EntityType = "EVENT"
	EntityEra         EntityType = "ERA"
	EntityArtifact    EntityType = "ARTIFACT"
	EntityConcept     EntityType = "CONCEPT"
	EntityPlane       EntityType = "PLANE"
	EntityNPC         EntityType = "NPC"
	EntityFaction     EntityType = "FACTION"
	EntityVillain     EntityType = "VILLAIN"
	EntityMonster     EntityType = "MONSTER"
	EntityPartyMember EntityType = "PARTY_MEMBER"
	EntityQuest       EntityType = "QUEST"
	EntityShop        EntityType = "SHOP"
	EntityTreasure    EntityType = "TREASURE"
	EntitySession     EntityType = "SESSION"
)

// EntityTypes lists every entity type in declaration order.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityDeity, EntityRace, EntityLocation, EntityEvent, EntityEra,
		EntityArtifact, EntityConcept, EntityPlane,
		EntityNPC, EntityFaction, EntityVillain, EntityMonster, EntityPartyMember,
		EntityQuest, EntityShop, EntityTreasure, EntitySession,
	}
}

// RelationshipType tags an edge.
type RelationshipType string

const (
	// world lore
	RelCreated         RelationshipType = "CREATED"
	RelDestroyed       RelationshipType = "DESTROYED"
	RelRules           RelationshipType = "RULES"
	RelCaused          RelationshipType = "CAUSED"
	RelLocatedIn       RelationshipType = "LOCATED_IN"
	RelMemberOf        RelationshipType = "MEMBER_OF"
	RelTransformedInto RelationshipType = "TRANSFORMED_INTO"
	RelParentOf        RelationshipType = "PARENT_OF"
	RelOccurredDuring  RelationshipType = "OCCURRED_DURING"
	RelConnectedTo     RelationshipType = "CONNECTED_TO"

	// campaign social web
	RelAllyOf           RelationshipType = "ALLY_OF"
	RelEnemyOf          RelationshipType = "ENEMY_OF"
	RelAcquaintedWith   RelationshipType = "ACQUAINTED_WITH"
	RelFamilyOf         RelationshipType = "FAMILY_OF"
	RelServes           RelationshipType = "SERVES"
	RelLeads            RelationshipType = "LEADS"
	RelProtects         RelationshipType = "PROTECTS"
	RelThreatens        RelationshipType = "THREATENS"
	RelHired            RelationshipType = "HIRED"
	RelRescued          RelationshipType = "RESCUED"
	RelDefeated         RelationshipType = "DEFEATED"
	RelCompleted        RelationshipType = "COMPLETED"
	RelKnowsSecretAbout RelationshipType = "KNOWS_SECRET_ABOUT"
	RelOwesFavorTo      RelationshipType = "OWES_FAVOR_TO"
	RelDistrusts        RelationshipType = "DISTRUSTS"
	RelSellsTo          RelationshipType = "SELLS_TO"
	RelTeaches          RelationshipType = "TEACHES"
)

// RelationshipTypes lists every relationship type in declaration order.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelCreated, RelDestroyed, RelRules, RelCaused, RelLocatedIn,
		RelMemberOf, RelTransformedInto, RelParentOf, RelOccurredDuring, RelConnectedTo,
		RelAllyOf, RelEnemyOf, RelAcquaintedWith, RelFamilyOf, RelServes,
		RelLeads, RelProtects, RelThreatens, RelHired, RelRescued,
		RelDefeated, RelCompleted, RelKnowsSecretAbout, RelOwesFavorTo, RelDistrusts,
		RelSellsTo, RelTeaches,
	}
}

// Direction selects which adjacency of a node to follow.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionBoth     Direction = "both"
)

// ParseDirection accepts outgoing, incoming or both, case-insensitive.
// The empty string means both.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DirectionBoth, nil
	case DirectionOutgoing, DirectionIncoming, DirectionBoth:
		return d, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}
