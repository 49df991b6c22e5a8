package schema

import (
	"sync"

	"github.com/siherrmann/loregraph/model"
)

type field struct {
	name        string
	shape       Shape
	description string
}

var baseEntityFields = []field{
	{"description", ShapeString, "General description"},
	{"creation_date", ShapeString, "When the entity was added"},
	{"last_updated", ShapeString, "When the entity was last modified"},
	{"canonical_id", ShapeString, "Reference id in the source material"},
	{"information_source", ShapeString, "Where the information comes from"},
	{"image_url", ShapeString, "Image representing the entity"},
	{"campaign_notes", ShapeString, "Private GM notes"},
	{"player_knowledge", ShapeString, "What the players know"},
	{"auto_created", ShapeBool, "Created implicitly while ingesting a relationship"},
}

var baseRelationshipFields = []field{
	{"description", ShapeString, "Details about the relationship"},
	{"strength", ShapeInteger, "How strong the connection is (1-10)"},
	{"start_date", ShapeStringMap, "When it began, per dating system"},
	{"end_date", ShapeStringMap, "When it ended, per dating system"},
	{"public_knowledge", ShapeBool, "Whether it is widely known"},
	{"notes", ShapeString, "Additional information"},
}

type entitySchema struct {
	description string
	fields      []field
}

var entitySchemas = map[model.EntityType]entitySchema{
	model.EntityDeity: {"A god or divine power", []field{
		{"domain", ShapeStringList, "Areas of divine influence"},
		{"pantheon", ShapeString, "Divine group membership"},
		{"alignment", ShapeString, "Moral and ethical stance"},
		{"symbol", ShapeString, "Divine symbol"},
		{"holy_days", ShapeStringList, "Sacred days"},
		{"clergy_title", ShapeString, "Title of the priesthood"},
		{"associated_plane", ShapeString, "Connected planar domain"},
	}},
	model.EntityRace: {"A people or species", []field{
		{"origin", ShapeString, "How the race came to be"},
		{"traits", ShapeStringList, "Notable characteristics"},
		{"lifespan", ShapeString, "Typical longevity"},
		{"homeland", ShapeString, "Traditional territory"},
		{"language", ShapeStringList, "Languages spoken"},
		{"subraces", ShapeStringList, "Variants within the race"},
		{"racial_abilities", ShapeStringList, "Special capabilities"},
	}},
	model.EntityLocation: {"A place in the world", []field{
		{"location_type", ShapeString, "City, dungeon, wilderness, moon"},
		{"population", ShapeString, "Approximate inhabitants"},
		{"government", ShapeString, "Ruling system"},
		{"climate", ShapeString, "Weather patterns"},
		{"resources", ShapeStringList, "Notable resources or exports"},
		{"dangers", ShapeStringList, "Threats or hazards"},
		{"points_of_interest", ShapeStringList, "Notable sites"},
		{"maps", ShapeStringList, "Map image references"},
		{"accessibility", ShapeString, "How easy it is to reach"},
		{"coordinates", ShapeNumberMap, "Position on the world map"},
	}},
	model.EntityEvent: {"A historical happening", []field{
		{"date", ShapeStringMap, "When it occurred, per dating system"},
		{"duration", ShapeString, "How long it lasted"},
		{"participants", ShapeStringList, "Who was involved"},
		{"outcome", ShapeString, "Result of the event"},
		{"significance", ShapeString, "Historical importance"},
		{"witnesses", ShapeStringList, "Who observed it"},
		{"historical_evidence", ShapeString, "How the event is known"},
	}},
	model.EntityEra: {"A span of history", []field{
		{"start_date", ShapeStringMap, "Beginning, per dating system"},
		{"end_date", ShapeStringMap, "Ending, per dating system"},
		{"defining_events", ShapeStringList, "Major historical moments"},
		{"societal_changes", ShapeString, "How society evolved"},
		{"technological_level", ShapeString, "Advancement of technology and magic"},
		{"preceding_era", ShapeString, "What came before"},
		{"following_era", ShapeString, "What came after"},
	}},
	model.EntityArtifact: {"A notable object", []field{
		{"creator", ShapeString, "Who made it"},
		{"creation_date", ShapeStringMap, "When it was made, per dating system"},
		{"materials", ShapeStringList, "What it is made of"},
		{"powers", ShapeStringList, "Magical abilities"},
		{"current_location", ShapeString, "Where it is now"},
		{"previous_owners", ShapeStringList, "Who has possessed it"},
		{"sentience", ShapeBool, "Whether it has a mind"},
		{"alignment", ShapeString, "Moral and ethical stance"},
		{"destruction_method", ShapeString, "How it can be destroyed"},
		{"game_mechanics", ShapeAnyMap, "Rules for using the item"},
	}},
	model.EntityConcept: {"An idea, force or tradition", []field{
		{"category", ShapeString, "Magical, cultural, ..."},
		{"practitioners", ShapeStringList, "Who uses or believes it"},
		{"origin", ShapeString, "How it came to be"},
		{"limitations", ShapeStringList, "Constraints or weaknesses"},
		{"related_concepts", ShapeStringList, "Connected ideas"},
		{"applications", ShapeStringList, "How it is used"},
		{"variations", ShapeStringList, "Different forms"},
	}},
	model.EntityPlane: {"A plane of existence", []field{
		{"plane_type", ShapeString, "Material, elemental, divine, ..."},
		{"physical_laws", ShapeStringList, "How reality works there"},
		{"inhabitants", ShapeStringList, "Native beings"},
		{"entry_points", ShapeStringList, "How to get there"},
		{"hazards", ShapeStringList, "Plane specific dangers"},
		{"affinity", ShapeStringList, "Resonating elements or concepts"},
		{"parent_plane", ShapeString, "Plane it derives from"},
	}},
	model.EntityNPC: {"A non-player character", []field{
		{"race", ShapeString, "Species or lineage"},
		{"class_type", ShapeString, "Character class"},
		{"level", ShapeInteger, "Power level"},
		{"occupation", ShapeString, "Job or role"},
		{"current_location", ShapeString, "Where they are now"},
		{"motivation", ShapeString, "What drives them"},
		{"secrets", ShapeStringList, "Hidden information"},
		{"personality", ShapeString, "Character traits"},
		{"appearance", ShapeString, "Physical description"},
		{"possessions", ShapeStringList, "Notable items"},
		{"stats", ShapeAnyMap, "Game statistics"},
		{"quest_giver", ShapeBool, "Whether they offer quests"},
		{"first_appearance", ShapeString, "When introduced to the campaign"},
	}},
	model.EntityFaction: {"A guild, kingdom, cult or other group", []field{
		{"faction_type", ShapeString, "Guild, kingdom, cult, ..."},
		{"headquarters", ShapeString, "Base of operations"},
		{"leader", ShapeString, "Who is in charge"},
		{"influence", ShapeInteger, "Power scale (1-10)"},
		{"resources", ShapeStringList, "Available assets"},
		{"goals", ShapeStringList, "What they want"},
		{"territory", ShapeStringList, "Areas they control"},
		{"allies", ShapeStringList, "Friendly organizations"},
		{"enemies", ShapeStringList, "Hostile organizations"},
		{"members", ShapeStringList, "Notable individuals"},
		{"hierarchy", ShapeString, "Organizational structure"},
		{"founding_date", ShapeStringMap, "When established"},
		{"reputation", ShapeString, "How they are perceived"},
		{"symbol", ShapeString, "Identifying mark"},
	}},
	model.EntityVillain: {"An antagonist of the campaign", []field{
		{"villain_type", ShapeString, "Mastermind, enforcer, ..."},
		{"threat_level", ShapeInteger, "Danger scale (1-10)"},
		{"motivation", ShapeString, "Evil goals"},
		{"methods", ShapeStringList, "How they operate"},
		{"minions", ShapeStringList, "Followers"},
		{"weaknesses", ShapeStringList, "Vulnerabilities"},
		{"base", ShapeString, "Headquarters"},
		{"schemes", ShapeStringList, "Current plots"},
		{"backstory", ShapeString, "Origin and history"},
		{"stats", ShapeAnyMap, "Game statistics"},
		{"escape_plans", ShapeStringList, "How they avoid defeat"},
	}},
	model.EntityMonster: {"A creature", []field{
		{"monster_type", ShapeString, "Beast, undead, construct, ..."},
		{"challenge_rating", ShapeNumber, "Difficulty rating"},
		{"habitat", ShapeStringList, "Where they are found"},
		{"behavior", ShapeString, "How they act"},
		{"abilities", ShapeStringList, "Special powers"},
		{"weaknesses", ShapeStringList, "Vulnerabilities"},
		{"loot", ShapeStringList, "Items they carry"},
		{"diet", ShapeString, "What they eat"},
		{"variants", ShapeStringList, "Different forms"},
		{"stats", ShapeAnyMap, "Game statistics"},
		{"encounter_tables", ShapeStringList, "Random encounter tables"},
	}},
	model.EntityPartyMember: {"A player character", []field{
		{"player", ShapeString, "Real player's name"},
		{"race", ShapeString, "Character race"},
		{"class_type", ShapeString, "Character class"},
		{"level", ShapeInteger, "Character level"},
		{"background", ShapeString, "Backstory"},
		{"goals", ShapeStringList, "Motivations"},
		{"connections", ShapeStringMapList, "Personal ties"},
		{"character_sheet", ShapeString, "Link to the character sheet"},
		{"favorite_tactics", ShapeStringList, "Preferred battle tactics"},
		{"personality_traits", ShapeStringList, "Quirks and behavior"},
		{"personal_quests", ShapeStringList, "Individual storylines"},
	}},
	model.EntityQuest: {"A mission for the party", []field{
		{"quest_type", ShapeString, "Main, side, personal"},
		{"quest_giver", ShapeString, "Who assigned the quest"},
		{"objectives", ShapeStringList, "What needs to be done"},
		{"rewards", ShapeStringList, "What the players get"},
		{"difficulty", ShapeInteger, "Challenge scale (1-10)"},
		{"status", ShapeString, "Active, completed, failed"},
		{"location", ShapeStringList, "Where it takes place"},
		{"prerequisites", ShapeStringList, "Required before starting"},
		{"follow_up", ShapeStringList, "What happens after"},
		{"time_sensitive", ShapeBool, "Whether there is a deadline"},
		{"hidden_outcome", ShapeString, "Secret results"},
	}},
	model.EntityShop: {"A place to trade", []field{
		{"shop_type", ShapeString, "General, magical, blacksmith, ..."},
		{"owner", ShapeString, "Proprietor"},
		{"location", ShapeString, "Where it is found"},
		{"inventory", ShapeMapList, "What is for sale"},
		{"prices", ShapeString, "Cost modifier"},
		{"quality", ShapeString, "Grade of merchandise"},
		{"specialty", ShapeString, "Unique offerings"},
		{"haggling", ShapeBool, "Whether negotiation is possible"},
		{"schedule", ShapeString, "Opening hours"},
		{"services", ShapeStringList, "Non-item offerings"},
	}},
	model.EntityTreasure: {"Loot to be found", []field{
		{"treasure_type", ShapeString, "Coins, gems, magic items, ..."},
		{"value", ShapeString, "Worth in currency"},
		{"location", ShapeString, "Where it is found"},
		{"guardian", ShapeString, "What protects it"},
		{"origin", ShapeString, "Where it came from"},
		{"curse", ShapeString, "Negative effects"},
		{"detection", ShapeString, "How to find it"},
		{"legal_status", ShapeString, "Stolen, abandoned, ..."},
		{"special_properties", ShapeStringList, "Unique qualities"},
	}},
	model.EntitySession: {"A played game session", []field{
		{"session_number", ShapeInteger, "Sequential number"},
		{"date_played", ShapeString, "When the session took place"},
		{"summary", ShapeString, "Brief description of events"},
		{"locations_visited", ShapeStringList, "Places the party went"},
		{"npcs_encountered", ShapeStringList, "Characters met"},
		{"quests_advanced", ShapeStringMapList, "Progress on objectives"},
		{"quests_completed", ShapeStringList, "Finished storylines"},
		{"treasure_found", ShapeStringList, "Items acquired"},
		{"combat_encounters", ShapeStringList, "Battles fought"},
		{"player_decisions", ShapeStringList, "Important choices"},
		{"plot_revelations", ShapeStringList, "Secrets uncovered"},
		{"future_hooks", ShapeStringList, "Setup for coming sessions"},
	}},
}

var relationshipDescriptions = map[model.RelationshipType]string{
	model.RelCreated:          "Source brought the target into being",
	model.RelDestroyed:        "Source destroyed the target",
	model.RelRules:            "Source holds authority over the target",
	model.RelCaused:           "Source caused the target",
	model.RelLocatedIn:        "Source is situated within the target",
	model.RelMemberOf:         "Source belongs to the target",
	model.RelTransformedInto:  "Source became the target",
	model.RelParentOf:         "Source is a parent or progenitor of the target",
	model.RelOccurredDuring:   "Source happened during the target",
	model.RelConnectedTo:      "Source is linked to the target",
	model.RelAllyOf:           "Source is allied with the target",
	model.RelEnemyOf:          "Source is hostile to the target",
	model.RelAcquaintedWith:   "Source knows the target",
	model.RelFamilyOf:         "Source is related by family to the target",
	model.RelServes:           "Source serves the target",
	model.RelLeads:            "Source leads the target",
	model.RelProtects:         "Source protects the target",
	model.RelThreatens:        "Source threatens the target",
	model.RelHired:            "Source hired the target",
	model.RelRescued:          "Source rescued the target",
	model.RelDefeated:         "Source defeated the target",
	model.RelCompleted:        "Source completed the target",
	model.RelKnowsSecretAbout: "Source knows a secret about the target",
	model.RelOwesFavorTo:      "Source owes a favor to the target",
	model.RelDistrusts:        "Source distrusts the target",
	model.RelSellsTo:          "Source trades with the target",
	model.RelTeaches:          "Source teaches the target",
}

// relationship types without an entry only carry the base fields
var relationshipFields = map[model.RelationshipType][]field{
	model.RelCreated: {
		{"method", ShapeString, "How creation occurred"},
		{"purpose", ShapeString, "Why it was created"},
		{"assistance", ShapeStringList, "Others who helped"},
		{"materials", ShapeStringList, "What was used"},
		{"timeframe", ShapeString, "How long it took"},
	},
	model.RelDestroyed: {
		{"method", ShapeString, "How destruction occurred"},
		{"reason", ShapeString, "Why it was destroyed"},
		{"witnesses", ShapeStringList, "Who saw it happen"},
		{"remains", ShapeString, "What is left"},
		{"aftermath", ShapeString, "Consequences"},
	},
	model.RelRules: {
		{"authority_type", ShapeString, "Kind of rulership"},
		{"legitimacy", ShapeString, "Source of the right to rule"},
		{"opposition", ShapeStringList, "Challengers to authority"},
		{"laws", ShapeStringList, "Notable regulations"},
		{"enforcement", ShapeString, "How rules are upheld"},
	},
	model.RelCaused: {
		{"mechanism", ShapeString, "How causation worked"},
		{"directness", ShapeString, "Immediate or indirect"},
		{"inevitability", ShapeInteger, "How certain the outcome was (1-10)"},
		{"awareness", ShapeBool, "Whether the causer knew the outcome"},
		{"prevention_attempts", ShapeStringList, "Efforts to stop it"},
	},
	model.RelLocatedIn: {
		{"position", ShapeString, "Specific location within the container"},
		{"accessibility", ShapeString, "How easily reached"},
		{"permanence", ShapeString, "Temporary or permanent"},
		{"history", ShapeString, "How long it has been there"},
		{"visibility", ShapeString, "How obvious the location is"},
	},
	model.RelMemberOf: {
		{"role", ShapeString, "Position within the group"},
		{"standing", ShapeString, "Status in the group"},
		{"responsibilities", ShapeStringList, "Duties"},
		{"benefits", ShapeStringList, "Advantages gained"},
		{"term", ShapeString, "Duration of membership"},
	},
	model.RelTransformedInto: {
		{"cause", ShapeString, "What triggered the transformation"},
		{"reversibility", ShapeBool, "Whether it can be undone"},
		{"completeness", ShapeInteger, "How total the change was (1-10)"},
		{"awareness", ShapeBool, "Memory of the previous form"},
		{"process", ShapeString, "How the transformation worked"},
	},
	model.RelParentOf: {
		{"relationship_type", ShapeString, "Biological, adoptive, creator"},
		{"knowledge", ShapeBool, "Whether both know the relationship"},
		{"closeness", ShapeInteger, "Emotional connection (1-10)"},
		{"responsibilities", ShapeString, "Parent's duties"},
		{"influence", ShapeString, "Impact on the child"},
	},
	model.RelOccurredDuring: {
		{"timeframe", ShapeString, "When during the era"},
		{"significance", ShapeString, "Importance to the era"},
		{"typicality", ShapeInteger, "How representative of the era (1-10)"},
		{"recorded", ShapeBool, "Whether it was documented"},
		{"witnesses", ShapeStringList, "Who observed it"},
	},
	model.RelConnectedTo: {
		{"connection_type", ShapeString, "Physical, magical, conceptual"},
		{"stability", ShapeInteger, "How reliable the connection is (1-10)"},
		{"directionality", ShapeString, "One-way or bidirectional"},
		{"access_requirements", ShapeStringList, "What is needed to use it"},
		{"traffic", ShapeString, "How frequently used"},
	},
	model.RelAllyOf: {
		{"alliance_type", ShapeString, "Military, economic, political"},
		{"terms", ShapeStringList, "Conditions of the alliance"},
		{"reliability", ShapeInteger, "How dependable (1-10)"},
		{"benefits", ShapeStringList, "What each party gains"},
		{"public", ShapeBool, "Whether the alliance is known"},
		{"tensions", ShapeStringList, "Points of disagreement"},
	},
	model.RelEnemyOf: {
		{"conflict_type", ShapeString, "Military, economic, personal"},
		{"cause", ShapeString, "Reason for the enmity"},
		{"intensity", ShapeInteger, "How severe the hatred is (1-10)"},
		{"status", ShapeString, "Active conflict or cold war"},
		{"confrontations", ShapeStringList, "Past clashes"},
		{"peace_potential", ShapeInteger, "Likelihood of resolution (1-10)"},
	},
}

var connectionRules = map[model.RelationshipType]ConnectionRule{
	model.RelCreated: {
		Sources: []model.EntityType{model.EntityDeity, model.EntityNPC, model.EntityFaction, model.EntityEvent},
		Targets: []model.EntityType{model.EntityRace, model.EntityLocation, model.EntityArtifact, model.EntityNPC, model.EntityMonster},
	},
	model.RelDestroyed: {
		Sources: []model.EntityType{model.EntityDeity, model.EntityNPC, model.EntityFaction, model.EntityEvent, model.EntityMonster, model.EntityPartyMember},
		Targets: []model.EntityType{model.EntityLocation, model.EntityArtifact, model.EntityNPC, model.EntityFaction},
	},
}

// merge builds a property table from base fields overridden by specific ones.
func merge(base []field, specific []field) map[string]PropertyDef {
	props := make(map[string]PropertyDef, len(base)+len(specific))
	for _, f := range base {
		props[f.name] = PropertyDef{Shape: f.shape, Description: f.description}
	}
	for _, f := range specific {
		props[f.name] = PropertyDef{Shape: f.shape, Description: f.description}
	}
	return props
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	entities := make(map[model.EntityType]TypeDef, len(entitySchemas))
	for t, s := range entitySchemas {
		entities[t] = TypeDef{Description: s.description, Properties: merge(baseEntityFields, s.fields)}
	}
	relationships := make(map[model.RelationshipType]TypeDef, len(relationshipDescriptions))
	for t, description := range relationshipDescriptions {
		relationships[t] = TypeDef{Description: description, Properties: merge(baseRelationshipFields, relationshipFields[t])}
	}
	return NewRegistry(entities, relationships, connectionRules)
})

// Default returns the campaign setting registry. It is shared and must not
// be modified.
func Default() *Registry {
	return defaultRegistry()
}
