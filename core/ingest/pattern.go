package ingest

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
	"github.com/siherrmann/loregraph/schema"
	"gopkg.in/yaml.v3"
)

// EntityPattern finds entities of one type, either through a regex whose
// first group is the name or through top-level keys of YAML blocks.
type EntityPattern struct {
	Type     model.EntityType `yaml:"type"`
	Regex    string           `yaml:"regex,omitempty"`
	YAMLKeys []string         `yaml:"yaml_keys,omitempty"`
	Defaults map[string]any   `yaml:"defaults,omitempty"`
}

// RelationshipPattern finds relationships through a regex with one group
// for the source name and one for the target name.
type RelationshipPattern struct {
	Type        model.RelationshipType `yaml:"type"`
	Regex       string                 `yaml:"regex"`
	SourceGroup int                    `yaml:"source_group,omitempty"`
	TargetGroup int                    `yaml:"target_group,omitempty"`
	Defaults    map[string]any         `yaml:"defaults,omitempty"`
}

type PatternConfig struct {
	Entities      []EntityPattern       `yaml:"entities"`
	Relationships []RelationshipPattern `yaml:"relationships"`
}

// properName matches a capitalized name such as "Nef", "The Starcrash" or
// "Hand of Archos".
const properName = `\b((?:The[ \t]+)?[A-Z][\w'-]*(?:[ \t]+(?:of[ \t]+)?[A-Z][\w'-]*)*)`

func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		Entities: []EntityPattern{
			{Type: model.EntityEvent, Regex: `(?m)^###\s+Event:\s*(.+?)\s*$`, YAMLKeys: []string{"event", "Event"}},
			{Type: model.EntityLocation, Regex: `(?m)^###\s+Location:\s*(.+?)\s*$`, YAMLKeys: []string{"location", "Location"}},
			{Type: model.EntityNPC, Regex: `(?m)^###\s+(?:Person|NPC):\s*(.+?)\s*$`, YAMLKeys: []string{"character", "Character", "person", "Person", "npc", "NPC"}},
			{Type: model.EntityDeity, Regex: `(?m)^###\s+Deity:\s*(.+?)\s*$`, YAMLKeys: []string{"deity", "Deity"}},
		},
		Relationships: []RelationshipPattern{
			{Type: model.RelCaused, Regex: properName + `[ \t]+caused[ \t]+(?:the[ \t]+)?` + properName},
			{Type: model.RelCreated, Regex: properName + `[ \t]+created[ \t]+(?:the[ \t]+)?` + properName},
			{Type: model.RelLocatedIn, Regex: properName + `[ \t]+is[ \t]+located[ \t]+in[ \t]+(?:the[ \t]+)?` + properName},
		},
	}
}

// LoadPatternConfig reads patterns from a YAML file.
func LoadPatternConfig(path string) (PatternConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PatternConfig{}, helper.NewError("read pattern file", err)
	}

	var config PatternConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return PatternConfig{}, helper.NewError("decode pattern file", err)
	}
	return config, nil
}

type entityMatcher struct {
	EntityPattern
	re       *regexp.Regexp
	defaults model.Properties
}

type relationshipMatcher struct {
	RelationshipPattern
	re       *regexp.Regexp
	defaults model.Properties
}

// PatternExtractor finds entities and relationships in markdown lore
// documents: headings such as "### Event: The Starcrash", fenced ```yaml
// blocks and relationship phrases such as "Nef created Alfir".
type PatternExtractor struct {
	entities      []entityMatcher
	relationships []relationshipMatcher
	registry      *schema.Registry
}

// NewPatternExtractor compiles config. With a registry, properties the
// registry does not declare for a type (or whose shape it rejects) are
// dropped instead of failing validation later.
func NewPatternExtractor(config PatternConfig, registry *schema.Registry) (*PatternExtractor, error) {
	p := &PatternExtractor{registry: registry}

	for _, ep := range config.Entities {
		m := entityMatcher{EntityPattern: ep}
		if ep.Regex != "" {
			re, err := regexp.Compile(ep.Regex)
			if err != nil {
				return nil, helper.NewError(fmt.Sprintf("compile %s pattern", ep.Type), err)
			}
			if re.NumSubexp() < 1 {
				return nil, helper.NewError(fmt.Sprintf("compile %s pattern", ep.Type), errors.New("pattern needs a group for the name"))
			}
			m.re = re
		}
		defaults, err := model.PropertiesOf(ep.Defaults)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("%s defaults", ep.Type), err)
		}
		m.defaults = defaults
		p.entities = append(p.entities, m)
	}

	for _, rp := range config.Relationships {
		if rp.SourceGroup == 0 {
			rp.SourceGroup = 1
		}
		if rp.TargetGroup == 0 {
			rp.TargetGroup = 2
		}
		re, err := regexp.Compile(rp.Regex)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("compile %s pattern", rp.Type), err)
		}
		if re.NumSubexp() < max(rp.SourceGroup, rp.TargetGroup) {
			return nil, helper.NewError(fmt.Sprintf("compile %s pattern", rp.Type), fmt.Errorf("pattern has %d groups", re.NumSubexp()))
		}
		defaults, err := model.PropertiesOf(rp.Defaults)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("%s defaults", rp.Type), err)
		}
		p.relationships = append(p.relationships, relationshipMatcher{RelationshipPattern: rp, re: re, defaults: defaults})
	}

	return p, nil
}

var yamlBlock = regexp.MustCompile("(?s)```ya?ml[ \t]*\r?\n(.*?)\r?\n```")

// Extract returns the entities and relationships found in doc. Broken YAML
// blocks are skipped and reported through the returned error, alongside a
// result holding everything else.
func (p *PatternExtractor) Extract(doc *model.Document) (*ExtractionResult, error) {
	result := &ExtractionResult{}
	if doc == nil || strings.TrimSpace(doc.Content) == "" {
		return result, nil
	}

	origin := doc.Origin()
	seen := map[string]bool{}
	var errs []error

	for i, block := range yamlBlock.FindAllStringSubmatch(doc.Content, -1) {
		var data map[string]any
		if err := yaml.Unmarshal([]byte(block[1]), &data); err != nil {
			errs = append(errs, helper.NewError(fmt.Sprintf("yaml block %d in %s", i+1, origin), err))
			continue
		}
		p.fromYAML(result, data, origin, seen)
	}

	for _, m := range p.entities {
		if m.re == nil {
			continue
		}
		for _, match := range m.re.FindAllStringSubmatch(doc.Content, -1) {
			name := strings.TrimSpace(match[1])
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			props := model.Properties{
				"description":        model.String("Entity from " + origin),
				"information_source": model.String(origin),
			}
			mergeInto(props, m.defaults)
			result.Entities = append(result.Entities, ExtractedEntity{
				Name:       name,
				Type:       m.Type,
				Properties: p.filterEntity(m.Type, props),
			})
		}
	}

	for _, m := range p.relationships {
		for _, match := range m.re.FindAllStringSubmatch(doc.Content, -1) {
			source := strings.TrimSpace(match[m.SourceGroup])
			target := strings.TrimSpace(match[m.TargetGroup])
			if source == "" || target == "" {
				continue
			}

			props := model.Properties{
				"description": model.String("Extracted from " + origin),
				"notes":       model.String("Source: " + origin),
			}
			mergeInto(props, m.defaults)
			result.Relationships = append(result.Relationships, ExtractedRelationship{
				Type:       m.Type,
				Source:     source,
				Target:     target,
				Properties: p.filterRelationship(m.Type, props),
			})
		}
	}

	return result, errors.Join(errs...)
}

func (p *PatternExtractor) fromYAML(result *ExtractionResult, data map[string]any, origin string, seen map[string]bool) {
	for _, m := range p.entities {
		for _, key := range m.YAMLKeys {
			raw, ok := data[key]
			if !ok {
				continue
			}

			var name string
			fields, isMap := raw.(map[string]any)
			switch v := raw.(type) {
			case string:
				name = v
			case map[string]any:
				name, _ = v["name"].(string)
			}
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			props := model.Properties{"information_source": model.String(origin)}
			mergeInto(props, m.defaults)
			switch {
			case isMap && fields["description"] != nil:
				setValue(props, "description", fields["description"])
			case data["description"] != nil:
				setValue(props, "description", data["description"])
			default:
				props["description"] = model.String("Entity from " + origin)
			}
			if isMap {
				keys := make([]string, 0, len(fields))
				for k := range fields {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					if k != "name" && k != "description" {
						setValue(props, k, fields[k])
					}
				}
			}

			result.Entities = append(result.Entities, ExtractedEntity{
				Name:       name,
				Type:       m.Type,
				Properties: p.filterEntity(m.Type, props),
			})
		}
	}
}

// setValue stores v under key unless it has no property representation,
// such as NaN or infinite numbers.
func setValue(props model.Properties, key string, v any) {
	if value, err := model.ValueOf(v); err == nil {
		props[key] = value
	}
}

func mergeInto(dst, src model.Properties) {
	for k, v := range src {
		dst[k] = v.Clone()
	}
}

func (p *PatternExtractor) filterEntity(t model.EntityType, props model.Properties) model.Properties {
	if p.registry == nil {
		return props
	}
	def, ok := p.registry.Entity(t)
	if !ok {
		return props
	}
	return filter(def, props)
}

func (p *PatternExtractor) filterRelationship(t model.RelationshipType, props model.Properties) model.Properties {
	if p.registry == nil {
		return props
	}
	def, ok := p.registry.Relationship(t)
	if !ok {
		return props
	}
	return filter(def, props)
}

func filter(def schema.TypeDef, props model.Properties) model.Properties {
	out := make(model.Properties, len(props))
	for k, v := range props {
		if pd, ok := def.Properties[k]; ok && pd.Shape.Accepts(v) {
			out[k] = v
		}
	}
	return out
}
