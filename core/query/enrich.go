package query

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/siherrmann/loregraph/model"
)

// metadata keys that may name the entities a passage is about
var entityMetadataKeys = []string{"title", "name", "entity", "entities"}

// Enrich returns a copy of result with facts about every entity it
// mentions: names from its metadata first, then indexed entity names that
// occur in the text as whole words. Entities are attached once, in order
// of first mention. Names that resolve to nothing are skipped.
func (t *Tool) Enrich(result *model.RetrievalResult) *model.RetrievalResult {
	if result == nil {
		return nil
	}

	out := *result
	if result.Metadata != nil {
		out.Metadata = make(model.Metadata, len(result.Metadata))
		for k, v := range result.Metadata {
			out.Metadata[k] = v
		}
	}
	out.Facts = append([]model.EntityFact(nil), result.Facts...)

	seen := make(map[string]bool, len(out.Facts))
	for _, f := range out.Facts {
		seen[f.Entity.ID] = true
	}

	added := 0
	for _, name := range t.candidates(result) {
		if t.config.MaxFacts > 0 && added >= t.config.MaxFacts {
			break
		}
		n, ok := t.resolve(name)
		if !ok || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		out.Facts = append(out.Facts, model.EntityFact{
			Entity:  model.NewEntityView(n),
			Related: t.related(n.ID),
		})
		added++
	}
	return &out
}

func (t *Tool) candidates(result *model.RetrievalResult) []string {
	var names []string
	for _, key := range entityMetadataKeys {
		names = append(names, result.Metadata.Strings(key)...)
	}
	return append(names, mentions(result.Text, t.reader.NodeNames())...)
}

func (t *Tool) related(id string) []model.RelatedEntity {
	related := t.reader.GetRelatedNodes(id, t.config.RelationshipType, t.config.Direction)
	if t.config.MaxRelated > 0 && len(related) > t.config.MaxRelated {
		related = related[:t.config.MaxRelated]
	}
	out := make([]model.RelatedEntity, len(related))
	for i, r := range related {
		out[i] = model.RelatedEntity{
			Entity:       model.NewEntityView(r.Node),
			Relationship: model.NewRelationshipView(r.Edge, r.Direction),
		}
	}
	return out
}

// mentions returns the names occurring in text as whole words, ignoring
// case, ordered by first occurrence. Longer names win ties.
func mentions(text string, names []string) []string {
	type hit struct {
		name string
		pos  int
	}

	lower := strings.ToLower(text)
	var hits []hit
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if pos := wordIndex(lower, strings.ToLower(name)); pos >= 0 {
			hits = append(hits, hit{name: name, pos: pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		return len(hits[i].name) > len(hits[j].name)
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

// wordIndex finds word in text where it is not part of a longer word.
func wordIndex(text, word string) int {
	for from := 0; from <= len(text)-len(word); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(word)
		if isBoundary(text[:start], true) && isBoundary(text[end:], false) {
			return start
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return -1
}

func isBoundary(s string, before bool) bool {
	var r rune
	if before {
		r, _ = utf8.DecodeLastRuneInString(s)
	} else {
		r, _ = utf8.DecodeRuneInString(s)
	}
	if r == utf8.RuneError {
		return true
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
