package query

import (
	"fmt"
	"strings"

	"github.com/siherrmann/loregraph/model"
)

// Describe renders what the graph knows about an entity as plain text for
// the answer generator.
func (t *Tool) Describe(identifier string) string {
	n, ok := t.resolve(identifier)
	if !ok {
		return fmt.Sprintf("No information found about %s.", identifier)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", n.Name, n.Type)
	if d, ok := n.Properties["description"].AsString(); ok && d != "" {
		fmt.Fprintf(&b, "%s\n", d)
	}
	for _, key := range n.Properties.Keys() {
		if key == "description" {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s\n", key, n.Properties[key])
	}

	related := t.related(n.ID)
	if len(related) == 0 {
		b.WriteString("No known relationships.\n")
		return b.String()
	}
	b.WriteString("Relationships:\n")
	for _, r := range related {
		arrow := "->"
		if r.Relationship.Direction == model.DirectionIncoming {
			arrow = "<-"
		}
		fmt.Fprintf(&b, "  %s %s %s (%s)", r.Relationship.Type, arrow, r.Entity.Name, r.Entity.Type)
		if r.Relationship.Name != "" {
			fmt.Fprintf(&b, ": %s", r.Relationship.Name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DescribePath renders the path between two entities, e.g.
// "Uruk <-[RULES]- Anu".
func (t *Tool) DescribePath(start, end string, maxDepth int) string {
	steps, ok := t.FindPathBetween(start, end, maxDepth)
	if !ok {
		return fmt.Sprintf("No connection found between %s and %s.", start, end)
	}

	var b strings.Builder
	for _, step := range steps {
		b.WriteString(step.Entity.Name)
		if step.Relationship == nil {
			break
		}
		if step.Relationship.Direction == model.DirectionIncoming {
			fmt.Fprintf(&b, " <-[%s]- ", step.Relationship.Type)
		} else {
			fmt.Fprintf(&b, " -[%s]-> ", step.Relationship.Type)
		}
	}
	return b.String()
}
