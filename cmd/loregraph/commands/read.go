package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/siherrmann/loregraph/model"
)

func newEntityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "entity <name|id>",
		Short: "Describe an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			entity, ok := l.Query.GetEntity(args[0])
			if !ok {
				return fmt.Errorf("%w: entity %q", model.ErrNotFound, args[0])
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), entity)
			}
			fmt.Fprint(cmd.OutOrStdout(), l.Query.Describe(args[0]))
			return nil
		},
	}
}

func newRelatedCmd(opts *options) *cobra.Command {
	var relType, direction string

	cmd := &cobra.Command{
		Use:   "related <name|id>",
		Short: "List the relationships of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := model.ParseDirection(direction)
			if err != nil {
				return err
			}

			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			if _, ok := l.Query.GetEntity(args[0]); !ok {
				return fmt.Errorf("%w: entity %q", model.ErrNotFound, args[0])
			}
			related := l.Query.GetRelatedEntities(args[0], model.RelationshipType(strings.ToUpper(relType)), dir)
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), related)
			}

			out := cmd.OutOrStdout()
			for _, r := range related {
				arrow := "->"
				if r.Relationship.Direction == model.DirectionIncoming {
					arrow = "<-"
				}
				fmt.Fprintf(out, "%s %s %s (%s)\n", r.Relationship.Type, arrow, r.Entity.Name, r.Entity.Type)
			}
			if len(related) == 0 {
				fmt.Fprintln(out, "No relationships found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&relType, "type", "t", "", "relationship type, e.g. CREATED")
	cmd.Flags().StringVarP(&direction, "direction", "d", "both", "outgoing, incoming or both")
	return cmd
}

func newPathCmd(opts *options) *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find the shortest connection between two entities",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			if opts.jsonOut {
				steps, ok := l.Query.FindPathBetween(args[0], args[1], maxDepth)
				if !ok {
					steps = []model.PathStepView{}
				}
				return printJSON(cmd.OutOrStdout(), steps)
			}
			fmt.Fprintln(cmd.OutOrStdout(), l.Query.DescribePath(args[0], args[1], maxDepth))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", -1, "maximum number of relationships, negative uses LOREGRAPH_MAX_PATH_DEPTH")
	return cmd
}

func newSearchCmd(opts *options) *cobra.Command {
	var entityType string

	cmd := &cobra.Command{
		Use:   "search <property> <value>",
		Short: "Find entities by property value",
		Long: `Find entities whose property equals a value. The value is read as YAML,
so 20 is a number, true a boolean and [Order, Law] a list.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseValue(args[1])
			if err != nil {
				return err
			}

			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			found := l.Query.SearchEntities(args[0], value, model.EntityType(strings.ToUpper(entityType)))
			if opts.jsonOut {
				if found == nil {
					found = []model.EntityView{}
				}
				return printJSON(cmd.OutOrStdout(), found)
			}
			for _, e := range found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", e.Name, e.Type)
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entities found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&entityType, "type", "t", "", "entity type, e.g. NPC")
	return cmd
}

// parseValue reads a command line argument as a YAML scalar or collection.
func parseValue(s string) (model.Value, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(s), &raw); err != nil {
		return model.String(s), nil
	}
	v, err := model.ValueOf(raw)
	if err != nil {
		return model.Value{}, fmt.Errorf("unsupported value %q: %w", s, err)
	}
	return v, nil
}

func newExploreCmd(opts *options) *cobra.Command {
	var hops int

	cmd := &cobra.Command{
		Use:   "explore <name|id>",
		Short: "List the entities around an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			neighbours := l.Query.Neighborhood(args[0], hops)
			if neighbours == nil {
				return fmt.Errorf("%w: entity %q", model.ErrNotFound, args[0])
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), neighbours)
			}
			for _, n := range neighbours {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s (%s)\n", n.Distance, n.Entity.Name, n.Entity.Type)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&hops, "hops", 2, "maximum distance")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count entities and relationships per type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			stats := l.Stats()
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entities: %d\n", stats.Nodes)
			for _, t := range sortedKeys(stats.EntityTypes) {
				fmt.Fprintf(out, "  %-16s %d\n", t, stats.EntityTypes[model.EntityType(t)])
			}
			fmt.Fprintf(out, "Relationships: %d\n", stats.Edges)
			for _, t := range sortedKeys(stats.RelationshipTypes) {
				fmt.Fprintf(out, "  %-16s %d\n", t, stats.RelationshipTypes[model.RelationshipType(t)])
			}
			return nil
		},
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the graph indexes are consistent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			if err := l.Graph.CheckIndexes(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Graph is consistent.")
			return nil
		},
	}
}
