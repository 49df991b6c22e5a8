package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/siherrmann/loregraph"
	"github.com/siherrmann/loregraph/helper"
)

type options struct {
	graphFile string
	logLevel  string
	jsonOut   bool
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "loregraph",
		Short: "Campaign knowledge graph",
		Long: `loregraph - a typed knowledge graph for tabletop campaign lore.

The graph is kept in a JSON file, set with --graph or LOREGRAPH_GRAPH_FILE.
Writing commands save it back after they succeed.

Examples:
  # Seed the Starcrash sample setting
  loregraph --graph lore.json seed

  # Import session notes
  loregraph --graph lore.json import notes/

  # Ask questions
  loregraph --graph lore.json entity "Thalindra the Archmage"
  loregraph --graph lore.json path "Orb of Astral Resonance" Alfir
  loregraph --graph lore.json search level 20 --type NPC`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.graphFile, "graph", "g", "", "graph file (overrides LOREGRAPH_GRAPH_FILE)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON")

	rootCmd.AddCommand(
		newSeedCmd(opts),
		newImportCmd(opts),
		newEntityCmd(opts),
		newRelatedCmd(opts),
		newPathCmd(opts),
		newSearchCmd(opts),
		newExploreCmd(opts),
		newStatsCmd(opts),
		newCheckCmd(opts),
		newSnapshotCmd(opts),
	)
	return rootCmd
}

// open loads the configured graph.
func (o *options) open() (*loregraph.Loregraph, error) {
	config, err := helper.NewConfiguration()
	if err != nil {
		return nil, err
	}
	if o.graphFile != "" {
		config.GraphFile = o.graphFile
	}
	if o.logLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", o.logLevel)
		}
		config.LogLevel = level
	}
	return loregraph.NewLoregraph(config)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
