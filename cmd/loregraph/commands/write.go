package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siherrmann/loregraph/core/enforced"
)

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the Starcrash sample setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			if err := enforced.SeedStarcrash(l.Store); err != nil {
				return err
			}
			if err := l.Save(""); err != nil {
				return err
			}

			stats := l.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded graph: %d nodes, %d edges\n", stats.Nodes, stats.Edges)
			return nil
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	var useNER bool

	cmd := &cobra.Command{
		Use:   "import <file|dir>...",
		Short: "Extract entities and relationships from lore documents",
		Long: `Extract entities and relationships from markdown or text documents.

Directories are walked for .md, .markdown and .txt files. Entities are found
through headings like "### Event: The Starcrash", fenced yaml blocks and
phrases like "Nef created Alfir". Failures are listed but do not stop the
import.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			if useNER {
				if err := l.UseNERExtractor(); err != nil {
					return err
				}
			}

			report, importErr := l.ImportDocuments(args...)
			if report == nil {
				return importErr
			}
			if err := l.Save(""); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entities created:      %d\n", report.EntitiesCreated)
			fmt.Fprintf(out, "Entities reused:       %d\n", report.EntitiesReused)
			fmt.Fprintf(out, "Relationships created: %d\n", report.RelationshipsCreated)
			for _, f := range report.Failures {
				fmt.Fprintf(out, "  failed %s: %v\n", f.Name, f.Err)
			}
			return importErr
		},
	}

	cmd.Flags().BoolVar(&useNER, "ner", false, "also detect entities with a NER model (downloaded on first use)")
	return cmd
}
