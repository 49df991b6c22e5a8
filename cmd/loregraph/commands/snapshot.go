package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/siherrmann/loregraph"
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

func newSnapshotCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Mirror the graph to Postgres (push, pull, list)",
		Long: `Mirror whole-graph snapshots to Postgres.

The connection is configured through DB_HOST, DB_PORT, DB_DATABASE,
DB_USERNAME, DB_PASSWORD, DB_SCHEMA and DB_SSLMODE, optionally from a .env
file.`,
	}

	var keep int
	push := &cobra.Command{
		Use:   "push <name>",
		Short: "Store the current graph under name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openWithDatabase(opts)
			if err != nil {
				return err
			}
			defer l.Close()

			stored, err := l.PushSnapshot(args[0], model.Metadata{"graph_file": l.Config().GraphFile})
			if err != nil {
				return err
			}
			if keep > 0 {
				if _, err := l.Snapshots.PruneSnapshots(args[0], keep); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s (%s): %d nodes, %d edges\n", stored.Name, stored.RID, stored.NodeCount, stored.EdgeCount)
			return nil
		},
	}
	push.Flags().IntVar(&keep, "keep", 0, "delete all but the newest n snapshots of this name")

	pull := &cobra.Command{
		Use:   "pull <name>",
		Short: "Replace the graph with the newest snapshot of name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openWithDatabase(opts)
			if err != nil {
				return err
			}
			defer l.Close()

			stored, err := l.PullSnapshot(args[0])
			if err != nil {
				return err
			}
			if err := l.Save(""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s (%s) from %s\n", stored.Name, stored.RID, stored.CreatedAt.Format(time.RFC3339))
			return nil
		},
	}

	var limit int
	list := &cobra.Command{
		Use:   "list [name]",
		Short: "List stored snapshots, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openWithDatabase(opts)
			if err != nil {
				return err
			}
			defer l.Close()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			snapshots, err := l.Snapshots.SelectAllSnapshots(name, limit)
			if err != nil {
				return err
			}
			for _, s := range snapshots {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-20s %d nodes  %d edges\n",
					s.CreatedAt.Format(time.RFC3339), s.RID, s.Name, s.NodeCount, s.EdgeCount)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum number of snapshots")

	cmd.AddCommand(push, pull, list)
	return cmd
}

func openWithDatabase(opts *options) (*loregraph.Loregraph, error) {
	dbConfig, err := helper.NewDatabaseConfiguration()
	if err != nil {
		return nil, err
	}

	l, err := opts.open()
	if err != nil {
		return nil, err
	}
	if err := l.ConnectDatabase(dbConfig); err != nil {
		return nil, err
	}
	return l, nil
}
