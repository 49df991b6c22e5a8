// Command loregraph manages a campaign knowledge graph: import lore
// documents, query entities and paths, and mirror snapshots to Postgres.
package main

import (
	"fmt"
	"os"

	"github.com/siherrmann/loregraph/cmd/loregraph/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
