package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/siherrmann/loregraph"
	"github.com/siherrmann/loregraph/core/enforced"
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

const sessionNotes = "### Event: The Sundering\n\n" +
	"```yaml\n" +
	"character:\n" +
	"  name: Iberon the Wanderer\n" +
	"  description: A drow scout who survived the Sundering\n" +
	"  occupation: Scout\n" +
	"```\n\n" +
	"The Starcrash caused the Sundering.\n" +
	"Iberon the Wanderer is located in Caierah.\n"

func main() {
	dir, err := os.MkdirTemp("", "loregraph-example")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	config := helper.DefaultConfiguration()
	config.GraphFile = filepath.Join(dir, "starcrash.json")

	l, err := loregraph.NewLoregraph(config)
	if err != nil {
		log.Fatalf("Failed to create loregraph: %v", err)
	}
	defer l.Close()

	// Seed the sample setting
	if err := enforced.SeedStarcrash(l.Store); err != nil {
		log.Fatalf("Failed to seed graph: %v", err)
	}

	// Schema enforcement rejects unknown properties
	_, err = l.Store.AddEntity("Meridia", model.EntityLocation, model.MustProperties(map[string]any{
		"airspeed": 12,
	}))
	fmt.Printf("Rejected entity: %v\n\n", err)

	// Ingest session notes
	report, err := l.ImportDocument(&model.Document{Title: "session_12", Content: sessionNotes})
	if err != nil {
		log.Fatalf("Failed to import notes: %v", err)
	}
	fmt.Printf("Imported notes: %d entities, %d relationships, %d failures\n\n",
		report.EntitiesCreated, report.RelationshipsCreated, len(report.Failures))

	// Query the graph
	fmt.Println(l.Query.Describe("Thalindra the Archmage"))
	fmt.Println(l.Query.DescribePath("Orb of Astral Resonance", "Alfir", 3))
	fmt.Println(l.Query.DescribePath("Iberon the Wanderer", "The Starcrash", 3))
	fmt.Println()

	for _, n := range l.Query.Neighborhood("Caierah", 1) {
		fmt.Printf("  %d hop(s): %s (%s)\n", n.Distance, n.Entity.Name, n.Entity.Type)
	}
	fmt.Println()

	// Enrich a retrieved passage
	enriched := l.Query.Enrich(&model.RetrievalResult{
		Text:  "Scholars on Caierah still argue about what the Starcrash truly was.",
		Score: 0.82,
	})
	for _, fact := range enriched.Facts {
		fmt.Printf("Fact: %s (%s) with %d relationships\n", fact.Entity.Name, fact.Entity.Type, len(fact.Related))
	}

	// Persist and reload
	if err := l.Save(""); err != nil {
		log.Fatalf("Failed to save graph: %v", err)
	}
	reloaded, err := loregraph.NewLoregraph(config)
	if err != nil {
		log.Fatalf("Failed to reload graph: %v", err)
	}
	stats := reloaded.Stats()
	fmt.Printf("\nReloaded %d nodes and %d edges from %s\n", stats.Nodes, stats.Edges, config.GraphFile)
}
