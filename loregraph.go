package loregraph

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/siherrmann/loregraph/core/enforced"
	"github.com/siherrmann/loregraph/core/graph"
	"github.com/siherrmann/loregraph/core/ingest"
	"github.com/siherrmann/loregraph/core/query"
	"github.com/siherrmann/loregraph/database"
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

// Loregraph wires the knowledge graph, its schema, the query tool and the
// ingestion pipeline together. The Postgres snapshot mirror is optional.
type Loregraph struct {
	Graph     *graph.Store
	Store     *enforced.Store
	Query     *query.Tool
	Ingestor  *ingest.Ingestor
	Pipeline  *ingest.Pipeline
	DB        *helper.Database
	Snapshots *database.SnapshotsDBHandler
	config    *helper.Configuration
	// Logging
	log *slog.Logger
}

// Stats counts the contents of the graph.
type Stats struct {
	Nodes             int                            `json:"nodes"`
	Edges             int                            `json:"edges"`
	EntityTypes       map[model.EntityType]int       `json:"entity_types"`
	RelationshipTypes map[model.RelationshipType]int `json:"relationship_types"`
}

// NewLoregraph creates an instance from config. A nil config is purely in
// memory. An existing GraphFile is loaded, a missing one is created on the
// first Save.
func NewLoregraph(config *helper.Configuration) (*Loregraph, error) {
	if config == nil {
		config = helper.DefaultConfiguration()
	}

	logger := helper.NewLogger(os.Stderr, config.LogLevel)

	g := graph.NewStore(logger)
	store := enforced.NewStore(g, nil)

	defaultType := model.EntityType(config.DefaultEntityType)
	if _, ok := store.Registry().Entity(defaultType); !ok {
		return nil, helper.NewError("default entity type", fmt.Errorf("%w: %q", model.ErrUnknownType, config.DefaultEntityType))
	}

	patterns := ingest.DefaultPatternConfig()
	if config.PatternFile != "" {
		var err error
		patterns, err = ingest.LoadPatternConfig(config.PatternFile)
		if err != nil {
			return nil, helper.NewError("load patterns", err)
		}
	}
	extractor, err := ingest.NewPatternExtractor(patterns, store.Registry())
	if err != nil {
		return nil, helper.NewError("create pattern extractor", err)
	}

	queryConfig := model.DefaultQueryConfig()
	queryConfig.MaxDepth = config.MaxPathDepth

	l := &Loregraph{
		Graph:    g,
		Store:    store,
		Query:    query.NewTool(store, &queryConfig),
		Ingestor: ingest.NewIngestor(store, defaultType, logger),
		Pipeline: ingest.NewPipeline(extractor.Extract),
		config:   config,
		log:      logger,
	}

	if config.GraphFile != "" {
		_, err := os.Stat(config.GraphFile)
		switch {
		case err == nil:
			if err := store.LoadFromFile(config.GraphFile); err != nil {
				return nil, helper.NewError("load graph", err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, helper.NewError("stat graph file", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
		default:
			logger.Info("Starting with an empty graph", slog.String("path", config.GraphFile))
		}
	}

	return l, nil
}

func (l *Loregraph) Config() *helper.Configuration {
	return l.config
}

// Save writes the graph to path, or to the configured GraphFile when path
// is empty.
func (l *Loregraph) Save(path string) error {
	if path == "" {
		path = l.config.GraphFile
	}
	if path == "" {
		return helper.NewError("save graph", errors.New("no graph file configured"))
	}
	return l.Store.SaveToFile(path)
}

// UseNERExtractor adds NER based entity detection to the pipeline. The
// model is downloaded on first use.
func (l *Loregraph) UseNERExtractor() error {
	extractor, err := ingest.NewNEREntityExtractor()
	if err != nil {
		return helper.NewError("create NER extractor", err)
	}
	l.Pipeline.AddExtractor(extractor)
	return nil
}

// ImportDocument extracts entities and relationships from doc and stores
// them. The report is returned even when some extractors failed; their
// errors are returned alongside it.
func (l *Loregraph) ImportDocument(doc *model.Document) (*ingest.Report, error) {
	if doc == nil || strings.TrimSpace(doc.Content) == "" {
		return nil, helper.NewError("import document", errors.New("document content is empty"))
	}

	result, extractErr := l.Pipeline.Process(doc)
	if extractErr != nil {
		l.log.Warn("Extraction incomplete", slog.String("document", doc.Origin()), slog.Any("error", extractErr))
	}

	report := l.Ingestor.Apply(result)
	l.log.Info("Imported document",
		slog.String("document", doc.Origin()),
		slog.Int("entities_created", report.EntitiesCreated),
		slog.Int("relationships_created", report.RelationshipsCreated),
		slog.Int("failures", len(report.Failures)),
	)

	return report, extractErr
}

// ImportDocuments imports files as one run. Directories are walked for
// markdown and text files in lexical order.
func (l *Loregraph) ImportDocuments(paths ...string) (*ingest.Report, error) {
	files, err := collectDocuments(paths)
	if err != nil {
		return nil, err
	}

	l.Ingestor.Reset()

	total := &ingest.Report{}
	var errs []error
	for _, file := range files {
		doc, err := model.NewDocumentFromFile(file, model.Metadata{"path": file})
		if err != nil {
			errs = append(errs, helper.NewError("read "+file, fmt.Errorf("%w: %w", model.ErrIOFailure, err)))
			continue
		}

		report, err := l.ImportDocument(doc)
		total.Add(report)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return total, errors.Join(errs...)
}

var documentExtensions = map[string]bool{".md": true, ".markdown": true, ".txt": true}

func collectDocuments(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, helper.NewError("collect documents", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && documentExtensions[strings.ToLower(filepath.Ext(p))] {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, helper.NewError("collect documents", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// Stats counts nodes and edges per type.
func (l *Loregraph) Stats() Stats {
	stats := Stats{
		EntityTypes:       map[model.EntityType]int{},
		RelationshipTypes: map[model.RelationshipType]int{},
	}
	for _, n := range l.Graph.Nodes() {
		stats.Nodes++
		stats.EntityTypes[n.Type]++
	}
	for _, e := range l.Graph.Edges() {
		stats.Edges++
		stats.RelationshipTypes[e.Type]++
	}
	return stats
}

// ConnectDatabase opens the Postgres snapshot mirror.
func (l *Loregraph) ConnectDatabase(config *helper.DatabaseConfiguration) error {
	db := helper.NewDatabase("loregraph", config, l.log)

	snapshots, err := database.NewSnapshotsDBHandler(db, false)
	if err != nil {
		db.Close()
		return helper.NewError("create snapshots handler", err)
	}

	l.DB = db
	l.Snapshots = snapshots
	return nil
}

// PushSnapshot stores the current graph in the mirror under name.
func (l *Loregraph) PushSnapshot(name string, metadata model.Metadata) (*model.StoredSnapshot, error) {
	if l.Snapshots == nil {
		return nil, helper.NewError("push snapshot", errors.New("database not connected, use ConnectDatabase() first"))
	}

	stored := &model.StoredSnapshot{
		Name:     name,
		Data:     *l.Graph.Snapshot(),
		Metadata: metadata,
	}
	if err := l.Snapshots.InsertSnapshot(stored); err != nil {
		return nil, helper.NewError("push snapshot", err)
	}
	return stored, nil
}

// PullSnapshot replaces the graph with the newest snapshot stored under
// name. The graph is untouched when the snapshot is invalid.
func (l *Loregraph) PullSnapshot(name string) (*model.StoredSnapshot, error) {
	if l.Snapshots == nil {
		return nil, helper.NewError("pull snapshot", errors.New("database not connected, use ConnectDatabase() first"))
	}

	stored, err := l.Snapshots.SelectLatestSnapshot(name)
	if err != nil {
		return nil, helper.NewError("pull snapshot", err)
	}
	if err := l.Graph.Restore(&stored.Data); err != nil {
		return nil, helper.NewError("restore snapshot", err)
	}
	l.Ingestor.Reset()
	return stored, nil
}

// Close closes the database connection if one is open.
func (l *Loregraph) Close() error {
	return l.DB.Close()
}
