package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/siherrmann/loregraph/model"
)

// ErrSelfRelation reports a relationship whose endpoints resolve to the
// same entity.
var ErrSelfRelation = errors.New("loregraph: relationship from an entity to itself")

// Writer is the part of the schema-enforced store the ingestor writes to.
type Writer interface {
	AddEntity(name string, entityType model.EntityType, properties model.Properties) (string, error)
	AddRelationship(name string, relationshipType model.RelationshipType, sourceID, targetID string, properties model.Properties) (string, error)
	GetNodeByName(name string) (*model.Node, bool)
}

// Failure is one entity or relationship that could not be stored.
type Failure struct {
	Name string
	Err  error
}

// Report summarizes an ingestion run.
type Report struct {
	EntitiesCreated      int
	EntitiesReused       int
	RelationshipsCreated int
	Failures             []Failure
}

// Add accumulates other into r.
func (r *Report) Add(other *Report) {
	if other == nil {
		return
	}
	r.EntitiesCreated += other.EntitiesCreated
	r.EntitiesReused += other.EntitiesReused
	r.RelationshipsCreated += other.RelationshipsCreated
	r.Failures = append(r.Failures, other.Failures...)
}

// Err joins all failures, or returns nil when there were none.
func (r *Report) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Name, f.Err))
	}
	return errors.Join(errs...)
}

// Ingestor writes extraction results into the store. Provisional names are
// resolved through a per-run cache, then through the store's name index,
// and otherwise created with the default entity type.
type Ingestor struct {
	mu          sync.Mutex
	store       Writer
	defaultType model.EntityType
	cache       map[string]string
	log         *slog.Logger
}

func NewIngestor(store Writer, defaultType model.EntityType, logger *slog.Logger) *Ingestor {
	if defaultType == "" {
		defaultType = model.EntityConcept
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ingestor{
		store:       store,
		defaultType: defaultType,
		cache:       map[string]string{},
		log:         logger,
	}
}

// Reset forgets the names resolved so far and starts a new run.
func (i *Ingestor) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cache = map[string]string{}
}

// Resolve returns the node id a provisional name maps to without creating
// anything.
func (i *Ingestor) Resolve(name string) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.lookup(strings.TrimSpace(name))
}

func (i *Ingestor) lookup(name string) (string, bool) {
	if id, ok := i.cache[name]; ok {
		return id, true
	}
	if n, ok := i.store.GetNodeByName(name); ok {
		i.cache[name] = n.ID
		return n.ID, true
	}
	return "", false
}

// Apply stores the entities of result, then its relationships. Nothing
// aborts the run: every failure ends up in the report.
func (i *Ingestor) Apply(result *ExtractionResult) *Report {
	i.mu.Lock()
	defer i.mu.Unlock()

	report := &Report{}
	if result.Empty() {
		return report
	}

	for _, e := range result.Entities {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			i.fail(report, "entity", fmt.Errorf("%w: empty entity name", model.ErrSchemaViolation))
			continue
		}
		if _, ok := i.lookup(name); ok {
			report.EntitiesReused++
			continue
		}
		id, err := i.store.AddEntity(name, e.Type, e.Properties)
		if err != nil {
			i.fail(report, name, err)
			continue
		}
		i.cache[name] = id
		report.EntitiesCreated++
	}

	for _, r := range result.Relationships {
		name := r.DisplayName()
		sourceID, err := i.ensure(strings.TrimSpace(r.Source), report)
		if err != nil {
			i.fail(report, name, err)
			continue
		}
		targetID, err := i.ensure(strings.TrimSpace(r.Target), report)
		if err != nil {
			i.fail(report, name, err)
			continue
		}
		if sourceID == targetID {
			i.fail(report, name, ErrSelfRelation)
			continue
		}
		if _, err := i.store.AddRelationship(name, r.Type, sourceID, targetID, r.Properties); err != nil {
			i.fail(report, name, err)
			continue
		}
		report.RelationshipsCreated++
	}

	i.log.Debug("Applied extraction",
		slog.Int("entities_created", report.EntitiesCreated),
		slog.Int("entities_reused", report.EntitiesReused),
		slog.Int("relationships_created", report.RelationshipsCreated),
		slog.Int("failures", len(report.Failures)),
	)
	return report
}

// ensure resolves name, creating an implicit entity of the default type
// when it is unknown.
func (i *Ingestor) ensure(name string, report *Report) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty entity name", model.ErrSchemaViolation)
	}
	if id, ok := i.lookup(name); ok {
		return id, nil
	}

	id, err := i.store.AddEntity(name, i.defaultType, model.Properties{
		"description":        model.String("Auto-extracted entity"),
		"information_source": model.String("Document extraction"),
		"auto_created":       model.Bool(true),
	})
	if err != nil {
		return "", err
	}
	i.cache[name] = id
	report.EntitiesCreated++
	return id, nil
}

func (i *Ingestor) fail(report *Report, name string, err error) {
	i.log.Warn("Ingestion failed", slog.String("name", name), slog.Any("error", err))
	report.Failures = append(report.Failures, Failure{Name: name, Err: err})
}
