package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
	loadsql "github.com/siherrmann/loregraph/sql"
)

// SnapshotsDBHandlerFunctions defines the interface for Snapshots database operations.
type SnapshotsDBHandlerFunctions interface {
	InsertSnapshot(snapshot *model.StoredSnapshot) error
	SelectSnapshot(rid uuid.UUID) (*model.StoredSnapshot, error)
	SelectLatestSnapshot(name string) (*model.StoredSnapshot, error)
	SelectAllSnapshots(name string, limit int) ([]*model.StoredSnapshot, error)
	DeleteSnapshot(rid uuid.UUID) error
	PruneSnapshots(name string, keep int) (int, error)
}

// SnapshotsDBHandler mirrors whole-graph snapshots into Postgres
type SnapshotsDBHandler struct {
	db *helper.Database
}

// NewSnapshotsDBHandler creates a new snapshots database handler.
// It loads the snapshot SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewSnapshotsDBHandler(db *helper.Database, force bool) (*SnapshotsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	snapshotsDbHandler := &SnapshotsDBHandler{
		db: db,
	}

	err := loadsql.LoadAllSql(snapshotsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load snapshots sql", err)
	}

	err = snapshotsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized SnapshotsDBHandler")

	return snapshotsDbHandler, nil
}

// CreateTable creates the 'snapshots' table and its index if they don't exist.
func (h *SnapshotsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_snapshots();`)
	if err != nil {
		return helper.NewError("init snapshots", err)
	}

	h.db.Logger.Info("Checked/created table snapshots")

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*model.StoredSnapshot, error) {
	s := &model.StoredSnapshot{}
	err := row.Scan(
		&s.ID,
		&s.RID,
		&s.Name,
		&s.NodeCount,
		&s.EdgeCount,
		&s.Data,
		&s.Metadata,
		&s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %w", model.ErrNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// InsertSnapshot stores snapshot.Data under snapshot.Name. The counts are
// taken from the data and the generated columns are written back.
func (h *SnapshotsDBHandler) InsertSnapshot(snapshot *model.StoredSnapshot) error {
	if snapshot.Name == "" {
		return helper.NewError("insert snapshot", errors.New("snapshot name is empty"))
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_snapshot($1, $2, $3, $4, $5)`,
		snapshot.Name,
		len(snapshot.Data.Nodes),
		len(snapshot.Data.Edges),
		snapshot.Data,
		snapshot.Metadata,
	)

	stored, err := scanSnapshot(row)
	if err != nil {
		return helper.NewError("scan", err)
	}
	*snapshot = *stored

	h.db.Logger.Info("Stored snapshot", "name", snapshot.Name, "rid", snapshot.RID, "nodes", snapshot.NodeCount, "edges", snapshot.EdgeCount)

	return nil
}

// SelectSnapshot retrieves a snapshot by RID
func (h *SnapshotsDBHandler) SelectSnapshot(rid uuid.UUID) (*model.StoredSnapshot, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_snapshot($1)`,
		rid,
	)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return snapshot, nil
}

// SelectLatestSnapshot retrieves the newest snapshot stored under name
func (h *SnapshotsDBHandler) SelectLatestSnapshot(name string) (*model.StoredSnapshot, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_latest_snapshot($1)`,
		name,
	)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return snapshot, nil
}

// SelectAllSnapshots lists snapshots newest first. An empty name lists
// every graph.
func (h *SnapshotsDBHandler) SelectAllSnapshots(name string, limit int) ([]*model.StoredSnapshot, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_snapshots($1, $2)`,
		name,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var snapshots []*model.StoredSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return snapshots, nil
}

// DeleteSnapshot deletes a snapshot by RID
func (h *SnapshotsDBHandler) DeleteSnapshot(rid uuid.UUID) error {
	var deleted int
	err := h.db.Instance.QueryRow(
		`SELECT delete_snapshot($1)`,
		rid,
	).Scan(&deleted)
	if err != nil {
		return helper.NewError("delete", err)
	}
	if deleted == 0 {
		return helper.NewError("delete", fmt.Errorf("%w: snapshot %s", model.ErrNotFound, rid))
	}

	return nil
}

// PruneSnapshots keeps the newest keep snapshots of name and deletes the
// rest, returning how many were deleted.
func (h *SnapshotsDBHandler) PruneSnapshots(name string, keep int) (int, error) {
	if keep < 0 {
		return 0, helper.NewError("prune", fmt.Errorf("keep must not be negative, got %d", keep))
	}

	var deleted int
	err := h.db.Instance.QueryRow(
		`SELECT prune_snapshots($1, $2)`,
		name,
		keep,
	).Scan(&deleted)
	if err != nil {
		return 0, helper.NewError("prune", err)
	}

	return deleted, nil
}
