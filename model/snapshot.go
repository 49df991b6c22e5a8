package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/loregraph/helper"
)

// SnapshotVersion is the current snapshot layout.
const SnapshotVersion = 1

// Snapshot is the whole-graph document written to files and to the
// Postgres mirror. Nodes and edges are in insertion order.
type Snapshot struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Nodes   []*Node   `json:"nodes"`
	Edges   []*Edge   `json:"edges"`
}

// Value implements the driver.Valuer interface for database storage
func (s Snapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for database retrieval
func (s *Snapshot) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return helper.NewError("snapshot scan", errors.New("type assertion to []byte failed"))
	}
	return json.Unmarshal(b, s)
}

// StoredSnapshot is a row of the snapshots table.
type StoredSnapshot struct {
	ID        int64     `json:"id"`
	RID       uuid.UUID `json:"rid"`
	Name      string    `json:"name"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	Data      Snapshot  `json:"data"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
