package graph

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

// Snapshot returns a deep copy of the whole graph in insertion order.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *model.Snapshot {
	snap := &model.Snapshot{
		Version: model.SnapshotVersion,
		SavedAt: time.Now().UTC(),
		Nodes:   make([]*model.Node, 0, len(s.nodes)),
		Edges:   make([]*model.Edge, 0, len(s.edges)),
	}
	for _, rec := range s.sortedNodes() {
		snap.Nodes = append(snap.Nodes, rec.node.Clone())
	}
	for _, rec := range s.sortedEdges() {
		snap.Edges = append(snap.Edges, rec.edge.Clone())
	}
	return snap
}

// Restore replaces the whole graph with the snapshot. The snapshot is fully
// validated first; on any error model.ErrIOFailure is returned and the store
// keeps its previous state. Type tags are not checked against a schema.
func (s *Store) Restore(snap *model.Snapshot) error {
	nodes, edges, idx, err := prepareRestore(snap)
	if err != nil {
		return helper.NewError("restore graph", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make(map[string]*nodeRecord, len(nodes))
	for _, rec := range nodes {
		s.nodes[rec.node.ID] = rec
	}
	s.edges = make(map[string]*edgeRecord, len(edges))
	for _, rec := range edges {
		s.edges[rec.edge.ID] = rec
	}
	s.idx = idx
	s.seq = uint64(len(nodes) + len(edges))

	return nil
}

// prepareRestore builds records and indexes for a snapshot without touching
// the store.
func prepareRestore(snap *model.Snapshot) ([]*nodeRecord, []*edgeRecord, *indexes, error) {
	if snap == nil {
		return nil, nil, nil, fmt.Errorf("snapshot is nil")
	}
	if snap.Version > model.SnapshotVersion {
		return nil, nil, nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	var seq uint64
	nodeIDs := make(map[string]bool, len(snap.Nodes))
	nodes := make([]*nodeRecord, 0, len(snap.Nodes))
	for i, n := range snap.Nodes {
		if n == nil || n.ID == "" {
			return nil, nil, nil, fmt.Errorf("node %d has no id", i)
		}
		if nodeIDs[n.ID] {
			return nil, nil, nil, fmt.Errorf("duplicate node id %s", n.ID)
		}
		nodeIDs[n.ID] = true
		seq++
		nodes = append(nodes, &nodeRecord{node: n.Clone(), seq: seq})
	}

	edgeIDs := make(map[string]bool, len(snap.Edges))
	edges := make([]*edgeRecord, 0, len(snap.Edges))
	for i, e := range snap.Edges {
		if e == nil || e.ID == "" {
			return nil, nil, nil, fmt.Errorf("edge %d has no id", i)
		}
		if edgeIDs[e.ID] {
			return nil, nil, nil, fmt.Errorf("duplicate edge id %s", e.ID)
		}
		if !nodeIDs[e.SourceID] || !nodeIDs[e.TargetID] {
			return nil, nil, nil, fmt.Errorf("edge %s references a missing node", e.ID)
		}
		edgeIDs[e.ID] = true
		seq++
		edges = append(edges, &edgeRecord{edge: e.Clone(), seq: seq})
	}

	return nodes, edges, buildIndexes(nodes, edges), nil
}

// SaveToFile writes the graph as JSON. The file is written to a temporary
// sibling and renamed, so a crash never leaves a partial snapshot behind.
func (s *Store) SaveToFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshotLocked()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return helper.NewError("save graph", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
	}

	if err := writeFileAtomic(path, data); err != nil {
		return helper.NewError("save graph", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
	}

	s.log.Info("Saved graph", slog.String("path", path), slog.Int("nodes", len(snap.Nodes)), slog.Int("edges", len(snap.Edges)))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadFromFile replaces the graph with the contents of a snapshot file. On
// any error model.ErrIOFailure is returned and the store is unchanged.
func (s *Store) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return helper.NewError("load graph", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
	}

	snap := &model.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return helper.NewError("load graph", fmt.Errorf("%w: %w", model.ErrIOFailure, err))
	}

	if err := s.Restore(snap); err != nil {
		return helper.NewError("load graph", err)
	}

	s.log.Info("Loaded graph", slog.String("path", path), slog.Int("nodes", len(snap.Nodes)), slog.Int("edges", len(snap.Edges)))
	return nil
}
