package graph

import (
	"fmt"
	"reflect"
	"slices"
	"sort"

	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

// indexes are derived from the primary node and edge maps and can always
// be rebuilt from them. Empty sets and lists are removed, so an
// incrementally maintained instance equals a rebuilt one.
type indexes struct {
	nodesByType map[model.EntityType]map[string]struct{}
	edgesByType map[model.RelationshipType]map[string]struct{}
	nodeByName  map[string]string
	// adjacency lists in edge insertion order
	outgoing map[string][]string
	incoming map[string][]string
}

func newIndexes() *indexes {
	return &indexes{
		nodesByType: map[model.EntityType]map[string]struct{}{},
		edgesByType: map[model.RelationshipType]map[string]struct{}{},
		nodeByName:  map[string]string{},
		outgoing:    map[string][]string{},
		incoming:    map[string][]string{},
	}
}

// buildIndexes derives a fresh index set. Records must be in sequence order.
func buildIndexes(nodes []*nodeRecord, edges []*edgeRecord) *indexes {
	idx := newIndexes()
	for _, rec := range nodes {
		idx.addNode(rec)
	}
	for _, rec := range edges {
		idx.addEdge(rec)
	}
	return idx
}

func (idx *indexes) addNode(rec *nodeRecord) {
	n := rec.node
	set, ok := idx.nodesByType[n.Type]
	if !ok {
		set = map[string]struct{}{}
		idx.nodesByType[n.Type] = set
	}
	set[n.ID] = struct{}{}
	idx.nodeByName[n.Name] = n.ID
}

// removeNode drops the node from the type and name indexes. fallback is the
// node that takes over its name, or empty.
func (idx *indexes) removeNode(rec *nodeRecord, fallback string) {
	n := rec.node
	if set, ok := idx.nodesByType[n.Type]; ok {
		delete(set, n.ID)
		if len(set) == 0 {
			delete(idx.nodesByType, n.Type)
		}
	}
	if idx.nodeByName[n.Name] == n.ID {
		if fallback == "" {
			delete(idx.nodeByName, n.Name)
		} else {
			idx.nodeByName[n.Name] = fallback
		}
	}
	delete(idx.outgoing, n.ID)
	delete(idx.incoming, n.ID)
}

func (idx *indexes) addEdge(rec *edgeRecord) {
	e := rec.edge
	set, ok := idx.edgesByType[e.Type]
	if !ok {
		set = map[string]struct{}{}
		idx.edgesByType[e.Type] = set
	}
	set[e.ID] = struct{}{}
	idx.outgoing[e.SourceID] = append(idx.outgoing[e.SourceID], e.ID)
	idx.incoming[e.TargetID] = append(idx.incoming[e.TargetID], e.ID)
}

func (idx *indexes) removeEdge(rec *edgeRecord) {
	e := rec.edge
	if set, ok := idx.edgesByType[e.Type]; ok {
		delete(set, e.ID)
		if len(set) == 0 {
			delete(idx.edgesByType, e.Type)
		}
	}
	removeFromList(idx.outgoing, e.SourceID, e.ID)
	removeFromList(idx.incoming, e.TargetID, e.ID)
}

func removeFromList(lists map[string][]string, key, id string) {
	list, ok := lists[key]
	if !ok {
		return
	}
	list = slices.DeleteFunc(slices.Clone(list), func(v string) bool { return v == id })
	if len(list) == 0 {
		delete(lists, key)
		return
	}
	lists[key] = list
}

// diff names the first index that differs from other, or returns "".
func (idx *indexes) diff(other *indexes) string {
	switch {
	case !reflect.DeepEqual(idx.nodesByType, other.nodesByType):
		return "nodes by type"
	case !reflect.DeepEqual(idx.edgesByType, other.edgesByType):
		return "edges by type"
	case !reflect.DeepEqual(idx.nodeByName, other.nodeByName):
		return "node by name"
	case !reflect.DeepEqual(idx.outgoing, other.outgoing):
		return "outgoing adjacency"
	case !reflect.DeepEqual(idx.incoming, other.incoming):
		return "incoming adjacency"
	}
	return ""
}

// CheckIndexes verifies that no edge dangles and that every index equals
// one rebuilt from the primary maps.
func (s *Store) CheckIndexes() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, rec := range s.edges {
		if _, ok := s.nodes[rec.edge.SourceID]; !ok {
			return helper.NewError("check indexes", fmt.Errorf("edge %s has dangling source %s", id, rec.edge.SourceID))
		}
		if _, ok := s.nodes[rec.edge.TargetID]; !ok {
			return helper.NewError("check indexes", fmt.Errorf("edge %s has dangling target %s", id, rec.edge.TargetID))
		}
	}

	rebuilt := buildIndexes(s.sortedNodes(), s.sortedEdges())
	if name := s.idx.diff(rebuilt); name != "" {
		return helper.NewError("check indexes", fmt.Errorf("%s index differs from rebuild", name))
	}
	return nil
}

// mergeIncident returns the edges touching id, outgoing and incoming merged
// by insertion order. Self-loops appear once.
func (s *Store) mergeIncident(id string) []*edgeRecord {
	out, in := s.idx.outgoing[id], s.idx.incoming[id]
	recs := make([]*edgeRecord, 0, len(out)+len(in))
	seen := make(map[string]bool, len(out)+len(in))
	for _, list := range [][]string{out, in} {
		for _, edgeID := range list {
			if !seen[edgeID] {
				seen[edgeID] = true
				recs = append(recs, s.edges[edgeID])
			}
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	return recs
}
