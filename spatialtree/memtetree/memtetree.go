// Package memtetree is a minimal in-memory reference implementation of
// spatialtree.SpatialTree for tetrahedral bounds. It is the tetree
// counterpart of spatialtree/memoctree; see that package's doc comment for
// the rationale.
//
// The one behavioral difference from memoctree is domain validation:
// tetrahedral trees only accept non-negative coordinates.
package memtetree

import (
	"sort"
	"sync"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

type entry struct {
	position bounds.Point
	level    int
	content  any
	box      *bounds.AABB
}

// Tree is a minimal tetree-shaped SpatialTree.
type Tree struct {
	mu           sync.RWMutex
	entries      map[ids.EntityId]entry
	maxLevel     int
	bulkMode     bool
	ghostType    spatialtree.GhostType
	maxDepthSeen int
}

// New creates an empty tetree with the given supported depth.
func New(maxLevel int) *Tree {
	return &Tree{entries: make(map[ids.EntityId]entry), maxLevel: maxLevel}
}

var _ spatialtree.SpatialTree = (*Tree)(nil)

// Insert implements spatialtree.SpatialTree, rejecting negative
// coordinates (ErrPositionOutOfDomain) per the tetrahedral-tree domain
// invariant.
func (t *Tree) Insert(id ids.EntityId, position bounds.Point, level int, content any, box *bounds.AABB) error {
	if level < 0 || (t.maxLevel > 0 && level > t.maxLevel) {
		return spatialtree.ErrLevelOutOfRange
	}
	if position.X < 0 || position.Y < 0 || position.Z < 0 {
		return spatialtree.ErrPositionOutOfDomain
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[id]; exists {
		return spatialtree.ErrDuplicateID
	}
	t.entries[id] = entry{position: position, level: level, content: content, box: box}
	if level > t.maxDepthSeen {
		t.maxDepthSeen = level
	}

	return nil
}

// Remove implements spatialtree.SpatialTree.
func (t *Tree) Remove(id ids.EntityId) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[id]; !ok {
		return false
	}
	delete(t.entries, id)

	return true
}

// Get implements spatialtree.SpatialTree.
func (t *Tree) Get(id ids.EntityId) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[id]
	if !ok {
		return nil, false
	}

	return e.content, true
}

// PositionOf implements spatialtree.SpatialTree.
func (t *Tree) PositionOf(id ids.EntityId) (bounds.Point, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[id]
	if !ok {
		return bounds.Point{}, false
	}

	return e.position, true
}

// EntitiesWithPositions implements spatialtree.SpatialTree.
func (t *Tree) EntitiesWithPositions() []spatialtree.EntityPosition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]spatialtree.EntityPosition, 0, len(t.entries))
	for id, e := range t.entries {
		out = append(out, spatialtree.EntityPosition{ID: id, Position: e.position})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Less(out[j].ID) })

	return out
}

// EnableBulkLoading implements spatialtree.SpatialTree.
func (t *Tree) EnableBulkLoading() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bulkMode = true
}

// FinalizeBulkLoading implements spatialtree.SpatialTree.
func (t *Tree) FinalizeBulkLoading() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bulkMode = false
}

// GhostType implements spatialtree.SpatialTree.
func (t *Tree) GhostType() spatialtree.GhostType {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.ghostType
}

// SetGhostType implements spatialtree.SpatialTree.
func (t *Tree) SetGhostType(g spatialtree.GhostType) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ghostType = g
}

// CreateGhostLayer is a no-op; see memoctree.Tree.CreateGhostLayer.
func (t *Tree) CreateGhostLayer() {}

// UpdateGhostLayer is a no-op; see memoctree.Tree.UpdateGhostLayer.
func (t *Tree) UpdateGhostLayer() {}

// EntityCount implements spatialtree.SpatialTree.
func (t *Tree) EntityCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

// NodeCount reports the entity count as a stand-in structural-node count,
// same as memoctree.Tree.NodeCount.
func (t *Tree) NodeCount() int { return t.EntityCount() }

// MaxDepth implements spatialtree.SpatialTree.
func (t *Tree) MaxDepth() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.maxDepthSeen
}
