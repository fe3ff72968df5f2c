// Package memoctree is a minimal in-memory reference implementation of
// spatialtree.SpatialTree for cubic (octree) bounds. Optimized octree
// internals (space-filling-curve keys, in-tree k-NN acceleration) are out
// of scope; this type exists so the forest package's own tests and
// cmd/forestdemo have a concrete, correct SpatialTree to exercise.
//
// Storage is a single sync.RWMutex-guarded map, with sorted iteration for
// deterministic ordering.
package memoctree

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

// Tree is a minimal octree-shaped SpatialTree.
type Tree struct {
	mu         sync.RWMutex
	entries    map[ids.EntityId]entry
	maxLevel   int
	bulkMode   bool
	ghostType  spatialtree.GhostType
	maxDepthSeen int
}

// New creates an empty octree with the given supported depth (levels
// 0..maxLevel; a maxLevel of 0 places no upper limit on the level).
func New(maxLevel int) *Tree {
	return &Tree{entries: make(map[ids.EntityId]entry), maxLevel: maxLevel}
}

var _ spatialtree.SpatialTree = (*Tree)(nil)

// Insert implements spatialtree.SpatialTree.
func (t *Tree) Insert(id ids.EntityId, position bounds.Point, level int, content any, box *bounds.AABB) error {
	if level < 0 || (t.maxLevel > 0 && level > t.maxLevel) {
		return spatialtree.ErrLevelOutOfRange
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

// CreateGhostLayer is a no-op: this reference implementation delegates all
// ghost replication to the forest's external ghost.Manager.
func (t *Tree) CreateGhostLayer() {}

// UpdateGhostLayer is a no-op; see CreateGhostLayer.
func (t *Tree) UpdateGhostLayer() {}

// EntityCount implements spatialtree.SpatialTree.
func (t *Tree) EntityCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

// NodeCount reports the entity count as a stand-in structural-node count:
// this reference implementation has no internal subdivision of its own
// (subdivision happens one level up, at the forest's TreeNode/Forest
// layer), so every entity is its own "node".
func (t *Tree) NodeCount() int { return t.EntityCount() }

// MaxDepth implements spatialtree.SpatialTree.
func (t *Tree) MaxDepth() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.maxDepthSeen
}
