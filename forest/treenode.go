package forest

import (
	"sync"
	"sync/atomic"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// TreeStats is a tree's rollup statistics: entity count, maximum depth,
// internal node count, and the millisecond timestamp of the last refresh,
// pulled from the underlying SpatialTree by RefreshStatistics.
type TreeStats struct {
	EntityCount   int
	MaxDepth      int
	NodeCount     int
	LastUpdateMs  int64
}

// TreeNode owns one tree's forest-level metadata: its SpatialTree index,
// its bounds, its place in the hierarchy, its neighbor set, and rollup
// statistics.
//
// Field-level concurrency:
//   - globalBounds: guarded by boundsMu (a single-writer-at-a-time monitor).
//   - subdivided: a single atomic bool; CAS false->true is the sole
//     race-free subdivision gate.
//   - neighbors, childTreeIds: guarded by structMu, copy-on-write on read.
//   - parentTreeId, hierarchyLevel: guarded by structMu for both writes
//     and reads.
type TreeNode struct {
	id    ids.TreeId
	Index spatialtree.SpatialTree

	boundsMu     sync.Mutex
	globalBounds bounds.AABB
	boundsSet    bool
	treeBounds   bounds.TreeBounds
	treeBoundsSet bool

	subdivided atomic.Bool

	structMu      sync.Mutex
	neighbors     map[ids.TreeId]struct{}
	childTreeIDs  []ids.TreeId
	parentTreeID  ids.TreeId
	hasParent     bool
	hierarchyLevel uint32

	statsMu sync.Mutex
	stats   TreeStats

	metaMu   sync.Mutex
	metadata map[string]any

	// AssignedServerID is informational only, never read by this package's
	// own logic.
	AssignedServerID string
}

// NewTreeNode wraps index under id. hierarchyLevel defaults to 0 (root).
func NewTreeNode(id ids.TreeId, index spatialtree.SpatialTree) *TreeNode {
	return &TreeNode{
		id:        id,
		Index:     index,
		neighbors: make(map[ids.TreeId]struct{}),
		metadata:  make(map[string]any),
	}
}

// ID returns the tree's globally-unique (within its forest) identifier.
func (n *TreeNode) ID() ids.TreeId { return n.id }

// GlobalBounds returns the tree's AABB. The second return is false until
// the first insert (or explicit ExpandGlobalBounds call) initializes it.
func (n *TreeNode) GlobalBounds() (bounds.AABB, bool) {
	n.boundsMu.Lock()
	defer n.boundsMu.Unlock()

	return n.globalBounds, n.boundsSet
}

// ExpandGlobalBounds grows globalBounds to cover box, lazily initializing
// it on the first call. The result always contains every previous value
// (monotonic expansion).
func (n *TreeNode) ExpandGlobalBounds(box bounds.AABB) {
	n.boundsMu.Lock()
	defer n.boundsMu.Unlock()

	if !n.boundsSet {
		n.globalBounds = box
		n.boundsSet = true

		return
	}
	n.globalBounds = n.globalBounds.ExpandToCover(box)
}

// ExpandGlobalBoundsPoint grows globalBounds to cover a single point.
func (n *TreeNode) ExpandGlobalBoundsPoint(p bounds.Point) {
	n.boundsMu.Lock()
	defer n.boundsMu.Unlock()

	if !n.boundsSet {
		n.globalBounds = bounds.NewAABB(p, p)
		n.boundsSet = true

		return
	}
	n.globalBounds = n.globalBounds.ExpandToCoverPoint(p)
}

// TreeBounds returns the tree's shape-tagged bounds (CubicBounds or
// TetrahedralBounds), if one has been set.
func (n *TreeNode) TreeBounds() (bounds.TreeBounds, bool) {
	n.boundsMu.Lock()
	defer n.boundsMu.Unlock()

	return n.treeBounds, n.treeBoundsSet
}

// SetTreeBounds assigns the tree's shape-tagged bounds. If treeBounds is
// TetrahedralBounds the underlying index is understood to be a tetree; if
// CubicBounds, an octree.
func (n *TreeNode) SetTreeBounds(tb bounds.TreeBounds) {
	n.boundsMu.Lock()
	defer n.boundsMu.Unlock()
	n.treeBounds = tb
	n.treeBoundsSet = true
}

// TryMarkSubdivided is the race-free subdivision gate: compare-and-set
// from false to true. Exactly one caller across the TreeNode's lifetime
// observes true; every other caller (including repeats) observes false and
// must perform no side effects.
func (n *TreeNode) TryMarkSubdivided() bool {
	return n.subdivided.CompareAndSwap(false, true)
}

// Subdivided reports the current value of the subdivision gate.
func (n *TreeNode) Subdivided() bool { return n.subdivided.Load() }

// IsLeaf reports whether the tree has no children.
func (n *TreeNode) IsLeaf() bool {
	n.structMu.Lock()
	defer n.structMu.Unlock()

	return len(n.childTreeIDs) == 0
}

// IsRoot reports whether the tree has no parent.
func (n *TreeNode) IsRoot() bool {
	n.structMu.Lock()
	defer n.structMu.Unlock()

	return !n.hasParent
}

// AddChildTreeID appends id to the ordered list of children.
func (n *TreeNode) AddChildTreeID(id ids.TreeId) {
	n.structMu.Lock()
	defer n.structMu.Unlock()

	next := make([]ids.TreeId, len(n.childTreeIDs)+1)
	copy(next, n.childTreeIDs)
	next[len(n.childTreeIDs)] = id
	n.childTreeIDs = next
}

// ChildTreeIDs returns a snapshot of the ordered child list.
func (n *TreeNode) ChildTreeIDs() []ids.TreeId {
	n.structMu.Lock()
	defer n.structMu.Unlock()

	out := make([]ids.TreeId, len(n.childTreeIDs))
	copy(out, n.childTreeIDs)

	return out
}

// SetParentTreeID links this node to its parent. Set during hierarchy
// construction under structMu; ParentTreeID reads it under the same lock.
func (n *TreeNode) SetParentTreeID(id ids.TreeId) {
	n.structMu.Lock()
	defer n.structMu.Unlock()
	n.parentTreeID = id
	n.hasParent = true
}

// ParentTreeID returns the parent id and whether one is set.
func (n *TreeNode) ParentTreeID() (ids.TreeId, bool) {
	n.structMu.Lock()
	defer n.structMu.Unlock()

	return n.parentTreeID, n.hasParent
}

// SetHierarchyLevel sets the tree's depth (root = 0).
func (n *TreeNode) SetHierarchyLevel(level uint32) {
	n.structMu.Lock()
	defer n.structMu.Unlock()
	n.hierarchyLevel = level
}

// HierarchyLevel returns the tree's depth.
func (n *TreeNode) HierarchyLevel() uint32 {
	n.structMu.Lock()
	defer n.structMu.Unlock()

	return n.hierarchyLevel
}

// addNeighbor records an undirected neighbor relationship from this side.
// Forest.AddNeighborRelationship calls this on both endpoints.
func (n *TreeNode) addNeighbor(id ids.TreeId) {
	n.structMu.Lock()
	defer n.structMu.Unlock()
	if n.neighbors == nil {
		n.neighbors = make(map[ids.TreeId]struct{})
	}
	n.neighbors[id] = struct{}{}
}

func (n *TreeNode) removeNeighbor(id ids.TreeId) {
	n.structMu.Lock()
	defer n.structMu.Unlock()
	delete(n.neighbors, id)
}

// Neighbors returns a snapshot of this tree's neighbor set.
func (n *TreeNode) Neighbors() []ids.TreeId {
	n.structMu.Lock()
	defer n.structMu.Unlock()

	out := make([]ids.TreeId, 0, len(n.neighbors))
	for id := range n.neighbors {
		out = append(out, id)
	}

	return out
}

// Stats returns a copy of the tree's rollup statistics.
func (n *TreeNode) Stats() TreeStats {
	n.statsMu.Lock()
	defer n.statsMu.Unlock()

	return n.stats
}

// RefreshStatistics pulls fresh counts from the underlying SpatialTree.
// nowMs is injected rather than read from time.Now so callers control
// determinism in tests.
func (n *TreeNode) RefreshStatistics(nowMs int64) {
	n.statsMu.Lock()
	defer n.statsMu.Unlock()
	n.stats = TreeStats{
		EntityCount:  n.Index.EntityCount(),
		MaxDepth:     n.Index.MaxDepth(),
		NodeCount:    n.Index.NodeCount(),
		LastUpdateMs: nowMs,
	}
}

// Metadata returns the value stored under key, if any.
func (n *TreeNode) Metadata(key string) (any, bool) {
	n.metaMu.Lock()
	defer n.metaMu.Unlock()
	v, ok := n.metadata[key]

	return v, ok
}

// SetMetadata stores an opaque value under key.
func (n *TreeNode) SetMetadata(key string, value any) {
	n.metaMu.Lock()
	defer n.metaMu.Unlock()
	n.metadata[key] = value
}
