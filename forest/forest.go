package forest

import (
	"sort"
	"sync"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/idgen"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// AddTreeOptions configures Forest.AddTree.
type AddTreeOptions struct {
	// Name, if non-empty, becomes the tree id prefix ("{name}_{counter}");
	// otherwise the default prefix "tree" is used.
	Name string
}

// Forest is the authoritative owner of every TreeNode: the graph of trees.
// It assigns ids, stores nodes, maintains the neighbor graph, and answers
// cross-tree queries by iterating its table and delegating to each
// SpatialTree.
//
// A single RWMutex guards the tree table, mutated under the write lock for
// add/remove and read under the read lock for everything else.
type Forest struct {
	ID string

	mu    sync.RWMutex
	trees map[ids.TreeId]*TreeNode

	idGen idgen.TreeIdGenerator

	totalEntityCount int
}

// NewForest constructs an empty Forest identified by id (used to stamp
// events; see events.Event.ForestID).
func NewForest(id string) *Forest {
	return &Forest{
		ID:    id,
		trees: make(map[ids.TreeId]*TreeNode),
	}
}

// AddTree generates a unique id for index and stores it as a new TreeNode,
// which it returns. The node is visible to GetTree/AllTrees from the
// instant this call returns, before the caller has set its bounds or
// hierarchy fields; concurrent readers can observe it in that unset state.
func (f *Forest) AddTree(index spatialtree.SpatialTree, opts AddTreeOptions) *TreeNode {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.idGen.Next(opts.Name)
	node := NewTreeNode(id, index)
	f.trees[id] = node

	return node
}

// RemoveTree removes the tree identified by id, dropping every neighbor
// relationship it participated in, and reports whether it was present.
func (f *Forest) RemoveTree(id ids.TreeId) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	node, ok := f.trees[id]
	if !ok {
		return false
	}
	for _, neighborID := range node.Neighbors() {
		if neighbor, exists := f.trees[neighborID]; exists {
			neighbor.removeNeighbor(id)
		}
	}
	f.totalEntityCount -= node.Index.EntityCount()
	delete(f.trees, id)

	return true
}

// GetTree returns the node identified by id, if present.
func (f *Forest) GetTree(id ids.TreeId) (*TreeNode, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	node, ok := f.trees[id]

	return node, ok
}

// AllTrees returns a snapshot of every tree in the forest, ordered by id
// for deterministic iteration.
func (f *Forest) AllTrees() []*TreeNode {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*TreeNode, 0, len(f.trees))
	for _, node := range f.trees {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().Less(out[j].ID()) })

	return out
}

// AddNeighborRelationship symmetrically links two trees. Self-loops are
// rejected with ErrSelfNeighbor; referencing a missing tree id returns
// ErrTreeNotFound.
func (f *Forest) AddNeighborRelationship(a, b ids.TreeId) error {
	if a == b {
		return ErrSelfNeighbor
	}
	f.mu.RLock()
	nodeA, okA := f.trees[a]
	nodeB, okB := f.trees[b]
	f.mu.RUnlock()
	if !okA || !okB {
		return ErrTreeNotFound
	}
	nodeA.addNeighbor(b)
	nodeB.addNeighbor(a)

	return nil
}

// RemoveNeighborRelationship symmetrically unlinks two trees.
func (f *Forest) RemoveNeighborRelationship(a, b ids.TreeId) error {
	f.mu.RLock()
	nodeA, okA := f.trees[a]
	nodeB, okB := f.trees[b]
	f.mu.RUnlock()
	if !okA || !okB {
		return ErrTreeNotFound
	}
	nodeA.removeNeighbor(b)
	nodeB.removeNeighbor(a)

	return nil
}

// EntityHit is one result row from FindEntitiesInRegion / k-NN search.
type EntityHit struct {
	EntityID ids.EntityId
	TreeID   ids.TreeId
	Position bounds.Point
}

// FindEntitiesInRegion pre-filters trees whose globalBounds intersects
// region, then delegates to each SpatialTree and merges the results.
func (f *Forest) FindEntitiesInRegion(region bounds.AABB) []EntityHit {
	var out []EntityHit
	for _, node := range f.AllTrees() {
		gb, ok := node.GlobalBounds()
		if !ok || !gb.Intersects(region) {
			continue
		}
		for _, ep := range node.Index.EntitiesWithPositions() {
			if region.ContainsPoint(ep.Position) {
				out = append(out, EntityHit{EntityID: ep.ID, TreeID: node.ID(), Position: ep.Position})
			}
		}
	}

	return out
}

// FindKNearestNeighbors ranks every entity across every tree by distance
// and truncates to k. There is no per-tree pruning heuristic: this
// prioritizes correctness over search speed.
func (f *Forest) FindKNearestNeighbors(query bounds.Point, k int) []EntityHit {
	if k <= 0 {
		return nil
	}

	type scored struct {
		hit  EntityHit
		dist float64
	}
	var candidates []scored
	for _, node := range f.AllTrees() {
		for _, ep := range node.Index.EntitiesWithPositions() {
			candidates = append(candidates, scored{
				hit:  EntityHit{EntityID: ep.ID, TreeID: node.ID(), Position: ep.Position},
				dist: query.DistanceSquared(ep.Position),
			})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]EntityHit, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].hit
	}

	return out
}

// RouteQuery returns the trees whose globalBounds intersects region,
// without touching their SpatialTree contents — the routing step that
// higher layers use before dispatching a query of their own choosing.
func (f *Forest) RouteQuery(region bounds.AABB) []*TreeNode {
	var out []*TreeNode
	for _, node := range f.AllTrees() {
		gb, ok := node.GlobalBounds()
		if ok && gb.Intersects(region) {
			out = append(out, node)
		}
	}

	return out
}

// Statistics is the aggregate forest-wide summary; its shape is decided
// in DESIGN.md Open Questions.
type Statistics struct {
	TreeCount         int
	LeafCount         int
	TotalEntities     int
	AverageDensity    float64
	MaxHierarchyLevel uint32
}

// ForestStatistics aggregates per-tree stats into a forest-wide summary.
func (f *Forest) ForestStatistics() Statistics {
	trees := f.AllTrees()
	stats := Statistics{TreeCount: len(trees)}

	var densitySum float64
	var densityCount int
	for _, node := range trees {
		if node.IsLeaf() {
			stats.LeafCount++
		}
		count := node.Index.EntityCount()
		stats.TotalEntities += count
		if level := node.HierarchyLevel(); level > stats.MaxHierarchyLevel {
			stats.MaxHierarchyLevel = level
		}
		if gb, ok := node.GlobalBounds(); ok {
			if vol := gb.Volume(); vol > 0 {
				densitySum += float64(count) / vol
				densityCount++
			}
		}
	}
	if densityCount > 0 {
		stats.AverageDensity = densitySum / float64(densityCount)
	}

	return stats
}
