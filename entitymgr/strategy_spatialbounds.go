package entitymgr

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// SpatialBounds picks the tree whose globalBounds contains the position,
// breaking ties in favor of the smallest (tightest) volume — a
// containment score of 1/volume, so smaller trees score higher (spec
// §4.K). If no tree contains the position, it falls back to the tree
// with minimum axis-aligned distance.
type SpatialBounds struct{}

var _ AssignmentStrategy = SpatialBounds{}

// SelectTree implements AssignmentStrategy.
func (SpatialBounds) SelectTree(_ ids.EntityId, position bounds.Point, _ *bounds.AABB, f *forest.Forest) (ids.TreeId, bool) {
	trees := f.AllTrees()
	if len(trees) == 0 {
		return "", false
	}

	bestID := ids.TreeId("")
	bestScore := -1.0
	found := false
	for _, node := range trees {
		gb, ok := node.GlobalBounds()
		if !ok || !gb.ContainsPoint(position) {
			continue
		}
		score := containmentScore(gb)
		if !found || score > bestScore {
			bestID, bestScore, found = node.ID(), score, true
		}
	}
	if found {
		return bestID, true
	}

	// Fall back to minimum axis-aligned distance.
	bestID = ""
	bestDist := 0.0
	found = false
	for _, node := range trees {
		gb, ok := node.GlobalBounds()
		if !ok {
			continue
		}
		d := gb.DistanceToPoint(position)
		if !found || d < bestDist {
			bestID, bestDist, found = node.ID(), d, true
		}
	}

	return bestID, found
}

// ShouldMigrate implements AssignmentStrategy: if newPosition still lies
// within currentTree's bounds, no migration; otherwise the best
// alternative (by the same containment/distance rule as SelectTree) is
// returned.
func (s SpatialBounds) ShouldMigrate(id ids.EntityId, currentTree ids.TreeId, newPosition bounds.Point, f *forest.Forest) (ids.TreeId, bool) {
	if node, ok := f.GetTree(currentTree); ok {
		if gb, ok := node.GlobalBounds(); ok && gb.ContainsPoint(newPosition) {
			return "", false
		}
	}

	chosen, ok := s.SelectTree(id, newPosition, nil, f)
	if !ok || chosen == currentTree {
		return "", false
	}

	return chosen, true
}

// containmentScore is 1/volume; a degenerate (zero-volume) box scores
// as "infinitely tight" so it wins ties against any positive-volume box.
func containmentScore(box bounds.AABB) float64 {
	vol := box.Volume()
	if vol <= 0 {
		return 1e18
	}

	return 1 / vol
}
