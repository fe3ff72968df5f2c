package entitymgr

import (
	"sync/atomic"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// RoundRobin assigns each new entity to the next tree in the forest's
// id-sorted order, wrapping around; it never migrates an entity once
// placed.
type RoundRobin struct {
	counter atomic.Uint64
}

var _ AssignmentStrategy = (*RoundRobin)(nil)

// SelectTree implements AssignmentStrategy.
func (r *RoundRobin) SelectTree(_ ids.EntityId, _ bounds.Point, _ *bounds.AABB, f *forest.Forest) (ids.TreeId, bool) {
	trees := f.AllTrees()
	if len(trees) == 0 {
		return "", false
	}
	n := r.counter.Add(1) - 1

	return trees[n%uint64(len(trees))].ID(), true
}

// ShouldMigrate implements AssignmentStrategy: round-robin placement is
// permanent.
func (r *RoundRobin) ShouldMigrate(_ ids.EntityId, _ ids.TreeId, _ bounds.Point, _ *forest.Forest) (ids.TreeId, bool) {
	return "", false
}
