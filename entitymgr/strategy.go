package entitymgr

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// AssignmentStrategy decides which tree owns a newly-inserted entity, and
// whether an entity whose position changed should migrate to a different
// tree.
type AssignmentStrategy interface {
	// SelectTree picks a tree for a new entity at position. Returns false
	// if no tree could be chosen (an empty forest).
	SelectTree(id ids.EntityId, position bounds.Point, box *bounds.AABB, f *forest.Forest) (ids.TreeId, bool)

	// ShouldMigrate is asked after an entity's position changes while it
	// remains in currentTree. Returns the tree it should move to, and
	// true, if migration is warranted; otherwise false (update in place).
	ShouldMigrate(id ids.EntityId, currentTree ids.TreeId, newPosition bounds.Point, f *forest.Forest) (ids.TreeId, bool)
}
