package events

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// Kind tags which variant of Event a value carries.
type Kind int

const (
	// TreeAdded fires when a new tree is added to the forest, either by an
	// external caller or by the adaptation engine during subdivision.
	TreeAdded Kind = iota
	// TreeRemoved fires when a tree is removed from the forest.
	TreeRemoved
	// TreeSubdivided fires when a leaf tree splits into children.
	TreeSubdivided
	// TreesMerged fires when two or more adjacent trees are combined.
	TreesMerged
	// EntityMigrated fires when an entity moves from one tree to another.
	EntityMigrated
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case TreeAdded:
		return "TreeAdded"
	case TreeRemoved:
		return "TreeRemoved"
	case TreeSubdivided:
		return "TreeSubdivided"
	case TreesMerged:
		return "TreesMerged"
	case EntityMigrated:
		return "EntityMigrated"
	default:
		return "Unknown"
	}
}

// Event is the sealed forest-event variant. Every event carries a
// timestamp and the forest it originated from; the remaining fields are
// populated according to Kind and are zero-valued otherwise.
type Event struct {
	Kind        Kind
	TimestampMs int64
	ForestID    string

	// TreeAdded
	TreeID     ids.TreeId
	Bounds     bounds.TreeBounds
	Shape      bounds.Shape
	ParentID   ids.TreeId
	HasParent  bool

	// TreeRemoved: TreeID above.

	// TreeSubdivided
	ChildIDs     []ids.TreeId
	StrategyTag  string
	ChildShape   bounds.Shape

	// TreesMerged
	SourceIDs []ids.TreeId
	MergedID  ids.TreeId

	// EntityMigrated
	EntityID ids.EntityId
	FromTree ids.TreeId
	ToTree   ids.TreeId
}
