package spatialtree

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// GhostType enumerates how aggressively a per-tree index replicates
// boundary entities into its own ghost layer. NONE is the default; the
// forest's own ghost.Manager (a separate, tree-external layer) is the
// primary mechanism used in practice — a SpatialTree's own ghost hooks are
// an optional pass-through some implementations may use internally.
type GhostType int

const (
	// GhostTypeNone disables any tree-internal ghost layer (default).
	GhostTypeNone GhostType = iota
	// GhostTypeFace replicates only face-adjacent boundary entities.
	GhostTypeFace
	// GhostTypeFull replicates all boundary-proximal entities.
	GhostTypeFull
)

// EntityPosition pairs an entity id with its position, the element type of
// EntitiesWithPositions iteration.
type EntityPosition struct {
	ID       ids.EntityId
	Position bounds.Point
}

// SpatialTree is the abstract per-tree index capability. It is the only
// surface the forest package consumes from a concrete octree or tetree
// implementation; callers treat both shapes interchangeably through this
// interface.
type SpatialTree interface {
	// Insert adds id at position with the given level and opaque content.
	// bounds, if non-nil, is stored alongside the entity (used by the
	// ghost manager's bounds-based proximity predicate). Returns
	// ErrLevelOutOfRange, ErrDuplicateID, or ErrPositionOutOfDomain.
	Insert(id ids.EntityId, position bounds.Point, level int, content any, box *bounds.AABB) error

	// Remove deletes id if present, reporting whether it was found.
	Remove(id ids.EntityId) bool

	// Get returns the content stored for id, if any.
	Get(id ids.EntityId) (content any, ok bool)

	// PositionOf returns the position stored for id, if any.
	PositionOf(id ids.EntityId) (bounds.Point, bool)

	// EntitiesWithPositions returns every (id, position) pair currently
	// stored, in a deterministic (id-sorted) order.
	EntitiesWithPositions() []EntityPosition

	// EnableBulkLoading brackets the start of a bulk-insert phase; within
	// it, internal structural rebalancing may be deferred.
	EnableBulkLoading()

	// FinalizeBulkLoading ends a bulk-insert phase, performing any
	// deferred rebalancing.
	FinalizeBulkLoading()

	// GhostType returns the tree's own ghost-replication mode.
	GhostType() GhostType

	// SetGhostType configures the tree's own ghost-replication mode.
	SetGhostType(g GhostType)

	// CreateGhostLayer (re)builds the tree's own internal ghost layer,
	// if GhostType() != GhostTypeNone.
	CreateGhostLayer()

	// UpdateGhostLayer incrementally refreshes the tree's own internal
	// ghost layer after a mutation.
	UpdateGhostLayer()

	// EntityCount returns the number of entities currently stored.
	EntityCount() int

	// NodeCount returns the number of internal structural nodes.
	NodeCount() int

	// MaxDepth returns the deepest internal structural level in use.
	MaxDepth() int
}
