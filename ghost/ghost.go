package ghost

import (
	"github.com/google/uuid"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// GhostEntity is an immutable, read-only replica of an entity held by a
// neighboring tree for boundary queries.
type GhostEntity struct {
	// GhostID uniquely names this replica snapshot. A UUID rather than a
	// reuse of EntityID because successive refreshes of the same source
	// entity are distinct snapshots in time (see DESIGN.md).
	GhostID      string
	EntityID     ids.EntityId
	Content      any
	Position     bounds.Point
	Bounds       *bounds.AABB
	SourceTreeID ids.TreeId
	CreatedMs    int64
}

func newGhostEntity(entityID ids.EntityId, content any, pos bounds.Point, box *bounds.AABB, sourceTreeID ids.TreeId, nowMs int64) GhostEntity {
	return GhostEntity{
		GhostID:      uuid.NewString(),
		EntityID:     entityID,
		Content:      content,
		Position:     pos,
		Bounds:       box,
		SourceTreeID: sourceTreeID,
		CreatedMs:    nowMs,
	}
}

// ZoneRelation is an unordered pair of trees declaring that boundary-
// proximal entities are replicated between them, with a world-space width.
// Canonical ordering (lex-min tree id first) makes bidirectional membership
// a single map lookup.
type ZoneRelation struct {
	TreeA, TreeB ids.TreeId
	Width        float64
	HasWidth     bool
}

func canonicalPair(a, b ids.TreeId) (ids.TreeId, ids.TreeId) {
	if b.Less(a) {
		return b, a
	}

	return a, b
}
