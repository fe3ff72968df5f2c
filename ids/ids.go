// Package ids declares the two opaque identifier types shared by every
// layer of the forest: EntityId, an opaque hashable identifier for a
// spatial entity, and TreeId, a tree's globally unique name within a
// Forest. Both are thin string wrappers so they are hashable (usable as
// map keys) and totally ordered (comparable with <).
package ids

// EntityId identifies a spatial entity, unique across the whole forest at
// any instant.
type EntityId string

// TreeId identifies a tree within a Forest, unique within that forest.
type TreeId string

// Less gives EntityId a total order for deterministic iteration (e.g. when
// breaking ties between candidate children during redistribution).
func (e EntityId) Less(other EntityId) bool { return e < other }

// Less gives TreeId a total order for deterministic iteration.
func (t TreeId) Less(other TreeId) bool { return t < other }
