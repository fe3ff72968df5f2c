// Package ghost implements the bounded-replica layer: bidirectional
// ghost-zone relations between trees, GhostEntity snapshots maintained in
// neighboring trees near a boundary, and the proximity predicate deciding
// whether an entity belongs in a neighbor's ghost set.
//
// Consistency is eventually consistent only: after UpdateGhostEntity
// completes, the replica set correctly reflects the neighbor trees whose
// ghost zones contain the entity at that instant, but no staleness bound
// across later adaptation is promised.
package ghost
