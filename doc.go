// Package luciferase (module github.com/Hellblazer/Luciferase-sub010) is an
// adaptive multi-tree 3D spatial index: a forest of octrees and tetrees
// that subdivide and merge themselves as entity density shifts, linked by
// a ghost-zone replication layer so queries near a tree's boundary see
// entities from its neighbors.
//
// The module is organized as:
//
//	bounds/      — AABB, cubic and tetrahedral bounds, the geometry primitives
//	spatialtree/ — the per-tree index capability, with reference octree and
//	               tetree implementations
//	forest/      — TreeNode and Forest: the authoritative tree table and graph
//	connectivity/ — face/edge/vertex/overlap classification between trees
//	density/     — per-tree entity-density tracking
//	adaptation/  — the background engine that subdivides dense trees and
//	               merges sparse ones
//	ghost/       — boundary-entity replication between neighboring trees
//	entitymgr/   — the insert/remove/update_position façade over a Forest
//	events/      — the change-notification bus
//	forestapi/   — AdaptiveForest, composing all of the above into one type
//	forestlog/   — a zap-backed adapter for the engine's injected Logger
//	cmd/forestdemo/ — a CLI exercising the public API end-to-end
package luciferase
