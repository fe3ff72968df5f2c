// Package forestapi composes Forest, the adaptation engine, the ghost
// manager, and the entity manager façade into the single AdaptiveForest
// type. It is the outer layer higher-level callers embed; none of the core
// packages (forest, adaptation, ghost, entitymgr, density, connectivity,
// bounds, spatialtree) depends on it, and within this module only
// cmd/forestdemo imports it.
package forestapi
