// Package forest implements the forest's core ownership graph: TreeNode
// (per-tree forest metadata: hierarchy, bounds, neighbors, statistics) and
// Forest (the authoritative table of all TreeNodes, id assignment, and the
// query/routing operations that iterate trees).
//
// A single sync.RWMutex guards the tree table (mutated under the write
// lock for add/remove, queried under the read lock); per-TreeNode fields
// use atomics or their own narrow mutex, and the subdivided flag is the
// single atomic CAS gate guaranteeing at most one subdivision per TreeNode
// lifetime.
package forest
