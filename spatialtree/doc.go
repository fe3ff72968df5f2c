// Package spatialtree declares the abstract capability every per-tree
// spatial index must satisfy: insert/remove/lookup, position-of, iteration,
// bulk-load bracketing, and an optional ghost-layer hook.
//
// This is the only surface the forest CORE consumes from a per-tree index.
// The optimized internal layout of an octree or tetree (space-filling-curve
// keys, in-tree k-NN acceleration) is explicitly out of scope for this
// package — see subpackages memoctree and memtetree for minimal reference
// implementations used by the CORE's own tests.
package spatialtree
