package spatialtree

import "github.com/Hellblazer/Luciferase-sub010/bounds"

// Factory creates a fresh, empty SpatialTree of the kind matching a
// TreeBounds shape. The adaptation engine uses this to instantiate
// children during subdivision, and the entity manager / forest use it
// when a caller adds a tree by bounds rather than by a pre-built index.
type Factory interface {
	// NewTree returns an empty SpatialTree whose kind matches box.Shape:
	// an octree for ShapeCubic, a tetree for ShapeTetrahedral.
	NewTree(box bounds.TreeBounds) SpatialTree
}
