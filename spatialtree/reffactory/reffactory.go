// Package reffactory provides the default spatialtree.Factory, wiring
// memoctree and memtetree behind bounds.TreeBounds' Shape field — the
// single dispatch point that lets callers treat cubic and tetrahedral
// trees interchangeably.
package reffactory

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree/memoctree"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree/memtetree"
)

// Factory is the default spatialtree.Factory.
type Factory struct {
	// MaxLevel bounds the depth passed to new trees; 0 means unbounded.
	MaxLevel int
}

var _ spatialtree.Factory = Factory{}

// NewTree implements spatialtree.Factory.
func (f Factory) NewTree(box bounds.TreeBounds) spatialtree.SpatialTree {
	switch box.Shape {
	case bounds.ShapeTetrahedral:
		return memtetree.New(f.MaxLevel)
	default:
		return memoctree.New(f.MaxLevel)
	}
}
