package adaptation

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// strategyTetrahedral dispatches on the parent's TreeBounds shape:
//   - a cubic parent splits into 6 characteristic tetrahedra (Case A);
//   - a tetrahedral parent splits into 8 Bey children (Case B).
//
// Case A pre-validates non-negative grid coordinates; a cube with any
// negative coordinate falls back to OCTANT (see DESIGN.md Open Questions).
func strategyTetrahedral(parent bounds.TreeBounds, entities []spatialtree.EntityPosition, cfg Config) ([]ChildSpec, error) {
	switch parent.Shape {
	case bounds.ShapeTetrahedral:
		return tetrahedralCaseB(parent.Tet)
	default:
		return tetrahedralCaseA(parent.Cubic, entities, cfg)
	}
}

// tetrahedralCaseA splits a cubic tree into the 6 characteristic
// tetrahedra (types 0..5) of the deepest grid cell whose size covers the
// box, anchored at the box's min corner snapped to that cell grid. For a
// grid-aligned cube whose side is a power of two, the 6 tetrahedra tile
// the box exactly.
func tetrahedralCaseA(box bounds.AABB, entities []spatialtree.EntityPosition, cfg Config) ([]ChildSpec, error) {
	if box.Min.X < 0 || box.Min.Y < 0 || box.Min.Z < 0 {
		return strategyOctant(bounds.NewCubicBounds(box), entities, cfg)
	}

	side := maxSide(box)
	level := tetreeLevelForSide(side)
	if level < 0 || level >= bounds.MaxTetreeLevel {
		return strategyOctant(bounds.NewCubicBounds(box), entities, cfg)
	}

	cellSize := bounds.CellSizeAtLevel(level)
	anchorX := snapDown(int64(box.Min.X), cellSize)
	anchorY := snapDown(int64(box.Min.Y), cellSize)
	anchorZ := snapDown(int64(box.Min.Z), cellSize)
	if anchorX < 0 || anchorY < 0 || anchorZ < 0 {
		return strategyOctant(bounds.NewCubicBounds(box), entities, cfg)
	}

	specs := make([]ChildSpec, 6)
	for t := 0; t < 6; t++ {
		anchor := bounds.TetAnchor{X: anchorX, Y: anchorY, Z: anchorZ, Level: level, Type: t}
		if !anchor.Valid() {
			return strategyOctant(bounds.NewCubicBounds(box), entities, cfg)
		}
		specs[t] = ChildSpec{Bounds: bounds.NewTetrahedralTreeBounds(bounds.NewTetrahedralBounds(anchor))}
	}

	return specs, nil
}

// tetrahedralCaseB splits a tetrahedral tree into 8 Bey children at
// level+1.
func tetrahedralCaseB(parent bounds.TetrahedralBounds) ([]ChildSpec, error) {
	v := parent.Vertices()
	children := bounds.BeyChildren(v[0], v[1], v[2], v[3])

	specs := make([]ChildSpec, 8)
	for i, c := range children {
		specs[i] = ChildSpec{Bounds: bounds.NewTetrahedralTreeBounds(bounds.NewTetrahedralBoundsFromVertices(c))}
	}

	return specs, nil
}

func maxSide(box bounds.AABB) float64 {
	dx := float64(box.Max.X - box.Min.X)
	dy := float64(box.Max.Y - box.Min.Y)
	dz := float64(box.Max.Z - box.Min.Z)
	side := dx
	if dy > side {
		side = dy
	}
	if dz > side {
		side = dz
	}

	return side
}

// tetreeLevelForSide returns the deepest level L (0..MaxTetreeLevel) whose
// cell size (1<<(21-L)) still covers side — the tightest-fitting level,
// since cell size is non-increasing in L and level 0 trivially satisfies
// the bound at the cube's full resolution. Returns -1 if even level 0
// cannot cover side (a cube wider than the entire grid).
func tetreeLevelForSide(side float64) int {
	if float64(bounds.CellSizeAtLevel(0)) < side {
		return -1
	}
	for level := bounds.MaxTetreeLevel; level >= 0; level-- {
		if float64(bounds.CellSizeAtLevel(level)) >= side {
			return level
		}
	}

	return -1
}

func snapDown(v, cellSize int64) int64 {
	if cellSize <= 0 {
		return v
	}

	return (v / cellSize) * cellSize
}
