package adaptation

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// strategyOctant splits a cubic tree's AABB into 8 children tagged by bit
// triple (bx,by,bz): child i gets the lower half of an axis when that
// axis's bit is 0, the upper half when it is 1.
func strategyOctant(parent bounds.TreeBounds, _ []spatialtree.EntityPosition, _ Config) ([]ChildSpec, error) {
	box := parent.AABBProjection()
	if box.Volume() <= 0 {
		return nil, ErrGeometry
	}
	center := box.Center()

	specs := make([]ChildSpec, 8)
	for i := 0; i < 8; i++ {
		minX, maxX := box.Min.X, center.X
		if i&1 != 0 {
			minX, maxX = center.X, box.Max.X
		}
		minY, maxY := box.Min.Y, center.Y
		if i&2 != 0 {
			minY, maxY = center.Y, box.Max.Y
		}
		minZ, maxZ := box.Min.Z, center.Z
		if i&4 != 0 {
			minZ, maxZ = center.Z, box.Max.Z
		}
		child := bounds.NewAABB(
			bounds.Point{X: minX, Y: minY, Z: minZ},
			bounds.Point{X: maxX, Y: maxY, Z: maxZ},
		)
		specs[i] = ChildSpec{Bounds: bounds.NewCubicBounds(child)}
	}

	return specs, nil
}
