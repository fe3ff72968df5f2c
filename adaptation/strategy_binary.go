package adaptation

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// axis identifies one of the three spatial axes a binary split can use.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// strategyBinary splits a cubic tree's AABB into two children at the
// midplane of the given axis.
func strategyBinary(a axis) strategyFn {
	return func(parent bounds.TreeBounds, _ []spatialtree.EntityPosition, _ Config) ([]ChildSpec, error) {
		box := parent.AABBProjection()
		if box.Volume() <= 0 {
			return nil, ErrGeometry
		}
		center := box.Center()

		lo, hi := box, box
		switch a {
		case axisX:
			lo.Max.X, hi.Min.X = center.X, center.X
		case axisY:
			lo.Max.Y, hi.Min.Y = center.Y, center.Y
		case axisZ:
			lo.Max.Z, hi.Min.Z = center.Z, center.Z
		}

		return []ChildSpec{
			{Bounds: bounds.NewCubicBounds(lo)},
			{Bounds: bounds.NewCubicBounds(hi)},
		}, nil
	}
}

var (
	strategyBinaryX = strategyBinary(axisX)
	strategyBinaryY = strategyBinary(axisY)
	strategyBinaryZ = strategyBinary(axisZ)
)
