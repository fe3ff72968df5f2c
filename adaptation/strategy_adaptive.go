package adaptation

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// varianceEpsilon is how close two axes' variances must be to count as a
// tie, falling back to OCTANT.
const varianceEpsilon = 1e-9

// strategyAdaptive computes the per-axis variance of entity positions and
// delegates to BINARY_X/Y/Z on the axis of largest variance; a tie for
// largest falls back to OCTANT.
func strategyAdaptive(parent bounds.TreeBounds, entities []spatialtree.EntityPosition, cfg Config) ([]ChildSpec, error) {
	vx, vy, vz := positionVariance(entities)

	best := vx
	bestAxis := axisX
	if vy > best {
		best = vy
		bestAxis = axisY
	}
	if vz > best {
		best = vz
		bestAxis = axisZ
	}

	tied := 0
	for _, v := range [3]float64{vx, vy, vz} {
		if best-v <= varianceEpsilon {
			tied++
		}
	}
	if tied > 1 {
		return strategyOctant(parent, entities, cfg)
	}

	return strategyBinary(bestAxis)(parent, entities, cfg)
}

// positionVariance returns the population variance of entity positions on
// each axis independently.
func positionVariance(entities []spatialtree.EntityPosition) (vx, vy, vz float64) {
	n := len(entities)
	if n == 0 {
		return 0, 0, 0
	}

	var sx, sy, sz float64
	for _, e := range entities {
		sx += float64(e.Position.X)
		sy += float64(e.Position.Y)
		sz += float64(e.Position.Z)
	}
	mx, my, mz := sx/float64(n), sy/float64(n), sz/float64(n)

	for _, e := range entities {
		dx := float64(e.Position.X) - mx
		dy := float64(e.Position.Y) - my
		dz := float64(e.Position.Z) - mz
		vx += dx * dx
		vy += dy * dy
		vz += dz * dz
	}

	return vx / float64(n), vy / float64(n), vz / float64(n)
}
