package adaptation

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// assignEntities implements the generic redistribution policy (spec
// §4.G): for each entity, the first child (in index order) whose bounds
// contain its position wins; failing that, the child whose centroid
// minimizes squared distance to the position. Strategies that already
// assigned entities explicitly (K_MEANS) are passed through unchanged.
func assignEntities(specs []ChildSpec, entities []spatialtree.EntityPosition) [][]spatialtree.EntityPosition {
	groups := make([][]spatialtree.EntityPosition, len(specs))

	explicit := true
	for _, s := range specs {
		if s.Entities == nil {
			explicit = false

			break
		}
	}
	if explicit {
		byID := make(map[ids.EntityId]spatialtree.EntityPosition, len(entities))
		for _, e := range entities {
			byID[e.ID] = e
		}
		for i, s := range specs {
			for _, id := range s.Entities {
				if e, ok := byID[id]; ok {
					groups[i] = append(groups[i], e)
				}
			}
		}

		return groups
	}

	for _, e := range entities {
		idx := firstContaining(specs, e.Position)
		if idx < 0 {
			idx = nearestCentroidIndex(specs, e.Position)
		}
		groups[idx] = append(groups[idx], e)
	}

	return groups
}

func firstContaining(specs []ChildSpec, p bounds.Point) int {
	for i, s := range specs {
		if s.Bounds.ContainsPoint(p) {
			return i
		}
	}

	return -1
}

func nearestCentroidIndex(specs []ChildSpec, p bounds.Point) int {
	best := 0
	bestDist := p.DistanceSquared(specs[0].Bounds.Centroid())
	for i := 1; i < len(specs); i++ {
		d := p.DistanceSquared(specs[i].Bounds.Centroid())
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}
