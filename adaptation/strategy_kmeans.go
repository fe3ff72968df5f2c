package adaptation

import (
	"math/rand"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// kMeansK is the fixed cluster count used by the K_MEANS subdivision
// strategy.
const kMeansK = 8

// kMeansMaxIterations bounds Lloyd's-algorithm convergence.
const kMeansMaxIterations = 20

// kMeansPadding grows each cluster's tight AABB by this amount on every
// side.
const kMeansPadding = 1.0

// strategyKMeans clusters parent entity positions into kMeansK groups via
// Lloyd's algorithm, seeded from kMeansK random picks among the entities,
// and falls back to OCTANT when fewer than kMeansK entities are present.
func strategyKMeans(parent bounds.TreeBounds, entities []spatialtree.EntityPosition, cfg Config) ([]ChildSpec, error) {
	if len(entities) < kMeansK {
		return strategyOctant(parent, entities, cfg)
	}

	rng := rand.New(rand.NewSource(cfg.KMeansSeed))
	centers := make([]bounds.Point, kMeansK)
	perm := rng.Perm(len(entities))
	for i := 0; i < kMeansK; i++ {
		centers[i] = entities[perm[i]].Position
	}

	assignment := make([]int, len(entities))
	for iter := 0; iter < kMeansMaxIterations; iter++ {
		changed := false
		for i, e := range entities {
			best := nearestCenter(e.Position, centers)
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		centers = recomputeCenters(entities, assignment, centers)
	}

	groups := make([][]spatialtree.EntityPosition, kMeansK)
	for i, e := range entities {
		c := assignment[i]
		groups[c] = append(groups[c], e)
	}

	specs := make([]ChildSpec, 0, kMeansK)
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		box := bounds.NewAABB(g[0].Position, g[0].Position)
		ids_ := make([]ids.EntityId, 0, len(g))
		for _, e := range g {
			box = box.ExpandToCoverPoint(e.Position)
			ids_ = append(ids_, e.ID)
		}
		box = padAABB(box, kMeansPadding)
		specs = append(specs, ChildSpec{Bounds: bounds.NewCubicBounds(box), Entities: ids_})
	}

	return specs, nil
}

func nearestCenter(p bounds.Point, centers []bounds.Point) int {
	best := 0
	bestDist := p.DistanceSquared(centers[0])
	for i := 1; i < len(centers); i++ {
		d := p.DistanceSquared(centers[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}

func recomputeCenters(entities []spatialtree.EntityPosition, assignment []int, prev []bounds.Point) []bounds.Point {
	sums := make([]bounds.Point, len(prev))
	counts := make([]int, len(prev))
	for i, e := range entities {
		c := assignment[i]
		sums[c].X += e.Position.X
		sums[c].Y += e.Position.Y
		sums[c].Z += e.Position.Z
		counts[c]++
	}

	next := make([]bounds.Point, len(prev))
	for i := range prev {
		if counts[i] == 0 {
			next[i] = prev[i] // empty cluster keeps its previous center

			continue
		}
		n := float32(counts[i])
		next[i] = bounds.Point{X: sums[i].X / n, Y: sums[i].Y / n, Z: sums[i].Z / n}
	}

	return next
}

func padAABB(box bounds.AABB, pad float32) bounds.AABB {
	return bounds.AABB{
		Min: bounds.Point{X: box.Min.X - pad, Y: box.Min.Y - pad, Z: box.Min.Z - pad},
		Max: bounds.Point{X: box.Max.X + pad, Y: box.Max.Y + pad, Z: box.Max.Z + pad},
	}
}
