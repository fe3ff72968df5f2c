package bounds

import "math"

// Point is a position in 3D space. Single-precision to match the wire
// representation entities carry; arithmetic inside this package promotes
// to float64 where precision matters (variance, centroid accumulation).
type Point struct {
	X, Y, Z float32
}

// IsFinite reports whether none of the point's coordinates are NaN or Inf.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float32) bool {
	f := float64(v)

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DistanceSquared returns the squared Euclidean distance between p and q.
// Squared distance avoids a sqrt when only relative ordering matters
// (nearest-centroid fallback, k-NN candidate ranking).
func (p Point) DistanceSquared(q Point) float64 {
	dx := float64(p.X) - float64(q.X)
	dy := float64(p.Y) - float64(q.Y)
	dz := float64(p.Z) - float64(q.Z)

	return dx*dx + dy*dy + dz*dz
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(p.DistanceSquared(q))
}
