package bounds

// AABB is an axis-aligned bounding box with Min <= Max on every coordinate.
//
// Complexity: all methods are O(1).
type AABB struct {
	Min Point
	Max Point
}

// NewAABB builds an AABB from two corner points, normalizing so that
// Min holds the componentwise minimum and Max the componentwise maximum.
// Never fails: malformed corners (min > max on some axis) are silently
// swapped per-axis.
func NewAABB(a, b Point) AABB {
	return AABB{
		Min: Point{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)},
		Max: Point{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)},
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Center returns the arithmetic midpoint of the box.
func (b AABB) Center() Point {
	return Point{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Volume returns (Δx)(Δy)(Δz). Returns 0 for a degenerate or NaN-tainted box.
func (b AABB) Volume() float64 {
	if !b.Min.IsFinite() || !b.Max.IsFinite() {
		return 0
	}
	dx := float64(b.Max.X) - float64(b.Min.X)
	dy := float64(b.Max.Y) - float64(b.Min.Y)
	dz := float64(b.Max.Z) - float64(b.Min.Z)
	if dx < 0 || dy < 0 || dz < 0 {
		return 0
	}

	return dx * dy * dz
}

// ContainsPoint reports whether p lies within the box using closed
// intervals on every axis. NaN coordinates never satisfy containment.
func (b AABB) ContainsPoint(p Point) bool {
	if !p.IsFinite() {
		return false
	}

	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether b and other overlap, using a closed
// half-space test on each axis (touching faces count as intersecting).
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// ExpandToCover returns a new AABB that is the componentwise min/max of
// b and other — the smallest box containing both.
func (b AABB) ExpandToCover(other AABB) AABB {
	return AABB{
		Min: Point{X: minf(b.Min.X, other.Min.X), Y: minf(b.Min.Y, other.Min.Y), Z: minf(b.Min.Z, other.Min.Z)},
		Max: Point{X: maxf(b.Max.X, other.Max.X), Y: maxf(b.Max.Y, other.Max.Y), Z: maxf(b.Max.Z, other.Max.Z)},
	}
}

// ExpandToCoverPoint returns the smallest AABB containing both b and p.
func (b AABB) ExpandToCoverPoint(p Point) AABB {
	return AABB{
		Min: Point{X: minf(b.Min.X, p.X), Y: minf(b.Min.Y, p.Y), Z: minf(b.Min.Z, p.Z)},
		Max: Point{X: maxf(b.Max.X, p.X), Y: maxf(b.Max.Y, p.Y), Z: maxf(b.Max.Z, p.Z)},
	}
}

// ClosestPoint projects p onto the box, returning p itself when p already
// lies inside. Used by the ghost proximity predicate to measure distance
// from a point to a neighbor tree's global bounds.
func (b AABB) ClosestPoint(p Point) Point {
	return Point{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// DistanceToPoint returns the Euclidean distance from p to the nearest
// point on (or inside) the box. Zero when p is inside or on the boundary.
func (b AABB) DistanceToPoint(p Point) float64 {
	return p.Distance(b.ClosestPoint(p))
}

// AxisSeparation returns, for each axis, how far apart b and other are
// along that axis: 0 if they overlap on that axis, else the gap. Used by
// the ghost "bounds provided" proximity test (all axis separations <= width).
func (b AABB) AxisSeparation(other AABB) (dx, dy, dz float64) {
	dx = axisGap(b.Min.X, b.Max.X, other.Min.X, other.Max.X)
	dy = axisGap(b.Min.Y, b.Max.Y, other.Min.Y, other.Max.Y)
	dz = axisGap(b.Min.Z, b.Max.Z, other.Min.Z, other.Max.Z)

	return dx, dy, dz
}

func axisGap(aMin, aMax, bMin, bMax float32) float64 {
	if aMax < bMin {
		return float64(bMin - aMax)
	}
	if bMax < aMin {
		return float64(aMin - bMax)
	}

	return 0
}
