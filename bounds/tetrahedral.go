package bounds

import "math"

// MaxTetreeLevel is the deepest level a tetrahedral cell may occupy.
const MaxTetreeLevel = 21

// CellSizeAtLevel returns the edge length of the cube a characteristic
// tetrahedron's anchor grid cell occupies at level L: 1 << (21 - L).
func CellSizeAtLevel(level int) int64 {
	if level < 0 || level > MaxTetreeLevel {
		return 0
	}

	return int64(1) << uint(MaxTetreeLevel-level)
}

// TetAnchor locates one of the 6 characteristic tetrahedra that tile the
// grid-aligned cube at (X,Y,Z) and Level. Type selects which of the 6
// tetrahedra (S0..S5) sharing the cube's main diagonal this anchor names.
type TetAnchor struct {
	X, Y, Z int64
	Level   int
	Type    int // 0..5
}

// cubeCorner enumerates the 8 unit-cube corners in (x,y,z) order.
var cubeCorner = [8]Point{
	{X: 0, Y: 0, Z: 0}, // 0 = c000
	{X: 1, Y: 0, Z: 0}, // 1 = c100
	{X: 0, Y: 1, Z: 0}, // 2 = c010
	{X: 0, Y: 0, Z: 1}, // 3 = c001
	{X: 1, Y: 1, Z: 0}, // 4 = c110
	{X: 1, Y: 0, Z: 1}, // 5 = c101
	{X: 0, Y: 1, Z: 1}, // 6 = c011
	{X: 1, Y: 1, Z: 1}, // 7 = c111
}

// characteristicTetCorners indexes cubeCorner for each of the 6 types.
// All 6 tetrahedra share the cube's main diagonal c000-c111; this is the
// standard characteristic-tetrahedron decomposition of a cube (Glossary:
// "6 characteristic types S0..S5 tiling a cube").
var characteristicTetCorners = [6][4]int{
	{0, 1, 4, 7}, // S0: c000,c100,c110,c111
	{0, 1, 5, 7}, // S1: c000,c100,c101,c111
	{0, 2, 4, 7}, // S2: c000,c010,c110,c111
	{0, 2, 6, 7}, // S3: c000,c010,c011,c111
	{0, 3, 5, 7}, // S4: c000,c001,c101,c111
	{0, 3, 6, 7}, // S5: c000,c001,c011,c111
}

// Valid reports whether the anchor is well-formed: non-negative grid
// coordinates (tetrahedral trees require non-negative positions per spec
// §3), a level within [0, MaxTetreeLevel], a type in 0..5, and grid
// alignment of the anchor to the cell size at Level.
func (a TetAnchor) Valid() bool {
	if a.X < 0 || a.Y < 0 || a.Z < 0 {
		return false
	}
	if a.Level < 0 || a.Level > MaxTetreeLevel {
		return false
	}
	if a.Type < 0 || a.Type > 5 {
		return false
	}
	size := CellSizeAtLevel(a.Level)
	if size <= 0 {
		return false
	}

	return a.X%size == 0 && a.Y%size == 0 && a.Z%size == 0
}

// Vertices returns the 4 corner points of the characteristic tetrahedron,
// in world space (anchor + cube-corner offset * cell size).
func (a TetAnchor) Vertices() [4]Point {
	size := float32(CellSizeAtLevel(a.Level))
	base := Point{X: float32(a.X), Y: float32(a.Y), Z: float32(a.Z)}
	idx := characteristicTetCorners[((a.Type%6)+6)%6]

	var verts [4]Point
	for i, ci := range idx {
		c := cubeCorner[ci]
		verts[i] = Point{
			X: base.X + c.X*size,
			Y: base.Y + c.Y*size,
			Z: base.Z + c.Z*size,
		}
	}

	return verts
}

// TetrahedralBounds is the tetrahedral variant of TreeBounds: an anchor
// plus its derived vertices, computed eagerly so containment tests never
// recompute the characteristic-tetrahedron geometry. The centroid is
// computed from the vertices on each Centroid call.
type TetrahedralBounds struct {
	Anchor   TetAnchor
	vertices [4]Point
}

// NewTetrahedralBounds derives vertices from the anchor. Never fails. An
// anchor whose level is out of range yields a degenerate (zero-volume)
// bounds whose ContainsPoint always returns false; other invalid anchors
// (negative or misaligned coordinates) are not rejected: their vertices
// are computed as given, with Type taken modulo 6.
func NewTetrahedralBounds(a TetAnchor) TetrahedralBounds {
	return TetrahedralBounds{Anchor: a, vertices: a.Vertices()}
}

// NewTetrahedralBoundsFromVertices wraps 4 arbitrary vertices directly,
// bypassing the anchor grid. Used for tetrahedra that are not themselves
// one of the 6 characteristic types at a grid-aligned anchor — notably a
// Bey child, whose corners are parent-vertex midpoints rather than cube
// corners. Anchor is left zero-valued; callers that need a grid anchor
// use NewTetrahedralBounds instead.
func NewTetrahedralBoundsFromVertices(v [4]Point) TetrahedralBounds {
	return TetrahedralBounds{vertices: v}
}

// Vertices returns the 4 corner points of the tetrahedron.
func (t TetrahedralBounds) Vertices() [4]Point { return t.vertices }

// Centroid returns the arithmetic mean of the 4 vertices.
func (t TetrahedralBounds) Centroid() Point {
	var sx, sy, sz float64
	for _, v := range t.vertices {
		sx += float64(v.X)
		sy += float64(v.Y)
		sz += float64(v.Z)
	}

	return Point{X: float32(sx / 4), Y: float32(sy / 4), Z: float32(sz / 4)}
}

// AABB returns the axis-aligned bounding box of the tetrahedron's vertices,
// used whenever the forest needs a cubic projection of tetrahedral bounds
// (e.g. TreeNode.globalBounds, which is always an AABB regardless of shape).
func (t TetrahedralBounds) AABB() AABB {
	box := NewAABB(t.vertices[0], t.vertices[0])
	for _, v := range t.vertices[1:] {
		box = box.ExpandToCoverPoint(v)
	}

	return box
}

// barycentricEps tolerates floating point roundoff at tetrahedron faces;
// a coordinate of -eps is still treated as "on the boundary, inside".
const barycentricEps = 1e-5

// ContainsPoint reports whether p lies within the tetrahedron (closed),
// via barycentric coordinates: all four must be >= -eps.
func (t TetrahedralBounds) ContainsPoint(p Point) bool {
	if !p.IsFinite() {
		return false
	}
	bc, ok := barycentric(t.vertices, p)
	if !ok {
		return false
	}
	for _, c := range bc {
		if c < -barycentricEps {
			return false
		}
	}

	return true
}

// Volume returns the standard tetrahedron volume: |(v1-v0)·((v2-v0)x(v3-v0))| / 6.
func (t TetrahedralBounds) Volume() float64 {
	v0, v1, v2, v3 := t.vertices[0], t.vertices[1], t.vertices[2], t.vertices[3]
	ax, ay, az := float64(v1.X-v0.X), float64(v1.Y-v0.Y), float64(v1.Z-v0.Z)
	bx, by, bz := float64(v2.X-v0.X), float64(v2.Y-v0.Y), float64(v2.Z-v0.Z)
	cx, cy, cz := float64(v3.X-v0.X), float64(v3.Y-v0.Y), float64(v3.Z-v0.Z)

	// cross = b x c
	crossX := by*cz - bz*cy
	crossY := bz*cx - bx*cz
	crossZ := bx*cy - by*cx

	dot := ax*crossX + ay*crossY + az*crossZ

	return math.Abs(dot) / 6
}

// barycentric solves for the barycentric coordinates of p with respect to
// the tetrahedron's 4 vertices. ok is false for a degenerate (zero-volume)
// tetrahedron.
func barycentric(v [4]Point, p Point) (coords [4]float64, ok bool) {
	// Solve [v1-v0, v2-v0, v3-v0] * [l1,l2,l3]^T = p - v0, then l0 = 1-l1-l2-l3.
	m := [3][3]float64{
		{float64(v[1].X - v[0].X), float64(v[2].X - v[0].X), float64(v[3].X - v[0].X)},
		{float64(v[1].Y - v[0].Y), float64(v[2].Y - v[0].Y), float64(v[3].Y - v[0].Y)},
		{float64(v[1].Z - v[0].Z), float64(v[2].Z - v[0].Z), float64(v[3].Z - v[0].Z)},
	}
	rhs := [3]float64{
		float64(p.X - v[0].X),
		float64(p.Y - v[0].Y),
		float64(p.Z - v[0].Z),
	}

	det := det3(m)
	if math.Abs(det) < 1e-12 {
		return coords, false
	}

	l1 := det3(replaceCol(m, 0, rhs)) / det
	l2 := det3(replaceCol(m, 1, rhs)) / det
	l3 := det3(replaceCol(m, 2, rhs)) / det
	l0 := 1 - l1 - l2 - l3

	return [4]float64{l0, l1, l2, l3}, true
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func replaceCol(m [3][3]float64, col int, v [3]float64) [3][3]float64 {
	out := m
	out[0][col] = v[0]
	out[1][col] = v[1]
	out[2][col] = v[2]

	return out
}

// BeyChildren splits a tetrahedron (v0,v1,v2,v3) into 8 smaller tetrahedra
// of the same level+1 via the fixed combinatorial Bey refinement: 4 corner
// children similar to the parent, plus 4 interior children carved from the
// central octahedron by a single fixed diagonal (m03-m12). This is the
// "8 Bey children" construction named in the Glossary; the diagonal choice
// is fixed for determinism, not derived from geometry.
func BeyChildren(v0, v1, v2, v3 Point) [8][4]Point {
	m01, m02, m03 := midpoint(v0, v1), midpoint(v0, v2), midpoint(v0, v3)
	m12, m13, m23 := midpoint(v1, v2), midpoint(v1, v3), midpoint(v2, v3)

	return [8][4]Point{
		{v0, m01, m02, m03},
		{m01, v1, m12, m13},
		{m02, m12, v2, m23},
		{m03, m13, m23, v3},
		{m01, m02, m03, m12},
		{m01, m03, m12, m13},
		{m02, m03, m12, m23},
		{m03, m12, m13, m23},
	}
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}
