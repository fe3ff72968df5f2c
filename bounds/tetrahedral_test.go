package bounds_test

import (
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/stretchr/testify/require"
)

func TestTetAnchor_Valid(t *testing.T) {
	size := bounds.CellSizeAtLevel(10)
	good := bounds.TetAnchor{X: size * 3, Y: size * 2, Z: 0, Level: 10, Type: 2}
	require.True(t, good.Valid())

	negative := bounds.TetAnchor{X: -size, Y: 0, Z: 0, Level: 10, Type: 0}
	require.False(t, negative.Valid())

	misaligned := bounds.TetAnchor{X: size + 1, Y: 0, Z: 0, Level: 10, Type: 0}
	require.False(t, misaligned.Valid())

	outOfRange := bounds.TetAnchor{X: 0, Y: 0, Z: 0, Level: 99, Type: 0}
	require.False(t, outOfRange.Valid())
}

func TestCharacteristicTetrahedra_TileCube(t *testing.T) {
	// The 6 characteristic tetrahedra at the origin cube must have total
	// volume equal to the cube's volume (side 1<<(21-L)).
	const level = 15
	side := float64(bounds.CellSizeAtLevel(level))
	cubeVolume := side * side * side

	var total float64
	for typ := 0; typ < 6; typ++ {
		tb := bounds.NewTetrahedralBounds(bounds.TetAnchor{Level: level, Type: typ})
		total += tb.Volume()
	}
	require.InDelta(t, cubeVolume, total, cubeVolume*1e-9)
}

func TestTetrahedralBounds_ContainsPoint_Centroid(t *testing.T) {
	tb := bounds.NewTetrahedralBounds(bounds.TetAnchor{Level: 10, Type: 0})
	require.True(t, tb.ContainsPoint(tb.Centroid()))
}

func TestTetrahedralBounds_ContainsPoint_OutsideCube(t *testing.T) {
	tb := bounds.NewTetrahedralBounds(bounds.TetAnchor{Level: 10, Type: 0})
	size := float32(bounds.CellSizeAtLevel(10))
	require.False(t, tb.ContainsPoint(bounds.Point{X: size * 10, Y: size * 10, Z: size * 10}))
}

func TestBeyChildren_VolumeSumsToParent(t *testing.T) {
	tb := bounds.NewTetrahedralBounds(bounds.TetAnchor{Level: 10, Type: 0})
	v := tb.Vertices()
	children := bounds.BeyChildren(v[0], v[1], v[2], v[3])

	var sum float64
	for _, c := range children {
		sum += tetVolume(c)
	}
	require.InDelta(t, tb.Volume(), sum, tb.Volume()*1e-9)
}

// tetVolume recomputes the standard tetrahedron-volume formula directly,
// independently of bounds.TetrahedralBounds.Volume, so the check does not
// rely on the code under test.
func tetVolume(v [4]bounds.Point) float64 {
	v0, v1, v2, v3 := v[0], v[1], v[2], v[3]
	ax, ay, az := float64(v1.X-v0.X), float64(v1.Y-v0.Y), float64(v1.Z-v0.Z)
	bx, by, bz := float64(v2.X-v0.X), float64(v2.Y-v0.Y), float64(v2.Z-v0.Z)
	cx, cy, cz := float64(v3.X-v0.X), float64(v3.Y-v0.Y), float64(v3.Z-v0.Z)
	crossX := by*cz - bz*cy
	crossY := bz*cx - bx*cz
	crossZ := bx*cy - by*cx
	dot := ax*crossX + ay*crossY + az*crossZ
	if dot < 0 {
		dot = -dot
	}

	return dot / 6
}
