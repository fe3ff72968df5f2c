package adaptation

import "errors"

// Sentinel errors for the adaptation package.
var (
	// ErrVolumeTooSmall indicates consider_subdivision refused a tree whose
	// volume is at or below 8*minTreeVolume.
	ErrVolumeTooSmall = errors.New("adaptation: tree volume too small to subdivide")

	// ErrGeometry indicates no valid child bounds could be produced. The
	// TETRAHEDRAL strategy substitutes OCTANT for its own geometry failures
	// (a tetree level out of range, a negative anchor coordinate), so a
	// strategy returns this only when even OCTANT cannot apply (a
	// degenerate, zero-volume parent). ConsiderSubdivision also returns it
	// for a tree that has neither tree bounds nor global bounds.
	ErrGeometry = errors.New("adaptation: invalid subdivision geometry")

	// ErrTreeNotFound indicates an operation referenced a tree id absent
	// from the engine's forest.
	ErrTreeNotFound = errors.New("adaptation: tree not found")
)
