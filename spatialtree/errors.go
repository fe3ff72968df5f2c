package spatialtree

import "errors"

// Sentinel errors returned by SpatialTree implementations. Callers branch
// on these with errors.Is; implementations must never panic on user input.
var (
	// ErrLevelOutOfRange indicates Insert was given a level outside the
	// tree's supported depth.
	ErrLevelOutOfRange = errors.New("spatialtree: level out of range")

	// ErrDuplicateID indicates Insert was given an id already present.
	ErrDuplicateID = errors.New("spatialtree: duplicate entity id")

	// ErrPositionOutOfDomain indicates Insert was given a position the tree
	// cannot represent (e.g. a negative coordinate for a tetree).
	ErrPositionOutOfDomain = errors.New("spatialtree: position out of domain")
)
