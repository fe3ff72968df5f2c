package forest

import "errors"

// Sentinel errors for the forest package.
var (
	// ErrTreeNotFound indicates an operation referenced a missing tree id.
	ErrTreeNotFound = errors.New("forest: tree not found")

	// ErrSelfNeighbor indicates an attempt to connect a tree to itself.
	ErrSelfNeighbor = errors.New("forest: a tree cannot neighbor itself")

	// ErrAlreadySubdivided indicates a caller asked to mark a tree
	// subdivided when it already was (surfaced only where the caller
	// needs to know; the engine's CAS simply returns false internally).
	ErrAlreadySubdivided = errors.New("forest: tree already subdivided")
)
