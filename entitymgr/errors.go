package entitymgr

import "errors"

// Sentinel errors for the entitymgr package.
var (
	// ErrAlreadyRegistered indicates Insert was given an id already tracked.
	ErrAlreadyRegistered = errors.New("entitymgr: entity already registered")

	// ErrNoTrees indicates an assignment strategy had no tree to choose
	// from (the forest is empty).
	ErrNoTrees = errors.New("entitymgr: forest has no trees")

	// ErrEntityNotFound indicates an operation referenced an unregistered
	// entity id.
	ErrEntityNotFound = errors.New("entitymgr: entity not found")
)
