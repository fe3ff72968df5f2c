package adaptation

import (
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// ChildSpec is one child produced by a subdivision strategy: its bounds,
// and — for strategies where containment alone cannot recover membership
// (K_MEANS's padded cluster boxes overlap) — the explicit set of entities
// assigned to it.
type ChildSpec struct {
	Bounds   bounds.TreeBounds
	Entities []ids.EntityId // nil unless the strategy assigns explicitly
}

// strategyFn is the pure function shape every subdivision strategy
// implements: parent bounds and entity positions in, child specs out. The
// engine frames every call with the CAS gate, tree construction,
// redistribution, and event emission; strategies themselves are stateless
// and hold no Engine state.
type strategyFn func(parent bounds.TreeBounds, entities []spatialtree.EntityPosition, cfg Config) ([]ChildSpec, error)
