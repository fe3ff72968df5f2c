package density

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// Region is one tree's density state: entity positions, a live count, the
// derived density (count/volume), and the timestamp of the last update.
// EntityCount and Density are atomics so readers (the adaptation engine's
// periodic scan) never block on writers (entity manager insert/remove/move
// hooks); positions is guarded by its own RWMutex so the two concerns never
// contend on the same lock.
type Region struct {
	entityCount  atomic.Int64
	densityBits  atomic.Uint64
	lastUpdateMs atomic.Int64

	posMu     sync.RWMutex
	positions map[ids.EntityId]bounds.Point
}

// NewRegion constructs an empty density Region.
func NewRegion() *Region {
	return &Region{positions: make(map[ids.EntityId]bounds.Point)}
}

// EntityCount returns the live entity count.
func (r *Region) EntityCount() int64 { return r.entityCount.Load() }

// Density returns the last-computed density (count/volume).
func (r *Region) Density() float64 { return math.Float64frombits(r.densityBits.Load()) }

// LastUpdateMs returns the timestamp of the most recent mutation.
func (r *Region) LastUpdateMs() int64 { return r.lastUpdateMs.Load() }

// Positions returns a snapshot of every tracked (id, position) pair.
func (r *Region) Positions() map[ids.EntityId]bounds.Point {
	r.posMu.RLock()
	defer r.posMu.RUnlock()

	out := make(map[ids.EntityId]bounds.Point, len(r.positions))
	for id, p := range r.positions {
		out[id] = p
	}

	return out
}

// updateDensity recomputes density = count/volume, guarding volume > 0.
func (r *Region) updateDensity(volume float64) {
	var d float64
	if volume > 0 {
		d = float64(r.entityCount.Load()) / volume
	}
	r.densityBits.Store(math.Float64bits(d))
}

// insert adds (id, pos) to the region, bumping the count and density.
// Re-inserting an id already tracked only updates its position.
func (r *Region) insert(id ids.EntityId, pos bounds.Point, volume float64, nowMs int64) {
	r.posMu.Lock()
	_, existed := r.positions[id]
	r.positions[id] = pos
	r.posMu.Unlock()

	if !existed {
		r.entityCount.Add(1)
	}
	r.updateDensity(volume)
	r.lastUpdateMs.Store(nowMs)
}

// remove drops id from the region, decrementing count and density.
// Reports whether the id was present.
func (r *Region) remove(id ids.EntityId, volume float64, nowMs int64) bool {
	r.posMu.Lock()
	_, existed := r.positions[id]
	delete(r.positions, id)
	r.posMu.Unlock()

	if !existed {
		return false
	}
	r.entityCount.Add(-1)
	r.updateDensity(volume)
	r.lastUpdateMs.Store(nowMs)

	return true
}

// Tracker fans entity-mutation hooks out to each tree's Region and counts
// operations globally so it can invoke a trigger callback every
// densityCheckInterval operations.
type Tracker struct {
	mu      sync.RWMutex
	regions map[ids.TreeId]*Region

	operationCounter atomic.Uint64
	checkInterval    uint64

	// OnCheckInterval is invoked (without holding any Tracker lock) every
	// time the global operation counter reaches a multiple of
	// checkInterval — the hook the adaptation engine uses to re-check trees.
	OnCheckInterval func()
}

// NewTracker constructs a Tracker that calls onCheckInterval every
// checkInterval tracked operations (insert/remove/move).
func NewTracker(checkInterval uint64, onCheckInterval func()) *Tracker {
	if checkInterval == 0 {
		checkInterval = 1
	}

	return &Tracker{
		regions:         make(map[ids.TreeId]*Region),
		checkInterval:   checkInterval,
		OnCheckInterval: onCheckInterval,
	}
}

// RegionFor returns (creating if necessary) the Region for treeID.
func (t *Tracker) RegionFor(treeID ids.TreeId) *Region {
	t.mu.RLock()
	r, ok := t.regions[treeID]
	t.mu.RUnlock()
	if ok {
		return r
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.regions[treeID]; ok {
		return r
	}
	r = NewRegion()
	t.regions[treeID] = r

	return r
}

// RemoveRegion drops the Region for treeID (called when a tree is removed
// or merged away).
func (t *Tracker) RemoveRegion(treeID ids.TreeId) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.regions, treeID)
}

// Regions returns a snapshot of every tracked tree id and its Region.
func (t *Tracker) Regions() map[ids.TreeId]*Region {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[ids.TreeId]*Region, len(t.regions))
	for id, r := range t.regions {
		out[id] = r
	}

	return out
}

// TrackInsert records a new entity in treeID's region and bumps the global
// operation counter, firing OnCheckInterval on the configured cadence.
func (t *Tracker) TrackInsert(treeID ids.TreeId, id ids.EntityId, pos bounds.Point, volume float64, nowMs int64) {
	t.RegionFor(treeID).insert(id, pos, volume, nowMs)
	t.bumpCounter()
}

// TrackRemove records an entity's removal from treeID's region.
func (t *Tracker) TrackRemove(treeID ids.TreeId, id ids.EntityId, volume float64, nowMs int64) bool {
	removed := t.RegionFor(treeID).remove(id, volume, nowMs)
	t.bumpCounter()

	return removed
}

// TrackMove records an entity moving from one tree's region to another's.
func (t *Tracker) TrackMove(oldTree, newTree ids.TreeId, id ids.EntityId, pos bounds.Point, oldVolume, newVolume float64, nowMs int64) {
	t.RegionFor(oldTree).remove(id, oldVolume, nowMs)
	t.RegionFor(newTree).insert(id, pos, newVolume, nowMs)
	t.bumpCounter()
}

func (t *Tracker) bumpCounter() {
	n := t.operationCounter.Add(1)
	if t.OnCheckInterval != nil && n%t.checkInterval == 0 {
		t.OnCheckInterval()
	}
}
