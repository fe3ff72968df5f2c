package entitymgr

import (
	"sync"

	"github.com/Hellblazer/Luciferase-sub010/adaptation"
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/density"
	"github.com/Hellblazer/Luciferase-sub010/events"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ghost"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// EntityLocation records which tree currently owns an entity and its last
// known position.
type EntityLocation struct {
	TreeID   ids.TreeId
	Position bounds.Point
	Bounds   *bounds.AABB
	Content  any
}

// Manager is the entity manager façade: the single entry point for
// insert/remove/update-position, fanning each mutation out to the chosen
// tree's SpatialTree, the density tracker, and the ghost manager. One
// RWMutex guards the location table; the underlying SpatialTree and Forest
// have their own finer-grained locking.
type Manager struct {
	Forest   *forest.Forest
	Strategy AssignmentStrategy
	Density  *density.Tracker
	Ghost    *ghost.Manager
	Events   *events.Bus
	Adapt    *adaptation.Engine

	mu        sync.RWMutex
	locations map[ids.EntityId]EntityLocation
}

// NewManager constructs a Manager over forest f using strategy to place
// and migrate entities. Density, Ghost, Adapt, and Events may be nil;
// each capability is skipped if its field is unset.
func NewManager(f *forest.Forest, strategy AssignmentStrategy) *Manager {
	return &Manager{
		Forest:    f,
		Strategy:  strategy,
		locations: make(map[ids.EntityId]EntityLocation),
	}
}

// Insert rejects duplicates, asks the strategy for a tree, inserts into
// its SpatialTree at level 0, records the location, expands the tree's
// global bounds, and notifies the density tracker and ghost manager.
func (m *Manager) Insert(id ids.EntityId, content any, position bounds.Point, box *bounds.AABB, nowMs int64) (ids.TreeId, error) {
	m.mu.Lock()
	if _, exists := m.locations[id]; exists {
		m.mu.Unlock()

		return "", ErrAlreadyRegistered
	}
	m.mu.Unlock()

	treeID, ok := m.Strategy.SelectTree(id, position, box, m.Forest)
	if !ok {
		return "", ErrNoTrees
	}
	node, ok := m.Forest.GetTree(treeID)
	if !ok {
		return "", ErrNoTrees
	}

	if err := node.Index.Insert(id, position, 0, content, box); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.locations[id] = EntityLocation{TreeID: treeID, Position: position, Bounds: box, Content: content}
	m.mu.Unlock()

	node.ExpandGlobalBoundsPoint(position)

	if m.Density != nil {
		volume := 0.0
		if gb, ok := node.GlobalBounds(); ok {
			volume = gb.Volume()
		}
		m.Density.TrackInsert(treeID, id, position, volume, nowMs)
	}
	if m.Adapt != nil {
		m.Adapt.CheckAdaptationTriggers(treeID, node.Index.EntityCount())
	}
	if m.Ghost != nil {
		m.Ghost.UpdateGhostEntity(id, treeID, position, box, content, nowMs)
	}

	return treeID, nil
}

// Remove looks up the entity's tree, deletes it from that tree's
// SpatialTree, clears tracking, and notifies the ghost manager. Reports
// whether the entity was found.
func (m *Manager) Remove(id ids.EntityId, nowMs int64) bool {
	m.mu.Lock()
	loc, ok := m.locations[id]
	if ok {
		delete(m.locations, id)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}

	if node, ok := m.Forest.GetTree(loc.TreeID); ok {
		node.Index.Remove(id)
		if m.Density != nil {
			volume := 0.0
			if gb, ok := node.GlobalBounds(); ok {
				volume = gb.Volume()
			}
			m.Density.TrackRemove(loc.TreeID, id, volume, nowMs)
		}
	}
	if m.Ghost != nil {
		m.Ghost.RemoveGhostEntity(id, loc.TreeID)
	}

	return true
}

// UpdatePosition asks the strategy whether the entity should migrate; if
// so, removes it from the old tree and inserts into the new one (carrying
// content and bounds), emits EntityMigrated, and updates the tracker and
// ghosts; otherwise updates the SpatialTree in place.
func (m *Manager) UpdatePosition(id ids.EntityId, newPosition bounds.Point, nowMs int64) (bool, error) {
	m.mu.RLock()
	loc, ok := m.locations[id]
	m.mu.RUnlock()
	if !ok {
		return false, ErrEntityNotFound
	}

	target, migrate := m.Strategy.ShouldMigrate(id, loc.TreeID, newPosition, m.Forest)
	if !migrate {
		if node, ok := m.Forest.GetTree(loc.TreeID); ok {
			node.Index.Remove(id)
			if err := node.Index.Insert(id, newPosition, 0, loc.Content, loc.Bounds); err != nil {
				return false, err
			}
			node.ExpandGlobalBoundsPoint(newPosition)
		}
		m.mu.Lock()
		loc.Position = newPosition
		m.locations[id] = loc
		m.mu.Unlock()

		if m.Density != nil {
			m.Density.TrackInsert(loc.TreeID, id, newPosition, m.volumeOf(loc.TreeID), nowMs)
		}
		if m.Ghost != nil {
			m.Ghost.UpdateGhostEntity(id, loc.TreeID, newPosition, loc.Bounds, loc.Content, nowMs)
		}

		return true, nil
	}

	oldNode, ok := m.Forest.GetTree(loc.TreeID)
	if ok {
		oldNode.Index.Remove(id)
	}
	newNode, ok := m.Forest.GetTree(target)
	if !ok {
		return false, ErrNoTrees
	}
	if err := newNode.Index.Insert(id, newPosition, 0, loc.Content, loc.Bounds); err != nil {
		return false, err
	}
	newNode.ExpandGlobalBoundsPoint(newPosition)

	m.mu.Lock()
	m.locations[id] = EntityLocation{TreeID: target, Position: newPosition, Bounds: loc.Bounds, Content: loc.Content}
	m.mu.Unlock()

	if m.Density != nil {
		m.Density.TrackMove(loc.TreeID, target, id, newPosition, m.volumeOf(loc.TreeID), m.volumeOf(target), nowMs)
	}
	if m.Ghost != nil {
		m.Ghost.RemoveGhostEntity(id, loc.TreeID)
		m.Ghost.UpdateGhostEntity(id, target, newPosition, loc.Bounds, loc.Content, nowMs)
	}
	if m.Events != nil {
		m.Events.Emit(events.Event{
			Kind:        events.EntityMigrated,
			TimestampMs: nowMs,
			ForestID:    m.Forest.ID,
			EntityID:    id,
			FromTree:    loc.TreeID,
			ToTree:      target,
		})
	}

	return true, nil
}

func (m *Manager) volumeOf(treeID ids.TreeId) float64 {
	node, ok := m.Forest.GetTree(treeID)
	if !ok {
		return 0
	}
	gb, ok := node.GlobalBounds()
	if !ok {
		return 0
	}

	return gb.Volume()
}

// GetEntityLocation returns the entity's current tree and position.
func (m *Manager) GetEntityLocation(id ids.EntityId) (EntityLocation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loc, ok := m.locations[id]

	return loc, ok
}

// GetEntityDistribution returns the number of tracked entities per tree.
func (m *Manager) GetEntityDistribution() map[ids.TreeId]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[ids.TreeId]int)
	for _, loc := range m.locations {
		out[loc.TreeID]++
	}

	return out
}

// Snapshot returns every tracked entity as a ghost.EntitySnapshot, for use
// with ghost.Manager.SynchronizeAllGhostZones after a structural change
// such as a subdivision or merge.
func (m *Manager) Snapshot() []ghost.EntitySnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ghost.EntitySnapshot, 0, len(m.locations))
	for id, loc := range m.locations {
		out = append(out, ghost.EntitySnapshot{
			EntityID: id,
			TreeID:   loc.TreeID,
			Position: loc.Position,
			Bounds:   loc.Bounds,
			Content:  loc.Content,
		})
	}

	return out
}
