package ghost

import (
	"sync"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// BoundsLookup resolves a tree's current globalBounds. Injected rather than
// depending on package forest directly, so ghost has no import-cycle risk
// and can be unit-tested with a fake.
type BoundsLookup func(id ids.TreeId) (bounds.AABB, bool)

// Manager owns ghost-zone relations and ghost entity replicas. One RWMutex
// protects both relations and ghost storage; reads never block each other,
// writes take the write lock.
type Manager struct {
	mu sync.RWMutex

	relations map[[2]ids.TreeId]ZoneRelation
	neighbors map[ids.TreeId]map[ids.TreeId]struct{}

	ghostsByTree map[ids.TreeId]map[string]GhostEntity // treeID -> ghostID -> entity
	locations    map[ids.EntityId]map[ids.TreeId]struct{}

	// track source so we can find the "current ghost" for (entityID, sourceTreeID) per neighbor
	bySource map[ids.EntityId]map[ids.TreeId]map[ids.TreeId]string // entityID -> sourceTreeID -> neighborTreeID -> ghostID

	DefaultWidth float64
	Bounds       BoundsLookup
}

// NewManager constructs an empty ghost Manager. defaultWidth is used for
// zones established without an explicit width.
func NewManager(defaultWidth float64, lookup BoundsLookup) *Manager {
	return &Manager{
		relations:    make(map[[2]ids.TreeId]ZoneRelation),
		neighbors:    make(map[ids.TreeId]map[ids.TreeId]struct{}),
		ghostsByTree: make(map[ids.TreeId]map[string]GhostEntity),
		locations:    make(map[ids.EntityId]map[ids.TreeId]struct{}),
		bySource:     make(map[ids.EntityId]map[ids.TreeId]map[ids.TreeId]string),
		DefaultWidth: defaultWidth,
		Bounds:       lookup,
	}
}

func relKey(a, b ids.TreeId) [2]ids.TreeId {
	a, b = canonicalPair(a, b)

	return [2]ids.TreeId{a, b}
}

// EstablishGhostZone records a bidirectional ghost relation between a and
// b. width, if nil, falls back to DefaultWidth at resolution time.
func (m *Manager) EstablishGhostZone(a, b ids.TreeId, width *float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel := ZoneRelation{}
	ca, cb := canonicalPair(a, b)
	rel.TreeA, rel.TreeB = ca, cb
	if width != nil {
		rel.Width = *width
		rel.HasWidth = true
	}
	m.relations[relKey(a, b)] = rel

	m.linkNeighbor(a, b)
	m.linkNeighbor(b, a)
}

func (m *Manager) linkNeighbor(from, to ids.TreeId) {
	if m.neighbors[from] == nil {
		m.neighbors[from] = make(map[ids.TreeId]struct{})
	}
	m.neighbors[from][to] = struct{}{}
}

// RemoveGhostZone drops the relation between a and b and every ghost
// replica that relation was responsible for.
func (m *Manager) RemoveGhostZone(a, b ids.TreeId) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.relations, relKey(a, b))
	delete(m.neighbors[a], b)
	delete(m.neighbors[b], a)

	m.dropGhostsBetween(a, b)
	m.dropGhostsBetween(b, a)
}

// dropGhostsBetween removes every ghost in `to` whose source is `from`.
// Caller must hold m.mu (write lock).
func (m *Manager) dropGhostsBetween(from, to ids.TreeId) {
	for entityID, bySrc := range m.bySource {
		byNeighbor, ok := bySrc[from]
		if !ok {
			continue
		}
		if ghostID, ok := byNeighbor[to]; ok {
			delete(m.ghostsByTree[to], ghostID)
			delete(byNeighbor, to)
			delete(m.locations[entityID], to)
			if len(m.locations[entityID]) == 0 {
				delete(m.locations, entityID)
			}
		}
	}
}

func (m *Manager) widthFor(a, b ids.TreeId) float64 {
	if rel, ok := m.relations[relKey(a, b)]; ok && rel.HasWidth {
		return rel.Width
	}

	return m.DefaultWidth
}

// InGhostZone is the ghost-zone proximity predicate: if box is provided,
// all axis separations between box and the neighbor's bounds must be
// <= width; otherwise the distance from position to the closest point on
// the neighbor's bounds must be <= width.
func InGhostZone(position bounds.Point, box *bounds.AABB, neighborBounds bounds.AABB, width float64) bool {
	if box != nil {
		dx, dy, dz := box.AxisSeparation(neighborBounds)

		return dx <= width && dy <= width && dz <= width
	}

	return neighborBounds.DistanceToPoint(position) <= width
}

// UpdateGhostEntity refreshes sourceTreeID's replicas of entityID across
// every ghost-zone neighbor:
//  1. look up sourceTreeID's ghost-zone neighbors,
//  2. for each, evaluate InGhostZone,
//  3. where it holds, replace any prior ghost with a fresh snapshot,
//  4. where it no longer holds, drop the stale ghost,
//  5. update entityGhostLocations to the resulting neighbor set.
func (m *Manager) UpdateGhostEntity(entityID ids.EntityId, sourceTreeID ids.TreeId, position bounds.Point, box *bounds.AABB, content any, nowMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	neighbors := m.neighbors[sourceTreeID]
	newLocations := make(map[ids.TreeId]struct{})

	for neighborID := range neighbors {
		neighborBounds, ok := m.boundsOf(neighborID)
		if !ok {
			continue
		}
		width := m.widthFor(sourceTreeID, neighborID)
		if InGhostZone(position, box, neighborBounds, width) {
			m.setGhost(entityID, sourceTreeID, neighborID, newGhostEntity(entityID, content, position, box, sourceTreeID, nowMs))
			newLocations[neighborID] = struct{}{}
		}
	}

	// Drop ghosts in neighbors that no longer qualify.
	if bySrc, ok := m.bySource[entityID][sourceTreeID]; ok {
		for neighborID, ghostID := range bySrc {
			if _, stillIn := newLocations[neighborID]; !stillIn {
				delete(m.ghostsByTree[neighborID], ghostID)
				delete(bySrc, neighborID)
			}
		}
	}

	if len(newLocations) == 0 {
		delete(m.locations, entityID)
	} else {
		m.locations[entityID] = newLocations
	}
}

func (m *Manager) boundsOf(id ids.TreeId) (bounds.AABB, bool) {
	if m.Bounds == nil {
		return bounds.AABB{}, false
	}

	return m.Bounds(id)
}

func (m *Manager) setGhost(entityID ids.EntityId, sourceTreeID, neighborID ids.TreeId, g GhostEntity) {
	if m.ghostsByTree[neighborID] == nil {
		m.ghostsByTree[neighborID] = make(map[string]GhostEntity)
	}
	if m.bySource[entityID] == nil {
		m.bySource[entityID] = make(map[ids.TreeId]map[ids.TreeId]string)
	}
	if m.bySource[entityID][sourceTreeID] == nil {
		m.bySource[entityID][sourceTreeID] = make(map[ids.TreeId]string)
	}
	// Replace any prior ghost for (entityID, sourceTreeID) in neighborID.
	if oldGhostID, ok := m.bySource[entityID][sourceTreeID][neighborID]; ok {
		delete(m.ghostsByTree[neighborID], oldGhostID)
	}
	m.ghostsByTree[neighborID][g.GhostID] = g
	m.bySource[entityID][sourceTreeID][neighborID] = g.GhostID
}

// RemoveGhostEntity drops every ghost replica of (entityID, sourceTreeID)
// across all neighbors.
func (m *Manager) RemoveGhostEntity(entityID ids.EntityId, sourceTreeID ids.TreeId) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bySrc, ok := m.bySource[entityID][sourceTreeID]
	if !ok {
		return
	}
	for neighborID, ghostID := range bySrc {
		delete(m.ghostsByTree[neighborID], ghostID)
		delete(m.locations[entityID], neighborID)
	}
	delete(m.bySource[entityID], sourceTreeID)
	if len(m.bySource[entityID]) == 0 {
		delete(m.bySource, entityID)
	}
	if len(m.locations[entityID]) == 0 {
		delete(m.locations, entityID)
	}
}

// GetGhostEntities returns every ghost replica currently held by treeID.
func (m *Manager) GetGhostEntities(treeID ids.TreeId) []GhostEntity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]GhostEntity, 0, len(m.ghostsByTree[treeID]))
	for _, g := range m.ghostsByTree[treeID] {
		out = append(out, g)
	}

	return out
}

// EntitySnapshot is one current (entityID, sourceTreeID, position, box,
// content) tuple, the input SynchronizeAllGhostZones rebuilds from. The
// entity manager façade produces them (entitymgr.Manager.Snapshot).
type EntitySnapshot struct {
	EntityID ids.EntityId
	TreeID   ids.TreeId
	Position bounds.Point
	Bounds   *bounds.AABB
	Content  any
}

// SynchronizeAllGhostZones clears every ghost replica and recomputes from
// the provided snapshot, used after structural changes (subdivision,
// merge) shift tree boundaries.
func (m *Manager) SynchronizeAllGhostZones(snapshots []EntitySnapshot, nowMs int64) {
	m.clearGhosts()
	for _, s := range snapshots {
		m.UpdateGhostEntity(s.EntityID, s.TreeID, s.Position, s.Bounds, s.Content, nowMs)
	}
}

func (m *Manager) clearGhosts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ghostsByTree = make(map[ids.TreeId]map[string]GhostEntity)
	m.locations = make(map[ids.EntityId]map[ids.TreeId]struct{})
	m.bySource = make(map[ids.EntityId]map[ids.TreeId]map[ids.TreeId]string)
}

// Clear drops everything: relations, neighbors, and ghosts.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relations = make(map[[2]ids.TreeId]ZoneRelation)
	m.neighbors = make(map[ids.TreeId]map[ids.TreeId]struct{})
	m.ghostsByTree = make(map[ids.TreeId]map[string]GhostEntity)
	m.locations = make(map[ids.EntityId]map[ids.TreeId]struct{})
	m.bySource = make(map[ids.EntityId]map[ids.TreeId]map[ids.TreeId]string)
}

// EntityGhostLocations returns the set of tree ids currently holding a
// ghost for entityID (from any source tree).
func (m *Manager) EntityGhostLocations(entityID ids.EntityId) []ids.TreeId {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ids.TreeId, 0, len(m.locations[entityID]))
	for id := range m.locations[entityID] {
		out = append(out, id)
	}

	return out
}
