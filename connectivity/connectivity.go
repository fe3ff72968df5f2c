package connectivity

import (
	"sync"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// Type classifies the geometric relationship between two trees' shared
// boundary.
type Type int

const (
	// Disjoint means the two trees' globalBounds do not intersect.
	Disjoint Type = iota
	// Overlap means the shared boundary has non-zero volume (3 dims overlap).
	Overlap
	// Face means the shared boundary is a 2D face (1 dim flush).
	Face
	// Edge means the shared boundary is a 1D edge (2 dims flush).
	Edge
	// Vertex means the shared boundary is a single point (3 dims flush).
	Vertex
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Disjoint:
		return "Disjoint"
	case Overlap:
		return "Overlap"
	case Face:
		return "Face"
	case Edge:
		return "Edge"
	case Vertex:
		return "Vertex"
	default:
		return "Unknown"
	}
}

// Connection records the relationship between an ordered-canonical pair of
// trees, keyed by (min(id1,id2), max(id1,id2)).
type Connection struct {
	TreeA, TreeB   ids.TreeId
	Type           Type
	SharedBoundary *bounds.AABB
	Distance       float64
	Metadata       map[string]any
}

type pairKey struct {
	a, b ids.TreeId
}

func canonicalPair(id1, id2 ids.TreeId) pairKey {
	if id2.Less(id1) {
		id1, id2 = id2, id1
	}

	return pairKey{a: id1, b: id2}
}

// flushEpsilon tolerates floating point roundoff when deciding whether an
// axis separation is "flush" (zero) for connectivity-type classification.
const flushEpsilon = 1e-6

// Manager owns the tree-connection table. All mutations take the write
// lock; reads (GetConnection, GetConnections, ...) take the read lock, so
// readers never block each other.
type Manager struct {
	mu          sync.RWMutex
	connections map[pairKey]*Connection
	byTree      map[ids.TreeId]map[pairKey]struct{}
}

// NewManager constructs an empty connectivity Manager.
func NewManager() *Manager {
	return &Manager{
		connections: make(map[pairKey]*Connection),
		byTree:      make(map[ids.TreeId]map[pairKey]struct{}),
	}
}

// AddConnection records a connection between id1 and id2, returning whether
// it was newly added (idempotent: re-adding an existing pair overwrites its
// type/boundary and returns false).
func (m *Manager) AddConnection(id1, id2 ids.TreeId, typ Type, shared *bounds.AABB) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := canonicalPair(id1, id2)
	_, existed := m.connections[key]
	m.connections[key] = &Connection{
		TreeA: key.a, TreeB: key.b, Type: typ, SharedBoundary: shared,
		Metadata: make(map[string]any),
	}
	m.indexPair(key)

	return !existed
}

func (m *Manager) indexPair(key pairKey) {
	for _, id := range [2]ids.TreeId{key.a, key.b} {
		if m.byTree[id] == nil {
			m.byTree[id] = make(map[pairKey]struct{})
		}
		m.byTree[id][key] = struct{}{}
	}
}

// RemoveConnection deletes the connection between id1 and id2, reporting
// whether one existed.
func (m *Manager) RemoveConnection(id1, id2 ids.TreeId) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := canonicalPair(id1, id2)
	if _, ok := m.connections[key]; !ok {
		return false
	}
	delete(m.connections, key)
	delete(m.byTree[key.a], key)
	delete(m.byTree[key.b], key)

	return true
}

// RemoveAllConnections drops every connection involving id.
func (m *Manager) RemoveAllConnections(id ids.TreeId) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.byTree[id] {
		delete(m.connections, key)
		other := key.a
		if other == id {
			other = key.b
		}
		delete(m.byTree[other], key)
	}
	delete(m.byTree, id)
}

// GetConnection returns the connection between id1 and id2, if any.
func (m *Manager) GetConnection(id1, id2 ids.TreeId) (*Connection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.connections[canonicalPair(id1, id2)]

	return c, ok
}

// GetConnections returns every connection involving id.
func (m *Manager) GetConnections(id ids.TreeId) []*Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Connection, 0, len(m.byTree[id]))
	for key := range m.byTree[id] {
		out = append(out, m.connections[key])
	}

	return out
}

// GetConnectionsByType returns every connection involving id whose Type matches typ.
func (m *Manager) GetConnectionsByType(id ids.TreeId, typ Type) []*Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Connection
	for key := range m.byTree[id] {
		if c := m.connections[key]; c.Type == typ {
			out = append(out, c)
		}
	}

	return out
}

// FindSharedBoundary intersects two trees' global bounds, returning nil if disjoint.
func FindSharedBoundary(a, b bounds.AABB) *bounds.AABB {
	if !a.Intersects(b) {
		return nil
	}
	shared := bounds.NewAABB(
		bounds.Point{
			X: maxf(a.Min.X, b.Min.X),
			Y: maxf(a.Min.Y, b.Min.Y),
			Z: maxf(a.Min.Z, b.Min.Z),
		},
		bounds.Point{
			X: minf(a.Max.X, b.Max.X),
			Y: minf(a.Max.Y, b.Max.Y),
			Z: minf(a.Max.Z, b.Max.Z),
		},
	)

	return &shared
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}

	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}

	return b
}

// DetermineConnectivityType classifies the relationship between a and b by
// first finding their shared boundary, then counting how many axes are
// "flush" (zero-width) on that boundary: 0 flush axes -> Overlap, 1 -> Face,
// 2 -> Edge, 3 -> Vertex; no shared boundary -> Disjoint.
func DetermineConnectivityType(a, b bounds.AABB) (Type, *bounds.AABB) {
	shared := FindSharedBoundary(a, b)
	if shared == nil {
		return Disjoint, nil
	}

	flush := 0
	if flushAxis(shared.Min.X, shared.Max.X) {
		flush++
	}
	if flushAxis(shared.Min.Y, shared.Max.Y) {
		flush++
	}
	if flushAxis(shared.Min.Z, shared.Max.Z) {
		flush++
	}

	switch flush {
	case 1:
		return Face, shared
	case 2:
		return Edge, shared
	case 3:
		return Vertex, shared
	default:
		return Overlap, shared
	}
}

func flushAxis(lo, hi float32) bool {
	d := float64(hi) - float64(lo)
	if d < 0 {
		d = -d
	}

	return d <= flushEpsilon
}
