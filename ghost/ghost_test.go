package ghost_test

import (
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ghost"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/stretchr/testify/require"
)

// fakeTrees backs a ghost.BoundsLookup with fixed per-tree AABBs, standing
// in for a forest in these unit tests.
type fakeTrees map[ids.TreeId]bounds.AABB

func (f fakeTrees) lookup(id ids.TreeId) (bounds.AABB, bool) {
	b, ok := f[id]

	return b, ok
}

func TestManager_EstablishThenRemove_LeavesNoGhosts(t *testing.T) {
	trees := fakeTrees{
		"a": {Min: bounds.Point{X: 0, Y: 0, Z: 0}, Max: bounds.Point{X: 10, Y: 10, Z: 10}},
		"b": {Min: bounds.Point{X: 10, Y: 0, Z: 0}, Max: bounds.Point{X: 20, Y: 10, Z: 10}},
	}
	m := ghost.NewManager(2.0, trees.lookup)

	m.EstablishGhostZone("a", "b", nil)
	m.UpdateGhostEntity("e1", "a", bounds.Point{X: 9, Y: 5, Z: 5}, nil, "payload", 1)

	require.Len(t, m.GetGhostEntities("b"), 1)
	require.Equal(t, []ids.TreeId{"b"}, m.EntityGhostLocations("e1"))

	m.RemoveGhostZone("a", "b")

	require.Empty(t, m.GetGhostEntities("b"))
	require.Empty(t, m.GetGhostEntities("a"))
	require.Empty(t, m.EntityGhostLocations("e1"))
}

func TestManager_UpdateGhostEntity_BoundaryEntityReplicates(t *testing.T) {
	trees := fakeTrees{
		"a": {Min: bounds.Point{X: 0, Y: 0, Z: 0}, Max: bounds.Point{X: 10, Y: 10, Z: 10}},
		"b": {Min: bounds.Point{X: 10, Y: 0, Z: 0}, Max: bounds.Point{X: 20, Y: 10, Z: 10}},
	}
	m := ghost.NewManager(2.0, trees.lookup)
	m.EstablishGhostZone("a", "b", nil)

	// Within width 2.0 of tree b's boundary.
	m.UpdateGhostEntity("e1", "a", bounds.Point{X: 8.5, Y: 5, Z: 5}, nil, "payload", 1)

	ghosts := m.GetGhostEntities("b")
	require.Len(t, ghosts, 1)
	require.Equal(t, ids.EntityId("e1"), ghosts[0].EntityID)
	require.Equal(t, ids.TreeId("a"), ghosts[0].SourceTreeID)
}

func TestManager_UpdateGhostEntity_DropsWhenOutOfZone(t *testing.T) {
	trees := fakeTrees{
		"a": {Min: bounds.Point{X: 0, Y: 0, Z: 0}, Max: bounds.Point{X: 10, Y: 10, Z: 10}},
		"b": {Min: bounds.Point{X: 10, Y: 0, Z: 0}, Max: bounds.Point{X: 20, Y: 10, Z: 10}},
	}
	m := ghost.NewManager(2.0, trees.lookup)
	m.EstablishGhostZone("a", "b", nil)

	m.UpdateGhostEntity("e1", "a", bounds.Point{X: 8.5, Y: 5, Z: 5}, nil, "payload", 1)
	require.Len(t, m.GetGhostEntities("b"), 1)

	// Move entity far from the boundary: ghost must be dropped.
	m.UpdateGhostEntity("e1", "a", bounds.Point{X: 1, Y: 5, Z: 5}, nil, "payload", 2)
	require.Empty(t, m.GetGhostEntities("b"))
	require.Empty(t, m.EntityGhostLocations("e1"))
}

func TestManager_UpdateGhostEntity_BoundsProvidedUsesAxisSeparation(t *testing.T) {
	trees := fakeTrees{
		"a": {Min: bounds.Point{X: 0, Y: 0, Z: 0}, Max: bounds.Point{X: 10, Y: 10, Z: 10}},
		"b": {Min: bounds.Point{X: 10, Y: 0, Z: 0}, Max: bounds.Point{X: 20, Y: 10, Z: 10}},
	}
	m := ghost.NewManager(1.0, trees.lookup)
	m.EstablishGhostZone("a", "b", nil)

	box := &bounds.AABB{Min: bounds.Point{X: 8, Y: 4, Z: 4}, Max: bounds.Point{X: 9.5, Y: 6, Z: 6}}
	m.UpdateGhostEntity("e1", "a", bounds.Point{X: 8.75, Y: 5, Z: 5}, box, nil, 1)

	require.Len(t, m.GetGhostEntities("b"), 1)
}

func TestManager_RemoveGhostEntity(t *testing.T) {
	trees := fakeTrees{
		"a": {Min: bounds.Point{X: 0, Y: 0, Z: 0}, Max: bounds.Point{X: 10, Y: 10, Z: 10}},
		"b": {Min: bounds.Point{X: 10, Y: 0, Z: 0}, Max: bounds.Point{X: 20, Y: 10, Z: 10}},
	}
	m := ghost.NewManager(2.0, trees.lookup)
	m.EstablishGhostZone("a", "b", nil)
	m.UpdateGhostEntity("e1", "a", bounds.Point{X: 9, Y: 5, Z: 5}, nil, "payload", 1)
	require.Len(t, m.GetGhostEntities("b"), 1)

	m.RemoveGhostEntity("e1", "a")
	require.Empty(t, m.GetGhostEntities("b"))
	require.Empty(t, m.EntityGhostLocations("e1"))
}

func TestManager_SynchronizeAllGhostZones(t *testing.T) {
	trees := fakeTrees{
		"a": {Min: bounds.Point{X: 0, Y: 0, Z: 0}, Max: bounds.Point{X: 10, Y: 10, Z: 10}},
		"b": {Min: bounds.Point{X: 10, Y: 0, Z: 0}, Max: bounds.Point{X: 20, Y: 10, Z: 10}},
	}
	m := ghost.NewManager(2.0, trees.lookup)
	m.EstablishGhostZone("a", "b", nil)

	snapshots := []ghost.EntitySnapshot{
		{EntityID: "e1", TreeID: "a", Position: bounds.Point{X: 9, Y: 5, Z: 5}},
		{EntityID: "e2", TreeID: "a", Position: bounds.Point{X: 1, Y: 1, Z: 1}},
	}
	m.SynchronizeAllGhostZones(snapshots, 5)

	ghosts := m.GetGhostEntities("b")
	require.Len(t, ghosts, 1)
	require.Equal(t, ids.EntityId("e1"), ghosts[0].EntityID)
}

func TestManager_WidthOverridePerZone(t *testing.T) {
	trees := fakeTrees{
		"a": {Min: bounds.Point{X: 0, Y: 0, Z: 0}, Max: bounds.Point{X: 10, Y: 10, Z: 10}},
		"b": {Min: bounds.Point{X: 10, Y: 0, Z: 0}, Max: bounds.Point{X: 20, Y: 10, Z: 10}},
	}
	m := ghost.NewManager(0.1, trees.lookup)
	wide := 5.0
	m.EstablishGhostZone("a", "b", &wide)

	m.UpdateGhostEntity("e1", "a", bounds.Point{X: 6, Y: 5, Z: 5}, nil, "payload", 1)
	require.Len(t, m.GetGhostEntities("b"), 1)
}
