package entitymgr_test

import (
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/density"
	"github.com/Hellblazer/Luciferase-sub010/entitymgr"
	"github.com/Hellblazer/Luciferase-sub010/events"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ghost"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree/reffactory"
	"github.com/stretchr/testify/require"
)

func addCube(f *forest.Forest, name string, box bounds.AABB) *forest.TreeNode {
	node := f.AddTree(reffactory.Factory{}.NewTree(bounds.NewCubicBounds(box)), forest.AddTreeOptions{Name: name})
	node.SetTreeBounds(bounds.NewCubicBounds(box))
	node.ExpandGlobalBounds(box)

	return node
}

func TestManager_Insert_RejectsDuplicate(t *testing.T) {
	f := forest.NewForest("f1")
	addCube(f, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})

	id := ids.EntityId("e1")
	pos := bounds.Point{X: 1, Y: 1, Z: 1}
	_, err := mgr.Insert(id, "payload", pos, nil, 0)
	require.NoError(t, err)

	_, err = mgr.Insert(id, "payload", pos, nil, 1)
	require.ErrorIs(t, err, entitymgr.ErrAlreadyRegistered)
}

func TestManager_Insert_NoTreesFails(t *testing.T) {
	f := forest.NewForest("f1")
	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})

	_, err := mgr.Insert(ids.EntityId("e1"), nil, bounds.Point{}, nil, 0)
	require.ErrorIs(t, err, entitymgr.ErrNoTrees)
}

func TestManager_Insert_RecordsLocationAndExpandsBounds(t *testing.T) {
	f := forest.NewForest("f1")
	node := addCube(f, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})

	id := ids.EntityId("e1")
	pos := bounds.Point{X: 20, Y: 20, Z: 20}
	treeID, err := mgr.Insert(id, "payload", pos, nil, 0)
	require.NoError(t, err)
	require.Equal(t, node.ID(), treeID)

	loc, ok := mgr.GetEntityLocation(id)
	require.True(t, ok)
	require.Equal(t, node.ID(), loc.TreeID)
	require.Equal(t, pos, loc.Position)

	gb, ok := node.GlobalBounds()
	require.True(t, ok)
	require.True(t, gb.ContainsPoint(pos))
}

func TestManager_Remove_ClearsLocationAndDropsGhosts(t *testing.T) {
	f := forest.NewForest("f1")
	box := bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}}
	node := addCube(f, "a", box)
	gm := ghost.NewManager(1, nil)

	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})
	mgr.Ghost = gm

	id := ids.EntityId("e1")
	pos := bounds.Point{X: 5, Y: 5, Z: 5}
	_, err := mgr.Insert(id, nil, pos, nil, 0)
	require.NoError(t, err)

	require.True(t, mgr.Remove(id, 1))
	_, ok := mgr.GetEntityLocation(id)
	require.False(t, ok)
	require.False(t, node.Index.Remove(id))

	require.False(t, mgr.Remove(id, 2))
}

func TestManager_UpdatePosition_InPlaceWhenNoMigration(t *testing.T) {
	f := forest.NewForest("f1")
	box := bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 100, Y: 100, Z: 100}}
	addCube(f, "a", box)
	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})

	id := ids.EntityId("e1")
	_, err := mgr.Insert(id, "c", bounds.Point{X: 1, Y: 1, Z: 1}, nil, 0)
	require.NoError(t, err)

	newPos := bounds.Point{X: 2, Y: 2, Z: 2}
	moved, err := mgr.UpdatePosition(id, newPos, 1)
	require.NoError(t, err)
	require.True(t, moved)

	loc, ok := mgr.GetEntityLocation(id)
	require.True(t, ok)
	require.Equal(t, newPos, loc.Position)
}

func TestManager_UpdatePosition_MigratesAcrossTreesAndEmitsEvent(t *testing.T) {
	f := forest.NewForest("f1")
	treeA := addCube(f, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	treeB := addCube(f, "b", bounds.AABB{Min: bounds.Point{X: 100}, Max: bounds.Point{X: 110, Y: 10, Z: 10}})

	bus := events.NewBus()
	var migrated []events.Event
	bus.AddListener(func(ev events.Event) {
		if ev.Kind == events.EntityMigrated {
			migrated = append(migrated, ev)
		}
	})

	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})
	mgr.Events = bus
	mgr.Density = density.NewTracker(1_000_000, nil)

	id := ids.EntityId("e1")
	treeID, err := mgr.Insert(id, "c", bounds.Point{X: 5, Y: 5, Z: 5}, nil, 0)
	require.NoError(t, err)
	require.Equal(t, treeA.ID(), treeID)

	newPos := bounds.Point{X: 105, Y: 5, Z: 5}
	moved, err := mgr.UpdatePosition(id, newPos, 1)
	require.NoError(t, err)
	require.True(t, moved)

	loc, ok := mgr.GetEntityLocation(id)
	require.True(t, ok)
	require.Equal(t, treeB.ID(), loc.TreeID)

	require.False(t, treeA.Index.Remove(id))
	_, onB := treeB.Index.Get(id)
	require.True(t, onB)

	require.Len(t, migrated, 1)
	require.Equal(t, treeA.ID(), migrated[0].FromTree)
	require.Equal(t, treeB.ID(), migrated[0].ToTree)
}

func TestManager_UpdatePosition_UnknownEntityFails(t *testing.T) {
	f := forest.NewForest("f1")
	addCube(f, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})

	_, err := mgr.UpdatePosition(ids.EntityId("missing"), bounds.Point{}, 0)
	require.ErrorIs(t, err, entitymgr.ErrEntityNotFound)
}

func TestManager_GetEntityDistribution(t *testing.T) {
	f := forest.NewForest("f1")
	addCube(f, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	addCube(f, "b", bounds.AABB{Min: bounds.Point{X: 100}, Max: bounds.Point{X: 110, Y: 10, Z: 10}})
	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})

	_, err := mgr.Insert(ids.EntityId("e1"), nil, bounds.Point{X: 1, Y: 1, Z: 1}, nil, 0)
	require.NoError(t, err)
	_, err = mgr.Insert(ids.EntityId("e2"), nil, bounds.Point{X: 2, Y: 2, Z: 2}, nil, 0)
	require.NoError(t, err)
	_, err = mgr.Insert(ids.EntityId("e3"), nil, bounds.Point{X: 105, Y: 5, Z: 5}, nil, 0)
	require.NoError(t, err)

	dist := mgr.GetEntityDistribution()
	require.Len(t, dist, 2)

	total := 0
	for _, n := range dist {
		total += n
	}
	require.Equal(t, 3, total)
}

func TestManager_Snapshot(t *testing.T) {
	f := forest.NewForest("f1")
	addCube(f, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	mgr := entitymgr.NewManager(f, entitymgr.SpatialBounds{})

	_, err := mgr.Insert(ids.EntityId("e1"), "payload", bounds.Point{X: 1, Y: 1, Z: 1}, nil, 0)
	require.NoError(t, err)

	snaps := mgr.Snapshot()
	require.Len(t, snaps, 1)
	require.Equal(t, ids.EntityId("e1"), snaps[0].EntityID)
	require.Equal(t, "payload", snaps[0].Content)
}

func TestManager_RoundRobin_NeverMigrates(t *testing.T) {
	f := forest.NewForest("f1")
	addCube(f, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	addCube(f, "b", bounds.AABB{Min: bounds.Point{X: 100}, Max: bounds.Point{X: 110, Y: 10, Z: 10}})

	mgr := entitymgr.NewManager(f, &entitymgr.RoundRobin{})

	id := ids.EntityId("e1")
	treeID, err := mgr.Insert(id, nil, bounds.Point{X: 1, Y: 1, Z: 1}, nil, 0)
	require.NoError(t, err)

	moved, err := mgr.UpdatePosition(id, bounds.Point{X: 105, Y: 5, Z: 5}, 1)
	require.NoError(t, err)
	require.True(t, moved)

	loc, ok := mgr.GetEntityLocation(id)
	require.True(t, ok)
	require.Equal(t, treeID, loc.TreeID)
}
