package forestapi_test

import (
	"fmt"
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/adaptation"
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/events"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/forestapi"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree/reffactory"
	"github.com/stretchr/testify/require"
)

func addCube(af *forestapi.AdaptiveForest, name string, box bounds.AABB) *forest.TreeNode {
	node := af.Forest.AddTree(reffactory.Factory{}.NewTree(bounds.NewCubicBounds(box)), forest.AddTreeOptions{Name: name})
	node.SetTreeBounds(bounds.NewCubicBounds(box))
	node.ExpandGlobalBounds(box)

	return node
}

func TestAdaptiveForest_InsertRemoveMove(t *testing.T) {
	af := forestapi.New("f1", reffactory.Factory{})
	addCube(af, "root", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 100, Y: 100, Z: 100}})

	id := ids.EntityId("e1")
	treeID, err := af.TrackEntityInsert(id, nil, bounds.Point{X: 1, Y: 1, Z: 1}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, treeID)

	moved, err := af.TrackEntityMove(id, bounds.Point{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	require.True(t, moved)

	require.True(t, af.TrackEntityRemove(id))
	require.False(t, af.TrackEntityRemove(id))
}

func TestAdaptiveForest_CheckAndAdaptSubdividesDenseTree(t *testing.T) {
	cfg := adaptation.DefaultConfig()
	cfg.MaxEntitiesPerTree = 4
	cfg.MinTreeVolume = 1
	cfg.SubdivisionStrategy = adaptation.Octant

	af := forestapi.New("f1", reffactory.Factory{}, forestapi.WithAdaptationConfig(cfg))
	root := addCube(af, "root", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 100, Y: 100, Z: 100}})

	for i := 0; i < 5; i++ {
		pos := bounds.Point{X: float32(i) * 10, Y: 10, Z: 10}
		_, err := af.TrackEntityInsert(ids.EntityId(fmt.Sprintf("e%d", i)), nil, pos, nil)
		require.NoError(t, err)
	}

	af.CheckAndAdapt()

	require.True(t, root.Subdivided())
	require.Len(t, root.ChildTreeIDs(), 8)
}

func TestAdaptiveForest_NavigationHelpers(t *testing.T) {
	af := forestapi.New("f1", reffactory.Factory{})

	root := addCube(af, "root", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	child := addCube(af, "child", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 5, Y: 5, Z: 5}})
	child.SetParentTreeID(root.ID())
	child.SetHierarchyLevel(root.HierarchyLevel() + 1)
	root.AddChildTreeID(child.ID())

	descendants := af.Descendants(root.ID())
	require.Len(t, descendants, 1)
	require.Equal(t, child.ID(), descendants[0].ID())

	ancestors := af.Ancestors(child.ID())
	require.Len(t, ancestors, 1)
	require.Equal(t, root.ID(), ancestors[0].ID())

	subtree := af.Subtree(root.ID())
	require.Len(t, subtree, 2)
	require.Equal(t, root.ID(), subtree[0].ID())

	leaves := af.Leaves()
	require.Len(t, leaves, 1)
	require.Equal(t, child.ID(), leaves[0].ID())

	level1 := af.TreesAtLevel(1)
	require.Len(t, level1, 1)
	require.Equal(t, child.ID(), level1[0].ID())

	level0 := af.TreesAtLevel(0)
	require.Len(t, level0, 1)
	require.Equal(t, root.ID(), level0[0].ID())
}

func TestAdaptiveForest_SetAdaptationEnabledIdempotent(t *testing.T) {
	af := forestapi.New("f1", reffactory.Factory{})

	af.SetAdaptationEnabled(true)
	af.SetAdaptationEnabled(true)
	af.SetAdaptationEnabled(false)
	af.SetAdaptationEnabled(false)

	af.SetAdaptationEnabled(true)
	af.Shutdown()
}

func TestAdaptiveForest_AddEventListener(t *testing.T) {
	af := forestapi.New("f1", reffactory.Factory{})
	addCube(af, "a", bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: 10, Y: 10, Z: 10}})
	addCube(af, "b", bounds.AABB{Min: bounds.Point{X: 200}, Max: bounds.Point{X: 210, Y: 10, Z: 10}})

	received := make(chan events.Event, 1)
	af.AddEventListener(func(ev events.Event) {
		received <- ev
	})

	_, err := af.TrackEntityInsert(ids.EntityId("e1"), nil, bounds.Point{X: 1, Y: 1, Z: 1}, nil)
	require.NoError(t, err)

	_, err = af.TrackEntityMove(ids.EntityId("e1"), bounds.Point{X: 205, Y: 1, Z: 1})
	require.NoError(t, err)

	select {
	case ev := <-received:
		require.Equal(t, events.EntityMigrated, ev.Kind)
	default:
		t.Fatal("expected a migration event to be emitted")
	}
}
