package connectivity_test

import (
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/connectivity"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/stretchr/testify/require"
)

func TestDetermineConnectivityType(t *testing.T) {
	a := bounds.NewAABB(bounds.Point{X: 0, Y: 0, Z: 0}, bounds.Point{X: 10, Y: 10, Z: 10})

	faceNeighbor := bounds.NewAABB(bounds.Point{X: 10, Y: 0, Z: 0}, bounds.Point{X: 20, Y: 10, Z: 10})
	typ, shared := connectivity.DetermineConnectivityType(a, faceNeighbor)
	require.Equal(t, connectivity.Face, typ)
	require.NotNil(t, shared)

	edgeNeighbor := bounds.NewAABB(bounds.Point{X: 10, Y: 10, Z: 0}, bounds.Point{X: 20, Y: 20, Z: 10})
	typ, _ = connectivity.DetermineConnectivityType(a, edgeNeighbor)
	require.Equal(t, connectivity.Edge, typ)

	vertexNeighbor := bounds.NewAABB(bounds.Point{X: 10, Y: 10, Z: 10}, bounds.Point{X: 20, Y: 20, Z: 20})
	typ, _ = connectivity.DetermineConnectivityType(a, vertexNeighbor)
	require.Equal(t, connectivity.Vertex, typ)

	overlapping := bounds.NewAABB(bounds.Point{X: 5, Y: 5, Z: 5}, bounds.Point{X: 20, Y: 20, Z: 20})
	typ, _ = connectivity.DetermineConnectivityType(a, overlapping)
	require.Equal(t, connectivity.Overlap, typ)

	disjoint := bounds.NewAABB(bounds.Point{X: 100, Y: 100, Z: 100}, bounds.Point{X: 110, Y: 110, Z: 110})
	typ, shared = connectivity.DetermineConnectivityType(a, disjoint)
	require.Equal(t, connectivity.Disjoint, typ)
	require.Nil(t, shared)
}

func TestManager_AddConnection_Idempotent(t *testing.T) {
	m := connectivity.NewManager()
	require.True(t, m.AddConnection("a", "b", connectivity.Face, nil))
	require.False(t, m.AddConnection("a", "b", connectivity.Face, nil), "re-adding the same pair is not newly added")
}

func TestManager_RemoveAllConnections(t *testing.T) {
	m := connectivity.NewManager()
	m.AddConnection("a", "b", connectivity.Face, nil)
	m.AddConnection("a", "c", connectivity.Edge, nil)

	m.RemoveAllConnections("a")
	require.Empty(t, m.GetConnections("a"))
	require.Empty(t, m.GetConnections("b"))
	require.Empty(t, m.GetConnections("c"))
}

func TestManager_FindConnectedComponents(t *testing.T) {
	m := connectivity.NewManager()
	m.AddConnection("a", "b", connectivity.Face, nil)
	m.AddConnection("b", "c", connectivity.Face, nil)
	m.AddConnection("x", "y", connectivity.Face, nil)

	components := m.FindConnectedComponents()
	require.Len(t, components, 2)

	sizes := map[int]int{}
	for _, c := range components {
		sizes[len(c)]++
	}
	require.Equal(t, 2, sizes[3]+sizes[2]) // one 3-node and one 2-node component
}

func TestManager_FindShortestPath(t *testing.T) {
	m := connectivity.NewManager()
	m.AddConnection("a", "b", connectivity.Face, nil)
	m.AddConnection("b", "c", connectivity.Face, nil)
	m.AddConnection("a", "c", connectivity.Face, nil) // shortcut: a-c direct

	path := m.FindShortestPath("a", "c")
	require.Equal(t, []ids.TreeId{"a", "c"}, path)
}

func TestManager_FindShortestPath_NoPath(t *testing.T) {
	m := connectivity.NewManager()
	m.AddConnection("a", "b", connectivity.Face, nil)
	m.AddConnection("x", "y", connectivity.Face, nil)

	require.Empty(t, m.FindShortestPath("a", "y"))
}
