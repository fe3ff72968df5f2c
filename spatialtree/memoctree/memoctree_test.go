package memoctree_test

import (
	"errors"
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree/memoctree"
	"github.com/stretchr/testify/require"
)

func TestTree_InsertRemoveGet_RoundTrip(t *testing.T) {
	tr := memoctree.New(0)
	p := bounds.Point{X: 1, Y: 2, Z: 3}

	require.NoError(t, tr.Insert("e1", p, 0, "payload", nil))
	content, ok := tr.Get("e1")
	require.True(t, ok)
	require.Equal(t, "payload", content)

	require.True(t, tr.Remove("e1"))
	_, ok = tr.Get("e1")
	require.False(t, ok, "insert then remove then get must return absent")
}

func TestTree_Insert_DuplicateID(t *testing.T) {
	tr := memoctree.New(0)
	require.NoError(t, tr.Insert("e1", bounds.Point{}, 0, nil, nil))
	err := tr.Insert("e1", bounds.Point{}, 0, nil, nil)
	require.True(t, errors.Is(err, spatialtree.ErrDuplicateID))
}

func TestTree_Insert_LevelOutOfRange(t *testing.T) {
	tr := memoctree.New(3)
	err := tr.Insert("e1", bounds.Point{}, 4, nil, nil)
	require.True(t, errors.Is(err, spatialtree.ErrLevelOutOfRange))
}

func TestTree_EntitiesWithPositions_SortedByID(t *testing.T) {
	tr := memoctree.New(0)
	require.NoError(t, tr.Insert(ids.EntityId("b"), bounds.Point{}, 0, nil, nil))
	require.NoError(t, tr.Insert(ids.EntityId("a"), bounds.Point{}, 0, nil, nil))

	out := tr.EntitiesWithPositions()
	require.Len(t, out, 2)
	require.Equal(t, ids.EntityId("a"), out[0].ID)
	require.Equal(t, ids.EntityId("b"), out[1].ID)
}
