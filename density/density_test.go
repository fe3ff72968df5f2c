package density_test

import (
	"sync/atomic"
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/density"
	"github.com/stretchr/testify/require"
)

func TestTracker_TrackInsertRemove(t *testing.T) {
	tr := density.NewTracker(1000, nil)
	tr.TrackInsert("t1", "e1", bounds.Point{X: 1, Y: 1, Z: 1}, 100, 1)

	region := tr.RegionFor("t1")
	require.Equal(t, int64(1), region.EntityCount())
	require.InDelta(t, 0.01, region.Density(), 1e-9)

	require.True(t, tr.TrackRemove("t1", "e1", 100, 2))
	require.Equal(t, int64(0), region.EntityCount())
}

func TestTracker_TrackMove(t *testing.T) {
	tr := density.NewTracker(1000, nil)
	tr.TrackInsert("old", "e1", bounds.Point{}, 10, 1)
	tr.TrackMove("old", "new", "e1", bounds.Point{X: 5}, 10, 20, 2)

	require.Equal(t, int64(0), tr.RegionFor("old").EntityCount())
	require.Equal(t, int64(1), tr.RegionFor("new").EntityCount())
}

func TestTracker_CheckIntervalFires(t *testing.T) {
	var fired atomic.Int64
	tr := density.NewTracker(3, func() { fired.Add(1) })

	for i := 0; i < 6; i++ {
		tr.TrackInsert("t1", "e", bounds.Point{}, 10, int64(i))
	}
	require.Equal(t, int64(2), fired.Load())
}

func TestRegion_Density_ZeroVolumeGuard(t *testing.T) {
	tr := density.NewTracker(1000, nil)
	tr.TrackInsert("t1", "e1", bounds.Point{}, 0, 1)
	require.Equal(t, float64(0), tr.RegionFor("t1").Density())
}
