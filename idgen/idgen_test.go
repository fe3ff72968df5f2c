package idgen_test

import (
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/idgen"
	"github.com/stretchr/testify/require"
)

func TestCounterEntityIdGenerator_Monotonic(t *testing.T) {
	g := idgen.NewCounterEntityIdGenerator("e")
	a := g.GenerateID()
	b := g.GenerateID()
	require.NotEqual(t, a, b)
	require.Equal(t, "e1", string(a))
	require.Equal(t, "e2", string(b))
}

func TestUUIDEntityIdGenerator_Unique(t *testing.T) {
	g := idgen.UUIDEntityIdGenerator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := string(g.GenerateID())
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestTreeIdGenerator_NamedAndDefault(t *testing.T) {
	var g idgen.TreeIdGenerator
	require.Equal(t, "root_1", string(g.Next("root")))
	require.Equal(t, "tree_2", string(g.Next("")))
}
