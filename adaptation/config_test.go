package adaptation_test

import (
	"testing"

	"github.com/Hellblazer/Luciferase-sub010/adaptation"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := adaptation.DefaultConfig()
	cfg.SubdivisionStrategy = adaptation.KMeans

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Contains(t, string(out), "K_MEANS")

	var decoded adaptation.Config
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Equal(t, cfg.SubdivisionStrategy, decoded.SubdivisionStrategy)
	require.Equal(t, cfg.MaxEntitiesPerTree, decoded.MaxEntitiesPerTree)
}

func TestParseStrategyKind_Unknown(t *testing.T) {
	_, err := adaptation.ParseStrategyKind("NOT_A_STRATEGY")
	require.Error(t, err)
}
