// Package config loads the demonstration binary's settings. viper locates
// and reads the file (and layers in environment overrides); the merged
// settings are then re-marshaled through gopkg.in/yaml.v3 into Config so
// adaptation.Config's own yaml tags (and its StrategyKind
// Marshal/UnmarshalYAML) do the actual field decoding — the same path a
// hand-edited YAML file takes.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Hellblazer/Luciferase-sub010/adaptation"
)

// Config holds cmd/forestdemo's settings: the adaptation engine config
// plus demo-only knobs (how many synthetic entities to generate, the
// ghost zone width).
type Config struct {
	Adaptation adaptation.Config `yaml:"adaptation"`
	EntityGen  EntityGenConfig   `yaml:"entityGen"`
	GhostWidth float64           `yaml:"ghostWidth"`
}

// EntityGenConfig controls the synthetic workload the demo inserts.
type EntityGenConfig struct {
	Count     int     `yaml:"count"`
	WorldSize float64 `yaml:"worldSize"`
	Seed      int64   `yaml:"seed"`
}

// Load reads configuration from configPath (if non-empty) or the standard
// search locations, falling back to defaults when no file is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("forestdemo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	raw, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("remarshal settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the demo's baseline configuration.
func Default() Config {
	return Config{
		Adaptation: adaptation.DefaultConfig(),
		EntityGen: EntityGenConfig{
			Count:     200,
			WorldSize: 1000.0,
			Seed:      42,
		},
		GhostWidth: 5.0,
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("adaptation.maxEntitiesPerTree", def.Adaptation.MaxEntitiesPerTree)
	v.SetDefault("adaptation.minEntitiesPerTree", def.Adaptation.MinEntitiesPerTree)
	v.SetDefault("adaptation.densityThreshold", def.Adaptation.DensityThreshold)
	v.SetDefault("adaptation.minTreeVolume", def.Adaptation.MinTreeVolume)
	v.SetDefault("adaptation.maxTreeVolume", def.Adaptation.MaxTreeVolume)
	v.SetDefault("adaptation.densityCheckInterval", def.Adaptation.DensityCheckInterval)
	v.SetDefault("adaptation.enableAutoSubdivision", def.Adaptation.EnableAutoSubdivision)
	v.SetDefault("adaptation.enableAutoMerging", def.Adaptation.EnableAutoMerging)
	v.SetDefault("adaptation.subdivisionStrategy", def.Adaptation.SubdivisionStrategy.String())
	v.SetDefault("adaptation.backgroundInterval", def.Adaptation.BackgroundInterval)
	v.SetDefault("adaptation.mergeAdjacencyGap", def.Adaptation.MergeAdjacencyGap)
	v.SetDefault("adaptation.kMeansSeed", def.Adaptation.KMeansSeed)

	v.SetDefault("entityGen.count", def.EntityGen.Count)
	v.SetDefault("entityGen.worldSize", def.EntityGen.WorldSize)
	v.SetDefault("entityGen.seed", def.EntityGen.Seed)

	v.SetDefault("ghostWidth", def.GhostWidth)
}
