package adaptation

import (
	"fmt"
	"time"
)

// StrategyKind names one of the seven subdivision strategies.
type StrategyKind int

const (
	// Octant splits a cubic tree into 8 children by bit-triple octant.
	Octant StrategyKind = iota
	// BinaryX splits at the x midplane.
	BinaryX
	// BinaryY splits at the y midplane.
	BinaryY
	// BinaryZ splits at the z midplane.
	BinaryZ
	// Adaptive picks BinaryX/Y/Z by largest per-axis position variance,
	// falling back to Octant on a tie.
	Adaptive
	// KMeans clusters entity positions into 8 groups.
	KMeans
	// Tetrahedral dispatches on the parent's TreeBounds shape: 6
	// characteristic tetrahedra for a cubic parent (Case A), or 8 Bey
	// children for a tetrahedral parent (Case B).
	Tetrahedral
)

// String implements fmt.Stringer, and is also the yaml encoding used by
// MarshalYAML/UnmarshalYAML below.
func (k StrategyKind) String() string {
	switch k {
	case Octant:
		return "OCTANT"
	case BinaryX:
		return "BINARY_X"
	case BinaryY:
		return "BINARY_Y"
	case BinaryZ:
		return "BINARY_Z"
	case Adaptive:
		return "ADAPTIVE"
	case KMeans:
		return "K_MEANS"
	case Tetrahedral:
		return "TETRAHEDRAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML implements yaml.Marshaler so Config round-trips through the
// config file as the strategy's name rather than its numeric value.
func (k StrategyKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// UnmarshalYAML implements the callback form of yaml unmarshaling
// (yaml.v2's Unmarshaler signature, which yaml.v3 still honors).
func (k *StrategyKind) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseStrategyKind(s)
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}

// ParseStrategyKind parses a config file's strategy name.
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch s {
	case "OCTANT":
		return Octant, nil
	case "BINARY_X":
		return BinaryX, nil
	case "BINARY_Y":
		return BinaryY, nil
	case "BINARY_Z":
		return BinaryZ, nil
	case "ADAPTIVE":
		return Adaptive, nil
	case "K_MEANS":
		return KMeans, nil
	case "TETRAHEDRAL":
		return Tetrahedral, nil
	default:
		return 0, fmt.Errorf("adaptation: unknown subdivision strategy %q", s)
	}
}

// Config enumerates the adaptation engine's tunables. Every field
// round-trips through YAML via gopkg.in/yaml.v3; a zero-valued Config is
// usable but disables both auto-subdivision and auto-merging.
type Config struct {
	MaxEntitiesPerTree   int           `yaml:"maxEntitiesPerTree"`
	MinEntitiesPerTree   int           `yaml:"minEntitiesPerTree"`
	DensityThreshold     float64       `yaml:"densityThreshold"`
	MinTreeVolume        float64       `yaml:"minTreeVolume"`
	MaxTreeVolume        float64       `yaml:"maxTreeVolume"`
	DensityCheckInterval uint64        `yaml:"densityCheckInterval"`
	EnableAutoSubdivision bool         `yaml:"enableAutoSubdivision"`
	EnableAutoMerging    bool          `yaml:"enableAutoMerging"`
	SubdivisionStrategy  StrategyKind  `yaml:"subdivisionStrategy"`
	BackgroundInterval   time.Duration `yaml:"backgroundInterval"`

	// MergeAdjacencyGap is the world-space gap tolerance the adjacency
	// check uses during merge consideration (see DESIGN.md Open Questions
	// for how its default was chosen).
	MergeAdjacencyGap float64 `yaml:"mergeAdjacencyGap"`

	// KMeansSeed seeds the K_MEANS strategy's random initial centers so
	// runs are reproducible in tests; zero is used as a seed like any
	// other value.
	KMeansSeed int64 `yaml:"kMeansSeed"`
}

// DefaultConfig returns sensible defaults: a 10 second background cadence,
// both auto-adaptation switches on, OCTANT strategy.
func DefaultConfig() Config {
	return Config{
		MaxEntitiesPerTree:    1000,
		MinEntitiesPerTree:    10,
		DensityThreshold:      0.01,
		MinTreeVolume:         1.0,
		MaxTreeVolume:         1e9,
		DensityCheckInterval:  100,
		EnableAutoSubdivision: true,
		EnableAutoMerging:     true,
		SubdivisionStrategy:   Octant,
		BackgroundInterval:    10 * time.Second,
		MergeAdjacencyGap:     1.0,
	}
}
