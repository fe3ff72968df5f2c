package cmd

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	democonfig "github.com/Hellblazer/Luciferase-sub010/cmd/forestdemo/config"
	"github.com/Hellblazer/Luciferase-sub010/events"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/forestapi"
	"github.com/Hellblazer/Luciferase-sub010/forestlog"
	"github.com/Hellblazer/Luciferase-sub010/idgen"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree/reffactory"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Seed an adaptive forest with synthetic entities and report what happened",
	RunE:  runDemo,
}

func runDemo(_ *cobra.Command, _ []string) error {
	cfg, err := democonfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := forestlog.New()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = forestlog.Sync(logger) }()

	af := forestapi.New("demo",
		reffactory.Factory{},
		forestapi.WithAdaptationConfig(cfg.Adaptation),
		forestapi.WithGhostDefaultWidth(cfg.GhostWidth),
	)
	af.Adaptation.Logger = logger

	var subdivided, merged, migrated int
	af.AddEventListener(func(ev events.Event) {
		switch ev.Kind {
		case events.TreeSubdivided:
			subdivided++
			logger.Infow("tree subdivided", "tree", ev.TreeID, "strategy", ev.StrategyTag, "children", len(ev.ChildIDs))
		case events.TreesMerged:
			merged++
			logger.Infow("trees merged", "sources", ev.SourceIDs, "into", ev.MergedID)
		case events.EntityMigrated:
			migrated++
		}
	})

	world := cfg.EntityGen.WorldSize
	root := af.Forest.AddTree(
		reffactory.Factory{}.NewTree(bounds.NewCubicBounds(bounds.AABB{
			Min: bounds.Point{},
			Max: bounds.Point{X: float32(world), Y: float32(world), Z: float32(world)},
		})),
		forest.AddTreeOptions{Name: "root"},
	)
	rootBox := bounds.AABB{Min: bounds.Point{}, Max: bounds.Point{X: float32(world), Y: float32(world), Z: float32(world)}}
	root.SetTreeBounds(bounds.NewCubicBounds(rootBox))
	root.ExpandGlobalBounds(rootBox)

	idGen := idgen.UUIDEntityIdGenerator{}
	rng := rand.New(rand.NewSource(cfg.EntityGen.Seed))

	for i := 0; i < cfg.EntityGen.Count; i++ {
		pos := bounds.Point{
			X: float32(rng.Float64() * world),
			Y: float32(rng.Float64() * world),
			Z: float32(rng.Float64() * world),
		}
		if _, err := af.TrackEntityInsert(idGen.GenerateID(), nil, pos, nil); err != nil {
			logger.Warnw("insert failed", "error", err)
		}
	}

	af.CheckAndAdapt()

	stats := af.Forest.ForestStatistics()
	fmt.Printf("trees: %d (leaves: %d)\n", stats.TreeCount, stats.LeafCount)
	fmt.Printf("entities: %d\n", stats.TotalEntities)
	fmt.Printf("max hierarchy level: %d\n", stats.MaxHierarchyLevel)
	fmt.Printf("subdivisions: %d, merges: %d, migrations: %d\n", subdivided, merged, migrated)

	af.Shutdown()

	return nil
}
