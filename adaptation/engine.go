package adaptation

import (
	"context"
	"sync"
	"time"

	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/density"
	"github.com/Hellblazer/Luciferase-sub010/events"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// Logger is the subset of *zap.SugaredLogger the engine needs to report
// non-fatal subdivision/merge failures: any individual failure is logged
// and the engine continues. The zero value (nil) is legal; the engine
// no-ops instead of logging.
type Logger interface {
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// Engine is the density-driven adaptation engine. It owns no entity data
// itself: it reads density.Tracker regions, mutates the forest's tree
// table through forest.Forest, and asks a spatialtree.Factory for fresh
// per-tree indexes during subdivision.
type Engine struct {
	Forest  *forest.Forest
	Factory spatialtree.Factory
	Density *density.Tracker
	Events  *events.Bus
	Logger  Logger

	// SyncGhosts is invoked after any structural change (subdivision,
	// merge) whose tree boundaries may have shifted, to trigger ghost
	// updates across the forest. Left nil, it is skipped — the top-level
	// façade wires this to ghost.Manager.SynchronizeAllGhostZones.
	SyncGhosts func()

	cfgMu sync.RWMutex
	cfg   Config

	urgent chan ids.TreeId

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine constructs an Engine over forest f, using factory to build
// child trees during subdivision.
func NewEngine(f *forest.Forest, factory spatialtree.Factory, tracker *density.Tracker, bus *events.Bus, cfg Config) *Engine {
	return &Engine{
		Forest:  f,
		Factory: factory,
		Density: tracker,
		Events:  bus,
		cfg:     cfg,
		urgent:  make(chan ids.TreeId, 64),
	}
}

// Config returns a copy of the engine's current configuration.
func (e *Engine) Config() Config {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()

	return e.cfg
}

// SetConfig replaces the engine's configuration.
func (e *Engine) SetConfig(cfg Config) {
	e.cfgMu.Lock()
	defer e.cfgMu.Unlock()
	e.cfg = cfg
}

func (e *Engine) logWarn(msg string, kv ...any) {
	if e.Logger != nil {
		e.Logger.Warnw(msg, kv...)
	}
}

func (e *Engine) logError(msg string, kv ...any) {
	if e.Logger != nil {
		e.Logger.Errorw(msg, kv...)
	}
}

// Start launches the background scheduler: a ticker firing
// PerformDensityAnalysis every cfg.BackgroundInterval, and a channel drain
// processing urgent subdivisions enqueued by CheckAdaptationTriggers.
// Calling Start twice without an intervening Stop is a no-op.
func (e *Engine) Start(ctx context.Context) {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	interval := e.Config().BackgroundInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	e.wg.Add(1)
	go e.runLoop(runCtx, interval)
}

func (e *Engine) runLoop(ctx context.Context, interval time.Duration) {
	defer e.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.PerformDensityAnalysis(nowMillis())
		case treeID := <-e.urgent:
			if err := e.ConsiderSubdivision(treeID, nowMillis()); err != nil {
				e.logWarn("urgent subdivision failed", "tree", treeID, "error", err)
			}
		}
	}
}

// Stop cancels the background scheduler and waits up to 5 seconds for it
// to exit before giving up. In-flight work is allowed to finish; Stop does
// not interrupt a subdivision or merge already underway.
func (e *Engine) Stop() {
	e.runMu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.runMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

// nowMillis is the engine's injected clock for the scheduler loop, kept
// as a free function (rather than a field) so callers driving the engine
// directly in tests pass their own timestamp to PerformDensityAnalysis /
// ConsiderSubdivision instead of going through Start's ticker.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// CheckAdaptationTriggers is the urgent-case hook mutation operations call
// after every insert: when a tree's count exceeds
// 1.5*maxEntitiesPerTree, it enqueues that tree for subdivision on the
// background task rather than waiting for the next density-analysis
// cycle. A full urgent queue silently drops the request; the next
// scheduled cycle will still pick the tree up as high-density.
func (e *Engine) CheckAdaptationTriggers(treeID ids.TreeId, count int) {
	cfg := e.Config()
	if !cfg.EnableAutoSubdivision || cfg.MaxEntitiesPerTree <= 0 {
		return
	}
	if float64(count) <= 1.5*float64(cfg.MaxEntitiesPerTree) {
		return
	}
	select {
	case e.urgent <- treeID:
	default:
	}
}

// PerformDensityAnalysis classifies every tracked region as high-density
// (count > max or density > threshold) or low-density (count < min and
// density < 0.1*threshold), then subdivides the former and attempts to
// merge the latter.
func (e *Engine) PerformDensityAnalysis(nowMs int64) {
	cfg := e.Config()
	if !cfg.EnableAutoSubdivision && !cfg.EnableAutoMerging {
		return
	}

	var lowDensity []ids.TreeId
	for treeID, region := range e.Density.Regions() {
		count := region.EntityCount()
		dens := region.Density()

		high := (cfg.MaxEntitiesPerTree > 0 && int(count) > cfg.MaxEntitiesPerTree) ||
			(cfg.DensityThreshold > 0 && dens > cfg.DensityThreshold)
		low := cfg.MinEntitiesPerTree > 0 && int(count) < cfg.MinEntitiesPerTree &&
			dens < 0.1*cfg.DensityThreshold

		switch {
		case high && cfg.EnableAutoSubdivision:
			if err := e.ConsiderSubdivision(treeID, nowMs); err != nil {
				e.logWarn("subdivision skipped", "tree", treeID, "error", err)
			}
		case low:
			lowDensity = append(lowDensity, treeID)
		}
	}

	if len(lowDensity) > 0 && cfg.EnableAutoMerging {
		e.ConsiderMerging(lowDensity, nowMs)
	}
}

// resolveStrategy picks the concrete strategyFn for cfg.SubdivisionStrategy,
// resolving ADAPTIVE's axis choice up front so the tag recorded on the
// TreeSubdivided event names the strategy actually used.
func resolveStrategy(kind StrategyKind, entities []spatialtree.EntityPosition) (strategyFn, string) {
	switch kind {
	case BinaryX:
		return strategyBinaryX, "BINARY_X"
	case BinaryY:
		return strategyBinaryY, "BINARY_Y"
	case BinaryZ:
		return strategyBinaryZ, "BINARY_Z"
	case Adaptive:
		// Same choice strategyAdaptive makes: the axis whose variance
		// exceeds both others by more than varianceEpsilon, else OCTANT.
		vx, vy, vz := positionVariance(entities)
		switch {
		case vx-vy > varianceEpsilon && vx-vz > varianceEpsilon:
			return strategyBinaryX, "BINARY_X"
		case vy-vx > varianceEpsilon && vy-vz > varianceEpsilon:
			return strategyBinaryY, "BINARY_Y"
		case vz-vx > varianceEpsilon && vz-vy > varianceEpsilon:
			return strategyBinaryZ, "BINARY_Z"
		}

		return strategyOctant, "OCTANT"
	case KMeans:
		return strategyKMeans, "K_MEANS"
	case Tetrahedral:
		return strategyTetrahedral, "TETRAHEDRAL"
	default:
		return strategyOctant, "OCTANT"
	}
}

// ConsiderSubdivision runs the full subdivision path for treeID: volume
// guard, strategy resolution, the CAS subdivision gate, child
// construction, entity redistribution, hierarchy linking, and event
// emission.
func (e *Engine) ConsiderSubdivision(treeID ids.TreeId, nowMs int64) error {
	node, ok := e.Forest.GetTree(treeID)
	if !ok {
		return ErrTreeNotFound
	}

	treeBounds, hasTreeBounds := node.TreeBounds()
	gb, hasGlobalBounds := node.GlobalBounds()
	if !hasTreeBounds {
		if !hasGlobalBounds {
			return ErrGeometry
		}
		treeBounds = bounds.NewCubicBounds(gb)
	}

	cfg := e.Config()
	volume := treeBounds.Volume()
	if volume <= 8*cfg.MinTreeVolume {
		return ErrVolumeTooSmall
	}

	if !node.TryMarkSubdivided() {
		return nil // lost the CAS race; another caller is already subdividing
	}

	entities := node.Index.EntitiesWithPositions()
	strategy, tag := resolveStrategy(cfg.SubdivisionStrategy, entities)
	specs, err := strategy(treeBounds, entities, cfg)
	if err != nil {
		return err
	}

	groups := assignEntities(specs, entities)

	childIDs := make([]ids.TreeId, 0, len(specs))
	var childShape bounds.Shape
	for i, spec := range specs {
		child := e.createChildTreeWithBounds(node, spec.Bounds, i, nowMs)
		childShape = spec.Bounds.Shape
		childIDs = append(childIDs, child.ID())
		e.redistributeGroup(node, child, groups[i], nowMs)
	}

	for _, childID := range childIDs {
		node.AddChildTreeID(childID)
	}

	if e.Events != nil {
		e.Events.Emit(events.Event{
			Kind:        events.TreeSubdivided,
			TimestampMs: nowMs,
			ForestID:    e.Forest.ID,
			TreeID:      treeID,
			ChildIDs:    childIDs,
			StrategyTag: tag,
			ChildShape:  childShape,
		})
	}

	if e.SyncGhosts != nil {
		e.SyncGhosts()
	}

	return nil
}

// redistributeGroup moves one child's assigned entities from the parent's
// index into the child's, re-inserting at level 0. A failed individual
// insert is logged and skipped; it does not abort the rest of the group.
func (e *Engine) redistributeGroup(parent, child *forest.TreeNode, group []spatialtree.EntityPosition, nowMs int64) {
	for _, ep := range group {
		content, _ := parent.Index.Get(ep.ID)
		if err := child.Index.Insert(ep.ID, ep.Position, 0, content, nil); err != nil {
			e.logError("redistribution insert failed", "entity", ep.ID, "child", child.ID(), "error", err)

			continue
		}
		parent.Index.Remove(ep.ID)
		child.ExpandGlobalBoundsPoint(ep.Position)

		if e.Density != nil {
			oldVolume, newVolume := 0.0, 0.0
			if gb, ok := parent.GlobalBounds(); ok {
				oldVolume = gb.Volume()
			}
			if gb, ok := child.GlobalBounds(); ok {
				newVolume = gb.Volume()
			}
			e.Density.TrackMove(parent.ID(), child.ID(), ep.ID, ep.Position, oldVolume, newVolume, nowMs)
		}
	}
}

// createChildTreeWithBounds instantiates a fresh SpatialTree matching
// childBounds' shape, registers it with the forest, and links it under
// parent.
func (e *Engine) createChildTreeWithBounds(parent *forest.TreeNode, childBounds bounds.TreeBounds, childIndex int, nowMs int64) *forest.TreeNode {
	index := e.Factory.NewTree(childBounds)
	child := e.Forest.AddTree(index, forest.AddTreeOptions{Name: string(parent.ID())})
	child.SetTreeBounds(childBounds)
	child.ExpandGlobalBounds(childBounds.AABBProjection())
	child.SetHierarchyLevel(parent.HierarchyLevel() + 1)
	child.SetParentTreeID(parent.ID())
	child.SetMetadata("parentId", parent.ID())
	child.SetMetadata("childIndex", childIndex)
	child.SetMetadata("createdMs", nowMs)

	if e.Events != nil {
		e.Events.Emit(events.Event{
			Kind:        events.TreeAdded,
			TimestampMs: nowMs,
			ForestID:    e.Forest.ID,
			TreeID:      child.ID(),
			Bounds:      childBounds,
			Shape:       childBounds.Shape,
			ParentID:    parent.ID(),
			HasParent:   true,
		})
	}

	return child
}

// ConsiderMerging runs a simple pairwise scan of the low-density list,
// merging the first adjacent pair found for each unmerged tree.
func (e *Engine) ConsiderMerging(lowDensityIDs []ids.TreeId, nowMs int64) {
	cfg := e.Config()
	merged := make(map[ids.TreeId]bool, len(lowDensityIDs))

	for i, id1 := range lowDensityIDs {
		if merged[id1] {
			continue
		}
		node1, ok := e.Forest.GetTree(id1)
		if !ok {
			continue
		}
		bounds1, ok := node1.GlobalBounds()
		if !ok {
			continue
		}

		for j := i + 1; j < len(lowDensityIDs); j++ {
			id2 := lowDensityIDs[j]
			if merged[id2] {
				continue
			}
			node2, ok := e.Forest.GetTree(id2)
			if !ok {
				continue
			}
			bounds2, ok := node2.GlobalBounds()
			if !ok {
				continue
			}

			if !areAdjacent(bounds1, bounds2, cfg.MergeAdjacencyGap) {
				continue
			}
			if err := e.mergeTrees(node1, node2, nowMs); err != nil {
				e.logWarn("merge failed", "tree1", id1, "tree2", id2, "error", err)

				continue
			}
			merged[id1] = true
			merged[id2] = true

			break
		}
	}
}

// areAdjacent reports whether a and b are within gap on every axis.
func areAdjacent(a, b bounds.AABB, gap float64) bool {
	dx, dy, dz := a.AxisSeparation(b)

	return dx <= gap && dy <= gap && dz <= gap
}

// mergeTrees creates a new tree of the same kind as tree1 that replaces
// both sources, owning the union of their entities.
func (e *Engine) mergeTrees(tree1, tree2 *forest.TreeNode, nowMs int64) error {
	bounds1, _ := tree1.GlobalBounds()
	bounds2, _ := tree2.GlobalBounds()
	union := bounds1.ExpandToCover(bounds2)

	tb1, hasTB1 := tree1.TreeBounds()
	newBounds := bounds.NewCubicBounds(union)
	if hasTB1 {
		newBounds = bounds.TreeBounds{Shape: tb1.Shape, Cubic: union}
	}

	index := e.Factory.NewTree(newBounds)
	merged := e.Forest.AddTree(index, forest.AddTreeOptions{Name: "merged"})
	merged.SetTreeBounds(newBounds)
	merged.ExpandGlobalBounds(union)
	merged.SetHierarchyLevel(tree1.HierarchyLevel())

	for _, source := range [2]*forest.TreeNode{tree1, tree2} {
		for _, ep := range source.Index.EntitiesWithPositions() {
			content, _ := source.Index.Get(ep.ID)
			if err := merged.Index.Insert(ep.ID, ep.Position, 0, content, nil); err != nil {
				e.logError("merge insert failed", "entity", ep.ID, "error", err)

				continue
			}
			if e.Density != nil {
				oldVolume := 0.0
				if gb, ok := source.GlobalBounds(); ok {
					oldVolume = gb.Volume()
				}
				e.Density.TrackMove(source.ID(), merged.ID(), ep.ID, ep.Position, oldVolume, union.Volume(), nowMs)
			}
		}
	}

	e.Forest.RemoveTree(tree1.ID())
	e.Forest.RemoveTree(tree2.ID())
	if e.Density != nil {
		e.Density.RemoveRegion(tree1.ID())
		e.Density.RemoveRegion(tree2.ID())
	}

	if e.Events != nil {
		e.Events.Emit(events.Event{
			Kind:        events.TreesMerged,
			TimestampMs: nowMs,
			ForestID:    e.Forest.ID,
			SourceIDs:   []ids.TreeId{tree1.ID(), tree2.ID()},
			MergedID:    merged.ID(),
		})
	}
	if e.SyncGhosts != nil {
		e.SyncGhosts()
	}

	return nil
}
