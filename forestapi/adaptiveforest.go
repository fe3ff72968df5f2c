package forestapi

import (
	"context"
	"sync"
	"time"

	"github.com/Hellblazer/Luciferase-sub010/adaptation"
	"github.com/Hellblazer/Luciferase-sub010/bounds"
	"github.com/Hellblazer/Luciferase-sub010/connectivity"
	"github.com/Hellblazer/Luciferase-sub010/density"
	"github.com/Hellblazer/Luciferase-sub010/entitymgr"
	"github.com/Hellblazer/Luciferase-sub010/events"
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ghost"
	"github.com/Hellblazer/Luciferase-sub010/ids"
	"github.com/Hellblazer/Luciferase-sub010/spatialtree"
)

// Option configures AdaptiveForest at construction.
type Option func(*config)

type config struct {
	densityCheckInterval uint64
	ghostDefaultWidth     float64
	adaptationConfig      adaptation.Config
	strategy              entitymgr.AssignmentStrategy
}

// WithDensityCheckInterval sets the density tracker's operation interval
// (passed through to density.NewTracker). New registers no OnCheckInterval
// callback on that tracker, so reaching the interval does not by itself
// re-evaluate density; re-evaluation runs through CheckAndAdapt and the
// background scheduler.
func WithDensityCheckInterval(n uint64) Option {
	return func(c *config) { c.densityCheckInterval = n }
}

// WithGhostDefaultWidth sets the default ghost-zone width used when
// EstablishGhostZone is called without an explicit width.
func WithGhostDefaultWidth(width float64) Option {
	return func(c *config) { c.ghostDefaultWidth = width }
}

// WithAdaptationConfig overrides the adaptation engine's configuration.
func WithAdaptationConfig(cfg adaptation.Config) Option {
	return func(c *config) { c.adaptationConfig = cfg }
}

// WithAssignmentStrategy overrides the entity manager's placement
// strategy (defaults to entitymgr.SpatialBounds{}).
func WithAssignmentStrategy(s entitymgr.AssignmentStrategy) Option {
	return func(c *config) { c.strategy = s }
}

// AdaptiveForest is the top-level façade: a Forest extended with background
// adaptation, ghost replication, entity tracking, and a navigable
// hierarchy. It owns the lifecycle of its adaptation engine's background
// scheduler.
type AdaptiveForest struct {
	Forest       *forest.Forest
	Connectivity *connectivity.Manager
	Density      *density.Tracker
	Ghost        *ghost.Manager
	Adaptation   *adaptation.Engine
	Entities     *entitymgr.Manager
	Events       *events.Bus

	mu               sync.Mutex
	adaptationOn     bool
	shutdownRequested bool
}

// New constructs an AdaptiveForest identified by id, using factory to
// build new SpatialTree indices for subdivision and merge.
func New(id string, factory spatialtree.Factory, opts ...Option) *AdaptiveForest {
	cfg := config{
		densityCheckInterval: 1000,
		ghostDefaultWidth:    1.0,
		adaptationConfig:     adaptation.DefaultConfig(),
		strategy:             entitymgr.SpatialBounds{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := forest.NewForest(id)
	bus := events.NewBus()
	tracker := density.NewTracker(cfg.densityCheckInterval, nil)
	engine := adaptation.NewEngine(f, factory, tracker, bus, cfg.adaptationConfig)

	af := &AdaptiveForest{
		Forest:       f,
		Connectivity: connectivity.NewManager(),
		Density:      tracker,
		Adaptation:   engine,
		Events:       bus,
	}

	af.Ghost = ghost.NewManager(cfg.ghostDefaultWidth, af.boundsLookup)
	af.Entities = entitymgr.NewManager(f, cfg.strategy)
	af.Entities.Density = tracker
	af.Entities.Ghost = af.Ghost
	af.Entities.Events = bus
	af.Entities.Adapt = engine
	engine.SyncGhosts = af.syncGhosts

	return af
}

func (af *AdaptiveForest) boundsLookup(id ids.TreeId) (bounds.AABB, bool) {
	node, ok := af.Forest.GetTree(id)
	if !ok {
		return bounds.AABB{}, false
	}

	return node.GlobalBounds()
}

func (af *AdaptiveForest) syncGhosts() {
	af.Ghost.SynchronizeAllGhostZones(af.Entities.Snapshot(), nowMillis())
}

func nowMillis() int64 { return time.Now().UnixMilli() }

// TrackEntityInsert registers a new entity through the entity manager and
// checks adaptation triggers.
func (af *AdaptiveForest) TrackEntityInsert(id ids.EntityId, content any, position bounds.Point, box *bounds.AABB) (ids.TreeId, error) {
	return af.Entities.Insert(id, content, position, box, nowMillis())
}

// TrackEntityRemove removes an entity through the entity manager.
func (af *AdaptiveForest) TrackEntityRemove(id ids.EntityId) bool {
	return af.Entities.Remove(id, nowMillis())
}

// TrackEntityMove updates an entity's position through the entity
// manager, possibly migrating it to a different tree.
func (af *AdaptiveForest) TrackEntityMove(id ids.EntityId, newPosition bounds.Point) (bool, error) {
	return af.Entities.UpdatePosition(id, newPosition, nowMillis())
}

// CheckAndAdapt runs an immediate density analysis pass and performs any
// warranted subdivision or merge, independent of the background scheduler.
func (af *AdaptiveForest) CheckAndAdapt() {
	af.Adaptation.PerformDensityAnalysis(nowMillis())
}

// SetAdaptationEnabled starts or stops the background scheduler. Starting
// when already enabled, or stopping when already disabled, is a no-op.
func (af *AdaptiveForest) SetAdaptationEnabled(enabled bool) {
	af.mu.Lock()
	defer af.mu.Unlock()

	if enabled == af.adaptationOn {
		return
	}
	af.adaptationOn = enabled
	if enabled {
		af.Adaptation.Start(context.Background())
	} else {
		af.Adaptation.Stop()
	}
}

// Shutdown stops the background scheduler (bounded 5 s wait) and marks the
// forest as shut down; in-flight foreground operations are allowed to
// finish, but further TrackEntity* calls are not rejected by this layer —
// callers are expected to stop issuing them.
func (af *AdaptiveForest) Shutdown() {
	af.mu.Lock()
	was := af.adaptationOn
	af.adaptationOn = false
	af.shutdownRequested = true
	af.mu.Unlock()

	if was {
		af.Adaptation.Stop()
	}
}

// AddEventListener registers fn on the shared event bus.
func (af *AdaptiveForest) AddEventListener(fn events.Listener) events.ListenerHandle {
	return af.Events.AddListener(fn)
}
