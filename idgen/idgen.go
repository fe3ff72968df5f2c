// Package idgen provides the EntityIdGenerator capability and the tree-id
// naming scheme used by forest.Forest.AddTree: a small function/interface
// type plus a handful of ready-made implementations.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// EntityIdGenerator generates unique EntityIds. Implementations must be
// safe for concurrent use.
type EntityIdGenerator interface {
	GenerateID() ids.EntityId
}

// UUIDEntityIdGenerator generates entity ids from random UUIDs. This is the
// default: collision-safe across process restarts and concurrent callers
// without any shared counter state.
type UUIDEntityIdGenerator struct{}

var _ EntityIdGenerator = UUIDEntityIdGenerator{}

// GenerateID implements EntityIdGenerator.
func (UUIDEntityIdGenerator) GenerateID() ids.EntityId {
	return ids.EntityId(uuid.NewString())
}

// CounterEntityIdGenerator generates deterministic, monotonically
// increasing entity ids of the form "{prefix}{n}". Useful for golden-file
// tests where UUID nondeterminism would be unwelcome.
type CounterEntityIdGenerator struct {
	prefix  string
	counter uint64
}

// NewCounterEntityIdGenerator constructs a deterministic generator.
func NewCounterEntityIdGenerator(prefix string) *CounterEntityIdGenerator {
	return &CounterEntityIdGenerator{prefix: prefix}
}

var _ EntityIdGenerator = (*CounterEntityIdGenerator)(nil)

// GenerateID implements EntityIdGenerator.
func (g *CounterEntityIdGenerator) GenerateID() ids.EntityId {
	n := atomic.AddUint64(&g.counter, 1)

	return ids.EntityId(fmt.Sprintf("%s%d", g.prefix, n))
}

// TreeIdGenerator names new trees: "{name}_{counter}" when a caller
// supplies a name, else "tree_{counter}".
type TreeIdGenerator struct {
	counter uint64
}

// Next returns the next tree id. When name is non-empty it is used as the
// prefix ("{name}_{counter}"); otherwise the default prefix "tree" is used.
func (g *TreeIdGenerator) Next(name string) ids.TreeId {
	n := atomic.AddUint64(&g.counter, 1)
	if name == "" {
		name = "tree"
	}

	return ids.TreeId(fmt.Sprintf("%s_%d", name, n))
}
