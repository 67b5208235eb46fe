// Package schemacache memoizes schema derivation per Go type.
//
// A Cache maps an [Identifier] to a [schema.Value] computed at most once per
// process. Concurrent callers asking for the same Identifier share a single
// in-flight computation (golang.org/x/sync/singleflight); the first value
// inserted for an Identifier wins and is never replaced. Failures are not
// cached, so a later call retries the computation. Entries are never evicted:
// Identifiers are bounded by the number of declared types in the program.
//
// Tests should construct their own Cache with [New]; production code can
// share the lazily initialized process cache returned by [Default].
package schemacache

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/schema"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc derives the schema for one Identifier.
// It must not call GetOrCompute for the same Identifier.
type ComputeFunc func() (schema.Value, error)

// Stats is a snapshot of cache activity.
type Stats struct {
	// Hits counts lookups answered from the cache
	Hits int64
	// Misses counts lookups that had to wait for a computation
	Misses int64
	// Computations counts invocations of a ComputeFunc
	Computations int64
	// Failures counts ComputeFunc invocations that returned an error or panicked
	Failures int64
	// Entries is the number of cached schemas
	Entries int
}

// Cache is a concurrent, insert-only schema cache. The zero value is not
// usable; create one with New.
type Cache struct {
	mu      sync.RWMutex
	entries map[Identifier]schema.Value
	keys    map[Identifier]string

	group   singleflight.Group
	logger  logging.Logger
	metrics *metrics

	hits         atomic.Int64
	misses       atomic.Int64
	computations atomic.Int64
	failures     atomic.Int64
}

// New creates an empty Cache.
func New(opts ...Option) (*Cache, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("schemacache: invalid options: %w", err)
	}
	c := &Cache{
		entries: make(map[Identifier]schema.Value),
		keys:    make(map[Identifier]string),
		logger:  cfg.logger,
	}
	if cfg.registry != nil {
		c.metrics = newMetrics(cfg.registry)
	}
	return c, nil
}

var defaultCache = sync.OnceValue(func() *Cache {
	c, _ := New()
	return c
})

// Default returns the process-wide cache, creating it on first use.
func Default() *Cache {
	return defaultCache()
}

// GetOrCompute returns the cached schema for id, invoking compute if none is
// cached yet. Concurrent calls for the same id share one computation and all
// observe the same value. An error from compute is returned to every waiting
// caller and is not cached.
func (c *Cache) GetOrCompute(id Identifier, compute ComputeFunc) (schema.Value, error) {
	if id.IsZero() {
		return schema.Value{}, &asyncerrors.ConfigError{Option: "Identifier", Message: "identifier wraps no type"}
	}
	if compute == nil {
		return schema.Value{}, &asyncerrors.ConfigError{Option: "compute", Value: id.DisplayName(), Message: "compute function must not be nil"}
	}

	if v, ok := c.Get(id); ok {
		c.hits.Add(1)
		c.observeLookup("hit")
		return v, nil
	}
	c.misses.Add(1)
	c.observeLookup("miss")

	result, err, _ := c.group.Do(c.keyFor(id), func() (any, error) {
		// another flight may have finished between Get and Do
		if v, ok := c.Get(id); ok {
			return v, nil
		}
		v, err := c.compute(id, compute)
		if err != nil {
			return nil, err
		}
		return c.insert(id, v), nil
	})
	if err != nil {
		return schema.Value{}, err
	}
	return result.(schema.Value), nil
}

// Get returns the cached schema for id without computing it.
func (c *Cache) Get(id Identifier) (schema.Value, bool) {
	c.mu.RLock()
	v, ok := c.entries[id]
	c.mu.RUnlock()
	return v, ok
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of cache activity.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Computations: c.computations.Load(),
		Failures:     c.failures.Load(),
		Entries:      c.Len(),
	}
}

// keyFor returns the singleflight key for id. Keys are assigned per type,
// since reflect.Type.String() is not unique across packages.
func (c *Cache) keyFor(id Identifier) string {
	c.mu.RLock()
	key, ok := c.keys[id]
	c.mu.RUnlock()
	if ok {
		return key
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if key, ok := c.keys[id]; ok {
		return key
	}
	key = strconv.Itoa(len(c.keys))
	c.keys[id] = key
	return key
}

// compute runs fn, converting a panic into an error so a pathological
// derivation fails instead of taking down every waiting caller.
func (c *Cache) compute(id Identifier, fn ComputeFunc) (v schema.Value, err error) {
	c.computations.Add(1)
	if c.metrics != nil {
		c.metrics.computations.Inc()
	}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("computation panicked: %v", r)
		}
		if err != nil {
			err = derivationError(id, err)
		}
		elapsed := time.Since(start)
		if c.metrics != nil {
			c.metrics.computeDuration.Observe(elapsed.Seconds())
		}
		if err != nil {
			c.failures.Add(1)
			if c.metrics != nil {
				c.metrics.failures.Inc()
			}
			c.logger.Debug("schema computation failed", "type", id.DisplayName(), "error", err)
			return
		}
		c.logger.Debug("schema computed", "type", id.DisplayName(), "duration", elapsed)
	}()

	return fn()
}

// insert stores v unless a value is already cached for id, and returns the
// value that is cached afterwards.
func (c *Cache) insert(id Identifier, v schema.Value) schema.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[id]; ok {
		return existing
	}
	c.entries[id] = v
	if c.metrics != nil {
		c.metrics.entries.Set(float64(len(c.entries)))
	}
	return v
}

func (c *Cache) observeLookup(result string) {
	if c.metrics != nil {
		c.metrics.lookups.WithLabelValues(result).Inc()
	}
}

// derivationError attributes err to id. Errors already carrying a
// SchemaDerivationError are returned unchanged.
func derivationError(id Identifier, err error) error {
	var derr *asyncerrors.SchemaDerivationError
	if errors.As(err, &derr) {
		return err
	}
	return &asyncerrors.SchemaDerivationError{TypeName: id.DisplayName(), Cause: err}
}
