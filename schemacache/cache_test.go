package schemacache

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderCreated struct {
	ID string `json:"id"`
}

type orderShipped struct {
	ID string `json:"id"`
}

func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func stringSchema() (schema.Value, error) {
	return schema.MustNew(map[string]any{"type": "string"}), nil
}

func TestGetOrComputeComputesOnce(t *testing.T) {
	c := newTestCache(t)
	id := IdentifierOf[orderCreated]()

	var calls int
	compute := func() (schema.Value, error) {
		calls++
		return schema.MustNew(map[string]any{"type": "object"}), nil
	}

	first, err := c.GetOrCompute(id, compute)
	require.NoError(t, err)
	for range 5 {
		again, err := c.GetOrCompute(id, compute)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())

	stats := c.Stats()
	assert.Equal(t, int64(5), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Computations)
	assert.Zero(t, stats.Failures)
	assert.Equal(t, 1, stats.Entries)
}

func TestGetOrComputeConcurrent(t *testing.T) {
	c := newTestCache(t)
	id := IdentifierOf[orderCreated]()

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() (schema.Value, error) {
		calls.Add(1)
		<-release
		return schema.MustNew(map[string]any{"type": "object", "title": "orderCreated"}), nil
	}

	const workers = 64
	results := make([]schema.Value, workers)
	errs := make([]error, workers)

	var started, done sync.WaitGroup
	started.Add(workers)
	done.Add(workers)
	for i := range workers {
		go func() {
			defer done.Done()
			started.Done()
			results[i], errs[i] = c.GetOrCompute(id, compute)
		}()
	}
	started.Wait()
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := range workers {
		require.NoError(t, errs[i])
		assert.True(t, results[0].Equal(results[i]), "worker %d observed a different value", i)
	}
	assert.Equal(t, 1, c.Len())
}

func TestGetOrComputeConcurrentDistinctIdentifiers(t *testing.T) {
	c := newTestCache(t)
	ids := []Identifier{
		IdentifierOf[orderCreated](),
		IdentifierOf[orderShipped](),
		IdentifierOf[string](),
		IdentifierOf[[]int](),
	}

	var wg sync.WaitGroup
	for range 16 {
		for _, id := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := c.GetOrCompute(id, func() (schema.Value, error) {
					return schema.New(map[string]any{"title": id.DisplayName()})
				})
				assert.NoError(t, err)
				title, ok := v.Lookup("title")
				assert.True(t, ok)
				assert.Equal(t, `"`+id.DisplayName()+`"`, title.String())
			}()
		}
	}
	wg.Wait()

	assert.Equal(t, len(ids), c.Len())
	assert.Equal(t, int64(len(ids)), c.Stats().Computations)
}

func TestGetOrComputeFailureNotCached(t *testing.T) {
	c := newTestCache(t)
	id := IdentifierOf[orderCreated]()
	boom := errors.New("unsupported field type")

	_, err := c.GetOrCompute(id, func() (schema.Value, error) {
		return schema.Value{}, boom
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, asyncerrors.ErrSchemaDerivation)
	var derivErr *asyncerrors.SchemaDerivationError
	require.ErrorAs(t, err, &derivErr)
	assert.Equal(t, "schemacache.orderCreated", derivErr.TypeName)
	_, cached := c.Get(id)
	assert.False(t, cached)

	v, err := c.GetOrCompute(id, stringSchema)
	require.NoError(t, err)
	assert.Equal(t, "string", v.Type())

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Computations)
	assert.Equal(t, int64(1), stats.Failures)
}

func TestGetOrComputePanicBecomesError(t *testing.T) {
	c := newTestCache(t)
	id := IdentifierOf[orderCreated]()

	_, err := c.GetOrCompute(id, func() (schema.Value, error) {
		panic("reflection blew up")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, asyncerrors.ErrSchemaDerivation)
	assert.Contains(t, err.Error(), "schemacache.orderCreated")
	assert.Contains(t, err.Error(), "reflection blew up")
	assert.Zero(t, c.Len())
}

func TestGetOrComputeInvalidInput(t *testing.T) {
	c := newTestCache(t)

	_, err := c.GetOrCompute(Identifier{}, stringSchema)
	assert.ErrorIs(t, err, asyncerrors.ErrConfig)

	_, err = c.GetOrCompute(IdentifierOf[orderCreated](), nil)
	assert.ErrorIs(t, err, asyncerrors.ErrConfig)
}

func TestSameNameDistinctTypes(t *testing.T) {
	c := newTestCache(t)

	first := func() Identifier {
		type event struct{ A int }
		return IdentifierOf[event]()
	}()
	second := func() Identifier {
		type event struct{ B string }
		return IdentifierOf[event]()
	}()
	require.Equal(t, first.DisplayName(), second.DisplayName())
	require.True(t, first != second)

	_, err := c.GetOrCompute(first, stringSchema)
	require.NoError(t, err)
	v, err := c.GetOrCompute(second, func() (schema.Value, error) {
		return schema.MustNew(map[string]any{"type": "integer"}), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "integer", v.Type())
	assert.Equal(t, 2, c.Len())
}

func TestDefault(t *testing.T) {
	assert.NotNil(t, Default())
	assert.Same(t, Default(), Default())
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestCache(t, WithMetrics(reg))
	id := IdentifierOf[orderCreated]()

	_, err := c.GetOrCompute(id, func() (schema.Value, error) { return schema.Value{}, errors.New("nope") })
	require.Error(t, err)
	_, err = c.GetOrCompute(id, stringSchema)
	require.NoError(t, err)
	_, err = c.GetOrCompute(id, stringSchema)
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.lookups.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.metrics.lookups.WithLabelValues("miss")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.metrics.computations))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.failures))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.entries))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "asynctools_schema_cache_compute_duration_seconds")
}

func TestWithMetricsNil(t *testing.T) {
	_, err := New(WithMetrics(nil))
	assert.ErrorIs(t, err, asyncerrors.ErrConfig)
}

func TestIdentifier(t *testing.T) {
	id := IdentifierOf[*orderCreated]()
	assert.False(t, id.IsZero())
	assert.Equal(t, "schemacache.orderCreated", id.DisplayName())
	assert.Equal(t, id.DisplayName(), id.String())
	assert.True(t, IdentifierOf[orderCreated]() != id)
	assert.True(t, Identifier{}.IsZero())
	assert.True(t, IdentifierOf[orderCreated]() == IdentifierFor(reflect.TypeFor[orderCreated]()))
}

func BenchmarkGetOrComputeHit(b *testing.B) {
	c, err := New()
	require.NoError(b, err)
	id := IdentifierOf[orderCreated]()
	_, err = c.GetOrCompute(id, stringSchema)
	require.NoError(b, err)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = c.GetOrCompute(id, stringSchema)
		}
	})
}
