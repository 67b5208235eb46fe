package schemagen

import (
	"testing"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/schemacache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderCreated struct {
	ID    string   `json:"id"`
	Total float64  `json:"total"`
	Items []string `json:"items,omitempty"`
}

type badPayload struct {
	Done chan struct{} `json:"done"`
}

func TestFor(t *testing.T) {
	v, err := For[orderCreated]()()
	require.NoError(t, err)

	assert.Equal(t, "object", v.Type())
	assert.Equal(t, []string{"id", "items", "total"}, v.Properties())
	assert.ElementsMatch(t, []string{"id", "total"}, v.Required())

	total, ok := v.Lookup("properties", "total")
	require.True(t, ok)
	assert.Equal(t, "number", total.Type())
}

func TestForUnsupportedType(t *testing.T) {
	_, err := For[badPayload]()()
	var derivErr *asyncerrors.SchemaDerivationError
	require.ErrorAs(t, err, &derivErr)
	assert.Equal(t, "schemagen.badPayload", derivErr.TypeName)
}

func TestDeriveUsesCache(t *testing.T) {
	cache, err := schemacache.New()
	require.NoError(t, err)

	first, err := Derive[orderCreated](cache)
	require.NoError(t, err)
	second, err := Derive[orderCreated](cache)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, int64(1), cache.Stats().Computations)
	assert.Equal(t, int64(1), cache.Stats().Hits)
}

func TestDeriveFailureIsRetried(t *testing.T) {
	cache, err := schemacache.New()
	require.NoError(t, err)

	for range 2 {
		_, err := Derive[badPayload](cache)
		require.ErrorIs(t, err, asyncerrors.ErrSchemaDerivation)
	}
	assert.Equal(t, int64(2), cache.Stats().Failures)
	assert.Zero(t, cache.Len())
}

func TestDeriveDefaultCache(t *testing.T) {
	v, err := Derive[orderCreated](nil)
	require.NoError(t, err)
	cached, ok := schemacache.Default().Get(schemacache.IdentifierOf[orderCreated]())
	require.True(t, ok)
	assert.True(t, v.Equal(cached))
}
