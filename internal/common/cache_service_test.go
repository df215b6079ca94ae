package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_GetOrSetLoadsOnce(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	calls := 0
	loader := func() (any, error) {
		calls++
		return "value", nil
	}

	v, err := c.GetOrSet("k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.GetOrSet("k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)
}

func TestCacheService_LoaderErrorIsNotCached(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	missing := errors.New("missing")

	_, err := c.GetOrSet("k", time.Minute, func() (any, error) { return nil, missing })
	assert.ErrorIs(t, err, missing)

	_, found := c.Get("k")
	assert.False(t, found)
}

func TestCacheService_Delete(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	c.Set("k", 1, time.Minute)
	c.Delete("k")

	_, found := c.Get("k")
	assert.False(t, found)
	assert.NoError(t, c.Close())
}
