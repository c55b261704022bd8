package storefront

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCache_HitMiss(t *testing.T) {
	c := newTagCache()
	fetches := 0

	fetch := func() (interface{}, error) {
		fetches++
		return "value", nil
	}

	got, err := c.do("key", []Tag{TagProducts}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	got, err = c.do("key", []Tag{TagProducts}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
	assert.Equal(t, 1, fetches, "second read must be a cache hit")
}

func TestTagCache_Invalidate(t *testing.T) {
	c := newTagCache()
	fetches := 0

	fetch := func() (interface{}, error) {
		fetches++
		return fetches, nil
	}

	_, err := c.do("cart.get", []Tag{TagCart}, fetch)
	require.NoError(t, err)
	_, err = c.do("orders.list", []Tag{TagOrders}, fetch)
	require.NoError(t, err)

	c.invalidate(TagCart)

	// Cart entry refetches, orders entry is untouched.
	got, err := c.do("cart.get", []Tag{TagCart}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = c.do("orders.list", []Tag{TagOrders}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestTagCache_InvalidateMultipleTags(t *testing.T) {
	c := newTagCache()

	_, err := c.do("a", []Tag{TagCart}, func() (interface{}, error) { return 1, nil })
	require.NoError(t, err)
	_, err = c.do("b", []Tag{TagOrders}, func() (interface{}, error) { return 2, nil })
	require.NoError(t, err)
	_, err = c.do("c", []Tag{TagProducts}, func() (interface{}, error) { return 3, nil })
	require.NoError(t, err)

	c.invalidate(TagCart, TagOrders)

	refetched := 0
	refetch := func() (interface{}, error) { refetched++; return 0, nil }
	_, _ = c.do("a", []Tag{TagCart}, refetch)
	_, _ = c.do("b", []Tag{TagOrders}, refetch)
	_, _ = c.do("c", []Tag{TagProducts}, refetch)

	assert.Equal(t, 2, refetched, "only invalidated tags refetch")
}

func TestTagCache_PerEntityTag(t *testing.T) {
	c := newTagCache()
	fetches := 0
	fetch := func() (interface{}, error) { fetches++; return fetches, nil }

	_, err := c.do("products.get:3", []Tag{TagProducts, Tag("product:3")}, fetch)
	require.NoError(t, err)
	_, err = c.do("products.get:4", []Tag{TagProducts, Tag("product:4")}, fetch)
	require.NoError(t, err)

	c.invalidate(Tag("product:3"))

	_, err = c.do("products.get:3", []Tag{TagProducts, Tag("product:3")}, fetch)
	require.NoError(t, err)
	_, err = c.do("products.get:4", []Tag{TagProducts, Tag("product:4")}, fetch)
	require.NoError(t, err)

	assert.Equal(t, 3, fetches, "only the tagged entity refetches")
}

func TestTagCache_ErrorNotCached(t *testing.T) {
	c := newTagCache()
	fetches := 0

	_, err := c.do("key", []Tag{TagCart}, func() (interface{}, error) {
		fetches++
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := c.do("key", []Tag{TagCart}, func() (interface{}, error) {
		fetches++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 2, fetches, "failed fetches must not populate the cache")
}

func TestTagCache_ConcurrentReadsDeduplicated(t *testing.T) {
	c := newTagCache()

	var fetches atomic.Int32
	release := make(chan struct{})
	fetch := func() (interface{}, error) {
		fetches.Add(1)
		<-release
		return "shared", nil
	}

	const readers = 8
	results := make([]interface{}, readers)

	var started, done sync.WaitGroup
	started.Add(readers)
	done.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			v, err := c.do("products.list:/products/", []Tag{TagProducts}, fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	started.Wait()
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), fetches.Load(), "identical in-flight reads must collapse to one call")
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}
