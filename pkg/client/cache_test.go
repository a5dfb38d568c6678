package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCache_FillAndGet(t *testing.T) {
	c := NewQueryCache()

	gen := c.Begin("customers")
	require.True(t, c.Fill("customers", gen, []string{"a", "b"}))

	data, ok, stale := c.Get("customers")
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, []string{"a", "b"}, data)
}

func TestQueryCache_InvalidateMarksStale(t *testing.T) {
	c := NewQueryCache()

	gen := c.Begin("customers")
	c.Fill("customers", gen, "list")
	gen = c.Begin("customers/42")
	c.Fill("customers/42", gen, "detail")

	hit := c.Invalidate("customers")
	assert.Equal(t, 2, hit)

	_, ok, stale := c.Get("customers")
	assert.True(t, ok)
	assert.True(t, stale)
	_, ok, stale = c.Get("customers/42")
	assert.True(t, ok)
	assert.True(t, stale)
}

func TestQueryCache_PrefixIsSegmentAware(t *testing.T) {
	c := NewQueryCache()

	g := c.Begin("customers")
	c.Fill("customers", g, 1)
	g = c.Begin("customers-archive")
	c.Fill("customers-archive", g, 2)

	assert.Equal(t, 1, c.Invalidate("customers"))

	_, _, stale := c.Get("customers-archive")
	assert.False(t, stale)
}

func TestQueryCache_StaleFillDiscarded(t *testing.T) {
	c := NewQueryCache()

	// two overlapping fetches for the same key: the slower, older response
	// must not overwrite the newer one
	gen1 := c.Begin("bookings")
	gen2 := c.Begin("bookings")

	require.True(t, c.Fill("bookings", gen2, "newer"))
	assert.False(t, c.Fill("bookings", gen1, "older"))

	data, ok, _ := c.Get("bookings")
	require.True(t, ok)
	assert.Equal(t, "newer", data)
}

func TestQueryCache_InvalidateDiscardsInFlightFill(t *testing.T) {
	c := NewQueryCache()

	gen := c.Begin("coupons")
	c.Invalidate("coupons")

	assert.False(t, c.Fill("coupons", gen, "from before the invalidation"))
	_, ok, _ := c.Get("coupons")
	assert.False(t, ok)
}

func TestQueryCache_SubscribersNotified(t *testing.T) {
	c := NewQueryCache()

	var events []Event
	cancel := c.Subscribe("levels", func(ev Event) { events = append(events, ev) })

	gen := c.Begin("levels")
	c.Fill("levels", gen, "x")
	c.Invalidate("levels")

	require.Len(t, events, 2)
	assert.False(t, events[0].Stale)
	assert.True(t, events[1].Stale)

	cancel()
	c.Invalidate("levels")
	assert.Len(t, events, 2)
}
