package client

import (
	"strings"
	"sync"
)

// Event notifies a subscriber that its key changed.
type Event struct {
	Key string
	// Stale is true when the key was invalidated and needs a refetch,
	// false when fresh data just landed.
	Stale bool
}

type cacheEntry struct {
	data       any
	hasData    bool
	stale      bool
	generation uint64
	subs       map[int]func(Event)
}

// QueryCache is a key-value cache for query results with prefix
// invalidation and subscriber notification. Keys are hierarchical strings
// like "customers" or "customers/42", so invalidating "customers" hits the
// collection and every detail under it.
//
// Each key carries a generation counter. A fetch takes a token with Begin
// and commits with Fill; if the generation moved on in between (a newer
// fetch started, or the key was invalidated) the fill is discarded. That
// makes "latest request wins" hold even when responses arrive out of order.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	nextSub int
}

func NewQueryCache() *QueryCache {
	return &QueryCache{entries: map[string]*cacheEntry{}}
}

func (c *QueryCache) entry(key string) *cacheEntry {
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{subs: map[int]func(Event){}}
		c.entries[key] = e
	}
	return e
}

// Get returns the cached value for key. stale reports whether the value
// has been invalidated since it was filled.
func (c *QueryCache) Get(key string) (data any, ok, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[key]
	if !found || !e.hasData {
		return nil, false, false
	}
	return e.data, true, e.stale
}

// Begin starts a fetch for key and returns the generation token the
// eventual Fill must present.
func (c *QueryCache) Begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entry(key)
	e.generation++
	return e.generation
}

// Fill commits fetched data. It reports false, and stores nothing, when the
// token is no longer current.
func (c *QueryCache) Fill(key string, gen uint64, data any) bool {
	c.mu.Lock()
	e := c.entry(key)
	if gen != e.generation {
		c.mu.Unlock()
		return false
	}
	e.data = data
	e.hasData = true
	e.stale = false
	subs := snapshot(e.subs)
	c.mu.Unlock()

	notify(subs, Event{Key: key})
	return true
}

// Invalidate marks every key with the prefix stale, bumps generations so
// in-flight fills are discarded, and notifies subscribers. It returns the
// number of keys hit.
func (c *QueryCache) Invalidate(prefix string) int {
	c.mu.Lock()
	type hit struct {
		key  string
		subs []func(Event)
	}
	var hits []hit
	for key, e := range c.entries {
		if !matchesPrefix(key, prefix) {
			continue
		}
		e.stale = true
		e.generation++
		hits = append(hits, hit{key: key, subs: snapshot(e.subs)})
	}
	c.mu.Unlock()

	for _, h := range hits {
		notify(h.subs, Event{Key: h.key, Stale: true})
	}
	return len(hits)
}

// Subscribe registers fn for changes to key. The returned cancel function
// removes the subscription.
func (c *QueryCache) Subscribe(key string, fn func(Event)) (cancel func()) {
	c.mu.Lock()
	e := c.entry(key)
	id := c.nextSub
	c.nextSub++
	e.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(e.subs, id)
		c.mu.Unlock()
	}
}

// matchesPrefix treats keys as path segments: prefix "customers" matches
// "customers" and "customers/42" but not "customers-archive".
func matchesPrefix(key, prefix string) bool {
	if key == prefix {
		return true
	}
	return strings.HasPrefix(key, prefix+"/")
}

func snapshot(subs map[int]func(Event)) []func(Event) {
	out := make([]func(Event), 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
