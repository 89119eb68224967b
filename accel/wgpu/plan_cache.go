package wgpu

import (
	"hash/fnv"
	"sync"

	"github.com/MrGo2008/torch/internal/cache"
)

// planEntry is one cached plan. refs counts callers currently holding the
// module; evicted marks an entry the LRU dropped while still pinned, whose
// module is destroyed on the last unpin instead. Both fields are protected
// by the owning planCache mutex.
type planEntry[M any] struct {
	module  M
	refs    int
	evicted bool
}

// planCache memoizes compiled kernel plans by source hash. The module type
// is a parameter so the cache logic is testable without a device.
//
// Handed-out modules are pinned: eviction (capacity pressure, resize, clear)
// defers destruction until every holder has released its pin, so a caller
// never observes a destroyed plan. Misses on the same key are serialized;
// the first compile wins and every concurrent caller receives it.
type planCache[M any] struct {
	mu      sync.Mutex
	lru     *cache.LRU[uint64, *planEntry[M]]
	compile func(source string) (M, error)
	destroy func(M)
}

// newPlanCache creates a plan cache with the given capacity. compile builds
// a plan from kernel source on a miss; destroy releases a dropped plan once
// it is unpinned.
func newPlanCache[M any](capacity int, compile func(string) (M, error), destroy func(M)) *planCache[M] {
	return &planCache[M]{
		lru:     cache.New[uint64, *planEntry[M]](capacity),
		compile: compile,
		destroy: destroy,
	}
}

// lookup returns the plan for source, compiling and caching it on a miss,
// and pins it. The module stays valid until the caller runs the returned
// release function; release must be called exactly once.
func (c *planCache[M]) lookup(source string) (M, func(), error) {
	key := sourceKey(source)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.lru.Get(key); ok {
		return c.pinLocked(e), c.releaseFunc(e), nil
	}

	// Compiling under the lock serializes duplicate misses: the first
	// compile wins and later callers hit the cached entry.
	m, err := c.compile(source)
	if err != nil {
		var zero M
		return zero, nil, err
	}
	e := &planEntry[M]{module: m}
	c.lru.Put(key, e, c.dropLocked)
	return c.pinLocked(e), c.releaseFunc(e), nil
}

// pinLocked takes a reference on an entry. Caller holds c.mu.
func (c *planCache[M]) pinLocked(e *planEntry[M]) M {
	e.refs++
	return e.module
}

// releaseFunc builds the unpin closure handed to lookup callers.
func (c *planCache[M]) releaseFunc(e *planEntry[M]) func() {
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		e.refs--
		if e.refs == 0 && e.evicted {
			c.destroy(e.module)
		}
	}
}

// dropLocked is the LRU eviction callback. All LRU mutations happen under
// c.mu, so the entry fields are stable here. A pinned entry is only marked;
// its module is destroyed by the last release instead.
func (c *planCache[M]) dropLocked(e *planEntry[M]) {
	if e.refs > 0 {
		e.evicted = true
		return
	}
	c.destroy(e.module)
}

func (c *planCache[M]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *planCache[M]) maxSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Cap()
}

func (c *planCache[M]) resize(capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Resize(capacity)
}

func (c *planCache[M]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
}

// sourceKey hashes kernel source with FNV-1a.
func sourceKey(source string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(source))
	return h.Sum64()
}
