package cache

import "sync"

// entry is a node in the intrusive LRU list. The key is stored for O(1)
// deletion from the map on eviction.
type entry[K comparable, V any] struct {
	key     K
	value   V
	onEvict func(V)
	prev    *entry[K, V]
	next    *entry[K, V]
}

// LRU is a thread-safe, capacity-bounded LRU cache.
//
// When an entry is dropped (by eviction, Clear, Resize, or replacement) its
// eviction callback runs with the stored value while the cache lock is held;
// callbacks must not call back into the cache.
//
// LRU must not be copied after creation.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	capacity int

	// Most recently used at head, least recently used at tail.
	head *entry[K, V]
	tail *entry[K, V]
}

// New creates an LRU with the given capacity. Capacity below 1 is treated
// as 1.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

// Put stores value under key. onEvict, if non-nil, runs when the entry is
// later dropped. Replacing an existing key runs the old entry's callback.
func (c *LRU[K, V]) Put(key K, value V, onEvict func(V)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		if old.onEvict != nil {
			old.onEvict(old.value)
		}
		old.value = value
		old.onEvict = onEvict
		c.moveToFront(old)
		return
	}

	e := &entry[K, V]{key: key, value: value, onEvict: onEvict}
	c.entries[key] = e
	c.pushFront(e)

	for len(c.entries) > c.capacity {
		c.evictOldest()
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cap returns the current capacity.
func (c *LRU[K, V]) Cap() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

// Resize changes the capacity, evicting least recently used entries if the
// cache now exceeds it. Capacity below 1 is treated as 1.
func (c *LRU[K, V]) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.capacity = capacity
	for len(c.entries) > c.capacity {
		c.evictOldest()
	}
}

// Clear drops every entry, running eviction callbacks.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.onEvict != nil {
			e.onEvict(e.value)
		}
	}
	c.entries = make(map[K]*entry[K, V])
	c.head = nil
	c.tail = nil
}

// evictOldest drops the least recently used entry. Caller holds the lock.
func (c *LRU[K, V]) evictOldest() {
	e := c.tail
	if e == nil {
		return
	}
	c.unlink(e)
	delete(c.entries, e.key)
	if e.onEvict != nil {
		e.onEvict(e.value)
	}
}

// pushFront inserts a new entry at the head. Caller holds the lock.
func (c *LRU[K, V]) pushFront(e *entry[K, V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

// moveToFront marks an entry most recently used. Caller holds the lock.
func (c *LRU[K, V]) moveToFront(e *entry[K, V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

// unlink removes an entry from the list. Caller holds the lock.
func (c *LRU[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
