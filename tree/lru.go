package tree

// lruEntry is a doubly-linked list node holding a key-value pair.
type lruEntry[K comparable, V any] struct {
	key   K
	value V
	prev  *lruEntry[K, V]
	next  *lruEntry[K, V]
}

// lru is a count-bounded least-recently-used map. It is not safe for
// concurrent use; NodeCache guards it.
type lru[K comparable, V any] struct {
	entries    map[K]*lruEntry[K, V]
	head       *lruEntry[K, V] // Most recently used.
	tail       *lruEntry[K, V] // Least recently used.
	maxEntries int
	evictions  int64
}

func newLRU[K comparable, V any](maxEntries int) *lru[K, V] {
	return &lru[K, V]{
		entries:    make(map[K]*lruEntry[K, V]),
		maxEntries: maxEntries,
	}
}

func (c *lru[K, V]) get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lru[K, V]) put(key K, value V) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}
	e := &lruEntry[K, V]{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)
	for len(c.entries) > c.maxEntries {
		c.evict()
	}
}

func (c *lru[K, V]) len() int {
	return len(c.entries)
}

func (c *lru[K, V]) pushFront(e *lruEntry[K, V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lru[K, V]) unlink(e *lruEntry[K, V]) {
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
	e.prev, e.next = nil, nil
}

func (c *lru[K, V]) moveToFront(e *lruEntry[K, V]) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lru[K, V]) evict() {
	victim := c.tail
	if victim == nil {
		return
	}
	c.unlink(victim)
	delete(c.entries, victim.key)
	c.evictions++
}
