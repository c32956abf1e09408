package tree

import (
	"sync"
	"sync/atomic"

	"github.com/dhamidi/greenleaf/syntax"
)

// DefaultCacheSize is the number of nodes a NodeCache keeps by default.
const DefaultCacheSize = 4096

// NodeCache deduplicates green nodes. Fixed-text leaves and indentation go
// through static intern tables; everything else is hash-consed in a bounded
// LRU keyed by a structural hash. Sharing one cache across the parses of a
// document lets unchanged subtrees come back as the same allocations.
//
// A NodeCache is safe for concurrent use.
type NodeCache struct {
	mu      sync.Mutex
	entries *lru[uint64, *GreenNode]

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}

// NewNodeCache returns a cache holding at most maxEntries nodes. A
// non-positive size disables hash-consing; the static tables still apply.
func NewNodeCache(maxEntries int) *NodeCache {
	c := &NodeCache{}
	if maxEntries > 0 {
		c.entries = newLRU[uint64, *GreenNode](maxEntries)
	}
	return c
}

// Leaf returns a leaf for kind and text, shared where possible.
func (c *NodeCache) Leaf(kind syntax.Kind, text string) *GreenNode {
	if leaf, ok := internedLeaf(kind, text); ok {
		return leaf
	}
	return c.dedup(NewLeaf(kind, text))
}

// Branch returns a branch over children, reusing an equal cached branch
// if there is one.
func (c *NodeCache) Branch(kind syntax.Kind, children []*GreenNode) *GreenNode {
	return c.dedup(NewBranch(kind, children))
}

func (c *NodeCache) dedup(n *GreenNode) *GreenNode {
	if c == nil || c.entries == nil {
		return n
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.entries.get(n.hash); ok && cached.equal(n) {
		c.hits.Add(1)
		return cached
	}
	c.misses.Add(1)
	c.entries.put(n.hash, n)
	return n
}

// Stats returns the current counters.
func (c *NodeCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	stats := CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	c.mu.Lock()
	if c.entries != nil {
		stats.Entries = c.entries.len()
		stats.Evictions = c.entries.evictions
	}
	c.mu.Unlock()
	return stats
}
