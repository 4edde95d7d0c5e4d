package cache

import (
	"sync"

	"github.com/Zubayear/autoprefix/matching"
	"github.com/Zubayear/autoprefix/set"
	"github.com/Zubayear/autoprefix/treemap"
)

// PrefixCache is a bounded, least-recently-used cache from query prefix to
// PState, backed by a prefix trie for prefix lookup and a red-black tree
// from logical timestamp to the set of prefixes last touched at that
// timestamp, so the oldest entries can be found and evicted in O(log n)
// without scanning every cached prefix.
//
// The clock is a monotonically increasing counter rather than wall-clock
// time: eviction only needs a total order over accesses, and a counter
// keeps cache behavior reproducible in tests.
type PrefixCache struct {
	mu sync.Mutex

	capacity int
	trie     *prefixTrie
	byTime   *treemap.TreeMap[int64, *set.UnorderedSet[string]]
	size     int
	clock    int64
}

// New returns an empty PrefixCache holding at most capacity entries.
// capacity <= 0 means unbounded.
func New(capacity int) *PrefixCache {
	return &PrefixCache{
		capacity: capacity,
		trie:     newPrefixTrie(),
		byTime:   treemap.NewTreeMap[int64, *set.UnorderedSet[string]](),
	}
}

// Visit looks up the cached state for prefix, bumping its recency if
// found. The returned MatchingSet must not be mutated by the caller; use
// Set.Clone first if a mutable copy is needed.
func (c *PrefixCache) Visit(prefix string) (*PState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runes := []rune(prefix)
	node := c.trie.find(runes)
	if node == nil || node.state == nil {
		return nil, false
	}
	c.touch(prefix, node.state)
	return node.state, true
}

// LongestCachedPrefix returns the PState of the deepest cached ancestor of
// prefix (including prefix itself), and how many leading characters of
// prefix that ancestor covers. It does not update recency: callers that
// go on to derive and Put a state for the full prefix will bump recency
// then.
func (c *PrefixCache) LongestCachedPrefix(prefix string) (*PState, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, n := c.trie.longestCached([]rune(prefix))
	if node == nil {
		return nil, 0, false
	}
	return node.state, n, true
}

// Put stores ms as the cached state for prefix, first evicting the
// least-recently-used entry (and every cached prefix that extends it) if
// the cache is at capacity and prefix is not already cached.
func (c *PrefixCache) Put(prefix string, ms *matching.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runes := []rune(prefix)
	existing := c.trie.find(runes)
	isNew := existing == nil || existing.state == nil

	if isNew && c.capacity > 0 && c.size >= c.capacity {
		c.evictOldestLocked()
	}

	node := c.trie.nodeFor(runes)
	node.state = &PState{Set: ms}
	c.touch(prefix, node.state)
	if isNew {
		c.size++
	}
}

// touch assigns state a fresh logical timestamp and records prefix under
// that timestamp's bucket in byTime, removing it from any earlier bucket
// it may have occupied.
func (c *PrefixCache) touch(prefix string, state *PState) {
	if state.Timestamp != 0 {
		if bucket, ok := c.byTime.Get(state.Timestamp); ok {
			bucket.Remove(prefix)
			if bucket.Size() == 0 {
				c.byTime.Remove(state.Timestamp)
			}
		}
	}
	c.clock++
	state.Timestamp = c.clock

	bucket, ok := c.byTime.Get(c.clock)
	if !ok {
		bucket = set.NewUnorderedSet[string]()
		c.byTime.Put(c.clock, bucket)
	}
	bucket.Insert(prefix)
}

// evictOldestLocked removes the prefix holding the smallest timestamp in
// byTime, together with every cached prefix that extends it. Every touch
// takes a fresh clock value, so each bucket holds a single prefix. Caller
// must hold mu.
func (c *PrefixCache) evictOldestLocked() {
	_, bucket, ok := c.byTime.PopOldest()
	if !ok {
		return
	}
	for _, prefix := range bucket.Items() {
		timestamps := c.trie.removeSubtree([]rune(prefix))
		for _, ts := range timestamps {
			c.byTime.Remove(ts)
		}
		c.size -= len(timestamps)
	}
}

// EvictToCapacity evicts least-recently-used entries, oldest first, each
// together with every cached prefix that extends it, until at most
// capacity prefixes remain cached. It is a no-op if the cache is already
// at or under capacity, or if capacity is unbounded (<= 0).
func (c *PrefixCache) EvictToCapacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return 0
	}
	evicted := 0
	for c.size > c.capacity {
		before := c.size
		c.evictOldestLocked()
		if c.size == before {
			break // nothing left to evict; avoid looping forever
		}
		evicted += before - c.size
	}
	return evicted
}

// Prune discards prefix and every cached descendant prefix of it (every
// cached prefix that starts with prefix), returning the number of entries
// removed. Typing-session cleanup calls this when a query is abandoned, so
// speculative continuations of it don't linger in the cache.
func (c *PrefixCache) Prune(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	timestamps := c.trie.removeSubtree([]rune(prefix))
	for _, ts := range timestamps {
		c.byTime.Remove(ts)
	}
	c.size -= len(timestamps)
	return len(timestamps)
}

// Len returns the number of prefixes currently cached.
func (c *PrefixCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
