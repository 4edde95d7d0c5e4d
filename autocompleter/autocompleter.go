/*
Package autocompleter wires together the trie, inverted index, matching
set, deduction rules, and prefix cache into the public entry point of this
module: given a query and an edit-distance budget, produce a ranked list of
candidate strings.

Use Cases:
  - `New(words, cacheCapacity)` builds an index from a dataset and returns
    a ready-to-query Autocompleter.
  - `Autocomplete(query)` is the budget-1 convenience call the source
    describes; `Complete(query, budget, limit)` is the richer, top-K
    variant this module adds on top of it.
*/
package autocompleter

import (
	"sort"
	"time"

	"github.com/Zubayear/autoprefix/cache"
	"github.com/Zubayear/autoprefix/deduce"
	"github.com/Zubayear/autoprefix/invertedindex"
	"github.com/Zubayear/autoprefix/levenshtein"
	"github.com/Zubayear/autoprefix/matching"
	"github.com/Zubayear/autoprefix/priorityqueue"
	"github.com/Zubayear/autoprefix/set"
	"github.com/Zubayear/autoprefix/trie"
)

// Result is one ranked candidate: a stored string together with its
// prefix edit distance from the query that produced it.
type Result struct {
	String   string
	Distance int
}

// Autocompleter answers error-tolerant prefix queries against a fixed
// dataset, caching partial results keyed by query prefix.
type Autocompleter struct {
	trie    *trie.Trie
	index   *invertedindex.Index
	deducer *deduce.Deducer
	cache   *cache.PrefixCache

	latencies latencyWindow
}

// DefaultCacheCapacity is the reference cache size the source describes:
// the ~1000 most recently used query prefixes.
const DefaultCacheCapacity = 1000

// defaultLatencyWindow bounds how many recent query latencies Stats keeps.
const defaultLatencyWindow = 256

// New builds a trie and inverted index over words and returns an
// Autocompleter backed by a prefix cache of the given capacity.
// cacheCapacity <= 0 means unbounded.
func New(words []string, cacheCapacity int) (*Autocompleter, error) {
	t, err := trie.Build(words)
	if err != nil {
		return nil, err
	}
	idx := invertedindex.Build(t)
	return &Autocompleter{
		trie:      t,
		index:     idx,
		deducer:   deduce.New(t, idx),
		cache:     cache.New(cacheCapacity),
		latencies: newLatencyWindow(defaultLatencyWindow),
	}, nil
}

// Assemble computes P(|query|, b): the matching set of every trie node
// reachable from the dataset within edit distance b of query. It reuses
// whatever prefix of query is already cached and stores every newly
// computed row back into the cache, per section 4.6 of the algorithm this
// package implements.
func (a *Autocompleter) Assemble(query string, b int) *matching.Set {
	runes := []rune(query)

	row, cachedLen := a.longestCachedRow(runes)

	for i := cachedLen + 1; i <= len(runes); i++ {
		delta := a.deducer.First(row, runes[i-1], i, 1)
		row.Union(delta)
		a.cache.Put(string(runes[:i]), row.Clone())
	}

	for t := 2; t <= b; t++ {
		delta := a.deducer.Second(row, runes, len(runes), t)
		row.Union(delta)
	}

	return row
}

// longestCachedRow returns the cached P(i, 1) row for the deepest cached
// prefix of runes, and how many characters of runes it covers. If nothing
// is cached it returns the root matching, covering zero characters.
func (a *Autocompleter) longestCachedRow(runes []rune) (*matching.Set, int) {
	state, n, ok := a.cache.LongestCachedPrefix(string(runes))
	if !ok {
		return matching.RootMatch(a.trie.Root().ID()), 0
	}
	return state.Set.Clone(), n
}

// candidates collects every distinct stored string reachable through a
// node present in set, deduplicated via the module's generic set type.
func (a *Autocompleter) candidates(ms *matching.Set) []string {
	seen := set.NewUnorderedSet[string]()
	for _, m := range ms.Iter() {
		node := a.trie.NodeAt(m.Node)
		for _, s := range a.trie.StringsIn(node) {
			seen.Insert(s)
		}
	}
	return seen.Items()
}

// Autocomplete calls Assemble(query, 1), ranks every candidate string by
// exact prefix edit distance against query, and returns those within
// distance 1 ascending by (distance, string).
func (a *Autocompleter) Autocomplete(query string) []Result {
	return a.Complete(query, 1, 0)
}

// Complete calls Assemble(query, budget), ranks every candidate string by
// exact prefix edit distance against query, drops those whose distance
// exceeds budget, and returns at most limit results ascending by
// (distance, string). limit <= 0 means unbounded.
//
// When limit is smaller than the number of results, ranking uses a bounded
// max-heap over distance that holds only the limit best results, so the
// full result list is never sorted.
func (a *Autocompleter) Complete(query string, budget, limit int) []Result {
	start := time.Now()
	defer func() { a.recordLatency(time.Since(start)) }()

	ms := a.Assemble(query, budget)
	strs := a.candidates(ms)

	results := make([]Result, 0, len(strs))
	for _, s := range strs {
		d := levenshtein.PrefixEditDistance(query, s)
		if d > budget {
			continue
		}
		results = append(results, Result{String: s, Distance: d})
	}

	if limit <= 0 || limit >= len(results) {
		sort.Slice(results, func(i, j int) bool {
			if results[i].Distance != results[j].Distance {
				return results[i].Distance < results[j].Distance
			}
			return results[i].String < results[j].String
		})
		return results
	}

	return topK(results, limit)
}

// topK returns the limit best results (ascending by distance, then
// string) using a bounded max-heap: results worse than the current worst
// kept element are discarded without ever being fully sorted.
func topK(results []Result, limit int) []Result {
	worse := func(a, b Result) bool {
		if a.Distance != b.Distance {
			return a.Distance > b.Distance
		}
		return a.String > b.String
	}
	heap := priorityqueue.NewBinaryHeapWithComparator(worse)

	for _, r := range results {
		heap.PushBounded(r, limit)
	}

	out := make([]Result, 0, heap.Size())
	for !heap.IsEmpty() {
		v, err := heap.Poll()
		if err != nil {
			break
		}
		out = append(out, v)
	}
	// heap.Poll drains worst-first; reverse to get ascending order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Prune caps the cache at its configured capacity, evicting
// least-recently-used prefixes first, each together with every cached
// prefix that extends it, until at most that many remain. It is a no-op if
// the cache is already at or under capacity.
func (a *Autocompleter) Prune() {
	a.cache.EvictToCapacity()
}

// recordLatency appends d to the bounded recent-latency window, overwriting
// the oldest sample once the window is full.
func (a *Autocompleter) recordLatency(d time.Duration) {
	a.latencies.record(d)
}

// Stats reports the number of recent queries recorded and their mean
// latency, for callers that want lightweight observability without
// wiring in a metrics library.
func (a *Autocompleter) Stats() (count int, mean time.Duration) {
	return a.latencies.stats()
}

// latencyWindow is a fixed-capacity circular buffer of the most recent
// query latencies. Unlike a general-purpose deque, it never grows past its
// capacity and has exactly one consumer (Stats), so it holds samples
// in-place rather than offering push/pop access at both ends.
type latencyWindow struct {
	samples []time.Duration
	next    int
	filled  bool
}

func newLatencyWindow(capacity int) latencyWindow {
	return latencyWindow{samples: make([]time.Duration, capacity)}
}

// record stores d in the next slot, overwriting the oldest sample once the
// window has filled.
func (w *latencyWindow) record(d time.Duration) {
	if len(w.samples) == 0 {
		return
	}
	w.samples[w.next] = d
	w.next++
	if w.next == len(w.samples) {
		w.next = 0
		w.filled = true
	}
}

// stats returns the number of samples currently held and their mean.
func (w *latencyWindow) stats() (count int, mean time.Duration) {
	n := len(w.samples)
	if w.filled {
		count = n
	} else {
		count = w.next
	}
	if count == 0 {
		return 0, 0
	}
	var total time.Duration
	for i := 0; i < count; i++ {
		total += w.samples[i]
	}
	return count, total / time.Duration(count)
}
