/*
Package cache provides PrefixCache, a bounded, least-recently-used cache of
partial assemble results keyed by query prefix. Each cached entry is the
MatchingSet P(i, 1): the set of matchings reachable from the dataset within
edit distance 1 of the first i characters of some query. Reusing P(i, 1)
across requests sharing a prefix turns repeated key-by-key assemble calls
(as a user types) into a single incremental step per new character.

This package's node type mirrors the map-based trie this module's source
repository originally used for its general-purpose Trie: a simple
`map[rune]*node` keyed trie, here repurposed as the cache's own prefix
index rather than the dataset's compacted trie (see the trie package for
that one). A map-based trie is the right shape here because the cache's
keys are query prefixes typed one character at a time, arriving and
departing in no particular sorted order, unlike the static, range-encoded
dataset trie.

Use Cases:
  - Looking up the cached row for the prefix typed so far before falling
    back to a full assemble from the root (see the autocompleter package).
*/
package cache

import (
	"github.com/Zubayear/autoprefix/matching"
)

// PState is the cached payload attached to a prefix node: the matching set
// for that prefix together with the logical timestamp of its last use,
// which the owning PrefixCache uses to order eviction.
type PState struct {
	Set       *matching.Set
	Timestamp int64
}

// pnode is one node of the cache's own prefix trie, distinct from the
// dataset's compacted trie: a rune edges to at most one child, and a node
// carries a cached PState only if some query prefix ending there has been
// stored.
type pnode struct {
	children map[rune]*pnode
	state    *PState
}

func newPNode() *pnode {
	return &pnode{children: make(map[rune]*pnode)}
}

// prefixTrie indexes pnodes by the rune sequence of the query prefix that
// reaches them, supporting insertion, lookup, and longest-cached-prefix
// lookup.
type prefixTrie struct {
	root *pnode
}

func newPrefixTrie() *prefixTrie {
	return &prefixTrie{root: newPNode()}
}

// nodeFor walks prefix from the root, creating intermediate nodes as
// needed, and returns the node at the end of it.
func (pt *prefixTrie) nodeFor(prefix []rune) *pnode {
	cur := pt.root
	for _, r := range prefix {
		next, ok := cur.children[r]
		if !ok {
			next = newPNode()
			cur.children[r] = next
		}
		cur = next
	}
	return cur
}

// find walks prefix from the root and returns the node at the end of it,
// or nil if no such path exists yet.
func (pt *prefixTrie) find(prefix []rune) *pnode {
	cur := pt.root
	for _, r := range prefix {
		next, ok := cur.children[r]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// longestCached walks prefix from the root as far as nodes exist and
// returns the deepest node carrying a cached PState, along with how many
// characters of prefix it consumed. It returns (nil, 0) if even the empty
// prefix has no cached state.
func (pt *prefixTrie) longestCached(prefix []rune) (*pnode, int) {
	cur := pt.root
	var best *pnode
	bestLen := 0
	if cur.state != nil {
		best, bestLen = cur, 0
	}
	for i, r := range prefix {
		next, ok := cur.children[r]
		if !ok {
			break
		}
		cur = next
		if cur.state != nil {
			best, bestLen = cur, i+1
		}
	}
	return best, bestLen
}

// removeSubtree deletes the node reached by prefix, and everything below
// it, from the trie. It returns the set of PState timestamps removed, the
// caller's responsibility to also drop from the cache's LRU index.
func (pt *prefixTrie) removeSubtree(prefix []rune) []int64 {
	if len(prefix) == 0 {
		removed := collectTimestamps(pt.root)
		pt.root = newPNode()
		return removed
	}
	parent := pt.root
	for _, r := range prefix[:len(prefix)-1] {
		next, ok := parent.children[r]
		if !ok {
			return nil
		}
		parent = next
	}
	last := prefix[len(prefix)-1]
	target, ok := parent.children[last]
	if !ok {
		return nil
	}
	removed := collectTimestamps(target)
	delete(parent.children, last)
	return removed
}

// collectTimestamps walks the subtree rooted at n and returns the
// timestamp of every cached PState found. The frontier is an explicit
// slice of pnodes still to visit rather than recursion, so evicting a
// deep, linear run of single-child prefixes (the common case when a
// rarely-typed word falls out of use) never grows the Go call stack.
func collectTimestamps(n *pnode) []int64 {
	var out []int64
	frontier := []*pnode{n}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if cur.state != nil {
			out = append(out, cur.state.Timestamp)
		}
		for _, child := range cur.children {
			frontier = append(frontier, child)
		}
	}
	return out
}
