/*
Package deduce implements the two deduction rules from "Matching-Based
Method for Error-Tolerant Autocompletion" (META): the algorithmic heart of
this module. Given P(i-1, b) or P(i, b-1), each rule derives the delta
needed to reach P(i, b), using the trie's range encoding and the inverted
index to bound which nodes are even worth considering.

First extends the query-length dimension by one character; Second extends
the edit-distance budget by one. Both are monotone: they only add matchings
with edit distance <= b, and never remove or lower an existing one.

Use Cases:
  - Driving the incremental assemble loop in the autocompleter package, which
    runs First (stepping through query positions) and then Second (raising
    the budget) to build P(|q|, b) from cached partial rows.

Complexity:
  - First: bounded by the number of matchings in the input set times the
    number of (depth, character) buckets examined, each O(log k) via the
    inverted index.
  - Second: bounded similarly, examining O(b) depths and query positions per
    input matching.
*/
package deduce

import (
	"github.com/Zubayear/autoprefix/invertedindex"
	"github.com/Zubayear/autoprefix/matching"
	"github.com/Zubayear/autoprefix/trie"
)

// Deducer applies the first and second deduction rules against a fixed trie
// and its inverted index.
type Deducer struct {
	Trie  *trie.Trie
	Index *invertedindex.Index
}

// New returns a Deducer over t and its inverted index idx.
func New(t *trie.Trie, idx *invertedindex.Index) *Deducer {
	return &Deducer{Trie: t, Index: idx}
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

// First grows a set representing P(i-1, b) into the delta needed to reach
// P(i, b), given that the i-th query character is c.
//
// Algorithm:
//  1. For each matching m1 = (i1, n1, e1) in the input with e1 <= b and
//     i1 within b of i-1, look for descendants of n1 at every depth in
//     (depth(n1), depth(n1)+b+1] that still satisfy the |i-depth| <= b
//     pruning bound, restricted to character c via the inverted index.
//  2. For every descendant found, compute its deduced edit distance against
//     the one-shorter query and one-shorter stored prefix; keep it if it's
//     within budget, taking the minimum over all ways of reaching it.
//
// query_len == 0 is treated as a no-op, per the spec's resolution of the
// source's unspecified boundary condition.
func (d *Deducer) First(set *matching.Set, c rune, queryLen, b int) *matching.Set {
	delta := matching.New()
	if queryLen == 0 {
		return delta
	}

	lowI1 := queryLen - 1 - b
	if lowI1 < 0 {
		lowI1 = 0
	}
	hiI1 := queryLen - 1

	best := make(map[int]int) // node id -> smallest deduced edit distance

	for _, m1 := range set.Iter() {
		if m1.Dist > b || m1.QueryLen < lowI1 || m1.QueryLen > hiI1 {
			continue
		}
		n1 := d.Trie.NodeAt(m1.Node)
		maxDepth := n1.Depth + b + 1
		if maxDepth > d.Index.MaxDepth() {
			maxDepth = d.Index.MaxDepth()
		}
		for depth := n1.Depth + 1; depth <= maxDepth; depth++ {
			if absDiff(queryLen, depth) > b {
				continue
			}
			for _, n2 := range d.Index.Descendants(depth, c, n1.DescendantRange.Lo, n1.DescendantRange.Hi) {
				stored := d.Trie.NodeAt(n2)
				ded := m1.DeducedEditDistance(queryLen-1, stored.Depth-1, n1.Depth)
				if ded < 0 {
					ded = 0
				}
				if ded > b {
					continue
				}
				if existing, ok := best[n2]; !ok || ded < existing {
					best[n2] = ded
				}
			}
		}
	}

	for node, dist := range best {
		delta.Insert(matching.Key{QueryLen: queryLen, Node: node}, dist)
	}
	return delta
}

// Second grows a set representing P(i, b-1) into the delta needed to reach
// P(i, b), where i is queryLen and query holds the query's characters.
// Every emitted matching has edit distance exactly b, and its key is absent
// from the input set.
//
// For each matching m = (i_m, n_m, e_m) in the input with e_m <= b-1 and
// i_m <= i, it sweeps the "last row" and "last column" of the (query
// position, depth) grid reachable from m within budget b, checking each
// candidate descendant against the exact deduced edit distance b. This
// mirrors the paper's three sweeps: column, row, and corner.
func (d *Deducer) Second(set *matching.Set, query []rune, queryLen, b int) *matching.Set {
	delta := matching.New()

	check := func(m matching.Matching, node int, queryPrefixLen int) {
		if set.Contains(queryPrefixLen, node) {
			return
		}
		stored := d.Trie.NodeAt(node)
		ded := m.DeducedEditDistance(queryPrefixLen-1, stored.Depth-1, d.Trie.NodeAt(m.Node).Depth)
		if ded == b {
			delta.Insert(matching.Key{QueryLen: queryPrefixLen, Node: node}, b)
		}
	}

	for _, m := range set.Iter() {
		if m.Dist > b-1 || m.QueryLen > queryLen {
			continue
		}
		nodeDepth := d.Trie.NodeAt(m.Node).Depth
		budgetLeft := b - m.Dist + 1

		lastDepth := nodeDepth + budgetLeft
		if lastDepth > d.Index.MaxDepth() {
			lastDepth = d.Index.MaxDepth()
		}
		lastQueryLen := m.QueryLen + budgetLeft
		if lastQueryLen > queryLen {
			lastQueryLen = queryLen
		}

		node := d.Trie.NodeAt(m.Node)

		// Column sweep: walk query positions strictly between m's and the
		// last one, holding depth fixed at lastDepth.
		for qpl := m.QueryLen + 1; qpl < lastQueryLen; qpl++ {
			c := query[qpl-1]
			if absDiff(qpl, lastDepth) > b {
				continue
			}
			for _, n := range d.Index.Descendants(lastDepth, c, node.DescendantRange.Lo, node.DescendantRange.Hi) {
				check(m, n, qpl)
			}
		}

		if lastQueryLen >= 1 {
			lastChar := query[lastQueryLen-1]

			// Row sweep: walk depths strictly between m's and the last
			// one, holding the query position fixed at lastQueryLen.
			for depth := nodeDepth + 1; depth < lastDepth; depth++ {
				if absDiff(lastQueryLen, depth) > b {
					continue
				}
				for _, n := range d.Index.Descendants(depth, lastChar, node.DescendantRange.Lo, node.DescendantRange.Hi) {
					check(m, n, lastQueryLen)
				}
			}

			// Corner: the single cell at (lastDepth, lastQueryLen).
			for _, n := range d.Index.Descendants(lastDepth, lastChar, node.DescendantRange.Lo, node.DescendantRange.Hi) {
				check(m, n, lastQueryLen)
			}
		}
	}

	return delta
}
