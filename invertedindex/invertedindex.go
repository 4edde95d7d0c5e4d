/*
Package invertedindex provides a (depth, character) -> sorted node ids index
over a trie.Trie, bounding descendant enumeration to a single character class
at a single depth.

Without this index, finding "which nodes at depth d are labeled with
character c and also descend from node p" would require walking p's entire
subtree. With it, that's two binary searches over a sorted id slice: one to
skip ids before p's first descendant, one to stop at the first id past
p's subtree.

Use Cases:
  - The hot inner loop of the matching-set deduction rules (see the deduce
    package), which repeatedly needs exactly this query.

Complexity:
  - Build: O(nodes).
  - Get: O(log c) binary search over the c characters present at that depth.
  - Descendants: O(log k), k = size of the (depth, character) bucket.
*/
package invertedindex

import (
	"sort"

	"github.com/Zubayear/autoprefix/trie"
)

// Index maps depth to a list of buckets, sorted by character, each holding
// the sorted (ascending) node ids carrying that character at that depth.
type Index struct {
	buckets [][]bucket
}

type bucket struct {
	character rune
	ids       []int
}

// Build scans every non-root node of t once and groups its id under
// (depth, character).
func Build(t *trie.Trie) *Index {
	maxDepth := 0
	for id := 0; id < t.NumNodes(); id++ {
		if d := t.NodeAt(id).Depth; d > maxDepth {
			maxDepth = d
		}
	}

	byDepth := make([]map[rune][]int, maxDepth+1)
	for i := range byDepth {
		byDepth[i] = make(map[rune][]int)
	}

	for id := 1; id < t.NumNodes(); id++ { // skip root: it bears no character
		node := t.NodeAt(id)
		byDepth[node.Depth][node.Character] = append(byDepth[node.Depth][node.Character], id)
	}

	idx := &Index{buckets: make([][]bucket, len(byDepth))}
	for depth, charMap := range byDepth {
		buckets := make([]bucket, 0, len(charMap))
		for ch, ids := range charMap {
			sort.Ints(ids) // defensive: pre-order insertion already yields ascending order
			buckets = append(buckets, bucket{character: ch, ids: ids})
		}
		sort.Slice(buckets, func(i, j int) bool { return buckets[i].character < buckets[j].character })
		idx.buckets[depth] = buckets
	}
	return idx
}

// Get returns the sorted node ids at depth carrying character, or nil if
// there are none.
func (idx *Index) Get(depth int, character rune) []int {
	if depth < 0 || depth >= len(idx.buckets) {
		return nil
	}
	buckets := idx.buckets[depth]
	i := sort.Search(len(buckets), func(i int) bool { return buckets[i].character >= character })
	if i < len(buckets) && buckets[i].character == character {
		return buckets[i].ids
	}
	return nil
}

// MaxDepth returns the highest populated depth.
func (idx *Index) MaxDepth() int {
	return len(idx.buckets) - 1
}

// Descendants returns the subslice of Get(depth, character) whose ids fall
// within the half-open range [rangeLo, rangeHi): the hot inner loop used to
// enumerate a node's descendants carrying a given character at a given
// depth. rangeLo/rangeHi are normally a node's DescendantRange.
func (idx *Index) Descendants(depth int, character rune, rangeLo, rangeHi int) []int {
	ids := idx.Get(depth, character)
	if len(ids) == 0 {
		return nil
	}
	lo := sort.Search(len(ids), func(i int) bool { return ids[i] >= rangeLo })
	hi := sort.Search(len(ids), func(i int) bool { return ids[i] >= rangeHi })
	return ids[lo:hi]
}
