/*
Package trie provides a pre-order, range-encoded compacted trie over a sorted,
deduplicated set of strings.

Unlike a conventional pointer-and-map trie (see the cache package's prefix
index for that style, adapted from an earlier revision of this package),
every node here is a value in a single slice, and its id is simply its
position in that slice. Construction visits nodes in pre-order, so every
node's descendants occupy a contiguous, half-open range of ids directly after
it: testing "is n a descendant of m?" is one range comparison rather than a
pointer walk.

Each node also owns a contiguous range into the sorted dataset: exactly the
strings that carry the node's prefix. That range is what autocompletion
expands once a node is judged to be a good match for a query.

Use Cases:
  - The compacted backbone under error-tolerant prefix autocompletion
    (see the autocompleter package).
  - Any application needing O(1) descendant tests or O(1) "strings sharing
    this prefix" lookups over a static string dataset.

Complexity:
  - Build: O(total characters) plus O(log n) per child boundary located by
    binary search.
  - StringsIn: O(1) plus the size of the returned slice.
*/
package trie

import (
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Range is a half-open interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of integers covered by the range.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Contains reports whether id falls within the range.
func (r Range) Contains(id int) bool {
	return id >= r.Lo && id < r.Hi
}

// Node is one node of the compacted trie.
//
// Fields:
//   - Character: the single scalar value labeling the edge from this node's
//     parent. The root's Character is the sentinel rune 0, which never
//     matches a real query character.
//   - Depth: the length, in characters, of the prefix this node represents.
//   - DescendantRange: the half-open id range covering every descendant of
//     this node (not including the node itself). Node n is a descendant of m
//     iff m.DescendantRange.Contains(n's id).
//   - StringRange: the half-open index range into the trie's sorted dataset
//     covering exactly the strings that have this node's prefix as a prefix.
type Node struct {
	Character       rune
	Depth           int
	DescendantRange Range
	StringRange     Range
}

// ID returns the node's position in the trie, derived the same way as the
// node's descendant range: one less than the start of that range.
func (n Node) ID() int {
	return n.DescendantRange.Lo - 1
}

// Trie is an immutable, pre-order, range-encoded trie over a sorted,
// deduplicated string dataset. Build it with Build; the zero value is not
// usable.
type Trie struct {
	nodes   []Node
	strings []string
}

// Build sorts and deduplicates the input strings and constructs an immutable
// trie over them. The input slice is not retained or mutated.
//
// Algorithm:
//  1. Copy, sort lexicographically by Unicode code point, and dedup the
//     input.
//  2. Recurse over the sorted slice. At each call, allocate a node for the
//     current prefix's string range, then partition the remaining suffixes
//     by their next character: each distinct next character c gets a child
//     whose string range ends just before the first string that would sort
//     after every string prefixed by c. That boundary is found by binary
//     search against a "lexicographic marker" equal to prefix + succ(c).
//  3. After all children are built, the parent's descendant range is set to
//     span every node allocated during its subtree's construction.
//
// Returns ErrInputTooLarge if the dataset would need more nodes than fit in
// the trie's id space, or contains a string longer than MaxDepth characters.
func Build(input []string) (*Trie, error) {
	strs := make([]string, len(input))
	copy(strs, input)
	sort.Strings(strs)
	strs = dedupSorted(strs)

	t := &Trie{
		strings: strs,
		nodes:   make([]Node, 0, 3*len(strs)+1),
	}

	id := 0
	if err := t.buildNode(&id, 0, "", 0, 0, 0, len(strs)); err != nil {
		return nil, err
	}
	return t, nil
}

// dedupSorted removes adjacent duplicates from an already-sorted slice,
// reusing its backing array.
func dedupSorted(strs []string) []string {
	if len(strs) == 0 {
		return strs
	}
	j := 0
	for i := 1; i < len(strs); i++ {
		if strs[i] != strs[j] {
			j++
			strs[j] = strs[i]
		}
	}
	return strs[:j+1]
}

// buildNode allocates the node for strings[start:end] sharing a prefix whose
// last character is lastChar, already consumed up to suffixStart bytes into
// each member string, then recurses over each distinct next character.
func (t *Trie) buildNode(nodeID *int, depth int, prefix string, lastChar rune, suffixStart, start, end int) error {
	if depth > MaxDepth {
		return errors.Wrapf(ErrInputTooLarge, "string %q exceeds max depth %d", prefix, MaxDepth)
	}
	if *nodeID >= MaxNodes {
		return errors.Wrapf(ErrInputTooLarge, "dataset needs more than %d nodes", MaxNodes)
	}

	currentID := *nodeID
	t.nodes = append(t.nodes, Node{
		Character:   lastChar,
		Depth:       depth,
		StringRange: Range{Lo: start, Hi: end},
	})
	*nodeID++

	childStart := start
	for childStart != end {
		suffix := t.strings[childStart][suffixStart:]
		if suffix == "" {
			// This string equals the current prefix; it's already
			// accounted for by this node's StringRange.
			childStart++
			continue
		}

		nextChar, width := utf8.DecodeRuneInString(suffix)

		var childEnd int
		if markerChar, ok := succ(nextChar); ok {
			marker := prefix + string(markerChar)
			childEnd = start + sort.Search(end-start, func(i int) bool {
				return t.strings[start+i] >= marker
			})
		} else {
			childEnd = end
		}

		if err := t.buildNode(nodeID, depth+1, prefix+string(nextChar), nextChar, suffixStart+width, childStart, childEnd); err != nil {
			return err
		}
		childStart = childEnd
	}

	t.nodes[currentID].DescendantRange = Range{Lo: currentID + 1, Hi: *nodeID}
	return nil
}

// Root returns the trie's root node.
func (t *Trie) Root() Node {
	return t.nodes[0]
}

// NodeAt returns the node with the given id.
func (t *Trie) NodeAt(id int) Node {
	return t.nodes[id]
}

// NumNodes returns the number of nodes in the trie.
func (t *Trie) NumNodes() int {
	return len(t.nodes)
}

// Strings returns the sorted, deduplicated dataset backing the trie. The
// returned slice must not be modified.
func (t *Trie) Strings() []string {
	return t.strings
}

// StringsIn returns the slice of dataset strings whose sorted position lies
// in node's StringRange: exactly the strings carrying node's prefix.
func (t *Trie) StringsIn(node Node) []string {
	return t.strings[node.StringRange.Lo:node.StringRange.Hi]
}

// IsDescendant reports whether the node with id n is a (possibly indirect)
// descendant of the node with id m.
func (t *Trie) IsDescendant(m, n int) bool {
	return t.nodes[m].DescendantRange.Contains(n)
}

// Levels returns node ids grouped by depth, shallowest first, each group
// ordered by id. It exists for diagnostics and tests that want to walk the
// trie level by level rather than by range arithmetic; the hot query path
// never calls it.
//
// Every node already carries its own Depth (set once, at construction), so
// grouping is a single linear bucket pass over the node slice in id order
// rather than a breadth-first traversal: id order is pre-order, which is
// already depth-nondecreasing within any root-to-leaf path, and bucketing
// by the stored Depth field naturally yields each level in ascending id
// order without re-deriving it by walking DescendantRange children.
func (t *Trie) Levels() [][]int {
	if len(t.nodes) == 0 {
		return nil
	}
	var levels [][]int
	for id, node := range t.nodes {
		for len(levels) <= node.Depth {
			levels = append(levels, nil)
		}
		levels[node.Depth] = append(levels[node.Depth], id)
	}
	return levels
}
