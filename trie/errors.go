package trie

import "errors"

// ErrInputTooLarge is returned by Build when the dataset would require more
// nodes than fit in the trie's node-id range, or contains a string longer
// than MaxDepth characters.
var ErrInputTooLarge = errors.New("trie: input exceeds representable node id or depth range")

// MaxNodes bounds the number of nodes a single trie may hold. It mirrors the
// source's use of a 32-bit node id.
const MaxNodes = 1<<32 - 1

// MaxDepth bounds the length, in characters, of any stored string. It
// mirrors the source's use of an 8-bit depth counter.
const MaxDepth = 255
