package levenshtein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIdentical(t *testing.T) {
	assert.Equal(t, 0, Distance("kitten", "kitten"))
}

func TestDistanceClassic(t *testing.T) {
	assert.Equal(t, 3, Distance("kitten", "sitting"))
}

func TestDistanceEmpty(t *testing.T) {
	assert.Equal(t, 3, Distance("", "cat"))
	assert.Equal(t, 3, Distance("cat", ""))
	assert.Equal(t, 0, Distance("", ""))
}

func TestDistanceSymmetric(t *testing.T) {
	assert.Equal(t, Distance("flaw", "lawn"), Distance("lawn", "flaw"))
}

func TestPrefixEditDistanceExactPrefix(t *testing.T) {
	assert.Equal(t, 0, PrefixEditDistance("cat", "cats"))
	assert.Equal(t, 0, PrefixEditDistance("ca", "cats"))
}

func TestPrefixEditDistanceNeverExceedsDistance(t *testing.T) {
	assert.LessOrEqual(t, PrefixEditDistance("kitten", "sitting"), Distance("kitten", "sitting"))
}

func TestPrefixEditDistanceTypo(t *testing.T) {
	// one substitution away from the prefix "cat" of "catalog"
	assert.Equal(t, 1, PrefixEditDistance("cot", "catalog"))
}

func TestPrefixEditDistanceQueryLongerThanStored(t *testing.T) {
	assert.Equal(t, Distance("catalogue", "cat"), PrefixEditDistance("catalogue", "cat"))
}
