package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailMatchScore_ExactMatchAccumulatesAllBonuses(t *testing.T) {
	// Exact (120) + prefix (100) + word prefix (80) + substring (60)
	// + similarity bonus at ratio 1.0 (40).
	assert.Equal(t, 400, DetailMatchScore("everest", "everest"))
}

func TestDetailMatchScore_NormalizesInputs(t *testing.T) {
	assert.Equal(t, 400, DetailMatchScore("  EVEREST ", "Everest"))
}

func TestDetailMatchScore_PrefixOfLongerName(t *testing.T) {
	// prefix (100) + word prefix (80) + substring (60); ratio 8/17 is below
	// the similarity floor.
	assert.Equal(t, 240, DetailMatchScore("shim", "Shimla Valley"))
}

func TestDetailMatchScore_InnerWordMatch(t *testing.T) {
	// word prefix (80) + substring (60) + similarity bonus
	// int(12/19 * 40) = 25.
	assert.Equal(t, 165, DetailMatchScore("valley", "shimla valley"))
}

func TestDetailMatchScore_NoMatch(t *testing.T) {
	assert.Equal(t, 0, DetailMatchScore("xyz", "shimla"))
}

func TestDetailMatchScore_NonNegative(t *testing.T) {
	for _, text := range []string{"", "a", "Everest", "Shimla Valley", "x y z"} {
		assert.GreaterOrEqual(t, DetailMatchScore("kedarnath", text), 0, text)
	}
}

func TestTypoScore_Exact(t *testing.T) {
	assert.Equal(t, 100, TypoScore("shimla", "shimla"))
}

func TestTypoScore_CaseSensitiveAsStored(t *testing.T) {
	// TypoScore compares candidate text as stored: the capital S does not
	// match, leaving "himla" (5) of 6+13 characters: int(10/19 * 100) = 52.
	assert.Equal(t, 52, TypoScore("shimla", "Shimla Valley"))
}

func TestTypoScore_Disjoint(t *testing.T) {
	assert.Equal(t, 0, TypoScore("abc", "xyz"))
}
