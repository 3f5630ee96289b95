package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialRank(t *testing.T) {
	rank := InitialRank()
	assert.True(t, ValidRank(rank))
}

func TestRankAfterIsGreater(t *testing.T) {
	prev := InitialRank()
	for i := 0; i < 50; i++ {
		next, err := RankAfter(prev)
		require.NoError(t, err)
		require.True(t, next > prev, "RankAfter(%q) = %q is not greater", prev, next)
		prev = next
	}
}

func TestRankBetweenIsStrictlyBetween(t *testing.T) {
	lo := InitialRank()
	hi, err := RankAfter(lo)
	require.NoError(t, err)

	// Repeated bisection must keep producing ranks in the shrinking gap.
	for i := 0; i < 50; i++ {
		mid, err := RankBetween(lo, hi)
		require.NoError(t, err)
		require.True(t, lo < mid && mid < hi, "RankBetween(%q, %q) = %q", lo, hi, mid)
		hi = mid
	}
}

func TestRankBetweenRejectsInvertedBounds(t *testing.T) {
	_, err := RankBetween("z", "a")
	assert.Error(t, err)

	_, err = RankBetween("i", "i")
	assert.Error(t, err)
}

func TestRankBetweenRejectsBadDigits(t *testing.T) {
	_, err := RankBetween("ABC", "")
	assert.Error(t, err)

	_, err = RankBetween("", "a-b")
	assert.Error(t, err)
}

func TestSequentialRanksAreSorted(t *testing.T) {
	ranks := SequentialRanks(20)
	require.Len(t, ranks, 20)
	assert.True(t, sort.StringsAreSorted(ranks))
	for i := 1; i < len(ranks); i++ {
		assert.NotEqual(t, ranks[i-1], ranks[i])
	}
}

func TestGeneratedRanksNeverEndInZero(t *testing.T) {
	// A trailing zero digit would make the gap below a rank unfillable.
	for _, rank := range SequentialRanks(100) {
		assert.NotEqual(t, byte('0'), rank[len(rank)-1], "rank %q ends in zero", rank)
	}
}

func TestValidRank(t *testing.T) {
	assert.True(t, ValidRank("0a9z"))
	assert.False(t, ValidRank(""))
	assert.False(t, ValidRank("A"))
	assert.False(t, ValidRank("a b"))
}
