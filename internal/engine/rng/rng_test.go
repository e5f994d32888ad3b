package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 50; i++ {
		require.Equal(t, a.CoinFlip(), b.CoinFlip())
	}
}

func TestGuaranteedHeadsIsStickyAndClears(t *testing.T) {
	s := New(1)
	s.SetGuaranteedHeads(true)
	require.True(t, s.CoinFlip())
	assert.False(t, s.guaranteedHeads)

	// Only the next flip is forced; the override does not persist.
	s.SetGuaranteedHeads(false)
	_ = s.CoinFlip()
}

func TestCoinFlipsCountsHeads(t *testing.T) {
	s := New(7)
	s.SetGuaranteedHeads(true)
	heads := s.CoinFlips(5)
	assert.GreaterOrEqual(t, heads, 1)
	assert.LessOrEqual(t, heads, 5)
}

func TestShufflePreservesElements(t *testing.T) {
	s := New(99)
	deck := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	original := append([]int(nil), deck...)

	Shuffle(s, deck)

	assert.ElementsMatch(t, original, deck)
}

func TestGenRangeDegenerate(t *testing.T) {
	s := New(3)
	assert.Equal(t, 5, s.GenRange(5, 5))
	assert.Equal(t, 5, s.GenRange(5, 2))
}

func TestGenRangeBounds(t *testing.T) {
	s := New(5)
	for i := 0; i < 100; i++ {
		v := s.GenRange(3, 8)
		assert.GreaterOrEqual(t, v, 3)
		assert.Less(t, v, 8)
	}
}

func TestCloneSeedMarker(t *testing.T) {
	s := New(123)
	clone := s.Clone()
	assert.Equal(t, s.Seed(), clone.Seed())
}
