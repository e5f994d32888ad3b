// Package rng provides the engine's deterministic random source: seeded
// coin flips, Fisher-Yates shuffles and bounded integers, plus the
// "guaranteed heads" sticky override used by effects like GuaranteedHeads.
package rng

import "math/rand"

// Source is the engine's single random-number source. A GameState and its
// Source are always constructed and stepped together; two Sources built
// from the same seed and driven by the same sequence of calls produce
// byte-identical outputs.
type Source struct {
	r               *rand.Rand
	seed            int64
	guaranteedHeads bool
}

// New constructs a Source from a seed. The same seed always yields the
// same sequence of draws.
func New(seed int64) *Source {
	return &Source{
		r:    rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Clone forks an independent Source carrying the same seed marker but an
// entirely separate underlying generator, seeded from the parent's current
// draw so a driver can branch rollouts (e.g. a tree-search adapter) without
// the branches influencing each other's subsequent draws.
func (s *Source) Clone() *Source {
	return &Source{
		r:               rand.New(rand.NewSource(s.r.Int63())),
		seed:            s.seed,
		guaranteedHeads: s.guaranteedHeads,
	}
}

// Seed returns the seed this Source was constructed with. Only the seed
// marker is meaningful for serialization; generator state is not exposed.
func (s *Source) Seed() int64 {
	return s.seed
}

// CoinFlip returns true for heads. A sticky guaranteed-heads override, once
// set via SetGuaranteedHeads, forces the next call to return true and then
// clears itself.
func (s *Source) CoinFlip() bool {
	if s.guaranteedHeads {
		s.guaranteedHeads = false
		return true
	}
	return s.r.Intn(2) == 0
}

// SetGuaranteedHeads arms (or disarms) the sticky override consumed by the
// next CoinFlip.
func (s *Source) SetGuaranteedHeads(value bool) {
	s.guaranteedHeads = value
}

// CoinFlips flips n independent coins and returns the number of heads.
func (s *Source) CoinFlips(n int) int {
	heads := 0
	for i := 0; i < n; i++ {
		if s.CoinFlip() {
			heads++
		}
	}
	return heads
}

// Shuffle permutes slice in place using Fisher-Yates with a descending
// index and a uniform draw from [0, i].
func Shuffle[T any](s *Source, slice []T) {
	for i := len(slice) - 1; i > 0; i-- {
		j := s.GenRange(0, i+1)
		slice[i], slice[j] = slice[j], slice[i]
	}
}

// GenRange returns a uniform integer in the half-open range [min, max). If
// min >= max it returns min rather than panicking, matching the reference
// generator's saturating behavior for degenerate ranges (e.g. an empty
// deck to search).
func (s *Source) GenRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + s.r.Intn(max-min)
}
