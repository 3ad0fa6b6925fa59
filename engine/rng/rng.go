// Package rng wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, enabling save/restore: an RNG
// restored from the same seed and position produces the same sequence.
package rng

import "math/rand"

// RNG is a seeded pseudo-random source. Not safe for concurrent use;
// the engine owns exactly one per game.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	r.pos++
	return r.src.Intn(sides) + 1
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Between returns a random integer in [lo, hi].
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	r.pos++
	return lo + r.src.Intn(hi-lo+1)
}

// Chance returns true with the given percent probability.
// percent <= 0 is never true, percent >= 100 always.
func (r *RNG) Chance(percent int) bool {
	r.pos++
	return r.src.Intn(100) < percent
}

// CoinFlip returns true half the time.
func (r *RNG) CoinFlip() bool {
	r.pos++
	return r.src.Intn(2) == 0
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	r.pos++
	return r.src.Float64()
}

// Uniform returns a random float64 in [lo, hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	r.pos++
	return lo + r.src.Float64()*(hi-lo)
}

// Seed returns the seed this RNG was created from.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Restore creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func Restore(seed int64, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	r.pos = position
	return r
}
