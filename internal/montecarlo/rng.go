package montecarlo

import (
	"math/rand"
	"time"
)

// RandomSource is an ordered source of independent standard-normal variates.
// *rand.Rand satisfies it. A source is created once per evaluation run and
// advances across every path drawn from it.
type RandomSource interface {
	NormFloat64() float64
}

// NewRandomSource returns a source seeded with *seed, or with the clock when
// seed is nil.
func NewRandomSource(seed *int64) *rand.Rand {
	return rand.New(rand.NewSource(resolveSeed(seed)))
}

func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}

// SplitSeed derives the seed of stream idx from a base seed using the
// SplitMix64 finalizer, so neighbouring streams are decorrelated.
func SplitSeed(base int64, idx int) int64 {
	z := uint64(base) + uint64(idx+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}
