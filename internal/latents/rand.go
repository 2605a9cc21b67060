package latents

import "math/rand"

// Draw helpers over a seeded stream. The sequence of draws a scene makes is
// part of the reproducibility contract: reordering call sites changes every
// downstream sample for a given seed.

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// intBetween draws an integer from the half-open range [lo, hi).
func intBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

// choice draws one element of opts uniformly.
func choice[T any](rng *rand.Rand, opts []T) T {
	return opts[rng.Intn(len(opts))]
}
