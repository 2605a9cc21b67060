package latents

import "math/rand"

// SeedPool is the exclusive upper bound for scene seeds.
const SeedPool int64 = 2147483647

// GenerateSeeds draws n distinct seeds uniformly without replacement from
// [0, pool). Each scene's entire randomization stream is derived from its
// seed, so distinctness guarantees no two scenes in a batch share a layout.
// In a concurrent batch the draw must happen once, serially, before fan-out.
func GenerateSeeds(rng *rand.Rand, n int, pool int64) ([]int64, error) {
	if pool <= 0 || int64(n) > pool {
		return nil, &SeedExhaustionError{Requested: n, Pool: pool}
	}

	seen := make(map[int64]struct{}, n)
	seeds := make([]int64, 0, n)
	for len(seeds) < n {
		s := rng.Int63n(pool)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		seeds = append(seeds, s)
	}
	return seeds, nil
}
