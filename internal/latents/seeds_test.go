package latents

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGenerateSeeds_DistinctAndInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seeds, err := GenerateSeeds(rng, 1000, SeedPool)
	if err != nil {
		t.Fatalf("GenerateSeeds() error = %v", err)
	}
	if len(seeds) != 1000 {
		t.Fatalf("got %d seeds, want 1000", len(seeds))
	}

	seen := make(map[int64]bool, len(seeds))
	for _, s := range seeds {
		if s < 0 || s >= SeedPool {
			t.Errorf("seed %d out of [0, %d)", s, SeedPool)
		}
		if seen[s] {
			t.Errorf("duplicate seed %d", s)
		}
		seen[s] = true
	}
}

func TestGenerateSeeds_Deterministic(t *testing.T) {
	a, err := GenerateSeeds(rand.New(rand.NewSource(7)), 100, SeedPool)
	if err != nil {
		t.Fatalf("GenerateSeeds() error = %v", err)
	}
	b, err := GenerateSeeds(rand.New(rand.NewSource(7)), 100, SeedPool)
	if err != nil {
		t.Fatalf("GenerateSeeds() error = %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seed %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestGenerateSeeds_SmallPoolExhaustsExactly(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seeds, err := GenerateSeeds(rng, 5, 5)
	if err != nil {
		t.Fatalf("GenerateSeeds() error = %v", err)
	}

	seen := make(map[int64]bool)
	for _, s := range seeds {
		seen[s] = true
	}
	if len(seen) != 5 {
		t.Errorf("got %d distinct seeds from a pool of 5, want all 5", len(seen))
	}
}

func TestGenerateSeeds_Exhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	_, err := GenerateSeeds(rng, 10, 5)
	if err == nil {
		t.Fatal("GenerateSeeds() should return error when n exceeds the pool")
	}

	var exhausted *SeedExhaustionError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %T, want *SeedExhaustionError", err)
	}
	if exhausted.Requested != 10 || exhausted.Pool != 5 {
		t.Errorf("error = %+v, want Requested=10 Pool=5", exhausted)
	}
}

func TestGenerateSeeds_Zero(t *testing.T) {
	seeds, err := GenerateSeeds(rand.New(rand.NewSource(1)), 0, SeedPool)
	if err != nil {
		t.Fatalf("GenerateSeeds() error = %v", err)
	}
	if len(seeds) != 0 {
		t.Errorf("got %d seeds, want 0", len(seeds))
	}
}
