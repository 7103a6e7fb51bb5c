package worksim

import "math/rand"

// defaultSeed is the fixed "zero" seed used when callers pass seed==0,
// mirroring the teacher tsp package's rngFromSeed policy so that a caller who
// forgets to set a seed still gets reproducible (not all-zero) draws.
const defaultSeed int64 = 1

// NewRNG returns a deterministic source for Simulate. Same seed, same problem
// ⇒ identical completions and totals (spec §5, §8 invariant 11).
func NewRNG(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultSeed
	}
	return rand.New(rand.NewSource(s))
}
