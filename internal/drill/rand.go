package drill

import "math/rand/v2"

// Rand is the random source used for shuffles and distractor selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform int in [0, n). n > 0.
	IntN(n int) int
}

// NewRand returns a deterministic source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type systemRand struct{}

func (systemRand) IntN(n int) int { return rand.IntN(n) }

// SystemRand returns a source backed by the runtime's global generator.
func SystemRand() Rand {
	return systemRand{}
}

// Shuffle permutes s in place with Fisher-Yates: for i from the last index
// down to 1, swap s[i] with s[j] for a uniform j in [0, i].
func Shuffle[T any](s []T, rng Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
