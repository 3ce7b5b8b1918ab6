package gacha

import "math/rand/v2"

// RandomSource supplies uniform random values in [0, 1).
// It is injected so deterministic sequences can be supplied in tests.
type RandomSource interface {
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// DefaultSource returns the process-default random source
func DefaultSource() RandomSource {
	return defaultSource{}
}

type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a reproducible random source for tests and
// simulation runs. The same seed always yields the same draw sequence.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 {
	return s.r.Float64()
}
