package scoring

import (
	"math/rand"
	"sync"
	"time"
)

// Generator draws integers uniformly from the closed interval [min, max].
type Generator interface {
	IntBetween(min, max int) int
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func(min, max int) int

// IntBetween calls f(min, max).
func (f GeneratorFunc) IntBetween(min, max int) int {
	return f(min, max)
}

// randomGenerator is a Generator over math/rand. rand.Rand is not safe for
// concurrent use, so draws are serialized.
type randomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGenerator returns a concurrency-safe Generator. A zero seed seeds
// from the clock; any other seed yields a reproducible sequence.
func NewRandomGenerator(seed int64) Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomGenerator{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // scores are placeholders, not secrets
	}
}

// IntBetween returns a uniform draw from [min, max]. Reversed bounds are swapped.
func (g *randomGenerator) IntBetween(min, max int) int {
	if max < min {
		min, max = max, min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rng.Intn(max-min+1)
}
