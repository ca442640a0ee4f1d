// Package lcg provides the linear congruential generator that drives every
// movement and tie-breaking decision in the simulation.
package lcg

const (
	DefaultSeed uint64 = 42 // Seed used when none is supplied.

	multiplier uint64 = 1103515245
	increment  uint64 = 12345
)

// Generator is a single integer state advanced on every draw.
// It is not safe for concurrent use; each simulation owns its own.
type Generator struct {
	state uint64
}

// New returns a generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{state: seed}
}

// Next advances the state and returns a value in [0, 32768).
// Multiplication and addition wrap on overflow.
func (g *Generator) Next() uint32 {
	g.state = g.state*multiplier + increment
	return uint32((g.state / 65536) % 32768)
}
