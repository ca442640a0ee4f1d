package sim

import (
	"errors"
	"fmt"

	"predprey/lcg"
	"predprey/world"
)

// ErrInvalidSettings is wrapped by every error returned from Settings.Validate.
var ErrInvalidSettings = errors.New("invalid simulation settings")

// Settings fixes everything about a run before it starts.
type Settings struct {
	Height, Width int // Grid dimensions, fixed for the run.

	PreyDensity     float64 // Fraction of the area to seed with prey.
	PredatorDensity float64 // Fraction of the area to seed with predators.
	PreyCount       int     // Absolute prey count; overrides PreyDensity when > 0.
	PredatorCount   int     // Absolute predator count; overrides PredatorDensity when > 0.

	Rules          world.Config
	Seed           uint64 // Seed of the movement generator.
	MaxGenerations int    // Stop after this many generations; 0 means no limit.
}

// DefaultSettings returns an 800x600 grid with 1% prey and 0.1% predators.
func DefaultSettings() Settings {
	return Settings{
		Height:          600,
		Width:           800,
		PreyDensity:     0.01,
		PredatorDensity: 0.001,
		Rules:           world.DefaultConfig(),
		Seed:            lcg.DefaultSeed,
	}
}

// Validate reports configuration mistakes before the grid is built.
func (s Settings) Validate() error {
	if s.Height <= 0 || s.Width <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidSettings, s.Width, s.Height)
	}
	if s.PreyDensity < 0 || s.PreyDensity > 1 {
		return fmt.Errorf("%w: prey density %v outside [0,1]", ErrInvalidSettings, s.PreyDensity)
	}
	if s.PredatorDensity < 0 || s.PredatorDensity > 1 {
		return fmt.Errorf("%w: predator density %v outside [0,1]", ErrInvalidSettings, s.PredatorDensity)
	}
	if s.PreyCount < 0 || s.PredatorCount < 0 {
		return fmt.Errorf("%w: creature counts must not be negative", ErrInvalidSettings)
	}
	if s.MaxGenerations < 0 {
		return fmt.Errorf("%w: max generations must not be negative", ErrInvalidSettings)
	}
	if err := s.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// Populations returns how many prey and predators to scatter. Densities are
// multiplied by the area and truncated.
func (s Settings) Populations() (prey, predators int) {
	area := float64(s.Height * s.Width)
	prey = int(area * s.PreyDensity)
	if s.PreyCount > 0 {
		prey = s.PreyCount
	}
	predators = int(area * s.PredatorDensity)
	if s.PredatorCount > 0 {
		predators = s.PredatorCount
	}
	return prey, predators
}
