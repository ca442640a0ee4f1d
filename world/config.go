package world

import (
	"errors"
	"fmt"
)

// PredatorStarvationHealth is the health at which a predator dies at the
// start of its turn instead of acting.
const PredatorStarvationHealth uint32 = 1

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid creature config")

// Config holds the creature rules. It does not change during a run.
type Config struct {
	PreyInitialHealth     uint32 // Health of newly placed or newly split prey.
	PredatorInitialHealth uint32 // Health of newly placed or newly spawned predators.
	PreySplitThreshold    uint32 // Prey at or above this health split when they move.
}

// DefaultConfig returns the rules used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		PreyInitialHealth:     1,
		PredatorInitialHealth: 5,
		PreySplitThreshold:    3,
	}
}

// Validate rejects zero values: a live creature needs health, and a zero
// split threshold would make every moving prey split.
func (c Config) Validate() error {
	if c.PreyInitialHealth == 0 {
		return fmt.Errorf("%w: prey initial health must be at least 1", ErrInvalidConfig)
	}
	if c.PredatorInitialHealth == 0 {
		return fmt.Errorf("%w: predator initial health must be at least 1", ErrInvalidConfig)
	}
	if c.PreySplitThreshold == 0 {
		return fmt.Errorf("%w: prey split threshold must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Spawn returns a fresh cell of the given kind with its configured health.
func (c Config) Spawn(kind Category) Cell {
	switch kind {
	case Predator:
		return NewPredator(c.PredatorInitialHealth)
	case Prey:
		return NewPrey(c.PreyInitialHealth)
	}
	return Cell{}
}
