// Package world holds the per-location state of the simulation: cells,
// the grid that contains them, and the creature rules.
package world

import (
	"image/color"
	"math"
)

// Category tags what occupies a cell.
type Category uint8

const (
	Empty    Category = iota // Nothing lives here; health is always 0.
	Predator                 // Loses health each generation, eats prey.
	Prey                     // Gains health each generation, splits at a threshold.
)

func (c Category) String() string {
	switch c {
	case Empty:
		return "empty"
	case Predator:
		return "predator"
	case Prey:
		return "prey"
	}
	return "unknown"
}

// Display colors, one per category.
var (
	PredatorColor = color.RGBA{255, 0, 0, 255}
	PreyColor     = color.RGBA{0, 255, 0, 255}
	EmptyColor    = color.RGBA{0, 0, 0, 255}
)

// Cell is the state of one grid location. The zero value is an empty cell.
// Cells have no identity; moving a creature means writing a Cell at the new
// location and clearing the old one.
type Cell struct {
	Kind   Category // What lives here.
	Health uint32   // 0 for Empty, at least 1 for a live creature.
}

// NewPredator returns a predator cell with the given health.
func NewPredator(health uint32) Cell {
	return Cell{Kind: Predator, Health: health}
}

// NewPrey returns a prey cell with the given health.
func NewPrey(health uint32) Cell {
	return Cell{Kind: Prey, Health: health}
}

// IsEmpty reports whether nothing lives in the cell.
func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// Color derives the display color from the category alone.
func (c Cell) Color() color.RGBA {
	switch c.Kind {
	case Predator:
		return PredatorColor
	case Prey:
		return PreyColor
	}
	return EmptyColor
}

// AddHealth adds b to a, saturating at the largest representable health.
func AddHealth(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
