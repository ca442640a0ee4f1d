// Package population counts live creatures and detects extinction.
package population

import "predprey/world"

// Counts is the number of live predators and prey on a grid.
type Counts struct {
	Predators int
	Prey      int
}

// Extinct reports whether either species has died out.
func (c Counts) Extinct() bool {
	return c.Predators == 0 || c.Prey == 0
}

// Count scans g once and tallies each category.
func Count(g *world.Grid) Counts {
	var c Counts
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			switch g.Get(row, col).Kind {
			case world.Predator:
				c.Predators++
			case world.Prey:
				c.Prey++
			case world.Empty:
			}
		}
	}
	return c
}

// Record is the population observed after one generation.
type Record struct {
	Generation int
	Counts
}

// Tracker keeps the population history of a run and remembers when
// extinction happened.
type Tracker struct {
	history    []Record
	extinctAt  int
	hasExtinct bool
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe counts g as the state after generation and records it.
// The first generation seen extinct is kept as the extinction point.
func (t *Tracker) Observe(generation int, g *world.Grid) Counts {
	c := Count(g)
	t.history = append(t.history, Record{Generation: generation, Counts: c})
	if c.Extinct() && !t.hasExtinct {
		t.hasExtinct = true
		t.extinctAt = generation
	}
	return c
}

// Extinction returns the generation at which a species died out.
func (t *Tracker) Extinction() (int, bool) {
	return t.extinctAt, t.hasExtinct
}

// Latest returns the most recent record, if any.
func (t *Tracker) Latest() (Record, bool) {
	if len(t.history) == 0 {
		return Record{}, false
	}
	return t.history[len(t.history)-1], true
}

// History returns a copy of every record in observation order.
func (t *Tracker) History() []Record {
	out := make([]Record, len(t.history))
	copy(out, t.history)
	return out
}
