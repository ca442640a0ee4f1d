// Package sim owns the two grid buffers of a run, swaps them after every
// generation and stops when a species dies out.
package sim

import (
	"context"

	"predprey/engine"
	"predprey/lcg"
	"predprey/placement"
	"predprey/population"
	"predprey/world"
)

// Simulation is the state of one run. It is not safe for concurrent use.
type Simulation struct {
	settings Settings

	read  *world.Grid // Prior generation.
	write *world.Grid // Next generation.

	generation int
	rng        *lcg.Generator
	tracker    *population.Tracker

	initial population.Counts
}

// Result describes how a run ended.
type Result struct {
	Generations int               // Completed generations.
	Final       population.Counts // Population after the last generation.
	Extinct     bool              // A species died out.
}

// Observer is called after every generation with its number and counts.
type Observer func(generation int, counts population.Counts)

// New validates settings, builds both buffers and scatters the initial
// population with p: prey first, then predators.
func New(settings Settings, p placement.Placer) (*Simulation, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		settings: settings,
		read:     world.NewGrid(settings.Height, settings.Width),
		write:    world.NewGrid(settings.Height, settings.Width),
		rng:      lcg.New(settings.Seed),
		tracker:  population.NewTracker(),
	}

	prey, predators := settings.Populations()
	p.Place(world.Prey, prey, s.read)
	p.Place(world.Predator, predators, s.read)
	s.initial = population.Count(s.read)
	return s, nil
}

// Step runs one generation, counts the result and swaps the buffers so that
// Current returns the generation just written.
func (s *Simulation) Step() population.Counts {
	engine.Advance(s.read, s.write, s.settings.Rules, s.rng)
	s.generation++
	counts := s.tracker.Observe(s.generation, s.write)
	s.Swap()
	return counts
}

// Swap exchanges the roles of the two buffers without copying.
func (s *Simulation) Swap() {
	s.read, s.write = s.write, s.read
}

// Run steps until a species dies out, the generation limit is reached or ctx
// is done. A generation in progress always completes. observe may be nil.
func (s *Simulation) Run(ctx context.Context, observe Observer) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.result(), err
		}
		counts := s.Step()
		if observe != nil {
			observe(s.generation, counts)
		}
		if counts.Extinct() {
			return s.result(), nil
		}
		if s.settings.MaxGenerations > 0 && s.generation >= s.settings.MaxGenerations {
			return s.result(), nil
		}
	}
}

func (s *Simulation) result() Result {
	r := Result{Generations: s.generation}
	if latest, ok := s.tracker.Latest(); ok {
		r.Final = latest.Counts
	} else {
		r.Final = population.Count(s.read)
	}
	_, r.Extinct = s.tracker.Extinction()
	return r
}

// Buffers returns the current read and write grids.
func (s *Simulation) Buffers() (read, write *world.Grid) {
	return s.read, s.write
}

// Current returns the most recently completed generation. Before the first
// Step it is the initial population.
func (s *Simulation) Current() *world.Grid {
	return s.read
}

// Generation returns the number of completed generations.
func (s *Simulation) Generation() int {
	return s.generation
}

// Extinction returns the generation at which a species died out.
func (s *Simulation) Extinction() (int, bool) {
	return s.tracker.Extinction()
}

// History returns the counts recorded after each generation.
func (s *Simulation) History() []population.Record {
	return s.tracker.History()
}

// Initial returns the realized starting population, which can be lower than
// requested when placements overlap.
func (s *Simulation) Initial() population.Counts {
	return s.initial
}

// Settings returns the settings the run was built with.
func (s *Simulation) Settings() Settings {
	return s.settings
}
