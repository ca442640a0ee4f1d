// Package placement scatters the initial population across a grid.
package placement

import (
	"golang.org/x/exp/rand"

	"predprey/world"
)

// Placer puts up to count creatures of kind on g and returns how many
// cells newly hold kind. Placements may land on occupied cells and
// overwrite them, so the result can be lower than count.
type Placer interface {
	Place(kind world.Category, count int, g *world.Grid) int
}

// Uniform draws every coordinate independently and uniformly over the grid.
// It is separate from the generator that drives the simulation itself.
type Uniform struct {
	rng *rand.Rand
	cfg world.Config
}

// NewUniform returns a placer seeded with seed that spawns creatures with
// the health configured in cfg.
func NewUniform(seed uint64, cfg world.Config) *Uniform {
	return &Uniform{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg,
	}
}

// Place implements Placer.
func (u *Uniform) Place(kind world.Category, count int, g *world.Grid) int {
	if g.Height() == 0 || g.Width() == 0 {
		return 0
	}
	placed := 0
	for i := 0; i < count; i++ {
		row := u.rng.Intn(g.Height())
		col := u.rng.Intn(g.Width())
		if g.Get(row, col).Kind != kind {
			placed++
		}
		g.Set(row, col, u.cfg.Spawn(kind))
	}
	return placed
}

// Fixed places creatures at a preset list of coordinates, in order. It is
// used to reproduce a known starting layout.
type Fixed struct {
	Cells map[world.Category][][2]int // Coordinates as {row, col} per kind.
	Cfg   world.Config
}

// Place implements Placer. At most count coordinates are used.
func (f Fixed) Place(kind world.Category, count int, g *world.Grid) int {
	placed := 0
	for i, p := range f.Cells[kind] {
		if i >= count {
			break
		}
		if g.Get(p[0], p[1]).Kind != kind {
			placed++
		}
		g.Set(p[0], p[1], f.Cfg.Spawn(kind))
	}
	return placed
}
