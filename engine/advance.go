// Package engine applies one generation of movement, predation,
// reproduction and starvation to a double-buffered grid.
package engine

import "predprey/world"

// Source supplies the draws used for direction choices.
type Source interface {
	Next() uint32
}

// Advance runs one full generation.
//
// Input:
//   - read (*world.Grid): The prior generation. Only cleared or health-updated in place.
//   - write (*world.Grid): The next generation. Not cleared first; stale cells survive unless overwritten.
//   - cfg (world.Config): Creature rules.
//   - rng (Source): Direction draws, one per acting creature.
//
// Output:
//   - None (write holds the next generation on return).
//
// Functionality:
// Cells are visited in row-major order. A predator is resolved against the
// read buffer and a prey against the write buffer, so prey see what earlier
// cells wrote during this same pass. Both grids must have the same size.
func Advance(read, write *world.Grid, cfg world.Config, rng Source) {
	if read.Height() != write.Height() || read.Width() != write.Width() {
		panic("engine: read and write grids differ in size")
	}

	for row := 0; row < read.Height(); row++ {
		for col := 0; col < read.Width(); col++ {
			cell := read.Get(row, col)
			switch cell.Kind {
			case world.Predator:
				advancePredator(read, write, row, col, cell.Health, cfg, rng)
			case world.Prey:
				advancePrey(read, write, row, col, cell.Health, cfg, rng)
			case world.Empty:
			}
		}
	}
}

// advancePredator moves, feeds or starves the predator at (row, col).
//
// Functionality:
//  1. A predator at starvation health dies: both buffers are cleared at (row, col).
//  2. Otherwise it loses one health and scans its neighbors in the read buffer.
//     The first prey found is eaten: its health is added to the predator and a
//     new predator is spawned in its cell. Empty neighbors are safe moves.
//  3. One direction is drawn from all seven. If it is safe the predator moves
//     there, otherwise it stays. Its read cell is cleared either way.
func advancePredator(read, write *world.Grid, row, col int, health uint32, cfg world.Config, rng Source) {
	if health <= world.PredatorStarvationHealth {
		write.Set(row, col, world.Cell{})
		read.Set(row, col, world.Cell{})
		return
	}
	health--

	var safe [len(world.Offsets)]bool
	fed := false
	for i, o := range world.Offsets {
		r, c, ok := read.Neighbor(row, col, o)
		if !ok {
			continue
		}
		switch n := read.Get(r, c); n.Kind {
		case world.Prey:
			if fed {
				continue // One meal per generation.
			}
			fed = true
			health = world.AddHealth(health, n.Health)
			write.Set(r, c, cfg.Spawn(world.Predator))
			read.Set(r, c, world.Cell{})
		case world.Empty:
			safe[i] = true
		case world.Predator:
		}
	}

	dir := draw(rng)
	if safe[dir] {
		r, c, _ := read.Neighbor(row, col, world.Offsets[dir])
		write.Set(r, c, world.NewPredator(health))
	} else {
		write.Set(row, col, world.NewPredator(health))
	}
	read.Set(row, col, world.Cell{})
}

// advancePrey ages, moves and splits the prey at (row, col).
//
// Functionality:
//  1. The prey gains one health; the read cell keeps the new value.
//  2. Neighbors that are empty in the write buffer are safe moves. With none,
//     the prey stays without drawing.
//  3. One direction is drawn from all seven. If it is not safe the prey stays.
//  4. A prey at or above the split threshold leaves a fresh prey behind and
//     places another fresh prey at the destination. Otherwise it moves with
//     its health. The read cell is cleared in both cases.
func advancePrey(read, write *world.Grid, row, col int, health uint32, cfg world.Config, rng Source) {
	health = world.AddHealth(health, 1)
	read.Set(row, col, world.NewPrey(health))

	var safe [len(world.Offsets)]bool
	anySafe := false
	for i, o := range world.Offsets {
		r, c, ok := write.Neighbor(row, col, o)
		if ok && write.Get(r, c).IsEmpty() {
			safe[i] = true
			anySafe = true
		}
	}

	if !anySafe {
		write.Set(row, col, world.NewPrey(health))
		return
	}

	dir := draw(rng)
	if !safe[dir] {
		write.Set(row, col, world.NewPrey(health))
		return
	}

	r, c, _ := write.Neighbor(row, col, world.Offsets[dir])
	if health >= cfg.PreySplitThreshold {
		write.Set(r, c, cfg.Spawn(world.Prey))
		write.Set(row, col, cfg.Spawn(world.Prey))
	} else {
		write.Set(r, c, world.NewPrey(health))
	}
	read.Set(row, col, world.Cell{})
}

// draw picks an index into world.Offsets regardless of which are safe.
func draw(rng Source) int {
	return int(rng.Next() % uint32(len(world.Offsets)))
}
