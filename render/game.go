// Package render shows a running simulation in an ebiten window.
package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"predprey/population"
	"predprey/sim"
)

// Game adapts a Simulation to ebiten's Update/Draw/Layout loop. Each Update
// advances one generation; each Draw shows the latest one.
type Game struct {
	sim         *sim.Simulation
	observe     sim.Observer      // Called after every generation; may be nil.
	scale       int               // Screen pixels per cell.
	texture     *ebiten.Image     // One pixel per cell.
	pixels      []byte            // RGBA staging buffer for texture.
	counts      population.Counts // Population of the generation on screen.
	done        bool              // Set once the run has ended.
	startTime   time.Time
	totalFrames int
}

// NewGame wraps s. scale below 1 is treated as 1.
func NewGame(s *sim.Simulation, scale int, observe sim.Observer) *Game {
	if scale < 1 {
		scale = 1
	}
	grid := s.Current()
	return &Game{
		sim:       s,
		observe:   observe,
		scale:     scale,
		texture:   ebiten.NewImage(grid.Width(), grid.Height()),
		pixels:    make([]byte, 4*grid.Width()*grid.Height()),
		counts:    population.Count(grid),
		startTime: time.Now(),
	}
}

// Update advances the simulation by one generation. Once a species has died
// out, or the generation limit is reached, it ends the game loop.
func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}
	g.totalFrames++

	g.counts = g.sim.Step()
	gen := g.sim.Generation()
	if g.observe != nil {
		g.observe(gen, g.counts)
	}

	if g.counts.Extinct() {
		g.done = true
	} else if limit := g.sim.Settings().MaxGenerations; limit > 0 && gen >= limit {
		g.done = true
	}
	return nil
}

// Draw paints one pixel per cell, scaled to the window, and overlays the
// population counts and generation number.
func (g *Game) Draw(screen *ebiten.Image) {
	g.sim.Current().CopyRGBA(g.pixels)
	g.texture.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.texture, op)

	text.Draw(screen, fmt.Sprintf("Predators: %d", g.counts.Predators), basicfont.Face7x13, 30, 30, color.White)
	text.Draw(screen, fmt.Sprintf("Prey: %d", g.counts.Prey), basicfont.Face7x13, 30, 50, color.White)
	text.Draw(screen, fmt.Sprintf("Iterations: %d", g.sim.Generation()), basicfont.Face7x13, 30, 70, color.White)
}

// Layout keeps the logical screen at the scaled grid size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := g.sim.Current()
	return grid.Width() * g.scale, grid.Height() * g.scale
}

// AverageFPS returns frames per second since the game was created, or 0 if
// no time has elapsed.
func (g *Game) AverageFPS() float64 {
	elapsed := time.Since(g.startTime).Seconds()
	if elapsed > 0 {
		return float64(g.totalFrames) / elapsed
	}
	return 0.0
}

// Result reports how the run ended.
func (g *Game) Result() sim.Result {
	_, extinct := g.sim.Extinction()
	return sim.Result{
		Generations: g.sim.Generation(),
		Final:       g.counts,
		Extinct:     extinct,
	}
}

// Run opens a window sized to the scaled grid and blocks until the game
// ends or the window is closed.
func Run(g *Game, title string) error {
	grid := g.sim.Current()
	ebiten.SetWindowSize(grid.Width()*g.scale, grid.Height()*g.scale)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
