package sim

import (
	"context"
	"errors"
	"testing"

	"predprey/placement"
	"predprey/population"
	"predprey/world"
)

func scenarioSettings() Settings {
	return Settings{
		Height:        5,
		Width:         5,
		PreyCount:     1,
		PredatorCount: 1,
		Rules:         world.Config{PreyInitialHealth: 1, PredatorInitialHealth: 5, PreySplitThreshold: 3},
		Seed:          42,
	}
}

func scenarioPlacer(rules world.Config) placement.Placer {
	return placement.Fixed{
		Cells: map[world.Category][][2]int{
			world.Predator: {{2, 2}},
			world.Prey:     {{2, 3}},
		},
		Cfg: rules,
	}
}

func TestPredatorEatsOnlyPreyAndRunEndsAtGenerationOne(t *testing.T) {
	settings := scenarioSettings()
	s, err := New(settings, scenarioPlacer(settings.Rules))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Initial(); got != (population.Counts{Predators: 1, Prey: 1}) {
		t.Fatalf("initial = %+v", got)
	}

	res, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Extinct || res.Generations != 1 {
		t.Fatalf("got %+v, want extinction at generation 1", res)
	}
	if res.Final.Prey != 0 {
		t.Fatalf("prey = %d, want 0", res.Final.Prey)
	}
	if gen, ok := s.Extinction(); !ok || gen != 1 {
		t.Fatalf("Extinction() = (%d, %v)", gen, ok)
	}

	cur := s.Current()
	if !cur.Get(2, 2).IsEmpty() {
		t.Fatalf("(2,2) = %+v, want empty", cur.Get(2, 2))
	}
	if got := cur.Get(2, 3); got.Kind != world.Predator {
		t.Fatalf("(2,3) = %+v, want the prey's cell taken by a predator", got)
	}
}

func TestSwapTwiceRestoresBuffers(t *testing.T) {
	settings := scenarioSettings()
	s, err := New(settings, scenarioPlacer(settings.Rules))
	if err != nil {
		t.Fatal(err)
	}
	r0, w0 := s.Buffers()

	s.Swap()
	r1, w1 := s.Buffers()
	if r1 != w0 || w1 != r0 {
		t.Fatal("one swap should exchange the buffers")
	}

	s.Swap()
	r2, w2 := s.Buffers()
	if r2 != r0 || w2 != w0 {
		t.Fatal("two swaps should restore the original buffers")
	}
}

func TestStepWritesIntoOtherBuffer(t *testing.T) {
	settings := scenarioSettings()
	s, err := New(settings, scenarioPlacer(settings.Rules))
	if err != nil {
		t.Fatal(err)
	}
	_, w0 := s.Buffers()
	s.Step()
	if s.Current() != w0 {
		t.Fatal("after a step the written buffer becomes current")
	}
	if s.Generation() != 1 {
		t.Fatalf("generation = %d", s.Generation())
	}
}

func TestRunsAreDeterministic(t *testing.T) {
	settings := DefaultSettings()
	settings.Height, settings.Width = 40, 60
	settings.PreyDensity, settings.PredatorDensity = 0.2, 0.02
	settings.MaxGenerations = 60

	a, err := New(settings, placement.NewUniform(7, settings.Rules))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(settings, placement.NewUniform(7, settings.Rules))
	if err != nil {
		t.Fatal(err)
	}
	if !a.Current().Equal(b.Current()) {
		t.Fatal("initial layouts differ")
	}

	for gen := 1; gen <= settings.MaxGenerations; gen++ {
		ca, cb := a.Step(), b.Step()
		if ca != cb {
			t.Fatalf("gen %d: counts %+v != %+v", gen, ca, cb)
		}
		ra, wa := a.Buffers()
		rb, wb := b.Buffers()
		if !ra.Equal(rb) || !wa.Equal(wb) {
			t.Fatalf("gen %d: buffers diverged", gen)
		}
		if ca.Extinct() {
			break
		}
	}
}

func TestEmptyHealthInvariantHolds(t *testing.T) {
	settings := DefaultSettings()
	settings.Height, settings.Width = 30, 30
	settings.PreyDensity, settings.PredatorDensity = 0.3, 0.05
	s, err := New(settings, placement.NewUniform(11, settings.Rules))
	if err != nil {
		t.Fatal(err)
	}

	for gen := 0; gen < 40; gen++ {
		read, write := s.Buffers()
		for _, g := range []*world.Grid{read, write} {
			for r := 0; r < g.Height(); r++ {
				for c := 0; c < g.Width(); c++ {
					cell := g.Get(r, c)
					if (cell.Kind == world.Empty) != (cell.Health == 0) {
						t.Fatalf("gen %d: (%d,%d) = %+v", gen, r, c, cell)
					}
				}
			}
		}
		if s.Step().Extinct() {
			break
		}
	}
}

func TestRunStopsAtGenerationLimit(t *testing.T) {
	settings := Settings{
		Height: 3, Width: 3,
		PreyCount: 1, PredatorCount: 1,
		Rules:          world.Config{PreyInitialHealth: 1, PredatorInitialHealth: 100, PreySplitThreshold: 50},
		Seed:           42,
		MaxGenerations: 1,
	}
	// Predator and prey in opposite corners never meet in one generation.
	p := placement.Fixed{
		Cells: map[world.Category][][2]int{
			world.Predator: {{0, 0}},
			world.Prey:     {{2, 2}},
		},
		Cfg: settings.Rules,
	}
	s, err := New(settings, p)
	if err != nil {
		t.Fatal(err)
	}

	var seen []int
	res, err := s.Run(context.Background(), func(gen int, _ population.Counts) {
		seen = append(seen, gen)
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Extinct || res.Generations != 1 {
		t.Fatalf("got %+v", res)
	}
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("observer saw %v", seen)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	settings := scenarioSettings()
	s, err := New(settings, scenarioPlacer(settings.Rules))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if res.Generations != 0 {
		t.Fatalf("no generation should run, got %d", res.Generations)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero width", func(s *Settings) { s.Width = 0 }},
		{"zero height", func(s *Settings) { s.Height = 0 }},
		{"density above one", func(s *Settings) { s.PreyDensity = 1.5 }},
		{"negative density", func(s *Settings) { s.PredatorDensity = -0.1 }},
		{"negative count", func(s *Settings) { s.PreyCount = -1 }},
		{"negative limit", func(s *Settings) { s.MaxGenerations = -2 }},
		{"zero split threshold", func(s *Settings) { s.Rules.PreySplitThreshold = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("got %v, want ErrInvalidSettings", err)
			}
		})
	}

	s := DefaultSettings()
	s.Rules.PreyInitialHealth = 0
	if err := s.Validate(); !errors.Is(err, world.ErrInvalidConfig) {
		t.Fatalf("got %v, want the rules error to be wrapped", err)
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestPopulations(t *testing.T) {
	s := DefaultSettings()
	prey, predators := s.Populations()
	if prey != 4800 || predators != 480 {
		t.Fatalf("got %d prey, %d predators", prey, predators)
	}

	s.PreyCount, s.PredatorCount = 3, 2
	prey, predators = s.Populations()
	if prey != 3 || predators != 2 {
		t.Fatalf("absolute counts should win, got %d, %d", prey, predators)
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.Width = 0
	if _, err := New(s, placement.NewUniform(1, s.Rules)); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("got %v", err)
	}
}
