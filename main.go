// Command predprey simulates predators and prey on a bounded 2D grid
// until one species dies out.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"predprey/batch"
	"predprey/placement"
	"predprey/population"
	"predprey/render"
	"predprey/report"
	"predprey/sim"
)

// options are the command-line settings that are not part of sim.Settings.
type options struct {
	headless    bool
	scale       int
	scatterSeed uint64
	history     string
	results     string
	trials      int
	workers     int
}

func main() {
	log.SetPrefix("predprey: ")

	settings, opts := parseFlags(os.Args[1:])
	if err := settings.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Ctrl-C finishes the generation in progress, then stops.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case opts.trials > 1:
		err = runBatch(ctx, settings, opts)
	case opts.headless:
		err = runHeadless(ctx, settings, opts)
	default:
		err = runWindow(settings, opts)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// parseFlags reads the command line into settings. Short aliases follow
// the original tool's flags.
func parseFlags(args []string) (sim.Settings, options) {
	settings := sim.DefaultSettings()
	opts := options{scale: 1, scatterSeed: uint64(time.Now().UnixNano())}

	fs := flag.NewFlagSet("predprey", flag.ExitOnError)
	fs.IntVar(&settings.Width, "width", settings.Width, "grid width in cells")
	fs.IntVar(&settings.Height, "height", settings.Height, "grid height in cells")

	fs.Func("prey-health", "initial health of prey (default 1)", uintFlag(&settings.Rules.PreyInitialHealth))
	fs.Func("p", "alias for -prey-health", uintFlag(&settings.Rules.PreyInitialHealth))
	fs.Func("prey-split", "health at which moving prey split (default 3)", uintFlag(&settings.Rules.PreySplitThreshold))
	fs.Func("s", "alias for -prey-split", uintFlag(&settings.Rules.PreySplitThreshold))
	fs.Func("predator-health", "initial health of predators (default 5)", uintFlag(&settings.Rules.PredatorInitialHealth))
	fs.Func("h", "alias for -predator-health", uintFlag(&settings.Rules.PredatorInitialHealth))

	fs.Float64Var(&settings.PredatorDensity, "predators", settings.PredatorDensity, "fraction of cells seeded with predators")
	fs.Float64Var(&settings.PredatorDensity, "r", settings.PredatorDensity, "alias for -predators")
	fs.Float64Var(&settings.PreyDensity, "prey", settings.PreyDensity, "fraction of cells seeded with prey")
	fs.Float64Var(&settings.PreyDensity, "y", settings.PreyDensity, "alias for -prey")
	fs.IntVar(&settings.PredatorCount, "predator-count", 0, "absolute number of predators, overrides -predators")
	fs.IntVar(&settings.PreyCount, "prey-count", 0, "absolute number of prey, overrides -prey")

	fs.Uint64Var(&settings.Seed, "seed", settings.Seed, "seed of the movement generator")
	fs.Uint64Var(&opts.scatterSeed, "scatter-seed", opts.scatterSeed, "seed of the initial placement (default: current time)")
	fs.IntVar(&settings.MaxGenerations, "max-generations", 0, "stop after this many generations (0 = until extinction)")

	fs.BoolVar(&opts.headless, "headless", false, "run without a window")
	fs.IntVar(&opts.scale, "scale", opts.scale, "screen pixels per cell")
	fs.StringVar(&opts.history, "history", "", "write per-generation counts to this CSV file")
	fs.StringVar(&opts.results, "results", "simulation_results.csv", "append a run summary to this CSV file (empty to disable)")
	fs.IntVar(&opts.trials, "trials", 1, "number of independent headless trials")
	fs.IntVar(&opts.workers, "workers", 0, "trials run at once (0 = one per CPU)")

	fs.Parse(args)
	return settings, opts
}

func runHeadless(ctx context.Context, settings sim.Settings, opts options) error {
	s, err := sim.New(settings, placement.NewUniform(opts.scatterSeed, settings.Rules))
	if err != nil {
		return err
	}
	logInitial(s)

	observe, closeHistory, err := openHistory(opts.history)
	if err != nil {
		return err
	}

	start := time.Now()
	res, runErr := s.Run(ctx, observe)
	elapsed := time.Since(start)
	if err := closeHistory(); err != nil {
		return err
	}
	if runErr != nil {
		log.Printf("run interrupted: %v", runErr)
	}
	logResult(res)

	return writeResults(opts.results, report.Summary{
		Width: settings.Width, Height: settings.Height,
		Generations: res.Generations,
		Extinct:     res.Extinct,
		Final:       res.Final,
		Elapsed:     elapsed,
	})
}

func runWindow(settings sim.Settings, opts options) error {
	s, err := sim.New(settings, placement.NewUniform(opts.scatterSeed, settings.Rules))
	if err != nil {
		return err
	}
	logInitial(s)

	observe, closeHistory, err := openHistory(opts.history)
	if err != nil {
		return err
	}

	start := time.Now()
	game := render.NewGame(s, opts.scale, observe)
	runErr := render.Run(game, "PredatorVsPrey")
	elapsed := time.Since(start)
	if err := closeHistory(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	res := game.Result()
	log.Printf("average frame rate %.2f", game.AverageFPS())
	logResult(res)

	return writeResults(opts.results, report.Summary{
		Width: settings.Width, Height: settings.Height,
		Generations: res.Generations,
		Extinct:     res.Extinct,
		Final:       res.Final,
		Elapsed:     elapsed,
	})
}

func runBatch(ctx context.Context, settings sim.Settings, opts options) error {
	if settings.MaxGenerations == 0 {
		log.Printf("warning: -max-generations is 0; trials where both species survive never end")
	}
	trials, err := batch.Run(ctx, settings, batch.Options{
		Trials:      opts.trials,
		Workers:     opts.workers,
		ScatterSeed: opts.scatterSeed,
	})
	if err != nil {
		return err
	}

	rows := make([]report.Summary, 0, len(trials))
	for _, tr := range trials {
		log.Printf("trial %d: %d generations, extinct=%v, predators=%d prey=%d",
			tr.Index, tr.Result.Generations, tr.Result.Extinct, tr.Result.Final.Predators, tr.Result.Final.Prey)
		rows = append(rows, report.Summary{
			Width: settings.Width, Height: settings.Height,
			Trial:       tr.Index,
			Generations: tr.Result.Generations,
			Extinct:     tr.Result.Extinct,
			Final:       tr.Result.Final,
			Elapsed:     tr.Elapsed,
		})
	}
	return writeResults(opts.results, rows...)
}

// openHistory returns an observer that streams counts to path, or a no-op
// observer when path is empty. The returned close function flushes the file.
func openHistory(path string) (sim.Observer, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	h, err := report.NewHistoryWriter(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	var writeErr error
	observe := func(gen int, c population.Counts) {
		if writeErr == nil {
			writeErr = h.Record(gen, c)
		}
	}
	closeFn := func() error {
		if err := h.Flush(); err != nil && writeErr == nil {
			writeErr = err
		}
		if err := f.Close(); err != nil && writeErr == nil {
			writeErr = err
		}
		return writeErr
	}
	return observe, closeFn, nil
}

// writeResults stamps every row with host stats and appends them to path.
func writeResults(path string, rows ...report.Summary) error {
	if path == "" {
		return nil
	}
	host, err := report.HostStats()
	if err != nil {
		log.Printf("host stats unavailable: %v", err)
	}
	for i := range rows {
		rows[i].Host = host
	}
	return report.AppendSummary(path, rows...)
}

func logInitial(s *sim.Simulation) {
	initial := s.Initial()
	log.Printf("starting %dx%d grid with %d predators and %d prey",
		s.Current().Width(), s.Current().Height(), initial.Predators, initial.Prey)
}

func logResult(res sim.Result) {
	if res.Extinct {
		log.Printf("Species went extinct after %d iterations.", res.Generations)
		return
	}
	log.Printf("Stopped after %d iterations with %d predators and %d prey.",
		res.Generations, res.Final.Predators, res.Final.Prey)
}

// uintFlag parses a flag value into a health or threshold.
func uintFlag(dst *uint32) func(string) error {
	return func(v string) error {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		*dst = uint32(n)
		return nil
	}
}
