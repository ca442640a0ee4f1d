// Package batch runs independent simulation trials concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"predprey/placement"
	"predprey/sim"
)

// ErrNoTrials is returned when Options asks for no trials.
var ErrNoTrials = errors.New("batch: at least one trial is required")

// Options controls a batch.
type Options struct {
	Trials      int    // Number of independent runs.
	Workers     int    // Runs in flight at once; 0 means one per CPU.
	ScatterSeed uint64 // Trial i scatters its population with ScatterSeed+i.
}

// Trial is the outcome of one run.
type Trial struct {
	Index   int
	Result  sim.Result
	Elapsed time.Duration
}

// Run executes opts.Trials simulations built from settings. Every trial owns
// its simulation and generator, so nothing is shared between goroutines.
// Settings.MaxGenerations should be set, or a run that never goes extinct
// will only stop when ctx is cancelled. Results are returned in trial order.
func Run(ctx context.Context, settings sim.Settings, opts Options) ([]Trial, error) {
	if opts.Trials <= 0 {
		return nil, ErrNoTrials
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)
	trials := make([]Trial, opts.Trials)

	for i := 0; i < opts.Trials; i++ {
		if err := sem.Acquire(gctx, 1); err != nil {
			break // Cancelled; the cause is reported below.
		}
		g.Go(func() error {
			defer sem.Release(1)

			start := time.Now()
			s, err := sim.New(settings, placement.NewUniform(opts.ScatterSeed+uint64(i), settings.Rules))
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			res, err := s.Run(gctx, nil)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			trials[i] = Trial{Index: i, Result: res, Elapsed: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return trials, nil
}
