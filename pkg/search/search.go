// Package search orchestrates optimization batches: several independent
// annealing runs against one shared cost model, a random baseline for
// comparison, and selection of the global best.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Coyote-git/Better-keyboard/pkg/anneal"
	"github.com/Coyote-git/Better-keyboard/pkg/cost"
	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
	"github.com/Coyote-git/Better-keyboard/pkg/result"
)

const (
	// DefaultRuns is the number of independent annealing runs per batch.
	DefaultRuns = 5
	// DefaultBaselineSamples is the number of uniform random arrangements
	// averaged into the baseline energy.
	DefaultBaselineSamples = 100

	// seedStride spaces per-run seeds derived from the root seed.
	seedStride = 0x9E3779B97F4A7C15
	// baselineSeedOffset derives the baseline sampling stream from the root
	// seed independently of the run count.
	baselineSeedOffset = 0xD1B54A32D192ED03
)

var (
	ErrBadRuns     = errors.New("search: run count must be positive")
	ErrBadBaseline = errors.New("search: baseline sample count must be positive")
	ErrNoRuns      = errors.New("search: no run completed")
)

// Config parameterizes an optimization batch. A nil Tables falls back to
// the English tables; a zero Weights falls back to the reference weights.
type Config struct {
	Geometry geometry.Config
	Tables   *freq.Tables
	Weights  cost.Weights

	Runs            int
	Iterations      int
	Cooling         float64
	BaselineSamples int

	// Seed is the root random seed; 0 draws one at random. Per-run seeds
	// and the baseline stream are derived from it, so a fixed root seed
	// reproduces the whole batch bit for bit, sequential or parallel.
	Seed uint64

	// Workers bounds how many runs execute concurrently; <=1 runs them
	// sequentially. Runs share only the immutable model, so any value is
	// safe and does not change results.
	Workers int

	// Timeout, when positive, bounds the wall-clock time of the whole
	// batch. Runs cut short still contribute their best-so-far state.
	Timeout time.Duration

	Logger *slog.Logger
}

// DefaultConfig returns the reference batch configuration.
func DefaultConfig() Config {
	return Config{
		Geometry:        geometry.DefaultConfig(),
		Weights:         cost.DefaultWeights(),
		Runs:            DefaultRuns,
		Iterations:      anneal.DefaultIterations,
		Cooling:         anneal.DefaultCooling,
		BaselineSamples: DefaultBaselineSamples,
	}
}

// Validate rejects unusable configurations before any run starts.
func (c Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	if c.Runs <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadRuns, c.Runs)
	}
	if c.BaselineSamples <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadBaseline, c.BaselineSamples)
	}
	return anneal.Config{Iterations: c.Iterations, Cooling: c.Cooling}.Validate()
}

// Run executes the batch and returns the best result across all runs.
// Cancelling ctx (or exceeding Timeout) stops cleanly with the best
// arrangement found up to that point.
func Run(ctx context.Context, cfg Config) (*result.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With(slog.String("component", "search"))
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	lay, err := geometry.Compute(cfg.Geometry)
	if err != nil {
		return nil, err
	}

	tables := cfg.Tables
	if tables == nil {
		tables = freq.English()
	}
	warnDegenerate(logger, tables)

	weights := cfg.Weights
	if weights == (cost.Weights{}) {
		weights = cost.DefaultWeights()
	}
	model := cost.NewModel(lay, tables, weights)

	rootSeed := cfg.Seed
	if rootSeed == 0 {
		rootSeed = rand.Uint64()
	}

	baseline := Baseline(model, cfg.BaselineSamples, rootSeed+baselineSeedOffset)

	collector := result.NewCollector()
	workers := cfg.Workers
	if workers <= 1 {
		workers = 1
	}

	p := pool.New().WithMaxGoroutines(workers)
	for i := 0; i < cfg.Runs; i++ {
		runID := i
		p.Go(func() {
			start := time.Now()
			rec, runErr := anneal.Run(ctx, model, anneal.Config{
				Iterations: cfg.Iterations,
				Cooling:    cfg.Cooling,
				Seed:       rootSeed + uint64(runID)*seedStride,
			}, runID)
			if rec == nil {
				logger.Error("run failed", slog.Int("run", runID), slog.Any("err", runErr))
				return
			}
			collector.Add(rec)
			if runErr != nil {
				logger.Warn("run aborted",
					slog.Int("run", runID),
					slog.Int("iterations", rec.Iterations),
					slog.Float64("best_energy", rec.BestEnergy),
					slog.Any("err", runErr))
				return
			}
			logger.Info("run complete",
				slog.Int("run", runID),
				slog.Float64("best_energy", rec.BestEnergy),
				slog.Float64("start_temp", rec.StartTemp),
				slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
		})
	}
	p.Wait()

	records := collector.Records()
	if len(records) == 0 {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoRuns, ctx.Err())
		}
		return nil, ErrNoRuns
	}

	best := records[0]
	return &result.Result{
		Best:           best.Best,
		BestEnergy:     best.BestEnergy,
		BestRun:        best.Run,
		BaselineEnergy: baseline,
		History:        best.History,
		Runs:           records,
		Layout:         lay,
		Weights:        weights,
	}, nil
}

// warnDegenerate flags frequency tables that leave energy terms inert or
// weight pairs asymmetrically. Degenerate tables are recoverable: the
// optimizer still runs, the result is just driven by fewer forces.
func warnDegenerate(logger *slog.Logger, tables *freq.Tables) {
	if tables.AllZeroBigrams() {
		logger.Warn("all bigram frequencies are zero; pair separation will not shape the layout")
	}
	if tables.AllZeroLetters() {
		logger.Warn("all letter frequencies are zero; center and reach costs will not shape the layout")
	}
	if pairs := tables.Asymmetry(); len(pairs) > 0 {
		logger.Warn("bigram table records some pairs in one direction only; their weighting is asymmetric",
			slog.Int("pairs", len(pairs)))
	}
}
