package anneal

import (
	"context"
	"errors"
	"fmt"

	"github.com/Coyote-git/Better-keyboard/pkg/cost"
)

const (
	// DefaultIterations matches the reference tool's per-run budget.
	DefaultIterations = 500_000
	// DefaultCooling is the geometric temperature decay per iteration.
	DefaultCooling = 0.9995
	// DefaultHistorySamples is how many (iteration, energy) points a run
	// records for diagnostics.
	DefaultHistorySamples = 200
	// DefaultCalibrationProbes is how many random swap deltas the
	// temperature calibration samples.
	DefaultCalibrationProbes = 1000
)

var (
	ErrBadIterations = errors.New("anneal: iterations must be positive")
	ErrBadCooling    = errors.New("anneal: cooling factor must lie in (0,1)")
)

// Config parameterizes one annealing run.
type Config struct {
	Iterations        int
	Cooling           float64
	Seed              uint64
	HistorySamples    int // 0 -> DefaultHistorySamples
	CalibrationProbes int // 0 -> DefaultCalibrationProbes
}

// Validate rejects unusable run parameters.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadIterations, c.Iterations)
	}
	if c.Cooling <= 0 || c.Cooling >= 1 {
		return fmt.Errorf("%w: got %v", ErrBadCooling, c.Cooling)
	}
	return nil
}

// Sample is one point of a run's energy trajectory.
type Sample struct {
	Iteration int
	Energy    float64
}

// Record is the outcome of a single run.
type Record struct {
	Run        int
	Iterations int // iterations actually executed
	Cooling    float64
	Seed       uint64
	StartTemp  float64
	Best       *cost.Arrangement
	BestEnergy float64
	History    []Sample
	Accepted   int64
	Rejected   int64
}

// Run executes one full annealing run against a shared immutable model.
// The context is checked between iterations; on cancellation the record
// carries the best arrangement found so far alongside the context error.
func Run(ctx context.Context, m *cost.Model, cfg Config, runID int) (*Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	probes := cfg.CalibrationProbes
	if probes <= 0 {
		probes = DefaultCalibrationProbes
	}
	samples := cfg.HistorySamples
	if samples <= 0 {
		samples = DefaultHistorySamples
	}

	chain := NewChain(m, cfg.Cooling, cfg.Seed)
	startTemp := chain.Calibrate(probes)

	interval := cfg.Iterations / samples
	if interval < 1 {
		interval = 1
	}

	rec := &Record{
		Run:       runID,
		Cooling:   cfg.Cooling,
		Seed:      cfg.Seed,
		StartTemp: startTemp,
		History:   make([]Sample, 0, samples+1),
	}

	var runErr error
	for step := 0; step < cfg.Iterations; step++ {
		if step&1023 == 0 && ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}
		chain.Step()
		rec.Iterations++

		if step%interval == 0 {
			rec.History = append(rec.History, Sample{Iteration: step, Energy: chain.Energy()})
		}
	}

	rec.Best, rec.BestEnergy = chain.Best()
	rec.Accepted = chain.Accepted
	rec.Rejected = chain.Rejected
	return rec, runErr
}
