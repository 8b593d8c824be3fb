package anneal

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coyote-git/Better-keyboard/pkg/cost"
	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
)

func englishModel(t *testing.T) *cost.Model {
	t.Helper()
	lay, err := geometry.Compute(geometry.DefaultConfig())
	require.NoError(t, err)
	return cost.NewModel(lay, freq.English(), cost.DefaultWeights())
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Iterations: 1000, Cooling: 0.9995}
	require.NoError(t, valid.Validate())

	for _, tc := range []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero iterations", Config{Iterations: 0, Cooling: 0.9995}, ErrBadIterations},
		{"negative iterations", Config{Iterations: -5, Cooling: 0.9995}, ErrBadIterations},
		{"cooling zero", Config{Iterations: 1000, Cooling: 0}, ErrBadCooling},
		{"cooling one", Config{Iterations: 1000, Cooling: 1}, ErrBadCooling},
		{"cooling above one", Config{Iterations: 1000, Cooling: 1.5}, ErrBadCooling},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.cfg.Validate(), tc.want)
		})
	}
}

func TestMonotonicCooling(t *testing.T) {
	m := englishModel(t)
	chain := NewChain(m, 0.999, 1)
	chain.SetTemperature(2.5)

	const steps = 500
	for i := 0; i < steps; i++ {
		require.Greater(t, chain.Temperature(), 0.0)
		chain.Step()
	}
	want := 2.5 * math.Pow(0.999, steps)
	require.InEpsilon(t, want, chain.Temperature(), 1e-9)
}

func TestBestEnergyNeverIncreases(t *testing.T) {
	m := englishModel(t)
	chain := NewChain(m, 0.9995, 17)
	chain.Calibrate(DefaultCalibrationProbes)

	_, prev := chain.Best()
	for i := 0; i < 5000; i++ {
		chain.Step()
		_, best := chain.Best()
		require.LessOrEqual(t, best, prev, "best energy rose at step %d", i)
		prev = best
	}
}

func TestBestIsCopiedNotAliased(t *testing.T) {
	m := englishModel(t)
	chain := NewChain(m, 0.9995, 3)
	chain.Calibrate(100)

	for i := 0; i < 1000; i++ {
		chain.Step()
	}
	best, bestEnergy := chain.Best()
	require.NoError(t, best.Validate())

	// Mutating the chain further must not disturb the returned best.
	snapshot := best.Letters()
	for i := 0; i < 1000; i++ {
		chain.Step()
	}
	assert.Equal(t, snapshot, best.Letters())

	// And the reported best energy matches a fresh evaluation of it.
	require.InDelta(t, m.Energy(best), bestEnergy, 1e-6)
}

func TestCalibrationTargetsAcceptance(t *testing.T) {
	m := englishModel(t)
	chain := NewChain(m, 0.9995, 5)
	t0 := chain.Calibrate(DefaultCalibrationProbes)

	require.Greater(t, t0, 0.0)
	// By construction, a median-magnitude uphill move is accepted with
	// probability acceptTarget at the starting temperature.
	medianDelta := -t0 * math.Log(acceptTarget)
	require.InEpsilon(t, acceptTarget, math.Exp(-medianDelta/t0), 1e-12)
}

func TestCalibrationZeroMedianFloor(t *testing.T) {
	// All-zero tables make every swap delta zero; calibration must fall
	// back to the floor temperature instead of dividing by log-adjacent
	// zero.
	lay, err := geometry.Compute(geometry.DefaultConfig())
	require.NoError(t, err)
	m := cost.NewModel(lay, freq.New([freq.AlphabetSize]float64{}, nil), cost.DefaultWeights())

	chain := NewChain(m, 0.9995, 5)
	t0 := chain.Calibrate(DefaultCalibrationProbes)
	require.Equal(t, minStartTemp, t0)
	require.Equal(t, minStartTemp, chain.Temperature())
}

func TestRunDeterminism(t *testing.T) {
	m := englishModel(t)
	cfg := Config{Iterations: 20_000, Cooling: 0.9995, Seed: 424242}

	a, err := Run(context.Background(), m, cfg, 0)
	require.NoError(t, err)
	b, err := Run(context.Background(), m, cfg, 0)
	require.NoError(t, err)

	assert.Equal(t, a.BestEnergy, b.BestEnergy)
	assert.Equal(t, a.Best.Letters(), b.Best.Letters())
	assert.Equal(t, a.StartTemp, b.StartTemp)
	assert.Equal(t, a.History, b.History)
	assert.Equal(t, a.Accepted, b.Accepted)
}

func TestRunHistoryCadence(t *testing.T) {
	m := englishModel(t)
	cfg := Config{Iterations: 10_000, Cooling: 0.9995, Seed: 9, HistorySamples: 200}

	rec, err := Run(context.Background(), m, cfg, 0)
	require.NoError(t, err)
	require.Len(t, rec.History, 200)
	assert.Equal(t, 0, rec.History[0].Iteration)
	assert.Equal(t, 50, rec.History[1].Iteration)

	for i := 1; i < len(rec.History); i++ {
		assert.Greater(t, rec.History[i].Iteration, rec.History[i-1].Iteration)
	}
}

func TestRunCancellation(t *testing.T) {
	m := englishModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec, err := Run(ctx, m, Config{Iterations: 1_000_000, Cooling: 0.9995, Seed: 1}, 0)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rec)
	assert.Less(t, rec.Iterations, 1_000_000)
	require.NotNil(t, rec.Best)
	require.NoError(t, rec.Best.Validate())
}

func TestSeparationScenario(t *testing.T) {
	// With only the (T,H) bigram active and uniform letter frequencies,
	// the center and reach terms are identical for every arrangement, so
	// the only force is pushing T and H apart. After annealing, their
	// distance must be at least the initial one.
	lay, err := geometry.Compute(geometry.Config{
		NInner:      8,
		NOuter:      18,
		RInner:      1.0,
		ROuter:      2.2,
		GapAngles:   []float64{180, 0},
		GapWidthDeg: 36,
	})
	require.NoError(t, err)

	var uniform [freq.AlphabetSize]float64
	for i := range uniform {
		uniform[i] = 1.0
	}
	tables := freq.New(uniform, map[string]float64{"TH": 1.0})
	m := cost.NewModel(lay, tables, cost.DefaultWeights())

	chain := NewChain(m, 0.9995, 1234)
	initial, _ := chain.Current()
	d0 := m.Distance(initial.SlotOf(freq.Index('T')), initial.SlotOf(freq.Index('H')))

	chain.Calibrate(DefaultCalibrationProbes)
	for i := 0; i < 1000; i++ {
		chain.Step()
	}

	best, _ := chain.Best()
	d1 := m.Distance(best.SlotOf(freq.Index('T')), best.SlotOf(freq.Index('H')))
	require.GreaterOrEqual(t, d1, d0)
}
