package result

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coyote-git/Better-keyboard/pkg/anneal"
	"github.com/Coyote-git/Better-keyboard/pkg/cost"
	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
)

func fixtureResult(t *testing.T) *Result {
	t.Helper()
	lay, err := geometry.Compute(geometry.DefaultConfig())
	require.NoError(t, err)
	return &Result{
		Best:           cost.IdentityArrangement(),
		BestEnergy:     -12.345678,
		BestRun:        2,
		BaselineEnergy: 100.0,
		History: []anneal.Sample{
			{Iteration: 0, Energy: 50},
			{Iteration: 2500, Energy: 10},
			{Iteration: 5000, Energy: -12.3},
		},
		Layout:  lay,
		Weights: cost.DefaultWeights(),
	}
}

func TestToLayoutJSON(t *testing.T) {
	res := fixtureResult(t)
	lay := ToLayoutJSON(res)

	require.Len(t, lay.Slots, freq.AlphabetSize)
	assert.Equal(t, "A", lay.Slots[0].Letter)
	assert.Equal(t, "inner", lay.Slots[0].Ring)
	assert.Equal(t, "outer", lay.Slots[25].Ring)
	assert.Equal(t, res.BestEnergy, lay.Metadata.Energy)
	assert.Equal(t, 8, lay.Metadata.NInner)
	assert.Equal(t, 18, lay.Metadata.NOuter)
	assert.Equal(t, []float64{180, 0}, lay.Metadata.GapAngles)

	// Coordinates are rounded to 4 decimals, angles to 2.
	for _, s := range lay.Slots {
		assert.Equal(t, round(s.X, 4), s.X)
		assert.Equal(t, round(s.AngleDeg, 2), s.AngleDeg)
	}
}

func TestWriteReadJSONRoundTrip(t *testing.T) {
	res := fixtureResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	lay, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, ToLayoutJSON(res), lay)

	cfg := lay.GeometryConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.NInner)
	assert.Equal(t, 2.2, cfg.ROuter)
}

func TestImprovement(t *testing.T) {
	res := fixtureResult(t)
	// 1 - (-12.345678 / 100) = 1.12345678
	assert.InDelta(t, 112.345678, res.Improvement(), 1e-9)

	res.BaselineEnergy = 0
	assert.Zero(t, res.Improvement())
}

func TestRingLetters(t *testing.T) {
	res := fixtureResult(t)
	inner, outer := res.RingLetters()
	assert.Equal(t, "ABCDEFGH", string(inner))
	assert.Equal(t, "IJKLMNOPQRSTUVWXYZ", string(outer))
}

func TestCollectorOrdersRecords(t *testing.T) {
	c := NewCollector()
	c.Add(&anneal.Record{Run: 0, BestEnergy: 5})
	c.Add(&anneal.Record{Run: 1, BestEnergy: -3})
	c.Add(&anneal.Record{Run: 2, BestEnergy: 5})

	recs := c.Records()
	require.Equal(t, 3, c.Len())
	assert.Equal(t, 1, recs[0].Run)
	assert.Equal(t, 0, recs[1].Run) // tie breaks on run ID
	assert.Equal(t, 2, recs[2].Run)
}

func TestSavePlots(t *testing.T) {
	res := fixtureResult(t)
	dir := t.TempDir()

	histPath := filepath.Join(dir, "history.png")
	require.NoError(t, SaveHistoryPlot(histPath, res.History))

	layPath := filepath.Join(dir, "layout.png")
	require.NoError(t, SaveLayoutPlot(layPath, ToLayoutJSON(res), freq.English()))

	assert.FileExists(t, histPath)
	assert.FileExists(t, layPath)
}
