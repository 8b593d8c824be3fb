// Package cost implements the energy model for circular keyboard layouts:
// the static cost arrays derived from slot geometry and frequency tables,
// the full-arrangement energy function, and the O(n) swap delta evaluator
// that makes annealing over hundreds of thousands of swaps feasible.
package cost

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
)

// Weights scale the center and ergonomic energy terms; the bigram
// separation term implicitly has weight 1. The defaults are what the
// reference layouts were produced with.
type Weights struct {
	Center float64
	Ergo   float64
}

// DefaultWeights returns the reference weighting.
func DefaultWeights() Weights {
	return Weights{Center: 8.0, Ergo: 2.0}
}

// Model holds everything the energy function needs, all of it immutable
// after NewModel: slot distances, per-slot reach cost and center distance,
// and the frequency tables in dense form. A single Model is shared
// read-only by all concurrent runs.
type Model struct {
	n       int
	dist    *mat.SymDense // slot-to-slot Euclidean distances
	bigram  *mat.Dense    // directional bigram frequencies, letter x letter
	reach   []float64     // per-slot reach cost, normalized to [0,1]
	center  []float64     // per-slot distance from origin
	letters []float64     // per-letter frequency, alphabet order
	weights Weights

	// Flat copies of dist and bigram for the delta hot path, avoiding
	// interface and bounds overhead on millions of reads.
	distFlat   []float64
	bigramFlat []float64
}

// NewModel derives the static cost structures from slot geometry and
// frequency tables.
func NewModel(lay *geometry.Layout, tables *freq.Tables, w Weights) *Model {
	n := len(lay.Slots)
	m := &Model{
		n:       n,
		dist:    mat.NewSymDense(n, nil),
		bigram:  tables.BigramMatrix(),
		reach:   make([]float64, n),
		center:  make([]float64, n),
		letters: tables.LetterFreqs(),
		weights: w,
	}

	raw := make([]float64, n)
	for i, s := range lay.Slots {
		m.center[i] = s.Pos.Norm()
		// Reach cost favors top-left: large x with negative y (bottom-right
		// under the right thumb) is hardest.
		raw[i] = s.Pos.X - s.Pos.Y
	}
	span := floats.Max(raw) - floats.Min(raw)
	if span == 0 {
		span = 1.0 // all slots equally reachable; keep the term well-defined
	}
	lo := floats.Min(raw)
	for i := range raw {
		m.reach[i] = (raw[i] - lo) / span
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geometry.Point{
				X: lay.Slots[i].Pos.X - lay.Slots[j].Pos.X,
				Y: lay.Slots[i].Pos.Y - lay.Slots[j].Pos.Y,
			}.Norm()
			m.dist.SetSym(i, j, d)
		}
	}

	m.distFlat = make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.distFlat[i*n+j] = m.dist.At(i, j)
		}
	}
	m.bigramFlat = make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.bigramFlat[i*n+j] = m.bigram.At(i, j)
		}
	}
	return m
}

// Size returns the number of slots (and letters).
func (m *Model) Size() int { return m.n }

// Distance returns the Euclidean distance between two slots.
func (m *Model) Distance(s1, s2 int) float64 { return m.dist.At(s1, s2) }

// DistanceMatrix returns a copy of the slot distance matrix.
func (m *Model) DistanceMatrix() *mat.SymDense {
	c := mat.NewSymDense(m.n, nil)
	c.CopySym(m.dist)
	return c
}

// ReachCost returns the normalized reach cost of a slot.
func (m *Model) ReachCost(slot int) float64 { return m.reach[slot] }

// CenterDistance returns a slot's distance from the layout origin.
func (m *Model) CenterDistance(slot int) float64 { return m.center[slot] }

// LetterFreq returns the frequency of letter index i.
func (m *Model) LetterFreq(i int) float64 { return m.letters[i] }

// Weights returns the term weights the model was built with.
func (m *Model) Weights() Weights { return m.weights }
