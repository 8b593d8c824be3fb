// Package anneal drives a single simulated-annealing run over keyboard
// arrangements: temperature calibration, Metropolis swap acceptance,
// geometric cooling, and best-state tracking.
package anneal

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Coyote-git/Better-keyboard/pkg/cost"
	"github.com/Coyote-git/Better-keyboard/pkg/freq"
)

// minStartTemp is the floor used when calibration measures a zero median
// delta (degenerate frequency tables). Keeps exp(-delta/T) well-defined.
const minStartTemp = 1e-6

// acceptTarget is the desired acceptance probability of a median-sized
// uphill move at the calibrated starting temperature.
const acceptTarget = 0.8

// Chain is one annealing chain: a mutating arrangement, its running
// energy, the temperature, and the best state seen so far.
type Chain struct {
	model       *cost.Model
	arr         *cost.Arrangement
	energy      float64
	best        *cost.Arrangement
	bestEnergy  float64
	temperature float64
	cooling     float64
	rng         *rand.Rand

	// Stats
	Accepted int64
	Rejected int64
}

// NewChain builds a chain with a random initial arrangement drawn from a
// PCG seeded with seed. Call Calibrate before Step, or set a starting
// temperature explicitly with SetTemperature.
func NewChain(m *cost.Model, cooling float64, seed uint64) *Chain {
	rng := rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))
	arr := cost.RandomArrangement(rng)
	energy := m.Energy(arr)
	return &Chain{
		model:       m,
		arr:         arr,
		energy:      energy,
		best:        arr.Clone(),
		bestEnergy:  energy,
		temperature: minStartTemp,
		cooling:     cooling,
		rng:         rng,
	}
}

// randomPair draws two distinct slot indices.
func (c *Chain) randomPair() (int, int) {
	s1 := c.rng.IntN(freq.AlphabetSize)
	s2 := c.rng.IntN(freq.AlphabetSize - 1)
	if s2 >= s1 {
		s2++
	}
	return s1, s2
}

// Calibrate samples probes random swap deltas on the initial state and
// sets the starting temperature so that a median-magnitude uphill move is
// accepted with probability acceptTarget. Returns the chosen temperature.
// A zero median (all-zero frequency tables) falls back to minStartTemp.
func (c *Chain) Calibrate(probes int) float64 {
	deltas := make([]float64, probes)
	for i := range deltas {
		s1, s2 := c.randomPair()
		deltas[i] = math.Abs(c.model.Delta(c.arr, s1, s2))
	}
	sort.Float64s(deltas)
	median := stat.Quantile(0.5, stat.Empirical, deltas, nil)

	t := minStartTemp
	if median > 0 {
		t = -median / math.Log(acceptTarget)
	}
	c.temperature = t
	return t
}

// SetTemperature overrides the starting temperature, bypassing Calibrate.
func (c *Chain) SetTemperature(t float64) {
	if t < minStartTemp {
		t = minStartTemp
	}
	c.temperature = t
}

// Step performs one iteration: propose a random swap, accept it if it
// lowers the energy or with probability exp(-delta/T) otherwise, then cool
// the temperature. Returns true if the swap was applied.
func (c *Chain) Step() bool {
	s1, s2 := c.randomPair()
	delta := c.model.Delta(c.arr, s1, s2)

	accepted := false
	if delta < 0 {
		accepted = true
	} else if c.rng.Float64() < math.Exp(-delta/c.temperature) {
		accepted = true
	}

	if accepted {
		c.arr.Swap(s1, s2)
		c.energy += delta
		c.Accepted++

		// Trajectories are non-monotonic; the best state must be tracked as
		// a running minimum and copied out, not aliased.
		if c.energy < c.bestEnergy {
			c.bestEnergy = c.energy
			c.best = c.arr.Clone()
		}
	} else {
		c.Rejected++
	}

	c.temperature *= c.cooling
	return accepted
}

// Energy returns the running energy of the working arrangement.
func (c *Chain) Energy() float64 {
	return c.energy
}

// Current returns the working arrangement (cloned) and its energy.
func (c *Chain) Current() (*cost.Arrangement, float64) {
	return c.arr.Clone(), c.energy
}

// Best returns the lowest-energy arrangement (cloned) seen so far.
func (c *Chain) Best() (*cost.Arrangement, float64) {
	return c.best.Clone(), c.bestEnergy
}

// Temperature returns the current temperature.
func (c *Chain) Temperature() float64 {
	return c.temperature
}
