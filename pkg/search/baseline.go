package search

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"

	"github.com/Coyote-git/Better-keyboard/pkg/cost"
)

// Baseline evaluates the mean energy of uniformly random arrangements, with
// no annealing. The optimized result is reported relative to this so that
// "how much better than chance" survives changes to the energy scale.
func Baseline(m *cost.Model, samples int, seed uint64) float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))
	energies := make([]float64, samples)
	for i := range energies {
		energies[i] = m.Energy(cost.RandomArrangement(rng))
	}
	return stat.Mean(energies, nil)
}
