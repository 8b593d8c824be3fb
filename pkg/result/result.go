// Package result assembles the optimizer's output: the winning
// arrangement, the random baseline, per-run records, and the export and
// rendering surfaces downstream consumers read.
package result

import (
	"sort"
	"sync"

	"github.com/Coyote-git/Better-keyboard/pkg/anneal"
	"github.com/Coyote-git/Better-keyboard/pkg/cost"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
)

// Result is the final payload of an optimization batch.
type Result struct {
	Best           *cost.Arrangement
	BestEnergy     float64
	BestRun        int              // run ID of the winner
	BaselineEnergy float64          // mean energy of uniform random arrangements
	History        []anneal.Sample  // energy trajectory of the winning run
	Runs           []*anneal.Record // all run records, sorted by best energy
	Layout         *geometry.Layout
	Weights        cost.Weights
}

// Improvement returns the percent improvement of the best energy over the
// random baseline. Returns 0 when the baseline is zero.
func (r *Result) Improvement() float64 {
	if r.BaselineEnergy == 0 {
		return 0
	}
	return (1 - r.BestEnergy/r.BaselineEnergy) * 100
}

// RingLetters returns the winning letters on the inner and outer rings in
// slot order.
func (r *Result) RingLetters() (inner, outer []byte) {
	letters := r.Best.Letters()
	n := r.Layout.Meta.NInner
	return []byte(letters[:n]), []byte(letters[n:])
}

// Collector gathers run records from concurrently executing runs.
type Collector struct {
	mu      sync.Mutex
	records []*anneal.Record
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add inserts a run record.
func (c *Collector) Add(rec *anneal.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
}

// Records returns a copy of all records, best energy first; ties break on
// run ID so the order is deterministic.
func (c *Collector) Records() []*anneal.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*anneal.Record, len(c.records))
	copy(out, c.records)
	sort.Slice(out, func(i, j int) bool {
		if out[i].BestEnergy != out[j].BestEnergy {
			return out[i].BestEnergy < out[j].BestEnergy
		}
		return out[i].Run < out[j].Run
	})
	return out
}

// Len returns the number of collected records.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}
