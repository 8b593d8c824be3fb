package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/result"
)

// printReport writes the human-readable summary of an optimization batch:
// best energy vs the random baseline, the ring contents, how many of the
// most frequent letters landed on the inner ring, and the slot distances
// of the most frequent bigrams.
func printReport(res *result.Result, tables *freq.Tables) {
	sep := strings.Repeat("=", 50)
	fmt.Println(sep)
	fmt.Println("BEST LAYOUT")
	fmt.Println(sep)
	fmt.Println()
	fmt.Printf("Energy: %.6f\n", res.BestEnergy)
	fmt.Printf("Random baseline: %.6f\n", res.BaselineEnergy)
	fmt.Printf("Improvement over random: %.1f%%\n", res.Improvement())
	fmt.Println()

	inner, outer := res.RingLetters()
	fmt.Printf("Inner ring (%d slots): %s\n", len(inner), spaced(inner))
	fmt.Printf("Outer ring (%d slots): %s\n", len(outer), spaced(outer))
	fmt.Println()

	nInner := res.Layout.Meta.NInner
	top := tables.TopLetters(nInner)
	var onInner []byte
	for _, l := range top {
		if res.Best.SlotOf(freq.Index(l)) < nInner {
			onInner = append(onInner, l)
		}
	}
	fmt.Printf("Top %d most frequent letters: %s\n", nInner, spaced(top))
	fmt.Printf("Of those, on inner ring: %s (%d/%d)\n", spaced(onInner), len(onInner), nInner)
	fmt.Println()

	fmt.Println("Top 10 bigrams — distance check:")
	for _, pair := range tables.TopBigrams(10) {
		sa := res.Best.SlotOf(freq.Index(pair.First))
		sb := res.Best.SlotOf(freq.Index(pair.Second))
		pa := res.Layout.Slots[sa].Pos
		pb := res.Layout.Slots[sb].Pos
		dist := math.Hypot(pa.X-pb.X, pa.Y-pb.Y)
		fmt.Printf("  %s: dist=%.2f  (%c@%s, %c@%s)\n",
			pair, dist,
			pair.First, res.Layout.Slots[sa].Ring,
			pair.Second, res.Layout.Slots[sb].Ring)
	}
	fmt.Println()

	if len(res.History) > 0 {
		first := res.History[0].Energy
		last := res.History[len(res.History)-1].Energy
		fmt.Printf("Energy progression (run %d): %.6f -> %.6f\n", res.BestRun, first, last)
	}
}

func spaced(letters []byte) string {
	parts := make([]string, len(letters))
	for i, l := range letters {
		parts[i] = string(l)
	}
	return strings.Join(parts, " ")
}
