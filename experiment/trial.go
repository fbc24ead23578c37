// Package experiment drives latency trials over simulated memory
// hierarchies and estimates per-access penalties as a function of stride.
package experiment

import (
	"github.com/sarchlab/memlat/mem"
	"github.com/sarchlab/memlat/pattern"
)

// RunTrial feeds every address of one stream through one hierarchy and
// returns the total penalty normalized by the number of accesses. The
// hierarchy must be freshly built: a trial assumes zeroed counters.
//
// RunTrial panics if the stream yields no addresses.
func RunTrial(hierarchy mem.Level, addresses pattern.Stream) float64 {
	numAccesses := 0

	for {
		address, ok := addresses.Next()
		if !ok {
			break
		}

		hierarchy.PerformAccess(address)
		numAccesses++
	}

	if numAccesses == 0 {
		panic("trial ran over an empty address stream")
	}

	return float64(hierarchy.TotalPenalty()) / float64(numAccesses)
}
