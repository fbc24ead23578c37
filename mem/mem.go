// Package mem models the latency behavior of a multi-level memory hierarchy.
//
// A hierarchy is a chain of fully-associative cache levels rooted at one
// backing memory. Each level accounts the cost of the accesses it serves
// itself; the total cost of a hierarchy is the sum over the whole chain.
package mem

// Capacity units.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)

// A Level is one stage of a memory hierarchy. Levels compose by reference:
// each cache level exclusively owns the level below it, so hierarchies of
// arbitrary depth can be built without knowing a level's concrete kind.
type Level interface {
	// PerformAccess records the cost of touching one byte address.
	PerformAccess(address uint64)

	// TotalPenalty returns the cumulative cost attributed to this level and
	// every level below it.
	TotalPenalty() uint64
}
