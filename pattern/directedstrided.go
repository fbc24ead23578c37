package pattern

import "math/rand"

// DirectedStrided models a "touch, then touch the neighbor" pattern: each
// step draws a random base aligned to 2*stride and yields base immediately
// followed by base+stride. Nearby accesses are therefore temporally
// adjacent, which exercises hit behavior under intentional short-range
// reuse.
type DirectedStrided struct {
	rng          *rand.Rand
	arraySize    uint64
	maxAddresses int
}

// NewDirectedStrided creates a directed-strided generator over an address
// space of arraySize bytes, capped at maxAddresses addresses per stream. It
// panics if either bound is zero.
func NewDirectedStrided(
	rng *rand.Rand,
	arraySize uint64,
	maxAddresses int,
) *DirectedStrided {
	if arraySize == 0 {
		panic("address space must not be empty")
	}

	if maxAddresses <= 0 {
		panic("address cap must be positive")
	}

	return &DirectedStrided{
		rng:          rng,
		arraySize:    arraySize,
		maxAddresses: maxAddresses,
	}
}

// Stream creates a lazily-drawn stream of base/neighbor pairs. Its length is
// exactly twice the pair count: the smaller of half the address cap and the
// number of strided positions.
func (g *DirectedStrided) Stream(stride uint64) Stream {
	numPositions := ceilDiv(g.arraySize, stride)

	pairsLeft := g.maxAddresses / 2
	if pairsLeft == 0 {
		pairsLeft = 1
	}
	if numPositions < uint64(pairsLeft) {
		pairsLeft = int(numPositions)
	}

	return &directedStream{
		rng:       g.rng,
		stride:    stride,
		numBases:  ceilDiv(g.arraySize, 2*stride),
		pairsLeft: pairsLeft,
	}
}

type directedStream struct {
	rng      *rand.Rand
	stride   uint64
	numBases uint64

	pairsLeft  int
	pending    uint64
	hasPending bool
}

func (s *directedStream) Next() (uint64, bool) {
	if s.hasPending {
		s.hasPending = false
		return s.pending, true
	}

	if s.pairsLeft == 0 {
		return 0, false
	}
	s.pairsLeft--

	base := uint64(s.rng.Int63n(int64(s.numBases))) * 2 * s.stride
	s.pending = base + s.stride
	s.hasPending = true

	return base, true
}
