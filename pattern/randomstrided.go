package pattern

import "math/rand"

// RandomStrided draws addresses from {0, stride, 2*stride, ...} within the
// address-space bound, without replacement, in random order. Each stream
// carries the smaller of the address cap and the number of distinct strided
// positions.
type RandomStrided struct {
	rng          *rand.Rand
	arraySize    uint64
	maxAddresses int
}

// NewRandomStrided creates a random-strided generator over an address space
// of arraySize bytes, capped at maxAddresses addresses per stream. It panics
// if either bound is zero.
func NewRandomStrided(
	rng *rand.Rand,
	arraySize uint64,
	maxAddresses int,
) *RandomStrided {
	if arraySize == 0 {
		panic("address space must not be empty")
	}

	if maxAddresses <= 0 {
		panic("address cap must be positive")
	}

	return &RandomStrided{
		rng:          rng,
		arraySize:    arraySize,
		maxAddresses: maxAddresses,
	}
}

// Stream materializes one randomly-ordered, duplicate-free address sequence.
// Sampling without replacement forces materialization; rejected duplicate
// draws are simply retried.
func (g *RandomStrided) Stream(stride uint64) Stream {
	numPositions := ceilDiv(g.arraySize, stride)

	count := g.maxAddresses
	if numPositions < uint64(count) {
		count = int(numPositions)
	}

	chosen := make(map[uint64]bool, count)
	addresses := make([]uint64, 0, count)

	for len(addresses) < count {
		address := uint64(g.rng.Int63n(int64(numPositions))) * stride
		if chosen[address] {
			continue
		}

		chosen[address] = true
		addresses = append(addresses, address)
	}

	return &sliceStream{addresses: addresses}
}
