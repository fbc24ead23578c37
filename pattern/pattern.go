// Package pattern generates the synthetic strided address sequences that
// drive latency trials.
//
// Generators are parameterized by stride at stream-creation time and draw
// from an injected pseudo-random source, so trials stay reproducible under a
// fixed seed. A stream must be created fresh for every trial; reusing one
// would correlate trials and break the variance-reduction assumption of the
// convergence estimator.
package pattern

// A Stream is a finite, non-restartable sequence of byte addresses.
type Stream interface {
	// Next returns the next address. ok is false once the stream is drained.
	Next() (address uint64, ok bool)
}

// A Generator creates a fresh address stream for one stride.
type Generator interface {
	Stream(stride uint64) Stream
}

// sliceStream walks a materialized address list.
type sliceStream struct {
	addresses []uint64
	nextIndex int
}

func (s *sliceStream) Next() (uint64, bool) {
	if s.nextIndex >= len(s.addresses) {
		return 0, false
	}

	address := s.addresses[s.nextIndex]
	s.nextIndex++

	return address, true
}

// ceilDiv returns a/b rounded up.
func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}
