package experiment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memlat/experiment"
	"github.com/sarchlab/memlat/mem"
)

// listStream replays a fixed address list.
type listStream struct {
	addresses []uint64
	nextIndex int
}

func (s *listStream) Next() (uint64, bool) {
	if s.nextIndex >= len(s.addresses) {
		return 0, false
	}

	address := s.addresses[s.nextIndex]
	s.nextIndex++

	return address, true
}

var _ = Describe("RunTrial", func() {
	It("should normalize the total penalty by the access count", func() {
		hierarchy := mem.MakeHierarchyBuilder().
			WithBackingMemoryPenalty(100).
			Build()
		stream := &listStream{addresses: []uint64{0, 64, 128, 192}}

		Expect(experiment.RunTrial(hierarchy, stream)).To(Equal(100.0))
	})

	It("should account hits and misses through a two-level hierarchy", func() {
		hierarchy := mem.MakeHierarchyBuilder().
			WithBackingMemoryPenalty(100).
			WithCacheLevel(mem.LevelSpec{NumLines: 1, LineSize: 1, HitPenalty: 1}).
			Build()
		stream := &listStream{addresses: []uint64{0, 0, 1, 0}}

		Expect(experiment.RunTrial(hierarchy, stream)).To(Equal(301.0 / 4.0))
	})

	It("should panic on an empty address stream", func() {
		hierarchy := mem.MakeHierarchyBuilder().Build()

		Expect(func() {
			experiment.RunTrial(hierarchy, &listStream{})
		}).To(Panic())
	})
})
