package mem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HierarchyBuilder", func() {
	It("should build a bare backing memory when no level is added", func() {
		hierarchy := MakeHierarchyBuilder().
			WithBackingMemoryPenalty(7).
			Build()

		hierarchy.PerformAccess(0)
		hierarchy.PerformAccess(0)

		Expect(hierarchy.TotalPenalty()).To(Equal(uint64(14)))
	})

	It("should panic on a zero-line level", func() {
		builder := MakeHierarchyBuilder().
			WithCacheLevel(LevelSpec{NumLines: 0, LineSize: 64, HitPenalty: 1})

		Expect(func() { builder.Build() }).To(Panic())
	})

	It("should panic on a zero-byte line size", func() {
		builder := MakeHierarchyBuilder().
			WithCacheLevel(LevelSpec{NumLines: 1, LineSize: 0, HitPenalty: 1})

		Expect(func() { builder.Build() }).To(Panic())
	})

	It("should return a fresh hierarchy on every build", func() {
		builder := MakeHierarchyBuilder().
			WithBackingMemoryPenalty(100).
			WithCacheLevel(LevelSpec{NumLines: 1, LineSize: 1, HitPenalty: 1})

		first := builder.Build()
		first.PerformAccess(0)

		second := builder.Build()

		Expect(first.TotalPenalty()).To(Equal(uint64(100)))
		Expect(second.TotalPenalty()).To(Equal(uint64(0)))
	})

	It("should account a two-level hierarchy access by access", func() {
		hierarchy := MakeHierarchyBuilder().
			WithBackingMemoryPenalty(100).
			WithCacheLevel(LevelSpec{NumLines: 1, LineSize: 1, HitPenalty: 1}).
			Build()

		// miss 0, hit 0, miss 1 evicting 0, miss 0 again.
		for _, addr := range []uint64{0, 0, 1, 0} {
			hierarchy.PerformAccess(addr)
		}

		Expect(hierarchy.TotalPenalty()).To(Equal(uint64(301)))
	})

	It("should accumulate penalty monotonically", func() {
		hierarchy := MakeHierarchyBuilder().
			WithBackingMemoryPenalty(100).
			WithCacheLevel(LevelSpec{NumLines: 4, LineSize: 64, HitPenalty: 1}).
			Build()

		previous := uint64(0)
		for addr := uint64(0); addr < 1000; addr += 48 {
			hierarchy.PerformAccess(addr)

			total := hierarchy.TotalPenalty()
			Expect(total).To(BeNumerically(">=", previous))
			previous = total
		}
	})

	It("should let each level map lines at its own granularity", func() {
		hierarchy := MakeHierarchyBuilder().
			WithBackingMemoryPenalty(1000).
			WithCacheLevel(LevelSpec{NumLines: 1, LineSize: 64, HitPenalty: 1}).
			WithCacheLevel(LevelSpec{NumLines: 4, LineSize: 256, HitPenalty: 10}).
			Build()

		// Addresses 0 and 64 are distinct 64-byte lines but share one
		// 256-byte line: the second access misses the top level and hits the
		// one below.
		hierarchy.PerformAccess(0)
		hierarchy.PerformAccess(64)

		Expect(hierarchy.TotalPenalty()).To(Equal(uint64(1010)))
	})
})
