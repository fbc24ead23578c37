package experiment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memlat/experiment"
	"github.com/sarchlab/memlat/mem"
	"github.com/sarchlab/memlat/pattern"
)

// fixedGenerator hands out fresh replays of one address list and counts the
// streams it creates.
type fixedGenerator struct {
	addresses      []uint64
	streamsCreated int
}

func (g *fixedGenerator) Stream(_ uint64) pattern.Stream {
	g.streamsCreated++
	return &listStream{addresses: g.addresses}
}

// resultLengths records the length of the result list at every report.
type resultLengths struct {
	lengths []int
	last    []experiment.Result
}

func (r *resultLengths) Report(results []experiment.Result) {
	r.lengths = append(r.lengths, len(results))
	r.last = append([]experiment.Result{}, results...)
}

var _ = Describe("StrideSweep", func() {
	var (
		generator *fixedGenerator
		builder   experiment.Builder
	)

	BeforeEach(func() {
		generator = &fixedGenerator{addresses: []uint64{0, 64, 128, 192}}
		builder = experiment.MakeBuilder().
			WithStrideRange(16, 64).
			WithMaxTrials(10).
			WithEpsilon(1.0).
			WithRequiredSuccesses(3).
			WithHierarchy(mem.MakeHierarchyBuilder().WithBackingMemoryPenalty(100)).
			WithGenerator(generator)
	})

	It("should double the stride from min to max inclusive", func() {
		sweep := builder.Build()

		results := sweep.Run()

		Expect(results).To(HaveLen(3))
		Expect(results[0].Stride).To(Equal(uint64(16)))
		Expect(results[1].Stride).To(Equal(uint64(32)))
		Expect(results[2].Stride).To(Equal(uint64(64)))
	})

	It("should skip a maximum that is not a doubling of the minimum", func() {
		sweep := builder.WithStrideRange(16, 100).Build()

		Expect(sweep.NumStages()).To(Equal(3))
	})

	It("should estimate a flat hierarchy at its flat penalty", func() {
		sweep := builder.Build()

		for _, result := range sweep.Run() {
			Expect(result.PenaltyPerAccess).To(Equal(100.0))
		}
	})

	It("should redraw the address stream for every trial", func() {
		sweep := builder.WithStrideRange(16, 16).Build()

		sweep.Run()

		// One trial to move the mean off the zero baseline plus three
		// consecutive successes, each over a fresh stream.
		Expect(generator.streamsCreated).To(Equal(4))
	})

	It("should hand the growing result list to the reporter after each stage", func() {
		reporter := &resultLengths{}
		sweep := builder.WithReporter(reporter).Build()

		sweep.Run()

		Expect(reporter.lengths).To(Equal([]int{1, 2, 3}))
		Expect(reporter.last).To(HaveLen(3))
	})

	It("should assign every sweep a unique ID", func() {
		first := builder.Build()
		second := builder.Build()

		Expect(first.ID()).NotTo(BeEmpty())
		Expect(first.ID()).NotTo(Equal(second.ID()))
	})
})

var _ = Describe("Builder", func() {
	var builder experiment.Builder

	BeforeEach(func() {
		builder = experiment.MakeBuilder().
			WithHierarchy(mem.MakeHierarchyBuilder()).
			WithGenerator(&fixedGenerator{addresses: []uint64{0}})
	})

	It("should reject a zero minimum stride", func() {
		Expect(func() {
			builder.WithStrideRange(0, 64).Build()
		}).To(Panic())
	})

	It("should reject an inverted stride range", func() {
		Expect(func() {
			builder.WithStrideRange(64, 16).Build()
		}).To(Panic())
	})

	It("should reject a zero trial cap", func() {
		Expect(func() {
			builder.WithMaxTrials(0).Build()
		}).To(Panic())
	})

	It("should reject a non-positive tolerance", func() {
		Expect(func() {
			builder.WithEpsilon(0).Build()
		}).To(Panic())
	})

	It("should reject a zero success requirement", func() {
		Expect(func() {
			builder.WithRequiredSuccesses(0).Build()
		}).To(Panic())
	})

	It("should require a hierarchy", func() {
		Expect(func() {
			experiment.MakeBuilder().
				WithGenerator(&fixedGenerator{addresses: []uint64{0}}).
				Build()
		}).To(Panic())
	})

	It("should require a generator", func() {
		Expect(func() {
			experiment.MakeBuilder().
				WithHierarchy(mem.MakeHierarchyBuilder()).
				Build()
		}).To(Panic())
	})
})
