package experiment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memlat/experiment"
)

// boundedSource yields the given outcomes in order, then reports
// exhaustion.
func boundedSource(outcomes ...float64) experiment.TrialSource {
	i := 0
	return func() (float64, bool) {
		if i >= len(outcomes) {
			return 0, false
		}

		outcome := outcomes[i]
		i++

		return outcome, true
	}
}

var _ = Describe("ConvergenceEstimator", func() {
	var estimator experiment.ConvergenceEstimator

	BeforeEach(func() {
		estimator = experiment.ConvergenceEstimator{
			Epsilon:           0.5,
			RequiredSuccesses: 3,
		}
	})

	It("should converge on a constant source", func() {
		pulled := 0
		source := func() (float64, bool) {
			pulled++
			return 7, true
		}

		Expect(estimator.Estimate(source)).To(Equal(7.0))

		// One trial to move the mean off the zero baseline, then three
		// consecutive successes.
		Expect(pulled).To(Equal(4))
	})

	It("should converge on a constant source for any positive tolerance", func() {
		estimator.Epsilon = 1e-9

		source := func() (float64, bool) { return 7, true }

		Expect(estimator.Estimate(source)).To(Equal(7.0))
	})

	It("should reset the success streak on a large step", func() {
		estimator.Epsilon = 1.0

		// Two quiet steps, a jump, then quiet again: the jump must restart
		// the streak, so the estimator cannot converge within these trials
		// and falls back to the final running mean.
		pulled := 0
		inner := boundedSource(10, 10, 10, 100, 10, 10, 10, 10, 10, 10)
		source := func() (float64, bool) {
			outcome, ok := inner()
			if ok {
				pulled++
			}
			return outcome, ok
		}

		mean := estimator.Estimate(source)

		Expect(pulled).To(Equal(10))
		Expect(mean).To(Equal(19.0))
	})

	It("should fall back to the last running mean when trials run out", func() {
		estimator.Epsilon = 1e-6

		// Means: 0, 5, 10/3, 5 — never two consecutive within tolerance.
		mean := estimator.Estimate(boundedSource(0, 10, 0, 10))

		Expect(mean).To(Equal(5.0))
	})

	It("should panic when the source yields no trials", func() {
		Expect(func() {
			estimator.Estimate(boundedSource())
		}).To(Panic())
	})
})
