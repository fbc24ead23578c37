package experiment

import (
	"log"
	"math"
)

// A TrialSource produces successive trial outcomes. ok is false once trials
// are exhausted.
type TrialSource func() (penalty float64, ok bool)

// A ConvergenceEstimator computes a running mean over successive trial
// outcomes and stops pulling trials as soon as the mean stabilizes.
//
// After each trial the new running mean is compared against the previous
// one. An absolute difference below Epsilon counts as a success; any larger
// difference resets the success streak. The estimate has converged once
// RequiredSuccesses consecutive successes accumulate.
type ConvergenceEstimator struct {
	Epsilon           float64
	RequiredSuccesses int

	// Log narrates per-trial progress. May be nil.
	Log *log.Logger
}

// Estimate pulls trials until the mean converges or the source is
// exhausted. Exhaustion is a designed degrade: the last running mean is
// returned rather than an error. A source that produces no trials at all is
// a precondition violation and panics.
//
// The comparison baseline starts at zero, so convergence cannot trigger
// before the running mean itself settles near its first value.
func (e ConvergenceEstimator) Estimate(trials TrialSource) float64 {
	var (
		sum       float64
		mean      float64
		count     int
		successes int
	)

	for {
		outcome, ok := trials()
		if !ok {
			break
		}

		sum += outcome
		count++
		currentMean := sum / float64(count)

		difference := math.Abs(mean - currentMean)
		if difference < e.Epsilon {
			successes++
			if successes >= e.RequiredSuccesses {
				e.logf("converged to %v after %d trials", currentMean, count)
				return currentMean
			}

			e.logf("converging to %v, err=%v", currentMean, difference)
		} else {
			successes = 0
			e.logf("current mean %v, err=%v", currentMean, difference)
		}

		mean = currentMean
	}

	if count == 0 {
		panic("convergence estimator received no trials")
	}

	e.logf("exhausted trials, best-effort mean %v", mean)

	return mean
}

func (e ConvergenceEstimator) logf(format string, args ...any) {
	if e.Log == nil {
		return
	}

	e.Log.Printf(format, args...)
}
