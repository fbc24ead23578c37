package experiment

import (
	"github.com/sarchlab/memlat/mem"
	"github.com/sarchlab/memlat/pattern"
)

// A Result is the estimated per-access penalty for one stride.
type Result struct {
	Stride           uint64
	PenaltyPerAccess float64
}

// A Reporter consumes the accumulated results after each sweep stage. The
// slice is ordered by ascending stride and grows by one entry per stage.
type Reporter interface {
	Report(results []Result)
}

// A StrideSweep runs the convergence estimator once per stride, doubling
// the stride from the minimum to the maximum bound. Every trial runs over a
// brand-new hierarchy and a fresh address stream.
type StrideSweep struct {
	id string

	minStride uint64
	maxStride uint64
	maxTrials int

	hierarchy mem.HierarchyBuilder
	generator pattern.Generator
	estimator ConvergenceEstimator
	reporters []Reporter
}

// ID returns the unique ID of the sweep.
func (s *StrideSweep) ID() string {
	return s.id
}

// NumStages returns how many strides the sweep visits.
func (s *StrideSweep) NumStages() int {
	return len(s.strides())
}

func (s *StrideSweep) strides() []uint64 {
	var strides []uint64
	for stride := s.minStride; stride <= s.maxStride; stride *= 2 {
		strides = append(strides, stride)
	}

	return strides
}

// Run executes every stage and returns the accumulated results. Registered
// reporters see the running result list after each stage completes.
func (s *StrideSweep) Run() []Result {
	strides := s.strides()
	results := make([]Result, 0, len(strides))

	for i, stride := range strides {
		s.estimator.logf("stage %d/%d: stride=%d", i+1, len(strides), stride)

		penalty := s.runStage(stride)
		results = append(results, Result{
			Stride:           stride,
			PenaltyPerAccess: penalty,
		})

		for _, reporter := range s.reporters {
			reporter.Report(results)
		}
	}

	return results
}

// runStage estimates the per-access penalty for one stride. The trial
// source rebuilds the hierarchy and redraws the address stream on every
// pull, up to the trial cap.
func (s *StrideSweep) runStage(stride uint64) float64 {
	trialCount := 0

	source := func() (float64, bool) {
		if trialCount >= s.maxTrials {
			return 0, false
		}
		trialCount++

		hierarchy := s.hierarchy.Build()
		addresses := s.generator.Stream(stride)

		return RunTrial(hierarchy, addresses), true
	}

	return s.estimator.Estimate(source)
}
