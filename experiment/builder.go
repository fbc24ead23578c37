package experiment

import (
	"log"

	"github.com/rs/xid"

	"github.com/sarchlab/memlat/mem"
	"github.com/sarchlab/memlat/pattern"
)

// Builder can be used to build a stride sweep.
type Builder struct {
	minStride         uint64
	maxStride         uint64
	maxTrials         int
	epsilon           float64
	requiredSuccesses int

	hierarchy    mem.HierarchyBuilder
	hierarchySet bool
	generator    pattern.Generator
	reporters    []Reporter
	log          *log.Logger
}

// MakeBuilder creates a builder with the default estimator settings.
func MakeBuilder() Builder {
	return Builder{
		minStride:         16,
		maxStride:         16 * mem.KB,
		maxTrials:         100,
		epsilon:           1.0,
		requiredSuccesses: 3,
	}
}

// WithStrideRange sets the inclusive bounds of the geometric stride
// sequence.
func (b Builder) WithStrideRange(minStride, maxStride uint64) Builder {
	b.minStride = minStride
	b.maxStride = maxStride
	return b
}

// WithMaxTrials caps the number of trials per stride.
func (b Builder) WithMaxTrials(maxTrials int) Builder {
	b.maxTrials = maxTrials
	return b
}

// WithEpsilon sets the convergence tolerance.
func (b Builder) WithEpsilon(epsilon float64) Builder {
	b.epsilon = epsilon
	return b
}

// WithRequiredSuccesses sets how many consecutive below-tolerance steps
// count as convergence.
func (b Builder) WithRequiredSuccesses(requiredSuccesses int) Builder {
	b.requiredSuccesses = requiredSuccesses
	return b
}

// WithHierarchy sets the hierarchy builder used as the per-trial factory.
func (b Builder) WithHierarchy(hierarchy mem.HierarchyBuilder) Builder {
	b.hierarchy = hierarchy
	b.hierarchySet = true
	return b
}

// WithGenerator sets the address pattern generator.
func (b Builder) WithGenerator(generator pattern.Generator) Builder {
	b.generator = generator
	return b
}

// WithReporter registers a reporter. Reporters run in registration order
// after every stage.
func (b Builder) WithReporter(reporter Reporter) Builder {
	reporters := make([]Reporter, 0, len(b.reporters)+1)
	reporters = append(reporters, b.reporters...)
	b.reporters = append(reporters, reporter)

	return b
}

// WithLogger sets the logger that narrates sweep progress.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.log = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.minStride == 0 {
		panic("minimum stride must be positive")
	}

	if b.maxStride < b.minStride {
		panic("maximum stride must not be below the minimum")
	}

	if b.maxTrials <= 0 {
		panic("trial cap must be positive")
	}

	if b.epsilon <= 0 {
		panic("convergence tolerance must be positive")
	}

	if b.requiredSuccesses <= 0 {
		panic("required success count must be positive")
	}

	if !b.hierarchySet {
		panic("a sweep needs a hierarchy")
	}

	if b.generator == nil {
		panic("a sweep needs an address pattern generator")
	}
}

// Build builds the sweep.
func (b Builder) Build() *StrideSweep {
	b.parametersMustBeValid()

	return &StrideSweep{
		id:        xid.New().String(),
		minStride: b.minStride,
		maxStride: b.maxStride,
		maxTrials: b.maxTrials,
		hierarchy: b.hierarchy,
		generator: b.generator,
		estimator: ConvergenceEstimator{
			Epsilon:           b.epsilon,
			RequiredSuccesses: b.requiredSuccesses,
			Log:               b.log,
		},
		reporters: b.reporters,
	}
}
