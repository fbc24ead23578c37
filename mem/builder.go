package mem

// A LevelSpec configures one cache level of a hierarchy.
type LevelSpec struct {
	NumLines   int
	LineSize   uint64
	HitPenalty uint64
}

// HierarchyBuilder builds memory hierarchies. Every call to Build returns a
// brand-new hierarchy with zeroed counters, so one builder doubles as the
// per-trial hierarchy factory.
type HierarchyBuilder struct {
	levels         []LevelSpec
	backingPenalty uint64
}

// MakeHierarchyBuilder creates a builder with a backing memory only.
func MakeHierarchyBuilder() HierarchyBuilder {
	return HierarchyBuilder{
		backingPenalty: 100,
	}
}

// WithBackingMemoryPenalty sets the flat per-access penalty of the backing
// memory at the bottom of the hierarchy.
func (b HierarchyBuilder) WithBackingMemoryPenalty(penalty uint64) HierarchyBuilder {
	b.backingPenalty = penalty
	return b
}

// WithCacheLevel appends one cache level. Levels are listed top-down: the
// first level added is the one the accessor touches first.
func (b HierarchyBuilder) WithCacheLevel(spec LevelSpec) HierarchyBuilder {
	levels := make([]LevelSpec, 0, len(b.levels)+1)
	levels = append(levels, b.levels...)
	b.levels = append(levels, spec)

	return b
}

func (b HierarchyBuilder) parametersMustBeValid() {
	for _, spec := range b.levels {
		if spec.NumLines <= 0 {
			panic("cache must have at least one line")
		}

		if spec.LineSize == 0 {
			panic("cache line size must be positive")
		}
	}
}

// Build builds the hierarchy and returns its top level.
func (b HierarchyBuilder) Build() Level {
	b.parametersMustBeValid()

	level := Level(NewBackingMemory(b.backingPenalty))
	for i := len(b.levels) - 1; i >= 0; i-- {
		spec := b.levels[i]
		level = NewCache(spec.NumLines, spec.LineSize, spec.HitPenalty, level)
	}

	return level
}
