package mem

// BackingMemory is the terminal level of a hierarchy. It has no capacity
// limit and every access costs the same flat penalty regardless of locality.
type BackingMemory struct {
	accessPenalty uint64
	totalPenalty  uint64
}

// NewBackingMemory creates a backing memory with the given per-access
// penalty.
func NewBackingMemory(accessPenalty uint64) *BackingMemory {
	return &BackingMemory{accessPenalty: accessPenalty}
}

// PerformAccess charges the flat access penalty. The address is ignored.
func (m *BackingMemory) PerformAccess(_ uint64) {
	m.totalPenalty += m.accessPenalty
}

// TotalPenalty returns the accumulated cost of all accesses performed.
func (m *BackingMemory) TotalPenalty() uint64 {
	return m.totalPenalty
}
