package mem

// A Cache is a finite-capacity, fully-associative hierarchy level with FIFO
// replacement. It serves hits itself and forwards misses to the level below.
//
// FIFO rather than LRU keeps every access O(1) amortized, which matters when
// a single trial pushes millions of addresses through the hierarchy.
type Cache struct {
	numLines   int
	lineSize   uint64
	hitPenalty uint64
	next       Level

	// fifoQueue holds resident line IDs oldest-first. residentLines mirrors
	// its membership for O(1) hit tests.
	fifoQueue     []uint64
	residentLines map[uint64]bool
	totalPenalty  uint64
}

// NewCache creates a cache level on top of next. It panics if numLines or
// lineSize is zero, as such a level could never hit.
func NewCache(numLines int, lineSize, hitPenalty uint64, next Level) *Cache {
	if numLines <= 0 {
		panic("cache must have at least one line")
	}

	if lineSize == 0 {
		panic("cache line size must be positive")
	}

	return &Cache{
		numLines:      numLines,
		lineSize:      lineSize,
		hitPenalty:    hitPenalty,
		next:          next,
		residentLines: make(map[uint64]bool, numLines),
	}
}

// PerformAccess serves one byte address. A hit charges this level's hit
// penalty; a miss forwards the original address to the next level, which
// maps it at its own line granularity. Either way the touched line ends up
// resident.
func (c *Cache) PerformAccess(address uint64) {
	lineID := address / c.lineSize

	if c.residentLines[lineID] {
		c.totalPenalty += c.hitPenalty
	} else {
		c.next.PerformAccess(address)
	}

	c.admit(lineID)
}

// admit makes lineID resident, evicting the oldest line when the cache is
// full. Admitting a line that is already resident does not refresh its
// position in the queue.
func (c *Cache) admit(lineID uint64) {
	if c.residentLines[lineID] {
		return
	}

	if len(c.fifoQueue) == c.numLines {
		victim := c.fifoQueue[0]
		c.fifoQueue = c.fifoQueue[1:]
		delete(c.residentLines, victim)
	}

	c.fifoQueue = append(c.fifoQueue, lineID)
	c.residentLines[lineID] = true
}

// TotalPenalty returns this level's accumulated hit cost plus the total of
// every level below it, recursing through the whole chain.
func (c *Cache) TotalPenalty() uint64 {
	return c.totalPenalty + c.next.TotalPenalty()
}
