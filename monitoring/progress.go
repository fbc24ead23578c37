package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how far a sweep has advanced through its stages.
type ProgressBar struct {
	sync.Mutex
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	StartTime      time.Time `json:"start_time"`
	TotalStages    uint64    `json:"total_stages"`
	FinishedStages uint64    `json:"finished_stages"`
	CurrentStride  uint64    `json:"current_stride"`
}

// CompleteStage records that the stage for the given stride has finished.
func (b *ProgressBar) CompleteStage(stride uint64) {
	b.Lock()
	defer b.Unlock()

	b.FinishedStages++
	b.CurrentStride = stride
}
