package sim

import (
	"sort"
)

// BerthScheduler reorders the ship queue before each dispatch attempt.
// Implementations sort the slice in-place using sort.SliceStable for determinism.
type BerthScheduler interface {
	OrderQueue(ships []*Ship)
	Name() string
}

// FCFSScheduler preserves First-Come-First-Served order (no-op).
type FCFSScheduler struct{}

func (f *FCFSScheduler) OrderQueue(_ []*Ship) {
	// No-op: FIFO order preserved from enqueue order
}

func (f *FCFSScheduler) Name() string { return "fcfs" }

// PriorityScheduler sorts ships by class priority (descending, Large first),
// then by arrival minute (ascending), then by ID (ascending).
// The sort is stable and re-applied to the whole queue on every attempt,
// so same-class ships never change places relative to each other.
type PriorityScheduler struct{}

func (p *PriorityScheduler) OrderQueue(ships []*Ship) {
	sort.SliceStable(ships, func(i, j int) bool {
		pi, pj := ships[i].Class.Priority(), ships[j].Class.Priority()
		if pi != pj {
			return pi > pj
		}
		if ships[i].ArrivalMinute != ships[j].ArrivalMinute {
			return ships[i].ArrivalMinute < ships[j].ArrivalMinute
		}
		return ships[i].ID < ships[j].ID
	})
}

func (p *PriorityScheduler) Name() string { return "priority" }

// NewScheduler returns the PriorityScheduler when class priority is enabled,
// FCFSScheduler otherwise.
func NewScheduler(usePriority bool) BerthScheduler {
	if usePriority {
		return &PriorityScheduler{}
	}
	return &FCFSScheduler{}
}
