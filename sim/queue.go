// Implements the ShipQueue, which holds all ships waiting for a berth.
// Ships are enqueued on arrival

package sim

import (
	"fmt"
	"strings"
)

// ShipQueue is the anchorage: arrived ships waiting to be dispatched to a berth.
// Order is FIFO unless a BerthScheduler reorders it before a dispatch.
type ShipQueue struct {
	queue []*Ship
}

// Enqueue adds a ship to the back of the queue.
func (q *ShipQueue) Enqueue(s *Ship) {
	if s == nil {
		panic("Enqueue: ship must not be nil")
	}
	q.queue = append(q.queue, s)
}

func (q *ShipQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, s := range q.queue {
		sb.WriteString(fmt.Sprintf("%d:%s", s.ID, s.Class))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of ships in the queue.
func (q *ShipQueue) Len() int {
	return len(q.queue)
}

// Peek returns the ship at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *ShipQueue) Peek() *Ship {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers within the
// sim package may iterate over it but MUST NOT append to or reslice it.
// For reordering, use Reorder() instead.
func (q *ShipQueue) Items() []*Ship {
	return q.queue
}

// Reorder applies fn to the queue contents, allowing in-place reordering.
// The BerthScheduler.OrderQueue method is the primary consumer:
//
//	q.Reorder(scheduler.OrderQueue)
//
// fn MUST NOT change the slice length (no append/delete).
func (q *ShipQueue) Reorder(fn func([]*Ship)) {
	if fn == nil {
		panic("Reorder: fn must not be nil")
	}
	n := len(q.queue)
	fn(q.queue)
	if len(q.queue) != n {
		panic(fmt.Sprintf("Reorder: fn changed queue length from %d to %d", n, len(q.queue)))
	}
}

// DequeueFront removes and returns the ship at the front of the queue.
// Returns nil if the queue is empty.
func (q *ShipQueue) DequeueFront() *Ship {
	if len(q.queue) == 0 {
		return nil
	}
	s := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return s
}

// AverageWait is the mean of (now - ArrivalMinute) over queued ships, 0 if empty.
func (q *ShipQueue) AverageWait(now int) float64 {
	if len(q.queue) == 0 {
		return 0
	}
	total := 0
	for _, s := range q.queue {
		total += now - s.ArrivalMinute
	}
	return float64(total) / float64(len(q.queue))
}
