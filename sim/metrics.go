// Tracks port-wide operating metrics such as:
//   - queue length, average wait and berth utilization series
//   - ship counts per lifecycle transition
//   - per-ship waiting times at dispatch

package sim

// Metrics aggregates run-level statistics for reporting.
// Series are minute-aligned with FinancialLedger.Series: one point per Step call.
type Metrics struct {
	Minutes     []int
	QueueLength []int
	AverageWait []float64
	Utilization []float64

	Admitted   int // ships that joined the queue
	Dispatched int // ships sent into pilotage
	Moored     int // ships that reached a berth
	Unmoored   int // ships that left a berth
	Departed   int // ships whose departure finished

	BadWeatherMinutes int
	ShipWaits         []int            // minutes waited in the queue, per dispatched ship
	DispatchedByClass map[ShipClass]int // dispatch count per class
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		DispatchedByClass: make(map[ShipClass]int),
	}
}

// Record appends one point to each operating series.
func (m *Metrics) Record(minute int, q *ShipQueue, berths *BerthBank) {
	m.Minutes = append(m.Minutes, minute)
	m.QueueLength = append(m.QueueLength, q.Len())
	m.AverageWait = append(m.AverageWait, q.AverageWait(minute))
	m.Utilization = append(m.Utilization, berths.Utilization())
}

// InPort is the number of ships admitted but not yet fully departed.
func (m *Metrics) InPort() int {
	return m.Admitted - m.Departed
}
