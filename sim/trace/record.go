// Package trace provides lifecycle-trace recording for port scheduling analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DispatchRecord captures a single queue->berth dispatch decision.
type DispatchRecord struct {
	ShipID     int
	Class      string
	Minute     int
	Berth      int
	Waited     int    // minutes spent in the queue
	QueueDepth int    // ships left waiting after this dispatch
	Scheduler  string // "fcfs" or "priority"
}

// DepartureRecord captures a ship leaving its berth after unmooring.
type DepartureRecord struct {
	ShipID     int
	Class      string
	Minute     int
	Berth      int
	Containers float64 // containers billed for this ship
	Income     float64 // income recognised for this ship
}

// WeatherRecord captures the start of a weather spell.
type WeatherRecord struct {
	Minute   int
	Bad      bool
	Duration int
}
