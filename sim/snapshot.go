package sim

// Snapshot is a read-only view of a Run for reporting and rendering.
// It shares no memory with the Run; field names mirror the JSON document
// external layers exchange.
type Snapshot struct {
	RunID     string          `json:"run_id"`
	Minute    int             `json:"minute"`
	RunLength int             `json:"run_length"`
	Running   bool            `json:"running"`
	Finished  bool            `json:"finished"`
	Weather   WeatherView     `json:"weather"`
	Queue     []QueuedShip    `json:"queue"`
	Berths    []BerthView     `json:"berths"`
	InTransit []InTransitView `json:"in_transit"`
	Departing []DepartingView `json:"departing"`
	Ledger    LedgerView      `json:"ledger"`
	Counters  CounterView     `json:"counters"`
	Series    SeriesView      `json:"series"`
}

// WeatherView is the weather flag and the minutes left in the current spell.
type WeatherView struct {
	Bad       bool `json:"bad"`
	Remaining int  `json:"remaining"`
}

// QueuedShip is one waiting ship, in queue order.
type QueuedShip struct {
	ID            int       `json:"id"`
	Class         ShipClass `json:"class"`
	ArrivalMinute int       `json:"arrival_minute"`
}

// BerthView is one berth slot. Ship is nil when the berth is empty.
type BerthView struct {
	Index int            `json:"index"`
	Ship  *BerthShipView `json:"ship"`
}

// BerthShipView is the ship moored at a berth.
type BerthShipView struct {
	ID               int       `json:"id"`
	Class            ShipClass `json:"class"`
	Operation        Operation `json:"operation"`
	Remaining        int       `json:"remaining"`
	Progress         float64   `json:"progress"`
	ContainersBilled float64   `json:"containers_billed"`
}

// InTransitView is a ship under pilotage.
type InTransitView struct {
	ID          int       `json:"id"`
	Class       ShipClass `json:"class"`
	TargetBerth int       `json:"target_berth"`
	Remaining   int       `json:"remaining"`
	Progress    float64   `json:"progress"`
}

// DepartingView is a ship leaving the port.
type DepartingView struct {
	ID       int       `json:"id"`
	Class    ShipClass `json:"class"`
	Berth    int       `json:"berth"`
	Progress float64   `json:"progress"`
}

// LedgerView holds the financial totals.
type LedgerView struct {
	Income          float64 `json:"income"`
	Cost            float64 `json:"cost"`
	Profit          float64 `json:"profit"`
	ContainerCost   float64 `json:"container_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	Containers      float64 `json:"containers"`
}

// CounterView holds the ship lifecycle counters.
type CounterView struct {
	Admitted   int `json:"admitted"`
	Dispatched int `json:"dispatched"`
	Moored     int `json:"moored"`
	Unmoored   int `json:"unmoored"`
	Departed   int `json:"departed"`
}

// SeriesView holds every time series, one point per Step call.
type SeriesView struct {
	Minutes     []int     `json:"minutes"`
	QueueLength []int     `json:"queue_length"`
	AverageWait []float64 `json:"average_wait"`
	Utilization []float64 `json:"utilization"`
	Income      []float64 `json:"income"`
	Cost        []float64 `json:"cost"`
	Profit      []float64 `json:"profit"`
}

// Snapshot builds the current read-only view.
func (r *Run) Snapshot() Snapshot {
	s := Snapshot{
		RunID:     r.ID,
		Minute:    r.Clock,
		RunLength: r.Config.RunLength,
		Running:   r.running,
		Finished:  r.finished,
		Weather:   WeatherView{Bad: r.weather.Bad(), Remaining: r.weather.Remaining()},
		Queue:     make([]QueuedShip, 0, r.queue.Len()),
		Berths:    make([]BerthView, 0, r.berths.Len()),
		InTransit: make([]InTransitView, 0, len(r.inTransit)),
		Departing: make([]DepartingView, 0, len(r.departing)),
		Ledger: LedgerView{
			Income:          r.Ledger.TotalIncome,
			Cost:            r.Ledger.TotalCost,
			Profit:          r.Ledger.Profit(),
			ContainerCost:   r.Ledger.ContainerCost,
			MaintenanceCost: r.Ledger.MaintenanceCost,
			Containers:      r.Ledger.ContainersBilled,
		},
		Counters: CounterView{
			Admitted:   r.Metrics.Admitted,
			Dispatched: r.Metrics.Dispatched,
			Moored:     r.Metrics.Moored,
			Unmoored:   r.Metrics.Unmoored,
			Departed:   r.Metrics.Departed,
		},
		Series: SeriesView{
			Minutes:     append([]int{}, r.Metrics.Minutes...),
			QueueLength: append([]int{}, r.Metrics.QueueLength...),
			AverageWait: append([]float64{}, r.Metrics.AverageWait...),
			Utilization: append([]float64{}, r.Metrics.Utilization...),
			Income:      append([]float64{}, r.Ledger.Series.Income...),
			Cost:        append([]float64{}, r.Ledger.Series.Cost...),
			Profit:      append([]float64{}, r.Ledger.Series.Profit...),
		},
	}
	for _, ship := range r.queue.Items() {
		s.Queue = append(s.Queue, QueuedShip{ID: ship.ID, Class: ship.Class, ArrivalMinute: ship.ArrivalMinute})
	}
	for i := 0; i < r.berths.Len(); i++ {
		view := BerthView{Index: i}
		if occ := r.berths.Slot(i).Occupant(); occ != nil {
			view.Ship = &BerthShipView{
				ID:               occ.Ship.ID,
				Class:            occ.Ship.Class,
				Operation:        occ.Operation,
				Remaining:        occ.Remaining,
				Progress:         occ.Progress(),
				ContainersBilled: occ.Billed,
			}
		}
		s.Berths = append(s.Berths, view)
	}
	for _, m := range r.inTransit {
		s.InTransit = append(s.InTransit, InTransitView{
			ID:          m.Ship.ID,
			Class:       m.Ship.Class,
			TargetBerth: m.TargetBerth,
			Remaining:   max(0, m.Remaining),
			Progress:    m.Progress(),
		})
	}
	for _, d := range r.departing {
		s.Departing = append(s.Departing, DepartingView{
			ID:       d.Ship.ID,
			Class:    d.Ship.Class,
			Berth:    d.Berth,
			Progress: d.Progress,
		})
	}
	return s
}

// ShipsInPort counts every ship the snapshot shows: queued, piloted, moored and departing.
func (s Snapshot) ShipsInPort() int {
	n := len(s.Queue) + len(s.InTransit) + len(s.Departing)
	for _, b := range s.Berths {
		if b.Ship != nil {
			n++
		}
	}
	return n
}
