package sim

// departureProgressPerTick is how far a departing ship's animation advances each minute.
const departureProgressPerTick = 0.12

// InTransitShip is a ship under pilotage from the anchorage to its target berth.
// Pilotage is never paused by bad weather.
type InTransitShip struct {
	Ship        *Ship
	TargetBerth int
	Total       int // pilotage minutes at dispatch
	Remaining   int
}

// Progress is the travelled fraction in [0,1]. Zero-length pilotage reports 1.
func (m *InTransitShip) Progress() float64 {
	if m.Total <= 0 {
		return 1
	}
	p := 1 - float64(m.Remaining)/float64(m.Total)
	return min(1, max(0, p))
}

// advance moves the ship one minute closer and reports whether it has reached the berth.
// A ship dispatched on minute t is first advanced on minute t+1.
func (m *InTransitShip) advance() bool {
	m.Remaining--
	return m.Remaining <= 0
}

// DepartingShip is a ship that has finished unmooring and is leaving the port.
// It carries no simulation state beyond identity; it exists for renderers.
type DepartingShip struct {
	Ship     *Ship
	Berth    int // berth it left from
	Progress float64
}

// advance moves the departure animation forward and reports whether it is complete.
func (d *DepartingShip) advance() bool {
	d.Progress += departureProgressPerTick
	return d.Progress >= 1.0
}
