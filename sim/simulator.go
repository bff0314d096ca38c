// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/port-sim/sim/trace"
)

// Run is one owned, in-memory port simulation. It starts at minute 0 with an
// empty queue, free berths and a zero ledger, and is mutated only by Step.
// A Run is not safe for concurrent use; independent Runs share no state.
type Run struct {
	ID     string
	Config Config
	Clock  int // minutes simulated so far

	// Trace, when non-nil and enabled, receives lifecycle records.
	Trace *trace.SimulationTrace

	Metrics *Metrics
	Ledger  *FinancialLedger

	running  bool
	finished bool

	src       RandomSource
	weather   *WeatherController
	queue     *ShipQueue
	scheduler BerthScheduler
	inTransit []*InTransitShip
	berths    *BerthBank
	departing []*DepartingShip

	nextShipID int
}

// NewRun validates cfg and creates a fresh running Run at minute 0.
// A nil src is replaced by a SeededSource keyed on cfg.Seed.
func NewRun(cfg Config, src RandomSource) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSeededSource(NewSimulationKey(cfg.Seed))
	}
	r := &Run{
		ID:         uuid.NewString(),
		Config:     cfg,
		Metrics:    NewMetrics(),
		Ledger:     NewFinancialLedger(cfg.Finance.MonthlyMaintenance),
		running:    true,
		src:        src,
		weather:    NewWeatherController(cfg.Weather),
		queue:      &ShipQueue{},
		scheduler:  NewScheduler(cfg.UsePriority),
		berths:     NewBerthBank(cfg),
		nextShipID: 1,
	}
	logrus.Debugf("new run %s: %d berths, arrival %.2f/h, scheduler=%s, run length %d",
		r.ID, cfg.Berths.Count, cfg.Arrival.RatePerHour, r.scheduler.Name(), cfg.RunLength)
	return r, nil
}

// Running reports whether Step will advance time.
func (r *Run) Running() bool {
	return r.running
}

// Finished reports whether the clock has reached the configured run length.
func (r *Run) Finished() bool {
	return r.finished
}

// Stop pauses the run. Further Step calls are no-ops; start over with NewRun.
func (r *Run) Stop() {
	r.running = false
}

// Queue exposes the waiting ships.
func (r *Run) Queue() *ShipQueue {
	return r.queue
}

// Berths exposes the berth bank.
func (r *Run) Berths() *BerthBank {
	return r.berths
}

// Weather exposes the weather controller.
func (r *Run) Weather() *WeatherController {
	return r.weather
}

// InTransit returns the ships under pilotage. Callers MUST NOT modify the slice.
func (r *Run) InTransit() []*InTransitShip {
	return r.inTransit
}

// Departing returns the ships leaving the port. Callers MUST NOT modify the slice.
func (r *Run) Departing() []*DepartingShip {
	return r.departing
}

// InjectArrival enqueues a ship of the given class at the current minute,
// outside the random arrival process.
func (r *Run) InjectArrival(class ShipClass) *Ship {
	return r.admit(class, r.Clock)
}

// Step advances the run by ticks simulated minutes and returns the new Snapshot.
// After the ticks, one point is appended to every series, maintenance is checked
// once, and the clock moves forward by ticks. Reaching Config.RunLength finishes the run.
// Stepping a stopped or finished run returns the current Snapshot unchanged.
func (r *Run) Step(ticks int) Snapshot {
	if ticks < 1 {
		panic(fmt.Sprintf("Step: ticks must be at least 1, got %d", ticks))
	}
	if !r.running || r.finished {
		return r.Snapshot()
	}
	for i := 0; i < ticks; i++ {
		r.tick(r.Clock + i)
	}

	now := r.Clock + ticks
	r.Metrics.Record(now, r.queue, r.berths)
	if r.Ledger.ApplyMaintenance(now) {
		logrus.Debugf("[minute %04d] maintenance charged: %.2f", now, r.Config.Finance.MonthlyMaintenance)
	}
	r.Ledger.RecordPoint(now)
	r.Clock = now

	if r.Clock >= r.Config.RunLength {
		r.finished = true
		r.running = false
		logrus.Infof("[minute %04d] run %s finished: %d ships departed, profit %.2f",
			r.Clock, r.ID, r.Metrics.Departed, r.Ledger.Profit())
	}
	return r.Snapshot()
}

// tick simulates one minute.
func (r *Run) tick(minute int) {
	prev := r.weather.State()
	if r.weather.Tick(r.src) {
		r.weatherDrawn(minute, prev)
	}
	if r.weather.Bad() {
		r.Metrics.BadWeatherMinutes++
	}

	if r.src.Arrival(r.Config.Arrival.RatePerHour) {
		r.admit(r.src.DrawClass(r.Config.Arrival.Distribution), minute)
	}

	r.advancePilotage(minute)
	r.advanceDepartures()
	r.berths.Tick(minute, r.weather.Bad(), r)
}

func (r *Run) weatherDrawn(minute int, prev Weather) {
	if r.weather.State() != prev {
		logrus.Infof("[minute %04d] weather turned %s for %d minutes", minute, r.weather.State(), r.weather.Remaining())
	}
	if r.tracing() {
		r.Trace.RecordWeather(trace.WeatherRecord{
			Minute:   minute,
			Bad:      r.weather.Bad(),
			Duration: r.weather.Remaining(),
		})
	}
}

func (r *Run) admit(class ShipClass, minute int) *Ship {
	s := &Ship{ID: r.nextShipID, Class: class, ArrivalMinute: minute}
	r.nextShipID++
	r.queue.Enqueue(s)
	r.Metrics.Admitted++
	logrus.Debugf("[minute %04d] ship %d (%s) arrived, queue=%d", minute, s.ID, s.Class, r.queue.Len())
	return s
}

func (r *Run) advancePilotage(minute int) {
	kept := r.inTransit[:0]
	for _, m := range r.inTransit {
		if !m.advance() {
			kept = append(kept, m)
			continue
		}
		r.moor(minute, m.TargetBerth, m.Ship)
	}
	for i := len(kept); i < len(r.inTransit); i++ {
		r.inTransit[i] = nil
	}
	r.inTransit = kept
}

func (r *Run) moor(minute, berth int, s *Ship) {
	r.berths.Moor(minute, berth, s)
	r.Metrics.Moored++
	logrus.Debugf("[minute %04d] ship %d moored at berth %d", minute, s.ID, berth)
}

func (r *Run) advanceDepartures() {
	kept := r.departing[:0]
	for _, d := range r.departing {
		if !d.advance() {
			kept = append(kept, d)
			continue
		}
		r.Metrics.Departed++
	}
	for i := len(kept); i < len(r.departing); i++ {
		r.departing[i] = nil
	}
	r.departing = kept
}

// === berthPort ===

func (r *Run) bill(_, _ int, _ *MooredShip, containers float64) {
	r.Ledger.RecordContainerThroughput(containers, r.Config.Finance.IncomePerContainer, r.Config.Finance.CostPerContainer)
}

func (r *Run) unmoored(minute, berth int, m *MooredShip) {
	r.departing = append(r.departing, &DepartingShip{Ship: m.Ship, Berth: berth})
	r.Metrics.Unmoored++
	logrus.Debugf("[minute %04d] ship %d left berth %d after %.0f containers", minute, m.Ship.ID, berth, m.Billed)
	if r.tracing() {
		r.Trace.RecordDeparture(trace.DepartureRecord{
			ShipID:     m.Ship.ID,
			Class:      m.Ship.Class.String(),
			Minute:     minute,
			Berth:      berth,
			Containers: m.Billed,
			Income:     m.Billed * r.Config.Finance.IncomePerContainer,
		})
	}
}

func (r *Run) targeted(berth int) bool {
	for _, m := range r.inTransit {
		if m.TargetBerth == berth {
			return true
		}
	}
	return false
}

func (r *Run) queued() int {
	return r.queue.Len()
}

func (r *Run) dispatch(minute, berth int) {
	if !r.berths.Slot(berth).Free() || r.targeted(berth) {
		panic(fmt.Sprintf("dispatch: berth %d is occupied or already targeted", berth))
	}
	r.queue.Reorder(r.scheduler.OrderQueue)
	s := r.queue.DequeueFront()
	if s == nil {
		return
	}
	waited := minute - s.ArrivalMinute
	r.Metrics.Dispatched++
	r.Metrics.DispatchedByClass[s.Class]++
	r.Metrics.ShipWaits = append(r.Metrics.ShipWaits, waited)
	logrus.Debugf("[minute %04d] dispatched ship %d (%s) to berth %d after %d minutes", minute, s.ID, s.Class, berth, waited)
	if r.tracing() {
		r.Trace.RecordDispatch(trace.DispatchRecord{
			ShipID:     s.ID,
			Class:      s.Class.String(),
			Minute:     minute,
			Berth:      berth,
			Waited:     waited,
			QueueDepth: r.queue.Len(),
			Scheduler:  r.scheduler.Name(),
		})
	}

	// Zero-length pilotage moors on the dispatch minute.
	if r.Config.Berths.PilotageMinutes == 0 {
		r.moor(minute, berth, s)
		return
	}
	r.inTransit = append(r.inTransit, &InTransitShip{
		Ship:        s,
		TargetBerth: berth,
		Total:       r.Config.Berths.PilotageMinutes,
		Remaining:   r.Config.Berths.PilotageMinutes,
	})
}

func (r *Run) tracing() bool {
	return r.Trace != nil && r.Trace.Config.Enabled()
}
