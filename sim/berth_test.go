package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort records what a BerthBank asks of the rest of the port.
type fakePort struct {
	billed     float64
	unmoors    []int
	targets    map[int]bool
	waiting    int
	dispatches []int
}

func (p *fakePort) bill(_, _ int, _ *MooredShip, c float64) { p.billed += c }
func (p *fakePort) unmoored(_, berth int, _ *MooredShip)    { p.unmoors = append(p.unmoors, berth) }
func (p *fakePort) targeted(berth int) bool                 { return p.targets[berth] }
func (p *fakePort) queued() int                             { return p.waiting }
func (p *fakePort) dispatch(_, berth int) {
	p.dispatches = append(p.dispatches, berth)
	p.waiting--
}

func TestBerthBank_OperationSequence(t *testing.T) {
	// GIVEN a one-berth bank with mooring 1 and Small service of exactly 2 minutes
	cfg := smallPortConfig()
	bank := NewBerthBank(cfg)
	port := &fakePort{}
	bank.Moor(10, 0, &Ship{ID: 1, Class: ClassSmall})

	// WHEN ticking from the mooring minute onwards
	ops := []Operation{}
	for minute := 10; minute <= 15; minute++ {
		bank.Tick(minute, false, port)
		if occ := bank.Slot(0).Occupant(); occ != nil {
			ops = append(ops, occ.Operation)
		} else {
			ops = append(ops, "")
		}
	}

	// THEN each operation is visible for its duration, then the berth frees
	assert.Equal(t, []Operation{OpMooring, OpService, OpService, OpUnmooring, "", ""}, ops)
	assert.Equal(t, []int{0}, port.unmoors)
	assert.InDelta(t, 100.0, port.billed, 1e-9)
}

func TestBerthBank_BadWeatherFreezesCountdown(t *testing.T) {
	cfg := smallPortConfig()
	bank := NewBerthBank(cfg)
	port := &fakePort{}
	occ := bank.Moor(0, 0, &Ship{ID: 1, Class: ClassSmall})

	for minute := 1; minute <= 10; minute++ {
		bank.Tick(minute, true, port)
	}
	assert.Equal(t, OpMooring, occ.Operation)
	assert.Equal(t, 1, occ.Remaining)
	assert.Zero(t, port.billed)
}

func TestBerthBank_BillingIsExactForFractionalService(t *testing.T) {
	// GIVEN 110 containers at 3000/h: 2.2 exact minutes, 3 whole minutes
	cfg := smallPortConfig()
	cfg.Containers.Small = 110
	bank := NewBerthBank(cfg)
	port := &fakePort{}
	bank.Moor(0, 0, &Ship{ID: 1, Class: ClassSmall})

	// WHEN the ship completes service
	for minute := 1; minute <= 6; minute++ {
		bank.Tick(minute, false, port)
	}

	// THEN exactly 110 containers were billed
	assert.InDelta(t, 110.0, port.billed, 1e-9)
}

func TestBerthBank_DispatchesOnlyFreeUntargetedBerths(t *testing.T) {
	// GIVEN three berths: 0 occupied, 1 targeted, 2 free
	cfg := smallPortConfig()
	cfg.Berths.Count = 3
	bank := NewBerthBank(cfg)
	bank.Moor(0, 0, &Ship{ID: 1, Class: ClassLarge})
	port := &fakePort{targets: map[int]bool{1: true}, waiting: 5}

	// WHEN a clear-weather tick runs
	bank.Tick(0, false, port)

	// THEN only berth 2 pulls from the queue
	assert.Equal(t, []int{2}, port.dispatches)

	// AND bad weather suspends dispatch entirely
	port.dispatches = nil
	bank2 := NewBerthBank(cfg)
	bank2.Tick(0, true, port)
	assert.Empty(t, port.dispatches)
}

func TestBerthBank_MoorIntoOccupiedBerthPanics(t *testing.T) {
	bank := NewBerthBank(smallPortConfig())
	bank.Moor(0, 0, &Ship{ID: 1})
	assert.Panics(t, func() { bank.Moor(0, 0, &Ship{ID: 2}) })
}

func TestBerthBank_Utilization(t *testing.T) {
	cfg := smallPortConfig()
	cfg.Berths.Count = 4
	bank := NewBerthBank(cfg)
	require.Equal(t, 4, bank.Len())
	assert.Equal(t, 0.0, bank.Utilization())

	bank.Moor(0, 1, &Ship{ID: 1})
	bank.Moor(0, 3, &Ship{ID: 2})
	assert.Equal(t, 2, bank.Occupied())
	assert.InDelta(t, 0.5, bank.Utilization(), 1e-12)
}

func TestMooredShip_Progress(t *testing.T) {
	m := &MooredShip{Remaining: 3, Duration: 4}
	assert.InDelta(t, 0.25, m.Progress(), 1e-12)
	m.Remaining = 0
	assert.Equal(t, 1.0, m.Progress())
	assert.Equal(t, 1.0, (&MooredShip{}).Progress())
}
