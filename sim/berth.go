package sim

import (
	"fmt"
	"math"
)

// Operation is what a moored ship is currently doing at its berth.
type Operation string

const (
	OpMooring   Operation = "mooring"
	OpService   Operation = "service"
	OpUnmooring Operation = "unmooring"
)

// MooredShip is a ship occupying a berth slot, with the countdown of its
// current operation and, once in service, its billing counters.
type MooredShip struct {
	Ship      *Ship
	Operation Operation
	Remaining int // minutes left in the current operation
	Duration  int // full length of the current operation
	MooredAt  int // minute the ship reached the berth

	TotalContainers     int     // fixed by class when service begins
	ContainersPerMinute float64 // TotalContainers / exact service minutes
	ServiceElapsed      int     // service minutes actually worked (bad weather excluded)
	Billed              float64 // containers already billed; never exceeds TotalContainers
}

// Progress is the completed fraction of the current operation in [0,1].
func (m *MooredShip) Progress() float64 {
	if m.Duration <= 0 {
		return 1
	}
	p := 1 - float64(m.Remaining)/float64(m.Duration)
	return min(1, max(0, p))
}

func (m *MooredShip) beginService(cfg Config) {
	m.Operation = OpService
	m.TotalContainers = cfg.Containers.For(m.Ship.Class)
	m.Duration = cfg.ServiceMinutes(m.Ship.Class)
	m.Remaining = m.Duration
	m.ContainersPerMinute = float64(m.TotalContainers) / cfg.serviceMinutesExact(m.Ship.Class)
	m.ServiceElapsed = 0
	m.Billed = 0
}

// accrue bills the containers worked since the last update, capped at the
// ship's total, and returns how many were newly billed.
func (m *MooredShip) accrue() float64 {
	target := math.Min(float64(m.TotalContainers), float64(m.ServiceElapsed)*m.ContainersPerMinute)
	delta := target - m.Billed
	if delta <= 0 {
		return 0
	}
	m.Billed = target
	return delta
}

// settle bills whatever accrue left over so the ship's total is exact.
func (m *MooredShip) settle() float64 {
	delta := float64(m.TotalContainers) - m.Billed
	m.Billed = float64(m.TotalContainers)
	if delta <= 0 {
		return 0
	}
	return delta
}

// BerthSlot holds at most one ship. A slot is free iff it holds no ship.
type BerthSlot struct {
	Index    int
	occupant *MooredShip
}

// Free reports whether the slot holds no ship.
func (b *BerthSlot) Free() bool {
	return b.occupant == nil
}

// Occupant returns the moored ship, or nil if the slot is free.
func (b *BerthSlot) Occupant() *MooredShip {
	return b.occupant
}

// berthPort is how the bank reaches the rest of the port during a tick.
type berthPort interface {
	bill(minute, berth int, m *MooredShip, containers float64)
	unmoored(minute, berth int, m *MooredShip)
	targeted(berth int) bool
	queued() int
	dispatch(minute, berth int)
}

// BerthBank is the fixed array of berth slots. Each slot evolves independently:
// empty -> mooring -> service -> unmooring -> empty.
type BerthBank struct {
	cfg   Config
	slots []BerthSlot
}

// NewBerthBank creates cfg.Berths.Count empty slots.
func NewBerthBank(cfg Config) *BerthBank {
	slots := make([]BerthSlot, cfg.Berths.Count)
	for i := range slots {
		slots[i].Index = i
	}
	return &BerthBank{cfg: cfg, slots: slots}
}

// Len returns the number of berths.
func (bb *BerthBank) Len() int {
	return len(bb.slots)
}

// Slot returns berth i.
func (bb *BerthBank) Slot(i int) *BerthSlot {
	return &bb.slots[i]
}

// Occupied counts berths holding a ship.
func (bb *BerthBank) Occupied() int {
	n := 0
	for i := range bb.slots {
		if !bb.slots[i].Free() {
			n++
		}
	}
	return n
}

// Utilization is occupied / total berths.
func (bb *BerthBank) Utilization() float64 {
	return float64(bb.Occupied()) / float64(len(bb.slots))
}

// Moor places a ship arriving from pilotage into berth i in the mooring operation.
// Mooring into an occupied berth is an invariant violation and panics.
func (bb *BerthBank) Moor(minute, i int, ship *Ship) *MooredShip {
	slot := &bb.slots[i]
	if !slot.Free() {
		panic(fmt.Sprintf("Moor: berth %d already holds ship %d, cannot moor ship %d", i, slot.occupant.Ship.ID, ship.ID))
	}
	slot.occupant = &MooredShip{
		Ship:      ship,
		Operation: OpMooring,
		Remaining: bb.cfg.Berths.MooringMinutes,
		Duration:  bb.cfg.Berths.MooringMinutes,
		MooredAt:  minute,
	}
	return slot.occupant
}

// Tick processes every slot for one minute, in index order:
//  1. an occupied slot counts its operation down by one (skipped in bad weather,
//     and on the minute the ship arrived), billing service minutes as they pass;
//  2. a countdown that reaches zero advances the operation;
//  3. a free, untargeted slot in clear weather pulls the next ship from the queue.
func (bb *BerthBank) Tick(minute int, weatherBad bool, p berthPort) {
	for i := range bb.slots {
		slot := &bb.slots[i]
		if occ := slot.occupant; occ != nil && !weatherBad && occ.MooredAt != minute {
			occ.Remaining--
			if occ.Operation == OpService {
				occ.ServiceElapsed++
				if c := occ.accrue(); c > 0 {
					p.bill(minute, i, occ, c)
				}
			}
			if occ.Remaining <= 0 {
				bb.advance(minute, i, p)
			}
		}
		if slot.Free() && !weatherBad && !p.targeted(i) && p.queued() > 0 {
			p.dispatch(minute, i)
		}
	}
}

func (bb *BerthBank) advance(minute, i int, p berthPort) {
	slot := &bb.slots[i]
	occ := slot.occupant
	switch occ.Operation {
	case OpMooring:
		occ.beginService(bb.cfg)
	case OpService:
		if c := occ.settle(); c > 0 {
			p.bill(minute, i, occ, c)
		}
		occ.Operation = OpUnmooring
		occ.Duration = bb.cfg.Berths.MooringMinutes
		occ.Remaining = occ.Duration
	case OpUnmooring:
		slot.occupant = nil
		p.unmoored(minute, i, occ)
	default:
		panic(fmt.Sprintf("advance: berth %d has unknown operation %q", i, occ.Operation))
	}
}
