// Defines the Ship entity, its class table and the arrival class mix.

package sim

import (
	"fmt"
	"strings"
)

// ShipClass is the size class of an arriving ship.
// Declaration order (Small, Medium, Large) is the order class draws walk
// the cumulative distribution in.
type ShipClass int

const (
	ClassSmall ShipClass = iota
	ClassMedium
	ClassLarge
)

// AllShipClasses lists the classes in declaration order.
var AllShipClasses = []ShipClass{ClassSmall, ClassMedium, ClassLarge}

var shipClassTable = [...]struct {
	name           string
	priority       int
	sizeMultiplier float64
}{
	ClassSmall:  {name: "Small", priority: 1, sizeMultiplier: 0.7},
	ClassMedium: {name: "Medium", priority: 2, sizeMultiplier: 1.0},
	ClassLarge:  {name: "Large", priority: 3, sizeMultiplier: 1.3},
}

func (c ShipClass) valid() bool {
	return c >= ClassSmall && c <= ClassLarge
}

func (c ShipClass) String() string {
	if !c.valid() {
		return fmt.Sprintf("ShipClass(%d)", int(c))
	}
	return shipClassTable[c].name
}

// Priority is the dispatch rank under priority scheduling. Higher goes first.
func (c ShipClass) Priority() int {
	if !c.valid() {
		return 0
	}
	return shipClassTable[c].priority
}

// SizeMultiplier scales the rendered hull. The simulation never reads it.
func (c ShipClass) SizeMultiplier() float64 {
	if !c.valid() {
		return 1.0
	}
	return shipClassTable[c].sizeMultiplier
}

func (c ShipClass) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("unknown ship class %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *ShipClass) UnmarshalText(text []byte) error {
	parsed, err := ParseShipClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseShipClass accepts a class name in any letter case.
func ParseShipClass(name string) (ShipClass, error) {
	for _, c := range AllShipClasses {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown ship class %q; valid: Small, Medium, Large", name)
}

// Ship is one vessel. IDs increase monotonically within a Run and are never reused.
// A Ship is held by exactly one container at a time (queue, pilotage list,
// berth slot or departure list); transitions move the pointer, never copy it.
type Ship struct {
	ID            int
	Class         ShipClass
	ArrivalMinute int // minute the ship joined the queue
}

func (s Ship) String() string {
	return fmt.Sprintf("Ship: (ID: %d, Class: %s, ArrivalMinute: %d)", s.ID, s.Class, s.ArrivalMinute)
}

// ShipStage names the container that currently owns a ship.
type ShipStage string

const (
	StageQueued    ShipStage = "queued"
	StageInTransit ShipStage = "in_transit"
	StageMoored    ShipStage = "moored"
	StageDeparting ShipStage = "departing"
)

// ClassDistribution is the probability of each class for a new arrival.
type ClassDistribution struct {
	Small  float64 `yaml:"small" json:"small"`
	Medium float64 `yaml:"medium" json:"medium"`
	Large  float64 `yaml:"large" json:"large"`
}

// Probability returns the weight for one class.
func (d ClassDistribution) Probability(c ShipClass) float64 {
	switch c {
	case ClassSmall:
		return d.Small
	case ClassMedium:
		return d.Medium
	case ClassLarge:
		return d.Large
	default:
		return 0
	}
}

// Sum returns the total probability mass.
func (d ClassDistribution) Sum() float64 {
	return d.Small + d.Medium + d.Large
}

// Pick maps a uniform draw u in [0,1) to a class: the first class, in
// declaration order, whose running cumulative probability is >= u.
// A draw equal to a running total selects the class that reaches it.
// Zero-weight classes are never selected, even for u == 0.
// If rounding leaves the cumulative total below u, Pick returns ClassMedium.
func (d ClassDistribution) Pick(u float64) ShipClass {
	cumulative := 0.0
	for _, c := range AllShipClasses {
		p := d.Probability(c)
		cumulative += p
		if p > 0 && u <= cumulative {
			return c
		}
	}
	return ClassMedium
}
