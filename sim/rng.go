package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible port run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical series.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemArrivals is the RNG subsystem for the per-minute arrival trial.
	// Uses the master seed directly.
	SubsystemArrivals = "arrivals"

	// SubsystemClasses is the RNG subsystem for ship class draws.
	SubsystemClasses = "classes"

	// SubsystemWeather is the RNG subsystem for weather trials and durations.
	SubsystemWeather = "weather"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemArrivals: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Isolation means that changing, say, the bad-weather probability does not
// shift the arrival stream of an otherwise identical run.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemArrivals {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === RandomSource ===

// RandomSource supplies every stochastic decision a Run makes.
// All methods are total: they always return a value and advance the
// underlying stream. Swap in a scripted implementation to pin decisions in tests.
type RandomSource interface {
	// Arrival reports whether a ship arrives this minute, with probability
	// ratePerHour/60.
	Arrival(ratePerHour float64) bool
	// DrawClass samples a ship class from the distribution.
	DrawClass(d ClassDistribution) ShipClass
	// WeatherTrial reports true (bad weather) with probability p.
	WeatherTrial(p float64) bool
	// WeatherDuration returns an integer drawn uniformly from [min, max].
	WeatherDuration(min, max int) int
}

// SeededSource is the production RandomSource, backed by a PartitionedRNG
// so that arrivals, class draws and weather consume independent streams.
type SeededSource struct {
	rng *PartitionedRNG
}

// NewSeededSource creates a SeededSource for the given key.
func NewSeededSource(key SimulationKey) *SeededSource {
	return &SeededSource{rng: NewPartitionedRNG(key)}
}

func (s *SeededSource) Arrival(ratePerHour float64) bool {
	return s.rng.ForSubsystem(SubsystemArrivals).Float64() < ratePerHour/60
}

func (s *SeededSource) DrawClass(d ClassDistribution) ShipClass {
	return d.Pick(s.rng.ForSubsystem(SubsystemClasses).Float64())
}

func (s *SeededSource) WeatherTrial(p float64) bool {
	return s.rng.ForSubsystem(SubsystemWeather).Float64() < p
}

func (s *SeededSource) WeatherDuration(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.ForSubsystem(SubsystemWeather).Intn(max-min+1)
}

// Key returns the SimulationKey this source was seeded with.
func (s *SeededSource) Key() SimulationKey {
	return s.rng.Key()
}
