package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// GIVEN two RNGs with the same key
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN drawing from the same subsystem
	// THEN both sequences are identical
	for i := 0; i < 5; i++ {
		a := rng1.ForSubsystem(SubsystemWeather).Float64()
		b := rng2.ForSubsystem(SubsystemWeather).Float64()
		if a != b {
			t.Errorf("draw %d: got %v and %v, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// GIVEN two RNGs with the same key
	rngA := NewPartitionedRNG(NewSimulationKey(7))
	rngB := NewPartitionedRNG(NewSimulationKey(7))

	// WHEN A burns many weather draws and B none
	for i := 0; i < 100; i++ {
		rngA.ForSubsystem(SubsystemWeather).Float64()
	}

	// THEN their arrival streams still agree
	for i := 0; i < 10; i++ {
		a := rngA.ForSubsystem(SubsystemArrivals).Float64()
		b := rngB.ForSubsystem(SubsystemArrivals).Float64()
		if a != b {
			t.Fatalf("arrival draw %d diverged: %v vs %v", i, a, b)
		}
	}
}

func TestPartitionedRNG_ForSubsystem_Caches(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	if rng.ForSubsystem(SubsystemClasses) != rng.ForSubsystem(SubsystemClasses) {
		t.Error("expected the same *rand.Rand instance for repeated calls")
	}
	if rng.Key() != NewSimulationKey(1) {
		t.Errorf("Key() = %d, want 1", rng.Key())
	}
}

func TestPartitionedRNG_DistinctSubsystemsDiffer(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	a := rng.ForSubsystem(SubsystemArrivals).Int63()
	w := rng.ForSubsystem(SubsystemWeather).Int63()
	c := rng.ForSubsystem(SubsystemClasses).Int63()
	if a == w || a == c || w == c {
		t.Errorf("expected distinct first draws, got arrivals=%d weather=%d classes=%d", a, w, c)
	}
}

// === SeededSource Tests ===

func TestSeededSource_SameSeedSameSequence(t *testing.T) {
	// GIVEN two sources with the same key
	a := NewSeededSource(NewSimulationKey(99))
	b := NewSeededSource(NewSimulationKey(99))
	d := ClassDistribution{Small: 0.5, Medium: 0.3, Large: 0.2}

	// WHEN the same calls are made on both
	// THEN every decision matches
	for i := 0; i < 200; i++ {
		assert.Equal(t, a.Arrival(20), b.Arrival(20), "arrival %d", i)
		assert.Equal(t, a.DrawClass(d), b.DrawClass(d), "class %d", i)
		assert.Equal(t, a.WeatherTrial(0.3), b.WeatherTrial(0.3), "trial %d", i)
		assert.Equal(t, a.WeatherDuration(10, 50), b.WeatherDuration(10, 50), "duration %d", i)
	}
	assert.Equal(t, NewSimulationKey(99), a.Key())
}

func TestSeededSource_ArrivalRateExtremes(t *testing.T) {
	src := NewSeededSource(NewSimulationKey(3))
	for i := 0; i < 1000; i++ {
		if src.Arrival(0) {
			t.Fatal("rate 0 must never admit a ship")
		}
		if !src.Arrival(60) {
			t.Fatal("rate 60 must admit a ship every minute")
		}
	}
}

func TestSeededSource_WeatherDuration_InclusiveBounds(t *testing.T) {
	// GIVEN a narrow duration range
	src := NewSeededSource(NewSimulationKey(5))
	seen := map[int]bool{}

	// WHEN drawing many durations
	for i := 0; i < 5000; i++ {
		d := src.WeatherDuration(10, 12)
		if d < 10 || d > 12 {
			t.Fatalf("duration %d outside [10, 12]", d)
		}
		seen[d] = true
	}

	// THEN both ends of the range occur
	assert.True(t, seen[10], "min bound never drawn")
	assert.True(t, seen[12], "max bound never drawn")
	assert.Equal(t, 7, src.WeatherDuration(7, 7), "degenerate range returns min")
}

func TestSeededSource_DrawClass_DegenerateDistribution(t *testing.T) {
	// GIVEN a distribution that only ever yields Small
	src := NewSeededSource(NewSimulationKey(11))
	d := ClassDistribution{Small: 1}

	// WHEN drawing 1000 classes
	// THEN every draw is Small
	for i := 0; i < 1000; i++ {
		if c := src.DrawClass(d); c != ClassSmall {
			t.Fatalf("draw %d: got %s, want Small", i, c)
		}
	}
}

func TestSeededSource_WeatherTrialExtremes(t *testing.T) {
	src := NewSeededSource(NewSimulationKey(8))
	for i := 0; i < 500; i++ {
		assert.False(t, src.WeatherTrial(0))
		assert.True(t, src.WeatherTrial(1))
	}
}
