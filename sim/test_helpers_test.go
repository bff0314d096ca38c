package sim

// scriptedSource is a RandomSource that replays fixed decisions.
// Each list is consumed one entry per call; once exhausted, the fallback is used.
type scriptedSource struct {
	arrivals  []bool
	classes   []ShipClass
	trials    []bool
	durations []int

	fallbackDuration int // returned once durations is exhausted

	weatherCalls int
}

func (s *scriptedSource) Arrival(float64) bool {
	if len(s.arrivals) == 0 {
		return false
	}
	v := s.arrivals[0]
	s.arrivals = s.arrivals[1:]
	return v
}

func (s *scriptedSource) DrawClass(ClassDistribution) ShipClass {
	if len(s.classes) == 0 {
		return ClassSmall
	}
	v := s.classes[0]
	s.classes = s.classes[1:]
	return v
}

func (s *scriptedSource) WeatherTrial(float64) bool {
	s.weatherCalls++
	if len(s.trials) == 0 {
		return false
	}
	v := s.trials[0]
	s.trials = s.trials[1:]
	return v
}

func (s *scriptedSource) WeatherDuration(int, int) int {
	if len(s.durations) == 0 {
		return s.fallbackDuration
	}
	v := s.durations[0]
	s.durations = s.durations[1:]
	return v
}

// calmSource never produces bad weather and admits ships only where scripted.
func calmSource(arrivals ...bool) *scriptedSource {
	return &scriptedSource{arrivals: arrivals, fallbackDuration: 100000}
}

// smallPortConfig is a one-berth port with short, round durations:
// pilotage 2, mooring 1, and Small service of exactly 2 minutes.
func smallPortConfig() Config {
	cfg := DefaultConfig()
	cfg.Berths.Count = 1
	cfg.Berths.PilotageMinutes = 2
	cfg.Berths.MooringMinutes = 1
	cfg.Berths.ProductivityPerHour = 3000
	cfg.Containers = ContainerCounts{Small: 100, Medium: 500, Large: 1000}
	cfg.Finance = FinanceConfig{IncomePerContainer: 10, CostPerContainer: 2, MonthlyMaintenance: 0}
	return cfg
}

func stepN(r *Run, n int) Snapshot {
	var s Snapshot
	for i := 0; i < n; i++ {
		s = r.Step(1)
	}
	return s
}
