package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches   int
	TotalDepartures   int
	MeanWait          float64
	MaxWait           int
	BadWeatherSpells  int
	ClassDistribution map[string]int // class name → count of ships dispatched
	BerthDistribution map[int]int    // berth index → count of ships dispatched
	ContainersMoved   float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ClassDistribution: make(map[string]int),
		BerthDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	if len(st.Dispatches) > 0 {
		totalWait := 0
		for _, d := range st.Dispatches {
			summary.ClassDistribution[d.Class]++
			summary.BerthDistribution[d.Berth]++
			totalWait += d.Waited
			if d.Waited > summary.MaxWait {
				summary.MaxWait = d.Waited
			}
		}
		summary.MeanWait = float64(totalWait) / float64(len(st.Dispatches))
	}

	summary.TotalDepartures = len(st.Departures)
	for _, d := range st.Departures {
		summary.ContainersMoved += d.Containers
	}

	for _, w := range st.Weather {
		if w.Bad {
			summary.BadWeatherSpells++
		}
	}

	return summary
}
