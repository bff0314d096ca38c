package trace

import (
	"math"
	"testing"
)

func TestSummarize_NilTrace_ReturnsZeroSummary(t *testing.T) {
	// GIVEN no trace
	// WHEN summarized
	s := Summarize(nil)

	// THEN every field is zero and the maps are usable
	if s.TotalDispatches != 0 || s.TotalDepartures != 0 || s.MeanWait != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s.ClassDistribution == nil || s.BerthDistribution == nil {
		t.Error("expected non-nil distribution maps")
	}
}

func TestSummarize_AggregatesDispatchesDeparturesAndWeather(t *testing.T) {
	// GIVEN a trace with three dispatches, two departures and mixed weather
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelLifecycle})
	st.RecordDispatch(DispatchRecord{ShipID: 1, Class: "Small", Berth: 0, Waited: 0})
	st.RecordDispatch(DispatchRecord{ShipID: 2, Class: "Large", Berth: 1, Waited: 9})
	st.RecordDispatch(DispatchRecord{ShipID: 3, Class: "Small", Berth: 0, Waited: 3})
	st.RecordDeparture(DepartureRecord{ShipID: 1, Containers: 200})
	st.RecordDeparture(DepartureRecord{ShipID: 2, Containers: 1000})
	st.RecordWeather(WeatherRecord{Minute: 0, Bad: false, Duration: 20})
	st.RecordWeather(WeatherRecord{Minute: 21, Bad: true, Duration: 10})
	st.RecordWeather(WeatherRecord{Minute: 32, Bad: true, Duration: 15})

	// WHEN summarized
	s := Summarize(st)

	// THEN counts, wait statistics and distributions match the records
	if s.TotalDispatches != 3 {
		t.Errorf("TotalDispatches = %d, want 3", s.TotalDispatches)
	}
	if s.TotalDepartures != 2 {
		t.Errorf("TotalDepartures = %d, want 2", s.TotalDepartures)
	}
	if math.Abs(s.MeanWait-4.0) > 1e-9 {
		t.Errorf("MeanWait = %f, want 4", s.MeanWait)
	}
	if s.MaxWait != 9 {
		t.Errorf("MaxWait = %d, want 9", s.MaxWait)
	}
	if s.ClassDistribution["Small"] != 2 || s.ClassDistribution["Large"] != 1 {
		t.Errorf("ClassDistribution = %v", s.ClassDistribution)
	}
	if s.BerthDistribution[0] != 2 || s.BerthDistribution[1] != 1 {
		t.Errorf("BerthDistribution = %v", s.BerthDistribution)
	}
	if s.ContainersMoved != 1200 {
		t.Errorf("ContainersMoved = %f, want 1200", s.ContainersMoved)
	}
	if s.BadWeatherSpells != 2 {
		t.Errorf("BadWeatherSpells = %d, want 2", s.BadWeatherSpells)
	}
}
