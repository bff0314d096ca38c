package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/inference-sim/port-sim/sim"
	"github.com/inference-sim/port-sim/sim/trace"
)

// printSummary writes the port status panel for a snapshot.
func printSummary(w io.Writer, s sim.Snapshot) {
	weather := "clear"
	if s.Weather.Bad {
		weather = "bad"
	}
	fmt.Fprintln(w, "=== Port Status ===")
	fmt.Fprintf(w, "Run:                %s\n", s.RunID)
	fmt.Fprintf(w, "Minute:             %d / %d\n", s.Minute, s.RunLength)
	fmt.Fprintf(w, "Weather:            %s (%d min left)\n", weather, s.Weather.Remaining)
	fmt.Fprintf(w, "Ships admitted:     %s\n", humanize.Comma(int64(s.Counters.Admitted)))
	fmt.Fprintf(w, "Ships departed:     %s\n", humanize.Comma(int64(s.Counters.Departed)))
	fmt.Fprintf(w, "Ships in port:      %d\n", s.ShipsInPort())
	fmt.Fprintf(w, "Queue length:       %d\n", len(s.Queue))
	fmt.Fprintf(w, "Average wait:       %.1f min\n", last(s.Series.AverageWait))
	fmt.Fprintf(w, "Berth utilization:  %.0f%%\n", last(s.Series.Utilization)*100)
	fmt.Fprintf(w, "Containers handled: %s\n", humanize.CommafWithDigits(s.Ledger.Containers, 0))
	fmt.Fprintf(w, "Income:             %s\n", money(s.Ledger.Income))
	fmt.Fprintf(w, "Container cost:     %s\n", money(s.Ledger.ContainerCost))
	fmt.Fprintf(w, "Maintenance cost:   %s\n", money(s.Ledger.MaintenanceCost))
	fmt.Fprintf(w, "Profit:             %s\n", money(s.Ledger.Profit))
}

// printTraceSummary writes dispatch and departure statistics from a lifecycle trace.
func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Lifecycle Trace ===")
	fmt.Fprintf(w, "Dispatches:         %d\n", ts.TotalDispatches)
	fmt.Fprintf(w, "Departures:         %d\n", ts.TotalDepartures)
	fmt.Fprintf(w, "Mean wait:          %.1f min (max %d)\n", ts.MeanWait, ts.MaxWait)
	fmt.Fprintf(w, "Bad weather spells: %d\n", ts.BadWeatherSpells)
	classes := make([]string, 0, len(ts.ClassDistribution))
	for c := range ts.ClassDistribution {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		fmt.Fprintf(w, "  %-8s %d\n", c+":", ts.ClassDistribution[c])
	}
}

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

func last(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}
