package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/port-sim/sim"
)

var (
	sweepSeeds    int // Number of consecutive seeds
	sweepParallel int // Runs in flight at once
)

// sweepResult is the outcome of one seed.
type sweepResult struct {
	Seed     int64
	Snapshot sim.Snapshot
	Err      error
}

// sweepCmd runs independent seeds of the same configuration in parallel
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the same port configuration across consecutive seeds in parallel",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if sweepSeeds < 1 {
			logrus.Fatalf("--seeds must be at least 1, got %d", sweepSeeds)
		}
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		results := runSweep(cfg, sweepSeeds, sweepParallel)
		printSweep(os.Stdout, results)
	},
}

// runSweep runs n Runs seeded cfg.Seed, cfg.Seed+1, ... with at most parallel
// in flight. Each Run is owned by one goroutine; results come back in seed order.
func runSweep(cfg sim.Config, n, parallel int) []sweepResult {
	if parallel < 1 {
		parallel = 1
	}
	results := make([]sweepResult, n)
	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			c := cfg
			c.Seed = cfg.Seed + int64(i)
			results[i].Seed = c.Seed
			run, err := sim.NewRun(c, nil)
			if err != nil {
				results[i].Err = err
				return
			}
			for run.Running() {
				run.Step(c.StepMultiplier)
			}
			results[i].Snapshot = run.Snapshot()
			logrus.Debugf("sweep seed %d done: profit %.2f", c.Seed, run.Ledger.Profit())
		}(i)
	}
	wg.Wait()
	return results
}

func printSweep(w io.Writer, results []sweepResult) {
	fmt.Fprintf(w, "%-8s %9s %9s %7s %10s %16s\n", "seed", "admitted", "departed", "queue", "avg wait", "profit")
	var profits []float64
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%-8d error: %v\n", r.Seed, r.Err)
			continue
		}
		s := r.Snapshot
		fmt.Fprintf(w, "%-8d %9d %9d %7d %10.1f %16s\n",
			r.Seed, s.Counters.Admitted, s.Counters.Departed, len(s.Queue), last(s.Series.AverageWait), money(s.Ledger.Profit))
		profits = append(profits, s.Ledger.Profit)
	}
	if len(profits) > 0 {
		fmt.Fprintf(w, "profit mean %s, p50 %s, max %s over %s runs\n",
			money(sim.CalculateMean(profits)),
			money(sim.CalculatePercentile(profits, 50)),
			money(sim.CalculateMax(profits)),
			humanize.Comma(int64(len(profits))))
	}
}

func init() {
	registerConfigFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 8, "Number of consecutive seeds to run")
	sweepCmd.Flags().IntVar(&sweepParallel, "parallel", 4, "Runs in flight at once")

	rootCmd.AddCommand(sweepCmd)
}
