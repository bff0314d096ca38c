package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/port-sim/sim"
	"github.com/inference-sim/port-sim/sim/record"
	"github.com/inference-sim/port-sim/sim/trace"
)

var (
	// CLI flags shared by run and sweep
	configPath     string  // YAML run configuration layered over the defaults
	seed           int64   // Seed for arrivals, classes and weather
	logLevel       string  // Log verbosity level
	berthCount     int     // Number of berths
	arrivalRate    float64 // Ships arriving per hour
	runLength      int     // Simulated minutes per run
	stepMultiplier int     // Ticks per step
	usePriority    bool    // Dispatch Large ships first
	badWeather     float64 // Probability that a new weather spell is bad

	// run-only flags
	recordPath string // zstd JSONL recording of every snapshot
	traceLevel string // Lifecycle trace level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "port-sim",
	Short: "Discrete-time container port simulator",
}

// runCmd runs one port simulation to completion using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one port simulation to completion",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		run, err := sim.NewRun(cfg, nil)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if tc := (trace.TraceConfig{Level: trace.TraceLevel(traceLevel)}); tc.Enabled() {
			run.Trace = trace.NewSimulationTrace(tc)
		}

		var rec *record.Recorder
		if recordPath != "" {
			rec, err = record.Create(recordPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		logrus.Infof("Starting port simulation %s: %d berths, %.2f ships/h, %d minutes, seed %d",
			run.ID, cfg.Berths.Count, cfg.Arrival.RatePerHour, cfg.RunLength, cfg.Seed)

		for run.Running() {
			snap := run.Step(cfg.StepMultiplier)
			if rec != nil {
				if err := rec.Write(snap); err != nil {
					logrus.Fatalf("recording minute %d: %v", snap.Minute, err)
				}
			}
		}
		if rec != nil {
			if err := rec.Close(); err != nil {
				logrus.Fatalf("closing recording: %v", err)
			}
			logrus.Infof("Recorded %d snapshots to %s", rec.Lines(), recordPath)
		}

		printSummary(os.Stdout, run.Snapshot())
		if run.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(run.Trace))
		}
		logrus.Info("Simulation complete.")
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// registerConfigFlags adds the configuration flags to c. Defaults mirror sim.DefaultConfig;
// a flag only overrides the config file when set explicitly.
func registerConfigFlags(c *cobra.Command) {
	d := sim.DefaultConfig()
	c.Flags().StringVar(&configPath, "config", "", "YAML port configuration (layered over the defaults)")
	c.Flags().Int64Var(&seed, "seed", d.Seed, "Seed for arrivals, ship classes and weather")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().IntVar(&berthCount, "berths", d.Berths.Count, "Number of berths")
	c.Flags().Float64Var(&arrivalRate, "arrival-rate", d.Arrival.RatePerHour, "Ships arriving per hour")
	c.Flags().IntVar(&runLength, "run-length", d.RunLength, "Simulated minutes per run")
	c.Flags().IntVar(&stepMultiplier, "step", d.StepMultiplier, "Ticks per step")
	c.Flags().BoolVar(&usePriority, "priority", d.UsePriority, "Dispatch larger ships first")
	c.Flags().Float64Var(&badWeather, "bad-weather", d.Weather.BadProbability, "Probability that a new weather spell is bad")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	registerConfigFlags(runCmd)
	runCmd.Flags().StringVar(&recordPath, "record", "", "Write every snapshot to this zstd JSONL file")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Lifecycle trace level (none, lifecycle)")

	rootCmd.AddCommand(runCmd)
}
