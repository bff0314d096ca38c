package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/port-sim/sim"
)

// defaultsFilePath is read when --config is not given and the file exists.
const defaultsFilePath = "defaults.yaml"

// resolveConfig loads the config file, then applies the flags the user set explicitly.
// Unset flags never overwrite file values.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(defaultsFilePath); err == nil {
			path = defaultsFilePath
		}
	}

	cfg := sim.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = sim.LoadConfig(path)
		if err != nil {
			return sim.Config{}, err
		}
		logrus.Debugf("loaded port config from %s", path)
	}
	applyFlagOverrides(cmd, &cfg)
	return cfg, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *sim.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("berths") {
		cfg.Berths.Count = berthCount
	}
	if flags.Changed("arrival-rate") {
		cfg.Arrival.RatePerHour = arrivalRate
	}
	if flags.Changed("run-length") {
		cfg.RunLength = runLength
	}
	if flags.Changed("step") {
		cfg.StepMultiplier = stepMultiplier
	}
	if flags.Changed("priority") {
		cfg.UsePriority = usePriority
	}
	if flags.Changed("bad-weather") {
		cfg.Weather.BadProbability = badWeather
	}
}
