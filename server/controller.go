// Package server exposes port runs over websocket sessions.
//
// Each session owns one Controller, and the Controller owns at most one
// sim.Run. Start, stop and configuration changes arrive as commands; a
// ticker steps the running Run and every new Snapshot is pushed to the client.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/port-sim/sim"
)

// Controller applies start/stop/configure semantics to a single Run.
// Any configuration change discards the current Run. Not safe for concurrent use.
type Controller struct {
	cfg sim.Config
	run *sim.Run

	// newSource builds the random source for each fresh Run; nil means seeded from the config.
	newSource func(sim.Config) sim.RandomSource
}

// NewController validates cfg and prepares a fresh, not-running Run.
func NewController(cfg sim.Config) (*Controller, error) {
	c := &Controller{}
	if err := c.reset(cfg, false); err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns the configuration of the current Run.
func (c *Controller) Config() sim.Config {
	return c.cfg
}

// Run returns the current Run.
func (c *Controller) Run() *sim.Run {
	return c.run
}

// Start merges patch over the current configuration and begins a fresh running Run.
func (c *Controller) Start(patch json.RawMessage) error {
	cfg, err := mergeConfig(c.cfg, patch)
	if err != nil {
		return err
	}
	return c.reset(cfg, true)
}

// Stop pauses the current Run.
func (c *Controller) Stop() {
	c.run.Stop()
}

// Configure merges patch over the current configuration and replaces the
// Run with a fresh one that waits for Start.
func (c *Controller) Configure(patch json.RawMessage) error {
	cfg, err := mergeConfig(c.cfg, patch)
	if err != nil {
		return err
	}
	return c.reset(cfg, false)
}

// Apply dispatches a client command.
func (c *Controller) Apply(cmd Command) error {
	switch cmd.Type {
	case CmdStart:
		return c.Start(cmd.Config)
	case CmdStop:
		c.Stop()
		return nil
	case CmdConfigure:
		return c.Configure(cmd.Config)
	default:
		return fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

// Tick steps a running Run by the configured step multiplier.
// It reports false, and does nothing, when the Run is stopped or finished.
func (c *Controller) Tick() (sim.Snapshot, bool) {
	if !c.run.Running() {
		return sim.Snapshot{}, false
	}
	return c.run.Step(c.cfg.StepMultiplier), true
}

// Snapshot returns the current Run's view.
func (c *Controller) Snapshot() sim.Snapshot {
	return c.run.Snapshot()
}

func (c *Controller) reset(cfg sim.Config, running bool) error {
	var src sim.RandomSource
	if c.newSource != nil {
		src = c.newSource(cfg)
	}
	run, err := sim.NewRun(cfg, src)
	if err != nil {
		return err
	}
	if !running {
		run.Stop()
	}
	c.cfg = cfg
	c.run = run
	logrus.Debugf("controller: new run %s (running=%v)", run.ID, running)
	return nil
}

// mergeConfig decodes a partial JSON config over base. Unknown fields are rejected.
func mergeConfig(base sim.Config, patch json.RawMessage) (sim.Config, error) {
	if len(bytes.TrimSpace(patch)) == 0 {
		return base, nil
	}
	cfg := base
	dec := json.NewDecoder(bytes.NewReader(patch))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}
	return cfg, nil
}
