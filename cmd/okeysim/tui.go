package main

import (
	"github.com/lox/okeysim/internal/tui"
)

// TuiCmd runs the interactive round viewer.
type TuiCmd struct {
	Seed     *int64 `help:"Seed for the first round (default: from config, else current time)"`
	Config   string `short:"c" default:"okeysim.hcl" help:"Path to config file"`
	FakeFace string `help:"Pin the fake okey to a tile face (default: plays the okey)"`
	Verbose  bool   `help:"Enable debug logging"`
}

func (c *TuiCmd) Run() error {
	sim, cfg, err := buildSimulator(c.Config, c.Seed, c.FakeFace, c.Verbose)
	if err != nil {
		return err
	}
	seed := resolveSeed(c.Seed, cfg)
	return tui.Run(sim, seed, newLogger(cfg.Simulation.LogLevel, c.Verbose))
}
