package main

import (
	"os"

	"github.com/lox/okeysim/internal/display"
)

// RoundCmd deals and scores one round.
type RoundCmd struct {
	Seed      *int64 `help:"Deterministic seed for the round (default: current time)"`
	Config    string `short:"c" default:"okeysim.hcl" help:"Config file (HCL)"`
	FakeFace  string `help:"Pin the fake okey to a tile face, e.g. Y9 (default: plays the okey)"`
	ShowHands bool   `help:"List every dealt hand above the results"`
	Verbose   bool   `help:"Enable debug logging"`
}

func (c *RoundCmd) Run() error {
	sim, _, err := buildSimulator(c.Config, c.Seed, c.FakeFace, c.Verbose)
	if err != nil {
		return err
	}

	result, err := sim.Run()
	if err != nil {
		return err
	}

	display.Round(os.Stdout, result, c.ShowHands)
	return nil
}
