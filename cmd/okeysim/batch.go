package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/okeysim/internal/fileutil"
	"github.com/lox/okeysim/internal/simulator"
	"github.com/lox/okeysim/internal/stats"
	"github.com/lox/okeysim/okey"
)

// BatchCmd runs many independent rounds and aggregates statistics.
type BatchCmd struct {
	Rounds   int    `help:"Number of rounds to run (default: from config)"`
	Workers  int    `help:"Worker goroutines (default: from config)"`
	Seed     *int64 `help:"Master seed; every round seed derives from it (default: current time)"`
	Config   string `short:"c" default:"okeysim.hcl" help:"Config file (HCL)"`
	FakeFace string `help:"Pin the fake okey to a tile face, e.g. Y9 (default: plays the okey)"`
	Output   string `short:"o" help:"Write a plain text report to this file"`
	Verbose  bool   `help:"Enable debug logging"`
}

func (c *BatchCmd) Run() error {
	sim, cfg, err := buildSimulator(c.Config, c.Seed, c.FakeFace, c.Verbose)
	if err != nil {
		return err
	}

	rounds := c.Rounds
	if rounds <= 0 {
		rounds = cfg.Simulation.Rounds
	}
	workers := c.Workers
	if workers <= 0 {
		workers = cfg.Simulation.Workers
	}

	fmt.Printf("Starting batch: %d rounds across %d workers\n", rounds, workers)

	ctx := signalContext(newLogger(cfg.Simulation.LogLevel, c.Verbose))

	start := time.Now()
	batch, err := sim.RunBatch(ctx, rounds, workers)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	simulator.PrintSummary(batch, cfg.PlayerNames())
	fmt.Printf("\nTotal time: %v (%.0f rounds/sec)\n",
		duration.Round(time.Millisecond), float64(rounds)/duration.Seconds())

	if c.Output != "" {
		report := batchReport(batch, cfg.PlayerNames(), duration)
		if err := fileutil.WriteFileAtomic(c.Output, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", c.Output)
	}
	return nil
}

// batchReport renders the batch as a plain key: value report for --output.
func batchReport(batch *stats.Statistics, players [okey.NumPlayers]string, duration time.Duration) string {
	var b strings.Builder

	low, high := batch.ConfidenceInterval95()
	fmt.Fprintf(&b, "rounds: %d\n", batch.Rounds)
	fmt.Fprintf(&b, "duration: %v\n", duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "mean: %.4f\n", batch.Mean())
	fmt.Fprintf(&b, "median: %.4f\n", batch.Median())
	fmt.Fprintf(&b, "stddev: %.4f\n", batch.StdDev())
	fmt.Fprintf(&b, "stderror: %.4f\n", batch.StdError())
	fmt.Fprintf(&b, "ci95: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(&b, "zero_rounds: %d\n", batch.ZeroRounds)
	fmt.Fprintf(&b, "best_count: %d\n", batch.BestCount)
	fmt.Fprintf(&b, "best_seed: %d\n", batch.BestSeed)
	for seat := 0; seat < okey.NumPlayers; seat++ {
		fmt.Fprintf(&b, "seat %d (%s): wins=%d win_rate=%.4f mean=%.4f\n",
			seat, players[seat], batch.Seats[seat].Wins,
			batch.SeatWinRate(seat), batch.SeatMean(seat))
	}
	return b.String()
}
