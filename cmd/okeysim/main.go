package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/okeysim/internal/config"
	"github.com/lox/okeysim/internal/simulator"
	"github.com/lox/okeysim/okey"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Round   RoundCmd         `cmd:"" help:"Deal and score a single round"`
	Batch   BatchCmd         `cmd:"" help:"Run many rounds and report statistics"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate a hand given on the command line"`
	Tui     TuiCmd           `cmd:"" help:"Browse rounds interactively"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("okeysim"),
		kong.Description("Deterministic single-round okey simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// newLogger builds the stderr logger all commands share. Verbose wins
// over the configured level.
func newLogger(level string, verbose bool) *log.Logger {
	if verbose {
		return log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: parsed})
}

// resolveSeed picks the explicit flag, then the config file, then the clock.
func resolveSeed(flag *int64, cfg *config.Config) int64 {
	if flag != nil {
		return *flag
	}
	return cfg.SeedOr(time.Now().UnixNano())
}

// resolveFakeFace parses a --fake-face tile name, falling back to the
// configured face when the flag is empty.
func resolveFakeFace(flag string, cfg *config.Config) (int, error) {
	if flag == "" {
		return cfg.FakeFace(), nil
	}
	tile, err := okey.ParseTile(flag)
	if err != nil {
		return 0, err
	}
	if tile.IsFake() {
		return 0, fmt.Errorf("fake face must be a numbered tile, got %s", tile)
	}
	return int(tile), nil
}

// buildSimulator loads the config file and assembles a simulator from it
// plus the command line overrides common to every command.
func buildSimulator(configFile string, seed *int64, fakeFace string, verbose bool) (*simulator.Simulator, *config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	face, err := resolveFakeFace(fakeFace, cfg)
	if err != nil {
		return nil, nil, err
	}

	sim := simulator.New(simulator.Config{
		Seed:     resolveSeed(seed, cfg),
		FakeFace: face,
		Players:  cfg.PlayerNames(),
		Logger:   newLogger(cfg.Simulation.LogLevel, verbose),
	})
	return sim, cfg, nil
}
