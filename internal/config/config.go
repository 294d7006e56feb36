// Package config loads simulator configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/okeysim/okey"
)

// MatchOkeyFace is the fake_okey_face sentinel that keeps the fake okey
// on the round's okey face, which makes it wild.
const MatchOkeyFace = -1

// Config represents the complete simulator configuration
type Config struct {
	Simulation SimulationConfig `hcl:"simulation,block"`
}

// SimulationConfig contains simulation-level configuration
type SimulationConfig struct {
	Seed         *int64   `hcl:"seed,optional"`
	Rounds       int      `hcl:"rounds,optional"`
	Workers      int      `hcl:"workers,optional"`
	LogLevel     string   `hcl:"log_level,optional"`
	FakeOkeyFace *int     `hcl:"fake_okey_face,optional"`
	Players      []string `hcl:"players,optional"`
}

// DefaultPlayers are the seat names used when none are configured.
var DefaultPlayers = [okey.NumPlayers]string{"North", "East", "South", "West"}

// Default returns the default simulator configuration
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Rounds:       1000,
			Workers:      runtime.NumCPU(),
			LogLevel:     "info",
			FakeOkeyFace: intPtr(MatchOkeyFace),
			Players:      DefaultPlayers[:],
		},
	}
}

// Load loads simulator configuration from an HCL file. A missing file
// yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Simulation.Rounds == 0 {
		config.Simulation.Rounds = 1000
	}
	if config.Simulation.Workers == 0 {
		config.Simulation.Workers = runtime.NumCPU()
	}
	if config.Simulation.LogLevel == "" {
		config.Simulation.LogLevel = "info"
	}
	if config.Simulation.FakeOkeyFace == nil {
		config.Simulation.FakeOkeyFace = intPtr(MatchOkeyFace)
	}
	if len(config.Simulation.Players) == 0 {
		config.Simulation.Players = DefaultPlayers[:]
	}

	return &config, nil
}

// Validate validates the simulator configuration
func (c *Config) Validate() error {
	s := c.Simulation

	if s.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", s.Rounds)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", s.LogLevel)
	}

	face := c.FakeFace()
	if face != MatchOkeyFace && (face < 0 || face >= int(okey.FakeOkey)) {
		return fmt.Errorf("fake_okey_face must be %d or a tile id between 0 and %d, got %d",
			MatchOkeyFace, okey.FakeOkey-1, face)
	}

	if len(s.Players) != okey.NumPlayers {
		return fmt.Errorf("players must list exactly %d names, got %d", okey.NumPlayers, len(s.Players))
	}
	for i, name := range s.Players {
		if name == "" {
			return fmt.Errorf("player %d has an empty name", i)
		}
	}

	return nil
}

// FakeFace returns the configured fake okey face, or MatchOkeyFace when
// unset.
func (c *Config) FakeFace() int {
	if c.Simulation.FakeOkeyFace == nil {
		return MatchOkeyFace
	}
	return *c.Simulation.FakeOkeyFace
}

// PlayerNames returns the configured seat names as a fixed-size table.
func (c *Config) PlayerNames() [okey.NumPlayers]string {
	names := DefaultPlayers
	for i := 0; i < okey.NumPlayers && i < len(c.Simulation.Players); i++ {
		if c.Simulation.Players[i] != "" {
			names[i] = c.Simulation.Players[i]
		}
	}
	return names
}

// SeedOr returns the configured seed, or fallback when unset.
func (c *Config) SeedOr(fallback int64) int64 {
	if c.Simulation.Seed == nil {
		return fallback
	}
	return *c.Simulation.Seed
}

func intPtr(v int) *int {
	return &v
}
