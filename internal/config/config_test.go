package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "okeysim.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.Simulation.Rounds != 1000 {
		t.Errorf("default rounds = %d, want 1000", cfg.Simulation.Rounds)
	}
	if cfg.Simulation.LogLevel != "info" {
		t.Errorf("default log_level = %q, want info", cfg.Simulation.LogLevel)
	}
	if cfg.FakeFace() != MatchOkeyFace {
		t.Errorf("default fake face = %d, want %d", cfg.FakeFace(), MatchOkeyFace)
	}
	if cfg.Simulation.Seed != nil {
		t.Error("default seed should be unset")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got: %v", err)
	}
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
simulation {
  seed           = 42
  rounds         = 250
  workers        = 2
  log_level      = "debug"
  fake_okey_face = 20
  players        = ["Ayşe", "Mehmet", "Fatma", "Ali"]
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}

	if cfg.SeedOr(0) != 42 {
		t.Errorf("seed = %d, want 42", cfg.SeedOr(0))
	}
	if cfg.Simulation.Rounds != 250 {
		t.Errorf("rounds = %d, want 250", cfg.Simulation.Rounds)
	}
	if cfg.Simulation.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Simulation.Workers)
	}
	if cfg.FakeFace() != 20 {
		t.Errorf("fake face = %d, want 20", cfg.FakeFace())
	}
	names := cfg.PlayerNames()
	if names[0] != "Ayşe" || names[3] != "Ali" {
		t.Errorf("player names = %v", names)
	}
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
simulation {
  rounds = 10
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.Simulation.Rounds != 10 {
		t.Errorf("rounds = %d, want 10", cfg.Simulation.Rounds)
	}
	if cfg.Simulation.LogLevel != "info" {
		t.Errorf("log_level = %q, want info", cfg.Simulation.LogLevel)
	}
	if cfg.Simulation.Workers < 1 {
		t.Errorf("workers = %d, want at least 1", cfg.Simulation.Workers)
	}
	if len(cfg.Simulation.Players) != 4 {
		t.Errorf("players = %v, want the four defaults", cfg.Simulation.Players)
	}
}

func TestLoadBadHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `simulation { rounds = `)
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed HCL")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zero rounds", mutate: func(c *Config) { c.Simulation.Rounds = 0 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Simulation.Workers = -1 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Simulation.LogLevel = "loud" }, wantErr: true},
		{name: "fake face too high", mutate: func(c *Config) { c.Simulation.FakeOkeyFace = intPtr(52) }, wantErr: true},
		{name: "fake face too low", mutate: func(c *Config) { c.Simulation.FakeOkeyFace = intPtr(-2) }, wantErr: true},
		{name: "fake face pinned", mutate: func(c *Config) { c.Simulation.FakeOkeyFace = intPtr(0) }},
		{name: "three players", mutate: func(c *Config) { c.Simulation.Players = []string{"a", "b", "c"} }, wantErr: true},
		{name: "empty player name", mutate: func(c *Config) { c.Simulation.Players = []string{"a", "", "c", "d"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
