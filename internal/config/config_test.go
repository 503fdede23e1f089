package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("addr = %q, want :8000", cfg.Server.Addr)
	}
	if cfg.DataSource.CacheTTLMins != 15 {
		t.Errorf("ttl = %d, want 15", cfg.DataSource.CacheTTLMins)
	}
	if cfg.DataSource.RatePerSec != 5 {
		t.Errorf("rate = %v, want 5", cfg.DataSource.RatePerSec)
	}
	if cfg.Portfolio.StartingCash != 100000 {
		t.Errorf("starting cash = %v, want 100000", cfg.Portfolio.StartingCash)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9001"
data_source:
  cache_ttl_minutes: 30
portfolio:
  starting_cash: 25000
watchlist:
  - AAPL
  - MSFT
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9001" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.DataSource.CacheTTLMins != 30 {
		t.Errorf("ttl = %d", cfg.DataSource.CacheTTLMins)
	}
	if cfg.Portfolio.StartingCash != 25000 {
		t.Errorf("starting cash = %v", cfg.Portfolio.StartingCash)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0] != "AAPL" {
		t.Errorf("watchlist = %v", cfg.Watchlist)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("WATCHLIST", "nvda, amd , ")
	t.Setenv("CACHE_TTL_MINUTES", "45")
	t.Setenv("STARTING_CASH", "5000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[1] != "amd" {
		t.Errorf("watchlist = %v", cfg.Watchlist)
	}
	if cfg.DataSource.CacheTTLMins != 45 {
		t.Errorf("ttl = %d", cfg.DataSource.CacheTTLMins)
	}
	if cfg.Portfolio.StartingCash != 5000 {
		t.Errorf("starting cash = %v", cfg.Portfolio.StartingCash)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("STARTING_CASH", "-1")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("negative starting cash should fail validation")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
