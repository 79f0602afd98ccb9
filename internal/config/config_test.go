package config

import (
	"errors"
	"os"
	"testing"
)

func TestLoadFullConfig(t *testing.T) {
	// Create a temporary YAML config file.
	yamlContent := []byte(`
storage:
  data_dir: "/tmp/stagehand/data"
  sqlite_path: "/tmp/stagehand/stagehand.db"
server:
  host: "0.0.0.0"
  port: 8080
  grpc_port: 9090
alpaca:
  api_key: "test-key"
  api_secret: "test-secret"
  data_url: "https://data.alpaca.markets"
logging:
  level: "debug"
  format: "json"
simulation:
  base_price: 42000
  seed: 99
  interval_seconds: 2
show:
  starting_balance: 25000
  leaderboard_limit: 10
`)

	tmpFile, err := os.CreateTemp("", "stagehand-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	// Clear any environment overrides that might interfere.
	os.Unsetenv("ALPACA_API_KEY")
	os.Unsetenv("ALPACA_API_SECRET")
	os.Unsetenv("APCA_API_KEY_ID")
	os.Unsetenv("APCA_API_SECRET_KEY")
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("SQLITE_PATH")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SIM_SEED")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Storage --
	if cfg.Storage.DataDir != "/tmp/stagehand/data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/tmp/stagehand/data")
	}
	if cfg.Storage.SQLitePath != "/tmp/stagehand/stagehand.db" {
		t.Errorf("Storage.SQLitePath = %q, want %q", cfg.Storage.SQLitePath, "/tmp/stagehand/stagehand.db")
	}

	// -- Server --
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.GRPCPort != 9090 {
		t.Errorf("Server.GRPCPort = %d, want %d", cfg.Server.GRPCPort, 9090)
	}

	// -- Alpaca --
	if cfg.Alpaca.APIKey != "test-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "test-key")
	}
	if cfg.Alpaca.APISecret != "test-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q", cfg.Alpaca.APISecret, "test-secret")
	}
	if cfg.Alpaca.DataURL != "https://data.alpaca.markets" {
		t.Errorf("Alpaca.DataURL = %q, want %q", cfg.Alpaca.DataURL, "https://data.alpaca.markets")
	}

	// -- Logging --
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}

	// -- Simulation --
	if cfg.Simulation.BasePrice != 42000 {
		t.Errorf("Simulation.BasePrice = %v, want 42000", cfg.Simulation.BasePrice)
	}
	if cfg.Simulation.Seed != 99 {
		t.Errorf("Simulation.Seed = %d, want 99", cfg.Simulation.Seed)
	}
	if cfg.Simulation.IntervalS != 2 {
		t.Errorf("Simulation.IntervalS = %d, want 2", cfg.Simulation.IntervalS)
	}

	// -- Show --
	if cfg.Show.StartingBalance != 25000 {
		t.Errorf("Show.StartingBalance = %v, want 25000", cfg.Show.StartingBalance)
	}
	if cfg.Show.LeaderboardLimit != 10 {
		t.Errorf("Show.LeaderboardLimit = %d, want 10", cfg.Show.LeaderboardLimit)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "stagehand-config-empty-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.Write([]byte("{}\n")); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	os.Unsetenv("DATA_DIR")
	os.Unsetenv("SQLITE_PATH")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SIM_SEED")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != 8090 {
		t.Errorf("default Server.Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Server.GRPCPort != 50061 {
		t.Errorf("default Server.GRPCPort = %d, want 50061", cfg.Server.GRPCPort)
	}
	if cfg.Show.StartingBalance != 10000 {
		t.Errorf("default Show.StartingBalance = %v, want 10000", cfg.Show.StartingBalance)
	}
	if cfg.Show.LeaderboardLimit != 20 {
		t.Errorf("default Show.LeaderboardLimit = %d, want 20", cfg.Show.LeaderboardLimit)
	}
	if cfg.Simulation.BasePrice != 65000 {
		t.Errorf("default Simulation.BasePrice = %v, want 65000", cfg.Simulation.BasePrice)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	yamlContent := []byte(`
alpaca:
  api_key: "yaml-key"
  api_secret: "yaml-secret"
storage:
  data_dir: "/original/data"
`)

	tmpFile, err := os.CreateTemp("", "stagehand-config-env-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	// Set environment overrides.
	os.Setenv("ALPACA_API_KEY", "env-key")
	os.Setenv("DATA_DIR", "/env/data")
	os.Setenv("SIM_SEED", "1234")
	os.Unsetenv("APCA_API_KEY_ID")
	os.Unsetenv("APCA_API_SECRET_KEY")
	defer os.Unsetenv("ALPACA_API_KEY")
	defer os.Unsetenv("DATA_DIR")
	defer os.Unsetenv("SIM_SEED")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q (env override)", cfg.Alpaca.APIKey, "env-key")
	}
	// api_secret should remain from YAML since no env override was set.
	if cfg.Alpaca.APISecret != "yaml-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q (from YAML)", cfg.Alpaca.APISecret, "yaml-secret")
	}
	if cfg.Storage.DataDir != "/env/data" {
		t.Errorf("Storage.DataDir = %q, want %q (env override)", cfg.Storage.DataDir, "/env/data")
	}
	if cfg.Simulation.Seed != 1234 {
		t.Errorf("Simulation.Seed = %d, want 1234 (env override)", cfg.Simulation.Seed)
	}
}

func TestDefaultMatchesMissingFile(t *testing.T) {
	// Commands fall back to Default() when no config file exists; it must
	// agree with what Load produces from an empty document.
	if _, err := Load("does-not-exist.yaml"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load on missing file = %v, want os.ErrNotExist", err)
	}

	os.Unsetenv("DATA_DIR")
	os.Unsetenv("SQLITE_PATH")

	cfg := Default()
	if cfg.Server.Port != 8090 {
		t.Errorf("Default Server.Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "data" {
		t.Errorf("Default Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "data")
	}
	if cfg.Show.StartingBalance != 10000 {
		t.Errorf("Default Show.StartingBalance = %v, want 10000", cfg.Show.StartingBalance)
	}
}
