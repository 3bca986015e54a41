package config

import "testing"

type testConfig struct {
	DBPath    string  `env:"TEST_BACKLOT_DB_PATH" envDefault:"backlot.db"`
	Seed      int64   `env:"TEST_BACKLOT_SEED"`
	StartYear int     `env:"TEST_BACKLOT_START_YEAR" envDefault:"1933"`
	Cash      float64 `env:"TEST_BACKLOT_STARTING_CASH" envDefault:"500000"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error: %v", err)
	}
	if cfg.DBPath != "backlot.db" {
		t.Errorf("db path = %q, want the default", cfg.DBPath)
	}
	if cfg.StartYear != 1933 {
		t.Errorf("start year = %d, want 1933", cfg.StartYear)
	}
	if cfg.Cash != 500000 {
		t.Errorf("cash = %v, want 500000", cfg.Cash)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("TEST_BACKLOT_DB_PATH", "/tmp/other.db")
	t.Setenv("TEST_BACKLOT_SEED", "42")
	t.Setenv("TEST_BACKLOT_START_YEAR", "1947")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Seed)
	}
	if cfg.StartYear != 1947 {
		t.Errorf("start year = %d, want 1947", cfg.StartYear)
	}
}

func TestParseEnvInvalidValue(t *testing.T) {
	t.Setenv("TEST_BACKLOT_SEED", "not-a-number")

	var cfg testConfig
	if err := ParseEnv(&cfg); err == nil {
		t.Error("ParseEnv() with a malformed integer succeeded")
	}
}
