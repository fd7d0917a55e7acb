package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.Ticker != "^GSPC" {
		t.Errorf("ticker = %q, want ^GSPC", cfg.Market.Ticker)
	}
	if cfg.Market.RiskFreeRate != 0.03 {
		t.Errorf("risk-free rate = %v, want 0.03", cfg.Market.RiskFreeRate)
	}
	if !cfg.Metrics.AnnualizeSharpe || !cfg.Metrics.SharpeExcessStdev {
		t.Error("sharpe convention defaults must both be true")
	}
	if cfg.Batch.Workers != 1 {
		t.Errorf("workers = %d, want 1", cfg.Batch.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_FileAndOverrides(t *testing.T) {
	path := writeConfig(t, `
market:
  ticker: "^FTSE"
  risk_free_rate: 0.05
metrics:
  annualize_sharpe: false
batch:
  workers: 4
`)
	t.Setenv("MARKET_TICKER", "^GDAXI")
	t.Setenv("BATCH_WORKERS", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.Ticker != "^GDAXI" {
		t.Errorf("env override lost: ticker = %q", cfg.Market.Ticker)
	}
	if cfg.Market.RiskFreeRate != 0.05 {
		t.Errorf("risk-free rate = %v, want 0.05", cfg.Market.RiskFreeRate)
	}
	if cfg.Metrics.AnnualizeSharpe {
		t.Error("annualize_sharpe: false in file must stick")
	}
	if !cfg.Metrics.SharpeExcessStdev {
		t.Error("sharpe_excess_stdev left unset must keep its default")
	}
	if cfg.Batch.Workers != 8 {
		t.Errorf("workers = %d, want env override 8", cfg.Batch.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing ticker", func(c *Config) { c.Market.Ticker = "" }},
		{"negative risk-free rate", func(c *Config) { c.Market.RiskFreeRate = -0.01 }},
		{"absurd risk-free rate", func(c *Config) { c.Market.RiskFreeRate = 1.5 }},
		{"missing positions file", func(c *Config) { c.Input.PositionsFile = "" }},
		{"missing results file", func(c *Config) { c.Output.ResultsFile = "" }},
		{"missing error log", func(c *Config) { c.Output.ErrorLog = "" }},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
