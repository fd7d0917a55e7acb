package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Market struct {
		Ticker       string  `yaml:"ticker"`
		RiskFreeRate float64 `yaml:"risk_free_rate"`
	} `yaml:"market"`
	Metrics struct {
		AnnualizeSharpe   bool `yaml:"annualize_sharpe"`
		SharpeExcessStdev bool `yaml:"sharpe_excess_stdev"`
	} `yaml:"metrics"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Input struct {
		PositionsFile string `yaml:"positions_file"`
	} `yaml:"input"`
	Output struct {
		ResultsFile string `yaml:"results_file"`
		ErrorLog    string `yaml:"error_log"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Batch struct {
		Workers int `yaml:"workers"`
	} `yaml:"batch"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Boolean zero values can't distinguish "unset" from "false", so the
	// Sharpe convention defaults are applied before the file is parsed.
	cfg.Metrics.AnnualizeSharpe = true
	cfg.Metrics.SharpeExcessStdev = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKET_TICKER"); v != "" {
		cfg.Market.Ticker = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Market.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("HISTAPI_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HISTAPI_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("POSITIONS_FILE"); v != "" {
		cfg.Input.PositionsFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Batch.Workers = n
		}
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Market.Ticker == "" {
		cfg.Market.Ticker = "^GSPC"
	}
	if cfg.Market.RiskFreeRate == 0 {
		cfg.Market.RiskFreeRate = 0.03
	}
	if cfg.Input.PositionsFile == "" {
		cfg.Input.PositionsFile = "data/positions.xlsx"
	}
	if cfg.Output.ResultsFile == "" {
		cfg.Output.ResultsFile = "out/metrics_results.xlsx"
	}
	if cfg.Output.ErrorLog == "" {
		cfg.Output.ErrorLog = "out/error_tickers.txt"
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = 1
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.Market.Ticker == "" {
		return fmt.Errorf("market.ticker is required")
	}
	if c.Market.RiskFreeRate < 0 || c.Market.RiskFreeRate >= 1 {
		return fmt.Errorf("market.risk_free_rate must be in [0, 1)")
	}
	if c.Input.PositionsFile == "" {
		return fmt.Errorf("input.positions_file is required")
	}
	if c.Output.ResultsFile == "" {
		return fmt.Errorf("output.results_file is required")
	}
	if c.Output.ErrorLog == "" {
		return fmt.Errorf("output.error_log is required")
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1")
	}
	return nil
}
