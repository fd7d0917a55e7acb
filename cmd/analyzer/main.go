package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"EventMetrics/internal/batch"
	"EventMetrics/internal/config"
	"EventMetrics/internal/metrics"
	"EventMetrics/internal/positions"
	"EventMetrics/internal/provider"
	"EventMetrics/internal/recorder"
	"EventMetrics/internal/report"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] EventMetrics starting...")

	_ = godotenv.Load() // optional .env; real environment still wins

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher provider.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = provider.NewHistAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = provider.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init batch runner
	runner := batch.NewRunner(fetcher, cfg.Market.Ticker, cfg.Market.RiskFreeRate, metrics.SharpeConfig{
		Annualize:    cfg.Metrics.AnnualizeSharpe,
		ExcessStdDev: cfg.Metrics.SharpeExcessStdev,
	})
	runner.Workers = cfg.Batch.Workers

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runOnce := func() error {
		requests, err := positions.Read(cfg.Input.PositionsFile)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		if len(requests) == 0 {
			return fmt.Errorf("no input positions in %s", cfg.Input.PositionsFile)
		}

		rep := runner.Run(ctx, requests)
		fmt.Print(report.FormatSummary(rep))

		if err := report.WriteResults(cfg.Output.ResultsFile, rep); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		log.Printf("[INFO] results saved to %s", cfg.Output.ResultsFile)
		if err := report.AppendErrorLog(cfg.Output.ErrorLog, rep.Failures); err != nil {
			return fmt.Errorf("write error log: %w", err)
		}
		if err := rec.RecordRun(cfg.Market.Ticker, rep); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}
		return nil
	}

	// One-shot mode unless a cron schedule is configured.
	if cfg.Schedule.Cron == "" {
		if err := runOnce(); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		log.Println("[INFO] EventMetrics finished")
		return
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Schedule.Cron, func() {
		log.Println("[INFO] running scheduled batch")
		if err := runOnce(); err != nil {
			log.Printf("[ERROR] scheduled run: %v", err)
		}
	}); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing batch now")
		go func() {
			if err := runOnce(); err != nil {
				log.Printf("[ERROR] initial run: %v", err)
			}
		}()
	}

	log.Println("[INFO] EventMetrics is running on schedule. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] EventMetrics stopped")
}
