package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"EventMetrics/internal/batch"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while
	// the analyzer writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batch_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			market_ticker TEXT,
			total         INTEGER,
			processed     INTEGER,
			failed        INTEGER,
			avg_alpha     REAL,
			avg_beta      REAL,
			avg_sharpe    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON batch_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS position_results (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            INTEGER NOT NULL,
			ticker            TEXT,
			alpha             REAL,
			beta              REAL,
			sharpe            REAL,
			spread_pct        REAL,
			annualized_return REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON position_results(run_id)`,

		`CREATE TABLE IF NOT EXISTS position_failures (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			ticker TEXT,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_run ON position_failures(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes one batch_runs row plus its per-position detail rows.
func (r *SQLiteRecorder) RecordRun(marketTicker string, rep *batch.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var avgAlpha, avgBeta, avgSharpe sql.NullFloat64
	if rep.Averages != nil {
		avgAlpha = sql.NullFloat64{Float64: rep.Averages.Alpha, Valid: true}
		avgBeta = sql.NullFloat64{Float64: rep.Averages.Beta, Valid: true}
		avgSharpe = sql.NullFloat64{Float64: rep.Averages.Sharpe, Valid: true}
	}

	res, err := r.db.Exec(`INSERT INTO batch_runs
		(timestamp, market_ticker, total, processed, failed, avg_alpha, avg_beta, avg_sharpe)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), marketTicker, rep.Total, len(rep.Results), len(rep.Failures),
		avgAlpha, avgBeta, avgSharpe,
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, pr := range rep.Results {
		var spreadPct, annualized sql.NullFloat64
		if pr.SpreadPct != nil {
			spreadPct = sql.NullFloat64{Float64: *pr.SpreadPct, Valid: true}
		}
		if pr.AnnualizedReturn != nil {
			annualized = sql.NullFloat64{Float64: *pr.AnnualizedReturn, Valid: true}
		}
		if _, err := r.db.Exec(`INSERT INTO position_results
			(run_id, ticker, alpha, beta, sharpe, spread_pct, annualized_return)
			VALUES (?,?,?,?,?,?,?)`,
			runID, pr.Ticker, pr.Alpha, pr.Beta, pr.Sharpe, spreadPct, annualized,
		); err != nil {
			return err
		}
	}

	for _, fl := range rep.Failures {
		if _, err := r.db.Exec(`INSERT INTO position_failures (run_id, ticker, reason) VALUES (?,?,?)`,
			runID, fl.Ticker, fl.Reason,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
