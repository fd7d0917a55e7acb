package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"EventMetrics/internal/metrics"
	"EventMetrics/internal/model"
	"EventMetrics/internal/provider"
	"EventMetrics/internal/returns"
	"EventMetrics/internal/spread"
)

// Runner orchestrates per-position fetching, alignment, estimation and spread
// analysis. Failures are isolated at the request boundary: one bad ticker is
// logged and skipped, never allowed to abort the batch.
type Runner struct {
	Fetcher      provider.Fetcher
	MarketTicker string
	RiskFreeRate float64 // annual
	Sharpe       metrics.SharpeConfig
	Workers      int              // <= 1 means sequential
	Now          func() time.Time // injectable clock for tests
}

// NewRunner creates a Runner with the sequential default.
func NewRunner(fetcher provider.Fetcher, marketTicker string, riskFreeRate float64, sharpeCfg metrics.SharpeConfig) *Runner {
	return &Runner{
		Fetcher:      fetcher,
		MarketTicker: marketTicker,
		RiskFreeRate: riskFreeRate,
		Sharpe:       sharpeCfg,
		Workers:      1,
		Now:          time.Now,
	}
}

// Report is the outcome of one batch run. Results and Failures both preserve
// input row order. Averages is nil when no position succeeded.
type Report struct {
	Results  []model.PositionResult
	Failures []model.Failure
	Averages *model.PortfolioAverages
	Total    int
}

// outcome is the terminal state of one request: exactly one field is set.
type outcome struct {
	result  *model.PositionResult
	failure *model.Failure
}

// Run processes every request and aggregates portfolio averages. With
// Workers > 1 independent positions are fetched concurrently; each worker
// writes into a per-index slot so ordering is restored before aggregation,
// and the summary is accumulated single-threaded after the pool drains.
func (r *Runner) Run(ctx context.Context, requests []model.PositionRequest) *Report {
	outcomes := make([]outcome, len(requests))

	if r.Workers <= 1 {
		for i := range requests {
			outcomes[i] = r.process(ctx, &requests[i])
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < r.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					outcomes[i] = r.process(ctx, &requests[i])
				}
			}()
		}
		for i := range requests {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	summary := model.Summary{Total: len(requests)}
	report := &Report{Total: len(requests)}
	for _, o := range outcomes {
		if o.failure != nil {
			report.Failures = append(report.Failures, *o.failure)
			continue
		}
		report.Results = append(report.Results, *o.result)
		summary.Add(o.result)
	}
	report.Averages = summary.Averages()
	return report
}

func (r *Runner) process(ctx context.Context, req *model.PositionRequest) outcome {
	if req.StartDate.IsZero() {
		return r.fail(req.Ticker, "invalid start date")
	}
	end := req.EndDate
	if end.IsZero() {
		end = r.now() // missing sell date defaults to today: policy, not failure
	}

	subject, err := r.Fetcher.FetchDailyCloses(ctx, req.Ticker, req.StartDate, end)
	if err != nil {
		return r.fail(req.Ticker, fmt.Sprintf("fetch subject failed: %v", err))
	}
	if len(subject) == 0 {
		return r.fail(req.Ticker, "fetch subject failed: empty series")
	}

	market, err := r.Fetcher.FetchDailyCloses(ctx, r.MarketTicker, req.StartDate, end)
	if err != nil {
		return r.fail(req.Ticker, fmt.Sprintf("fetch market failed: %v", err))
	}
	if len(market) == 0 {
		return r.fail(req.Ticker, "fetch market failed: empty series")
	}

	// Log returns feed the regression; simple returns feed the Sharpe path.
	regPair, err := returns.Align(subject, market, returns.Log)
	if err != nil {
		return r.fail(req.Ticker, fmt.Sprintf("metrics computation failed: %v", err))
	}
	sharpePair, err := returns.Align(subject, market, returns.Simple)
	if err != nil {
		return r.fail(req.Ticker, fmt.Sprintf("metrics computation failed: %v", err))
	}

	est, err := metrics.Estimate(regPair, sharpePair.Subject, r.RiskFreeRate, r.Sharpe)
	if err != nil {
		return r.fail(req.Ticker, fmt.Sprintf("metrics computation failed: %v", err))
	}

	res := &model.PositionResult{
		Ticker: req.Ticker,
		Alpha:  est.Alpha,
		Beta:   est.Beta,
		Sharpe: est.Sharpe,
	}

	// Spread analysis is additive: a failure here leaves the spread fields
	// absent but keeps the regression metrics already computed.
	if req.HasDealTerms() {
		current := subject[len(subject)-1].Price
		a, err := spread.Analyze(current, *req.DealPrice, req.ExpectedClose, r.now())
		if err != nil {
			log.Printf("[WARN] %s: spread analysis skipped: %v", req.Ticker, err)
		} else {
			res.SpreadPct = &a.SpreadPct
			res.AnnualizedReturn = a.AnnualizedReturn
		}
	}

	log.Printf("[INFO] %s: alpha=%.4f beta=%.4f sharpe=%.4f", req.Ticker, res.Alpha, res.Beta, res.Sharpe)
	return outcome{result: res}
}

func (r *Runner) fail(ticker, reason string) outcome {
	log.Printf("[WARN] skip %s: %s", ticker, reason)
	return outcome{failure: &model.Failure{Ticker: ticker, Reason: reason}}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
