package model

// Summary accumulates running metric totals over one batch run. It is owned
// by the batch runner for the duration of a run and finalized exactly once.
type Summary struct {
	AlphaSum  float64
	BetaSum   float64
	SharpeSum float64
	Successes int
	Total     int
}

// Add folds one successful result into the running totals.
func (s *Summary) Add(res *PositionResult) {
	s.AlphaSum += res.Alpha
	s.BetaSum += res.Beta
	s.SharpeSum += res.Sharpe
	s.Successes++
}

// Averages finalizes the summary into portfolio-level means. Returns nil when
// no position succeeded, so callers render "absent" rather than a misleading
// zero.
func (s *Summary) Averages() *PortfolioAverages {
	if s.Successes == 0 {
		return nil
	}
	n := float64(s.Successes)
	return &PortfolioAverages{
		Alpha:  s.AlphaSum / n,
		Beta:   s.BetaSum / n,
		Sharpe: s.SharpeSum / n,
		Count:  s.Successes,
	}
}

// PortfolioAverages is the portfolio-level average of per-position metrics.
type PortfolioAverages struct {
	Alpha  float64
	Beta   float64
	Sharpe float64
	Count  int
}
