package report

import (
	"fmt"
	"strings"
	"time"

	"EventMetrics/internal/batch"
)

// FormatSummary formats the batch outcome for console output.
func FormatSummary(rep *batch.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("EventMetrics run | %s\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("processed %d of %d positions\n\n", len(rep.Results), rep.Total))

	for _, res := range rep.Results {
		b.WriteString(fmt.Sprintf("  %s: alpha=%+.4f beta=%.4f sharpe=%.4f", res.Ticker, res.Alpha, res.Beta, res.Sharpe))
		if res.SpreadPct != nil {
			b.WriteString(fmt.Sprintf(" spread=%.2f%%", *res.SpreadPct))
		}
		if res.AnnualizedReturn != nil {
			b.WriteString(fmt.Sprintf(" annualized=%.2f%%", *res.AnnualizedReturn))
		}
		b.WriteString("\n")
	}

	if len(rep.Failures) > 0 {
		b.WriteString("\nexcluded:\n")
		for _, fl := range rep.Failures {
			b.WriteString(fmt.Sprintf("  %s: %s\n", fl.Ticker, fl.Reason))
		}
	}

	b.WriteString("\nPortfolio Metrics:\n")
	if rep.Averages == nil {
		b.WriteString("  no positions processed, averages unavailable\n")
	} else {
		b.WriteString(fmt.Sprintf("  Average Alpha: %+.4f\n", rep.Averages.Alpha))
		b.WriteString(fmt.Sprintf("  Average Beta: %.4f\n", rep.Averages.Beta))
		b.WriteString(fmt.Sprintf("  Average Sharpe Ratio: %.4f\n", rep.Averages.Sharpe))
	}

	return b.String()
}
