package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"EventMetrics/internal/batch"
	"EventMetrics/internal/model"
)

func sampleReport() *batch.Report {
	spread := 10.0
	ann := 50.0
	return &batch.Report{
		Total: 3,
		Results: []model.PositionResult{
			{Ticker: "ACME", Alpha: 0.0012, Beta: 1.15, Sharpe: 0.85, SpreadPct: &spread, AnnualizedReturn: &ann},
			{Ticker: "BETA", Alpha: -0.0004, Beta: 0.92, Sharpe: 0.40},
		},
		Failures: []model.Failure{
			{Ticker: "GMMA", Reason: "invalid start date"},
		},
		Averages: &model.PortfolioAverages{Alpha: 0.0004, Beta: 1.035, Sharpe: 0.625, Count: 2},
	}
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(sampleReport())

	assert.Contains(t, out, "processed 2 of 3 positions")
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "spread=10.00%")
	assert.Contains(t, out, "annualized=50.00%")
	assert.Contains(t, out, "GMMA: invalid start date")
	assert.Contains(t, out, "Average Alpha")

	// Positions without deal terms carry no spread text.
	betaLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "BETA") {
			betaLine = line
		}
	}
	require.NotEmpty(t, betaLine)
	assert.NotContains(t, betaLine, "spread")
}

func TestFormatSummary_NoSuccesses(t *testing.T) {
	rep := &batch.Report{
		Total:    1,
		Failures: []model.Failure{{Ticker: "AAA", Reason: "fetch subject failed: gone"}},
	}
	out := FormatSummary(rep)
	assert.Contains(t, out, "processed 0 of 1 positions")
	assert.Contains(t, out, "averages unavailable")
	assert.NotContains(t, out, "Average Alpha")
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	require.NoError(t, WriteResults(path, sampleReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	ticker, err := f.GetCellValue("Results", "A2")
	require.NoError(t, err)
	assert.Equal(t, "ACME", ticker)

	// BETA has no deal terms: its spread cell must be blank, not zero.
	blank, err := f.GetCellValue("Results", "E3")
	require.NoError(t, err)
	assert.Empty(t, blank)

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	var found bool
	for _, row := range rows {
		if len(row) > 0 && strings.HasPrefix(row[0], "Processed 2 of 3") {
			found = true
		}
	}
	assert.True(t, found, "summary block missing")
}

func TestAppendErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "errors.txt")

	require.NoError(t, AppendErrorLog(path, []model.Failure{{Ticker: "AAA", Reason: "fetch subject failed"}}))
	require.NoError(t, AppendErrorLog(path, []model.Failure{{Ticker: "BBB", Reason: "invalid start date"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "log must append across runs, not truncate")
	assert.Equal(t, "Could not process AAA: fetch subject failed", lines[0])
	assert.Equal(t, "Could not process BBB: invalid start date", lines[1])
}

func TestAppendErrorLog_NoFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")
	require.NoError(t, AppendErrorLog(path, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no failures must not create the log")
}
