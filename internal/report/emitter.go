package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"EventMetrics/internal/batch"
	"EventMetrics/internal/model"
)

var resultHeaders = []string{"Ticker", "Alpha", "Beta", "Sharpe Ratio", "Spread (%)", "Annualized Return (%)"}

// WriteResults renders per-position rows plus the portfolio summary block into
// an Excel workbook. Absent spread fields stay blank, never zero.
func WriteResults(path string, rep *batch.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	f.SetSheetName("Sheet1", sheet)

	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	for i, h := range resultHeaders {
		if err := set(i+1, 1, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, res := range rep.Results {
		row := i + 2
		set(1, row, res.Ticker)
		set(2, row, res.Alpha)
		set(3, row, res.Beta)
		set(4, row, res.Sharpe)
		if res.SpreadPct != nil {
			set(5, row, *res.SpreadPct)
		}
		if res.AnnualizedReturn != nil {
			set(6, row, *res.AnnualizedReturn)
		}
	}

	// Summary block, separated by one blank row.
	row := len(rep.Results) + 3
	set(1, row, fmt.Sprintf("Processed %d of %d positions", len(rep.Results), rep.Total))
	row++
	if rep.Averages == nil {
		set(1, row, "Portfolio averages unavailable (no positions processed)")
	} else {
		set(1, row, "Portfolio Average")
		set(2, row, rep.Averages.Alpha)
		set(3, row, rep.Averages.Beta)
		set(4, row, rep.Averages.Sharpe)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save results workbook: %w", err)
	}
	return nil
}

// AppendErrorLog appends one line per excluded position. The log is the
// authoritative list of tickers to reprocess, so it is append-only across runs.
func AppendErrorLog(path string, failures []model.Failure) error {
	if len(failures) == 0 {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer f.Close()

	for _, fl := range failures {
		if _, err := fmt.Fprintf(f, "Could not process %s: %s\n", fl.Ticker, fl.Reason); err != nil {
			return fmt.Errorf("write error log: %w", err)
		}
	}
	return nil
}
