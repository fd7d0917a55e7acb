package positions

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"EventMetrics/internal/model"
)

// Read loads position requests from the input table, dispatching on file
// extension. Row order is preserved: report stability depends on it.
func Read(path string) ([]model.PositionRequest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// ReadXLSX reads positions from the first sheet of an Excel workbook.
func ReadXLSX(path string) ([]model.PositionRequest, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// ReadCSV reads positions from a comma-separated file with the same columns.
func ReadCSV(path string) ([]model.PositionRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated, cells default to blank
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRows(rows)
}

// column maps normalized header names to their semantic field.
var columns = map[string]string{
	"company name":        "company",
	"company":             "company",
	"ticker":              "ticker",
	"buy date":            "start",
	"purchase date":       "start",
	"start date":          "start",
	"sell date":           "end",
	"sale date":           "end",
	"end date":            "end",
	"close date":          "end",
	"deal price":          "deal",
	"expected close":      "close",
	"expected close date": "close",
}

func parseRows(rows [][]string) ([]model.PositionRequest, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("input table is empty")
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		if field, ok := columns[strings.ToLower(strings.TrimSpace(h))]; ok {
			idx[field] = i
		}
	}
	if _, ok := idx["ticker"]; !ok {
		return nil, fmt.Errorf("input table has no Ticker column")
	}
	if _, ok := idx["start"]; !ok {
		return nil, fmt.Errorf("input table has no Buy Date / Purchase Date column")
	}

	cell := func(row []string, field string) string {
		i, ok := idx[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var requests []model.PositionRequest
	for _, row := range rows[1:] {
		ticker := cell(row, "ticker")
		if ticker == "" {
			continue // blank row
		}

		req := model.PositionRequest{
			Company:   cell(row, "company"),
			Ticker:    ticker,
			StartDate: parseDate(cell(row, "start")),
			EndDate:   parseDate(cell(row, "end")),
		}
		if v := cell(row, "deal"); v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				req.DealPrice = &price
			}
		}
		// An explicit Expected Close column wins; otherwise the sell date
		// doubles as the event close when deal terms are present.
		if c := parseDate(cell(row, "close")); !c.IsZero() {
			req.ExpectedClose = c
		} else if req.DealPrice != nil {
			req.ExpectedClose = req.EndDate
		}

		requests = append(requests, req)
	}
	return requests, nil
}

// dateLayouts covers the formats seen in exported sheets. Unparseable cells
// yield a zero time; the batch runner decides whether that is a failure
// (start date) or a default-to-today (end date).
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"2-Jan-06",
	"2 Jan 2006",
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
