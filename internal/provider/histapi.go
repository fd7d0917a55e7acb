package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"EventMetrics/internal/model"
)

// HistAPIFetcher implements Fetcher against a self-hosted historical-data
// REST service, for deployments where Yahoo is unreachable or rate-limited.
type HistAPIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHistAPIFetcher creates a new fetcher with optional proxy support.
func NewHistAPIFetcher(baseURL, apiKey, proxyURL string) *HistAPIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HistAPIFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *HistAPIFetcher) Name() string { return "histapi" }

// histClose is the expected JSON shape from the closes endpoint.
type histClose struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
}

func (f *HistAPIFetcher) FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/closes?symbol=%s&start=%s&end=%s",
		f.BaseURL, url.QueryEscape(symbol),
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch closes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch closes: status %d, body: %s", resp.StatusCode, string(body))
	}

	var rows []histClose
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode closes: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data returned for %s", symbol)
	}

	points := make([]model.PricePoint, 0, len(rows))
	for _, r := range rows {
		if r.Close == 0 {
			continue
		}
		points = append(points, model.PricePoint{Date: time.Unix(r.Timestamp, 0), Price: r.Close})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no usable closes for %s", symbol)
	}

	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
