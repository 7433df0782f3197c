package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Zachdehooge/temperature-heatmap/internal/observability"
	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrEmptyDataset is returned when the feed carries no records.
	ErrEmptyDataset = errors.New("dataset has no monthly variance records")
	// ErrMonthOutOfRange is returned when a record's month is not in 1..12.
	ErrMonthOutOfRange = errors.New("record month out of range")
)

// Record is one month of the series.
type Record struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Variance float64 `json:"variance"`
}

// Dataset is the feed document: a base temperature and the monthly deltas
// from it.
type Dataset struct {
	BaseTemperature float64  `json:"baseTemperature"`
	MonthlyVariance []Record `json:"monthlyVariance"`
}

// Temperature is the absolute temperature of r.
func (d *Dataset) Temperature(r Record) float64 {
	return d.BaseTemperature + r.Variance
}

// Validate checks the invariants the chart relies on.
func (d *Dataset) Validate() error {
	if len(d.MonthlyVariance) == 0 {
		return ErrEmptyDataset
	}
	for i, r := range d.MonthlyVariance {
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("record %d (year %d): month %d: %w", i, r.Year, r.Month, ErrMonthOutOfRange)
		}
	}
	return nil
}

// Decode parses and validates a dataset document.
func Decode(body []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Client downloads the dataset, retrying transient failures.
type Client struct {
	url             string
	httpClient      *http.Client
	retries         uint64
	initialInterval time.Duration
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// NewClient creates a dataset client. retries is the number of extra attempts
// after the first one fails with a transient error.
func NewClient(url string, timeout time.Duration, retries int, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if retries < 0 {
		retries = 0
	}
	return &Client{
		url:             url,
		httpClient:      &http.Client{Timeout: timeout},
		retries:         uint64(retries),
		initialInterval: 500 * time.Millisecond,
		logger:          logger,
		metrics:         metrics,
	}
}

// FetchDataset retrieves, decodes and validates the dataset.
func (c *Client) FetchDataset(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	defer func() {
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	var ds *Dataset
	op := func() error {
		c.metrics.FetchAttempts.Inc()
		body, err := c.get(ctx)
		if err != nil {
			return err
		}
		ds, err = Decode(body)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx)

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("dataset fetch failed, retrying", "url", c.url, "error", err, "backoff", wait)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		c.metrics.FetchErrors.Inc()
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	c.logger.Debug("dataset fetched",
		"url", c.url,
		"records", len(ds.MonthlyVariance),
		"base_temperature", ds.BaseTemperature,
		"duration", time.Since(start),
	)
	return ds, nil
}

// get performs one GET. Errors worth retrying are returned as-is, the rest
// are wrapped with backoff.Permanent.
func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", "temperature-heatmap/1.0 (github.com/Zachdehooge/temperature-heatmap)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snip := body
		if len(snip) > 200 {
			snip = snip[:200]
		}
		err := fmt.Errorf("dataset host returned HTTP %d: %s", resp.StatusCode, string(snip))
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}
	return body, nil
}
