// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/danielhkuo/callcampaign/eligibility"
	"github.com/danielhkuo/callcampaign/metrics"
	"github.com/danielhkuo/callcampaign/models"
)

var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// FetchError reports a failed request to the campaign API.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client reads districts and call stats from the campaign API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type districtRecord struct {
	DistrictID flexString `json:"districtId"`
	State      string     `json:"state"`
	Number     flexString `json:"number"`
	Status     string     `json:"status"`
}

// Records are kept raw so one bad entry does not fail the whole response.
type statsRecord struct {
	CallsByMonth map[string]json.RawMessage `json:"callsByMonth"`
}

// FetchDistricts returns every district in the directory. Records that do not
// decode, or lack an id, state or numeric district number, are skipped.
func (c *Client) FetchDistricts(ctx context.Context) ([]models.District, error) {
	var raw []json.RawMessage
	if err := c.get(ctx, "districts", &raw); err != nil {
		return nil, err
	}

	districts := make([]models.District, 0, len(raw))
	for i, data := range raw {
		var rec districtRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			slog.Warn("skipping undecodable district", "index", i, "error", err)
			metrics.MalformedRecordsTotal.WithLabelValues("district").Inc()
			continue
		}

		d, ok := rec.toDistrict()
		if !ok {
			slog.Warn("skipping malformed district",
				"district_id", string(rec.DistrictID),
				"state", rec.State,
				"number", string(rec.Number),
			)
			metrics.MalformedRecordsTotal.WithLabelValues("district").Inc()
			continue
		}
		districts = append(districts, d)
	}
	return districts, nil
}

func (r districtRecord) toDistrict() (models.District, bool) {
	id := strings.TrimSpace(string(r.DistrictID))
	state := strings.TrimSpace(r.State)
	if id == "" || state == "" {
		return models.District{}, false
	}
	number, ok := eligibility.ParseNumber(string(r.Number))
	if !ok {
		return models.District{}, false
	}
	return models.District{
		ID:     id,
		State:  state,
		Number: number,
		Status: r.Status,
	}, true
}

// FetchDistrictStats returns the calls made to a single district.
func (c *Client) FetchDistrictStats(ctx context.Context, districtID string) (*models.CallStats, error) {
	return c.fetchStats(ctx, "stats/"+url.PathEscape(districtID))
}

// FetchOverallStats returns the calls made across the whole campaign.
func (c *Client) FetchOverallStats(ctx context.Context) (*models.CallStats, error) {
	return c.fetchStats(ctx, "stats")
}

func (c *Client) fetchStats(ctx context.Context, endpoint string) (*models.CallStats, error) {
	var rec statsRecord
	if err := c.get(ctx, endpoint, &rec); err != nil {
		return nil, err
	}

	stats := &models.CallStats{CallsByMonth: make(map[string]int, len(rec.CallsByMonth))}
	for key, data := range rec.CallsByMonth {
		calls, ok := parseCount(data)
		if !ok {
			slog.Warn("unreadable month count", "endpoint", endpoint, "month", key, "value", string(data))
			stats.Malformed = append(stats.Malformed, key)
			continue
		}
		stats.CallsByMonth[key] = calls
	}
	return stats, nil
}

// parseCount accepts only a JSON integer literal; strings, fractions,
// exponents and null are rejected.
func parseCount(data json.RawMessage) (int, bool) {
	data = bytes.TrimSpace(data)
	digits := bytes.TrimPrefix(data, []byte("-"))
	if len(digits) == 0 {
		return 0, false
	}
	for _, b := range digits {
		if b < '0' || b > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Client) get(ctx context.Context, endpoint string, v interface{}) error {
	start := time.Now()
	status, err := c.do(ctx, endpoint, v)

	label := strings.SplitN(endpoint, "/", 2)[0]
	if status != 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues(label, strconv.Itoa(status)).Inc()
	}
	metrics.UpstreamDurationSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(label).Inc()
		return &FetchError{Endpoint: endpoint, StatusCode: status, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint string, v interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, ErrUnexpectedStatus
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
