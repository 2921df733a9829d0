package calldetails

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eleven-am/voice-console/internal/callstate"
)

const defaultTimeout = 10 * time.Second

// ErrNotReady means the backend answered but has no analysis for the call
// yet. It is the only outcome the poller retries.
var ErrNotReady = errors.New("call details not ready")

type Fetcher interface {
	Fetch(ctx context.Context, callID string) (*callstate.CallResult, error)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ready reads a details body. Any JSON value without an analysis and a
// non-empty summary is treated as not ready.
func ready(body json.RawMessage) (*callstate.CallResult, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, false
	}

	rawAnalysis, ok := fields["analysis"]
	if !ok || string(rawAnalysis) == "null" {
		return nil, false
	}
	var analysis callstate.Analysis
	if err := json.Unmarshal(rawAnalysis, &analysis); err != nil {
		return nil, false
	}

	var summary string
	if err := json.Unmarshal(fields["summary"], &summary); err != nil || summary == "" {
		return nil, false
	}

	return &callstate.CallResult{Analysis: analysis, Summary: summary}, true
}

// Fetch asks the backend for a call's analysis. The HTTP status is not
// consulted: only transport failures and bodies that are not JSON are
// errors, every other answer without a result is ErrNotReady.
func (c *Client) Fetch(ctx context.Context, callID string) (*callstate.CallResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse call details url: %w", err)
	}
	q := u.Query()
	q.Set("call_id", callID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch call details: %w", err)
	}
	defer resp.Body.Close()

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode call details (status %d): %w", resp.StatusCode, err)
	}

	result, ok := ready(body)
	if !ok {
		return nil, ErrNotReady
	}
	return result, nil
}
