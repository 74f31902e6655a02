// Package rates sources and stores the exchange rates the calculator is
// given. The calculator itself never fetches; rate data is owned here and
// versioned by its update timestamp.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

// Client fetches reference rates from a frankfurter-compatible FX API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	delay      time.Duration
	maxRetries int
}

// NewClient creates a new FX API client.
func NewClient(baseURL string, delay time.Duration, maxRetries int) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		delay:      delay,
		maxRetries: maxRetries,
	}
}

type latestResponse struct {
	Base  domain.CurrencyCode                  `json:"base"`
	Rates map[domain.CurrencyCode]decimal.Decimal `json:"rates"`
}

// FetchRates fetches the latest base->symbol rates for the given symbols.
// The API quotes how many units of each symbol one unit of base buys.
func (c *Client) FetchRates(ctx context.Context, base domain.CurrencyCode, symbols []domain.CurrencyCode) (map[domain.CurrencyCode]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[domain.CurrencyCode]decimal.Decimal{}, nil
	}

	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = string(s)
	}
	url := fmt.Sprintf("%s/latest?base=%s&symbols=%s", c.baseURL, base, strings.Join(parts, ","))

	body, err := c.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	var parsed latestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing FX response: %w", err)
	}
	if parsed.Base != base {
		return nil, fmt.Errorf("FX response base %s, requested %s", parsed.Base, base)
	}

	return parsed.Rates, nil
}

// fetchWithRetry performs a GET with exponential backoff on failures and
// 429/5xx responses.
func (c *Client) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.delay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("FX fetch failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("building FX request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("requesting FX rates: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("FX API returned %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("FX API returned %d", resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading FX response: %w", err)
	}
	return body, false, nil
}
