// Package totvs reads product stock levels from the TOTVS retail ERP API.
package totvs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const stockLevelPath = "/api/retail/v1/retailStockLevel"

// ErrNotConfigured is returned when the base URL or token is missing
var ErrNotConfigured = errors.New("TOTVS API credentials not configured")

// UpstreamError carries a non-2xx answer of the ERP
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("TOTVS API returned status %d: %s", e.Status, e.Body)
}

// StockLevelQuery holds the query parameters forwarded to the ERP. Values are
// passed through as received; empty ones are left out.
type StockLevelQuery struct {
	Order    []string
	Fields   string
	Page     string
	PageSize string
}

// ParseStockLevelQuery keeps only order, fields, page and pageSize
func ParseStockLevelQuery(values url.Values) StockLevelQuery {
	q := StockLevelQuery{
		Fields:   values.Get("fields"),
		Page:     values.Get("page"),
		PageSize: values.Get("pageSize"),
	}
	for _, o := range values["order"] {
		if o != "" {
			q.Order = append(q.Order, o)
		}
	}
	return q
}

// Encode renders the query string sent upstream
func (q StockLevelQuery) Encode() string {
	values := url.Values{}
	for _, o := range q.Order {
		values.Add("order", o)
	}
	if q.Fields != "" {
		values.Set("fields", q.Fields)
	}
	if q.Page != "" {
		values.Set("page", q.Page)
	}
	if q.PageSize != "" {
		values.Set("pageSize", q.PageSize)
	}
	return values.Encode()
}

type Config struct {
	BaseURL           string
	AuthToken         string
	Timeout           time.Duration
	RequestsPerSecond int
	Burst             int
	CacheSize         int
	CacheTTL          time.Duration
}

// Client calls the ERP with a rate limit and caches successful answers by query
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cache       *expirable.LRU[string, json.RawMessage]
	baseURL     string
	authToken   string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = rps
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		authToken:   cfg.AuthToken,
	}
	if cfg.CacheSize > 0 && cfg.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, json.RawMessage](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return c
}

// Configured reports whether the client has credentials to call the ERP
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.authToken != ""
}

// StockLevels returns the ERP's stock level document as raw JSON
func (c *Client) StockLevels(ctx context.Context, q StockLevelQuery) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	query := q.Encode()
	if c.cache != nil {
		if cached, ok := c.cache.Get(query); ok {
			return cached, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	target := c.baseURL + stockLevelPath
	if query != "" {
		target += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("TOTVS API error: status %d: %s", resp.StatusCode, string(body))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("TOTVS API returned invalid JSON")
	}

	data := json.RawMessage(body)
	if c.cache != nil {
		c.cache.Add(query, data)
	}
	return data, nil
}
