// Package nasdaq provides a client for the Nasdaq screener/listing API
package nasdaq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/scout/internal/common"
	"github.com/bobmcallan/scout/internal/interfaces"
)

const (
	DefaultBaseURL   = "https://api.nasdaq.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the ListingClient interface using the Nasdaq public API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Nasdaq listing client.
// No API key is required; this is a public endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// listingResponse represents the screener/list payloads: symbols come back
// as rows under a data envelope.
type listingResponse struct {
	Data struct {
		Rows []struct {
			Symbol string `json:"symbol"`
		} `json:"rows"`
	} `json:"data"`
	Status struct {
		RCode int `json:"rCode"`
	} `json:"status"`
}

// ListSymbols retrieves all symbols for a listing. Supported listings are
// the exchange codes "NASDAQ" and "NYSE" and the index identifier "SP500".
func (c *Client) ListSymbols(ctx context.Context, listing string) ([]string, error) {
	params := url.Values{}
	var path string

	switch strings.ToUpper(listing) {
	case "NASDAQ", "NYSE":
		path = "/screener/stocks"
		params.Set("exchange", strings.ToUpper(listing))
		params.Set("download", "true")
	case "SP500":
		path = "/quote/list-type/sp500"
	default:
		return nil, fmt.Errorf("unknown listing: %s", listing)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "scout/"+common.GetVersion())
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("listing", listing).Str("url", c.baseURL+path).Msg("Nasdaq listing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("listing %s request failed (status %d): %s", listing, resp.StatusCode, string(body))
	}

	var decoded listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}

	// The API reports errors in the envelope, not the HTTP status.
	if decoded.Status.RCode != 0 && decoded.Status.RCode != http.StatusOK {
		return nil, fmt.Errorf("listing %s rejected (rCode %d)", listing, decoded.Status.RCode)
	}

	symbols := make([]string, 0, len(decoded.Data.Rows))
	for _, row := range decoded.Data.Rows {
		sym := strings.TrimSpace(row.Symbol)
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}

	if len(symbols) == 0 {
		return nil, fmt.Errorf("listing %s returned no symbols", listing)
	}

	return symbols, nil
}

// Ensure Client implements ListingClient
var _ interfaces.ListingClient = (*Client)(nil)
