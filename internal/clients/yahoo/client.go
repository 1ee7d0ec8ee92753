// Package yahoo provides a client for the Yahoo Finance public API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/scout/internal/common"
	"github.com/bobmcallan/scout/internal/interfaces"
	"github.com/bobmcallan/scout/internal/models"
)

// flexFloat64 handles JSON values that may be a number, a string, or null.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the MarketDataClient interface
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

// NewClient creates a new Yahoo Finance client.
// No API key is required; these are public endpoints.
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

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "scout/"+common.GetVersion())

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// chartResponse represents the /v8/finance/chart payload
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol              string      `json:"symbol"`
				RegularMarketPrice  flexFloat64 `json:"regularMarketPrice"`
				RegularMarketVolume flexFloat64 `json:"regularMarketVolume"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Open   []flexFloat64 `json:"open"`
					Close  []flexFloat64 `json:"close"`
					Volume []flexFloat64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetQuote retrieves the intraday price/volume snapshot for a symbol from
// the chart endpoint, using a trailing 5-day daily window so the session
// open and a short volume history come back in one round-trip.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.IntradayQuote, error) {
	params := url.Values{}
	params.Set("range", "5d")
	params.Set("interval", "1d")

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))

	var resp chartResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart query for %s failed: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Open) == 0 {
		return nil, fmt.Errorf("empty price history for %s", symbol)
	}

	bars := result.Indicators.Quote[0]
	last := len(bars.Open) - 1
	if len(bars.Volume) <= last {
		return nil, fmt.Errorf("truncated price history for %s", symbol)
	}

	var historySum int64
	for _, v := range bars.Volume {
		historySum += int64(v)
	}

	volume := int64(bars.Volume[last])
	if result.Meta.RegularMarketVolume > 0 {
		volume = int64(result.Meta.RegularMarketVolume)
	}

	price := float64(result.Meta.RegularMarketPrice)
	if price == 0 && len(bars.Close) > last {
		price = float64(bars.Close[last])
	}

	return &models.IntradayQuote{
		Symbol:           symbol,
		Price:            price,
		Open:             float64(bars.Open[last]),
		Volume:           volume,
		HistoryVolumeSum: historySum,
		HistoryDays:      len(bars.Volume),
	}, nil
}

// yahooValue is Yahoo's wrapped numeric: {"raw": 1.23, "fmt": "1.23"}
type yahooValue struct {
	Raw flexFloat64 `json:"raw"`
}

// summaryResponse represents the /v10/finance/quoteSummary payload
type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName string     `json:"shortName"`
				MarketCap yahooValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				AverageVolume yahooValue `json:"averageVolume"`
				TrailingPE    yahooValue `json:"trailingPE"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				FloatShares yahooValue `json:"floatShares"`
			} `json:"defaultKeyStatistics"`
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// GetProfile retrieves descriptive metadata for a symbol. Values come back
// as delivered; the acquisition boundary owns default policy.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	params := url.Values{}
	params.Set("modules", "price,summaryDetail,defaultKeyStatistics,assetProfile")

	path := fmt.Sprintf("/v10/finance/quoteSummary/%s", url.PathEscape(symbol))

	var resp summaryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary for %s failed: %s", symbol, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary for %s", symbol)
	}

	result := resp.QuoteSummary.Result[0]

	return &models.CompanyProfile{
		Symbol:        symbol,
		Name:          result.Price.ShortName,
		AverageVolume: int64(result.SummaryDetail.AverageVolume.Raw),
		FloatShares:   float64(result.DefaultKeyStatistics.FloatShares.Raw),
		MarketCap:     float64(result.Price.MarketCap.Raw),
		Sector:        result.AssetProfile.Sector,
		PERatio:       float64(result.SummaryDetail.TrailingPE.Raw),
	}, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
