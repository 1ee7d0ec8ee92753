package yahoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "AAPL",
        "regularMarketPrice": 10.50,
        "regularMarketVolume": 6000000
      },
      "indicators": {
        "quote": [{
          "open":   [8.0, 8.5, 9.0, 9.2, 9.0],
          "close":  [8.4, 8.9, 9.1, 9.0, 10.5],
          "volume": [1000000, 1100000, 900000, 1200000, 5500000]
        }]
      }
    }],
    "error": null
  }
}`

const summaryPayload = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "shortName": "Apple Inc.",
        "marketCap": {"raw": 2000000000, "fmt": "2B"}
      },
      "summaryDetail": {
        "averageVolume": {"raw": 1200000},
        "trailingPE": {"raw": "28.5"}
      },
      "defaultKeyStatistics": {
        "floatShares": {"raw": 5000000}
      },
      "assetProfile": {
        "sector": "Technology"
      }
    }],
    "error": null
  }
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(WithBaseURL(server.URL), WithRateLimit(1000))
	return client, server
}

func TestGetQuote(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		w.Write([]byte(chartPayload))
	})
	defer server.Close()

	quote, err := client.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "5d", gotRange)
	assert.Equal(t, "1d", gotInterval)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.InDelta(t, 10.50, quote.Price, 0.001)
	assert.InDelta(t, 9.0, quote.Open, 0.001, "open comes from the latest bar")
	assert.Equal(t, int64(6000000), quote.Volume, "meta volume preferred over the bar")
	assert.Equal(t, int64(9700000), quote.HistoryVolumeSum)
	assert.Equal(t, 5, quote.HistoryDays)
}

func TestGetQuoteFallsBackToLastClose(t *testing.T) {
	payload := `{
	  "chart": {
	    "result": [{
	      "meta": {"symbol": "XYZ", "regularMarketPrice": null, "regularMarketVolume": null},
	      "indicators": {"quote": [{
	        "open": [4.0], "close": [4.2], "volume": [300000]
	      }]}
	    }],
	    "error": null
	  }
	}`
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})
	defer server.Close()

	quote, err := client.GetQuote(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.InDelta(t, 4.2, quote.Price, 0.001)
	assert.Equal(t, int64(300000), quote.Volume, "bar volume used when meta volume is absent")
}

func TestGetQuoteEmptyHistory(t *testing.T) {
	payload := `{
	  "chart": {
	    "result": [{
	      "meta": {"symbol": "EMPTY", "regularMarketPrice": 1.0},
	      "indicators": {"quote": [{"open": [], "close": [], "volume": []}]}
	    }],
	    "error": null
	  }
	}`
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "EMPTY")
	assert.ErrorContains(t, err, "empty price history")
}

func TestGetQuoteShortVolumeArray(t *testing.T) {
	payload := `{
	  "chart": {
	    "result": [{
	      "meta": {"symbol": "RAGGED", "regularMarketPrice": 4.5},
	      "indicators": {"quote": [{
	        "open": [4.0, 4.5], "close": [4.1, 4.4], "volume": [300000]
	      }]}
	    }],
	    "error": null
	  }
	}`
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "RAGGED")
	require.Error(t, err, "a ragged payload must fail the symbol, never panic")
	assert.ErrorContains(t, err, "truncated price history")
}

func TestGetQuoteChartError(t *testing.T) {
	payload := `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "NOPE")
	assert.ErrorContains(t, err, "No data found")
}

func TestGetQuoteHTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	})
	defer server.Close()

	_, err := client.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "rate limited")
}

func TestGetProfile(t *testing.T) {
	var gotPath, gotModules string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotModules = r.URL.Query().Get("modules")
		w.Write([]byte(summaryPayload))
	})
	defer server.Close()

	profile, err := client.GetProfile(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "/v10/finance/quoteSummary/AAPL", gotPath)
	assert.Equal(t, "price,summaryDetail,defaultKeyStatistics,assetProfile", gotModules)

	assert.Equal(t, "Apple Inc.", profile.Name)
	assert.Equal(t, int64(1200000), profile.AverageVolume)
	assert.InDelta(t, 5000000, profile.FloatShares, 0.1)
	assert.InDelta(t, 2000000000, profile.MarketCap, 0.1)
	assert.Equal(t, "Technology", profile.Sector)
	assert.InDelta(t, 28.5, profile.PERatio, 0.001, "string-typed ratio parsed")
}

func TestGetProfileMissingModules(t *testing.T) {
	payload := `{
	  "quoteSummary": {
	    "result": [{
	      "price": {"shortName": "Thin Corp"},
	      "summaryDetail": {"trailingPE": {"raw": "N/A"}},
	      "defaultKeyStatistics": {},
	      "assetProfile": {}
	    }],
	    "error": null
	  }
	}`
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})
	defer server.Close()

	profile, err := client.GetProfile(context.Background(), "THIN")
	require.NoError(t, err)
	assert.Equal(t, "Thin Corp", profile.Name)
	assert.Zero(t, profile.AverageVolume)
	assert.Zero(t, profile.FloatShares)
	assert.Zero(t, profile.PERatio)
	assert.Empty(t, profile.Sector)
}

func TestGetProfileEmptyResult(t *testing.T) {
	payload := `{"quoteSummary": {"result": [], "error": null}}`
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})
	defer server.Close()

	_, err := client.GetProfile(context.Background(), "GONE")
	assert.ErrorContains(t, err, "no quote summary")
}

func TestFlexFloat64(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"number", `3.14`, 3.14},
		{"integer", `42`, 42},
		{"null", `null`, 0},
		{"string number", `"7.5"`, 7.5},
		{"empty string", `""`, 0},
		{"not available", `"N/A"`, 0},
		{"garbage string", `"abc"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexFloat64
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.InDelta(t, tt.want, float64(f), 0.0001)
		})
	}

	var f flexFloat64
	assert.Error(t, json.Unmarshal([]byte(`{"nested": true}`), &f))
}
