package nasdaq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const screenerPayload = `{
  "data": {
    "rows": [
      {"symbol": "AAPL"},
      {"symbol": " MSFT "},
      {"symbol": ""},
      {"symbol": "NVDA"}
    ]
  },
  "status": {"rCode": 200}
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(WithBaseURL(server.URL), WithRateLimit(1000))
	return client, server
}

func TestListSymbolsScreener(t *testing.T) {
	var gotPath, gotExchange, gotDownload string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotExchange = r.URL.Query().Get("exchange")
		gotDownload = r.URL.Query().Get("download")
		w.Write([]byte(screenerPayload))
	})
	defer server.Close()

	symbols, err := client.ListSymbols(context.Background(), "NASDAQ")
	require.NoError(t, err)

	assert.Equal(t, "/screener/stocks", gotPath)
	assert.Equal(t, "NASDAQ", gotExchange)
	assert.Equal(t, "true", gotDownload)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, symbols, "blank rows dropped, whitespace trimmed")
}

func TestListSymbolsSP500(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(screenerPayload))
	})
	defer server.Close()

	symbols, err := client.ListSymbols(context.Background(), "sp500")
	require.NoError(t, err)
	assert.Equal(t, "/quote/list-type/sp500", gotPath)
	assert.Len(t, symbols, 3)
}

func TestListSymbolsUnknownListing(t *testing.T) {
	client := NewClient()

	_, err := client.ListSymbols(context.Background(), "ASX")
	assert.ErrorContains(t, err, "unknown listing")
}

func TestListSymbolsHTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	})
	defer server.Close()

	_, err := client.ListSymbols(context.Background(), "NYSE")
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 403")
}

func TestListSymbolsEnvelopeError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"rows": [{"symbol": "AAPL"}]}, "status": {"rCode": 400}}`))
	})
	defer server.Close()

	_, err := client.ListSymbols(context.Background(), "NASDAQ")
	require.Error(t, err)
	assert.ErrorContains(t, err, "rCode 400")
}

func TestListSymbolsEmptyRows(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"rows": []}, "status": {"rCode": 200}}`))
	})
	defer server.Close()

	_, err := client.ListSymbols(context.Background(), "NASDAQ")
	assert.ErrorContains(t, err, "no symbols")
}
