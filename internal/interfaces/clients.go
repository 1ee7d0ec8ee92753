// Package interfaces defines service contracts for Scout
package interfaces

import (
	"context"

	"github.com/bobmcallan/scout/internal/models"
)

// MarketDataClient provides per-symbol market data from the external
// provider. The two calls may fail independently; either failure causes
// the acquisition engine to discard the symbol.
type MarketDataClient interface {
	// GetQuote retrieves the intraday price/volume snapshot for a symbol
	GetQuote(ctx context.Context, symbol string) (*models.IntradayQuote, error)

	// GetProfile retrieves descriptive metadata for a symbol
	GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
}

// ListingClient retrieves symbol listings for a market. Listing names are
// exchange codes ("NASDAQ", "NYSE") or index identifiers ("SP500").
type ListingClient interface {
	// ListSymbols retrieves all symbols for a listing
	ListSymbols(ctx context.Context, listing string) ([]string, error)
}

// CatalystFeed supplies one short qualitative signal tag per symbol. The
// production contract is a ranked news/event feed; Scout ships a
// deterministic stand-in.
type CatalystFeed interface {
	// GetCatalyst returns the most recent catalyst tag for a symbol
	GetCatalyst(ctx context.Context, symbol string) (models.Catalyst, error)
}

// ProgressFunc observes acquisition progress. Implementations are invoked
// from the engine's collector, never from worker goroutines, and must not
// assume any ordering of LastSymbol values.
type ProgressFunc func(models.Progress)
