// Package universe resolves a source selector into the ordered,
// deduplicated set of symbols eligible for a scan.
package universe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/scout/internal/common"
	"github.com/bobmcallan/scout/internal/interfaces"
	"github.com/bobmcallan/scout/internal/models"
)

// MaxUniverseSize caps resolver output to bound downstream acquisition
// cost. The cap is policy, not an error: truncation is stable and keeps
// first-listed symbols.
const MaxUniverseSize = 200

// ErrEmptyUniverse is returned when a source yields zero symbols even
// after fallback. It is the resolver's only fatal condition.
var ErrEmptyUniverse = errors.New("universe resolved to zero symbols")

// Resolver resolves symbol universes from remote listings, static
// fallbacks, and user-supplied files. Successful listing fetches are
// reused per source for the listing freshness window.
type Resolver struct {
	listings interfaces.ListingClient
	logger   *common.Logger

	mu     sync.Mutex
	recent map[models.UniverseSource]listingEntry
}

type listingEntry struct {
	symbols   []string
	fetchedAt time.Time
}

// NewResolver creates a new resolver. listings may be nil, in which case
// every remote source degrades directly to its fallback list.
func NewResolver(listings interfaces.ListingClient, logger *common.Logger) *Resolver {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Resolver{
		listings: listings,
		logger:   logger,
		recent:   make(map[models.UniverseSource]listingEntry),
	}
}

// listingName maps a source selector to the listing client identifier.
func listingName(source models.UniverseSource) string {
	switch source {
	case models.SourceNASDAQ:
		return "NASDAQ"
	case models.SourceNYSE:
		return "NYSE"
	case models.SourceSP500:
		return "SP500"
	default:
		return ""
	}
}

// Resolve turns a source selector into a universe. Remote listing
// failures never propagate: they degrade to the source's static fallback
// plus a recorded warning. userList is only read for SourceUserList.
func (r *Resolver) Resolve(ctx context.Context, source models.UniverseSource, userList []byte) (*models.Universe, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("unknown universe source: %q", source)
	}

	var symbols []string
	var warnings []string

	switch source {
	case models.SourceUserList:
		symbols = ParseUserList(userList)
	default:
		symbols, warnings = r.resolveListing(ctx, source)
	}

	symbols = Dedupe(symbols)

	if len(symbols) > MaxUniverseSize {
		r.logger.Debug().
			Str("source", string(source)).
			Int("resolved", len(symbols)).
			Int("cap", MaxUniverseSize).
			Msg("Universe capped")
		symbols = symbols[:MaxUniverseSize]
	}

	if len(symbols) == 0 {
		return nil, fmt.Errorf("source %s: %w", source, ErrEmptyUniverse)
	}

	return &models.Universe{
		Source:   source,
		Symbols:  symbols,
		Warnings: warnings,
	}, nil
}

// resolveListing queries a remote listing source, falling back to the
// static list on any failure. Listings move far slower than prices, so a
// fetch within the freshness window is reused without a round-trip.
func (r *Resolver) resolveListing(ctx context.Context, source models.UniverseSource) ([]string, []string) {
	listing := listingName(source)

	if symbols := r.recentListing(source); symbols != nil {
		return symbols, nil
	}

	if r.listings != nil {
		symbols, err := r.listings.ListSymbols(ctx, listing)
		if err == nil && len(symbols) > 0 {
			r.storeListing(source, symbols)
			return symbols, nil
		}
		if err != nil {
			r.logger.Warn().Str("listing", listing).Err(err).Msg("Listing source unavailable, using fallback")
			return FallbackSymbols(source), []string{
				fmt.Sprintf("%s listing unavailable (%v); using static fallback", listing, err),
			}
		}
	}

	return FallbackSymbols(source), []string{
		fmt.Sprintf("%s listing not queried; using static fallback", listing),
	}
}

// recentListing returns a copy of a prior fetch for the source while it is
// still fresh, or nil.
func (r *Resolver) recentListing(source models.UniverseSource) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.recent[source]
	if !ok || !common.IsFresh(entry.fetchedAt, common.FreshnessListing) {
		return nil
	}
	out := make([]string, len(entry.symbols))
	copy(out, entry.symbols)
	return out
}

func (r *Resolver) storeListing(source models.UniverseSource, symbols []string) {
	r.mu.Lock()
	r.recent[source] = listingEntry{
		symbols:   append([]string(nil), symbols...),
		fetchedAt: time.Now(),
	}
	r.mu.Unlock()
}

// Dedupe removes duplicate symbols preserving order of first appearance.
// Symbols are trimmed and upper-cased before comparison.
func Dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}

// Ensure Resolver implements UniverseResolver
var _ interfaces.UniverseResolver = (*Resolver)(nil)
