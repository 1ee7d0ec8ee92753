// Package catalyst provides the qualitative signal feed for scanned symbols.
//
// StaticFeed is a stand-in for the real collaborator (a ranked news/event
// feed). It honors the same contract, one short tag per symbol refreshed
// at the same cadence as price data, but derives the tag deterministically
// so scans are reproducible without a news subscription.
package catalyst

import (
	"context"

	"github.com/cespare/xxhash/v2"

	"github.com/bobmcallan/scout/internal/interfaces"
	"github.com/bobmcallan/scout/internal/models"
)

// StaticFeed assigns each symbol a fixed tag from the catalyst set.
type StaticFeed struct{}

// NewStaticFeed creates the stand-in catalyst feed.
func NewStaticFeed() *StaticFeed {
	return &StaticFeed{}
}

// GetCatalyst returns the catalyst tag for a symbol. The mapping is a
// stable hash into the fixed tag set and never fails.
func (f *StaticFeed) GetCatalyst(_ context.Context, symbol string) (models.Catalyst, error) {
	idx := xxhash.Sum64String(symbol) % uint64(len(models.Catalysts))
	return models.Catalysts[idx], nil
}

// Ensure StaticFeed implements CatalystFeed
var _ interfaces.CatalystFeed = (*StaticFeed)(nil)
