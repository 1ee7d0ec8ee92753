// Package common provides shared utilities for Scout
package common

import "time"

// Freshness TTLs for data components
const (
	// FreshnessMarketRecords bounds how long an acquired record batch is
	// served without re-fetching. Matches the provider's intraday cadence.
	FreshnessMarketRecords = 5 * time.Minute

	// FreshnessListing bounds exchange/index listing reuse; listings move
	// far slower than prices.
	FreshnessListing = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
