// Package models defines data structures for Scout
package models

import "fmt"

// Catalyst is a short qualitative signal tag attached to a symbol record.
// The set is fixed; a real deployment sources one tag per symbol from a
// ranked news/event feed refreshed at the same cadence as price data.
type Catalyst string

const (
	CatalystEarningsBeat   Catalyst = "Earnings Beat"
	CatalystAnalystUpgrade Catalyst = "Analyst Upgrade"
	CatalystInsiderBuying  Catalyst = "Insider Buying"
	CatalystUnusualVolume  Catalyst = "Unusual Volume"
	CatalystSectorMomentum Catalyst = "Sector Momentum"
	CatalystShortSqueeze   Catalyst = "Short Squeeze Watch"
	CatalystContractWin    Catalyst = "Contract Win"
	CatalystFDAApproval    Catalyst = "FDA Approval"
)

// Catalysts lists every valid catalyst tag.
var Catalysts = []Catalyst{
	CatalystEarningsBeat,
	CatalystAnalystUpgrade,
	CatalystInsiderBuying,
	CatalystUnusualVolume,
	CatalystSectorMomentum,
	CatalystShortSqueeze,
	CatalystContractWin,
	CatalystFDAApproval,
}

// SymbolRecord is one instrument's market snapshot, produced by the
// acquisition engine. Records are immutable once constructed; a refresh
// produces a new record. Keyed by Symbol, at most one per batch.
type SymbolRecord struct {
	Symbol        string   `json:"symbol"`
	CompanyName   string   `json:"company_name"`
	Price         float64  `json:"price"`
	OpenPrice     float64  `json:"open_price"`
	PercentChange float64  `json:"percent_change"`
	Volume        int64    `json:"volume"`
	AverageVolume int64    `json:"average_volume"`
	FloatSharesM  float64  `json:"float_shares_m"` // millions of shares
	MarketCapB    float64  `json:"market_cap_b"`   // billions
	Sector        string   `json:"sector"`         // "N/A" when unknown
	PERatio       float64  `json:"pe_ratio"`       // 0 means not meaningful
	Catalyst      Catalyst `json:"catalyst,omitempty"`
}

// HasPE reports whether the trailing PE is meaningful. A zero or absent
// ratio renders as "N/A" and must never enter positivity comparisons.
func (r *SymbolRecord) HasPE() bool {
	return r.PERatio > 0
}

// IntradayQuote is the raw price payload from the market-data provider.
type IntradayQuote struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Open             float64 `json:"open"`
	Volume           int64   `json:"volume"`
	HistoryVolumeSum int64   `json:"history_volume_sum"` // summed volume over the trailing window
	HistoryDays      int     `json:"history_days"`
}

// CompanyProfile is the raw descriptive payload from the market-data
// provider. Fields are as delivered; default policy is applied once at
// the acquisition boundary, not here.
type CompanyProfile struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	AverageVolume int64   `json:"average_volume"`
	FloatShares   float64 `json:"float_shares"` // raw share count
	MarketCap     float64 `json:"market_cap"`   // raw dollars
	Sector        string  `json:"sector"`
	PERatio       float64 `json:"pe_ratio"`
}

// FilterCriteria defines the predicate conjunction and ranking bounds for
// one scan. Immutable per scan.
type FilterCriteria struct {
	PriceMin         float64 `json:"price_min"`
	PriceMax         float64 `json:"price_max"`
	FloatCeilingM    float64 `json:"float_ceiling_m"`
	MinVolume        int64   `json:"min_volume"`
	MinPercentChange float64 `json:"min_percent_change"`
	MinVolumeRatio   float64 `json:"min_volume_ratio"`
	ResultCount      int     `json:"result_count"`
}

// Normalize applies documented defaults for zero-valued fields.
func (c *FilterCriteria) Normalize() {
	if c.MinVolumeRatio <= 0 {
		c.MinVolumeRatio = 5.0
	}
	if c.ResultCount < 1 {
		c.ResultCount = 10
	}
}

// Validate checks criteria bounds.
func (c *FilterCriteria) Validate() error {
	if c.PriceMin < 0 || c.PriceMax < 0 {
		return fmt.Errorf("price bounds must be non-negative")
	}
	if c.PriceMin > c.PriceMax {
		return fmt.Errorf("price_min %.2f exceeds price_max %.2f", c.PriceMin, c.PriceMax)
	}
	if c.FloatCeilingM < 0 {
		return fmt.Errorf("float ceiling must be non-negative")
	}
	if c.MinVolume < 0 {
		return fmt.Errorf("minimum volume must be non-negative")
	}
	return nil
}
