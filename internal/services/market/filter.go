// Package market implements the scan pipeline: concurrent acquisition,
// the time-bounded record cache, and the filter/rank stage.
package market

import (
	"sort"

	"github.com/bobmcallan/scout/internal/models"
)

// Apply runs the predicate conjunction over records, ranks survivors by
// intraday performance, and truncates to the criteria's result count.
// Pure and deterministic: arrival order of records never leaks into the
// output order. Returns the ranked results plus the total matched before
// truncation.
func Apply(records []models.SymbolRecord, criteria models.FilterCriteria) ([]models.SymbolRecord, int) {
	matched := make([]models.SymbolRecord, 0, len(records))
	for _, r := range records {
		if matches(&r, &criteria) {
			matched = append(matched, r)
		}
	}
	total := len(matched)

	rank(matched)

	if criteria.ResultCount > 0 && len(matched) > criteria.ResultCount {
		matched = matched[:criteria.ResultCount]
	}
	return matched, total
}

// matches evaluates the full predicate conjunction for one record.
func matches(r *models.SymbolRecord, c *models.FilterCriteria) bool {
	if r.Price < c.PriceMin || r.Price > c.PriceMax {
		return false
	}
	if r.FloatSharesM > c.FloatCeilingM {
		return false
	}
	if r.Volume < c.MinVolume {
		return false
	}
	if r.PercentChange < c.MinPercentChange {
		return false
	}
	// Volume ratio: a zero average volume reads as ratio +inf, so the
	// predicate holds whenever any volume traded.
	if r.AverageVolume == 0 {
		if r.Volume <= 0 {
			return false
		}
	} else if float64(r.Volume) < c.MinVolumeRatio*float64(r.AverageVolume) {
		return false
	}
	return true
}

// rank orders records descending by percent change, ties broken by
// descending volume then ascending symbol, giving a total order.
func rank(records []models.SymbolRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.PercentChange != b.PercentChange {
			return a.PercentChange > b.PercentChange
		}
		if a.Volume != b.Volume {
			return a.Volume > b.Volume
		}
		return a.Symbol < b.Symbol
	})
}
