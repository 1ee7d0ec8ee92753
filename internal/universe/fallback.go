package universe

import "github.com/bobmcallan/scout/internal/models"

// Static fallback lists per remote source. Fallback requires no I/O, so
// the pipeline always receives a non-empty universe when a remote listing
// degrades. The user-list source has no fallback.
var fallbacks = map[models.UniverseSource][]string{
	models.SourceNASDAQ: {
		"AAPL", "MSFT", "AMZN", "TSLA", "GOOGL", "META", "NVDA", "PYPL",
	},
	models.SourceNYSE: {
		"JPM", "BAC", "XOM", "JNJ", "PG", "KO", "DIS", "V",
	},
	models.SourceSP500: {
		"AAPL", "MSFT", "NVDA", "AMZN", "META", "GOOGL", "BRK.B", "AVGO",
	},
}

// FallbackSymbols returns a copy of the static fallback list for a source,
// or nil when the source has none.
func FallbackSymbols(source models.UniverseSource) []string {
	list, ok := fallbacks[source]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
