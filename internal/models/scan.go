// Package models defines data structures for Scout
package models

import "time"

// ScanRequest describes one full scan: universe source, filter criteria,
// and acquisition bounds. UserList is only read for SourceUserList.
type ScanRequest struct {
	Source      UniverseSource `json:"source"`
	UserList    []byte         `json:"user_list,omitempty"`
	Criteria    FilterCriteria `json:"criteria"`
	Concurrency int            `json:"concurrency,omitempty"` // acquisition workers, 0 = default
	Deadline    time.Duration  `json:"deadline,omitempty"`    // overall acquisition deadline, 0 = default
}

// ScanResponse is the ordered result set of a scan.
type ScanResponse struct {
	Records  []SymbolRecord `json:"records"`
	Warnings []string       `json:"warnings,omitempty"`
	Meta     ScanMeta       `json:"meta"`
}

// ScanMeta contains scan execution metadata
type ScanMeta struct {
	ScanID       string    `json:"scan_id"`
	Source       string    `json:"source"`
	UniverseSize int       `json:"universe_size"`
	Fetched      int       `json:"fetched"`       // records acquired (pre-filter)
	TotalMatched int       `json:"total_matched"` // records passing all predicates
	Returned     int       `json:"returned"`      // after truncation
	Cached       bool      `json:"cached"`        // served from the record cache
	ExecutedAt   time.Time `json:"executed_at"`
	QueryTimeMS  int64     `json:"query_time_ms"`
}

// Progress is one acquisition progress tick: completed counts
// monotonically toward total, and LastSymbol names the symbol whose
// fetch just finished, successfully or not.
type Progress struct {
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	LastSymbol string `json:"last_symbol"`
}
