// Package models defines data structures for Scout
package models

// UniverseSource selects where the symbol universe comes from.
type UniverseSource string

const (
	SourceNASDAQ   UniverseSource = "nasdaq" // primary exchange listing
	SourceNYSE     UniverseSource = "nyse"   // secondary exchange listing
	SourceSP500    UniverseSource = "sp500"  // index constituents
	SourceUserList UniverseSource = "user"   // caller-supplied symbol file
)

// UniverseSources lists the valid source selectors.
var UniverseSources = []UniverseSource{SourceNASDAQ, SourceNYSE, SourceSP500, SourceUserList}

// Valid reports whether the selector is a known source.
func (s UniverseSource) Valid() bool {
	for _, known := range UniverseSources {
		if s == known {
			return true
		}
	}
	return false
}

// Universe is the ordered, deduplicated set of symbols eligible for a scan,
// plus any non-fatal warnings accumulated while resolving it.
type Universe struct {
	Source   UniverseSource `json:"source"`
	Symbols  []string       `json:"symbols"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Size returns the number of symbols in the universe.
func (u *Universe) Size() int {
	return len(u.Symbols)
}
