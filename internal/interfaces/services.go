// Package interfaces defines service contracts for Scout
package interfaces

import (
	"context"

	"github.com/bobmcallan/scout/internal/models"
)

// UniverseResolver turns a source selector into an ordered, deduplicated
// symbol universe. Degraded sources surface as warnings on the universe;
// only an empty result is an error.
type UniverseResolver interface {
	// Resolve resolves the universe for a source. userList is only read
	// for models.SourceUserList.
	Resolve(ctx context.Context, source models.UniverseSource, userList []byte) (*models.Universe, error)
}

// ScanService runs the full resolve → acquire → filter → rank pipeline.
type ScanService interface {
	// Scan executes one scan
	Scan(ctx context.Context, req models.ScanRequest) (*models.ScanResponse, error)
}
