package market

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/scout/internal/common"
	"github.com/bobmcallan/scout/internal/interfaces"
	"github.com/bobmcallan/scout/internal/models"
)

// DefaultDeadline bounds acquisition when the request does not set one.
const DefaultDeadline = 60 * time.Second

// Service runs the full scan pipeline: resolve the universe, serve or
// acquire records through the cache, then filter, rank, and truncate.
type Service struct {
	resolver interfaces.UniverseResolver
	engine   *Engine
	cache    *Cache
	logger   *common.Logger
}

// NewService creates a scan service.
func NewService(resolver interfaces.UniverseResolver, engine *Engine, cache *Cache, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		resolver: resolver,
		engine:   engine,
		cache:    cache,
		logger:   logger,
	}
}

// Scan executes one scan. Only an empty universe propagates as an error;
// every other degradation surfaces as fewer records plus a warning.
func (s *Service) Scan(ctx context.Context, req models.ScanRequest) (*models.ScanResponse, error) {
	start := time.Now()

	criteria := req.Criteria
	criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("invalid criteria: %w", err)
	}

	uni, err := s.resolver.Resolve(ctx, req.Source, req.UserList)
	if err != nil {
		return nil, err
	}

	warnings := append([]string(nil), uni.Warnings...)

	s.logger.Debug().
		Str("source", string(req.Source)).
		Int("universe", uni.Size()).
		Msg("Executing market scan")

	deadline := req.Deadline
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	acqCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	fetched := false
	records, cached, err := s.cache.GetOrFetch(uni.Symbols, func(symbols []string) ([]models.SymbolRecord, error) {
		fetched = true
		return s.engine.fetchAll(acqCtx, symbols, req.Concurrency)
	})
	if err != nil {
		if len(records) == 0 {
			warnings = append(warnings, fmt.Sprintf("acquisition failed: %v", err))
			records = nil
		} else {
			warnings = append(warnings, fmt.Sprintf("serving stale records after refresh failure: %v", err))
		}
	}

	if fetched && acqCtx.Err() == context.DeadlineExceeded {
		warnings = append(warnings, fmt.Sprintf(
			"acquisition deadline exceeded; %d of %d symbols acquired", len(records), uni.Size()))
	}

	results, totalMatched := Apply(records, criteria)

	elapsed := time.Since(start)
	s.logger.Info().
		Str("source", string(req.Source)).
		Int("universe", uni.Size()).
		Int("fetched", len(records)).
		Int("matched", totalMatched).
		Int("returned", len(results)).
		Bool("cached", cached).
		Dur("elapsed", elapsed).
		Msg("Scan complete")

	return &models.ScanResponse{
		Records:  results,
		Warnings: warnings,
		Meta: models.ScanMeta{
			ScanID:       uuid.NewString(),
			Source:       string(req.Source),
			UniverseSize: uni.Size(),
			Fetched:      len(records),
			TotalMatched: totalMatched,
			Returned:     len(results),
			Cached:       cached,
			ExecutedAt:   time.Now().UTC(),
			QueryTimeMS:  elapsed.Milliseconds(),
		},
	}, nil
}

// Ensure Service implements ScanService
var _ interfaces.ScanService = (*Service)(nil)
