package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/scout/internal/common"
	"github.com/bobmcallan/scout/internal/interfaces"
	"github.com/bobmcallan/scout/internal/models"
)

// DefaultWorkers is the acquisition pool size when none is configured.
const DefaultWorkers = 12

// ErrNoSymbols is returned when FetchAll is called with an empty universe;
// it is the only batch-level failure. A batch that completes with zero
// records is a successful "no data" result.
var ErrNoSymbols = errors.New("no symbols to fetch")

// errZeroOpenPrice marks a data-quality rejection: a zero session open
// leaves percent change undefined, so the record is discarded.
var errZeroOpenPrice = errors.New("zero open price")

// Engine fetches one record per symbol with bounded concurrency and
// per-symbol fault isolation. Any symbol's failure, transport or data
// quality, discards only that symbol.
type Engine struct {
	client    interfaces.MarketDataClient
	catalysts interfaces.CatalystFeed
	workers   int
	progress  interfaces.ProgressFunc
	logger    *common.Logger
}

// EngineOption configures the engine
type EngineOption func(*Engine)

// WithWorkers sets the worker pool size
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithProgress sets the progress observer. It is invoked from the result
// collector after every symbol completes, success or failure, and never
// blocks worker goroutines.
func WithProgress(fn interfaces.ProgressFunc) EngineOption {
	return func(e *Engine) {
		e.progress = fn
	}
}

// NewEngine creates an acquisition engine. catalysts may be nil, in which
// case records carry no catalyst tag.
func NewEngine(client interfaces.MarketDataClient, catalysts interfaces.CatalystFeed, logger *common.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	e := &Engine{
		client:    client,
		catalysts: catalysts,
		workers:   DefaultWorkers,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FetchAll acquires a record per symbol using the configured pool size.
// On context expiry, in-flight symbols are abandoned and the records
// completed so far are returned as a partial success.
func (e *Engine) FetchAll(ctx context.Context, symbols []string) ([]models.SymbolRecord, error) {
	return e.fetchAll(ctx, symbols, e.workers)
}

type fetchResult struct {
	symbol string
	record *models.SymbolRecord
	err    error
}

func (e *Engine) fetchAll(ctx context.Context, symbols []string, workers int) ([]models.SymbolRecord, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(symbols) {
		workers = len(symbols)
	}

	jobs := make(chan string)
	// Buffered so abandoned workers never block sending after a deadline.
	results := make(chan fetchResult, len(symbols))

	for i := 0; i < workers; i++ {
		go e.worker(ctx, jobs, results)
	}

	go func() {
		defer close(jobs)
		for _, symbol := range symbols {
			select {
			case jobs <- symbol:
			case <-ctx.Done():
				return
			}
		}
	}()

	records := make([]models.SymbolRecord, 0, len(symbols))
	completed := 0

	for completed < len(symbols) {
		select {
		case res := <-results:
			completed++
			records = e.collect(records, res)
			e.report(completed, len(symbols), res.symbol)
		case <-ctx.Done():
			// Deadline: drain whatever already completed, abandon the rest.
			for {
				select {
				case res := <-results:
					completed++
					records = e.collect(records, res)
					e.report(completed, len(symbols), res.symbol)
				default:
					e.logger.Warn().
						Int("completed", completed).
						Int("total", len(symbols)).
						Int("records", len(records)).
						Msg("Acquisition deadline hit, returning partial batch")
					return records, nil
				}
			}
		}
	}

	e.logger.Debug().
		Int("symbols", len(symbols)).
		Int("records", len(records)).
		Msg("Acquisition batch complete")

	return records, nil
}

// collect appends a successful record and logs discards.
func (e *Engine) collect(records []models.SymbolRecord, res fetchResult) []models.SymbolRecord {
	switch {
	case res.record != nil:
		return append(records, *res.record)
	case errors.Is(res.err, errZeroOpenPrice):
		e.logger.Debug().Str("symbol", res.symbol).Msg("Record rejected on data quality")
	case res.err != nil:
		e.logger.Debug().Str("symbol", res.symbol).Err(res.err).Msg("Symbol fetch failed, discarding")
	}
	return records
}

func (e *Engine) report(completed, total int, symbol string) {
	if e.progress == nil {
		return
	}
	e.progress(models.Progress{
		Completed:  completed,
		Total:      total,
		LastSymbol: symbol,
	})
}

func (e *Engine) worker(ctx context.Context, jobs <-chan string, results chan<- fetchResult) {
	for symbol := range jobs {
		record, err := e.fetchSymbol(ctx, symbol)
		results <- fetchResult{symbol: symbol, record: record, err: err}
	}
}

// fetchSymbol performs the two provider round-trips for one symbol and
// constructs its record. Either call failing, or a zero open price,
// discards the symbol.
func (e *Engine) fetchSymbol(ctx context.Context, symbol string) (*models.SymbolRecord, error) {
	quote, err := e.client.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}

	profile, err := e.client.GetProfile(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", symbol, err)
	}

	if quote.Open == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, errZeroOpenPrice)
	}

	var tag models.Catalyst
	if e.catalysts != nil {
		if t, err := e.catalysts.GetCatalyst(ctx, symbol); err == nil {
			tag = t
		} else {
			e.logger.Debug().Str("symbol", symbol).Err(err).Msg("Catalyst feed unavailable")
		}
	}

	return newRecord(symbol, quote, profile, tag), nil
}

// newRecord is the provider-adapter boundary: every default policy is
// decided here, once, and nowhere else in the pipeline.
func newRecord(symbol string, quote *models.IntradayQuote, profile *models.CompanyProfile, tag models.Catalyst) *models.SymbolRecord {
	name := profile.Name
	if name == "" {
		name = symbol
	}

	sector := profile.Sector
	if sector == "" {
		sector = "N/A"
	}

	// Documented approximation when the provider omits average volume.
	// Near-tautological against the default volume-ratio predicate; kept
	// deliberately, see DESIGN.md.
	avgVolume := profile.AverageVolume
	if avgVolume == 0 {
		avgVolume = quote.Volume / 5
	}

	return &models.SymbolRecord{
		Symbol:        symbol,
		CompanyName:   name,
		Price:         quote.Price,
		OpenPrice:     quote.Open,
		PercentChange: (quote.Price - quote.Open) / quote.Open * 100,
		Volume:        quote.Volume,
		AverageVolume: avgVolume,
		FloatSharesM:  profile.FloatShares / 1e6,
		MarketCapB:    profile.MarketCap / 1e9,
		Sector:        sector,
		PERatio:       profile.PERatio,
		Catalyst:      tag,
	}
}
