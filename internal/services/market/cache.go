package market

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/bobmcallan/scout/internal/common"
	"github.com/bobmcallan/scout/internal/models"
)

// FetchFunc acquires records for an ordered universe on a cache miss.
type FetchFunc func(symbols []string) ([]models.SymbolRecord, error)

// Cache memoizes acquisition results per universe fingerprint for a fixed
// time window. Entries are read-only once stored and superseded by the
// next successful fetch for the same fingerprint, never deleted.
type Cache struct {
	ttl    time.Duration
	now    func() time.Time
	logger *common.Logger

	mu      sync.RWMutex
	entries map[uint64]*cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	records   []models.SymbolRecord
	fetchedAt time.Time
}

// CacheOption configures the cache
type CacheOption func(*Cache)

// WithClock injects the cache's clock
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a record cache with the given TTL.
func NewCache(ttl time.Duration, logger *common.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	c := &Cache{
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		entries: make(map[uint64]*cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fingerprint derives the cache key from the exact ordered universe. The
// same symbols in a different order are a distinct key.
func Fingerprint(symbols []string) uint64 {
	h := xxhash.New()
	for i, s := range symbols {
		if i > 0 {
			_, _ = h.WriteString("\x1f")
		}
		_, _ = h.WriteString(s)
	}
	return h.Sum64()
}

type fetchOutcome struct {
	records []models.SymbolRecord
	fresh   bool
	err     error
}

// GetOrFetch returns the cached records for the universe when the entry is
// within the TTL window, otherwise invokes fetch exactly once: concurrent
// callers for the same fingerprint share a single flight. When a refresh
// fetch fails and a stale entry exists, the stale records are returned
// alongside the error; callers treat that as a degraded success.
func (c *Cache) GetOrFetch(symbols []string, fetch FetchFunc) ([]models.SymbolRecord, bool, error) {
	key := Fingerprint(symbols)

	if records, ok := c.lookup(key); ok {
		return records, true, nil
	}

	v, _, _ := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		// A concurrent flight may have stored a fresh entry after our miss.
		if records, ok := c.lookup(key); ok {
			return fetchOutcome{records: records, fresh: true}, nil
		}

		records, err := fetch(symbols)
		if err != nil {
			if stale := c.entry(key); stale != nil {
				c.logger.Warn().Uint64("fingerprint", key).Err(err).Msg("Refresh failed, serving stale records")
				return fetchOutcome{records: stale.records, fresh: true, err: err}, nil
			}
			return fetchOutcome{err: err}, nil
		}

		// Store even a partially empty batch; "no data" is a valid result.
		c.store(key, records)
		return fetchOutcome{records: records}, nil
	})

	outcome := v.(fetchOutcome)
	return outcome.records, outcome.fresh, outcome.err
}

// lookup returns the records for a key when the entry is within the TTL.
func (c *Cache) lookup(key uint64) ([]models.SymbolRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.records, true
}

// entry returns the entry for a key regardless of freshness.
func (c *Cache) entry(key uint64) *cacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key]
}

// store atomically swaps in a new entry; readers never observe a partial
// write.
func (c *Cache) store(key uint64, records []models.SymbolRecord) {
	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		records:   records,
		fetchedAt: c.now(),
	}
	c.mu.Unlock()
}
