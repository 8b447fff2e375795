package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
	"github.com/vertextoedge/bunkr-fetch/internal/util/ratelimiter"
)

// stateOperational is the only state text that counts as serving.
const stateOperational = "Operational"

// stateForcedOffline is written by MarkOffline after a server-down signal.
const stateForcedOffline = "Non-operational"

// refreshFloor caps how often a refresh may be attempted, so repeated
// fetch failures (which leave the cache stale) cannot stampede the
// status page.
const refreshFloor = 10 * time.Second

// Config contains tracker configuration
type Config struct {
	StatusURL string
	CacheTTL  time.Duration
}

// Tracker is the process-wide edge subdomain status cache. Status data is
// advisory: refresh failures fall back to the previous cache and are never
// surfaced as errors.
type Tracker struct {
	fetcher   port.PageFetcher
	extractor port.PageExtractor
	statusURL string
	ttl       time.Duration
	refresh   *ratelimiter.Limiter
	logger    *zap.Logger

	mu          sync.RWMutex
	cache       map[string]string
	lastRefresh time.Time
}

// Ensure Tracker implements port.HealthTracker
var _ port.HealthTracker = (*Tracker)(nil)

// New creates a new Tracker
func New(cfg *Config, fetcher port.PageFetcher, extractor port.PageExtractor, logger *zap.Logger) *Tracker {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.StatusURL == "" {
		cfg.StatusURL = "https://status.bunkr.ru/"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 300 * time.Second
	}

	return &Tracker{
		fetcher:   fetcher,
		extractor: extractor,
		statusURL: cfg.StatusURL,
		ttl:       cfg.CacheTTL,
		refresh:   ratelimiter.New(refreshFloor),
		logger:    logger,
	}
}

// Status returns the subdomain -> state mapping, refreshing the cache from
// the status page when it is older than the TTL or empty. On refresh
// failure the previous cache is returned unchanged.
func (t *Tracker) Status(ctx context.Context) map[string]string {
	t.mu.RLock()
	fresh := time.Since(t.lastRefresh) < t.ttl && len(t.cache) > 0
	cached := copyStatus(t.cache)
	t.mu.RUnlock()

	if fresh {
		return cached
	}

	// One refresh at a time; concurrent callers ride on the stale copy.
	if allowed, _ := t.refresh.Allow(); !allowed {
		return cached
	}

	page, err := t.fetcher.FetchPage(ctx, t.statusURL)
	if err != nil {
		t.logger.Warn("failed to fetch server status page", zap.Error(err))
		return cached
	}

	parsed := t.extractor.ServerStatus(page)
	if len(parsed) == 0 {
		t.logger.Warn("server status page yielded no entries")
		return cached
	}

	t.mu.Lock()
	t.cache = parsed
	t.lastRefresh = time.Now()
	t.mu.Unlock()

	t.logger.Debug("refreshed server status cache", zap.Int("subdomains", len(parsed)))
	return copyStatus(parsed)
}

// IsOffline reports whether the subdomain serving assetURL has a cached
// state other than operational. Unknown subdomains count as serving.
func (t *Tracker) IsOffline(ctx context.Context, assetURL string) bool {
	sub := domain.Subdomain(assetURL)
	if sub == "" {
		return false
	}

	state, ok := t.Status(ctx)[sub]
	return ok && state != stateOperational
}

// MarkOffline forces the subdomain's entry to non-operational, bypassing
// the TTL, and returns the subdomain name for logging.
func (t *Tracker) MarkOffline(assetURL string) string {
	sub := domain.Subdomain(assetURL)
	if sub == "" {
		return ""
	}

	t.mu.Lock()
	if t.cache == nil {
		t.cache = make(map[string]string)
	}
	t.cache[sub] = stateForcedOffline
	t.mu.Unlock()

	return sub
}

func copyStatus(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
