package port

import (
	"context"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
)

// HealthTracker is the process-wide edge subdomain status cache.
type HealthTracker interface {
	// IsOffline reports whether the subdomain serving assetURL has a
	// cached state other than operational. Advisory only; never fails.
	IsOffline(ctx context.Context, assetURL string) bool

	// MarkOffline forces the subdomain's entry to non-operational,
	// bypassing the cache TTL, and returns the subdomain name.
	MarkOffline(assetURL string) string
}

// AssetResolver turns an item page URL into a download URL and filename.
type AssetResolver interface {
	Resolve(ctx context.Context, itemURL string) (*domain.AssetDescriptor, error)
}

// AlbumExpander lists the item pages of an album. Fetch or parse failures
// yield an empty album, never an error.
type AlbumExpander interface {
	Expand(ctx context.Context, albumURL string) *domain.Album
}

// FileDownloader streams one resolved asset to disk with retries. The
// destination file only becomes visible on a complete transfer.
type FileDownloader interface {
	Download(ctx context.Context, assetURL, destPath string) error
}

// HistoryRepository persists per-item download outcomes.
type HistoryRepository interface {
	Record(rec *domain.DownloadRecord) error
	RecentRecords(limit int) ([]*domain.DownloadRecord, error)
}
