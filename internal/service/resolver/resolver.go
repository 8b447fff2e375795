package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
)

// Resolver turns an item page URL into a direct download URL plus a
// human filename. Nothing here is cached: the cipher key behind the
// resolved URL rotates hourly.
type Resolver struct {
	pages     port.PageFetcher
	keys      port.KeyClient
	extractor port.PageExtractor
	logger    *zap.Logger
}

// Ensure Resolver implements port.AssetResolver
var _ port.AssetResolver = (*Resolver)(nil)

// New creates a new Resolver
func New(pages port.PageFetcher, keys port.KeyClient, extractor port.PageExtractor, logger *zap.Logger) *Resolver {
	return &Resolver{
		pages:     pages,
		keys:      keys,
		extractor: extractor,
		logger:    logger,
	}
}

// Resolve fetches the item page, extracts the slug, calls the
// decryption-key endpoint and decrypts the real asset URL. There is no
// retry at this layer; any failure marks the item failed.
func (r *Resolver) Resolve(ctx context.Context, itemURL string) (*domain.AssetDescriptor, error) {
	page, err := r.pages.FetchPage(ctx, itemURL)
	if err != nil {
		return nil, fmt.Errorf("fetch item page: %w", err)
	}

	slug := domain.Identify(itemURL, string(page))

	key, err := r.keys.FetchKey(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetch encryption data for slug %q: %w", slug, err)
	}

	assetURL, err := DecryptURL(key.Timestamp, key.URL)
	if err != nil {
		return nil, fmt.Errorf("decrypt url for slug %q: %w", slug, err)
	}
	if assetURL == "" {
		return nil, fmt.Errorf("%w: empty decrypted url for slug %q", domain.ErrResolveFailed, slug)
	}

	pageName := r.extractor.ItemFilename(page)
	if pageName == "" {
		pageName = "unknown_file"
	}
	filename := MergeFilename(pageName, URLBasedFilename(assetURL))

	r.logger.Debug("resolved asset",
		zap.String("item_url", itemURL),
		zap.String("slug", slug),
		zap.String("filename", filename))

	return &domain.AssetDescriptor{URL: assetURL, Filename: filename}, nil
}
