package album

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
)

// Expander lists the item pages of an album.
type Expander struct {
	pages     port.PageFetcher
	extractor port.PageExtractor
	logger    *zap.Logger
}

// Ensure Expander implements port.AlbumExpander
var _ port.AlbumExpander = (*Expander)(nil)

// New creates a new Expander
func New(pages port.PageFetcher, extractor port.PageExtractor, logger *zap.Logger) *Expander {
	return &Expander{
		pages:     pages,
		extractor: extractor,
		logger:    logger,
	}
}

// Expand fetches the album page and returns its item page URLs in
// document order. Fetch and parse failures are logged and yield an empty
// album; the orchestrator decides what an empty album means.
func (e *Expander) Expand(ctx context.Context, albumURL string) *domain.Album {
	base, err := url.Parse(albumURL)
	if err != nil {
		e.logger.Error("invalid album url", zap.String("url", albumURL), zap.Error(err))
		return &domain.Album{}
	}

	page, err := e.pages.FetchPage(ctx, albumURL)
	if err != nil {
		e.logger.Error("failed to fetch album page",
			zap.String("url", albumURL),
			zap.Error(err))
		return &domain.Album{}
	}

	alb := &domain.Album{
		Name:  e.extractor.AlbumName(page),
		Items: e.extractor.AlbumItems(page, base),
	}

	e.logger.Info("expanded album",
		zap.String("url", albumURL),
		zap.String("name", alb.Name),
		zap.Int("items", len(alb.Items)))

	return alb
}
