package port

import (
	"context"
	"io"
	"net/url"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
)

// PageFetcher retrieves an HTML page with browsing headers.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
}

// KeyClient calls the decryption-key endpoint for an item slug.
type KeyClient interface {
	FetchKey(ctx context.Context, slug string) (*domain.KeyResponse, error)
}

// StreamOpener opens a streaming GET against a resolved asset URL using
// download headers. The returned size is the content-length, or -1 when
// the server did not report one. A non-200 response is returned as a
// *domain.StatusError with the body already closed.
type StreamOpener interface {
	OpenStream(ctx context.Context, assetURL string) (io.ReadCloser, int64, error)
}

// PageExtractor pulls the features the pipeline needs out of fetched
// markup. Implementations own all selector knowledge so the services can
// be tested against fixed inputs.
type PageExtractor interface {
	// ItemFilename returns the displayed filename of an item page, or ""
	// when the page does not carry one.
	ItemFilename(page []byte) string

	// AlbumName returns the album title, HTML-unescaped, or "".
	AlbumName(page []byte) string

	// AlbumItems returns the item page URLs linked from an album page,
	// resolved against base, in document order.
	AlbumItems(page []byte, base *url.URL) []string

	// ServerStatus parses the status page into subdomain -> state text.
	ServerStatus(page []byte) map[string]string
}
