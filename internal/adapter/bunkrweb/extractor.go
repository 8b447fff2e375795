package bunkrweb

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/vertextoedge/bunkr-fetch/internal/port"
)

// Markup selectors for the bunkr page layout. The site styles with utility
// classes, so features are located by a stable class fragment rather than
// the full class list.
const (
	itemFilenameSelector = `h1[class*="truncate"]`
	albumTitleSelector   = `div[class*="text-subs"] h1`
	albumItemSelector    = `a[class*="after:absolute"][href]`
	statusRowSelector    = `div[class*="border-soft"]`
)

// Extractor pulls pipeline features out of bunkr markup using goquery.
type Extractor struct{}

var _ port.PageExtractor = (*Extractor)(nil)

// NewExtractor creates a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ItemFilename returns the displayed filename of an item page, or "".
// The host serves UTF-8 names mis-encoded as Latin-1; the fixup is only
// applied when it yields valid UTF-8.
func (e *Extractor) ItemFilename(page []byte) string {
	doc, err := parse(page)
	if err != nil {
		return ""
	}

	name := strings.TrimSpace(doc.Find(itemFilenameSelector).First().Text())
	if name == "" {
		return ""
	}
	return fixLatin1(name)
}

// AlbumName returns the album title, or "".
func (e *Extractor) AlbumName(page []byte) string {
	doc, err := parse(page)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find(albumTitleSelector).First().Text())
}

// AlbumItems returns item page URLs in document order, resolving the
// overlay anchors' relative hrefs against base's scheme and host.
func (e *Extractor) AlbumItems(page []byte, base *url.URL) []string {
	doc, err := parse(page)
	if err != nil {
		return nil
	}

	hostPage := base.Scheme + "://" + base.Host

	var items []string
	doc.Find(albumItemSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.HasPrefix(href, "/") {
			return
		}
		items = append(items, hostPage+href)
	})
	return items
}

// ServerStatus parses the status page rows into subdomain -> state text.
func (e *Extractor) ServerStatus(page []byte) map[string]string {
	doc, err := parse(page)
	if err != nil {
		return nil
	}

	status := make(map[string]string)
	doc.Find(statusRowSelector).Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find("p").First().Text())
		state := strings.TrimSpace(row.Find("span").First().Text())
		if name == "" || state == "" {
			return
		}
		status[name] = state
	})
	return status
}

func parse(page []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(page))
}

// fixLatin1 reverses UTF-8 text that was decoded as Latin-1 upstream. If
// the reversal does not produce valid UTF-8 the original text was fine.
func fixLatin1(s string) string {
	raw := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		raw = append(raw, byte(r))
	}
	if !utf8.Valid(raw) {
		return s
	}
	return string(raw)
}
