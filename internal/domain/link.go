package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind classifies a bunkr link by the resource it points at.
type Kind string

const (
	KindAlbum   Kind = "album"
	KindFile    Kind = "file"
	KindVideo   Kind = "video"
	KindUnknown Kind = "unknown"
)

var (
	hostPattern       = regexp.MustCompile(`bunkr\.\w+`)
	slugPattern       = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	inlineSlugPattern = regexp.MustCompile(`const\s+slug\s*=\s*"([a-zA-Z0-9_-]+)"`)
)

// ResourceRef is a parsed bunkr link. It is built per call and never
// persisted; the identifier feeds the decryption-key API.
type ResourceRef struct {
	URL        string
	Kind       Kind
	Identifier string
}

// ParseRef classifies a link and extracts its identifier in one step.
// pageContent may be empty; it is only consulted for file/video links
// whose last path segment is not a valid slug.
func ParseRef(rawURL, pageContent string) ResourceRef {
	return ResourceRef{
		URL:        rawURL,
		Kind:       Classify(rawURL),
		Identifier: Identify(rawURL, pageContent),
	}
}

// IsSupportedURL reports whether the link belongs to the bunkr host family.
func IsSupportedURL(rawURL string) bool {
	return hostPattern.MatchString(rawURL)
}

// Classify inspects the second-to-last path segment of the link:
// /a/ albums, /f/ files, /v/ videos. Percent-encoding is decoded first
// and trailing slashes do not change the result.
func Classify(rawURL string) Kind {
	decoded := decodeURL(rawURL)
	segments := strings.Split(strings.TrimRight(decoded, "/"), "/")
	if len(segments) < 2 {
		return KindUnknown
	}

	switch segments[len(segments)-2] {
	case "a":
		return KindAlbum
	case "f":
		return KindFile
	case "v":
		return KindVideo
	default:
		return KindUnknown
	}
}

// Identify extracts the resource identifier from a link. For albums it is
// the last path segment. For files and videos the last segment is used only
// when it looks like a slug; otherwise the page content is scanned for the
// inline slug assignment. Always returns a non-empty string.
func Identify(rawURL, pageContent string) string {
	decoded := decodeURL(rawURL)

	if Classify(decoded) == KindAlbum {
		return lastSegment(decoded)
	}
	return mediaSlug(decoded, pageContent)
}

func mediaSlug(decoded, pageContent string) string {
	slug := lastSegment(decoded)
	if slugPattern.MatchString(slug) {
		return slug
	}

	if m := inlineSlugPattern.FindStringSubmatch(pageContent); m != nil {
		return m[1]
	}

	if slug == "" || slug == "unknown" {
		return "unknown"
	}
	return slug
}

func lastSegment(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	seg := trimmed[idx+1:]
	if seg == "" {
		return "unknown"
	}
	return seg
}

func decodeURL(rawURL string) string {
	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		return rawURL
	}
	return decoded
}

// Subdomain returns the capitalized first host label of a link, the name
// the status page uses for the edge node serving it.
func Subdomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	label, _, _ := strings.Cut(u.Hostname(), ".")
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + strings.ToLower(label[1:])
}

// HostPage returns the scheme+host root of a link, used to resolve
// relative album item hrefs.
func HostPage(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// RewriteHost swaps the host of a link, keeping everything else. Used to
// retry item pages against the canonical host when an edge mirror fails.
func RewriteHost(rawURL, host string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Host = host
	return u.String()
}
