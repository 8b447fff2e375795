package resolver

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// maxFilenameLen bounds sanitized filenames; truncation preserves the
// extension.
const maxFilenameLen = 120

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// URLBasedFilename returns the last path segment of a resolved asset URL.
func URLBasedFilename(assetURL string) string {
	u, err := url.Parse(assetURL)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

// MergeFilename combines the page's displayed filename with the
// URL-derived one. Identical names pass through; when the URL name
// contains the page name's stem it wins (it usually disambiguates);
// otherwise the two stems are joined with the known extension.
func MergeFilename(pageName, urlName string) string {
	if pageName == urlName {
		return pageName
	}
	if pageName == "" {
		return urlName
	}
	if urlName == "" || urlName == "." || urlName == "/" {
		return pageName
	}

	pageExt := path.Ext(pageName)
	pageStem := strings.TrimSuffix(pageName, pageExt)
	urlStem := strings.TrimSuffix(urlName, path.Ext(urlName))

	if pageStem != "" && strings.Contains(urlStem, pageStem) {
		return urlName
	}

	ext := pageExt
	if ext == "" {
		ext = path.Ext(urlName)
	}
	return pageStem + "-" + urlStem + ext
}

// Sanitize replaces filesystem-illegal characters with underscores and
// truncates to the maximum length, keeping the extension intact.
func Sanitize(filename string) string {
	safe := illegalFilenameChars.ReplaceAllString(filename, "_")

	if len(safe) > maxFilenameLen {
		ext := path.Ext(safe)
		if len(ext) >= maxFilenameLen {
			return safe[:maxFilenameLen]
		}
		safe = safe[:maxFilenameLen-len(ext)] + ext
	}
	return safe
}
