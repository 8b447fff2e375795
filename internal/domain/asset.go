package domain

import "time"

// AssetDescriptor is the result of resolving an item page: the direct,
// time-bucketed download URL and the merged human filename. The cipher key
// behind the URL rotates hourly, so descriptors are never cached.
type AssetDescriptor struct {
	URL      string
	Filename string
}

// KeyResponse is the payload returned by the decryption-key endpoint.
// URL holds the base64-encoded ciphertext of the real asset URL.
type KeyResponse struct {
	Timestamp int64  `json:"timestamp"`
	URL       string `json:"url"`
}

// Album is an expanded album page: its display name and the item page
// URLs in document order.
type Album struct {
	Name  string
	Items []string
}

// DownloadRecord is one row of persisted download history.
type DownloadRecord struct {
	ID        int64
	BatchID   string
	PageURL   string
	Filename  string
	Status    string
	Error     string
	CreatedAt time.Time
}

// History record statuses.
const (
	StatusDownloaded = "downloaded"
	StatusSkipped    = "skipped"
	StatusFailed     = "failed"
)
