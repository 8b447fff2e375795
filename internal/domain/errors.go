package domain

import (
	"errors"
	"fmt"
)

// Validation errors. These are the only errors the orchestrator returns
// directly; they fire before any network I/O.
var (
	ErrUnsupportedURL = errors.New("not a bunkr url")
	ErrUnknownKind    = errors.New("unsupported url kind")
)

// Batch and per-item errors, always contained in results.
var (
	ErrNoAlbumItems       = errors.New("no items found in album")
	ErrResolveFailed      = errors.New("could not resolve download info")
	ErrMissingKeyFields   = errors.New("missing required encryption fields")
	ErrServerOffline      = errors.New("subdomain reported offline")
	ErrIncompleteTransfer = errors.New("incomplete transfer")
)

// StatusError is a non-success HTTP status observed while talking to the
// host. The downloader's retry classifier switches on Code.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// StatusCode extracts the HTTP status from an error chain, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
