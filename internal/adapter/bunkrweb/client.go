package bunkrweb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
)

// Default endpoints for the bunkr host family.
const (
	DefaultAPIURL    = "https://bunkr.cr/api/vs"
	DefaultStatusURL = "https://status.bunkr.ru/"

	downloadReferer = "https://get.bunkrr.su/"
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
)

// browseHeaders are sent on page and API requests; download requests add
// the get-host referer on top, which the edge nodes require.
var browseHeaders = map[string]string{
	"User-Agent":                userAgent,
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"DNT":                       "1",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// ClientConfig tunes the HTTP client
type ClientConfig struct {
	APIURL        string
	PageTimeout   time.Duration
	StreamTimeout time.Duration
}

// Client talks to the bunkr host: item/album/status pages, the
// decryption-key endpoint, and asset streams.
type Client struct {
	apiURL     string
	pageClient *http.Client
	// streamClient bounds time-to-first-byte, not the whole body read; a
	// large asset legitimately streams for longer than any fixed timeout.
	streamClient *http.Client
}

var (
	_ port.PageFetcher  = (*Client)(nil)
	_ port.KeyClient    = (*Client)(nil)
	_ port.StreamOpener = (*Client)(nil)
)

// NewClient creates a new Client
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.PageTimeout == 0 {
		cfg.PageTimeout = 15 * time.Second
	}
	if cfg.StreamTimeout == 0 {
		cfg.StreamTimeout = 30 * time.Second
	}

	return &Client{
		apiURL: cfg.APIURL,
		pageClient: &http.Client{
			Timeout: cfg.PageTimeout,
		},
		streamClient: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: cfg.StreamTimeout,
			},
		},
	}
}

// FetchPage retrieves a page with browsing headers.
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setHeaders(req, false)

	resp, err := c.pageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.StatusError{Code: resp.StatusCode, URL: pageURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read page body: %w", err)
	}
	return body, nil
}

// FetchKey posts an item slug to the decryption-key endpoint and returns
// the timestamped ciphertext payload.
func (c *Client) FetchKey(ctx context.Context, slug string) (*domain.KeyResponse, error) {
	payload, err := json.Marshal(map[string]string{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("failed to encode key request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setHeaders(req, false)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.pageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("key request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.StatusError{Code: resp.StatusCode, URL: c.apiURL}
	}

	var key domain.KeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&key); err != nil {
		return nil, fmt.Errorf("failed to decode key response: %w", err)
	}
	if key.Timestamp == 0 || key.URL == "" {
		return nil, domain.ErrMissingKeyFields
	}
	return &key, nil
}

// OpenStream issues a streaming GET for a resolved asset URL. The caller
// owns the returned body. Size is -1 when content-length is absent.
func (c *Client) OpenStream(ctx context.Context, assetURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	setHeaders(req, true)

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("stream request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, &domain.StatusError{Code: resp.StatusCode, URL: assetURL}
	}

	return resp.Body, resp.ContentLength, nil
}

func setHeaders(req *http.Request, download bool) {
	for k, v := range browseHeaders {
		req.Header.Set(k, v)
	}
	if download {
		req.Header.Set("Referer", downloadReferer)
	}
}
