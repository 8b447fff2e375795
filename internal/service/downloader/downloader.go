package downloader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
)

// DefaultMaxAttempts bounds the retry loop per file.
const DefaultMaxAttempts = 5

// Downloader streams assets to disk in chunks with bounded retries. A
// transfer lands in a temporary sibling file and is renamed onto the
// destination only when the byte count checks out.
type Downloader struct {
	streams     port.StreamOpener
	health      port.HealthTracker
	fs          port.FileSystem
	logger      *zap.Logger
	maxAttempts int

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// Ensure Downloader implements port.FileDownloader
var _ port.FileDownloader = (*Downloader)(nil)

// New creates a new Downloader. maxAttempts <= 0 falls back to
// DefaultMaxAttempts.
func New(streams port.StreamOpener, health port.HealthTracker, fs port.FileSystem, maxAttempts int, logger *zap.Logger) *Downloader {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Downloader{
		streams:     streams,
		health:      health,
		fs:          fs,
		logger:      logger,
		maxAttempts: maxAttempts,
		sleep:       time.Sleep,
	}
}

// Download fetches assetURL into destPath, retrying per the failure
// classifier. The caller sees destPath only after a complete transfer.
func (d *Downloader) Download(ctx context.Context, assetURL, destPath string) error {
	if err := d.fs.EnsureDir(filepath.Dir(destPath)); err != nil {
		return fmt.Errorf("preparing destination: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < d.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.health.IsOffline(ctx, assetURL) {
			lastErr = domain.ErrServerOffline
			if attempt == d.maxAttempts-1 {
				break
			}
			continue
		}

		err := d.transfer(ctx, assetURL, destPath)
		if err == nil {
			return nil
		}
		lastErr = err

		// A short body means the connection closed mid-stream after a
		// 200; the partial temp file stays behind for inspection and
		// retrying the same truncated edge rarely helps.
		if err == domain.ErrIncompleteTransfer {
			return err
		}

		dec := ClassifyFailure(err, attempt)
		switch dec.Action {
		case ActionMarkOffline:
			sub := d.health.MarkOffline(assetURL)
			d.logger.Warn("server down, marking subdomain offline",
				zap.String("subdomain", sub),
				zap.String("url", assetURL))
			return fmt.Errorf("%w: %s", domain.ErrServerOffline, sub)
		case ActionAbort:
			d.logger.Warn("aborting download",
				zap.String("url", assetURL),
				zap.Error(err))
			return err
		case ActionRetry:
			if attempt == d.maxAttempts-1 {
				break
			}
			d.logger.Warn("retrying download",
				zap.String("url", assetURL),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", dec.Delay),
				zap.Error(err))
			d.sleep(dec.Delay)
		}
	}

	return fmt.Errorf("download failed after %d attempts: %w", d.maxAttempts, lastErr)
}

// transfer performs a single streaming attempt into the temp sibling of
// dest and promotes it on success.
func (d *Downloader) transfer(ctx context.Context, assetURL, dest string) error {
	body, size, err := d.streams.OpenStream(ctx, assetURL)
	if err != nil {
		return err
	}
	defer body.Close()

	out, tempPath, err := d.fs.CreateTemp(dest)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	buf := make([]byte, ChunkSize(size))
	written, copyErr := io.CopyBuffer(out, body, buf)
	closeErr := out.Close()

	if copyErr != nil {
		d.fs.RemoveTemp(dest)
		return fmt.Errorf("streaming %s: %w", assetURL, copyErr)
	}
	if closeErr != nil {
		d.fs.RemoveTemp(dest)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if size >= 0 && written != size {
		d.logger.Error("incomplete transfer",
			zap.String("url", assetURL),
			zap.Int64("expected", size),
			zap.Int64("written", written),
			zap.String("temp", tempPath))
		return domain.ErrIncompleteTransfer
	}

	if err := d.fs.Promote(dest); err != nil {
		return fmt.Errorf("promoting %s: %w", tempPath, err)
	}

	d.logger.Info("downloaded",
		zap.String("url", assetURL),
		zap.String("dest", dest),
		zap.Int64("bytes", written))
	return nil
}
