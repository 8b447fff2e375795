package fetcher

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
	"github.com/vertextoedge/bunkr-fetch/internal/service/resolver"
)

// Options tunes one orchestrator call.
type Options struct {
	// DestDir is where finished files land.
	DestDir string

	// IgnorePatterns skips any filename containing one of these
	// substrings. Checked before IncludePatterns.
	IgnorePatterns []string

	// IncludePatterns, when non-empty, keeps only filenames containing at
	// least one of these substrings.
	IncludePatterns []string

	// Concurrent downloads album items in parallel instead of pacing them
	// sequentially.
	Concurrent bool
}

// Fetcher drives the whole pipeline for one URL: classify, expand albums,
// resolve items, download files, and fold everything into one result.
type Fetcher struct {
	expander   port.AlbumExpander
	resolver   port.AssetResolver
	downloader port.FileDownloader
	fs         port.FileSystem
	history    port.HistoryRepository
	logger     *zap.Logger

	// Both swappable for tests.
	sleep          func(time.Duration)
	interItemDelay func() time.Duration
}

// New creates a new Fetcher. history may be nil to disable persistence.
func New(expander port.AlbumExpander, res port.AssetResolver, dl port.FileDownloader, fs port.FileSystem, history port.HistoryRepository, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		expander:       expander,
		resolver:       res,
		downloader:     dl,
		fs:             fs,
		history:        history,
		logger:         logger,
		sleep:          time.Sleep,
		interItemDelay: randomPause,
	}
}

// randomPause spaces sequential album items apart so the host never sees a
// burst of page fetches.
func randomPause() time.Duration {
	return time.Duration((0.5 + rand.Float64()*1.5) * float64(time.Second))
}

// DownloadAsset runs the pipeline for rawURL. The returned error is
// non-nil only for pre-flight validation failures; everything that happens
// after classification is reported inside the result.
func (f *Fetcher) DownloadAsset(ctx context.Context, rawURL string, opts Options) (*domain.AggregateResult, error) {
	if !domain.IsSupportedURL(rawURL) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedURL, rawURL)
	}

	kind := domain.Classify(rawURL)
	if kind == domain.KindUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKind, rawURL)
	}

	result := &domain.AggregateResult{
		BatchID: uuid.NewString(),
		URL:     rawURL,
		Kind:    kind,
	}

	f.logger.Info("starting batch",
		zap.String("batch_id", result.BatchID),
		zap.String("url", rawURL),
		zap.String("kind", string(kind)))

	if kind != domain.KindAlbum {
		f.recordOutcome(result, f.processItem(ctx, rawURL, opts))
		return result, nil
	}

	alb := f.expander.Expand(ctx, rawURL)
	if len(alb.Items) == 0 {
		result.Err = domain.ErrNoAlbumItems
		return result, nil
	}

	if opts.Concurrent {
		f.runConcurrent(ctx, alb.Items, opts, result)
	} else {
		f.runSequential(ctx, alb.Items, opts, result)
	}

	f.logger.Info("batch finished",
		zap.String("batch_id", result.BatchID),
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

func (f *Fetcher) runSequential(ctx context.Context, items []string, opts Options, result *domain.AggregateResult) {
	for i, itemURL := range items {
		if ctx.Err() != nil {
			return
		}
		if i > 0 {
			f.sleep(f.interItemDelay())
		}
		f.recordOutcome(result, f.processItem(ctx, itemURL, opts))
	}
}

func (f *Fetcher) runConcurrent(ctx context.Context, items []string, opts Options, result *domain.AggregateResult) {
	outcomes := make([]domain.DownloadOutcome, len(items))

	var wg sync.WaitGroup
	for i, itemURL := range items {
		wg.Add(1)
		go func(i int, itemURL string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					f.logger.Error("item worker panicked",
						zap.String("url", itemURL),
						zap.Any("panic", r))
					outcomes[i] = domain.DownloadOutcome{
						PageURL: itemURL,
						Err:     fmt.Errorf("worker panic: %v", r),
					}
				}
			}()
			outcomes[i] = f.processItem(ctx, itemURL, opts)
		}(i, itemURL)
	}
	wg.Wait()

	for _, o := range outcomes {
		f.recordOutcome(result, o)
	}
}

// processItem resolves one item page and downloads its asset, applying the
// exists/ignore/include skip rules in that order.
func (f *Fetcher) processItem(ctx context.Context, itemURL string, opts Options) domain.DownloadOutcome {
	desc, err := f.resolver.Resolve(ctx, itemURL)
	if err != nil {
		f.logger.Error("resolve failed",
			zap.String("url", itemURL),
			zap.Error(err))
		return domain.DownloadOutcome{PageURL: itemURL, Err: err}
	}

	filename := resolver.Sanitize(desc.Filename)
	dest := filepath.Join(opts.DestDir, filename)

	if f.fs.Exists(dest) {
		f.logger.Info("already downloaded, skipping",
			zap.String("filename", filename))
		return domain.DownloadOutcome{PageURL: itemURL, Filename: filename, Skipped: true}
	}

	if matchesAny(filename, opts.IgnorePatterns) {
		f.logger.Info("matches ignore pattern, skipping",
			zap.String("filename", filename))
		return domain.DownloadOutcome{PageURL: itemURL, Filename: filename, Skipped: true}
	}

	if len(opts.IncludePatterns) > 0 && !matchesAny(filename, opts.IncludePatterns) {
		f.logger.Info("matches no include pattern, skipping",
			zap.String("filename", filename))
		return domain.DownloadOutcome{PageURL: itemURL, Filename: filename, Skipped: true}
	}

	if err := f.downloader.Download(ctx, desc.URL, dest); err != nil {
		f.logger.Error("download failed",
			zap.String("url", itemURL),
			zap.String("filename", filename),
			zap.Error(err))
		return domain.DownloadOutcome{PageURL: itemURL, Filename: filename, Err: err}
	}

	return domain.DownloadOutcome{PageURL: itemURL, Filename: filename, Success: true}
}

// recordOutcome folds the outcome into the aggregate and persists it.
// History failures are logged, never fatal.
func (f *Fetcher) recordOutcome(result *domain.AggregateResult, o domain.DownloadOutcome) {
	result.Record(o)

	if f.history == nil {
		return
	}

	rec := &domain.DownloadRecord{
		BatchID:  result.BatchID,
		PageURL:  o.PageURL,
		Filename: o.Filename,
		Status:   o.Status(),
	}
	if o.Err != nil {
		rec.Error = o.Err.Error()
	}
	if err := f.history.Record(rec); err != nil {
		f.logger.Warn("failed to persist download record",
			zap.String("page_url", o.PageURL),
			zap.Error(err))
	}
}

func matchesAny(filename string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(filename, p) {
			return true
		}
	}
	return false
}
