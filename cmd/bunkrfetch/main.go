package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/vertextoedge/bunkr-fetch/internal/adapter/bunkrweb"
	"github.com/vertextoedge/bunkr-fetch/internal/adapter/filesystem"
	"github.com/vertextoedge/bunkr-fetch/internal/adapter/sqlite"
	"github.com/vertextoedge/bunkr-fetch/internal/config"
	"github.com/vertextoedge/bunkr-fetch/internal/logger"
	"github.com/vertextoedge/bunkr-fetch/internal/port"
	"github.com/vertextoedge/bunkr-fetch/internal/service/album"
	"github.com/vertextoedge/bunkr-fetch/internal/service/downloader"
	"github.com/vertextoedge/bunkr-fetch/internal/service/fetcher"
	"github.com/vertextoedge/bunkr-fetch/internal/service/health"
	"github.com/vertextoedge/bunkr-fetch/internal/service/resolver"
)

const version = "0.1.0"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	rawURL := flag.String("url", "", "Bunkr album or file URL to download")
	destDir := flag.String("dir", "", "Destination directory (overrides config)")
	concurrent := flag.Bool("concurrent", false, "Download album items concurrently")
	flag.Parse()

	if *rawURL == "" && flag.NArg() > 0 {
		*rawURL = flag.Arg(0)
	}
	if *rawURL == "" {
		fmt.Fprintln(os.Stderr, "Usage: bunkrfetch [-config config.yaml] [-dir downloads] [-concurrent] -url <bunkr url>")
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *destDir != "" {
		cfg.Download.Dir = *destDir
	}
	if *concurrent {
		cfg.Download.Concurrent = true
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zapLogger := logger.GetZapLogger()
	zapLogger.Info("starting bunkrfetch",
		zap.String("version", version),
		zap.String("url", *rawURL),
	)

	// Handle shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize filesystem manager and sweep stale temp artifacts
	fsManager := filesystem.NewManager()
	if err := fsManager.EnsureDir(cfg.Download.Dir); err != nil {
		zapLogger.Fatal("failed to create download dir", zap.Error(err))
	}
	if removed, err := fsManager.CleanStaleTemps(cfg.Download.Dir, cfg.Download.GetTempMaxAge()); err != nil {
		zapLogger.Warn("failed to clean stale temp files", zap.Error(err))
	} else if removed > 0 {
		zapLogger.Info("cleaned stale temp files", zap.Int("removed", removed))
	}

	// Open history database
	var store *sqlite.Store
	if cfg.Database.Path != "" {
		store, err = sqlite.Open(cfg.Database.Path)
		if err != nil {
			zapLogger.Fatal("failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
		}
		defer store.Close()
	}

	// Create web client and page extractor
	webClient := bunkrweb.NewClient(&bunkrweb.ClientConfig{
		APIURL:        cfg.Bunkr.APIURL,
		PageTimeout:   cfg.Bunkr.GetPageTimeout(),
		StreamTimeout: cfg.Bunkr.GetStreamTimeout(),
	})
	extractor := bunkrweb.NewExtractor()

	// Wire services
	healthTracker := health.New(&health.Config{
		StatusURL: cfg.Bunkr.StatusURL,
		CacheTTL:  cfg.Bunkr.GetStatusCacheTTL(),
	}, webClient, extractor, zapLogger)

	assetResolver := resolver.New(webClient, webClient, extractor, zapLogger)
	albumExpander := album.New(webClient, extractor, zapLogger)
	fileDownloader := downloader.New(webClient, healthTracker, fsManager, cfg.Download.MaxAttempts, zapLogger)

	var history port.HistoryRepository
	if store != nil {
		history = store
	}
	engine := fetcher.New(albumExpander, assetResolver, fileDownloader, fsManager, history, zapLogger)

	result, err := engine.DownloadAsset(ctx, *rawURL, fetcher.Options{
		DestDir:         cfg.Download.Dir,
		IgnorePatterns:  cfg.Download.IgnorePatterns,
		IncludePatterns: cfg.Download.IncludePatterns,
		Concurrent:      cfg.Download.Concurrent,
	})
	if err != nil {
		zapLogger.Error("invalid request", zap.Error(err))
		os.Exit(1)
	}

	zapLogger.Info("batch complete",
		zap.String("batch_id", result.BatchID),
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
	)
	if result.Err != nil {
		zapLogger.Error("batch failed", zap.Error(result.Err))
		os.Exit(1)
	}
	if result.Failed > 0 {
		zapLogger.Warn("some files failed",
			zap.String("files", strings.Join(result.FailedFiles, ", ")))
		os.Exit(1)
	}
}
