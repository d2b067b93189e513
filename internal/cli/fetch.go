package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rshade/adminui/internal/cache"
	"github.com/rshade/adminui/internal/config"
	"github.com/rshade/adminui/internal/logging"
	"github.com/rshade/adminui/internal/members"
	"github.com/rshade/adminui/internal/source"
)

// ErrLoadFailed wraps a failed fetch when --strict is set.
var ErrLoadFailed = errors.New("loading members failed")

// newCacheStore opens the document cache, or returns nil when caching is off.
func newCacheStore(cfg *config.Config) (*cache.FileStore, error) {
	if !cfg.Cache.Enabled || cfg.Cache.TTLSeconds <= 0 {
		return nil, nil //nolint:nilnil // A nil store means caching is disabled.
	}
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	return cache.NewFileStore(cfg.Cache.Directory, true, ttl)
}

// buildFetcher turns the configured sources into one fetcher.
func buildFetcher(ctx context.Context, cfg *config.Config) (source.Fetcher, error) {
	opts := source.Options{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		S3: source.S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		},
		Logger: logging.ComponentLogger(*logging.FromContext(ctx), "source"),
	}

	store, err := newCacheStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	var docs source.DocumentCache
	if store != nil {
		docs = store
	}
	return source.Build(ctx, cfg.Sources, opts, docs)
}

// loadRecords runs the single fetch. Without --strict a failure is logged and
// yields an empty list; with it the failure becomes an ExitError.
func loadRecords(ctx context.Context, cfg *config.Config, f source.Fetcher) ([]members.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if !cfg.Strict {
		return source.LoadOrEmpty(ctx, f, logging.ComponentLogger(*logging.FromContext(ctx), "source")), nil
	}

	records, err := f.Fetch(ctx)
	if err != nil {
		return nil, &ExitError{Code: ExitCodeLoadFailure, Err: fmt.Errorf("%w: %w", ErrLoadFailed, err)}
	}
	return records, nil
}
