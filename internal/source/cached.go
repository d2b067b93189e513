package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rshade/adminui/internal/cache"
	"github.com/rshade/adminui/internal/members"
)

// DocumentCache is the subset of cache.FileStore used by CachedFetcher.
type DocumentCache interface {
	Get(key string) (*cache.Entry, error)
	Set(key, source string, data json.RawMessage) error
}

// CachedFetcher serves a source's document from the cache while it is fresh
// and refetches it otherwise. Cache failures never fail the fetch.
type CachedFetcher struct {
	next   RawFetcher
	store  DocumentCache
	logger zerolog.Logger
}

// NewCachedFetcher wraps next with store.
func NewCachedFetcher(next RawFetcher, store DocumentCache, logger zerolog.Logger) *CachedFetcher {
	return &CachedFetcher{next: next, store: store, logger: logger}
}

// Source returns the wrapped source.
func (c *CachedFetcher) Source() string { return c.next.Source() }

// Fetch decodes the cached or freshly fetched document.
func (c *CachedFetcher) Fetch(ctx context.Context) ([]members.Record, error) {
	data, err := c.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// FetchRaw returns the cached document or fetches and caches it.
func (c *CachedFetcher) FetchRaw(ctx context.Context) ([]byte, error) {
	src := c.next.Source()
	key := cache.KeyFor(src)

	entry, err := c.store.Get(key)
	switch {
	case err == nil:
		c.logger.Debug().Ctx(ctx).Str("source", src).Dur("age", entry.Age()).Msg("cache hit")
		return entry.Data, nil
	case errors.Is(err, cache.ErrCacheNotFound), errors.Is(err, cache.ErrCacheExpired):
		c.logger.Debug().Ctx(ctx).Str("source", src).Err(err).Msg("cache miss")
	default:
		c.logger.Warn().Ctx(ctx).Str("source", src).Err(err).Msg("cache read failed")
	}

	data, err := c.next.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}

	// Only cache documents that decode, so a bad response is not replayed.
	if _, decodeErr := Decode(bytes.NewReader(data)); decodeErr != nil {
		return nil, decodeErr
	}
	if setErr := c.store.Set(key, src, data); setErr != nil {
		c.logger.Warn().Ctx(ctx).Str("source", src).Err(setErr).Msg("cache write failed")
	}
	return data, nil
}
