package source

import (
	"context"
)

// Build returns one fetcher over sources. When store is non-nil each source is
// cached individually; several sources are fetched concurrently.
func Build(ctx context.Context, sources []string, opts Options, store DocumentCache) (Fetcher, error) {
	if len(sources) == 0 {
		return nil, ErrEmptySource
	}

	fetchers := make([]RawFetcher, 0, len(sources))
	for _, raw := range sources {
		f, err := New(ctx, raw, opts)
		if err != nil {
			return nil, err
		}
		if store != nil {
			f = NewCachedFetcher(f, store, opts.Logger)
		}
		fetchers = append(fetchers, f)
	}

	if len(fetchers) == 1 {
		return fetchers[0], nil
	}
	return NewMultiFetcher(fetchers...), nil
}
