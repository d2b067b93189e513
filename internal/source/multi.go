package source

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/adminui/internal/members"
)

// MultiFetcher fetches several sources concurrently and concatenates the
// results in source order. Any failure fails the whole fetch.
type MultiFetcher struct {
	fetchers []RawFetcher
}

// NewMultiFetcher returns a fetcher over fetchers.
func NewMultiFetcher(fetchers ...RawFetcher) *MultiFetcher {
	return &MultiFetcher{fetchers: fetchers}
}

// Source lists the underlying sources.
func (m *MultiFetcher) Source() string {
	names := make([]string, len(m.fetchers))
	for i, f := range m.fetchers {
		names[i] = f.Source()
	}
	return strings.Join(names, ",")
}

// Fetch runs every fetcher and concatenates their records.
func (m *MultiFetcher) Fetch(ctx context.Context) ([]members.Record, error) {
	results := make([][]members.Record, len(m.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range m.fetchers {
		g.Go(func() error {
			records, err := f.Fetch(gctx)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]members.Record, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
