package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rshade/adminui/internal/members"
)

// HTTPDoer is the subset of *http.Client used by HTTPFetcher.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher GETs a JSON document from a fixed URL.
type HTTPFetcher struct {
	url    string
	client HTTPDoer
}

// NewHTTPFetcher returns a fetcher for url. A nil client uses http.DefaultClient;
// the timeout comes from the caller's context.
func NewHTTPFetcher(url string, client HTTPDoer) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{url: url, client: client}
}

// Source returns the URL.
func (f *HTTPFetcher) Source() string { return f.url }

// Fetch retrieves and decodes the document.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]members.Record, error) {
	body, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return Decode(body)
}

// FetchRaw retrieves the undecoded document.
func (f *HTTPFetcher) FetchRaw(ctx context.Context) ([]byte, error) {
	body, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.url, err)
	}
	return data, nil
}

func (f *HTTPFetcher) open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.url, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %d", f.url, resp.StatusCode)
	}
	return resp.Body, nil
}
