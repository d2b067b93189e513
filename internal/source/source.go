// Package source fetches the member document the admin table is loaded from.
//
// A source string selects the fetcher:
//   - http:// and https:// URLs use a single GET (HTTPFetcher)
//   - s3://bucket/key and arn:aws:s3:::bucket/key read one object (S3Fetcher)
//   - file:// URLs and plain paths read a local file (FileFetcher)
//
// Every fetcher returns the whole document at once; there is no paging or
// streaming on the source side.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/adminui/internal/members"
)

// maxDocumentBytes bounds how much of a document is read.
const maxDocumentBytes = 64 << 20

// Source errors.
var (
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
	ErrEmptySource       = errors.New("source cannot be empty")
)

// Fetcher loads the complete member list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]members.Record, error)
}

// RawFetcher is implemented by fetchers that can return the undecoded
// document, which lets CachedFetcher store exactly what was fetched.
type RawFetcher interface {
	Fetcher
	FetchRaw(ctx context.Context) ([]byte, error)
	Source() string
}

// Options carries what the fetchers need beyond the source string.
type Options struct {
	HTTPClient HTTPDoer
	S3         S3Options
	Logger     zerolog.Logger
}

// New returns the fetcher for raw.
func New(ctx context.Context, raw string, opts Options) (RawFetcher, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptySource
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return NewFileFetcher(raw), nil
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPFetcher(raw, opts.HTTPClient), nil
	case "s3":
		return NewS3Fetcher(ctx, u, opts.S3)
	case "arn":
		return NewS3FetcherFromARN(ctx, raw, opts.S3)
	case "file":
		return NewFileFetcher(filePath(u)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// filePath returns the path of a file:// URL. A relative URL such as
// file://members.json parses with the file name as its host, so the host is
// kept unless it is empty or localhost.
func filePath(u *url.URL) string {
	if u.Host == "" || strings.EqualFold(u.Host, "localhost") {
		return u.Path
	}
	return u.Host + u.Path
}

// Decode parses a JSON array of member objects. Every object must carry an
// id; no other validation is performed.
func Decode(r io.Reader) ([]members.Record, error) {
	var records []members.Record
	dec := json.NewDecoder(io.LimitReader(r, maxDocumentBytes))
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding members: %w", err)
	}
	if records == nil {
		records = []members.Record{}
	}
	return records, nil
}

// LoadOrEmpty fetches with f and, on failure, logs the error and returns an
// empty list. This is the table's load contract: a failed fetch shows an
// empty table rather than an error screen, and nothing is retried.
func LoadOrEmpty(ctx context.Context, f Fetcher, logger zerolog.Logger) []members.Record {
	records, err := f.Fetch(ctx)
	if err != nil {
		logger.Warn().Ctx(ctx).Err(err).Msg("member load failed, showing empty list")
		return []members.Record{}
	}
	logger.Info().Ctx(ctx).Int("records", len(records)).Msg("members loaded")
	return records
}
