package source

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/adminui/internal/members"
)

// FileFetcher reads a member document from the local filesystem.
type FileFetcher struct {
	path string
}

// NewFileFetcher returns a fetcher for path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Source returns the file path.
func (f *FileFetcher) Source() string { return f.path }

// Fetch reads and decodes the file.
func (f *FileFetcher) Fetch(ctx context.Context) ([]members.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer file.Close()
	return Decode(file)
}

// FetchRaw reads the file.
func (f *FileFetcher) FetchRaw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return data, nil
}
