package i18n

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Fetcher loads the translation document stored at location.
// Each call is a single attempt: no retries, no caching.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*Document, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, location string) (*Document, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, location string) (*Document, error) {
	return f(ctx, location)
}

// FSFetcher reads documents from a file system, e.g. an embedded locales directory.
// Locations are slash-separated paths inside the file system.
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher creates a Fetcher backed by fsys.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

// Fetch reads and parses the document at location.
func (f *FSFetcher) Fetch(_ context.Context, location string) (*Document, error) {
	name := strings.TrimPrefix(path.Clean("/"+location), "/")
	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return DecodeDocument(name, data)
}

// maxDocumentSize caps the body read by HTTPFetcher.
const maxDocumentSize = 10 << 20

// HTTPFetcher downloads documents over HTTP(S).
// Relative locations are resolved against the base URL when one is set.
type HTTPFetcher struct {
	client *http.Client
	base   *url.URL
}

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithBaseURL sets the URL relative locations are resolved against.
func WithBaseURL(base *url.URL) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.base = base
	}
}

// NewHTTPFetcher creates an HTTPFetcher. The default client is http.DefaultClient.
func NewHTTPFetcher(opts ...HTTPFetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{client: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads and parses the document at location.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (*Document, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if f.base != nil {
		u = f.base.ResolveReference(u)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetchFailed, u.Redacted(), resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return DecodeDocument(u.Path, data)
}
