package pagesource

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

const (
	// DefaultRequestTimeout caps remote fetches when no timeout is given.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultMaxDocumentSize bounds every page document read by a loader.
	DefaultMaxDocumentSize int64 = 8 << 20
)

var (
	// ErrHTTPDisabled is returned for URL sources when remote loading is off.
	ErrHTTPDisabled = errors.New("pagesource: http loading is disabled")
	// ErrDocumentTooLarge is returned when a document exceeds the size limit.
	ErrDocumentTooLarge = errors.New("pagesource: document too large")
)

// Loader reads page documents.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures where a Loader may read from. Loading is offline
// by default: URL sources need an HTTPClient or AllowHTTPFallback.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	MaxDocumentSize   int64
}

// HTTPEnabled reports whether URL sources are accepted.
func (o LoaderOptions) HTTPEnabled() bool {
	return o.HTTPClient != nil || o.AllowHTTPFallback
}

type LoaderOption func(*LoaderOptions)

// WithFileSystem sets the fs.FS that SourceFromFS names resolve against.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources through a default client. A zero
// timeout keeps DefaultRequestTimeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		if timeout > 0 {
			opts.RequestTimeout = timeout
		}
	}
}

// WithMaxDocumentSize overrides DefaultMaxDocumentSize.
func WithMaxDocumentSize(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		if limit > 0 {
			opts.MaxDocumentSize = limit
		}
	}
}

func NewLoaderOptions(opts ...LoaderOption) LoaderOptions {
	options := LoaderOptions{
		RequestTimeout:  DefaultRequestTimeout,
		MaxDocumentSize: DefaultMaxDocumentSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}
