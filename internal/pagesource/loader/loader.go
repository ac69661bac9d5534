package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-pageblocks/pkg/pagesource"
)

const acceptHeader = "application/json, application/yaml;q=0.9, text/yaml;q=0.9, */*;q=0.1"

// Loader reads page documents from disk, from an fs.FS, or over HTTP. Every
// read is capped at the configured document size.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	limit   int64
}

var _ pagesource.Loader = (*Loader)(nil)

// New builds a Loader from resolved options.
func New(options pagesource.LoaderOptions) *Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
		limit:   options.MaxDocumentSize,
	}
	if l.limit <= 0 {
		l.limit = pagesource.DefaultMaxDocumentSize
	}
	switch {
	case options.HTTPClient != nil:
		l.client = options.HTTPClient
	case options.AllowHTTPFallback:
		l.client = &http.Client{}
	}
	return l
}

// Load reads the document src names.
func (l *Loader) Load(ctx context.Context, src pagesource.Source) (pagesource.Document, error) {
	if src == nil {
		return pagesource.Document{}, errors.New("page loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pagesource.Document{}, err
	}

	switch src.Kind() {
	case pagesource.SourceKindFile:
		data, err := l.readFile(src.Location())
		if err != nil {
			return pagesource.Document{}, err
		}
		return pagesource.NewDocument(src, data)
	case pagesource.SourceKindFS:
		data, err := l.readFS(src.Location())
		if err != nil {
			return pagesource.Document{}, err
		}
		return pagesource.NewDocument(src, data)
	case pagesource.SourceKindURL:
		data, format, err := l.fetch(ctx, src.Location())
		if err != nil {
			return pagesource.Document{}, err
		}
		return pagesource.NewDocumentAs(src, data, format)
	default:
		return pagesource.Document{}, fmt.Errorf("page loader: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) readFile(name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("page loader: file path is required")
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("page loader: %w", err)
	}
	defer f.Close()
	return l.readAll(f, name)
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.files == nil {
		return nil, fmt.Errorf("page loader: no file system configured for %q", name)
	}
	f, err := l.files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("page loader: %w", err)
	}
	defer f.Close()
	return l.readAll(f, name)
}

// fetch GETs url and returns the body with the format announced by the
// response Content-Type, if any.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, pagesource.Format, error) {
	if l.client == nil {
		return nil, "", pagesource.ErrHTTPDisabled
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("page loader: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("page loader: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("page loader: GET %s: %s", url, resp.Status)
	}
	data, err := l.readAll(resp.Body, url)
	if err != nil {
		return nil, "", err
	}
	format, _ := pagesource.FormatFromMediaType(resp.Header.Get("Content-Type"))
	return data, format, nil
}

func (l *Loader) readAll(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, fmt.Errorf("page loader: read %s: %w", name, err)
	}
	if int64(len(data)) > l.limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", pagesource.ErrDocumentTooLarge, name, l.limit)
	}
	return data, nil
}
