package pagesource

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source names a page document: a file on disk, an entry of the loader's
// fs.FS, or an http(s) URL.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind selects how a loader reads a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }
func (s source) String() string { return string(s.kind) + ":" + s.location }

// SourceFromFile points at a page document on disk.
func SourceFromFile(filename string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(filename)}
}

// SourceFromFS points at an entry of the fs.FS given to the loader. Names use
// forward slashes as io/fs requires.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: strings.TrimPrefix(path.Clean("/"+name), "/")}
}

// ParseURL validates raw as an absolute http(s) URL.
func ParseURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("pagesource: empty URL")
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("pagesource: invalid URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("pagesource: unsupported URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("pagesource: URL %q has no host", raw)
	}
	return source{kind: SourceKindURL, location: parsed.String()}, nil
}

// SourceFromURL is ParseURL for hard-coded locations; it panics on invalid
// input.
func SourceFromURL(raw string) Source {
	src, err := ParseURL(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// Parse interprets a command-line page argument: http(s) URLs become URL
// sources and anything else a file path.
func Parse(raw string) (Source, error) {
	location := strings.TrimSpace(raw)
	if location == "" {
		return nil, fmt.Errorf("pagesource: page location is required")
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return ParseURL(location)
	}
	return SourceFromFile(location), nil
}
