package pagesource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a page document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a raw page document and where it came from.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument wraps raw bytes loaded from src. The format is taken from the
// location extension and sniffed from the content otherwise.
func NewDocument(src Source, raw []byte) (Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, fmt.Errorf("pagesource: empty document")
	}
	location := ""
	if src != nil {
		location = src.Location()
	}
	return Document{source: src, raw: bytes.Clone(raw), format: DetectFormat(location, raw)}, nil
}

// NewDocumentAs is NewDocument with a format already known, e.g. from an
// HTTP Content-Type header.
func NewDocumentAs(src Source, raw []byte, format Format) (Document, error) {
	doc, err := NewDocument(src, raw)
	if err != nil {
		return Document{}, err
	}
	if format == FormatJSON || format == FormatYAML {
		doc.format = format
	}
	return doc, nil
}

// Source returns the document origin.
func (d Document) Source() Source { return d.source }

// Raw returns a copy of the document bytes.
func (d Document) Raw() []byte { return bytes.Clone(d.raw) }

// Format returns the detected serialization.
func (d Document) Format() Format { return d.format }

// Page decodes the document into a PageData value. content_blocks may be a
// structured list or a JSON-encoded string in either format.
func (d Document) Page() (blocks.PageData, error) {
	return Decode(d.raw, d.format)
}

// DetectFormat picks a format from the location extension, falling back to
// JSON when the content starts with an object and YAML otherwise.
func DetectFormat(location string, raw []byte) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// FormatFromMediaType maps a Content-Type value to a Format. Generic types
// such as text/plain report false.
func FormatFromMediaType(contentType string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return FormatJSON, true
	case strings.Contains(mediaType, "yaml"):
		return FormatYAML, true
	}
	return "", false
}

// Decode parses data as a page document in the given format.
func Decode(data []byte, format Format) (blocks.PageData, error) {
	var page blocks.PageData
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &page); err != nil {
			return blocks.PageData{}, fmt.Errorf("pagesource: decode json page: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &page); err != nil {
			return blocks.PageData{}, fmt.Errorf("pagesource: decode yaml page: %w", err)
		}
	default:
		return blocks.PageData{}, fmt.Errorf("pagesource: unsupported format %q", format)
	}
	return page, nil
}

// Encode serializes page in the given format.
func Encode(page blocks.PageData, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("pagesource: encode json page: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(page)
		if err != nil {
			return nil, fmt.Errorf("pagesource: encode yaml page: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("pagesource: unsupported format %q", format)
	}
}
