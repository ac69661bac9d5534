package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

// LoadPage reads a JSON page fixture. Testing helpers fail the test on error
// to keep contract tests concise.
func LoadPage(t *testing.T, path string) blocks.PageData {
	t.Helper()

	page, err := LoadPageFromPath(path)
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	return page
}

// LoadPageFromPath returns a PageData without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadPageFromPath(path string) (blocks.PageData, error) {
	if path == "" {
		return blocks.PageData{}, errors.New("testsupport: page path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return blocks.PageData{}, fmt.Errorf("testsupport: read page: %w", err)
	}
	var page blocks.PageData
	if err := json.Unmarshal(data, &page); err != nil {
		return blocks.PageData{}, fmt.Errorf("testsupport: unmarshal page: %w", err)
	}
	return page, nil
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustParseHTML parses a rendered fragment so tests can assert on structure
// rather than exact whitespace.
func MustParseHTML(t *testing.T, markup []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}
