package blocks_test

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

func TestPageData_LenientTimestamps(t *testing.T) {
	cases := []struct {
		name       string
		published  string
		want       time.Time
		wantAbsent bool
	}{
		{
			name:      "rfc3339",
			published: `"2024-01-15T10:00:00Z"`,
			want:      time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "date only",
			published: `"2024-01-15"`,
			want:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "postgres",
			published: `"2024-01-15 10:00:00+00"`,
			want:      time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "postgres fractional with offset",
			published: `"2024-01-15 12:00:00.123456+02:00"`,
			want:      time.Date(2024, time.January, 15, 10, 0, 0, 123456000, time.UTC),
		},
		{
			name:       "unparseable",
			published:  `"next tuesday"`,
			wantAbsent: true,
		},
		{
			name:       "number",
			published:  `1705312800`,
			wantAbsent: true,
		},
		{
			name:       "null",
			published:  `null`,
			wantAbsent: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := `{"id":"p","title":"T","created_at":"2024-01-15 09:00:00+00","published_at":` + tc.published + `,"content_blocks":[{"id":"a","type":"divider"}]}`
			var page blocks.PageData
			if err := json.Unmarshal([]byte(doc), &page); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(page.Blocks()) != 1 {
				t.Fatalf("blocks lost")
			}
			if page.CreatedAt.IsZero() {
				t.Fatalf("created_at not parsed")
			}
			if tc.wantAbsent {
				if !page.PublishedAt.IsZero() {
					t.Fatalf("expected absent published_at, got %v", page.PublishedAt)
				}
				return
			}
			if !page.PublishedAt.Equal(tc.want) {
				t.Fatalf("published_at: want %v, got %v", tc.want, page.PublishedAt.Time)
			}
		})
	}
}

func TestTimestamp_RoundTrip(t *testing.T) {
	page := blocks.PageData{ID: "p", PublishedAt: blocks.NewTimestamp(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))}

	payload, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again blocks.PageData
	if err := json.Unmarshal(payload, &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !again.PublishedAt.Equal(page.PublishedAt.Time) || !again.CreatedAt.IsZero() {
		t.Fatalf("json round trip: %v / %v", again.PublishedAt, again.CreatedAt)
	}

	out, err := yaml.Marshal(page)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	var fromYAML blocks.PageData
	if err := yaml.Unmarshal(out, &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if !fromYAML.PublishedAt.Equal(page.PublishedAt.Time) || !fromYAML.CreatedAt.IsZero() {
		t.Fatalf("yaml round trip: %v / %v", fromYAML.PublishedAt, fromYAML.CreatedAt)
	}
}

func TestTimestamp_YAMLDateOnly(t *testing.T) {
	var page blocks.PageData
	if err := yaml.Unmarshal([]byte("id: p\npublished_at: 2024-01-15\ncreated_at: sometime\n"), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !page.PublishedAt.Equal(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published_at %v", page.PublishedAt.Time)
	}
	if !page.CreatedAt.IsZero() {
		t.Fatalf("expected absent created_at, got %v", page.CreatedAt.Time)
	}
}
