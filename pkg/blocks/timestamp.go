package blocks

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// timestampLayouts are tried in order. Fractional seconds are accepted by
// every layout that carries seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	time.DateTime,
	time.DateOnly,
}

// Timestamp is a page record time decoded leniently: RFC 3339, date-only and
// SQL style values are accepted, and anything else reads as absent instead of
// failing the page.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses value with the accepted layouts.
func ParseTimestamp(value string) (Timestamp, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: parsed}, true
		}
	}
	return Timestamp{}, false
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}
	*t, _ = ParseTimestamp(value)
	return nil
}

// MarshalJSON writes RFC 3339, or null when the time is absent.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.Time.MarshalJSON()
}

func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	*t = Timestamp{}
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return nil
	}
	*t, _ = ParseTimestamp(node.Value)
	return nil
}

func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time.Format(time.RFC3339Nano), nil
}
