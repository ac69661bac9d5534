package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotObject is reported for collection elements that are not JSON objects.
var ErrNotObject = errors.New("blocks: block is not a JSON object")

// BlockError reports one element of a collection that could not be used.
// The other elements are unaffected.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

type wireBlock struct {
	ID       json.RawMessage `json:"id"`
	Type     json.RawMessage `json:"type"`
	Title    json.RawMessage `json:"title"`
	Content  json.RawMessage `json:"content"`
	Settings json.RawMessage `json:"settings"`
	Order    json.RawMessage `json:"order"`
}

// UnmarshalJSON decodes a block field by field. Numeric ids and orders are
// converted, fractional orders are rounded, and a content or settings value
// that is not an object is treated as absent. Only a value that is not an
// object at all fails.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: %s", ErrNotObject, jsonKind(trimmed))
	}
	var wire wireBlock
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return err
	}

	id, _ := looseScalar(wire.ID)
	blockType, _ := looseScalar(wire.Type)
	title, _ := looseScalar(wire.Title)
	*b = ContentBlock{
		ID:      id,
		Type:    blockType,
		Title:   title,
		Content: looseObject(wire.Content),
		Order:   looseOrder(wire.Order),
	}
	if settings := looseObject(wire.Settings); settings != nil {
		b.Settings = Settings(settings)
	}
	return nil
}

func looseScalar(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", false
		}
		return text, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var number json.Number
		if err := json.Unmarshal(raw, &number); err != nil {
			return "", false
		}
		return number.String(), true
	default:
		return "", false
	}
}

func looseObject(raw json.RawMessage) map[string]any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func looseOrder(raw json.RawMessage) *int {
	text, ok := looseScalar(raw)
	if !ok {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.Abs(value) > math.MaxInt32 {
		return nil
	}
	order := int(math.Round(value))
	return &order
}

func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "empty"
	}
	switch raw[0] {
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
