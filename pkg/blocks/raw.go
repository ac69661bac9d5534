package blocks

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// RawBlocks carries a page's content_blocks field exactly as it arrived on the
// wire: a structured array, a JSON-encoded string of the same, or null.
// Decoding a RawBlocks never fails; malformed payloads are kept verbatim and
// only reported when Normalize interprets them.
type RawBlocks struct {
	blocks  []ContentBlock
	encoded *string
	raw     json.RawMessage
	generic any
}

// StructuredBlocks wraps an already-typed block sequence.
func StructuredBlocks(list []ContentBlock) RawBlocks {
	if list == nil {
		list = []ContentBlock{}
	}
	return RawBlocks{blocks: list}
}

// EncodedBlocks wraps a JSON-encoded block sequence.
func EncodedBlocks(encoded string) RawBlocks {
	return RawBlocks{encoded: &encoded}
}

// IsZero reports whether the field was absent or null.
func (r RawBlocks) IsZero() bool {
	return r.blocks == nil && r.encoded == nil && len(r.raw) == 0 && r.generic == nil
}

// Encoded returns the JSON string form when the field arrived as a string.
func (r RawBlocks) Encoded() (string, bool) {
	if r.encoded == nil {
		return "", false
	}
	return *r.encoded, true
}

// UnmarshalJSON keeps the payload as-is so a malformed block array cannot fail
// decoding of the surrounding page record.
func (r *RawBlocks) UnmarshalJSON(data []byte) error {
	*r = RawBlocks{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err == nil {
			r.encoded = &encoded
			return nil
		}
	}
	r.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// MarshalJSON emits the field in the same form it was received or built in.
func (r RawBlocks) MarshalJSON() ([]byte, error) {
	switch {
	case r.blocks != nil:
		return json.Marshal(r.blocks)
	case r.encoded != nil:
		return json.Marshal(*r.encoded)
	case len(r.raw) > 0:
		return r.raw, nil
	case r.generic != nil:
		return json.Marshal(r.generic)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalYAML accepts a block sequence or a JSON string scalar.
func (r *RawBlocks) UnmarshalYAML(node *yaml.Node) error {
	*r = RawBlocks{}
	if node == nil {
		return nil
	}
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			return nil
		}
		encoded := node.Value
		r.encoded = &encoded
		return nil
	}
	var generic any
	if err := node.Decode(&generic); err != nil {
		return nil
	}
	r.generic = generic
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML documents.
func (r RawBlocks) MarshalYAML() (any, error) {
	switch {
	case r.blocks != nil:
		return r.blocks, nil
	case r.encoded != nil:
		return *r.encoded, nil
	case len(r.raw) > 0:
		var generic any
		if err := json.Unmarshal(r.raw, &generic); err != nil {
			return string(r.raw), nil
		}
		return generic, nil
	default:
		return r.generic, nil
	}
}
