package blocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Diagnostic describes a non-fatal problem found while normalizing a raw block
// collection. When Err is a *BlockError only that element was dropped;
// otherwise the whole collection degraded to an empty sequence.
type Diagnostic struct {
	Source string
	Err    error
}

func (d Diagnostic) String() string {
	if d.Err == nil {
		return "blocks: " + d.Source
	}
	return fmt.Sprintf("blocks: %s: %v", d.Source, d.Err)
}

// Option configures Normalize and Decode.
type Option func(*options)

type options struct {
	logger *slog.Logger
	report func(Diagnostic)
}

// WithLogger routes diagnostics to logger at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDiagnostics registers a callback invoked for every diagnostic.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(o *options) {
		o.report = fn
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newOptions(opts []Option) options {
	cfg := options{logger: discardLogger}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// ErrUnsupportedInput is returned by Decode for raw values that cannot carry
// a block collection.
var ErrUnsupportedInput = errors.New("blocks: unsupported content_blocks input")

// Normalize turns a raw content_blocks value into the page's effective,
// ordered block sequence. It never fails: input that is not a block array
// yields an empty sequence and a diagnostic, and unusable elements are
// dropped with one diagnostic each while their siblings are kept.
func Normalize(raw any, opts ...Option) []ContentBlock {
	cfg := newOptions(opts)
	source := sourceName(raw)

	decoded, skipped, err := decode(raw)
	if err != nil {
		cfg.diagnose("failed to parse content blocks", Diagnostic{Source: source, Err: err})
		return []ContentBlock{}
	}
	for _, blockErr := range skipped {
		cfg.diagnose("skipped content block", Diagnostic{Source: source, Err: blockErr})
	}
	return Sort(decoded)
}

// Decode parses raw into blocks without sorting. Absent input decodes to an
// empty sequence. Elements that cannot be used are left out of the result and
// reported as *BlockError values joined into the returned error.
func Decode(raw any) ([]ContentBlock, error) {
	list, skipped, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if len(skipped) == 0 {
		return list, nil
	}
	errs := make([]error, 0, len(skipped))
	for _, blockErr := range skipped {
		errs = append(errs, blockErr)
	}
	return list, errors.Join(errs...)
}

func (o options) diagnose(msg string, diag Diagnostic) {
	o.logger.LogAttrs(context.Background(), slog.LevelWarn, msg,
		slog.String("source", diag.Source),
		slog.String("error", diag.Err.Error()),
	)
	if o.report != nil {
		o.report(diag)
	}
}

func decode(raw any) ([]ContentBlock, []*BlockError, error) {
	switch v := raw.(type) {
	case nil:
		return []ContentBlock{}, nil, nil
	case RawBlocks:
		return decodeRaw(v)
	case *RawBlocks:
		if v == nil {
			return []ContentBlock{}, nil, nil
		}
		return decodeRaw(*v)
	case []ContentBlock:
		return append([]ContentBlock{}, v...), nil, nil
	case []*ContentBlock:
		out := make([]ContentBlock, 0, len(v))
		for _, block := range v {
			if block == nil {
				continue
			}
			out = append(out, *block)
		}
		return out, nil, nil
	case string:
		return decodeJSON([]byte(v))
	case []byte:
		return decodeJSON(v)
	case json.RawMessage:
		return decodeJSON(v)
	case []any, []map[string]any:
		return decodeGeneric(v)
	default:
		return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, raw)
	}
}

func decodeRaw(r RawBlocks) ([]ContentBlock, []*BlockError, error) {
	switch {
	case r.blocks != nil:
		return append([]ContentBlock{}, r.blocks...), nil, nil
	case r.encoded != nil:
		return decodeJSON([]byte(*r.encoded))
	case len(r.raw) > 0:
		return decodeJSON(r.raw)
	case r.generic != nil:
		return decodeGeneric(r.generic)
	default:
		return []ContentBlock{}, nil, nil
	}
}

func decodeGeneric(value any) ([]ContentBlock, []*BlockError, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, nil, err
	}
	return decodeJSON(payload)
}

// decodeJSON requires data to be a JSON array, then decodes each element on
// its own so one bad element cannot take its siblings down.
func decodeJSON(data []byte) ([]ContentBlock, []*BlockError, error) {
	if strings.TrimSpace(string(data)) == "" {
		return []ContentBlock{}, nil, nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, nil, err
	}

	out := make([]ContentBlock, 0, len(elements))
	var skipped []*BlockError
	for i, element := range elements {
		var block ContentBlock
		if err := block.UnmarshalJSON(element); err != nil {
			skipped = append(skipped, &BlockError{Index: i, Err: err})
			continue
		}
		out = append(out, block)
	}
	return out, skipped, nil
}

func sourceName(raw any) string {
	switch v := raw.(type) {
	case RawBlocks:
		return rawSourceName(v)
	case *RawBlocks:
		if v != nil {
			return rawSourceName(*v)
		}
	case string:
		return "string"
	case []byte, json.RawMessage:
		return "bytes"
	}
	return fmt.Sprintf("%T", raw)
}

func rawSourceName(r RawBlocks) string {
	switch {
	case r.encoded != nil:
		return "string"
	case len(r.raw) > 0:
		return "json"
	case r.generic != nil:
		return "yaml"
	default:
		return "structured"
	}
}
