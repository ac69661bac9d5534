package render

import "errors"

var (
	// ErrUnknownRenderer is returned when a renderer name is not registered.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrDuplicateRenderer is returned when two renderers share a name.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)
