// Package template defines the renderer-agnostic template contract used by
// the block renderer. The gotemplate subpackage provides the pongo2-backed
// implementation.
package template
