// Package render holds the renderer contract shared by every output format,
// a registry for looking renderers up by name, and the presentation helpers
// (style validation, URL and HTML sanitization) that concrete renderers apply
// before emitting markup.
package render
