// Package registry is the single source of truth for block type dispatch. A
// Definition pairs a type tag (plus aliases such as "paragraph" for "text")
// with the typed payload decoder, the renderer template, and the editor field
// specs, so the renderer and the editor can never drift apart. Unknown tags
// always resolve to the fallback definition.
package registry
