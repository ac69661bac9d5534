// Package orchestrator wires the page pipeline (load → normalize → render)
// behind a single entry point, with dependency injection for the loader and
// the renderer registry.
package orchestrator
