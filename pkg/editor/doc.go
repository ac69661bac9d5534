// Package editor implements copy-on-edit editing of a single content block.
//
// A Session is an immutable snapshot pair (the block as loaded and the draft
// being edited); every edit returns a new Session and the loaded block is
// never written to. Editor wraps a Session in the Closed/Editing state
// machine used by interactive front ends and derives the type-specific field
// list from the block registry, so the editor offers exactly the vocabulary
// the renderer understands.
package editor
