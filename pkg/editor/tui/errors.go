package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrCancelled is returned when the user declines to save the edits.
	ErrCancelled = errors.New("tui: edit cancelled")
)
