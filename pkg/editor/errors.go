package editor

import "errors"

// ErrNotEditing is returned by edit operations while no block is open.
var ErrNotEditing = errors.New("editor: no block is open")
