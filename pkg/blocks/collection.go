package blocks

import (
	"github.com/google/uuid"
)

// New creates a block with a fresh identifier. The initial content is copied
// so later edits to the caller's map do not leak into the block.
func New(blockType string, content map[string]any) ContentBlock {
	block := ContentBlock{
		ID:      uuid.NewString(),
		Type:    blockType,
		Content: map[string]any{},
	}
	if content != nil {
		block.Content = ContentBlock{Content: content}.Clone().Content
	}
	return block
}

// Find returns the block with the given id.
func Find(list []ContentBlock, id string) (ContentBlock, bool) {
	for _, block := range list {
		if block.ID == id {
			return block, true
		}
	}
	return ContentBlock{}, false
}

// Append adds block after the current last position and returns the new
// collection.
func Append(list []ContentBlock, block ContentBlock) []ContentBlock {
	next := 0
	for _, existing := range list {
		if position := existing.Position() + 1; position > next {
			next = position
		}
	}
	out := make([]ContentBlock, 0, len(list)+1)
	out = append(out, list...)
	return append(out, block.WithOrder(next))
}

// Replace swaps the block sharing updated.ID for updated. It reports false
// when no block matches, in which case the collection is returned unchanged.
func Replace(list []ContentBlock, updated ContentBlock) ([]ContentBlock, bool) {
	out := make([]ContentBlock, len(list))
	copy(out, list)
	for idx := range out {
		if out[idx].ID == updated.ID {
			out[idx] = updated
			return out, true
		}
	}
	return out, false
}

// Remove drops the block with the given id.
func Remove(list []ContentBlock, id string) ([]ContentBlock, bool) {
	out := make([]ContentBlock, 0, len(list))
	removed := false
	for _, block := range list {
		if block.ID == id {
			removed = true
			continue
		}
		out = append(out, block)
	}
	return out, removed
}

// Reorder rewrites every block's order so the blocks named in ids come first,
// in that sequence, followed by the remaining blocks in their current
// effective order. Unknown ids are ignored.
func Reorder(list []ContentBlock, ids []string) []ContentBlock {
	sorted := Sort(list)
	index := make(map[string]int, len(sorted))
	for idx, block := range sorted {
		if _, seen := index[block.ID]; !seen {
			index[block.ID] = idx
		}
	}

	out := make([]ContentBlock, 0, len(sorted))
	used := make([]bool, len(sorted))
	for _, id := range ids {
		idx, ok := index[id]
		if !ok || used[idx] {
			continue
		}
		used[idx] = true
		out = append(out, sorted[idx])
	}
	for idx, block := range sorted {
		if !used[idx] {
			out = append(out, block)
		}
	}
	for idx := range out {
		out[idx] = out[idx].WithOrder(idx)
	}
	return out
}
