package blocks

import "sort"

// Sort returns the blocks ordered by Position ascending. The sort is stable:
// blocks sharing a position keep their input order. The input slice is left
// untouched.
func Sort(list []ContentBlock) []ContentBlock {
	out := make([]ContentBlock, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position() < out[j].Position()
	})
	return out
}
