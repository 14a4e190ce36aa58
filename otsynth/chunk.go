package otsynth

// Chunk splits items into consecutive chunks of at most limit items. If group is
// non-nil, a new chunk is also started whenever the group key changes between
// neighbours. Item order is preserved.
func Chunk[T any](items []T, limit int, group func(T) int) [][]T {
	if limit < 1 {
		limit = 1
	}
	var chunks [][]T
	var current []T
	for i, item := range items {
		split := len(current) == limit
		if !split && group != nil && i > 0 && len(current) > 0 {
			split = group(items[i-1]) != group(item)
		}
		if split {
			chunks = append(chunks, current)
			current = nil
		}
		current = append(current, item)
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
