package util

// NextID allocates the next client-assigned id: max(existing) + 1, starting
// at 1 for an empty set. The mock backend does not assign ids on most
// collections, so allocation is centralized here to keep call sites
// swappable for server-assigned ids later.
func NextID(existing []int64) int64 {
	var max int64
	for _, id := range existing {
		if id > max {
			max = id
		}
	}
	return max + 1
}
