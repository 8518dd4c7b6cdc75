package scraperimpl

// Chunk splits ids into k contiguous chunks whose sizes differ by at most one.
// Earlier chunks take the remainder. Concatenating the chunks yields ids.
func Chunk(ids []string, k int) [][]string {
	if k < 1 {
		k = 1
	}

	size, remainder := len(ids)/k, len(ids)%k
	chunks := make([][]string, 0, k)
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < remainder {
			end++
		}
		chunks = append(chunks, ids[start:end])
		start = end
	}
	return chunks
}
