package search

// Ratio returns a Ratcliff/Obershelp similarity in [0, 1]: twice the total
// length of matching blocks divided by the combined length of both strings.
// Matching blocks are found by recursively taking the longest common
// substring, then repeating on the pieces to its left and right.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingBlocksTotal(ra, rb)) / float64(total)
}

func matchingBlocksTotal(a, b []rune) int {
	i, j, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return matchingBlocksTotal(a[:i], b[:j]) +
		size +
		matchingBlocksTotal(a[i+size:], b[j+size:])
}

// longestCommonBlock finds the longest common substring of a and b, preferring
// the earliest occurrence in a, then in b, on ties.
func longestCommonBlock(a, b []rune) (ai, bj, size int) {
	// j2len[j] is the length of the common suffix ending at a[i]/b[j].
	j2len := make(map[int]int)
	for i := range a {
		next := make(map[int]int)
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > size {
				ai, bj, size = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return ai, bj, size
}
