// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

// Levenshtein returns the edit distance between a and b, counted in runes.
// It keeps a single row of the DP table.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}
	return row[len(ra)]
}

// Similarity is the normalized Levenshtein similarity
// 1 - distance/maxLength. Two empty strings are identical.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}
