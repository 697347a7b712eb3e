// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package syllable estimates German syllable counts from vowel groups.
//
// The estimate is a heuristic, not a dictionary lookup: each maximal run of
// vowels is a nucleus, and each diphthong inside a word takes half a
// syllable back. Results are approximate and only guaranteed to be at least
// one for a non-empty word.
package syllable

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var vowelGroup = regexp.MustCompile(`[aeiouäöüy]+`)

var diphthongs = []string{"au", "äu", "ei", "eu", "ai", "ie"}

// Estimate returns the approximate syllable count of a single word.
// It returns 0 for an empty word and at least 1 otherwise; a numeral
// without vowels counts as one syllable.
func Estimate(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return 0
	}

	raw := float64(len(vowelGroup.FindAllStringIndex(w, -1)))
	for _, d := range diphthongs {
		raw -= 0.5 * float64(strings.Count(w, d))
	}

	n := int(math.Round(raw))
	if n < 1 {
		n = 1
	}
	return n
}

// Count sums Estimate over every word of text. Fields made only of
// hyphens or apostrophes are not words.
func Count(text string) int {
	total := 0
	for _, w := range strings.FieldsFunc(text, isSeparator) {
		if hasWordRune(w) {
			total += Estimate(w)
		}
	}
	return total
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\'' && r != '’'
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
