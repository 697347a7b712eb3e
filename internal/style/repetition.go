// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// Repetitions groups word tokens by lowercase text and returns the groups
// that occur more than once. Words shorter than minLen runes are ignored.
//
// A word is an anaphora when it appears among the first anaphoraWindow
// words of at least two sentences, and an epiphora when it directly
// precedes terminal punctuation at least twice. Results are sorted by count
// descending, then by word.
func Repetitions(tokens []types.Token, minLen, anaphoraWindow int) []types.Repetition {
	type group struct {
		positions []int
		openings  map[int]bool // sentence indexes where the word opens
		closings  int
	}

	groups := make(map[string]*group)
	sentence := 0
	wordInSentence := 0

	for i, t := range tokens {
		if t.IsPunctuation {
			if tokenize.IsSentenceTerminal(t) {
				sentence++
				wordInSentence = 0
			}
			continue
		}

		lower := strings.ToLower(t.Text)
		wordInSentence++
		if utf8.RuneCountInString(lower) < minLen {
			continue
		}

		g, ok := groups[lower]
		if !ok {
			g = &group{openings: make(map[int]bool)}
			groups[lower] = g
		}
		g.positions = append(g.positions, t.Position)
		if wordInSentence <= anaphoraWindow {
			g.openings[sentence] = true
		}
		if i+1 < len(tokens) && tokenize.IsSentenceTerminal(tokens[i+1]) {
			g.closings++
		}
	}

	var out []types.Repetition
	for word, g := range groups {
		if len(g.positions) < 2 {
			continue
		}
		out = append(out, types.Repetition{
			Word:       word,
			Count:      len(g.positions),
			Positions:  g.positions,
			IsAnaphora: len(g.openings) >= 2,
			IsEpiphora: g.closings >= 2,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}
