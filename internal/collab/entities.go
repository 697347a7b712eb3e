// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"strings"

	"github.com/pdiddy/dichter/pkg/types"
)

// FilterEntities keeps entities scoring at least minScore whose word
// matches some token's text exactly, ignoring case. Subword fragments and
// spans that cross token boundaries are dropped.
func FilterEntities(entities []types.Entity, tokens []types.Token, minScore float64) []types.Entity {
	words := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if !t.IsPunctuation {
			words[strings.ToLower(t.Text)] = true
		}
	}

	var out []types.Entity
	for _, e := range entities {
		if e.Score < minScore {
			continue
		}
		if !words[strings.ToLower(strings.TrimSpace(e.Word))] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EntityLabel strips BIO prefixes ("B-PER", "I-LOC") from a token
// classification label.
func EntityLabel(label string) string {
	if len(label) > 2 && (label[0] == 'B' || label[0] == 'I') && label[1] == '-' {
		return label[2:]
	}
	return label
}
