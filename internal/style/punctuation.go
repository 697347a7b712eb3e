// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/dichter/pkg/types"
)

// Style thresholds, as percentages of all punctuation tokens.
const (
	expressiveShare  = 30.0
	questioningShare = 30.0
	complexShare     = 50.0
)

// Punctuation tallies punctuation tokens by symbol and classifies the
// dominant style. Symbol tokens such as "€" or "%" are not punctuation
// marks and are left out. Exclamation is checked first, then question
// marks, then commas.
func Punctuation(tokens []types.Token) types.PunctuationProfile {
	p := types.PunctuationProfile{
		Counts:      make(map[string]int),
		Percentages: make(map[string]float64),
		Style:       types.PunctuationNeutral,
	}
	for _, t := range tokens {
		if isMark(t) {
			p.Counts[t.Text]++
			p.Total++
		}
	}
	if p.Total == 0 {
		return p
	}

	for sym, n := range p.Counts {
		p.Percentages[sym] = float64(n) / float64(p.Total) * 100
	}

	switch {
	case p.Percentages["!"] > expressiveShare:
		p.Style = types.PunctuationExpressive
	case p.Percentages["?"] > questioningShare:
		p.Style = types.PunctuationQuestioning
	case p.Percentages[","] > complexShare:
		p.Style = types.PunctuationComplex
	}
	return p
}

func isMark(t types.Token) bool {
	if !t.IsPunctuation {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t.Text)
	return unicode.IsPunct(r)
}
