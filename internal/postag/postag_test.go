// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

func word(text string) types.Token {
	return types.Token{Text: text}
}

func TestTagWordClosedLists(t *testing.T) {
	tests := []struct {
		word  string
		tag   string
		score float64
	}{
		{"Die", TagDET, 0.95}, // capitalized, but the list lookup comes first
		{"einem", TagDET, 0.95},
		{"ich", TagPRON, 0.9},
		{"ihr", TagPRON, 0.9},   // pronoun list precedes possessives
		{"seine", TagDET, 0.9},  // possessive
		{"sein", TagDET, 0.9},   // possessive list precedes auxiliaries
		{"über", TagADP, 0.95},
		{"und", TagCCONJ, 0.9},
		{"doch", TagCCONJ, 0.9}, // conjunction list precedes particles
		{"weil", TagSCONJ, 0.9},
		{"ist", TagAUX, 0.9},
		{"kann", TagAUX, 0.85},
		{"nicht", TagPART, 0.85},
		{"heute", TagADV, 0.8},
		{"endlich", TagADV, 0.8}, // list beats the -lich heuristic
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			tag, score, _ := TagWord(word(tt.word))
			assert.Equal(t, tt.tag, tag)
			assert.InDelta(t, tt.score, score, 1e-9)
		})
	}
}

func TestTagWordHeuristics(t *testing.T) {
	tests := []struct {
		word  string
		tag   string
		score float64
	}{
		{"Himmel", TagNOUN, 0.7},
		{"Freundlich", TagNOUN, 0.7}, // capitalization checked before suffixes
		{"singen", TagVERB, 0.6},
		{"scheint", TagVERB, 0.6},
		{"fröhlich", TagADJ, 0.65},
		{"wunderbar", TagADJ, 0.65},
		{"1999", TagNUM, 0.9},
		{"hell", TagX, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			tag, score, _ := TagWord(word(tt.word))
			assert.Equal(t, tt.tag, tag)
			assert.InDelta(t, tt.score, score, 1e-9)
		})
	}
}

func TestTagPunctuation(t *testing.T) {
	tag, score, _ := TagWord(types.Token{Text: "!", IsPunctuation: true})
	assert.Equal(t, TagPUNCT, tag)
	assert.Equal(t, 1.0, score)
}

func TestTagMorphology(t *testing.T) {
	tagged := Tag(tokenize.Tokenize("Meine Katze muss schlafen."))
	require.Len(t, tagged, 5)
	assert.Equal(t, "Yes", tagged[0].Morphology["Poss"])
	assert.Equal(t, "Mod", tagged[2].Morphology["VerbType"])
	assert.Nil(t, tagged[1].Morphology)
}

func TestTagPreservesOffsetsAndInput(t *testing.T) {
	tokens := tokenize.Tokenize("Die Sonne scheint hell am blauen Himmel.")
	tagged := Tag(tokens)
	require.Len(t, tagged, len(tokens))
	for i := range tokens {
		assert.Equal(t, tokens[i].Offset, tagged[i].Offset)
		assert.Equal(t, tokens[i].Position, tagged[i].Position)
		assert.Empty(t, tokens[i].POSTag, "input is not mutated")
	}
	got := []string{}
	for _, tok := range tagged {
		got = append(got, tok.POSTag)
	}
	assert.Equal(t, []string{"DET", "NOUN", "VERB", "X", "ADP", "VERB", "NOUN", "PUNCT"}, got)
}

func TestListFor(t *testing.T) {
	assert.Equal(t, "preposition", ListFor("Mit"))
	assert.Equal(t, "modal", ListFor("möchte"))
	assert.Equal(t, "", ListFor("Baum"))
}

func TestDistributionAndDominant(t *testing.T) {
	tagged := Tag(tokenize.Tokenize("Der Hund und der Mann."))
	dist := Distribution(tagged)
	assert.Equal(t, 2, dist[TagDET])
	assert.Equal(t, 2, dist[TagNOUN])
	assert.Equal(t, 1, dist[TagPUNCT])
	assert.Equal(t, TagDET, Dominant(dist), "ties break alphabetically")
	assert.Equal(t, "", Dominant(map[string]int{TagPUNCT: 3}))
}
