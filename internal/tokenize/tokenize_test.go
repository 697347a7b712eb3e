// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokenize

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(text string) []string {
	var out []string
	for _, t := range Tokenize(text) {
		out = append(out, t.Text)
	}
	return out
}

func TestTokenizeSplitsWordsAndPunctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"simple sentence", "Die Sonne scheint.", []string{"Die", "Sonne", "scheint", "."}},
		{"umlauts", "Vögel über Bäumen", []string{"Vögel", "über", "Bäumen"}},
		{"internal hyphen joins", "Hoffnungs-glück kommt", []string{"Hoffnungs-glück", "kommt"}},
		{"trailing hyphen splits", "Haupt- und Nebensatz", []string{"Haupt", "-", "und", "Nebensatz"}},
		{"apostrophe joins", "Wie geht's dir?", []string{"Wie", "geht's", "dir", "?"}},
		{"german quotes", "„Halt“, rief er!", []string{"„", "Halt", "“", ",", "rief", "er", "!"}},
		{"ellipsis", "Nun…", []string{"Nun", "…"}},
		{"digits", "Es war 1999.", []string{"Es", "war", "1999", "."}},
		{"other symbols", "50% & mehr", []string{"50", "%", "&", "mehr"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(tt.input))
		})
	}
}

func TestTokenizeOffsetsAndPositions(t *testing.T) {
	text := "Grüß Gott, Welt!"
	tokens := Tokenize(text)
	require.Len(t, tokens, 5)

	runes := []rune(text)
	for i, tok := range tokens {
		assert.Equal(t, i, tok.Position, "positions are dense")
		got := string(runes[tok.Offset : tok.Offset+len([]rune(tok.Text))])
		assert.Equal(t, tok.Text, got, "offset points at token start")
	}

	assert.False(t, tokens[0].IsPunctuation)
	assert.True(t, tokens[2].IsPunctuation)
	assert.Equal(t, ",", tokens[2].Text)
}

func TestTokenizeCoversEveryNonSpaceCharacter(t *testing.T) {
	inputs := []string{
		"Die Sonne scheint hell am blauen Himmel.\nVögel singen fröhlich.",
		"„Was?!“ – fragte Dr. Müller (etwa 40 Jahre alt).",
		"a-b-c ' - ' x's",
	}
	for _, in := range inputs {
		var joined strings.Builder
		for _, tok := range Tokenize(in) {
			joined.WriteString(tok.Text)
		}
		var stripped strings.Builder
		for _, r := range in {
			if !unicode.IsSpace(r) {
				stripped.WriteRune(r)
			}
		}
		assert.Equal(t, stripped.String(), joined.String(), "input %q", in)
	}
}

func TestIsSentenceTerminal(t *testing.T) {
	tokens := Tokenize("Ja. Nein! Wie? So… Und,")
	var terminal []string
	for _, tok := range tokens {
		if IsSentenceTerminal(tok) {
			terminal = append(terminal, tok.Text)
		}
	}
	assert.Equal(t, []string{".", "!", "?", "…"}, terminal)
}

func TestWords(t *testing.T) {
	words := Words(Tokenize("Ein Tag, ein Traum."))
	require.Len(t, words, 4)
	assert.Equal(t, "Traum", words[3].Text)
	assert.Equal(t, 4, words[3].Position, "positions keep counting punctuation")
	assert.Equal(t, []string{"Ein", "Tag", "ein", "Traum"}, WordTexts("Ein Tag, ein Traum."))
}
