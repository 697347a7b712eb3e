// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dichter/pkg/types"
)

func verses(lines ...string) []types.Verse {
	out := make([]types.Verse, len(lines))
	for i, l := range lines {
		out[i] = types.Verse{Text: l, Index: i}
	}
	return out
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"Bäche", "Bache", 1},
		{"ick", "ück", 1},
		{"and", "and", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("che", "che"))
	assert.InDelta(t, 2.0/3.0, Similarity("ick", "ück"), 1e-9)
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestLetter(t *testing.T) {
	assert.Equal(t, "A", Letter(0))
	assert.Equal(t, "Z", Letter(25))
	assert.Equal(t, "AA", Letter(26))
	assert.Equal(t, "AB", Letter(27))
	assert.Equal(t, "BA", Letter(52))
}

func TestLastWordAndEnding(t *testing.T) {
	assert.Equal(t, "Schwäche", LastWord("Trotz aller Schwäche,"))
	assert.Equal(t, "", LastWord("…"))
	assert.Equal(t, "che", Ending("Schwäche", 3))
	assert.Equal(t, "zu", Ending("zu", 3))
}

func TestRhymeSchemeSimilarButBelowThreshold(t *testing.T) {
	// "ick" and "ück" are 2/3 similar, which does not exceed 0.7.
	rs := RhymeScheme(verses(
		"Der Regen füllt die Bäche",
		"Ein letzter Blick",
		"Voll Hoffnungsglück",
		"Trotz aller Schwäche",
	), 0.7, 3)

	assert.Equal(t, "ABCA", rs.PatternString())
	assert.Equal(t, []string{"che", "ick", "ück", "che"}, rs.Endings)
	assert.Equal(t, types.SchemeFree, rs.Scheme)
	require.Len(t, rs.Pairs, 1)
	assert.Equal(t, types.RhymePair{VerseI: 0, VerseJ: 3, Similarity: 1}, rs.Pairs[0])
}

func TestRhymeSchemeKinds(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		pattern string
		scheme  types.RhymeSchemeKind
	}{
		{"paired", []string{"Die Hand", "Das Land", "Das Licht", "Die Sicht"}, "AABB", types.SchemePaired},
		{"cross", []string{"Die Hand", "Das Licht", "Das Land", "Die Sicht"}, "ABAB", types.SchemeCross},
		{"enclosed", []string{"Die Hand", "Das Licht", "Die Sicht", "Das Land"}, "ABBA", types.SchemeEnclosed},
		{"monorhyme", []string{"Die Hand", "Das Land", "Der Sand", "Das Band"}, "AAAA", types.SchemeMonorhyme},
		{"two paired quatrains", []string{
			"Die Hand", "Das Land", "Das Licht", "Die Sicht",
			"Das Haus", "Die Maus", "Die Welt", "Das Zelt",
		}, "AABBCCDD", types.SchemePaired},
		{"three verses", []string{"Die Hand", "Das Land", "Das Licht"}, "AAB", types.SchemeFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := RhymeScheme(verses(tt.lines...), 0.7, 3)
			assert.Equal(t, tt.pattern, rs.PatternString())
			assert.Equal(t, tt.scheme, rs.Scheme)
		})
	}
}

func TestRhymeSchemePatternLengthMatchesVerses(t *testing.T) {
	for n := 0; n <= 30; n++ {
		lines := make([]string, n)
		for i := range lines {
			lines[i] = "Zeile " + Letter(i)
		}
		rs := RhymeScheme(verses(lines...), 0.7, 3)
		assert.Len(t, rs.Pattern, n)
	}
}

func TestRhymeSchemeVerseWithoutWords(t *testing.T) {
	rs := RhymeScheme(verses("Die Hand", "…", "Das Land"), 0.7, 3)
	assert.Equal(t, "ABA", rs.PatternString())
	assert.Equal(t, "", rs.Endings[1])
}

func TestClassifySchemeMixedQuatrains(t *testing.T) {
	assert.Equal(t, types.SchemeFree, ClassifyScheme([]string{"A", "A", "B", "B", "C", "D", "C", "D"}))
	assert.Equal(t, types.SchemeCross, ClassifyScheme([]string{"A", "B", "A", "B", "C", "D", "C", "D"}))
	assert.Equal(t, types.SchemeFree, ClassifyScheme(nil))
}
