// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/dichter/internal/segment"
	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

func score(text string) types.ReadabilityMetrics {
	return Score(tokenize.Tokenize(text), segment.Sentences(text))
}

func TestScoreKnownSentence(t *testing.T) {
	m := score("Die Sonne scheint.")

	assert.Equal(t, 3, m.WordCount)
	assert.Equal(t, 1, m.SentenceCount)
	assert.Equal(t, 4, m.SyllableCount)
	assert.InDelta(t, 3.0, m.AvgWordsPerSentence, 1e-9)
	assert.InDelta(t, 4.0/3.0, m.AvgSyllablesPerWord, 1e-9)
	// 180 - 3 - 58.5 * 4/3 = 99
	assert.InDelta(t, 99.0, m.FleschReadingEase, 1e-9)
	// 0.1672*3 + 0.1297*33.33 - 0.0327*66.67 - 0.875
	assert.InDelta(t, 1.7699, m.WienerIndex, 1e-3)
	assert.InDelta(t, 100.0/3.0, m.LongWordPercent, 1e-9)
}

func TestScoreCountsNumeralSyllables(t *testing.T) {
	m := score("Im Jahr 1999 kamen 3 Gäste.")

	assert.Equal(t, 6, m.WordCount)
	assert.Equal(t, 8, m.SyllableCount)
	assert.GreaterOrEqual(t, m.AvgSyllablesPerWord, 1.0)
}

func TestScoreFleschAlwaysClamped(t *testing.T) {
	inputs := []string{
		"",
		"Ja",
		"Tag.",
		strings.Repeat("Donaudampfschifffahrtsgesellschaftskapitänsmütze ", 40),
		"Ein Wort. Noch eins. Und drei.",
	}
	for _, in := range inputs {
		m := score(in)
		assert.GreaterOrEqual(t, m.FleschReadingEase, 0.0, in)
		assert.LessOrEqual(t, m.FleschReadingEase, 100.0, in)
	}
}

func TestScoreWithoutSentencesDoesNotDivideByZero(t *testing.T) {
	m := Score(tokenize.Tokenize("Sonne Mond"), nil)
	assert.Equal(t, 0, m.SentenceCount)
	assert.InDelta(t, 2.0, m.AvgWordsPerSentence, 1e-9)

	empty := Score(nil, nil)
	assert.Equal(t, 0.0, empty.AvgSyllablesPerWord)
	assert.Equal(t, 100.0, empty.FleschReadingEase)
}

func TestScoreWienerReportedRaw(t *testing.T) {
	long := strings.Repeat("Verantwortungsbewusstseinsentwicklung ", 60) + "."
	m := score(long)
	assert.Greater(t, m.WienerIndex, WienerMax, "raw index is not clamped")
	assert.Equal(t, "academic", WienerLevel(m.WienerIndex))
}

func TestFleschLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "very easy"},
		{80, "very easy"},
		{79.9, "easy"},
		{60, "easy"},
		{45, "medium"},
		{20, "hard"},
		{19.99, "very hard"},
		{0, "very hard"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FleschLevel(tt.score), "score %v", tt.score)
	}
}

func TestWienerLevel(t *testing.T) {
	tests := []struct {
		index float64
		want  string
	}{
		{-3, "elementary"},
		{4, "elementary"},
		{4.01, "middle school"},
		{12, "secondary"},
		{15, "academic"},
		{42, "academic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WienerLevel(tt.index), "index %v", tt.index)
	}
}

func TestInterpretCrossTabulates(t *testing.T) {
	band := Interpret(types.ReadabilityMetrics{FleschReadingEase: 85, WienerIndex: 2})
	assert.Equal(t, types.ReadabilityBand{
		FleschLevel: "very easy",
		WienerLevel: "elementary",
		Audience:    "children",
	}, band)

	band = Interpret(types.ReadabilityMetrics{FleschReadingEase: 10, WienerIndex: 14})
	assert.Equal(t, "specialists", band.Audience)

	// Every cell of the table is populated.
	for _, f := range fleschBands {
		for _, w := range wienerBands {
			assert.NotEmpty(t, audience[f.level][w.level], "%s/%s", f.level, w.level)
		}
	}
}
