// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package readability scores German text with the Amstad adaptation of
// Flesch Reading Ease and the first Wiener Sachtextformel, and maps the
// scores onto display bands.
package readability

import (
	"math"
	"unicode/utf8"

	"github.com/pdiddy/dichter/internal/syllable"
	"github.com/pdiddy/dichter/pkg/types"
)

const longWordRunes = 6

// Score computes readability metrics from tokens and sentences. Every
// denominator uses max(x, 1), so empty or single-word input never divides
// by zero. FleschReadingEase is clamped to [0, 100]; WienerIndex is
// reported raw.
func Score(tokens []types.Token, sentences []types.Sentence) types.ReadabilityMetrics {
	var m types.ReadabilityMetrics
	var poly, long, mono int

	for _, t := range tokens {
		if t.IsPunctuation {
			continue
		}
		m.WordCount++
		n := syllable.Estimate(t.Text)
		m.SyllableCount += n
		switch {
		case n >= 3:
			poly++
		case n == 1:
			mono++
		}
		if utf8.RuneCountInString(t.Text) > longWordRunes {
			long++
		}
	}
	m.SentenceCount = len(sentences)

	words := float64(max(m.WordCount, 1))
	m.AvgWordsPerSentence = float64(m.WordCount) / float64(max(m.SentenceCount, 1))
	m.AvgSyllablesPerWord = float64(m.SyllableCount) / words
	m.PolysyllablePercent = 100 * float64(poly) / words
	m.LongWordPercent = 100 * float64(long) / words
	m.MonosyllablePercent = 100 * float64(mono) / words

	m.FleschReadingEase = clamp(180-m.AvgWordsPerSentence-58.5*m.AvgSyllablesPerWord, 0, 100)
	m.WienerIndex = 0.1935*m.PolysyllablePercent +
		0.1672*m.AvgWordsPerSentence +
		0.1297*m.LongWordPercent -
		0.0327*m.MonosyllablePercent -
		0.875

	return m
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
