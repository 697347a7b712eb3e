// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/dichter/internal/postag"
	"github.com/pdiddy/dichter/internal/segment"
	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// summarize computes whole-text statistics from a finished report.
func summarize(r *types.Report, fixups int) types.Summary {
	s := types.Summary{
		CharacterCount: utf8.RuneCountInString(r.NormalizedText),
		SentenceCount:  len(r.Sentences),
		VerseCount:     len(r.Verses),
		StanzaCount:    segment.StanzaCount(r.Verses),
		IsPoem:         len(r.Verses) > 0,
		EncodingFixups: fixups,
	}

	words := tokenize.Words(r.Tokens)
	unique := make(map[string]bool, len(words))
	letters := 0
	for _, w := range words {
		unique[strings.ToLower(w.Text)] = true
		letters += utf8.RuneCountInString(w.Text)
	}
	s.WordCount = len(words)
	s.UniqueWords = len(unique)
	if s.WordCount > 0 {
		s.LexicalDiversity = types.Round3(float64(s.UniqueWords) / float64(s.WordCount))
		s.AvgWordLength = types.Round3(float64(letters) / float64(s.WordCount))
	}

	dist := r.POSDistribution
	if dist == nil {
		dist = postag.Distribution(r.Tokens)
	}
	s.DominantPOS = postag.Dominant(dist)

	if r.Sentiment != nil {
		s.Sentiment = r.Sentiment.Overall
	}
	return s
}
