// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postag assigns coarse part-of-speech tags with closed word lists
// and suffix heuristics. It is the fallback used when no ML tagger is
// available.
package postag

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/dichter/pkg/types"
)

// Universal POS tags produced by the rule-based tagger.
const (
	TagDET   = "DET"
	TagPRON  = "PRON"
	TagADP   = "ADP"
	TagCCONJ = "CCONJ"
	TagSCONJ = "SCONJ"
	TagAUX   = "AUX"
	TagPART  = "PART"
	TagADV   = "ADV"
	TagNOUN  = "NOUN"
	TagVERB  = "VERB"
	TagADJ   = "ADJ"
	TagNUM   = "NUM"
	TagPUNCT = "PUNCT"
	TagX     = "X"
)

// Heuristic confidences.
const (
	scorePunct = 1.0
	scoreNoun  = 0.7
	scoreVerb  = 0.6
	scoreAdj   = 0.65
	scoreNum   = 0.9
	scoreX     = 0.1
)

var (
	verbSuffix = regexp.MustCompile(`(en|st|t)$`)
	adjSuffix  = regexp.MustCompile(`(lich|ig|isch|bar|sam|haft)$`)
)

// Tag returns a copy of tokens with POSTag and POSScore set. Offsets,
// positions, and other annotations are left unchanged.
func Tag(tokens []types.Token) []types.Token {
	out := make([]types.Token, len(tokens))
	for i, t := range tokens {
		tag, score, morph := TagWord(t)
		t.POSTag = tag
		t.POSScore = score
		if morph != nil {
			t.Morphology = mergeMorphology(t.Morphology, morph)
		}
		out[i] = t
	}
	return out
}

// TagWord tags a single token. Punctuation is always PUNCT. Word tokens are
// matched against the closed lists in fixed priority order; an earlier list
// always wins. Without a list match the heuristics run in order:
// capitalized initial, verb suffix, adjective suffix, digit, fallback X.
// Capitalization comes before the suffixes because many nouns end in them.
func TagWord(t types.Token) (string, float64, map[string]string) {
	if t.IsPunctuation {
		return TagPUNCT, scorePunct, nil
	}

	lower := strings.ToLower(t.Text)
	for _, l := range closedLists {
		if l.words[lower] {
			return l.tag, l.score, l.morphology
		}
	}

	first, _ := utf8.DecodeRuneInString(t.Text)
	switch {
	case unicode.IsUpper(first):
		return TagNOUN, scoreNoun, nil
	case verbSuffix.MatchString(lower):
		return TagVERB, scoreVerb, nil
	case adjSuffix.MatchString(lower):
		return TagADJ, scoreAdj, nil
	case strings.IndexFunc(lower, unicode.IsDigit) >= 0:
		return TagNUM, scoreNum, nil
	}
	return TagX, scoreX, nil
}

// ListFor returns the name of the closed list that would tag word, or ""
// when none does.
func ListFor(word string) string {
	lower := strings.ToLower(word)
	for _, l := range closedLists {
		if l.words[lower] {
			return l.name
		}
	}
	return ""
}

// Distribution tallies POS tags over tokens, skipping untagged ones.
func Distribution(tokens []types.Token) map[string]int {
	dist := make(map[string]int)
	for _, t := range tokens {
		if t.POSTag != "" {
			dist[t.POSTag]++
		}
	}
	return dist
}

// Dominant returns the most frequent non-punctuation tag in dist. Ties are
// broken alphabetically so the result is deterministic.
func Dominant(dist map[string]int) string {
	tags := make([]string, 0, len(dist))
	for tag := range dist {
		if tag != TagPUNCT {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		if dist[tags[i]] != dist[tags[j]] {
			return dist[tags[i]] > dist[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}

func mergeMorphology(dst, src map[string]string) map[string]string {
	out := make(map[string]string, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}
