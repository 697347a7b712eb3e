// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// LexiconClassifier is an offline sentiment classifier backed by small
// German polarity word lists. A negation word within the two preceding
// words flips a hit. Compounds match when they end in a lexicon word of at
// least four letters ("Hoffnungsglück" ends in "glück"). An un- or miss-
// prefix and a -los or -leer suffix invert the word they attach to
// ("Unglück", "hoffnungslos").
type LexiconClassifier struct {
	positive map[string]bool
	negative map[string]bool
	negation map[string]bool
}

// minCompoundHead is the shortest lexicon word matched as a compound head.
const minCompoundHead = 4

// negationWindow is how many preceding words a negation reaches.
const negationWindow = 2

var (
	negatingPrefixes = []string{"un", "miss"}
	negatingSuffixes = []string{
		"losigkeit", "los", "lose", "losen", "loser", "loses", "losem",
		"leer", "leere", "leeren", "leerer", "leeres", "leerem",
	}

	positiveWords = []string{
		"gut", "schön", "froh", "fröhlich", "glück", "glücklich", "liebe",
		"lieben", "lieb", "freude", "freuen", "sonne", "hell", "hoffnung",
		"wunderbar", "herrlich", "lachen", "licht", "frieden", "süß", "zart",
		"warm", "strahlen", "strahlt", "leuchten", "leuchtet", "selig",
		"heiter", "blühen", "blüht", "frühling", "jubel", "wonne", "lust",
		"treu", "treue", "segen", "heil", "mut", "klar", "sanft", "prächtig",
		"golden", "scheint", "lächeln", "zärtlich", "schönheit", "sehnsucht",
	}
	negativeWords = []string{
		"schlecht", "traurig", "trauer", "leid", "schmerz", "tod", "tot",
		"sterben", "dunkel", "angst", "furcht", "hass", "hassen", "kalt",
		"weinen", "tränen", "einsam", "verloren", "schwäche", "kummer", "not",
		"elend", "qual", "grab", "düster", "finster", "sorge", "krieg",
		"zorn", "wut", "böse", "bitter", "öde", "klagen", "müde", "grau",
		"sturm", "schuld", "verzweiflung", "vergebens", "leer",
	}
	negationWords = []string{
		"nicht", "kein", "keine", "keinen", "keinem", "keiner", "nie",
		"niemals", "ohne", "kaum", "nichts",
	}
)

// NewLexiconClassifier returns a classifier with the built-in word lists.
func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{
		positive: toSet(positiveWords),
		negative: toSet(negativeWords),
		negation: toSet(negationWords),
	}
}

// Source implements Sourced.
func (l *LexiconClassifier) Source() types.ModelSource { return types.ModelLexicon }

// Classify labels text positive, negative, or neutral. The score is the
// share of the majority polarity among all hits, or 1 for a text without
// hits.
func (l *LexiconClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	words := tokenize.WordTexts(text)
	var pos, neg int
	for i, w := range words {
		p := l.polarity(strings.ToLower(w))
		if p == 0 {
			continue
		}
		if l.negated(words, i) {
			p = -p
		}
		if p > 0 {
			pos++
		} else {
			neg++
		}
	}

	switch {
	case pos == 0 && neg == 0:
		return Prediction{Label: "neutral", Score: 1}, nil
	case pos > neg:
		return Prediction{Label: "positive", Score: float64(pos) / float64(pos+neg)}, nil
	case neg > pos:
		return Prediction{Label: "negative", Score: float64(neg) / float64(pos+neg)}, nil
	}
	return Prediction{Label: "neutral", Score: 0.5}, nil
}

// polarity returns +1, -1, or 0 for a lowercased word.
func (l *LexiconClassifier) polarity(word string) int {
	if p := l.exact(word); p != 0 {
		return p
	}
	for _, pre := range negatingPrefixes {
		if rest, ok := strings.CutPrefix(word, pre); ok && rest != "" {
			if p := l.base(rest); p != 0 {
				return -p
			}
		}
	}
	for _, suf := range negatingSuffixes {
		stem, ok := strings.CutSuffix(word, suf)
		if !ok || stem == "" {
			continue
		}
		if p := l.base(stem); p != 0 {
			return -p
		}
		if p := l.base(strings.TrimSuffix(stem, "s")); p != 0 {
			return -p
		}
	}
	return l.compound(word)
}

// base is the polarity of a word or compound without affix handling.
func (l *LexiconClassifier) base(word string) int {
	if p := l.exact(word); p != 0 {
		return p
	}
	return l.compound(word)
}

func (l *LexiconClassifier) exact(word string) int {
	switch {
	case l.positive[word]:
		return 1
	case l.negative[word]:
		return -1
	}
	return 0
}

// compound scores word by its head. A head directly preceded by a
// negating prefix is inverted ("Lebensunglück").
func (l *LexiconClassifier) compound(word string) int {
	p := 1
	head := l.compoundHead(word, l.positive)
	if head == "" {
		p = -1
		head = l.compoundHead(word, l.negative)
	}
	if head == "" {
		return 0
	}
	modifier := strings.TrimSuffix(word, head)
	for _, pre := range negatingPrefixes {
		if strings.HasSuffix(modifier, pre) {
			return -p
		}
	}
	return p
}

// compoundHead returns the longest lexicon word of at least four runes that
// word ends with.
func (l *LexiconClassifier) compoundHead(word string, lexicon map[string]bool) string {
	best := ""
	for w := range lexicon {
		n := utf8.RuneCountInString(w)
		if n < minCompoundHead || len(w) >= len(word) || !strings.HasSuffix(word, w) {
			continue
		}
		if n > utf8.RuneCountInString(best) {
			best = w
		}
	}
	return best
}

func (l *LexiconClassifier) negated(words []string, i int) bool {
	for j := max(0, i-negationWindow); j < i; j++ {
		if l.negation[strings.ToLower(words[j])] {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
