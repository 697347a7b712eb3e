// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits text into sentences and into verse/stanza
// structure.
package segment

import (
	"regexp"
	"strings"

	"github.com/pdiddy/dichter/internal/syllable"
	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// boundary matches a run of terminal punctuation followed by whitespace or
// the end of the line.
var boundary = regexp.MustCompile(`[.!?…]+(?:\s+|$)`)

// abbreviations never end a sentence. Keys are lowercase and without the
// final period.
var abbreviations = map[string]bool{
	"dr": true, "prof": true, "etc": true, "z.b": true, "u.a": true,
	"usw": true, "bzw": true, "ca": true, "vgl": true, "nr": true,
	"str": true, "hr": true, "fr": true, "d.h": true, "s.o": true,
	"u.u": true, "evtl": true, "inkl": true, "ggf": true, "mio": true,
	"mrd": true, "jh": true, "st": true, "z.t": true, "o.ä": true,
	"bspw": true, "sog": true, "geb": true, "dipl": true, "ing": true,
}

// openers are stripped from the front of the word preceding a terminator
// before it is looked up as an abbreviation.
const openers = `"'„“‚‘«»‹›([`

// IsAbbreviation reports whether word (without its final period) is a
// known abbreviation.
func IsAbbreviation(word string) bool {
	w := strings.ToLower(strings.TrimLeft(word, openers))
	return abbreviations[strings.TrimRight(w, ".")]
}

// Sentences splits text first on line boundaries and then on terminal
// punctuation followed by whitespace, except after an abbreviation. A
// trailing unterminated fragment of a line becomes its own sentence.
func Sentences(text string) []types.Sentence {
	var sentences []types.Sentence

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		sentences = append(sentences, types.Sentence{
			Text:      s,
			Index:     len(sentences),
			WordCount: len(tokenize.WordTexts(s)),
		})
	}

	for _, line := range splitLines(text) {
		start := 0
		for _, m := range boundary.FindAllStringIndex(line, -1) {
			if precededByAbbreviation(line[start:m[0]]) {
				continue
			}
			add(line[start:m[1]])
			start = m[1]
		}
		add(line[start:])
	}

	return sentences
}

func precededByAbbreviation(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	return IsAbbreviation(fields[len(fields)-1])
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

// Verses splits text into verses. A whitespace-only line closes the current
// stanza; consecutive non-blank lines share a stanza. Texts with fewer than
// two non-blank lines are not treated as poems and yield no verses.
func Verses(text string) []types.Verse {
	var verses []types.Verse
	stanza, inStanza := 0, 0
	pendingBreak := false

	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(verses) > 0 {
				pendingBreak = true
			}
			continue
		}
		if pendingBreak {
			stanza++
			inStanza = 0
			pendingBreak = false
		}
		verses = append(verses, types.Verse{
			Text:          trimmed,
			Index:         len(verses),
			Stanza:        stanza,
			VerseInStanza: inStanza,
			WordCount:     len(tokenize.WordTexts(trimmed)),
			SyllableCount: syllable.Count(trimmed),
		})
		inStanza++
	}

	if len(verses) < 2 {
		return nil
	}
	return verses
}

// StanzaCount returns the number of distinct stanzas in verses.
func StanzaCount(verses []types.Verse) int {
	if len(verses) == 0 {
		return 0
	}
	return verses[len(verses)-1].Stanza + 1
}
