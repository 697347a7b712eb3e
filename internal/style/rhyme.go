// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package style detects stylistic devices: rhyme schemes, alliteration,
// word repetition (anaphora, epiphora), structural parallelism, and
// punctuation habits.
package style

import (
	"strings"
	"unicode"

	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// knownSchemes maps four-verse patterns to their scheme.
var knownSchemes = map[string]types.RhymeSchemeKind{
	"AABB": types.SchemePaired,
	"ABAB": types.SchemeCross,
	"ABBA": types.SchemeEnclosed,
	"AAAA": types.SchemeMonorhyme,
}

// LastWord returns the final word of a verse with trailing punctuation
// stripped, or "" if the verse has no word.
func LastWord(verse string) string {
	words := tokenize.WordTexts(verse)
	if len(words) == 0 {
		return ""
	}
	return strings.TrimRightFunc(words[len(words)-1], func(r rune) bool {
		return tokenize.IsPunctuationRune(r) || unicode.IsPunct(r)
	})
}

// Ending returns the phonetic ending proxy of word: its last n runes,
// lowercased.
func Ending(word string, n int) string {
	r := []rune(strings.ToLower(word))
	if len(r) <= n {
		return string(r)
	}
	return string(r[len(r)-n:])
}

// Letter returns the rhyme letter for group index i: A..Z, then AA, AB, ...
func Letter(i int) string {
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('A' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}

// RhymeScheme assigns rhyme letters to verses in one greedy pass. Each
// unlabeled verse opens the next unused letter and pulls every later
// unlabeled verse whose ending similarity exceeds threshold into the same
// group. A labeled verse is never revisited.
func RhymeScheme(verses []types.Verse, threshold float64, endingLength int) types.RhymeScheme {
	n := len(verses)
	rs := types.RhymeScheme{
		Pattern: make([]string, n),
		Endings: make([]string, n),
		Scheme:  types.SchemeFree,
	}

	for i, v := range verses {
		rs.Endings[i] = Ending(LastWord(v.Text), endingLength)
	}

	next := 0
	for i := 0; i < n; i++ {
		if rs.Pattern[i] != "" {
			continue
		}
		letter := Letter(next)
		next++
		rs.Pattern[i] = letter

		for j := i + 1; j < n; j++ {
			if rs.Pattern[j] != "" || rs.Endings[i] == "" || rs.Endings[j] == "" {
				continue
			}
			sim := Similarity(rs.Endings[i], rs.Endings[j])
			if sim > threshold {
				rs.Pattern[j] = letter
				rs.Pairs = append(rs.Pairs, types.RhymePair{VerseI: i, VerseJ: j, Similarity: sim})
			}
		}
	}

	rs.Scheme = ClassifyScheme(rs.Pattern)
	return rs
}

// ClassifyScheme names a letter pattern. Four-letter patterns are looked up
// directly. Longer patterns whose length is a multiple of four are
// classified when every quatrain, relabeled from A, has the same known
// scheme (AABBCCDD is paired rhyme). Everything else is free.
func ClassifyScheme(pattern []string) types.RhymeSchemeKind {
	if len(pattern) == 0 || len(pattern)%4 != 0 {
		return types.SchemeFree
	}

	var kind types.RhymeSchemeKind
	for q := 0; q < len(pattern); q += 4 {
		k, ok := knownSchemes[relabel(pattern[q:q+4])]
		if !ok || (kind != "" && k != kind) {
			return types.SchemeFree
		}
		kind = k
	}
	return kind
}

// relabel rewrites a pattern so letters appear in first-use order from A.
func relabel(pattern []string) string {
	seen := make(map[string]string)
	var b strings.Builder
	for _, p := range pattern {
		l, ok := seen[p]
		if !ok {
			l = Letter(len(seen))
			seen[p] = l
		}
		b.WriteString(l)
	}
	return b.String()
}
