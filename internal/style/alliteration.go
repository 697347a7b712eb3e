// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// clusters are onsets treated as one sound, longest first.
var clusters = []string{"sch", "st", "sp", "ch", "pf"}

// minAlliterationWord is the shortest word considered for alliteration.
const minAlliterationWord = 3

// InitialSound returns the lowercased onset of word used for alliteration,
// or "" when the word does not start with a letter.
func InitialSound(word string) string {
	lower := strings.ToLower(word)
	for _, c := range clusters {
		if strings.HasPrefix(lower, c) {
			return c
		}
	}
	r, size := utf8.DecodeRuneInString(lower)
	if size == 0 || !unicode.IsLetter(r) {
		return ""
	}
	return string(r)
}

// Alliterations finds runs of at least minRun consecutive words inside a
// sentence that share their initial sound. Words shorter than three runes
// are skipped without breaking a run; terminal punctuation ends the run.
func Alliterations(tokens []types.Token, minRun int) []types.Alliteration {
	if minRun < 2 {
		minRun = 2
	}

	var (
		out   []types.Alliteration
		sound string
		run   []types.Token
	)
	flush := func() {
		if len(run) >= minRun {
			a := types.Alliteration{Sound: sound}
			for _, t := range run {
				a.Words = append(a.Words, t.Text)
				a.Positions = append(a.Positions, t.Position)
			}
			out = append(out, a)
		}
		run = nil
		sound = ""
	}

	for _, t := range tokens {
		if t.IsPunctuation {
			if tokenize.IsSentenceTerminal(t) {
				flush()
			}
			continue
		}
		if utf8.RuneCountInString(t.Text) < minAlliterationWord {
			continue
		}
		s := InitialSound(t.Text)
		if s == "" || s != sound {
			flush()
			sound = s
		}
		if s != "" {
			run = append(run, t)
		}
	}
	flush()
	return out
}
