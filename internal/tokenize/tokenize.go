// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokenize splits normalized text into word and punctuation tokens
// with character offsets and dense sequence positions.
package tokenize

import (
	"unicode"

	"github.com/pdiddy/dichter/pkg/types"
)

// punctuation is the fixed set of symbols that always form their own
// single-character token. Other non-space symbols that are not word
// characters are also emitted as single-character punctuation tokens so
// every non-whitespace character of the input lands in exactly one token.
var punctuation = map[rune]bool{
	'.': true, ',': true, ';': true, ':': true, '!': true, '?': true,
	'…': true, '-': true, '–': true, '—': true, '"': true, '\'': true,
	'„': true, '“': true, '”': true, '‚': true, '‘': true, '’': true,
	'(': true, ')': true, '[': true, ']': true, '«': true, '»': true,
	'‹': true, '›': true, '/': true,
}

// terminals end a sentence.
var terminals = map[string]bool{".": true, "!": true, "?": true, "…": true}

// joiners may appear inside a word when letters follow them.
var joiners = map[rune]bool{'-': true, '\'': true, '’': true}

// IsPunctuationRune reports whether r belongs to the fixed punctuation set.
func IsPunctuationRune(r rune) bool {
	return punctuation[r]
}

// IsSentenceTerminal reports whether tok ends a sentence.
func IsSentenceTerminal(tok types.Token) bool {
	return tok.IsPunctuation && terminals[tok.Text]
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.IsDigit(r)
}

// Tokenize scans text left to right. A word is a maximal run of letters,
// combining marks, and digits; a hyphen or apostrophe between two such runs
// joins them into one word ("Hoffnungs-glück", "geht's"). Whitespace is
// skipped; every other rune becomes a one-character punctuation token.
func Tokenize(text string) []types.Token {
	runes := []rune(text)
	var tokens []types.Token
	pos := 0

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case isWordRune(r):
			start := i
			for i < len(runes) {
				if isWordRune(runes[i]) {
					i++
					continue
				}
				if joiners[runes[i]] && i+1 < len(runes) && isWordRune(runes[i+1]) {
					i++
					continue
				}
				break
			}
			tokens = append(tokens, types.Token{
				Text:     string(runes[start:i]),
				Offset:   start,
				Position: pos,
			})
			pos++

		default:
			tokens = append(tokens, types.Token{
				Text:          string(r),
				Offset:        i,
				Position:      pos,
				IsPunctuation: true,
			})
			pos++
			i++
		}
	}

	return tokens
}

// Words returns the non-punctuation tokens of tokens, preserving order.
func Words(tokens []types.Token) []types.Token {
	words := make([]types.Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsPunctuation {
			words = append(words, t)
		}
	}
	return words
}

// WordTexts tokenizes text and returns only the word surface forms.
func WordTexts(text string) []string {
	var out []string
	for _, t := range Tokenize(text) {
		if !t.IsPunctuation {
			out = append(out, t.Text)
		}
	}
	return out
}
