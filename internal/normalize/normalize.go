// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize repairs common mis-encodings in German input text and
// applies Unicode canonical composition (NFC).
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fixups lists UTF-8 byte sequences that were decoded as Latin-1 / CP1252
// and re-encoded, paired with the character they stand for. Order matters:
// three-byte sequences starting with "â€" come before the two-byte "Ã"/"Â"
// forms so a longer match is never split by a shorter one.
var fixups = []string{
	"â€ž", "„",
	"â€œ", "“",
	"â€\u009d", "”",
	"â€˜", "‘",
	"â€™", "’",
	"â€“", "–",
	"â€”", "—",
	"â€¦", "…",
	"Ã¤", "ä",
	"Ã¶", "ö",
	"Ã¼", "ü",
	"Ã„", "Ä",
	"Ã–", "Ö",
	"Ãœ", "Ü",
	"ÃŸ", "ß",
	"Ã©", "é",
	"Ã¨", "è",
	"Ã\u00a0", "à",
	"Â§", "§",
	"Â·", "·",
	"Â«", "«",
	"Â»", "»",
	"Â\u00a0", " ",
	"\u00a0", " ",
}

var fixupReplacer = strings.NewReplacer(fixups...)

// Normalize applies the mis-encoding table and then NFC, repeating until
// the result is stable. A repair can expose a new pattern (for example a
// repaired "„" directly after a stray "Ã"), so a single pass would not be
// idempotent. Every effective pass shortens the string, so the loop ends.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	s := norm.NFC.String(text)
	for {
		next := norm.NFC.String(fixupReplacer.Replace(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// Fixups reports how many mis-encoded sequences Normalize would repair in text.
func Fixups(text string) int {
	n := 0
	for i := 0; i < len(fixups); i += 2 {
		n += strings.Count(text, fixups[i])
	}
	return n
}
