// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/dichter/pkg/types"
)

// ValidationError reports input text outside the accepted bounds. It is
// returned before any processing and is never retried.
type ValidationError struct {
	Reason string
	Length int
	Min    int
	Max    int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid text: %s (length %d, allowed %d-%d)", e.Reason, e.Length, e.Min, e.Max)
}

// InvariantError reports an internal inconsistency between stages, such
// as a token whose offset does not point at its text. It aborts the
// analysis.
type InvariantError struct {
	Stage string
	Token string
	Err   error
}

func (e *InvariantError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: token %q: %v", e.Stage, e.Token, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// Validate checks text against limits. Length is counted in runes after
// trimming surrounding whitespace.
func Validate(text string, limits types.LimitsConfig) error {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)
	verr := func(reason string) error {
		return &ValidationError{Reason: reason, Length: n, Min: limits.MinChars, Max: limits.MaxChars}
	}

	switch {
	case n < limits.MinChars:
		return verr("text too short")
	case limits.MaxChars > 0 && n > limits.MaxChars:
		return verr("text too long")
	}

	letters := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < limits.MinLetters {
		return verr(fmt.Sprintf("only %d letters, need %d", letters, limits.MinLetters))
	}
	return nil
}
