// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the dichter analysis
// pipeline: tokens and segments produced by the rule-based stages, style and
// semantic results, the assembled Report, and stage configuration.
package types

// Token is the smallest unit of segmented text: a word or a single
// punctuation character. Offset and Position are fixed by the tokenizer;
// later stages only fill the annotation fields.
type Token struct {
	// Text is the token surface form as it appears in the normalized input.
	Text string `json:"text" yaml:"text"`

	// Offset is the character (rune) index of the token start.
	Offset int `json:"offset" yaml:"offset"`

	// Position is the dense 0-based index over all tokens, punctuation included.
	Position int `json:"position" yaml:"position"`

	// IsPunctuation is true for single-character punctuation tokens.
	IsPunctuation bool `json:"is_punctuation" yaml:"is_punctuation"`

	// POSTag is a coarse universal part-of-speech tag (NOUN, VERB, PUNCT, ...).
	POSTag string `json:"pos_tag,omitempty" yaml:"pos_tag,omitempty"`

	// POSScore is the tagger's confidence in POSTag.
	POSScore float64 `json:"pos_score,omitempty" yaml:"pos_score,omitempty"`

	// EntityType is the accepted named-entity label (PER, LOC, ORG, MISC).
	EntityType string `json:"entity_type,omitempty" yaml:"entity_type,omitempty"`

	// Sentiment is the word-level sentiment. Nil means no result was
	// obtained; see Report.UsedModels for why.
	Sentiment *SentimentScore `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`

	// Morphology holds feature=value pairs such as Poss=Yes.
	Morphology map[string]string `json:"morphology,omitempty" yaml:"morphology,omitempty"`
}

// Sentence is one sentence of the input in text order.
type Sentence struct {
	Text      string `json:"text" yaml:"text"`
	Index     int    `json:"index" yaml:"index"`
	WordCount int    `json:"word_count" yaml:"word_count"`
}

// Verse is one non-blank line of a poem with its stanza coordinates.
type Verse struct {
	Text          string `json:"text" yaml:"text"`
	Index         int    `json:"index" yaml:"index"`
	Stanza        int    `json:"stanza" yaml:"stanza"`
	VerseInStanza int    `json:"verse_in_stanza" yaml:"verse_in_stanza"`
	WordCount     int    `json:"word_count" yaml:"word_count"`
	SyllableCount int    `json:"syllable_count" yaml:"syllable_count"`
}

// SentimentLabel is the fixed three-way sentiment taxonomy.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentScore is a normalized sentiment result. Score is a polarity in
// [-1, 1]; Confidence is the collaborator's own score for its label.
type SentimentScore struct {
	Label      SentimentLabel `json:"label" yaml:"label"`
	Score      float64        `json:"score" yaml:"score"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
}

// Entity is a span reported by an NER or ML POS collaborator.
type Entity struct {
	Word  string  `json:"word" yaml:"word"`
	Label string  `json:"label" yaml:"label"`
	Score float64 `json:"score" yaml:"score"`
	Start int     `json:"start" yaml:"start"`
	End   int     `json:"end" yaml:"end"`
}

// WordEmbedding pairs a word with its embedding vector and the position of
// its first token.
type WordEmbedding struct {
	Word     string    `json:"word" yaml:"word"`
	Position int       `json:"position" yaml:"position"`
	Vector   []float32 `json:"-" yaml:"-"`
}
