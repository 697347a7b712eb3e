// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// RhymeSchemeKind names a recognized rhyme scheme.
type RhymeSchemeKind string

const (
	SchemePaired    RhymeSchemeKind = "paired"    // Paarreim, AABB
	SchemeCross     RhymeSchemeKind = "cross"     // Kreuzreim, ABAB
	SchemeEnclosed  RhymeSchemeKind = "enclosed"  // umarmender Reim, ABBA
	SchemeMonorhyme RhymeSchemeKind = "monorhyme" // Haufenreim, AAAA
	SchemeFree      RhymeSchemeKind = "free"
)

// RhymePair records two verses whose endings matched.
type RhymePair struct {
	VerseI     int     `json:"verse_i" yaml:"verse_i"`
	VerseJ     int     `json:"verse_j" yaml:"verse_j"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// RhymeScheme is the letter pattern assigned to a list of verses.
// len(Pattern) always equals the number of verses analyzed.
type RhymeScheme struct {
	Pattern []string        `json:"pattern" yaml:"pattern"`
	Endings []string        `json:"endings" yaml:"endings"`
	Pairs   []RhymePair     `json:"pairs" yaml:"pairs"`
	Scheme  RhymeSchemeKind `json:"scheme" yaml:"scheme"`
}

// PatternString joins the pattern letters, e.g. "ABBA".
func (r RhymeScheme) PatternString() string {
	return strings.Join(r.Pattern, "")
}

// Alliteration is a run of nearby words sharing their initial sound.
type Alliteration struct {
	Sound     string   `json:"sound" yaml:"sound"`
	Words     []string `json:"words" yaml:"words"`
	Positions []int    `json:"positions" yaml:"positions"`
}

// Repetition groups the occurrences of one lowercased word.
type Repetition struct {
	Word       string `json:"word" yaml:"word"`
	Count      int    `json:"count" yaml:"count"`
	Positions  []int  `json:"positions" yaml:"positions"`
	IsAnaphora bool   `json:"is_anaphora" yaml:"is_anaphora"`
	IsEpiphora bool   `json:"is_epiphora" yaml:"is_epiphora"`
}

// Parallelism is a pair of structurally similar sentences.
type Parallelism struct {
	SentenceI        int     `json:"sentence_i" yaml:"sentence_i"`
	SentenceJ        int     `json:"sentence_j" yaml:"sentence_j"`
	Similarity       float64 `json:"similarity" yaml:"similarity"`
	LengthSimilarity float64 `json:"length_similarity" yaml:"length_similarity"`
	WordSimilarity   float64 `json:"word_similarity" yaml:"word_similarity"`
}

// PunctuationStyle classifies the dominant punctuation habit of a text.
type PunctuationStyle string

const (
	PunctuationExpressive  PunctuationStyle = "expressive"
	PunctuationQuestioning PunctuationStyle = "questioning"
	PunctuationComplex     PunctuationStyle = "complex"
	PunctuationNeutral     PunctuationStyle = "neutral"
)

// PunctuationProfile tallies punctuation tokens by symbol.
type PunctuationProfile struct {
	Total       int                `json:"total" yaml:"total"`
	Counts      map[string]int     `json:"counts" yaml:"counts"`
	Percentages map[string]float64 `json:"percentages" yaml:"percentages"`
	Style       PunctuationStyle   `json:"style" yaml:"style"`
}

// SemanticField is a connected cluster of mutually similar words.
type SemanticField struct {
	Words           []string `json:"words" yaml:"words"`
	Representatives []string `json:"representatives" yaml:"representatives"`
	Coherence       float64  `json:"coherence" yaml:"coherence"`
}

// ThematicShift marks a sharp change between two adjacent windows.
type ThematicShift struct {
	Window     int     `json:"window" yaml:"window"`
	Position   int     `json:"position" yaml:"position"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Magnitude  float64 `json:"magnitude" yaml:"magnitude"`
}

// ThematicDrift summarizes window-to-window semantic change.
type ThematicDrift struct {
	Windows     int             `json:"windows" yaml:"windows"`
	Shifts      []ThematicShift `json:"shifts" yaml:"shifts"`
	Consistency float64         `json:"consistency" yaml:"consistency"`
}

// ReadabilityMetrics holds counts and the Amstad and Wiener scores.
// FleschReadingEase is clamped to [0, 100]; WienerIndex is the raw value.
type ReadabilityMetrics struct {
	WordCount           int     `json:"word_count" yaml:"word_count"`
	SentenceCount       int     `json:"sentence_count" yaml:"sentence_count"`
	SyllableCount       int     `json:"syllable_count" yaml:"syllable_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence" yaml:"avg_words_per_sentence"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word" yaml:"avg_syllables_per_word"`
	PolysyllablePercent float64 `json:"polysyllable_percent" yaml:"polysyllable_percent"`
	LongWordPercent     float64 `json:"long_word_percent" yaml:"long_word_percent"`
	MonosyllablePercent float64 `json:"monosyllable_percent" yaml:"monosyllable_percent"`
	FleschReadingEase   float64 `json:"flesch_reading_ease" yaml:"flesch_reading_ease"`
	WienerIndex         float64 `json:"wiener_index" yaml:"wiener_index"`
}

// ReadabilityBand is the display interpretation of ReadabilityMetrics.
type ReadabilityBand struct {
	FleschLevel string `json:"flesch_level" yaml:"flesch_level"`
	WienerLevel string `json:"wiener_level" yaml:"wiener_level"`
	Audience    string `json:"audience" yaml:"audience"`
}
