// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math"
	"time"
)

// ModelSource records which implementation produced one aspect of a report.
// A degraded report carries ModelUnavailable or ModelError here instead of
// presenting missing values as neutral or zero.
type ModelSource string

const (
	ModelML          ModelSource = "ml"
	ModelRules       ModelSource = "rules"
	ModelLexicon     ModelSource = "lexicon"
	ModelUnavailable ModelSource = "unavailable"
	ModelError       ModelSource = "error"
	ModelSkipped     ModelSource = "skipped"
)

// UsedModels flags the source of every collaborator-backed aspect.
type UsedModels struct {
	Sentiment  ModelSource `json:"sentiment" yaml:"sentiment"`
	Entities   ModelSource `json:"entities" yaml:"entities"`
	POS        ModelSource `json:"pos" yaml:"pos"`
	Embeddings ModelSource `json:"embeddings" yaml:"embeddings"`
}

// Aspect names one independently requestable part of an analysis.
type Aspect string

const (
	AspectPOS         Aspect = "pos"
	AspectSentiment   Aspect = "sentiment"
	AspectEntities    Aspect = "entities"
	AspectStyle       Aspect = "style"
	AspectSemantic    Aspect = "semantic"
	AspectReadability Aspect = "readability"
)

// AllAspects lists every aspect in pipeline order.
var AllAspects = []Aspect{
	AspectPOS, AspectSentiment, AspectEntities,
	AspectStyle, AspectSemantic, AspectReadability,
}

// SentimentSummary aggregates sentence-level sentiment.
type SentimentSummary struct {
	Overall   *SentimentScore   `json:"overall,omitempty" yaml:"overall,omitempty"`
	Sentences []*SentimentScore `json:"sentences,omitempty" yaml:"sentences,omitempty"`
	Positive  int               `json:"positive" yaml:"positive"`
	Negative  int               `json:"negative" yaml:"negative"`
	Neutral   int               `json:"neutral" yaml:"neutral"`
	Failed    int               `json:"failed" yaml:"failed"`
}

// Summary holds whole-text statistics.
type Summary struct {
	CharacterCount   int     `json:"character_count" yaml:"character_count"`
	WordCount        int     `json:"word_count" yaml:"word_count"`
	UniqueWords      int     `json:"unique_words" yaml:"unique_words"`
	LexicalDiversity float64 `json:"lexical_diversity" yaml:"lexical_diversity"`
	AvgWordLength    float64 `json:"avg_word_length" yaml:"avg_word_length"`
	SentenceCount    int     `json:"sentence_count" yaml:"sentence_count"`
	VerseCount       int     `json:"verse_count" yaml:"verse_count"`
	StanzaCount      int     `json:"stanza_count" yaml:"stanza_count"`
	IsPoem           bool    `json:"is_poem" yaml:"is_poem"`
	DominantPOS      string  `json:"dominant_pos,omitempty" yaml:"dominant_pos,omitempty"`
	EncodingFixups   int     `json:"encoding_fixups" yaml:"encoding_fixups"`

	// Sentiment is the overall sentiment, when one was computed.
	Sentiment *SentimentScore `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
}

// StageError records a contained collaborator failure.
type StageError struct {
	Stage  string `json:"stage" yaml:"stage"`
	Item   string `json:"item,omitempty" yaml:"item,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

// Report is the assembled result of one analysis call.
type Report struct {
	ID             string    `json:"id" yaml:"id"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	Text           string    `json:"text" yaml:"text"`
	NormalizedText string    `json:"normalized_text" yaml:"normalized_text"`
	Aspects        []Aspect  `json:"aspects" yaml:"aspects"`

	Tokens    []Token    `json:"tokens" yaml:"tokens"`
	Sentences []Sentence `json:"sentences" yaml:"sentences"`
	Verses    []Verse    `json:"verses" yaml:"verses"`

	POSDistribution map[string]int      `json:"pos_distribution,omitempty" yaml:"pos_distribution,omitempty"`
	Sentiment       *SentimentSummary   `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Entities        []Entity            `json:"entities,omitempty" yaml:"entities,omitempty"`
	Rhyme           *RhymeScheme        `json:"rhyme,omitempty" yaml:"rhyme,omitempty"`
	Alliterations   []Alliteration      `json:"alliterations,omitempty" yaml:"alliterations,omitempty"`
	Repetitions     []Repetition        `json:"repetitions,omitempty" yaml:"repetitions,omitempty"`
	Parallelisms    []Parallelism       `json:"parallelisms,omitempty" yaml:"parallelisms,omitempty"`
	Punctuation     *PunctuationProfile `json:"punctuation,omitempty" yaml:"punctuation,omitempty"`
	SemanticFields  []SemanticField     `json:"semantic_fields,omitempty" yaml:"semantic_fields,omitempty"`
	Cohesion        *float64            `json:"cohesion,omitempty" yaml:"cohesion,omitempty"`
	Drift           *ThematicDrift      `json:"drift,omitempty" yaml:"drift,omitempty"`
	Readability     *ReadabilityMetrics `json:"readability,omitempty" yaml:"readability,omitempty"`
	ReadabilityBand *ReadabilityBand    `json:"readability_band,omitempty" yaml:"readability_band,omitempty"`

	Summary    Summary      `json:"summary" yaml:"summary"`
	UsedModels UsedModels   `json:"used_models" yaml:"used_models"`
	Errors     []StageError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// HasAspect reports whether a was requested for this report.
func (r *Report) HasAspect(a Aspect) bool {
	for _, x := range r.Aspects {
		if x == a {
			return true
		}
	}
	return false
}

// Round3 rounds v to three decimal places, the precision used for every
// exported score.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
