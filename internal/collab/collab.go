// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collab defines the external inference collaborators used by the
// analysis pipeline (sentiment, named entities, ML part-of-speech tags, and
// word embeddings) together with the backends that implement them.
package collab

import (
	"context"
	"errors"

	"github.com/pdiddy/dichter/pkg/types"
)

// ErrUnavailable reports that a collaborator is not configured or its
// model could not be loaded. Callers fall back to rule-based stages.
var ErrUnavailable = errors.New("collaborator unavailable")

// Prediction is a raw classifier label with the classifier's confidence.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentClassifier labels a text span with a sentiment.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// EntityRecognizer returns named-entity spans found in text.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]types.Entity, error)
}

// POSTagger returns one span per word with a part-of-speech label.
type POSTagger interface {
	Tag(ctx context.Context, text string) ([]types.Entity, error)
}

// Embedder maps a text span to a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Sourced is implemented by collaborators that are not ML models.
type Sourced interface {
	Source() types.ModelSource
}

// SourceOf reports which kind of implementation c is. Collaborators that
// do not say otherwise are treated as ML models.
func SourceOf(c any) types.ModelSource {
	if s, ok := c.(Sourced); ok {
		return s.Source()
	}
	return types.ModelML
}

// Status is the outcome of one collaborator call.
type Status int

const (
	StatusOK Status = iota
	StatusUnavailable
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "error"
	}
}

// Result is a sentiment call outcome. Label and Score are set only when
// Status is StatusOK; Reason is set otherwise.
type Result struct {
	Status Status
	Label  string
	Score  float64
	Reason string
}

// Classify runs c on text and folds the outcome into a Result. A nil
// classifier or ErrUnavailable yields StatusUnavailable.
func Classify(ctx context.Context, c SentimentClassifier, text string) Result {
	if c == nil {
		return Result{Status: StatusUnavailable, Reason: ErrUnavailable.Error()}
	}
	p, err := c.Classify(ctx, text)
	switch {
	case errors.Is(err, ErrUnavailable):
		return Result{Status: StatusUnavailable, Reason: err.Error()}
	case err != nil:
		return Result{Status: StatusError, Reason: err.Error()}
	}
	return Result{Status: StatusOK, Label: p.Label, Score: p.Score}
}

// Sentiment converts an OK result to the normalized sentiment taxonomy. It
// returns nil for any other status.
func (r Result) Sentiment() *types.SentimentScore {
	if r.Status != StatusOK {
		return nil
	}
	s := NormalizeSentiment(r.Label, r.Score)
	return &s
}
