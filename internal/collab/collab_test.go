// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

type stubClassifier struct {
	pred Prediction
	err  error
}

func (s stubClassifier) Classify(context.Context, string) (Prediction, error) {
	return s.pred, s.err
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		c      SentimentClassifier
		status Status
	}{
		{"nil classifier", nil, StatusUnavailable},
		{"unavailable", stubClassifier{err: ErrUnavailable}, StatusUnavailable},
		{"wrapped unavailable", stubClassifier{err: fmt.Errorf("loading: %w", ErrUnavailable)}, StatusUnavailable},
		{"error", stubClassifier{err: errors.New("boom")}, StatusError},
		{"ok", stubClassifier{pred: Prediction{Label: "POSITIVE", Score: 0.8}}, StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify(context.Background(), tt.c, "Die Sonne scheint.")
			assert.Equal(t, tt.status, r.Status)
			if tt.status == StatusOK {
				assert.Empty(t, r.Reason)
				require.NotNil(t, r.Sentiment())
				assert.Equal(t, types.SentimentPositive, r.Sentiment().Label)
			} else {
				assert.NotEmpty(t, r.Reason)
				assert.Nil(t, r.Sentiment())
			}
		})
	}
}

func TestNormalizeSentiment(t *testing.T) {
	tests := []struct {
		label    string
		score    float64
		want     types.SentimentLabel
		polarity float64
	}{
		{"5 stars", 0.7, types.SentimentPositive, 0.9},
		{"4 stars", 0.7, types.SentimentPositive, 0.6},
		{"3 stars", 0.7, types.SentimentNeutral, 0.0},
		{"2 stars", 0.7, types.SentimentNegative, -0.6},
		{"1 star", 0.7, types.SentimentNegative, -0.9},
		{"POSITIVE", 0.8, types.SentimentPositive, 0.8},
		{"positiv", 0.8, types.SentimentPositive, 0.8},
		{"LABEL_2", 0.8, types.SentimentPositive, 0.8},
		{"negative", 0.9, types.SentimentNegative, -0.9},
		{"NEG", 0.9, types.SentimentNegative, -0.9},
		{"negativ", 0.9, types.SentimentNegative, -0.9},
		{"neutral", 0.9, types.SentimentNeutral, 0.0},
		{"LABEL_1", 0.9, types.SentimentNeutral, 0.0},
		{"something else", 0.9, types.SentimentNeutral, 0.0},
		{"positive", 1.7, types.SentimentPositive, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := NormalizeSentiment(tt.label, tt.score)
			assert.Equal(t, tt.want, got.Label)
			assert.InDelta(t, tt.polarity, got.Score, 1e-9)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestAggregate(t *testing.T) {
	assert.Nil(t, Aggregate(nil))
	assert.Nil(t, Aggregate([]*types.SentimentScore{nil}))

	got := Aggregate([]*types.SentimentScore{
		{Label: types.SentimentPositive, Score: 0.9, Confidence: 0.9},
		nil,
		{Label: types.SentimentNeutral, Score: 0, Confidence: 0.5},
	})
	require.NotNil(t, got)
	assert.Equal(t, types.SentimentPositive, got.Label)
	assert.InDelta(t, 0.45, got.Score, 1e-9)

	weak := Aggregate([]*types.SentimentScore{
		{Label: types.SentimentPositive, Score: 0.1},
		{Label: types.SentimentNeutral, Score: 0},
	})
	assert.Equal(t, types.SentimentNeutral, weak.Label, "0.05 is inside the neutral band")
}

func TestFilterEntities(t *testing.T) {
	tokens := tokenize.Tokenize("Goethe wohnte in Weimar.")
	in := []types.Entity{
		{Word: "Goethe", Label: "PER", Score: 0.99},
		{Word: "weimar", Label: "LOC", Score: 0.75},
		{Word: "##mar", Label: "LOC", Score: 0.95},
		{Word: "in Weimar", Label: "LOC", Score: 0.9},
		{Word: "wohnte", Label: "MISC", Score: 0.74},
	}
	got := FilterEntities(in, tokens, 0.75)
	require.Len(t, got, 2)
	assert.Equal(t, "Goethe", got[0].Word)
	assert.Equal(t, "weimar", got[1].Word)
}

func TestEntityLabel(t *testing.T) {
	assert.Equal(t, "PER", EntityLabel("B-PER"))
	assert.Equal(t, "LOC", EntityLabel("I-LOC"))
	assert.Equal(t, "ORG", EntityLabel("ORG"))
	assert.Equal(t, "B-", EntityLabel("B-"))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "unavailable", StatusUnavailable.String())
	assert.Equal(t, "error", StatusError.String())
}
