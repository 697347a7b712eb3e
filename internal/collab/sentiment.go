// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"math"
	"strings"

	"github.com/pdiddy/dichter/pkg/types"
)

// starPolarity maps "N stars" review labels to a polarity.
var starPolarity = map[byte]float64{
	'5': 0.9,
	'4': 0.6,
	'3': 0.0,
	'2': -0.6,
	'1': -0.9,
}

var labelAliases = map[string]types.SentimentLabel{
	"positive": types.SentimentPositive,
	"positiv":  types.SentimentPositive,
	"pos":      types.SentimentPositive,
	"label_2":  types.SentimentPositive,
	"negative": types.SentimentNegative,
	"negativ":  types.SentimentNegative,
	"neg":      types.SentimentNegative,
	"label_0":  types.SentimentNegative,
	"neutral":  types.SentimentNeutral,
	"neu":      types.SentimentNeutral,
	"label_1":  types.SentimentNeutral,
}

// NormalizeSentiment maps a raw classifier label onto the three-way
// taxonomy. Star ratings use a fixed polarity per star; other labels take
// the classifier score as polarity, negated for negative. Unknown labels
// are neutral.
func NormalizeSentiment(label string, score float64) types.SentimentScore {
	conf := clamp01(score)
	lower := strings.ToLower(strings.TrimSpace(label))

	if strings.Contains(lower, "star") {
		if p, ok := starPolarity[lower[0]]; ok {
			return types.SentimentScore{Label: labelForPolarity(p), Score: p, Confidence: conf}
		}
	}

	switch labelAliases[lower] {
	case types.SentimentPositive:
		return types.SentimentScore{Label: types.SentimentPositive, Score: conf, Confidence: conf}
	case types.SentimentNegative:
		return types.SentimentScore{Label: types.SentimentNegative, Score: -conf, Confidence: conf}
	}
	return types.SentimentScore{Label: types.SentimentNeutral, Score: 0, Confidence: conf}
}

// PolarityThreshold is the mean polarity beyond which an aggregate is
// labeled positive or negative.
const PolarityThreshold = 0.1

// Aggregate labels the mean polarity of scores. It returns nil when scores
// is empty.
func Aggregate(scores []*types.SentimentScore) *types.SentimentScore {
	var sum, conf float64
	n := 0
	for _, s := range scores {
		if s == nil {
			continue
		}
		sum += s.Score
		conf += s.Confidence
		n++
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &types.SentimentScore{
		Label:      labelForPolarity(mean),
		Score:      types.Round3(mean),
		Confidence: types.Round3(conf / float64(n)),
	}
}

func labelForPolarity(p float64) types.SentimentLabel {
	switch {
	case p > PolarityThreshold:
		return types.SentimentPositive
	case p < -PolarityThreshold:
		return types.SentimentNegative
	}
	return types.SentimentNeutral
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
