// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"strings"

	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// Weights of the combined parallelism score.
const (
	lengthWeight = 0.3
	wordWeight   = 0.7
)

// Parallelisms compares every pair of sentences and returns those whose
// combined similarity exceeds threshold. The combined score weights the
// word-count ratio and the case-insensitive word-set Jaccard index.
func Parallelisms(sentences []types.Sentence, threshold float64) []types.Parallelism {
	sets := make([]map[string]bool, len(sentences))
	for i, s := range sentences {
		sets[i] = wordSet(s.Text)
	}

	var out []types.Parallelism
	for i := 0; i < len(sentences); i++ {
		for j := i + 1; j < len(sentences); j++ {
			lenSim := lengthSimilarity(sentences[i].WordCount, sentences[j].WordCount)
			wordSim := Jaccard(sets[i], sets[j])
			sim := lengthWeight*lenSim + wordWeight*wordSim
			if sim > threshold {
				out = append(out, types.Parallelism{
					SentenceI:        sentences[i].Index,
					SentenceJ:        sentences[j].Index,
					Similarity:       sim,
					LengthSimilarity: lenSim,
					WordSimilarity:   wordSim,
				})
			}
		}
	}
	return out
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}

func lengthSimilarity(a, b int) float64 {
	hi := max(a, b)
	if hi == 0 {
		return 0
	}
	return float64(min(a, b)) / float64(hi)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range tokenize.WordTexts(text) {
		set[strings.ToLower(w)] = true
	}
	return set
}
