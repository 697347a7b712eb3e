// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package semantic clusters word embeddings into semantic fields and
// measures cohesion and thematic drift across a text.
package semantic

import (
	"math"
	"sort"
	"strings"

	"github.com/viterin/vek/vek32"
	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/dichter/pkg/types"
)

// Cosine returns the cosine similarity of a and b clamped to [-1, 1]. It is
// 0 when the vectors differ in length, are empty, or either has zero norm.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na := float64(vek32.Dot(a, a))
	nb := float64(vek32.Dot(b, b))
	if na == 0 || nb == 0 {
		return 0
	}
	sim := float64(vek32.Dot(a, b)) / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, sim))
}

// Centroid returns the element-wise mean of vectors. Vectors whose length
// differs from the first are skipped. It returns nil for no input.
func Centroid(vectors [][]float32) []float32 {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil
	}
	dim := len(vectors[0])
	sum := make([]float32, dim)
	n := 0
	for _, v := range vectors {
		if len(v) != dim {
			continue
		}
		vek32.Add_Inplace(sum, v)
		n++
	}
	vek32.MulNumber_Inplace(sum, 1/float32(n))
	return sum
}

// Dedupe keeps the first embedding of every lowercased word and drops
// entries without a vector.
func Dedupe(embeddings []types.WordEmbedding) []types.WordEmbedding {
	seen := make(map[string]bool, len(embeddings))
	var out []types.WordEmbedding
	for _, e := range embeddings {
		key := strings.ToLower(e.Word)
		if seen[key] || len(e.Vector) == 0 {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// Fields groups words into semantic fields. Two words are linked when their
// cosine similarity exceeds cfg.ClusterThreshold; each connected component
// of two or more words is a field. Fields are sorted by size, then by
// coherence, and capped at cfg.MaxFields.
func Fields(embeddings []types.WordEmbedding, cfg types.SemanticConfig) []types.SemanticField {
	words := Dedupe(embeddings)
	n := len(words)
	if n < 2 {
		return nil
	}

	sims := make([][]float64, n)
	for i := range sims {
		sims[i] = make([]float64, n)
	}
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := Cosine(words[i].Vector, words[j].Vector)
			sims[i][j], sims[j][i] = s, s
			if s > cfg.ClusterThreshold {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	visited := make([]bool, n)
	var fields []types.SemanticField
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		component := bfs(start, adj, visited)
		if len(component) < 2 {
			continue
		}
		fields = append(fields, buildField(words, sims, component, cfg.MaxRepresentatives))
	}

	sort.SliceStable(fields, func(i, j int) bool {
		if len(fields[i].Words) != len(fields[j].Words) {
			return len(fields[i].Words) > len(fields[j].Words)
		}
		return fields[i].Coherence > fields[j].Coherence
	})
	if cfg.MaxFields > 0 && len(fields) > cfg.MaxFields {
		fields = fields[:cfg.MaxFields]
	}
	return fields
}

// bfs collects the component containing start in index order.
func bfs(start int, adj [][]int, visited []bool) []int {
	queue := []int{start}
	visited[start] = true
	var component []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		component = append(component, cur)
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	sort.Ints(component)
	return component
}

func buildField(words []types.WordEmbedding, sims [][]float64, component []int, maxReps int) types.SemanticField {
	vectors := make([][]float32, len(component))
	field := types.SemanticField{Words: make([]string, len(component))}
	for k, idx := range component {
		vectors[k] = words[idx].Vector
		field.Words[k] = words[idx].Word
	}

	centroid := Centroid(vectors)
	type scored struct {
		word string
		sim  float64
	}
	ranked := make([]scored, len(component))
	for k, idx := range component {
		ranked[k] = scored{word: words[idx].Word, sim: Cosine(words[idx].Vector, centroid)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].sim > ranked[j].sim })
	if maxReps <= 0 || maxReps > len(ranked) {
		maxReps = len(ranked)
	}
	for _, r := range ranked[:maxReps] {
		field.Representatives = append(field.Representatives, r.word)
	}

	var pairwise []float64
	for a := 0; a < len(component); a++ {
		for b := a + 1; b < len(component); b++ {
			pairwise = append(pairwise, sims[component[a]][component[b]])
		}
	}
	field.Coherence = stat.Mean(pairwise, nil)
	return field
}

// Cohesion is the mean cosine similarity of consecutive word vectors, or 0
// for fewer than two vectors.
func Cohesion(embeddings []types.WordEmbedding) float64 {
	if len(embeddings) < 2 {
		return 0
	}
	sims := make([]float64, 0, len(embeddings)-1)
	for i := 1; i < len(embeddings); i++ {
		sims = append(sims, Cosine(embeddings[i-1].Vector, embeddings[i].Vector))
	}
	return stat.Mean(sims, nil)
}

// Drift splits embeddings into consecutive non-overlapping windows of the
// given size, keeping a shorter trailing window, and compares the centroids
// of adjacent windows. A similarity below threshold is a thematic shift of
// magnitude 1 - similarity. Consistency is 1 minus the mean shift magnitude,
// or 1 when there is no shift.
func Drift(embeddings []types.WordEmbedding, window int, threshold float64) types.ThematicDrift {
	drift := types.ThematicDrift{Consistency: 1}
	if window <= 0 || len(embeddings) == 0 {
		return drift
	}

	var (
		centroids [][]float32
		starts    []int
	)
	for start := 0; start < len(embeddings); start += window {
		end := min(start+window, len(embeddings))
		vectors := make([][]float32, 0, end-start)
		for _, e := range embeddings[start:end] {
			vectors = append(vectors, e.Vector)
		}
		centroids = append(centroids, Centroid(vectors))
		starts = append(starts, embeddings[start].Position)
	}
	drift.Windows = len(centroids)

	var magnitudes []float64
	for i := 1; i < len(centroids); i++ {
		sim := Cosine(centroids[i-1], centroids[i])
		if sim < threshold {
			mag := 1 - sim
			drift.Shifts = append(drift.Shifts, types.ThematicShift{
				Window:     i,
				Position:   starts[i],
				Similarity: sim,
				Magnitude:  mag,
			})
			magnitudes = append(magnitudes, mag)
		}
	}
	if len(magnitudes) > 0 {
		drift.Consistency = 1 - stat.Mean(magnitudes, nil)
	}
	return drift
}
