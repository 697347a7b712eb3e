// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/viterin/vek/vek32"

	"github.com/pdiddy/dichter/pkg/types"
)

// DefaultHashDimension is the vector size of a HashEmbedder built with
// dimension zero.
const DefaultHashDimension = 128

// hashProbes is the number of vector slots each trigram touches.
const hashProbes = 4

// HashEmbedder is a deterministic, model-free embedder. Each character
// trigram of the padded, lowercased word adds a signed unit to a few
// hashed slots; the result is L2-normalized. Words sharing many trigrams
// get similar vectors, which is enough to exercise the semantic stages
// offline.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder returns an embedder producing vectors of dim floats.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = DefaultHashDimension
	}
	return &HashEmbedder{dim: dim}
}

// Dimension is the length of every returned vector.
func (h *HashEmbedder) Dimension() int { return h.dim }

// Source implements Sourced.
func (h *HashEmbedder) Source() types.ModelSource { return types.ModelRules }

// Embed returns the trigram hash vector of text. Empty text yields a zero
// vector.
func (h *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, h.dim)
	for _, g := range trigrams(text) {
		sum := fnv64(g)
		state := sum
		for i := range hashProbes {
			state = state*6364136223846793005 + 1442695040888963407
			sign := float32(1)
			if (sum>>i)&1 == 0 {
				sign = -1
			}
			vec[state%uint64(h.dim)] += sign
		}
	}

	norm := vek32.Dot(vec, vec)
	if norm == 0 {
		return vec, nil
	}
	vek32.MulNumber_Inplace(vec, float32(1/math.Sqrt(float64(norm))))
	return vec, nil
}

// trigrams returns the rune trigrams of " text ", lowercased.
func trigrams(text string) []string {
	r := []rune(" " + strings.ToLower(strings.TrimSpace(text)) + " ")
	if len(r) < 3 || strings.TrimSpace(string(r)) == "" {
		return nil
	}
	out := make([]string, 0, len(r)-2)
	for i := 0; i+3 <= len(r); i++ {
		out = append(out, string(r[i:i+3]))
	}
	return out
}

func fnv64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
