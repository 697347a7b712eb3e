// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func norm(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func TestHashEmbedder(t *testing.T) {
	h := NewHashEmbedder(0)
	assert.Equal(t, DefaultHashDimension, h.Dimension())

	ctx := context.Background()
	a, err := h.Embed(ctx, "Sonne")
	require.NoError(t, err)
	require.Len(t, a, DefaultHashDimension)
	assert.InDelta(t, 1.0, norm(a), 1e-5)

	again, err := h.Embed(ctx, "sonne")
	require.NoError(t, err)
	assert.Equal(t, a, again, "deterministic and case-insensitive")

	near, err := h.Embed(ctx, "Sonnen")
	require.NoError(t, err)
	far, err := h.Embed(ctx, "Quark")
	require.NoError(t, err)
	assert.Greater(t, dot(a, near), dot(a, far))
}

func TestHashEmbedderEmpty(t *testing.T) {
	v, err := NewHashEmbedder(8).Embed(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, v, 8)
	assert.Equal(t, 0.0, norm(v))
}
