// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dichter/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.ArchiveConfig{Dir: t.TempDir(), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(id, text string, scheme types.RhymeSchemeKind, created time.Time) *types.Report {
	r := &types.Report{
		ID:             id,
		CreatedAt:      created,
		Text:           text,
		NormalizedText: text,
		Aspects:        types.AllAspects,
		Summary:        types.Summary{WordCount: 4},
		UsedModels:     types.UsedModels{Sentiment: types.ModelLexicon},
	}
	if scheme != "" {
		r.Rhyme = &types.RhymeScheme{Pattern: []string{"A", "A", "B", "B"}, Scheme: scheme}
		r.Summary.IsPoem = true
	}
	return r
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reports := []*types.Report{
		sampleReport("r1", "Der Mond ist aufgegangen\nDie goldnen Sternlein prangen", types.SchemePaired, base),
		sampleReport("r2", "Über allen Gipfeln ist Ruh\nIn allen Wipfeln spürest du", types.SchemeCross, base.Add(time.Hour)),
		sampleReport("r3", "Der Bericht beschreibt den Mond in Prosa.", "", base.Add(2*time.Hour)),
	}
	reports[0].Sentiment = &types.SentimentSummary{
		Overall: &types.SentimentScore{Label: types.SentimentPositive, Score: 0.4, Confidence: 0.8},
	}
	for _, r := range reports {
		require.NoError(t, s.Save(context.Background(), r))
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := testStore(t)
	r := sampleReport("r1", "Der Mond ist aufgegangen", types.SchemePaired, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	r.Errors = []types.StageError{{Stage: "sentiment", Reason: "timeout"}}
	flesch := types.ReadabilityMetrics{FleschReadingEase: 71.5}
	r.Readability = &flesch

	require.NoError(t, s.Save(context.Background(), r))
	got, err := s.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestSaveReplaces(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	r := sampleReport("r1", "Der alte Text steht hier", "", time.Now().UTC())
	require.NoError(t, s.Save(ctx, r))

	r.NormalizedText = "Der neue Text steht hier"
	require.NoError(t, s.Save(ctx, r))

	entries, err := s.Retrieve(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Der neue Text steht hier", entries[0].Excerpt)

	hits, err := s.Retrieve(ctx, QueryOptions{Query: "alte"})
	require.NoError(t, err)
	assert.Empty(t, hits, "FTS index follows updates")
}

func TestSaveRejectsMissingID(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.Save(context.Background(), &types.Report{}))
	assert.Error(t, s.Save(context.Background(), nil))
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "r1"))
	assert.ErrorIs(t, s.Delete(ctx, "r1"), ErrNotFound)

	hits, err := s.Retrieve(ctx, QueryOptions{Query: "aufgegangen"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRetrieve(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all newest first", QueryOptions{}, []string{"r3", "r2", "r1"}},
		{"full text", QueryOptions{Query: "Mond"}, nil},
		{"scheme", QueryOptions{Scheme: types.SchemeCross}, []string{"r2"}},
		{"poems only", QueryOptions{PoemsOnly: true}, []string{"r2", "r1"}},
		{"sentiment", QueryOptions{Sentiment: types.SentimentPositive}, []string{"r1"}},
		{"full text and scheme", QueryOptions{Query: "Mond", Scheme: types.SchemePaired}, []string{"r1"}},
		{"limit", QueryOptions{MaxResults: 1}, []string{"r3"}},
		{"no match", QueryOptions{Query: "Sonne"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.Retrieve(context.Background(), tt.opts)
			require.NoError(t, err)
			ids := []string{}
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			if tt.want == nil {
				assert.ElementsMatch(t, []string{"r1", "r3"}, ids)
				return
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRetrieveEntryFields(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	entries, err := s.Retrieve(context.Background(), QueryOptions{Scheme: types.SchemePaired})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "Der Mond ist aufgegangen", e.Excerpt)
	assert.Equal(t, "paired", e.Scheme)
	assert.True(t, e.IsPoem)
	assert.Equal(t, 4, e.WordCount)
	assert.Equal(t, "positive", e.Sentiment)
	assert.Nil(t, e.Flesch)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), e.CreatedAt)
}

func TestExcerpt(t *testing.T) {
	long := ""
	for range 100 {
		long += "a"
	}
	assert.Equal(t, "erste Zeile", excerpt("  erste Zeile\nzweite"))
	assert.Equal(t, []rune(long)[:80], []rune(excerpt(long))[:80])
	assert.Equal(t, '…', []rune(excerpt(long))[80])
}

func TestExport(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	path, err := s.ExportYAML(ctx, QueryOptions{PoemsOnly: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "export.yaml"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fromYAML []types.Report
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "r2", fromYAML[0].ID)

	path, err = s.ExportJSON(ctx, QueryOptions{})
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	var fromJSON []types.Report
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Len(t, fromJSON, 3)
}

func TestImport(t *testing.T) {
	s := testStore(t)
	dir := t.TempDir()

	r1 := sampleReport("j1", "Ein Text als JSON gespeichert", "", time.Now().UTC())
	data, err := json.Marshal(r1)
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(jsonPath, data, 0o644))

	r2 := sampleReport("y1", "Ein Text als YAML gespeichert", "", time.Now().UTC())
	data, err = yaml.Marshal(r2)
	require.NoError(t, err)
	yamlPath := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(yamlPath, data, 0o644))

	badPath := filepath.Join(dir, "c.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{not json"), 0o644))

	var out bytes.Buffer
	summary, err := s.Import(context.Background(),
		[]string{jsonPath, yamlPath, badPath, filepath.Join(dir, "missing.json")}, &out)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Imported: 2, Failed: 2}, summary)
	assert.Contains(t, out.String(), "imported: 2, failed: 2")

	_, err = s.Get(context.Background(), "y1")
	assert.NoError(t, err)
}

func TestNewStoreRequiresDir(t *testing.T) {
	_, err := NewStore(types.ArchiveConfig{})
	assert.Error(t, err)
}
