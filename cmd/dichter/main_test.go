// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dichter/internal/analyze"
	"github.com/pdiddy/dichter/internal/archive"
	"github.com/pdiddy/dichter/pkg/types"
)

func TestParseAspects(t *testing.T) {
	tests := []struct {
		in      []string
		want    []types.Aspect
		wantErr bool
	}{
		{nil, nil, false},
		{[]string{"Style", " readability "}, []types.Aspect{types.AspectStyle, types.AspectReadability}, false},
		{[]string{"pos", "pos", ""}, []types.Aspect{types.AspectPOS}, false},
		{[]string{"metre"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.in, ","), func(t *testing.T) {
			got, err := parseAspects(tt.in)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown aspect")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadInput(t *testing.T) {
	got, err := readInput("-", strings.NewReader("Hallo Welt"))
	require.NoError(t, err)
	assert.Equal(t, "Hallo Welt", got)

	path := filepath.Join(t.TempDir(), "gedicht.txt")
	require.NoError(t, os.WriteFile(path, []byte("Zeile eins\nZeile zwei"), 0o644))
	got, err = readInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Zeile eins\nZeile zwei", got)

	_, err = readInput(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	assert.NoError(t, err)
	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestTopRepetitions(t *testing.T) {
	reps := []types.Repetition{
		{Word: "und", Count: 5},
		{Word: "die", Count: 4},
		{Word: "ich", Count: 2, IsAnaphora: true},
	}
	got := topRepetitions(reps, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "ich", got[0].Word)
	assert.Equal(t, "und", got[1].Word)
	assert.Equal(t, "und", reps[0].Word, "input is not reordered")
}

func TestPrintReport(t *testing.T) {
	text := "Ich sehe die Sonne.\nIch sehe den Mond.\nIch sehe die Sterne.\nIch sehe das Land."
	r, err := analyze.New(types.AnalysisConfig{}).Analyze(context.Background(), text, analyze.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	printReport(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "Verses:      4 in 1 stanza(s)")
	assert.Contains(t, out, "Rhyme: ")
	assert.Contains(t, out, "anaphora")
	assert.Contains(t, out, "Models: sentiment=unavailable")
}

func TestFormatEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatEntries(&buf, nil, false))
	assert.Equal(t, "No reports found.\n", buf.String())

	buf.Reset()
	entries := []archive.Entry{{ID: "r1", Excerpt: "Der Mond ist aufgegangen, die goldnen Sternlein prangen", WordCount: 8}}
	require.NoError(t, formatEntries(&buf, entries, false))
	assert.Contains(t, buf.String(), "Der Mond ist aufgegangen, d...")
	assert.Contains(t, buf.String(), "1 reports")

	buf.Reset()
	require.NoError(t, formatEntries(&buf, entries, true))
	assert.Contains(t, buf.String(), `"id": "r1"`)
}
