// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Store
	}{
		{
			name: "trims values",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, InferenceAPIKey, "  tok_abc  \n")
				writeFile(t, dir, "other", "x")
				return dir
			},
			want: Store{InferenceAPIKey: "tok_abc", "other": "x"},
		},
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			want: Store{},
		},
		{
			name: "skips empty, hidden, and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, InferenceAPIKey, "tok")
				writeFile(t, dir, "blank", " \n\t")
				writeFile(t, dir, ".gitkeep", "")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Store{InferenceAPIKey: "tok"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good", "value")
	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(bad, 0o644) })

	got, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "value", got.Get("good"))
	assert.Empty(t, got.Get("bad"))
}

func TestResolveAPIKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, InferenceAPIKey, "from-file")

	t.Setenv(EnvInferenceAPIKey, "")
	key, err := ResolveAPIKey("", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)

	t.Setenv(EnvInferenceAPIKey, "from-env")
	key, err = ResolveAPIKey("", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	key, err = ResolveAPIKey("explicit", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "explicit", key)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
