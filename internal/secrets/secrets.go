// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves credentials for remote inference backends. A
// secrets directory holds one plain-text file per secret: the filename is
// the key and the trimmed contents are the value.
//
// Known keys: inference-api-key.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// InferenceAPIKey names the bearer token for the remote inference server.
const InferenceAPIKey = "inference-api-key"

// EnvInferenceAPIKey overrides the inference-api-key file.
const EnvInferenceAPIKey = "DICHTER_INFERENCE_API_KEY"

// Store maps secret names to values.
type Store map[string]string

// Get returns the named secret or "".
func (s Store) Get(name string) string {
	return s[name]
}

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty Store. Unreadable files are logged and
// skipped.
func Load(dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable secret", "name", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}

// ResolveAPIKey picks the inference API key: an explicit value first, then
// the environment, then the secrets directory.
func ResolveAPIKey(explicit, dir string, logger *slog.Logger) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvInferenceAPIKey)); v != "" {
		return v, nil
	}
	if dir == "" {
		return "", nil
	}
	store, err := Load(dir, logger)
	if err != nil {
		return "", err
	}
	return store.Get(InferenceAPIKey), nil
}
