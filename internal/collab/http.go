// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pdiddy/dichter/internal/httputil"
	"github.com/pdiddy/dichter/pkg/types"
)

// HTTPBackend calls a remote inference server that exposes one JSON
// endpoint per collaborator:
//
//	POST /classify {"text": ...} -> {"label": ..., "score": ...}
//	POST /entities {"text": ...} -> {"entities": [{"word", "label", "score", "start", "end"}]}
//	POST /pos      {"text": ...} -> {"entities": [...]}
//	POST /embed    {"text": ...} -> {"embedding": [...]}
//
// A 404 from an endpoint means the server does not offer that model and is
// reported as ErrUnavailable.
type HTTPBackend struct {
	cfg    types.RemoteConfig
	client *http.Client
	logger *slog.Logger
}

// NewHTTPBackend returns a backend for cfg. A nil client gets one with
// cfg.Timeout; a nil logger discards.
func NewHTTPBackend(cfg types.RemoteConfig, client *http.Client, logger *slog.Logger) *HTTPBackend {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTPBackend{cfg: cfg, client: client, logger: logger}
}

type textRequest struct {
	Text string `json:"text"`
}

type entitiesResponse struct {
	Entities []types.Entity `json:"entities"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Classify implements SentimentClassifier.
func (b *HTTPBackend) Classify(ctx context.Context, text string) (Prediction, error) {
	var p Prediction
	if err := b.post(ctx, "/classify", text, &p); err != nil {
		return Prediction{}, err
	}
	return p, nil
}

// Recognize implements EntityRecognizer.
func (b *HTTPBackend) Recognize(ctx context.Context, text string) ([]types.Entity, error) {
	var r entitiesResponse
	if err := b.post(ctx, "/entities", text, &r); err != nil {
		return nil, err
	}
	for i := range r.Entities {
		r.Entities[i].Label = EntityLabel(r.Entities[i].Label)
	}
	return r.Entities, nil
}

// Tag implements POSTagger.
func (b *HTTPBackend) Tag(ctx context.Context, text string) ([]types.Entity, error) {
	var r entitiesResponse
	if err := b.post(ctx, "/pos", text, &r); err != nil {
		return nil, err
	}
	return r.Entities, nil
}

// Embed implements Embedder.
func (b *HTTPBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	var r embedResponse
	if err := b.post(ctx, "/embed", text, &r); err != nil {
		return nil, err
	}
	if len(r.Embedding) == 0 {
		return nil, fmt.Errorf("embed: empty embedding")
	}
	return r.Embedding, nil
}

func (b *HTTPBackend) post(ctx context.Context, path, text string, out any) error {
	if b.cfg.BaseURL == "" {
		return fmt.Errorf("%s: no base URL: %w", path, ErrUnavailable)
	}

	body, err := json.Marshal(textRequest{Text: text})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(b.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", b.cfg.UserAgent)
	}
	if b.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetryLogged(ctx, b.client, req, b.cfg.MaxRetries, b.logger)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrUnavailable)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
