// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"fmt"
	"log/slog"

	"github.com/pdiddy/dichter/pkg/types"
)

// Set bundles the collaborators selected by configuration. Nil fields are
// unavailable.
type Set struct {
	Backend   types.CollaboratorBackend
	Sentiment SentimentClassifier
	NER       EntityRecognizer
	POS       POSTagger
	Embedder  Embedder

	close func() error
}

// Close releases backend resources.
func (s *Set) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// NewSet builds the collaborators for cfg.Backend:
//
//	none     no collaborators; rule-based stages only
//	lexicon  offline lexicon sentiment and hash embeddings
//	hugot    in-process transformer pipelines
//	http     remote inference server
func NewSet(cfg types.CollaboratorConfig, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch cfg.Backend {
	case types.BackendNone:
		return &Set{Backend: cfg.Backend}, nil

	case types.BackendLexicon, "":
		return &Set{
			Backend:   types.BackendLexicon,
			Sentiment: NewLexiconClassifier(),
			Embedder:  NewHashEmbedder(DefaultHashDimension),
		}, nil

	case types.BackendHugot:
		b, err := NewHugotBackend(cfg.Hugot)
		if err != nil {
			return nil, err
		}
		logger.Info("hugot backend ready",
			"sentiment", cfg.Hugot.SentimentModel != "",
			"ner", cfg.Hugot.NERModel != "",
			"pos", cfg.Hugot.POSModel != "",
			"embedding", cfg.Hugot.EmbeddingModel != "")
		return &Set{
			Backend:   cfg.Backend,
			Sentiment: b,
			NER:       b,
			POS:       b,
			Embedder:  b,
			close:     b.Close,
		}, nil

	case types.BackendHTTP:
		b := NewHTTPBackend(cfg.Remote, nil, logger)
		return &Set{
			Backend:   cfg.Backend,
			Sentiment: b,
			NER:       b,
			POS:       b,
			Embedder:  b,
		}, nil
	}
	return nil, fmt.Errorf("unknown collaborator backend %q", cfg.Backend)
}
