// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collab

import (
	"context"
	"fmt"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/pdiddy/dichter/pkg/types"
)

// HugotBackend runs transformer pipelines in process. Each collaborator is
// backed by its own pipeline and is unavailable when its model path is
// empty. Pipelines share one session; calls are serialized.
type HugotBackend struct {
	mu        sync.Mutex
	session   *hugot.Session
	sentiment *pipelines.TextClassificationPipeline
	ner       *pipelines.TokenClassificationPipeline
	pos       *pipelines.TokenClassificationPipeline
	embedder  *pipelines.FeatureExtractionPipeline
}

// NewHugotBackend opens a session and loads every configured model. The
// pure Go runtime is used unless an ONNX Runtime library path is set.
func NewHugotBackend(cfg types.HugotConfig) (*HugotBackend, error) {
	var (
		session *hugot.Session
		err     error
	)
	if cfg.OnnxLibraryPath != "" {
		session, err = hugot.NewORTSession(options.WithOnnxLibraryPath(cfg.OnnxLibraryPath))
	} else {
		session, err = hugot.NewGoSession()
	}
	if err != nil {
		return nil, fmt.Errorf("creating hugot session: %w", err)
	}

	b := &HugotBackend{session: session}
	if err := b.load(cfg); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *HugotBackend) load(cfg types.HugotConfig) error {
	var err error
	if cfg.SentimentModel != "" {
		b.sentiment, err = hugot.NewPipeline(b.session, hugot.TextClassificationConfig{
			ModelPath: cfg.SentimentModel,
			Name:      "sentiment",
		})
		if err != nil {
			return fmt.Errorf("loading sentiment model %s: %w", cfg.SentimentModel, err)
		}
	}
	if cfg.NERModel != "" {
		b.ner, err = hugot.NewPipeline(b.session, hugot.TokenClassificationConfig{
			ModelPath: cfg.NERModel,
			Name:      "ner",
		})
		if err != nil {
			return fmt.Errorf("loading NER model %s: %w", cfg.NERModel, err)
		}
	}
	if cfg.POSModel != "" {
		b.pos, err = hugot.NewPipeline(b.session, hugot.TokenClassificationConfig{
			ModelPath: cfg.POSModel,
			Name:      "pos",
		})
		if err != nil {
			return fmt.Errorf("loading POS model %s: %w", cfg.POSModel, err)
		}
	}
	if cfg.EmbeddingModel != "" {
		b.embedder, err = hugot.NewPipeline(b.session, hugot.FeatureExtractionConfig{
			ModelPath: cfg.EmbeddingModel,
			Name:      "embedding",
		})
		if err != nil {
			return fmt.Errorf("loading embedding model %s: %w", cfg.EmbeddingModel, err)
		}
	}
	return nil
}

// Close releases the session and all pipelines.
func (b *HugotBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session != nil {
		b.session.Destroy()
		b.session = nil
	}
	b.sentiment, b.ner, b.pos, b.embedder = nil, nil, nil, nil
	return nil
}

// Classify implements SentimentClassifier with the top label.
func (b *HugotBackend) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sentiment == nil {
		return Prediction{}, ErrUnavailable
	}

	out, err := b.sentiment.RunPipeline([]string{text})
	if err != nil {
		return Prediction{}, fmt.Errorf("sentiment inference: %w", err)
	}
	if len(out.ClassificationOutputs) == 0 || len(out.ClassificationOutputs[0]) == 0 {
		return Prediction{}, fmt.Errorf("sentiment inference: no label")
	}
	best := out.ClassificationOutputs[0][0]
	for _, c := range out.ClassificationOutputs[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return Prediction{Label: best.Label, Score: float64(best.Score)}, nil
}

// Recognize implements EntityRecognizer.
func (b *HugotBackend) Recognize(ctx context.Context, text string) ([]types.Entity, error) {
	return b.tokenClassify(ctx, text, false)
}

// Tag implements POSTagger.
func (b *HugotBackend) Tag(ctx context.Context, text string) ([]types.Entity, error) {
	return b.tokenClassify(ctx, text, true)
}

// tokenClassify runs the POS pipeline when pos is set and the NER pipeline
// otherwise. NER labels lose their BIO prefix.
func (b *HugotBackend) tokenClassify(ctx context.Context, text string, pos bool) ([]types.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.ner
	if pos {
		p = b.pos
	}
	if p == nil {
		return nil, ErrUnavailable
	}

	out, err := p.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("token classification: %w", err)
	}
	if len(out.Entities) == 0 {
		return nil, nil
	}

	entities := make([]types.Entity, 0, len(out.Entities[0]))
	for _, e := range out.Entities[0] {
		label := e.Entity
		if !pos {
			label = EntityLabel(label)
		}
		entities = append(entities, types.Entity{
			Word:  e.Word,
			Label: label,
			Score: float64(e.Score),
			Start: int(e.Start),
			End:   int(e.End),
		})
	}
	return entities, nil
}

// Embed implements Embedder.
func (b *HugotBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.embedder == nil {
		return nil, ErrUnavailable
	}

	out, err := b.embedder.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding inference: %w", err)
	}
	if len(out.Embeddings) == 0 {
		return nil, fmt.Errorf("embedding inference: no vector")
	}
	return out.Embeddings[0], nil
}
