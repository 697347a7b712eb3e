// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze runs the full text analysis pipeline and assembles one
// report: normalize, tokenize, segment, call the external collaborators,
// tag parts of speech, detect stylistic devices, cluster semantics, score
// readability, and summarize.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/dichter/internal/cache"
	"github.com/pdiddy/dichter/internal/collab"
	"github.com/pdiddy/dichter/internal/normalize"
	"github.com/pdiddy/dichter/internal/readability"
	"github.com/pdiddy/dichter/internal/segment"
	"github.com/pdiddy/dichter/internal/semantic"
	"github.com/pdiddy/dichter/internal/style"
	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// Pipeline stage names, used for progress, logs, and StageError.Stage.
const (
	StageNormalize     = "normalize"
	StageTokenize      = "tokenize"
	StageSegment       = "segment"
	StageSentiment     = "sentiment"
	StageEntities      = "entities"
	StageEmbeddings    = "embeddings"
	StageCollaborators = "collaborators"
	StagePOS           = "pos"
	StageStyle         = "style"
	StageSemantic      = "semantic"
	StageReadability   = "readability"
	StageSummary       = "summary"
)

// ProgressFunc receives the stage just completed and the overall fraction
// done in (0, 1].
type ProgressFunc func(stage string, fraction float64)

// Options select what one Analyze call computes.
type Options struct {
	// Aspects restricts the analysis; empty means all aspects.
	Aspects []types.Aspect

	// Progress is called at fixed milestones. May be nil.
	Progress ProgressFunc
}

// Analyzer runs analyses with a fixed configuration and collaborator set.
// It is safe for concurrent use when its collaborators are.
type Analyzer struct {
	cfg       types.AnalysisConfig
	sentiment collab.SentimentClassifier
	ner       collab.EntityRecognizer
	pos       collab.POSTagger
	embedder  collab.Embedder
	cache     *cache.ReportCache
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSentiment sets the sentiment classifier.
func WithSentiment(c collab.SentimentClassifier) Option {
	return func(a *Analyzer) { a.sentiment = c }
}

// WithNER sets the named-entity recognizer.
func WithNER(r collab.EntityRecognizer) Option {
	return func(a *Analyzer) { a.ner = r }
}

// WithPOS sets the ML part-of-speech tagger. Without one the rule-based
// tagger is used.
func WithPOS(p collab.POSTagger) Option {
	return func(a *Analyzer) { a.pos = p }
}

// WithEmbedder sets the word embedder used by the semantic stages.
func WithEmbedder(e collab.Embedder) Option {
	return func(a *Analyzer) { a.embedder = e }
}

// WithCollaborators sets every collaborator from s.
func WithCollaborators(s *collab.Set) Option {
	return func(a *Analyzer) {
		if s == nil {
			return
		}
		a.sentiment, a.ner, a.pos, a.embedder = s.Sentiment, s.NER, s.POS, s.Embedder
	}
}

// WithCache stores finished reports in c and serves repeated inputs from
// it.
func WithCache(c *cache.ReportCache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an Analyzer for cfg. Zero-valued config fields take their
// defaults.
func New(cfg types.AnalysisConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:    cfg.WithDefaults(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze validates text and runs the pipeline over it. Validation errors
// are returned as *ValidationError and internal inconsistencies as
// *InvariantError. Collaborator failures do not fail the call; they are
// recorded in the report's Errors and UsedModels. A cancelled ctx stops
// the collaborator batches and Analyze returns ctx.Err().
//
// A report served from the cache is shared; callers must not modify it.
func (a *Analyzer) Analyze(ctx context.Context, text string, opts Options) (*types.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Validate(text, a.cfg.Limits); err != nil {
		return nil, err
	}

	aspects := opts.Aspects
	if len(aspects) == 0 {
		aspects = types.AllAspects
	}
	key := cache.Key(text, aspects)
	if r, ok := a.cache.Get(key); ok {
		a.logger.Debug("analysis cache hit", "report", r.ID)
		progress(opts.Progress, StageSummary, 1.0)
		return r, nil
	}

	started := a.now()
	r := &types.Report{
		ID:        uuid.NewString(),
		CreatedAt: started.UTC(),
		Text:      text,
		Aspects:   aspects,
		UsedModels: types.UsedModels{
			Sentiment:  types.ModelSkipped,
			Entities:   types.ModelSkipped,
			POS:        types.ModelSkipped,
			Embeddings: types.ModelSkipped,
		},
	}

	r.NormalizedText = normalize.Normalize(text)
	fixups := normalize.Fixups(text)
	progress(opts.Progress, StageNormalize, 0.1)

	r.Tokens = tokenize.Tokenize(r.NormalizedText)
	if err := checkTokens(r.NormalizedText, r.Tokens); err != nil {
		return nil, err
	}
	progress(opts.Progress, StageTokenize, 0.2)

	r.Sentences = segment.Sentences(r.NormalizedText)
	r.Verses = segment.Verses(r.NormalizedText)
	progress(opts.Progress, StageSegment, 0.3)

	embeddings, err := a.runCollaborators(ctx, r)
	if err != nil {
		return nil, err
	}
	progress(opts.Progress, StageCollaborators, 0.5)

	if err := a.tagPOS(ctx, r); err != nil {
		return nil, err
	}
	progress(opts.Progress, StagePOS, 0.6)

	if r.HasAspect(types.AspectStyle) {
		if err := a.analyzeStyle(r); err != nil {
			return nil, err
		}
	}
	progress(opts.Progress, StageStyle, 0.7)

	if r.HasAspect(types.AspectSemantic) && len(embeddings) > 0 {
		a.analyzeSemantics(r, embeddings)
	}
	progress(opts.Progress, StageSemantic, 0.8)

	if r.HasAspect(types.AspectReadability) {
		m := roundReadability(readability.Score(r.Tokens, r.Sentences))
		band := readability.Interpret(m)
		r.Readability, r.ReadabilityBand = &m, &band
	}
	progress(opts.Progress, StageReadability, 0.9)

	r.Summary = summarize(r, fixups)
	progress(opts.Progress, StageSummary, 1.0)

	a.logger.Info("analysis complete",
		"report", r.ID,
		"words", r.Summary.WordCount,
		"sentences", r.Summary.SentenceCount,
		"verses", r.Summary.VerseCount,
		"errors", len(r.Errors),
		"elapsed", a.now().Sub(started))

	a.cache.Put(key, r)
	return r, nil
}

func (a *Analyzer) analyzeStyle(r *types.Report) error {
	cfg := a.cfg
	if len(r.Verses) > 0 {
		rs := style.RhymeScheme(r.Verses, cfg.Rhyme.Threshold, cfg.Rhyme.EndingLength)
		if len(rs.Pattern) != len(r.Verses) {
			return &InvariantError{
				Stage: StageStyle,
				Err:   fmt.Errorf("rhyme pattern has %d letters for %d verses", len(rs.Pattern), len(r.Verses)),
			}
		}
		r.Rhyme = &rs
	}
	r.Alliterations = style.Alliterations(r.Tokens, 2)
	r.Repetitions = style.Repetitions(r.Tokens, cfg.Style.MinRepetitionLength, cfg.Style.AnaphoraWindow)
	r.Parallelisms = style.Parallelisms(r.Sentences, cfg.Style.ParallelismThreshold)
	p := style.Punctuation(r.Tokens)
	r.Punctuation = &p
	return nil
}

func (a *Analyzer) analyzeSemantics(r *types.Report, embeddings []types.WordEmbedding) {
	cfg := a.cfg.Semantic
	r.SemanticFields = semantic.Fields(embeddings, cfg)
	for i := range r.SemanticFields {
		r.SemanticFields[i].Coherence = types.Round3(r.SemanticFields[i].Coherence)
	}
	seq := wordSequence(r.Tokens, embeddings)
	cohesion := types.Round3(semantic.Cohesion(seq))
	r.Cohesion = &cohesion
	drift := semantic.Drift(seq, cfg.DriftWindow, cfg.DriftThreshold)
	drift.Consistency = types.Round3(drift.Consistency)
	r.Drift = &drift
}

// checkTokens verifies that positions are dense and that every offset
// points at the token's own text.
func checkTokens(text string, tokens []types.Token) error {
	runes := []rune(text)
	prev := -1
	for i, t := range tokens {
		n := len([]rune(t.Text))
		switch {
		case t.Position != i:
			return &InvariantError{Stage: StageTokenize, Token: t.Text, Err: fmt.Errorf("position %d at index %d", t.Position, i)}
		case t.Offset <= prev || t.Offset+n > len(runes):
			return &InvariantError{Stage: StageTokenize, Token: t.Text, Err: fmt.Errorf("offset %d out of order", t.Offset)}
		case string(runes[t.Offset:t.Offset+n]) != t.Text:
			return &InvariantError{Stage: StageTokenize, Token: t.Text, Err: fmt.Errorf("offset %d does not match text", t.Offset)}
		}
		prev = t.Offset
	}
	return nil
}

func roundReadability(m types.ReadabilityMetrics) types.ReadabilityMetrics {
	m.AvgWordsPerSentence = types.Round3(m.AvgWordsPerSentence)
	m.AvgSyllablesPerWord = types.Round3(m.AvgSyllablesPerWord)
	m.PolysyllablePercent = types.Round3(m.PolysyllablePercent)
	m.LongWordPercent = types.Round3(m.LongWordPercent)
	m.MonosyllablePercent = types.Round3(m.MonosyllablePercent)
	m.FleschReadingEase = types.Round3(m.FleschReadingEase)
	m.WienerIndex = types.Round3(m.WienerIndex)
	return m
}

func progress(fn ProgressFunc, stage string, fraction float64) {
	if fn != nil {
		fn(stage, fraction)
	}
}
