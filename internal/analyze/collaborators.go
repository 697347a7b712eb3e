// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/dichter/internal/collab"
	"github.com/pdiddy/dichter/internal/postag"
	"github.com/pdiddy/dichter/internal/tokenize"
	"github.com/pdiddy/dichter/pkg/types"
)

// runCollaborators runs the sentiment, entity, and embedding calls for the
// requested aspects and returns the word embeddings.
func (a *Analyzer) runCollaborators(ctx context.Context, r *types.Report) ([]types.WordEmbedding, error) {
	if r.HasAspect(types.AspectSentiment) {
		if err := a.annotateSentiment(ctx, r); err != nil {
			return nil, err
		}
	}
	if r.HasAspect(types.AspectEntities) {
		if err := a.recognizeEntities(ctx, r); err != nil {
			return nil, err
		}
	}
	if r.HasAspect(types.AspectSemantic) {
		return a.embedWords(ctx, r)
	}
	return nil, nil
}

// annotateSentiment classifies every sentence and, when enabled, every
// distinct word. Failed items keep a nil score and add a StageError.
func (a *Analyzer) annotateSentiment(ctx context.Context, r *types.Report) error {
	if a.sentiment == nil {
		r.UsedModels.Sentiment = types.ModelUnavailable
		return nil
	}
	size := a.cfg.Collaborators.BatchSize
	classify := func(ctx context.Context, text string) collab.Result {
		return collab.Classify(ctx, a.sentiment, text)
	}

	texts := make([]string, len(r.Sentences))
	for i, s := range r.Sentences {
		texts[i] = s.Text
	}
	results, err := batched(ctx, texts, size, classify)
	if err != nil {
		return err
	}

	summary := &types.SentimentSummary{Sentences: make([]*types.SentimentScore, len(results))}
	var ok, unavailable int
	for i, res := range results {
		s := res.Sentiment()
		summary.Sentences[i] = s
		switch {
		case s != nil:
			ok++
			switch s.Label {
			case types.SentimentPositive:
				summary.Positive++
			case types.SentimentNegative:
				summary.Negative++
			default:
				summary.Neutral++
			}
		case res.Status == collab.StatusUnavailable:
			unavailable++
		default:
			summary.Failed++
			a.recordError(r, StageSentiment, texts[i], res.Reason)
		}
	}
	summary.Overall = collab.Aggregate(summary.Sentences)

	switch {
	case ok > 0:
		r.UsedModels.Sentiment = collab.SourceOf(a.sentiment)
		r.Sentiment = summary
	case unavailable == len(results):
		r.UsedModels.Sentiment = types.ModelUnavailable
		return nil
	default:
		r.UsedModels.Sentiment = types.ModelError
		r.Sentiment = summary
	}

	if a.cfg.Collaborators.SkipTokenSentiment {
		return nil
	}

	words := distinctWords(r.Tokens, 1)
	wordResults, err := batched(ctx, words, size, classify)
	if err != nil {
		return err
	}
	scores := make(map[string]*types.SentimentScore, len(words))
	for i, res := range wordResults {
		if res.Status == collab.StatusError {
			a.recordError(r, StageSentiment, words[i], res.Reason)
		}
		scores[words[i]] = res.Sentiment()
	}
	for i := range r.Tokens {
		if !r.Tokens[i].IsPunctuation {
			r.Tokens[i].Sentiment = scores[strings.ToLower(r.Tokens[i].Text)]
		}
	}
	return nil
}

// recognizeEntities runs NER per sentence and keeps entities that clear
// the score floor and match a token exactly.
func (a *Analyzer) recognizeEntities(ctx context.Context, r *types.Report) error {
	if a.ner == nil {
		r.UsedModels.Entities = types.ModelUnavailable
		return nil
	}

	type outcome struct {
		entities []types.Entity
		err      error
	}
	results, err := batched(ctx, r.Sentences, a.cfg.Collaborators.BatchSize,
		func(ctx context.Context, s types.Sentence) outcome {
			ents, err := a.ner.Recognize(ctx, s.Text)
			return outcome{ents, err}
		})
	if err != nil {
		return err
	}

	var all []types.Entity
	var ok, unavailable int
	for i, res := range results {
		switch {
		case res.err == nil:
			ok++
			all = append(all, res.entities...)
		case errors.Is(res.err, collab.ErrUnavailable):
			unavailable++
		default:
			a.recordError(r, StageEntities, r.Sentences[i].Text, res.err.Error())
		}
	}

	switch {
	case ok > 0:
		r.UsedModels.Entities = collab.SourceOf(a.ner)
	case unavailable == len(results):
		r.UsedModels.Entities = types.ModelUnavailable
		return nil
	default:
		r.UsedModels.Entities = types.ModelError
		return nil
	}

	r.Entities = collab.FilterEntities(all, r.Tokens, a.cfg.Collaborators.EntityMinScore)
	labels := make(map[string]string, len(r.Entities))
	for _, e := range r.Entities {
		key := strings.ToLower(strings.TrimSpace(e.Word))
		if _, seen := labels[key]; !seen {
			labels[key] = e.Label
		}
	}
	for i := range r.Tokens {
		if l, ok := labels[strings.ToLower(r.Tokens[i].Text)]; ok && !r.Tokens[i].IsPunctuation {
			r.Tokens[i].EntityType = l
		}
	}
	return nil
}

// embedWords embeds each distinct word long enough to carry meaning. The
// returned slice is in first-occurrence order; wordSequence expands it back
// to the text's word order.
func (a *Analyzer) embedWords(ctx context.Context, r *types.Report) ([]types.WordEmbedding, error) {
	if a.embedder == nil {
		r.UsedModels.Embeddings = types.ModelUnavailable
		return nil, nil
	}

	words := distinctWords(r.Tokens, a.cfg.Semantic.MinWordLength)
	first := firstPositions(r.Tokens)

	type outcome struct {
		vec []float32
		err error
	}
	results, err := batched(ctx, words, a.cfg.Collaborators.BatchSize,
		func(ctx context.Context, w string) outcome {
			v, err := a.embedder.Embed(ctx, w)
			return outcome{v, err}
		})
	if err != nil {
		return nil, err
	}

	var out []types.WordEmbedding
	var unavailable, failed int
	for i, res := range results {
		switch {
		case res.err == nil && len(res.vec) > 0:
			out = append(out, types.WordEmbedding{Word: words[i], Position: first[words[i]], Vector: res.vec})
		case errors.Is(res.err, collab.ErrUnavailable):
			unavailable++
		default:
			failed++
			reason := "empty vector"
			if res.err != nil {
				reason = res.err.Error()
			}
			a.recordError(r, StageEmbeddings, words[i], reason)
		}
	}

	switch {
	case len(out) > 0:
		r.UsedModels.Embeddings = collab.SourceOf(a.embedder)
	case failed > 0:
		r.UsedModels.Embeddings = types.ModelError
	case unavailable > 0 || len(words) == 0:
		r.UsedModels.Embeddings = types.ModelUnavailable
	}
	return out, nil
}

// tagPOS applies the ML tagger as a strict override when it succeeds on
// every sentence and falls back to the rule-based tagger otherwise.
func (a *Analyzer) tagPOS(ctx context.Context, r *types.Report) error {
	if a.pos != nil && r.HasAspect(types.AspectPOS) {
		tagged, err := a.mlTags(ctx, r)
		switch {
		case err == nil:
			if err := sameTokens(r.Tokens, tagged); err != nil {
				return err
			}
			r.Tokens = tagged
			r.UsedModels.POS = collab.SourceOf(a.pos)
			r.POSDistribution = postag.Distribution(r.Tokens)
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case !errors.Is(err, collab.ErrUnavailable):
			a.recordError(r, StagePOS, "", err.Error())
		}
	}

	r.Tokens = postag.Tag(r.Tokens)
	if r.HasAspect(types.AspectPOS) {
		r.UsedModels.POS = types.ModelRules
		r.POSDistribution = postag.Distribution(r.Tokens)
	}
	return nil
}

// mlTags runs the ML tagger over every sentence and aligns its spans with
// the tokens in order. Tokens without a matching span are tagged X with
// score 0.
func (a *Analyzer) mlTags(ctx context.Context, r *types.Report) ([]types.Token, error) {
	type outcome struct {
		spans []types.Entity
		err   error
	}
	results, err := batched(ctx, r.Sentences, a.cfg.Collaborators.BatchSize,
		func(ctx context.Context, s types.Sentence) outcome {
			spans, err := a.pos.Tag(ctx, s.Text)
			return outcome{spans, err}
		})
	if err != nil {
		return nil, err
	}

	var spans []types.Entity
	for i, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("tagging sentence %d: %w", i, res.err)
		}
		spans = append(spans, res.spans...)
	}

	out := make([]types.Token, len(r.Tokens))
	next := 0
	for i, t := range r.Tokens {
		t.POSTag, t.POSScore = postag.TagX, 0
		for j := next; j < len(spans); j++ {
			if strings.EqualFold(strings.TrimSpace(spans[j].Word), t.Text) {
				t.POSTag = strings.ToUpper(spans[j].Label)
				t.POSScore = spans[j].Score
				next = j + 1
				break
			}
		}
		out[i] = t
	}
	return out, nil
}

// sameTokens checks that tagging kept every token in place.
func sameTokens(before, after []types.Token) error {
	if len(before) != len(after) {
		return &InvariantError{Stage: StagePOS, Err: fmt.Errorf("%d tokens became %d", len(before), len(after))}
	}
	for i := range before {
		if before[i].Offset != after[i].Offset || before[i].Position != after[i].Position {
			return &InvariantError{Stage: StagePOS, Token: before[i].Text, Err: fmt.Errorf("token moved")}
		}
	}
	return nil
}

func (a *Analyzer) recordError(r *types.Report, stage, item, reason string) {
	a.logger.Warn("collaborator call failed", "stage", stage, "item", item, "reason", reason)
	r.Errors = append(r.Errors, types.StageError{Stage: stage, Item: item, Reason: reason})
}

// distinctWords returns lowercased word texts of at least minLen runes in
// first-occurrence order.
func distinctWords(tokens []types.Token, minLen int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tokenize.Words(tokens) {
		w := strings.ToLower(t.Text)
		if seen[w] || utf8.RuneCountInString(w) < minLen {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// wordSequence returns one embedding per word token that has a vector in
// distinct, in text order. Repeated words share the vector.
func wordSequence(tokens []types.Token, distinct []types.WordEmbedding) []types.WordEmbedding {
	vectors := make(map[string][]float32, len(distinct))
	for _, e := range distinct {
		vectors[e.Word] = e.Vector
	}
	var out []types.WordEmbedding
	for _, t := range tokenize.Words(tokens) {
		w := strings.ToLower(t.Text)
		if v, ok := vectors[w]; ok {
			out = append(out, types.WordEmbedding{Word: w, Position: t.Position, Vector: v})
		}
	}
	return out
}

func firstPositions(tokens []types.Token) map[string]int {
	pos := make(map[string]int)
	for _, t := range tokenize.Words(tokens) {
		w := strings.ToLower(t.Text)
		if _, ok := pos[w]; !ok {
			pos[w] = t.Position
		}
	}
	return pos
}
