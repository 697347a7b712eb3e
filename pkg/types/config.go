// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by collaborators that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "dichter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LimitsConfig bounds the accepted input text.
type LimitsConfig struct {
	// MinChars is the minimum number of characters after trimming (default 10).
	MinChars int `json:"min_chars" yaml:"min_chars"`

	// MaxChars is the maximum number of characters (default 10000).
	MaxChars int `json:"max_chars" yaml:"max_chars"`

	// MinLetters is the minimum number of letters the text must contain (default 3).
	MinLetters int `json:"min_letters" yaml:"min_letters"`
}

// RhymeConfig holds settings for rhyme scheme detection.
type RhymeConfig struct {
	// Threshold is the normalized Levenshtein similarity two endings must
	// exceed to rhyme (default 0.7). Zero selects the default; a negative
	// value makes every ending pair rhyme.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// EndingLength is the number of trailing characters used as the
	// phonetic ending proxy (default 3).
	EndingLength int `json:"ending_length" yaml:"ending_length"`
}

// StyleConfig holds settings for repetition and parallelism detection.
type StyleConfig struct {
	// ParallelismThreshold is the combined similarity a sentence pair must
	// exceed to be reported as parallel (default 0.6). Zero selects the
	// default; a negative value reports every pair.
	ParallelismThreshold float64 `json:"parallelism_threshold" yaml:"parallelism_threshold"`

	// MinRepetitionLength drops shorter words from repetition grouping (default 1).
	MinRepetitionLength int `json:"min_repetition_length" yaml:"min_repetition_length"`

	// AnaphoraWindow is how many leading words of a sentence count as its
	// opening for anaphora detection (default 3).
	AnaphoraWindow int `json:"anaphora_window" yaml:"anaphora_window"`
}

// SemanticConfig holds settings for semantic clustering and drift.
type SemanticConfig struct {
	// ClusterThreshold is the cosine similarity an edge must exceed
	// (default 0.5). Zero selects the default; use a small negative value
	// to keep every non-opposed edge.
	ClusterThreshold float64 `json:"cluster_threshold" yaml:"cluster_threshold"`

	// MaxFields caps the number of returned semantic fields (default 10).
	MaxFields int `json:"max_fields" yaml:"max_fields"`

	// MaxRepresentatives caps representatives per field (default 3).
	MaxRepresentatives int `json:"max_representatives" yaml:"max_representatives"`

	// DriftWindow is the number of words per drift window (default 5).
	DriftWindow int `json:"drift_window" yaml:"drift_window"`

	// DriftThreshold marks a thematic shift when consecutive window
	// centroids fall below this similarity (default 0.5). Zero selects the
	// default; -1 or lower turns shift detection off.
	DriftThreshold float64 `json:"drift_threshold" yaml:"drift_threshold"`

	// MinWordLength skips shorter words when requesting embeddings (default 3).
	MinWordLength int `json:"min_word_length" yaml:"min_word_length"`
}

// CollaboratorBackend selects the implementation behind the external
// inference interfaces.
type CollaboratorBackend string

const (
	BackendNone    CollaboratorBackend = "none"
	BackendLexicon CollaboratorBackend = "lexicon"
	BackendHugot   CollaboratorBackend = "hugot"
	BackendHTTP    CollaboratorBackend = "http"
)

// HugotConfig points the in-process transformer pipelines at local models.
// An empty model path leaves that collaborator unavailable.
type HugotConfig struct {
	SentimentModel  string `json:"sentiment_model" yaml:"sentiment_model"`
	NERModel        string `json:"ner_model" yaml:"ner_model"`
	POSModel        string `json:"pos_model" yaml:"pos_model"`
	EmbeddingModel  string `json:"embedding_model" yaml:"embedding_model"`
	OnnxLibraryPath string `json:"onnx_library_path,omitempty" yaml:"onnx_library_path,omitempty"`
}

// RemoteConfig holds settings for a remote inference server.
type RemoteConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the inference server root (e.g. "http://localhost:8089").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent as a bearer token when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of 429 retries (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CollaboratorConfig selects and tunes the external collaborators.
type CollaboratorConfig struct {
	// Backend is one of none, lexicon, hugot, http (default lexicon).
	Backend CollaboratorBackend `json:"backend" yaml:"backend"`

	// BatchSize is the number of word-level calls per chunk (default 16).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// EntityMinScore is the confidence floor for accepted entities
	// (default 0.75). Zero selects the default; a negative value keeps all.
	EntityMinScore float64 `json:"entity_min_score" yaml:"entity_min_score"`

	// SkipTokenSentiment turns off word-level sentiment annotation.
	SkipTokenSentiment bool `json:"skip_token_sentiment" yaml:"skip_token_sentiment"`

	Hugot  HugotConfig  `json:"hugot" yaml:"hugot"`
	Remote RemoteConfig `json:"remote" yaml:"remote"`
}

// CacheConfig sizes the analysis result cache.
type CacheConfig struct {
	// Size is the number of reports kept; zero disables caching (default 32).
	Size int `json:"size" yaml:"size"`
}

// AnalysisConfig groups all stage configurations for the pipeline.
type AnalysisConfig struct {
	Limits        LimitsConfig       `json:"limits" yaml:"limits"`
	Rhyme         RhymeConfig        `json:"rhyme" yaml:"rhyme"`
	Style         StyleConfig        `json:"style" yaml:"style"`
	Semantic      SemanticConfig     `json:"semantic" yaml:"semantic"`
	Collaborators CollaboratorConfig `json:"collaborators" yaml:"collaborators"`
	Cache         CacheConfig        `json:"cache" yaml:"cache"`
}

// ArchiveConfig holds settings for the report archive.
type ArchiveConfig struct {
	// Dir is the directory holding archive.db and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// DefaultAnalysisConfig returns the configuration used when no file or
// flag overrides a value.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Limits: LimitsConfig{MinChars: 10, MaxChars: 10000, MinLetters: 3},
		Rhyme:  RhymeConfig{Threshold: 0.7, EndingLength: 3},
		Style: StyleConfig{
			ParallelismThreshold: 0.6,
			MinRepetitionLength:  1,
			AnaphoraWindow:       3,
		},
		Semantic: SemanticConfig{
			ClusterThreshold:   0.5,
			MaxFields:          10,
			MaxRepresentatives: 3,
			DriftWindow:        5,
			DriftThreshold:     0.5,
			MinWordLength:      3,
		},
		Collaborators: CollaboratorConfig{
			Backend:        BackendLexicon,
			BatchSize:      16,
			EntityMinScore: 0.75,
			Remote: RemoteConfig{
				HTTPConfig: HTTPConfig{Timeout: 30 * time.Second, UserAgent: "dichter/0.1"},
				MaxRetries: 5,
			},
		},
		Cache: CacheConfig{Size: 32},
	}
}

// WithDefaults fills zero-valued fields of c from DefaultAnalysisConfig.
// Counts and sizes are also defaulted when negative. Thresholds keep a
// negative value, so zero cannot be configured for them directly.
func (c AnalysisConfig) WithDefaults() AnalysisConfig {
	d := DefaultAnalysisConfig()
	if c.Limits.MinChars <= 0 {
		c.Limits.MinChars = d.Limits.MinChars
	}
	if c.Limits.MaxChars <= 0 {
		c.Limits.MaxChars = d.Limits.MaxChars
	}
	if c.Limits.MinLetters <= 0 {
		c.Limits.MinLetters = d.Limits.MinLetters
	}
	if c.Rhyme.Threshold == 0 {
		c.Rhyme.Threshold = d.Rhyme.Threshold
	}
	if c.Rhyme.EndingLength <= 0 {
		c.Rhyme.EndingLength = d.Rhyme.EndingLength
	}
	if c.Style.ParallelismThreshold == 0 {
		c.Style.ParallelismThreshold = d.Style.ParallelismThreshold
	}
	if c.Style.MinRepetitionLength <= 0 {
		c.Style.MinRepetitionLength = d.Style.MinRepetitionLength
	}
	if c.Style.AnaphoraWindow <= 0 {
		c.Style.AnaphoraWindow = d.Style.AnaphoraWindow
	}
	if c.Semantic.ClusterThreshold == 0 {
		c.Semantic.ClusterThreshold = d.Semantic.ClusterThreshold
	}
	if c.Semantic.MaxFields <= 0 {
		c.Semantic.MaxFields = d.Semantic.MaxFields
	}
	if c.Semantic.MaxRepresentatives <= 0 {
		c.Semantic.MaxRepresentatives = d.Semantic.MaxRepresentatives
	}
	if c.Semantic.DriftWindow <= 0 {
		c.Semantic.DriftWindow = d.Semantic.DriftWindow
	}
	if c.Semantic.DriftThreshold == 0 {
		c.Semantic.DriftThreshold = d.Semantic.DriftThreshold
	}
	if c.Semantic.MinWordLength <= 0 {
		c.Semantic.MinWordLength = d.Semantic.MinWordLength
	}
	if c.Collaborators.Backend == "" {
		c.Collaborators.Backend = d.Collaborators.Backend
	}
	if c.Collaborators.BatchSize <= 0 {
		c.Collaborators.BatchSize = d.Collaborators.BatchSize
	}
	if c.Collaborators.EntityMinScore == 0 {
		c.Collaborators.EntityMinScore = d.Collaborators.EntityMinScore
	}
	if c.Collaborators.Remote.Timeout <= 0 {
		c.Collaborators.Remote.Timeout = d.Collaborators.Remote.Timeout
	}
	if c.Collaborators.Remote.UserAgent == "" {
		c.Collaborators.Remote.UserAgent = d.Collaborators.Remote.UserAgent
	}
	if c.Collaborators.Remote.MaxRetries <= 0 {
		c.Collaborators.Remote.MaxRetries = d.Collaborators.Remote.MaxRetries
	}
	return c
}
