// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dichter CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dichter/internal/secrets"
	"github.com/pdiddy/dichter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds API key files, one per key.
const secretsDir = ".secrets/"

// logger is configured in PersistentPreRunE from --log-level.
var logger = slog.New(slog.DiscardHandler)

// fileConfig is the layout of dichter.yaml.
type fileConfig struct {
	Analysis types.AnalysisConfig `yaml:"analysis"`
	Archive  types.ArchiveConfig  `yaml:"archive"`
	Log      struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// rootCmd is the base command for the dichter CLI.
var rootCmd = &cobra.Command{
	Use:   "dichter",
	Short: "German text and poetry analysis",
	Long: `dichter analyzes German prose and poetry. It reports verse and stanza
structure, rhyme scheme, alliteration, repetition, parallelism, readability
(Flesch-DE, Wiener Sachtextformel), sentiment, named entities, parts of
speech, and semantic fields.

Sentiment, entities, ML part-of-speech tags, and embeddings come from a
configurable backend (none, lexicon, hugot, http). Everything else is
rule-based and always available.

Reports can be archived in a local SQLite database and searched later.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = viper.GetString("log.level")
		}
		l, err := newLogger(level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dichter.yaml or ~/.config/dichter/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default warn)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dichter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dichter"))
		}
	}

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("archive.dir", "archive")
	viper.SetDefault("archive.max_results", 20)
	viper.SetDefault("analysis.collaborators.backend", string(types.BackendLexicon))
	viper.SetDefault("analysis.collaborators.remote.base_url", "")
	viper.SetDefault("analysis.collaborators.remote.api_key", "")
	viper.SetDefault("analysis.cache.size", 32)

	viper.SetEnvPrefix("DICHTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper settings (file, environment,
// defaults) through the yaml tags of the config types.
func loadConfig() (fileConfig, error) {
	var cfg fileConfig
	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return cfg, fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Analysis = cfg.Analysis.WithDefaults()
	return cfg, nil
}

// newLogger returns a text logger on stderr at the named level.
func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

// resolveAPIKey fills the remote API key from the environment or the
// secrets directory when the config does not set one.
func resolveAPIKey(cfg *types.CollaboratorConfig) error {
	if cfg.Backend != types.BackendHTTP {
		return nil
	}
	key, err := secrets.ResolveAPIKey(cfg.Remote.APIKey, secretsDir, logger)
	if err != nil {
		return err
	}
	cfg.Remote.APIKey = key
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
