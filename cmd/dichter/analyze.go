// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dichter/internal/analyze"
	"github.com/pdiddy/dichter/internal/archive"
	"github.com/pdiddy/dichter/internal/cache"
	"github.com/pdiddy/dichter/internal/collab"
	"github.com/pdiddy/dichter/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze German text or poetry",
	Long: `Analyze reads each file (or stdin when no file or "-" is given), runs the
analysis pipeline, and prints a report. Use --json or --yaml for the full
report and --archive to store it in the local archive.

Use --aspects to restrict the analysis, for example --aspects style,readability.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	store, _ := cmd.Flags().GetBool("archive")
	showProgress, _ := cmd.Flags().GetBool("progress")
	backend, _ := cmd.Flags().GetString("backend")
	aspectNames, _ := cmd.Flags().GetStringSlice("aspects")

	if jsonOutput && yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}
	aspects, err := parseAspects(aspectNames)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Analysis.Collaborators.Backend = types.CollaboratorBackend(backend)
	}
	if err := resolveAPIKey(&cfg.Analysis.Collaborators); err != nil {
		return err
	}

	set, err := collab.NewSet(cfg.Analysis.Collaborators, logger)
	if err != nil {
		return err
	}
	defer set.Close()

	var arch *archive.Store
	if store {
		arch, err = archive.NewStore(cfg.Archive)
		if err != nil {
			return err
		}
		defer arch.Close()
	}

	a := analyze.New(cfg.Analysis,
		analyze.WithCollaborators(set),
		analyze.WithCache(cache.New(cfg.Analysis.Cache.Size)),
		analyze.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := analyze.Options{Aspects: aspects}
	if showProgress {
		opts.Progress = func(stage string, fraction float64) {
			fmt.Fprintf(os.Stderr, "%3.0f%% %s\n", fraction*100, stage)
		}
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		text, err := readInput(name, cmd.InOrStdin())
		if err != nil {
			return err
		}

		r, err := a.Analyze(ctx, text, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if arch != nil {
			if err := arch.Save(ctx, r); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "archived %s as %s\n", name, r.ID)
		}

		out := cmd.OutOrStdout()
		switch {
		case jsonOutput:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(r)
		case yamlOutput:
			err = writeYAML(out, r)
		default:
			printReport(out, r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readInput returns the contents of the named file, or of in for "-".
func readInput(name string, in io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// parseAspects validates aspect names. An empty list selects all aspects.
func parseAspects(names []string) ([]types.Aspect, error) {
	known := make(map[types.Aspect]bool, len(types.AllAspects))
	for _, a := range types.AllAspects {
		known[a] = true
	}

	var out []types.Aspect
	seen := make(map[types.Aspect]bool)
	for _, n := range names {
		a := types.Aspect(strings.ToLower(strings.TrimSpace(n)))
		if a == "" || seen[a] {
			continue
		}
		if !known[a] {
			return nil, fmt.Errorf("unknown aspect %q: use %s", n, aspectList())
		}
		seen[a] = true
		out = append(out, a)
	}
	return out, nil
}

func aspectList() string {
	names := make([]string, len(types.AllAspects))
	for i, a := range types.AllAspects {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// printReport writes a human-readable summary of r.
func printReport(w io.Writer, r *types.Report) {
	s := r.Summary
	fmt.Fprintf(w, "Report %s\n", r.ID)
	fmt.Fprintf(w, "  Words:       %d (%d unique, diversity %.3f, avg length %.2f)\n",
		s.WordCount, s.UniqueWords, s.LexicalDiversity, s.AvgWordLength)
	fmt.Fprintf(w, "  Sentences:   %d\n", s.SentenceCount)
	if s.IsPoem {
		fmt.Fprintf(w, "  Verses:      %d in %d stanza(s)\n", s.VerseCount, s.StanzaCount)
	}
	if s.DominantPOS != "" {
		fmt.Fprintf(w, "  Dominant POS: %s\n", s.DominantPOS)
	}
	if s.EncodingFixups > 0 {
		fmt.Fprintf(w, "  Encoding fixes: %d\n", s.EncodingFixups)
	}

	if r.Rhyme != nil {
		fmt.Fprintf(w, "\nRhyme: %s (%s)\n", r.Rhyme.PatternString(), r.Rhyme.Scheme)
	}
	if len(r.Alliterations) > 0 {
		fmt.Fprintln(w, "\nAlliterations:")
		for _, a := range r.Alliterations {
			fmt.Fprintf(w, "  %-4s %s\n", a.Sound, strings.Join(a.Words, " "))
		}
	}
	if reps := topRepetitions(r.Repetitions, 5); len(reps) > 0 {
		fmt.Fprintln(w, "\nRepetitions:")
		for _, rep := range reps {
			var marks []string
			if rep.IsAnaphora {
				marks = append(marks, "anaphora")
			}
			if rep.IsEpiphora {
				marks = append(marks, "epiphora")
			}
			fmt.Fprintf(w, "  %-16s %dx %s\n", rep.Word, rep.Count, strings.Join(marks, ", "))
		}
	}
	if len(r.Parallelisms) > 0 {
		fmt.Fprintf(w, "\nParallel sentence pairs: %d\n", len(r.Parallelisms))
	}
	if r.Punctuation != nil {
		fmt.Fprintf(w, "Punctuation style: %s\n", r.Punctuation.Style)
	}

	if r.Readability != nil && r.ReadabilityBand != nil {
		b := r.ReadabilityBand
		fmt.Fprintf(w, "\nReadability: Flesch %.1f (%s), Wiener %.1f (%s)\n",
			r.Readability.FleschReadingEase, b.FleschLevel, r.Readability.WienerIndex, b.WienerLevel)
		fmt.Fprintf(w, "  Audience:  %s\n", b.Audience)
	}
	if s.Sentiment != nil {
		fmt.Fprintf(w, "Sentiment:   %s (%.3f, confidence %.3f)\n",
			s.Sentiment.Label, s.Sentiment.Score, s.Sentiment.Confidence)
	}
	if len(r.Entities) > 0 {
		fmt.Fprintln(w, "\nEntities:")
		for _, e := range r.Entities {
			fmt.Fprintf(w, "  %-20s %s (%.2f)\n", e.Word, e.Label, e.Score)
		}
	}
	if len(r.SemanticFields) > 0 {
		fmt.Fprintln(w, "\nSemantic fields:")
		for _, f := range r.SemanticFields {
			fmt.Fprintf(w, "  %s (coherence %.3f)\n", strings.Join(f.Representatives, ", "), f.Coherence)
		}
	}
	if r.Cohesion != nil {
		fmt.Fprintf(w, "Cohesion:    %.3f\n", *r.Cohesion)
	}

	u := r.UsedModels
	fmt.Fprintf(w, "\nModels: sentiment=%s entities=%s pos=%s embeddings=%s\n",
		u.Sentiment, u.Entities, u.POS, u.Embeddings)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  error %s %q: %s\n", e.Stage, e.Item, e.Reason)
	}
}

// topRepetitions returns up to n repetitions, preferring rhetorical ones.
func topRepetitions(reps []types.Repetition, n int) []types.Repetition {
	out := append([]types.Repetition(nil), reps...)
	sort.SliceStable(out, func(i, j int) bool {
		ri := out[i].IsAnaphora || out[i].IsEpiphora
		rj := out[j].IsAnaphora || out[j].IsEpiphora
		return ri && !rj
	})
	return out[:min(n, len(out))]
}

func init() {
	analyzeCmd.Flags().StringSlice("aspects", nil, "aspects to compute: "+aspectList()+" (default all)")
	analyzeCmd.Flags().Bool("json", false, "print the full report as JSON")
	analyzeCmd.Flags().Bool("yaml", false, "print the full report as YAML")
	analyzeCmd.Flags().Bool("archive", false, "store the report in the archive")
	analyzeCmd.Flags().Bool("progress", false, "print pipeline progress to stderr")
	analyzeCmd.Flags().String("backend", "", "collaborator backend: none, lexicon, hugot, http (default from config)")

	rootCmd.AddCommand(analyzeCmd)
}
