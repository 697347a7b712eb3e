// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dichter/internal/archive"
	"github.com/pdiddy/dichter/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the report archive (store, retrieve, show, export, delete)",
	Long: `Archive manages a local SQLite database of analysis reports with a
full-text index over the analyzed text.`,
}

// --- store subcommand ---

var archiveStoreCmd = &cobra.Command{
	Use:   "store <report files...>",
	Short: "Import report files written by analyze --json or --yaml",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchiveStore,
}

func runArchiveStore(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Import(context.Background(), args, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d report(s) failed to import", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var archiveRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "List archived reports, optionally filtered by full-text query",
	RunE:  runArchiveRetrieve,
}

func runArchiveRetrieve(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Retrieve(context.Background(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatEntries(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatEntries(w io.Writer, entries []archive.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No reports found.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-10s  %-10s  %-8s  %5s  %s\n",
		"ID", "Date", "Scheme", "Mood", "Words", "Text")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range entries {
		text := []rune(e.Excerpt)
		if len(text) > 30 {
			text = append(text[:27], []rune("...")...)
		}
		scheme := e.Scheme
		if scheme == "" {
			scheme = "-"
		}
		mood := e.Sentiment
		if mood == "" {
			mood = "-"
		}
		fmt.Fprintf(w, "%-36s  %-10s  %-10s  %-8s  %5d  %s\n",
			e.ID, e.CreatedAt.Format("2006-01-02"), scheme, mood, e.WordCount, string(text))
	}
	fmt.Fprintf(w, "\n%d reports\n", len(entries))
	return nil
}

// --- show subcommand ---

var archiveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		r, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "text", "":
			printReport(cmd.OutOrStdout(), r)
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		case "yaml":
			return writeYAML(cmd.OutOrStdout(), r)
		default:
			return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
		}
		return nil
	},
}

// --- delete subcommand ---

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a report from the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export archived reports to YAML or JSON",
	Long: `Export writes the full archived reports (or a filtered subset) to
export.yaml or export.json in the archive directory. Supports the same
filter flags as retrieve.`,
	RunE: runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

// openArchive opens the archive named by --archive-dir or the config.
func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("archive-dir"); dir != "" {
		cfg.Archive.Dir = dir
	}
	return archive.NewStore(cfg.Archive)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) archive.QueryOptions {
	var opts archive.QueryOptions
	if len(args) > 0 {
		opts.Query = strings.Join(args, " ")
	}
	scheme, _ := cmd.Flags().GetString("scheme")
	opts.Scheme = types.RhymeSchemeKind(scheme)
	sentiment, _ := cmd.Flags().GetString("sentiment")
	opts.Sentiment = types.SentimentLabel(sentiment)
	opts.PoemsOnly, _ = cmd.Flags().GetBool("poems")
	opts.MaxResults, _ = cmd.Flags().GetInt("limit")
	return opts
}

func init() {
	archiveCmd.PersistentFlags().String("archive-dir", "", "archive directory (default from config, \"archive\")")

	for _, c := range []*cobra.Command{archiveRetrieveCmd, archiveExportCmd} {
		c.Flags().String("scheme", "", "filter by rhyme scheme: paired, cross, enclosed, monorhyme, free")
		c.Flags().String("sentiment", "", "filter by overall sentiment: positive, negative, neutral")
		c.Flags().Bool("poems", false, "only texts with verses")
		c.Flags().Int("limit", 0, "maximum results (0 = use default)")
	}
	archiveRetrieveCmd.Flags().Bool("json", false, "output results as JSON")
	archiveExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	archiveShowCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	archiveCmd.AddCommand(archiveStoreCmd)
	archiveCmd.AddCommand(archiveRetrieveCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}
