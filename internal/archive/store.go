// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists analysis reports in a SQLite database with a
// full-text index over the analyzed text.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dichter/pkg/types"
)

const dbFile = "archive.db"

// timeLayout stores timestamps with a fixed-width fraction so they sort
// lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get for an unknown report ID.
var ErrNotFound = errors.New("report not found")

// Store manages the report archive database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the archive at cfg.Dir/archive.db and creates
// the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("archive directory not set")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(cfg.Dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the archive directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			text TEXT NOT NULL,
			scheme TEXT,
			is_poem INTEGER NOT NULL DEFAULT 0,
			word_count INTEGER NOT NULL DEFAULT 0,
			sentiment TEXT,
			flesch REAL,
			body TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_scheme ON reports(scheme)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='reports_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE reports_fts USING fts5(text, content=reports, content_rowid=rowid)`,
		`CREATE TRIGGER reports_ai AFTER INSERT ON reports BEGIN
			INSERT INTO reports_fts(rowid, text) VALUES (new.rowid, new.text);
		END`,
		`CREATE TRIGGER reports_ad AFTER DELETE ON reports BEGIN
			INSERT INTO reports_fts(reports_fts, rowid, text) VALUES('delete', old.rowid, old.text);
		END`,
		`CREATE TRIGGER reports_au AFTER UPDATE ON reports BEGIN
			INSERT INTO reports_fts(reports_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			INSERT INTO reports_fts(rowid, text) VALUES (new.rowid, new.text);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// Save inserts r, replacing any stored report with the same ID.
func (s *Store) Save(ctx context.Context, r *types.Report) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("report has no ID")
	}
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report %s: %w", r.ID, err)
	}

	var scheme, sentiment sql.NullString
	var flesch sql.NullFloat64
	if r.Rhyme != nil {
		scheme = sql.NullString{String: string(r.Rhyme.Scheme), Valid: true}
	}
	if r.Sentiment != nil && r.Sentiment.Overall != nil {
		sentiment = sql.NullString{String: string(r.Sentiment.Overall.Label), Valid: true}
	}
	if r.Readability != nil {
		flesch = sql.NullFloat64{Float64: r.Readability.FleschReadingEase, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, created_at, text, scheme, is_poem, word_count, sentiment, flesch, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			created_at=excluded.created_at, text=excluded.text, scheme=excluded.scheme,
			is_poem=excluded.is_poem, word_count=excluded.word_count,
			sentiment=excluded.sentiment, flesch=excluded.flesch, body=excluded.body`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout), r.NormalizedText,
		scheme, r.Summary.IsPoem, r.Summary.WordCount, sentiment, flesch, string(body),
	)
	if err != nil {
		return fmt.Errorf("saving report %s: %w", r.ID, err)
	}
	return nil
}

// Get returns the stored report with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*types.Report, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM reports WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up report: %w", err)
	}

	var r types.Report
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", id, err)
	}
	return &r, nil
}

// Delete removes a report. Deleting an unknown ID returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Failed   int
}

// Import reads report files written by "dichter analyze --json" or
// "--yaml" and saves them. Files that cannot be read or decoded are
// counted as failed and reported on w; they do not stop the run.
func (s *Store) Import(ctx context.Context, paths []string, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		r, err := readReport(path)
		if err == nil {
			err = s.Save(ctx, r)
		}
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "imported %s (%s)\n", path, r.ID)
		summary.Imported++
	}

	fmt.Fprintf(w, "\nimported: %d, failed: %d\n", summary.Imported, summary.Failed)
	return summary, nil
}

// readReport decodes a report file, choosing the format by extension.
func readReport(path string) (*types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r types.Report
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if r.ID == "" {
		return nil, fmt.Errorf("report has no ID")
	}
	return &r, nil
}
