// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/dichter/pkg/types"
)

// QueryOptions holds parameters for archive queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over the normalized text.
	Query string

	// Scheme filters by rhyme scheme.
	Scheme types.RhymeSchemeKind

	// Sentiment filters by overall sentiment label.
	Sentiment types.SentimentLabel

	// PoemsOnly restricts results to texts with verses.
	PoemsOnly bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Entry is one archived report's index row.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Excerpt   string    `json:"excerpt" yaml:"excerpt"`
	Scheme    string    `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	IsPoem    bool      `json:"is_poem" yaml:"is_poem"`
	WordCount int       `json:"word_count" yaml:"word_count"`
	Sentiment string    `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Flesch    *float64  `json:"flesch,omitempty" yaml:"flesch,omitempty"`
}

// excerptLength is the number of runes of text kept in an Entry.
const excerptLength = 80

// Retrieve lists archived reports. Full-text queries are ranked by
// relevance; otherwise the newest reports come first.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.id, r.created_at, r.text, r.scheme, r.is_poem, r.word_count, r.sentiment, r.flesch
			FROM reports_fts
			JOIN reports r ON r.rowid = reports_fts.rowid
			WHERE reports_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.id, r.created_at, r.text, r.scheme, r.is_poem, r.word_count, r.sentiment, r.flesch
			FROM reports r
			WHERE 1=1`)
	}

	if opts.Scheme != "" {
		qb.WriteString(` AND r.scheme = ?`)
		args = append(args, string(opts.Scheme))
	}
	if opts.Sentiment != "" {
		qb.WriteString(` AND r.sentiment = ?`)
		args = append(args, string(opts.Sentiment))
	}
	if opts.PoemsOnly {
		qb.WriteString(` AND r.is_poem = 1`)
	}

	if useFTS {
		qb.WriteString(` ORDER BY reports_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.created_at DESC, r.id`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			created   string
			text      string
			scheme    sql.NullString
			sentiment sql.NullString
			flesch    sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &created, &text, &scheme, &e.IsPoem, &e.WordCount, &sentiment, &flesch); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		e.Excerpt = excerpt(text)
		e.Scheme = scheme.String
		e.Sentiment = sentiment.String
		if flesch.Valid {
			f := flesch.Float64
			e.Flesch = &f
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// excerpt returns the first line of text, cut to excerptLength runes.
func excerpt(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	r := []rune(strings.TrimSpace(line))
	if len(r) <= excerptLength {
		return string(r)
	}
	return string(r[:excerptLength]) + "…"
}
