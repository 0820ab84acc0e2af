// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// QueryOptions holds parameters for querying the stored run.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over section titles
	// and bodies.
	Query string

	// DocumentID filters by source document.
	DocumentID string

	// MaxRank keeps only sections ranked at or above the cutoff
	// (rank <= MaxRank). Zero means no cutoff.
	MaxRank int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.DocumentID == "" && q.MaxRank == 0
}

// Retrieve queries the stored run with optional full-text search and
// structured filters. Full-text queries are ordered by FTS relevance;
// structured-only queries come back in rank order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.ScoredSection, error) {
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
			`SELECT s.rank, s.document_id, s.title, s.page, s.ordinal, s.score,
				s.semantic, s.persona_match, s.actionability, s.cross_document, s.body
			FROM sections_fts
			JOIN sections s ON s.rowid = sections_fts.rowid
			WHERE sections_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT s.rank, s.document_id, s.title, s.page, s.ordinal, s.score,
				s.semantic, s.persona_match, s.actionability, s.cross_document, s.body
			FROM sections s
			WHERE 1=1`)
	}

	if opts.DocumentID != "" {
		qb.WriteString(` AND s.document_id = ?`)
		args = append(args, opts.DocumentID)
	}

	if opts.MaxRank > 0 {
		qb.WriteString(` AND s.rank <= ?`)
		args = append(args, opts.MaxRank)
	}

	if useFTS {
		qb.WriteString(` ORDER BY sections_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY s.rank`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying stored run: %w", err)
	}
	defer rows.Close()

	var results []types.ScoredSection
	for rows.Next() {
		var (
			sec  types.ScoredSection
			body sql.NullString
		)
		if err := rows.Scan(
			&sec.Rank, &sec.DocumentID, &sec.Title, &sec.Page, &sec.Ordinal, &sec.Score,
			&sec.Signals.Semantic, &sec.Signals.Persona,
			&sec.Signals.Actionability, &sec.Signals.CrossDocument, &body,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if body.Valid {
			sec.Body = body.String
		}
		results = append(results, sec)
	}

	return results, rows.Err()
}

// Excerpts returns the stored excerpts in rank order.
func (s *Store) Excerpts(ctx context.Context) ([]types.Excerpt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, document_id, page, section_title, refined_text
		 FROM excerpts ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("querying excerpts: %w", err)
	}
	defer rows.Close()

	var excerpts []types.Excerpt
	for rows.Next() {
		var exc types.Excerpt
		if err := rows.Scan(&exc.Rank, &exc.DocumentID, &exc.Page, &exc.SectionTitle, &exc.RefinedText); err != nil {
			return nil, fmt.Errorf("scanning excerpt: %w", err)
		}
		excerpts = append(excerpts, exc)
	}
	return excerpts, rows.Err()
}

// Meta returns the metadata of the stored run, or sql.ErrNoRows wrapped
// when no run has been saved yet.
func (s *Store) Meta(ctx context.Context) (RunMeta, error) {
	var (
		meta      RunMeta
		documents string
		createdAt string
		count     int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT persona, task, documents, created_at, section_count FROM run WHERE id = 1`,
	).Scan(&meta.Persona.Role, &meta.Job.Task, &documents, &createdAt, &count)
	if err != nil {
		return RunMeta{}, fmt.Errorf("reading run metadata: %w", err)
	}

	if documents != "" {
		meta.Documents = strings.Split(documents, ",")
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		meta.CreatedAt = t
	}
	return meta, nil
}
