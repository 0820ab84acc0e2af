// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists one run's ranked sections and excerpts as a
// queryable SQLite artifact. Each save replaces the previous run: the
// artifact is the run's output, not a cross-run archive.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/insight-engine/pkg/types"
)

const dbFile = "run.db"

// Store manages the run artifact database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the run artifact database at cfg.Dir/run.db,
// creating the schema if needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS run (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			persona TEXT NOT NULL,
			task TEXT NOT NULL,
			documents TEXT NOT NULL,
			created_at TEXT NOT NULL,
			section_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			rank INTEGER PRIMARY KEY,
			document_id TEXT NOT NULL,
			title TEXT NOT NULL,
			page INTEGER NOT NULL,
			ordinal INTEGER NOT NULL,
			score REAL NOT NULL,
			semantic REAL NOT NULL,
			persona_match REAL NOT NULL,
			actionability REAL NOT NULL,
			cross_document REAL NOT NULL,
			body TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_document ON sections(document_id)`,
		`CREATE TABLE IF NOT EXISTS excerpts (
			rank INTEGER PRIMARY KEY,
			document_id TEXT NOT NULL,
			page INTEGER NOT NULL,
			section_title TEXT NOT NULL,
			refined_text TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over section titles and bodies, synced by
	// triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='sections_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE sections_fts USING fts5(title, body, content=sections, content_rowid=rank)`,
			`CREATE TRIGGER sections_ai AFTER INSERT ON sections BEGIN
				INSERT INTO sections_fts(rowid, title, body) VALUES (new.rank, new.title, new.body);
			END`,
			`CREATE TRIGGER sections_ad AFTER DELETE ON sections BEGIN
				INSERT INTO sections_fts(sections_fts, rowid, title, body) VALUES('delete', old.rank, old.title, old.body);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// RunMeta describes the run being saved.
type RunMeta struct {
	Persona   types.Persona
	Job       types.Job
	Documents []string
	CreatedAt time.Time
}

// SaveRun replaces any previously stored run with the given ranked
// sections and excerpts, atomically.
func (s *Store) SaveRun(ctx context.Context, meta RunMeta, ranked []types.ScoredSection, excerpts []types.Excerpt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"sections", "excerpts", "run"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO run (id, persona, task, documents, created_at, section_count)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		meta.Persona.Role, meta.Job.Task, strings.Join(meta.Documents, ","),
		meta.CreatedAt.UTC().Format(time.RFC3339), len(ranked),
	)
	if err != nil {
		return fmt.Errorf("inserting run row: %w", err)
	}

	secStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (rank, document_id, title, page, ordinal, score,
			semantic, persona_match, actionability, cross_document, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing section insert: %w", err)
	}
	defer secStmt.Close()

	for _, sec := range ranked {
		_, err := secStmt.ExecContext(ctx,
			sec.Rank, sec.DocumentID, sec.Title, sec.Page, sec.Ordinal, sec.Score,
			sec.Signals.Semantic, sec.Signals.Persona,
			sec.Signals.Actionability, sec.Signals.CrossDocument, sec.Body,
		)
		if err != nil {
			return fmt.Errorf("inserting section rank %d: %w", sec.Rank, err)
		}
	}

	excStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO excerpts (rank, document_id, page, section_title, refined_text)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing excerpt insert: %w", err)
	}
	defer excStmt.Close()

	for _, exc := range excerpts {
		_, err := excStmt.ExecContext(ctx,
			exc.Rank, exc.DocumentID, exc.Page, exc.SectionTitle, exc.RefinedText,
		)
		if err != nil {
			return fmt.Errorf("inserting excerpt rank %d: %w", exc.Rank, err)
		}
	}

	return tx.Commit()
}
