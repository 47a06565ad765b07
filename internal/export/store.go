// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export persists streamed documents into a local SQLite file.
// Each document is stored as one row keyed by its uniqueKey field, with
// the remaining fields serialized as JSON. Export runs are recorded so
// an operator can see when a snapshot was taken and how complete it is.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mlibrary/solr-cursorstream/pkg/types"
)

// Store manages the export SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the export database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
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
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			fields TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			started TEXT NOT NULL,
			finished TEXT NOT NULL,
			query TEXT,
			written INTEGER,
			skipped INTEGER
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Summary holds counts from one export run.
type Summary struct {
	// Written is the number of documents inserted or replaced.
	Written int

	// Skipped is the number of documents missing the uniqueKey field.
	Skipped int
}

// Write drains docs into the database inside a single transaction,
// keyed by the uniqueKey field. Documents without that field are
// counted as skipped, not failed. A document with an id already present
// replaces the stored row. label describes the query for the runs
// table; progress lines go to w.
//
// A mid-stream error rolls the transaction back so the export file
// never holds a half-written snapshot, and the error is returned.
func (s *Store) Write(ctx context.Context, docs iter.Seq2[types.Document, error], uniqueKey, label string, w io.Writer) (Summary, error) {
	started := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO documents (id, fields) VALUES (?, ?)`)
	if err != nil {
		return Summary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary Summary
	for doc, err := range docs {
		if err != nil {
			return Summary{}, err
		}

		id, ok := docID(doc, uniqueKey)
		if !ok {
			summary.Skipped++
			fmt.Fprintf(w, "skipped: document without %s field\n", uniqueKey)
			continue
		}

		fields, err := json.Marshal(doc)
		if err != nil {
			return Summary{}, fmt.Errorf("encoding document %s: %w", id, err)
		}
		if _, err := stmt.ExecContext(ctx, id, string(fields)); err != nil {
			return Summary{}, fmt.Errorf("inserting document %s: %w", id, err)
		}
		summary.Written++
		if summary.Written%1000 == 0 {
			fmt.Fprintf(w, "written %d documents\n", summary.Written)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (started, finished, query, written, skipped) VALUES (?, ?, ?, ?, ?)`,
		started.UTC().Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339),
		label, summary.Written, summary.Skipped,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "export complete: %d written, %d skipped\n", summary.Written, summary.Skipped)
	return summary, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n)
	return n, err
}

// Get returns the stored document with the given id, or nil when
// absent.
func (s *Store) Get(ctx context.Context, id string) (types.Document, error) {
	var fields string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE id = ?`, id).Scan(&fields)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc types.Document
	if err := json.Unmarshal([]byte(fields), &doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}
	return doc, nil
}

// docID extracts the uniqueKey value as a string. Non-string scalar
// keys (numeric ids decode as float64) are formatted; composite values
// are rejected.
func docID(doc types.Document, uniqueKey string) (string, bool) {
	v, ok := doc[uniqueKey]
	if !ok || v == nil {
		return "", false
	}
	switch id := v.(type) {
	case string:
		return id, id != ""
	case float64:
		return fmt.Sprintf("%v", id), true
	default:
		return "", false
	}
}
