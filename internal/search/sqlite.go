package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"link_librarian/internal/model"
)

const schema = `
CREATE VIRTUAL TABLE IF NOT EXISTS documents USING fts5(
	title,
	body,
	link UNINDEXED,
	ts UNINDEXED,
	team_id UNINDEXED
);`

// SQLiteIndex is a local FTS5-backed Index for development deployments where
// no Algolia application is configured. One table holds every tenant's
// documents; team_id scopes all reads and writes.
type SQLiteIndex struct {
	db *sql.DB
}

// NewSQLiteIndex opens (and if needed initializes) the database at path
func NewSQLiteIndex(path string) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open search database: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize search schema: %v", err)
	}
	return &SQLiteIndex{db: db}, nil
}

// Close releases the underlying database handle
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// Upsert replaces any prior document for the same team and link. FTS5 tables
// have no conflict targets, so this is a delete-then-insert in one
// transaction.
func (s *SQLiteIndex) Upsert(ctx context.Context, teamID string, doc model.IndexedDocument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM documents WHERE team_id = ? AND link = ?`, teamID, doc.Link); err != nil {
		return fmt.Errorf("failed to delete prior document: %v", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (title, body, link, ts, team_id) VALUES (?, ?, ?, ?, ?)`,
		doc.Title, doc.Body, doc.Link, doc.TS, teamID); err != nil {
		return fmt.Errorf("failed to insert document: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %v", err)
	}
	return nil
}

// Search runs one page of a full-text query ordered by relevance.
func (s *SQLiteIndex) Search(ctx context.Context, teamID, query string, page int) (*model.SearchResultPage, error) {
	match := ftsQuery(query)
	result := &model.SearchResultPage{Page: page}
	if match == "" {
		return result, nil
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM documents WHERE documents MATCH ? AND team_id = ?`,
		match, teamID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count hits: %v", err)
	}
	result.NbPages = (total + HitsPerPage - 1) / HitsPerPage

	rows, err := s.db.QueryContext(ctx,
		`SELECT link, title FROM documents WHERE documents MATCH ? AND team_id = ?
		 ORDER BY rank LIMIT ? OFFSET ?`,
		match, teamID, HitsPerPage, page*HitsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hit model.SearchHit
		if err := rows.Scan(&hit.Link, &hit.Title); err != nil {
			return nil, fmt.Errorf("failed to scan hit: %v", err)
		}
		result.Hits = append(result.Hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hits: %v", err)
	}
	return result, nil
}

// ftsQuery turns free text into an FTS5 match expression. Every term is
// quoted so user input cannot inject FTS5 operators.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
