package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/models"
)

// recencyOrder is the single ordering used by every list and positional
// query. id breaks ties between notes created within the same second.
const recencyOrder = `ORDER BY date DESC, id DESC`

// Insert appends a note. The id and timestamp are assigned by SQLite.
func (db *DB) Insert(ctx context.Context, title, content string) (*models.Note, error) {
	res, err := db.conn.ExecContext(ctx, `INSERT INTO notes (title, content) VALUES (?, ?)`, title, content)
	if err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: last insert id: %w", err)
	}
	return db.Get(ctx, id)
}

// ListSummaries returns every note, newest first, without content.
func (db *DB) ListSummaries(ctx context.Context) ([]models.NoteSummary, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, title, date FROM notes `+recencyOrder)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	var out []models.NoteSummary
	for rows.Next() {
		var s models.NoteSummary
		var title sql.NullString
		if err := rows.Scan(&s.ID, &title, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan summary: %w", err)
		}
		s.Title = title.String
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns the note with the given id.
func (db *DB) Get(ctx context.Context, id int64) (*models.Note, error) {
	var n models.Note
	var title, content sql.NullString
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, content, date FROM notes WHERE id = ?`, id,
	).Scan(&n.ID, &title, &content, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note %d: %w", id, err)
	}
	n.Title = title.String
	n.Content = content.String
	return &n, nil
}

// Content returns the body of the note with the given id.
func (db *DB) Content(ctx context.Context, id int64) (string, error) {
	var content sql.NullString
	err := db.conn.QueryRowContext(ctx, `SELECT content FROM notes WHERE id = ?`, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: note content %d: %w", id, err)
	}
	return content.String, nil
}

// ContentAt returns the body of the note at offset in the newest-first
// ordering. The offset is resolved against the table as it is now, so it may
// name a different note than one listed earlier. Prefer Content.
func (db *DB) ContentAt(ctx context.Context, offset int) (string, error) {
	if offset < 0 {
		return "", apperr.ErrNotFound
	}
	var content sql.NullString
	err := db.conn.QueryRowContext(ctx,
		`SELECT content FROM notes `+recencyOrder+` LIMIT 1 OFFSET ?`, offset,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: content at %d: %w", offset, err)
	}
	return content.String, nil
}

// Delete removes the note with the given id.
func (db *DB) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, db.conn, id)
}

// DeleteAt resolves offset to an id using the newest-first ordering and
// deletes that note. It has the same staleness caveat as ContentAt.
func (db *DB) DeleteAt(ctx context.Context, offset int) error {
	if offset < 0 {
		return apperr.ErrNotFound
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM notes `+recencyOrder+` LIMIT 1 OFFSET ?`, offset).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: id at %d: %w", offset, err)
	}
	if err := deleteByID(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Count returns the number of stored notes.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count notes: %w", err)
	}
	return n, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func deleteByID(ctx context.Context, ex execer, id int64) error {
	res, err := ex.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete note %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
