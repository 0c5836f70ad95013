// Package store provides the SQLite-backed note store.
//
// The schema is a single table. Its version lives in PRAGMA user_version;
// when the stored version differs from SchemaVersion the table is dropped and
// recreated, discarding every note. There is no migration path.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is the version written to PRAGMA user_version.
const SchemaVersion = 1

const createNotesSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	title   TEXT,
	content TEXT,
	date    DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const dropNotesSQL = `DROP TABLE IF EXISTS notes;`

// DB wraps a sql.DB with note operations.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the SQLite database at dsn and brings the schema to
// SchemaVersion.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	db := &DB{conn: conn, logger: logger}
	if err := db.migrate(ctx, SchemaVersion); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Version returns the schema version recorded in the database file.
func (db *DB) Version(ctx context.Context) (int, error) {
	var v int
	if err := db.conn.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("store: read user_version: %w", err)
	}
	return v, nil
}

// migrate brings the file to version target: a fresh file is initialized,
// an older one is upgraded, a newer one is refused.
func (db *DB) migrate(ctx context.Context, target int) error {
	current, err := db.Version(ctx)
	if err != nil {
		return err
	}
	switch {
	case current == target:
		return db.initialize(ctx)
	case current == 0:
		if err := db.initialize(ctx); err != nil {
			return err
		}
		return db.setVersion(ctx, target)
	case current > target:
		return fmt.Errorf("store: cannot downgrade schema from version %d to %d", current, target)
	default:
		return db.upgrade(ctx, current, target)
	}
}

// initialize creates the notes table if it does not exist.
func (db *DB) initialize(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, createNotesSQL); err != nil {
		return fmt.Errorf("store: apply schema: %w", err)
	}
	return nil
}

// upgrade drops and recreates the notes table. All stored notes are lost.
func (db *DB) upgrade(ctx context.Context, oldVersion, newVersion int) error {
	discarded, err := db.Count(ctx)
	if err != nil {
		// A table from an unknown layout may not even be countable.
		discarded = -1
	}
	db.logger.Warn("store: schema upgrade discards all notes",
		slog.Int("old_version", oldVersion),
		slog.Int("new_version", newVersion),
		slog.Int("discarded", discarded))

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, dropNotesSQL); err != nil {
		return fmt.Errorf("store: drop notes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createNotesSQL); err != nil {
		return fmt.Errorf("store: recreate notes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", newVersion)); err != nil {
		return fmt.Errorf("store: set user_version: %w", err)
	}
	return tx.Commit()
}

func (db *DB) setVersion(ctx context.Context, v int) error {
	if _, err := db.conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
		return fmt.Errorf("store: set user_version: %w", err)
	}
	return nil
}
