// Package db owns access to the notes store: a single SQLite file opened
// through the SQLCipher-capable driver, optionally encrypted at rest.
// All queries are parameterized; callers never interpolate values into SQL.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

const (
	// NotesDBName is the filename for the notes database.
	NotesDBName = "notes.db"

	// MaxOpenConns is the maximum number of open connections.
	// SQLite is single-writer, so high connection counts are counterproductive.
	MaxOpenConns = 10

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns = 2
)

// NotesDB wraps the sql.DB connection and provides typed query methods.
type NotesDB struct {
	db *sql.DB
}

// NoteRow is a raw row from the notes table. created_at is unix nanoseconds;
// nanosecond resolution keeps the created_at DESC list ordering strict for
// back-to-back creates.
type NoteRow struct {
	NoteID    string
	Content   string
	CreatedAt int64
}

// NewNotesDBFromSQL wraps an existing sql.DB as NotesDB.
func NewNotesDBFromSQL(sqlDB *sql.DB) *NotesDB {
	return &NotesDB{db: sqlDB}
}

// DB returns the underlying sql.DB for direct access when needed.
func (n *NotesDB) DB() *sql.DB {
	return n.db
}

// Open opens the notes database under dataDir, creating the directory and
// applying the schema if needed. keyHex, when non-empty, is a 64-hex-char
// SQLCipher key enabling at-rest encryption.
func Open(dataDir, keyHex string) (*NotesDB, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, NotesDBName)
	dsn := dbPath
	if keyHex != "" {
		// SQLCipher pragma key; format matches the driver's DSN contract
		dsn = fmt.Sprintf("%s?_pragma_key=x'%s'&_pragma_cipher_page_size=4096", dbPath, keyHex)
	}
	dsn = appendSQLiteParams(dsn, sqliteCommonParams())

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes database: %w", err)
	}

	sqlDB.SetMaxOpenConns(MaxOpenConns)
	sqlDB.SetMaxIdleConns(MaxIdleConns)

	// Verify connection and, for the encrypted path, the key. A wrong key
	// fails here rather than on first use.
	var sqliteVersion string
	if err := sqlDB.QueryRow("SELECT sqlite_version()").Scan(&sqliteVersion); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to verify notes database connection: %w", err)
	}

	if _, err := sqlDB.Exec(NotesDBSchema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize notes schema: %w", err)
	}

	return NewNotesDBFromSQL(sqlDB), nil
}

// InsertNote inserts a new note row.
func (n *NotesDB) InsertNote(ctx context.Context, noteID, content string, createdAt int64) error {
	_, err := n.db.ExecContext(ctx,
		`INSERT INTO notes (note_id, content, created_at) VALUES (?, ?, ?)`,
		noteID, content, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNote returns the row for noteID, or sql.ErrNoRows.
func (n *NotesDB) GetNote(ctx context.Context, noteID string) (NoteRow, error) {
	var row NoteRow
	err := n.db.QueryRowContext(ctx,
		`SELECT note_id, content, created_at FROM notes WHERE note_id = ?`,
		noteID,
	).Scan(&row.NoteID, &row.Content, &row.CreatedAt)
	if err != nil {
		return NoteRow{}, err
	}
	return row, nil
}

// ListNotes returns all rows ordered by created_at descending (newest first).
func (n *NotesDB) ListNotes(ctx context.Context) ([]NoteRow, error) {
	rows, err := n.db.QueryContext(ctx,
		`SELECT note_id, content, created_at FROM notes ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var result []NoteRow
	for rows.Next() {
		var row NoteRow
		if err := rows.Scan(&row.NoteID, &row.Content, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}
	return result, nil
}

// UpdateNote replaces the content of noteID and returns the updated row.
// The mutation runs first and a missing note is read off rows affected as
// sql.ErrNoRows; no existence check precedes it. The bundled SQLite (3.33)
// predates RETURNING, so the row is read back after the update.
func (n *NotesDB) UpdateNote(ctx context.Context, noteID, content string) (NoteRow, error) {
	res, err := n.db.ExecContext(ctx,
		`UPDATE notes SET content = ? WHERE note_id = ?`,
		content, noteID,
	)
	if err != nil {
		return NoteRow{}, fmt.Errorf("failed to update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return NoteRow{}, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return NoteRow{}, sql.ErrNoRows
	}
	return n.GetNote(ctx, noteID)
}

// DeleteNote removes noteID and reports whether a row was deleted.
func (n *NotesDB) DeleteNote(ctx context.Context, noteID string) (bool, error) {
	res, err := n.db.ExecContext(ctx, `DELETE FROM notes WHERE note_id = ?`, noteID)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// CountNotes returns the number of persisted notes.
func (n *NotesDB) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := n.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// Close closes the NotesDB connection.
func (n *NotesDB) Close() error {
	if n.db != nil {
		return n.db.Close()
	}
	return nil
}

func sqliteCommonParams() string {
	// WAL + NORMAL provides good throughput while preserving safety.
	return "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"
}

func appendSQLiteParams(dsn, params string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}
