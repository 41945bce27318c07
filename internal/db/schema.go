package db

// SQL schema for the notes database. A single flat table: the store keeps no
// soft-delete, versioning, or history, so update and delete are destructive.

// NotesDBSchema contains all SQL statements for the notes database.
const NotesDBSchema = `
-- Notes table: the sole persisted entity
CREATE TABLE IF NOT EXISTS notes (
    note_id TEXT PRIMARY KEY,
    content TEXT NOT NULL CHECK (length(content) > 0),
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);
`
