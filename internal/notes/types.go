package notes

import "time"

// Note represents a persisted note. Field names match the wire contract:
// clients key off note_id, content, created_at.
type Note struct {
	NoteID    string    `json:"note_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNoteParams contains parameters for creating a note.
type CreateNoteParams struct {
	Content string `json:"content"`
}

// UpdateNoteParams contains parameters for updating a note. Content replaces
// the stored value wholesale.
type UpdateNoteParams struct {
	Content string `json:"content"`
}
