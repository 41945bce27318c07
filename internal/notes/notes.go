// Package notes implements CRUD over the notes store.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kuitang/swift-notes/internal/db"
	"github.com/kuitang/swift-notes/internal/errs"
)

// User-facing messages. These are part of the wire contract.
const (
	MsgContentEmpty = "Content cannot be empty"
	MsgNotFound     = "Note not found"
	MsgDeleted      = "Note was deleted!"
)

// Service handles note CRUD operations using the db layer.
type Service struct {
	notesDB *db.NotesDB
}

// NewService creates a new notes service.
func NewService(notesDB *db.NotesDB) *Service {
	return &Service{notesDB: notesDB}
}

// Create persists a new note with server-assigned id and timestamp.
// Emptiness is checked on the raw value; the server never trims.
func (s *Service) Create(ctx context.Context, params CreateNoteParams) (*Note, error) {
	if params.Content == "" {
		return nil, errs.New(errs.InvalidArgument, MsgContentEmpty)
	}

	noteID := uuid.New().String()
	now := time.Now().UTC()

	if err := s.notesDB.InsertNote(ctx, noteID, params.Content, now.UnixNano()); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to create note", err)
	}

	return &Note{
		NoteID:    noteID,
		Content:   params.Content,
		CreatedAt: now,
	}, nil
}

// Get retrieves a note by id.
func (s *Service) Get(ctx context.Context, noteID string) (*Note, error) {
	row, err := s.notesDB.GetNote(ctx, noteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.New(errs.NotFound, MsgNotFound)
	}
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to read note", err)
	}
	note := fromRow(row)
	return &note, nil
}

// List returns all notes, newest first.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	rows, err := s.notesDB.ListNotes(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to list notes", err)
	}

	notes := make([]Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, fromRow(row))
	}
	return notes, nil
}

// Update replaces the content of an existing note. The mutation is a single
// atomic statement; a missing row surfaces as not-found via the statement
// itself, never via a preceding existence check.
func (s *Service) Update(ctx context.Context, noteID string, params UpdateNoteParams) (*Note, error) {
	if params.Content == "" {
		return nil, errs.New(errs.InvalidArgument, MsgContentEmpty)
	}

	row, err := s.notesDB.UpdateNote(ctx, noteID, params.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.New(errs.NotFound, MsgNotFound)
	}
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to update note", err)
	}
	note := fromRow(row)
	return &note, nil
}

// Delete removes a note by id. Like Update, not-found is read off the single
// delete statement's rows affected.
func (s *Service) Delete(ctx context.Context, noteID string) error {
	deleted, err := s.notesDB.DeleteNote(ctx, noteID)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to delete note", err)
	}
	if !deleted {
		return errs.New(errs.NotFound, MsgNotFound)
	}
	return nil
}

func fromRow(row db.NoteRow) Note {
	return Note{
		NoteID:    row.NoteID,
		Content:   row.Content,
		CreatedAt: time.Unix(0, row.CreatedAt).UTC(),
	}
}
