package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kuitang/swift-notes/internal/client"
	"github.com/kuitang/swift-notes/internal/notes"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loadedModel(t *testing.T, contents ...string) AppModel {
	t.Helper()
	m := NewAppModel(client.New("http://127.0.0.1:0"))

	loaded := make([]notes.Note, 0, len(contents))
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	// Newest first, like the server returns.
	for i, content := range contents {
		loaded = append(loaded, notes.Note{
			NoteID:    content + "-id",
			Content:   content,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}

	updated, _ := m.Update(NotesLoadedMsg{Notes: loaded})
	return updated.(AppModel)
}

func TestNotesLoaded_PopulatesList(t *testing.T) {
	m := loadedModel(t, "newest", "older")
	if !m.loaded {
		t.Fatal("model should be marked loaded")
	}
	if len(m.notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(m.notes))
	}
	if m.notes[0].Content != "newest" {
		t.Fatalf("expected newest first, got %q", m.notes[0].Content)
	}
}

func TestNotesLoaded_FailureKeepsList(t *testing.T) {
	m := loadedModel(t, "survivor")

	updated, _ := m.Update(NotesLoadedMsg{Err: errTest})
	m = updated.(AppModel)

	if len(m.notes) != 1 || m.notes[0].Content != "survivor" {
		t.Fatal("failed reload must leave the list unchanged")
	}
	if m.loadErr == nil {
		t.Fatal("load error should be recorded for the view")
	}
}

func TestAddMode_WhitespaceOnlyIgnored(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(AppModel)
	if m.mode != ModeAdd {
		t.Fatalf("expected ModeAdd, got %v", m.mode)
	}

	m.input.SetValue("   ")
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(AppModel)

	if cmd != nil {
		t.Fatal("whitespace-only submit should not fire a command")
	}
	if m.mode != ModeAdd {
		t.Fatal("whitespace-only submit should stay in add mode")
	}
}

func TestAddMode_SubmitKeepsInputUntilConfirmed(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(AppModel)
	m.input.SetValue("  buy milk  ")

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(AppModel)

	if cmd == nil {
		t.Fatal("submit should fire a create command")
	}
	if m.mode != ModeAdd || m.input.Value() != "  buy milk  " {
		t.Fatal("submit should keep the typed text until the server confirms")
	}

	// Success: note prepends, input clears, back to the list.
	note := &notes.Note{NoteID: "fresh-id", Content: "  buy milk  ", CreatedAt: time.Now()}
	updated, _ = m.Update(NoteCreatedMsg{Note: note})
	m = updated.(AppModel)

	if len(m.notes) != 1 || m.notes[0].NoteID != "fresh-id" {
		t.Fatalf("expected created note on top, got %+v", m.notes)
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", m.cursor)
	}
	if m.mode != ModeList || m.input.Value() != "" {
		t.Fatal("confirmed create should clear the input and leave add mode")
	}
}

func TestAddMode_FailurePreservesInput(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(AppModel)
	m.input.SetValue("precious draft")

	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(AppModel)

	updated, _ = m.Update(NoteCreatedMsg{Err: errTest})
	m = updated.(AppModel)

	if m.mode != ModeAdd || m.input.Value() != "precious draft" {
		t.Fatal("failed create must preserve the typed text")
	}
	if len(m.notes) != 0 {
		t.Fatal("failed create must not add a note")
	}
}

func TestEdit_SaveWaitsForConfirmation(t *testing.T) {
	m := loadedModel(t, "draft")

	updated, _ := m.Update(keyMsg("e"))
	m = updated.(AppModel)
	if m.mode != ModeEdit || m.editingID != "draft-id" {
		t.Fatalf("expected edit of draft-id, got mode=%v id=%q", m.mode, m.editingID)
	}
	if m.input.Value() != "draft" {
		t.Fatalf("edit buffer should start from stored content, got %q", m.input.Value())
	}

	m.input.SetValue("final")
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(AppModel)

	if cmd == nil {
		t.Fatal("save should fire an update command")
	}
	if m.mode != ModeEdit {
		t.Fatal("save should stay in edit mode until confirmed")
	}
	if m.notes[0].Content != "draft" {
		t.Fatal("unconfirmed save must not change the list")
	}

	note := &notes.Note{NoteID: "draft-id", Content: "final"}
	updated, _ = m.Update(NoteUpdatedMsg{Note: note})
	m = updated.(AppModel)

	if m.notes[0].Content != "final" {
		t.Fatalf("confirmed save should apply, got %q", m.notes[0].Content)
	}
	if m.mode != ModeList || m.editingID != "" {
		t.Fatal("confirmed save should leave edit mode")
	}
}

func TestEdit_FailureStaysInEditMode(t *testing.T) {
	m := loadedModel(t, "draft")

	updated, _ := m.Update(keyMsg("e"))
	m = updated.(AppModel)
	m.input.SetValue("half-saved")

	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(AppModel)

	updated, _ = m.Update(NoteUpdatedMsg{Err: errTest})
	m = updated.(AppModel)

	if m.mode != ModeEdit || m.input.Value() != "half-saved" {
		t.Fatal("failed save must stay in edit mode with the typed text")
	}
	if m.notes[0].Content != "draft" {
		t.Fatal("failed save must not change the stored content")
	}
}

func TestEdit_CancelKeepsStoredContent(t *testing.T) {
	m := loadedModel(t, "keep")

	updated, _ := m.Update(keyMsg("e"))
	m = updated.(AppModel)
	m.input.SetValue("discarded")

	updated, cmd := m.Update(keyMsg("esc"))
	m = updated.(AppModel)

	if cmd != nil {
		t.Fatal("cancel must not fire a request")
	}
	if m.notes[0].Content != "keep" {
		t.Fatalf("cancel should not touch content, got %q", m.notes[0].Content)
	}
	if m.mode != ModeList || m.editingID != "" {
		t.Fatal("cancel should leave edit mode")
	}
}

func TestEdit_SwitchingNotesAbandonsBuffer(t *testing.T) {
	m := loadedModel(t, "first", "second")

	updated, _ := m.Update(keyMsg("e"))
	m = updated.(AppModel)
	m.input.SetValue("half-typed")

	// Moving down abandons the in-progress edit; re-editing the other note
	// starts from its stored content.
	updated, _ = m.Update(keyMsg("down"))
	m = updated.(AppModel)
	if m.mode != ModeList || m.editingID != "" {
		t.Fatal("navigation should abandon the edit")
	}
	if m.notes[0].Content != "first" {
		t.Fatalf("abandoned edit must not persist, got %q", m.notes[0].Content)
	}

	updated, _ = m.Update(keyMsg("e"))
	m = updated.(AppModel)
	if m.editingID != "second-id" {
		t.Fatalf("expected edit of second-id, got %q", m.editingID)
	}
	if m.input.Value() != "second" {
		t.Fatalf("new edit buffer should reset, got %q", m.input.Value())
	}
}

func TestDelete_RemovesOnConfirmation(t *testing.T) {
	m := loadedModel(t, "a", "b", "c")
	m.cursor = 1

	updated, cmd := m.Update(keyMsg("d"))
	m = updated.(AppModel)

	if cmd == nil {
		t.Fatal("delete should fire a command")
	}
	if len(m.notes) != 3 {
		t.Fatal("unconfirmed delete must leave the list intact")
	}

	updated, _ = m.Update(NoteDeletedMsg{NoteID: "b-id"})
	m = updated.(AppModel)

	if len(m.notes) != 2 {
		t.Fatalf("expected 2 notes after confirmation, got %d", len(m.notes))
	}
	if m.notes[0].Content != "a" || m.notes[1].Content != "c" {
		t.Fatalf("wrong note removed: %q %q", m.notes[0].Content, m.notes[1].Content)
	}
}

func TestDelete_FailureKeepsNote(t *testing.T) {
	m := loadedModel(t, "stable")

	updated, _ := m.Update(keyMsg("d"))
	m = updated.(AppModel)

	updated, _ = m.Update(NoteDeletedMsg{NoteID: "stable-id", Err: errTest})
	m = updated.(AppModel)

	if len(m.notes) != 1 || m.notes[0].Content != "stable" {
		t.Fatal("failed delete must not remove the note")
	}
}

func TestDelete_LastNoteClampsCursor(t *testing.T) {
	m := loadedModel(t, "a", "b")
	m.cursor = 1

	updated, _ := m.Update(NoteDeletedMsg{NoteID: "b-id"})
	m = updated.(AppModel)

	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", m.cursor)
	}

	updated, _ = m.Update(NoteDeletedMsg{NoteID: "a-id"})
	m = updated.(AppModel)
	if len(m.notes) != 0 || m.cursor != 0 {
		t.Fatalf("expected empty list with cursor 0, got %d notes cursor %d", len(m.notes), m.cursor)
	}

	// Delete on an empty list is a no-op.
	updated, cmd := m.Update(keyMsg("d"))
	m = updated.(AppModel)
	if cmd != nil || len(m.notes) != 0 {
		t.Fatal("delete on empty list should do nothing")
	}
}

var errTest = &testError{}

type testError struct{}

func (e *testError) Error() string { return "test error" }
