// Package tui is the interactive terminal client for the notes server.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kuitang/swift-notes/internal/client"
	"github.com/kuitang/swift-notes/internal/notes"
	"github.com/kuitang/swift-notes/internal/obs"
)

// Mode identifies what the keyboard is currently driving.
type Mode int

const (
	ModeList Mode = iota
	ModeAdd
	ModeEdit
)

// NotesLoadedMsg carries the initial list fetch result.
type NotesLoadedMsg struct {
	Notes []notes.Note
	Err   error
}

// NoteCreatedMsg carries the server record for a submitted note.
type NoteCreatedMsg struct {
	Note *notes.Note
	Err  error
}

// NoteUpdatedMsg carries the server record for a saved edit.
type NoteUpdatedMsg struct {
	Note *notes.Note
	Err  error
}

// NoteDeletedMsg reports completion of a delete.
type NoteDeletedMsg struct {
	NoteID string
	Err    error
}

// AppModel is the root Bubble Tea model for the notes client.
// The list only changes when a server result arrives; a failed request
// leaves the model exactly as it was, with the failure in the log file.
type AppModel struct {
	api *client.Client

	notes  []notes.Note
	cursor int

	mode      Mode
	input     textinput.Model
	editingID string

	loaded  bool
	loadErr error

	width  int
	height int
}

// NewAppModel creates the root application model
func NewAppModel(api *client.Client) AppModel {
	input := textinput.New()
	input.Placeholder = "What needs writing down?"
	input.CharLimit = 0

	return AppModel{
		api:   api,
		input: input,
		mode:  ModeList,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.loadNotesCmd()
}

func (m AppModel) loadNotesCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		result, err := api.List(context.Background())
		return NotesLoadedMsg{Notes: result, Err: err}
	}
}

func (m AppModel) createNoteCmd(content string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		note, err := api.Create(context.Background(), content)
		return NoteCreatedMsg{Note: note, Err: err}
	}
}

func (m AppModel) updateNoteCmd(noteID, content string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		note, err := api.Update(context.Background(), noteID, content)
		return NoteUpdatedMsg{Note: note, Err: err}
	}
}

func (m AppModel) deleteNoteCmd(noteID string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		err := api.Delete(context.Background(), noteID)
		return NoteDeletedMsg{NoteID: noteID, Err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case NotesLoadedMsg:
		m.loaded = true
		m.loadErr = msg.Err
		if msg.Err != nil {
			obs.Pkg("tui").Error("failed to load notes", "error", msg.Err)
			return m, nil
		}
		m.notes = msg.Notes
		m.clampCursor()
		return m, nil

	case NoteCreatedMsg:
		if msg.Err != nil {
			// The typed text stays in the input so nothing is lost.
			obs.Pkg("tui").Error("failed to create note", "error", msg.Err)
			return m, nil
		}
		// Newest first: the fresh note goes on top.
		m.notes = append([]notes.Note{*msg.Note}, m.notes...)
		m.cursor = 0
		if m.mode == ModeAdd {
			m.mode = ModeList
			m.input.SetValue("")
			m.input.Blur()
		}
		return m, nil

	case NoteUpdatedMsg:
		if msg.Err != nil {
			obs.Pkg("tui").Error("failed to update note", "error", msg.Err)
			return m, nil
		}
		for i := range m.notes {
			if m.notes[i].NoteID == msg.Note.NoteID {
				m.notes[i].Content = msg.Note.Content
				break
			}
		}
		// Leave edit mode only if this save is still the active edit.
		if m.mode == ModeEdit && m.editingID == msg.Note.NoteID {
			m.mode = ModeList
			m.editingID = ""
			m.input.Blur()
		}
		return m, nil

	case NoteDeletedMsg:
		if msg.Err != nil {
			obs.Pkg("tui").Error("failed to delete note", "error", msg.Err)
			return m, nil
		}
		for i := range m.notes {
			if m.notes[i].NoteID == msg.NoteID {
				m.notes = append(m.notes[:i], m.notes[i+1:]...)
				break
			}
		}
		m.clampCursor()
		if m.editingID == msg.NoteID {
			m.mode = ModeList
			m.editingID = ""
			m.input.Blur()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case ModeAdd:
			return m.updateAddMode(msg)
		case ModeEdit:
			return m.updateEditMode(msg)
		default:
			return m.updateListMode(msg)
		}
	}

	return m, nil
}

func (m AppModel) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "a", "n":
		m.mode = ModeAdd
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "e", "enter":
		return m.startEdit()
	case "d", "x":
		return m.deleteSelected()
	case "r":
		return m, m.loadNotesCmd()
	}
	return m, nil
}

func (m AppModel) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		// Whitespace-only input is ignored locally, but an accepted value is
		// sent verbatim, untrimmed. The input keeps its text until the server
		// confirms; a second enter before that simply creates two notes.
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m, m.createNoteCmd(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel: discard the buffer, keep the stored content. No request.
		m.mode = ModeList
		m.editingID = ""
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		// Stay in edit mode with the typed text until the server confirms.
		return m, m.updateNoteCmd(m.editingID, value)
	case "tab", "down", "up":
		// Moving to another note abandons the in-progress edit.
		m.mode = ModeList
		m.editingID = ""
		m.input.Blur()
		return m.updateListMode(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startEdit enters edit mode on the selected note. Starting an edit while
// another is in progress abandons the previous buffer.
func (m AppModel) startEdit() (tea.Model, tea.Cmd) {
	if len(m.notes) == 0 {
		return m, nil
	}
	note := m.notes[m.cursor]
	m.mode = ModeEdit
	m.editingID = note.NoteID
	m.input.SetValue(note.Content)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

// deleteSelected fires the server delete; the note leaves the list when the
// confirmation arrives.
func (m AppModel) deleteSelected() (tea.Model, tea.Cmd) {
	if len(m.notes) == 0 {
		return m, nil
	}
	return m, m.deleteNoteCmd(m.notes[m.cursor].NoteID)
}

func (m *AppModel) clampCursor() {
	if m.cursor >= len(m.notes) {
		m.cursor = len(m.notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m AppModel) View() string {
	if !m.loaded {
		return "Loading notes..."
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Notes"))
	b.WriteString("\n\n")

	if m.mode == ModeAdd {
		b.WriteString("New note: " + m.input.View())
		b.WriteString("\n\n")
	}

	if m.loadErr != nil {
		b.WriteString(ErrorStyle.Render("Could not reach the server. Press r to retry."))
		b.WriteString("\n")
	} else if len(m.notes) == 0 {
		b.WriteString(HelpStyle.Render("No notes yet. Press a to add one."))
		b.WriteString("\n")
	}

	for i, note := range m.notes {
		if m.mode == ModeEdit && note.NoteID == m.editingID {
			b.WriteString("> " + m.input.View())
			b.WriteString("\n")
			continue
		}

		line := note.Content
		stamp := TimestampStyle.Render(note.CreatedAt.Local().Format("Jan 2 15:04"))
		if i == m.cursor && m.mode == ModeList {
			b.WriteString(SelectedNoteStyle.Render("> "+line) + "  " + stamp)
		} else {
			b.WriteString(NoteStyle.Render("  "+line) + "  " + stamp)
		}
		b.WriteString("\n")
	}

	var statusText string
	switch m.mode {
	case ModeAdd:
		statusText = "enter: save | esc: cancel"
	case ModeEdit:
		statusText = "enter: save | esc: cancel edit"
	default:
		statusText = fmt.Sprintf("%d notes | a:add e:edit d:delete r:reload | j/k:move | q:quit", len(m.notes))
	}

	statusBar := StatusBarStyle.Width(max(m.width, 20)).Render(HelpStyle.Render(statusText))
	return lipgloss.JoinVertical(lipgloss.Left, b.String(), statusBar)
}
