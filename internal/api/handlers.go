// Package api exposes the notes service over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/kuitang/swift-notes/internal/errs"
	"github.com/kuitang/swift-notes/internal/logutil"
	"github.com/kuitang/swift-notes/internal/notes"
	"github.com/kuitang/swift-notes/internal/obs"
)

// Handler wraps the notes service and provides HTTP handlers
type Handler struct {
	notesService *notes.Service
}

// NewHandler creates a new API handler with the given notes service
func NewHandler(notesService *notes.Service) *Handler {
	return &Handler{notesService: notesService}
}

// RegisterRoutes registers all notes API routes on the given mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Notes CRUD endpoints using Go 1.22+ routing patterns
	mux.HandleFunc("POST /notes", h.CreateNote)
	mux.HandleFunc("GET /notes", h.ListNotes)
	mux.HandleFunc("GET /notes/{id}", h.GetNote)
	mux.HandleFunc("PUT /notes/{id}", h.UpdateNote)
	mux.HandleFunc("DELETE /notes/{id}", h.DeleteNote)
}

// CreateNote handles POST /notes - creates a new note
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var params notes.CreateNoteParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeMsg(w, http.StatusBadRequest, notes.MsgContentEmpty)
		return
	}

	note, err := h.notesService.Create(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// ListNotes handles GET /notes - returns all notes, newest first
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	result, err := h.notesService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetNote handles GET /notes/{id} - returns a single note by ID
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.notesService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// UpdateNote handles PUT /notes/{id} - replaces a note's content
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var params notes.UpdateNoteParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeMsg(w, http.StatusBadRequest, notes.MsgContentEmpty)
		return
	}

	note, err := h.notesService.Update(r.Context(), r.PathValue("id"), params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/{id} - deletes a note
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notesService.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeMsg(w, http.StatusOK, notes.MsgDeleted)
}

// MsgResponse is the body shape for client errors and delete confirmations
type MsgResponse struct {
	Msg string `json:"msg"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeMsg writes a {"msg": ...} JSON response with the given status code
func writeMsg(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MsgResponse{Msg: message})
}

// writeServiceError maps a service error onto the wire. Client errors get a
// JSON {"msg": ...} body; internal failures get a plain-text "Server Error"
// with the detail kept server-side in the logs.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(errs.CodeOf(err))
	if status >= http.StatusInternalServerError {
		obs.Pkg("api").ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", logutil.TruncateForLog(r.URL.Path, 200),
			"error", err)
		http.Error(w, "Server Error", http.StatusInternalServerError)
		return
	}
	writeMsg(w, status, errs.MessageOf(err))
}
