package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestList_DecodesNotes(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/notes", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"note_id":"b","content":"second","created_at":"2026-08-30T12:00:01Z"},
			{"note_id":"a","content":"first","created_at":"2026-08-30T12:00:00Z"}
		]`))
	})

	got, err := New(server.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].NoteID)
	assert.Equal(t, "second", got[0].Content)
	assert.Equal(t, "a", got[1].NoteID)
}

func TestCreate_SendsRawContent(t *testing.T) {
	var received string
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received = body.Content
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"note_id":"n1","content":"  padded  ","created_at":"2026-08-30T12:00:00Z"}`))
	})

	// Content goes over the wire untrimmed.
	note, err := New(server.URL).Create(context.Background(), "  padded  ")
	require.NoError(t, err)
	assert.Equal(t, "  padded  ", received)
	assert.Equal(t, "n1", note.NoteID)
}

func TestGet_NotFoundSentinel(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"msg":"Note not found"}`))
	})

	_, err := New(server.URL).Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDo_SurfacesMsgBody(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"msg":"Content cannot be empty"}`))
	})

	_, err := New(server.URL).Create(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Content cannot be empty")
}

func TestDo_SurfacesPlainTextBody(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Server Error", http.StatusInternalServerError)
	})

	_, err := New(server.URL).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Server Error")
}

func TestDo_ContextCancellation(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDelete_TargetsPath(t *testing.T) {
	var path string
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"msg":"Note was deleted!"}`))
	})

	require.NoError(t, New(server.URL).Delete(context.Background(), "abc-123"))
	assert.Equal(t, "/notes/abc-123", path)
}
