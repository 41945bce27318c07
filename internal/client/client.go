// Package client is a typed HTTP client for the notes API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kuitang/swift-notes/internal/notes"
)

// ErrNotFound is returned when the server reports a missing note.
var ErrNotFound = errors.New("note not found")

// Client talks to a notes server. The zero http.Client carries no timeout;
// callers bound requests through the context instead.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches all notes, newest first.
func (c *Client) List(ctx context.Context) ([]notes.Note, error) {
	var result []notes.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Create adds a new note and returns the server-assigned record.
func (c *Client) Create(ctx context.Context, content string) (*notes.Note, error) {
	var note notes.Note
	params := notes.CreateNoteParams{Content: content}
	if err := c.do(ctx, http.MethodPost, "/notes", params, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Get fetches a single note by id.
func (c *Client) Get(ctx context.Context, noteID string) (*notes.Note, error) {
	var note notes.Note
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(noteID), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces a note's content and returns the updated record.
func (c *Client) Update(ctx context.Context, noteID, content string) (*notes.Note, error) {
	var note notes.Note
	params := notes.UpdateNoteParams{Content: content}
	if err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(noteID), params, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes a note by id.
func (c *Client) Delete(ctx context.Context, noteID string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(noteID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeError handles both error shapes the server produces: JSON {"msg": ...}
// for client errors and a plain-text body for internal failures.
func (c *Client) decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var msg struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(data, &msg); err == nil && msg.Msg != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg.Msg)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
}
