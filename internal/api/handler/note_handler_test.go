package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crmlite/crm-api/internal/core/domain"
)

func TestNoteHandler_Create(t *testing.T) {
	svc := &stubClientService{
		addNoteFn: func(ownerID, clientID, authorID, content, noteType string) (*domain.Note, error) {
			if ownerID != "u1" || clientID != "c1" || authorID != "u1" {
				t.Fatalf("unexpected scoping: owner=%s client=%s author=%s", ownerID, clientID, authorID)
			}
			return &domain.Note{
				ID:        "n1",
				Content:   content,
				Type:      noteType,
				ClientID:  clientID,
				AuthorID:  authorID,
				CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				Author:    &domain.NoteAuthor{ID: authorID, Name: "Alice", Email: "alice@x.com"},
			}, nil
		},
	}
	h := NewNoteHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/clients/c1/notes", `{"content":"Called, left voicemail","type":"CALL"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Author *struct {
			Name string `json:"name"`
		} `json:"author"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "n1" || resp.Type != "CALL" {
		t.Fatalf("unexpected note: %+v", resp)
	}
	if resp.Author == nil || resp.Author.Name != "Alice" {
		t.Fatalf("author view missing: %+v", resp)
	}
}

func TestNoteHandler_Create_ErrorsPropagate(t *testing.T) {
	svc := &stubClientService{
		addNoteFn: func(_, _, _, _, _ string) (*domain.Note, error) {
			return nil, domain.ErrContentRequired
		},
	}
	h := NewNoteHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/clients/c1/notes", `{"content":"   "}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u1")
	if err := h.Create(c); err != domain.ErrContentRequired {
		t.Fatalf("expected ErrContentRequired to propagate, got %v", err)
	}
}

func TestNoteHandler_List(t *testing.T) {
	svc := &stubClientService{
		listNotesFn: func(ownerID, clientID string) ([]domain.Note, error) {
			return []domain.Note{
				{ID: "n2", Content: "second", ClientID: clientID, AuthorID: ownerID},
				{ID: "n1", Content: "first", ClientID: clientID, AuthorID: ownerID},
			}, nil
		},
	}
	h := NewNoteHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/clients/c1/notes", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u1")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "n2" {
		t.Fatalf("unexpected notes order: %+v", resp)
	}
}

func TestNoteHandler_List_ForeignClientPropagates(t *testing.T) {
	svc := &stubClientService{
		listNotesFn: func(_, _ string) ([]domain.Note, error) {
			return nil, domain.ErrClientNotFound
		},
	}
	h := NewNoteHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/clients/c1/notes", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u2")
	if err := h.List(c); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound to propagate, got %v", err)
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	var gotNoteID string
	svc := &stubClientService{
		deleteNoteFn: func(ownerID, clientID, noteID string) error {
			gotNoteID = noteID
			return nil
		},
	}
	h := NewNoteHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/clients/c1/notes/n1", "")
	c.SetParamNames("id", "noteId")
	c.SetParamValues("c1", "n1")
	c.Set("user_id", "u1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotNoteID != "n1" {
		t.Fatalf("noteID = %s, want n1", gotNoteID)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "note deleted" {
		t.Fatalf("message = %q, want note deleted", resp.Message)
	}
}

func TestNoteHandler_Delete_NotFoundPropagates(t *testing.T) {
	svc := &stubClientService{
		deleteNoteFn: func(_, _, _ string) error { return domain.ErrNoteNotFound },
	}
	h := NewNoteHandler(svc)

	c, _ := newTestContext(http.MethodDelete, "/clients/c1/notes/n9", "")
	c.SetParamNames("id", "noteId")
	c.SetParamValues("c1", "n9")
	c.Set("user_id", "u1")
	if err := h.Delete(c); err != domain.ErrNoteNotFound {
		t.Fatalf("expected ErrNoteNotFound to propagate, got %v", err)
	}
}

// Guard against regressions in the claim helper shared by every handler.
func TestCtxUserID_Missing(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/clients", "")
	_, err := ctxUserID(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
