package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmlite/crm-api/internal/api/metrics"
	"github.com/crmlite/crm-api/internal/core/ports"
)

// NoteHandler handles HTTP requests for client activity notes.
type NoteHandler struct {
	service ports.ClientService
}

func NewNoteHandler(service ports.ClientService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List handles GET /clients/:id/notes.
//
// @Summary      List a client's notes, newest first
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {array}   domain.Note
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id}/notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	notes, err := h.service.ListNotes(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notes)
}

// Create handles POST /clients/:id/notes.
//
// @Summary      Add a note to a client
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Client id"
// @Param        body  body      addNoteRequest  true  "Note content and type"
// @Success      201   {object}  domain.Note
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id}/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// The acting user is both owner and author; notes carry the author
	// reference separately all the same.
	note, err := h.service.AddNote(c.Request().Context(), ownerID, c.Param("id"), ownerID, req.Content, req.Type)
	if err != nil {
		return err
	}

	metrics.NotesCreatedTotal.WithLabelValues(note.Type).Inc()
	return c.JSON(http.StatusCreated, note)
}

// Delete handles DELETE /clients/:id/notes/:noteId. Notes are hard deleted,
// unlike clients which are only deactivated.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Client id"
// @Param        noteId  path      string  true  "Note id"
// @Success      200     {object}  messageResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /clients/{id}/notes/{noteId} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteNote(c.Request().Context(), ownerID, c.Param("id"), c.Param("noteId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "note deleted"})
}
