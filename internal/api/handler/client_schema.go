package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// dateOnly is the wire format for nextContact.
const dateOnly = "2006-01-02"

// --- Request types ---

// Tags travel as the legacy comma-joined string on the wire; the split into
// an ordered set happens in the mapper.
type createClientRequest struct {
	Name        string `json:"name"        validate:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Tags        string `json:"tags"`
	Status      string `json:"status"`
	NextContact string `json:"nextContact" validate:"omitempty,datetime=2006-01-02"`
}

// updateClientRequest overwrites every field it carries; an omitted status
// keeps the stored one. nextContact is deliberately absent; the legacy edit
// form never sent it.
type updateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Tags    string `json:"tags"`
	Status  string `json:"status"`
}

type addNoteRequest struct {
	Content string `json:"content" validate:"required"`
	Type    string `json:"type"`
}

// --- Response types ---

// clientResponse is the wire view of a client: camelCase fields, comma-joined
// tags, date-only nextContact.
type clientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Tags        string    `json:"tags"`
	Status      string    `json:"status"`
	NextContact *string   `json:"nextContact"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type deactivateResponse struct {
	Message string         `json:"message"`
	Client  clientResponse `json:"client"`
}

type messageResponse struct {
	Message string `json:"message"`
}
