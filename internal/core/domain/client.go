package domain

import (
	"errors"
	"strings"
	"time"
)

// ClientStatus represents the pipeline state of a client. The boundary stores
// whatever string the caller supplies; the constants below are the states the
// kanban board knows about.
type ClientStatus string

const (
	StatusNew      ClientStatus = "NEW"
	StatusFollowUp ClientStatus = "FOLLOW_UP"
	StatusClosed   ClientStatus = "CLOSED"
	StatusLost     ClientStatus = "LOST"

	// StatusInactive is the soft-delete marker. It is only reachable through
	// the deactivate operation, never through create or update.
	StatusInactive ClientStatus = "INACTIVE"
)

var ErrMissingFields = errors.New("name, email and password are required")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrNameRequired = errors.New("name is required")
var ErrStatusReserved = errors.New("status INACTIVE is reserved")
var ErrClientNotFound = errors.New("client not found")
var ErrContentRequired = errors.New("content is required")
var ErrNoteNotFound = errors.New("note not found")

// Known reports whether the status is one of the user-visible pipeline states.
func (s ClientStatus) Known() bool {
	switch s {
	case StatusNew, StatusFollowUp, StatusClosed, StatusLost:
		return true
	}
	return false
}

// Client is a contact owned by exactly one user. OwnerID is immutable after
// creation; deletion is logical only (status set to INACTIVE).
type Client struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	Name           string       `json:"name" bson:"name"`
	Email          string       `json:"email" bson:"email"`
	Phone          string       `json:"phone" bson:"phone"`
	Address        string       `json:"address" bson:"address"`
	Tags           []string     `json:"-" bson:"tags"`
	Status         ClientStatus `json:"status" bson:"status"`
	NextContact    *time.Time   `json:"-" bson:"next_contact,omitempty"`
	OwnerID        string       `json:"ownerId" bson:"owner_id"`
	IdempotencyKey string       `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time    `json:"createdAt" bson:"created_at"`
}

// Active reports whether the client should appear in default listings.
func (c *Client) Active() bool {
	return c.Status != StatusInactive
}

// ParseTags splits the legacy comma-joined wire format into an ordered set:
// whitespace trimmed, empties dropped, first occurrence wins.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags renders the tag set back into the comma-joined wire format.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
