package domain

import "time"

// Note types are a convention, not a constraint: the store accepts any value
// and only the empty string is rewritten (to NoteTypeNote).
const (
	NoteTypeNote    = "NOTE"
	NoteTypeCall    = "CALL"
	NoteTypeEmail   = "EMAIL"
	NoteTypeMeeting = "MEETING"
)

// NoteAuthor is the denormalized author view embedded in note responses,
// resolved from the users collection at read time.
type NoteAuthor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Note is a timestamped activity entry on a client. Notes are append-only
// except for hard deletion; there is no update path.
type Note struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Content   string    `json:"content" bson:"content"`
	Type      string    `json:"type" bson:"type"`
	ClientID  string    `json:"clientId" bson:"client_id"`
	AuthorID  string    `json:"authorId" bson:"author_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`

	Author *NoteAuthor `json:"author,omitempty" bson:"-"`
}
