package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN" // reserved administrative tier, no routes use it yet
)

// User models an authenticated account. The password hash never leaves the
// server: it is excluded from JSON and only compared by the auth service.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}
