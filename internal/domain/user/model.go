package user

import "time"

// User is an identity created on first magic-link sign-in.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Identity is the authenticated caller of a request. The zero value is an
// anonymous visitor. IsAdmin is computed on the server from configuration.
type Identity struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	SessionID string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}
