package domain

import "context"

// User is the profile the backend returns for an authenticated account.
type User struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

// Session is the authenticated identity for the current user. Token is
// opaque and backend-issued. Token and User are always set and cleared
// together.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UserID returns the id of the session's user, or "" for an empty session.
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

// AuthAPI is the authentication surface of the remote backend.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, email, password, name string) (string, error)
	Me(ctx context.Context, token string) (*User, error)
}

// SessionReader exposes the current session to the collection stores.
// Implementations must be safe for concurrent use.
type SessionReader interface {
	Token() string
	UserID() string
}
