// Package session owns the client-side answer to "who is logged in and what
// can they do". It wraps an identity service behind a small state machine:
//
//	Loading -> Authenticated | Unauthenticated
//
// and guarantees that consumers never observe a session without its profile.
package session

import (
	"context"
	"time"
)

// Session is proof of authentication issued by the identity service.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       string
}

// Profile is the application-level identity keyed to a Session's user ID.
type Profile struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

type EventType int

const (
	// EventRefreshed carries a replacement session (rotated tokens).
	EventRefreshed EventType = iota
	// EventRevoked means the session died elsewhere (revocation, expiry).
	EventRevoked
)

// Event is an asynchronous session-change notification pushed by the
// identity service.
type Event struct {
	Type    EventType
	Session *Session
}

// Identity is the external identity/data service contract the context
// consumes. Implementations own transport concerns (timeouts, retries).
type Identity interface {
	// Bootstrap reports whether a valid persisted session exists.
	// Returns ErrNoSession when there is none.
	Bootstrap(ctx context.Context) (*Session, error)

	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, fullName, role string) (*Session, error)

	// SignOut revokes the session remotely. Best-effort: the caller clears
	// local state regardless of the result.
	SignOut(ctx context.Context, accessToken string) error

	// FetchProfile reads exactly one profile row for the session's user.
	FetchProfile(ctx context.Context, s *Session) (*Profile, error)

	// Events returns the push channel for session-change notifications,
	// or nil if the implementation has none.
	Events() <-chan Event
}
