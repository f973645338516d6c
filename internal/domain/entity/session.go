// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshLeeway is how long before expiry a session is refreshed.
const RefreshLeeway = 5 * time.Minute

// Session is the authenticated state of one browser context.
type Session struct {
	UserID       uuid.UUID // Subject of the access token.
	Email        string    // Email the identity provider knows the user by.
	AccessToken  string    // Bearer token attached to every GraphQL call.
	RefreshToken string    // Used to obtain a new AccessToken before ExpiresAt.
	ExpiresAt    time.Time // When AccessToken stops being accepted.
}

// IsExpired reports whether the access token is no longer valid at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// RefreshDue returns how long until the session enters its refresh window.
// A non-positive result means it is already inside the window.
func (s *Session) RefreshDue(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now) - RefreshLeeway
}

// Clone returns a copy that callers may keep without sharing state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s

	return &cp
}

// AuthState is the lifecycle state of a browser context's session.
type AuthState int

const (
	AuthStateUnknown AuthState = iota
	AuthStateLoading
	AuthStateAuthenticated
	AuthStateExpiring
	AuthStateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthStateLoading:
		return "loading"
	case AuthStateAuthenticated:
		return "authenticated"
	case AuthStateExpiring:
		return "expiring"
	case AuthStateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// AuthEvent is an auth-state notification coming from the identity provider.
type AuthEvent string

const (
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	AuthEventUserUpdated    AuthEvent = "USER_UPDATED"
)

// SessionChanged is emitted every time the session of a browser context is
// replaced or cleared. Session is nil after sign-out or a failed refresh.
type SessionChanged struct {
	Handle  string
	Session *Session
}
